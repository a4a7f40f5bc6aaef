package badge

import (
	"errors"
	"testing"
	"time"
)

// TestBadge_Validate verifies each domain error is returned for its violation.
func TestBadge_Validate(t *testing.T) {
	tests := []struct {
		name string
		b    Badge
		want error
	}{
		{"valid", Badge{Name: "First Shift", Tier: TierBronze}, nil},
		{"empty name", Badge{Tier: TierGold}, ErrEmptyName},
		{"bad tier", Badge{Name: "X", Tier: "diamond"}, ErrInvalidTier},
		{"negative progress", Badge{Name: "X", Tier: TierSilver, Progress: -1}, ErrInvalidProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.b.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestBadge_IsEarned verifies locked badges have no award date.
func TestBadge_IsEarned(t *testing.T) {
	if (&Badge{}).IsEarned() {
		t.Error("zero EarnedAt should be locked")
	}
	if !(&Badge{EarnedAt: time.Now()}).IsEarned() {
		t.Error("set EarnedAt should be earned")
	}
}

// TestTierRank verifies tier ordering.
func TestTierRank(t *testing.T) {
	if TierRank(TierBronze) >= TierRank(TierGold) {
		t.Error("bronze should rank below gold")
	}
	if TierRank("wood") != -1 {
		t.Error("unknown tier should rank -1")
	}
}
