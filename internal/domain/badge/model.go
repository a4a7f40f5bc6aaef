package badge

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("badge name cannot be empty")
	ErrInvalidTier     = errors.New("tier must be one of: bronze, silver, gold, platinum")
	ErrInvalidProgress = errors.New("progress and target cannot be negative")
)

// Tier constants
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// ValidTiers contains all valid badge tiers, lowest first.
var ValidTiers = []string{TierBronze, TierSilver, TierGold, TierPlatinum}

// Badge is an achievement or endorsement shown in a volunteer's gallery.
// A badge with a zero EarnedAt is still locked; Progress/Target track how close it is.
type Badge struct {
	ID          string
	Name        string
	Description string
	Category    string // e.g. "service", "leadership", "endorsement"
	Tier        string
	VolunteerID string
	EndorsedBy  string // organization, for endorsements
	Progress    float64
	Target      float64
	EarnedAt    time.Time
}

// Validate checks if the Badge has valid data.
// PRE: Badge struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Badge) Validate() error {
	if b.Name == "" {
		return ErrEmptyName
	}
	if !IsValidTier(b.Tier) {
		return ErrInvalidTier
	}
	if b.Progress < 0 || b.Target < 0 {
		return ErrInvalidProgress
	}
	return nil
}

// IsEarned reports whether the badge has been awarded.
func (b *Badge) IsEarned() bool {
	return !b.EarnedAt.IsZero()
}

// TierRank returns the tier's position in ValidTiers, or -1.
func TierRank(tier string) int {
	for i, v := range ValidTiers {
		if v == tier {
			return i
		}
	}
	return -1
}

// IsValidTier reports whether tier is known.
func IsValidTier(tier string) bool {
	return TierRank(tier) >= 0
}
