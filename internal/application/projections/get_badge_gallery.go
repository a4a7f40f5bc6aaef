package projections

import (
	"cmp"
	"context"

	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
	"volunteerhub/internal/domain/badge"
)

// Earned filter values.
const (
	EarnedAll    = viewengine.AllValue
	EarnedOnly   = "earned"
	EarnedLocked = "locked"
)

// GetBadgeGalleryQuery carries badge gallery filters. Empty or "all" disables a filter.
type GetBadgeGalleryQuery struct {
	VolunteerID string
	Search      string
	Category    string
	Tier        string
	Earned      string // all, earned, locked
}

// GetBadgeGalleryDeps holds dependencies for GetBadgeGallery.
type GetBadgeGalleryDeps struct {
	Badges viewengine.DataSource
}

// BadgeCategory is one gallery section.
type BadgeCategory struct {
	Name   string
	Earned int
	Badges []BadgeItem
}

// GetBadgeGalleryResult carries badges grouped by category.
type GetBadgeGalleryResult struct {
	Categories        []BadgeCategory
	Total             int
	EarnedCount       int
	CompletionPercent float64
	TierCounts        []Count // earned badges per tier, lowest tier first
}

// tierOrder sorts tiers lowest first; unknown tiers go after platinum.
func tierOrder(a, b any) int {
	return cmp.Compare(tierRank(a), tierRank(b))
}

func tierRank(v any) int {
	s, _ := v.(string)
	if r := badge.TierRank(s); r >= 0 {
		return r
	}
	return len(badge.ValidTiers)
}

// QueryGetBadgeGallery filters badges and groups them by category.
// PRE: none
// POST: categories appear in first-encounter order of the sorted badges;
// within a category badges are ordered by tier, then name
func QueryGetBadgeGallery(ctx context.Context, query GetBadgeGalleryQuery, deps GetBadgeGalleryDeps) (GetBadgeGalleryResult, error) {
	if err := checkContext(ctx); err != nil {
		return GetBadgeGalleryResult{}, err
	}

	preds := []viewengine.Predicate{
		viewengine.TextMatch([]string{records.FieldName, records.FieldDescription, records.FieldEndorsedBy}, query.Search),
	}
	if query.VolunteerID != "" {
		preds = append(preds, viewengine.FieldEquals(records.FieldVolunteerID, query.VolunteerID))
	}
	if query.Category != "" {
		preds = append(preds, viewengine.FieldEquals(records.FieldCategory, query.Category))
	}
	if query.Tier != "" {
		preds = append(preds, viewengine.FieldEquals(records.FieldTier, query.Tier))
	}
	switch query.Earned {
	case EarnedOnly:
		preds = append(preds, viewengine.FieldEquals(records.FieldEarned, true))
	case EarnedLocked:
		preds = append(preds, viewengine.FieldEquals(records.FieldEarned, false))
	}

	category := viewengine.GroupByField(records.FieldCategory)
	res := viewengine.Apply(snapshot(deps.Badges), viewengine.Query{
		Predicates: preds,
		Sort: []viewengine.SortKey{
			{Field: records.FieldTier, Compare: tierOrder},
			viewengine.Asc(records.FieldName),
			viewengine.Asc(viewengine.IDField),
		},
		GroupBy: &category,
	})

	result := GetBadgeGalleryResult{Total: res.TotalMatched}
	var earned []viewengine.Record
	for _, g := range res.Groups {
		section := BadgeCategory{Name: g.Label, Badges: make([]BadgeItem, 0, g.Count)}
		for _, r := range g.Records {
			item := badgeItem(r)
			if item.Earned {
				section.Earned++
				earned = append(earned, r)
			}
			section.Badges = append(section.Badges, item)
		}
		result.EarnedCount += section.Earned
		result.Categories = append(result.Categories, section)
	}
	result.CompletionPercent = viewengine.PercentOfTarget(float64(result.EarnedCount), float64(result.Total))

	byTier := viewengine.CountBy(earned, viewengine.GroupByField(records.FieldTier))
	for _, t := range badge.ValidTiers {
		result.TierCounts = append(result.TierCounts, Count{Label: t, Count: viewengine.BucketCount(byTier, t)})
	}

	return result, nil
}
