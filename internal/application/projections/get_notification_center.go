package projections

import (
	"context"

	"volunteerhub/internal/application/listutil"
	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
)

// Notification tabs.
const (
	TabAll    = viewengine.AllValue
	TabUnread = "unread"
	TabRead   = "read"
)

// GetNotificationCenterQuery carries notification center parameters.
type GetNotificationCenterQuery struct {
	RecipientID string // empty shows every recipient
	Tab         string // all, unread, read
	Type        string // empty or "all" shows every type
	Search      string
	Page        int
	PerPage     int
}

// GetNotificationCenterDeps holds dependencies for GetNotificationCenter.
type GetNotificationCenterDeps struct {
	Notifications viewengine.DataSource
}

// GetNotificationCenterResult carries one page of notifications.
type GetNotificationCenterResult struct {
	Notifications []NotificationItem
	PageInfo      listutil.PageInfo
	UnreadCount   int     // recipient-wide, ignores tab, type and search
	TypeCounts    []Count // within the current tab
}

// QueryGetNotificationCenter lists notifications newest first.
// PRE: none
// POST: UnreadCount is independent of Tab so the badge stays stable across tabs
func QueryGetNotificationCenter(ctx context.Context, query GetNotificationCenterQuery, deps GetNotificationCenterDeps) (GetNotificationCenterResult, error) {
	if err := checkContext(ctx); err != nil {
		return GetNotificationCenterResult{}, err
	}

	var scope []viewengine.Predicate
	if query.RecipientID != "" {
		scope = append(scope, viewengine.FieldEquals(records.FieldRecipientID, query.RecipientID))
	}
	mine := viewengine.Apply(snapshot(deps.Notifications), viewengine.Query{Predicates: scope}).Records

	unread := viewengine.Apply(mine, viewengine.Query{
		Predicates: []viewengine.Predicate{viewengine.FieldEquals(records.FieldRead, false)},
	})

	var tab []viewengine.Predicate
	switch query.Tab {
	case TabUnread:
		tab = append(tab, viewengine.FieldEquals(records.FieldRead, false))
	case TabRead:
		tab = append(tab, viewengine.FieldEquals(records.FieldRead, true))
	}
	inTab := viewengine.Apply(mine, viewengine.Query{Predicates: tab}).Records

	preds := []viewengine.Predicate{
		viewengine.TextMatch([]string{records.FieldTitle, records.FieldMessage}, query.Search),
	}
	if query.Type != "" {
		preds = append(preds, viewengine.FieldEquals(records.FieldType, query.Type))
	}

	page := max(query.Page, 1)
	perPage := query.PerPage
	if perPage < 1 {
		perPage = listutil.DefaultPerPage
	}
	q := viewengine.Query{
		Predicates: preds,
		Sort: []viewengine.SortKey{
			viewengine.DateDesc(records.FieldCreatedAt),
			viewengine.Asc(viewengine.IDField),
		},
		Page: &viewengine.Page{Offset: (page - 1) * perPage, Limit: perPage},
	}
	res, info := applyPaged(inTab, q, page, perPage)

	result := GetNotificationCenterResult{
		Notifications: make([]NotificationItem, 0, len(res.Records)),
		PageInfo:      info,
		UnreadCount:   unread.TotalMatched,
		TypeCounts:    counts(viewengine.CountBy(inTab, viewengine.GroupByField(records.FieldType))),
	}
	for _, r := range res.Records {
		result.Notifications = append(result.Notifications, notificationItem(r))
	}
	return result, nil
}
