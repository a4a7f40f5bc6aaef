package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"volunteerhub/internal/adapters/source"
	"volunteerhub/internal/application/listutil"
	"volunteerhub/internal/application/projections"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts an event description to HTML, escaping it on failure.
func renderMarkdown(md string) string {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTMLEscapeString(md)
	}
	return buf.String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("json_encode_failed", "error", err)
	}
}

// intParam reads a positive integer query parameter, falling back to def.
func intParam(r *http.Request, name string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// eventView adds rendered Markdown to an event item.
type eventView struct {
	projections.EventItem
	DescriptionHTML string
}

func eventViews(items []projections.EventItem) []eventView {
	out := make([]eventView, len(items))
	for i, e := range items {
		out[i] = eventView{EventItem: e, DescriptionHTML: renderMarkdown(e.Description)}
	}
	return out
}

// handleGetEventList handles GET /api/events
func handleGetEventList(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lp := listutil.ParseListParams(r.URL.Query(), projections.EventListSpec)

	result, err := projections.QueryGetEventList(r.Context(),
		projections.GetEventListQuery{Params: lp},
		projections.GetEventListDeps{Events: sources.Events},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"Events":       eventViews(result.Events),
		"PageInfo":     result.PageInfo,
		"StatusCounts": result.StatusCounts,
		"Registered":   result.Registered,
		"Needed":       result.Needed,
		"FillPercent":  result.FillPercent,
		"Sort":         lp.Sort,
		"Dir":          lp.Dir,
		"Search":       lp.Search,
		"Filters":      lp.Filters,
	})
}

// handleGetDashboard handles GET /api/dashboard
func handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	query := projections.GetDashboardQuery{
		Now:                timeNow().In(displayLocation),
		UpcomingLimit:      intParam(r, "upcoming", projections.DefaultUpcomingLimit),
		TopCategoriesLimit: intParam(r, "categories", projections.DefaultTopCategoriesLimit),
		TopVolunteersLimit: intParam(r, "volunteers", projections.DefaultTopVolunteersLimit),
	}
	deps := projections.GetDashboardDeps{Events: sources.Events, Volunteers: sources.Volunteers}

	result, err := projections.QueryGetDashboard(r.Context(), query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, struct {
		projections.DashboardResult
		Upcoming []eventView
	}{result, eventViews(result.Upcoming)})
}

// handleGetBadgeGallery handles GET /api/badges
func handleGetBadgeGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	query := projections.GetBadgeGalleryQuery{
		VolunteerID: q.Get("volunteer_id"),
		Search:      q.Get("q"),
		Category:    q.Get("category"),
		Tier:        q.Get("tier"),
		Earned:      q.Get("earned"),
	}
	result, err := projections.QueryGetBadgeGallery(r.Context(), query, projections.GetBadgeGalleryDeps{Badges: sources.Badges})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleGetNotificationCenter handles GET /api/notifications
func handleGetNotificationCenter(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	pp := listutil.ParsePageParams(q)
	query := projections.GetNotificationCenterQuery{
		RecipientID: q.Get("recipient_id"),
		Tab:         q.Get("tab"),
		Type:        q.Get("type"),
		Search:      q.Get("q"),
		Page:        pp.Page,
		PerPage:     pp.PerPage,
	}
	result, err := projections.QueryGetNotificationCenter(r.Context(), query,
		projections.GetNotificationCenterDeps{Notifications: sources.Notifications})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleGetVolunteerDirectory handles GET /api/volunteers
func handleGetVolunteerDirectory(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lp := listutil.ParseListParams(r.URL.Query(), projections.VolunteerListSpec)
	result, err := projections.QueryGetVolunteerDirectory(r.Context(),
		projections.GetVolunteerDirectoryQuery{Params: lp},
		projections.GetVolunteerDirectoryDeps{Volunteers: sources.Volunteers},
	)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleGetEventCalendar handles GET /api/calendar?year=2024&month=2
func handleGetEventCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	now := timeNow().In(displayLocation)
	q := r.URL.Query()
	query := projections.GetEventCalendarQuery{
		Year:      intParam(r, "year", now.Year()),
		Month:     time.Month(intParam(r, "month", int(now.Month()))),
		WeekStart: weekStart,
		Location:  displayLocation,
		Status:    q.Get("status"),
		Category:  q.Get("category"),
		Today:     now,
	}
	result, err := projections.QueryGetEventCalendar(r.Context(), query, projections.GetEventCalendarDeps{Events: sources.Events})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, result)
}

// handleAdminPerf handles GET /api/admin/perf?minutes=60&top=10
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}
	since := timeNow().Add(-time.Duration(intParam(r, "minutes", 60)) * time.Minute)
	writeJSON(w, perfCollector.Snapshot(since, intParam(r, "top", 10)))
}

// statusReporter is implemented by sources that refresh in the background.
type statusReporter interface {
	Status() source.Status
}

// handleHealth handles GET /health
func handleHealth(w http.ResponseWriter, r *http.Request) {
	report := map[string]any{"status": "ok"}
	for name, src := range map[string]any{
		"events":        sources.Events,
		"volunteers":    sources.Volunteers,
		"badges":        sources.Badges,
		"notifications": sources.Notifications,
	} {
		if sr, ok := src.(statusReporter); ok {
			report[name] = sr.Status()
		}
	}
	writeJSON(w, report)
}
