package handlers

import (
	"net/http"

	"ruo.dev/internal/filter"
	"ruo.dev/internal/middleware"
	"ruo.dev/internal/models"
	"ruo.dev/internal/services"
)

// filterLabels are the tab captions of the timeline filter bar
var filterLabels = map[filter.Category]models.LocalizedText{
	filter.All:           {Ko: "전체", En: "All"},
	filter.Career:        {Ko: "경력", En: "Career"},
	filter.Education:     {Ko: "교육", En: "Education"},
	filter.Certification: {Ko: "자격증", En: "Certifications"},
	filter.Other:         {Ko: "기타", En: "Other"},
}

// TimelineEntryView is a timeline entry resolved for one language
type TimelineEntryView struct {
	ID                string                  `json:"id"`
	Date              string                  `json:"date"`
	Title             string                  `json:"title"`
	Role              string                  `json:"role,omitempty"`
	Category          models.TimelineCategory `json:"category"`
	Description       string                  `json:"description"`
	ExternalLink      string                  `json:"externalLink,omitempty"`
	ExternalLinkLabel string                  `json:"externalLinkLabel,omitempty"`
}

// TimelineResponse is the body of GET /api/timeline
type TimelineResponse struct {
	Filter  filter.Category     `json:"filter"`
	Lang    models.Lang         `json:"lang"`
	Total   int                 `json:"total"`
	Entries []TimelineEntryView `json:"entries"`
}

// FilterView is one button of the filter bar
type FilterView struct {
	Filter  filter.Category `json:"filter"`
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Default bool            `json:"default,omitempty"`
}

// TimelineHandler handles timeline endpoints
type TimelineHandler struct {
	timelineService *services.TimelineService
}

// NewTimelineHandler creates a new TimelineHandler
func NewTimelineHandler(ts *services.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineService: ts}
}

// ListEntries handles GET /api/timeline
func (h *TimelineHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)
	category := requestedCategory(r)

	entries := h.timelineService.Filter(category)
	views := make([]TimelineEntryView, len(entries))
	for i, entry := range entries {
		views[i] = timelineEntryView(entry, lang)
	}

	respondJSON(w, http.StatusOK, TimelineResponse{
		Filter:  category,
		Lang:    lang,
		Total:   h.timelineService.Len(),
		Entries: views,
	})
}

// ListFilters handles GET /api/timeline/filters
func (h *TimelineHandler) ListFilters(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)
	counts := h.timelineService.Counts()

	views := make([]FilterView, len(filter.Categories))
	for i, c := range filter.Categories {
		views[i] = FilterView{
			Filter:  c,
			Label:   filterLabels[c].Get(lang),
			Count:   counts[c],
			Default: c == filter.DefaultCategory,
		}
	}
	respondJSON(w, http.StatusOK, views)
}

// requestedCategory reads ?filter=. A missing filter opens on the default
// tab; anything outside the closed set falls back to showing everything.
func requestedCategory(r *http.Request) filter.Category {
	raw := r.URL.Query().Get("filter")
	if raw == "" {
		return filter.DefaultCategory
	}
	category, ok := filter.ParseCategory(raw)
	if !ok {
		return filter.All
	}
	return category
}

func timelineEntryView(entry models.TimelineEntry, lang models.Lang) TimelineEntryView {
	view := TimelineEntryView{
		ID:          entry.ID,
		Date:        entry.Date,
		Title:       entry.Title.Resolve(lang),
		Role:        entry.Role.Resolve(lang),
		Category:    entry.Category,
		Description: entry.Description.Get(lang),
	}
	if entry.HasExternalLink() {
		view.ExternalLink = entry.ExternalLink
		view.ExternalLinkLabel = models.GetOptional(entry.ExternalLinkLabel, lang)
	}
	return view
}
