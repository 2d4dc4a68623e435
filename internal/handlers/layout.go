package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ruo.dev/internal/tracker"
)

// maxLayoutItems bounds the item list of a layout request
const maxLayoutItems = 1000

// EvenLayout describes equally sized items for clients that only know the
// card dimensions.
type EvenLayout struct {
	Count int     `json:"count"`
	Lead  float64 `json:"lead"`
	Size  float64 `json:"size"`
	Gap   float64 `json:"gap"`
}

// LayoutRequest is the body of the layout endpoints
type LayoutRequest struct {
	Axis     tracker.Axis     `json:"axis"`
	Viewport tracker.Viewport `json:"viewport"`
	Items    []tracker.Span   `json:"items,omitempty"`
	Even     *EvenLayout      `json:"even,omitempty"`
	Curve    *tracker.Curve   `json:"curve,omitempty"`
	Index    int              `json:"index"`
}

// LayoutResponse is the tracker state for a LayoutRequest
type LayoutResponse struct {
	Axis  tracker.Axis  `json:"axis"`
	State tracker.State `json:"state"`
}

// ScrollResponse is the target of a scroll-to request
type ScrollResponse struct {
	Index  int     `json:"index"`
	Offset float64 `json:"offset"`
	Moved  bool    `json:"moved"`
}

// LayoutHandler exposes the scroll-position tracker
type LayoutHandler struct{}

// NewLayoutHandler creates a new LayoutHandler
func NewLayoutHandler() *LayoutHandler {
	return &LayoutHandler{}
}

// Recompute handles POST /api/layout
func (h *LayoutHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	req, items, ok := decodeLayout(w, r)
	if !ok {
		return
	}

	curve := tracker.DefaultCurve
	if req.Curve != nil {
		curve = *req.Curve
	}

	respondJSON(w, http.StatusOK, LayoutResponse{
		Axis:  req.Axis,
		State: tracker.Recompute(req.Viewport, items, curve),
	})
}

// ScrollTo handles POST /api/layout/scroll-to. An out-of-range index leaves
// the offset unchanged.
func (h *LayoutHandler) ScrollTo(w http.ResponseWriter, r *http.Request) {
	req, items, ok := decodeLayout(w, r)
	if !ok {
		return
	}

	offset, inRange := tracker.ScrollTarget(req.Viewport, items, req.Index)
	respondJSON(w, http.StatusOK, ScrollResponse{
		Index:  req.Index,
		Offset: offset,
		Moved:  inRange && offset != req.Viewport.Offset,
	})
}

func decodeLayout(w http.ResponseWriter, r *http.Request) (LayoutRequest, []tracker.Span, bool) {
	var req LayoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return req, nil, false
	}

	if req.Viewport.Size <= 0 {
		respondError(w, http.StatusBadRequest, "Viewport size must be positive")
		return req, nil, false
	}

	items := req.Items
	if req.Even != nil {
		count := clamp(req.Even.Count, 0, maxLayoutItems)
		items = tracker.EvenSpans(count, req.Even.Lead, req.Even.Size, req.Even.Gap)
	}
	if len(items) > maxLayoutItems {
		respondError(w, http.StatusBadRequest, "Too many items")
		return req, nil, false
	}
	// without a content size the content ends at the last item
	if req.Viewport.ContentSize == 0 && len(items) > 0 {
		last := items[len(items)-1]
		req.Viewport.ContentSize = last.Start + last.Size
	}

	return req, items, true
}

// parseIndexParam parses a non-negative integer URL parameter
func parseIndexParam(r *http.Request, name string) (int, bool) {
	val, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// clamp limits a value to a range
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
