package tracker

import "math"

// Tolerance is the dead zone, in pixels, for the scroll boundary flags.
// It keeps the carousel arrows from flickering when the container rests a
// fraction of a pixel away from either end.
const Tolerance = 5.0

// NoActive is the ActiveIndex of an empty item list
const NoActive = -1

// Curve shapes how visual weights fall off with distance from the center.
// Distances are normalized by half the viewport size, so 1 means "at the
// viewport edge".
type Curve struct {
	RotationSlope float64 `json:"rotationSlope"`
	ScaleSlope    float64 `json:"scaleSlope"`
	MinScale      float64 `json:"minScale"`
	OpacitySlope  float64 `json:"opacitySlope"`
	MinOpacity    float64 `json:"minOpacity"`
}

// DefaultCurve matches the gallery's look: cards shrink to 85% and fade to
// 40% as they move away from the middle.
var DefaultCurve = Curve{
	RotationSlope: 1,
	ScaleSlope:    0.15,
	MinScale:      0.85,
	OpacitySlope:  0.6,
	MinOpacity:    0.4,
}

// Weight is the per-item presentation signal. Rotation, Scale and Opacity
// are all 1 for a perfectly centered item and never increase with distance.
// Rotation has no floor; the presenter maps (1 - Rotation) to a tilt angle
// in the direction of Distance.
type Weight struct {
	Distance float64 `json:"distance"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
	Opacity  float64 `json:"opacity"`
}

// State is the result of one recompute
type State struct {
	ActiveIndex      int      `json:"activeIndex"`
	Weights          []Weight `json:"weights"`
	CanScrollBack    bool     `json:"canScrollBack"`
	CanScrollForward bool     `json:"canScrollForward"`
}

// HasActive reports whether any item is active
func (s State) HasActive() bool {
	return s.ActiveIndex != NoActive
}

// Weigh evaluates the curve for a signed distance from the center
func (c Curve) Weigh(distance, halfViewport float64) Weight {
	if halfViewport <= 0 {
		halfViewport = 1
	}
	n := math.Abs(distance) / halfViewport

	return Weight{
		Distance: distance,
		Rotation: 1 - n*c.RotationSlope,
		Scale:    math.Min(1, math.Max(c.MinScale, 1-n*c.ScaleSlope)),
		Opacity:  math.Min(1, math.Max(c.MinOpacity, 1-n*c.OpacitySlope)),
	}
}

// Recompute derives the active index, weights and boundary flags for items
// inside v.
func Recompute(v Viewport, items []Span, curve Curve) State {
	state := State{
		ActiveIndex:      NoActive,
		Weights:          make([]Weight, len(items)),
		CanScrollBack:    v.Offset > Tolerance,
		CanScrollForward: v.Offset < v.MaxOffset()-Tolerance,
	}

	center := v.Center()
	best := math.Inf(1)
	for i, item := range items {
		distance := item.Center() - center
		state.Weights[i] = curve.Weigh(distance, v.Size/2)

		// strict comparison keeps the lowest index on ties
		if abs := math.Abs(distance); abs < best {
			best = abs
			state.ActiveIndex = i
		}
	}

	return state
}

// ScrollTarget returns the offset that centers items[index], clamped to the
// scrollable range. ok is false for an out-of-range index. In an unpadded
// layout the clamp keeps the first and last items off center.
func ScrollTarget(v Viewport, items []Span, index int) (offset float64, ok bool) {
	if index < 0 || index >= len(items) {
		return v.Offset, false
	}
	return v.ClampOffset(items[index].Center() - v.Size/2), true
}
