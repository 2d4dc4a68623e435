// Package tracker follows which item of a scrollable carousel or timeline is
// closest to the middle of the viewport.
//
// All positions are measured along the scroll axis in content coordinates,
// i.e. an item at Start 0 is at the very beginning of the scrollable
// content regardless of the current scroll offset.
package tracker

import (
	"encoding/json"
	"fmt"
	"math"
)

// Axis is the direction a container scrolls in
type Axis int

const (
	Horizontal Axis = iota // project carousel
	Vertical               // career timeline
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MarshalJSON writes the axis name
func (a Axis) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON reads an axis name; an empty string means Horizontal
func (a *Axis) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "", "horizontal", "x":
		*a = Horizontal
	case "vertical", "y":
		*a = Vertical
	default:
		return fmt.Errorf("unknown axis %q", s)
	}
	return nil
}

// Span is an item's extent along the scroll axis
type Span struct {
	Start float64 `json:"start"`
	Size  float64 `json:"size"`
}

// Center returns the midpoint of the span
func (s Span) Center() float64 {
	return s.Start + s.Size/2
}

// Viewport is the visible window of a scroll container
type Viewport struct {
	Offset      float64 `json:"offset"`
	Size        float64 `json:"size"`
	ContentSize float64 `json:"contentSize"`
}

// Center returns the content coordinate at the middle of the viewport
func (v Viewport) Center() float64 {
	return v.Offset + v.Size/2
}

// MaxOffset is the largest offset the container can scroll to
func (v Viewport) MaxOffset() float64 {
	return math.Max(0, v.ContentSize-v.Size)
}

// ClampOffset limits an offset to the scrollable range
func (v Viewport) ClampOffset(offset float64) float64 {
	return math.Min(math.Max(offset, 0), v.MaxOffset())
}

// EvenSpans lays out n items of equal size separated by gap, starting at
// lead. Useful for callers that only know the item count and dimensions.
func EvenSpans(n int, lead, size, gap float64) []Span {
	spans := make([]Span, n)
	for i := range spans {
		spans[i] = Span{Start: lead + float64(i)*(size+gap), Size: size}
	}
	return spans
}
