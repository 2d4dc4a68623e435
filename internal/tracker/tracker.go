package tracker

import (
	"context"
	"math"
	"sync"
	"time"
)

// FrameInterval is the default frame clock period (60 fps)
const FrameInterval = time.Second / 60

// Scroller animates a container to a new offset
type Scroller interface {
	ScrollTo(offset float64)
}

// ScrollerFunc adapts a function to Scroller
type ScrollerFunc func(offset float64)

// ScrollTo calls f(offset)
func (f ScrollerFunc) ScrollTo(offset float64) { f(offset) }

// Tracker keeps State current for one scroll container. Scroll and resize
// notifications only mark the tracker dirty; the recompute happens at most
// once per frame.
//
// Subscribers are called one state at a time, in recompute order, and never
// receive a state older than one already delivered. They must not call
// Mount, SetItems or Frame synchronously.
type Tracker struct {
	mu       sync.Mutex
	curve    Curve
	scroller Scroller
	viewport Viewport
	items    []Span
	state    State
	dirty    bool
	seq      uint64 // bumped by every recompute

	subs   map[uint64]func(State)
	nextID uint64

	publishMu sync.Mutex
	delivered uint64 // seq of the last published state
}

// New creates a Tracker. scroller may be nil, in which case ScrollToIndex
// only reports whether the index is valid.
func New(scroller Scroller, curve Curve) *Tracker {
	return &Tracker{
		curve:    curve,
		scroller: scroller,
		state:    State{ActiveIndex: NoActive, Weights: []Weight{}},
		subs:     make(map[uint64]func(State)),
	}
}

// Mount runs the first recompute after initial layout
func (t *Tracker) Mount(v Viewport, items []Span) State {
	t.mu.Lock()
	t.viewport = v
	t.items = append([]Span(nil), items...)
	state, seq := t.recomputeLocked()
	t.mu.Unlock()

	t.publish(state, seq)
	return state
}

// SetItems commits a new item list, e.g. after a filter change. The state
// is recomputed against the new list before SetItems returns, so no later
// frame can observe an index into the old list.
func (t *Tracker) SetItems(items []Span) State {
	t.mu.Lock()
	t.items = append([]Span(nil), items...)
	state, seq := t.recomputeLocked()
	t.mu.Unlock()

	t.publish(state, seq)
	return state
}

// Notify records a new viewport from a scroll or resize event
func (t *Tracker) Notify(v Viewport) {
	t.mu.Lock()
	t.viewport = v
	t.dirty = true
	t.mu.Unlock()
}

// NotifyScroll records a scroll event that only moved the offset
func (t *Tracker) NotifyScroll(offset float64) {
	t.mu.Lock()
	t.viewport.Offset = offset
	t.dirty = true
	t.mu.Unlock()
}

// NotifyResize records a resize of the container or its content
func (t *Tracker) NotifyResize(size, contentSize float64) {
	t.mu.Lock()
	t.viewport.Size = size
	t.viewport.ContentSize = contentSize
	t.dirty = true
	t.mu.Unlock()
}

// Frame recomputes if anything changed since the previous frame and reports
// whether it did.
func (t *Tracker) Frame() bool {
	t.mu.Lock()
	if !t.dirty {
		t.mu.Unlock()
		return false
	}
	state, seq := t.recomputeLocked()
	t.mu.Unlock()

	t.publish(state, seq)
	return true
}

// Run calls Frame on every tick of frames until ctx is done. A nil frames
// channel uses a FrameInterval ticker.
func (t *Tracker) Run(ctx context.Context, frames <-chan time.Time) {
	if frames == nil {
		ticker := time.NewTicker(FrameInterval)
		defer ticker.Stop()
		frames = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-frames:
			t.Frame()
		}
	}
}

// State returns the latest computed state
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyState(t.state)
}

// Subscribe registers fn to receive every recomputed State. The returned
// function unregisters it and is safe to call more than once.
func (t *Tracker) Subscribe(fn func(State)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

// Unmount drops all subscribers and pending work
func (t *Tracker) Unmount() {
	t.mu.Lock()
	t.subs = make(map[uint64]func(State))
	t.dirty = false
	t.mu.Unlock()
}

// ScrollToIndex asks the scroller to center items[index]. Out-of-range
// indexes are ignored and report false. Asking for the item that is already
// centered does nothing. End items only become active afterwards when the
// layout is padded by half a viewport; otherwise the clamped offset may
// leave a neighbour closest to the center.
func (t *Tracker) ScrollToIndex(index int) bool {
	t.mu.Lock()
	target, ok := ScrollTarget(t.viewport, t.items, index)
	current := t.viewport.Offset
	scroller := t.scroller
	t.mu.Unlock()

	if !ok {
		return false
	}
	if scroller != nil && math.Abs(target-current) >= 0.5 {
		scroller.ScrollTo(target)
	}
	return true
}

func (t *Tracker) recomputeLocked() (State, uint64) {
	t.state = Recompute(t.viewport, t.items, t.curve)
	t.dirty = false
	t.seq++
	return copyState(t.state), t.seq
}

// publish delivers state unless a newer recompute was already delivered
func (t *Tracker) publish(state State, seq uint64) {
	t.publishMu.Lock()
	defer t.publishMu.Unlock()
	if seq <= t.delivered {
		return
	}
	t.delivered = seq

	t.mu.Lock()
	subs := make([]func(State), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(copyState(state))
	}
}

func copyState(s State) State {
	s.Weights = append([]Weight(nil), s.Weights...)
	if s.Weights == nil {
		s.Weights = []Weight{}
	}
	return s
}
