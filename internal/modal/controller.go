// Package modal holds the open/close state of the project overlays.
package modal

import (
	"reflect"
	"sync"
)

// Kind identifies one of the two overlays
type Kind int

const (
	Detail Kind = iota
	Architecture
)

func (k Kind) String() string {
	switch k {
	case Detail:
		return "detail"
	case Architecture:
		return "architecture"
	}
	return "unknown"
}

// EscapeKey is the key that dismisses the topmost overlay
const EscapeKey = "Escape"

// ScrollLocker suppresses page scrolling while any overlay is open
type ScrollLocker interface {
	LockScroll()
	UnlockScroll()
}

// Closer is implemented by payloads that hold resources, such as
// DiagramTabs. Close is called when the overlay is dismissed.
type Closer interface {
	Close()
}

type overlay struct {
	kind    Kind
	payload any
}

// Controller tracks which overlays are open, in stacking order
type Controller struct {
	mu     sync.Mutex
	stack  []overlay
	locker ScrollLocker
}

// NewController creates a Controller. locker may be nil.
func NewController(locker ScrollLocker) *Controller {
	return &Controller{locker: locker}
}

// Open shows kind with payload on top of the stack. Reopening an overlay
// replaces its payload and raises it.
func (c *Controller) Open(kind Kind, payload any) {
	c.mu.Lock()
	var replaced any
	wasLocked := len(c.stack) > 0
	for i, o := range c.stack {
		if o.kind == kind {
			replaced = o.payload
			c.stack = append(c.stack[:i], c.stack[i+1:]...)
			break
		}
	}
	c.stack = append(c.stack, overlay{kind: kind, payload: payload})
	c.mu.Unlock()

	if !samePayload(replaced, payload) {
		release(replaced)
	}
	if !wasLocked && c.locker != nil {
		c.locker.LockScroll()
	}
}

// Close hides kind and discards its payload. It reports whether the overlay
// was open.
func (c *Controller) Close(kind Kind) bool {
	c.mu.Lock()
	idx := -1
	for i, o := range c.stack {
		if o.kind == kind {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	payload := c.stack[idx].payload
	c.stack = append(c.stack[:idx], c.stack[idx+1:]...)
	nowEmpty := len(c.stack) == 0
	c.mu.Unlock()

	release(payload)
	if nowEmpty && c.locker != nil {
		c.locker.UnlockScroll()
	}
	return true
}

// CloseAll dismisses every overlay, topmost first
func (c *Controller) CloseAll() {
	for {
		kind, ok := c.Top()
		if !ok {
			return
		}
		c.Close(kind)
	}
}

// HandleKey reacts to a key press. Escape closes the most recently opened
// overlay. It reports whether anything was closed.
func (c *Controller) HandleKey(key string) bool {
	if key != EscapeKey {
		return false
	}
	kind, ok := c.Top()
	if !ok {
		return false
	}
	return c.Close(kind)
}

// HandleClick reacts to a click on kind's overlay. Clicks inside the
// content area never reach the backdrop handler.
func (c *Controller) HandleClick(kind Kind, insideContent bool) bool {
	if insideContent {
		return false
	}
	return c.Close(kind)
}

// Top returns the most recently opened overlay
func (c *Controller) Top() (Kind, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return 0, false
	}
	return c.stack[len(c.stack)-1].kind, true
}

// IsOpen reports whether kind is visible
func (c *Controller) IsOpen(kind Kind) bool {
	_, ok := c.Payload(kind)
	return ok
}

// Payload returns the payload kind was opened with
func (c *Controller) Payload(kind Kind) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.stack {
		if o.kind == kind {
			return o.payload, true
		}
	}
	return nil, false
}

// ScrollLocked reports whether background scrolling is suppressed
func (c *Controller) ScrollLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stack) > 0
}

func release(payload any) {
	if closer, ok := payload.(Closer); ok {
		closer.Close()
	}
}

// samePayload reports whether a and b are the same value. Payloads of
// uncomparable types are never considered the same.
func samePayload(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
