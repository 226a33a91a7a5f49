// Package scroll abstracts over the places a scroll position can come
// from: the page viewport, a scrollable element, or a fyne scroll widget.
package scroll

import (
	"sync"

	"waypoints/pkg/dom"
)

// Point is a scroll position. X is the horizontal offset, Y the vertical.
type Point struct {
	X float64
	Y float64
}

// Source reports a scroll position and notifies subscribers when it
// changes. Notifications are delivered synchronously on the goroutine that
// caused the change.
type Source interface {
	Offsets() Point
	// Subscribe registers fn and returns a func that releases it. The
	// returned func is safe to call more than once.
	Subscribe(fn func(Point)) (cancel func())
}

// Anchored is implemented by sources whose coordinates are relative to an
// element's content box rather than to the document.
type Anchored interface {
	Element() *dom.Node
}

type subscriber struct {
	id int
	fn func(Point)
}

// broadcaster keeps subscribers in registration order. Dispatch works on a
// snapshot so subscribers may cancel themselves or others mid-dispatch.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
}

func (b *broadcaster) subscribe(fn func(Point)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *broadcaster) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *broadcaster) live(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

func (b *broadcaster) notify(p Point) {
	b.mu.Lock()
	snapshot := make([]subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		// Skip subscribers cancelled by an earlier one in this dispatch.
		if !b.live(s.id) {
			continue
		}
		s.fn(p)
	}
}

// Len reports the number of live subscriptions.
func (b *broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// clamp limits v to [0, extent-visible]. An unknown extent (<= 0) leaves
// the upper bound open.
func clamp(v, extent, visible float64) float64 {
	if v < 0 {
		return 0
	}
	if extent > 0 {
		limit := extent - visible
		if limit < 0 {
			limit = 0
		}
		if v > limit {
			return limit
		}
	}
	return v
}
