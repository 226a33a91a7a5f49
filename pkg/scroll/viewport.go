package scroll

import "waypoints/pkg/dom"

// Window is the host's page-level scroll state. PageOffset reports ok=false
// when the host has no direct scroll-offset property, in which case the
// viewport reads the document root's scroll metrics instead. ScrollTo
// receives positions already clamped to the page extent.
type Window interface {
	PageOffset() (x, y float64, ok bool)
	ScrollTo(x, y float64)
}

// Viewport is the page-level scroll source.
type Viewport struct {
	root *dom.Node
	win  Window
	b    broadcaster
}

// NewViewport creates a viewport over a document root element. The root's
// Box is the visible area and ScrollWidth/ScrollHeight the page extent, as
// written by the layout pass.
func NewViewport(root *dom.Node) *Viewport {
	return &Viewport{root: root}
}

// SetWindow installs a host window as the authority for the page offset.
// Viewport scrolling is forwarded to it.
func (v *Viewport) SetWindow(w Window) {
	v.win = w
}

func (v *Viewport) Offsets() Point {
	if v.win != nil {
		if x, y, ok := v.win.PageOffset(); ok {
			return Point{X: x, Y: y}
		}
	}
	if v.root == nil {
		return Point{}
	}
	return Point{X: v.root.ScrollLeft, Y: v.root.ScrollTop}
}

func (v *Viewport) Subscribe(fn func(Point)) func() {
	return v.b.subscribe(fn)
}

// ScrollTo moves the document root's scroll metrics and the window, if
// any, clamped to the page extent, and notifies subscribers.
func (v *Viewport) ScrollTo(x, y float64) {
	if v.root != nil {
		x = clamp(x, v.root.ScrollWidth, v.root.Box.Width)
		y = clamp(y, v.root.ScrollHeight, v.root.Box.Height)
		v.root.ScrollLeft, v.root.ScrollTop = x, y
	} else {
		x, y = clamp(x, 0, 0), clamp(y, 0, 0)
	}
	if v.win != nil {
		v.win.ScrollTo(x, y)
	}
	v.Notify()
}

// ScrollBy is ScrollTo relative to the current position.
func (v *Viewport) ScrollBy(dx, dy float64) {
	p := v.Offsets()
	v.ScrollTo(p.X+dx, p.Y+dy)
}

// Notify delivers the current position to subscribers. Hosts that move
// the window themselves call this after each change.
func (v *Viewport) Notify() {
	v.b.notify(v.Offsets())
}

// Subscribers reports the number of live subscriptions.
func (v *Viewport) Subscribers() int {
	return v.b.Len()
}
