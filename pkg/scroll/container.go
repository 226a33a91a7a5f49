package scroll

import "waypoints/pkg/dom"

// Container is a scrollable element acting as its descendants' scroll
// source. Positions are relative to the element's content origin.
type Container struct {
	el *dom.Node
	b  broadcaster
}

// NewContainer wraps el. Its Box is the visible area and ScrollWidth and
// ScrollHeight the content extent.
func NewContainer(el *dom.Node) *Container {
	return &Container{el: el}
}

// Element is the scrolling element.
func (c *Container) Element() *dom.Node { return c.el }

func (c *Container) Offsets() Point {
	return Point{X: c.el.ScrollLeft, Y: c.el.ScrollTop}
}

func (c *Container) Subscribe(fn func(Point)) func() {
	return c.b.subscribe(fn)
}

// ScrollTo moves the element's content, clamped to its scroll extent, and
// notifies subscribers.
func (c *Container) ScrollTo(x, y float64) {
	c.el.ScrollLeft = clamp(x, c.el.ScrollWidth, c.el.Box.Width)
	c.el.ScrollTop = clamp(y, c.el.ScrollHeight, c.el.Box.Height)
	c.b.notify(c.Offsets())
}

// ScrollBy is ScrollTo relative to the current position.
func (c *Container) ScrollBy(dx, dy float64) {
	c.ScrollTo(c.el.ScrollLeft+dx, c.el.ScrollTop+dy)
}

// Subscribers reports the number of live subscriptions.
func (c *Container) Subscribers() int {
	return c.b.Len()
}
