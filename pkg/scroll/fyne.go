package scroll

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// FyneSource follows a fyne scroll container. Any OnScrolled handler
// already installed on the widget keeps running after ours.
type FyneSource struct {
	scroll *container.Scroll
	prev   func(fyne.Position)
	b      broadcaster
}

func NewFyneSource(s *container.Scroll) *FyneSource {
	f := &FyneSource{scroll: s, prev: s.OnScrolled}
	s.OnScrolled = f.onScrolled
	return f
}

func (f *FyneSource) onScrolled(pos fyne.Position) {
	f.b.notify(Point{X: float64(pos.X), Y: float64(pos.Y)})
	if f.prev != nil {
		f.prev(pos)
	}
}

func (f *FyneSource) Offsets() Point {
	return Point{X: float64(f.scroll.Offset.X), Y: float64(f.scroll.Offset.Y)}
}

// PageOffset lets the widget act as a Viewport's Window.
func (f *FyneSource) PageOffset() (x, y float64, ok bool) {
	p := f.Offsets()
	return p.X, p.Y, true
}

func (f *FyneSource) Subscribe(fn func(Point)) func() {
	return f.b.subscribe(fn)
}

// ScrollTo moves the widget's offset, clamped to its content. fyne invokes
// OnScrolled only for user-driven scrolling, so subscribers are notified
// here directly.
func (f *FyneSource) ScrollTo(x, y float64) {
	var content, visible fyne.Size
	if f.scroll.Content != nil {
		content = f.scroll.Content.MinSize()
	}
	visible = f.scroll.Size()
	f.scroll.Offset = fyne.NewPos(
		float32(clamp(x, float64(content.Width), float64(visible.Width))),
		float32(clamp(y, float64(content.Height), float64(visible.Height))))
	f.scroll.Refresh()
	f.b.notify(f.Offsets())
}

// Release restores the widget's original OnScrolled handler.
func (f *FyneSource) Release() {
	f.scroll.OnScrolled = f.prev
}
