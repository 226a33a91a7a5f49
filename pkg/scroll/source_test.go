package scroll

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoints/pkg/dom"
)

func pageRoot(width, height, extentW, extentH float64) *dom.Node {
	root := dom.NewElement("html")
	root.Box = dom.Rect{Width: width, Height: height}
	root.ScrollWidth = extentW
	root.ScrollHeight = extentH
	return root
}

func TestViewportScrollToNotifies(t *testing.T) {
	v := NewViewport(pageRoot(800, 600, 800, 3000))

	var got []Point
	cancel := v.Subscribe(func(p Point) { got = append(got, p) })

	v.ScrollTo(0, 950)
	v.ScrollBy(0, -100)
	require.Len(t, got, 2)
	assert.Equal(t, Point{Y: 950}, got[0])
	assert.Equal(t, Point{Y: 850}, got[1])

	cancel()
	cancel()
	v.ScrollTo(0, 10)
	assert.Len(t, got, 2, "cancelled subscriber must not be called")
	assert.Equal(t, 0, v.Subscribers())
}

func TestViewportClampsToExtent(t *testing.T) {
	v := NewViewport(pageRoot(800, 600, 1000, 3000))

	v.ScrollTo(5000, 5000)
	assert.Equal(t, Point{X: 200, Y: 2400}, v.Offsets())

	v.ScrollTo(-10, -10)
	assert.Equal(t, Point{}, v.Offsets())
}

func TestViewportUnknownExtentIsOpen(t *testing.T) {
	v := NewViewport(dom.NewElement("html"))
	v.ScrollTo(1350, 901)
	assert.Equal(t, Point{X: 1350, Y: 901}, v.Offsets())
}

// fakeWindow is a host window with its own scroll position.
type fakeWindow struct {
	x, y      float64
	hasOffset bool
}

func (w *fakeWindow) PageOffset() (float64, float64, bool) { return w.x, w.y, w.hasOffset }

func (w *fakeWindow) ScrollTo(x, y float64) { w.x, w.y = x, y }

func TestViewportWindowFallback(t *testing.T) {
	root := pageRoot(800, 600, 800, 3000)
	root.ScrollTop = 42
	v := NewViewport(root)

	win := &fakeWindow{y: 700, hasOffset: true}
	v.SetWindow(win)
	assert.Equal(t, 700.0, v.Offsets().Y)

	win.hasOffset = false
	assert.Equal(t, 42.0, v.Offsets().Y, "falls back to document root metrics")
}

func TestViewportScrollsWindow(t *testing.T) {
	root := pageRoot(800, 600, 800, 3000)
	v := NewViewport(root)
	win := &fakeWindow{hasOffset: true}
	v.SetWindow(win)

	var got []Point
	v.Subscribe(func(p Point) { got = append(got, p) })

	v.ScrollTo(0, 950)
	v.ScrollBy(0, 10000)
	assert.Equal(t, []Point{{Y: 950}, {Y: 2400}}, got)
	assert.Equal(t, 2400.0, win.y)
	assert.Equal(t, 2400.0, root.ScrollTop)
}

func TestViewportOverFyneWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	rect := canvas.NewRectangle(nil)
	rect.SetMinSize(fyne.NewSize(800, 3000))
	s := container.NewScroll(rect)
	s.Resize(fyne.NewSize(800, 600))
	src := NewFyneSource(s)

	var fromWidget []Point
	src.Subscribe(func(p Point) { fromWidget = append(fromWidget, p) })

	v := NewViewport(pageRoot(800, 600, 800, 3000))
	v.SetWindow(src)
	v.ScrollTo(0, 950)

	assert.Equal(t, Point{Y: 950}, v.Offsets())
	assert.Equal(t, []Point{{Y: 950}}, fromWidget)
}

func TestContainerScroll(t *testing.T) {
	el := dom.NewElement("div")
	el.Box = dom.Rect{X: 0, Y: 100, Width: 400, Height: 300}
	el.ScrollWidth = 3000
	el.ScrollHeight = 300
	c := NewContainer(el)
	assert.Same(t, el, c.Element())

	var last Point
	c.Subscribe(func(p Point) { last = p })
	c.ScrollTo(1350, 50)
	assert.Equal(t, Point{X: 1350}, last, "vertical offset clamped to zero overflow")
	assert.Equal(t, 1350.0, el.ScrollLeft)

	c.ScrollBy(-50, 0)
	assert.Equal(t, 1300.0, c.Offsets().X)
}

func TestCancelDuringDispatch(t *testing.T) {
	v := NewViewport(pageRoot(800, 600, 800, 3000))

	var second int
	var cancelSecond func()
	v.Subscribe(func(Point) { cancelSecond() })
	cancelSecond = v.Subscribe(func(Point) { second++ })

	v.ScrollTo(0, 100)
	assert.Equal(t, 0, second, "subscriber cancelled earlier in the same dispatch is skipped")
	assert.Equal(t, 1, v.Subscribers())
}

func TestSubscribeDuringDispatch(t *testing.T) {
	v := NewViewport(pageRoot(800, 600, 800, 3000))

	var late int
	v.Subscribe(func(Point) {
		v.Subscribe(func(Point) { late++ })
	})
	v.ScrollTo(0, 100)
	assert.Equal(t, 0, late, "subscribers added mid-dispatch wait for the next event")
	v.ScrollTo(0, 200)
	assert.Equal(t, 1, late)
}

func TestFyneSourceChainsOnScrolled(t *testing.T) {
	rect := canvas.NewRectangle(nil)
	rect.SetMinSize(fyne.NewSize(2000, 4000))
	s := container.NewScroll(rect)

	var prevCalls int
	s.OnScrolled = func(fyne.Position) { prevCalls++ }

	src := NewFyneSource(s)
	var got []Point
	src.Subscribe(func(p Point) { got = append(got, p) })

	s.Offset = fyne.NewPos(0, 950)
	s.OnScrolled(s.Offset)

	require.Len(t, got, 1)
	assert.Equal(t, Point{Y: 950}, got[0])
	assert.Equal(t, 1, prevCalls)
	assert.Equal(t, Point{Y: 950}, src.Offsets())

	src.Release()
	s.OnScrolled(s.Offset)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, prevCalls)
}

func TestFyneSourceScrollTo(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	rect := canvas.NewRectangle(nil)
	rect.SetMinSize(fyne.NewSize(200, 3000))
	s := container.NewScroll(rect)
	s.Resize(fyne.NewSize(200, 600))

	src := NewFyneSource(s)
	var got []Point
	src.Subscribe(func(p Point) { got = append(got, p) })

	src.ScrollTo(0, 950)
	assert.Equal(t, Point{Y: 950}, src.Offsets())
	src.ScrollTo(0, 10000)
	assert.Equal(t, Point{Y: 2400}, src.Offsets())
	require.NotEmpty(t, got)
	assert.Equal(t, Point{Y: 2400}, got[len(got)-1])
}
