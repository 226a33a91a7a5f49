package waypoint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoints/pkg/dom"
	"waypoints/pkg/scroll"
)

type call struct {
	dir Direction
	el  *dom.Node
}

type recorder struct {
	calls []call
}

func (r *recorder) fn(dir Direction, el *dom.Node) {
	r.calls = append(r.calls, call{dir, el})
}

func (r *recorder) dirs() []Direction {
	out := make([]Direction, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.dir
	}
	return out
}

// page returns a viewport with no scroll limit and an element laid out at
// (left, top).
func page(top, left float64) (*scroll.Viewport, *dom.Node) {
	doc := dom.NewDocument()
	el := dom.NewElement("div", "id", "target")
	el.Box = dom.Rect{X: left, Y: top, Width: 100, Height: 100}
	doc.Root.AddChild(el)
	return scroll.NewViewport(doc.Root), el
}

func TestScenarioADefaultToggler(t *testing.T) {
	vp, el := page(900, 0)
	b, err := Bind(el, vp, "")
	require.NoError(t, err)
	defer b.Close()

	vp.ScrollTo(0, 901)
	assert.True(t, el.HasClass(DefaultClass))
	assert.False(t, b.Detector().Above(Vertical))

	vp.ScrollTo(0, 1000)
	assert.True(t, el.HasClass(DefaultClass))
	vp.ScrollTo(0, 800)
	assert.False(t, el.HasClass(DefaultClass))
	assert.True(t, b.Detector().Above(Vertical))
}

func TestScenarioBEnterOnce(t *testing.T) {
	vp, el := page(900, 0)
	var r recorder
	_, err := Bind(el, vp, Options{Enter: r.fn})
	require.NoError(t, err)

	vp.ScrollTo(0, 950)
	require.Len(t, r.calls, 1)
	assert.Equal(t, Down, r.calls[0].dir)
	assert.Same(t, el, r.calls[0].el)

	vp.ScrollTo(0, 2000)
	vp.ScrollTo(0, 2000)
	assert.Len(t, r.calls, 1, "already below; no second entry")
}

func TestScenarioCExitAfterEnter(t *testing.T) {
	vp, el := page(900, 0)
	var r recorder
	_, err := Bind(el, vp, Options{Exit: r.fn})
	require.NoError(t, err)

	vp.ScrollTo(0, 850)
	assert.Empty(t, r.calls, "exit never fires before the first downward crossing")

	vp.ScrollTo(0, 950)
	assert.Empty(t, r.calls)
	vp.ScrollTo(0, 850)
	assert.Equal(t, []Direction{Up}, r.dirs())
}

func TestScenarioDHorizontal(t *testing.T) {
	vp, el := page(0, 1300)
	var r recorder
	_, err := Bind(el, vp, Options{Enter: r.fn})
	require.NoError(t, err)

	vp.ScrollTo(1350, 0)
	assert.Equal(t, []Direction{Right}, r.dirs())

	vp.ScrollTo(1200, 0)
	assert.Equal(t, []Direction{Right}, r.dirs(), "exit slot is empty")
	assert.False(t, el.HasClass(DefaultClass))
}

func TestScenarioESignedOffsets(t *testing.T) {
	tests := []struct {
		offset    string
		threshold float64
	}{
		{"+50", 950},
		{"-50", 850},
		{"50", 900},
		{"bogus", 900},
		{"+NaN", 900},
		{"+Inf", 900},
	}
	for _, tt := range tests {
		t.Run(tt.offset, func(t *testing.T) {
			vp, el := page(900, 0)
			var r recorder
			b, err := Bind(el, vp, Options{Both: r.fn, Offset: tt.offset, Horizontal: boolPtr(false)})
			require.NoError(t, err)

			vp.ScrollTo(0, tt.threshold)
			assert.Empty(t, r.calls, "equality never crosses")
			assert.Equal(t, tt.threshold, b.Detector().Thresholds().Vertical)

			vp.ScrollTo(0, tt.threshold+1)
			assert.Equal(t, []Direction{Down}, r.dirs())
		})
	}
}

func TestEqualityNeverTransitions(t *testing.T) {
	vp, el := page(900, 0)
	var r recorder
	_, err := Bind(el, vp, Options{Both: r.fn})
	require.NoError(t, err)

	vp.ScrollTo(0, 901)
	vp.ScrollTo(0, 900)
	assert.Equal(t, []Direction{Down}, r.dirs(), "returning to the threshold is not an exit")
	vp.ScrollTo(0, 899)
	assert.Equal(t, []Direction{Down, Up}, r.dirs())
}

func TestCallbackOrder(t *testing.T) {
	vp, el := page(900, 0)
	var order []string
	_, err := Bind(el, vp, Options{
		Enter: func(Direction, *dom.Node) {
			order = append(order, "enter")
			assert.False(t, el.HasClass("on"), "class is applied after callbacks")
		},
		Exit: func(Direction, *dom.Node) {
			order = append(order, "exit")
			assert.True(t, el.HasClass("on"), "class is removed after callbacks")
		},
		Both:     func(d Direction, _ *dom.Node) { order = append(order, "both:"+string(d)) },
		AddClass: "on",
	})
	require.NoError(t, err)

	vp.ScrollTo(0, 1000)
	assert.True(t, el.HasClass("on"))
	vp.ScrollTo(0, 0)
	assert.False(t, el.HasClass("on"))
	assert.Equal(t, []string{"enter", "both:down", "exit", "both:up"}, order)
}

func TestVerticalBeforeHorizontal(t *testing.T) {
	vp, el := page(900, 1300)
	var r recorder
	_, err := Bind(el, vp, Options{Both: r.fn})
	require.NoError(t, err)

	vp.ScrollTo(1400, 1000)
	assert.Equal(t, []Direction{Down, Right}, r.dirs())
	vp.ScrollTo(0, 0)
	assert.Equal(t, []Direction{Down, Right, Up, Left}, r.dirs())
}

func TestRoundTripRestoresState(t *testing.T) {
	vp, el := page(900, 0)
	el.SetAttribute("class", "card")
	b, err := Bind(el, vp, "sticky")
	require.NoError(t, err)

	vp.ScrollTo(0, 1000)
	assert.Equal(t, []string{"card", "sticky"}, el.Classes())
	vp.ScrollTo(0, 0)
	assert.Equal(t, []string{"card"}, el.Classes())
	assert.True(t, b.Detector().Above(Vertical))
	assert.True(t, b.Detector().Above(Horizontal))
}

func TestRemeasureUntilFirstCrossing(t *testing.T) {
	vp, el := page(900, 0)
	var r recorder
	b, err := Bind(el, vp, Options{Both: r.fn})
	require.NoError(t, err)

	// Content above the element is still loading.
	vp.ScrollTo(0, 500)
	el.Box.Y = 1200
	vp.ScrollTo(0, 1000)
	assert.Empty(t, r.calls, "threshold followed the element down")
	assert.Equal(t, 1200.0, b.Detector().Thresholds().Vertical)

	vp.ScrollTo(0, 1300)
	require.Len(t, r.calls, 1)

	// After the first crossing the threshold is cached.
	el.Box.Y = 5000
	vp.ScrollTo(0, 1250)
	assert.Equal(t, 1200.0, b.Detector().Thresholds().Vertical)
	assert.Len(t, r.calls, 1)
	vp.ScrollTo(0, 1100)
	assert.Equal(t, []Direction{Down, Up}, r.dirs())
}

func TestUpdateOffsetAlwaysRemeasures(t *testing.T) {
	vp, el := page(900, 0)
	b, err := Bind(el, vp, Options{UpdateOffset: boolPtr(true)})
	require.NoError(t, err)

	vp.ScrollTo(0, 1000)
	require.True(t, b.Detector().Fired())
	el.Box.Y = 3000
	vp.ScrollTo(0, 1000)
	assert.Equal(t, 3000.0, b.Detector().Thresholds().Vertical)
	assert.True(t, b.Detector().Above(Vertical), "element moved below the viewport offset")
}

func TestPanickingCallbackIsIsolated(t *testing.T) {
	vp, el := page(900, 1300)
	var errs []error
	var r recorder
	_, err := Bind(el, vp, Options{
		Enter: func(d Direction, _ *dom.Node) {
			if d == Down {
				panic(errors.New("boom"))
			}
			r.fn(d, el)
		},
		Both:     r.fn,
		AddClass: "on",
	}, WithErrorHandler(func(err error) { errs = append(errs, err) }))
	require.NoError(t, err)

	vp.ScrollTo(1400, 1000)
	assert.Equal(t, []Direction{Down, Right, Right}, r.dirs(), "both still ran and the horizontal axis was evaluated")
	assert.True(t, el.HasClass("on"))

	require.Len(t, errs, 1)
	var cbErr *CallbackError
	require.True(t, errors.As(errs[0], &cbErr))
	assert.Equal(t, "enter", cbErr.Slot)
	assert.Equal(t, Down, cbErr.Direction)
	assert.EqualError(t, errors.Unwrap(errs[0]), "boom")

	vp.ScrollTo(0, 0)
	assert.Equal(t, []Direction{Down, Right, Right, Up, Left}, r.dirs(), "later events still evaluated")
}

func TestCloseReleasesSubscription(t *testing.T) {
	vp, el := page(900, 0)
	var r recorder
	b, err := Bind(el, vp, Options{Both: r.fn})
	require.NoError(t, err)
	assert.Equal(t, 1, vp.Subscribers())

	b.Close()
	b.Close()
	assert.True(t, b.Closed())
	assert.Equal(t, 0, vp.Subscribers())
	vp.ScrollTo(0, 1000)
	b.Check()
	assert.Empty(t, r.calls)
}

func TestCheckEvaluatesCurrentPosition(t *testing.T) {
	vp, el := page(900, 0)
	vp.ScrollTo(0, 1000)

	b, err := Bind(el, vp, "")
	require.NoError(t, err)
	assert.False(t, el.HasClass(DefaultClass), "binding alone does not evaluate")
	b.Check()
	assert.True(t, el.HasClass(DefaultClass))
}

func TestBindErrors(t *testing.T) {
	vp, el := page(900, 0)

	_, err := Bind(el, nil, "")
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = Bind(nil, vp, "")
	assert.ErrorIs(t, err, ErrNoElement)
	assert.NotPanics(t, func() { vp.ScrollTo(0, 1000) })

	_, err = Bind(el, vp, nil)
	assert.ErrorIs(t, err, ErrMissingConfig)

	_, err = Bind(el, vp, 42i)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, 0, vp.Subscribers(), "failed bindings are not installed")
}

func TestObserverSeesCrossings(t *testing.T) {
	vp, el := page(900, 0)
	var events []Event
	_, err := Bind(el, vp, "on", WithObserver(func(ev Event) {
		assert.Equal(t, ev.Direction == Down, el.HasClass("on"), "observer runs after the class change")
		events = append(events, ev)
	}))
	require.NoError(t, err)

	vp.ScrollTo(0, 950)
	vp.ScrollTo(0, 100)
	require.Len(t, events, 2)
	assert.Equal(t, Event{Element: el, Axis: Vertical, Direction: Down, Offset: 950, Threshold: 900}, events[0])
	assert.Equal(t, Up, events[1].Direction)
}
