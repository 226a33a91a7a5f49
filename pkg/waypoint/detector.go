package waypoint

import (
	"fmt"
	"log/slog"

	"waypoints/pkg/dom"
	"waypoints/pkg/scroll"
)

// CallbackError reports a callback that panicked during a crossing.
type CallbackError struct {
	Element   *dom.Node
	Slot      string // "enter", "exit" or "both"
	Direction Direction
	Value     any
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("waypoint %s callback (%s) on %s: %v", e.Slot, e.Direction, describe(e.Element), e.Value)
}

// Unwrap exposes the panic value when it was an error, so script
// exceptions can be inspected with errors.As.
func (e *CallbackError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Event describes one crossing, after its callbacks have run.
type Event struct {
	Element   *dom.Node
	Axis      Axis
	Direction Direction
	Offset    float64
	Threshold float64
}

// Detector is the per-element crossing state machine. It is not safe for
// concurrent use; sources deliver notifications on a single goroutine.
type Detector struct {
	el      *dom.Node
	cfg     Config
	measure func() Geometry
	onError func(error)
	observe func(Event)
	logger  *slog.Logger

	above      [2]bool
	thresholds Thresholds
	fired      bool
}

// NewDetector creates a detector in the initial state: above the
// waypoint on both axes.
func NewDetector(el *dom.Node, cfg Config, measure func() Geometry) *Detector {
	return &Detector{
		el:      el,
		cfg:     cfg,
		measure: measure,
		logger:  slog.Default(),
		above:   [2]bool{true, true},
	}
}

func (d *Detector) Config() Config { return d.cfg }

// Above reports whether axis has not crossed its waypoint.
func (d *Detector) Above(axis Axis) bool { return d.above[axis] }

// Thresholds returns the thresholds used by the most recent Update.
func (d *Detector) Thresholds() Thresholds { return d.thresholds }

// Fired reports whether any crossing has happened yet.
func (d *Detector) Fired() bool { return d.fired }

// Update evaluates a scroll position, vertical axis first.
func (d *Detector) Update(p scroll.Point) {
	if d.cfg.UpdateOffset || !d.fired {
		d.thresholds = Resolve(d.measure(), d.cfg.Offsets)
	}
	if d.cfg.tracks(Vertical) {
		d.step(Vertical, p.Y)
	}
	if d.cfg.tracks(Horizontal) {
		d.step(Horizontal, p.X)
	}
}

func (d *Detector) step(axis Axis, current float64) {
	threshold := d.thresholds.get(axis)
	switch {
	case d.above[axis] && current > threshold:
		d.above[axis] = false
		d.fired = true
		d.transition(axis, forward(axis), current, threshold, "enter", d.cfg.Enter)
		if d.cfg.Class != "" {
			d.el.AddClass(d.cfg.Class)
		}
		d.notify(axis, forward(axis), current, threshold)
	case !d.above[axis] && current < threshold:
		d.above[axis] = true
		d.fired = true
		d.transition(axis, backward(axis), current, threshold, "exit", d.cfg.Exit)
		if d.cfg.Class != "" {
			d.el.RemoveClass(d.cfg.Class)
		}
		d.notify(axis, backward(axis), current, threshold)
	}
}

func (d *Detector) transition(axis Axis, dir Direction, current, threshold float64, slot string, cb Callback) {
	d.logger.Debug("waypoint crossed",
		"element", describe(d.el),
		"axis", axis.String(),
		"direction", string(dir),
		"offset", current,
		"threshold", threshold)
	d.call(slot, cb, dir)
	d.call("both", d.cfg.Both, dir)
}

func (d *Detector) notify(axis Axis, dir Direction, current, threshold float64) {
	if d.observe != nil {
		d.observe(Event{Element: d.el, Axis: axis, Direction: dir, Offset: current, Threshold: threshold})
	}
}

func (d *Detector) call(slot string, cb Callback, dir Direction) {
	if cb == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err := &CallbackError{Element: d.el, Slot: slot, Direction: dir, Value: r}
			if d.onError != nil {
				d.onError(err)
				return
			}
			d.logger.Warn("waypoint callback failed", "error", err)
		}
	}()
	cb(dir, d.el)
}

// describe renders an element as tag#id for log output.
func describe(el *dom.Node) string {
	if el == nil {
		return "<nil>"
	}
	if id := el.ID(); id != "" {
		return el.TagName + "#" + id
	}
	return el.TagName
}
