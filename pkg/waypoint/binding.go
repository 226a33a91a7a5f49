package waypoint

import (
	"errors"
	"log/slog"

	"waypoints/pkg/dom"
	"waypoints/pkg/scroll"
)

var (
	ErrNoSource  = errors.New("waypoint: no scroll source")
	ErrNoElement = errors.New("waypoint: no element")
)

type settings struct {
	logger  *slog.Logger
	onError func(error)
	observe func(Event)
	measure func(el *dom.Node, src scroll.Source) Geometry
}

// Option customizes a Binding or Manager.
type Option func(*settings)

// WithLogger sets the logger used for crossing traces and callback
// failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithErrorHandler receives callback failures instead of the logger.
func WithErrorHandler(fn func(error)) Option {
	return func(s *settings) { s.onError = fn }
}

// WithObserver is told about every crossing once the element's callbacks
// and class change are done.
func WithObserver(fn func(Event)) Option {
	return func(s *settings) { s.observe = fn }
}

// WithMeasure replaces the geometry lookup.
func WithMeasure(fn func(el *dom.Node, src scroll.Source) Geometry) Option {
	return func(s *settings) { s.measure = fn }
}

func newSettings(opts []Option) settings {
	s := settings{logger: slog.Default(), measure: LayoutGeometry}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// LayoutGeometry reads an element's laid-out position, relative to the
// source element for anchored sources and to the document otherwise.
func LayoutGeometry(el *dom.Node, src scroll.Source) Geometry {
	var anchor *dom.Node
	if a, ok := src.(scroll.Anchored); ok {
		anchor = a.Element()
	}
	top, left := el.OffsetWithin(anchor)
	return Geometry{Top: top, Left: left}
}

// Binding attaches a Detector to an element and a scroll source. Close it
// when the element goes away.
type Binding struct {
	el     *dom.Node
	src    scroll.Source
	det    *Detector
	cancel func()
}

// Bind resolves arg (see ResolveArg) and subscribes a detector for el to
// src. Configuration errors are returned before anything is subscribed.
func Bind(el *dom.Node, src scroll.Source, arg any, opts ...Option) (*Binding, error) {
	if el == nil {
		return nil, ErrNoElement
	}
	if src == nil {
		return nil, ErrNoSource
	}
	cfg, err := ResolveArg(arg)
	if err != nil {
		return nil, err
	}
	s := newSettings(opts)

	det := NewDetector(el, cfg, func() Geometry { return s.measure(el, src) })
	det.logger = s.logger
	det.onError = s.onError
	det.observe = s.observe

	b := &Binding{el: el, src: src, det: det}
	b.cancel = src.Subscribe(det.Update)
	return b, nil
}

func (b *Binding) Element() *dom.Node { return b.el }

func (b *Binding) Source() scroll.Source { return b.src }

// Detector exposes the crossing state.
func (b *Binding) Detector() *Detector { return b.det }

// Check evaluates the source's current position without waiting for a
// notification.
func (b *Binding) Check() {
	if b.cancel == nil {
		return
	}
	b.det.Update(b.src.Offsets())
}

// Close releases the scroll subscription. It is safe to call more than
// once.
func (b *Binding) Close() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// Closed reports whether Close has been called.
func (b *Binding) Closed() bool { return b.cancel == nil }
