package waypoint

import (
	"fmt"
	"strings"

	"waypoints/pkg/dom"
	"waypoints/pkg/scroll"
)

const (
	// AttrWaypoint marks an element to be tracked. Its value is the
	// declaration handed to the ArgEvaluator.
	AttrWaypoint = "data-waypoint"
	// AttrContainer marks a scrollable ancestor whose own scrolling, not
	// the viewport's, drives the waypoints inside it.
	AttrContainer = "data-waypoint-container"
)

// ArgEvaluator turns a declaration attribute into a value ResolveArg
// accepts.
type ArgEvaluator interface {
	EvalArg(el *dom.Node, expr string) (any, error)
}

// LiteralArgs hands the raw attribute text to ResolveArg: "" toggles the
// default class, numbers and signed numbers are offsets, anything else is
// a class name.
type LiteralArgs struct{}

func (LiteralArgs) EvalArg(_ *dom.Node, expr string) (any, error) {
	return expr, nil
}

// Manager owns the bindings of one document.
type Manager struct {
	viewport   scroll.Source
	eval       ArgEvaluator
	opts       []Option
	settings   settings
	bindings   map[*dom.Node]*Binding
	order      []*dom.Node
	containers map[*dom.Node]*scroll.Container
}

func NewManager(viewport scroll.Source, eval ArgEvaluator, opts ...Option) *Manager {
	if eval == nil {
		eval = LiteralArgs{}
	}
	return &Manager{
		viewport:   viewport,
		eval:       eval,
		opts:       opts,
		settings:   newSettings(opts),
		bindings:   make(map[*dom.Node]*Binding),
		containers: make(map[*dom.Node]*scroll.Container),
	}
}

// BindDocument binds every element under root carrying AttrWaypoint. If any
// declaration fails, the bindings made by this call are released and the
// error names the offending element.
func (m *Manager) BindDocument(root *dom.Node) error {
	var added []*dom.Node
	for _, el := range root.ElementsWithAttribute(AttrWaypoint) {
		if _, ok := m.bindings[el]; ok {
			continue
		}
		expr, _ := el.GetAttribute(AttrWaypoint)
		arg, err := m.eval.EvalArg(el, expr)
		if err == nil {
			_, err = m.Bind(el, arg)
		}
		if err != nil {
			for _, n := range added {
				m.Unbind(n)
			}
			return fmt.Errorf("binding %s: %w", describe(el), err)
		}
		added = append(added, el)
	}
	m.settings.logger.Debug("waypoints bound", "count", len(added))
	return nil
}

// Bind attaches a waypoint to el, using the nearest container ancestor as
// its source. An existing binding for el is replaced.
func (m *Manager) Bind(el *dom.Node, arg any) (*Binding, error) {
	if el == nil {
		return nil, ErrNoElement
	}
	b, err := Bind(el, m.SourceFor(el), arg, m.opts...)
	if err != nil {
		return nil, err
	}
	if old, ok := m.bindings[el]; ok {
		old.Close()
	} else {
		m.order = append(m.order, el)
	}
	m.bindings[el] = b
	return b, nil
}

// SourceFor returns the scroll source driving el's waypoint.
func (m *Manager) SourceFor(el *dom.Node) scroll.Source {
	if c := el.Closest(AttrContainer); c != nil {
		return m.Container(c)
	}
	return m.viewport
}

// Container returns the shared source for a container element.
func (m *Manager) Container(el *dom.Node) *scroll.Container {
	c, ok := m.containers[el]
	if !ok {
		c = scroll.NewContainer(el)
		m.containers[el] = c
	}
	return c
}

// ContainerByID finds a container source by its element's id.
func (m *Manager) ContainerByID(id string) (*scroll.Container, bool) {
	for el, c := range m.containers {
		if el.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Binding returns el's binding, if any.
func (m *Manager) Binding(el *dom.Node) (*Binding, bool) {
	b, ok := m.bindings[el]
	return b, ok
}

// Bindings lists live bindings in the order they were made.
func (m *Manager) Bindings() []*Binding {
	out := make([]*Binding, 0, len(m.order))
	for _, el := range m.order {
		out = append(out, m.bindings[el])
	}
	return out
}

// Unbind releases el's binding. Reports whether there was one.
func (m *Manager) Unbind(el *dom.Node) bool {
	b, ok := m.bindings[el]
	if !ok {
		return false
	}
	b.Close()
	delete(m.bindings, el)
	for i, n := range m.order {
		if n == el {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Sweep releases bindings whose element is no longer under root and
// returns how many were released.
func (m *Manager) Sweep(root *dom.Node) int {
	var gone []*dom.Node
	for _, el := range m.order {
		if !root.Contains(el) {
			gone = append(gone, el)
		}
	}
	for _, el := range gone {
		m.Unbind(el)
	}
	for el := range m.containers {
		if !root.Contains(el) {
			delete(m.containers, el)
		}
	}
	if len(gone) > 0 {
		names := make([]string, len(gone))
		for i, el := range gone {
			names[i] = describe(el)
		}
		m.settings.logger.Debug("waypoints released", "elements", strings.Join(names, ","))
	}
	return len(gone)
}

// Close releases every binding.
func (m *Manager) Close() {
	for _, el := range append([]*dom.Node(nil), m.order...) {
		m.Unbind(el)
	}
}
