package js

import (
	"fmt"
	"log/slog"

	"github.com/dop251/goja"

	"waypoints/pkg/dom"
	"waypoints/pkg/scroll"
	"waypoints/pkg/waypoint"
)

// Engine hosts page scripts and evaluates waypoint declarations. It is
// bound to one document at a time and, like the goja runtime underneath,
// must only be used from one goroutine.
type Engine struct {
	vm       *goja.Runtime
	logger   *slog.Logger
	ctx      *domContext
	viewport *scroll.Viewport
	manager  *waypoint.Manager
}

// New creates a new JS engine with a fresh goja runtime.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	vm := goja.New()
	e := &Engine{vm: vm, logger: logger}

	c := &consoleAPI{logger: logger}
	c.register(vm)

	return e
}

// Attach installs the document, window and waypoint globals. vp is the
// page's viewport; m, when non-nil, backs the script-side waypoint()
// function and element scrolling.
func (e *Engine) Attach(doc *dom.Document, vp *scroll.Viewport, m *waypoint.Manager) {
	e.viewport = vp
	e.manager = m
	e.ctx = registerDocument(e, doc)
	registerWindow(e)
	if m != nil {
		e.vm.Set("waypoint", e.bindFn)
	}
}

// Execute runs the document's scripts in order. The first failing script
// stops execution and its error is returned.
func (e *Engine) Execute(doc *dom.Document) error {
	if e.ctx == nil || e.ctx.doc != doc {
		e.Attach(doc, e.viewport, e.manager)
	}
	for i, script := range doc.Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// Run evaluates a single snippet, for hosts that drive the page.
func (e *Engine) Run(src string) (goja.Value, error) {
	return e.vm.RunString(src)
}

// bindFn implements waypoint(element, declaration).
func (e *Engine) bindFn(call goja.FunctionCall) goja.Value {
	el := e.ctx.unwrapNode(call.Argument(0))
	if el == nil {
		panic(e.vm.NewTypeError("waypoint: first argument must be an element"))
	}
	arg, err := e.export(call.Argument(1))
	if err != nil {
		panic(e.vm.NewGoError(err))
	}
	if _, err := e.manager.Bind(el, arg); err != nil {
		panic(e.vm.NewGoError(err))
	}
	return goja.Undefined()
}
