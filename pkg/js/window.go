package js

import (
	"github.com/dop251/goja"

	"waypoints/pkg/dom"
	"waypoints/pkg/scroll"
)

// registerWindow installs `window` with the page scroll API. Scrolling
// goes through the viewport so waypoints see every change.
func registerWindow(e *Engine) {
	vm := e.vm
	win := vm.NewObject()

	getter := func(fn func(scroll.Point) float64) goja.Value {
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			if e.viewport == nil {
				return vm.ToValue(0)
			}
			return vm.ToValue(fn(e.viewport.Offsets()))
		})
	}
	x := getter(func(p scroll.Point) float64 { return p.X })
	y := getter(func(p scroll.Point) float64 { return p.Y })
	win.DefineAccessorProperty("scrollX", x, nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	win.DefineAccessorProperty("pageXOffset", x, nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	win.DefineAccessorProperty("scrollY", y, nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	win.DefineAccessorProperty("pageYOffset", y, nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	win.Set("scrollTo", func(call goja.FunctionCall) goja.Value {
		if e.viewport != nil {
			e.viewport.ScrollTo(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		}
		return goja.Undefined()
	})
	win.Set("scrollBy", func(call goja.FunctionCall) goja.Value {
		if e.viewport != nil {
			e.viewport.ScrollBy(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		}
		return goja.Undefined()
	})

	vm.Set("window", win)
	vm.Set("scrollTo", win.Get("scrollTo"))
	vm.Set("scrollBy", win.Get("scrollBy"))
}

// scrollElement moves an element's content. The document element and
// body scroll the viewport, as in browsers.
func (e *Engine) scrollElement(n *dom.Node, x, y float64) {
	switch {
	case n.TagName == "html" || n.TagName == "body" || n == e.ctx.doc.Root:
		if e.viewport != nil {
			e.viewport.ScrollTo(x, y)
		}
	case e.manager != nil:
		e.manager.Container(n).ScrollTo(x, y)
	default:
		scroll.NewContainer(n).ScrollTo(x, y)
	}
}
