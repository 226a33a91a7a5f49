package js

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"waypoints/pkg/dom"
	"waypoints/pkg/waypoint"
)

var errNotAttached = errors.New("js: engine has no document attached")

// EvalArg evaluates a data-waypoint attribute as a JS expression, with
// `this` and `element` bound to the decorated element, and converts the
// result into a value waypoint.ResolveArg accepts. An empty attribute is
// passed through as "".
func (e *Engine) EvalArg(el *dom.Node, expr string) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return "", nil
	}
	if e.ctx == nil {
		return nil, errNotAttached
	}
	src := "(function(element) { return (" + expr + "\n); })"
	prog, err := goja.Compile(elementLabel(el), src, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", waypoint.ErrInvalidConfig, err)
	}
	wrapper, err := e.vm.RunProgram(prog)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", expr, err)
	}
	fn, _ := goja.AssertFunction(wrapper)
	proxy := e.ctx.elementProxy(el)
	v, err := fn(proxy, proxy)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", expr, err)
	}
	return e.export(v)
}

// export converts a script value into a declaration. Functions become
// callbacks and plain objects become waypoint.Options.
func (e *Engine) export(v goja.Value) (any, error) {
	if absent(v) {
		return nil, nil
	}
	if fn, ok := goja.AssertFunction(v); ok {
		return e.callback(fn), nil
	}
	if obj, ok := v.(*goja.Object); ok && obj.ClassName() == "Object" {
		return e.options(obj)
	}
	switch x := v.Export().(type) {
	case int64:
		return float64(x), nil
	default:
		return x, nil
	}
}

func (e *Engine) options(obj *goja.Object) (waypoint.Options, error) {
	var o waypoint.Options
	slots := []struct {
		name string
		dst  *waypoint.Callback
	}{
		{"enter", &o.Enter},
		{"exit", &o.Exit},
		{"both", &o.Both},
	}
	for _, s := range slots {
		val := obj.Get(s.name)
		if absent(val) {
			continue
		}
		fn, ok := goja.AssertFunction(val)
		if !ok {
			return o, fmt.Errorf("%w: %s is not a function", waypoint.ErrInvalidConfig, s.name)
		}
		*s.dst = e.callback(fn)
	}

	if val := obj.Get("offset"); !absent(val) {
		if axes, ok := val.(*goja.Object); ok && axes.ClassName() == "Object" {
			o.Offset = waypoint.AxisOffsets{
				Vertical:   axisOffset(axes.Get("vertical")),
				Horizontal: axisOffset(axes.Get("horizontal")),
			}
		} else {
			o.Offset = exportScalar(val)
		}
	}
	if val := obj.Get("verticalOffset"); !absent(val) {
		o.VerticalOffset = exportScalar(val)
	}
	if val := obj.Get("horizontalOffset"); !absent(val) {
		o.HorizontalOffset = exportScalar(val)
	}
	if val := obj.Get("addClass"); !absent(val) {
		o.AddClass = val.String()
	}
	o.UpdateOffset = boolField(obj, "updateOffset")
	o.Vertical = boolField(obj, "vertical")
	o.Horizontal = boolField(obj, "horizontal")
	return o, nil
}

// callback wraps a script function. Script exceptions are raised as
// panics so the detector reports them as callback failures.
func (e *Engine) callback(fn goja.Callable) waypoint.Callback {
	return func(dir waypoint.Direction, el *dom.Node) {
		proxy := e.ctx.elementProxy(el)
		if _, err := fn(proxy, e.vm.ToValue(string(dir)), proxy); err != nil {
			panic(err)
		}
	}
}

func absent(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

func exportScalar(v goja.Value) any {
	switch x := v.Export().(type) {
	case int64:
		return float64(x)
	default:
		return x
	}
}

func axisOffset(v goja.Value) waypoint.Offset {
	if absent(v) {
		return waypoint.Offset{}
	}
	switch x := exportScalar(v).(type) {
	case float64:
		return waypoint.Delta(x)
	case string:
		return waypoint.ParseOffset(x)
	}
	return waypoint.Offset{}
}

func boolField(obj *goja.Object, name string) *bool {
	val := obj.Get(name)
	if absent(val) {
		return nil
	}
	b := val.ToBoolean()
	return &b
}
