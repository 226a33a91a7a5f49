package js

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"waypoints/pkg/dom"
)

// domContext holds shared state for DOM bindings within a single execution.
// It maintains a node-to-proxy cache so the same JS object is returned for
// the same underlying *dom.Node (needed for === identity checks).
type domContext struct {
	e     *Engine
	vm    *goja.Runtime
	doc   *dom.Document
	cache map[*dom.Node]goja.Value
	nodes map[*goja.Object]*dom.Node
}

// registerDocument sets up the global `document` object on the goja runtime.
func registerDocument(e *Engine, doc *dom.Document) *domContext {
	vm := e.vm
	ctx := &domContext{
		e:     e,
		vm:    vm,
		doc:   doc,
		cache: make(map[*dom.Node]goja.Value),
		nodes: make(map[*goja.Object]*dom.Node),
	}

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		node := doc.Root.GetElementByID(call.Argument(0).String())
		if node == nil {
			return goja.Null()
		}
		return ctx.elementProxy(node)
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		cls := call.Argument(0).String()
		var nodes []*dom.Node
		doc.Root.Walk(func(n *dom.Node) bool {
			if n.Type == dom.ElementNode && n.HasClass(cls) {
				nodes = append(nodes, n)
			}
			return true
		})
		return ctx.elementArray(nodes)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		tag := strings.ToLower(call.Argument(0).String())
		var nodes []*dom.Node
		doc.Root.Walk(func(n *dom.Node) bool {
			if n.Type == dom.ElementNode && n.TagName == tag {
				nodes = append(nodes, n)
			}
			return true
		})
		return ctx.elementArray(nodes)
	})
	docObj.DefineAccessorProperty("documentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.firstByTag("html")
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	docObj.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.firstByTag("body")
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	vm.Set("document", docObj)
	return ctx
}

func (ctx *domContext) firstByTag(tag string) goja.Value {
	var found *dom.Node
	ctx.doc.Root.Walk(func(n *dom.Node) bool {
		if found == nil && n.Type == dom.ElementNode && n.TagName == tag {
			found = n
		}
		return found == nil
	})
	if found == nil {
		return goja.Null()
	}
	return ctx.elementProxy(found)
}

// elementArray creates a JS array of Element proxies.
func (ctx *domContext) elementArray(nodes []*dom.Node) goja.Value {
	vals := make([]interface{}, len(nodes))
	for i, n := range nodes {
		vals[i] = ctx.elementProxy(n)
	}
	return ctx.vm.NewArray(vals...)
}

// elementProxy creates (or retrieves from cache) a JS DynamicObject wrapping a dom.Node.
func (ctx *domContext) elementProxy(node *dom.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	obj := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = obj
	ctx.nodes[obj] = node
	return obj
}

// unwrapNode extracts the *dom.Node behind an element proxy.
func (ctx *domContext) unwrapNode(val goja.Value) *dom.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj, ok := val.(*goja.Object)
	if !ok {
		return nil
	}
	return ctx.nodes[obj]
}

// elementAccessor implements goja.DynamicObject to intercept property access
// on DOM element proxies.
type elementAccessor struct {
	ctx  *domContext
	node *dom.Node
}

var elementKeys = []string{
	"nodeType", "tagName", "id", "className", "textContent", "classList",
	"parentElement", "children", "offsetTop", "offsetLeft", "offsetWidth",
	"offsetHeight", "scrollTop", "scrollLeft", "scrollWidth", "scrollHeight",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"scrollTo", "remove", "contains",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	n := e.node

	switch key {
	case "nodeType":
		if n.Type == dom.TextNode {
			return vm.ToValue(3)
		}
		return vm.ToValue(1)
	case "tagName":
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "id":
		return vm.ToValue(n.ID())
	case "className":
		cls, _ := n.GetAttribute("class")
		return vm.ToValue(cls)
	case "textContent":
		return vm.ToValue(n.TextContent())
	case "classList":
		return newClassListProxy(e.ctx, n)
	case "parentElement":
		if n.Parent != nil && n.Parent.TagName != "document" {
			return e.ctx.elementProxy(n.Parent)
		}
		return goja.Null()
	case "children":
		var kids []*dom.Node
		for _, c := range n.Children {
			if c.Type == dom.ElementNode {
				kids = append(kids, c)
			}
		}
		return e.ctx.elementArray(kids)

	// Geometry, as written by the layout pass.
	case "offsetTop":
		return vm.ToValue(n.Box.Y)
	case "offsetLeft":
		return vm.ToValue(n.Box.X)
	case "offsetWidth":
		return vm.ToValue(n.Box.Width)
	case "offsetHeight":
		return vm.ToValue(n.Box.Height)
	case "scrollTop":
		return vm.ToValue(n.ScrollTop)
	case "scrollLeft":
		return vm.ToValue(n.ScrollLeft)
	case "scrollWidth":
		return vm.ToValue(n.ScrollWidth)
	case "scrollHeight":
		return vm.ToValue(n.ScrollHeight)

	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			val, ok := n.GetAttribute(call.Argument(0).String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(val)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			n.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			_, ok := n.GetAttribute(call.Argument(0).String())
			return vm.ToValue(ok)
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			delete(n.Attributes, call.Argument(0).String())
			return goja.Undefined()
		})
	case "scrollTo":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			e.ctx.e.scrollElement(n, call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
			return goja.Undefined()
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			n.Remove()
			return goja.Undefined()
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			other := e.ctx.unwrapNode(call.Argument(0))
			return vm.ToValue(other != nil && n.Contains(other))
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	n := e.node
	switch key {
	case "id":
		n.SetAttribute("id", val.String())
	case "className":
		n.SetAttribute("class", val.String())
	case "scrollTop":
		e.ctx.e.scrollElement(n, n.ScrollLeft, val.ToFloat())
	case "scrollLeft":
		e.ctx.e.scrollElement(n, val.ToFloat(), n.ScrollTop)
	default:
		return false
	}
	return true
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}

// elementLabel is used in error messages.
func elementLabel(n *dom.Node) string {
	if id := n.ID(); id != "" {
		return n.TagName + "#" + id
	}
	return n.TagName + "@" + strconv.FormatFloat(n.Box.Y, 'f', -1, 64)
}
