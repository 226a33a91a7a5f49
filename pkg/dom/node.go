package dom

import "strings"

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Rect is an element's border box in document coordinates, before any
// scrolling is applied.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node

	// Written by the layout pass.
	Box          Rect
	ScrollWidth  float64
	ScrollHeight float64

	// Scroll position of the element's content. Only meaningful for the
	// document root and for overflow containers.
	ScrollTop  float64
	ScrollLeft float64
}

type Document struct {
	Root    *Node
	Scripts []string
}

func NewDocument() *Document {
	return &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
	}
}

// NewElement creates a detached element. attrs is a flat list of
// name/value pairs.
func NewElement(tag string, attrs ...string) *Node {
	n := &Node{
		Type:       ElementNode,
		TagName:    strings.ToLower(tag),
		Attributes: make(map[string]string, len(attrs)/2),
		Children:   make([]*Node, 0),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attributes[attrs[i]] = attrs[i+1]
	}
	return n
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// ID returns the element's id attribute, or "".
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

// AddChild appends child and sets up the parent relationship. A child that
// already has a parent is moved.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.Children = append(n.Children, &Node{Type: TextNode, Text: text, Parent: n})
}

// RemoveChild detaches child from n. Returns nil if child is not one of
// n's children.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Contains returns true if other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// Closest returns the nearest proper ancestor of n carrying attribute
// name, or nil.
func (n *Node) Closest(name string) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != ElementNode {
			continue
		}
		if _, ok := p.GetAttribute(name); ok {
			return p
		}
	}
	return nil
}

// Walk visits n and its descendants in document order. Returning false
// from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// GetElementByID returns the first element below n with a matching id.
func (n *Node) GetElementByID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Type == ElementNode && c.ID() == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// ElementsWithAttribute collects the elements below n (n included) that
// carry attribute name, in document order.
func (n *Node) ElementsWithAttribute(name string) []*Node {
	var result []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == ElementNode {
			if _, ok := c.GetAttribute(name); ok {
				result = append(result, c)
			}
		}
		return true
	})
	return result
}

// OffsetWithin returns n's position relative to the content origin of
// ancestor. A nil ancestor yields document coordinates.
func (n *Node) OffsetWithin(ancestor *Node) (top, left float64) {
	if ancestor == nil {
		return n.Box.Y, n.Box.X
	}
	return n.Box.Y - ancestor.Box.Y, n.Box.X - ancestor.Box.X
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}
