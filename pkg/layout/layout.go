// Package layout positions a document's elements so that waypoints have
// geometry to measure. It implements a deliberately small subset of CSS:
// block flow, row flex containers, explicit width/height, margin and
// padding from style attributes, and overflow containers with a scroll
// extent. Margins do not collapse.
package layout

import (
	"math"

	"waypoints/pkg/css"
	"waypoints/pkg/dom"
)

// DefaultLineHeight is the height given to each run of text.
const DefaultLineHeight = 18

type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	lineHeight float64
	styles     map[*dom.Node]*css.Style
}

func NewLayoutEngine(viewportWidth, viewportHeight float64) *LayoutEngine {
	le := &LayoutEngine{lineHeight: DefaultLineHeight}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	return le
}

// Layout writes Box, ScrollWidth and ScrollHeight on every element of doc.
// The document root's Box is the viewport and its scroll extent the page
// size. Existing scroll positions are preserved.
func (le *LayoutEngine) Layout(doc *dom.Document) {
	le.styles = make(map[*dom.Node]*css.Style)
	root := doc.Root
	root.Box = dom.Rect{Width: le.viewport.width, Height: le.viewport.height}

	height, width := le.layoutChildren(root, 0, 0, le.viewport.width)
	root.ScrollHeight = math.Max(height, le.viewport.height)
	root.ScrollWidth = math.Max(width, le.viewport.width)
}

// Style returns the parsed style attribute of n from the last Layout.
func (le *LayoutEngine) Style(n *dom.Node) *css.Style {
	if s, ok := le.styles[n]; ok {
		return s
	}
	return css.NewStyle()
}

func (le *LayoutEngine) style(n *dom.Node) *css.Style {
	s, ok := le.styles[n]
	if !ok {
		attr, _ := n.GetAttribute("style")
		s = css.ParseInlineStyle(attr)
		if hidden(n.TagName) {
			s.Set("display", string(css.DisplayNone))
		}
		le.styles[n] = s
	}
	return s
}

func hidden(tag string) bool {
	switch tag {
	case "head", "title", "style", "meta", "link", "script", "template":
		return true
	}
	return false
}

// layoutBlock lays out n with its margin box at (x, y) and returns the
// margin box size.
func (le *LayoutEngine) layoutBlock(n *dom.Node, x, y, avail float64) (outerW, outerH float64) {
	style := le.style(n)
	if style.GetDisplay() == css.DisplayNone {
		n.Box = dom.Rect{X: x, Y: y}
		return 0, 0
	}
	margin := style.GetMargin()
	padding := style.GetPadding()

	width, ok := style.GetLength("width")
	if !ok {
		width = avail - margin.Left - margin.Right
	}
	width = math.Max(width, 0)
	n.Box.X = x + margin.Left
	n.Box.Y = y + margin.Top
	n.Box.Width = width

	contentX := n.Box.X + padding.Left
	contentY := n.Box.Y + padding.Top
	contentW := math.Max(width-padding.Left-padding.Right, 0)

	var contentH, extentW float64
	if style.GetDisplay() == css.DisplayFlex && style.GetFlexDirectionRow() {
		contentH, extentW = le.layoutRow(n, contentX, contentY)
	} else {
		contentH, extentW = le.layoutChildren(n, contentX, contentY, contentW)
	}

	height, ok := style.GetLength("height")
	if !ok {
		height = contentH + padding.Top + padding.Bottom
	}
	n.Box.Height = height

	n.ScrollWidth = math.Max(extentW+padding.Left+padding.Right, width)
	n.ScrollHeight = math.Max(contentH+padding.Top+padding.Bottom, height)
	if !style.Scrollable() {
		// Only overflow containers keep a scroll position.
		n.ScrollTop, n.ScrollLeft = 0, 0
	}
	return width + margin.Left + margin.Right, height + margin.Top + margin.Bottom
}

// layoutChildren stacks n's children vertically starting at (x, y) and
// returns the stacked height and how far right of x the content reaches.
func (le *LayoutEngine) layoutChildren(n *dom.Node, x, y, avail float64) (height, width float64) {
	cursor := y
	for _, child := range n.Children {
		if child.Type == dom.TextNode {
			cursor += le.lineHeight
			width = math.Max(width, avail)
			continue
		}
		w, h := le.layoutBlock(child, x, cursor, avail)
		cursor += h
		width = math.Max(width, le.reach(child, x, w))
	}
	return cursor - y, width
}

// layoutRow places n's element children side by side. Items without an
// explicit width get the row's line height as a minimum so they remain
// measurable.
func (le *LayoutEngine) layoutRow(n *dom.Node, x, y float64) (height, width float64) {
	cursor := x
	for _, child := range n.Children {
		if child.Type == dom.TextNode {
			continue
		}
		avail := le.lineHeight
		if w, ok := le.style(child).GetLength("width"); ok {
			avail = w
		}
		w, h := le.layoutBlock(child, cursor, y, avail)
		width = math.Max(width, le.reach(child, x, cursor-x+w))
		cursor += w
		height = math.Max(height, h)
	}
	return height, math.Max(width, cursor-x)
}

// reach is the distance from x to the right edge of child's content.
// Content wider than the child's box still widens its ancestors unless the
// child is an overflow container, which scrolls it instead.
func (le *LayoutEngine) reach(child *dom.Node, x, outer float64) float64 {
	style := le.style(child)
	if style.GetDisplay() == css.DisplayNone || style.Scrollable() {
		return outer
	}
	return math.Max(outer, child.Box.X+child.ScrollWidth-x)
}
