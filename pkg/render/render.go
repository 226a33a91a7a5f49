package render

import (
	"image"

	"github.com/fogleman/gg"

	"waypoints/pkg/css"
	"waypoints/pkg/dom"
	"waypoints/pkg/layout"
	"waypoints/pkg/scroll"
)

// Renderer rasterizes a laid-out document as seen through the viewport at
// a given scroll position.
type Renderer struct {
	context   *gg.Context
	styles    *layout.LayoutEngine
	highlight []string
}

func NewRenderer(width, height int, styles *layout.LayoutEngine) *Renderer {
	return &Renderer{context: gg.NewContext(width, height), styles: styles}
}

// SetHighlight outlines elements carrying any of classes, typically the
// classes toggled by waypoints.
func (r *Renderer) SetHighlight(classes ...string) {
	r.highlight = classes
}

// Render paints doc with the viewport scrolled to at.
func (r *Renderer) Render(doc *dom.Document, at scroll.Point) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	for _, child := range doc.Root.Children {
		r.drawNode(child, at.X, at.Y)
	}
}

func (r *Renderer) style(n *dom.Node) *css.Style {
	if r.styles == nil {
		return css.NewStyle()
	}
	return r.styles.Style(n)
}

func (r *Renderer) drawNode(n *dom.Node, dx, dy float64) {
	if n.Type == dom.TextNode {
		if p := n.Parent; p != nil {
			r.context.SetRGB(0, 0, 0)
			r.context.DrawString(n.Text, p.Box.X-dx+4, p.Box.Y-dy+14)
		}
		return
	}
	style := r.style(n)
	if style.GetDisplay() == css.DisplayNone {
		return
	}
	x, y := n.Box.X-dx, n.Box.Y-dy

	if c, ok := style.GetBackgroundColor(); ok && n.Box.Width > 0 && n.Box.Height > 0 {
		r.context.SetRGB255(int(c.R), int(c.G), int(c.B))
		r.context.DrawRectangle(x, y, n.Box.Width, n.Box.Height)
		r.context.Fill()
	}

	if style.Scrollable() {
		r.context.Push()
		r.context.DrawRectangle(x, y, n.Box.Width, n.Box.Height)
		r.context.Clip()
		for _, child := range n.Children {
			r.drawNode(child, dx+n.ScrollLeft, dy+n.ScrollTop)
		}
		r.context.Pop()
	} else {
		for _, child := range n.Children {
			r.drawNode(child, dx, dy)
		}
	}

	if r.highlighted(n) {
		r.context.SetRGB255(255, 140, 0)
		r.context.SetLineWidth(3)
		r.context.DrawRectangle(x+1.5, y+1.5, n.Box.Width-3, n.Box.Height-3)
		r.context.Stroke()
	}
}

func (r *Renderer) highlighted(n *dom.Node) bool {
	for _, cls := range r.highlight {
		if n.HasClass(cls) {
			return true
		}
	}
	return false
}

// DrawMarker draws a horizontal guide at document offset y, used to show
// where a waypoint threshold sits.
func (r *Renderer) DrawMarker(y float64, at scroll.Point) {
	r.context.SetRGBA(0.9, 0.1, 0.1, 0.8)
	r.context.SetLineWidth(1)
	r.context.DrawLine(0, y-at.Y, float64(r.context.Width()), y-at.Y)
	r.context.Stroke()
}

func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
