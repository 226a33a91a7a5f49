package layout

import (
	"testing"

	"waypoints/pkg/dom"
)

func parse(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(s)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc
}

func TestBlockFlow(t *testing.T) {
	doc := parse(t, `<html><head><title>x</title></head><body>
		<div id="hero" style="height: 900px"></div>
		<div id="target" style="height: 100px; margin: 10px 0 0 20px"></div>
		<div id="pad" style="padding: 5px"><p id="inner" style="height: 40px"></p></div>
	</body></html>`)
	NewLayoutEngine(800, 600).Layout(doc)

	target := doc.Root.GetElementByID("target")
	if target.Box.Y != 910 || target.Box.X != 20 {
		t.Errorf("target at (%v,%v), want (20,910)", target.Box.X, target.Box.Y)
	}
	if target.Box.Width != 780 {
		t.Errorf("target width = %v, want 780", target.Box.Width)
	}
	pad := doc.Root.GetElementByID("pad")
	if pad.Box.Y != 1010 || pad.Box.Height != 50 {
		t.Errorf("pad box = %+v", pad.Box)
	}
	inner := doc.Root.GetElementByID("inner")
	if inner.Box.Y != 1015 || inner.Box.X != 5 {
		t.Errorf("inner at (%v,%v), want (5,1015)", inner.Box.X, inner.Box.Y)
	}
	if doc.Root.ScrollHeight != 1060 {
		t.Errorf("page height = %v, want 1060", doc.Root.ScrollHeight)
	}
	if doc.Root.Box.Height != 600 || doc.Root.ScrollWidth != 800 {
		t.Errorf("root = %+v, scrollWidth %v", doc.Root.Box, doc.Root.ScrollWidth)
	}
}

func TestRowContainer(t *testing.T) {
	doc := parse(t, `<body>
		<div id="spacer" style="height: 100px"></div>
		<div id="strip" style="display: flex; overflow: auto; width: 400px; height: 120px">
			<div style="width: 1300px; height: 100px"></div>
			<div id="card" style="width: 200px; height: 100px"></div>
		</div>
	</body>`)
	NewLayoutEngine(800, 600).Layout(doc)

	strip := doc.Root.GetElementByID("strip")
	card := doc.Root.GetElementByID("card")
	top, left := card.OffsetWithin(strip)
	if top != 0 || left != 1300 {
		t.Errorf("card within strip = (%v,%v), want (0,1300)", top, left)
	}
	if strip.ScrollWidth != 1500 {
		t.Errorf("strip scrollWidth = %v, want 1500", strip.ScrollWidth)
	}
	if strip.Box.Height != 120 {
		t.Errorf("strip height = %v", strip.Box.Height)
	}
}

func TestWideContentExtendsPage(t *testing.T) {
	doc := parse(t, `<body>
		<div style="display: flex; width: 4000px; height: 100px">
			<div style="width: 1300px; height: 100px"></div>
			<div id="test" style="width: 1200px; height: 100px"></div>
		</div>
		<div style="overflow: auto; width: 400px; height: 50px">
			<div style="width: 9000px; height: 50px"></div>
		</div>
	</body>`)
	NewLayoutEngine(800, 600).Layout(doc)

	if x := doc.Root.GetElementByID("test").Box.X; x != 1300 {
		t.Errorf("test.X = %v, want 1300", x)
	}
	// The clipped 9000px strip scrolls inside its container and does not
	// count toward the page.
	if doc.Root.ScrollWidth != 4000 {
		t.Errorf("page width = %v, want 4000", doc.Root.ScrollWidth)
	}
}

func TestDisplayNone(t *testing.T) {
	doc := parse(t, `<body><div style="display:none;height:500px"></div><div id="x" style="height:10px"></div></body>`)
	NewLayoutEngine(800, 600).Layout(doc)
	if y := doc.Root.GetElementByID("x").Box.Y; y != 0 {
		t.Errorf("x.Y = %v, hidden elements take no space", y)
	}
}

func TestScrollPositionPreserved(t *testing.T) {
	doc := parse(t, `<body><div id="c" style="overflow:scroll;height:100px"><div style="height:1000px"></div></div></body>`)
	le := NewLayoutEngine(800, 600)
	le.Layout(doc)
	c := doc.Root.GetElementByID("c")
	c.ScrollTop = 250
	le.Layout(doc)
	if c.ScrollTop != 250 {
		t.Errorf("scrollTop reset to %v", c.ScrollTop)
	}
	if c.ScrollHeight != 1000 {
		t.Errorf("scrollHeight = %v", c.ScrollHeight)
	}
	if !le.Style(c).Scrollable() {
		t.Error("style not retained")
	}
}
