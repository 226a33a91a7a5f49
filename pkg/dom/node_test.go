package dom

import (
	"testing"
)

func TestClassListAddRemove(t *testing.T) {
	n := NewElement("div", "class", "a b")
	if !n.AddClass("c") {
		t.Fatal("expected AddClass to change the list")
	}
	if n.AddClass("a") {
		t.Error("AddClass of an existing token should be a no-op")
	}
	if got := n.Attributes["class"]; got != "a b c" {
		t.Errorf("class = %q, want %q", got, "a b c")
	}
	if !n.RemoveClass("b") {
		t.Fatal("expected RemoveClass to change the list")
	}
	if n.RemoveClass("zzz") {
		t.Error("RemoveClass of a missing token should be a no-op")
	}
	if n.HasClass("b") {
		t.Error("b should be gone")
	}
	if got := n.Attributes["class"]; got != "a c" {
		t.Errorf("class = %q, want %q", got, "a c")
	}
}

func TestToggleClass(t *testing.T) {
	n := NewElement("div")
	if !n.ToggleClass("on") {
		t.Error("first toggle should add")
	}
	if n.ToggleClass("on") {
		t.Error("second toggle should remove")
	}
	if len(n.Classes()) != 0 {
		t.Errorf("classes = %v, want none", n.Classes())
	}
}

func TestClosest(t *testing.T) {
	outer := NewElement("div", "data-waypoint-container", "")
	mid := NewElement("section")
	leaf := NewElement("p")
	outer.AddChild(mid)
	mid.AddChild(leaf)

	if got := leaf.Closest("data-waypoint-container"); got != outer {
		t.Errorf("Closest = %v, want outer", got)
	}
	if got := outer.Closest("data-waypoint-container"); got != nil {
		t.Error("Closest must not match the node itself")
	}
}

func TestContainsAndRemove(t *testing.T) {
	doc := NewDocument()
	a := NewElement("div")
	b := NewElement("span")
	doc.Root.AddChild(a)
	a.AddChild(b)
	if !doc.Root.Contains(b) {
		t.Fatal("root should contain b")
	}
	a.Remove()
	if doc.Root.Contains(b) {
		t.Error("b should be detached with its parent")
	}
	if a.Parent != nil {
		t.Error("parent pointer not cleared")
	}
}

func TestOffsetWithin(t *testing.T) {
	c := NewElement("div")
	c.Box = Rect{X: 10, Y: 100, Width: 300, Height: 200}
	el := NewElement("p")
	el.Box = Rect{X: 30, Y: 1000}

	top, left := el.OffsetWithin(nil)
	if top != 1000 || left != 30 {
		t.Errorf("document offset = (%v,%v)", top, left)
	}
	top, left = el.OffsetWithin(c)
	if top != 900 || left != 20 {
		t.Errorf("container offset = (%v,%v), want (900,20)", top, left)
	}
}

func TestParse(t *testing.T) {
	doc, err := ParseString(`<html><body>
		<div id="scroller" data-waypoint-container>
			<p id="w" data-waypoint="+50">hello</p>
		</div>
		<script>console.log("hi")</script>
	</body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Scripts) != 1 || doc.Scripts[0] != `console.log("hi")` {
		t.Errorf("scripts = %q", doc.Scripts)
	}
	w := doc.Root.GetElementByID("w")
	if w == nil {
		t.Fatal("element w not found")
	}
	if v, _ := w.GetAttribute("data-waypoint"); v != "+50" {
		t.Errorf("data-waypoint = %q", v)
	}
	if w.TextContent() != "hello" {
		t.Errorf("text = %q", w.TextContent())
	}
	if got := w.Closest("data-waypoint-container"); got == nil || got.ID() != "scroller" {
		t.Errorf("container = %v", got)
	}
	if n := len(doc.Root.ElementsWithAttribute("data-waypoint")); n != 1 {
		t.Errorf("decorated elements = %d, want 1", n)
	}
}
