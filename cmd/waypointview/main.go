// Command waypointview shows a page in a scrollable window and reports
// waypoint crossings as the user scrolls.
package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"waypoints/pkg/dom"
	"waypoints/pkg/js"
	"waypoints/pkg/layout"
	"waypoints/pkg/render"
	"waypoints/pkg/resource"
	"waypoints/pkg/scroll"
	"waypoints/pkg/waypoint"
)

const (
	viewWidth  = 800
	viewHeight = 600
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <page.html|url>\n", os.Args[0])
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	a := app.New()

	body, err := resource.Load(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	doc, err := dom.Parse(bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	le := layout.NewLayoutEngine(viewWidth, viewHeight)
	le.Layout(doc)

	// The whole page is painted once into a tall image; the fyne scroll
	// container provides the viewport.
	pageHeight := int(doc.Root.ScrollHeight)
	renderer := render.NewRenderer(viewWidth, pageHeight, le)
	renderer.SetHighlight(waypoint.DefaultClass)
	renderer.Render(doc, scroll.Point{})

	img := canvas.NewImageFromImage(renderer.Image())
	img.FillMode = canvas.ImageFillOriginal
	img.SetMinSize(fyne.NewSize(viewWidth, float32(pageHeight)))
	scroller := container.NewScroll(img)
	source := scroll.NewFyneSource(scroller)
	// Page scripts scroll the widget through the viewport.
	viewport := scroll.NewViewport(doc.Root)
	viewport.SetWindow(source)

	status := widget.NewLabel("Scroll to cross waypoints")

	engine := js.New(logger)
	manager := waypoint.NewManager(source, engine,
		waypoint.WithLogger(logger),
		waypoint.WithObserver(func(ev waypoint.Event) {
			status.SetText(fmt.Sprintf("%s %s at %g (threshold %g)",
				describe(ev.Element), ev.Direction, ev.Offset, ev.Threshold))
			renderer.Render(doc, scroll.Point{})
			img.Image = renderer.Image()
			img.Refresh()
		}))
	defer manager.Close()
	engine.Attach(doc, viewport, manager)
	if len(doc.Scripts) > 0 {
		if err := engine.Execute(doc); err != nil {
			logger.Warn("page script failed", "error", err)
		}
	}
	if err := manager.BindDocument(doc.Root); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	w := a.NewWindow("waypoints - " + os.Args[1])
	w.Resize(fyne.NewSize(viewWidth, viewHeight))
	w.SetContent(container.NewBorder(nil, status, nil, nil, scroller))
	w.ShowAndRun()
}

func describe(n *dom.Node) string {
	if id := n.ID(); id != "" {
		return "#" + id
	}
	return n.TagName
}
