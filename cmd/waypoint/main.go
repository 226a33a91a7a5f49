// Command waypoint loads a page, binds its data-waypoint elements and
// replays a scroll session against it, reporting every crossing.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"waypoints/pkg/dom"
	"waypoints/pkg/js"
	"waypoints/pkg/layout"
	"waypoints/pkg/render"
	"waypoints/pkg/resource"
	"waypoints/pkg/scenario"
	"waypoints/pkg/scroll"
	"waypoints/pkg/waypoint"
)

type options struct {
	width, height float64
	steps         string
	scenarioFile  string
	outDir        string
	verbose       bool
}

func main() {
	var opts options
	flag.Float64Var(&opts.width, "w", 800, "viewport width in pixels")
	flag.Float64Var(&opts.height, "h", 600, "viewport height in pixels")
	flag.StringVar(&opts.steps, "scroll", "", `scroll steps, e.g. "0,950;0,850;strip:1350,0"`)
	flag.StringVar(&opts.scenarioFile, "scenario", "", "YAML scenario file (overrides -w, -h and -scroll)")
	flag.StringVar(&opts.outDir, "o", "", "directory for a PNG frame after every step")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: waypoint [flags] <page.html|url>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(flag.Arg(0), opts, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ref string, opts options, out io.Writer, logger *slog.Logger) error {
	sc := &scenario.Scenario{Viewport: scenario.Size{Width: opts.width, Height: opts.height}}
	if opts.scenarioFile != "" {
		loaded, err := scenario.LoadFile(opts.scenarioFile)
		if err != nil {
			return err
		}
		sc = loaded
	} else if opts.steps != "" {
		steps, err := scenario.ParseSteps(opts.steps)
		if err != nil {
			return err
		}
		sc.Steps = steps
	}

	body, err := resource.Load(ref)
	if err != nil {
		return err
	}
	doc, err := dom.Parse(bytes.NewReader(body))
	if err != nil {
		return err
	}

	le := layout.NewLayoutEngine(sc.Viewport.Width, sc.Viewport.Height)
	le.Layout(doc)

	vp := scroll.NewViewport(doc.Root)
	engine := js.New(logger)
	manager := waypoint.NewManager(vp, engine,
		waypoint.WithLogger(logger),
		waypoint.WithObserver(func(ev waypoint.Event) {
			fmt.Fprintf(out, "%-20s %-10s %-5s offset=%g threshold=%g\n",
				label(ev.Element), ev.Axis, ev.Direction, ev.Offset, ev.Threshold)
		}))
	defer manager.Close()
	engine.Attach(doc, vp, manager)

	if len(doc.Scripts) > 0 {
		if err := engine.Execute(doc); err != nil {
			logger.Warn("page script failed", "error", err)
		}
	}
	if err := manager.BindDocument(doc.Root); err != nil {
		return err
	}
	logger.Info("waypoints bound", "count", len(manager.Bindings()), "steps", len(sc.Steps))

	renderer := render.NewRenderer(int(sc.Viewport.Width), int(sc.Viewport.Height), le)
	renderer.SetHighlight(classes(manager)...)
	snapshot := func(path string) error {
		renderer.Render(doc, vp.Offsets())
		for _, b := range manager.Bindings() {
			if _, ok := b.Source().(*scroll.Viewport); ok {
				renderer.DrawMarker(b.Detector().Thresholds().Vertical, vp.Offsets())
			}
		}
		if opts.outDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(opts.outDir, path)
		}
		return renderer.SavePNG(path)
	}

	player := &scenario.Player{
		Viewport: vp,
		Container: func(id string) (scenario.Scroller, bool) {
			el := doc.Root.GetElementByID(id)
			if el == nil {
				return nil, false
			}
			return manager.Container(el), true
		},
		Script: func(src string) error {
			_, err := engine.Run(src)
			return err
		},
		Snapshot: snapshot,
		Logger:   logger,
		AfterStep: func(i int, step scenario.Step) {
			if n := manager.Sweep(doc.Root); n > 0 {
				logger.Info("released waypoints of removed elements", "count", n)
			}
			if opts.outDir != "" {
				if err := snapshot(fmt.Sprintf("frame-%03d.png", i)); err != nil {
					logger.Warn("frame not saved", "step", i, "error", err)
				}
			}
		},
	}
	if err := player.Play(sc.Steps); err != nil {
		return err
	}

	for _, b := range manager.Bindings() {
		d := b.Detector()
		fmt.Fprintf(out, "%-20s passed-vertical=%t passed-horizontal=%t classes=%q\n",
			label(b.Element()), !d.Above(waypoint.Vertical), !d.Above(waypoint.Horizontal), b.Element().Classes())
	}
	return nil
}

// classes collects the class names waypoints toggle, for highlighting.
func classes(m *waypoint.Manager) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range m.Bindings() {
		cls := b.Detector().Config().Class
		if cls != "" && !seen[cls] {
			seen[cls] = true
			out = append(out, cls)
		}
	}
	return out
}

func label(n *dom.Node) string {
	if id := n.ID(); id != "" {
		return n.TagName + "#" + id
	}
	return n.TagName
}
