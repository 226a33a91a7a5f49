// Package scenario describes scripted scroll sessions: a viewport size and
// a list of steps that scroll the page or a container, run script
// snippets, and take snapshots.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrEmptyStep = errors.New("scenario: step has no action")

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Offset is a scroll position. A nil coordinate keeps the current value.
type Offset struct {
	X *float64 `yaml:"x"`
	Y *float64 `yaml:"y"`
}

type Step struct {
	// Container is the id of a scroll container; empty means the viewport.
	Container string  `yaml:"container,omitempty"`
	To        *Offset `yaml:"to,omitempty"`
	By        *Offset `yaml:"by,omitempty"`
	Script    string  `yaml:"script,omitempty"`
	Snapshot  string  `yaml:"snapshot,omitempty"`
}

func (s Step) empty() bool {
	return s.To == nil && s.By == nil && s.Script == "" && s.Snapshot == ""
}

func (s Step) String() string {
	var parts []string
	target := "viewport"
	if s.Container != "" {
		target = "#" + s.Container
	}
	if s.To != nil {
		parts = append(parts, fmt.Sprintf("%s to %s", target, s.To))
	}
	if s.By != nil {
		parts = append(parts, fmt.Sprintf("%s by %s", target, s.By))
	}
	if s.Script != "" {
		parts = append(parts, "script")
	}
	if s.Snapshot != "" {
		parts = append(parts, "snapshot "+s.Snapshot)
	}
	return strings.Join(parts, ", ")
}

func (o *Offset) String() string {
	f := func(v *float64) string {
		if v == nil {
			return "_"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return "(" + f(o.X) + "," + f(o.Y) + ")"
}

type Scenario struct {
	Viewport Size   `yaml:"viewport"`
	Steps    []Step `yaml:"steps"`
}

// DefaultViewport is used when a scenario leaves the size unset.
var DefaultViewport = Size{Width: 800, Height: 600}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a YAML scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return Parse(data)
}

func (s *Scenario) normalize() error {
	if s.Viewport.Width <= 0 {
		s.Viewport.Width = DefaultViewport.Width
	}
	if s.Viewport.Height <= 0 {
		s.Viewport.Height = DefaultViewport.Height
	}
	for i, step := range s.Steps {
		if step.empty() {
			return fmt.Errorf("step %d: %w", i, ErrEmptyStep)
		}
	}
	return nil
}

// ParseSteps reads the compact command-line form: semicolon-separated
// "x,y" viewport positions, each optionally prefixed with "id:" to scroll
// a container instead, e.g. "0,950;0,850;strip:1350,0".
func ParseSteps(list string) ([]Step, error) {
	var steps []Step
	for _, item := range strings.Split(list, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		var step Step
		if i := strings.Index(item, ":"); i >= 0 {
			step.Container = strings.TrimSpace(item[:i])
			item = item[i+1:]
		}
		xs, ys, ok := strings.Cut(item, ",")
		if !ok {
			return nil, fmt.Errorf("scenario: step %q: want x,y", item)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("scenario: step %q: %w", item, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("scenario: step %q: %w", item, err)
		}
		step.To = &Offset{X: &x, Y: &y}
		steps = append(steps, step)
	}
	return steps, nil
}
