package scenario

import (
	"errors"
	"fmt"
	"log/slog"

	"waypoints/pkg/scroll"
)

var (
	ErrUnknownContainer = errors.New("scenario: unknown container")
	ErrNoScripting      = errors.New("scenario: scripting not available")
)

// Scroller is a scroll source that can be moved.
type Scroller interface {
	Offsets() scroll.Point
	ScrollTo(x, y float64)
}

// Player executes steps against a page. Container, Script and Snapshot
// are optional; steps that need a missing one fail.
type Player struct {
	Viewport  Scroller
	Container func(id string) (Scroller, bool)
	Script    func(src string) error
	Snapshot  func(path string) error
	Logger    *slog.Logger
	// AfterStep runs once each step has completed.
	AfterStep func(i int, step Step)
}

// Play runs steps in order and stops at the first failure.
func (p *Player) Play(steps []Step) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for i, step := range steps {
		logger.Debug("scenario step", "index", i, "step", step.String())
		if err := p.step(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step, err)
		}
		if p.AfterStep != nil {
			p.AfterStep(i, step)
		}
	}
	return nil
}

func (p *Player) step(step Step) error {
	if step.To != nil || step.By != nil {
		target, err := p.target(step.Container)
		if err != nil {
			return err
		}
		cur := target.Offsets()
		if step.To != nil {
			cur = step.To.apply(cur, false)
		}
		if step.By != nil {
			cur = step.By.apply(cur, true)
		}
		target.ScrollTo(cur.X, cur.Y)
	}
	if step.Script != "" {
		if p.Script == nil {
			return ErrNoScripting
		}
		if err := p.Script(step.Script); err != nil {
			return err
		}
	}
	if step.Snapshot != "" && p.Snapshot != nil {
		if err := p.Snapshot(step.Snapshot); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) target(id string) (Scroller, error) {
	if id == "" {
		return p.Viewport, nil
	}
	if p.Container != nil {
		if s, ok := p.Container(id); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContainer, id)
}

func (o *Offset) apply(p scroll.Point, relative bool) scroll.Point {
	if o.X != nil {
		if relative {
			p.X += *o.X
		} else {
			p.X = *o.X
		}
	}
	if o.Y != nil {
		if relative {
			p.Y += *o.Y
		} else {
			p.Y = *o.Y
		}
	}
	return p
}
