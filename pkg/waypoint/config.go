package waypoint

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"waypoints/pkg/dom"
)

// DefaultClass is toggled by waypoints declared without a value.
const DefaultClass = "waypoint-passed"

var (
	ErrMissingConfig = errors.New("waypoint: missing configuration")
	ErrInvalidConfig = errors.New("waypoint: invalid configuration")
)

// Config is a fully resolved waypoint configuration.
type Config struct {
	Vertical   bool
	Horizontal bool

	Enter Callback
	Exit  Callback
	Both  Callback

	Offsets AxisOffsets
	// Class is added to the element on entering and removed on exiting.
	Class string
	// UpdateOffset remeasures the element on every event instead of only
	// until the first crossing.
	UpdateOffset bool
}

func (c Config) tracks(axis Axis) bool {
	if axis == Horizontal {
		return c.Horizontal
	}
	return c.Vertical
}

// Options is the object form of a waypoint declaration. Unset fields keep
// their defaults.
type Options struct {
	Enter Callback
	Exit  Callback
	Both  Callback
	// Offset is a number, a signed string like "+50", an Offset, or an
	// AxisOffsets. A scalar applies to both axes.
	Offset any
	// VerticalOffset and HorizontalOffset replace one axis of Offset when
	// set to anything but nil, zero or "".
	VerticalOffset   any
	HorizontalOffset any
	AddClass         string
	UpdateOffset *bool
	Vertical     *bool
	Horizontal   *bool
}

func defaults() Config {
	return Config{Vertical: true}
}

// toggler is the configuration of a bare declaration: follow the element's
// natural position and toggle DefaultClass.
func toggler() Config {
	c := defaults()
	c.Class = DefaultClass
	c.UpdateOffset = true
	return c
}

// ResolveArg turns a declaration value into a Config. Accepted shapes:
//
//	""                        class toggler
//	number, "+N", "-N", "N"   class toggler with a vertical offset
//	Callback                  called on every vertical crossing
//	Options                   merged over the defaults
//	other string              class name to toggle
//
// nil means no configuration was supplied at all.
func ResolveArg(v any) (Config, error) {
	switch x := v.(type) {
	case nil:
		return Config{}, ErrMissingConfig
	case Config:
		return x, nil
	case *Config:
		if x == nil {
			return Config{}, ErrMissingConfig
		}
		return *x, nil
	case Callback:
		return resolveCallback(x)
	case func(Direction, *dom.Node):
		return resolveCallback(x)
	case Options:
		return resolveOptions(x)
	case *Options:
		if x == nil {
			return Config{}, ErrMissingConfig
		}
		return resolveOptions(*x)
	case string:
		return resolveString(x), nil
	case Offset:
		c := toggler()
		c.Offsets.Vertical = x
		return c, nil
	case float64, float32, int, int64:
		off, _ := offsetOf(x)
		c := toggler()
		c.Offsets.Vertical = off
		return c, nil
	}
	return Config{}, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidConfig, v)
}

func resolveCallback(fn Callback) (Config, error) {
	if fn == nil {
		return Config{}, ErrMissingConfig
	}
	c := defaults()
	c.Both = fn
	return c, nil
}

func resolveString(s string) Config {
	s = strings.TrimSpace(s)
	if s == "" {
		return toggler()
	}
	if s[0] == '+' || s[0] == '-' {
		// A signed value is always an offset; a malformed one means none.
		c := toggler()
		c.Offsets.Vertical = ParseOffset(s)
		return c
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && finite(n) {
		c := toggler()
		c.Offsets.Vertical = Delta(n)
		return c
	}
	c := defaults()
	c.Class = s
	return c
}

func resolveOptions(o Options) (Config, error) {
	c := defaults()
	c.Horizontal = true
	c.Enter, c.Exit, c.Both = o.Enter, o.Exit, o.Both
	c.Class = o.AddClass
	if o.UpdateOffset != nil {
		c.UpdateOffset = *o.UpdateOffset
	}
	if o.Vertical != nil {
		c.Vertical = *o.Vertical
	}
	if o.Horizontal != nil {
		c.Horizontal = *o.Horizontal
	}

	switch off := o.Offset.(type) {
	case AxisOffsets:
		c.Offsets = off
	case *AxisOffsets:
		if off != nil {
			c.Offsets = *off
		}
	default:
		scalar, err := offsetOf(off)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		c.Offsets = AxisOffsets{Vertical: scalar, Horizontal: scalar}
	}
	if err := override(&c.Offsets.Vertical, o.VerticalOffset); err != nil {
		return Config{}, err
	}
	if err := override(&c.Offsets.Horizontal, o.HorizontalOffset); err != nil {
		return Config{}, err
	}
	return c, nil
}

// override replaces dst with v unless v is nil, zero or empty. A value
// that is present but malformed still replaces dst, with no offset.
func override(dst *Offset, v any) error {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if x == "" {
			return nil
		}
	case float64:
		if x == 0 {
			return nil
		}
	case int:
		if x == 0 {
			return nil
		}
	}
	off, err := offsetOf(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	*dst = off
	return nil
}
