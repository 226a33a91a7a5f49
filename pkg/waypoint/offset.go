package waypoint

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadOffset reports an offset string that is not a signed number.
var ErrBadOffset = errors.New("waypoint: malformed offset")

// Offset is an adjustment added to an element's position to get its
// threshold. The zero value is "no offset".
type Offset struct {
	set   bool
	delta float64
}

// Delta returns an offset adding n.
func Delta(n float64) Offset {
	return Offset{set: true, delta: n}
}

// IsSet reports whether the offset adjusts anything.
func (o Offset) IsSet() bool { return o.set }

// Value is the amount added, zero when unset.
func (o Offset) Value() float64 { return o.delta }

// Apply adjusts base by the offset.
func (o Offset) Apply(base float64) float64 {
	if !o.set {
		return base
	}
	return base + o.delta
}

// String renders the delta, or "none" when unset.
func (o Offset) String() string {
	if !o.set {
		return "none"
	}
	return strconv.FormatFloat(o.delta, 'f', -1, 64)
}

// ParseOffset reads a signed offset such as "+50" or "-12.5px". Anything
// without a leading sign, or with a remainder that is not a finite number,
// is treated as no offset.
func ParseOffset(s string) Offset {
	o, err := ParseOffsetStrict(s)
	if err != nil {
		return Offset{}
	}
	return o
}

// ParseOffsetStrict is ParseOffset but reports malformed input as
// ErrBadOffset instead of ignoring it.
func ParseOffsetStrict(s string) (Offset, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return Offset{}, fmt.Errorf("%w: %q", ErrBadOffset, s)
	}
	digits := strings.TrimSuffix(s[1:], "px")
	if digits == "" || !(digits[0] == '.' || digits[0] >= '0' && digits[0] <= '9') {
		return Offset{}, fmt.Errorf("%w: %q", ErrBadOffset, s)
	}
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil || !finite(n) {
		return Offset{}, fmt.Errorf("%w: %q", ErrBadOffset, s)
	}
	if s[0] == '-' {
		n = -n
	}
	return Delta(n), nil
}

// offsetOf converts a configured offset value.
func offsetOf(v any) (Offset, error) {
	switch x := v.(type) {
	case nil:
		return Offset{}, nil
	case Offset:
		return x, nil
	case string:
		return ParseOffset(x), nil
	case float64:
		return number(x), nil
	case float32:
		return number(float64(x)), nil
	case int:
		return Delta(float64(x)), nil
	case int64:
		return Delta(float64(x)), nil
	}
	return Offset{}, fmt.Errorf("%w: unsupported type %T", ErrBadOffset, v)
}

// number is a numeric offset. NaN and infinities would keep the waypoint
// from ever firing, so they count as no offset.
func number(n float64) Offset {
	if !finite(n) {
		return Offset{}
	}
	return Delta(n)
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// AxisOffsets holds one offset per axis.
type AxisOffsets struct {
	Vertical   Offset
	Horizontal Offset
}

func (a AxisOffsets) get(axis Axis) Offset {
	if axis == Horizontal {
		return a.Horizontal
	}
	return a.Vertical
}

// Geometry is an element's position within its scroll source's content.
type Geometry struct {
	Top  float64
	Left float64
}

// Thresholds are the resolved trigger points, one per axis.
type Thresholds struct {
	Vertical   float64
	Horizontal float64
}

func (t Thresholds) get(axis Axis) float64 {
	if axis == Horizontal {
		return t.Horizontal
	}
	return t.Vertical
}

// Resolve computes the thresholds for an element at g.
func Resolve(g Geometry, offs AxisOffsets) Thresholds {
	return Thresholds{
		Vertical:   offs.Vertical.Apply(g.Top),
		Horizontal: offs.Horizontal.Apply(g.Left),
	}
}
