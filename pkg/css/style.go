package css

import (
	"strconv"
	"strings"
)

// Style holds the declarations of an element's style attribute, with
// margin/padding shorthands expanded to their four sides.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (s *Style) GetMargin() BoxEdge {
	return s.edge("margin")
}

func (s *Style) GetPadding() BoxEdge {
	return s.edge("padding")
}

func (s *Style) edge(prefix string) BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero(prefix + "-top"),
		Right:  s.getLengthOrZero(prefix + "-right"),
		Bottom: s.getLengthOrZero(prefix + "-bottom"),
		Left:   s.getLengthOrZero(prefix + "-left"),
	}
}

func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok {
		return 0
	}
	return val
}

type DisplayType string

const (
	DisplayBlock DisplayType = "block"
	DisplayFlex  DisplayType = "flex"
	DisplayNone  DisplayType = "none"
)

// GetDisplay returns the display value (default: block). Inline-level
// values lay out as blocks.
func (s *Style) GetDisplay() DisplayType {
	if display, ok := s.Get("display"); ok {
		switch display {
		case "flex", "inline-flex":
			return DisplayFlex
		case "none":
			return DisplayNone
		}
	}
	return DisplayBlock
}

// GetFlexDirectionRow reports whether a flex container lays its items out
// horizontally.
func (s *Style) GetFlexDirectionRow() bool {
	dir, ok := s.Get("flex-direction")
	return !ok || dir == "row" || dir == "row-reverse"
}

type OverflowType string

const (
	OverflowVisible OverflowType = "visible"
	OverflowHidden  OverflowType = "hidden"
	OverflowScroll  OverflowType = "scroll"
	OverflowAuto    OverflowType = "auto"
)

// GetOverflow returns the overflow value (default: visible).
func (s *Style) GetOverflow() OverflowType {
	if v, ok := s.Get("overflow"); ok {
		switch OverflowType(v) {
		case OverflowHidden, OverflowScroll, OverflowAuto:
			return OverflowType(v)
		}
	}
	return OverflowVisible
}

// Scrollable reports whether the element clips and scrolls its content.
func (s *Style) Scrollable() bool {
	switch s.GetOverflow() {
	case OverflowScroll, OverflowAuto:
		return true
	}
	return false
}

func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for _, decl := range strings.Split(styleAttr, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		switch property {
		case "margin", "padding":
			expandBoxProperty(style, property, value)
		default:
			style.Set(property, value)
		}
	}
	return style
}

// expandBoxProperty expands margin/padding shorthand
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
//
//	"10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, prefix, value string) {
	parts := strings.Fields(value)
	var t, r, b, l string
	switch len(parts) {
	case 1:
		t, r, b, l = parts[0], parts[0], parts[0], parts[0]
	case 2:
		t, r, b, l = parts[0], parts[1], parts[0], parts[1]
	case 3:
		t, r, b, l = parts[0], parts[1], parts[2], parts[1]
	case 4:
		t, r, b, l = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	style.Set(prefix+"-top", t)
	style.Set(prefix+"-right", r)
	style.Set(prefix+"-bottom", b)
	style.Set(prefix+"-left", l)
}
