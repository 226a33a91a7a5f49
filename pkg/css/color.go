package css

import (
	"strconv"
	"strings"
)

type Color struct {
	R, G, B uint8
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"gray":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"lime":    {0, 255, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"silver":  {192, 192, 192},
}

// ParseColor accepts the basic named colors and #rgb / #rrggbb.
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if strings.HasPrefix(colorStr, "#") {
		return parseHex(colorStr[1:])
	}
	color, ok := namedColors[colorStr]
	return color, ok
}

func parseHex(h string) (Color, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// GetBackgroundColor returns background-color, falling back to a color
// given in the background shorthand.
func (s *Style) GetBackgroundColor() (Color, bool) {
	if v, ok := s.Get("background-color"); ok {
		return ParseColor(v)
	}
	if v, ok := s.Get("background"); ok {
		for _, f := range strings.Fields(v) {
			if c, ok := ParseColor(f); ok {
				return c, true
			}
		}
	}
	return Color{}, false
}
