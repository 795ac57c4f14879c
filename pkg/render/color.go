package render

import (
	"fmt"
	"image/color"
)

// ParseHexColor parses a "#rrggbb" or "rrggbb" string to a color.
// Malformed input yields white, matching the default background.
func ParseHexColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.White
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexValue(hex[i*2])
		lo, ok2 := hexValue(hex[i*2+1])
		if !ok1 || !ok2 {
			return color.White
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

// FormatHexColor formats a color as "#rrggbb", discarding alpha.
func FormatHexColor(c color.Color) string {
	if c == nil {
		return "#ffffff"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
