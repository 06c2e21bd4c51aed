package pipeline

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts a CSS-style color string to a color.Color.
// Accepted forms: #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r, g, b), rgba(r, g, b, a)
// and CSS color names. Anything else yields opaque black.
func ParseColor(s string) color.Color {
	c, ok := parseColor(s)
	if !ok {
		return color.NRGBA{A: 0xff}
	}
	return c
}

func parseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseFunc(s)
	case s == "transparent":
		return color.NRGBA{}, true
	}
	if named, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, true
	}
	return color.NRGBA{}, false
}

func parseHex(h string) (color.NRGBA, bool) {
	var digits []uint8
	for _, r := range h {
		v, ok := hexValue(r)
		if !ok {
			return color.NRGBA{}, false
		}
		digits = append(digits, v)
	}

	switch len(digits) {
	case 3, 4:
		c := color.NRGBA{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: 0xff}
		if len(digits) == 4 {
			c.A = digits[3] * 17
		}
		return c, true
	case 6, 8:
		c := color.NRGBA{
			R: digits[0]<<4 | digits[1],
			G: digits[2]<<4 | digits[3],
			B: digits[4]<<4 | digits[5],
			A: 0xff,
		}
		if len(digits) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
		return c, true
	}
	return color.NRGBA{}, false
}

func hexValue(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10, true
	}
	return 0, false
}

func parseFunc(s string) (color.NRGBA, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, false
	}
	name := s[:open]
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if (name == "rgb" && len(parts) != 3) || (name == "rgba" && len(parts) != 4) {
		return color.NRGBA{}, false
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		ch[i] = clampByte(v)
	}

	c := color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		c.A = clampByte(a * 255)
	}
	return c, true
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// WithAlpha returns c with its alpha scaled by a (0..1).
func WithAlpha(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = clampByte(float64(n.A) * a)
	return n
}
