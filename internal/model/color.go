package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// NormalizeColor converts a paint value to its canonical string form.
// Strings are trimmed and upper-cased when they are hex colors, color.Color
// values become "#RRGGBB" (or "transparent" when fully transparent) and
// anything else is formatted with %v. nil becomes "".
func NormalizeColor(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(c)
		if strings.HasPrefix(s, "#") {
			return strings.ToUpper(s)
		}
		return s
	case *string:
		if c == nil {
			return ""
		}
		return NormalizeColor(*c)
	case color.Color:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		if n.A == 0 {
			return TransparentFill
		}
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	case fmt.Stringer:
		return NormalizeColor(c.String())
	default:
		return fmt.Sprintf("%v", c)
	}
}

// ParseColor parses "#RGB", "#RRGGBB" or "transparent". Unknown values report false.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, TransparentFill) {
		return color.NRGBA{}, true
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}
