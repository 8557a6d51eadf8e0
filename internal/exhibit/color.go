package exhibit

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultColor is used for boxes that do not name a color.
var DefaultColor = [4]uint8{128, 128, 128, 255}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" or an SVG color name such as "slategray".
func ParseColor(s string) ([4]uint8, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return [4]uint8{}, fmt.Errorf("unknown color %q", s)
		}
		return [4]uint8{c.R, c.G, c.B, c.A}, nil
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return [4]uint8{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [4]uint8{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}
