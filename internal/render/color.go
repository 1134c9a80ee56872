package render

import (
	"strconv"
	"strings"

	"codeberg.org/mutker/devconsole/internal/errors"
)

// ParseColor parses "R,G,B" or "R,G,B,A" with components in 0-255.
// Alpha defaults to 255.
func ParseColor(s string) (Color, error) {
	errFactory := errors.New()

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, errFactory.WithData(errors.ErrInvalidColor, s)
	}

	vals := [4]uint8{3: 255}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return Color{}, errFactory.WithData(errors.ErrInvalidColor, s)
		}
		vals[i] = uint8(n)
	}

	return Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

// MustParseColor is ParseColor for package-level defaults.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
