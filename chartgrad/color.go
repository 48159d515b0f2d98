package chartgrad

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var errInvalidColor = errors.New("invalid color")

// ParseColor parses a CSS color: a name, "transparent",
// "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)" or "rgba(r, g, b, a)".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case lower == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(lower, "#"):
		return parseHex(lower)
	case strings.HasPrefix(lower, "rgb"):
		return parseFunctional(lower)
	}
	if c, ok := colornames.Map[lower]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
}

func parseHex(s string) (color.NRGBA, error) {
	alpha := uint8(0xff)
	if len(s) == 9 { // #rrggbbaa
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
		}
		alpha, s = uint8(a), s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// parseFunctional handles rgb(...) and rgba(...)
func parseFunctional(s string) (color.NRGBA, error) {
	start, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if start == -1 || end < start {
		return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
	}
	args := strings.FieldsFunc(s[start+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
	}
	var channels [4]float64
	channels[3] = 1
	for i, arg := range args {
		percent := strings.HasSuffix(arg, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", errInvalidColor, s)
		}
		switch {
		case percent && i < 3:
			v = v * 255 / 100
		case percent:
			v /= 100
		}
		channels[i] = v
	}
	return color.NRGBA{
		R: clampByte(channels[0]),
		G: clampByte(channels[1]),
		B: clampByte(channels[2]),
		A: clampByte(channels[3] * 255),
	}, nil
}

func clampByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// blend linearly interpolates the r, g, b channels of c1 and c2;
// the alpha of the result is always opaque.
func blend(c1, c2 color.NRGBA, t float64) color.NRGBA {
	r, g, b := toColorful(c1).BlendRgb(toColorful(c2), t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// formatOpaque returns c as "rgba(r, g, b, 1)"
func formatOpaque(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, 1)", c.R, c.G, c.B)
}

// FormatColor returns c as a CSS rgba() color, c being
// non alpha-premultiplied.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(float64(c.A)/255, 'g', 3, 64))
}
