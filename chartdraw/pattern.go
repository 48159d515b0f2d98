package chartdraw

import (
	"image/color"
	"math"

	"github.com/benoitkugler/okchart/chartgrad"
	"github.com/benoitkugler/okchart/chartpath"
	"github.com/benoitkugler/okchart/chartscale"
)

// Pattern is either a PlainColor or a *GradientFill
type Pattern interface {
	isPattern()
}

func (PlainColor) isPattern()    {}
func (*GradientFill) isPattern() {}

// PlainColor is a uniform, non alpha-premultiplied color.
type PlainColor color.NRGBA

// NewPlainColor returns the color r, g, b, a
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color
func (c PlainColor) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// GradientFill is a gradient keyed to one of the chart scales,
// along a line in pixel space: Start is the position of the
// smallest stop offset, End the position of the largest one.
type GradientFill struct {
	Gradient  *chartgrad.Gradient
	Scale     chartscale.Scale
	Processed *chartgrad.Processed

	Start, End chartpath.Point
}

// NewGradientFill resolves g against the scale it is keyed to.
// It returns nil if the gradient can't be processed.
func NewGradientFill(g *chartgrad.Gradient, xScale, yScale chartscale.Scale) *GradientFill {
	s := chartgrad.ScaleFor(g, xScale, yScale)
	p := chartgrad.Process(g, s)
	if p == nil {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, o := range p.Offsets {
		lo, hi = math.Min(lo, o), math.Max(hi, o)
	}
	out := &GradientFill{Gradient: g, Scale: s, Processed: p}
	if g.Axis == chartgrad.X {
		out.Start.X, out.End.X = pixel(s, lo), pixel(s, hi)
	} else {
		out.Start.Y, out.End.Y = pixel(s, lo), pixel(s, hi)
	}
	return out
}

func pixel(s chartscale.Scale, v float64) float64 {
	switch s := s.(type) {
	case *chartscale.Numeric:
		return s.Apply(v)
	case *chartscale.Band:
		return s.Center(int(math.Round(v)))
	}
	return math.NaN()
}

// Midpoint returns the offset, in domain units, halfway
// between the extreme stops.
func (g *GradientFill) Midpoint() float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, o := range g.Processed.Offsets {
		lo, hi = math.Min(lo, o), math.Max(hi, o)
	}
	return (lo + hi) / 2
}

// ColorAt returns the opaque color of the gradient at value,
// in domain units, falling back to black.
func (g *GradientFill) ColorAt(value float64) color.NRGBA {
	c, err := chartgrad.ParseColor(chartgrad.EvaluateAt(g.Gradient, value, g.Scale))
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

// Stop is a resolved gradient stop, with a position in [0, 1]
type Stop struct {
	Color    color.NRGBA // with the stop opacity applied to the alpha channel
	Position float64
}

// Stops returns the parsed stops of the gradient, skipping
// invalid colors.
func (g *GradientFill) Stops() []Stop {
	p := g.Processed
	out := make([]Stop, 0, len(p.Colors))
	for i, s := range p.Colors {
		c, err := chartgrad.ParseColor(s)
		if err != nil {
			continue
		}
		c.A = uint8(math.Round(float64(c.A) * math.Max(0, math.Min(1, p.Opacities[i]))))
		out = append(out, Stop{Color: c, Position: p.Positions[i]})
	}
	return out
}
