package chartpath

import (
	"math"

	"github.com/benoitkugler/okchart/chartscale"
)

// Datum is one entry of a series.
// When HasX is false, the datum is positioned by its index
// in the series (or by the matching entry of an x data slice).
type Datum struct {
	X, Y float64
	HasX bool
}

// Value returns a datum positioned by index.
func Value(y float64) *Datum { return &Datum{Y: y} }

// Pair returns a datum with an explicit x.
func Pair(x, y float64) *Datum { return &Datum{X: x, Y: y, HasX: true} }

// Values wraps ys as a series positioned by index.
// NaN values are turned into gaps.
func Values(ys ...float64) []*Datum {
	out := make([]*Datum, len(ys))
	for i, y := range ys {
		if !math.IsNaN(y) {
			out[i] = Value(y)
		}
	}
	return out
}

// applyScale maps v through s. Band scales round v to the
// nearest index and return the center of the band.
// A nil scale returns NaN.
func applyScale(s chartscale.Scale, v float64) float64 {
	switch s := s.(type) {
	case *chartscale.Numeric:
		if s != nil {
			return s.Apply(v)
		}
	case *chartscale.Band:
		if s != nil {
			return s.Center(int(math.Round(v)))
		}
	}
	return math.NaN()
}

// ProjectPoint maps (x, y), expressed in data units, to pixel space.
func ProjectPoint(x, y float64, xScale, yScale chartscale.Scale) Point {
	return Point{X: applyScale(xScale, x), Y: applyScale(yScale, y)}
}

// ProjectOptions describes a series to project.
type ProjectOptions struct {
	Data []*Datum
	// XData optionally provides the x value of the datum
	// at the same index, when the x scale is numeric.
	XData          []float64
	XScale, YScale chartscale.Scale
}

// xValue returns the x of the i-th datum, in data units.
func (opts ProjectOptions) xValue(i int, d *Datum) float64 {
	if d.HasX {
		return d.X
	}
	if chartscale.IsNumeric(opts.XScale) && i < len(opts.XData) {
		return opts.XData[i]
	}
	return float64(i)
}

// ProjectPoints projects every datum of opts.Data.
// Nil entries are preserved as nil, and mark gaps in the series.
func ProjectPoints(opts ProjectOptions) []*Point {
	out := make([]*Point, len(opts.Data))
	for i, d := range opts.Data {
		if d == nil {
			continue
		}
		p := ProjectPoint(opts.xValue(i, d), d.Y, opts.XScale, opts.YScale)
		out[i] = &p
	}
	return out
}
