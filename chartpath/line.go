package chartpath

import (
	"math"

	"github.com/benoitkugler/okchart/chartscale"
)

// LineOptions describes a line series.
type LineOptions struct {
	Data           []*Datum
	XData          []float64
	Curve          Curve
	XScale, YScale chartscale.Scale
}

func (opts LineOptions) project() []*Point {
	return ProjectPoints(ProjectOptions{Data: opts.Data, XData: opts.XData, XScale: opts.XScale, YScale: opts.YScale})
}

// defined returns true if p can be drawn. Points outside
// of their scale (NaN coordinates) are treated as gaps.
func defined(p *Point) bool {
	return p != nil && !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Line threads points through the curve. Undefined points split the
// line into independent segments.
func Line(points []*Point, curve Curve) Path {
	var p Path
	w := curve.writer(&p)
	inLine := false
	for _, pt := range points {
		if defined(pt) != inLine {
			inLine = !inLine
			if inLine {
				w.lineStart()
			} else {
				w.lineEnd()
			}
		}
		if inLine {
			w.point(pt.X, pt.Y)
		}
	}
	if inLine {
		w.lineEnd()
	}
	return p
}

// LinePath returns the SVG path of a line series,
// or an empty string for an empty series.
func LinePath(opts LineOptions) string {
	if len(opts.Data) == 0 {
		return ""
	}
	return opts.Shape().ToSVGPath()
}

// Shape returns the path of the line series.
func (opts LineOptions) Shape() Path { return Line(opts.project(), opts.Curve) }

// AreaOptions describes an area series: the surface between the
// line and a horizontal baseline.
type AreaOptions struct {
	Data           []*Datum
	XData          []float64
	Curve          Curve
	XScale, YScale chartscale.Scale
	// Baseline is the y value, in data units, closing the area.
	// When nil, 0 clamped to the y domain is used.
	Baseline *float64
}

// baselinePixel returns the y pixel of the area baseline.
func (opts AreaOptions) baselinePixel() float64 {
	switch ys := opts.YScale.(type) {
	case *chartscale.Numeric:
		if ys == nil {
			break
		}
		if opts.Baseline != nil {
			return ys.Apply(*opts.Baseline)
		}
		dom := ys.Domain()
		lo, hi := math.Min(dom.Min, dom.Max), math.Max(dom.Min, dom.Max)
		return ys.Apply(math.Max(lo, math.Min(0, hi)))
	case *chartscale.Band:
		if ys == nil {
			break
		}
		if opts.Baseline != nil {
			return ys.Center(int(math.Round(*opts.Baseline)))
		}
		return ys.Range().Min
	}
	return math.NaN()
}

// Area returns the closed path between the top points and the
// horizontal line at y = baseline, one sub-path per defined segment.
func Area(points []*Point, baseline float64, curve Curve) Path {
	var p Path
	w := curve.writer(&p)
	start := -1 // first index of the current segment
	for i := 0; i <= len(points); i++ {
		ok := i < len(points) && defined(points[i])
		if ok && start == -1 {
			start = i
			w.areaStart()
			w.lineStart()
		} else if !ok && start != -1 {
			w.lineEnd()
			w.lineStart()
			for k := i - 1; k >= start; k-- {
				w.point(points[k].X, baseline)
			}
			w.lineEnd()
			w.areaEnd()
			start = -1
		}
		if ok {
			w.point(points[i].X, points[i].Y)
		}
	}
	return p
}

// AreaPath returns the SVG path of an area series,
// or an empty string for an empty series.
func AreaPath(opts AreaOptions) string {
	if len(opts.Data) == 0 {
		return ""
	}
	return opts.Shape().ToSVGPath()
}

// Shape returns the path of the area series.
func (opts AreaOptions) Shape() Path {
	pts := ProjectPoints(ProjectOptions{Data: opts.Data, XData: opts.XData, XScale: opts.XScale, YScale: opts.YScale})
	return Area(pts, opts.baselinePixel(), opts.Curve)
}
