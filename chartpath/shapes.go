package chartpath

import (
	"math"

	"github.com/benoitkugler/okchart/chartscale"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePrime(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// addCorner adds a circular arc of radius r centered at (cx, cy),
// from angle eta1 to angle eta2, ending exactly at end.
// The arc is approximated with one cubic bezier curve by the method of
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
// or cubic Bezier curves", 2003
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
func (p *Path) addCorner(cx, cy, r, eta1, eta2 float64, end Point) {
	dEta := eta2 - eta1
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := ellipsePointAt(r, r, 0, 1, eta1, cx, cy)
	ldx, ldy := ellipsePrime(r, r, 0, 1, eta1, cx, cy)
	dx, dy := ellipsePrime(r, r, 0, 1, eta2, cx, cy)
	p.CubeBezier(Point{lx + alpha*ldx, ly + alpha*ldy}, Point{end.X - alpha*dx, end.Y - alpha*dy}, end)
}

// Bar returns the path of the rectangle with top left corner (x, y),
// with corners rounded by radius. The top and bottom corners are
// rounded independently. Negative sizes are normalized, and an
// empty rectangle returns a nil path.
func Bar(x, y, width, height, radius float64, roundTop, roundBottom bool) Path {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	if width == 0 || height == 0 {
		return nil
	}
	r := math.Max(0, math.Min(radius, math.Min(width, height)/2))
	var rTop, rBottom float64
	if roundTop {
		rTop = r
	}
	if roundBottom {
		rBottom = r
	}
	maxX, maxY := x+width, y+height
	const halfPi = math.Pi / 2

	var p Path
	p.Start(Point{x + rTop, y})
	p.Line(Point{maxX - rTop, y})
	if rTop > 0 {
		p.addCorner(maxX-rTop, y+rTop, rTop, -halfPi, 0, Point{maxX, y + rTop})
	}
	p.Line(Point{maxX, maxY - rBottom})
	if rBottom > 0 {
		p.addCorner(maxX-rBottom, maxY-rBottom, rBottom, 0, halfPi, Point{maxX - rBottom, maxY})
	}
	p.Line(Point{x + rBottom, maxY})
	if rBottom > 0 {
		p.addCorner(x+rBottom, maxY-rBottom, rBottom, halfPi, math.Pi, Point{x, maxY - rBottom})
	}
	if rTop > 0 {
		p.Line(Point{x, y + rTop})
		p.addCorner(x+rTop, y+rTop, rTop, math.Pi, 3*halfPi, Point{x + rTop, y})
	}
	p.Stop(true)
	return p
}

// BarPath returns the SVG path of a bar, see Bar.
func BarPath(x, y, width, height, radius float64, roundTop, roundBottom bool) string {
	return Bar(x, y, width, height, radius, roundTop, roundBottom).ToSVGPath()
}

// BarOptions describes a bar series: one rectangle per datum,
// going from the baseline to the value.
type BarOptions struct {
	Data           []*Datum
	XData          []float64
	XScale, YScale chartscale.Scale
	// Baseline is the y value, in data units, where the bars start.
	// When nil, 0 clamped to the y domain is used.
	Baseline *float64
	// Radius rounds the corners at the value end of each bar.
	Radius float64
}

// barWidth returns the bandwidth of a band x scale, or
// 80% of the range evenly shared between the data.
func (opts BarOptions) barWidth() float64 {
	switch xs := opts.XScale.(type) {
	case *chartscale.Band:
		if xs != nil {
			return xs.Bandwidth()
		}
	case *chartscale.Numeric:
		if xs != nil {
			rng := xs.Range()
			return 0.8 * math.Abs(rng.Max-rng.Min) / math.Max(1, float64(len(opts.Data)))
		}
	}
	return math.NaN()
}

// Shape returns the path of the bars, one closed sub-path per
// defined datum. Bars are centered on the projected x.
func (opts BarOptions) Shape() Path {
	base := AreaOptions{YScale: opts.YScale, Baseline: opts.Baseline}.baselinePixel()
	width := opts.barWidth()
	if math.IsNaN(base) || math.IsNaN(width) {
		return nil
	}
	project := ProjectOptions{Data: opts.Data, XData: opts.XData, XScale: opts.XScale, YScale: opts.YScale}
	var out Path
	for i, d := range opts.Data {
		if d == nil {
			continue
		}
		p := ProjectPoint(project.xValue(i, d), d.Y, opts.XScale, opts.YScale)
		if !defined(&p) {
			continue
		}
		up := p.Y <= base // the value is above the baseline
		out = append(out, Bar(p.X-width/2, base, width, p.Y-base, opts.Radius, up, !up)...)
	}
	return out
}
