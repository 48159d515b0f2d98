// Implements a PDF backend to render charts,
// by wrapping github.com/jung-kurt/gofpdf.
package chartpdf

import (
	"errors"
	"io"

	"github.com/benoitkugler/okchart/chartdraw"
	"github.com/benoitkugler/okchart/chartgrad"
	"github.com/benoitkugler/okchart/chartpath"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ chartdraw.Driver  = Renderer{}
	_ chartdraw.Filler  = (*filler)(nil)
	_ chartdraw.Stroker = (*stroker)(nil)
)

// ErrEmptyCanvas is returned when rendering a chart without area.
var ErrEmptyCanvas = errors.New("chart has an empty canvas")

// number of points used to flatten one bezier segment
// when clipping a gradient
const flattenSteps = 16

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// RenderChart draws the chart on a new page
// sized to the chart, and writes the document to `w`.
func RenderChart(chart *chartdraw.Chart, w io.Writer) error {
	if chart.Width <= 0 || chart.Height <= 0 {
		return ErrEmptyCanvas
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: chart.Width, Ht: chart.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	chart.Draw(NewRenderer(pdf), 1)
	return pdf.Output(w)
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f chartdraw.Filler, s chartdraw.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

// pather buffers the path commands, which
// are only sent to the pdf when drawing
type pather struct {
	pdf  *gofpdf.Fpdf
	path chartpath.Path
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
	gradient          *chartdraw.GradientFill
}

// implements the stroking operation
type stroker struct {
	pather
}

func fixedTof(a fixed.Point26_6) chartpath.Point {
	return chartpath.Point{X: float64(a.X) / 64, Y: float64(a.Y) / 64}
}

func (p *pather) Clear()                  { p.path.Clear() }
func (p *pather) Start(a fixed.Point26_6) { p.path.Start(fixedTof(a)) }
func (p *pather) Line(b fixed.Point26_6)  { p.path.Line(fixedTof(b)) }
func (p *pather) Stop(closeLoop bool)     { p.path.Stop(closeLoop) }

func (p *pather) QuadBezier(b, c fixed.Point26_6) {
	p.path.QuadBezier(fixedTof(b), fixedTof(c))
}

func (p *pather) CubeBezier(b, c, d fixed.Point26_6) {
	p.path.CubeBezier(fixedTof(b), fixedTof(c), fixedTof(d))
}

// emit writes the buffered path to the pdf
func (p *pather) emit() {
	for _, op := range p.path {
		switch op := op.(type) {
		case chartpath.MoveTo:
			p.pdf.MoveTo(op.X, op.Y)
		case chartpath.LineTo:
			p.pdf.LineTo(op.X, op.Y)
		case chartpath.QuadTo:
			p.pdf.CurveTo(op[0].X, op[0].Y, op[1].X, op[1].Y)
		case chartpath.CubicTo:
			p.pdf.CurveBezierCubicTo(op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case chartpath.Close:
			p.pdf.ClosePath()
		}
	}
}

func (f *filler) SetColor(color chartdraw.Pattern, opacity float64) {
	f.gradient = nil
	switch color := color.(type) {
	case chartdraw.PlainColor:
		f.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
		opacity *= float64(color.A) / 255.
	case *chartdraw.GradientFill:
		f.gradient = color
	}
	f.pdf.SetAlpha(opacity, "")
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	if f.gradient != nil {
		f.drawGradient()
		return
	}
	f.emit()
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

// drawGradient paints the gradient inside each sub-path, one
// two-colors shading per pair of consecutive stops.
// Stop opacities are not rendered.
func (f *filler) drawGradient() {
	stops := f.gradient.Stops()
	bounds, ok := f.path.Bounds()
	if len(stops) == 0 || !ok {
		return
	}
	for _, poly := range f.path.Flatten(flattenSteps) {
		if len(poly) < 3 {
			continue
		}
		points := make([]gofpdf.PointType, len(poly))
		for i, p := range poly {
			points[i] = gofpdf.PointType{X: p.X, Y: p.Y}
		}
		f.pdf.ClipPolygon(points, false)
		paintStops(f.pdf, f.gradient, stops, bounds)
		f.pdf.ClipEnd()
	}
}

// paintStops covers `bounds` with the gradient: the areas
// before the first and after the last stops are padded.
func paintStops(pdf *gofpdf.Fpdf, g *chartdraw.GradientFill, stops []chartdraw.Stop, bounds chartpath.Rect) {
	horizontal := g.Gradient.Axis == chartgrad.X
	a0, a1 := g.Start.Y, g.End.Y
	lo, hi := bounds.Min.Y, bounds.Max.Y
	if horizontal {
		a0, a1 = g.Start.X, g.End.X
		lo, hi = bounds.Min.X, bounds.Max.X
	}
	at := func(pos float64) float64 { return a0 + pos*(a1-a0) }
	// band returns the rectangle covering [u0, u1] along the gradient axis
	band := func(u0, u1 float64) (x, y, w, h float64) {
		if u0 > u1 {
			u0, u1 = u1, u0
		}
		if horizontal {
			return u0, bounds.Min.Y, u1 - u0, bounds.H()
		}
		return bounds.Min.X, u0, bounds.W(), u1 - u0
	}

	first, last := stops[0], stops[len(stops)-1]
	pdf.SetFillColor(int(first.Color.R), int(first.Color.G), int(first.Color.B))
	pdf.Rect(bounds.Min.X, bounds.Min.Y, bounds.W(), bounds.H(), "F")

	end := hi // the side of the last stop
	if a1 < a0 {
		end = lo
	}
	pdf.SetFillColor(int(last.Color.R), int(last.Color.G), int(last.Color.B))
	x, y, w, h := band(at(last.Position), end)
	pdf.Rect(x, y, w, h, "F")

	for i := 0; i+1 < len(stops); i++ {
		s1, s2 := stops[i], stops[i+1]
		u1, u2 := at(s1.Position), at(s2.Position)
		if u1 == u2 {
			continue
		}
		x, y, w, h := band(u1, u2)
		// gradient vector, relative to the band, whose
		// origin is its lower left corner
		var x1, y1, x2, y2 float64
		forward := u1 < u2
		switch {
		case horizontal && forward:
			x2 = 1
		case horizontal:
			x1 = 1
		case forward: // s1 is above s2 on the page
			y1 = 1
		default:
			y2 = 1
		}
		pdf.LinearGradient(x, y, w, h,
			int(s1.Color.R), int(s1.Color.G), int(s1.Color.B),
			int(s2.Color.R), int(s2.Color.G), int(s2.Color.B),
			x1, y1, x2, y2)
	}
}

// gradients are approximated by their middle color
func (s *stroker) SetColor(color chartdraw.Pattern, opacity float64) {
	switch color := color.(type) {
	case chartdraw.PlainColor:
		s.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
		opacity *= float64(color.A) / 255.
	case *chartdraw.GradientFill:
		c := color.ColorAt(color.Midpoint())
		s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	}
	s.pdf.SetAlpha(opacity, "")
}

func (s *stroker) SetStrokeOptions(options chartdraw.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(options.Cap.String())
	s.pdf.SetLineJoinStyle(options.Join.String())
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) Draw() {
	s.emit()
	s.pdf.DrawPath("D")
}
