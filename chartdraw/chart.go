package chartdraw

import (
	"github.com/benoitkugler/okchart/chartpath"
	"github.com/benoitkugler/okchart/chartscale"
	"golang.org/x/image/math/fixed"
)

// Series binds a style to a path
type Series struct {
	Name string
	Path chartpath.Path

	Fill, Stroke               Pattern // nil disables filling or stroking
	FillOpacity, StrokeOpacity float64
	StrokeWidth                float64
	Join                       JoinMode
	Cap                        CapMode
	Dash                       DashOptions
	UseNonZeroWinding          bool
}

// Chart holds a list of series painted in a canvas of size
// Width x Height, in pixels.
type Chart struct {
	Width, Height  float64
	XScale, YScale chartscale.Scale
	Series         []Series
}

// DefaultStyle is the style of series built by NewLineSeries
// and NewAreaSeries: full opacity, 2 pixels wide round lines.
var DefaultStyle = Series{
	FillOpacity:       1,
	StrokeOpacity:     1,
	StrokeWidth:       2,
	Join:              Round,
	Cap:               RoundCap,
	UseNonZeroWinding: true,
}

// NewLineSeries returns a stroked series for the given line.
func NewLineSeries(opts chartpath.LineOptions, stroke Pattern) Series {
	s := DefaultStyle
	s.Path = opts.Shape()
	s.Stroke = stroke
	return s
}

// NewAreaSeries returns a filled series for the given area.
func NewAreaSeries(opts chartpath.AreaOptions, fill Pattern) Series {
	s := DefaultStyle
	s.Path = opts.Shape()
	s.Fill = fill
	return s
}

// NewBarSeries returns a filled series for the given bars.
func NewBarSeries(opts chartpath.BarOptions, fill Pattern) Series {
	s := DefaultStyle
	s.Path = opts.Shape()
	s.Fill = fill
	return s
}

// Draw the chart into the driver `d`.
func (c *Chart) Draw(d Driver, opacity float64) {
	for i := range c.Series {
		c.Series[i].Draw(d, opacity)
	}
}

// replay sends the path operations to the drawer
func replay(p chartpath.Path, d Drawer) {
	for _, op := range p {
		switch op := op.(type) {
		case chartpath.MoveTo:
			d.Stop(false) // implicit close if currently in path.
			d.Start(chartpath.Point(op).Fixed())
		case chartpath.LineTo:
			d.Line(chartpath.Point(op).Fixed())
		case chartpath.QuadTo:
			d.QuadBezier(op[0].Fixed(), op[1].Fixed())
		case chartpath.CubicTo:
			d.CubeBezier(op[0].Fixed(), op[1].Fixed(), op[2].Fixed())
		case chartpath.Close:
			d.Stop(true)
		}
	}
	d.Stop(false)
}

func toFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(f * 64) }

// Draw the series into the driver `d`.
func (s *Series) Draw(d Driver, opacity float64) {
	if len(s.Path) == 0 {
		return
	}
	filler, stroker := d.SetupDrawers(s.Fill != nil, s.Stroke != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(s.UseNonZeroWinding)
		replay(s.Path, filler)
		filler.SetColor(s.Fill, s.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth:  toFixed(s.StrokeWidth),
			MiterLimit: toFixed(4),
			Join:       s.Join,
			Cap:        s.Cap,
			Dash:       s.Dash,
		})
		replay(s.Path, stroker)
		stroker.SetColor(s.Stroke, s.StrokeOpacity*opacity)
		stroker.Draw()
	}
}
