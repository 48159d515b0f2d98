package chartdraw

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/okchart/chartgrad"
	"github.com/benoitkugler/okchart/chartpath"
	"github.com/benoitkugler/okchart/chartscale"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/fixed"
)

// recorder logs every draw operation as text
type recorder struct {
	name string
	ops  *[]string

	winding bool
	stroke  StrokeOptions
}

func (r *recorder) log(format string, args ...interface{}) {
	*r.ops = append(*r.ops, r.name+" "+fmt.Sprintf(format, args...))
}

func pt(p fixed.Point26_6) string { return fmt.Sprintf("%d,%d", p.X.Round(), p.Y.Round()) }

func (r *recorder) Clear()                          { r.log("clear") }
func (r *recorder) Start(a fixed.Point26_6)         { r.log("M%s", pt(a)) }
func (r *recorder) Line(b fixed.Point26_6)          { r.log("L%s", pt(b)) }
func (r *recorder) QuadBezier(b, c fixed.Point26_6) { r.log("Q%s %s", pt(b), pt(c)) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) {
	r.log("C%s %s %s", pt(b), pt(c), pt(d))
}
func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.log("Z")
	}
}
func (r *recorder) SetColor(c Pattern, opacity float64) {
	switch c := c.(type) {
	case PlainColor:
		r.log("color %d,%d,%d,%d %g", c.R, c.G, c.B, c.A, opacity)
	case *GradientFill:
		r.log("gradient %d stops %g", len(c.Processed.Colors), opacity)
	}
}
func (r *recorder) Draw()                             { r.log("draw") }
func (r *recorder) SetWinding(useNonZeroWinding bool) { r.winding = useNonZeroWinding }
func (r *recorder) SetStrokeOptions(options StrokeOptions) {
	r.stroke = options
	r.log("width %d", options.LineWidth.Round())
}

type recordingDriver struct {
	ops []string
}

var _ Driver = (*recordingDriver)(nil)

func (d *recordingDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		f = &recorder{name: "fill", ops: &d.ops}
	}
	if willStroke {
		s = &recorder{name: "stroke", ops: &d.ops}
	}
	return f, s
}

func linear(d0, d1, r0, r1 float64) *chartscale.Numeric {
	return chartscale.NewNumeric(chartscale.NumericOptions{
		Domain: chartscale.Bounds{Min: d0, Max: d1},
		Range:  chartscale.Bounds{Min: r0, Max: r1},
	})
}

func TestLineSeriesDraw(t *testing.T) {
	xs, ys := linear(0, 2, 0, 20), linear(0, 10, 100, 0)
	s := NewLineSeries(chartpath.LineOptions{
		Data:   chartpath.Values(0, 10, 5),
		XScale: xs, YScale: ys,
	}, NewPlainColor(255, 0, 0, 255))

	var d recordingDriver
	s.Draw(&d, 0.5)

	exp := []string{
		"stroke clear",
		"stroke width 2",
		"stroke M0,100",
		"stroke L10,0",
		"stroke L20,50",
		"stroke color 255,0,0,255 0.5",
		"stroke draw",
	}
	if diff := cmp.Diff(exp, d.ops); diff != "" {
		t.Fatalf("unexpected ops (-want +got):\n%s", diff)
	}
}

func TestAreaSeriesDraw(t *testing.T) {
	xs, ys := linear(0, 1, 0, 10), linear(0, 10, 100, 0)
	s := NewAreaSeries(chartpath.AreaOptions{
		Data:   chartpath.Values(5, 10),
		XScale: xs, YScale: ys,
	}, NewPlainColor(0, 0, 255, 255))
	s.Stroke = NewPlainColor(0, 0, 0, 255)

	var d recordingDriver
	s.Draw(&d, 1)

	var fills, strokes []string
	for _, op := range d.ops {
		if strings.HasPrefix(op, "fill ") {
			fills = append(fills, strings.TrimPrefix(op, "fill "))
		} else {
			strokes = append(strokes, strings.TrimPrefix(op, "stroke "))
		}
	}
	expFill := []string{"clear", "M0,50", "L10,0", "L10,100", "L0,100", "Z", "color 0,0,255,255 1", "draw"}
	if diff := cmp.Diff(expFill, fills); diff != "" {
		t.Fatalf("unexpected fill ops (-want +got):\n%s", diff)
	}
	if len(strokes) == 0 || strokes[len(strokes)-1] != "draw" {
		t.Fatalf("expected the area to be stroked, got %v", strokes)
	}
	// fill happens before stroke
	if !strings.HasPrefix(d.ops[0], "fill") {
		t.Fatalf("expected fill first, got %s", d.ops[0])
	}
}

func TestBarSeriesDraw(t *testing.T) {
	xs := chartscale.NewBand(chartscale.BandOptions{Domain: chartscale.Bounds{Min: 0, Max: 1}, Range: chartscale.Bounds{Min: 0, Max: 20}})
	s := NewBarSeries(chartpath.BarOptions{
		Data:   chartpath.Values(5, 10),
		XScale: xs, YScale: linear(0, 10, 100, 0),
	}, NewPlainColor(0, 128, 0, 255))

	var d recordingDriver
	s.Draw(&d, 1)

	exp := []string{
		"fill clear",
		"fill M0,50", "fill L10,50", "fill L10,100", "fill L0,100", "fill Z",
		"fill M10,0", "fill L20,0", "fill L20,100", "fill L10,100", "fill Z",
		"fill color 0,128,0,255 1",
		"fill draw",
	}
	if diff := cmp.Diff(exp, d.ops); diff != "" {
		t.Fatalf("unexpected ops (-want +got):\n%s", diff)
	}
}

func TestQuadraticReplay(t *testing.T) {
	s := DefaultStyle
	s.Path = chartpath.Path{chartpath.MoveTo{X: 0, Y: 0}, chartpath.QuadTo{{X: 5, Y: 10}, {X: 10, Y: 0}}}
	s.Stroke = NewPlainColor(0, 0, 0, 255)

	var d recordingDriver
	s.Draw(&d, 1)

	exp := []string{
		"stroke clear",
		"stroke width 2",
		"stroke M0,0",
		"stroke Q5,10 10,0",
		"stroke color 0,0,0,255 1",
		"stroke draw",
	}
	if diff := cmp.Diff(exp, d.ops); diff != "" {
		t.Fatalf("unexpected ops (-want +got):\n%s", diff)
	}
}

func TestEmptySeries(t *testing.T) {
	var d recordingDriver
	s := NewLineSeries(chartpath.LineOptions{}, NewPlainColor(0, 0, 0, 255))
	s.Draw(&d, 1)
	if len(d.ops) != 0 {
		t.Fatalf("expected no operations, got %v", d.ops)
	}

	s = NewLineSeries(chartpath.LineOptions{
		Data: chartpath.Values(1, 2), XScale: linear(0, 1, 0, 1), YScale: linear(0, 1, 0, 1),
	}, nil)
	s.Draw(&d, 1)
	if len(d.ops) != 0 {
		t.Fatalf("expected no operations without paint, got %v", d.ops)
	}
}

func TestChartDraw(t *testing.T) {
	xs, ys := linear(0, 1, 0, 10), linear(0, 1, 10, 0)
	c := Chart{
		Width: 10, Height: 10, XScale: xs, YScale: ys,
		Series: []Series{
			NewLineSeries(chartpath.LineOptions{Data: chartpath.Values(0, 1), XScale: xs, YScale: ys}, NewPlainColor(0, 0, 0, 255)),
			NewAreaSeries(chartpath.AreaOptions{Data: chartpath.Values(0, 1), XScale: xs, YScale: ys}, NewPlainColor(0, 0, 0, 255)),
		},
	}
	var d recordingDriver
	c.Draw(&d, 1)
	var draws int
	for _, op := range d.ops {
		if strings.HasSuffix(op, " draw") {
			draws++
		}
	}
	if draws != 2 {
		t.Fatalf("expected 2 draw calls, got %d", draws)
	}
}

func TestGradientFill(t *testing.T) {
	ys := linear(0, 100, 200, 0)
	g := &chartgrad.Gradient{
		Axis: chartgrad.Y,
		Stops: chartgrad.Static{
			{Offset: 0, Color: "red"},
			chartgrad.Stop{Offset: 50, Color: "blue"}.WithOpacity(0.5),
		},
	}
	gf := NewGradientFill(g, nil, ys)
	if gf == nil {
		t.Fatal("expected a gradient")
	}
	if gf.Start != (chartpath.Point{X: 0, Y: 200}) || gf.End != (chartpath.Point{X: 0, Y: 100}) {
		t.Fatalf("unexpected gradient line %v -> %v", gf.Start, gf.End)
	}
	if m := gf.Midpoint(); m != 25 {
		t.Fatalf("expected midpoint 25, got %g", m)
	}
	if c := gf.ColorAt(25); c.R != 128 || c.B != 128 || c.A != 255 {
		t.Fatalf("unexpected color %v", c)
	}
	stops := gf.Stops()
	if len(stops) != 2 || stops[0].Position != 0 || stops[1].Position != 1 {
		t.Fatalf("unexpected stops %v", stops)
	}
	if stops[0].Color.A != 255 || stops[1].Color.A != 128 {
		t.Fatalf("unexpected stop opacities %v", stops)
	}

	if NewGradientFill(g, ys, nil) != nil {
		t.Fatal("expected no gradient without y scale")
	}

	xs := linear(0, 10, 0, 100)
	gx := &chartgrad.Gradient{Axis: chartgrad.X, Stops: chartgrad.Static{{Offset: 2, Color: "red"}, {Offset: 8, Color: "blue"}}}
	gf = NewGradientFill(gx, xs, nil)
	if math.Abs(gf.Start.X-20) > 1e-9 || math.Abs(gf.End.X-80) > 1e-9 || gf.Start.Y != 0 {
		t.Fatalf("unexpected gradient line %v -> %v", gf.Start, gf.End)
	}
}

func TestModeStrings(t *testing.T) {
	for _, m := range []JoinMode{Round, Bevel, Miter} {
		if strings.HasPrefix(m.String(), "<") {
			t.Fatalf("missing string for join %d", m)
		}
	}
	for _, m := range []CapMode{RoundCap, ButtCap, SquareCap} {
		if strings.HasPrefix(m.String(), "<") {
			t.Fatalf("missing string for cap %d", m)
		}
	}
}
