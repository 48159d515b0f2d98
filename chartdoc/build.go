package chartdoc

import (
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/okchart/chartdraw"
	"github.com/benoitkugler/okchart/chartgrad"
	"github.com/benoitkugler/okchart/chartpath"
	"github.com/benoitkugler/okchart/chartscale"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 400
)

var (
	defaultStroke = chartdraw.NewPlainColor(0x46, 0x82, 0xb4, 0xff) // steelblue
	defaultFill   = chartdraw.NewPlainColor(0x46, 0x82, 0xb4, 0x80)
)

func isArea(s *SeriesSpec) bool { return strings.EqualFold(s.Kind, "area") }
func isBar(s *SeriesSpec) bool { return strings.EqualFold(s.Kind, "bar") }

// extent returns the bounds of the finite values,
// and false if there is none.
func extent(values []float64) (chartscale.Bounds, bool) {
	b := chartscale.Bounds{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		b.Min, b.Max = math.Min(b.Min, v), math.Max(b.Max, v)
	}
	return b, b.Min <= b.Max
}

// xValues returns the x values of the series,
// defaulting to the indices.
func xValues(s *SeriesSpec) []float64 {
	out := make([]float64, len(s.Y))
	for i := range out {
		out[i] = float64(i)
		if i < len(s.X) && s.X[i] != nil {
			out[i] = *s.X[i]
		}
	}
	return out
}

func (doc *Document) maxLen() int {
	n := 0
	for _, s := range doc.Series {
		if len(s.Y) > n {
			n = len(s.Y)
		}
	}
	return n
}

// buildScale returns the scale described by spec. When not provided,
// the domain is the extent of `values` and the range is [r0, r1].
func buildScale(spec ScaleSpec, values []float64, count int, r0, r1 float64) (chartscale.Scale, error) {
	rng := chartscale.Bounds{Min: r0, Max: r1}
	if spec.Range != nil {
		rng = chartscale.Bounds(*spec.Range)
	}
	typ := strings.ToLower(spec.Type)
	if typ == "band" {
		dom := chartscale.Bounds{Min: 0, Max: float64(count - 1)}
		if spec.Domain != nil {
			dom = chartscale.Bounds(*spec.Domain)
		}
		if spec.Padding < 0 || spec.Padding > 1 {
			return nil, fmt.Errorf("band padding %g: %w", spec.Padding, ErrParamMismatch)
		}
		return chartscale.NewBand(chartscale.BandOptions{Domain: dom, Range: rng, Padding: spec.Padding}), nil
	}

	opts := chartscale.NumericOptions{Type: chartscale.Linear, Range: rng}
	if typ == "log" {
		opts.Type = chartscale.Log
		// non positive values can't be displayed
		var positive []float64
		for _, v := range values {
			if v > 0 {
				positive = append(positive, v)
			}
		}
		values = positive
	}
	if spec.Domain != nil {
		opts.Domain = chartscale.Bounds(*spec.Domain)
	} else if b, ok := extent(values); ok {
		opts.Domain = b
	} else if opts.Type == chartscale.Log {
		opts.Domain = chartscale.Bounds{Min: 1, Max: 10}
	} else {
		opts.Domain = chartscale.Bounds{Min: 0, Max: 1}
	}
	return chartscale.NewNumeric(opts), nil
}

func parsePaint(s string) (chartdraw.Pattern, error) {
	c, err := chartgrad.ParseColor(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidColor, err)
	}
	return chartdraw.PlainColor(c), nil
}

func buildGradient(spec *GradientSpec) (*chartgrad.Gradient, error) {
	if len(spec.Stops) == 0 {
		return nil, fmt.Errorf("%w: no stops", ErrInvalidGradient)
	}
	g := &chartgrad.Gradient{Axis: chartgrad.DefaultAxis}
	switch strings.ToLower(spec.Axis) {
	case "x":
		g.Axis = chartgrad.X
	case "y":
		g.Axis = chartgrad.Y
	}
	relative := false
	for _, st := range spec.Stops {
		if _, err := chartgrad.ParseColor(st.Color); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidColor, err)
		}
		relative = relative || st.Offset.IsRelative()
	}
	stops := func(b chartscale.Bounds) []chartgrad.Stop {
		out := make([]chartgrad.Stop, len(spec.Stops))
		for i, st := range spec.Stops {
			out[i] = chartgrad.Stop{Offset: st.Offset.Resolve(b.Min, b.Max), Color: st.Color, Opacity: st.Opacity}
		}
		return out
	}
	if relative {
		g.Stops = chartgrad.Dynamic(stops)
	} else {
		g.Stops = chartgrad.Static(stops(chartscale.Bounds{}))
	}
	return g, nil
}

// Build returns the chart described by the document.
// Width and height default to DefaultWidth and DefaultHeight; the scale
// domains default to the extent of the data, and their range to the
// canvas, with the y axis pointing up.
func Build(doc *Document) (*chartdraw.Chart, error) {
	if len(doc.Series) == 0 {
		return nil, ErrNoSeries
	}
	width, height := doc.Width, doc.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var xs, ys []float64
	for i := range doc.Series {
		s := &doc.Series[i]
		xs = append(xs, xValues(s)...)
		ys = append(ys, s.Y.Floats()...)
		if isArea(s) || isBar(s) {
			base := 0.
			if s.Baseline != nil {
				base = *s.Baseline
			}
			ys = append(ys, base)
		}
	}
	n := doc.maxLen()
	xScale, err := buildScale(doc.X, xs, n, 0, width)
	if err != nil {
		return nil, fmt.Errorf("x scale: %w", err)
	}
	yScale, err := buildScale(doc.Y, ys, n, height, 0)
	if err != nil {
		return nil, fmt.Errorf("y scale: %w", err)
	}

	chart := &chartdraw.Chart{Width: width, Height: height, XScale: xScale, YScale: yScale}
	for i := range doc.Series {
		s, err := buildSeries(&doc.Series[i], xScale, yScale)
		if err != nil {
			return nil, fmt.Errorf("series %d (%s): %w", i, doc.Series[i].Name, err)
		}
		chart.Series = append(chart.Series, s)
	}
	return chart, nil
}

func buildSeries(spec *SeriesSpec, xScale, yScale chartscale.Scale) (chartdraw.Series, error) {
	curve, _ := chartpath.ParseCurve(spec.Curve)
	var xData []float64
	if len(spec.X) != 0 {
		xData = spec.X.Floats()
	}

	var out chartdraw.Series
	area := isArea(spec) || isBar(spec)
	if isBar(spec) {
		opts := chartpath.BarOptions{
			Data: spec.Y.Data(), XData: xData,
			XScale: xScale, YScale: yScale, Baseline: spec.Baseline,
		}
		if spec.Radius != nil {
			opts.Radius = *spec.Radius
		}
		out = chartdraw.NewBarSeries(opts, defaultFill)
	} else if area {
		out = chartdraw.NewAreaSeries(chartpath.AreaOptions{
			Data: spec.Y.Data(), XData: xData, Curve: curve,
			XScale: xScale, YScale: yScale, Baseline: spec.Baseline,
		}, defaultFill)
	} else {
		out = chartdraw.NewLineSeries(chartpath.LineOptions{
			Data: spec.Y.Data(), XData: xData, Curve: curve,
			XScale: xScale, YScale: yScale,
		}, defaultStroke)
	}
	out.Name = spec.Name

	var err error
	if spec.Fill != "" {
		if out.Fill, err = parsePaint(spec.Fill); err != nil {
			return out, err
		}
	}
	if spec.Stroke != "" {
		if out.Stroke, err = parsePaint(spec.Stroke); err != nil {
			return out, err
		}
	}
	if g := spec.Gradient; g != nil {
		grad, err := buildGradient(g)
		if err != nil {
			return out, err
		}
		fill := chartdraw.NewGradientFill(grad, xScale, yScale)
		if fill == nil {
			return out, fmt.Errorf("%w: no scale for axis %s", ErrInvalidGradient, grad.Axis)
		}
		target := strings.ToLower(g.Target)
		if target == "fill" || (target == "" && area) {
			out.Fill = fill
		} else {
			out.Stroke = fill
		}
	}
	if spec.StrokeWidth != nil {
		out.StrokeWidth = *spec.StrokeWidth
	}
	if spec.StrokeOpacity != nil {
		out.StrokeOpacity = *spec.StrokeOpacity
	}
	if spec.FillOpacity != nil {
		out.FillOpacity = *spec.FillOpacity
	}
	if len(spec.Dash) != 0 {
		out.Dash.Dash = spec.Dash.Floats()
	}
	return out, nil
}
