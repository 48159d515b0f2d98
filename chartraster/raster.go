// Implements a raster backend to render charts,
// by wrapping rasterx.
package chartraster

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/okchart/chartdraw"
	"github.com/srwiley/rasterx"
)

// assert interface conformance
var (
	_ chartdraw.Driver  = (*Renderer)(nil)
	_ chartdraw.Filler  = filler{}
	_ chartdraw.Stroker = stroker{}
)

// ErrEmptyCanvas is returned when rendering a chart without area.
var ErrEmptyCanvas = errors.New("chart has an empty canvas")

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	width, height float64 // used as gradient bounds
}

type filler struct {
	*rasterx.Filler
	rd *Renderer
}

type stroker struct {
	*rasterx.Dasher
	rd *Renderer
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
		width:  float64(width),
		height: float64(height),
	}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f chartdraw.Filler, s chartdraw.Stroker) {
	if willFill {
		f = filler{Filler: rd.filler, rd: rd}
	}
	if willStroke {
		s = stroker{Dasher: rd.dasher, rd: rd}
	}
	return f, s
}

// RasterChart uses a ScannerGV instance to render the
// chart into an image and returns it.
func RasterChart(chart *chartdraw.Chart) (*image.RGBA, error) {
	w, h := int(math.Ceil(chart.Width)), int(math.Ceil(chart.Height))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyCanvas
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	chart.Draw(renderer, 1.0)
	return img, nil
}

// EncodePNG rasterizes the chart and writes it to `w`
// as a PNG image.
func EncodePNG(w io.Writer, chart *chartdraw.Chart) error {
	img, err := RasterChart(chart)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (rd *Renderer) toRasterxGradient(grad *chartdraw.GradientFill) rasterx.Gradient {
	stops := grad.Stops()
	out := rasterx.Gradient{
		Points: [5]float64{grad.Start.X, grad.Start.Y, grad.End.X, grad.End.Y},
		Stops:  make([]rasterx.GradStop, len(stops)),
		Matrix: rasterx.Identity,
		Spread: rasterx.PadSpread,
		Units:  rasterx.UserSpaceOnUse,
	}
	out.Bounds.W, out.Bounds.H = rd.width, rd.height
	for i, st := range stops {
		out.Stops[i] = rasterx.GradStop{
			StopColor: color.NRGBA{R: st.Color.R, G: st.Color.G, B: st.Color.B, A: 0xff},
			Offset:    st.Position,
			Opacity:   float64(st.Color.A) / 0xff,
		}
	}
	return out
}

// resolve gradient color
func (rd *Renderer) setColorFromPattern(color chartdraw.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch fillerColor := color.(type) {
	case chartdraw.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case *chartdraw.GradientFill:
		if len(fillerColor.Processed.Colors) == 0 {
			return
		}
		rasterxGradient := rd.toRasterxGradient(fillerColor)
		scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}

func (f filler) SetColor(color chartdraw.Pattern, opacity float64) {
	f.rd.setColorFromPattern(color, opacity, f.Scanner)
}

func (s stroker) SetColor(color chartdraw.Pattern, opacity float64) {
	s.rd.setColorFromPattern(color, opacity, s.Scanner)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		chartdraw.Round: rasterx.Round,
		chartdraw.Bevel: rasterx.Bevel,
		chartdraw.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		chartdraw.ButtCap:   rasterx.ButtCap,
		chartdraw.SquareCap: rasterx.SquareCap,
		chartdraw.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) SetStrokeOptions(options chartdraw.StrokeOptions) {
	gap := rasterx.FlatGap
	if options.Join == chartdraw.Round {
		gap = rasterx.RoundGap
	}
	s.SetStroke(
		options.LineWidth, options.MiterLimit, capToFunc[options.Cap],
		capToFunc[options.Cap], gap,
		joinToJoin[options.Join], options.Dash.Dash, options.Dash.DashOffset,
	)
}
