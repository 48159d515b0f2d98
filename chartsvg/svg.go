// Serializes charts as SVG documents, keeping curves
// and gradients as native SVG elements.
package chartsvg

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/benoitkugler/okchart/chartdraw"
	"github.com/benoitkugler/okchart/chartgrad"
)

const xmlns = "http://www.w3.org/2000/svg"

type document struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Defs    *defs    `xml:"defs,omitempty"`
	Paths   []path   `xml:"path"`
}

type defs struct {
	Gradients []linearGradient `xml:"linearGradient"`
}

type linearGradient struct {
	ID    string `xml:"id,attr"`
	Units string `xml:"gradientUnits,attr"`
	X1    string `xml:"x1,attr"`
	Y1    string `xml:"y1,attr"`
	X2    string `xml:"x2,attr"`
	Y2    string `xml:"y2,attr"`
	Stops []stop `xml:"stop"`
}

type stop struct {
	Offset  string `xml:"offset,attr"`
	Color   string `xml:"stop-color,attr"`
	Opacity string `xml:"stop-opacity,attr"`
}

type path struct {
	ID            string `xml:"id,attr,omitempty"`
	D             string `xml:"d,attr"`
	Fill          string `xml:"fill,attr"`
	FillOpacity   string `xml:"fill-opacity,attr,omitempty"`
	FillRule      string `xml:"fill-rule,attr,omitempty"`
	Stroke        string `xml:"stroke,attr"`
	StrokeWidth   string `xml:"stroke-width,attr,omitempty"`
	StrokeOpacity string `xml:"stroke-opacity,attr,omitempty"`
	LineJoin      string `xml:"stroke-linejoin,attr,omitempty"`
	LineCap       string `xml:"stroke-linecap,attr,omitempty"`
	DashArray     string `xml:"stroke-dasharray,attr,omitempty"`
	DashOffset    string `xml:"stroke-dashoffset,attr,omitempty"`
}

func fmtF(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

type encoder struct {
	doc document
}

// paint returns the attribute value for the pattern,
// registering gradients as needed.
func (e *encoder) paint(p chartdraw.Pattern) string {
	switch p := p.(type) {
	case chartdraw.PlainColor:
		return chartgrad.FormatColor(color.NRGBA(p))
	case *chartdraw.GradientFill:
		if e.doc.Defs == nil {
			e.doc.Defs = new(defs)
		}
		id := fmt.Sprintf("gradient%d", len(e.doc.Defs.Gradients))
		lg := linearGradient{
			ID: id, Units: "userSpaceOnUse",
			X1: fmtF(p.Start.X), Y1: fmtF(p.Start.Y),
			X2: fmtF(p.End.X), Y2: fmtF(p.End.Y),
		}
		for i, c := range p.Processed.Colors {
			lg.Stops = append(lg.Stops, stop{
				Offset:  fmtF(p.Processed.Positions[i]),
				Color:   c,
				Opacity: fmtF(p.Processed.Opacities[i]),
			})
		}
		e.doc.Defs.Gradients = append(e.doc.Defs.Gradients, lg)
		return "url(#" + id + ")"
	}
	return "none"
}

func (e *encoder) series(s *chartdraw.Series) path {
	out := path{
		ID:     s.Name,
		D:      s.Path.ToSVGPath(),
		Fill:   e.paint(s.Fill),
		Stroke: e.paint(s.Stroke),
	}
	if s.Fill != nil {
		out.FillOpacity = fmtF(s.FillOpacity)
		if !s.UseNonZeroWinding {
			out.FillRule = "evenodd"
		}
	}
	if s.Stroke != nil {
		out.StrokeWidth = fmtF(s.StrokeWidth)
		out.StrokeOpacity = fmtF(s.StrokeOpacity)
		out.LineJoin = s.Join.String()
		out.LineCap = s.Cap.String()
		if len(s.Dash.Dash) != 0 {
			for i, d := range s.Dash.Dash {
				if i > 0 {
					out.DashArray += " "
				}
				out.DashArray += fmtF(d)
			}
			out.DashOffset = fmtF(s.Dash.DashOffset)
		}
	}
	return out
}

// Encode writes the chart to `w` as an SVG document.
func Encode(w io.Writer, chart *chartdraw.Chart) error {
	e := encoder{doc: document{
		Xmlns:   xmlns,
		Width:   fmtF(chart.Width),
		Height:  fmtF(chart.Height),
		ViewBox: fmt.Sprintf("0 0 %s %s", fmtF(chart.Width), fmtF(chart.Height)),
	}}
	for i := range chart.Series {
		s := &chart.Series[i]
		if len(s.Path) == 0 {
			continue
		}
		e.doc.Paths = append(e.doc.Paths, e.series(s))
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(e.doc); err != nil {
		return fmt.Errorf("encoding svg: %w", err)
	}
	return enc.Flush()
}
