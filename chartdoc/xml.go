package chartdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// docCursor is used while parsing XML documents
type docCursor struct {
	reporter
	doc      *Document
	stack    []string // names of the open elements
	series   *SeriesSpec
	gradient *GradientSpec
	text     strings.Builder // char data of <x> and <y> series elements
}

func (c *docCursor) parent() string {
	if len(c.stack) < 2 {
		return ""
	}
	return c.stack[len(c.stack)-2]
}

func (c *docCursor) unsupportedElement(name string) error {
	return c.unsupported(fmt.Errorf("cannot process element %s: %w", name, ErrUnsupported),
		zap.String("element", name))
}

func (c *docCursor) unsupportedAttr(element string, attr xml.Attr) error {
	return c.unsupported(fmt.Errorf("cannot process attribute %s of %s: %w", attr.Name.Local, element, ErrUnsupported),
		zap.String("element", element), zap.String("attribute", attr.Name.Local))
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("number %q: %w", v, ErrParamMismatch)
	}
	return f, nil
}

func parseFloatPtr(v string) (*float64, error) {
	f, err := parseFloat(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *docCursor) readChart(attrs []xml.Attr) (err error) {
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "width":
			c.doc.Width, err = parseFloat(attr.Value)
		case "height":
			c.doc.Height, err = parseFloat(attr.Value)
		default:
			err = c.unsupportedAttr("chart", attr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *docCursor) readScale(name string, attrs []xml.Attr) error {
	sc := &c.doc.X
	if name == "y" {
		sc = &c.doc.Y
	}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "type":
			sc.Type = attr.Value
		case "domain":
			var e Extent
			e, err = ParseExtent(attr.Value)
			sc.Domain = &e
		case "range":
			var e Extent
			e, err = ParseExtent(attr.Value)
			sc.Range = &e
		case "padding":
			sc.Padding, err = parseFloat(attr.Value)
		default:
			err = c.unsupportedAttr(name, attr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *docCursor) readSeries(attrs []xml.Attr) error {
	c.doc.Series = append(c.doc.Series, SeriesSpec{})
	s := &c.doc.Series[len(c.doc.Series)-1]
	c.series = s
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "name", "id":
			s.Name = attr.Value
		case "kind":
			s.Kind = attr.Value
		case "curve":
			s.Curve = attr.Value
		case "stroke":
			s.Stroke = attr.Value
		case "fill":
			s.Fill = attr.Value
		case "stroke-width":
			s.StrokeWidth, err = parseFloatPtr(attr.Value)
		case "stroke-opacity":
			s.StrokeOpacity, err = parseFloatPtr(attr.Value)
		case "fill-opacity":
			s.FillOpacity, err = parseFloatPtr(attr.Value)
		case "baseline":
			s.Baseline, err = parseFloatPtr(attr.Value)
		case "radius":
			s.Radius, err = parseFloatPtr(attr.Value)
		case "stroke-dasharray":
			s.Dash, err = ParseValues(attr.Value)
		case "x":
			s.X, err = ParseValues(attr.Value)
		case "y":
			s.Y, err = ParseValues(attr.Value)
		default:
			err = c.unsupportedAttr("series", attr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *docCursor) readGradient(attrs []xml.Attr) error {
	c.series.Gradient = new(GradientSpec)
	c.gradient = c.series.Gradient
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "axis":
			c.gradient.Axis = attr.Value
		case "target":
			c.gradient.Target = attr.Value
		default:
			if err := c.unsupportedAttr("gradient", attr); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *docCursor) readStop(attrs []xml.Attr) error {
	var st StopSpec
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "offset":
			st.Offset, err = ParseOffset(attr.Value)
		case "color", "stop-color":
			st.Color = attr.Value
		case "opacity", "stop-opacity":
			st.Opacity, err = parseFloatPtr(attr.Value)
		default:
			err = c.unsupportedAttr("stop", attr)
		}
		if err != nil {
			return err
		}
	}
	c.gradient.Stops = append(c.gradient.Stops, st)
	return nil
}

func (c *docCursor) readStartElement(se xml.StartElement) error {
	name, parent := se.Name.Local, c.parent()
	switch {
	case name == "chart" && parent == "":
		return c.readChart(se.Attr)
	case (name == "x" || name == "y") && parent == "chart":
		return c.readScale(name, se.Attr)
	case name == "series" && parent == "chart":
		return c.readSeries(se.Attr)
	case (name == "x" || name == "y" || name == "dash") && parent == "series":
		c.text.Reset()
		return nil
	case name == "gradient" && parent == "series":
		return c.readGradient(se.Attr)
	case name == "stop" && parent == "gradient":
		return c.readStop(se.Attr)
	}
	return c.unsupportedElement(name)
}

func (c *docCursor) readEndElement(name string) (err error) {
	if c.parent() != "series" {
		return nil
	}
	switch name {
	case "x":
		c.series.X, err = ParseValues(c.text.String())
	case "y":
		c.series.Y, err = ParseValues(c.text.String())
	case "dash":
		c.series.Dash, err = ParseValues(c.text.String())
	}
	return err
}

func readXML(stream io.Reader, rep reporter) (*Document, error) {
	cursor := &docCursor{reporter: rep, doc: new(Document)}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("invalid xml chart document")
				}
				break
			}
			return nil, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if !seenTag && se.Name.Local != "chart" {
				return nil, fmt.Errorf("unexpected root element %s: %w", se.Name.Local, ErrParamMismatch)
			}
			seenTag = true
			cursor.stack = append(cursor.stack, se.Name.Local)
			if err = cursor.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err = cursor.readEndElement(se.Name.Local); err != nil {
				return nil, err
			}
			cursor.stack = cursor.stack[:len(cursor.stack)-1]
		case xml.CharData:
			if len(cursor.stack) != 0 && cursor.parent() == "series" {
				cursor.text.Write(se)
			}
		}
	}
	return cursor.doc, nil
}
