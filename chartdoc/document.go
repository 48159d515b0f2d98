package chartdoc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/okchart/chartpath"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Document is the description of a chart.
type Document struct {
	Width  float64      `yaml:"width"`
	Height float64      `yaml:"height"`
	X      ScaleSpec    `yaml:"x"`
	Y      ScaleSpec    `yaml:"y"`
	Series []SeriesSpec `yaml:"series"`
}

// ScaleSpec describes one axis. Domain and Range
// are optional, see Build for their defaults.
type ScaleSpec struct {
	Type    string  `yaml:"type"` // linear (default), log or band
	Domain  *Extent `yaml:"domain"`
	Range   *Extent `yaml:"range"`
	Padding float64 `yaml:"padding"`
}

// Extent is written as two numbers, either
// in a list or separated by spaces.
type Extent struct {
	Min, Max float64
}

// SeriesSpec describes one line, area or bar series.
type SeriesSpec struct {
	Name          string        `yaml:"name"`
	Kind          string        `yaml:"kind"` // line (default), area or bar
	Curve         string        `yaml:"curve"`
	X             Values        `yaml:"x"`
	Y             Values        `yaml:"y"`
	Stroke        string        `yaml:"stroke"`
	Fill          string        `yaml:"fill"`
	StrokeWidth   *float64      `yaml:"strokeWidth"`
	StrokeOpacity *float64      `yaml:"strokeOpacity"`
	FillOpacity   *float64      `yaml:"fillOpacity"`
	Baseline      *float64      `yaml:"baseline"`
	Radius        *float64      `yaml:"radius"` // bars only
	Dash          Values        `yaml:"dash"`
	Gradient      *GradientSpec `yaml:"gradient"`
}

// GradientSpec describes a gradient keyed to a scale.
type GradientSpec struct {
	Axis   string     `yaml:"axis"`   // x or y (default)
	Target string     `yaml:"target"` // fill or stroke; defaults to fill for areas, stroke for lines
	Stops  []StopSpec `yaml:"stops"`
}

type StopSpec struct {
	Offset  Offset   `yaml:"offset"`
	Color   string   `yaml:"color"`
	Opacity *float64 `yaml:"opacity"`
}

// OffsetKind specifies how a stop offset is related
// to the domain of its scale.
type OffsetKind uint8

const (
	Absolute OffsetKind = iota // value in domain units
	DomainMin
	DomainMax
	Percent // percentage of the domain, from its minimum
)

// Offset is a stop position, either absolute or
// relative to the domain.
type Offset struct {
	Kind  OffsetKind
	Value float64
}

// IsRelative returns true if the offset
// depends on the domain.
func (o Offset) IsRelative() bool { return o.Kind != Absolute }

// Resolve returns the offset in domain units.
func (o Offset) Resolve(min, max float64) float64 {
	switch o.Kind {
	case DomainMin:
		return min
	case DomainMax:
		return max
	case Percent:
		return min + o.Value/100*(max-min)
	default:
		return o.Value
	}
}

// ParseOffset accepts a number, "min", "max" or a percentage ("25%").
func ParseOffset(s string) (Offset, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "min":
		return Offset{Kind: DomainMin}, nil
	case "max":
		return Offset{Kind: DomainMax}, nil
	}
	kind := Absolute
	if strings.HasSuffix(s, "%") {
		kind = Percent
		s = strings.TrimSuffix(s, "%")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Offset{}, fmt.Errorf("offset %q: %w", s, ErrParamMismatch)
	}
	return Offset{Kind: kind, Value: v}, nil
}

func (o *Offset) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: offset must be a scalar: %w", value.Line, ErrParamMismatch)
	}
	var err error
	*o, err = ParseOffset(value.Value)
	return err
}

// Values is a list of optional numbers. In text form,
// numbers are separated by spaces or commas, and
// "null" marks a missing value.
type Values []*float64

// Floats returns the values, with NaN for missing ones.
func (vs Values) Floats() []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	return out
}

// Data returns the values as series data, where missing
// values are gaps.
func (vs Values) Data() []*chartpath.Datum {
	out := make([]*chartpath.Datum, len(vs))
	for i, v := range vs {
		if v != nil && !math.IsNaN(*v) {
			out[i] = chartpath.Value(*v)
		}
	}
	return out
}

func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "null", "~", "-", "nan":
		return true
	}
	return false
}

// ParseValues parses the text form of Values.
func ParseValues(s string) (Values, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make(Values, len(fields))
	for i, f := range fields {
		if isNull(f) {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", f, ErrParamMismatch)
		}
		out[i] = &v
	}
	return out, nil
}

func (vs *Values) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var err error
		*vs, err = ParseValues(value.Value)
		return err
	case yaml.SequenceNode:
		out := make(Values, len(value.Content))
		for i, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected a number: %w", item.Line, ErrParamMismatch)
			}
			if item.ShortTag() == "!!null" || isNull(item.Value) {
				continue
			}
			v, err := strconv.ParseFloat(item.Value, 64)
			if err != nil {
				return fmt.Errorf("line %d: value %q: %w", item.Line, item.Value, ErrParamMismatch)
			}
			out[i] = &v
		}
		*vs = out
		return nil
	}
	return fmt.Errorf("line %d: expected a list of numbers: %w", value.Line, ErrParamMismatch)
}

// ParseExtent parses two numbers separated by spaces or commas.
func ParseExtent(s string) (Extent, error) {
	vs, err := ParseValues(s)
	if err != nil {
		return Extent{}, err
	}
	return extentFrom(vs)
}

func extentFrom(vs Values) (Extent, error) {
	if len(vs) != 2 || vs[0] == nil || vs[1] == nil {
		return Extent{}, fmt.Errorf("extent requires two numbers: %w", ErrParamMismatch)
	}
	return Extent{Min: *vs[0], Max: *vs[1]}, nil
}

func (e *Extent) UnmarshalYAML(value *yaml.Node) error {
	var vs Values
	if err := vs.UnmarshalYAML(value); err != nil {
		return err
	}
	var err error
	*e, err = extentFrom(vs)
	return err
}

// validate checks the enumerated fields, applying
// the error mode to unknown values.
func (doc *Document) validate(rep reporter) error {
	check := func(err error, fields ...zap.Field) error {
		return rep.unsupported(err, fields...)
	}
	for _, sc := range [...]struct {
		axis string
		spec ScaleSpec
	}{{"x", doc.X}, {"y", doc.Y}} {
		switch strings.ToLower(sc.spec.Type) {
		case "", "linear", "log", "band":
		default:
			if err := check(fmt.Errorf("%s scale %q: %w", sc.axis, sc.spec.Type, ErrUnknownScale),
				zap.String("axis", sc.axis)); err != nil {
				return err
			}
		}
	}
	for i, s := range doc.Series {
		name := zap.String("series", s.Name)
		switch strings.ToLower(s.Kind) {
		case "", "line", "area", "bar":
		default:
			if err := check(fmt.Errorf("series %d kind %q: %w", i, s.Kind, ErrUnknownKind), name); err != nil {
				return err
			}
		}
		if _, ok := chartpath.ParseCurve(s.Curve); !ok && s.Curve != "" {
			if err := check(fmt.Errorf("series %d curve %q: %w", i, s.Curve, ErrUnknownCurve), name); err != nil {
				return err
			}
		}
		if g := s.Gradient; g != nil {
			switch strings.ToLower(g.Axis) {
			case "", "x", "y":
			default:
				if err := check(fmt.Errorf("series %d gradient axis %q: %w", i, g.Axis, ErrUnknownAxis), name); err != nil {
					return err
				}
			}
			switch strings.ToLower(g.Target) {
			case "", "fill", "stroke":
			default:
				if err := check(fmt.Errorf("series %d gradient target %q: %w", i, g.Target, ErrUnsupported), name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
