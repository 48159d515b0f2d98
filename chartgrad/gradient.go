// Provides gradients whose stops are expressed in data units,
// and resolved against the domain of a chart scale.
package chartgrad

import (
	"math"
	"sort"

	"github.com/benoitkugler/okchart/chartscale"
)

// Axis selects the scale a gradient is keyed to.
type Axis uint8

const (
	DefaultAxis Axis = iota // same as Y
	X
	Y
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y, DefaultAxis:
		return "y"
	default:
		return "<unknown Axis>"
	}
}

// Stop is a color checkpoint of a gradient.
// Offset is expressed in the units of the scale domain.
type Stop struct {
	Offset  float64
	Color   string
	Opacity *float64 // nil means fully opaque
}

// WithOpacity returns a copy of s with the given opacity.
func (s Stop) WithOpacity(opacity float64) Stop {
	s.Opacity = &opacity
	return s
}

// OpacityValue returns the opacity of the stop, defaulting to 1.
func (s Stop) OpacityValue() float64 {
	if s.Opacity == nil {
		return 1
	}
	return *s.Opacity
}

// NormalizeStop returns s with its default opacity filled.
func NormalizeStop(s Stop) Stop {
	if s.Opacity == nil {
		return s.WithOpacity(1)
	}
	return s
}

// StopSource provides the stops of a gradient, either
// as a fixed list (Static) or computed from the domain
// bounds of the scale (Dynamic).
type StopSource interface {
	resolve(domain chartscale.Bounds) []Stop
}

// Static is an ordered list of stops.
type Static []Stop

// Dynamic computes the stops from the domain bounds
// of the scale the gradient is evaluated against.
type Dynamic func(domain chartscale.Bounds) []Stop

func (s Static) resolve(chartscale.Bounds) []Stop    { return s }
func (f Dynamic) resolve(b chartscale.Bounds) []Stop { return f(b) }

// Gradient is a color gradient along one axis of a chart.
type Gradient struct {
	Axis  Axis
	Stops StopSource
}

// ResolveStops returns the concrete stops of src. Dynamic sources are
// evaluated against the domain of s; static ones are returned unchanged.
// A nil scale is accepted for static sources only.
func ResolveStops(src StopSource, s chartscale.Scale) []Stop {
	switch src := src.(type) {
	case Static:
		return src
	case Dynamic:
		if src == nil || s == nil {
			return nil
		}
		return src.resolve(s.Domain())
	}
	return nil
}

// Processed is a gradient ready to be rendered: colors with
// their positions normalized to [0, 1].
type Processed struct {
	Colors    []string
	Positions []float64
	Opacities []float64
	// Offsets are the resolved offsets, in domain units.
	Offsets []float64
}

// Process resolves the stops of g against s, and normalizes their positions
// so that the smallest offset maps to 0 and the largest to 1.
// It returns nil if g or s is nil, or if no stops are resolved.
func Process(g *Gradient, s chartscale.Scale) *Processed {
	if g == nil || s == nil {
		return nil
	}
	stops := ResolveStops(g.Stops, s)
	if len(stops) == 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, st := range stops {
		lo, hi = math.Min(lo, st.Offset), math.Max(hi, st.Offset)
	}
	out := &Processed{
		Colors:    make([]string, len(stops)),
		Positions: make([]float64, len(stops)),
		Opacities: make([]float64, len(stops)),
		Offsets:   make([]float64, len(stops)),
	}
	for i, st := range stops {
		st = NormalizeStop(st)
		out.Colors[i] = st.Color
		out.Opacities[i] = *st.Opacity
		out.Offsets[i] = st.Offset
		if hi > lo {
			out.Positions[i] = (st.Offset - lo) / (hi - lo)
		}
	}
	return out
}

// EvaluateAt returns the color of the gradient at value (in domain units),
// formatted as "rgba(r, g, b, 1)". The colors of the two stops surrounding
// value are linearly interpolated; values outside the stops take the color
// of the closest one.
// The alpha is always 1: stop opacities only apply when a full gradient is
// painted, not to a single sampled color.
// An empty string is returned if the gradient can't be processed or holds
// an invalid color.
func EvaluateAt(g *Gradient, value float64, s chartscale.Scale) string {
	p := Process(g, s)
	if p == nil {
		return ""
	}
	n := len(p.Offsets)
	// first stop at or after value
	i := sort.Search(n, func(i int) bool { return p.Offsets[i] >= value })
	var (
		c1, c2 string
		t      float64
	)
	switch {
	case i == 0:
		c1, c2 = p.Colors[0], p.Colors[0]
	case i == n:
		c1, c2 = p.Colors[n-1], p.Colors[n-1]
	default:
		c1, c2 = p.Colors[i-1], p.Colors[i]
		if w := p.Offsets[i] - p.Offsets[i-1]; w > 0 {
			t = (value - p.Offsets[i-1]) / w
		}
	}
	col1, err := ParseColor(c1)
	if err != nil {
		return ""
	}
	col2, err := ParseColor(c2)
	if err != nil {
		return ""
	}
	return formatOpaque(blend(col1, col2, t))
}

// ScaleFor returns the scale the gradient is keyed to: xScale for
// the X axis, yScale otherwise. It returns nil if that scale is nil.
func ScaleFor(g *Gradient, xScale, yScale chartscale.Scale) chartscale.Scale {
	var s chartscale.Scale = yScale
	if g != nil && g.Axis == X {
		s = xScale
	}
	if s == nil || (!chartscale.IsNumeric(s) && !chartscale.IsBand(s)) {
		return nil
	}
	return s
}
