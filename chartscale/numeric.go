package chartscale

import (
	"math"
)

// Type selects the mapping used by a numeric scale.
type Type uint8

const (
	Linear Type = iota
	Log
)

func (t Type) String() string {
	switch t {
	case Linear:
		return "linear"
	case Log:
		return "log"
	default:
		return "<unknown Type>"
	}
}

// NumericOptions describes a continuous scale.
type NumericOptions struct {
	Type   Type
	Domain Bounds
	Range  Bounds
}

// Numeric is a continuous and invertible scale.
type Numeric struct {
	typ    Type
	domain Bounds
	rng    Bounds
}

// NewNumeric returns the scale described by opts.
// A degenerate domain (Min == Max) is accepted: every value is then
// mapped to the middle of the range.
func NewNumeric(opts NumericOptions) *Numeric {
	return &Numeric{typ: opts.Type, domain: opts.Domain, rng: opts.Range}
}

func (s *Numeric) Type() Type      { return s.typ }
func (s *Numeric) Domain() Bounds  { return s.domain }
func (s *Numeric) Range() Bounds   { return s.rng }
func (s *Numeric) transform() bool { return s.typ == Log }

// forward applies the log transform if needed. Non positive values
// are outside a log scale and return NaN.
func (s *Numeric) forward(v float64) float64 {
	if !s.transform() {
		return v
	}
	if v <= 0 {
		return math.NaN()
	}
	return math.Log(v)
}

func (s *Numeric) backward(v float64) float64 {
	if !s.transform() {
		return v
	}
	return math.Exp(v)
}

// normalize maps v into [0, 1] for v in [a, b];
// a zero width interval maps everything to 0.5
func normalize(a, b, v float64) float64 {
	d := b - a
	if math.IsNaN(d) {
		return math.NaN()
	}
	if d == 0 {
		return 0.5
	}
	return (v - a) / d
}

// Apply maps the domain value v to the range.
func (s *Numeric) Apply(v float64) float64 {
	t := normalize(s.forward(s.domain.Min), s.forward(s.domain.Max), s.forward(v))
	return s.rng.Min + t*s.rng.Width()
}

// Invert maps the range value px back to the domain.
func (s *Numeric) Invert(px float64) float64 {
	t := normalize(s.rng.Min, s.rng.Max, px)
	a, b := s.forward(s.domain.Min), s.forward(s.domain.Max)
	return s.backward(a + t*(b-a))
}

// Ticks returns about n reference values spanning the domain.
// For log scales, the powers of ten inside the domain are returned.
func (s *Numeric) Ticks(n int) []float64 {
	if s.transform() {
		return logTicks(s.domain.Min, s.domain.Max)
	}
	return Ticks(s.domain.Min, s.domain.Max, n)
}

func logTicks(start, stop float64) []float64 {
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	if start <= 0 {
		return nil
	}
	var out []float64
	const eps = 1e-9 // math.Log10 is not exact for powers of ten
	for k := math.Ceil(math.Log10(start) - eps); k <= math.Floor(math.Log10(stop)+eps); k++ {
		out = append(out, math.Pow(10, k))
	}
	if reverse {
		reverseFloats(out)
	}
	return out
}
