// Provides the scales used to position chart data:
// continuous numeric scales (linear or logarithmic) and
// band scales for categorical axes.
// Scales are immutable once built and safe to share.
package chartscale

// Bounds is a closed interval, used both for
// domains (data units) and ranges (pixels).
type Bounds struct {
	Min, Max float64
}

// Width returns Max - Min, which may be negative
// for reversed intervals.
func (b Bounds) Width() float64 { return b.Max - b.Min }

// Mid returns the center of the interval.
func (b Bounds) Mid() float64 { return (b.Min + b.Max) / 2 }

// Scale groups the two kinds of scales:
// *Numeric and *Band.
type Scale interface {
	// Domain returns the input interval of the scale.
	Domain() Bounds
	// Range returns the output (pixel) interval of the scale.
	Range() Bounds

	isScale()
}

func (*Numeric) isScale() {}
func (*Band) isScale()    {}

// IsNumeric returns true if s is a (non nil) continuous scale.
func IsNumeric(s Scale) bool {
	n, ok := s.(*Numeric)
	return ok && n != nil
}

// IsBand returns true if s is a (non nil) band scale.
func IsBand(s Scale) bool {
	b, ok := s.(*Band)
	return ok && b != nil
}
