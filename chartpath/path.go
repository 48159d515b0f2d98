// Implements an abstract representation of
// chart paths: data points are projected through scales,
// joined by an interpolation curve, and stored as a sequence
// of basic SVG operations which can be serialized or
// consumed by a painting driver (see okchart/chartdraw).
package chartpath

import (
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// Fixed converts the point to the representation
// used by painting drivers.
func (p Point) Fixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// Operation groups the different SVG commands
type Operation interface {
	isOperation()
}

type MoveTo Point

type LineTo Point

type QuadTo [2]Point

type CubicTo [3]Point

type Close struct{}

func (MoveTo) isOperation()  {}
func (LineTo) isOperation()  {}
func (QuadTo) isOperation()  {}
func (CubicTo) isOperation() {}
func (Close) isOperation()   {}

// Path describes a sequence of basic SVG operations.
// The zero value is an empty path, ready to use.
type Path []Operation

// formatFloat returns the shortest representation of v,
// without negative zero.
func formatFloat(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writePoints(b *strings.Builder, cmd byte, pts ...Point) {
	b.WriteByte(cmd)
	for i, p := range pts {
		if i != 0 {
			b.WriteByte(',')
		}
		b.WriteString(formatFloat(p.X))
		b.WriteByte(',')
		b.WriteString(formatFloat(p.Y))
	}
}

// ToSVGPath returns the path as the value of
// an SVG "d" attribute.
func (p Path) ToSVGPath() string {
	var b strings.Builder
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			writePoints(&b, 'M', Point(op))
		case LineTo:
			writePoints(&b, 'L', Point(op))
		case QuadTo:
			writePoints(&b, 'Q', op[0], op[1])
		case CubicTo:
			writePoints(&b, 'C', op[0], op[1], op[2])
		case Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
