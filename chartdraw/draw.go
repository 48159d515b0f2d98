// Defines the painting model of charts: series are styled paths,
// replayed into a Driver which performs the actual drawing
// (see okchart/chartraster and okchart/chartpdf).
package chartdraw

import (
	"golang.org/x/image/math/fixed"
)

// Drawer performs the low level path operations,
// without any knowledge of scales or series.
type Drawer interface {
	// Clear resets the path being built
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a segment from the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Stop ends the current sub-path, joining it to its
	// start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor sets the paint of the current path
	SetColor(color Pattern, opacity float64)

	// Draw paints the accumulated path
	Draw()
}

type Filler interface {
	Drawer

	// SetWinding selects the non-zero (true) or even-odd fill rule
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// SetStrokeOptions sets the line style of the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers is called once per series. A nil drawer
	// is returned when the matching `will` flag is false.
	// The same path is replayed into the Filler, then the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Round JoinMode = iota
	Bevel
	Miter
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	case Miter:
		return "miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	RoundCap CapMode = iota
	ButtCap
	SquareCap
)

func (c CapMode) String() string {
	switch c {
	case RoundCap:
		return "round"
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	default:
		return "<unknown CapMode>"
	}
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // width of the line
	MiterLimit fixed.Int26_6
	Join       JoinMode
	Cap        CapMode
	Dash       DashOptions
}
