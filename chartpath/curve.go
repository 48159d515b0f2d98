package chartpath

import (
	"math"
	"strings"
)

// Curve selects how consecutive points are joined.
type Curve uint8

const (
	Linear Curve = iota // default
	Monotone
	Natural
	Step
	StepBefore
	StepAfter
	CatmullRom
	Bump
	LinearClosed
)

var curveNames = [...]string{
	Linear:       "linear",
	Monotone:     "monotone",
	Natural:      "natural",
	Step:         "step",
	StepBefore:   "stepBefore",
	StepAfter:    "stepAfter",
	CatmullRom:   "catmullRom",
	Bump:         "bump",
	LinearClosed: "linearClosed",
}

func (c Curve) String() string {
	if int(c) < len(curveNames) {
		return curveNames[c]
	}
	return "<unknown Curve>"
}

// ParseCurve returns the curve with the given name (case insensitive),
// and false if the name is unknown, in which case Linear is returned.
func ParseCurve(name string) (Curve, bool) {
	for c, n := range curveNames {
		if strings.EqualFold(n, name) {
			return Curve(c), true
		}
	}
	return Linear, false
}

// curveWriter receives the points of a line, split into
// segments by lineStart/lineEnd. Areas are written as two lines
// (top then reversed baseline) between areaStart and areaEnd.
type curveWriter interface {
	areaStart()
	areaEnd()
	lineStart()
	lineEnd()
	point(x, y float64)
}

func (c Curve) writer(p *Path) curveWriter {
	st := lineState{p: p, line: plainLine}
	switch c {
	case Monotone:
		return &monotoneCurve{lineState: st}
	case Natural:
		return &naturalCurve{lineState: st}
	case Step:
		return &stepCurve{lineState: st, t: 0.5}
	case StepBefore:
		return &stepCurve{lineState: st, t: 0}
	case StepAfter:
		return &stepCurve{lineState: st, t: 1}
	case CatmullRom:
		return &catmullRomCurve{lineState: st, alpha: 0.5}
	case Bump:
		return &bumpCurve{lineState: st}
	case LinearClosed:
		return &linearClosedCurve{p: p}
	default:
		return &linearCurve{lineState: st}
	}
}

// plainLine marks a line which is not part of an area.
const plainLine = -1

// lineState tracks whether the current line is a standalone line,
// the top of an area (0) or its baseline (1)
type lineState struct {
	p    *Path
	line int8
}

func (s *lineState) areaStart() { s.line = 0 }
func (s *lineState) areaEnd()   { s.line = plainLine }

// open starts the line at (x, y); the baseline of an area
// continues the top line instead.
func (s *lineState) open(x, y float64) {
	if s.line == 1 {
		s.p.Line(Point{x, y})
	} else {
		s.p.Start(Point{x, y})
	}
}

// close ends the line, closing areas and isolated points.
func (s *lineState) close(single bool) {
	if s.line == 1 || (s.line == plainLine && single) {
		s.p.Stop(true)
	}
	if s.line >= 0 {
		s.line = 1 - s.line
	}
}

type linearCurve struct {
	lineState
	n int
}

func (c *linearCurve) lineStart() { c.n = 0 }
func (c *linearCurve) lineEnd()   { c.close(c.n == 1) }

func (c *linearCurve) point(x, y float64) {
	if c.n == 0 {
		c.open(x, y)
	} else {
		c.p.Line(Point{x, y})
	}
	c.n++
}

type linearClosedCurve struct {
	p *Path
	n int
}

func (c *linearClosedCurve) areaStart() {}
func (c *linearClosedCurve) areaEnd()   {}
func (c *linearClosedCurve) lineStart() { c.n = 0 }

func (c *linearClosedCurve) lineEnd() {
	if c.n != 0 {
		c.p.Stop(true)
	}
}

func (c *linearClosedCurve) point(x, y float64) {
	if c.n == 0 {
		c.p.Start(Point{x, y})
	} else {
		c.p.Line(Point{x, y})
	}
	c.n++
}

// stepCurve draws horizontal then vertical segments; the vertical
// step is placed at t in [0, 1] between two consecutive x.
type stepCurve struct {
	lineState
	t      float64
	x0, y0 float64
	n      int
}

func (c *stepCurve) lineStart() { c.n = 0 }

func (c *stepCurve) lineEnd() {
	if 0 < c.t && c.t < 1 && c.n >= 2 {
		c.p.Line(Point{c.x0, c.y0})
	}
	c.close(c.n == 1)
	if c.line >= 0 {
		// the baseline of an area is walked backward
		c.t = 1 - c.t
	}
}

func (c *stepCurve) point(x, y float64) {
	if c.n == 0 {
		c.open(x, y)
	} else if c.t <= 0 {
		c.p.Line(Point{c.x0, y})
		c.p.Line(Point{x, y})
	} else {
		x1 := c.x0*(1-c.t) + x*c.t
		c.p.Line(Point{x1, c.y0})
		c.p.Line(Point{x1, y})
	}
	c.n++
	c.x0, c.y0 = x, y
}

// bumpCurve joins points with cubic curves having
// horizontal tangents.
type bumpCurve struct {
	lineState
	x0, y0 float64
	n      int
}

func (c *bumpCurve) lineStart() { c.n = 0 }
func (c *bumpCurve) lineEnd()   { c.close(c.n == 1) }

func (c *bumpCurve) point(x, y float64) {
	if c.n == 0 {
		c.open(x, y)
	} else {
		mx := (c.x0 + x) / 2
		c.p.CubeBezier(Point{mx, c.y0}, Point{mx, y}, Point{x, y})
	}
	c.n++
	c.x0, c.y0 = x, y
}

// naturalCurve buffers a whole segment and emits a natural
// cubic spline, with second derivative zero at both ends.
type naturalCurve struct {
	lineState
	xs, ys []float64
}

func (c *naturalCurve) lineStart() { c.xs, c.ys = c.xs[:0], c.ys[:0] }

func (c *naturalCurve) point(x, y float64) {
	c.xs = append(c.xs, x)
	c.ys = append(c.ys, y)
}

func (c *naturalCurve) lineEnd() {
	n := len(c.xs)
	if n != 0 {
		c.open(c.xs[0], c.ys[0])
		if n == 2 {
			c.p.Line(Point{c.xs[1], c.ys[1]})
		} else if n > 2 {
			px0, px1 := naturalControlPoints(c.xs)
			py0, py1 := naturalControlPoints(c.ys)
			for i := 1; i < n; i++ {
				c.p.CubeBezier(Point{px0[i-1], py0[i-1]}, Point{px1[i-1], py1[i-1]}, Point{c.xs[i], c.ys[i]})
			}
		}
	}
	c.close(n == 1)
}

// naturalControlPoints solves the tridiagonal system giving
// the two control points of each of the len(x)-1 cubic pieces.
// See https://www.particleincell.com/2012/bezier-splines/
func naturalControlPoints(x []float64) (a, b []float64) {
	n := len(x) - 1
	a, b = make([]float64, n), make([]float64, n)
	r := make([]float64, n)
	a[0], b[0], r[0] = 0, 2, x[0]+2*x[1]
	for i := 1; i < n-1; i++ {
		a[i], b[i], r[i] = 1, 4, 4*x[i]+2*x[i+1]
	}
	a[n-1], b[n-1], r[n-1] = 2, 7, 8*x[n-1]+x[n]
	for i := 1; i < n; i++ {
		m := a[i] / b[i-1]
		b[i] -= m
		r[i] -= m * r[i-1]
	}
	a[n-1] = r[n-1] / b[n-1]
	for i := n - 2; i >= 0; i-- {
		a[i] = (r[i] - a[i+1]) / b[i]
	}
	b[n-1] = (x[n] + a[n-1]) / 2
	for i := 0; i < n-1; i++ {
		b[i] = 2*x[i+1] - a[i+1]
	}
	return a, b
}

// monotoneCurve is a cubic Hermite spline preserving the
// monotonicity of y, assuming x is monotonic.
// See Steffen, "A Simple Method for Monotonic Interpolation in One Dimension", 1990.
type monotoneCurve struct {
	lineState
	x0, y0, x1, y1 float64
	t0             float64
	n              int
}

func (c *monotoneCurve) lineStart() {
	c.x0, c.y0, c.x1, c.y1, c.t0 = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
	c.n = 0
}

func (c *monotoneCurve) lineEnd() {
	switch c.n {
	case 2:
		c.p.Line(Point{c.x1, c.y1})
	case 3:
		c.hermite(c.t0, c.slope2(c.t0))
	}
	c.close(c.n == 1)
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// zeroDivisor returns the signed zero used when
// an interval has no width.
func zeroDivisor(h, other float64) float64 {
	if h != 0 {
		return h
	}
	if other < 0 {
		return math.Copysign(0, -1)
	}
	return 0
}

// slope3 returns the tangent at (x1, y1), given the next point.
func (c *monotoneCurve) slope3(x2, y2 float64) float64 {
	h0, h1 := c.x1-c.x0, x2-c.x1
	s0 := (c.y1 - c.y0) / zeroDivisor(h0, h1)
	s1 := (y2 - c.y1) / zeroDivisor(h1, h0)
	p := (s0*h1 + s1*h0) / (h0 + h1)
	v := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// slope2 returns the tangent at an end point,
// given the tangent t at the other end.
func (c *monotoneCurve) slope2(t float64) float64 {
	h := c.x1 - c.x0
	if h != 0 && !math.IsNaN(h) {
		return (3*(c.y1-c.y0)/h - t) / 2
	}
	return t
}

// hermite emits the piece between (x0, y0) and (x1, y1)
// with tangents t0 and t1.
func (c *monotoneCurve) hermite(t0, t1 float64) {
	dx := (c.x1 - c.x0) / 3
	c.p.CubeBezier(Point{c.x0 + dx, c.y0 + dx*t0}, Point{c.x1 - dx, c.y1 - dx*t1}, Point{c.x1, c.y1})
}

func (c *monotoneCurve) point(x, y float64) {
	if x == c.x1 && y == c.y1 {
		return // coincident points
	}
	t1 := math.NaN()
	switch c.n {
	case 0:
		c.n = 1
		c.open(x, y)
	case 1:
		c.n = 2
	case 2:
		c.n = 3
		t1 = c.slope3(x, y)
		c.hermite(c.slope2(t1), t1)
	default:
		t1 = c.slope3(x, y)
		c.hermite(c.t0, t1)
	}
	c.x0, c.x1 = c.x1, x
	c.y0, c.y1 = c.y1, y
	c.t0 = t1
}

// catmullRomCurve is a centripetal (alpha = 0.5) Catmull-Rom spline.
// See Yuksel et al., "Parameterization and Applications of Catmull-Rom Curves", 2011.
type catmullRomCurve struct {
	lineState
	alpha float64

	x0, y0, x1, y1, x2, y2 float64
	l01a, l12a, l23a       float64 // distances to the power alpha
	l012a, l122a, l232a    float64 // distances to the power 2 alpha
	n                      int
}

const catmullEpsilon = 1e-12

func (c *catmullRomCurve) lineStart() {
	c.x0, c.x1, c.x2 = math.NaN(), math.NaN(), math.NaN()
	c.y0, c.y1, c.y2 = math.NaN(), math.NaN(), math.NaN()
	c.l01a, c.l12a, c.l23a = 0, 0, 0
	c.l012a, c.l122a, c.l232a = 0, 0, 0
	c.n = 0
}

func (c *catmullRomCurve) lineEnd() {
	switch c.n {
	case 2:
		c.p.Line(Point{c.x2, c.y2})
	case 3:
		c.point(c.x2, c.y2)
	}
	c.close(c.n == 1)
}

// bezier emits the piece between (x1, y1) and (x2, y2),
// (x, y) being the point following (x2, y2).
func (c *catmullRomCurve) bezier(x, y float64) {
	x1, y1, x2, y2 := c.x1, c.y1, c.x2, c.y2
	if c.l01a > catmullEpsilon {
		a := 2*c.l012a + 3*c.l01a*c.l12a + c.l122a
		n := 3 * c.l01a * (c.l01a + c.l12a)
		x1 = (x1*a - c.x0*c.l122a + c.x2*c.l012a) / n
		y1 = (y1*a - c.y0*c.l122a + c.y2*c.l012a) / n
	}
	if c.l23a > catmullEpsilon {
		b := 2*c.l232a + 3*c.l23a*c.l12a + c.l122a
		m := 3 * c.l23a * (c.l23a + c.l12a)
		x2 = (x2*b + c.x1*c.l232a - x*c.l122a) / m
		y2 = (y2*b + c.y1*c.l232a - y*c.l122a) / m
	}
	c.p.CubeBezier(Point{x1, y1}, Point{x2, y2}, Point{c.x2, c.y2})
}

func (c *catmullRomCurve) point(x, y float64) {
	if c.n != 0 {
		x23, y23 := c.x2-x, c.y2-y
		c.l232a = math.Pow(x23*x23+y23*y23, c.alpha)
		c.l23a = math.Sqrt(c.l232a)
	}
	switch c.n {
	case 0:
		c.n = 1
		c.open(x, y)
	case 1:
		c.n = 2
	case 2:
		c.n = 3
		c.bezier(x, y)
	default:
		c.bezier(x, y)
	}
	c.l01a, c.l12a = c.l12a, c.l23a
	c.l012a, c.l122a = c.l122a, c.l232a
	c.x0, c.x1, c.x2 = c.x1, c.x2, x
	c.y0, c.y1, c.y2 = c.y1, c.y2, y
}
