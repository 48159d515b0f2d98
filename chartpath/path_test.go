package chartpath

import (
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/okchart/chartscale"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func linear(d0, d1, r0, r1 float64) *chartscale.Numeric {
	return chartscale.NewNumeric(chartscale.NumericOptions{
		Domain: chartscale.Bounds{Min: d0, Max: d1},
		Range:  chartscale.Bounds{Min: r0, Max: r1},
	})
}

func pts(coords ...float64) []*Point {
	out := make([]*Point, len(coords)/2)
	for i := range out {
		out[i] = &Point{coords[2*i], coords[2*i+1]}
	}
	return out
}

func TestToSVGPath(t *testing.T) {
	p := Path{
		MoveTo{0, 1.5},
		LineTo{-2, 3},
		QuadTo{{1, 2}, {3, 4}},
		CubicTo{{1, 2}, {3, 4}, {5, 6}},
		Close{},
	}
	if got, want := p.ToSVGPath(), "M0,1.5L-2,3Q1,2,3,4C1,2,3,4,5,6Z"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got := formatFloat(math.Copysign(0, -1)); got != "0" {
		t.Errorf("negative zero formatted as %s", got)
	}
	p.Clear()
	if p.String() != "" {
		t.Errorf("cleared path should be empty")
	}
}

func TestLinePathEmpty(t *testing.T) {
	for c := Linear; c <= LinearClosed; c++ {
		if got := LinePath(LineOptions{Curve: c, XScale: linear(0, 1, 0, 1), YScale: linear(0, 1, 0, 1)}); got != "" {
			t.Errorf("%s: expected empty path, got %s", c, got)
		}
	}
}

func TestLinePath(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts LineOptions
		want string
	}{
		{
			"linear",
			LineOptions{Data: Values(0, 5, 10), XScale: linear(0, 2, 0, 100), YScale: linear(0, 10, 100, 0)},
			"M0,100L50,50L100,0",
		},
		{
			"gaps",
			LineOptions{Data: Values(0, math.NaN(), 10, 5), XScale: linear(0, 3, 0, 300), YScale: linear(0, 10, 100, 0)},
			"M0,100ZM200,0L300,50",
		},
		{
			"band",
			LineOptions{
				Data:   Values(0, 10),
				XScale: chartscale.NewBand(chartscale.BandOptions{Domain: chartscale.Bounds{Min: 0, Max: 1}, Range: chartscale.Bounds{Min: 0, Max: 100}}),
				YScale: linear(0, 10, 100, 0),
			},
			"M25,100L75,0",
		},
		{
			"x data",
			LineOptions{Data: []*Datum{Value(1), Value(3), Pair(7, 1)}, XData: []float64{2, 4, 5}, XScale: linear(0, 10, 0, 10), YScale: linear(0, 10, 0, 10)},
			"M2,1L4,3L7,1",
		},
		{
			"out of band",
			LineOptions{
				Data:   Values(1, 2, 3),
				XScale: chartscale.NewBand(chartscale.BandOptions{Domain: chartscale.Bounds{Min: 0, Max: 1}, Range: chartscale.Bounds{Min: 0, Max: 20}}),
				YScale: linear(0, 10, 0, 10),
			},
			"M5,1L15,2",
		},
		{
			"missing scale",
			LineOptions{Data: Values(1, 2), XScale: linear(0, 10, 0, 10)},
			"",
		},
	} {
		if got := LinePath(tc.opts); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestCurves(t *testing.T) {
	for _, tc := range []struct {
		curve  Curve
		points []*Point
		want   string
	}{
		{Linear, pts(5, 5), "M5,5Z"},
		{Linear, pts(0, 0, 1, 1, 2, 0), "M0,0L1,1L2,0"},
		{LinearClosed, pts(0, 0, 1, 1, 2, 0), "M0,0L1,1L2,0Z"},
		{Step, pts(0, 0, 1, 1, 2, 0), "M0,0L0.5,0L0.5,1L1.5,1L1.5,0L2,0"},
		{StepBefore, pts(0, 0, 1, 1, 2, 0), "M0,0L0,1L1,1L1,0L2,0"},
		{StepAfter, pts(0, 0, 1, 1, 2, 0), "M0,0L1,0L1,1L2,1L2,0"},
		{Bump, pts(0, 0, 1, 1, 2, 0), "M0,0C0.5,0,0.5,1,1,1C1.5,1,1.5,0,2,0"},
		{Natural, pts(0, 0, 3, 1, 6, 0), "M0,0C1,0.5,2,1,3,1C4,1,5,0.5,6,0"},
		{Natural, pts(0, 0, 3, 1), "M0,0L3,1"},
		{Monotone, pts(0, 0, 3, 1, 6, 0), "M0,0C1,0.5,2,1,3,1C4,1,5,0.5,6,0"},
		{Monotone, pts(0, 0, 3, 1), "M0,0L3,1"},
		{Monotone, pts(0, 0, 3, 1, 3, 1), "M0,0L3,1"},
		{CatmullRom, pts(0, 0, 3, 1), "M0,0L3,1"},
	} {
		if got := Line(tc.points, tc.curve).ToSVGPath(); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.curve, tc.want, got)
		}
	}
}

func TestCatmullRom(t *testing.T) {
	got := Line(pts(0, 0, 3, 0, 6, 0, 9, 0), CatmullRom)
	want := Path{
		MoveTo{0, 0},
		CubicTo{{0, 0}, {2, 0}, {3, 0}},
		CubicTo{{4, 0}, {5, 0}, {6, 0}},
		CubicTo{{7, 0}, {9, 0}, {9, 0}},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("catmull-rom (-want +got):\n%s", diff)
	}
}

func TestCurvesEndpoints(t *testing.T) {
	points := pts(0, 10, 10, 30, 20, 5, 30, 25, 40, 0)
	for c := Linear; c <= LinearClosed; c++ {
		path := Line(points, c)
		if len(path) == 0 {
			t.Fatalf("%s: empty path", c)
		}
		if path[0] != (MoveTo{0, 10}) {
			t.Errorf("%s: path should start at the first point, got %v", c, path[0])
		}
		var last Point
		for _, op := range path {
			switch op := op.(type) {
			case LineTo:
				last = Point(op)
			case CubicTo:
				last = op[2]
			}
		}
		if diff := cmp.Diff(Point{40, 0}, last, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%s: path should end on the last point (-want +got):\n%s", c, diff)
		}
	}
}

func TestParseCurve(t *testing.T) {
	for _, tc := range []struct {
		name string
		want Curve
		ok   bool
	}{
		{"linear", Linear, true},
		{"stepBefore", StepBefore, true},
		{"STEPAFTER", StepAfter, true},
		{"catmullrom", CatmullRom, true},
		{"linearClosed", LinearClosed, true},
		{"spline", Linear, false},
	} {
		got, ok := ParseCurve(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseCurve(%q) = %s, %v", tc.name, got, ok)
		}
	}
	if Curve(200).String() != "<unknown Curve>" {
		t.Error("unexpected name for invalid curve")
	}
}

func TestProjectPoints(t *testing.T) {
	band := chartscale.NewBand(chartscale.BandOptions{Domain: chartscale.Bounds{Min: 0, Max: 3}, Range: chartscale.Bounds{Min: 0, Max: 40}})
	got := ProjectPoints(ProjectOptions{
		Data:   []*Datum{Value(0), nil, Value(4), Pair(3, 2)},
		XScale: band,
		YScale: linear(0, 4, 40, 0),
	})
	want := []*Point{{5, 40}, nil, {25, 0}, {35, 20}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("projected points (-want +got):\n%s", diff)
	}

	p := ProjectPoint(2, 1, linear(0, 4, 0, 100), band)
	if p != (Point{50, 15}) {
		t.Errorf("unexpected projection on a band y scale: %v", p)
	}
}

func TestAreaPath(t *testing.T) {
	five := 5.
	for _, tc := range []struct {
		name string
		opts AreaOptions
		want string
	}{
		{
			"default baseline",
			AreaOptions{Data: Values(5, 10), XScale: linear(0, 1, 0, 10), YScale: linear(0, 10, 100, 0)},
			"M0,50L10,0L10,100L0,100Z",
		},
		{
			"explicit baseline",
			AreaOptions{Data: Values(5, 10), XScale: linear(0, 1, 0, 10), YScale: linear(0, 10, 100, 0), Baseline: &five},
			"M0,50L10,0L10,50L0,50Z",
		},
		{
			"positive domain",
			AreaOptions{Data: Values(5, 10), XScale: linear(0, 1, 0, 10), YScale: linear(4, 10, 60, 0)},
			"M0,50L10,0L10,60L0,60Z",
		},
		{
			"gaps",
			AreaOptions{Data: Values(5, math.NaN(), 10), XScale: linear(0, 2, 0, 20), YScale: linear(0, 10, 100, 0)},
			"M0,50L0,100ZM20,0L20,100Z",
		},
		{
			"empty",
			AreaOptions{XScale: linear(0, 2, 0, 20), YScale: linear(0, 10, 100, 0)},
			"",
		},
	} {
		if got := AreaPath(tc.opts); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestAreaCurvesClosed(t *testing.T) {
	points := pts(0, 10, 10, 30, 20, 5)
	for c := Linear; c <= LinearClosed; c++ {
		s := Area(points, 50, c).ToSVGPath()
		if !strings.HasPrefix(s, "M0,10") || !strings.HasSuffix(s, "Z") {
			t.Errorf("%s: unexpected area %s", c, s)
		}
	}
}

func TestBarPath(t *testing.T) {
	for _, tc := range []struct {
		x, y, w, h, r float64
		want          string
	}{
		{0, 0, 10, 20, 0, "M0,0L10,0L10,20L0,20Z"},
		{0, 20, 10, -20, 0, "M0,0L10,0L10,20L0,20Z"},
		{0, 0, 0, 20, 3, ""},
	} {
		if got := BarPath(tc.x, tc.y, tc.w, tc.h, tc.r, true, true); got != tc.want {
			t.Errorf("expected %s, got %s", tc.want, got)
		}
	}

	bar := Bar(0, 0, 10, 20, 100, true, false)
	if n := strings.Count(bar.ToSVGPath(), "C"); n != 2 {
		t.Errorf("expected two rounded corners, got %d", n)
	}
	if bar[0] != (MoveTo{5, 0}) {
		t.Errorf("radius should be clamped to half the width, got %v", bar[0])
	}
	box, ok := bar.Bounds()
	if !ok {
		t.Fatal("expected non empty bounds")
	}
	if diff := cmp.Diff(Rect{Max: Point{10, 20}}, box, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("rounded bar bounds (-want +got):\n%s", diff)
	}
}

func TestBarOptionsShape(t *testing.T) {
	xs := chartscale.NewBand(chartscale.BandOptions{Domain: chartscale.Bounds{Min: 0, Max: 2}, Range: chartscale.Bounds{Min: 0, Max: 150}})
	opts := BarOptions{Data: []*Datum{Value(5), nil, Value(10)}, XScale: xs, YScale: linear(0, 10, 100, 0)}
	want := "M0,50L50,50L50,100L0,100ZM100,0L150,0L150,100L100,100Z"
	if got := opts.Shape().ToSVGPath(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	// bars hanging below the baseline round their bottom corners
	ten := 10.
	opts = BarOptions{Data: Values(5), XScale: linear(0, 1, 0, 100), YScale: linear(0, 10, 100, 0), Baseline: &ten, Radius: 4}
	box, ok := opts.Shape().Bounds()
	if !ok {
		t.Fatal("expected non empty bounds")
	}
	if diff := cmp.Diff(Rect{Min: Point{-40, 0}, Max: Point{40, 50}}, box, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("hanging bar bounds (-want +got):\n%s", diff)
	}

	if (BarOptions{Data: Values(1)}).Shape() != nil {
		t.Error("expected no bars without scales")
	}
}

func TestBounds(t *testing.T) {
	p := Path{MoveTo{0, 0}, CubicTo{{0, 10}, {10, 10}, {10, 0}}, LineTo{-5, 2}, Close{}}
	box, ok := p.Bounds()
	if !ok {
		t.Fatal("expected non empty bounds")
	}
	want := Rect{Min: Point{-5, 0}, Max: Point{10, 7.5}}
	if diff := cmp.Diff(want, box, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("bounds (-want +got):\n%s", diff)
	}
	if box.W() != 15 {
		t.Errorf("unexpected width %v", box.W())
	}

	if _, ok := (Path{}).Bounds(); ok {
		t.Error("empty path should have no bounds")
	}
}

func TestFlatten(t *testing.T) {
	p := Path{
		MoveTo{0, 0}, LineTo{10, 0}, LineTo{10, 10}, Close{},
		MoveTo{20, 0}, CubicTo{{20, 10}, {30, 10}, {30, 0}},
	}
	polys := p.Flatten(4)
	if len(polys) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(polys))
	}
	if diff := cmp.Diff([]Point{{0, 0}, {10, 0}, {10, 10}}, polys[0]); diff != "" {
		t.Fatalf("unexpected polygon (-want +got):\n%s", diff)
	}
	if len(polys[1]) != 5 {
		t.Fatalf("expected 5 points, got %v", polys[1])
	}
	if last := polys[1][4]; last != (Point{30, 0}) {
		t.Fatalf("expected curve end point, got %v", last)
	}
	if mid := polys[1][2]; mid.X != 25 || mid.Y != 7.5 {
		t.Fatalf("unexpected curve middle %v", mid)
	}

	if Path(nil).Flatten(4) != nil {
		t.Fatal("expected no polygon for an empty path")
	}
}
