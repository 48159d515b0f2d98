package chartpath

// Flatten approximates the path by polygons, one per sub-path,
// sampling each bezier segment with `steps` points.
// Closing operations are implicit: the polygons are not
// repeating their first point.
func (p Path) Flatten(steps int) [][]Point {
	if steps < 1 {
		steps = 1
	}
	var (
		out     [][]Point
		current []Point
		cur     Point
	)
	flush := func() {
		if len(current) != 0 {
			out = append(out, current)
		}
		current = nil
	}
	sample := func(curve bezier) {
		for i := 1; i <= steps; i++ {
			x, y := curve.evaluateCurve(float64(i) / float64(steps))
			current = append(current, Point{x, y})
		}
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			flush()
			cur = Point(op)
			current = []Point{cur}
		case LineTo:
			current = append(current, Point(op))
			cur = Point(op)
		case QuadTo:
			sample(quadBezier{cur, op[0], op[1]})
			cur = op[1]
		case CubicTo:
			sample(cubicBezier{cur, op[0], op[1], op[2]})
			cur = op[2]
		case Close:
			if len(current) != 0 {
				cur = current[0]
			}
			flush()
		}
	}
	flush()
	return out
}
