package chartscale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

// tickSpec returns the indices bounds and the increment of the ticks.
// A negative increment means the step is 1 / -inc, which avoids
// accumulating floating point errors for fractional steps.
func tickSpec(start, stop float64, count int) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1, i2 = roundHalfUp(start*inc), roundHalfUp(stop*inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1, i2 = roundHalfUp(start/inc), roundHalfUp(stop/inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= float64(count) && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks returns about count "nice" values (multiples of 1, 2 or 5 times
// a power of ten) inside [start, stop]. The order of the bounds is preserved.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, count)
	if i2 < i1 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}
	n := int(i2-i1) + 1
	out := make([]float64, n)
	for i := range out {
		if inc < 0 {
			out[i] = (i1 + float64(i)) / -inc
		} else {
			out[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		reverseFloats(out)
	}
	return out
}

func reverseFloats(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
