package numeric

import "math"

const rangeTolerance = 1e-10

// Range is a flyweight descriptor of a uniformly spaced vector.
type Range struct {
	Start float64
	Stop  float64
	N     int
}

func (r Range) Step() float64 {
	if r.N < 2 {
		return 0
	}
	return (r.Stop - r.Start) / float64(r.N-1)
}

func (r Range) At(i int) float64 {
	return r.Start + float64(i)*r.Step()
}

func (r Range) Values() []float64 {
	v := make([]float64, r.N)
	for i := range v {
		v[i] = r.At(i)
	}
	return v
}

// ToRange verifies that v is uniformly spaced (relative deviation below
// 1e-10 of the overall span) and returns the equivalent Range. It fails
// with NonUniformSpacingError otherwise.
func ToRange(v []float64) (Range, error) {
	n := len(v)
	if n < 2 {
		return Range{Start: first(v), Stop: first(v), N: n}, nil
	}
	span := v[n-1] - v[0]
	step := span / float64(n-1)
	scale := math.Max(math.Abs(v[0]), math.Abs(v[n-1]))
	if scale == 0 {
		scale = 1
	}
	for i := 1; i < n; i++ {
		dev := math.Abs(v[i]-v[i-1]-step) / scale
		if dev >= rangeTolerance {
			return Range{}, NonUniformSpacingError{Index: i, Deviation: dev}
		}
	}
	return Range{Start: v[0], Stop: v[n-1], N: n}, nil
}

func first(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}
