package ids

// AnalyticFunc evaluates an analytic field array at one sample of its
// coordinate.
type AnalyticFunc func(coord float64) float64

// FieldArray is a 1D numeric array attached to a Node field. It is
// either materialized (a concrete backing slice) or analytic (a pure
// function of the field's coordinate, evaluated lazily at the
// coordinate's sample points).
type FieldArray struct {
	field string
	data  []float64
	fn    AnalyticFunc
	coord []float64 // shared backing of the coordinate (analytic only)
}

// NewArray wraps a backing slice as a materialized field array. The
// slice is shared, not copied.
func NewArray(data []float64) *FieldArray {
	return &FieldArray{data: data}
}

// NewAnalyticArray builds an analytic field array over the given
// coordinate samples. The coordinate slice is shared so that the array
// tracks later in-place coordinate mutation.
func NewAnalyticArray(fn AnalyticFunc, coord []float64) *FieldArray {
	return &FieldArray{fn: fn, coord: coord}
}

// Analytic reports whether the array is the lazy analytic variant.
func (a *FieldArray) Analytic() bool { return a.fn != nil }

func (a *FieldArray) Len() int {
	if a.fn != nil {
		return len(a.coord)
	}
	return len(a.data)
}

// At evaluates the array at index i.
func (a *FieldArray) At(i int) float64 {
	if a.fn != nil {
		return a.fn(a.coord[i])
	}
	return a.data[i]
}

// SetAt mutates one element in place. Analytic arrays fail with
// ImmutableFieldError.
func (a *FieldArray) SetAt(i int, v float64) error {
	if a.fn != nil {
		return ImmutableFieldError{Field: a.field}
	}
	a.data[i] = v
	return nil
}

// Values returns the backing slice of a materialized array (shared,
// not copied) or a freshly evaluated slice for an analytic one.
func (a *FieldArray) Values() []float64 {
	if a.fn == nil {
		return a.data
	}
	out := make([]float64, len(a.coord))
	for i, c := range a.coord {
		out[i] = a.fn(c)
	}
	return out
}

// Array2D is a 2D numeric field value, indexed Data[i][j] with i
// running over the first declared coordinate.
type Array2D struct {
	Data [][]float64
}

func NewArray2D(data [][]float64) *Array2D { return &Array2D{Data: data} }

// Dim returns the length along axis 0 or 1.
func (a *Array2D) Dim(axis int) int {
	if axis == 0 {
		return len(a.Data)
	}
	if len(a.Data) == 0 {
		return 0
	}
	return len(a.Data[0])
}
