package numeric

import "fmt"

// UnsupportedSchemeError is returned by Interp1D for a scheme name it
// does not implement.
type UnsupportedSchemeError struct {
	Scheme Scheme
}

func (e UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("numeric: unsupported interpolation scheme %q", string(e.Scheme))
}

// NonUniformSpacingError is returned by ToRange when a vector cannot be
// represented as a uniform range within tolerance.
type NonUniformSpacingError struct {
	Index     int
	Deviation float64
}

func (e NonUniformSpacingError) Error() string {
	return fmt.Sprintf("numeric: non-uniform spacing at index %d (relative deviation %g)", e.Index, e.Deviation)
}
