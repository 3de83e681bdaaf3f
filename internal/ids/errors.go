package ids

import "fmt"

// CoordinateNotSetError is returned when data is assigned to a field
// whose declared coordinate field is itself unset.
type CoordinateNotSetError struct {
	Field      string
	Coordinate string
}

func (e CoordinateNotSetError) Error() string {
	return fmt.Sprintf("ids: cannot assign %s: coordinate %s is not set", e.Field, e.Coordinate)
}

// CoordinateLengthError is returned when an assigned array does not
// match the length of its materialized coordinate.
type CoordinateLengthError struct {
	Field      string
	Coordinate string
	Want       int
	Got        int
}

func (e CoordinateLengthError) Error() string {
	return fmt.Sprintf("ids: %s has %d samples but coordinate %s has %d", e.Field, e.Got, e.Coordinate, e.Want)
}

// AmbiguousMatchError is returned by ResizeWhere when more than one
// existing element matches the given conditions.
type AmbiguousMatchError struct {
	Path    string
	Matches int
}

func (e AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ids: %d elements of %s match the given conditions", e.Matches, e.Path)
}

// UnknownPathError is returned by Info for a path not present in the
// data dictionary.
type UnknownPathError struct {
	Path string
}

func (e UnknownPathError) Error() string {
	return fmt.Sprintf("ids: unknown path %q", e.Path)
}

// ImmutableFieldError is returned on element-wise mutation of an
// analytic field array.
type ImmutableFieldError struct {
	Field string
}

func (e ImmutableFieldError) Error() string {
	return fmt.Sprintf("ids: %s is analytic and cannot be mutated in place", e.Field)
}

// TimeOrderingError is returned when a requested time point would break
// the monotonic ordering of an existing time array.
type TimeOrderingError struct {
	Requested float64
	Max       float64
}

func (e TimeOrderingError) Error() string {
	return fmt.Sprintf("ids: time %g is interior or decreasing relative to existing samples (max %g)", e.Requested, e.Max)
}

// TopLevelReachedError is returned when walking upward past the tree
// root.
type TopLevelReachedError struct {
	Path string
}

func (e TopLevelReachedError) Error() string {
	return fmt.Sprintf("ids: %q is already at the top level", e.Path)
}
