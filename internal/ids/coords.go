package ids

import "strings"

// CoordState classifies one resolved coordinate of a field.
type CoordState int

const (
	// CoordAbsent means no coordinate data is needed (implicit 1..N
	// index).
	CoordAbsent CoordState = iota
	// CoordMissing means the schema declares a coordinate but it is
	// unset on this instance.
	CoordMissing
	// CoordPresent means the coordinate is materialized; Values shares
	// the coordinate's backing array.
	CoordPresent
)

// Coordinate is one entry of the Coordinates result.
type Coordinate struct {
	Name   string
	State  CoordState
	Values []float64
}

// Set assigns a value to a field. Nodes, NodeArrays and FieldArrays
// are re-parented to n. Numeric arrays are validated against the
// coordinates the schema declares for the field's location: implicit
// index coordinates are synthesized, a declared-but-unset real
// coordinate fails with CoordinateNotSetError, and a materialized
// coordinate of different length fails with CoordinateLengthError.
func (n *Node) Set(field string, value any) error {
	switch v := value.(type) {
	case *Node:
		v.parentNode = n
		v.parentArray = nil
		v.name = field
		v.loc = ""
		n.fields[field] = v
	case *NodeArray:
		v.parent = n
		v.name = field
		n.fields[field] = v
	case []float64:
		return n.Set(field, NewArray(v))
	case *FieldArray:
		loc := locJoin(n.Location(), field)
		if err := n.validateArray(field, loc, v, nil); err != nil {
			return err
		}
		v.field = loc
		n.fields[field] = v
	case *Array2D:
		loc := locJoin(n.Location(), field)
		if err := n.validateArray(field, loc, nil, v); err != nil {
			return err
		}
		n.fields[field] = v
	default:
		n.fields[field] = value
	}
	return nil
}

func (n *Node) validateArray(field, loc string, a *FieldArray, a2 *Array2D) error {
	info, err := Info(loc)
	if err != nil {
		return err
	}
	for k, coord := range info.Coordinates {
		if coord == ImplicitCoordinate || strings.Contains(coord, "...") {
			continue
		}
		vals, found := n.resolveCoordinate(coord)
		if !found {
			return CoordinateNotSetError{Field: loc, Coordinate: coord}
		}
		got := 0
		if a != nil {
			if a.Analytic() && a.coord == nil {
				a.coord = vals
			}
			got = a.Len()
		} else {
			got = a2.Dim(k)
		}
		if got != len(vals) {
			return CoordinateLengthError{Field: loc, Coordinate: coord, Want: len(vals), Got: got}
		}
	}
	return nil
}

// Coordinates resolves the declared coordinates of a field on a live
// node. Implicit index coordinates resolve to CoordAbsent; declared
// coordinates that exist in schema but are unset on this instance
// resolve to CoordMissing; materialized coordinates are returned by
// reference so coordinate and data stay in sync.
func (n *Node) Coordinates(field string) ([]Coordinate, error) {
	loc := locJoin(n.Location(), field)
	info, err := Info(loc)
	if err != nil {
		return nil, err
	}
	out := make([]Coordinate, 0, len(info.Coordinates))
	for _, coord := range info.Coordinates {
		if coord == ImplicitCoordinate || strings.Contains(coord, "...") {
			out = append(out, Coordinate{Name: coord, State: CoordAbsent})
			continue
		}
		vals, found := n.resolveCoordinate(coord)
		if !found {
			out = append(out, Coordinate{Name: coord, State: CoordMissing})
			continue
		}
		out = append(out, Coordinate{Name: coord, State: CoordPresent, Values: vals})
	}
	return out, nil
}

// resolveCoordinate walks a canonical coordinate path from the nearest
// enclosing ancestor shared with this node's location.
func (n *Node) resolveCoordinate(coordPath string) ([]float64, bool) {
	nodeSegs := strings.Split(n.Location(), ".")
	if n.Location() == "" {
		nodeSegs = nil
	}
	coordSegs := strings.Split(coordPath, ".")
	common := 0
	for common < len(nodeSegs) && common < len(coordSegs) && nodeSegs[common] == coordSegs[common] {
		common++
	}
	cur := n
	for i := 0; i < len(nodeSegs)-common; i++ {
		cur = cur.up()
		if cur == nil {
			return nil, false
		}
	}
	for i := common; i < len(coordSegs); i++ {
		name := strings.TrimSuffix(coordSegs[i], "[:]")
		v, ok := cur.fields[name]
		if !ok {
			return nil, false
		}
		if i == len(coordSegs)-1 {
			a, ok := v.(*FieldArray)
			if !ok {
				return nil, false
			}
			return a.Values(), true
		}
		child, ok := v.(*Node)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return nil, false
}
