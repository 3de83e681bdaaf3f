package ids

import "math"

// GlobalTime returns the "current time" scalar held at the tree root.
func (n *Node) GlobalTime() float64 { return n.TopRoot().globalTime }

// SetGlobalTime sets the root "current time" scalar.
func (n *Node) SetGlobalTime(t float64) { n.TopRoot().globalTime = t }

// timeBase returns the enclosing IDS and its time array (which may be
// nil when no time point exists yet).
func (n *Node) timeBase() (*Node, *FieldArray, error) {
	top, err := n.Top()
	if err != nil {
		return nil, nil, err
	}
	return top, top.Array("time"), nil
}

// GetTimeArray reads a time-dependent scalar field at the sample
// nearest to the requested time.
func (n *Node) GetTimeArray(field string, t float64) (float64, error) {
	top, ta, err := n.timeBase()
	if err != nil {
		return 0, err
	}
	if ta == nil || ta.Len() == 0 {
		return 0, CoordinateNotSetError{Field: locJoin(n.Location(), field), Coordinate: top.Name() + ".time"}
	}
	arr := n.Array(field)
	if arr == nil {
		return 0, CoordinateNotSetError{Field: locJoin(n.Location(), field), Coordinate: top.Name() + ".time"}
	}
	i := nearestIndex(ta.Values(), t)
	if i >= arr.Len() {
		i = arr.Len() - 1
	}
	return arr.At(i), nil
}

// SetTimeArray writes a time-dependent scalar field at the requested
// time. A time beyond the last sample appends a new time point and
// extends every other time-dependent field of the IDS by repeating its
// last value; an exact match overwrites in place; an interior or
// decreasing time fails with TimeOrderingError.
func (n *Node) SetTimeArray(field string, t float64, value float64) error {
	top, ta, err := n.timeBase()
	if err != nil {
		return err
	}
	if ta == nil {
		ta = NewArray([]float64{t})
		if err := top.Set("time", ta); err != nil {
			return err
		}
		return n.setTimeSample(field, 0, 1, value)
	}
	times := ta.Values()
	nT := len(times)
	if i := exactTimeIndex(times, t); i >= 0 {
		return n.setTimeSample(field, i, nT, value)
	}
	if nT > 0 && t < times[nT-1] {
		return TimeOrderingError{Requested: t, Max: times[nT-1]}
	}
	// Append a new time point and keep every sibling array in sync.
	ta.data = append(ta.data, t)
	timePath := canonical(top.Location()) + ".time"
	extendTimeDependent(top, timePath, nT, ta)
	return n.setTimeSample(field, nT, nT+1, value)
}

// setTimeSample writes index i of the field array, creating it at the
// current time-base length when unset.
func (n *Node) setTimeSample(field string, i, length int, value float64) error {
	arr := n.Array(field)
	if arr == nil {
		data := make([]float64, length)
		for k := range data {
			data[k] = value
		}
		return n.Set(field, NewArray(data))
	}
	for arr.Len() < length {
		arr.data = append(arr.data, value)
	}
	return arr.SetAt(i, value)
}

// extendTimeDependent walks the IDS and repeats the last value of every
// materialized array whose declared coordinate is the IDS time vector,
// so all time-dependent fields keep the same length. Struct arrays
// coordinated on time grow by one default element.
func extendTimeDependent(n *Node, timePath string, oldLen int, timeArr *FieldArray) {
	for field, v := range n.fields {
		switch x := v.(type) {
		case *FieldArray:
			if x == timeArr || x.Analytic() || x.Len() != oldLen {
				continue
			}
			if hasCoordinate(locJoin(n.Location(), field), timePath) && oldLen > 0 {
				x.data = append(x.data, x.data[oldLen-1])
			}
		case *Node:
			extendTimeDependent(x, timePath, oldLen, timeArr)
		case *NodeArray:
			if hasCoordinate(locJoin(n.Location(), field), timePath) && x.Len() == oldLen {
				x.Resize(oldLen + 1)
				continue
			}
			for _, e := range x.elems {
				extendTimeDependent(e, timePath, oldLen, timeArr)
			}
		}
	}
}

func hasCoordinate(loc, coordPath string) bool {
	info, err := Info(loc)
	if err != nil {
		return false
	}
	for _, c := range info.Coordinates {
		if c == coordPath {
			return true
		}
	}
	return false
}

func exactTimeIndex(times []float64, t float64) int {
	for i, v := range times {
		if v == t {
			return i
		}
	}
	return -1
}

func nearestIndex(times []float64, t float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, v := range times {
		if d := math.Abs(v - t); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
