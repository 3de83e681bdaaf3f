package fluxsurface

import "github.com/mgyoo86/imasgo/internal/numeric"

// edgeKey identifies one grid edge: the horizontal edge from (i,j) to
// (i+1,j), or the vertical edge from (i,j) to (i,j+1).
type edgeKey struct {
	i, j int
	vert bool
}

type segment struct {
	a, b edgeKey
}

// traceContours extracts every iso-level polyline of f on the
// rectilinear grid by marching squares with linear edge interpolation.
// Closed contours come back with coincident first and last points.
func traceContours(x, y []float64, f [][]float64, level float64) [][]numeric.Point {
	nx, ny := len(x), len(y)
	var segs []segment

	for i := 0; i < nx-1; i++ {
		for j := 0; j < ny-1; j++ {
			v00 := f[i][j]
			v10 := f[i+1][j]
			v11 := f[i+1][j+1]
			v01 := f[i][j+1]

			idx := 0
			if v00 > level {
				idx |= 1
			}
			if v10 > level {
				idx |= 2
			}
			if v11 > level {
				idx |= 4
			}
			if v01 > level {
				idx |= 8
			}
			if idx == 0 || idx == 15 {
				continue
			}

			bottom := edgeKey{i, j, false}
			top := edgeKey{i, j + 1, false}
			left := edgeKey{i, j, true}
			right := edgeKey{i + 1, j, true}

			switch idx {
			case 1, 14:
				segs = append(segs, segment{left, bottom})
			case 2, 13:
				segs = append(segs, segment{bottom, right})
			case 3, 12:
				segs = append(segs, segment{left, right})
			case 4, 11:
				segs = append(segs, segment{top, right})
			case 6, 9:
				segs = append(segs, segment{bottom, top})
			case 7, 8:
				segs = append(segs, segment{left, top})
			case 5:
				if (v00+v10+v11+v01)/4 > level {
					segs = append(segs, segment{left, top}, segment{bottom, right})
				} else {
					segs = append(segs, segment{left, bottom}, segment{top, right})
				}
			case 10:
				if (v00+v10+v11+v01)/4 > level {
					segs = append(segs, segment{left, bottom}, segment{top, right})
				} else {
					segs = append(segs, segment{left, top}, segment{bottom, right})
				}
			}
		}
	}

	if len(segs) == 0 {
		return nil
	}

	adj := make(map[edgeKey][]int, len(segs))
	for k, s := range segs {
		adj[s.a] = append(adj[s.a], k)
		adj[s.b] = append(adj[s.b], k)
	}

	cache := make(map[edgeKey]numeric.Point, len(adj))
	point := func(e edgeKey) numeric.Point {
		if p, ok := cache[e]; ok {
			return p
		}
		var p numeric.Point
		if e.vert {
			va, vb := f[e.i][e.j], f[e.i][e.j+1]
			t := 0.5
			if vb != va {
				t = (level - va) / (vb - va)
			}
			p = numeric.Point{X: x[e.i], Y: y[e.j] + t*(y[e.j+1]-y[e.j])}
		} else {
			va, vb := f[e.i][e.j], f[e.i+1][e.j]
			t := 0.5
			if vb != va {
				t = (level - va) / (vb - va)
			}
			p = numeric.Point{X: x[e.i] + t*(x[e.i+1]-x[e.i]), Y: y[e.j]}
		}
		cache[e] = p
		return p
	}

	used := make([]bool, len(segs))
	walk := func(start edgeKey) []numeric.Point {
		pts := []numeric.Point{point(start)}
		cur := start
		for {
			next := -1
			for _, k := range adj[cur] {
				if !used[k] {
					next = k
					break
				}
			}
			if next < 0 {
				return pts
			}
			used[next] = true
			if segs[next].a == cur {
				cur = segs[next].b
			} else {
				cur = segs[next].a
			}
			pts = append(pts, point(cur))
		}
	}

	var lines [][]numeric.Point
	// Open contours first: every edge with a single incident segment is
	// the end of a line that terminates at the grid boundary.
	for e, ks := range adj {
		if len(ks) == 1 && !used[ks[0]] {
			lines = append(lines, walk(e))
		}
	}
	// Whatever remains are closed loops.
	for k := range segs {
		if !used[k] {
			lines = append(lines, walk(segs[k].a))
		}
	}
	return lines
}

// closedLine reports whether a traced polyline closes on itself.
func closedLine(pts []numeric.Point) bool {
	if len(pts) < 4 {
		return false
	}
	return pts[0].DistanceTo(pts[len(pts)-1]) < 1e-9
}

// closedContour returns the first closed traced line that encircles
// the magnetic axis, or nil when the level has no closed surface.
func closedContour(lines [][]numeric.Point, axis numeric.Point) []numeric.Point {
	for _, line := range lines {
		if closedLine(line) && numeric.PointInPolygon(axis, line) {
			return line
		}
	}
	return nil
}

// openLines returns every traced line that does not close on itself.
func openLines(lines [][]numeric.Point) [][]numeric.Point {
	var out [][]numeric.Point
	for _, line := range lines {
		if !closedLine(line) {
			out = append(out, line)
		}
	}
	return out
}
