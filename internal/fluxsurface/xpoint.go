package fluxsurface

import (
	"math"

	"github.com/mgyoo86/imasgo/internal/numeric"
)

// findXPoints locates poloidal-field nulls near the plasma boundary by
// harvesting the open companion contours of the LCFS level (the
// private flux region legs), seeding a null candidate between each
// retained leg and the boundary, and refining it by a derivative-free
// minimization of the poloidal field magnitude.
func (e *engine) findXPoints(res *Result, lcfs *surface) {
	legs := openLines(traceContours(e.cx, e.cy, e.cf, lcfs.psi))
	if len(legs) == 0 {
		return
	}
	a := 0.5 * (lcfs.rmax.X - lcfs.rmin.X)
	if a <= 0 {
		return
	}
	zAvg := numeric.Centroid(lcfs.contour).Y

	for _, leg := range legs {
		// Spurious or secondary legs sit far from the plasma.
		if numeric.MinDistance(leg, lcfs.contour) > 0.5*a {
			continue
		}
		li, ci := numeric.MinDistanceIndices(leg, lcfs.contour)
		lower := leg[li].Y < zAvg

		// The leg extremum facing the plasma: the topmost point of a
		// lower leg, the bottommost point of an upper one.
		ext := leg[0]
		for _, p := range leg {
			if (lower && p.Y > ext.Y) || (!lower && p.Y < ext.Y) {
				ext = p
			}
		}
		nearest := lcfs.contour[ci]
		seed := numeric.Point{X: 0.5 * (ext.X + nearest.X), Y: 0.5 * (ext.Y + nearest.Y)}

		null := nelderMead(func(p numeric.Point) float64 {
			br, bz := e.poloidalField(p)
			return br*br + bz*bz
		}, seed, 0.05*a, 1e-18, 200)

		dup := false
		for _, x := range res.XPoints {
			if x.P.DistanceTo(null) < 0.05*a {
				dup = true
				break
			}
		}
		if !dup && math.Abs(null.Y-e.axis.Y) > 0.1*a {
			res.XPoints = append(res.XPoints, XPoint{P: null, Upper: !lower})
		}
	}
}
