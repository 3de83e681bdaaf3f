package fluxsurface

import (
	"math"

	"github.com/mgyoo86/imasgo/internal/numeric"
)

// surface holds everything computed on one traced flux surface.
type surface struct {
	psi     float64
	contour []numeric.Point

	rmax, rmin, zmax, zmin numeric.Point

	elongation float64
	triUpper   float64
	triLower   float64
	squUO      float64
	squUI      float64
	squLO      float64
	squLI      float64

	rOutboard float64
	rInboard  float64

	arc []float64 // cumulative arc length
	bp  []float64 // poloidal field magnitude per contour point

	perimeter float64
	bpLineInt float64 // line integral of Bp along the contour
	intDlBp   float64 // line integral of dl/Bp

	dvdpsi   float64
	dareapsi float64
	q        float64
	gm1      float64
	avgBp2   float64
	trapped  float64
}

// average is the flux-surface average of a quantity sampled along the
// contour: the dl/Bp weighted line average.
func (s *surface) average(q []float64) float64 {
	w := make([]float64, len(q))
	for i := range q {
		w[i] = q[i] / s.bp[i]
	}
	return numeric.Integrate(s.arc, w) / s.intDlBp
}

// computeSurface evaluates all per-surface quantities on a closed
// contour at the given flux level. fval is the toroidal field function
// F at that level.
func (e *engine) computeSurface(level, fval float64, contour []numeric.Point) *surface {
	s := &surface{psi: level}
	s.contour = numeric.ResampleLine(contour, 0)
	if n := len(s.contour); n < e.opts.ContourPoints {
		s.contour = numeric.ResampleLine(contour, polylineLength(contour)/float64(e.opts.ContourPoints-1))
	}

	e.refineExtrema(s, level)
	e.shapeDescriptors(s)

	n := len(s.contour)
	s.arc = numeric.ArcLength(s.contour)
	s.perimeter = s.arc[n-1]
	s.bp = make([]float64, n)
	bpw := make([]float64, n)      // Bp * dl weights -> plain line integral
	invBp := make([]float64, n)    // 1/Bp
	invR2 := make([]float64, n)    // (1/R^2)/Bp handled via average
	bp2 := make([]float64, n)      // Bp^2
	btot := make([]float64, n)     // total field magnitude
	for i, p := range s.contour {
		br, bz := e.poloidalField(p)
		s.bp[i] = math.Hypot(br, bz)
		if s.bp[i] < 1e-12 {
			s.bp[i] = 1e-12
		}
		bpw[i] = s.bp[i]
		invBp[i] = 1.0 / s.bp[i]
		invR2[i] = 1.0 / (p.X * p.X)
		bp2[i] = s.bp[i] * s.bp[i]
		btot[i] = math.Hypot(s.bp[i], fval/p.X)
	}
	s.bpLineInt = numeric.Integrate(s.arc, bpw)
	s.intDlBp = numeric.Integrate(s.arc, invBp)

	// Sign-corrected flux-weighted line integrals: dV/dpsi carries the
	// sign of psi increasing outward.
	cf := math.Abs(e.cc.bpFactor())
	s.dvdpsi = e.psiSign * 2 * math.Pi * cf * s.intDlBp
	invRBp := make([]float64, n)
	for i, p := range s.contour {
		invRBp[i] = 1.0 / (p.X * s.bp[i])
	}
	s.dareapsi = e.psiSign * cf * numeric.Integrate(s.arc, invRBp)

	s.gm1 = s.average(invR2)
	s.avgBp2 = s.average(bp2)
	s.q = e.cc.sigmaRhoTorB * cf * fval * s.gm1 * s.intDlBp
	s.trapped = trappedFraction(s, btot)
	return s
}

// trappedFraction blends the upper and lower closed-form estimators of
// the trapped particle fraction 75/25, using h = B/Bmax flux averages.
func trappedFraction(s *surface, btot []float64) float64 {
	bmax := 0.0
	for _, b := range btot {
		if b > bmax {
			bmax = b
		}
	}
	if bmax == 0 {
		return 0
	}
	n := len(btot)
	h := make([]float64, n)
	h2 := make([]float64, n)
	gu := make([]float64, n)
	for i, b := range btot {
		hh := b / bmax
		h[i] = hh
		h2[i] = hh * hh
		gu[i] = (1 - math.Sqrt(1-hh)*(1+hh/2)) / (hh * hh)
	}
	hAvg := s.average(h)
	h2Avg := s.average(h2)
	upper := 1 - h2Avg*s.average(gu)
	lower := 1 - h2Avg/(hAvg*hAvg)*(1-math.Sqrt(1-hAvg)*(1+hAvg/2))
	return 0.75*upper + 0.25*lower
}

// refineExtrema locates the rough R/Z extrema on the discrete contour
// and pushes each toward the true geometric extremum: squared flux
// deviation keeps the point on the surface, a weak outward bias
// selects the extremum, and a weak axis penalty avoids the degenerate
// solution at the magnetic axis.
func (e *engine) refineExtrema(s *surface, level float64) {
	s.rmax, s.rmin, s.zmax, s.zmin = roughExtrema(s.contour)

	span := s.rmax.X - s.rmin.X
	if span <= 0 {
		return
	}
	scale := span * 0.02
	psiScale := math.Abs(e.psiBoundaryGuess - e.psiAxis)
	if psiScale == 0 {
		psiScale = 1
	}

	refine := func(start numeric.Point, bias func(numeric.Point) float64) numeric.Point {
		obj := func(p numeric.Point) float64 {
			dev := (e.interp.Eval(p.X, p.Y) - level) / psiScale
			d := p.DistanceTo(e.axis)
			return dev*dev + 1e-4*bias(p)/span + 1e-6*span/(d+1e-12*span)
		}
		return nelderMead(obj, start, scale, 1e-14, 100)
	}
	s.rmax = refine(s.rmax, func(p numeric.Point) float64 { return -p.X })
	s.rmin = refine(s.rmin, func(p numeric.Point) float64 { return p.X })
	s.zmax = refine(s.zmax, func(p numeric.Point) float64 { return -p.Y })
	s.zmin = refine(s.zmin, func(p numeric.Point) float64 { return p.Y })
}

func roughExtrema(pts []numeric.Point) (rmax, rmin, zmax, zmin numeric.Point) {
	rmax, rmin, zmax, zmin = pts[0], pts[0], pts[0], pts[0]
	for _, p := range pts {
		if p.X > rmax.X {
			rmax = p
		}
		if p.X < rmin.X {
			rmin = p
		}
		if p.Y > zmax.Y {
			zmax = p
		}
		if p.Y < zmin.Y {
			zmin = p
		}
	}
	return rmax, rmin, zmax, zmin
}

// shapeDescriptors derives elongation, triangularities, squareness and
// the midplane radii from the refined extrema box.
func (e *engine) shapeDescriptors(s *surface) {
	a := 0.5 * (s.rmax.X - s.rmin.X)
	b := 0.5 * (s.zmax.Y - s.zmin.Y)
	if a <= 0 {
		return
	}
	rgeo := 0.5 * (s.rmax.X + s.rmin.X)
	s.elongation = b / a
	s.triUpper = (rgeo - s.zmax.X) / a
	s.triLower = (rgeo - s.zmin.X) / a

	// Midplane radii: intersect the contour with the horizontal line
	// through the magnetic axis.
	line := []numeric.Point{{X: s.rmin.X - a, Y: e.axis.Y}, {X: s.rmax.X + a, Y: e.axis.Y}}
	s.rOutboard, s.rInboard = s.rmax.X, s.rmin.X
	if hits := numeric.SegmentIntersections(s.contour, line); len(hits) > 0 {
		out, in := hits[0].X, hits[0].X
		for _, h := range hits {
			out = math.Max(out, h.X)
			in = math.Min(in, h.X)
		}
		s.rOutboard, s.rInboard = out, in
	}

	if e.opts.Squareness {
		zgeo := 0.5 * (s.zmax.Y + s.zmin.Y)
		center := numeric.Point{X: rgeo, Y: zgeo}
		s.squUO = luceSquareness(s.contour, center, numeric.Point{X: s.rmax.X, Y: s.zmax.Y})
		s.squUI = luceSquareness(s.contour, center, numeric.Point{X: s.rmin.X, Y: s.zmax.Y})
		s.squLO = luceSquareness(s.contour, center, numeric.Point{X: s.rmax.X, Y: s.zmin.Y})
		s.squLI = luceSquareness(s.contour, center, numeric.Point{X: s.rmin.X, Y: s.zmin.Y})
	}
}

// luceSquareness computes the Luce squareness of one quadrant: the
// diagonal from the geometric center to the extrema-box corner is
// intersected with the contour and compared against the 45 degree
// point of the reference ellipse inscribed in that quadrant.
func luceSquareness(contour []numeric.Point, center, corner numeric.Point) float64 {
	oc := center.DistanceTo(corner)
	if oc == 0 {
		return 0
	}
	// Extend slightly past the corner so grazing intersections are kept.
	end := numeric.Point{
		X: center.X + 1.05*(corner.X-center.X),
		Y: center.Y + 1.05*(corner.Y-center.Y),
	}
	hits := numeric.SegmentIntersections(contour, []numeric.Point{center, end})
	if len(hits) == 0 {
		return 0
	}
	od := hits[0].DistanceTo(center)
	for _, h := range hits {
		if d := h.DistanceTo(center); d > od {
			od = d
		}
	}
	oe := oc / math.Sqrt2
	return (od - oe) / (oc - oe)
}

func polylineLength(pts []numeric.Point) float64 {
	s := numeric.ArcLength(pts)
	return s[len(s)-1]
}
