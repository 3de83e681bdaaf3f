package fluxsurface

import (
	"fmt"
	"math"

	"github.com/mgyoo86/imasgo/internal/numeric"
)

const mu0 = 4e-7 * math.Pi

// Input is one equilibrium time slice: the 2D flux map on its
// rectilinear grid, the 1D psi levels the profiles are requested on
// (axis to edge), the toroidal field function F on those levels, and
// the vacuum field reference.
type Input struct {
	R     []float64
	Z     []float64
	PsiRZ [][]float64 // indexed [iR][iZ]
	Psi   []float64
	F     []float64
	B0    float64
	R0    float64
}

// Options tune the tracing fidelity and conventions.
type Options struct {
	Upsample       int     // grid refinement factor for contour tracing
	ContourPoints  int     // minimum points per resampled contour
	BoundaryRelTol float64 // relative tolerance of the LCFS bisection
	MaxBisect      int     // bisection iteration cap
	Squareness     bool    // compute Luce squareness descriptors
	COCOS          int     // sign/exponent convention index
	GradTol        float64 // gradient tolerance of the axis search
}

func DefaultOptions() Options {
	return Options{
		Upsample:       1,
		ContourPoints:  101,
		BoundaryRelTol: 1e-6,
		MaxBisect:      100,
		Squareness:     true,
		COCOS:          11,
		GradTol:        1e-8,
	}
}

// XPoint is a located poloidal-field null near the plasma boundary.
type XPoint struct {
	P     numeric.Point
	Upper bool
}

// Result carries every derived flux-surface quantity for one time
// slice. All 1D profiles are sampled on Psi.
type Result struct {
	Axis        numeric.Point
	PsiAxis     float64
	PsiBoundary float64

	Psi             []float64
	Q               []float64
	DVolumeDPsi     []float64
	Volume          []float64
	Area            []float64
	Phi             []float64
	RhoTor          []float64
	RhoTorNorm      []float64
	Elongation      []float64
	TriUpper        []float64
	TriLower        []float64
	SquUpperOuter   []float64
	SquUpperInner   []float64
	SquLowerOuter   []float64
	SquLowerInner   []float64
	TrappedFraction []float64
	Gm1             []float64
	Gm2             []float64
	AvgBp2          []float64
	ROutboard       []float64
	RInboard        []float64

	Ip        float64
	Perimeter float64
	Boundary  []numeric.Point
	XPoints   []XPoint
}

type engine struct {
	in   Input
	opts Options
	cc   cocos

	interp *numeric.Interp2D

	// contouring grid, upsampled when requested
	cx, cy []float64
	cf     [][]float64

	axis             numeric.Point
	psiAxis          float64
	psiSign          float64 // +1 when psi rises from axis to edge
	psiBoundaryGuess float64
}

// Run post-processes one flux map into the full set of flux-surface
// quantities. It holds no state between calls.
func Run(in Input, opts Options) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if opts.Upsample < 1 {
		opts.Upsample = 1
	}
	if opts.ContourPoints < 16 {
		opts.ContourPoints = 16
	}

	e := &engine{in: in, opts: opts, cc: cocosParams(opts.COCOS)}

	interp, err := numeric.NewInterp2D(in.R, in.Z, in.PsiRZ)
	if err != nil {
		return nil, fmt.Errorf("fluxsurface: building psi interpolant: %w", err)
	}
	e.interp = interp
	if opts.Upsample > 1 {
		e.cx, e.cy, e.cf = interp.Resample(opts.Upsample)
	} else {
		e.cx, e.cy, e.cf = in.R, in.Z, in.PsiRZ
	}

	e.findAxis()

	n := len(in.Psi)
	levels := make([]float64, n)
	copy(levels, in.Psi)
	e.psiSign = 1.0
	if levels[n-1] < levels[0] {
		e.psiSign = -1.0
	}

	psiLCFS, err := e.boundaryPsi(levels)
	if err != nil {
		return nil, err
	}
	// Trust the nominal grid-edge level only when it is closed and
	// within one last grid step of the bisected LCFS value; otherwise
	// substitute the bisected value.
	lastStep := math.Abs(levels[n-1] - levels[n-2])
	if !e.closedAt(levels[n-1]) || math.Abs(psiLCFS-levels[n-1]) < lastStep {
		levels[n-1] = psiLCFS
	}
	e.psiBoundaryGuess = levels[n-1]

	surfaces := make([]*surface, n)
	for i := 1; i < n; i++ {
		level := levels[i]
		if level == levels[0] {
			// the true axis surface is degenerate
			level = levels[1]
		}
		var contour []numeric.Point
		if i == 1 {
			contour = e.seedEllipse(level)
		}
		if contour == nil {
			contour = closedContour(traceContours(e.cx, e.cy, e.cf, level), e.axis)
			if contour == nil {
				return nil, TraceError{Index: i, Psi: level}
			}
		}
		surfaces[i] = e.computeSurface(level, e.in.F[i], contour)
	}

	res := e.assemble(levels, surfaces)
	if err := e.gm2(res, levels, surfaces); err != nil {
		return nil, err
	}
	e.findXPoints(res, surfaces[n-1])
	return res, nil
}

func validate(in Input) error {
	if len(in.R) < 4 || len(in.Z) < 4 {
		return fmt.Errorf("fluxsurface: grid must have at least 4 points per axis")
	}
	if len(in.PsiRZ) != len(in.R) {
		return fmt.Errorf("fluxsurface: psi map has %d rows, grid has %d", len(in.PsiRZ), len(in.R))
	}
	for i, row := range in.PsiRZ {
		if len(row) != len(in.Z) {
			return fmt.Errorf("fluxsurface: psi row %d has %d columns, grid has %d", i, len(row), len(in.Z))
		}
	}
	if len(in.Psi) < 3 {
		return fmt.Errorf("fluxsurface: need at least 3 psi levels")
	}
	if len(in.F) != len(in.Psi) {
		return fmt.Errorf("fluxsurface: F has %d samples, psi has %d", len(in.F), len(in.Psi))
	}
	for i := 1; i < len(in.Psi); i++ {
		if (in.Psi[i]-in.Psi[i-1])*(in.Psi[1]-in.Psi[0]) <= 0 {
			return fmt.Errorf("fluxsurface: psi levels must be strictly monotonic")
		}
	}
	if in.B0 == 0 {
		return fmt.Errorf("fluxsurface: vacuum field B0 must be nonzero")
	}
	return nil
}

// findAxis refines the psi extremum from a starting guess at the grid
// center.
func (e *engine) findAxis() {
	start := numeric.Point{
		X: 0.5 * (e.in.R[0] + e.in.R[len(e.in.R)-1]),
		Y: 0.5 * (e.in.Z[0] + e.in.Z[len(e.in.Z)-1]),
	}
	h := math.Min(e.in.R[1]-e.in.R[0], e.in.Z[1]-e.in.Z[0])
	e.axis = findExtremum(e.interp, start, h, e.opts.GradTol, 200)
	e.psiAxis = e.interp.Eval(e.axis.X, e.axis.Y)
}

func (e *engine) closedAt(level float64) bool {
	return closedContour(traceContours(e.cx, e.cy, e.cf, level), e.axis) != nil
}

// boundaryPsi locates the true last-closed-flux-surface level by
// bisection between a known-closed and a known-open bracket, to the
// configured relative tolerance.
func (e *engine) boundaryPsi(levels []float64) (float64, error) {
	n := len(levels)
	lo := levels[n-2]
	if !e.closedAt(lo) {
		return 0, TraceError{Index: n - 2, Psi: lo}
	}
	step := levels[n-1] - levels[n-2]
	hi := levels[n-1] + step
	found := false
	for k := 0; k < 24; k++ {
		if !e.closedAt(hi) {
			found = true
			break
		}
		lo = hi
		step *= 2
		hi += step
	}
	if !found {
		return 0, BracketError{PsiClosed: lo, PsiOpen: hi}
	}
	tol := e.opts.BoundaryRelTol * math.Abs(levels[n-1]-levels[0])
	for k := 0; k < e.opts.MaxBisect && math.Abs(hi-lo) > tol; k++ {
		mid := 0.5 * (lo + hi)
		if e.closedAt(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// seedEllipse builds the synthetic innermost surface from the local
// curvature of psi at the magnetic axis. Returns nil when the local
// expansion is unusable, in which case the level is traced normally.
func (e *engine) seedEllipse(level float64) []numeric.Point {
	h := math.Min(e.in.R[1]-e.in.R[0], e.in.Z[1]-e.in.Z[0])
	hxx := (e.interp.Eval(e.axis.X+h, e.axis.Y) - 2*e.psiAxis + e.interp.Eval(e.axis.X-h, e.axis.Y)) / (h * h)
	hyy := (e.interp.Eval(e.axis.X, e.axis.Y+h) - 2*e.psiAxis + e.interp.Eval(e.axis.X, e.axis.Y-h)) / (h * h)
	dpsi := level - e.psiAxis
	ar2 := 2 * dpsi / hxx
	az2 := 2 * dpsi / hyy
	if ar2 <= 0 || az2 <= 0 {
		return nil
	}
	ar, az := math.Sqrt(ar2), math.Sqrt(az2)
	const m = 65
	pts := make([]numeric.Point, m)
	for k := 0; k < m; k++ {
		th := 2 * math.Pi * float64(k) / float64(m-1)
		pts[k] = numeric.Point{X: e.axis.X + ar*math.Cos(th), Y: e.axis.Y + az*math.Sin(th)}
	}
	pts[m-1] = pts[0]
	return pts
}

// assemble packs per-surface scalars into cumulative 1D profiles. The
// axis entry of each differential quantity is linearly extrapolated
// from the two innermost surfaces.
func (e *engine) assemble(levels []float64, surfaces []*surface) *Result {
	n := len(levels)
	res := &Result{
		Axis:        e.axis,
		PsiAxis:     e.psiAxis,
		PsiBoundary: levels[n-1],
		Psi:         levels,
	}
	alloc := func() []float64 { return make([]float64, n) }
	res.Q, res.DVolumeDPsi = alloc(), alloc()
	res.Elongation, res.TriUpper, res.TriLower = alloc(), alloc(), alloc()
	res.SquUpperOuter, res.SquUpperInner = alloc(), alloc()
	res.SquLowerOuter, res.SquLowerInner = alloc(), alloc()
	res.TrappedFraction, res.Gm1, res.Gm2, res.AvgBp2 = alloc(), alloc(), alloc(), alloc()
	res.ROutboard, res.RInboard = alloc(), alloc()
	areaPsi := alloc()

	for i := 1; i < n; i++ {
		s := surfaces[i]
		res.Q[i] = s.q
		res.DVolumeDPsi[i] = s.dvdpsi
		areaPsi[i] = s.dareapsi
		res.Elongation[i] = s.elongation
		res.TriUpper[i] = s.triUpper
		res.TriLower[i] = s.triLower
		res.SquUpperOuter[i] = s.squUO
		res.SquUpperInner[i] = s.squUI
		res.SquLowerOuter[i] = s.squLO
		res.SquLowerInner[i] = s.squLI
		res.TrappedFraction[i] = s.trapped
		res.Gm1[i] = s.gm1
		res.AvgBp2[i] = s.avgBp2
		res.ROutboard[i] = s.rOutboard
		res.RInboard[i] = s.rInboard
	}
	for _, arr := range [][]float64{
		res.Q, res.DVolumeDPsi, areaPsi, res.Elongation, res.TriUpper, res.TriLower,
		res.SquUpperOuter, res.SquUpperInner, res.SquLowerOuter, res.SquLowerInner,
		res.TrappedFraction, res.Gm1, res.AvgBp2,
	} {
		arr[0] = extrapolateAxis(levels, arr)
	}
	res.ROutboard[0] = e.axis.X
	res.RInboard[0] = e.axis.X
	res.TrappedFraction[0] = 0 // no trapped particles on the degenerate axis surface

	res.Volume = numeric.CumIntegrate(levels, res.DVolumeDPsi)
	res.Area = numeric.CumIntegrate(levels, areaPsi)
	res.Phi = numeric.CumIntegrate(levels, res.Q)
	if e.cc.sigmaRhoTorB < 0 {
		for i := range res.Phi {
			res.Phi[i] = -res.Phi[i]
		}
	}
	res.RhoTor = make([]float64, n)
	res.RhoTorNorm = make([]float64, n)
	for i, phi := range res.Phi {
		res.RhoTor[i] = math.Sqrt(math.Abs(phi / (math.Pi * e.in.B0)))
	}
	edge := res.RhoTor[n-1]
	if edge > 0 {
		for i := range res.RhoTorNorm {
			res.RhoTorNorm[i] = res.RhoTor[i] / edge
		}
	}

	lcfs := surfaces[n-1]
	res.Ip = e.cc.sigmaBp * e.psiSign * lcfs.bpLineInt / mu0
	res.Perimeter = lcfs.perimeter
	res.Boundary = lcfs.contour
	return res
}

// gm2 remaps the 1D toroidal flux onto the 2D grid, finite-differences
// the resulting rho field, and flux-surface averages |grad rho|^2/R^2.
func (e *engine) gm2(res *Result, levels []float64, surfaces []*surface) error {
	phiIt, err := numeric.Interp1D(orderedXY(levels, res.Phi))
	if err != nil {
		return err
	}
	nx, ny := len(e.cx), len(e.cy)
	rho2d := make([][]float64, nx)
	lo, hi := math.Min(levels[0], levels[len(levels)-1]), math.Max(levels[0], levels[len(levels)-1])
	for i := 0; i < nx; i++ {
		rho2d[i] = make([]float64, ny)
		for j := 0; j < ny; j++ {
			p := math.Min(math.Max(e.cf[i][j], lo), hi)
			rho2d[i][j] = math.Sqrt(math.Abs(phiIt.Eval(p) / (math.Pi * e.in.B0)))
		}
	}
	drdx, drdy := numeric.Gradient2D(e.cx, e.cy, rho2d)
	grad2 := make([][]float64, nx)
	for i := 0; i < nx; i++ {
		grad2[i] = make([]float64, ny)
		for j := 0; j < ny; j++ {
			grad2[i][j] = drdx[i][j]*drdx[i][j] + drdy[i][j]*drdy[i][j]
		}
	}
	gradIt, err := numeric.NewInterp2D(e.cx, e.cy, grad2)
	if err != nil {
		return err
	}
	for i := 1; i < len(surfaces); i++ {
		s := surfaces[i]
		vals := make([]float64, len(s.contour))
		for k, p := range s.contour {
			vals[k] = gradIt.Eval(p.X, p.Y) / (p.X * p.X)
		}
		res.Gm2[i] = s.average(vals)
	}
	res.Gm2[0] = extrapolateAxis(levels, res.Gm2)
	return nil
}

func extrapolateAxis(x, y []float64) float64 {
	if len(x) < 3 || x[2] == x[1] {
		return y[1]
	}
	return y[1] - (y[2]-y[1])*(x[1]-x[0])/(x[2]-x[1])
}

// orderedXY returns (x, y, scheme) with x ascending, reversing both
// slices when psi decreases outward, for use with Interp1D.
func orderedXY(x, y []float64) ([]float64, []float64, numeric.Scheme) {
	if len(x) > 1 && x[0] > x[len(x)-1] {
		rx := make([]float64, len(x))
		ry := make([]float64, len(y))
		for i := range x {
			rx[i] = x[len(x)-1-i]
			ry[i] = y[len(y)-1-i]
		}
		return rx, ry, numeric.SchemeCubic
	}
	return x, y, numeric.SchemeCubic
}

// poloidalField evaluates (Br, Bz) from the psi gradient and the
// COCOS convention.
func (e *engine) poloidalField(p numeric.Point) (br, bz float64) {
	_, dr, dz := e.interp.EvalGrad(p.X, p.Y)
	cf := e.cc.bpFactor()
	return cf * dz / p.X, -cf * dr / p.X
}
