// Package equilibrium drives the flux-surface engine across the time
// slices of an equilibrium IDS and writes every derived profile and
// global scalar back into the tree, so the ordinary coordinate
// validation of ids.Set applies to computed data too.
package equilibrium

import (
	"fmt"
	"math"

	"github.com/mgyoo86/imasgo/internal/fluxsurface"
	"github.com/mgyoo86/imasgo/internal/ids"
	"github.com/mgyoo86/imasgo/internal/numeric"
)

const mu0 = 4 * math.Pi * 1e-7

// MissingFieldError reports an input field the solver needs but the
// tree does not hold.
type MissingFieldError struct {
	Path string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("equilibrium: required field %q is not set", e.Path)
}

// Solver computes flux surfaces and derived quantities for equilibrium
// IDS trees.
type Solver struct {
	opts fluxsurface.Options
}

func NewSolver(opts fluxsurface.Options) *Solver {
	return &Solver{opts: opts}
}

// Solve processes every time slice of the equilibrium IDS in order.
// The first slice that fails aborts the call.
func (s *Solver) Solve(eq *ids.Node) error {
	slices := eq.StructArray("time_slice")
	if slices == nil {
		return MissingFieldError{Path: "equilibrium.time_slice"}
	}
	for i := 0; i < slices.Len(); i++ {
		if err := s.SolveSlice(eq, i); err != nil {
			return fmt.Errorf("time slice %d: %w", i, err)
		}
	}
	return nil
}

// SolveSlice runs the flux-surface engine for one time slice and
// stores the results under profiles_1d, boundary, x_point and
// global_quantities of that slice.
func (s *Solver) SolveSlice(eq *ids.Node, i int) error {
	slices := eq.StructArray("time_slice")
	if slices == nil || i >= slices.Len() {
		return MissingFieldError{Path: "equilibrium.time_slice"}
	}
	slice := slices.At(i)

	in, b0, err := sliceInput(eq, slice, i)
	if err != nil {
		return err
	}
	res, err := fluxsurface.Run(in, s.opts)
	if err != nil {
		return err
	}
	if err := storeProfiles(slice, res); err != nil {
		return err
	}
	if err := storeBoundary(slice, res); err != nil {
		return err
	}
	if err := storeXPoints(slice, res); err != nil {
		return err
	}
	return storeGlobals(slice, res, in, b0)
}

// sliceInput collects the engine input from the tree: the rectangular
// profiles_2d grid and psi map, the 1D psi and f profiles, and the
// vacuum field reference.
func sliceInput(eq, slice *ids.Node, i int) (fluxsurface.Input, float64, error) {
	var in fluxsurface.Input

	p2d := slice.StructArray("profiles_2d")
	if p2d == nil || p2d.Len() == 0 {
		return in, 0, MissingFieldError{Path: "equilibrium.time_slice[:].profiles_2d"}
	}
	grid := p2d.At(0).Child("grid")
	if grid == nil {
		return in, 0, MissingFieldError{Path: "equilibrium.time_slice[:].profiles_2d[:].grid"}
	}
	in.R = grid.Floats("dim1")
	in.Z = grid.Floats("dim2")
	psiRaw, _ := p2d.At(0).Get("psi")
	psi2d, ok := psiRaw.(*ids.Array2D)
	if in.R == nil || in.Z == nil || !ok {
		return in, 0, MissingFieldError{Path: "equilibrium.time_slice[:].profiles_2d[:].psi"}
	}
	in.PsiRZ = psi2d.Data

	p1d := slice.Child("profiles_1d")
	if p1d == nil {
		return in, 0, MissingFieldError{Path: "equilibrium.time_slice[:].profiles_1d"}
	}
	in.Psi = p1d.Floats("psi")
	in.F = p1d.Floats("f")
	if in.Psi == nil || in.F == nil {
		return in, 0, MissingFieldError{Path: "equilibrium.time_slice[:].profiles_1d.psi"}
	}

	vac := eq.Child("vacuum_toroidal_field")
	if vac == nil {
		return in, 0, MissingFieldError{Path: "equilibrium.vacuum_toroidal_field"}
	}
	r0, ok := vac.Float("r0")
	if !ok {
		return in, 0, MissingFieldError{Path: "equilibrium.vacuum_toroidal_field.r0"}
	}
	b0s := vac.Floats("b0")
	if i >= len(b0s) {
		return in, 0, MissingFieldError{Path: "equilibrium.vacuum_toroidal_field.b0"}
	}
	in.R0 = r0
	in.B0 = b0s[i]
	return in, b0s[i], nil
}

func storeProfiles(slice *ids.Node, res *fluxsurface.Result) error {
	p1d := slice.EnsureChild("profiles_1d")
	type profile struct {
		name string
		vals []float64
	}
	fields := []profile{
		{"psi", res.Psi},
		{"phi", res.Phi},
		{"q", res.Q},
		{"dvolume_dpsi", res.DVolumeDPsi},
		{"volume", res.Volume},
		{"area", res.Area},
		{"rho_tor", res.RhoTor},
		{"rho_tor_norm", res.RhoTorNorm},
		{"elongation", res.Elongation},
		{"triangularity_upper", res.TriUpper},
		{"triangularity_lower", res.TriLower},
		{"trapped_fraction", res.TrappedFraction},
		{"gm1", res.Gm1},
		{"gm2", res.Gm2},
		{"r_outboard", res.ROutboard},
		{"r_inboard", res.RInboard},
	}
	if res.SquUpperOuter != nil {
		fields = append(fields,
			profile{"squareness_upper_outer", res.SquUpperOuter},
			profile{"squareness_upper_inner", res.SquUpperInner},
			profile{"squareness_lower_outer", res.SquLowerOuter},
			profile{"squareness_lower_inner", res.SquLowerInner},
		)
	}
	for _, f := range fields {
		if err := p1d.Set(f.name, f.vals); err != nil {
			return err
		}
	}
	return nil
}

func storeBoundary(slice *ids.Node, res *fluxsurface.Result) error {
	b := slice.EnsureChild("boundary")
	n := len(res.Boundary)
	r := make([]float64, n)
	z := make([]float64, n)
	for k, p := range res.Boundary {
		r[k] = p.X
		z[k] = p.Y
	}
	outline := b.EnsureChild("outline")
	if err := outline.Set("r", r); err != nil {
		return err
	}
	if err := outline.Set("z", z); err != nil {
		return err
	}

	last := len(res.Psi) - 1
	rOut, rIn := res.ROutboard[last], res.RInboard[last]
	if err := b.Set("elongation", res.Elongation[last]); err != nil {
		return err
	}
	if err := b.Set("triangularity_upper", res.TriUpper[last]); err != nil {
		return err
	}
	if err := b.Set("triangularity_lower", res.TriLower[last]); err != nil {
		return err
	}
	if err := b.Set("minor_radius", (rOut-rIn)/2); err != nil {
		return err
	}
	ga := b.EnsureChild("geometric_axis")
	if err := ga.Set("r", (rOut+rIn)/2); err != nil {
		return err
	}
	zmin, zmax := math.Inf(1), math.Inf(-1)
	for _, p := range res.Boundary {
		zmin = math.Min(zmin, p.Y)
		zmax = math.Max(zmax, p.Y)
	}
	return ga.Set("z", (zmin+zmax)/2)
}

func storeXPoints(slice *ids.Node, res *fluxsurface.Result) error {
	xp := slice.EnsureStructArray("x_point")
	xp.Resize(len(res.XPoints))
	for k, p := range res.XPoints {
		if err := xp.At(k).Set("r", p.P.X); err != nil {
			return err
		}
		if err := xp.At(k).Set("z", p.P.Y); err != nil {
			return err
		}
	}
	return nil
}

func storeGlobals(slice *ids.Node, res *fluxsurface.Result, in fluxsurface.Input, b0 float64) error {
	gq := slice.EnsureChild("global_quantities")
	last := len(res.Psi) - 1

	scalars := map[string]float64{
		"ip":           res.Ip,
		"psi_axis":     res.PsiAxis,
		"psi_boundary": res.PsiBoundary,
		"volume":       res.Volume[last],
		"area":         res.Area[last],
		"length_pol":   res.Perimeter,
		"q_axis":       res.Q[0],
	}
	for name, v := range scalars {
		if err := gq.Set(name, v); err != nil {
			return err
		}
	}
	axis := gq.EnsureChild("magnetic_axis")
	if err := axis.Set("r", res.Axis.X); err != nil {
		return err
	}
	if err := axis.Set("z", res.Axis.Y); err != nil {
		return err
	}

	qmin := res.Q[0]
	for _, q := range res.Q {
		if math.Abs(q) < math.Abs(qmin) {
			qmin = q
		}
	}
	if err := gq.Set("q_min", qmin); err != nil {
		return err
	}
	q95, err := qAtNormalizedPsi(res, 0.95)
	if err == nil {
		if err := gq.Set("q_95", q95); err != nil {
			return err
		}
	}

	// Beta and inductance need the pressure profile; leave them unset
	// when the input tree carries none.
	p1d := slice.Child("profiles_1d")
	pressure := p1d.Floats("pressure")
	if pressure == nil {
		return nil
	}

	pdV := numeric.Integrate(res.Psi, mulEach(pressure, res.DVolumeDPsi))
	volume := res.Volume[last]
	pAvg := pdV / volume

	minor := (res.ROutboard[last] - res.RInboard[last]) / 2
	betaTor := 2 * mu0 * pAvg / (b0 * b0)
	if err := gq.Set("beta_tor", betaTor); err != nil {
		return err
	}
	if res.Ip != 0 {
		betaPol := 4 * pdV / (in.R0 * mu0 * res.Ip * res.Ip)
		if err := gq.Set("beta_pol", betaPol); err != nil {
			return err
		}
		betaN := betaTor * minor * math.Abs(b0) / math.Abs(res.Ip) * 1e8
		if err := gq.Set("beta_normal", betaN); err != nil {
			return err
		}
		bp2dV := numeric.Integrate(res.Psi, mulEach(res.AvgBp2, res.DVolumeDPsi))
		li3 := 2 * bp2dV / (mu0 * mu0 * res.Ip * res.Ip * in.R0)
		if err := gq.Set("li_3", li3); err != nil {
			return err
		}
	}
	return nil
}

// qAtNormalizedPsi interpolates |q| at a normalized poloidal flux
// fraction and restores the profile's sign.
func qAtNormalizedPsi(res *fluxsurface.Result, frac float64) (float64, error) {
	n := len(res.Psi)
	psiNorm := make([]float64, n)
	qAbs := make([]float64, n)
	span := res.PsiBoundary - res.PsiAxis
	for i := range res.Psi {
		psiNorm[i] = (res.Psi[i] - res.PsiAxis) / span
		qAbs[i] = math.Abs(res.Q[i])
	}
	it, err := numeric.Interp1D(psiNorm, qAbs, numeric.SchemeCubic)
	if err != nil {
		return 0, err
	}
	v := it.Eval(frac)
	if res.Q[n/2] < 0 {
		v = -v
	}
	return v, nil
}

func mulEach(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}
