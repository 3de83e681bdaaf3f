package equilibrium

import (
	"github.com/mgyoo86/imasgo/internal/ids"
	"github.com/mgyoo86/imasgo/internal/solovev"
)

// NewSample builds an equilibrium IDS populated from an analytic
// Solov'ev solution, one identical slice per requested time. It is the
// built-in fixture for the solver and the demo command.
func NewSample(eq *solovev.Equilibrium, times []float64, nr, nz, npsi int) (*ids.Node, error) {
	root := ids.NewRoot()
	top := ids.NewNode("equilibrium")
	if err := root.Set("equilibrium", top); err != nil {
		return nil, err
	}
	if err := top.Set("time", times); err != nil {
		return nil, err
	}

	vac := top.EnsureChild("vacuum_toroidal_field")
	if err := vac.Set("r0", eq.R0); err != nil {
		return nil, err
	}
	b0 := make([]float64, len(times))
	for i := range b0 {
		b0[i] = eq.B0
	}
	if err := vac.Set("b0", b0); err != nil {
		return nil, err
	}

	r, z := eq.Grid(nr, nz)
	psiMap := eq.PsiMap(r, z)
	psi, f, pressure := eq.Profiles(npsi)

	slices := top.EnsureStructArray("time_slice")
	slices.Resize(len(times))
	for i, t := range times {
		slice := slices.At(i)
		if err := slice.Set("time", t); err != nil {
			return nil, err
		}

		p2d := slice.EnsureStructArray("profiles_2d")
		p2d.Resize(1)
		gt := p2d.At(0).EnsureChild("grid_type")
		if err := gt.Set("index", 1); err != nil {
			return nil, err
		}
		if err := gt.Set("name", "rectangular"); err != nil {
			return nil, err
		}
		grid := p2d.At(0).EnsureChild("grid")
		if err := grid.Set("dim1", r); err != nil {
			return nil, err
		}
		if err := grid.Set("dim2", z); err != nil {
			return nil, err
		}
		if err := p2d.At(0).Set("psi", ids.NewArray2D(psiMap)); err != nil {
			return nil, err
		}

		p1d := slice.EnsureChild("profiles_1d")
		if err := p1d.Set("psi", psi); err != nil {
			return nil, err
		}
		if err := p1d.Set("f", f); err != nil {
			return nil, err
		}
		if err := p1d.Set("pressure", pressure); err != nil {
			return nil, err
		}
	}
	return top, nil
}
