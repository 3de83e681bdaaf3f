// Package solovev synthesizes an analytic Solov'ev tokamak equilibrium
// for demos and regression tests. The flux function
//
//	psi(R,Z) = C * (R^2 Z^2 / kappa^2 + (R^2 - R0^2)^2 / 4)
//
// solves the Grad-Shafranov equation with constant pressure gradient
// and constant F, giving nested surfaces of known elongation, boundary
// flux, on-axis safety factor and plasma current that serve as an
// oracle for the flux-surface engine.
package solovev

import "math"

const mu0 = 4e-7 * math.Pi

type Equilibrium struct {
	R0    float64 // major radius [m]
	B0    float64 // vacuum toroidal field at R0 [T]
	A     float64 // minor radius [m]
	Kappa float64 // elongation
	Q0    float64 // safety factor on axis
	P0    float64 // on-axis pressure [Pa]
}

// New returns a DIII-D-like equilibrium.
func New() *Equilibrium {
	return &Equilibrium{
		R0:    1.67,
		B0:    2.0,
		A:     0.45,
		Kappa: 1.8,
		Q0:    1.1,
		P0:    4.0e4,
	}
}

// c is the flux normalization fixed by the requested on-axis safety
// factor.
func (e *Equilibrium) c() float64 {
	return math.Pi * e.Kappa * e.B0 / (e.Q0 * e.R0 * e.R0)
}

func (e *Equilibrium) Psi(r, z float64) float64 {
	d := r*r - e.R0*e.R0
	return e.c() * (r*r*z*z/(e.Kappa*e.Kappa) + d*d/4)
}

// PsiBoundary is the exact flux at the outboard midplane boundary
// point R0+A.
func (e *Equilibrium) PsiBoundary() float64 {
	d := 2*e.R0*e.A + e.A*e.A
	return e.c() * d * d / 4
}

// RInboard is the exact inboard midplane radius of the boundary
// surface. The outboard radius is R0+A by construction.
func (e *Equilibrium) RInboard() float64 {
	d := e.R0 - e.A
	return math.Sqrt(d*d - 2*e.A*e.A)
}

// Volume is the plasma volume enclosed by the boundary surface.
// Writing the surface as u = R0^2 + 2 s w with u = R^2, w in [-1,1]
// and s = sqrt(psi_b/C), the volume integral reduces to
// (4 pi kappa s^2 / R0) * Int sqrt(1-w^2)/sqrt(1+eps w) dw with
// eps = 2 s / R0^2, evaluated here by its even-power series.
func (e *Equilibrium) Volume() float64 {
	s := (2*e.R0*e.A + e.A*e.A) / 2
	eps := 2 * s / (e.R0 * e.R0)
	e2 := eps * eps
	series := 1 + 3.0/32.0*e2 + 35.0/1024.0*e2*e2 + 231.0/16384.0*e2*e2*e2
	return 4 * math.Pi * e.Kappa * s * s / e.R0 * math.Pi / 2 * series
}

// Ip is the exact plasma current enclosed by the boundary surface:
// the divergence theorem turns the Bp line integral into
// 2 C (1 + 1/kappa^2) Int R dA = C (1 + 1/kappa^2) V / pi.
func (e *Equilibrium) Ip() float64 {
	return e.c() * (1 + 1/(e.Kappa*e.Kappa)) * e.Volume() / (2 * math.Pi * math.Pi * mu0)
}

// F is the toroidal field function, constant for this solution.
func (e *Equilibrium) F() float64 { return e.R0 * e.B0 }

// Pressure evaluates the linear Solov'ev pressure profile, zero at the
// boundary.
func (e *Equilibrium) Pressure(psi float64) float64 {
	p := e.P0 * (1 - psi/e.PsiBoundary())
	if p < 0 {
		return 0
	}
	return p
}

// Grid returns a uniform rectilinear grid enclosing the plasma with
// margin for open field lines.
func (e *Equilibrium) Grid(nr, nz int) (r, z []float64) {
	r = make([]float64, nr)
	z = make([]float64, nz)
	rmin, rmax := e.R0-1.5*e.A, e.R0+1.5*e.A
	zmax := 1.5 * e.Kappa * e.A
	for i := range r {
		r[i] = rmin + (rmax-rmin)*float64(i)/float64(nr-1)
	}
	for j := range z {
		z[j] = -zmax + 2*zmax*float64(j)/float64(nz-1)
	}
	return r, z
}

// PsiMap evaluates the flux map on a grid, indexed [iR][iZ].
func (e *Equilibrium) PsiMap(r, z []float64) [][]float64 {
	m := make([][]float64, len(r))
	for i := range r {
		m[i] = make([]float64, len(z))
		for j := range z {
			m[i][j] = e.Psi(r[i], z[j])
		}
	}
	return m
}

// Profiles returns n psi levels from axis to boundary with the
// matching F and pressure samples.
func (e *Equilibrium) Profiles(n int) (psi, f, pressure []float64) {
	psi = make([]float64, n)
	f = make([]float64, n)
	pressure = make([]float64, n)
	pb := e.PsiBoundary()
	for i := range psi {
		psi[i] = pb * float64(i) / float64(n-1)
		f[i] = e.F()
		pressure[i] = e.Pressure(psi[i])
	}
	return psi, f, pressure
}
