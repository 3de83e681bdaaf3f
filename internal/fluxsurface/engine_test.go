package fluxsurface_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mgyoo86/imasgo/internal/fluxsurface"
	"github.com/mgyoo86/imasgo/internal/solovev"
)

var _ = Describe("flux surfaces of a Solov'ev equilibrium", Ordered, func() {
	var (
		eq  *solovev.Equilibrium
		res *fluxsurface.Result
	)

	BeforeAll(func() {
		eq = solovev.New()
		r, z := eq.Grid(129, 129)
		psi1d, f, _ := eq.Profiles(65)
		var err error
		res, err = fluxsurface.Run(fluxsurface.Input{
			R: r, Z: z, PsiRZ: eq.PsiMap(r, z),
			Psi: psi1d, F: f,
			B0: eq.B0, R0: eq.R0,
		}, fluxsurface.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	It("locates the magnetic axis", func() {
		Expect(res.Axis.X).To(BeNumerically("~", eq.R0, 0.01))
		Expect(res.Axis.Y).To(BeNumerically("~", 0.0, 0.01))
		Expect(math.Abs(res.PsiAxis)).To(BeNumerically("<", 0.01*eq.PsiBoundary()))
	})

	It("produces a strictly increasing normalized toroidal flux radius", func() {
		Expect(res.RhoTorNorm[0]).To(BeNumerically("~", 0.0, 1e-9))
		Expect(res.RhoTorNorm[len(res.RhoTorNorm)-1]).To(BeNumerically("~", 1.0, 1e-9))
		for i := 1; i < len(res.RhoTorNorm); i++ {
			Expect(res.RhoTorNorm[i]).To(BeNumerically(">", res.RhoTorNorm[i-1]))
		}
	})

	It("keeps psi monotonic", func() {
		for i := 1; i < len(res.Psi); i++ {
			Expect(res.Psi[i]).To(BeNumerically(">", res.Psi[i-1]))
		}
	})

	It("recovers the analytic elongation", func() {
		mid := len(res.Elongation) / 2
		Expect(res.Elongation[mid]).To(BeNumerically("~", eq.Kappa, 0.1*eq.Kappa))
	})

	It("sees small triangularity for this up-down symmetric solution", func() {
		mid := len(res.TriUpper) / 2
		Expect(math.Abs(res.TriUpper[mid])).To(BeNumerically("<", 0.2))
		Expect(math.Abs(res.TriLower[mid])).To(BeNumerically("<", 0.2))
	})

	It("recovers the analytic plasma current", func() {
		Expect(math.Abs(res.Ip)).To(BeNumerically("~", eq.Ip(), 0.1*eq.Ip()))
	})

	It("recovers the on-axis safety factor", func() {
		Expect(math.Abs(res.Q[0])).To(BeNumerically("~", eq.Q0, 0.1*eq.Q0))
	})

	It("integrates the analytic plasma volume", func() {
		last := res.Volume[len(res.Volume)-1]
		Expect(last).To(BeNumerically("~", eq.Volume(), 0.1*eq.Volume()))
		for i := 1; i < len(res.Volume); i++ {
			Expect(res.Volume[i]).To(BeNumerically(">", res.Volume[i-1]))
		}
	})

	It("bounds the trapped fraction and grows it outward", func() {
		n := len(res.TrappedFraction)
		for i := 1; i < n; i++ {
			Expect(res.TrappedFraction[i]).To(BeNumerically(">", 0.0))
			Expect(res.TrappedFraction[i]).To(BeNumerically("<", 1.0))
		}
		Expect(res.TrappedFraction[n-1]).To(BeNumerically(">", res.TrappedFraction[n/2]))
	})

	It("flux averages 1/R^2 near the axis value", func() {
		Expect(res.Gm1[2]).To(BeNumerically("~", 1/(eq.R0*eq.R0), 0.2/(eq.R0*eq.R0)))
	})

	It("records the boundary contour and perimeter", func() {
		Expect(len(res.Boundary)).To(BeNumerically(">", 50))
		// Ramanujan ellipse perimeter with the exact midplane
		// half-width and the midplane height of the surface. The
		// Solov'ev boundary is only close to an ellipse, so the
		// tolerance stays loose.
		a := (eq.R0 + eq.A - eq.RInboard()) / 2
		b := eq.Kappa * (2*eq.R0*eq.A + eq.A*eq.A) / (2 * eq.R0)
		h := (a - b) * (a - b) / ((a + b) * (a + b))
		approx := math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h)))
		Expect(res.Perimeter).To(BeNumerically("~", approx, 0.15*approx))
	})

	It("finds no X-points in a limiter plasma", func() {
		Expect(res.XPoints).To(BeEmpty())
	})
})

var _ = Describe("flux surfaces near a separatrix", Ordered, func() {
	const (
		r0 = 1.7
		z0 = 0.6
	)
	var res *fluxsurface.Result

	// psi = (R-r0)^2 + Z^2 - Z^3/z0 has its axis at (r0, 0) and a
	// saddle (X-point) at (r0, 2*z0/3).
	psiAt := func(r, z float64) float64 {
		x := r - r0
		return x*x + z*z - z*z*z/z0
	}

	BeforeAll(func() {
		n := 129
		r := make([]float64, n)
		z := make([]float64, n)
		for i := 0; i < n; i++ {
			r[i] = r0 - 0.5 + float64(i)/float64(n-1)
			z[i] = -0.8 + 1.6*float64(i)/float64(n-1)
		}
		psiRZ := make([][]float64, n)
		for i := range psiRZ {
			psiRZ[i] = make([]float64, n)
			for j := range psiRZ[i] {
				psiRZ[i][j] = psiAt(r[i], z[j])
			}
		}
		psiX := 4 * z0 * z0 / 27
		m := 41
		psi1d := make([]float64, m)
		f := make([]float64, m)
		for i := 0; i < m; i++ {
			psi1d[i] = 0.98 * psiX * float64(i) / float64(m-1)
			f[i] = r0 * 2.0
		}
		var err error
		res, err = fluxsurface.Run(fluxsurface.Input{
			R: r, Z: z, PsiRZ: psiRZ, Psi: psi1d, F: f, B0: 2.0, R0: r0,
		}, fluxsurface.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	It("substitutes the bisected boundary flux for the nominal edge level", func() {
		psiX := 4 * z0 * z0 / 27
		Expect(res.PsiBoundary).To(BeNumerically("~", psiX, 0.02*psiX))
	})

	It("finds the upper X-point", func() {
		Expect(res.XPoints).NotTo(BeEmpty())
		xp := res.XPoints[0]
		Expect(xp.Upper).To(BeTrue())
		Expect(xp.P.X).To(BeNumerically("~", r0, 0.05))
		Expect(xp.P.Y).To(BeNumerically("~", 2*z0/3, 0.05))
	})
})

var _ = Describe("trace failures", func() {
	It("aborts with a TraceError when a level has no closed surface", func() {
		eq := solovev.New()
		r, z := eq.Grid(65, 65)
		psi1d, f, _ := eq.Profiles(17)
		// Push the whole psi range far outside the grid.
		for i := range psi1d {
			psi1d[i] += 100 * eq.PsiBoundary()
		}
		_, err := fluxsurface.Run(fluxsurface.Input{
			R: r, Z: z, PsiRZ: eq.PsiMap(r, z), Psi: psi1d, F: f, B0: eq.B0, R0: eq.R0,
		}, fluxsurface.DefaultOptions())
		Expect(err).To(HaveOccurred())
	})
})
