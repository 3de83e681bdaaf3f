package fluxsurface

import (
	"math"
	"sort"

	"github.com/mgyoo86/imasgo/internal/numeric"
)

// findExtremum refines a stationary point of the interpolated flux map
// by Newton iterations on its gradient. The Hessian is built by
// central-differencing the interpolant's analytic first derivatives
// with step h; steps are clamped to h per iteration so a bad Hessian
// cannot throw the iterate off the grid.
func findExtremum(it *numeric.Interp2D, start numeric.Point, h, tol float64, maxIter int) numeric.Point {
	p := start
	for iter := 0; iter < maxIter; iter++ {
		_, gx, gy := it.EvalGrad(p.X, p.Y)
		if math.Hypot(gx, gy) < tol {
			break
		}
		_, gxp, gyp := it.EvalGrad(p.X+h, p.Y)
		_, gxm, gym := it.EvalGrad(p.X-h, p.Y)
		hxx := (gxp - gxm) / (2 * h)
		hyx := (gyp - gym) / (2 * h)
		_, gxp, gyp = it.EvalGrad(p.X, p.Y+h)
		_, gxm, gym = it.EvalGrad(p.X, p.Y-h)
		hxy := (gxp - gxm) / (2 * h)
		hyy := (gyp - gym) / (2 * h)
		hxy = 0.5 * (hxy + hyx)

		det := hxx*hyy - hxy*hxy
		var dx, dy float64
		if math.Abs(det) > 1e-300 {
			dx = -(hyy*gx - hxy*gy) / det
			dy = -(-hxy*gx + hxx*gy) / det
		} else {
			dx, dy = -gx*h, -gy*h
		}
		if step := math.Hypot(dx, dy); step > h {
			dx *= h / step
			dy *= h / step
		}
		p.X += dx
		p.Y += dy
	}
	return p
}

// nelderMead minimizes f over the plane with a 2D downhill simplex
// started around p with the given edge scale. The search is bounded by
// maxIter reflections; whatever the simplex converged to is returned
// (non-convergence is not reported, per the engine's robustness
// tradeoff).
func nelderMead(f func(numeric.Point) float64, p numeric.Point, scale, tol float64, maxIter int) numeric.Point {
	type vertex struct {
		p numeric.Point
		v float64
	}
	simplex := []vertex{
		{p, f(p)},
		{numeric.Point{X: p.X + scale, Y: p.Y}, 0},
		{numeric.Point{X: p.X, Y: p.Y + scale}, 0},
	}
	simplex[1].v = f(simplex[1].p)
	simplex[2].v = f(simplex[2].p)

	const (
		alpha = 1.0
		gamma = 2.0
		rho   = 0.5
		sigma = 0.5
	)
	for iter := 0; iter < maxIter; iter++ {
		sort.Slice(simplex, func(i, j int) bool { return simplex[i].v < simplex[j].v })
		if math.Abs(simplex[2].v-simplex[0].v) < tol {
			break
		}
		c := numeric.Point{
			X: 0.5 * (simplex[0].p.X + simplex[1].p.X),
			Y: 0.5 * (simplex[0].p.Y + simplex[1].p.Y),
		}
		worst := simplex[2]

		refl := numeric.Point{X: c.X + alpha*(c.X-worst.p.X), Y: c.Y + alpha*(c.Y-worst.p.Y)}
		fr := f(refl)
		switch {
		case fr < simplex[0].v:
			exp := numeric.Point{X: c.X + gamma*(c.X-worst.p.X), Y: c.Y + gamma*(c.Y-worst.p.Y)}
			if fe := f(exp); fe < fr {
				simplex[2] = vertex{exp, fe}
			} else {
				simplex[2] = vertex{refl, fr}
			}
		case fr < simplex[1].v:
			simplex[2] = vertex{refl, fr}
		default:
			contr := numeric.Point{X: c.X + rho*(worst.p.X-c.X), Y: c.Y + rho*(worst.p.Y-c.Y)}
			if fc := f(contr); fc < worst.v {
				simplex[2] = vertex{contr, fc}
			} else {
				for i := 1; i < 3; i++ {
					simplex[i].p.X = simplex[0].p.X + sigma*(simplex[i].p.X-simplex[0].p.X)
					simplex[i].p.Y = simplex[0].p.Y + sigma*(simplex[i].p.Y-simplex[0].p.Y)
					simplex[i].v = f(simplex[i].p)
				}
			}
		}
	}
	sort.Slice(simplex, func(i, j int) bool { return simplex[i].v < simplex[j].v })
	return simplex[0].p
}
