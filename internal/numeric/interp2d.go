package numeric

// Interp2D is a bicubic interpolant of f over a uniform rectilinear
// grid, with analytic partial derivatives. f is indexed f[i][j] with i
// running over x and j over y. Both axes must pass ToRange.
type Interp2D struct {
	rx, ry Range
	f      [][]float64
}

func NewInterp2D(x, y []float64, f [][]float64) (*Interp2D, error) {
	rx, err := ToRange(x)
	if err != nil {
		return nil, err
	}
	ry, err := ToRange(y)
	if err != nil {
		return nil, err
	}
	return &Interp2D{rx: rx, ry: ry, f: f}, nil
}

// Eval returns the interpolated value at (xq, yq).
func (it *Interp2D) Eval(xq, yq float64) float64 {
	v, _, _ := it.evalKernel(xq, yq, false)
	return v
}

// EvalGrad returns the interpolated value and both partial derivatives
// at (xq, yq).
func (it *Interp2D) EvalGrad(xq, yq float64) (v, dvdx, dvdy float64) {
	return it.evalKernel(xq, yq, true)
}

// Resample evaluates the interpolant on a grid upsampled by the given
// integer factor along both axes, returning the new axes and values.
func (it *Interp2D) Resample(factor int) (x, y []float64, f [][]float64) {
	nx := (it.rx.N-1)*factor + 1
	ny := (it.ry.N-1)*factor + 1
	x = Range{Start: it.rx.Start, Stop: it.rx.Stop, N: nx}.Values()
	y = Range{Start: it.ry.Start, Stop: it.ry.Stop, N: ny}.Values()
	f = make([][]float64, nx)
	for i := range f {
		f[i] = make([]float64, ny)
		for j := range f[i] {
			f[i][j] = it.Eval(x[i], y[j])
		}
	}
	return x, y, f
}

// evalKernel performs bicubic (Catmull-Rom) convolution over the 4x4
// stencil around the query point. Stencil rows falling outside the grid
// use linearly extrapolated ghost samples, which keeps the interpolant
// exact for linear fields in the boundary cells.
func (it *Interp2D) evalKernel(xq, yq float64, grad bool) (v, dvdx, dvdy float64) {
	hx := it.rx.Step()
	hy := it.ry.Step()
	ix, tx := cellOf(xq, it.rx)
	iy, ty := cellOf(yq, it.ry)

	wx, dwx := cubicWeights(tx)
	wy, dwy := cubicWeights(ty)

	for m := 0; m < 4; m++ {
		for n := 0; n < 4; n++ {
			fv := it.at(ix+m-1, iy+n-1)
			v += wx[m] * wy[n] * fv
			if grad {
				dvdx += dwx[m] * wy[n] * fv
				dvdy += wx[m] * dwy[n] * fv
			}
		}
	}
	if grad {
		dvdx /= hx
		dvdy /= hy
	}
	return v, dvdx, dvdy
}

// at samples f, extending each axis by one ghost point through linear
// extrapolation. The stencil never reaches more than one point past the
// grid, so one recursion step per axis suffices.
func (it *Interp2D) at(i, j int) float64 {
	nx, ny := it.rx.N, it.ry.N
	switch {
	case i < 0:
		return 2*it.at(0, j) - it.at(1, j)
	case i >= nx:
		return 2*it.at(nx-1, j) - it.at(nx-2, j)
	case j < 0:
		return 2*it.f[i][0] - it.f[i][1]
	case j >= ny:
		return 2*it.f[i][ny-1] - it.f[i][ny-2]
	}
	return it.f[i][j]
}

// cellOf locates the cell index and the local parameter t in [0,1],
// clamping queries outside the grid onto the boundary cells.
func cellOf(q float64, r Range) (int, float64) {
	h := r.Step()
	t := (q - r.Start) / h
	i := int(t)
	if i < 0 {
		i = 0
	}
	if i > r.N-2 {
		i = r.N - 2
	}
	return i, t - float64(i)
}

// cubicWeights returns the Catmull-Rom basis weights and their
// derivatives with respect to t for the four stencil points.
func cubicWeights(t float64) (w, dw [4]float64) {
	t2 := t * t
	t3 := t2 * t
	w[0] = 0.5 * (-t3 + 2*t2 - t)
	w[1] = 0.5 * (3*t3 - 5*t2 + 2)
	w[2] = 0.5 * (-3*t3 + 4*t2 + t)
	w[3] = 0.5 * (t3 - t2)
	dw[0] = 0.5 * (-3*t2 + 4*t - 1)
	dw[1] = 0.5 * (9*t2 - 10*t)
	dw[2] = 0.5 * (-9*t2 + 8*t + 1)
	dw[3] = 0.5 * (3*t2 - 2*t)
	return w, dw
}
