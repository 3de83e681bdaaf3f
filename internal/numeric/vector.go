package numeric

// Gradient computes dy/dx on a possibly non-uniform grid: second-order
// central differences in the interior, first-order one-sided at both
// boundaries. The result has the same length as y.
func Gradient(x, y []float64) []float64 {
	n := len(y)
	g := make([]float64, n)
	if n < 2 {
		return g
	}
	g[0] = (y[1] - y[0]) / (x[1] - x[0])
	g[n-1] = (y[n-1] - y[n-2]) / (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		hs := x[i] - x[i-1]
		hd := x[i+1] - x[i]
		g[i] = (hs*hs*y[i+1] + (hd*hd-hs*hs)*y[i] - hd*hd*y[i-1]) / (hs * hd * (hd + hs))
	}
	return g
}

// Gradient2D applies Gradient independently along each axis of f,
// indexed f[i][j] with i running over x and j over y. It returns the
// two partials df/dx and df/dy.
func Gradient2D(x, y []float64, f [][]float64) (dfdx, dfdy [][]float64) {
	nx := len(x)
	ny := len(y)
	dfdx = make([][]float64, nx)
	dfdy = make([][]float64, nx)
	for i := 0; i < nx; i++ {
		dfdx[i] = make([]float64, ny)
		dfdy[i] = Gradient(y, f[i])
	}
	col := make([]float64, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			col[i] = f[i][j]
		}
		gc := Gradient(x, col)
		for i := 0; i < nx; i++ {
			dfdx[i][j] = gc[i]
		}
	}
	return dfdx, dfdy
}

// Integrate returns the definite trapezoidal integral of y over x.
func Integrate(x, y []float64) float64 {
	total := 0.0
	for i := 1; i < len(x); i++ {
		total += 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
	}
	return total
}

// CumIntegrate returns the running trapezoidal integral of y over x.
// The result has the same length as x with first entry 0.
func CumIntegrate(x, y []float64) []float64 {
	out := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		out[i] = out[i-1] + 0.5*(y[i]+y[i-1])*(x[i]-x[i-1])
	}
	return out
}
