package numeric

// Scheme selects the interpolation rule used by Interp1D.
type Scheme string

const (
	SchemeConstant  Scheme = "constant"
	SchemeLinear    Scheme = "linear"
	SchemeQuadratic Scheme = "quadratic"
	SchemeCubic     Scheme = "cubic"
	SchemeLagrange  Scheme = "lagrange"
)

// Interpolant is a reusable 1D interpolant built by Interp1D. x must be
// strictly increasing.
type Interpolant struct {
	x      []float64
	y      []float64
	scheme Scheme
	m      []float64 // spline second derivatives (cubic only)
	w      []float64 // barycentric weights (lagrange only)
}

// Interp1D builds an interpolant over the sample points (x, y).
// Supported schemes: constant, linear, quadratic, cubic (natural
// spline), lagrange (full-order polynomial through all points).
func Interp1D(x, y []float64, scheme Scheme) (*Interpolant, error) {
	it := &Interpolant{x: x, y: y, scheme: scheme}
	switch scheme {
	case SchemeConstant, SchemeLinear, SchemeQuadratic:
	case SchemeCubic:
		it.m = splineMoments(x, y)
	case SchemeLagrange:
		it.w = barycentricWeights(x)
	default:
		return nil, UnsupportedSchemeError{Scheme: scheme}
	}
	return it, nil
}

func (it *Interpolant) Eval(xq float64) float64 {
	switch it.scheme {
	case SchemeConstant:
		return it.y[it.bracket(xq)]
	case SchemeLinear:
		i := it.bracket(xq)
		t := (xq - it.x[i]) / (it.x[i+1] - it.x[i])
		return it.y[i] + t*(it.y[i+1]-it.y[i])
	case SchemeQuadratic:
		return it.quadratic(xq)
	case SchemeCubic:
		return it.cubic(xq)
	default:
		return it.lagrange(xq)
	}
}

// EvalAll evaluates the interpolant at every query point in order.
func (it *Interpolant) EvalAll(xq []float64) []float64 {
	out := make([]float64, len(xq))
	for i, v := range xq {
		out[i] = it.Eval(v)
	}
	return out
}

// bracket returns i such that x[i] <= xq < x[i+1], clamped to the valid
// segment range so end segments extrapolate.
func (it *Interpolant) bracket(xq float64) int {
	lo, hi := 0, len(it.x)-2
	if xq <= it.x[0] {
		return 0
	}
	if xq >= it.x[len(it.x)-1] {
		return hi
	}
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if it.x[mid] <= xq {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// quadratic fits the local 3-point Lagrange parabola around the query
// segment.
func (it *Interpolant) quadratic(xq float64) float64 {
	n := len(it.x)
	if n < 3 {
		i := it.bracket(xq)
		t := (xq - it.x[i]) / (it.x[i+1] - it.x[i])
		return it.y[i] + t*(it.y[i+1]-it.y[i])
	}
	i := it.bracket(xq)
	if i > n-3 {
		i = n - 3
	}
	x0, x1, x2 := it.x[i], it.x[i+1], it.x[i+2]
	l0 := (xq - x1) * (xq - x2) / ((x0 - x1) * (x0 - x2))
	l1 := (xq - x0) * (xq - x2) / ((x1 - x0) * (x1 - x2))
	l2 := (xq - x0) * (xq - x1) / ((x2 - x0) * (x2 - x1))
	return l0*it.y[i] + l1*it.y[i+1] + l2*it.y[i+2]
}

func (it *Interpolant) cubic(xq float64) float64 {
	i := it.bracket(xq)
	h := it.x[i+1] - it.x[i]
	a := (it.x[i+1] - xq) / h
	b := (xq - it.x[i]) / h
	return a*it.y[i] + b*it.y[i+1] +
		((a*a*a-a)*it.m[i]+(b*b*b-b)*it.m[i+1])*h*h/6.0
}

func (it *Interpolant) lagrange(xq float64) float64 {
	num, den := 0.0, 0.0
	for j, xj := range it.x {
		d := xq - xj
		if d == 0 {
			return it.y[j]
		}
		t := it.w[j] / d
		num += t * it.y[j]
		den += t
	}
	return num / den
}

// splineMoments solves the natural-spline tridiagonal system for the
// second derivatives at the sample points.
func splineMoments(x, y []float64) []float64 {
	n := len(x)
	m := make([]float64, n)
	if n < 3 {
		return m
	}
	u := make([]float64, n)
	for i := 1; i < n-1; i++ {
		sig := (x[i] - x[i-1]) / (x[i+1] - x[i-1])
		p := sig*m[i-1] + 2.0
		m[i] = (sig - 1.0) / p
		u[i] = (y[i+1]-y[i])/(x[i+1]-x[i]) - (y[i]-y[i-1])/(x[i]-x[i-1])
		u[i] = (6.0*u[i]/(x[i+1]-x[i-1]) - sig*u[i-1]) / p
	}
	for i := n - 2; i >= 0; i-- {
		m[i] = m[i]*m[i+1] + u[i]
	}
	return m
}

func barycentricWeights(x []float64) []float64 {
	n := len(x)
	w := make([]float64, n)
	for j := 0; j < n; j++ {
		w[j] = 1.0
		for k := 0; k < n; k++ {
			if k != j {
				w[j] /= x[j] - x[k]
			}
		}
	}
	return w
}
