// Package numeric provides the low-level vector calculus and geometry
// helpers shared by the data tree and the flux-surface engine:
//
//   - finite-difference gradients on non-uniform grids
//   - trapezoidal integration (definite and cumulative)
//   - reusable 1D interpolants ([Interp1D]) and a bicubic 2D
//     interpolant ([Interp2D]) with analytic partial derivatives
//   - polyline geometry: segment intersection, closest approach,
//     arc-length resampling, area and point-in-polygon tests
//
// All functions are pure; none hold shared state.
package numeric
