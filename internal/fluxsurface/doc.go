// Package fluxsurface turns a 2D poloidal flux map into a complete set
// of 1D flux-surface quantities.
//
// For one equilibrium time slice the engine builds a bicubic
// interpolant of psi(R,Z), locates the magnetic axis by Newton descent,
// traces iso-flux contours from the core outward (with a synthetic
// elliptical seed surface next to the axis and a bisected true boundary
// level at the edge), and evaluates per-surface geometry, flux-surface
// averages, the safety factor and the trapped particle fraction.
// Cumulative integration along psi then yields volume, area, toroidal
// flux and the normalized toroidal flux radius, and the open companion
// contours of the boundary level are searched for X-points.
//
// Failures are loud: a level with no closed contour aborts the whole
// call with a [TraceError], because a broken flux map would silently
// corrupt every downstream profile.
package fluxsurface
