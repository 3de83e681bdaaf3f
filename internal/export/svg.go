// Package export renders computed flux-surface geometry as SVG.
package export

import (
	"fmt"
	"strings"
)

// OutlineSVG draws one or more closed poloidal cross sections. Each
// outline is a pair of equal-length r and z slices in meters; the
// first outline sets the viewport. SVG y grows downward, so z is
// flipped to keep the upper plasma half on top.
func OutlineSVG(outlines [][2][]float64, width, height int) string {
	if len(outlines) == 0 || len(outlines[0][0]) < 2 {
		return ""
	}

	rmin, rmax := bounds(outlines[0][0])
	zmin, zmax := bounds(outlines[0][1])
	pad := 0.05 * (rmax - rmin)
	rmin, rmax = rmin-pad, rmax+pad
	pad = 0.05 * (zmax - zmin)
	zmin, zmax = zmin-pad, zmax+pad

	sx := float64(width) / (rmax - rmin)
	sy := float64(height) / (zmax - zmin)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for k, outline := range outlines {
		r, z := outline[0], outline[1]
		if len(r) < 2 || len(r) != len(z) {
			continue
		}
		stroke := "#00ff00"
		if k > 0 {
			stroke = "#2a7a2a"
		}
		sb.WriteString(fmt.Sprintf(`<polygon fill="none" stroke="%s" stroke-width="1.5" points="`, stroke))
		for i := range r {
			x := (r[i] - rmin) * sx
			y := (zmax - z[i]) * sy
			sb.WriteString(fmt.Sprintf("%.1f,%.1f ", x, y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
