package fluxsurface

import "fmt"

// TraceError is returned when no closed contour can be found at a
// requested flux level. The whole flux-surface call aborts; a level
// that cannot be traced means the input flux map or psi range is
// broken and continuing would corrupt every downstream profile.
type TraceError struct {
	Index int
	Psi   float64
}

func (e TraceError) Error() string {
	return fmt.Sprintf("fluxsurface: no closed flux surface at index %d (psi=%g)", e.Index, e.Psi)
}

// BracketError is returned when the boundary bisection cannot bracket
// a closed/open flux-level pair.
type BracketError struct {
	PsiClosed float64
	PsiOpen   float64
}

func (e BracketError) Error() string {
	return fmt.Sprintf("fluxsurface: cannot bracket the last closed flux surface between psi=%g and psi=%g", e.PsiClosed, e.PsiOpen)
}
