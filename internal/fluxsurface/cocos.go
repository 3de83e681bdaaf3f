package fluxsurface

import "math"

// cocos carries the sign/exponent parts of the COCOS convention that
// matter for deriving the poloidal field and the safety factor from
// psi.
type cocos struct {
	sigmaBp      float64 // sign relating Bp to grad psi
	sigmaRhoTorB float64 // sign relating q to dphi/dpsi
	expBp        float64 // 0: psi without 2pi, 1: psi includes 2pi
}

// bpFactor is the multiplier applied to (1/R) grad psi.
func (c cocos) bpFactor() float64 {
	return c.sigmaBp / math.Pow(2*math.Pi, c.expBp)
}

var cocosTable = map[int]cocos{
	1:  {sigmaBp: 1, sigmaRhoTorB: 1, expBp: 0},
	3:  {sigmaBp: -1, sigmaRhoTorB: -1, expBp: 0},
	11: {sigmaBp: 1, sigmaRhoTorB: 1, expBp: 1},
	13: {sigmaBp: -1, sigmaRhoTorB: -1, expBp: 1},
}

// cocosParams returns the convention parameters, defaulting to COCOS
// 11 (the storage convention of the data schema).
func cocosParams(index int) cocos {
	if c, ok := cocosTable[index]; ok {
		return c
	}
	return cocosTable[11]
}
