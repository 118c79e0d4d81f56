// Package qcd holds the QCD ingredients shared by the shower components:
// the running coupling, the pT0 regularisation scale, splitting kernels
// and the veto-algorithm helpers used to draw trial scales.
package qcd

import "math"

// Colour factors and reference mass.
const (
	CA = 3.0
	CF = 4.0 / 3.0
	TR = 0.5
	MZ = 91.1876
)

// nf is the number of active flavours in the one-loop running.
const nf = 5

// AlphaS is the strong coupling, fixed (order 0) or one-loop running
// (order 1) from its value at MZ.
type AlphaS struct {
	valueMZ float64
	order   int
	b0      float64
	q2Floor float64
}

// NewAlphaS returns a coupling with alpha_s(MZ) = valueMZ. q2Floor freezes
// the running below that scale. Panics on an unsupported order.
func NewAlphaS(valueMZ float64, order int, q2Floor float64) AlphaS {
	if order != 0 && order != 1 {
		panic("qcd: alpha_s order must be 0 or 1")
	}
	b0 := (33.0 - 2.0*nf) / (12.0 * math.Pi)
	// The running diverges at Lambda; freeze well above it.
	lambda2 := MZ * MZ * math.Exp(-1/(b0*valueMZ))
	if q2Floor < 4*lambda2 {
		q2Floor = 4 * lambda2
	}
	return AlphaS{valueMZ: valueMZ, order: order, b0: b0, q2Floor: q2Floor}
}

// At returns alpha_s at scale q2 (GeV^2).
func (a AlphaS) At(q2 float64) float64 {
	if a.order == 0 {
		return a.valueMZ
	}
	if q2 < a.q2Floor {
		q2 = a.q2Floor
	}
	return a.valueMZ / (1 + a.b0*a.valueMZ*math.Log(q2/(MZ*MZ)))
}

// Max returns the largest value the coupling takes at or above q2Min,
// used as the constant overestimate in the veto algorithm.
func (a AlphaS) Max(q2Min float64) float64 {
	return a.At(q2Min)
}

// PT0 is the energy-dependent regularisation scale
// pT0Ref * (eCM/eCMRef)^eCMPow.
func PT0(pT0Ref, eCM, eCMRef, eCMPow float64) float64 {
	return pT0Ref * math.Pow(eCM/eCMRef, eCMPow)
}
