package event

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec4 is a four-momentum (px, py, pz, e) in GeV.
type Vec4 struct {
	Px, Py, Pz, E float64
}

// NewVec4 builds a four-vector from a spatial part and an energy.
func NewVec4(p r3.Vec, e float64) Vec4 {
	return Vec4{Px: p.X, Py: p.Y, Pz: p.Z, E: e}
}

// P3 returns the spatial part.
func (v Vec4) P3() r3.Vec {
	return r3.Vec{X: v.Px, Y: v.Py, Z: v.Pz}
}

func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{v.Px + w.Px, v.Py + w.Py, v.Pz + w.Pz, v.E + w.E}
}

func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{v.Px - w.Px, v.Py - w.Py, v.Pz - w.Pz, v.E - w.E}
}

func (v Vec4) Scale(f float64) Vec4 {
	return Vec4{f * v.Px, f * v.Py, f * v.Pz, f * v.E}
}

// Dot is the Minkowski product with metric (+,-,-,-).
func (v Vec4) Dot(w Vec4) float64 {
	return v.E*w.E - r3.Dot(v.P3(), w.P3())
}

// M2 is the invariant mass squared.
func (v Vec4) M2() float64 {
	return v.Dot(v)
}

// M is the signed invariant mass: negative for space-like vectors.
func (v Vec4) M() float64 {
	m2 := v.M2()
	if m2 < 0 {
		return -math.Sqrt(-m2)
	}
	return math.Sqrt(m2)
}

// PT is the transverse momentum with respect to the beam (z) axis.
func (v Vec4) PT() float64 {
	return math.Hypot(v.Px, v.Py)
}

// PAbs is the length of the spatial part.
func (v Vec4) PAbs() float64 {
	return r3.Norm(v.P3())
}

// Boost applies a Lorentz boost with velocity b (|b| < 1).
func (v Vec4) Boost(b r3.Vec) Vec4 {
	b2 := r3.Norm2(b)
	if b2 == 0 {
		return v
	}
	gamma := 1 / math.Sqrt(1-b2)
	bp := r3.Dot(b, v.P3())
	gamma2 := (gamma - 1) / b2
	p := r3.Add(v.P3(), r3.Scale(gamma2*bp+gamma*v.E, b))
	return NewVec4(p, gamma*(v.E+bp))
}

// BoostToRest boosts v into the rest frame of frame.
func (v Vec4) BoostToRest(frame Vec4) Vec4 {
	return v.Boost(r3.Scale(-1/frame.E, frame.P3()))
}

// BoostFromRest boosts v from the rest frame of frame back to the frame
// in which frame was measured.
func (v Vec4) BoostFromRest(frame Vec4) Vec4 {
	return v.Boost(r3.Scale(1/frame.E, frame.P3()))
}

// IsNaN reports whether any component is not a number.
func (v Vec4) IsNaN() bool {
	return math.IsNaN(v.Px) || math.IsNaN(v.Py) || math.IsNaN(v.Pz) || math.IsNaN(v.E)
}

// AbsSum is |px|+|py|+|pz|+|e|, the deviation measure used by conservation checks.
func (v Vec4) AbsSum() float64 {
	return math.Abs(v.Px) + math.Abs(v.Py) + math.Abs(v.Pz) + math.Abs(v.E)
}

// Massless returns a massless four-vector along the spatial direction p.
func Massless(p r3.Vec) Vec4 {
	return NewVec4(p, r3.Norm(p))
}
