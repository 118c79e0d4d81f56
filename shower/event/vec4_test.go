package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestVec4_InvariantMass(t *testing.T) {
	p := Vec4{Px: 3, Py: 0, Pz: 4, E: 13}
	assert.InDelta(t, 144.0, p.M2(), 1e-12)
	assert.InDelta(t, 12.0, p.M(), 1e-12)

	spacelike := Vec4{Pz: 5, E: 3}
	assert.InDelta(t, -4.0, spacelike.M(), 1e-12)
}

func TestVec4_BoostRoundTrip_PreservesMass(t *testing.T) {
	// GIVEN a momentum and an arbitrary frame
	p := Vec4{Px: 1.5, Py: -2, Pz: 7, E: 12}
	frame := Vec4{Px: 10, Py: 5, Pz: -30, E: 60}

	// WHEN boosted into the frame's rest frame and back
	rest := p.BoostToRest(frame)
	back := rest.BoostFromRest(frame)

	// THEN the mass is invariant and the original is recovered
	assert.InDelta(t, p.M2(), rest.M2(), 1e-9)
	assert.InDelta(t, 0, back.Sub(p).AbsSum(), 1e-9)
}

func TestVec4_BoostToRest_FrameAtRest(t *testing.T) {
	frame := Vec4{Px: 10, Py: 5, Pz: -30, E: 60}

	rest := frame.BoostToRest(frame)

	assert.InDelta(t, 0, rest.PAbs(), 1e-9)
	assert.InDelta(t, frame.M(), rest.E, 1e-9)
}

func TestMassless_EnergyEqualsMomentum(t *testing.T) {
	p := Massless(r3.Vec{X: 3, Y: 4})
	assert.Equal(t, 5.0, p.E)
	assert.Equal(t, 5.0, p.PT())
	assert.InDelta(t, 0, p.M2(), 1e-12)
	assert.False(t, p.IsNaN())
}
