package remnant

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

func newTestBuilder() *Builder {
	return New(shower.DefaultConfig(), particledata.Default(), rand.New(rand.NewSource(1))).(*Builder)
}

func newBeams(beamA, beamB int) *beam.Pair {
	rng := rand.New(rand.NewSource(1))
	return beam.NewPair(beamA, beamB, 1000, beam.NewToyProton(beamA), beam.NewToyProton(beamB), rng)
}

func TestFlavours_ProtonAfterExtraction(t *testing.T) {
	tests := []struct {
		name      string
		extracted []beam.ResolvedParton
		want      []int
	}{
		{
			name:      "gluon leaves quark and diquark",
			extracted: []beam.ResolvedParton{{ID: 21, Class: beam.ClassNone}},
			want:      []int{2, 2101},
		},
		{
			name:      "valence u leaves ud diquark",
			extracted: []beam.ResolvedParton{{ID: 2, Class: beam.ClassValence}},
			want:      []int{2101},
		},
		{
			name:      "sea ubar leaves an extra u",
			extracted: []beam.ResolvedParton{{ID: -2, Class: beam.ClassUnmatchedSea}},
			want:      []int{2, 2, 2101},
		},
		{
			name: "two d taken leaves uu diquark and dbar",
			extracted: []beam.ResolvedParton{
				{ID: 1, Class: beam.ClassValence},
				{ID: 1, Class: beam.ClassUnmatchedSea},
			},
			want: []int{2203, -1},
		},
		{
			name: "all valence taken leaves a gluon",
			extracted: []beam.ResolvedParton{
				{ID: 2, Class: beam.ClassValence},
				{ID: 2, Class: beam.ClassValence},
				{ID: 1, Class: beam.ClassValence},
			},
			want: []int{21},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newBeams(2212, 2212).A
			for i, e := range tt.extracted {
				e.Sys = event.SysID(i)
				e.Companion = beam.NoCompanion
				st.Append(e)
			}

			assert.ElementsMatch(t, tt.want, newTestBuilder().flavours(st))
		})
	}
}

func TestFlavours_AntiprotonIsConjugate(t *testing.T) {
	st := newBeams(2212, -2212).B
	st.Append(beam.NewParton(0, 3, 21, 0.1))

	assert.ElementsMatch(t, []int{-2, -2101}, newTestBuilder().flavours(st))
}

func TestBuild_ClosesMomentumAndCharge(t *testing.T) {
	// GIVEN a gluon taken from each beam at x = 0.2
	table := particledata.Default()
	ev := event.New(1000, 2212, 2212)
	beams := newBeams(2212, 2212)
	a := ev.Append(event.Particle{ID: 21, Status: event.StatusHardIn, P: event.Vec4{Pz: 100, E: 100}, Mothers: []event.Index{event.BeamA}})
	b := ev.Append(event.Particle{ID: 21, Status: event.StatusHardIn, P: event.Vec4{Pz: -100, E: 100}, Mothers: []event.Index{event.BeamB}})
	ev.AddDaughter(event.BeamA, a)
	ev.AddDaughter(event.BeamB, b)
	sys := ev.NewSystem()
	ev.SetInSystem(sys, event.SlotInA, a)
	ev.SetInSystem(sys, event.SlotInB, b)
	beams.A.Append(beam.NewParton(sys, a, 21, 0.2))
	beams.B.Append(beam.NewParton(sys, b, 21, 0.2))

	// WHEN remnants are built
	require.NoError(t, newTestBuilder().Build(ev, beams))

	// THEN the beams are exhausted and the remnants carry the proton charge
	assert.InDelta(t, 1, beams.A.XSum(), 1e-12)
	assert.InDelta(t, 1, beams.B.XSum(), 1e-12)
	var sumA event.Vec4
	charge := 0
	for i := b + 1; int(i) < ev.Size(); i++ {
		p := ev.At(i)
		assert.Equal(t, event.StatusRemnant, p.Status)
		charge += table.Charge3(p.ID)
		if p.Mothers[0] == event.BeamA {
			sumA = sumA.Add(p.P)
			assert.True(t, ev.IsLinked(event.BeamA, i))
		}
	}
	assert.Equal(t, 6, charge)
	assert.InDelta(t, 400, sumA.E, 1e-9)
	assert.InDelta(t, 400, sumA.Pz, 1e-9)
	assert.NoError(t, shower.CheckBeams(ev, beams, 1e-9))
}

func TestBuild_OverdrawnBeam_ClampsToZero(t *testing.T) {
	ev := event.New(1000, 2212, 2212)
	beams := newBeams(2212, 2212)
	beams.A.Append(beam.NewParton(0, event.BeamA, 21, 1.2))

	require.NoError(t, newTestBuilder().Build(ev, beams))

	last := beams.A.At(beams.A.Size() - 1)
	assert.Equal(t, beam.ClassRemnant, last.Class)
	assert.Equal(t, 0.0, last.X)
}

func TestBuild_BeamMismatch_ReturnsError(t *testing.T) {
	ev := event.New(1000, -2212, 2212)

	err := newTestBuilder().Build(ev, newBeams(2212, 2212))

	assert.ErrorContains(t, err, "bookkeeping expects")
}
