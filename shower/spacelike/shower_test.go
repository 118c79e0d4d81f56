package spacelike

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

const testECM = 1000.0

type fixture struct {
	ev    *event.Record
	beams *beam.Pair
	isr   *Shower
	sys   event.SysID
}

// newGGSystem builds a hard gg -> gg system with both incoming gluons at
// x = 0.1 and outgoing gluons of transverse momentum 40 GeV.
func newGGSystem(t *testing.T, seed int64, cfg shower.Config) *fixture {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	ev := event.New(testECM, 2212, 2212)
	beams := beam.NewPair(2212, 2212, testECM, beam.NewToyProton(2212), beam.NewToyProton(2212), rng)

	e := 0.1 * testECM / 2
	a := ev.Append(event.Particle{ID: 21, Status: event.StatusHardIn, P: event.Vec4{Pz: e, E: e}, Scale: 40,
		Mothers: []event.Index{event.BeamA}})
	b := ev.Append(event.Particle{ID: 21, Status: event.StatusHardIn, P: event.Vec4{Pz: -e, E: e}, Scale: 40,
		Mothers: []event.Index{event.BeamB}})
	pz := math.Sqrt(e*e - 40*40)
	o1 := ev.Append(event.Particle{ID: 21, Status: event.StatusHardOut, P: event.Vec4{Px: 40, Pz: pz, E: e}, Scale: 40,
		Mothers: []event.Index{a, b}})
	o2 := ev.Append(event.Particle{ID: 21, Status: event.StatusHardOut, P: event.Vec4{Px: -40, Pz: -pz, E: e}, Scale: 40,
		Mothers: []event.Index{a, b}})
	ev.At(a).Daughters = []event.Index{o1, o2}
	ev.At(b).Daughters = []event.Index{o1, o2}
	ev.AddDaughter(event.BeamA, a)
	ev.AddDaughter(event.BeamB, b)

	sys := ev.NewSystem()
	ev.SetInSystem(sys, event.SlotInA, a)
	ev.SetInSystem(sys, event.SlotInB, b)
	ev.AddToSystem(sys, o1)
	ev.AddToSystem(sys, o2)
	beams.A.Append(beam.NewParton(sys, a, 21, 0.1))
	beams.B.Append(beam.NewParton(sys, b, 21, 0.1))

	isr := New(cfg, particledata.Default(), beams, rng).(*Shower)
	isr.Prepare(sys, ev, true)
	return &fixture{ev: ev, beams: beams, isr: isr, sys: sys}
}

func TestEvolve_GGAtTenthX_TerminatesWithinMomentumBudget(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		// GIVEN a gg system at x = 0.1 on both sides
		f := newGGSystem(t, seed, shower.DefaultConfig())

		// WHEN ISR evolves alone from 50 GeV down to 0.2 GeV
		ceiling := 50.0
		steps := 0
		for ; steps < 10000; steps++ {
			q := f.isr.NextCandidate(f.ev, ceiling, 0.2)
			if q == 0 {
				break
			}
			require.LessOrEqual(t, q, ceiling)
			f.isr.Commit(f.ev)
			ceiling = q
		}

		// THEN the evolution ended with no candidate left
		require.Less(t, steps, 10000, "seed %d did not terminate", seed)
		assert.Equal(t, 0.0, f.isr.NextCandidate(f.ev, ceiling, 0.2))

		// AND no beam gave away more than it has
		for _, st := range []*beam.State{f.beams.A, f.beams.B} {
			e, err := st.Entry(f.sys)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, e.X, 0.1)
			assert.LessOrEqual(t, e.X, 1.0)
			assert.LessOrEqual(t, 1-e.X, 0.9+1e-12)
			assert.LessOrEqual(t, st.XSum(), 1.0)
		}
		assert.NoError(t, shower.CheckSystems(f.ev))
		assert.NoError(t, shower.CheckBeams(f.ev, f.beams, 1e-9))
		assert.NoError(t, shower.CheckMomentumBalance(f.ev, 1e-9))
	}
}

func TestNextCandidate_IsIdempotentDryRun(t *testing.T) {
	f := newGGSystem(t, 5, shower.DefaultConfig())
	size := f.ev.Size()
	xA := f.beams.A.XSum()

	first := f.isr.NextCandidate(f.ev, 40, 0.2)
	second := f.isr.NextCandidate(f.ev, 40, 0.2)

	assert.Equal(t, first, second)
	assert.Equal(t, size, f.ev.Size())
	assert.Equal(t, xA, f.beams.A.XSum())
}

func TestCommit_RecordsMotherAndEmission(t *testing.T) {
	committed := 0
	for seed := int64(1); seed <= 20 && committed == 0; seed++ {
		f := newGGSystem(t, seed, shower.DefaultConfig())
		q := f.isr.NextCandidate(f.ev, 40, 0.2)
		if q == 0 || !f.isr.Commit(f.ev) {
			continue
		}
		committed++

		sys := f.isr.SelectedSystem()
		assert.Equal(t, f.sys, sys)
		var mother event.Index
		for _, slot := range []int{event.SlotInA, event.SlotInB} {
			if p := f.ev.At(f.ev.GetInSystem(sys, slot)); p.Status == event.StatusISRMother {
				mother = f.ev.GetInSystem(sys, slot)
			}
		}
		require.NotEqual(t, event.None, mother)
		m := f.ev.At(mother)
		require.Len(t, m.Daughters, 2)
		assert.Equal(t, event.StatusISREmitted, f.ev.At(m.Daughters[1]).Status)
		assert.InDelta(t, q, f.ev.At(m.Daughters[1]).P.PT(), 1e-9)
		assert.Equal(t, 3, len(f.ev.Outgoing(sys)))
		assert.NoError(t, shower.CheckMomentumBalance(f.ev, 1e-9))
		assert.NoError(t, shower.CheckBeams(f.ev, f.beams, 1e-9))
		assert.NoError(t, shower.CheckCopyLinks(f.ev))
	}
	assert.Equal(t, 1, committed)
}

func TestLimitMaxScale_FollowsPTmaxMatch(t *testing.T) {
	tests := []struct {
		name  string
		mode  int
		outID int
		want  bool
	}{
		{"auto with coloured final state", shower.PTmaxMatchAuto, 21, true},
		{"auto with neutral resonance", shower.PTmaxMatchAuto, 23, false},
		{"always", shower.PTmaxMatchAlways, 23, true},
		{"never", shower.PTmaxMatchNever, 21, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := shower.DefaultConfig()
			cfg.PTmaxMatch = tt.mode
			ev := event.New(testECM, 2212, 2212)
			sys := ev.NewSystem()
			ev.AddToSystem(sys, ev.Append(event.Particle{ID: tt.outID, Status: event.StatusHardOut}))
			rng := rand.New(rand.NewSource(1))
			beams := beam.NewPair(2212, 2212, testECM, beam.NewToyProton(2212), beam.NewToyProton(2212), rng)
			isr := New(cfg, particledata.Default(), beams, rng)

			assert.Equal(t, tt.want, isr.LimitMaxScale(ev))
		})
	}
}

func TestPrepare_LimitedScaleCapsCandidates(t *testing.T) {
	f := newGGSystem(t, 11, shower.DefaultConfig())

	q := f.isr.NextCandidate(f.ev, testECM/2, 0.2)

	assert.LessOrEqual(t, q, 40.0)
}

func TestCommit_MissingBeamEntry_LeavesRecordUntouched(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		// GIVEN a candidate whose beam entries were dropped
		f := newGGSystem(t, seed, shower.DefaultConfig())
		if f.isr.NextCandidate(f.ev, 40, 0.2) == 0 {
			continue
		}
		f.beams.A.Clear()
		f.beams.B.Clear()
		size, members := f.ev.Size(), f.ev.Members(f.sys)

		// WHEN it is committed
		ok := f.isr.Commit(f.ev)

		// THEN nothing in the record moved
		assert.False(t, ok)
		assert.Equal(t, size, f.ev.Size())
		assert.Equal(t, members, f.ev.Members(f.sys))
		return
	}
	t.Fatal("no candidate over 20 seeds")
}

func TestKernelAcceptance_NeverExceedsOne(t *testing.T) {
	for _, k := range []kernel{kernelQToQG, kernelGToQQ, kernelGToGG, kernelQToGQ} {
		for i := 1; i < 1000; i++ {
			z := float64(i) / 1000
			w := k.acceptance(z)
			require.GreaterOrEqual(t, w, 0.0, "kernel %d z %v", k, z)
			require.LessOrEqual(t, w, 1.0, "kernel %d z %v", k, z)
		}
	}
}

func TestChannels_OverestimateCoversPDFRatio(t *testing.T) {
	tests := []struct {
		name string
		id   int
	}{
		{"gluon", 21},
		{"u quark", 2},
		{"d quark", 1},
		{"s antiquark", -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN the incoming parton of beam A at x = 0.1 with flavour id
			f := newGGSystem(t, 1, shower.DefaultConfig())
			st := f.beams.A
			const x, q2 = 0.1, 100.0
			require.NoError(t, st.Update(f.sys, f.ev.GetInSystem(f.sys, event.SlotInA), tt.id, x))
			zMin, zMax := x/st.XMax(f.sys), f.isr.cfg.ISR.ZMax

			// WHEN its backward channels are built
			chs := f.isr.channels(st, f.sys, tt.id, x, zMin, zMax, q2)

			// THEN every channel's overestimate covers the PDF ratio on a fine z grid
			require.NotEmpty(t, chs)
			xf := st.XFRestricted(f.sys, tt.id, x, q2)
			for _, ch := range chs {
				for i := 0; i <= 500; i++ {
					z := zMin + (zMax-zMin)*float64(i)/500
					ratio := st.XFRestricted(f.sys, ch.motherID, x/z, q2) / xf
					require.LessOrEqual(t, ch.pdfAcceptance(ratio), 1.0,
						"mother %d z %v", ch.motherID, z)
				}
			}
		})
	}
}

func TestList_ShowsIncomingEntries(t *testing.T) {
	f := newGGSystem(t, 1, shower.DefaultConfig())
	var out bytes.Buffer

	require.NoError(t, f.isr.List(&out))

	assert.Contains(t, out.String(), "class")
	assert.Equal(t, 2, strings.Count(out.String(), "0.10000"), "one row per beam at x = 0.1")

	f.isr.Reset()
	out.Reset()
	require.NoError(t, f.isr.List(&out))
	assert.Equal(t, "no systems\n", out.String())
}
