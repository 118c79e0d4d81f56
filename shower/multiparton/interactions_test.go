package multiparton

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

func newTestInteractions(seed int64) (*Interactions, *beam.Pair, *event.Record) {
	cfg := shower.DefaultConfig()
	rng := rand.New(rand.NewSource(seed))
	beams := beam.NewPair(2212, 2212, cfg.ECM, beam.NewToyProton(2212), beam.NewToyProton(2212), rng)
	ev := event.New(cfg.ECM, 2212, 2212)
	hard := ev.Append(event.Particle{ID: 21, Status: event.StatusHardOut, Scale: 30})
	sys := ev.NewSystem()
	ev.AddToSystem(sys, hard)
	mi := New(cfg, particledata.Default(), beams, rng).(*Interactions)
	mi.Prepare(sys, ev)
	return mi, beams, ev
}

func TestNextCandidate_BelowHardScaleAndIdempotent(t *testing.T) {
	mi, beams, ev := newTestInteractions(2)
	size, xA := ev.Size(), beams.A.XSum()

	first := mi.NextCandidate(ev, 500, 1)
	second := mi.NextCandidate(ev, 500, 1)

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, first, 30.0)
	assert.Equal(t, size, ev.Size())
	assert.Equal(t, xA, beams.A.XSum())
}

func TestCommit_AddsBalancedSystemAndBeamEntries(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		// GIVEN a candidate scattering
		mi, beams, ev := newTestInteractions(seed)
		q := mi.NextCandidate(ev, 500, 1)
		if q == 0 {
			continue
		}

		// WHEN committed
		require.True(t, mi.Commit(ev))

		// THEN a new system with MI status codes exists and the beams know it
		sys := mi.SelectedSystem()
		assert.Equal(t, event.SysID(1), sys)
		in1, in2 := ev.GetInSystem(sys, event.SlotInA), ev.GetInSystem(sys, event.SlotInB)
		assert.Equal(t, event.StatusMIIn, ev.At(in1).Status)
		assert.Equal(t, event.StatusMIIn, ev.At(in2).Status)
		for _, out := range ev.Outgoing(sys) {
			assert.Equal(t, event.StatusMIOut, ev.At(out).Status)
			assert.InDelta(t, q, ev.At(out).P.PT(), 1e-9)
		}
		assert.NoError(t, shower.CheckMomentumBalance(ev, 1e-9))

		eA, err := beams.A.Entry(sys)
		require.NoError(t, err)
		assert.Equal(t, in1, eA.Pos)
		assert.InDelta(t, 2*ev.At(in1).P.E/ev.ECM(), eA.X, 1e-12)
		assert.True(t, ev.IsLinked(event.BeamA, in1))
		assert.True(t, ev.IsLinked(event.BeamB, in2))
	}
}

func TestNextCandidate_DisabledByReset(t *testing.T) {
	mi, _, ev := newTestInteractions(1)

	mi.Reset()

	assert.Equal(t, 0.0, mi.NextCandidate(ev, 500, 1))
}

func TestCommit_WithoutCandidate_ReturnsFalse(t *testing.T) {
	mi, _, ev := newTestInteractions(1)
	size := ev.Size()

	assert.False(t, mi.Commit(ev))
	assert.Equal(t, size, ev.Size())
}

func TestAcceptance_NeverExceedsOne(t *testing.T) {
	mi, _, ev := newTestInteractions(1)
	next := event.SysID(ev.SizeSystems())

	for _, pT2 := range []float64{0.04, 1, 25, 400, 1e4} {
		for i := 1; i < 100; i++ {
			for j := 1; j < 100; j += 7 {
				x1, x2 := float64(i)/100, float64(j)/100
				w := mi.acceptance(next, x1, x2, pT2)
				require.GreaterOrEqual(t, w, 0.0, "x1 %v x2 %v pT2 %v", x1, x2, pT2)
				require.LessOrEqual(t, w, 1.0, "x1 %v x2 %v pT2 %v", x1, x2, pT2)
			}
		}
	}
}

func TestList_ShowsWindowAndCandidate(t *testing.T) {
	mi, _, ev := newTestInteractions(3)
	var before, after bytes.Buffer

	require.NoError(t, mi.List(&before))
	q := mi.NextCandidate(ev, 500, 1)
	require.NoError(t, mi.List(&after))

	assert.Contains(t, before.String(), "pTmax")
	assert.Contains(t, before.String(), "none")
	if q > 0 {
		assert.Contains(t, after.String(), "x1")
	}
}
