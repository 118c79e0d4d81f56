// Package hardprocess holds the toy hard processes that open an event and
// the resonance decayer that closes it.
//
// Both processes produce system 0 with massless partons along the beam
// axis. They are placeholders for a real matrix-element generator.
package hardprocess

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

// ErrNoPhaseSpacePoint is returned when sampling finds no accepted point.
var ErrNoPhaseSpacePoint = errors.New("hardprocess: no phase-space point accepted")

// maxTrials bounds the accept-reject loop of one Generate call.
const maxTrials = 10000

const gluonID = 21

type factory func(cfg shower.Config, table *particledata.Table, rng *rand.Rand) (shower.HardProcess, error)

var processes = map[string]factory{
	"gg2gg":   newGG2GG,
	"qqbar2Z": newQQbar2Z,
}

// Names returns the registered process names, sorted.
func Names() []string {
	names := make([]string, 0, len(processes))
	for n := range processes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsValidProcess reports whether name is a registered process.
func IsValidProcess(name string) bool {
	_, ok := processes[name]
	return ok
}

// New returns the process named by cfg.Process.
func New(cfg shower.Config, table *particledata.Table, rng *rand.Rand) (shower.HardProcess, error) {
	f, ok := processes[cfg.Process]
	if !ok {
		return nil, fmt.Errorf("unknown process %q, valid: %v", cfg.Process, Names())
	}
	return f(cfg, table, rng)
}

// incoming describes one incoming parton of a hard system.
type incoming struct {
	id int
	x  float64
}

// appendSystem writes a 2 -> n scattering as system 0: the two incoming
// partons with beam mothers, the outgoing lines with the incoming pair as
// mothers, and one beam entry per side.
func appendSystem(ev *event.Record, beams *beam.Pair, a, b incoming, outs []event.Particle, scale float64) error {
	half := ev.ECM() / 2
	inA := ev.Append(event.Particle{ID: a.id, Status: event.StatusHardIn, P: event.Vec4{Pz: a.x * half, E: a.x * half},
		Scale: scale, Mothers: []event.Index{event.BeamA}})
	inB := ev.Append(event.Particle{ID: b.id, Status: event.StatusHardIn, P: event.Vec4{Pz: -b.x * half, E: b.x * half},
		Scale: scale, Mothers: []event.Index{event.BeamB}})
	ev.AddDaughter(event.BeamA, inA)
	ev.AddDaughter(event.BeamB, inB)

	sys := ev.NewSystem()
	ev.SetInSystem(sys, event.SlotInA, inA)
	ev.SetInSystem(sys, event.SlotInB, inB)
	var daughters []event.Index
	for _, p := range outs {
		p.Mothers = []event.Index{inA, inB}
		pos := ev.Append(p)
		ev.AddToSystem(sys, pos)
		daughters = append(daughters, pos)
	}
	ev.At(inA).Daughters = append([]event.Index(nil), daughters...)
	ev.At(inB).Daughters = append([]event.Index(nil), daughters...)

	for _, side := range []struct {
		st  *beam.State
		pos event.Index
		in  incoming
	}{{beams.A, inA, a}, {beams.B, inB, b}} {
		side.st.Append(beam.NewParton(sys, side.pos, side.in.id, side.in.x))
		if err := side.st.Classify(sys, scale*scale); err != nil {
			return fmt.Errorf("classify beam %d: %w", side.st.Side(), err)
		}
	}
	return nil
}

// twoBody returns the momenta of two massless partons with polar angle
// theta and azimuth phi in the rest frame of total.
func twoBody(total event.Vec4, cosTheta, phi float64) (event.Vec4, event.Vec4) {
	e := total.M() / 2
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	k := event.Vec4{Px: e * sinTheta * math.Cos(phi), Py: e * sinTheta * math.Sin(phi), Pz: e * cosTheta, E: e}
	back := event.Vec4{Px: -k.Px, Py: -k.Py, Pz: -k.Pz, E: e}
	return k.BoostFromRest(total), back.BoostFromRest(total)
}
