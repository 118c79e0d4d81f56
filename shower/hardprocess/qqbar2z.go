package hardprocess

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

const (
	zID    = 23
	upID   = 2
	qqNorm = 0.25 // bounds the product of toy u and ubar densities
)

// QQbar2Z is u ubar -> Z0 on the mass shell. The Z0 is left undecayed for
// the decayer.
type QQbar2Z struct {
	mZ  float64
	rng *rand.Rand
}

func newQQbar2Z(_ shower.Config, table *particledata.Table, rng *rand.Rand) (shower.HardProcess, error) {
	if !table.IsResonance(zID) || table.Mass(zID) <= 0 {
		return nil, fmt.Errorf("qqbar2Z: particle table has no Z0 resonance")
	}
	return &QQbar2Z{mZ: table.Mass(zID), rng: rng}, nil
}

func (p *QQbar2Z) Name() string {
	return "qqbar2Z"
}

func (p *QQbar2Z) Generate(ev *event.Record, beams *beam.Pair) error {
	tau := p.mZ / ev.ECM()
	if tau >= 1 {
		return fmt.Errorf("qqbar2Z: ecm %.1f below the Z0 mass: %w", ev.ECM(), ErrNoPhaseSpacePoint)
	}
	q2 := p.mZ * p.mZ
	for trial := 0; trial < maxTrials; trial++ {
		y := -math.Log(tau) * (2*p.rng.Float64() - 1)
		x1, x2 := tau*math.Exp(y), tau*math.Exp(-y)
		idA, idB := upID, -upID
		if p.rng.Float64() < 0.5 {
			idA, idB = -upID, upID
		}
		w := beams.A.PDFWeight(idA, x1, q2) * beams.B.PDFWeight(idB, x2, q2) / qqNorm
		if p.rng.Float64() >= w {
			continue
		}

		half := ev.ECM() / 2
		z := event.Particle{
			ID:     zID,
			Status: event.StatusResonance,
			P:      event.Vec4{Pz: (x1 - x2) * half, E: (x1 + x2) * half},
			M:      p.mZ,
			Scale:  p.mZ,
		}
		return appendSystem(ev, beams, incoming{idA, x1}, incoming{idB, x2}, []event.Particle{z}, p.mZ)
	}
	return fmt.Errorf("qqbar2Z after %d trials: %w", maxTrials, ErrNoPhaseSpacePoint)
}
