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

// cosThetaMax keeps the scattering away from the forward poles.
const cosThetaMax = 0.9

// gluonNorm bounds x*g(x) of the toy proton.
const gluonNorm = 2.5

// GG2GG is gg -> gg with a 1/pT^4 spectrum above the pT-hat cut.
type GG2GG struct {
	pTMin float64
	rng   *rand.Rand
}

func newGG2GG(cfg shower.Config, table *particledata.Table, rng *rand.Rand) (shower.HardProcess, error) {
	if !table.IsColoured(gluonID) {
		return nil, fmt.Errorf("gg2gg: particle table has no coloured gluon")
	}
	return &GG2GG{pTMin: cfg.PTHatMin, rng: rng}, nil
}

func (p *GG2GG) Name() string {
	return "gg2gg"
}

// Generate samples pT, angle and rapidity, accepts with the product of the
// gluon densities and writes system 0.
func (p *GG2GG) Generate(ev *event.Record, beams *beam.Pair) error {
	s := ev.ECM() * ev.ECM()
	for trial := 0; trial < maxTrials; trial++ {
		pT2 := p.pTMin * p.pTMin / (1 - p.rng.Float64())
		cosTheta := cosThetaMax * (2*p.rng.Float64() - 1)
		phi := 2 * math.Pi * p.rng.Float64()
		sHat := 4 * pT2 / (1 - cosTheta*cosTheta)
		if sHat >= s {
			continue
		}
		tau := math.Sqrt(sHat / s)
		y := -math.Log(tau) * (2*p.rng.Float64() - 1)
		x1, x2 := tau*math.Exp(y), tau*math.Exp(-y)

		w := beams.A.PDFWeight(gluonID, x1, pT2) * beams.B.PDFWeight(gluonID, x2, pT2) / (gluonNorm * gluonNorm)
		if p.rng.Float64() >= w {
			continue
		}

		half := ev.ECM() / 2
		total := event.Vec4{Pz: (x1 - x2) * half, E: (x1 + x2) * half}
		k1, k2 := twoBody(total, cosTheta, phi)
		pT := math.Sqrt(pT2)
		outs := []event.Particle{
			{ID: gluonID, Status: event.StatusHardOut, P: k1, Scale: pT},
			{ID: gluonID, Status: event.StatusHardOut, P: k2, Scale: pT},
		}
		return appendSystem(ev, beams, incoming{gluonID, x1}, incoming{gluonID, x2}, outs, pT)
	}
	return fmt.Errorf("gg2gg after %d trials: %w", maxTrials, ErrNoPhaseSpacePoint)
}
