// Package multiparton is the default multiple-interaction component. It
// adds gg -> gg scatterings between the beam remnants, each as a new
// subsystem, with a regularised 1/(pT2+pT02)^2 spectrum.
package multiparton

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
	"github.com/partonsim/partonsim/shower/qcd"
)

const gluonID = 21

// gluonNorm bounds x*g(x) of the toy proton, restricted or not.
const gluonNorm = 2.5

type candidate struct {
	valid    bool
	pT2      float64
	cosTheta float64
	phi      float64
	x1, x2   float64
}

// Interactions implements shower.MultipleInteractions.
type Interactions struct {
	cfg    shower.MIConfig
	beams  *beam.Pair
	rng    *rand.Rand
	alphaS qcd.AlphaS
	pT02   float64
	s      float64

	pT2Max   float64
	cand     candidate
	cached   bool
	cacheMax float64
	cacheMin float64
	selected event.SysID
}

// New builds the multiple-interaction component. Panics on nil arguments.
func New(cfg shower.Config, table *particledata.Table, beams *beam.Pair, rng *rand.Rand) shower.MultipleInteractions {
	if table == nil || beams == nil || rng == nil {
		panic("multiparton: New requires a particle table, beams and an RNG")
	}
	pT0 := qcd.PT0(cfg.MI.PT0Ref, cfg.ECM, cfg.MI.ECMRef, cfg.MI.ECMPow)
	return &Interactions{
		cfg:    cfg.MI,
		beams:  beams,
		rng:    rng,
		alphaS: qcd.NewAlphaS(cfg.MI.AlphaSValue, 1, 0),
		pT02:   pT0 * pT0,
		s:      cfg.ECM * cfg.ECM,
	}
}

func (m *Interactions) invalidate() {
	m.cached = false
	m.cand = candidate{}
}

// Reset switches interactions off until the next Prepare.
func (m *Interactions) Reset() {
	m.pT2Max = 0
	m.invalidate()
}

// Prepare starts the interaction sequence at the hardest production scale
// of sys, normally the hard system.
func (m *Interactions) Prepare(sys event.SysID, ev *event.Record) {
	m.invalidate()
	scale := 0.0
	for _, pos := range ev.Members(sys) {
		if pos != event.None {
			scale = math.Max(scale, ev.At(pos).Scale)
		}
	}
	if scale <= 0 {
		scale = ev.ECM() / 2
	}
	m.pT2Max = scale * scale
}

// Update drops the cached candidate: the momentum left in the beams changed.
func (m *Interactions) Update(event.SysID, *event.Record) {
	m.invalidate()
}

// SelectedSystem returns the subsystem created by the last Commit.
func (m *Interactions) SelectedSystem() event.SysID {
	return m.selected
}

// NextCandidate draws the next scattering below maxScale. Cached per
// (maxScale, minScale).
func (m *Interactions) NextCandidate(ev *event.Record, maxScale, minScale float64) float64 {
	if m.cached && m.cacheMax == maxScale && m.cacheMin == minScale {
		return m.candidateScale()
	}
	m.cand = candidate{}
	m.cached, m.cacheMax, m.cacheMin = true, maxScale, minScale

	pT2Min := math.Max(minScale, m.cfg.PTmin)
	pT2Min *= pT2Min
	pT2 := math.Min(maxScale*maxScale, m.pT2Max)
	if pT2 <= pT2Min {
		return 0
	}
	next := event.SysID(ev.SizeSystems())
	xMaxA, xMaxB := m.beams.A.XMax(next), m.beams.B.XMax(next)

	for {
		pT2 = qcd.TrialPT2Regularised(m.rng, pT2, m.pT02, m.cfg.Strength)
		if pT2 < pT2Min {
			return 0
		}
		c := candidate{
			pT2:      pT2,
			cosTheta: m.cfg.CosThetaMax * (2*m.rng.Float64() - 1),
			phi:      2 * math.Pi * m.rng.Float64(),
		}
		y := 2*m.rng.Float64() - 1
		sHat := 4 * pT2 / (1 - c.cosTheta*c.cosTheta)
		tau := math.Sqrt(sHat / m.s)
		c.x1, c.x2 = tau*math.Exp(y), tau*math.Exp(-y)
		if c.x1 >= xMaxA || c.x2 >= xMaxB {
			continue
		}
		w := m.acceptance(next, c.x1, c.x2, pT2)
		if w > 1 {
			logrus.Warnf("multiparton: weight %.3f above 1 at pT2 %.3f", w, pT2)
		}
		if m.rng.Float64() < w {
			c.valid = true
			m.cand = c
			return m.candidateScale()
		}
	}
}

// acceptance weighs a trial scattering of system next against the
// overestimate: alpha_s at its maximum and both gluon densities at gluonNorm.
func (m *Interactions) acceptance(next event.SysID, x1, x2, pT2 float64) float64 {
	a := m.alphaS.At(pT2+m.pT02) / m.alphaS.At(m.pT02)
	return a * a *
		m.beams.A.XFRestricted(next, gluonID, x1, pT2) *
		m.beams.B.XFRestricted(next, gluonID, x2, pT2) / (gluonNorm * gluonNorm)
}

func (m *Interactions) candidateScale() float64 {
	if !m.cand.valid {
		return 0
	}
	return math.Sqrt(m.cand.pT2)
}

// Commit appends the scattering as a new subsystem and registers its
// incoming gluons in both beams.
func (m *Interactions) Commit(ev *event.Record) bool {
	c := m.cand
	if !c.valid {
		return false
	}
	next := event.SysID(ev.SizeSystems())
	if c.x1 >= m.beams.A.XMax(next) || c.x2 >= m.beams.B.XMax(next) {
		return false
	}

	half := ev.ECM() / 2
	pIn1 := event.Vec4{Pz: c.x1 * half, E: c.x1 * half}
	pIn2 := event.Vec4{Pz: -c.x2 * half, E: c.x2 * half}
	total := pIn1.Add(pIn2)
	eHalf := total.M() / 2
	sinTheta := math.Sqrt(1 - c.cosTheta*c.cosTheta)
	k := event.Vec4{
		Px: eHalf * sinTheta * math.Cos(c.phi),
		Py: eHalf * sinTheta * math.Sin(c.phi),
		Pz: eHalf * c.cosTheta,
		E:  eHalf,
	}
	back := event.Vec4{Px: -k.Px, Py: -k.Py, Pz: -k.Pz, E: eHalf}
	pT := math.Sqrt(c.pT2)

	in1 := ev.Append(event.Particle{ID: gluonID, Status: event.StatusMIIn, P: pIn1, Scale: pT,
		Mothers: []event.Index{event.BeamA}})
	in2 := ev.Append(event.Particle{ID: gluonID, Status: event.StatusMIIn, P: pIn2, Scale: pT,
		Mothers: []event.Index{event.BeamB}})
	out1 := ev.Append(event.Particle{ID: gluonID, Status: event.StatusMIOut, P: k.BoostFromRest(total), Scale: pT,
		Mothers: []event.Index{in1, in2}})
	out2 := ev.Append(event.Particle{ID: gluonID, Status: event.StatusMIOut, P: back.BoostFromRest(total), Scale: pT,
		Mothers: []event.Index{in1, in2}})
	ev.At(in1).Daughters = []event.Index{out1, out2}
	ev.At(in2).Daughters = []event.Index{out1, out2}
	ev.AddDaughter(event.BeamA, in1)
	ev.AddDaughter(event.BeamB, in2)

	sys := ev.NewSystem()
	ev.SetInSystem(sys, event.SlotInA, in1)
	ev.SetInSystem(sys, event.SlotInB, in2)
	ev.AddToSystem(sys, out1)
	ev.AddToSystem(sys, out2)

	for _, add := range []struct {
		st  *beam.State
		pos event.Index
		x   float64
	}{{m.beams.A, in1, c.x1}, {m.beams.B, in2, c.x2}} {
		add.st.Append(beam.NewParton(sys, add.pos, gluonID, add.x))
		if err := add.st.Classify(sys, c.pT2); err != nil {
			logrus.Warnf("multiparton: classify system %d: %v", sys, err)
		}
	}

	m.selected = sys
	m.invalidate()
	return true
}
