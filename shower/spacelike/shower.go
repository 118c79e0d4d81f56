// Package spacelike is the default initial-state shower. Incoming partons
// are evolved backwards from the hard scale: each branching replaces an
// incoming parton of momentum fraction x by a mother at x/z and puts the
// emitted sister into the final state.
package spacelike

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

const (
	gluonID  = 21
	photonID = 22
	nFlav    = 3
)

// pdfHeadroom multiplies the largest sampled PDF ratio of a channel when
// building its overestimate.
const pdfHeadroom = 2.0

// nRatioSamples is the number of z points used to bound a PDF ratio.
const nRatioSamples = 12

type kernel int

const (
	kernelQToQG kernel = iota // mother q, daughter q, emitted g
	kernelGToQQ               // mother g, daughter q, emitted qbar
	kernelGToGG               // mother g, daughter g, emitted g
	kernelQToGQ               // mother q, daughter g, emitted q
)

func (k kernel) eval(z float64) float64 {
	switch k {
	case kernelQToQG:
		return qcd.PQToQG(z)
	case kernelGToQQ:
		return qcd.PGToQQ(z)
	case kernelGToGG:
		return qcd.PGToGGFull(z)
	default:
		return qcd.PQToGQ(z)
	}
}

// acceptance is P(z) z (1-z) over bound; it lies in [0, 1].
func (k kernel) acceptance(z float64) float64 {
	return k.eval(z) * z * (1 - z) / k.bound()
}

// bound is an upper limit of P(z) z (1-z) on (0,1).
func (k kernel) bound() float64 {
	switch k {
	case kernelQToQG, kernelQToGQ:
		return 2 * qcd.CF
	case kernelGToQQ:
		return qcd.TR
	default:
		return qcd.CA
	}
}

type channel struct {
	k        kernel
	motherID int
	emitID   int
	ratioMax float64 // largest sampled PDF ratio over z
	weight   float64 // K of the overestimate K/(z(1-z))
}

// pdfAcceptance is a PDF ratio over its overestimate.
func (ch channel) pdfAcceptance(ratio float64) float64 {
	return ratio / (pdfHeadroom * ch.ratioMax)
}

type system struct {
	sys    event.SysID
	pT2Max float64
}

type candidate struct {
	valid bool
	sys   event.SysID
	side  beam.Side
	pT2   float64
	z     float64
	phi   float64
	ch    channel
}

// Shower implements shower.SpaceShower.
type Shower struct {
	cfg    shower.Config
	table  *particledata.Table
	beams  *beam.Pair
	rng    *rand.Rand
	alphaS qcd.AlphaS
	pT02   float64

	systems  []system
	cand     candidate
	cached   bool
	cacheMax float64
	cacheMin float64
	selected event.SysID
}

// New builds a space-like shower working on beams. Panics on nil arguments.
func New(cfg shower.Config, table *particledata.Table, beams *beam.Pair, rng *rand.Rand) shower.SpaceShower {
	if table == nil || beams == nil || rng == nil {
		panic("spacelike: New requires a particle table, beams and an RNG")
	}
	pT0 := qcd.PT0(cfg.ISR.PT0Ref, cfg.ECM, cfg.ISR.ECMRef, cfg.ISR.ECMPow)
	return &Shower{
		cfg:    cfg,
		table:  table,
		beams:  beams,
		rng:    rng,
		alphaS: qcd.NewAlphaS(cfg.ISR.AlphaSValue, cfg.ISR.AlphaSOrder, cfg.ISR.PTmin*cfg.ISR.PTmin),
		pT02:   pT0 * pT0,
	}
}

func (s *Shower) invalidate() {
	s.cached = false
	s.cand = candidate{}
}

// Reset forgets all systems.
func (s *Shower) Reset() {
	s.systems = s.systems[:0]
	s.invalidate()
}

// LimitMaxScale decides whether the hard system starts at its own scale.
func (s *Shower) LimitMaxScale(ev *event.Record) bool {
	switch s.cfg.PTmaxMatch {
	case shower.PTmaxMatchAlways:
		return true
	case shower.PTmaxMatchNever:
		return false
	}
	if ev.SizeSystems() == 0 {
		return false
	}
	for _, pos := range ev.Outgoing(0) {
		id := ev.At(pos).ID
		if s.table.IsColoured(id) || s.table.Charge3(id) != 0 || id == photonID {
			return true
		}
	}
	return false
}

// Prepare registers sys. With limitMaxScale the evolution starts at the
// largest production scale among its partons, otherwise at E_cm/2.
func (s *Shower) Prepare(sys event.SysID, ev *event.Record, limitMaxScale bool) {
	s.invalidate()
	pTMax := ev.ECM() / 2
	if limitMaxScale {
		scale := 0.0
		for _, pos := range ev.Members(sys) {
			if pos != event.None {
				scale = math.Max(scale, ev.At(pos).Scale)
			}
		}
		if sys == 0 {
			scale *= s.cfg.PTmaxFudge
		}
		if scale > 0 {
			pTMax = math.Min(pTMax, scale)
		}
	}
	for k := range s.systems {
		if s.systems[k].sys == sys {
			s.systems[k].pT2Max = pTMax * pTMax
			return
		}
	}
	s.systems = append(s.systems, system{sys: sys, pT2Max: pTMax * pTMax})
}

// Update drops the cached candidate; the incoming partons are re-read at
// the next NextCandidate.
func (s *Shower) Update(event.SysID, *event.Record) {
	s.invalidate()
}

// SelectedSystem returns the system of the last committed branching.
func (s *Shower) SelectedSystem() event.SysID {
	return s.selected
}

// NextCandidate evolves every incoming parton backwards from maxScale and
// keeps the hardest accepted trial. Cached per (maxScale, minScale).
func (s *Shower) NextCandidate(ev *event.Record, maxScale, minScale float64) float64 {
	if s.cached && s.cacheMax == maxScale && s.cacheMin == minScale {
		return s.candidateScale()
	}
	s.cand = candidate{}
	pT2Min := math.Max(minScale, s.cfg.ISR.PTmin)
	pT2Min *= pT2Min
	for _, sy := range s.systems {
		for _, side := range []beam.Side{beam.SideA, beam.SideB} {
			start := math.Min(maxScale*maxScale, sy.pT2Max)
			if s.cand.valid && s.cand.pT2 >= start {
				continue
			}
			c, ok := s.trial(ev, sy.sys, side, start, pT2Min)
			if ok && (!s.cand.valid || c.pT2 > s.cand.pT2) {
				s.cand = c
			}
		}
	}
	s.cached, s.cacheMax, s.cacheMin = true, maxScale, minScale
	return s.candidateScale()
}

func (s *Shower) candidateScale() float64 {
	if !s.cand.valid {
		return 0
	}
	return math.Sqrt(s.cand.pT2)
}

// channels lists the backward branchings open to the incoming parton of
// sys. Overestimate weights include a bound on the PDF ratio over z.
func (s *Shower) channels(st *beam.State, sys event.SysID, id int, x, zMin, zMax, q2 float64) []channel {
	var chs []channel
	if id == gluonID {
		chs = append(chs, channel{k: kernelGToGG, motherID: gluonID, emitID: gluonID})
		for f := 1; f <= nFlav; f++ {
			chs = append(chs,
				channel{k: kernelQToGQ, motherID: f, emitID: f},
				channel{k: kernelQToGQ, motherID: -f, emitID: -f})
		}
	} else {
		chs = append(chs, channel{k: kernelQToQG, motherID: id, emitID: gluonID})
		// A valence quark stays a quark so the valence count of the beam holds.
		if !st.IsValence(sys) {
			chs = append(chs, channel{k: kernelGToQQ, motherID: gluonID, emitID: -id})
		}
	}

	xf := st.XFRestricted(sys, id, x, q2)
	if xf <= 0 {
		return nil
	}
	lo, hi := qcd.Logit(zMin), qcd.Logit(zMax)
	kept := chs[:0]
	for _, ch := range chs {
		ratio := 0.0
		for i := 0; i <= nRatioSamples; i++ {
			z := 1 / (1 + math.Exp(-(lo + (hi-lo)*float64(i)/nRatioSamples)))
			ratio = math.Max(ratio, st.XFRestricted(sys, ch.motherID, x/z, q2)/xf)
		}
		if ratio <= 0 {
			continue
		}
		ch.ratioMax = ratio
		ch.weight = ch.k.bound() * pdfHeadroom * ratio
		kept = append(kept, ch)
	}
	return kept
}

func (s *Shower) trial(ev *event.Record, sys event.SysID, side beam.Side, pT2Start, pT2Min float64) (candidate, bool) {
	if pT2Start <= pT2Min {
		return candidate{}, false
	}
	a := ev.GetInSystem(sys, int(side))
	b := ev.GetInSystem(sys, 1-int(side))
	if a == event.None || b == event.None {
		return candidate{}, false
	}
	st := s.beams.Side(side)
	pa := ev.At(a)
	x := 2 * pa.P.E / ev.ECM()
	xMax := st.XMax(sys)
	zMin, zMax := x/xMax, s.cfg.ISR.ZMax
	if zMin >= zMax {
		return candidate{}, false
	}
	sHat := 2 * pa.P.Dot(ev.At(b).P)

	chs := s.channels(st, sys, pa.ID, x, zMin, zMax, pT2Start)
	total := 0.0
	for _, ch := range chs {
		total += ch.weight
	}
	if total <= 0 {
		return candidate{}, false
	}
	dLogit := qcd.Logit(zMax) - qcd.Logit(zMin)
	alphaMax := s.alphaS.Max(pT2Min + s.pT02)
	coeff := alphaMax / (2 * math.Pi) * total * dLogit
	xf := st.XFRestricted(sys, pa.ID, x, pT2Start)

	q2 := pT2Start + s.pT02
	for {
		q2 = qcd.TrialPT2(s.rng, q2, coeff)
		pT2 := q2 - s.pT02
		if pT2 < pT2Min {
			return candidate{}, false
		}
		r := s.rng.Float64() * total
		ch := chs[len(chs)-1]
		for _, c := range chs {
			if r < c.weight {
				ch = c
				break
			}
			r -= c.weight
		}
		z := qcd.SampleZLogit(s.rng, zMin, zMax)
		phi := 2 * math.Pi * s.rng.Float64()

		if pT2 > sHat*(1-z)*(1-z)/(4*z) {
			continue
		}
		ratio := st.XFRestricted(sys, ch.motherID, x/z, pT2) / xf
		w := s.alphaS.At(q2) / alphaMax * ch.k.acceptance(z) * ch.pdfAcceptance(ratio)
		if w > 1 {
			logrus.Warnf("spacelike: weight %.3f above 1 for %d <- %d at x %.4g z %.4g", w, ch.motherID, pa.ID, x, z)
		}
		if s.rng.Float64() < w {
			return candidate{valid: true, sys: sys, side: side, pT2: pT2, z: z, phi: phi, ch: ch}, true
		}
	}
}

// Commit replaces the incoming parton by its mother, adds the emitted
// parton and boosts the rest of the system so that it stays balanced.
func (s *Shower) Commit(ev *event.Record) bool {
	c := s.cand
	if !c.valid {
		return false
	}
	st := s.beams.Side(c.side)
	iA := ev.GetInSystem(c.sys, int(c.side))
	iB := ev.GetInSystem(c.sys, 1-int(c.side))
	if e, err := st.Entry(c.sys); err != nil || e.Pos != iA {
		logrus.Warnf("spacelike: beam %d has no entry at line %d for system %d (%v)", c.side, iA, c.sys, err)
		return false
	}
	pa, pb := ev.At(iA).P, ev.At(iB).P

	xNew := 2 * pa.E / ev.ECM() / c.z
	if xNew >= st.XMax(c.sys) {
		return false
	}
	sHat := 2 * pa.Dot(pb)
	sHatNew := sHat / c.z
	eMother, eOther := pa.E/c.z, pb.E
	sum, diff := eMother+eOther, eMother-eOther
	d := sHat * (1 - c.z) / (2 * c.z)
	disc := d*d - sHatNew*c.pT2
	if disc < 0 {
		return false
	}
	u := (d*diff + sum*math.Sqrt(disc)) / sHatNew
	dir := 1.0
	if c.side == beam.SideB {
		dir = -1
	}
	pT := math.Sqrt(c.pT2)
	mother := event.Vec4{Pz: dir * eMother, E: eMother}
	emitted := event.Vec4{
		Px: pT * math.Cos(c.phi),
		Py: pT * math.Sin(c.phi),
		Pz: dir * u,
		E:  math.Sqrt(c.pT2 + u*u),
	}
	pOld := pa.Add(pb)
	pNew := mother.Add(pb).Sub(emitted)
	if pNew.M2() <= 0 || emitted.E >= eMother {
		return false
	}

	beamPos := c.side.Index()
	iMother := ev.Append(event.Particle{
		ID: c.ch.motherID, Status: event.StatusISRMother, P: mother, Scale: pT,
		Mothers: []event.Index{beamPos},
	})
	iEmit := ev.Append(event.Particle{
		ID: c.ch.emitID, Status: event.StatusISREmitted, P: emitted, Scale: pT,
		Mothers: []event.Index{iMother},
	})
	daughter := ev.At(iA)
	daughter.Mothers = []event.Index{iMother}
	daughter.StatusNeg()
	ev.At(iMother).Daughters = []event.Index{iA, iEmit}
	ev.ReplaceDaughter(beamPos, iA, iMother)

	for _, pos := range ev.Outgoing(c.sys) {
		p := ev.At(pos)
		moved := p.P.BoostToRest(pOld).BoostFromRest(pNew)
		status := event.StatusISRRecoil
		if p.StatusAbs() == event.StatusResonance {
			status = event.StatusResonance
		}
		iNew, err := ev.CopyWithMomentum(pos, status, moved)
		if err != nil {
			logrus.Errorf("spacelike: %v", err)
			continue
		}
		ev.ReplaceInSystem(c.sys, pos, iNew)
	}
	ev.SetInSystem(c.sys, int(c.side), iMother)
	ev.AddToSystem(c.sys, iEmit)

	oldID := daughter.ID
	if err := st.Update(c.sys, iMother, c.ch.motherID, xNew); err != nil {
		logrus.Errorf("spacelike: beam update for system %d: %v", c.sys, err)
	}
	st.RestrictedPDFWeight(c.sys, c.ch.motherID, xNew, c.pT2)
	if c.ch.motherID != oldID {
		if err := st.Reclassify(c.sys); err != nil {
			logrus.Warnf("spacelike: reclassify system %d: %v", c.sys, err)
		}
	}

	s.selected = c.sys
	s.invalidate()
	return true
}
