// Package timelike is the default final-state shower: pT-ordered dipole
// emissions off coloured final partons, with a final-state recoiler or,
// when beams are coupled, an incoming parton as recoiler.
package timelike

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

// nSplit is the number of massless quark flavours g -> q qbar may produce.
const nSplit = 3

type channel int

const (
	channelEmit  channel = iota // q -> q g or g -> g g
	channelSplit                // g -> q qbar
)

type dipole struct {
	sys     event.SysID
	rad     event.Index
	rec     event.Index
	initial bool      // recoiler is an incoming parton
	side    beam.Side // beam of the recoiler when initial
	m2      float64   // dipole invariant mass squared (2 p_rad.p_rec)
	pT2Max  float64
}

type candidate struct {
	valid   bool
	dip     int
	pT2     float64
	z       float64
	phi     float64
	ch      channel
	flavour int
}

// Shower implements shower.TimeShower.
type Shower struct {
	cfg      shower.FSRConfig
	table    *particledata.Table
	coupling beam.Coupling
	rng      *rand.Rand
	alphaS   qcd.AlphaS

	dipoles  []dipole
	cand     candidate
	cached   bool
	cacheMax float64
	cacheMin float64
	selected event.SysID
}

// New builds a time-like shower. Pass beam.Decoupled() for showers of
// decay products, which never touch the beams.
func New(cfg shower.Config, table *particledata.Table, coupling beam.Coupling, rng *rand.Rand) shower.TimeShower {
	if table == nil || rng == nil {
		panic("timelike: New requires a particle table and an RNG")
	}
	return &Shower{
		cfg:      cfg.FSR,
		table:    table,
		coupling: coupling,
		rng:      rng,
		alphaS:   qcd.NewAlphaS(cfg.FSR.AlphaSValue, cfg.FSR.AlphaSOrder, cfg.FSR.PTmin*cfg.FSR.PTmin),
	}
}

func (s *Shower) invalidate() {
	s.cached = false
	s.cand = candidate{}
}

// Reset forgets all dipoles.
func (s *Shower) Reset() {
	s.dipoles = s.dipoles[:0]
	s.invalidate()
}

// Prepare (re)builds the dipoles of sys from its current outgoing partons.
func (s *Shower) Prepare(sys event.SysID, ev *event.Record) {
	s.invalidate()
	s.dropSystem(sys)

	out := ev.Outgoing(sys)
	for _, i := range out {
		p := ev.At(i)
		if !p.IsFinal() || !s.table.IsColoured(p.ID) {
			continue
		}
		if d, ok := s.finalPartner(sys, i, out, ev); ok {
			s.dipoles = append(s.dipoles, d)
		} else if d, ok := s.initialPartner(sys, i, ev); ok {
			s.dipoles = append(s.dipoles, d)
		}
	}
}

// Update refreshes sys after ISR or MI moved its partons.
func (s *Shower) Update(sys event.SysID, ev *event.Record) {
	s.Prepare(sys, ev)
}

func (s *Shower) dropSystem(sys event.SysID) {
	kept := s.dipoles[:0]
	for _, d := range s.dipoles {
		if d.sys != sys {
			kept = append(kept, d)
		}
	}
	s.dipoles = kept
}

func (s *Shower) finalPartner(sys event.SysID, i event.Index, out []event.Index, ev *event.Record) (dipole, bool) {
	best, bestM2 := event.None, math.Inf(1)
	pi := ev.At(i).P
	for _, j := range out {
		pj := ev.At(j)
		if j == i || !pj.IsFinal() || !s.table.IsColoured(pj.ID) {
			continue
		}
		if m2 := pi.Add(pj.P).M2(); m2 > 0 && m2 < bestM2 {
			best, bestM2 = j, m2
		}
	}
	if best == event.None {
		return dipole{}, false
	}
	return dipole{
		sys:    sys,
		rad:    i,
		rec:    best,
		m2:     bestM2,
		pT2Max: s.startScale2(ev.At(i), bestM2),
	}, true
}

func (s *Shower) initialPartner(sys event.SysID, i event.Index, ev *event.Record) (dipole, bool) {
	if _, coupled := s.coupling.Pair(); !coupled || !s.cfg.RecoilToBeam || !ev.HasBeams(sys) {
		return dipole{}, false
	}
	pi := ev.At(i).P
	best, bestM2, bestSide := event.None, math.Inf(1), beam.SideA
	for _, side := range []beam.Side{beam.SideA, beam.SideB} {
		a := ev.GetInSystem(sys, int(side))
		if a == event.None || !s.table.IsColoured(ev.At(a).ID) {
			continue
		}
		if m2 := 2 * pi.Dot(ev.At(a).P); m2 > 0 && m2 < bestM2 {
			best, bestM2, bestSide = a, m2, side
		}
	}
	if best == event.None {
		return dipole{}, false
	}
	return dipole{
		sys:     sys,
		rad:     i,
		rec:     best,
		initial: true,
		side:    bestSide,
		m2:      bestM2,
		pT2Max:  s.startScale2(ev.At(i), bestM2),
	}, true
}

// startScale2 is the squared starting scale of a radiator: its production
// scale, capped by the dipole phase space.
func (s *Shower) startScale2(p *event.Particle, m2 float64) float64 {
	return math.Min(p.Scale*p.Scale, m2/4)
}

// SelectedSystem returns the system of the last committed branching.
func (s *Shower) SelectedSystem() event.SysID {
	return s.selected
}

// NextCandidate runs the veto algorithm on every dipole and keeps the
// hardest trial. The result is cached per (maxScale, minScale).
func (s *Shower) NextCandidate(ev *event.Record, maxScale, minScale float64) float64 {
	if s.cached && s.cacheMax == maxScale && s.cacheMin == minScale {
		return s.candidateScale()
	}
	s.cand = candidate{}
	pT2Min := math.Max(minScale, s.cfg.PTmin)
	pT2Min *= pT2Min
	for k, d := range s.dipoles {
		start := math.Min(maxScale*maxScale, d.pT2Max)
		if best := s.cand.pT2; s.cand.valid && best > start {
			continue
		}
		if c, ok := s.trial(ev, k, d, start, pT2Min); ok && (!s.cand.valid || c.pT2 > s.cand.pT2) {
			s.cand = c
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

func (s *Shower) trial(ev *event.Record, k int, d dipole, pT2Start, pT2Min float64) (candidate, bool) {
	if pT2Start <= pT2Min || d.m2 <= 4*pT2Min {
		return candidate{}, false
	}
	rad := ev.At(d.rad)
	isGluon := rad.ID == gluonID

	// z range where an emission above pT2Min is possible at all.
	root := math.Sqrt(1 - 4*pT2Min/d.m2)
	zMin, zMax := 0.5*(1-root), 0.5*(1+root)

	emitWeight := emitPeak(isGluon) * qcd.SoftIntegral(zMin, zMax)
	splitWeight := 0.0
	if isGluon && s.cfg.GluonSplit {
		splitWeight = qcd.TR * nSplit * (zMax - zMin)
	}
	alphaMax := s.alphaS.Max(pT2Min)
	coeff := alphaMax / (2 * math.Pi) * (emitWeight + splitWeight)

	pT2 := pT2Start
	for {
		pT2 = qcd.TrialPT2(s.rng, pT2, coeff)
		if pT2 < pT2Min {
			return candidate{}, false
		}
		c := candidate{valid: true, dip: k, pT2: pT2, phi: 2 * math.Pi * s.rng.Float64()}
		var accept float64
		if s.rng.Float64()*(emitWeight+splitWeight) < emitWeight {
			c.ch = channelEmit
			c.z = qcd.SampleZSoft(s.rng, zMin, zMax)
			accept = emitAcceptance(isGluon, c.z)
		} else {
			c.ch = channelSplit
			c.z = zMin + (zMax-zMin)*s.rng.Float64()
			c.flavour = 1 + s.rng.Intn(nSplit)
			accept = splitAcceptance(c.z)
		}
		// Phase space at this pT: z(1-z) m2 >= pT2.
		if c.z*(1-c.z)*d.m2 < pT2 {
			continue
		}
		accept *= s.alphaS.At(pT2) / alphaMax
		if s.rng.Float64() < accept {
			return c, true
		}
	}
}

// emitPeak bounds (1-z) P(z) on (0,1): CA for g -> g g, 2 CF for q -> q g.
// The emission overestimate is emitPeak/(1-z).
func emitPeak(isGluon bool) float64 {
	if isGluon {
		return qcd.CA
	}
	return 2 * qcd.CF
}

// emitAcceptance is the kernel over its overestimate; it lies in [0, 1].
func emitAcceptance(isGluon bool, z float64) float64 {
	over := emitPeak(isGluon) / (1 - z)
	if isGluon {
		return qcd.PGToGG(z) / over
	}
	return qcd.PQToQG(z) / over
}

// splitAcceptance is g -> q qbar over its flat overestimate TR.
func splitAcceptance(z float64) float64 {
	return qcd.PGToQQ(z) / qcd.TR
}

// Commit performs the cached branching. Nothing is changed when the
// kinematics cannot be constructed.
func (s *Shower) Commit(ev *event.Record) bool {
	c := s.cand
	if !c.valid {
		return false
	}
	d := s.dipoles[c.dip]
	m2 := c.pT2 / (c.z * (1 - c.z))
	var ok bool
	if d.initial {
		ok = s.commitInitial(ev, c, d, m2)
	} else {
		ok = s.commitFinal(ev, c, d, m2)
	}
	if !ok {
		return false
	}
	s.selected = d.sys
	s.Prepare(d.sys, ev)
	return true
}

func (s *Shower) daughterIDs(radID int, c candidate) (int, int) {
	switch {
	case c.ch == channelSplit:
		return c.flavour, -c.flavour
	case radID == gluonID:
		return gluonID, gluonID
	default:
		return radID, gluonID
	}
}

func (s *Shower) commitFinal(ev *event.Record, c candidate, d dipole, m2 float64) bool {
	r, rec := ev.At(d.rad), ev.At(d.rec)
	q := r.P.Add(rec.P)
	rStar, recNew, ok := massiveInDipole(r.P, q, m2)
	if !ok {
		return false
	}
	p1, p2, ok := split(rStar, q, c.z, c.phi)
	if !ok {
		return false
	}
	iRec, err := ev.CopyWithMomentum(d.rec, event.StatusFSRRecoil, recNew)
	if err != nil {
		return false
	}
	s.appendDaughters(ev, c, d, p1, p2)
	ev.ReplaceInSystem(d.sys, d.rec, iRec)
	return true
}

// commitInitial handles a final radiator whose recoiler is incoming parton
// a: a is rescaled to a' = a(1 + m2/Q2) and the radiator absorbs the
// difference, so the system stays balanced and a' stays along the beam.
func (s *Shower) commitInitial(ev *event.Record, c candidate, d dipole, m2 float64) bool {
	pair, _ := s.coupling.Pair()
	st := pair.Side(d.side)
	if e, err := st.Entry(d.sys); err != nil || e.Pos != d.rec {
		logrus.Warnf("timelike: beam %d has no entry at line %d for system %d (%v)", d.side, d.rec, d.sys, err)
		return false
	}
	r, a := ev.At(d.rad), ev.At(d.rec)
	q2 := 2 * r.P.Dot(a.P)
	if q2 <= 0 {
		return false
	}
	scale := 1 + m2/q2
	xOld := 2 * a.P.E / ev.ECM()
	xNew := xOld * scale
	if xNew >= st.XMax(d.sys) {
		return false
	}
	aNew := a.P.Scale(scale)
	rStar := r.P.Add(aNew.Sub(a.P))
	p1, p2, ok := split(rStar, rStar.Add(aNew), c.z, c.phi)
	if !ok {
		return false
	}

	iA, err := ev.CopyWithMomentum(d.rec, -event.StatusFSRInRecoil, aNew)
	if err != nil {
		return false
	}
	beamPos := d.side.Index()
	ev.At(iA).Mothers = []event.Index{beamPos}
	ev.ReplaceDaughter(beamPos, d.rec, iA)
	ev.SetInSystem(d.sys, int(d.side), iA)
	if err := st.Update(d.sys, iA, ev.At(iA).ID, xNew); err != nil {
		logrus.Errorf("timelike: beam update for system %d: %v", d.sys, err)
	}
	s.appendDaughters(ev, c, d, p1, p2)
	return true
}

func (s *Shower) appendDaughters(ev *event.Record, c candidate, d dipole, p1, p2 event.Vec4) {
	r := ev.At(d.rad)
	id1, id2 := s.daughterIDs(r.ID, c)
	pT := math.Sqrt(c.pT2)
	i1 := ev.Append(event.Particle{ID: id1, Status: event.StatusFSRBranch, P: p1, Scale: pT,
		Mothers: []event.Index{d.rad}})
	i2 := ev.Append(event.Particle{ID: id2, Status: event.StatusFSRBranch, P: p2, Scale: pT,
		Mothers: []event.Index{d.rad}})
	r.Daughters = []event.Index{i1, i2}
	r.StatusNeg()
	ev.ReplaceInSystem(d.sys, d.rad, i1)
	ev.AddToSystem(d.sys, i2)
}

// Shower evolves [beg, end] as a new system from pTmax down to the cutoff.
// The particles must be final; their production scales are capped at pTmax.
func (s *Shower) Shower(ev *event.Record, beg, end event.Index, pTmax float64) int {
	sys := ev.NewSystem()
	for i := beg; i <= end; i++ {
		if ev.Valid(i) && ev.At(i).IsFinal() {
			ev.AddToSystem(sys, i)
		}
	}
	s.Prepare(sys, ev)
	for k := range s.dipoles {
		if s.dipoles[k].sys == sys {
			s.dipoles[k].pT2Max = math.Min(s.dipoles[k].pT2Max, pTmax*pTmax)
		}
	}

	n := 0
	ceiling := pTmax
	for {
		q := s.NextCandidate(ev, ceiling, s.cfg.PTmin)
		if q == 0 {
			break
		}
		if s.Commit(ev) {
			n++
			s.capSystem(sys, q)
		} else {
			s.invalidate()
		}
		ceiling = q
	}
	s.dropSystem(sys)
	s.invalidate()
	return n
}

// capSystem keeps rebuilt dipoles of sys below the last emission.
func (s *Shower) capSystem(sys event.SysID, pT float64) {
	for k := range s.dipoles {
		if s.dipoles[k].sys == sys {
			s.dipoles[k].pT2Max = math.Min(s.dipoles[k].pT2Max, pT*pT)
		}
	}
}
