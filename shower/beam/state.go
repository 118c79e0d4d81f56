// Package beam tracks, per incoming beam particle, the partons already
// extracted from it and how much momentum fraction they carry.
//
// Each subsystem with beam ancestry has exactly one entry per beam, holding
// the current record position, flavour and x of its incoming parton. The
// remnant builder appends further entries at the end of the event.
package beam

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/partonsim/partonsim/shower/event"
)

var (
	// ErrUnknownSystem is returned when no entry belongs to the given subsystem.
	ErrUnknownSystem = errors.New("beam: no entry for system")
	// ErrStaleDecomposition is returned by Reclassify when the cached PDF
	// decomposition was not computed for the entry's current flavour and x.
	ErrStaleDecomposition = errors.New("beam: pdf decomposition is stale")
)

// Side selects one of the two beams. Beam A moves along +z.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Index returns the record position of the beam particle for this side.
func (s Side) Index() event.Index {
	if s == SideA {
		return event.BeamA
	}
	return event.BeamB
}

// Class says which part of the density an extracted parton was taken from.
type Class int

const (
	ClassNone Class = iota // gluons, or not yet classified
	ClassValence
	ClassUnmatchedSea
	ClassCompanionSea
	ClassRemnant
)

func (c Class) String() string {
	switch c {
	case ClassValence:
		return "valence"
	case ClassUnmatchedSea:
		return "sea"
	case ClassCompanionSea:
		return "companion"
	case ClassRemnant:
		return "remnant"
	default:
		return "none"
	}
}

// NoCompanion marks an entry without a companion partner.
const NoCompanion = -1

// NoSystem is the Sys of remnant entries.
const NoSystem event.SysID = -1

// xTol is the relative margin below the momentum left at which the
// restricted density already vanishes, so rounding in the x sum cannot
// leave a sliver of phase space.
const xTol = 1e-12

// ResolvedParton is one entry of a State.
type ResolvedParton struct {
	Sys       event.SysID
	Pos       event.Index
	ID        int
	X         float64
	Class     Class
	Companion int
}

// NewParton returns an unclassified entry without companion.
func NewParton(sys event.SysID, pos event.Index, id int, x float64) ResolvedParton {
	return ResolvedParton{Sys: sys, Pos: pos, ID: id, X: x, Companion: NoCompanion}
}

type decomposition struct {
	valid bool
	sys   event.SysID
	id    int
	x     float64
	val   float64
	sea   float64
	// comp[j] is the companion weight for the unmatched sea entry j.
	comp map[int]float64
}

// total sums in slot order so the result is bit-for-bit reproducible.
func (d decomposition) total() float64 {
	t := d.val + d.sea
	slots := make([]int, 0, len(d.comp))
	for j := range d.comp {
		slots = append(slots, j)
	}
	sort.Ints(slots)
	for _, j := range slots {
		t += d.comp[j]
	}
	return t
}

// State is the resolved-parton bookkeeping of one beam.
//
// Thread-safety: NOT thread-safe. One State belongs to one event loop.
type State struct {
	side    Side
	beamID  int
	eCM     float64
	pdf     PDF
	rng     *rand.Rand
	valence map[int]int
	entries []ResolvedParton
	cache   decomposition
}

// NewState creates an empty beam. rng drives the valence/sea/companion
// choice and is usually the "beam" stream of the event RNG.
func NewState(side Side, beamID int, eCM float64, pdf PDF, rng *rand.Rand) *State {
	if pdf == nil || rng == nil {
		panic("beam: NewState requires a PDF and an RNG")
	}
	return &State{
		side:    side,
		beamID:  beamID,
		eCM:     eCM,
		pdf:     pdf,
		rng:     rng,
		valence: pdf.Valence(),
	}
}

// Side returns which beam this is.
func (s *State) Side() Side {
	return s.side
}

// BeamID returns the PDG code of the beam particle.
func (s *State) BeamID() int {
	return s.beamID
}

func (s *State) ECM() float64 {
	return s.eCM
}

func (s *State) PDF() PDF {
	return s.pdf
}

// Size returns the number of entries, remnants included.
func (s *State) Size() int {
	return len(s.entries)
}

// At returns a copy of entry i.
func (s *State) At(i int) ResolvedParton {
	return s.entries[i]
}

// Clear drops all entries. Called at event start.
func (s *State) Clear() {
	s.entries = s.entries[:0]
	s.cache = decomposition{}
}

// Append adds an entry and returns its slot.
func (s *State) Append(p ResolvedParton) int {
	s.entries = append(s.entries, p)
	return len(s.entries) - 1
}

func (s *State) slot(sys event.SysID) (int, error) {
	for i, e := range s.entries {
		if e.Sys == sys && e.Class != ClassRemnant {
			return i, nil
		}
	}
	return 0, fmt.Errorf("beam side %d, system %d: %w", s.side, sys, ErrUnknownSystem)
}

// Entry returns the entry of subsystem sys.
func (s *State) Entry(sys event.SysID) (ResolvedParton, error) {
	i, err := s.slot(sys)
	if err != nil {
		return ResolvedParton{}, err
	}
	return s.entries[i], nil
}

// Update moves the entry of sys to a new record position, flavour and x.
// All three change together; a partial update would break the x bookkeeping.
func (s *State) Update(sys event.SysID, pos event.Index, id int, x float64) error {
	i, err := s.slot(sys)
	if err != nil {
		return err
	}
	e := &s.entries[i]
	e.Pos, e.ID, e.X = pos, id, x
	return nil
}

// XSum returns the total x of all entries.
func (s *State) XSum() float64 {
	var sum float64
	for _, e := range s.entries {
		sum += e.X
	}
	return sum
}

// XMax returns the largest x the entry of sys could carry given the x
// already taken by all other entries.
func (s *State) XMax(sys event.SysID) float64 {
	left := 1.0
	for _, e := range s.entries {
		if e.Sys != sys || e.Class == ClassRemnant {
			left -= e.X
		}
	}
	return left
}

// PDFWeight is the unrestricted density of the beam particle.
func (s *State) PDFWeight(id int, x, q2 float64) float64 {
	return s.pdf.XF(id, x, q2)
}

func (s *State) decompose(sys event.SysID, id int, x, q2 float64) decomposition {
	d := decomposition{valid: true, sys: sys, id: id, x: x}
	left := s.XMax(sys)
	if x <= 0 || x >= left*(1-xTol) {
		return d
	}
	xr := x / left
	if id == gluonID {
		d.sea = s.pdf.XF(id, xr, q2)
		return d
	}

	if nTot := s.valence[id]; nTot > 0 {
		used := 0
		for _, e := range s.entries {
			if e.Sys != sys && e.ID == id && e.Class == ClassValence {
				used++
			}
		}
		if remain := nTot - used; remain > 0 {
			d.val = s.pdf.XFVal(id, xr, q2) * float64(remain) / float64(nTot)
		}
	}
	d.sea = s.pdf.XFSea(id, xr, q2)
	for j, e := range s.entries {
		if e.Sys == sys || e.ID != -id || !s.companionCandidate(e, sys) {
			continue
		}
		if c := s.pdf.XFCompanion(xr, e.X/left, q2); c > 0 {
			if d.comp == nil {
				d.comp = make(map[int]float64)
			}
			d.comp[j] = c
		}
	}
	return d
}

// companionCandidate reports whether e may pair with the parton of sys:
// it is unmatched, or already paired with sys.
func (s *State) companionCandidate(e ResolvedParton, sys event.SysID) bool {
	switch e.Class {
	case ClassUnmatchedSea:
		return true
	case ClassCompanionSea:
		return s.entries[e.Companion].Sys == sys
	}
	return false
}

// XFRestricted is the density for parton id in subsystem sys, given what
// the other subsystems already took. x is rescaled by the momentum left,
// valence quarks used elsewhere are removed and companion terms for
// unmatched sea quarks are added. It records nothing.
func (s *State) XFRestricted(sys event.SysID, id int, x, q2 float64) float64 {
	return s.decompose(sys, id, x, q2).total()
}

// RestrictedPDFWeight is XFRestricted, and additionally caches the
// decomposition for the following Reclassify.
func (s *State) RestrictedPDFWeight(sys event.SysID, id int, x, q2 float64) float64 {
	s.cache = s.decompose(sys, id, x, q2)
	return s.cache.total()
}

// Reclassify picks valence, sea or companion for the entry of sys from the
// cached decomposition. The cache must have been computed with the entry's
// current flavour and x.
func (s *State) Reclassify(sys event.SysID) error {
	i, err := s.slot(sys)
	if err != nil {
		return err
	}
	e := &s.entries[i]
	c := s.cache
	if !c.valid || c.sys != sys || c.id != e.ID || c.x != e.X {
		return fmt.Errorf("beam side %d, system %d (id %d, x %g): %w", s.side, sys, e.ID, e.X, ErrStaleDecomposition)
	}

	s.unlinkCompanion(i)
	if e.ID == gluonID {
		e.Class = ClassNone
		return nil
	}

	total := c.total()
	if total <= 0 {
		e.Class = ClassUnmatchedSea
		return nil
	}
	r := s.rng.Float64() * total
	switch {
	case r < c.val:
		e.Class = ClassValence
	case r < c.val+c.sea || len(c.comp) == 0:
		e.Class = ClassUnmatchedSea
	default:
		r -= c.val + c.sea
		partner := s.pickCompanion(c.comp, r)
		e.Class = ClassCompanionSea
		e.Companion = partner
		p := &s.entries[partner]
		p.Class = ClassCompanionSea
		p.Companion = i
	}
	return nil
}

// Classify computes the restricted decomposition at the entry's current
// flavour and x and reclassifies it. Used for freshly extracted partons.
func (s *State) Classify(sys event.SysID, q2 float64) error {
	e, err := s.Entry(sys)
	if err != nil {
		return err
	}
	s.RestrictedPDFWeight(sys, e.ID, e.X, q2)
	return s.Reclassify(sys)
}

// pickCompanion walks the partners in slot order so the choice is reproducible.
func (s *State) pickCompanion(comp map[int]float64, r float64) int {
	last := -1
	for j := range s.entries {
		w, ok := comp[j]
		if !ok {
			continue
		}
		last = j
		if r < w {
			return j
		}
		r -= w
	}
	return last
}

func (s *State) unlinkCompanion(i int) {
	e := &s.entries[i]
	if e.Companion != NoCompanion {
		p := &s.entries[e.Companion]
		if p.Companion == i {
			p.Companion = NoCompanion
			p.Class = ClassUnmatchedSea
		}
	}
	e.Companion = NoCompanion
	e.Class = ClassNone
}

func (s *State) class(sys event.SysID) Class {
	i, err := s.slot(sys)
	if err != nil {
		return ClassNone
	}
	return s.entries[i].Class
}

func (s *State) IsValence(sys event.SysID) bool {
	return s.class(sys) == ClassValence
}

func (s *State) IsUnmatchedSea(sys event.SysID) bool {
	return s.class(sys) == ClassUnmatchedSea
}

func (s *State) IsCompanionSea(sys event.SysID) bool {
	return s.class(sys) == ClassCompanionSea
}

// IsValenceFlavour reports whether id is among the beam particle's valence quarks.
func (s *State) IsValenceFlavour(id int) bool {
	return s.valence[id] > 0
}
