// Package event holds the append-only particle history of one collision
// event and the subsystem index that groups its partons by interaction.
//
// Records are never overwritten. A change of momentum or identity creates a
// new line via Copy, and the old line is marked replaced by a negative
// status. Positions are typed (Index, SysID) so subsystem tables cannot be
// mixed up with other integers.
package event

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an Index does not address a record line.
var ErrIndexOutOfRange = errors.New("event: index out of range")

// Beam positions created by Clear.
const (
	BeamA Index = 1
	BeamB Index = 2
)

// headerID is the pseudo-particle code of the event header line.
const headerID = 90

// Record is the event history plus its subsystem bookkeeping.
//
// Thread-safety: NOT thread-safe. One Record belongs to one event loop.
type Record struct {
	SystemIndex

	eCM     float64
	beamAID int
	beamBID int
	entries []*Particle
}

// New creates a record for collisions of beamAID (moving along +z) on
// beamBID at centre-of-mass energy eCM, already cleared.
func New(eCM float64, beamAID, beamBID int) *Record {
	r := &Record{eCM: eCM, beamAID: beamAID, beamBID: beamBID}
	r.Clear()
	return r
}

// ECM returns the collision energy.
func (r *Record) ECM() float64 {
	return r.eCM
}

// Clear resets the record to the header line and the two beams and empties
// the subsystem table. Beams are treated as massless, consistent with the
// x = 2E/E_cm definition used by beam bookkeeping.
func (r *Record) Clear() {
	half := r.eCM / 2
	r.entries = r.entries[:0]
	r.entries = append(r.entries,
		&Particle{ID: headerID, Status: -StatusHeader, P: Vec4{E: r.eCM}, M: r.eCM,
			Daughters: []Index{BeamA, BeamB}},
		&Particle{ID: r.beamAID, Status: -StatusBeam, P: Vec4{Pz: half, E: half},
			Mothers: []Index{None}},
		&Particle{ID: r.beamBID, Status: -StatusBeam, P: Vec4{Pz: -half, E: half},
			Mothers: []Index{None}},
	)
	r.ClearSystems()
}

// Size returns the number of lines, header included.
func (r *Record) Size() int {
	return len(r.entries)
}

// Valid reports whether i addresses an existing line.
func (r *Record) Valid(i Index) bool {
	return i >= 0 && int(i) < len(r.entries)
}

// At returns the line at i. The pointer stays valid across Append.
// Panics if i is out of range.
func (r *Record) At(i Index) *Particle {
	return r.entries[i]
}

// Append adds a particle at the end and returns its position.
func (r *Record) Append(p Particle) Index {
	r.entries = append(r.entries, p.clone())
	return Index(len(r.entries) - 1)
}

// Copy appends a copy of line i. The sign of status selects the linking:
//
//   - status > 0: forward copy. The copy is the daughter of i, i is marked
//     replaced, the copy gets the given status.
//   - status < 0: backward copy. The copy is the mother of i, i is marked
//     replaced, the copy gets status -status. The copy's own mothers are
//     inherited from i and left for the caller to adjust.
//   - status == 0: carbon copy with no links; i is unchanged.
func (r *Record) Copy(i Index, status int) (Index, error) {
	if !r.Valid(i) {
		return None, fmt.Errorf("copy %d of %d lines: %w", i, len(r.entries), ErrIndexOutOfRange)
	}
	old := r.entries[i]
	cp := old.clone()
	r.entries = append(r.entries, cp)
	iNew := Index(len(r.entries) - 1)

	switch {
	case status > 0:
		old.Daughters = []Index{iNew, iNew}
		old.StatusNeg()
		cp.Mothers = []Index{i, i}
		cp.Daughters = nil
		cp.Status = status
	case status < 0:
		old.Mothers = []Index{iNew, iNew}
		old.StatusNeg()
		cp.Daughters = []Index{i, i}
		cp.Status = -status
	}
	return iNew, nil
}

// CopyWithMomentum is Copy followed by giving the new line momentum p.
// Used where a branching shifts a parton: the copy is created already
// carrying its final momentum.
func (r *Record) CopyWithMomentum(i Index, status int, p Vec4) (Index, error) {
	iNew, err := r.Copy(i, status)
	if err != nil {
		return None, err
	}
	r.entries[iNew].P = p
	return iNew, nil
}

// ReplaceDaughter swaps oldD for newD in the daughter list of parent.
func (r *Record) ReplaceDaughter(parent, oldD, newD Index) {
	ds := r.entries[parent].Daughters
	for k, d := range ds {
		if d == oldD {
			ds[k] = newD
		}
	}
}

// AddDaughter appends d to the daughter list of parent.
func (r *Record) AddDaughter(parent, d Index) {
	r.entries[parent].Daughters = append(r.entries[parent].Daughters, d)
}

// TopCopy follows carbon-copy mothers upwards to the first copy of i.
func (r *Record) TopCopy(i Index) Index {
	for {
		ms := r.entries[i].Mothers
		if len(ms) != 2 || ms[0] != ms[1] || ms[0] <= None {
			return i
		}
		if !isForwardCopy(r.entries[ms[0]], i) {
			return i
		}
		i = ms[0]
	}
}

// BotCopy follows carbon-copy daughters downwards to the last copy of i.
func (r *Record) BotCopy(i Index) Index {
	for {
		ds := r.entries[i].Daughters
		if len(ds) != 2 || ds[0] != ds[1] || ds[0] <= None {
			return i
		}
		i = ds[0]
	}
}

func isForwardCopy(mother *Particle, child Index) bool {
	ds := mother.Daughters
	return len(ds) == 2 && ds[0] == child && ds[1] == child
}

// FinalState returns the positions of all active lines without daughters.
func (r *Record) FinalState() []Index {
	var out []Index
	for i, p := range r.entries {
		if p.IsFinal() {
			out = append(out, Index(i))
		}
	}
	return out
}

// IsLinked reports whether m lists d as a daughter and d lists m as a mother.
func (r *Record) IsLinked(m, d Index) bool {
	return contains(r.entries[m].Daughters, d) && contains(r.entries[d].Mothers, m)
}
