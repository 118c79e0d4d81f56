// Package remnant closes an event by turning what is left of each beam
// into remnant partons. It reads the final beam bookkeeping, computes the
// flavour the beam particle still owes, and shares the remaining momentum
// fraction among massless remnants along the beam axis.
package remnant

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

const gluonID = 21

// Builder implements shower.RemnantBuilder.
type Builder struct {
	table *particledata.Table
	rng   *rand.Rand
}

// New returns the default remnant builder.
func New(_ shower.Config, table *particledata.Table, rng *rand.Rand) shower.RemnantBuilder {
	if table == nil || rng == nil {
		panic("remnant: New requires a particle table and an RNG")
	}
	return &Builder{table: table, rng: rng}
}

// Build appends the remnants of both beams and registers them as remnant
// entries. A negative momentum budget is logged and clamped to zero.
func (b *Builder) Build(ev *event.Record, beams *beam.Pair) error {
	for _, st := range []*beam.State{beams.A, beams.B} {
		if err := b.buildSide(ev, st); err != nil {
			return fmt.Errorf("beam %d: %w", st.Side(), err)
		}
	}
	return nil
}

func (b *Builder) buildSide(ev *event.Record, st *beam.State) error {
	beamPos := st.Side().Index()
	if got := ev.At(beamPos).ID; got != st.BeamID() {
		return fmt.Errorf("record beam is %d, bookkeeping expects %d", got, st.BeamID())
	}
	xLeft := 1 - st.XSum()
	if xLeft < 0 {
		logrus.Warnf("remnant: beam %d has x sum %.6f above 1, remnants get no momentum", st.Side(), st.XSum())
		xLeft = 0
	}

	ids := b.flavours(st)
	shares := make([]float64, len(ids))
	total := 0.0
	for i := range shares {
		shares[i] = 0.5 + b.rng.Float64()
		total += shares[i]
	}

	dir := 1.0
	if st.Side() == beam.SideB {
		dir = -1
	}
	half := ev.ECM() / 2
	for i, id := range ids {
		x := xLeft * shares[i] / total
		pos := ev.Append(event.Particle{
			ID:      id,
			Status:  event.StatusRemnant,
			P:       event.Vec4{Pz: dir * x * half, E: x * half},
			Mothers: []event.Index{beamPos},
		})
		ev.AddDaughter(beamPos, pos)
		st.Append(beam.ResolvedParton{
			Sys: beam.NoSystem, Pos: pos, ID: id, X: x,
			Class: beam.ClassRemnant, Companion: beam.NoCompanion,
		})
	}
	return nil
}

// flavours returns the remnant codes: the valence content minus every
// extracted quark, with two same-sign quarks joined into a diquark when
// the table knows it. A beam with no flavour left gives one gluon.
func (b *Builder) flavours(st *beam.State) []int {
	net := make(map[int]int)
	for id, n := range st.PDF().Valence() {
		f, sign := abs(id), sgn(id)
		net[f] += sign * n
	}
	for i := 0; i < st.Size(); i++ {
		e := st.At(i)
		if e.Class == beam.ClassRemnant || e.ID == gluonID {
			continue
		}
		net[abs(e.ID)] -= sgn(e.ID)
	}

	var quarks, antiquarks []int
	for f, n := range net {
		for ; n > 0; n-- {
			quarks = append(quarks, f)
		}
		for ; n < 0; n++ {
			antiquarks = append(antiquarks, f)
		}
	}
	ids := b.joinDiquark(quarks)
	for _, q := range b.joinDiquark(antiquarks) {
		ids = append(ids, -q)
	}
	if len(ids) == 0 {
		ids = append(ids, gluonID)
	}
	return ids
}

// joinDiquark sorts flavours in decreasing order and joins the two
// lightest into a diquark code when the table has it.
func (b *Builder) joinDiquark(flavours []int) []int {
	sort.Sort(sort.Reverse(sort.IntSlice(flavours)))
	n := len(flavours)
	if n < 2 {
		return flavours
	}
	q1, q2 := flavours[n-2], flavours[n-1]
	code := q1*1000 + q2*100 + 1
	if q1 == q2 {
		code += 2
	}
	if !b.table.IsKnown(code) {
		return flavours
	}
	return append(flavours[:n-2:n-2], code)
}

func abs(id int) int {
	if id < 0 {
		return -id
	}
	return id
}

func sgn(id int) int {
	if id < 0 {
		return -1
	}
	return 1
}
