package hardprocess

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

// Decayer decays every final resonance isotropically into a two-body
// channel chosen by branching ratio, then showers the products as a new
// system.
type Decayer struct {
	table *particledata.Table
	rng   *rand.Rand
}

// NewDecayer returns the default resonance decayer.
func NewDecayer(_ shower.Config, table *particledata.Table, rng *rand.Rand) shower.Decayer {
	if table == nil || rng == nil {
		panic("hardprocess: NewDecayer requires a particle table and an RNG")
	}
	return &Decayer{table: table, rng: rng}
}

// DecayResonances returns the number of decays. Products keep the mass of
// the resonance as their shower starting scale.
func (d *Decayer) DecayResonances(ev *event.Record, fsr shower.TimeShower) (int, error) {
	n := 0
	for i := event.BeamB + 1; int(i) < ev.Size(); i++ {
		p := ev.At(i)
		if !p.IsFinal() || !d.table.IsResonance(p.ID) {
			continue
		}
		ch, err := d.pick(p.ID)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", i, err)
		}
		m := p.P.M()
		k1, k2 := twoBody(p.P, 2*d.rng.Float64()-1, 2*math.Pi*d.rng.Float64())
		d1 := ev.Append(event.Particle{ID: ch.Products[0], Status: event.StatusDecayProduct, P: k1, Scale: m,
			Mothers: []event.Index{i}})
		d2 := ev.Append(event.Particle{ID: ch.Products[1], Status: event.StatusDecayProduct, P: k2, Scale: m,
			Mothers: []event.Index{i}})
		p.Daughters = []event.Index{d1, d2}
		p.StatusNeg()
		n++

		branchings := fsr.Shower(ev, d1, d2, m)
		logrus.Debugf("decayed %d at line %d into %v, %d shower branchings", p.ID, i, ch.Products, branchings)
	}
	return n, nil
}

func (d *Decayer) pick(id int) (particledata.Channel, error) {
	chs := d.table.Decays(id)
	total := 0.0
	for _, ch := range chs {
		total += ch.BR
	}
	if total <= 0 {
		return particledata.Channel{}, fmt.Errorf("resonance %d has no open decay channel", id)
	}
	r := d.rng.Float64() * total
	chosen := chs[len(chs)-1]
	for _, ch := range chs {
		if r < ch.BR {
			chosen = ch
			break
		}
		r -= ch.BR
	}
	if len(chosen.Products) != 2 {
		return particledata.Channel{}, fmt.Errorf("resonance %d: only two-body decays are supported, got %v", id, chosen.Products)
	}
	return chosen, nil
}
