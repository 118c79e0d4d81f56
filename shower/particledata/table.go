// Package particledata is the read-only particle table: masses, charges,
// colour representations and resonance decay channels.
//
// The default table is embedded and parsed once; it is safe to share
// between goroutines.
package particledata

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed particles.yaml
var embeddedTable []byte

// Colour representations.
const (
	ColourSinglet     = 0
	ColourTriplet     = 1
	ColourAntiTriplet = -1
	ColourOctet       = 2
)

// Channel is one decay mode of a resonance.
type Channel struct {
	Products []int   `yaml:"products"`
	BR       float64 `yaml:"br"`
}

// Entry describes one particle. Antiparticle properties are derived.
type Entry struct {
	ID        int       `yaml:"id"`
	Name      string    `yaml:"name"`
	Mass      float64   `yaml:"mass"`
	Width     float64   `yaml:"width"`
	Charge3   int       `yaml:"charge3"`
	Colour    int       `yaml:"colour"`
	HasAnti   bool      `yaml:"has_anti"`
	Resonance bool      `yaml:"resonance"`
	Decays    []Channel `yaml:"decays"`
}

type tableFile struct {
	Version   string  `yaml:"version"`
	Particles []Entry `yaml:"particles"`
}

// Table maps PDG codes to entries.
type Table struct {
	entries map[int]Entry
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded table. Panics if the embedded file is broken.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(bytes.NewReader(embeddedTable))
		if err != nil {
			panic(fmt.Sprintf("particledata: embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load parses a table. Unknown fields are errors.
func Load(r io.Reader) (*Table, error) {
	var f tableFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode particle table: %w", err)
	}
	t := &Table{entries: make(map[int]Entry, len(f.Particles))}
	for _, e := range f.Particles {
		if e.ID <= 0 {
			return nil, fmt.Errorf("particle %q: id must be positive, got %d", e.Name, e.ID)
		}
		if _, dup := t.entries[e.ID]; dup {
			return nil, fmt.Errorf("particle %d listed twice", e.ID)
		}
		t.entries[e.ID] = e
	}
	return t, nil
}

// Lookup returns the entry for id, conjugating charge, colour and decay
// products for antiparticles.
func (t *Table) Lookup(id int) (Entry, bool) {
	if id >= 0 {
		e, ok := t.entries[id]
		return e, ok
	}
	e, ok := t.entries[-id]
	if !ok || !e.HasAnti {
		return Entry{}, false
	}
	e.ID = id
	e.Name += "bar"
	e.Charge3 = -e.Charge3
	if e.Colour == ColourTriplet || e.Colour == ColourAntiTriplet {
		e.Colour = -e.Colour
	}
	if len(e.Decays) > 0 {
		decays := make([]Channel, len(e.Decays))
		for i, ch := range e.Decays {
			products := make([]int, len(ch.Products))
			for k, p := range ch.Products {
				products[k] = t.conjugate(p)
			}
			decays[i] = Channel{Products: products, BR: ch.BR}
		}
		e.Decays = decays
	}
	return e, true
}

func (t *Table) conjugate(id int) int {
	a := id
	if a < 0 {
		a = -a
	}
	if e, ok := t.entries[a]; ok && e.HasAnti {
		return -id
	}
	return id
}

// IsKnown reports whether id (or its antiparticle) is in the table.
func (t *Table) IsKnown(id int) bool {
	_, ok := t.Lookup(id)
	return ok
}

// Mass returns the nominal mass, 0 for unknown particles.
func (t *Table) Mass(id int) float64 {
	e, _ := t.Lookup(id)
	return e.Mass
}

// Charge3 returns three times the electric charge.
func (t *Table) Charge3(id int) int {
	e, _ := t.Lookup(id)
	return e.Charge3
}

// IsColoured reports whether id carries colour charge.
func (t *Table) IsColoured(id int) bool {
	e, _ := t.Lookup(id)
	return e.Colour != ColourSinglet
}

// IsResonance reports whether id is decayed after the shower.
func (t *Table) IsResonance(id int) bool {
	e, _ := t.Lookup(id)
	return e.Resonance
}

// Decays returns the decay channels of id; nil for stable particles.
func (t *Table) Decays(id int) []Channel {
	e, _ := t.Lookup(id)
	return e.Decays
}
