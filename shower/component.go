package shower

import (
	"io"
	"math/rand"

	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

// Kind names one evolution mechanism.
type Kind int

const (
	KindNone Kind = iota
	KindMI
	KindISR
	KindFSR
)

func (k Kind) String() string {
	switch k {
	case KindMI:
		return "mi"
	case KindISR:
		return "isr"
	case KindFSR:
		return "fsr"
	default:
		return "none"
	}
}

// ComponentPriority is the order in which the driver queries components.
// When two candidates have exactly the same scale the earlier kind wins.
var ComponentPriority = [...]Kind{KindMI, KindISR, KindFSR}

// Evolver is the contract shared by all evolution components.
//
// Per subsystem a component moves through Uninitialized -> Prepared ->
// CandidateProposed -> Committed -> Prepared. NextCandidate is a dry run:
// it may draw random numbers from the component's own stream but leaves
// the record, the beams and every other component untouched, and it
// returns the same scale for the same bounds until the next Commit,
// Update, Prepare or Reset.
type Evolver interface {
	// Reset forgets all subsystems. Called at event start.
	Reset()
	// Update refreshes cached state of sys after another component changed it.
	Update(sys event.SysID, ev *event.Record)
	// NextCandidate returns the scale of the next trial branching in
	// [minScale, maxScale), or 0 if there is none.
	NextCandidate(ev *event.Record, maxScale, minScale float64) float64
	// Commit executes the last candidate. It returns false, changing
	// nothing, when a late kinematic check fails.
	Commit(ev *event.Record) bool
	// SelectedSystem is the subsystem changed by the last successful Commit.
	SelectedSystem() event.SysID
}

// TimeShower is final-state radiation.
type TimeShower interface {
	Evolver
	// Prepare registers the radiators of sys.
	Prepare(sys event.SysID, ev *event.Record)
	// Shower evolves the particles in [beg, end] as a new standalone system
	// from pTmax down to the cutoff and returns the number of branchings.
	Shower(ev *event.Record, beg, end event.Index, pTmax float64) int
}

// SpaceShower is initial-state radiation by backward evolution.
type SpaceShower interface {
	Evolver
	// Prepare registers the incoming partons of sys. limitMaxScale caps
	// the evolution at the scale of the system's partons.
	Prepare(sys event.SysID, ev *event.Record, limitMaxScale bool)
	// LimitMaxScale decides, for the hard system, whether ISR should be
	// capped at the hard scale.
	LimitMaxScale(ev *event.Record) bool
}

// MultipleInteractions adds further scatterings between the beams.
type MultipleInteractions interface {
	Evolver
	// Prepare sets the starting scale from the hard system sys.
	Prepare(sys event.SysID, ev *event.Record)
}

// HardProcess creates subsystem 0.
type HardProcess interface {
	Name() string
	// Generate appends the incoming and outgoing hard partons, creates
	// system 0 and registers the incoming partons in the beams.
	Generate(ev *event.Record, beams *beam.Pair) error
}

// RemnantBuilder consumes the final beam state and appends remnants.
type RemnantBuilder interface {
	Build(ev *event.Record, beams *beam.Pair) error
}

// Decayer decays resonances left after evolution and showers their products.
type Decayer interface {
	// DecayResonances returns the number of decays performed.
	DecayResonances(ev *event.Record, fsr TimeShower) (int, error)
}

// Lister is implemented by components that can print their evolution
// state (dipole ends, incoming partons, interaction window) for debugging.
type Lister interface {
	List(w io.Writer) error
}

// Factory variables. Sub-packages set them from init(); import
// shower/defaults to register all of them at once.
var (
	NewTimeShowerFunc           func(cfg Config, table *particledata.Table, coupling beam.Coupling, rng *rand.Rand) TimeShower
	NewSpaceShowerFunc          func(cfg Config, table *particledata.Table, beams *beam.Pair, rng *rand.Rand) SpaceShower
	NewMultipleInteractionsFunc func(cfg Config, table *particledata.Table, beams *beam.Pair, rng *rand.Rand) MultipleInteractions
	NewHardProcessFunc          func(cfg Config, table *particledata.Table, rng *rand.Rand) (HardProcess, error)
	NewRemnantBuilderFunc       func(cfg Config, table *particledata.Table, rng *rand.Rand) RemnantBuilder
	NewDecayerFunc              func(cfg Config, table *particledata.Table, rng *rand.Rand) Decayer
)
