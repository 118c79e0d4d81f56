package shower

import "github.com/partonsim/partonsim/shower/event"

// Hooks lets a user inspect the event during evolution and veto it.
//
// The pT veto fires once, at the first branching below ScaleVetoPT, with
// the event as it stands; if evolution never gets that low it fires at the
// end. The step veto fires after each of the first NumberVetoStep ISR or
// FSR branchings of the hard system.
type Hooks interface {
	CanVetoPT() bool
	ScaleVetoPT() float64
	// DoVetoPT receives the kind of the last committed branching, KindNone
	// if there was none.
	DoVetoPT(last Kind, ev *event.Record) bool

	CanVetoStep() bool
	NumberVetoStep() int
	DoVetoStep(kind Kind, nISR, nFSR int, ev *event.Record) bool
}

// NoHooks vetoes nothing.
type NoHooks struct{}

func (NoHooks) CanVetoPT() bool { return false }
func (NoHooks) ScaleVetoPT() float64 { return 0 }
func (NoHooks) DoVetoPT(Kind, *event.Record) bool { return false }
func (NoHooks) CanVetoStep() bool { return false }
func (NoHooks) NumberVetoStep() int { return 0 }
func (NoHooks) DoVetoStep(Kind, int, int, *event.Record) bool { return false }
