package beam

import "math/rand"

// Pair holds the two beams of one event.
type Pair struct {
	A, B *State
}

// NewPair builds both beams for a collision of beamAID on beamBID.
func NewPair(beamAID, beamBID int, eCM float64, pdfA, pdfB PDF, rng *rand.Rand) *Pair {
	return &Pair{
		A: NewState(SideA, beamAID, eCM, pdfA, rng),
		B: NewState(SideB, beamBID, eCM, pdfB, rng),
	}
}

// Side returns the beam for side.
func (p *Pair) Side(side Side) *State {
	if side == SideA {
		return p.A
	}
	return p.B
}

// Clear empties both beams.
func (p *Pair) Clear() {
	p.A.Clear()
	p.B.Clear()
}

// Coupling tells a shower component whether it may read and update beam
// bookkeeping. Showers of decay products run Decoupled.
type Coupling struct {
	pair *Pair
}

// Coupled gives the component access to pair.
func Coupled(pair *Pair) Coupling {
	if pair == nil {
		panic("beam: Coupled requires a non-nil pair")
	}
	return Coupling{pair: pair}
}

// Decoupled gives the component no beams.
func Decoupled() Coupling {
	return Coupling{}
}

// Pair returns the coupled beams, or false when decoupled.
func (c Coupling) Pair() (*Pair, bool) {
	return c.pair, c.pair != nil
}
