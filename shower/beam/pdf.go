package beam

import (
	"fmt"
	"math"
)

// PDF gives parton densities of one beam particle, all as x*f(x, Q2).
type PDF interface {
	// XF is the total density for parton id.
	XF(id int, x, q2 float64) float64
	// XFVal is the valence part for parton id; zero for gluons and antiquarks.
	XFVal(id int, x, q2 float64) float64
	// XFSea is the sea part for parton id.
	XFSea(id int, x, q2 float64) float64
	// XFCompanion is the density of the companion of a sea quark carrying xs.
	XFCompanion(x, xs, q2 float64) float64
	// Valence returns how many valence quarks of each id the beam particle has.
	Valence() map[int]int
}

const (
	protonID = 2212
	gluonID  = 21
)

// Normalisations of the toy parametrisation. The valence norms give
// integrals of 2 and 1 for u and d; the gluon and sea shapes only aim at
// a momentum sum near unity.
const (
	normUVal = 2.1875
	normDVal = 1.0938
	normG    = 2.5
	normSea  = 0.12
	normComp = 0.15
)

// ToyProton is a scale-independent proton (or antiproton) density. It has
// the right valence content and qualitative x shapes, nothing more.
type ToyProton struct {
	anti bool
}

// NewToyProton returns the density for beam particle id (2212 or -2212).
// Panics on any other id.
func NewToyProton(beamID int) *ToyProton {
	switch beamID {
	case protonID:
		return &ToyProton{}
	case -protonID:
		return &ToyProton{anti: true}
	default:
		panic(fmt.Sprintf("beam: ToyProton supports only 2212 and -2212, got %d", beamID))
	}
}

func (p *ToyProton) conj(id int) int {
	if p.anti && id != gluonID {
		return -id
	}
	return id
}

func (p *ToyProton) XF(id int, x, q2 float64) float64 {
	if id == gluonID {
		return p.gluon(x)
	}
	return p.XFVal(id, x, q2) + p.XFSea(id, x, q2)
}

func (p *ToyProton) XFVal(id int, x, _ float64) float64 {
	if x <= 0 || x >= 1 {
		return 0
	}
	switch p.conj(id) {
	case 2:
		return normUVal * math.Sqrt(x) * math.Pow(1-x, 3)
	case 1:
		return normDVal * math.Sqrt(x) * math.Pow(1-x, 4)
	}
	return 0
}

func (p *ToyProton) XFSea(id int, x, _ float64) float64 {
	if x <= 0 || x >= 1 {
		return 0
	}
	a := id
	if a < 0 {
		a = -a
	}
	if a == gluonID || a > 3 {
		return 0
	}
	f := normSea * math.Pow(1-x, 7)
	if a == 3 {
		f *= 0.5
	}
	return f
}

// XFCompanion vanishes once x+xs reaches 1.
func (p *ToyProton) XFCompanion(x, xs, _ float64) float64 {
	if x <= 0 || xs <= 0 || x+xs >= 1 {
		return 0
	}
	y := xs / (x + xs)
	return normComp * y * (1 - y) * (1 - x - xs) * (1 - x - xs)
}

func (p *ToyProton) Valence() map[int]int {
	if p.anti {
		return map[int]int{-2: 2, -1: 1}
	}
	return map[int]int{2: 2, 1: 1}
}

func (p *ToyProton) gluon(x float64) float64 {
	if x <= 0 || x >= 1 {
		return 0
	}
	return normG * math.Pow(1-x, 5)
}

