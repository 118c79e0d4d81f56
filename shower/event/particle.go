package event

// Index is a position in a Record. Index 0 is the event header line, so a
// zero Index inside a subsystem means "no particle".
type Index int

// None is the zero Index.
const None Index = 0

// Status code magnitudes. The sign of Particle.Status says whether the
// record is active (positive) or has been replaced (negative).
const (
	StatusHeader       = 11
	StatusBeam         = 12
	StatusHardIn       = 21
	StatusResonance    = 22
	StatusHardOut      = 23
	StatusMIIn         = 31
	StatusMIOut        = 33
	StatusISRMother    = 41
	StatusISREmitted   = 43
	StatusISRRecoil    = 44
	StatusFSRBranch    = 51
	StatusFSRRecoil    = 52
	StatusFSRInRecoil  = 53
	StatusRemnant      = 63
	StatusDecayProduct = 91
)

// Particle is one line of the event record.
type Particle struct {
	ID     int
	Status int
	P      Vec4
	M      float64
	// Scale is the production scale in GeV. It bounds later branchings of
	// this particle; 0 for particles that must not radiate.
	Scale     float64
	Mothers   []Index
	Daughters []Index
}

// IsActive reports whether the particle has not been replaced.
func (p *Particle) IsActive() bool {
	return p.Status > 0
}

// IsFinal reports whether the particle is active and has no daughters.
func (p *Particle) IsFinal() bool {
	return p.Status > 0 && len(p.Daughters) == 0
}

// StatusAbs returns the production-mechanism part of the status code.
func (p *Particle) StatusAbs() int {
	if p.Status < 0 {
		return -p.Status
	}
	return p.Status
}

// StatusNeg marks the particle as replaced.
func (p *Particle) StatusNeg() {
	if p.Status > 0 {
		p.Status = -p.Status
	}
}

func (p *Particle) clone() *Particle {
	c := *p
	c.Mothers = append([]Index(nil), p.Mothers...)
	c.Daughters = append([]Index(nil), p.Daughters...)
	return &c
}

func contains(list []Index, i Index) bool {
	for _, j := range list {
		if j == i {
			return true
		}
	}
	return false
}
