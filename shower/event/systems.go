package event

// SysID identifies one subsystem: the partons of one interaction or decay.
type SysID int

// Slot positions inside a subsystem.
const (
	SlotInA = 0
	SlotInB = 1
	// SlotFirstOut is the first outgoing slot; outgoing partons are unordered.
	SlotFirstOut = 2
)

// SystemIndex maps each subsystem to the current record positions of its
// members. Slots 0 and 1 hold the incoming partons from beam A and B (None
// for systems without beam ancestry); slots 2+ hold outgoing partons.
//
// Every component that moves a parton must keep this table current. Methods
// panic on an unknown SysID, like an out-of-range slice access.
type SystemIndex struct {
	members [][]Index
}

// NewSystem allocates a subsystem with both incoming slots set to None.
func (s *SystemIndex) NewSystem() SysID {
	s.members = append(s.members, []Index{None, None})
	return SysID(len(s.members) - 1)
}

// AddToSystem appends pos as a new outgoing slot.
func (s *SystemIndex) AddToSystem(sys SysID, pos Index) {
	s.members[sys] = append(s.members[sys], pos)
}

// SetInSystem overwrites the given slot.
func (s *SystemIndex) SetInSystem(sys SysID, slot int, pos Index) {
	s.members[sys][slot] = pos
}

// ReplaceInSystem replaces every occurrence of oldPos by newPos within sys.
// It is meant for branchings that move partons without tracking slots.
func (s *SystemIndex) ReplaceInSystem(sys SysID, oldPos, newPos Index) {
	m := s.members[sys]
	for k, p := range m {
		if p == oldPos {
			m[k] = newPos
		}
	}
}

// SizeSystems returns the number of subsystems.
func (s *SystemIndex) SizeSystems() int {
	return len(s.members)
}

// SizeSystem returns the number of slots of sys, incoming slots included.
func (s *SystemIndex) SizeSystem(sys SysID) int {
	return len(s.members[sys])
}

// GetInSystem returns the position held in the given slot.
func (s *SystemIndex) GetInSystem(sys SysID, slot int) Index {
	return s.members[sys][slot]
}

// Members returns a copy of all slots of sys.
func (s *SystemIndex) Members(sys SysID) []Index {
	return append([]Index(nil), s.members[sys]...)
}

// Outgoing returns a copy of the outgoing slots of sys.
func (s *SystemIndex) Outgoing(sys SysID) []Index {
	return append([]Index(nil), s.members[sys][SlotFirstOut:]...)
}

// HasBeams reports whether sys has at least one incoming parton.
func (s *SystemIndex) HasBeams(sys SysID) bool {
	m := s.members[sys]
	return m[SlotInA] != None || m[SlotInB] != None
}

// SystemOf finds the subsystem holding pos.
func (s *SystemIndex) SystemOf(pos Index) (SysID, bool) {
	if pos == None {
		return 0, false
	}
	for sys, m := range s.members {
		for _, p := range m {
			if p == pos {
				return SysID(sys), true
			}
		}
	}
	return 0, false
}

// ClearSystems drops all subsystems. Called at event start.
func (s *SystemIndex) ClearSystems() {
	s.members = s.members[:0]
}
