package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemIndex_SlotBookkeeping(t *testing.T) {
	var s SystemIndex

	sys := s.NewSystem()
	assert.Equal(t, SysID(0), sys)
	assert.Equal(t, 2, s.SizeSystem(sys), "incoming slots are pre-allocated")
	assert.False(t, s.HasBeams(sys))

	s.SetInSystem(sys, SlotInA, 3)
	s.SetInSystem(sys, SlotInB, 4)
	s.AddToSystem(sys, 5)
	s.AddToSystem(sys, 6)

	assert.Equal(t, []Index{3, 4, 5, 6}, s.Members(sys))
	assert.Equal(t, []Index{5, 6}, s.Outgoing(sys))
	assert.True(t, s.HasBeams(sys))
	assert.Equal(t, Index(4), s.GetInSystem(sys, SlotInB))
}

func TestSystemIndex_ReplaceAndLookup(t *testing.T) {
	var s SystemIndex
	a := s.NewSystem()
	b := s.NewSystem()
	s.AddToSystem(a, 5)
	s.AddToSystem(b, 7)

	s.ReplaceInSystem(a, 5, 9)

	got, ok := s.SystemOf(9)
	assert.True(t, ok)
	assert.Equal(t, a, got)
	_, ok = s.SystemOf(5)
	assert.False(t, ok, "replaced position is no longer a member")
	got, ok = s.SystemOf(7)
	assert.True(t, ok)
	assert.Equal(t, b, got)
	_, ok = s.SystemOf(None)
	assert.False(t, ok, "None never belongs to a system")
}

func TestSystemIndex_MembersIsACopy(t *testing.T) {
	var s SystemIndex
	sys := s.NewSystem()
	s.AddToSystem(sys, 3)

	m := s.Members(sys)
	m[SlotFirstOut] = 99

	assert.Equal(t, Index(3), s.GetInSystem(sys, SlotFirstOut))
}
