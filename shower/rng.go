package shower

import (
	"hash/fnv"
	"math/rand"
)

// === EventKey ===

// EventKey uniquely identifies the random history of one event. Two
// generators with the same configuration produce bit-for-bit identical
// events for the same EventKey, whatever worker or order they run in.
type EventKey int64

// NewEventKey derives the key of event n of a run started with seed.
func NewEventKey(seed int64, n int) EventKey {
	return EventKey(seed ^ int64(uint64(n+1)*0x9E3779B97F4A7C15))
}

// === Stream Constants ===

const (
	// StreamHard drives hard-process kinematics.
	StreamHard = "hard"
	// StreamMI drives multiple-interaction trials.
	StreamMI = "mi"
	// StreamISR drives space-like shower trials.
	StreamISR = "isr"
	// StreamFSR drives interleaved time-like shower trials.
	StreamFSR = "fsr"
	// StreamDecay drives resonance decay channels and angles.
	StreamDecay = "decay"
	// StreamDecayFSR drives the standalone showers of decay products.
	StreamDecayFSR = "decay-fsr"
	// StreamBeam drives valence/sea/companion classification.
	StreamBeam = "beam"
	// StreamRemnant drives the remnant builder.
	StreamRemnant = "remnant"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per stream.
//
// Derivation formula: eventKey XOR fnv1a64(streamName).
//
// Each component keeps the *rand.Rand of its stream for its whole life;
// Reseed re-keys every cached stream in place at event start, so drawing
// more numbers in one component never shifts another component's sequence.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key     EventKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from an EventKey.
func NewPartitionedRNG(key EventKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForStream returns a deterministically-seeded RNG for the named stream.
// The same name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForStream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.derive(name)))
	p.streams[name] = rng
	return rng
}

// Reseed switches every stream to key.
func (p *PartitionedRNG) Reseed(key EventKey) {
	p.key = key
	for name, rng := range p.streams {
		rng.Seed(p.derive(name))
	}
}

// Key returns the EventKey the streams are currently seeded from.
func (p *PartitionedRNG) Key() EventKey {
	return p.key
}

func (p *PartitionedRNG) derive(name string) int64 {
	return int64(p.key) ^ fnv1a64(name)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
