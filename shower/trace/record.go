// Package trace records the decisions of the interleaved evolution loop for
// later analysis. It has no dependencies on shower/ and stores only
// plain data types.
package trace

// BranchingRecord captures one winning candidate and whether its commit succeeded.
type BranchingRecord struct {
	Event     int
	Step      int
	Kind      string // "mi", "isr" or "fsr"
	System    int    // system touched; -1 when the commit failed
	Scale     float64
	Committed bool
	// Competitors holds the scales proposed by the losing components
	// (nil unless the trace level is TraceLevelCandidates).
	Competitors map[string]float64
	// Margin is the winner's scale minus the best competing scale; 0 if none competed.
	Margin float64
}

// VetoRecord captures an event rejected by a user hook or by the failure limit.
type VetoRecord struct {
	Event  int
	Scale  float64
	Reason string
}
