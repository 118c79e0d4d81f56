package trace

// TraceLevel controls the verbosity of branching tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelBranchings captures every winning candidate.
	TraceLevelBranchings TraceLevel = "branchings"
	// TraceLevelCandidates additionally captures the losing candidates' scales.
	TraceLevelCandidates TraceLevel = "candidates"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelBranchings: true,
	TraceLevelCandidates: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether anything is recorded.
func (c TraceConfig) Enabled() bool {
	return c.Level != TraceLevelNone && c.Level != ""
}

// ShowerTrace collects decision records over one or more events.
type ShowerTrace struct {
	Config     TraceConfig
	Branchings []BranchingRecord
	Vetoes     []VetoRecord
}

// NewShowerTrace creates a ShowerTrace ready for recording.
func NewShowerTrace(config TraceConfig) *ShowerTrace {
	return &ShowerTrace{
		Config:     config,
		Branchings: make([]BranchingRecord, 0),
		Vetoes:     make([]VetoRecord, 0),
	}
}

// RecordBranching appends a branching record.
func (st *ShowerTrace) RecordBranching(record BranchingRecord) {
	st.Branchings = append(st.Branchings, record)
}

// RecordVeto appends a veto record.
func (st *ShowerTrace) RecordVeto(record VetoRecord) {
	st.Vetoes = append(st.Vetoes, record)
}

// Merge appends all records of other. Used to combine per-worker traces.
func (st *ShowerTrace) Merge(other *ShowerTrace) {
	if other == nil {
		return
	}
	st.Branchings = append(st.Branchings, other.Branchings...)
	st.Vetoes = append(st.Vetoes, other.Vetoes...)
}
