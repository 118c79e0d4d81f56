package trace

import (
	"testing"
)

func TestShowerTrace_RecordBranching_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for branchings
	st := NewShowerTrace(TraceConfig{Level: TraceLevelBranchings})

	// WHEN a branching record is recorded
	st.RecordBranching(BranchingRecord{Event: 3, Step: 1, Kind: "isr", System: 0, Scale: 42, Committed: true})

	// THEN the trace contains one record with correct data
	if len(st.Branchings) != 1 {
		t.Fatalf("expected 1 branching, got %d", len(st.Branchings))
	}
	if st.Branchings[0].Kind != "isr" {
		t.Errorf("expected kind isr, got %s", st.Branchings[0].Kind)
	}
	if !st.Branchings[0].Committed {
		t.Error("expected committed=true")
	}
}

func TestShowerTrace_Merge_KeepsOrder(t *testing.T) {
	a := NewShowerTrace(TraceConfig{Level: TraceLevelBranchings})
	b := NewShowerTrace(TraceConfig{Level: TraceLevelBranchings})
	a.RecordBranching(BranchingRecord{Event: 0, Kind: "mi"})
	b.RecordBranching(BranchingRecord{Event: 1, Kind: "fsr"})
	b.RecordVeto(VetoRecord{Event: 1, Reason: "hook"})

	a.Merge(b)
	a.Merge(nil)

	if len(a.Branchings) != 2 || a.Branchings[1].Kind != "fsr" {
		t.Errorf("unexpected branchings after merge: %+v", a.Branchings)
	}
	if len(a.Vetoes) != 1 {
		t.Errorf("expected 1 veto, got %d", len(a.Vetoes))
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"branchings", true},
		{"candidates", true},
		{"", true},
		{"decisions", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.want {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
	if (TraceConfig{}).Enabled() {
		t.Error("zero config must be disabled")
	}
}
