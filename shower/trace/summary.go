package trace

// TraceSummary aggregates statistics from a ShowerTrace.
type TraceSummary struct {
	TotalBranchings  int
	CommittedCount   int
	FailedCount      int
	VetoCount        int
	MeanScale        float64 // over committed branchings
	MaxScale         float64
	MeanMargin       float64
	KindDistribution map[string]int // kind → committed branchings
}

// Summarize computes aggregate statistics from a ShowerTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *ShowerTrace) *TraceSummary {
	summary := &TraceSummary{
		KindDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalBranchings = len(st.Branchings)
	summary.VetoCount = len(st.Vetoes)
	totalScale, totalMargin := 0.0, 0.0
	for _, b := range st.Branchings {
		if !b.Committed {
			summary.FailedCount++
			continue
		}
		summary.CommittedCount++
		summary.KindDistribution[b.Kind]++
		totalScale += b.Scale
		totalMargin += b.Margin
		if b.Scale > summary.MaxScale {
			summary.MaxScale = b.Scale
		}
	}
	if summary.CommittedCount > 0 {
		summary.MeanScale = totalScale / float64(summary.CommittedCount)
		summary.MeanMargin = totalMargin / float64(summary.CommittedCount)
	}

	return summary
}
