package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/trace"
)

func listEvent(w io.Writer, n int, ev *event.Record) error {
	if _, err := fmt.Fprintf(w, "=== Event %d ===\n", n); err != nil {
		return err
	}
	if err := ev.List(w); err != nil {
		return err
	}
	return ev.ListSystems(w)
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Branchings Traced    : %d\n", s.TotalBranchings)
	fmt.Fprintf(w, "Committed            : %d\n", s.CommittedCount)
	fmt.Fprintf(w, "Failed Commits       : %d\n", s.FailedCount)
	fmt.Fprintf(w, "Vetoes               : %d\n", s.VetoCount)
	fmt.Fprintf(w, "Mean Scale           : %.2f GeV\n", s.MeanScale)
	fmt.Fprintf(w, "Max Scale            : %.2f GeV\n", s.MaxScale)
	fmt.Fprintf(w, "Mean Margin          : %.2f GeV\n", s.MeanMargin)
	kinds := make([]string, 0, len(s.KindDistribution))
	for k := range s.KindDistribution {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-19s: %d\n", k, s.KindDistribution[k])
	}
}
