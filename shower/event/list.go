package event

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// List writes a human-readable table of all lines, intended for debugging.
func (r *Record) List(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "no\tid\tstatus\tmothers\tdaughters\tpx\tpy\tpz\te\tm\tscale\t")
	var sum Vec4
	for i, p := range r.entries {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%v\t%v\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			i, p.ID, p.Status, p.Mothers, p.Daughters,
			p.P.Px, p.P.Py, p.P.Pz, p.P.E, p.M, p.Scale)
		if p.IsFinal() {
			sum = sum.Add(p.P)
		}
	}
	fmt.Fprintf(tw, "sum\t\t\t\t\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\t\n",
		sum.Px, sum.Py, sum.Pz, sum.E, sum.M())
	return tw.Flush()
}

// ListSystems writes the slots of every subsystem.
func (r *Record) ListSystems(w io.Writer) error {
	if len(r.members) == 0 {
		_, err := fmt.Fprintln(w, "no systems defined")
		return err
	}
	for sys, m := range r.members {
		if _, err := fmt.Fprintf(w, "%5d  %v\n", sys, m); err != nil {
			return err
		}
	}
	return nil
}
