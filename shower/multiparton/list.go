package multiparton

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/partonsim/partonsim/shower"
)

var _ shower.Lister = (*Interactions)(nil)

// List writes the interaction window and the pending candidate, if any.
func (m *Interactions) List(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "pT0\t%.3f\n", math.Sqrt(m.pT02))
	fmt.Fprintf(tw, "pTmax\t%.3f\n", math.Sqrt(m.pT2Max))
	fmt.Fprintf(tw, "last system\t%d\n", m.selected)
	fmt.Fprintf(tw, "x left\tA %.5f  B %.5f\n", 1-m.beams.A.XSum(), 1-m.beams.B.XSum())
	if m.cand.valid {
		fmt.Fprintf(tw, "candidate\tpT %.3f  x1 %.5f  x2 %.5f\n", math.Sqrt(m.cand.pT2), m.cand.x1, m.cand.x2)
	} else {
		fmt.Fprintln(tw, "candidate\tnone")
	}
	return tw.Flush()
}
