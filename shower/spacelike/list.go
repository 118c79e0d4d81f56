package spacelike

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/beam"
)

var _ shower.Lister = (*Shower)(nil)

// List writes the registered systems with the beam entry of each incoming
// parton.
func (s *Shower) List(w io.Writer) error {
	if len(s.systems) == 0 {
		_, err := fmt.Fprintln(w, "no systems")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "sys\tpTmax\tbeam\tline\tid\tx\tclass\t")
	for _, sy := range s.systems {
		pTmax := math.Sqrt(sy.pT2Max)
		for _, side := range []beam.Side{beam.SideA, beam.SideB} {
			e, err := s.beams.Side(side).Entry(sy.sys)
			if err != nil {
				fmt.Fprintf(tw, "%d\t%.3f\t%s\t-\t-\t-\t-\t\n", sy.sys, pTmax, side)
				continue
			}
			fmt.Fprintf(tw, "%d\t%.3f\t%s\t%d\t%d\t%.5f\t%s\t\n",
				sy.sys, pTmax, side, e.Pos, e.ID, e.X, e.Class)
		}
	}
	return tw.Flush()
}
