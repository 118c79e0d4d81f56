package timelike

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/partonsim/partonsim/shower"
)

var _ shower.Lister = (*Shower)(nil)

// List writes one row per dipole end: radiator, recoiler, dipole mass and
// the scale the radiator starts from.
func (s *Shower) List(w io.Writer) error {
	if len(s.dipoles) == 0 {
		_, err := fmt.Fprintln(w, "no dipole ends")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "end\tsys\trad\trec\trecoiler\tm\tpTmax\t")
	for i, d := range s.dipoles {
		kind := "final"
		if d.initial {
			kind = "beam " + d.side.String()
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t%.3f\t%.3f\t\n",
			i, d.sys, d.rad, d.rec, kind, math.Sqrt(d.m2), math.Sqrt(d.pT2Max))
	}
	return tw.Flush()
}
