// Tracks run-wide event statistics such as branchings per event,
// rejection counts and final-state multiplicity.

package shower

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/partonsim/partonsim/shower/event"
)

// Metrics aggregates statistics about generated events for final
// reporting. One instance per Generator; merge them for a parallel run.
type Metrics struct {
	AcceptedEvents   int // events returned by Next
	RejectedAttempts int // attempts dropped by ErrEventRejected
	VetoedAttempts   int // attempts dropped by a hook veto
	FailedChecks     int // attempts dropped by CheckEvent
	CommitFailures   int // failed commits over accepted events

	MIPerEvent   []float64 // committed MI per accepted event
	ISRPerEvent  []float64
	FSRPerEvent  []float64
	Multiplicity []float64 // final-state lines per accepted event
	FirstScale   []float64 // scale of the first committed branching, when any
}

// NewMetrics returns empty metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// AddEvent records one accepted event.
func (m *Metrics) AddEvent(res Result, ev *event.Record) {
	m.AcceptedEvents++
	m.CommitFailures += res.CommitFailures
	m.MIPerEvent = append(m.MIPerEvent, float64(res.Count(KindMI)))
	m.ISRPerEvent = append(m.ISRPerEvent, float64(res.Count(KindISR)))
	m.FSRPerEvent = append(m.FSRPerEvent, float64(res.Count(KindFSR)))
	m.Multiplicity = append(m.Multiplicity, float64(len(ev.FinalState())))
	if len(res.Scales) > 0 {
		m.FirstScale = append(m.FirstScale, res.Scales[0])
	}
}

// Merge adds the contents of other.
func (m *Metrics) Merge(other *Metrics) {
	m.AcceptedEvents += other.AcceptedEvents
	m.RejectedAttempts += other.RejectedAttempts
	m.VetoedAttempts += other.VetoedAttempts
	m.FailedChecks += other.FailedChecks
	m.CommitFailures += other.CommitFailures
	m.MIPerEvent = append(m.MIPerEvent, other.MIPerEvent...)
	m.ISRPerEvent = append(m.ISRPerEvent, other.ISRPerEvent...)
	m.FSRPerEvent = append(m.FSRPerEvent, other.FSRPerEvent...)
	m.Multiplicity = append(m.Multiplicity, other.Multiplicity...)
	m.FirstScale = append(m.FirstScale, other.FirstScale...)
}

// Print displays aggregated metrics at the end of the run.
func (m *Metrics) Print() {
	m.Fprint(os.Stdout)
}

// Fprint writes the report of Print to w.
func (m *Metrics) Fprint(w io.Writer) {
	fmt.Fprintln(w, "=== Shower Metrics ===")
	fmt.Fprintf(w, "Accepted Events      : %d\n", m.AcceptedEvents)
	fmt.Fprintf(w, "Rejected Attempts    : %d\n", m.RejectedAttempts)
	fmt.Fprintf(w, "Vetoed Attempts      : %d\n", m.VetoedAttempts)
	fmt.Fprintf(w, "Failed Checks        : %d\n", m.FailedChecks)
	fmt.Fprintf(w, "Commit Failures      : %d\n", m.CommitFailures)
	if m.AcceptedEvents == 0 {
		return
	}
	printStat(w, "MI per Event", m.MIPerEvent)
	printStat(w, "ISR per Event", m.ISRPerEvent)
	printStat(w, "FSR per Event", m.FSRPerEvent)
	printStat(w, "Multiplicity", m.Multiplicity)
	if len(m.FirstScale) > 0 {
		sorted := append([]float64(nil), m.FirstScale...)
		sort.Float64s(sorted)
		fmt.Fprintf(w, "Median First pT      : %.2f GeV\n", stat.Quantile(0.5, stat.Empirical, sorted, nil))
	}
}

func printStat(w io.Writer, label string, x []float64) {
	mean, std := stat.MeanStdDev(x, nil)
	if len(x) < 2 {
		std = 0
	}
	fmt.Fprintf(w, "%-21s: %.2f ± %.2f (max %.0f)\n", label, mean, std, floats.Max(x))
}
