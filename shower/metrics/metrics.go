// Package metrics exposes Prometheus counters for shower evolution. All
// collectors live in a package registry so a run can dump them to a
// textfile without serving HTTP.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "partonsim"

// Registry holds every collector of this package.
var Registry = prometheus.NewRegistry()

var (
	branchingCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "branchings_total",
			Help:      "Count of committed branchings by mechanism (mi, isr, fsr).",
		},
		[]string{"kind"},
	)
	commitFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commit_failures_total",
			Help:      "Count of winning candidates whose commit failed a kinematic check.",
		},
		[]string{"kind"},
	)
	eventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Count of generated events by outcome (accepted, rejected, vetoed, failed).",
		},
		[]string{"status"},
	)
	scaleHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "branching_scale_gev",
			Help:      "Evolution scale of committed branchings in GeV.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 12),
		},
		[]string{"kind"},
	)
)

var registerMetrics sync.Once

// Register adds all collectors to Registry. Safe to call repeatedly.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(branchingCounter)
		Registry.MustRegister(commitFailureCounter)
		Registry.MustRegister(eventCounter)
		Registry.MustRegister(scaleHistogram)
	})
}

// RecordBranching counts one committed branching and its scale.
func RecordBranching(kind string, scale float64) {
	branchingCounter.WithLabelValues(kind).Inc()
	scaleHistogram.WithLabelValues(kind).Observe(scale)
}

// RecordCommitFailure counts one failed commit.
func RecordCommitFailure(kind string) {
	commitFailureCounter.WithLabelValues(kind).Inc()
}

// RecordEvent counts one finished event attempt.
func RecordEvent(status string) {
	eventCounter.WithLabelValues(status).Inc()
}

// WriteTextfile writes the registry in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
