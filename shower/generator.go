package shower

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/metrics"
	"github.com/partonsim/partonsim/shower/particledata"
)

// Generator produces complete events: hard process, interleaved
// evolution, beam remnants and resonance decays. It owns one record, one
// beam pair, one set of components and one driver, so independent
// generators can run on separate goroutines.
//
// Thread-safety: NOT thread-safe.
type Generator struct {
	cfg   Config
	seed  int64
	table *particledata.Table
	rng   *PartitionedRNG

	ev          *event.Record
	beams       *beam.Pair
	hard        HardProcess
	remnants    RemnantBuilder
	decayer     Decayer
	decayShower TimeShower
	driver      *Driver
	metrics     *Metrics
}

// NewGenerator validates cfg and builds all components through the
// registered factories. Panics if a factory is not registered; import
// shower/defaults to register the built-in components.
func NewGenerator(cfg Config, seed int64, table *particledata.Table, opts ...DriverOption) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if table == nil {
		panic("Generator: particle table must not be nil")
	}
	if NewTimeShowerFunc == nil || NewSpaceShowerFunc == nil || NewMultipleInteractionsFunc == nil ||
		NewHardProcessFunc == nil || NewRemnantBuilderFunc == nil || NewDecayerFunc == nil {
		panic("Generator: component factories not registered; import github.com/partonsim/partonsim/shower/defaults")
	}

	rng := NewPartitionedRNG(NewEventKey(seed, 0))
	beams := beam.NewPair(cfg.BeamA, cfg.BeamB, cfg.ECM,
		beam.NewToyProton(cfg.BeamA), beam.NewToyProton(cfg.BeamB), rng.ForStream(StreamBeam))

	hard, err := NewHardProcessFunc(cfg, table, rng.ForStream(StreamHard))
	if err != nil {
		return nil, fmt.Errorf("hard process: %w", err)
	}
	comps := Components{
		ISR: NewSpaceShowerFunc(cfg, table, beams, rng.ForStream(StreamISR)),
		FSR: NewTimeShowerFunc(cfg, table, beam.Coupled(beams), rng.ForStream(StreamFSR)),
	}
	if cfg.MI.Enabled {
		comps.MI = NewMultipleInteractionsFunc(cfg, table, beams, rng.ForStream(StreamMI))
	}

	return &Generator{
		cfg:         cfg,
		seed:        seed,
		table:       table,
		rng:         rng,
		ev:          event.New(cfg.ECM, cfg.BeamA, cfg.BeamB),
		beams:       beams,
		hard:        hard,
		remnants:    NewRemnantBuilderFunc(cfg, table, rng.ForStream(StreamRemnant)),
		decayer:     NewDecayerFunc(cfg, table, rng.ForStream(StreamDecay)),
		decayShower: NewTimeShowerFunc(cfg, table, beam.Decoupled(), rng.ForStream(StreamDecayFSR)),
		driver:      NewDriver(cfg, comps, beams, opts...),
		metrics:     NewMetrics(),
	}, nil
}

// Metrics returns the statistics of all events generated so far.
func (g *Generator) Metrics() *Metrics {
	return g.metrics
}

// ListComponents writes the state the evolution components hold after the
// last event, in priority order. Components that are not a Lister are
// skipped.
func (g *Generator) ListComponents(w io.Writer) error {
	for _, k := range ComponentPriority {
		l, ok := g.driver.evolver(k).(Lister)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "--- %s ---\n", k); err != nil {
			return err
		}
		if err := l.List(w); err != nil {
			return err
		}
	}
	return nil
}

// Beams returns the beam pair of the current event.
func (g *Generator) Beams() *beam.Pair {
	return g.beams
}

// Next generates event n. The random streams are re-keyed from the run
// seed and n, so the result does not depend on which events ran before.
// Rejected or vetoed attempts are retried up to MaxTries times.
//
// The returned record is owned by the generator and is overwritten by the
// next call.
func (g *Generator) Next(ctx context.Context, n int) (*event.Record, Result, error) {
	g.rng.Reseed(NewEventKey(g.seed, n))
	g.driver.eventNo = n

	var res Result
	for try := 0; try < g.cfg.MaxTries; try++ {
		var err error
		res, err = g.attempt(ctx)
		switch {
		case err == nil:
			metrics.RecordEvent("accepted")
			g.metrics.AddEvent(res, g.ev)
			return g.ev, res, nil
		case errors.Is(err, ErrEventRejected):
			metrics.RecordEvent("rejected")
			g.metrics.RejectedAttempts++
		case errors.Is(err, ErrEventVetoed):
			metrics.RecordEvent("vetoed")
			g.metrics.VetoedAttempts++
		case errors.Is(err, ErrConservation):
			metrics.RecordEvent("failed")
			g.metrics.FailedChecks++
			logrus.Warnf("event %d try %d: %v", n, try, err)
		default:
			metrics.RecordEvent("failed")
			return nil, res, err
		}
		logrus.Debugf("event %d try %d dropped: %v", n, try, err)
	}
	return nil, res, fmt.Errorf("event %d: no valid event after %d tries: %w", n, g.cfg.MaxTries, ErrEventRejected)
}

func (g *Generator) attempt(ctx context.Context) (Result, error) {
	g.ev.Clear()
	g.beams.Clear()
	if err := g.hard.Generate(g.ev, g.beams); err != nil {
		return Result{}, fmt.Errorf("hard process %s: %w", g.hard.Name(), err)
	}
	res, err := g.driver.Evolve(ctx, g.ev)
	if err != nil {
		return res, err
	}
	if err := g.remnants.Build(g.ev, g.beams); err != nil {
		return res, fmt.Errorf("beam remnants: %w", err)
	}
	if g.cfg.DecayResonances {
		if _, err := g.decayer.DecayResonances(g.ev, g.decayShower); err != nil {
			return res, fmt.Errorf("resonance decays: %w", err)
		}
	}
	if g.cfg.CheckEvent {
		if err := CheckEvent(g.ev, g.table, g.cfg.Tolerance); err != nil {
			return res, err
		}
	}
	return res, nil
}
