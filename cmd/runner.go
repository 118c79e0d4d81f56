package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/partonsim/partonsim/shower"
	"github.com/partonsim/partonsim/shower/particledata"
	"github.com/partonsim/partonsim/shower/store"
	"github.com/partonsim/partonsim/shower/trace"
)

// runOptions are the per-run settings that are not part of shower.Config.
type runOptions struct {
	Seed        int64
	Events      int
	Workers     int
	TraceLevel  trace.TraceLevel
	List        int       // print the first List events to Out
	ListShowers bool      // with each listed event, also print the component state
	Out         io.Writer // nil disables listing
	Store       *store.Store
	RunID       string
}

// runResult aggregates the outcome of all workers.
type runResult struct {
	Metrics *shower.Metrics
	Trace   *trace.ShowerTrace
}

// runEvents generates events 0..Events-1 on Workers goroutines, each with
// its own Generator. Worker w takes events w, w+Workers, ... Since event n
// is keyed by (Seed, n), the events do not depend on the worker count.
//
// An event that stays rejected after MaxTries is skipped with a warning;
// any other error stops the run.
func runEvents(ctx context.Context, cfg shower.Config, opts runOptions) (*runResult, error) {
	n := opts.Workers
	if n > opts.Events {
		n = opts.Events
	}
	if n < 1 {
		n = 1
	}
	table := particledata.Default()
	results := make([]runResult, n)
	var listMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < n; w++ {
		g.Go(func() error {
			st := trace.NewShowerTrace(trace.TraceConfig{Level: opts.TraceLevel})
			gen, err := shower.NewGenerator(cfg, opts.Seed, table, shower.WithTrace(st))
			if err != nil {
				return err
			}
			for i := w; i < opts.Events; i += n {
				ev, res, err := gen.Next(gctx, i)
				if errors.Is(err, shower.ErrEventRejected) {
					logrus.Warnf("worker %d: %v", w, err)
					continue
				}
				if err != nil {
					return fmt.Errorf("event %d: %w", i, err)
				}
				logrus.Debugf("event %d: %d MI, %d ISR, %d FSR", i,
					res.Count(shower.KindMI), res.Count(shower.KindISR), res.Count(shower.KindFSR))
				if opts.Store != nil {
					if err := opts.Store.SaveEvent(gctx, opts.RunID, i, ev); err != nil {
						return err
					}
				}
				if opts.Out != nil && i < opts.List {
					listMu.Lock()
					err := listEvent(opts.Out, i, ev)
					if err == nil && opts.ListShowers {
						err = gen.ListComponents(opts.Out)
					}
					listMu.Unlock()
					if err != nil {
						return err
					}
				}
			}
			results[w] = runResult{Metrics: gen.Metrics(), Trace: st}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &runResult{
		Metrics: shower.NewMetrics(),
		Trace:   trace.NewShowerTrace(trace.TraceConfig{Level: opts.TraceLevel}),
	}
	for _, r := range results {
		merged.Metrics.Merge(r.Metrics)
		merged.Trace.Merge(r.Trace)
	}
	if opts.Store != nil && merged.Trace.Config.Enabled() {
		if err := opts.Store.SaveTrace(ctx, opts.RunID, merged.Trace); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
