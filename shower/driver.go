package shower

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/metrics"
	"github.com/partonsim/partonsim/shower/trace"
)

const tracerName = "github.com/partonsim/partonsim/shower"

// Components is the set of evolution components one driver interleaves.
// MI may be nil to switch multiple interactions off.
type Components struct {
	MI  MultipleInteractions
	ISR SpaceShower
	FSR TimeShower
}

// Result summarises one call of Evolve.
type Result struct {
	Kinds          []Kind    // kind of every committed branching, in order
	Scales         []float64 // scale of every committed branching, non-increasing
	CommitFailures int
}

// Count returns the number of committed branchings of kind k.
func (r Result) Count(k Kind) int {
	n := 0
	for _, kk := range r.Kinds {
		if kk == k {
			n++
		}
	}
	return n
}

// Driver interleaves MI, ISR and FSR into one sequence of decreasing pT.
//
// Thread-safety: NOT thread-safe. One Driver belongs to one Generator.
type Driver struct {
	cfg     Config
	comps   Components
	beams   *beam.Pair
	hooks   Hooks
	trace   *trace.ShowerTrace
	tracer  oteltrace.Tracer
	eventNo int
}

// DriverOption configures optional Driver collaborators.
type DriverOption func(*Driver)

// WithHooks installs user veto hooks.
func WithHooks(h Hooks) DriverOption {
	return func(d *Driver) { d.hooks = h }
}

// WithTrace records every winning candidate into st.
func WithTrace(st *trace.ShowerTrace) DriverOption {
	return func(d *Driver) { d.trace = st }
}

// NewDriver wires the components to the beams they share.
// Panics if ISR, FSR or beams are nil.
func NewDriver(cfg Config, comps Components, beams *beam.Pair, opts ...DriverOption) *Driver {
	if comps.ISR == nil || comps.FSR == nil {
		panic("Driver: ISR and FSR components are required")
	}
	if beams == nil {
		panic("Driver: beams must not be nil")
	}
	d := &Driver{
		cfg:    cfg,
		comps:  comps,
		beams:  beams,
		hooks:  NoHooks{},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) evolver(k Kind) Evolver {
	switch k {
	case KindMI:
		if d.comps.MI == nil {
			return nil
		}
		return d.comps.MI
	case KindISR:
		return d.comps.ISR
	case KindFSR:
		return d.comps.FSR
	}
	return nil
}

func (d *Driver) floor(k Kind) float64 {
	switch k {
	case KindMI:
		return d.cfg.MI.PTmin
	case KindISR:
		return d.cfg.ISR.PTmin
	default:
		return d.cfg.FSR.PTmin
	}
}

// prepare resets all components and registers the systems already in the
// record, normally just the hard system 0.
func (d *Driver) prepare(ev *event.Record) {
	d.comps.ISR.Reset()
	d.comps.FSR.Reset()
	if d.comps.MI != nil {
		d.comps.MI.Reset()
	}
	for s := 0; s < ev.SizeSystems(); s++ {
		sys := event.SysID(s)
		if ev.HasBeams(sys) {
			limit := true
			if sys == 0 {
				limit = d.comps.ISR.LimitMaxScale(ev)
			}
			d.comps.ISR.Prepare(sys, ev, limit)
			if sys == 0 && d.comps.MI != nil {
				d.comps.MI.Prepare(sys, ev)
			}
		}
		d.comps.FSR.Prepare(sys, ev)
	}
}

// afterCommit refreshes the components that did not win.
func (d *Driver) afterCommit(winner Kind, sys event.SysID, ev *event.Record) {
	switch winner {
	case KindMI:
		d.comps.ISR.Prepare(sys, ev, true)
		d.comps.FSR.Prepare(sys, ev)
	case KindISR:
		d.comps.FSR.Update(sys, ev)
		if d.comps.MI != nil {
			d.comps.MI.Update(sys, ev)
		}
	case KindFSR:
		d.comps.ISR.Update(sys, ev)
		if d.comps.MI != nil {
			d.comps.MI.Update(sys, ev)
		}
	}
}

// Evolve runs the interleaved evolution on a record that already holds the
// hard system. The ceiling starts at E_cm/2; every round asks each
// component for its next candidate below the ceiling and commits the
// largest, ties going to the kind listed first in ComponentPriority.
//
// A failed commit lowers the ceiling to the failed scale. More than
// MaxCommitFailures failures in a row reject the event (ErrEventRejected).
// A hook veto returns ErrEventVetoed; a broken subsystem table returns
// ErrInconsistentSubsystem. The returned Result is valid in all cases.
func (d *Driver) Evolve(ctx context.Context, ev *event.Record) (res Result, err error) {
	ctx, span := d.tracer.Start(ctx, "shower.Evolve",
		oteltrace.WithAttributes(attribute.Int("shower.event", d.eventNo)))
	defer func() {
		span.SetAttributes(
			attribute.Int("shower.branchings", len(res.Kinds)),
			attribute.Int("shower.commit_failures", res.CommitFailures),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	d.prepare(ev)
	ceiling := ev.ECM() / 2
	consecutiveFailures := 0
	ptChecked := !d.hooks.CanVetoPT()
	nISR, nFSR := 0, 0
	last := KindNone

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		best, bestScale := KindNone, 0.0
		var proposed [len(ComponentPriority)]float64
		for i, k := range ComponentPriority {
			comp := d.evolver(k)
			if comp == nil {
				continue
			}
			q := comp.NextCandidate(ev, ceiling, d.floor(k))
			proposed[i] = q
			// Strict > so the first kind in priority order wins ties.
			if q > bestScale {
				best, bestScale = k, q
			}
		}
		if best == KindNone {
			break
		}

		if !ptChecked && bestScale < d.hooks.ScaleVetoPT() {
			ptChecked = true
			if d.hooks.DoVetoPT(last, ev) {
				d.recordVeto(bestScale, "pT veto hook")
				return res, fmt.Errorf("event %d at pT %.3f: %w", d.eventNo, bestScale, ErrEventVetoed)
			}
		}

		comp := d.evolver(best)
		if !comp.Commit(ev) {
			res.CommitFailures++
			consecutiveFailures++
			metrics.RecordCommitFailure(best.String())
			d.recordBranching(len(res.Kinds)+res.CommitFailures, best, -1, bestScale, false, proposed)
			logrus.Debugf("event %d: %s commit failed at pT %.4f", d.eventNo, best, bestScale)
			ceiling = bestScale
			if consecutiveFailures > d.cfg.MaxCommitFailures {
				d.recordVeto(bestScale, "too many failed commits")
				return res, fmt.Errorf("event %d: %d consecutive commit failures: %w",
					d.eventNo, consecutiveFailures, ErrEventRejected)
			}
			continue
		}

		consecutiveFailures = 0
		ceiling = bestScale
		last = best
		sys := comp.SelectedSystem()
		res.Kinds = append(res.Kinds, best)
		res.Scales = append(res.Scales, bestScale)
		metrics.RecordBranching(best.String(), bestScale)
		d.recordBranching(len(res.Kinds)+res.CommitFailures, best, int(sys), bestScale, true, proposed)
		logrus.Debugf("event %d: %s branching in system %d at pT %.4f", d.eventNo, best, sys, bestScale)

		d.afterCommit(best, sys, ev)

		if d.cfg.CheckEachStep {
			if err := CheckSystems(ev); err != nil {
				return res, fmt.Errorf("event %d after %s step: %w", d.eventNo, best, err)
			}
		}

		if sys == 0 && (best == KindISR || best == KindFSR) && d.hooks.CanVetoStep() {
			if best == KindISR {
				nISR++
			} else {
				nFSR++
			}
			if nISR+nFSR <= d.hooks.NumberVetoStep() && d.hooks.DoVetoStep(best, nISR, nFSR, ev) {
				d.recordVeto(bestScale, "step veto hook")
				return res, fmt.Errorf("event %d after %s step %d: %w", d.eventNo, best, nISR+nFSR, ErrEventVetoed)
			}
		}
	}

	if !ptChecked && d.hooks.DoVetoPT(last, ev) {
		d.recordVeto(0, "pT veto hook")
		return res, fmt.Errorf("event %d at end of evolution: %w", d.eventNo, ErrEventVetoed)
	}

	if err := CheckSystems(ev); err != nil {
		return res, fmt.Errorf("event %d after evolution: %w", d.eventNo, err)
	}
	if err := CheckBeams(ev, d.beams, d.cfg.Tolerance); err != nil {
		logrus.Warnf("event %d: beam bookkeeping: %v", d.eventNo, err)
	}
	if err := CheckMomentumBalance(ev, d.cfg.Tolerance); err != nil {
		logrus.Warnf("event %d: %v", d.eventNo, err)
	}
	return res, nil
}

func (d *Driver) recordBranching(step int, k Kind, sys int, scale float64, committed bool, proposed [len(ComponentPriority)]float64) {
	if d.trace == nil || !d.trace.Config.Enabled() {
		return
	}
	rec := trace.BranchingRecord{
		Event:     d.eventNo,
		Step:      step,
		Kind:      k.String(),
		System:    sys,
		Scale:     scale,
		Committed: committed,
	}
	runnerUp := 0.0
	for i, q := range proposed {
		if ComponentPriority[i] == k {
			continue
		}
		if q > runnerUp {
			runnerUp = q
		}
		if d.trace.Config.Level == trace.TraceLevelCandidates && q > 0 {
			if rec.Competitors == nil {
				rec.Competitors = make(map[string]float64)
			}
			rec.Competitors[ComponentPriority[i].String()] = q
		}
	}
	rec.Margin = scale - runnerUp
	d.trace.RecordBranching(rec)
}

func (d *Driver) recordVeto(scale float64, reason string) {
	if d.trace == nil || !d.trace.Config.Enabled() {
		return
	}
	d.trace.RecordVeto(trace.VetoRecord{Event: d.eventNo, Scale: scale, Reason: reason})
}
