package shower

import (
	"errors"
	"fmt"
	"math"

	"github.com/partonsim/partonsim/shower/beam"
	"github.com/partonsim/partonsim/shower/event"
	"github.com/partonsim/partonsim/shower/particledata"
)

// CheckSystems verifies the subsystem table against the record: every slot
// addresses a current line, no line sits in two systems, and every active
// parton produced by an interaction belongs to some system. A violation
// wraps ErrInconsistentSubsystem.
func CheckSystems(ev *event.Record) error {
	owner := make(map[event.Index]event.SysID)
	for s := 0; s < ev.SizeSystems(); s++ {
		sys := event.SysID(s)
		for slot, pos := range ev.Members(sys) {
			if pos == event.None {
				if slot >= event.SlotFirstOut {
					return fmt.Errorf("system %d slot %d is empty: %w", sys, slot, ErrInconsistentSubsystem)
				}
				continue
			}
			if !ev.Valid(pos) {
				return fmt.Errorf("system %d slot %d points to %d, record has %d lines: %w",
					sys, slot, pos, ev.Size(), ErrInconsistentSubsystem)
			}
			if p := ev.At(pos); !p.IsActive() && !isDecayedResonance(p, slot) {
				return fmt.Errorf("system %d slot %d holds replaced line %d (status %d): %w",
					sys, slot, pos, p.Status, ErrInconsistentSubsystem)
			}
			if other, dup := owner[pos]; dup {
				return fmt.Errorf("line %d is in systems %d and %d: %w", pos, other, sys, ErrInconsistentSubsystem)
			}
			owner[pos] = sys
		}
	}
	for i := event.BeamB + 1; int(i) < ev.Size(); i++ {
		p := ev.At(i)
		if !p.IsActive() || p.StatusAbs() == event.StatusRemnant {
			continue
		}
		if _, ok := owner[i]; !ok {
			return fmt.Errorf("active line %d (id %d, status %d) belongs to no system: %w",
				i, p.ID, p.Status, ErrInconsistentSubsystem)
		}
	}
	return nil
}

// A resonance stays in its production system after it decayed.
func isDecayedResonance(p *event.Particle, slot int) bool {
	return slot >= event.SlotFirstOut && p.Status == -event.StatusResonance && len(p.Daughters) > 0
}

// CheckCopyLinks verifies that every replaced line has daughters and that
// every mother/daughter link is listed on both sides.
func CheckCopyLinks(ev *event.Record) error {
	for i := event.None; int(i) < ev.Size(); i++ {
		p := ev.At(i)
		if p.Status < 0 && len(p.Daughters) == 0 {
			return fmt.Errorf("replaced line %d (status %d) has no daughters", i, p.Status)
		}
		for _, d := range p.Daughters {
			if !ev.Valid(d) || !ev.IsLinked(i, d) {
				return fmt.Errorf("line %d lists daughter %d which does not list it as mother", i, d)
			}
		}
		for _, m := range p.Mothers {
			if i <= event.BeamB && m == event.None {
				continue
			}
			if !ev.Valid(m) || !ev.IsLinked(m, i) {
				return fmt.Errorf("line %d lists mother %d which does not list it as daughter", i, m)
			}
		}
	}
	return nil
}

// CheckBeams verifies the x bookkeeping of both beams: the x sum stays below
// one and every entry's x equals 2E/E_cm of the line it points to.
func CheckBeams(ev *event.Record, beams *beam.Pair, tol float64) error {
	var errs []error
	for _, st := range []*beam.State{beams.A, beams.B} {
		if sum := st.XSum(); sum > 1+tol {
			errs = append(errs, fmt.Errorf("beam %d: x sum %.6f exceeds 1", st.Side(), sum))
		}
		for i := 0; i < st.Size(); i++ {
			e := st.At(i)
			if !ev.Valid(e.Pos) {
				errs = append(errs, fmt.Errorf("beam %d entry %d points to missing line %d", st.Side(), i, e.Pos))
				continue
			}
			xRec := 2 * ev.At(e.Pos).P.E / ev.ECM()
			if math.Abs(xRec-e.X) > tol*math.Max(1, e.X) {
				errs = append(errs, fmt.Errorf("beam %d entry %d: x %.8f but line %d has 2E/ecm %.8f",
					st.Side(), i, e.X, e.Pos, xRec))
			}
			if e.Sys == beam.NoSystem {
				continue
			}
			if e.Sys < 0 || int(e.Sys) >= ev.SizeSystems() {
				errs = append(errs, fmt.Errorf("beam %d entry %d: system %d not in record (%d systems)",
					st.Side(), i, e.Sys, ev.SizeSystems()))
				continue
			}
			if slot := int(st.Side()); ev.GetInSystem(e.Sys, slot) != e.Pos {
				errs = append(errs, fmt.Errorf("beam %d entry %d: line %d is not the incoming parton of system %d",
					st.Side(), i, e.Pos, e.Sys))
			}
		}
	}
	return errors.Join(errs...)
}

// CheckMomentumBalance compares, for every system with two incoming
// partons, the incoming and outgoing four-momentum sums.
func CheckMomentumBalance(ev *event.Record, tol float64) error {
	var errs []error
	for s := 0; s < ev.SizeSystems(); s++ {
		sys := event.SysID(s)
		if ev.SizeSystem(sys) < event.SlotFirstOut {
			errs = append(errs, fmt.Errorf("system %d: %d slots, incoming slots missing", sys, ev.SizeSystem(sys)))
			continue
		}
		inA, inB := ev.GetInSystem(sys, event.SlotInA), ev.GetInSystem(sys, event.SlotInB)
		if inA == event.None || inB == event.None {
			continue
		}
		if !ev.Valid(inA) || !ev.Valid(inB) {
			errs = append(errs, fmt.Errorf("system %d: incoming line %d or %d not in record", sys, inA, inB))
			continue
		}
		in := ev.At(inA).P.Add(ev.At(inB).P)
		var out event.Vec4
		bad := false
		for _, pos := range ev.Outgoing(sys) {
			if pos == event.None || !ev.Valid(pos) {
				errs = append(errs, fmt.Errorf("system %d: outgoing slot points to %d, not a parton line", sys, pos))
				bad = true
				break
			}
			out = out.Add(ev.At(pos).P)
		}
		if bad {
			continue
		}
		if d := in.Sub(out).AbsSum(); d > tol*ev.ECM() {
			errs = append(errs, fmt.Errorf("system %d: momentum imbalance %.3g GeV", sys, d))
		}
	}
	return errors.Join(errs...)
}

// CheckEvent is the complete post-generation check: known particle codes,
// finite momenta, link consistency and overall energy-momentum and charge
// conservation against the beams. Violations wrap ErrConservation.
func CheckEvent(ev *event.Record, table *particledata.Table, tol float64) error {
	var errs []error
	var sum event.Vec4
	charge3 := 0
	for i := event.None; int(i) < ev.Size(); i++ {
		p := ev.At(i)
		if !table.IsKnown(p.ID) {
			errs = append(errs, fmt.Errorf("line %d: unknown particle id %d", i, p.ID))
		}
		if p.P.IsNaN() || math.IsNaN(p.M) {
			errs = append(errs, fmt.Errorf("line %d: momentum is not a number", i))
		}
		if p.IsFinal() {
			sum = sum.Add(p.P)
			charge3 += table.Charge3(p.ID)
		}
	}
	beams := ev.At(event.BeamA).P.Add(ev.At(event.BeamB).P)
	if d := beams.Sub(sum).AbsSum(); d > tol*ev.ECM() {
		errs = append(errs, fmt.Errorf("energy-momentum not conserved: deviation %.3g GeV", d))
	}
	if want := table.Charge3(ev.At(event.BeamA).ID) + table.Charge3(ev.At(event.BeamB).ID); charge3 != want {
		errs = append(errs, fmt.Errorf("charge not conserved: final state %d/3, beams %d/3", charge3, want))
	}
	if err := CheckCopyLinks(ev); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrConservation, err)
	}
	return nil
}
