package eventtree

import (
	"github.com/lukefi/metsi-go/guard"
	"github.com/lukefi/metsi-go/stand"
	"github.com/lukefi/metsi-go/treatment"
)

// Node is one event-tree node: a processed-treatment (nil at the
// implicit root) plus its child branches. A node with exactly one child
// represents a straight-line sequence step; more than one child marks an
// Alternatives branch point.
type Node struct {
	Treatment *ProcessedTreatment
	Children  []*Node
}

// GuardFactory resolves a Guard bound to a specific evaluation
// time-point. It exists because the same Event generator can recur at
// several time-points across the unified time axis (an instruction whose
// time_points list has more than one entry) — a guard like
// minimum-time-interval-since-treatment needs to know which time-point
// it is being checked at, and that is only known once the builder
// reaches that particular build site. guard.MinimumTimeInterval already
// returns this shape.
type GuardFactory func(currentTime int) guard.Guard

// Static adapts a plain, time-independent Guard into a GuardFactory.
func Static(g guard.Guard) GuardFactory {
	return func(int) guard.Guard { return g }
}

// ProcessedTreatment is a parameter-captured, guard-wrapped, history-
// appending closure of one treatment at one time-point (§4.5's Event
// step d/e). Preconditions run before the treatment; postconditions run
// after; a history entry is appended only once both clear.
type ProcessedTreatment struct {
	TimePoint      int
	TreatmentID    stand.TreatmentID
	Fn             treatment.Func
	Params         map[string]any
	Preconditions  []guard.Guard
	Postconditions []guard.Guard
}

// apply runs the processed-treatment against p: preconditions, then the
// treatment itself, then postconditions, appending a history entry only
// on full success. The first failing guard or treatment error is
// returned unwrapped so the evaluator can classify it (ConditionFailed
// vs. a numerical or other failure).
func (pt *ProcessedTreatment) apply(p *stand.Payload) error {
	for _, g := range pt.Preconditions {
		if err := g(p); err != nil {
			return err
		}
	}
	if err := pt.Fn(p, pt.Params); err != nil {
		return err
	}
	for _, g := range pt.Postconditions {
		if err := g(p); err != nil {
			return err
		}
	}
	p.AppendHistory(pt.TimePoint, pt.TreatmentID, pt.Params)
	return nil
}
