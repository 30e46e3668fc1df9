package guard

import "github.com/lukefi/metsi-go/stand"

// Guard is a predicate over a payload. A non-nil return is always
// ErrConditionFailed (wrapped with context); any other error indicates a
// guard that could not even evaluate and should abort the run rather than
// prune a branch.
type Guard func(p *stand.Payload) error

// MinimumTimeInterval returns the canonical guard from §4.4: it clears iff
// treatment has never been applied in p's history, or currentTime minus
// the most recent application of treatment is >= delta.
//
// currentTime is the time-point the guard is checked at, since the
// payload itself does not carry a "now"; the event-tree builder binds it
// to the node's own time-point when it builds that node.
func MinimumTimeInterval(delta int, treatment stand.TreatmentID) func(currentTime int) Guard {
	return func(currentTime int) Guard {
		return func(p *stand.Payload) error {
			last, ok := p.LastApplication(treatment)
			if !ok {
				return nil
			}
			if currentTime-last.TimePoint >= delta {
				return nil
			}
			return ErrConditionFailed
		}
	}
}

// And composes guards into one that clears only if every guard clears,
// short-circuiting on the first failure.
func And(guards ...Guard) Guard {
	return func(p *stand.Payload) error {
		for _, g := range guards {
			if err := g(p); err != nil {
				return err
			}
		}
		return nil
	}
}

// Or composes guards into one that clears if any guard clears, returning
// the last guard's error if all fail.
func Or(guards ...Guard) Guard {
	return func(p *stand.Payload) error {
		var err error
		for _, g := range guards {
			if err = g(p); err == nil {
				return nil
			}
		}
		return err
	}
}

// Not inverts a guard: it clears iff g fails, and fails iff g clears.
func Not(g Guard) Guard {
	return func(p *stand.Payload) error {
		if g(p) == nil {
			return ErrConditionFailed
		}
		return nil
	}
}
