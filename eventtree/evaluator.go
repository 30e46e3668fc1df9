package eventtree

import (
	"errors"
	"fmt"

	"github.com/lukefi/metsi-go/guard"
	"github.com/lukefi/metsi-go/selection"
	"github.com/lukefi/metsi-go/stand"
)

// PersistFunc is the persistence sink's callback (§4.7): invoked once per
// visited node with the node's dash-joined path identifier and its
// post-treatment payload.
type PersistFunc func(path string, p *stand.Payload) error

// Evaluate walks root pre-order starting from payload, per §4.6, and
// returns every terminal payload in stable depth-first,
// Alternatives-declaration order. A ConditionFailed or numerical failure
// that reaches the root (no enclosing Alternatives node absorbed it)
// is returned as an error — that stand produced zero schedules, not a
// fatal error for the whole run; callers (the simulator driver) should
// treat it as an empty result, not crash.
func Evaluate(root *Node, payload *stand.Payload, persist PersistFunc) ([]*stand.Payload, error) {
	return evaluateNode(root, payload, "0", persist)
}

func evaluateNode(node *Node, p *stand.Payload, path string, persist PersistFunc) ([]*stand.Payload, error) {
	if node.Treatment != nil {
		if err := node.Treatment.apply(p); err != nil {
			return nil, err
		}
	}

	if persist != nil {
		if err := persist(path, p); err != nil {
			return nil, err
		}
	}
	p.Stand.Finalize()

	switch len(node.Children) {
	case 0:
		return []*stand.Payload{p}, nil
	case 1:
		return evaluateNode(node.Children[0], p, fmt.Sprintf("%s-%d", path, 0), persist)
	default:
		var results []*stand.Payload
		survived := 0
		for i, child := range node.Children {
			branchPayload := p.Fork()
			res, err := evaluateNode(child, branchPayload, fmt.Sprintf("%s-%d", path, i), persist)
			if err != nil {
				if isPruned(err) {
					continue
				}
				return nil, err
			}
			survived++
			results = append(results, res...)
		}
		if survived == 0 {
			return nil, ErrAllBranchesAborted
		}
		return results, nil
	}
}

// isPruned reports whether err is a branch-local failure the evaluator
// absorbs by discarding the branch (§7's guard-failure and numerical-
// failure taxonomy), as opposed to a declaration or environment error
// that should abort the whole run.
func isPruned(err error) bool {
	return errors.Is(err, guard.ErrConditionFailed) ||
		errors.Is(err, selection.ErrSelectionSearchDiverged) ||
		errors.Is(err, selection.ErrNegativeRemoval) ||
		errors.Is(err, ErrAllBranchesAborted)
}
