package eventtree

import (
	"fmt"
	"os"
	"sort"

	"github.com/lukefi/metsi-go/guard"
	"github.com/lukefi/metsi-go/stand"
	"github.com/lukefi/metsi-go/treatment"
)

// Generator is one node in the declarative generator graph §4.5 builds
// into an explicit tree: Sequence, Alternatives, and Event are the three
// concrete generators.
type Generator interface {
	// build appends this generator's nodes onto each of parents at
	// time-point t, returning the tree's new frontier of leaf nodes.
	build(t int, parents []*Node) ([]*Node, error)
}

// EventSpec declares one treatment application: the treatment itself,
// its keyword parameters, any file-backed parameters (verified to exist
// on disk at build time), the guards to run around it, descriptive tags,
// and the collected-data keys it is expected to populate.
type EventSpec struct {
	Treatment          stand.TreatmentID
	Fn                 treatment.Func
	Parameters         map[string]any
	FileParameters     map[string]string // key -> filesystem path, expanded by the caller
	Preconditions      []GuardFactory
	Postconditions     []GuardFactory
	Tags               []string
	CollectedDataKinds []string
}

type eventGenerator struct{ spec EventSpec }

// Event builds a Generator that creates exactly one new child node per
// current parent, each wrapping a ProcessedTreatment per §4.5's Event
// step.
func Event(spec EventSpec) Generator {
	return &eventGenerator{spec: spec}
}

func (e *eventGenerator) build(t int, parents []*Node) ([]*Node, error) {
	for key := range e.spec.FileParameters {
		if _, ok := e.spec.Parameters[key]; ok {
			return nil, fmt.Errorf("eventtree: %s: %w", key, ErrParameterConflict)
		}
	}
	for key, path := range e.spec.FileParameters {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("eventtree: %s: %w", key, ErrFileNotFound)
		}
	}

	merged := make(map[string]any, len(e.spec.Parameters)+len(e.spec.FileParameters))
	for k, v := range e.spec.Parameters {
		merged[k] = v
	}
	for k, v := range e.spec.FileParameters {
		merged[k] = v
	}

	pt := &ProcessedTreatment{
		TimePoint:      t,
		TreatmentID:    e.spec.Treatment,
		Fn:             e.spec.Fn,
		Params:         merged,
		Preconditions:  resolveGuards(e.spec.Preconditions, t),
		Postconditions: resolveGuards(e.spec.Postconditions, t),
	}

	children := make([]*Node, len(parents))
	for i, parent := range parents {
		node := &Node{Treatment: pt}
		parent.Children = append(parent.Children, node)
		children[i] = node
	}
	return children, nil
}

// resolveGuards binds each GuardFactory to time-point t, producing the
// guard.Guard list a ProcessedTreatment built at this site actually runs.
func resolveGuards(factories []GuardFactory, t int) []guard.Guard {
	if len(factories) == 0 {
		return nil
	}
	guards := make([]guard.Guard, len(factories))
	for i, f := range factories {
		guards[i] = f(t)
	}
	return guards
}

type sequenceGenerator struct{ children []Generator }

// Sequence applies its children left to right: each child's leaves
// become the next child's parents.
func Sequence(children ...Generator) Generator {
	return &sequenceGenerator{children: children}
}

func (s *sequenceGenerator) build(t int, parents []*Node) ([]*Node, error) {
	frontier := parents
	for _, child := range s.children {
		next, err := child.build(t, frontier)
		if err != nil {
			return nil, err
		}
		frontier = next
	}
	return frontier, nil
}

type alternativesGenerator struct{ children []Generator }

// Alternatives applies each child independently to the same parent set;
// the union of resulting leaves, in declaration order, becomes the new
// frontier.
func Alternatives(children ...Generator) Generator {
	return &alternativesGenerator{children: children}
}

func (a *alternativesGenerator) build(t int, parents []*Node) ([]*Node, error) {
	var frontier []*Node
	for _, child := range a.children {
		leaves, err := child.build(t, parents)
		if err != nil {
			return nil, err
		}
		frontier = append(frontier, leaves...)
	}
	return frontier, nil
}

// Instruction pairs a sorted list of integer time-points with the
// generator expression to apply at each of them.
type Instruction struct {
	TimePoints []int
	Events     Generator
}

// Build compiles a list of simulation instructions into an explicit
// event tree, per §4.5: time-points across all instructions are merged
// into one sorted, de-duplicated axis; at each time-point, every
// instruction whose list contains it contributes its generator in
// declaration order, growing the tree from the current frontier. The
// returned root is the implicit identity node.
func Build(instructions []Instruction) (*Node, error) {
	root := &Node{}
	frontier := []*Node{root}

	for _, t := range unifiedTimeAxis(instructions) {
		for _, instr := range instructions {
			if !containsInt(instr.TimePoints, t) {
				continue
			}
			next, err := instr.Events.build(t, frontier)
			if err != nil {
				return nil, err
			}
			frontier = next
		}
	}
	return root, nil
}

func unifiedTimeAxis(instructions []Instruction) []int {
	seen := make(map[int]bool)
	var all []int
	for _, instr := range instructions {
		for _, t := range instr.TimePoints {
			if !seen[t] {
				seen[t] = true
				all = append(all, t)
			}
		}
	}
	sort.Ints(all)
	return all
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
