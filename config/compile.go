package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lukefi/metsi-go/eventtree"
	"github.com/lukefi/metsi-go/guard"
	"github.com/lukefi/metsi-go/stand"
)

// CompileInstructions turns cfg.SimulationInstructions into the
// eventtree.Instruction list eventtree.Build expects, resolving every
// event node's treatment through registry and every condition string
// through parseGuardFactory.
func CompileInstructions(cfg *Config, registry *Registry) ([]eventtree.Instruction, error) {
	instructions := make([]eventtree.Instruction, len(cfg.SimulationInstructions))
	for i, raw := range cfg.SimulationInstructions {
		gen, err := compileGenerator(raw.Events, registry)
		if err != nil {
			return nil, errors.Wrapf(err, "config: instruction %d", i)
		}
		instructions[i] = eventtree.Instruction{TimePoints: raw.TimePoints, Events: gen}
	}
	return instructions, nil
}

func compileGenerator(raw RawGenerator, registry *Registry) (eventtree.Generator, error) {
	switch raw.Type {
	case "sequence":
		children, err := compileChildren(raw.Children, registry)
		if err != nil {
			return nil, err
		}
		return eventtree.Sequence(children...), nil
	case "alternatives":
		children, err := compileChildren(raw.Children, registry)
		if err != nil {
			return nil, err
		}
		return eventtree.Alternatives(children...), nil
	case "event", "":
		return compileEvent(raw, registry)
	default:
		return nil, errors.Wrapf(ErrUnknownGeneratorType, "got %q", raw.Type)
	}
}

func compileChildren(raw []RawGenerator, registry *Registry) ([]eventtree.Generator, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyGeneratorTree
	}
	children := make([]eventtree.Generator, len(raw))
	for i, child := range raw {
		gen, err := compileGenerator(child, registry)
		if err != nil {
			return nil, err
		}
		children[i] = gen
	}
	return children, nil
}

func compileEvent(raw RawGenerator, registry *Registry) (eventtree.Generator, error) {
	built, err := registry.build(raw.Treatment, raw.Parameters)
	if err != nil {
		return nil, errors.Wrapf(err, "treatment %q", raw.Treatment)
	}

	preconditions := make([]eventtree.GuardFactory, 0, len(raw.Conditions))
	for _, cond := range raw.Conditions {
		factory, err := parseGuardFactory(cond)
		if err != nil {
			return nil, errors.Wrapf(err, "condition %q", cond)
		}
		preconditions = append(preconditions, factory)
	}

	return eventtree.Event(eventtree.EventSpec{
		Treatment:      built.ID,
		Fn:             built.Fn,
		Parameters:     raw.Parameters,
		FileParameters: raw.FileParameters,
		Preconditions:  preconditions,
	}), nil
}

// parseGuardFactory parses one condition string into a GuardFactory. The
// only form this CLI recognizes is §4.4's minimum-time-interval guard:
//
//	min_interval:<delta>:<treatment-name>
//
// e.g. "min_interval:5:thin_basal_area". Richer condition expressions
// (arbitrary boolean predicates over stand state) are outside this
// adapter's scope, per spec.md §1's "CLI config loading details beyond
// what's needed to drive the core" non-goal; callers needing them build
// an eventtree.EventSpec directly instead of going through this DSL.
func parseGuardFactory(cond string) (eventtree.GuardFactory, error) {
	parts := strings.Split(cond, ":")
	if len(parts) != 3 || parts[0] != "min_interval" {
		return nil, ErrUnknownGuard
	}
	delta, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, errors.Wrap(ErrUnknownGuard, "delta is not an integer")
	}
	id, ok := treatmentIDByName(parts[2])
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGuard, "unknown treatment %q", parts[2])
	}
	return eventtree.GuardFactory(guard.MinimumTimeInterval(delta, id)), nil
}

func treatmentIDByName(name string) (stand.TreatmentID, bool) {
	for _, id := range []stand.TreatmentID{
		stand.TreatmentDoNothing,
		stand.TreatmentCut,
		stand.TreatmentThinBasalArea,
		stand.TreatmentThinNumberOfStems,
		stand.TreatmentMarkTrees,
		stand.TreatmentRegeneration,
		stand.TreatmentSoilSurfacePreparation,
		stand.TreatmentGrowth,
		stand.TreatmentAjourat,
	} {
		if id.String() == name {
			return id, true
		}
	}
	return 0, false
}
