package config

import "errors"

var (
	// ErrInvalidFormationStrategy means app_configuration.formation_strategy
	// was set to something other than "partial" or "full".
	ErrInvalidFormationStrategy = errors.New("config: formation_strategy must be \"partial\" or \"full\"")
	// ErrInvalidEvaluationStrategy means app_configuration.evaluation_strategy
	// was set to something other than "depth" or "breadth".
	ErrInvalidEvaluationStrategy = errors.New("config: evaluation_strategy must be \"depth\" or \"breadth\"")
	// ErrUnknownRunMode means a run_modes entry was not one of the five
	// recognized stage names.
	ErrUnknownRunMode = errors.New("config: unrecognized run mode")
	// ErrUnknownGeneratorType means a generator node's type field was not
	// "event", "sequence" or "alternatives".
	ErrUnknownGeneratorType = errors.New("config: unrecognized generator type")
	// ErrUnknownTreatment means a generator event named a treatment not
	// present in the Registry.
	ErrUnknownTreatment = errors.New("config: unrecognized treatment name")
	// ErrUnknownGuard means a condition string did not match any guard
	// factory this package knows how to parse.
	ErrUnknownGuard = errors.New("config: unrecognized condition expression")
	// ErrEmptyGeneratorTree means a "sequence" or "alternatives" generator
	// node declared no children.
	ErrEmptyGeneratorTree = errors.New("config: instruction has no events")
)

var validRunModes = map[string]bool{
	"preprocess":    true,
	"export-prepro": true,
	"simulate":      true,
	"postprocess":   true,
	"export":        true,
}
