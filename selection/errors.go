package selection

import "errors"

// Sentinel errors for the selection engine. See Select's doc comment for
// which call sites can surface which error.
var (
	ErrInvalidProfile          = errors.New("selection: profile y value outside [0,1]")
	ErrUnknownTargetType       = errors.New("selection: unknown target type")
	ErrUnknownScalingMode      = errors.New("selection: unknown scaling mode")
	ErrSelectionSearchDiverged = errors.New("selection: binary search produced NaN")
	ErrNegativeRemoval         = errors.New("selection: computed negative removal")
)
