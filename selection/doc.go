// Package selection implements the vectorized tree-selection engine (the
// simulation core's numerical heart): given a population's per-row
// attributes, an ordered list of profile-based SelectionSets, and a global
// Target, it computes per-row removal/marking quantities by iteratively
// adjusting a piecewise-linear profile via binary search until the global
// and per-set targets are simultaneously met within tolerance.
//
// The algorithm is ported line-for-line (in spirit, not in syntax) from
// the forestry engine's select_units routine: target computation by
// target Type, profile-to-segment derivation, per-row share assignment by
// half-open interval lookup, and the four ScalingMode binary-search
// adjustments (odds-profile, odds-units, scale, level).
//
// Errors:
//
//	ErrInvalidProfile        a SelectionSet's profile Y values fall outside [0,1]
//	ErrUnknownTargetType     Target.Type or SelectionSet.TargetType is not recognized
//	ErrUnknownScalingMode    Mode is not one of the declared ScalingMode constants
//	ErrSelectionSearchDiverged a binary-search rescale produced NaN
//	ErrNegativeRemoval       computed units fell below zero
package selection
