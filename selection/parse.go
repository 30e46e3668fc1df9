package selection

import "strings"

// ParseScalingMode normalizes a config-file scaling mode name to a
// ScalingMode. "odds_units" and "odds_trees" are accepted as aliases for
// the same mode, per the design note on ScaleOddsUnits.
func ParseScalingMode(s string) (ScalingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "odds_units", "odds_trees":
		return ScaleOddsUnits, nil
	case "odds_profile":
		return ScaleOddsProfile, nil
	case "scale":
		return ScaleMultiply, nil
	case "level":
		return ScaleLevel, nil
	default:
		return 0, ErrUnknownScalingMode
	}
}

// ParseTargetType normalizes a config-file target type name to a
// TargetType.
func ParseTargetType(s string) (TargetType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "absolute":
		return TargetAbsolute, nil
	case "relative":
		return TargetRelative, nil
	case "absolute_remain":
		return TargetAbsoluteRemain, nil
	case "relative_remain":
		return TargetRelativeRemain, nil
	default:
		return 0, ErrUnknownTargetType
	}
}

// ParseSelectFrom normalizes a config-file select_from name to a
// SelectFrom.
func ParseSelectFrom(s string) (SelectFrom, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SelectFromAll, nil
	case "remaining":
		return SelectFromRemaining, nil
	default:
		return 0, ErrUnknownScalingMode
	}
}

// ParseProfileXMode normalizes a config-file profile-x mode name.
func ParseProfileXMode(s string) (ProfileXMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute":
		return ProfileXAbsolute, nil
	case "relative":
		return ProfileXRelative, nil
	default:
		return 0, ErrUnknownScalingMode
	}
}

// ParseProfileXScale normalizes a config-file profile-x scale name.
func ParseProfileXScale(s string) (ProfileXScale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "set":
		return ProfileXScaleSet, nil
	case "all":
		return ProfileXScaleAll, nil
	default:
		return 0, ErrUnknownScalingMode
	}
}
