package treatment

import (
	"github.com/lukefi/metsi-go/selection"
	"github.com/lukefi/metsi-go/stand"
)

// NonPreferredRatio resolves the conifer-priority non-preferred-species
// cap: either a fixed ratio, or derived from "leave at least
// minOtherBasalArea m^2/ha of other species" when minOtherBasalArea > 0,
// whichever is more conservative (§4.3).
func NonPreferredRatio(otherBasalArea, fixedRatio, minOtherBasalArea float64) float64 {
	if minOtherBasalArea <= 0 {
		return fixedRatio
	}
	if otherBasalArea <= 0 {
		return 0
	}
	rel := (otherBasalArea - minOtherBasalArea) / otherBasalArea
	if rel < 0 {
		rel = 0
	}
	if rel > 1 {
		rel = 1
	}
	if rel > fixedRatio {
		return fixedRatio
	}
	return rel
}

// tenBinFromBelowProfile builds the shared piecewise from-below profile
// §4.3 describes for conifer-priority thinning: ten equal bins over
// relative x (0..1), linearly decreasing from 1 to 0.
func tenBinFromBelowProfile() (x, y []float64) {
	x = make([]float64, 11)
	y = make([]float64, 11)
	for i := 0; i <= 10; i++ {
		xi := float64(i) / 10
		x[i] = xi
		y[i] = 1 - xi
	}
	return x, y
}

func speciesMembership(species int32) selection.MembershipFunc {
	return func(ctx any, data selection.DataBlock) []bool {
		mask := make([]bool, data.Len())
		trees, ok := ctx.(*stand.ReferenceTrees)
		if !ok {
			return mask
		}
		sp := trees.Species()
		for i := range mask {
			mask[i] = sp[i] == species
		}
		return mask
	}
}

func speciesNotMembership(species int32) selection.MembershipFunc {
	return func(ctx any, data selection.DataBlock) []bool {
		mask := make([]bool, data.Len())
		trees, ok := ctx.(*stand.ReferenceTrees)
		if !ok {
			return mask
		}
		sp := trees.Species()
		for i := range mask {
			mask[i] = sp[i] != species
		}
		return mask
	}
}

// ConiferPriorityThinningDeclaration builds the two-set declaration from
// §4.3: a non-preferred-species set capped at nonPreferredRatio (see
// NonPreferredRatio), and a preferred-species set taking the remainder.
// Both sets share the ten-bin from-below profile.
func ConiferPriorityThinningDeclaration(preferredSpecies int32, nonPreferredRatio, totalRelativeTarget float64) Declaration {
	px, py := tenBinFromBelowProfile()

	nonPreferred := selection.SelectionSet{
		Name:           "non_preferred",
		Membership:     speciesNotMembership(preferredSpecies),
		OrderVariable:  "dbh",
		TargetVariable: "basal_area",
		HasTarget:      true,
		TargetType:     selection.TargetRelative,
		TargetAmount:   nonPreferredRatio,
		ProfileX:       append([]float64(nil), px...),
		ProfileY:       append([]float64(nil), py...),
		ProfileXMode:   selection.ProfileXRelative,
		ProfileXScale:  selection.ProfileXScaleSet,
		Mode:           selection.ScaleLevel,
	}
	preferred := selection.SelectionSet{
		Name:           "preferred",
		Membership:     speciesMembership(preferredSpecies),
		OrderVariable:  "dbh",
		TargetVariable: "basal_area",
		HasTarget:      true,
		TargetType:     selection.TargetRelative,
		TargetAmount:   1.0,
		ProfileX:       append([]float64(nil), px...),
		ProfileY:       append([]float64(nil), py...),
		ProfileXMode:   selection.ProfileXRelative,
		ProfileXScale:  selection.ProfileXScaleSet,
		Mode:           selection.ScaleOddsUnits,
	}

	return Declaration{
		HasTarget: true,
		Target:    selection.Target{Type: selection.TargetRelative, Variable: "basal_area", Amount: totalRelativeTarget},
		Sets:      []selection.SelectionSet{nonPreferred, preferred},
	}
}

// ConiferPriorityThinning is the ready-to-run treatment built from
// ConiferPriorityThinningDeclaration.
func ConiferPriorityThinning(preferredSpecies int32, nonPreferredRatio, totalRelativeTarget float64) Func {
	return ThinBasalArea(ConiferPriorityThinningDeclaration(preferredSpecies, nonPreferredRatio, totalRelativeTarget))
}
