package treatment

import (
	"github.com/lukefi/metsi-go/selection"
	"github.com/lukefi/metsi-go/stand"
)

// ajouratMaxProportion is the §4.3-derived cap on the second-stage thin
// that follows an 18%-flat strip-road removal: (0.5-0.18)/(1-0.18).
const ajouratMaxProportion = (0.5 - 0.18) / (1 - 0.18)

// AjouratDeclaration builds §4.3's "ajourat" strip-road removal: a fixed
// relative 18% of stems, flat profile.
func AjouratDeclaration() Declaration {
	return Declaration{
		HasTarget: true,
		Target:    selection.Target{Type: selection.TargetRelative, Amount: 0.18},
		Sets: []selection.SelectionSet{
			{
				Name:          "ajourat",
				Membership:    allTreesMembership,
				OrderVariable: "dbh",
				HasTarget:     true,
				TargetType:    selection.TargetRelative,
				TargetAmount:  0.18,
				ProfileX:      []float64{0, 1},
				ProfileY:      []float64{1, 1},
				ProfileXMode:  selection.ProfileXRelative,
				ProfileXScale: selection.ProfileXScaleSet,
				Mode:          selection.ScaleMultiply,
			},
		},
	}
}

// FirstThinningStripRoads sequences §4.3's two-stage first thinning:
// first the ajourat strip-road removal (flat 18%), then a stems-based
// thinning targeting stemsAfter, with the second stage's removal
// proportion capped at (0.5-0.18)/(1-0.18).
func FirstThinningStripRoads(stemsAfter float64) Func {
	return func(p *stand.Payload, params map[string]any) error {
		if err := thinStand("ajourat", p, AjouratDeclaration(), nil); err != nil {
			return err
		}

		metrics := stand.ComputeMetrics(p.Stand)
		rel := 0.0
		if metrics.StemsPerHa > 0 {
			rel = (metrics.StemsPerHa - stemsAfter) / metrics.StemsPerHa
		}
		if rel < 0 {
			rel = 0
		}
		if rel > ajouratMaxProportion {
			rel = ajouratMaxProportion
		}

		decl := DefaultFromBelowDeclaration(rel)
		return thinStand("thin_number_of_stems", p, decl, nil)
	}
}
