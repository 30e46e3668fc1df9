package treatment

import "github.com/lukefi/metsi-go/stand"

// LowerLimitSource resolves a basal-area lower limit for a stand and its
// dominant species, from an external per-(region, soil, site,
// dominant-height-bin, species) lookup table. The limits package
// supplies the concrete implementation; treatment depends only on this
// interface to avoid importing it directly.
type LowerLimitSource interface {
	BasalAreaLowerLimit(unit *stand.ComputationalUnit, dominantSpecies int32) (float64, error)
}

// DeriveBasalAreaRelativeTarget implements §4.3's basal-area thinning
// target derivation: rel = clamp((G_now - gAfterLowerLimit)/G_now, 0, 1),
// optionally further capped by maxProportion (<=0 means uncapped).
func DeriveBasalAreaRelativeTarget(gNow, gAfterLowerLimit, maxProportion float64) float64 {
	if gNow <= 0 {
		return 0
	}
	rel := (gNow - gAfterLowerLimit) / gNow
	if rel < 0 {
		rel = 0
	}
	if rel > 1 {
		rel = 1
	}
	if maxProportion > 0 && rel > maxProportion {
		rel = maxProportion
	}
	return rel
}
