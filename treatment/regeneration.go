package treatment

import "github.com/lukefi/metsi-go/stand"

// RegenerationParams declares one new stratum row.
type RegenerationParams struct {
	Identifier    string
	Species       stand.Species
	Origin        int32
	StemsPerHa    float64
	MeanHeight    float64
	MeanDiameter  float64
	BiologicalAge float64
	Sapling       bool
}

// Regeneration appends a new row to the strata store with rp's declared
// species, origin, stems/ha, mean height, mean diameter, biological age
// and sapling flag (§4.3).
func Regeneration(rp RegenerationParams) Func {
	return func(p *stand.Payload, params map[string]any) error {
		err := p.Stand.Strata.Append(map[string]any{
			"identifier":     rp.Identifier,
			"species":        int32(rp.Species),
			"mean_diameter":  rp.MeanDiameter,
			"mean_height":    rp.MeanHeight,
			"biological_age": rp.BiologicalAge,
			"stems_per_ha":   rp.StemsPerHa,
			"origin":         rp.Origin,
			"sapling":        rp.Sapling,
		})
		if err != nil {
			return err
		}
		p.Collected.Append("regeneration", rp)
		return nil
	}
}
