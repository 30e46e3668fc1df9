package treatment

import "github.com/lukefi/metsi-go/stand"

// SoilPrepParams records the year, method and intensity of a
// soil-surface-preparation treatment, which is metadata-only (§4.3).
type SoilPrepParams struct {
	Year      int
	Method    string
	Intensity float64
}

// SoilSurfacePreparation stamps the stand's SoilPrepYear and records the
// method/intensity under the treatment's collected-data key.
func SoilSurfacePreparation(sp SoilPrepParams) Func {
	return func(p *stand.Payload, params map[string]any) error {
		p.Stand.SoilPrepYear = sp.Year
		p.Collected.Append("soil_surface_preparation", sp)
		return nil
	}
}
