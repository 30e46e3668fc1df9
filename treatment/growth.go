package treatment

import "github.com/lukefi/metsi-go/stand"

// GrowthModel is the opaque external collaborator that advances a stand's
// tree population by one step (typically 5 years). The actual growth
// simulation logic is outside this module's scope (§1 non-goals);
// callers supply a concrete implementation.
type GrowthModel interface {
	Advance(unit *stand.ComputationalUnit, years int) error
}

// Grow advances the stand by years via model, then advances the stand's
// Year bookkeeping field by the same amount.
func Grow(model GrowthModel, years int) Func {
	return func(p *stand.Payload, params map[string]any) error {
		if err := model.Advance(p.Stand, years); err != nil {
			return err
		}
		p.Stand.Year += years
		p.Collected.Append("growth", years)
		return nil
	}
}
