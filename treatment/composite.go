package treatment

import "github.com/lukefi/metsi-go/stand"

// Compose chains treatments into one straight-line composition (e.g. a
// regeneration chain: mark-retention -> clearcut -> soil-prep -> plant).
// Composites are not special-cased by the event tree (§4.3): Compose just
// runs each step in order, stopping at the first error.
func Compose(steps ...Func) Func {
	return func(p *stand.Payload, params map[string]any) error {
		for _, step := range steps {
			if err := step(p, params); err != nil {
				return err
			}
		}
		return nil
	}
}
