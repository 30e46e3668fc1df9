package config

import (
	"github.com/lukefi/metsi-go/stand"
	"github.com/lukefi/metsi-go/treatment"
)

// builtTreatment is what a Registry entry resolves a RawGenerator event
// node to: the TreatmentID an eventtree.EventSpec carries for history and
// guard bookkeeping, and the Func the event actually applies.
type builtTreatment struct {
	ID stand.TreatmentID
	Fn treatment.Func
}

// treatmentBuilder constructs a builtTreatment from one event node's
// decoded parameters.
type treatmentBuilder func(params map[string]any) (builtTreatment, error)

// Registry maps control-file treatment names to concrete treatment.Func
// constructors. DefaultRegistry covers every treatment the treatment
// package exports; GrowthModel-backed "grow" is registered separately via
// WithGrowthModel since it needs a caller-supplied collaborator (§1
// non-goals: growth models are opaque).
type Registry struct {
	builders map[string]treatmentBuilder
}

// DefaultRegistry builds a Registry with every treatment.Func constructor
// that needs no external collaborator wired in under its control-file
// name.
func DefaultRegistry() *Registry {
	r := &Registry{builders: make(map[string]treatmentBuilder)}

	r.builders["do_nothing"] = func(params map[string]any) (builtTreatment, error) {
		return builtTreatment{ID: stand.TreatmentDoNothing, Fn: treatment.DoNothing}, nil
	}
	r.builders["cut"] = func(params map[string]any) (builtTreatment, error) {
		rel := floatParam(params, "relative_amount", 1.0)
		return builtTreatment{ID: stand.TreatmentCut, Fn: treatment.Cut(treatment.DefaultFromBelowDeclaration(rel))}, nil
	}
	r.builders["thin_basal_area"] = func(params map[string]any) (builtTreatment, error) {
		rel := floatParam(params, "relative_amount", 0.3)
		return builtTreatment{ID: stand.TreatmentThinBasalArea, Fn: treatment.ThinBasalArea(treatment.DefaultFromBelowDeclaration(rel))}, nil
	}
	r.builders["thin_number_of_stems"] = func(params map[string]any) (builtTreatment, error) {
		rel := floatParam(params, "relative_amount", 0.3)
		return builtTreatment{ID: stand.TreatmentThinNumberOfStems, Fn: treatment.ThinNumberOfStems(treatment.DefaultFromBelowDeclaration(rel))}, nil
	}
	r.builders["mark_trees"] = func(params map[string]any) (builtTreatment, error) {
		rel := floatParam(params, "relative_amount", 0.3)
		override := mapParam(params, "mark_override")
		return builtTreatment{ID: stand.TreatmentMarkTrees, Fn: treatment.MarkTrees(treatment.DefaultFromBelowDeclaration(rel), override)}, nil
	}
	r.builders["regeneration"] = func(params map[string]any) (builtTreatment, error) {
		rp := treatment.RegenerationParams{
			Identifier:    stringParam(params, "identifier", ""),
			Species:       stand.Species(intParam(params, "species", int(stand.SpeciesPine))),
			Origin:        int32(intParam(params, "origin", 0)),
			StemsPerHa:    floatParam(params, "stems_per_ha", 0),
			MeanHeight:    floatParam(params, "mean_height", 0),
			MeanDiameter:  floatParam(params, "mean_diameter", 0),
			BiologicalAge: floatParam(params, "biological_age", 0),
			Sapling:       boolParam(params, "sapling", true),
		}
		return builtTreatment{ID: stand.TreatmentRegeneration, Fn: treatment.Regeneration(rp)}, nil
	}
	r.builders["soil_surface_preparation"] = func(params map[string]any) (builtTreatment, error) {
		sp := treatment.SoilPrepParams{
			Year:      intParam(params, "year", 0),
			Method:    stringParam(params, "method", ""),
			Intensity: floatParam(params, "intensity", 0),
		}
		return builtTreatment{ID: stand.TreatmentSoilSurfacePreparation, Fn: treatment.SoilSurfacePreparation(sp)}, nil
	}
	r.builders["conifer_priority_thinning"] = func(params map[string]any) (builtTreatment, error) {
		preferred := int32(intParam(params, "preferred_species", int(stand.SpeciesPine)))
		nonPreferredRatio := floatParam(params, "non_preferred_ratio", 0.3)
		totalTarget := floatParam(params, "total_relative_target", 0.3)
		fn := treatment.ConiferPriorityThinning(preferred, nonPreferredRatio, totalTarget)
		return builtTreatment{ID: stand.TreatmentThinBasalArea, Fn: fn}, nil
	}
	r.builders["first_thinning_strip_roads"] = func(params map[string]any) (builtTreatment, error) {
		stemsAfter := floatParam(params, "stems_after", 1000)
		return builtTreatment{ID: stand.TreatmentThinNumberOfStems, Fn: treatment.FirstThinningStripRoads(stemsAfter)}, nil
	}

	return r
}

// WithGrowthModel registers the "grow" treatment against model, the
// caller-supplied opaque growth collaborator (§1 non-goals).
func (r *Registry) WithGrowthModel(model treatment.GrowthModel) *Registry {
	r.builders["grow"] = func(params map[string]any) (builtTreatment, error) {
		years := intParam(params, "years", 5)
		return builtTreatment{ID: stand.TreatmentGrowth, Fn: treatment.Grow(model, years)}, nil
	}
	return r
}

func (r *Registry) build(name string, params map[string]any) (builtTreatment, error) {
	builder, ok := r.builders[name]
	if !ok {
		return builtTreatment{}, ErrUnknownTreatment
	}
	return builder(params)
}

func floatParam(params map[string]any, key string, def float64) float64 {
	v, ok := params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return def
	}
}

func intParam(params map[string]any, key string, def int) int {
	v, ok := params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

func boolParam(params map[string]any, key string, def bool) bool {
	v, ok := params[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

func stringParam(params map[string]any, key, def string) string {
	v, ok := params[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

func mapParam(params map[string]any, key string) map[string]any {
	v, ok := params[key]
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}
