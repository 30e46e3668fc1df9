package treatment

import (
	"math"

	"github.com/lukefi/metsi-go/selection"
	"github.com/lukefi/metsi-go/stand"
)

// Func is a pure treatment: it mutates p's stand and collected-data in
// place given one time-point's worth of keyword parameters. params is the
// merged parameter bundle an eventtree Event curries in; treatments that
// ignore it (because their behavior was fixed at construction time, as
// below) simply don't read it.
type Func func(p *stand.Payload, params map[string]any) error

// DoNothing is the identity treatment: it has no side effect.
func DoNothing(p *stand.Payload, params map[string]any) error { return nil }

// Declaration is the caller-supplied (or derived, see
// DefaultFromBelowDeclaration) selection input for a thinning-family
// treatment, minus the Data/Context fields the treatment fills in from
// the stand itself.
type Declaration struct {
	HasTarget  bool
	Target     selection.Target
	Sets       []selection.SelectionSet
	SelectFrom selection.SelectFrom
}

// ThinningSnapshot is the collected-data record a thinning-family
// treatment appends: the per-row amount removed and the stand's metrics
// immediately before and after.
type ThinningSnapshot struct {
	Removed []float64
	Before  stand.Metrics
	After   stand.Metrics
}

// Cut subtracts the stems selected by decl from each row's stems_per_ha.
// Rows stay in the store, including rows left with zero stems.
func Cut(decl Declaration) Func {
	return func(p *stand.Payload, params map[string]any) error {
		return thinStand("cut", p, decl, nil)
	}
}

// ThinBasalArea thins by decl, typically with a target expressed over the
// derived basal-area variable.
func ThinBasalArea(decl Declaration) Func {
	return func(p *stand.Payload, params map[string]any) error {
		return thinStand("thin_basal_area", p, decl, nil)
	}
}

// ThinNumberOfStems thins by decl, typically with a target expressed over
// stems_per_ha directly.
func ThinNumberOfStems(decl Declaration) Func {
	return func(p *stand.Payload, params map[string]any) error {
		return thinStand("thin_number_of_stems", p, decl, nil)
	}
}

// MarkTrees runs decl's selection but, instead of dropping the selected
// stems, clones them into new rows carrying markOverride's field values —
// total stems_per_ha is conserved, the marked stems just move to their
// own row under (e.g.) a distinct management_category.
func MarkTrees(decl Declaration, markOverride map[string]any) Func {
	return func(p *stand.Payload, params map[string]any) error {
		return thinStand("mark_trees", p, decl, markOverride)
	}
}

// thinStand implements the shared pattern behind Cut, ThinBasalArea,
// ThinNumberOfStems and MarkTrees (§4.3): compute before-metrics, run the
// selection engine, clamp removed-per-row to available stems, subtract
// from stems_per_ha (copy-on-write via vector.Store), optionally clone
// the removed stems into new marked rows, then record a snapshot and
// after-metrics under key.
func thinStand(key string, p *stand.Payload, decl Declaration, markOverride map[string]any) error {
	if len(decl.Sets) == 0 {
		return ErrEmptyDeclaration
	}

	before := stand.ComputeMetrics(p.Stand)

	data := newTreesBlock(p.Stand.Trees)
	in := selection.Input{
		Context:    p.Stand.Trees,
		Data:       data,
		HasTarget:  decl.HasTarget,
		Target:     decl.Target,
		Sets:       decl.Sets,
		FreqVar:    "stems_per_ha",
		SelectFrom: decl.SelectFrom,
	}
	units, err := selection.Select(in)
	if err != nil {
		return err
	}

	f := p.Stand.Trees.StemsPerHa()
	removed := make([]float64, len(units))
	newF := append([]float64(nil), f...)
	for i, u := range units {
		avail := f[i]
		if math.IsNaN(avail) {
			avail = 0
		}
		clamped := math.Min(u, avail)
		if clamped < 0 {
			clamped = 0
		}
		removed[i] = clamped
		newF[i] = avail - clamped
	}

	if err := p.Stand.Trees.ReplaceStemsPerHa(newF); err != nil {
		return err
	}
	if markOverride != nil {
		if err := appendMarkedRows(p.Stand.Trees, removed, markOverride); err != nil {
			return err
		}
	}

	after := stand.ComputeMetrics(p.Stand)
	p.Collected.Append(key, ThinningSnapshot{Removed: removed, Before: before, After: after})
	return nil
}

// appendMarkedRows clones every row with a positive removed amount into a
// fresh row carrying stems_per_ha=removed[i] and override's field
// overrides, conserving total stems across the split.
func appendMarkedRows(trees *stand.ReferenceTrees, removed []float64, override map[string]any) error {
	store := trees.Store()
	n := store.Len()
	for i := 0; i < n; i++ {
		if removed[i] <= 0 {
			continue
		}
		row, err := store.Read(i)
		if err != nil {
			return err
		}
		row["stems_per_ha"] = removed[i]
		for k, v := range override {
			row[k] = v
		}
		if err := store.Create(row, nil); err != nil {
			return err
		}
	}
	return nil
}

// DefaultFromBelowDeclaration builds §4.3's default selection when no
// explicit selection set is supplied: all trees, ordered by diameter,
// targeting a relative amount of stems_per_ha with a linear from-below
// profile (y: 1->0 over relative x: 0->1).
func DefaultFromBelowDeclaration(relativeAmount float64) Declaration {
	return Declaration{
		HasTarget: true,
		Target:    selection.Target{Type: selection.TargetRelative, Amount: relativeAmount},
		Sets: []selection.SelectionSet{
			{
				Name:          "default",
				Membership:    allTreesMembership,
				OrderVariable: "dbh",
				HasTarget:     true,
				TargetType:    selection.TargetRelative,
				TargetAmount:  relativeAmount,
				ProfileX:      []float64{0, 1},
				ProfileY:      []float64{1, 0},
				ProfileXMode:  selection.ProfileXRelative,
				ProfileXScale: selection.ProfileXScaleSet,
				Mode:          selection.ScaleOddsUnits,
			},
		},
	}
}

func allTreesMembership(_ any, data selection.DataBlock) []bool {
	mask := make([]bool, data.Len())
	for i := range mask {
		mask[i] = true
	}
	return mask
}
