package stand

import "github.com/lukefi/metsi-go/vector"

// Species codes used by ReferenceTrees.Species and TreeStrata.Species.
// The numbering follows the original forestry domain's enumeration and is
// opaque to the simulation core beyond equality comparisons and table
// lookups in package limits.
type Species int32

const (
	SpeciesPine Species = iota + 1
	SpeciesSpruce
	SpeciesBirch
	SpeciesOther
)

// ReferenceTreesSchema declares the columns carried per reference tree.
// All columns are equal length and contiguous per vector.Store's contract.
var ReferenceTreesSchema = vector.Schema{
	{Name: "identifier", Kind: vector.KindString},
	{Name: "species", Kind: vector.KindInt},
	{Name: "dbh", Kind: vector.KindFloat},             // breast height diameter, cm
	{Name: "height", Kind: vector.KindFloat},          // m
	{Name: "biological_age", Kind: vector.KindFloat},  // years
	{Name: "breast_height_age", Kind: vector.KindFloat},
	{Name: "stems_per_ha", Kind: vector.KindFloat}, // the canonical frequency variable f
	{Name: "origin", Kind: vector.KindInt},
	{Name: "management_category", Kind: vector.KindInt},
	{Name: "storey", Kind: vector.KindInt},
}

// ReferenceTrees is the stand's structure-of-arrays population of
// individual statistical trees (one row per diameter class / cohort,
// weighted by stems_per_ha).
type ReferenceTrees struct {
	store *vector.Store
}

// NewReferenceTrees builds an empty ReferenceTrees collection.
func NewReferenceTrees() (*ReferenceTrees, error) {
	s, err := vector.NewStore(ReferenceTreesSchema)
	if err != nil {
		return nil, err
	}
	return &ReferenceTrees{store: s}, nil
}

// Len returns the number of reference trees.
func (t *ReferenceTrees) Len() int { return t.store.Len() }

// Store exposes the underlying vector.Store for generic C2 operations
// (Create/Read/Update/Delete) not covered by the typed accessors below.
func (t *ReferenceTrees) Store() *vector.Store { return t.store }

// StemsPerHa returns a read view of the frequency column.
func (t *ReferenceTrees) StemsPerHa() []float64 { v, _ := t.store.Float64("stems_per_ha"); return v }

// DBH returns a read view of the breast height diameter column, cm.
func (t *ReferenceTrees) DBH() []float64 { v, _ := t.store.Float64("dbh"); return v }

// Height returns a read view of the height column, m.
func (t *ReferenceTrees) Height() []float64 { v, _ := t.store.Float64("height"); return v }

// Species returns a read view of the species code column.
func (t *ReferenceTrees) Species() []int32 { v, _ := t.store.Int32("species"); return v }

// SetStemsPerHa writes the frequency value at row i, copy-on-write cloning
// the column if it is currently shared with a parent/sibling Store.
func (t *ReferenceTrees) SetStemsPerHa(i int, v float64) error {
	return t.store.SetFloat64("stems_per_ha", i, v)
}

// ReplaceStemsPerHa overwrites the entire frequency column at once, used by
// treatments that compute a vectorized result.
func (t *ReferenceTrees) ReplaceStemsPerHa(data []float64) error {
	return t.store.ReplaceFloat64("stems_per_ha", data)
}

// Clone finalizes and copy-on-write clones the underlying store, to be
// called once per branch fork. See vector.Store.Finalize.
func (t *ReferenceTrees) Clone() *ReferenceTrees {
	return &ReferenceTrees{store: t.store.Finalize()}
}

// Finalize marks the collection's columns read-only without producing a
// new handle; called once per visited event-tree node, before forking.
func (t *ReferenceTrees) Finalize() { t.store.Finalize() }
