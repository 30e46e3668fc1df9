package stand

import "github.com/lukefi/metsi-go/vector"

// TreeStrataSchema declares the columns carried per stratum: a cohort
// description for planted or naturally regenerating populations not yet
// resolved into individual reference trees.
var TreeStrataSchema = vector.Schema{
	{Name: "identifier", Kind: vector.KindString},
	{Name: "species", Kind: vector.KindInt},
	{Name: "mean_diameter", Kind: vector.KindFloat},
	{Name: "mean_height", Kind: vector.KindFloat},
	{Name: "biological_age", Kind: vector.KindFloat},
	{Name: "stems_per_ha", Kind: vector.KindFloat},
	{Name: "basal_area", Kind: vector.KindFloat},
	{Name: "origin", Kind: vector.KindInt},
	{Name: "sapling", Kind: vector.KindBool},
}

// TreeStrata is the stand's structure-of-arrays collection of strata.
type TreeStrata struct {
	store *vector.Store
}

// NewTreeStrata builds an empty TreeStrata collection.
func NewTreeStrata() (*TreeStrata, error) {
	s, err := vector.NewStore(TreeStrataSchema)
	if err != nil {
		return nil, err
	}
	return &TreeStrata{store: s}, nil
}

// Len returns the number of strata.
func (t *TreeStrata) Len() int { return t.store.Len() }

// Store exposes the underlying vector.Store for generic C2 operations.
func (t *TreeStrata) Store() *vector.Store { return t.store }

// Append adds one stratum row with the given field values; absent fields
// take their type-specific default.
func (t *TreeStrata) Append(row map[string]any) error {
	return t.store.Create(row, nil)
}

// Clone finalizes and copy-on-write clones the underlying store.
func (t *TreeStrata) Clone() *TreeStrata {
	return &TreeStrata{store: t.store.Finalize()}
}

// Finalize marks the collection's columns read-only.
func (t *TreeStrata) Finalize() { t.store.Finalize() }
