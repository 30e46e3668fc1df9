package treatment

import (
	"testing"

	"github.com/lukefi/metsi-go/selection"
	"github.com/lukefi/metsi-go/stand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayload(t *testing.T) *stand.Payload {
	t.Helper()
	unit, err := stand.NewComputationalUnit("u1")
	require.NoError(t, err)

	rows := []map[string]any{
		{"identifier": "1", "species": int32(stand.SpeciesPine), "dbh": 10.0, "height": 12.0, "stems_per_ha": 300.0},
		{"identifier": "2", "species": int32(stand.SpeciesPine), "dbh": 20.0, "height": 18.0, "stems_per_ha": 200.0},
		{"identifier": "3", "species": int32(stand.SpeciesSpruce), "dbh": 30.0, "height": 22.0, "stems_per_ha": 100.0},
	}
	require.NoError(t, unit.Trees.Store().CreateMany(rows, nil))

	return stand.NewPayload(unit)
}

func TestDoNothingHasNoEffect(t *testing.T) {
	p := newTestPayload(t)
	before := append([]float64(nil), p.Stand.Trees.StemsPerHa()...)

	require.NoError(t, DoNothing(p, nil))

	assert.Equal(t, before, p.Stand.Trees.StemsPerHa())
}

func TestCutReducesStemsAndRecordsSnapshot(t *testing.T) {
	p := newTestPayload(t)
	fn := Cut(DefaultFromBelowDeclaration(0.5))

	require.NoError(t, fn(p, nil))

	total := 0.0
	for _, f := range p.Stand.Trees.StemsPerHa() {
		total += f
	}
	assert.InDelta(t, 300.0, total, 5.0)

	entries := p.Collected.Get("cut")
	require.Len(t, entries, 1)
	snap, ok := entries[0].(ThinningSnapshot)
	require.True(t, ok)
	assert.InDelta(t, 600.0, snap.Before.StemsPerHa, 1e-6)
}

func TestMarkTreesConservesTotalStems(t *testing.T) {
	p := newTestPayload(t)
	before := 0.0
	for _, f := range p.Stand.Trees.StemsPerHa() {
		before += f
	}

	fn := MarkTrees(DefaultFromBelowDeclaration(0.3), map[string]any{"management_category": int32(9)})
	require.NoError(t, fn(p, nil))

	after := 0.0
	for _, f := range p.Stand.Trees.StemsPerHa() {
		after += f
	}
	assert.InDelta(t, before, after, 1e-6)

	cat, err := p.Stand.Trees.Store().Int32("management_category")
	require.NoError(t, err)
	found := false
	for _, c := range cat {
		if c == 9 {
			found = true
		}
	}
	assert.True(t, found, "expected at least one row marked with management_category=9")
}

func TestRegenerationAppendsStratumRow(t *testing.T) {
	p := newTestPayload(t)
	fn := Regeneration(RegenerationParams{
		Identifier: "s1", Species: stand.SpeciesSpruce, StemsPerHa: 2000, Sapling: true,
	})

	require.NoError(t, fn(p, nil))
	assert.Equal(t, 1, p.Stand.Strata.Len())

	entries := p.Collected.Get("regeneration")
	require.Len(t, entries, 1)
}

func TestSoilSurfacePreparationStampsYear(t *testing.T) {
	p := newTestPayload(t)
	fn := SoilSurfacePreparation(SoilPrepParams{Year: 2030, Method: "mounding", Intensity: 0.6})

	require.NoError(t, fn(p, nil))
	assert.Equal(t, 2030, p.Stand.SoilPrepYear)
}

func TestComposeRunsStepsInOrderAndStopsOnError(t *testing.T) {
	p := newTestPayload(t)
	var order []string
	step := func(name string, fail bool) Func {
		return func(*stand.Payload, map[string]any) error {
			order = append(order, name)
			if fail {
				return assert.AnError
			}
			return nil
		}
	}

	err := Compose(step("a", false), step("b", true), step("c", false))(p, nil)
	assert.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestDeriveBasalAreaRelativeTargetClampsAndCaps(t *testing.T) {
	assert.Equal(t, 0.0, DeriveBasalAreaRelativeTarget(0, 5, 0))
	assert.InDelta(t, 0.5, DeriveBasalAreaRelativeTarget(20, 10, 0), 1e-9)
	assert.InDelta(t, 0.3, DeriveBasalAreaRelativeTarget(20, 10, 0.3), 1e-9)
	assert.Equal(t, 1.0, DeriveBasalAreaRelativeTarget(10, -5, 0))
}

func TestNonPreferredRatioPrefersMoreConservativeCap(t *testing.T) {
	assert.Equal(t, 0.7, NonPreferredRatio(10, 0.7, 0))
	// leaving 8 of 10 m^2/ha other species behind allows removing only 20%,
	// which is more conservative than the fixed 0.7 ratio.
	assert.InDelta(t, 0.2, NonPreferredRatio(10, 0.7, 8), 1e-9)
}

func TestFirstThinningStripRoadsAppliesBothStages(t *testing.T) {
	p := newTestPayload(t)
	fn := FirstThinningStripRoads(300)

	require.NoError(t, fn(p, nil))
	require.Len(t, p.Collected.Get("ajourat"), 1)
	require.Len(t, p.Collected.Get("thin_number_of_stems"), 1)
}

func TestConiferPriorityThinningFavorsPineOverSpruce(t *testing.T) {
	p := newTestPayload(t)
	before := append([]float64(nil), p.Stand.Trees.StemsPerHa()...)

	fn := ConiferPriorityThinning(int32(stand.SpeciesPine), 0.7, 0.3)
	require.NoError(t, fn(p, nil))

	after := p.Stand.Trees.StemsPerHa()
	spruceRemoved := before[2] - after[2]
	pineRemoved := (before[0] - after[0]) + (before[1] - after[1])
	assert.Greater(t, spruceRemoved, 0.0)
	assert.Greater(t, spruceRemoved, pineRemoved)
}

func TestGrowAdvancesYearAndDelegatesToModel(t *testing.T) {
	p := newTestPayload(t)
	called := false
	model := growthModelFunc(func(unit *stand.ComputationalUnit, years int) error {
		called = true
		assert.Equal(t, 5, years)
		return nil
	})

	require.NoError(t, Grow(model, 5)(p, nil))
	assert.True(t, called)
	assert.Equal(t, 5, p.Stand.Year)
}

type growthModelFunc func(unit *stand.ComputationalUnit, years int) error

func (f growthModelFunc) Advance(unit *stand.ComputationalUnit, years int) error { return f(unit, years) }

var _ selection.DataBlock = treesBlock{}
