package stand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestUnit(t *testing.T) *ComputationalUnit {
	t.Helper()
	u, err := NewComputationalUnit("stand-1")
	require.NoError(t, err)
	rows := []map[string]any{
		{"dbh": 20.0, "height": 18.0, "stems_per_ha": 300.0, "species": int32(SpeciesPine)},
		{"dbh": 30.0, "height": 24.0, "stems_per_ha": 100.0, "species": int32(SpeciesSpruce)},
	}
	require.NoError(t, u.Trees.Store().CreateMany(rows, nil))
	return u
}

func TestComputeMetricsAggregatesBasalArea(t *testing.T) {
	u := newTestUnit(t)
	m := ComputeMetrics(u)

	wantG := (math.Pi/40000.0)*20.0*20.0*300.0 + (math.Pi/40000.0)*30.0*30.0*100.0
	require.InDelta(t, wantG, m.BasalArea, 1e-9)
	require.InDelta(t, 400.0, m.StemsPerHa, 1e-9)
	require.Equal(t, int32(SpeciesPine), m.DominantSpecies)
}

func TestCloneSharesUntouchedColumns(t *testing.T) {
	u := newTestUnit(t)
	u.Finalize()
	clone := u.Clone()

	require.NoError(t, clone.Trees.SetStemsPerHa(0, 250.0))

	require.Equal(t, []float64{300.0, 100.0}, u.Trees.StemsPerHa())
	require.Equal(t, []float64{250.0, 100.0}, clone.Trees.StemsPerHa())
	// height was never touched on either side, stays byte-identical.
	require.Equal(t, u.Trees.Height(), clone.Trees.Height())
}
