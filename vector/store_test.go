package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSchema() Schema {
	return Schema{
		{Name: "identifier", Kind: KindString},
		{Name: "species", Kind: KindInt},
		{Name: "stems_per_ha", Kind: KindFloat},
		{Name: "sapling", Kind: KindBool},
	}
}

func TestCreateAppliesDefaultsForAbsentFields(t *testing.T) {
	s, err := NewStore(testSchema())
	require.NoError(t, err)

	require.NoError(t, s.Create(map[string]any{"identifier": "T1"}, nil))
	require.Equal(t, 1, s.Len())

	row, err := s.Read(0)
	require.NoError(t, err)
	require.Equal(t, "T1", row["identifier"])
	require.Equal(t, int32(-1), row["species"])
	require.True(t, math.IsNaN(row["stems_per_ha"].(float64)))
	require.Equal(t, false, row["sapling"])
}

func TestUpdateAndDelete(t *testing.T) {
	s, err := NewStore(testSchema())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Create(map[string]any{"stems_per_ha": float64(i + 1)}, nil))
	}

	require.NoError(t, s.Update(map[string]any{"stems_per_ha": 42.0}, 1))
	col, err := s.Float64("stems_per_ha")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 42, 3}, col)

	require.NoError(t, s.Delete([]int{0}))
	require.Equal(t, 2, s.Len())
	col, err = s.Float64("stems_per_ha")
	require.NoError(t, err)
	require.Equal(t, []float64{42, 3}, col)
}

// TestFinalizeThenMutateLeavesParentUntouched verifies the copy-on-write
// branch-fork invariant: after Finalize, a mutation on the clone copies
// only the column it touches, leaving the parent's columns byte-identical.
func TestFinalizeThenMutateLeavesParentUntouched(t *testing.T) {
	s, err := NewStore(testSchema())
	require.NoError(t, err)
	require.NoError(t, s.Create(map[string]any{"stems_per_ha": 10.0, "species": int32(2)}, nil))

	clone := s.Finalize()
	require.True(t, s.Finalized())
	require.True(t, clone.Finalized())

	require.NoError(t, clone.SetFloat64("stems_per_ha", 0, 5.0))

	parentStems, err := s.Float64("stems_per_ha")
	require.NoError(t, err)
	require.Equal(t, []float64{10.0}, parentStems)

	cloneStems, err := clone.Float64("stems_per_ha")
	require.NoError(t, err)
	require.Equal(t, []float64{5.0}, cloneStems)

	// the untouched species column remains shared (not cloned), and its
	// values stay byte-identical across parent and clone.
	parentSpecies, err := s.Int32("species")
	require.NoError(t, err)
	cloneSpecies, err := clone.Int32("species")
	require.NoError(t, err)
	require.Equal(t, parentSpecies, cloneSpecies)
}

func TestCreateWithOrderedInsertion(t *testing.T) {
	s, err := NewStore(testSchema())
	require.NoError(t, err)
	require.NoError(t, s.Create(map[string]any{"identifier": "A"}, nil))
	require.NoError(t, s.Create(map[string]any{"identifier": "C"}, nil))

	idx := 1
	require.NoError(t, s.Create(map[string]any{"identifier": "B"}, &idx))

	ids, err := s.String("identifier")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, ids)
}

func TestColumnLengthsStayEqualAfterOperations(t *testing.T) {
	s, err := NewStore(testSchema())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Create(map[string]any{}, nil))
	}
	require.NoError(t, s.Delete([]int{1, 3}))
	require.NoError(t, s.Create(map[string]any{}, nil))

	for _, f := range testSchema() {
		switch f.Kind {
		case KindFloat:
			c, err := s.Float64(f.Name)
			require.NoError(t, err)
			require.Len(t, c, s.Len())
		case KindInt:
			c, err := s.Int32(f.Name)
			require.NoError(t, err)
			require.Len(t, c, s.Len())
		case KindString:
			c, err := s.String(f.Name)
			require.NoError(t, err)
			require.Len(t, c, s.Len())
		case KindBool:
			c, err := s.Bool(f.Name)
			require.NoError(t, err)
			require.Len(t, c, s.Len())
		}
	}
}
