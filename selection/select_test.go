package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simpleBlock is a minimal DataBlock backed by named float64 columns, used
// to exercise Select without depending on the stand/vector packages.
type simpleBlock struct {
	n    int
	cols map[string][]float64
}

func (b simpleBlock) Len() int { return b.n }

func (b simpleBlock) Column(name string) ([]float64, bool) {
	c, ok := b.cols[name]
	return c, ok
}

func allMembership(_ any, data DataBlock) []bool {
	mask := make([]bool, data.Len())
	for i := range mask {
		mask[i] = true
	}
	return mask
}

func sumFreqTimes(block simpleBlock, variable string) float64 {
	f := block.cols["stems_per_ha"]
	if variable == "" {
		sum := 0.0
		for _, v := range f {
			sum += v
		}
		return sum
	}
	v := block.cols[variable]
	sum := 0.0
	for i := range f {
		sum += f[i] * v[i]
	}
	return sum
}

// scenario #4: relative=0.5 target on stems_per_ha, flat profile, single
// set -> total selected stems equal 0.5*sum(f) within tolerance.
func TestSelectRelativeHalfOnStemsFlatProfile(t *testing.T) {
	block := simpleBlock{
		n: 4,
		cols: map[string][]float64{
			"stems_per_ha": {300, 200, 150, 100},
			"dbh":          {10, 20, 30, 40},
		},
	}

	in := Input{
		Data:      block,
		HasTarget: true,
		Target:    Target{Type: TargetRelative, Variable: "", Amount: 0.5},
		FreqVar:   "stems_per_ha",
		Sets: []SelectionSet{
			{
				Name:          "all",
				Membership:    allMembership,
				OrderVariable: "dbh",
				HasTarget:     true,
				TargetType:    TargetRelative,
				TargetAmount:  0.5,
				ProfileX:      []float64{0, 1},
				ProfileY:      []float64{1, 1},
				ProfileXMode:  ProfileXRelative,
				ProfileXScale: ProfileXScaleSet,
				Mode:          ScaleMultiply,
			},
		},
	}

	units, err := Select(in)
	require.NoError(t, err)

	total := 0.0
	for _, u := range units {
		total += u
	}
	want := 0.5 * sumFreqTimes(block, "")
	assert.InDelta(t, want, total, 1.0)
}

// scenario #5: from-below thinning on basal area. profile_x=[0,1],
// profile_y=[1,0] biases removal toward small dbh; relative target 0.3 on
// "g" (a precomputed per-row basal area column).
func TestSelectFromBelowThinningOnBasalArea(t *testing.T) {
	block := simpleBlock{
		n: 5,
		cols: map[string][]float64{
			"stems_per_ha": {300, 250, 200, 150, 100},
			"dbh":          {10, 15, 20, 25, 30},
			"g":            {2.4, 4.4, 6.3, 7.4, 7.1},
		},
	}

	in := Input{
		Data:      block,
		HasTarget: true,
		Target:    Target{Type: TargetRelative, Variable: "g", Amount: 0.3},
		FreqVar:   "stems_per_ha",
		Sets: []SelectionSet{
			{
				Name:          "below",
				Membership:    allMembership,
				OrderVariable: "dbh",
				TargetVariable: "g",
				HasTarget:     true,
				TargetType:    TargetRelative,
				TargetAmount:  0.3,
				ProfileX:      []float64{0, 1},
				ProfileY:      []float64{1, 0},
				ProfileXMode:  ProfileXRelative,
				ProfileXScale: ProfileXScaleSet,
				Mode:          ScaleOddsUnits,
			},
		},
	}

	units, err := Select(in)
	require.NoError(t, err)

	removedG := 0.0
	for i, u := range units {
		removedG += u * block.cols["g"][i]
	}
	wantG := 0.3 * sumFreqTimes(block, "g")
	assert.InDelta(t, wantG, removedG, 5.0)

	meanDBH := func(weight func(i int) float64) float64 {
		num, den := 0.0, 0.0
		for i, d := range block.cols["dbh"] {
			w := weight(i)
			num += w * d
			den += w
		}
		if den == 0 {
			return 0
		}
		return num / den
	}
	removedMean := meanDBH(func(i int) float64 { return units[i] })
	keptMean := meanDBH(func(i int) float64 { return block.cols["stems_per_ha"][i] - units[i] })
	assert.Less(t, removedMean, keptMean)
}

// scenario #6: short-circuit on relative/1.0 global and set targets ->
// every row's selected units exactly equal its frequency.
func TestSelectRelativeOneShortCircuitsToExactEquality(t *testing.T) {
	block := simpleBlock{
		n: 3,
		cols: map[string][]float64{
			"stems_per_ha": {300, 200, 150},
			"dbh":          {10, 20, 30},
		},
	}

	in := Input{
		Data:      block,
		HasTarget: true,
		Target:    Target{Type: TargetRelative, Amount: 1.0},
		FreqVar:   "stems_per_ha",
		Sets: []SelectionSet{
			{
				Name:          "all",
				Membership:    allMembership,
				OrderVariable: "dbh",
				HasTarget:     true,
				TargetType:    TargetRelative,
				TargetAmount:  1.0,
				ProfileX:      []float64{0, 1},
				ProfileY:      []float64{1, 1},
				ProfileXMode:  ProfileXRelative,
				ProfileXScale: ProfileXScaleSet,
				Mode:          ScaleMultiply,
			},
		},
	}

	units, err := Select(in)
	require.NoError(t, err)

	for i, u := range units {
		assert.Equal(t, block.cols["stems_per_ha"][i], u)
	}
}

func TestSelectRejectsInvalidProfile(t *testing.T) {
	block := simpleBlock{
		n:    2,
		cols: map[string][]float64{"stems_per_ha": {100, 100}, "dbh": {10, 20}},
	}
	in := Input{
		Data:      block,
		HasTarget: true,
		Target:    Target{Type: TargetRelative, Amount: 0.5},
		FreqVar:   "stems_per_ha",
		Sets: []SelectionSet{
			{
				Name:          "bad",
				Membership:    allMembership,
				OrderVariable: "dbh",
				HasTarget:     true,
				TargetType:    TargetRelative,
				TargetAmount:  0.5,
				ProfileX:      []float64{0, 1},
				ProfileY:      []float64{1.5, 1},
			},
		},
	}

	_, err := Select(in)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}
