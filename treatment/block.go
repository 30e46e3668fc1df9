package treatment

import (
	"math"

	"github.com/lukefi/metsi-go/stand"
)

// treesBlock adapts a stand.ReferenceTrees collection to
// selection.DataBlock, exposing a derived per-stem basal-area column
// alongside the stored float columns.
type treesBlock struct {
	trees *stand.ReferenceTrees
}

func newTreesBlock(trees *stand.ReferenceTrees) treesBlock { return treesBlock{trees: trees} }

func (b treesBlock) Len() int { return b.trees.Len() }

func (b treesBlock) Column(name string) ([]float64, bool) {
	switch name {
	case "dbh":
		return b.trees.DBH(), true
	case "height":
		return b.trees.Height(), true
	case "stems_per_ha":
		return b.trees.StemsPerHa(), true
	case "basal_area", "g":
		return perStemBasalArea(b.trees), true
	default:
		return nil, false
	}
}

// perStemBasalArea computes each row's per-individual-stem basal area,
// (pi/40000)*dbh^2 in m^2. The selection engine always weights a target
// variable by frequency itself (computeTarget, weightedSumIdx), so this
// column must be a per-stem quantity, not stand.ComputeMetrics's
// already-frequency-weighted per-row total.
func perStemBasalArea(trees *stand.ReferenceTrees) []float64 {
	d := trees.DBH()
	g := make([]float64, len(d))
	for i := range d {
		g[i] = (math.Pi / 40000.0) * d[i] * d[i]
	}
	return g
}
