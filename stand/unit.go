package stand

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ComputationalUnit is one forest management unit: a stable identifier,
// geometric/ecological scalar attributes, and the two structure-of-arrays
// populations (reference trees, tree strata) that carry its tree-level
// state.
type ComputationalUnit struct {
	Identifier string

	Area              float64 // hectares
	DegreeDays        float64
	SiteClass         int32
	SoilClass         int32
	DominantStoreyAge float64
	Year              int

	// "Last-year-of-X" bookkeeping markers consulted by condition guards
	// and treatments (e.g. soil-surface-preparation stamps SoilPrepYear).
	CuttingYear      int
	ThinningYear     int
	SoilPrepYear     int
	RegenerationYear int

	Trees  *ReferenceTrees
	Strata *TreeStrata
}

// NewComputationalUnit builds a stand with empty tree and strata
// collections.
func NewComputationalUnit(identifier string) (*ComputationalUnit, error) {
	trees, err := NewReferenceTrees()
	if err != nil {
		return nil, err
	}
	strata, err := NewTreeStrata()
	if err != nil {
		return nil, err
	}
	return &ComputationalUnit{Identifier: identifier, Trees: trees, Strata: strata}, nil
}

// Finalize marks the stand's vector stores read-only in place, enabling
// copy-on-write fan-out to branches. Called once per event-tree node,
// before Clone is used to fork.
func (c *ComputationalUnit) Finalize() {
	c.Trees.Finalize()
	c.Strata.Finalize()
}

// Clone returns an independent ComputationalUnit sharing unmodified
// columns with c via copy-on-write. Scalar fields are copied by value.
func (c *ComputationalUnit) Clone() *ComputationalUnit {
	clone := *c
	clone.Trees = c.Trees.Clone()
	clone.Strata = c.Strata.Clone()
	return &clone
}

// Metrics summarizes a stand's reference-tree population as the aggregate
// variables treatments condition their selection declarations on.
type Metrics struct {
	StemsPerHa      float64 // N, stems/ha
	BasalArea       float64 // G, m^2/ha
	QuadraticMeanDBH float64 // cm
	MeanHeight      float64 // basal-area-weighted, m
	DominantSpecies int32   // species with the largest share of G
}

// basalAreaOf converts one tree's dbh (cm) and frequency (stems/ha) into
// its basal-area contribution, m^2/ha: (pi/40000) * d^2 * f.
func basalAreaOf(dbhCM, stemsPerHa float64) float64 {
	return (math.Pi / 40000.0) * dbhCM * dbhCM * stemsPerHa
}

// ComputeMetrics aggregates the stand's current reference-tree state.
// Rows with zero or NaN stems_per_ha do not contribute.
func ComputeMetrics(c *ComputationalUnit) Metrics {
	f := c.Trees.StemsPerHa()
	d := c.Trees.DBH()
	h := c.Trees.Height()
	sp := c.Trees.Species()

	validF := make([]float64, len(f))
	perTreeG := make([]float64, len(f))
	weightedHContrib := make([]float64, len(f))
	bySpeciesG := map[int32]float64{}

	for i := range f {
		fi := f[i]
		if math.IsNaN(fi) || fi <= 0 {
			continue
		}
		gi := basalAreaOf(d[i], fi)
		validF[i] = fi
		perTreeG[i] = gi
		if !math.IsNaN(h[i]) {
			weightedHContrib[i] = gi * h[i]
		}
		bySpeciesG[sp[i]] += gi
	}

	n := floats.Sum(validF)
	g := floats.Sum(perTreeG)
	weightedH := floats.Sum(weightedHContrib)

	qmd := 0.0
	if n > 0 {
		qmd = math.Sqrt(g / (n * math.Pi / 40000.0))
	}
	meanH := 0.0
	if g > 0 {
		meanH = weightedH / g
	}
	// Walk species IDs in ascending order so an exact basal-area tie
	// always resolves to the lowest species ID, regardless of map
	// iteration order.
	speciesIDs := make([]int32, 0, len(bySpeciesG))
	for species := range bySpeciesG {
		speciesIDs = append(speciesIDs, species)
	}
	sort.Slice(speciesIDs, func(i, j int) bool { return speciesIDs[i] < speciesIDs[j] })

	dominant := int32(-1)
	best := -1.0
	for _, species := range speciesIDs {
		if share := bySpeciesG[species]; share > best {
			best = share
			dominant = species
		}
	}

	return Metrics{
		StemsPerHa:       n,
		BasalArea:        g,
		QuadraticMeanDBH: qmd,
		MeanHeight:       meanH,
		DominantSpecies:  dominant,
	}
}
