package limits

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/lukefi/metsi-go/stand"
)

const (
	defaultBasalAreaLowerLimit = 16.0
	defaultBasalAreaUpperLimit = 24.0
)

var basalAreaFiles = []string{
	"basal_area_instructions_before_thinning.txt",
	"basal_area_instructions_before_thinning2.txt",
	"basal_area_instructions_before_thinning3.txt",
	"basal_area_instructions_before_thinning4.txt",
	"basal_area_instructions_after_thinning.txt",
	"basal_area_instructions_after_thinning2.txt",
	"basal_area_instructions_after_thinning3.txt",
	"basal_area_instructions_after_thinning4.txt",
]

// BasalAreaTables holds the parsed before/after-thinning basal-area
// instruction tables, one Table per declared region (§6's area 1..4).
type BasalAreaTables struct {
	BeforeUpper map[int]Table // after_thinning files name the *lower* limit a stand must stay above; before_thinning files name the *upper* trigger
	AfterLower  map[int]Table
}

// LoadBasalAreaTables parses every recognized
// basal_area_instructions_{before,after}_thinning[234].txt file present
// under dir, grouping by region inferred from the filename suffix.
func LoadBasalAreaTables(dir string) (*BasalAreaTables, error) {
	before := make(map[int]Table)
	after := make(map[int]Table)

	for _, name := range basalAreaFiles {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("limits: open %s: %w", path, err)
		}
		table, err := ParseTable(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("limits: parse %s: %w", path, err)
		}
		area, ok := AreaFromFilename(name)
		if !ok {
			continue
		}
		if containsSubstring(name, "before") {
			before[area] = table
		} else {
			after[area] = table
		}
	}

	if len(before) == 0 || len(after) == 0 {
		return nil, ErrNoTables
	}
	return &BasalAreaTables{BeforeUpper: before, AfterLower: after}, nil
}

func containsSubstring(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// lookup resolves a stand's (soil, site, height, species) cell in table
// set m for the region implied by the stand's degree-days, falling back
// to def when the region is absent or the cell is NaN (unset in the
// source wire-format files, not a data error).
func lookup(m map[int]Table, unit *stand.ComputationalUnit, dominantSpecies int32, def float64) float64 {
	area := AreaFromDegreeDays(unit.DegreeDays, unit.DegreeDays > 0)
	table, ok := m[area]
	if !ok {
		return def
	}
	soil := SoilToIndex(int(unit.SoilClass))
	site := SiteToIndex(int(unit.SiteClass))
	h := HeightToIndex(dominantHeight(unit))
	spe := DomSpeToIndex4(dominantSpecies)
	v := table[soil][site][h][spe]
	if math.IsNaN(v) {
		return def
	}
	return v
}

// dominantHeight approximates the original's stand-level "Hgm" dominant
// height with the basal-area-weighted mean height stand.ComputeMetrics
// already derives from the reference trees; ComputationalUnit carries no
// separate dominant-height field.
func dominantHeight(unit *stand.ComputationalUnit) float64 {
	return stand.ComputeMetrics(unit).MeanHeight
}

// BasalAreaLowerLimit implements treatment.LowerLimitSource: the basal
// area a stand must stay above after a basal-area-driven thinning.
func (t *BasalAreaTables) BasalAreaLowerLimit(unit *stand.ComputationalUnit, dominantSpecies int32) (float64, error) {
	return lookup(t.AfterLower, unit, dominantSpecies, defaultBasalAreaLowerLimit), nil
}

// BasalAreaUpperLimit is the basal area that triggers a basal-area-driven
// thinning instruction (the "before thinning" table).
func (t *BasalAreaTables) BasalAreaUpperLimit(unit *stand.ComputationalUnit, dominantSpecies int32) (float64, error) {
	return lookup(t.BeforeUpper, unit, dominantSpecies, defaultBasalAreaUpperLimit), nil
}
