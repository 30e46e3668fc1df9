package limits

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultMinStemsAfterThinning = 1500

// StemsAfterThinningTables holds the minimum-number-of-stems-after-
// thinning 4x4 (site x species) grids: area12 covers regions 1-2, area34
// covers regions 3-4, per §6's original file layout.
type StemsAfterThinningTables struct {
	Area12 *[4][4]float64
	Area34 *[4][4]float64
}

// LoadStemsAfterThinningTables parses
// min_number_of_stems_after_thinning.txt (regions 1-2) and
// min_number_of_stems_after_thinning2.txt (regions 3-4) under dir, if
// present.
func LoadStemsAfterThinningTables(dir string) (*StemsAfterThinningTables, error) {
	area12, err := readNamed4x4(filepath.Join(dir, "min_number_of_stems_after_thinning.txt"))
	if err != nil {
		return nil, err
	}
	area34, err := readNamed4x4(filepath.Join(dir, "min_number_of_stems_after_thinning2.txt"))
	if err != nil {
		return nil, err
	}
	return &StemsAfterThinningTables{Area12: area12, Area34: area34}, nil
}

func readNamed4x4(path string) (*[4][4]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("limits: open %s: %w", path, err)
	}
	defer f.Close()
	rows, err := readGrid(f, 4, 4)
	if err != nil {
		return nil, fmt.Errorf("limits: parse %s: %w", path, err)
	}
	if len(rows) != 4 {
		return nil, nil
	}
	var out [4][4]float64
	for i, row := range rows {
		copy(out[i][:], row)
	}
	return &out, nil
}

// DomSpeToIndex4Folded folds a raw dominant-species code onto the 4-way
// index the stems-after-thinning tables use: 1..4 map directly, anything
// else folds onto birch (index 2).
func DomSpeToIndex4Folded(domSpe int32) int {
	if domSpe >= 1 && domSpe <= 4 {
		return int(domSpe) - 1
	}
	return 2
}

// MinNumberOfStemsAfterThinning looks up the minimum post-thinning stem
// count for a stand's region/site/dominant-species cell, defaulting to
// 1500 stems/ha when the relevant grid is unpopulated.
func (t *StemsAfterThinningTables) MinNumberOfStemsAfterThinning(degreeDays float64, hasDegreeDays bool, site int, dominantSpecies int32) int {
	area := AreaFromDegreeDays(degreeDays, hasDegreeDays)
	var grid *[4][4]float64
	if area == 1 || area == 2 {
		grid = t.Area12
	} else {
		grid = t.Area34
	}
	if grid == nil {
		return defaultMinStemsAfterThinning
	}
	return int(grid[SiteToIndex(site)][DomSpeToIndex4Folded(dominantSpecies)])
}
