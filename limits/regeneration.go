package limits

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultMinRegenerationDiameter = 26.0
	defaultMinRegenerationAge      = 70
)

// readGrid reads the first numCols-wide rows (ignoring blank and
// "*"-commented lines) from r, stopping after wantRows rows, mirroring
// the original's lenient 4xN grid reader.
func readGrid(r io.Reader, numCols, wantRows int) ([][]float64, error) {
	var rows [][]float64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() && len(rows) < wantRows {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		vals := make([]float64, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				continue
			}
			vals = append(vals, v)
		}
		if len(vals) == numCols {
			rows = append(rows, vals)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// RegenerationTables holds the minimum-regeneration-diameter and
// minimum-regeneration-age 4x5 (site x species) grids, keyed by region.
// Only region 1 is populated by the wire-format files currently
// distributed; other regions fall back to the package defaults.
type RegenerationTables struct {
	Diameter map[int][4][5]float64
	Age      map[int][4][5]float64
}

// LoadRegenerationTables parses min_regeneration_diameter.txt and
// min_regeneration_age.txt (region 1 only) under dir, if present.
func LoadRegenerationTables(dir string) (*RegenerationTables, error) {
	t := &RegenerationTables{Diameter: make(map[int][4][5]float64), Age: make(map[int][4][5]float64)}

	if grid, ok, err := readNamed4x5(filepath.Join(dir, "min_regeneration_diameter.txt")); err != nil {
		return nil, err
	} else if ok {
		t.Diameter[1] = grid
	}
	if grid, ok, err := readNamed4x5(filepath.Join(dir, "min_regeneration_age.txt")); err != nil {
		return nil, err
	} else if ok {
		t.Age[1] = grid
	}
	return t, nil
}

func readNamed4x5(path string) ([4][5]float64, bool, error) {
	var out [4][5]float64
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, false, nil
		}
		return out, false, fmt.Errorf("limits: open %s: %w", path, err)
	}
	defer f.Close()
	rows, err := readGrid(f, 5, 4)
	if err != nil {
		return out, false, fmt.Errorf("limits: parse %s: %w", path, err)
	}
	if len(rows) != 4 {
		return out, false, nil
	}
	for i, row := range rows {
		copy(out[i][:], row)
	}
	return out, true, nil
}

// DomSpeToIndex5 folds a raw dominant-species code onto the 5-species
// index the regeneration tables use: 1..4 map directly, 7 (another pine
// variant) folds onto pine (index 0), anything else is "other deciduous"
// (index 4).
func DomSpeToIndex5(domSpe int32) int {
	switch {
	case domSpe >= 1 && domSpe <= 4:
		return int(domSpe) - 1
	case domSpe == 7:
		return 0
	default:
		return 4
	}
}

// MinRegenerationDiameter looks up the minimum regeneration diameter (cm)
// for a stand's region/site/dominant-species cell, defaulting to 26.0 cm
// when the region is unpopulated.
func (t *RegenerationTables) MinRegenerationDiameter(degreeDays float64, hasDegreeDays bool, site int, dominantSpecies int32) float64 {
	area := AreaFromDegreeDays(degreeDays, hasDegreeDays)
	grid, ok := t.Diameter[area]
	if !ok {
		return defaultMinRegenerationDiameter
	}
	return grid[SiteToIndex(site)][DomSpeToIndex5(dominantSpecies)]
}

// MinRegenerationAge looks up the minimum regeneration age (years),
// defaulting to 70 when the region is unpopulated.
func (t *RegenerationTables) MinRegenerationAge(degreeDays float64, hasDegreeDays bool, site int, dominantSpecies int32) int {
	area := AreaFromDegreeDays(degreeDays, hasDegreeDays)
	grid, ok := t.Age[area]
	if !ok {
		return defaultMinRegenerationAge
	}
	return int(grid[SiteToIndex(site)][DomSpeToIndex5(dominantSpecies)])
}
