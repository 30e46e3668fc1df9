package limits

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Table is one parsed limit-table wire-format file: a (soil, site,
// height-bin, species) matrix, soil in {0: mineral, 1: peat}, site in
// 0..3, height-bin in 0..8, species in 0..3. Unset cells hold NaN.
type Table [2][4][9][4]float64

var mineralSiteKeys = []string{"OMT", "MT", "VT", "CT"}
var peatSiteKeys = []string{"Rhtg", "Mtkg", "Ptkg", "Vatkg"}

var sectionHeaderPattern = regexp.MustCompile(`(?i)^\*(OMT|MT|VT|CT|Rhtg|Mtkg|Ptkg|Vatkg|Vatg)\s*$`)
var numberRowPattern = regexp.MustCompile(`^(-?\d+(\.\d+)?\s+)+-?\d+(\.\d+)?$`)

// NewTable returns a Table with every cell initialized to NaN.
func NewTable() Table {
	var t Table
	for soil := range t {
		for site := range t[soil] {
			for h := range t[soil][site] {
				for sp := range t[soil][site][h] {
					t[soil][site][h][sp] = math.NaN()
				}
			}
		}
	}
	return t
}

// ParseTable reads one wire-format file per spec.md §6: asterisk-prefixed
// `*KANGASMAAT`/`*TURVEMAA` soil blocks, each containing up to four
// site sub-sections (`*OMT|*MT|*VT|*CT` for mineral, `*Rhtg|*Mtkg|*Ptkg|
// *Vatkg|*Vatg` for peat, with `Vatg` normalized to `Vatkg`). Each
// sub-section's four data lines give nine height-bin values for one
// species column (line order = species 0..3).
func ParseTable(r io.Reader) (Table, error) {
	table := NewTable()

	var soilBlock = -1
	var siteIdx = -1
	rowCursor := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(strings.ToUpper(line), "*KANGASMAAT"):
			soilBlock = 0
			continue
		case strings.HasPrefix(strings.ToUpper(line), "*TURVEMAA"):
			soilBlock = 1
			continue
		}

		if m := sectionHeaderPattern.FindStringSubmatch(line); m != nil {
			if soilBlock < 0 {
				continue
			}
			tag := normalizeSiteTag(m[1])
			idx := siteKeyIndex(soilBlock, tag)
			siteIdx = idx // -1 if unrecognized; subsequent rows are then ignored
			rowCursor = 0
			continue
		}

		if soilBlock >= 0 && siteIdx >= 0 && numberRowPattern.MatchString(line) {
			fields := strings.Fields(line)
			if len(fields) != 9 {
				continue
			}
			if rowCursor >= 4 {
				continue
			}
			for h, field := range fields {
				v, err := strconv.ParseFloat(field, 64)
				if err != nil {
					continue
				}
				table[soilBlock][siteIdx][h][rowCursor] = v
			}
			rowCursor++
		}
	}
	if err := scanner.Err(); err != nil {
		return table, err
	}
	return table, nil
}

// normalizeSiteTag folds the `Vatg` peat alias onto `Vatkg`, per §6.
func normalizeSiteTag(tag string) string {
	if strings.EqualFold(tag, "Vatg") {
		return "Vatkg"
	}
	return tag
}

func siteKeyIndex(soilBlock int, tag string) int {
	keys := mineralSiteKeys
	if soilBlock == 1 {
		keys = peatSiteKeys
	}
	for i, k := range keys {
		if strings.EqualFold(k, tag) {
			return i
		}
	}
	return -1
}
