package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/lukefi/metsi-go/stand"
)

// standRecord is the on-disk JSON shape LoadStands reads. spec.md §1
// treats stand-list readers as external adapters for "various wire
// formats"; this is this CLI's own minimal concrete one, documented in
// DESIGN.md, so `simulate` has something runnable end to end.
type standRecord struct {
	Identifier        string  `json:"identifier"`
	Area              float64 `json:"area"`
	DegreeDays        float64 `json:"degree_days"`
	SiteClass         int32   `json:"site_class"`
	SoilClass         int32   `json:"soil_class"`
	DominantStoreyAge float64 `json:"dominant_storey_age"`
	Year              int     `json:"year"`

	Trees  []map[string]any `json:"trees"`
	Strata []map[string]any `json:"strata"`
}

// LoadStands reads a JSON array of stand records from path and builds one
// ComputationalUnit per record, with its reference-tree and strata rows
// appended in file order.
func LoadStands(path string) ([]*stand.ComputationalUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read stands file %s", path)
	}

	var records []standRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "config: decode stands file")
	}

	units := make([]*stand.ComputationalUnit, len(records))
	for i, rec := range records {
		unit, err := stand.NewComputationalUnit(rec.Identifier)
		if err != nil {
			return nil, errors.Wrapf(err, "config: build stand %s", rec.Identifier)
		}
		unit.Area = rec.Area
		unit.DegreeDays = rec.DegreeDays
		unit.SiteClass = rec.SiteClass
		unit.SoilClass = rec.SoilClass
		unit.DominantStoreyAge = rec.DominantStoreyAge
		unit.Year = rec.Year

		for _, row := range rec.Trees {
			if err := unit.Trees.Store().Create(normalizeRow(row), nil); err != nil {
				return nil, errors.Wrapf(err, "config: stand %s: tree row", rec.Identifier)
			}
		}
		for _, row := range rec.Strata {
			if err := unit.Strata.Append(normalizeRow(row)); err != nil {
				return nil, errors.Wrapf(err, "config: stand %s: stratum row", rec.Identifier)
			}
		}
		units[i] = unit
	}
	return units, nil
}

// normalizeRow narrows encoding/json's float64-for-every-number decoding
// down to the int32 columns vector.Store expects (species, origin,
// management_category, storey), leaving float and string columns as
// decoded.
func normalizeRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		if f, ok := v.(float64); ok && isIntColumn(k) {
			out[k] = int32(f)
			continue
		}
		out[k] = v
	}
	return out
}

func isIntColumn(name string) bool {
	switch name {
	case "species", "origin", "management_category", "storey":
		return true
	default:
		return false
	}
}
