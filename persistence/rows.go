package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/lukefi/metsi-go/stand"
)

// NodeRow is one row of the nodes table: primary key (NodePath,
// StandIdentifier), one row per visited node.
type NodeRow struct {
	NodePath          string
	StandIdentifier   string
	TreatmentName     string
	ParameterSnapshot string // JSON-encoded params, "" for the implicit root
}

// StandRow is one row of the stands table: the scalar attributes of a
// ComputationalUnit at one node, one row per node.
type StandRow struct {
	NodePath          string
	StandIdentifier   string
	Area              float64
	DegreeDays        float64
	SiteClass         int32
	SoilClass         int32
	DominantStoreyAge float64
	Year              int
	CuttingYear       int
	ThinningYear      int
	SoilPrepYear      int
	RegenerationYear  int
}

// TreeRow is one row of the trees table: one reference tree at one node.
type TreeRow struct {
	NodePath        string
	StandIdentifier string
	RowIndex        int
	Fields          map[string]any // ReferenceTreesSchema columns, as read from the store
}

// StrataRow is one row of the strata table: one stratum at one node.
type StrataRow struct {
	NodePath        string
	StandIdentifier string
	RowIndex        int
	Fields          map[string]any // TreeStrataSchema columns
}

// CollectedRow is one entry of a declared collected-data kind (e.g.
// "cut", "regeneration") at one node, keyed by (NodePath,
// StandIdentifier, Kind, Seq); Payload is the JSON-encoded side-effect
// value a treatment appended under that kind.
type CollectedRow struct {
	NodePath        string
	StandIdentifier string
	Kind            string
	Seq             int
	Payload         string
}

// buildRows shapes a pre-order-visited payload into the table rows §4.7
// describes, in the ordering §5 requires: stand row, tree rows in index
// order, strata rows in index order, collected-data rows.
func buildRows(path string, p *stand.Payload) (NodeRow, StandRow, []TreeRow, []StrataRow, []CollectedRow, error) {
	id := p.Stand.Identifier

	var treatmentName, paramSnapshot string
	if last, ok := lastHistoryEntry(p); ok {
		treatmentName = last.Treatment.String()
		b, err := json.Marshal(last.Params)
		if err != nil {
			return NodeRow{}, StandRow{}, nil, nil, nil, fmt.Errorf("persistence: marshal params: %w", err)
		}
		paramSnapshot = string(b)
	}
	node := NodeRow{NodePath: path, StandIdentifier: id, TreatmentName: treatmentName, ParameterSnapshot: paramSnapshot}

	standRow := StandRow{
		NodePath:          path,
		StandIdentifier:   id,
		Area:              p.Stand.Area,
		DegreeDays:        p.Stand.DegreeDays,
		SiteClass:         p.Stand.SiteClass,
		SoilClass:         p.Stand.SoilClass,
		DominantStoreyAge: p.Stand.DominantStoreyAge,
		Year:              p.Stand.Year,
		CuttingYear:       p.Stand.CuttingYear,
		ThinningYear:      p.Stand.ThinningYear,
		SoilPrepYear:      p.Stand.SoilPrepYear,
		RegenerationYear:  p.Stand.RegenerationYear,
	}

	trees := p.Stand.Trees
	treeRows := make([]TreeRow, 0, trees.Len())
	for i := 0; i < trees.Len(); i++ {
		fields, err := trees.Store().Read(i)
		if err != nil {
			return NodeRow{}, StandRow{}, nil, nil, nil, fmt.Errorf("persistence: read tree %d: %w", i, err)
		}
		treeRows = append(treeRows, TreeRow{NodePath: path, StandIdentifier: id, RowIndex: i, Fields: fields})
	}

	strata := p.Stand.Strata
	strataRows := make([]StrataRow, 0, strata.Len())
	for i := 0; i < strata.Len(); i++ {
		fields, err := strata.Store().Read(i)
		if err != nil {
			return NodeRow{}, StandRow{}, nil, nil, nil, fmt.Errorf("persistence: read stratum %d: %w", i, err)
		}
		strataRows = append(strataRows, StrataRow{NodePath: path, StandIdentifier: id, RowIndex: i, Fields: fields})
	}

	var collectedRows []CollectedRow
	for _, kind := range p.Collected.Keys() {
		for seq, value := range p.Collected.Get(kind) {
			b, err := json.Marshal(value)
			if err != nil {
				return NodeRow{}, StandRow{}, nil, nil, nil, fmt.Errorf("persistence: marshal collected %s: %w", kind, err)
			}
			collectedRows = append(collectedRows, CollectedRow{
				NodePath: path, StandIdentifier: id, Kind: kind, Seq: seq, Payload: string(b),
			})
		}
	}

	return node, standRow, treeRows, strataRows, collectedRows, nil
}

func lastHistoryEntry(p *stand.Payload) (stand.HistoryEntry, bool) {
	if len(p.History) == 0 {
		return stand.HistoryEntry{}, false
	}
	return p.History[len(p.History)-1], true
}
