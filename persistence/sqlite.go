package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lukefi/metsi-go/stand"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const ddl = `
CREATE TABLE IF NOT EXISTS nodes (
	node_path TEXT NOT NULL,
	stand_identifier TEXT NOT NULL,
	treatment_name TEXT NOT NULL,
	parameter_snapshot TEXT NOT NULL,
	PRIMARY KEY (node_path, stand_identifier)
);
CREATE TABLE IF NOT EXISTS stands (
	node_path TEXT NOT NULL,
	stand_identifier TEXT NOT NULL,
	area REAL, degree_days REAL, site_class INTEGER, soil_class INTEGER,
	dominant_storey_age REAL, year INTEGER, cutting_year INTEGER,
	thinning_year INTEGER, soil_prep_year INTEGER, regeneration_year INTEGER,
	PRIMARY KEY (node_path, stand_identifier)
);
CREATE TABLE IF NOT EXISTS trees (
	node_path TEXT NOT NULL,
	stand_identifier TEXT NOT NULL,
	row_index INTEGER NOT NULL,
	fields TEXT NOT NULL,
	PRIMARY KEY (node_path, stand_identifier, row_index)
);
CREATE TABLE IF NOT EXISTS strata (
	node_path TEXT NOT NULL,
	stand_identifier TEXT NOT NULL,
	row_index INTEGER NOT NULL,
	fields TEXT NOT NULL,
	PRIMARY KEY (node_path, stand_identifier, row_index)
);
`

// SQLiteSink is the alternate, queryable Sink backend (§3 DOMAIN STACK):
// the §4.7 logical schema rendered as real SQL tables, plus one table per
// declared collected-data kind, created lazily on first use. A mutex
// serializes writes, satisfying §5's single-writer requirement when the
// sink is shared across parallel stands.
type SQLiteSink struct {
	db         *sql.DB
	mu         sync.Mutex
	knownKinds map[string]bool
	closed     bool
}

// OpenSQLiteSink opens (creating if absent) a SQLite database at path and
// provisions the fixed-schema tables.
func OpenSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "persistence: open sqlite")
	}
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "persistence: provision schema")
	}
	return &SQLiteSink{db: db, knownKinds: make(map[string]bool)}, nil
}

// Persist implements Sink.
func (s *SQLiteSink) Persist(path string, p *stand.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}

	node, standRow, treeRows, strataRows, collected, err := buildRows(path, p)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "persistence: begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO nodes (node_path, stand_identifier, treatment_name, parameter_snapshot) VALUES (?, ?, ?, ?)`,
		node.NodePath, node.StandIdentifier, node.TreatmentName, node.ParameterSnapshot,
	); err != nil {
		return errors.Wrap(err, "persistence: insert node row")
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO stands (node_path, stand_identifier, area, degree_days, site_class,
			soil_class, dominant_storey_age, year, cutting_year, thinning_year, soil_prep_year, regeneration_year)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		standRow.NodePath, standRow.StandIdentifier, standRow.Area, standRow.DegreeDays, standRow.SiteClass,
		standRow.SoilClass, standRow.DominantStoreyAge, standRow.Year, standRow.CuttingYear,
		standRow.ThinningYear, standRow.SoilPrepYear, standRow.RegenerationYear,
	); err != nil {
		return errors.Wrap(err, "persistence: insert stand row")
	}

	for _, row := range treeRows {
		fieldsJSON, err := json.Marshal(row.Fields)
		if err != nil {
			return errors.Wrap(err, "persistence: marshal tree fields")
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO trees (node_path, stand_identifier, row_index, fields) VALUES (?, ?, ?, ?)`,
			row.NodePath, row.StandIdentifier, row.RowIndex, string(fieldsJSON),
		); err != nil {
			return errors.Wrap(err, "persistence: insert tree row")
		}
	}

	for _, row := range strataRows {
		fieldsJSON, err := json.Marshal(row.Fields)
		if err != nil {
			return errors.Wrap(err, "persistence: marshal stratum fields")
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO strata (node_path, stand_identifier, row_index, fields) VALUES (?, ?, ?, ?)`,
			row.NodePath, row.StandIdentifier, row.RowIndex, string(fieldsJSON),
		); err != nil {
			return errors.Wrap(err, "persistence: insert stratum row")
		}
	}

	for _, row := range collected {
		if err := s.ensureCollectedTable(tx, row.Kind); err != nil {
			return err
		}
		if _, err := tx.Exec(
			fmt.Sprintf(`INSERT OR REPLACE INTO %s (node_path, stand_identifier, seq, payload) VALUES (?, ?, ?, ?)`, collectedTableName(row.Kind)),
			row.NodePath, row.StandIdentifier, row.Seq, row.Payload,
		); err != nil {
			return errors.Wrap(err, "persistence: insert collected row")
		}
	}

	return tx.Commit()
}

// ensureCollectedTable lazily creates the table for a collected-data kind
// the first time it is seen; kind is only ever a treatment-supplied
// identifier (never user input), so interpolating it into DDL/table names
// here is safe.
func (s *SQLiteSink) ensureCollectedTable(tx *sql.Tx, kind string) error {
	if s.knownKinds[kind] {
		return nil
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		node_path TEXT NOT NULL,
		stand_identifier TEXT NOT NULL,
		seq INTEGER NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY (node_path, stand_identifier, seq)
	)`, collectedTableName(kind))
	if _, err := tx.Exec(stmt); err != nil {
		return errors.Wrapf(err, "persistence: create collected table %s", kind)
	}
	s.knownKinds[kind] = true
	return nil
}

func collectedTableName(kind string) string {
	return "collected_" + kind
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
