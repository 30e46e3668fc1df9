package persistence

import (
	"path/filepath"
	"testing"

	"github.com/lukefi/metsi-go/stand"
	"github.com/stretchr/testify/require"
)

func newTestPayload(t *testing.T) *stand.Payload {
	t.Helper()
	unit, err := stand.NewComputationalUnit("stand-1")
	require.NoError(t, err)
	unit.Area = 1.5
	require.NoError(t, unit.Trees.Store().Create(map[string]any{
		"identifier": "t1", "species": int32(1), "dbh": 20.0, "height": 15.0, "stems_per_ha": 300.0,
	}, nil))
	p := stand.NewPayload(unit)
	p.Collected.Append("cut", map[string]any{"removed": 42.0})
	return p
}

func TestBoltSinkPersistsNodeStandTreeAndCollectedRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "run.db")
	sink, err := OpenBoltSink(dbPath)
	require.NoError(t, err)

	p := newTestPayload(t)
	require.NoError(t, sink.Persist("0", p))
	require.NoError(t, sink.Persist("0-0", p))
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close()) // closing twice is a no-op, not an error

	sink2, err := OpenBoltSink(dbPath)
	require.NoError(t, err)
	defer sink2.Close()
}

func TestBoltSinkRejectsWritesAfterClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "run.db")
	sink, err := OpenBoltSink(dbPath)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	p := newTestPayload(t)
	err = sink.Persist("0", p)
	require.ErrorIs(t, err, ErrSinkClosed)
}

func TestSQLiteSinkPersistsAcrossTablesIncludingLazyCollectedTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "run.sqlite")
	sink, err := OpenSQLiteSink(dbPath)
	require.NoError(t, err)
	defer sink.Close()

	p := newTestPayload(t)
	require.NoError(t, sink.Persist("0", p))

	var count int
	row := sink.db.QueryRow(`SELECT COUNT(*) FROM nodes WHERE node_path = ? AND stand_identifier = ?`, "0", "stand-1")
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)

	row = sink.db.QueryRow(`SELECT COUNT(*) FROM trees WHERE node_path = ? AND stand_identifier = ?`, "0", "stand-1")
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)

	row = sink.db.QueryRow(`SELECT COUNT(*) FROM collected_cut WHERE node_path = ? AND stand_identifier = ?`, "0", "stand-1")
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)
}

func TestSQLiteSinkRejectsWritesAfterClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "run.sqlite")
	sink, err := OpenSQLiteSink(dbPath)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	p := newTestPayload(t)
	err = sink.Persist("0", p)
	require.ErrorIs(t, err, ErrSinkClosed)
}
