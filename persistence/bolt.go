package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/lukefi/metsi-go/stand"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

var (
	nodesBucket     = []byte("nodes")
	standsBucket    = []byte("stands")
	treesBucket     = []byte("trees")
	strataBucket    = []byte("strata")
	collectedBucket = []byte("collected")
)

// BoltSink is the default embedded Sink (§3 DOMAIN STACK): one bucket per
// table, keyed by stand-identifier and node-path, with one nested
// collected-data bucket per declared kind. Each Persist call commits its
// own transaction; bbolt's single-writer model already serializes
// concurrent callers, satisfying §5's shared-sink requirement without an
// additional lock.
type BoltSink struct {
	db     *bbolt.DB
	closed bool
}

// OpenBoltSink creates (or opens) a bbolt database at path and provisions
// the top-level buckets.
func OpenBoltSink(path string) (*BoltSink, error) {
	db, err := bbolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, errors.Wrap(err, "persistence: open bbolt")
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{nodesBucket, standsBucket, treesBucket, strataBucket, collectedBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "persistence: provision buckets")
	}
	return &BoltSink{db: db}, nil
}

func rowKey(standID, path string) []byte {
	return []byte(standID + "|" + path)
}

func subRowKey(standID, path string, row int) []byte {
	return []byte(fmt.Sprintf("%s|%s|%06d", standID, path, row))
}

// Persist implements Sink.
func (s *BoltSink) Persist(path string, p *stand.Payload) error {
	if s.closed {
		return ErrSinkClosed
	}
	node, standRow, treeRows, strataRows, collected, err := buildRows(path, p)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := putJSON(tx.Bucket(nodesBucket), rowKey(node.StandIdentifier, path), node); err != nil {
			return err
		}
		if err := putJSON(tx.Bucket(standsBucket), rowKey(standRow.StandIdentifier, path), standRow); err != nil {
			return err
		}
		treesB := tx.Bucket(treesBucket)
		for _, row := range treeRows {
			if err := putJSON(treesB, subRowKey(row.StandIdentifier, path, row.RowIndex), row); err != nil {
				return err
			}
		}
		strataB := tx.Bucket(strataBucket)
		for _, row := range strataRows {
			if err := putJSON(strataB, subRowKey(row.StandIdentifier, path, row.RowIndex), row); err != nil {
				return err
			}
		}
		collectedRoot := tx.Bucket(collectedBucket)
		for _, row := range collected {
			kindBucket, err := collectedRoot.CreateBucketIfNotExists([]byte(row.Kind))
			if err != nil {
				return err
			}
			key := subRowKey(row.StandIdentifier, path, row.Seq)
			if err := kindBucket.Put(key, []byte(row.Payload)); err != nil {
				return err
			}
		}
		return nil
	})
}

func putJSON(b *bbolt.Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put(key, data)
}

// Close releases the underlying file; every Persist call has already
// committed its own transaction.
func (s *BoltSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
