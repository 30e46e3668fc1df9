package vector

import (
	"fmt"
	"math"
	"sort"
)

// Kind identifies the primitive type backing a Field.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindVec3
)

// Field declares one named column of a Schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered list of columns a Store maintains. Column order is
// preserved across Create/Read/Finalize/Clone and determines iteration
// order for row-shaped operations.
type Schema []Field

// anyColumn is the type-erased interface every typedColumn[T] satisfies so
// Store can hold heterogeneous columns behind a single map.
type anyColumn interface {
	length() int
	appendDefault()
	insertDefaultAt(i int)
	deleteIndices(idx []int)
	clone() anyColumn
	setFromAny(i int, v any) error
	getAny(i int) any
}

type typedColumn[T any] struct {
	col   Column[T]
	deflt T
}

func (c *typedColumn[T]) length() int             { return c.col.length() }
func (c *typedColumn[T]) appendDefault()          { c.col.appendValue(c.deflt) }
func (c *typedColumn[T]) insertDefaultAt(i int)   { c.col.insertAt(i, c.deflt) }
func (c *typedColumn[T]) deleteIndices(idx []int) { c.col.deleteIndices(idx) }
func (c *typedColumn[T]) getAny(i int) any        { return c.col.get(i) }

func (c *typedColumn[T]) clone() anyColumn {
	return &typedColumn[T]{col: c.col.clone(), deflt: c.deflt}
}

func (c *typedColumn[T]) setFromAny(i int, v any) error {
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("vector: value %v (%T) does not match column type %T", v, v, c.deflt)
	}
	c.col.set(i, tv)
	return nil
}

func newColumnForKind(k Kind) (anyColumn, error) {
	switch k {
	case KindInt:
		return &typedColumn[int32]{deflt: -1}, nil
	case KindFloat:
		return &typedColumn[float64]{deflt: math.NaN()}, nil
	case KindString:
		return &typedColumn[string]{deflt: ""}, nil
	case KindBool:
		return &typedColumn[bool]{deflt: false}, nil
	case KindVec3:
		return &typedColumn[[3]float64]{deflt: [3]float64{math.NaN(), math.NaN(), math.NaN()}}, nil
	default:
		return nil, ErrUnknownKind
	}
}

// Store is a structure-of-arrays column collection: every declared column
// has identical length (Store.Len), is addressed by name, and supports
// copy-on-write branch forking via Finalize/Clone.
type Store struct {
	schema    Schema
	columns   map[string]anyColumn
	order     []string
	size      int
	finalized bool
}

// NewStore builds an empty Store for the given Schema.
func NewStore(schema Schema) (*Store, error) {
	cols := make(map[string]anyColumn, len(schema))
	order := make([]string, len(schema))
	for i, f := range schema {
		col, err := newColumnForKind(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("vector: field %q: %w", f.Name, err)
		}
		cols[f.Name] = col
		order[i] = f.Name
	}
	return &Store{schema: schema, columns: cols, order: order}, nil
}

// Len returns the store's row count, equal to every column's length.
func (s *Store) Len() int { return s.size }

// Schema returns the store's column declarations, in order.
func (s *Store) Schema() Schema { return s.schema }

// Finalized reports whether Finalize has been called on this Store (or an
// ancestor it was cloned from).
func (s *Store) Finalized() bool { return s.finalized }

// Create appends (or, if index is non-nil, inserts) one row. Fields absent
// from row take the type-specific default for their column.
func (s *Store) Create(row map[string]any, index *int) error {
	pos := s.size
	if index != nil {
		if *index < 0 || *index > s.size {
			return fmt.Errorf("vector: create index %d: %w", *index, ErrIndexOutOfRange)
		}
		pos = *index
	}
	for _, name := range s.order {
		if index != nil {
			s.columns[name].insertDefaultAt(pos)
		} else {
			s.columns[name].appendDefault()
		}
	}
	s.size++
	for name, v := range row {
		col, ok := s.columns[name]
		if !ok {
			return fmt.Errorf("vector: create: %w: %s", ErrColumnNotFound, name)
		}
		if err := col.setFromAny(pos, v); err != nil {
			return err
		}
	}
	return nil
}

// CreateMany appends (or inserts, in ascending order) several rows.
func (s *Store) CreateMany(rows []map[string]any, indices []int) error {
	for i, row := range rows {
		var idx *int
		if indices != nil {
			v := indices[i]
			idx = &v
		}
		if err := s.Create(row, idx); err != nil {
			return err
		}
	}
	return nil
}

// Read returns a copy of the row at index as a name→value map.
func (s *Store) Read(index int) (map[string]any, error) {
	if index < 0 || index >= s.size {
		return nil, fmt.Errorf("vector: read index %d: %w", index, ErrIndexOutOfRange)
	}
	row := make(map[string]any, len(s.order))
	for _, name := range s.order {
		row[name] = s.columns[name].getAny(index)
	}
	return row, nil
}

// Update overwrites the named fields of the row at index. Mutated columns
// are copy-on-write cloned if currently shared with another Store.
func (s *Store) Update(partial map[string]any, index int) error {
	if index < 0 || index >= s.size {
		return fmt.Errorf("vector: update index %d: %w", index, ErrIndexOutOfRange)
	}
	for name, v := range partial {
		col, ok := s.columns[name]
		if !ok {
			return fmt.Errorf("vector: update: %w: %s", ErrColumnNotFound, name)
		}
		if err := col.setFromAny(index, v); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the rows at the given indices, compacting every column.
func (s *Store) Delete(indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return fmt.Errorf("vector: delete: duplicate index %d", sorted[i])
		}
	}
	for _, i := range sorted {
		if i < 0 || i >= s.size {
			return fmt.Errorf("vector: delete index %d: %w", i, ErrIndexOutOfRange)
		}
	}
	for _, name := range s.order {
		s.columns[name].deleteIndices(sorted)
	}
	s.size -= len(sorted)
	return nil
}

// Finalize marks every column of s read-only (copy-on-write from here on)
// and returns a shallow clone sharing the same backing arrays. Both s and
// the returned Store may keep being read from directly; the first mutation
// of a given column on either side clones just that column.
func (s *Store) Finalize() *Store {
	clone := &Store{
		schema:    s.schema,
		columns:   make(map[string]anyColumn, len(s.columns)),
		order:     s.order,
		size:      s.size,
		finalized: true,
	}
	for name, col := range s.columns {
		clone.columns[name] = col.clone()
	}
	s.finalized = true
	return clone
}

// Float64 returns a read view of a float64 column's backing slice. Callers
// must not mutate the returned slice; use Update/SetFloat64 instead.
func (s *Store) Float64(name string) ([]float64, error) {
	col, ok := s.columns[name].(*typedColumn[float64])
	if !ok {
		return nil, fmt.Errorf("vector: %w: %s (not float64)", ErrColumnNotFound, name)
	}
	return col.col.data, nil
}

// Int32 returns a read view of an int32 column's backing slice.
func (s *Store) Int32(name string) ([]int32, error) {
	col, ok := s.columns[name].(*typedColumn[int32])
	if !ok {
		return nil, fmt.Errorf("vector: %w: %s (not int32)", ErrColumnNotFound, name)
	}
	return col.col.data, nil
}

// String returns a read view of a string column's backing slice.
func (s *Store) String(name string) ([]string, error) {
	col, ok := s.columns[name].(*typedColumn[string])
	if !ok {
		return nil, fmt.Errorf("vector: %w: %s (not string)", ErrColumnNotFound, name)
	}
	return col.col.data, nil
}

// Bool returns a read view of a bool column's backing slice.
func (s *Store) Bool(name string) ([]bool, error) {
	col, ok := s.columns[name].(*typedColumn[bool])
	if !ok {
		return nil, fmt.Errorf("vector: %w: %s (not bool)", ErrColumnNotFound, name)
	}
	return col.col.data, nil
}

// SetFloat64 writes a single float64 value, copy-on-write cloning the
// column first if it is currently shared.
func (s *Store) SetFloat64(name string, i int, v float64) error {
	col, ok := s.columns[name].(*typedColumn[float64])
	if !ok {
		return fmt.Errorf("vector: %w: %s (not float64)", ErrColumnNotFound, name)
	}
	if i < 0 || i >= s.size {
		return fmt.Errorf("vector: set index %d: %w", i, ErrIndexOutOfRange)
	}
	col.col.set(i, v)
	return nil
}

// ReplaceFloat64 overwrites a float64 column's entire backing array in one
// shot (used by treatments that compute a new column vectorized rather
// than element by element). The new slice's length must equal Store.Len.
func (s *Store) ReplaceFloat64(name string, data []float64) error {
	col, ok := s.columns[name].(*typedColumn[float64])
	if !ok {
		return fmt.Errorf("vector: %w: %s (not float64)", ErrColumnNotFound, name)
	}
	if len(data) != s.size {
		return fmt.Errorf("vector: replace %s: %w", name, ErrLengthMismatch)
	}
	col.col.owned = true
	col.col.data = data
	return nil
}
