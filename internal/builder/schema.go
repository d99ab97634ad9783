package builder

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tobsdb/tobsrel/internal/types"
	"github.com/tobsdb/tobsrel/pkg"
)

type SchemaOptions struct {
	// IndexDerived makes every operator output build its own primary key index.
	IndexDerived bool
}

// Schema is the catalog tables are created in. It owns the counter used to
// name derived tables, so names are deterministic per schema.
type Schema struct {
	Locker sync.RWMutex
	Tables *pkg.InsertSortMap[string, *Table]

	// next suffix for derived table names
	IdTracker atomic.Int64

	IndexDerived bool
}

func NewSchema(opts SchemaOptions) *Schema {
	return &Schema{
		Tables:       pkg.NewInsertSortMap[string, *Table](),
		IndexDerived: opts.IndexDerived,
	}
}

func (s *Schema) GetLocker() *sync.RWMutex { return &s.Locker }

// CreateTable defines an empty table from whitespace separated attribute
// names, domain tokens and primary key names, and registers it.
func (s *Schema) CreateTable(name, attributes, domains, key string) (*Table, error) {
	if s.Tables.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrTableExists, name)
	}
	t, err := parseTableDef(name, attributes, domains, key)
	if err != nil {
		return nil, err
	}
	t.Schema = s
	s.Tables.Push(name, t)
	return t, nil
}

// AddTable registers a table under its name.
func (s *Schema) AddTable(t *Table) error {
	if s.Tables.Has(t.Name) {
		return fmt.Errorf("%w: %s", ErrTableExists, t.Name)
	}
	t.Schema = s
	s.Tables.Push(t.Name, t)
	return nil
}

// DropTable removes a table from the catalog. Tables derived from it keep
// their tuples.
func (s *Schema) DropTable(name string) bool {
	if !s.Tables.Has(name) {
		return false
	}
	s.Tables.Delete(name)
	return true
}

func (s *Schema) Table(name string) (*Table, bool) {
	if !s.Tables.Has(name) {
		return nil, false
	}
	return s.Tables.Get(name), true
}

func (s *Schema) TableNames() []string {
	return slices.Clone(s.Tables.Sorted)
}

// NextName returns base followed by the schema's next counter value.
func (s *Schema) NextName(base string) string {
	return fmt.Sprintf("%s%d", base, s.IdTracker.Add(1)-1)
}

// Derive wraps an operator's output as a new table named after source.
// Names already in the catalog are skipped.
// Schema slices are copied; tuples are kept as given.
// The result is not registered.
func (s *Schema) Derive(source *Table, attributes []string, domains []types.Domain, key []string, tuples []Tuple) *Table {
	name := s.NextName(source.Name)
	for s.Tables.Has(name) {
		name = s.NextName(source.Name)
	}
	t := newDerivedTable(
		name,
		slices.Clone(attributes),
		slices.Clone(domains),
		slices.Clone(key),
		tuples,
	)
	t.Schema = s
	if s.IndexDerived {
		t.Reindex()
	}
	return t
}

// Derive wraps an operator's output using the table's schema.
// Tables without a schema get one of their own.
func (t *Table) Derive(attributes []string, domains []types.Domain, key []string, tuples []Tuple) *Table {
	if t.Schema == nil {
		t.Schema = NewSchema(SchemaOptions{})
	}
	return t.Schema.Derive(t, attributes, domains, key, tuples)
}
