package builder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tobsdb/tobsrel/internal/types"
	"github.com/tobsdb/tobsrel/pkg"
)

// Tuple is one row, aligned with the table's attributes.
type Tuple = []any

type Table struct {
	Name       string
	Attributes []string
	Domains    []types.Domain
	// primary key attribute names
	Key []string

	Schema *Schema `json:"-"`

	tuples    []Tuple
	key_cols  []int
	index     *PrimaryIndex
	has_index bool
	warnings  []error
}

// newTable builds an empty table that maintains its primary key index.
func newTable(name string, attributes []string, domains []types.Domain, key []string) (*Table, error) {
	if len(attributes) == 0 {
		return nil, fmt.Errorf("%w: table %s has no attributes", ErrInvalidTable, name)
	}
	if len(attributes) != len(domains) {
		return nil, fmt.Errorf("%w: table %s has %d attributes and %d domains",
			ErrInvalidTable, name, len(attributes), len(domains))
	}
	seen := map[string]bool{}
	for _, a := range attributes {
		if seen[a] {
			return nil, fmt.Errorf("%w: table %s repeats attribute %s", ErrInvalidTable, name, a)
		}
		seen[a] = true
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: table %s has no primary key", ErrInvalidTable, name)
	}

	t := &Table{
		Name:       name,
		Attributes: attributes,
		Domains:    domains,
		Key:        key,
		tuples:     []Tuple{},
		index:      NewPrimaryIndex(),
		has_index:  true,
	}
	cols, err := t.Columns(key)
	if err != nil {
		return nil, fmt.Errorf("%w: primary key: %s", ErrInvalidTable, err)
	}
	t.key_cols = cols
	return t, nil
}

// newDerivedTable wraps an operator's output. Its index is empty.
// Derived schemas are not validated: a cartesian product may repeat names.
func newDerivedTable(name string, attributes []string, domains []types.Domain, key []string, tuples []Tuple) *Table {
	t := &Table{
		Name:       name,
		Attributes: attributes,
		Domains:    domains,
		Key:        key,
		tuples:     tuples,
		index:      NewPrimaryIndex(),
	}
	t.key_cols = make([]int, len(key))
	for i, k := range key {
		t.key_cols[i] = t.Col(k)
	}
	return t
}

// parseTableDef splits the whitespace separated definition strings and
// resolves every domain token. Unresolved tokens become warnings.
func parseTableDef(name, attributes, domains, key string) (*Table, error) {
	attrs := strings.Fields(attributes)
	tokens := strings.Fields(domains)

	resolved := make([]types.Domain, len(tokens))
	warnings := []error{}
	for i, token := range tokens {
		d, ok := types.ResolveDomain(token)
		if !ok {
			attr := ""
			if i < len(attrs) {
				attr = attrs[i]
			}
			w := &DomainResolutionWarning{Table: name, Attribute: attr, Token: token}
			pkg.WarnLog(w)
			warnings = append(warnings, w)
		}
		resolved[i] = d
	}

	t, err := newTable(name, attrs, resolved, strings.Fields(key))
	if err != nil {
		return nil, err
	}
	t.warnings = warnings
	return t, nil
}

func (t *Table) Tuples() []Tuple { return t.tuples }

func (t *Table) Len() int { return len(t.tuples) }

func (t *Table) Arity() int { return len(t.Attributes) }

// HasIndex is false for tables built from an operator's output until Reindex is called.
func (t *Table) HasIndex() bool { return t.has_index }

func (t *Table) Index() *PrimaryIndex { return t.index }

// Warnings returns the diagnostics collected while the table was defined.
func (t *Table) Warnings() []error { return t.warnings }

// Col returns the position of the first attribute named attr, or -1.
func (t *Table) Col(attr string) int {
	return slices.Index(t.Attributes, attr)
}

// Columns resolves attribute names to positions.
func (t *Table) Columns(attrs []string) ([]int, error) {
	cols := make([]int, len(attrs))
	for i, attr := range attrs {
		col := t.Col(attr)
		if col < 0 {
			return nil, &AttributeNotFoundError{Table: t.Name, Attribute: attr}
		}
		cols[i] = col
	}
	return cols, nil
}

// KeyOf projects tup onto the primary key columns.
func (t *Table) KeyOf(tup Tuple) KeyValue {
	key := make(KeyValue, len(t.key_cols))
	for i, col := range t.key_cols {
		if col >= 0 && col < len(tup) {
			key[i] = tup[col]
		}
	}
	return key
}

func (t *Table) typeCheck(tup Tuple) error {
	if len(tup) != len(t.Domains) {
		return &TypeMismatchError{
			Table:    t.Name,
			Column:   -1,
			Expected: fmt.Sprint(len(t.Domains)),
			Found:    fmt.Sprint(len(tup)),
		}
	}

	for i, v := range tup {
		d, ok := types.DomainOf(v)
		if !ok {
			return &TypeMismatchError{t.Name, i, t.Domains[i].String(), fmt.Sprintf("%T", v)}
		}

		if t.Domains[i].IsSet() {
			if d != t.Domains[i] {
				return &TypeMismatchError{t.Name, i, t.Domains[i].String(), fmt.Sprintf("%s (%T)", d, v)}
			}
			continue
		}

		// unset domain: the first stored row decides the column's type
		if len(t.tuples) > 0 && !types.SameType(v, t.tuples[0][i]) {
			return &TypeMismatchError{t.Name, i, fmt.Sprintf("%T", t.tuples[0][i]), fmt.Sprintf("%T", v)}
		}
	}
	return nil
}

// Insert appends tup and indexes it under its primary key.
// A later tuple with an equal key replaces the earlier one in the index.
func (t *Table) Insert(tup Tuple) error {
	if err := t.typeCheck(tup); err != nil {
		return err
	}
	t.tuples = append(t.tuples, tup)
	t.index.Put(t.KeyOf(tup), tup)
	return nil
}

// InsertMany inserts tuples in order and stops at the first failure.
// It returns the number of tuples inserted.
func (t *Table) InsertMany(tuples ...Tuple) (int, error) {
	for i, tup := range tuples {
		if err := t.Insert(tup); err != nil {
			return i, err
		}
	}
	return len(tuples), nil
}

// Reindex rebuilds the primary key index over the current tuples.
func (t *Table) Reindex() {
	t.index = NewPrimaryIndex()
	for _, tup := range t.tuples {
		t.index.Put(t.KeyOf(tup), tup)
	}
	t.has_index = true
}

// Rename changes the attribute at Column from From to To.
type Rename struct {
	Column int    `json:"column"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type Renames []Rename

// ApplyRenames renames attributes in place. Primary key names follow the
// attribute they refer to.
func (t *Table) ApplyRenames(renames Renames) error {
	attrs := slices.Clone(t.Attributes)
	for _, r := range renames {
		if r.Column < 0 || r.Column >= len(attrs) || attrs[r.Column] != r.From {
			return &AttributeNotFoundError{Table: t.Name, Attribute: r.From}
		}
		attrs[r.Column] = r.To
	}
	for _, r := range renames {
		t.Attributes[r.Column] = r.To
		for i, col := range t.key_cols {
			if col == r.Column {
				t.Key[i] = r.To
			}
		}
	}
	return nil
}
