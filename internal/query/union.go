package query

import (
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/pkg"
)

// Union returns every tuple of t1 followed by the tuples of t2 that are not
// structurally equal to a tuple already in the result.
// The tables must be compatible; the result copies t1's schema.
func Union(t1, t2 *builder.Table) (*builder.Table, error) {
	pkg.DebugLog("RA>", t1.Name+".union", t2.Name)

	if err := compatible(t1, t2); err != nil {
		return nil, err
	}

	rows := make([]builder.Tuple, 0, t1.Len()+t2.Len())
	rows = append(rows, t1.Tuples()...)
	for _, tup := range t2.Tuples() {
		if !containsTuple(rows, tup) {
			rows = append(rows, tup)
		}
	}

	return t1.Derive(t1.Attributes, t1.Domains, t1.Key, rows), nil
}

// Minus returns the tuples of t1 that have no structurally equal tuple in t2.
// The tables must be compatible; the result copies t1's schema.
func Minus(t1, t2 *builder.Table) (*builder.Table, error) {
	pkg.DebugLog("RA>", t1.Name+".minus", t2.Name)

	if err := compatible(t1, t2); err != nil {
		return nil, err
	}

	rows := []builder.Tuple{}
	for _, tup := range t1.Tuples() {
		if !containsTuple(t2.Tuples(), tup) {
			rows = append(rows, tup)
		}
	}

	return t1.Derive(t1.Attributes, t1.Domains, t1.Key, rows), nil
}
