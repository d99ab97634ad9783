package query

import (
	"slices"

	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/pkg"
)

// NaturalJoin joins t1 and t2 on every attribute name they share.
//
// Without shared names the result is the cartesian product and the schemas
// are concatenated. Otherwise a pair of tuples joins when it agrees on all
// shared attributes, and the shared columns appear once, with t1's values.
//
// The result keeps t1's primary key.
func NaturalJoin(t1, t2 *builder.Table) (*builder.Table, error) {
	pkg.DebugLog("RA>", t1.Name+".join", t2.Name)

	common := pkg.Filter(t1.Attributes, func(attr string) bool {
		return slices.Contains(t2.Attributes, attr)
	})

	rows := []builder.Tuple{}

	if len(common) == 0 {
		for _, tup1 := range t1.Tuples() {
			for _, tup2 := range t2.Tuples() {
				rows = append(rows, concat(tup1, tup2))
			}
		}
		return t1.Derive(
			concat(t1.Attributes, t2.Attributes),
			concat(t1.Domains, t2.Domains),
			t1.Key,
			rows,
		), nil
	}

	pos1, err := t1.Columns(common)
	if err != nil {
		return nil, err
	}
	pos2, err := t2.Columns(common)
	if err != nil {
		return nil, err
	}

	// t2 columns that are not shared, in t2 order
	rest := make([]int, len(t2.Attributes))
	for i := range rest {
		rest[i] = i
	}
	rest = pkg.Filter(rest, func(col int) bool {
		return !slices.Contains(pos2, col)
	})

	for _, tup1 := range t1.Tuples() {
		for _, tup2 := range t2.Tuples() {
			if matchColumns(tup1, pos1, tup2, pos2) {
				rows = append(rows, concat(tup1, pick(tup2, rest)))
			}
		}
	}

	return t1.Derive(
		concat(t1.Attributes, pick(t2.Attributes, rest)),
		concat(t1.Domains, pick(t2.Domains, rest)),
		t1.Key,
		rows,
	), nil
}
