package query

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/pkg"
)

// EquiJoin pairs every tuple of t1 with every tuple of t2 whose cols2 values
// equal its cols1 values, position by position, using a nested loop.
//
// When a right column carries the same name as the left column it is paired
// with, it is renamed with a "2" suffix in the result. t2 is left as is; the
// returned renames can be applied to it with t2.ApplyRenames.
//
// The result keeps t1's primary key.
func EquiJoin(t1 *builder.Table, cols1, cols2 []string, t2 *builder.Table) (*builder.Table, builder.Renames, error) {
	pkg.DebugLog("RA>", t1.Name+".join", cols1, cols2, t2.Name)

	if len(cols1) == 0 || len(cols1) != len(cols2) {
		return nil, nil, errors.Wrapf(ErrColumnPairs, "join %s with %s: %d and %d columns",
			t1.Name, t2.Name, len(cols1), len(cols2))
	}

	pos1, err := t1.Columns(cols1)
	if err != nil {
		pkg.WarnLog("join:", err)
		return nil, nil, err
	}
	pos2, err := t2.Columns(cols2)
	if err != nil {
		pkg.WarnLog("join:", err)
		return nil, nil, err
	}

	rows := []builder.Tuple{}
	for _, tup1 := range t1.Tuples() {
		for _, tup2 := range t2.Tuples() {
			if matchColumns(tup1, pos1, tup2, pos2) {
				rows = append(rows, concat(tup1, tup2))
			}
		}
	}

	right, renames := disambiguate(t1.Attributes, pos1, t2.Attributes, pos2)

	res := t1.Derive(
		concat(t1.Attributes, right),
		concat(t1.Domains, t2.Domains),
		t1.Key,
		rows,
	)
	return res, renames, nil
}

// disambiguate renames each paired right column whose current name equals
// the left column's name. Renames apply in pair order to a copy of attrs2.
func disambiguate(attrs1 []string, pos1 []int, attrs2 []string, pos2 []int) ([]string, builder.Renames) {
	right := slices.Clone(attrs2)
	renames := builder.Renames{}
	for i := range pos2 {
		col := pos2[i]
		if right[col] == attrs1[pos1[i]] {
			renames = append(renames, builder.Rename{Column: col, From: right[col], To: right[col] + "2"})
			right[col] = right[col] + "2"
		}
	}
	return right, renames
}
