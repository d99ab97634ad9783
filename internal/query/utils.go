package query

import (
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/internal/types"
	"github.com/tobsdb/tobsrel/pkg"
)

func concat[T any](a, b []T) []T {
	res := make([]T, 0, len(a)+len(b))
	res = append(res, a...)
	return append(res, b...)
}

func pick[T any](from []T, cols []int) []T {
	res := make([]T, len(cols))
	for i, col := range cols {
		res[i] = from[col]
	}
	return res
}

// matchColumns reports whether tup1 and tup2 agree on every paired column.
func matchColumns(tup1 builder.Tuple, cols1 []int, tup2 builder.Tuple, cols2 []int) bool {
	for i := range cols1 {
		if !types.EqualValues(tup1[cols1[i]], tup2[cols2[i]]) {
			return false
		}
	}
	return true
}

// containsTuple reports whether rows holds a tuple structurally equal to tup.
func containsTuple(rows []builder.Tuple, tup builder.Tuple) bool {
	for _, row := range rows {
		if types.EqualTuples(row, tup) {
			return true
		}
	}
	return false
}

// compatible checks that t1 and t2 have the same arity and the same domain
// at every position. Attribute names are not compared.
func compatible(t1, t2 *builder.Table) error {
	if len(t1.Domains) != len(t2.Domains) {
		err := &SchemaMismatchError{t1.Name, t2.Name, -1}
		pkg.WarnLog("compatible:", err)
		return err
	}
	for i := range t1.Domains {
		if t1.Domains[i] != t2.Domains[i] {
			err := &SchemaMismatchError{t1.Name, t2.Name, i}
			pkg.WarnLog("compatible:", err)
			return err
		}
	}
	return nil
}
