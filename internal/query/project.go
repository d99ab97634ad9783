package query

import (
	"slices"

	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/pkg"
)

// Project keeps the named attributes of every tuple, in the requested order.
// Names may repeat. Rows that project to the same values are all kept.
//
// The result keeps t's primary key when every key attribute is requested;
// otherwise the requested attributes become the key.
func Project(t *builder.Table, attributes ...string) (*builder.Table, error) {
	pkg.DebugLog("RA>", t.Name+".project", attributes)

	if len(attributes) == 0 {
		return nil, &builder.AttributeNotFoundError{Table: t.Name, Attribute: ""}
	}
	cols, err := t.Columns(attributes)
	if err != nil {
		pkg.WarnLog("project:", err)
		return nil, err
	}

	key := attributes
	if containsAll(attributes, t.Key) {
		key = t.Key
	}

	rows := make([]builder.Tuple, 0, t.Len())
	for _, tup := range t.Tuples() {
		rows = append(rows, pick(tup, cols))
	}

	return t.Derive(attributes, pick(t.Domains, cols), key, rows), nil
}

func containsAll(set, items []string) bool {
	for _, item := range items {
		if !slices.Contains(set, item) {
			return false
		}
	}
	return true
}
