package query

import (
	"github.com/pkg/errors"
	"github.com/tobsdb/tobsrel/internal/builder"
	"github.com/tobsdb/tobsrel/pkg"
)

// Select returns the tuple stored under key, looked up in t's primary key
// index. The result has t's schema and holds zero or one tuple.
//
// Only Insert fills an index: on a table produced by another operator the
// result is empty, whatever the key, unless the table was reindexed.
// On an indexed table the key must have one value per key attribute.
func Select(t *builder.Table, key builder.KeyValue) (*builder.Table, error) {
	pkg.DebugLog("RA>", t.Name+".select", key)

	rows := []builder.Tuple{}
	if !t.HasIndex() {
		return t.Derive(t.Attributes, t.Domains, t.Key, rows), nil
	}

	if len(key) != len(t.Key) {
		return nil, errors.Wrapf(ErrKeyShape, "select on %s: got %d values for key %v", t.Name, len(key), t.Key)
	}
	if tup, ok := t.Index().Get(key); ok {
		rows = append(rows, tup)
	}

	return t.Derive(t.Attributes, t.Domains, t.Key, rows), nil
}
