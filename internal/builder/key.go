package builder

import (
	"fmt"
	"strings"

	"github.com/tobsdb/tobsrel/internal/types"
)

// KeyValue is the ordered composite of a tuple's primary key values.
type KeyValue []any

func (k KeyValue) Equal(other KeyValue) bool {
	return types.EqualTuples(k, other)
}

// Compare orders keys lexicographically over their components.
// A key that is a prefix of another orders first.
func (k KeyValue) Compare(other KeyValue) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		if c := types.CompareValues(k[i], other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	}
	return 0
}

// Encode returns a string that is equal for two keys iff the keys are equal.
func (k KeyValue) Encode() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = fmt.Sprintf("%T:%#v", v, v)
	}
	return strings.Join(parts, "\x1f")
}

func (k KeyValue) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
