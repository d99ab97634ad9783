package builder

import (
	"fmt"
	"strings"
)

const printRule = "----------------------------------------------------------------------------------------------------"

func joinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",\t")
}

// String renders the table for people to read. The format is not stable.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(printRule + "\n")
	b.WriteString(t.Name + "\n-\n")
	b.WriteString(joinValues(t.Attributes) + "\n")
	for _, tup := range t.tuples {
		b.WriteString(joinValues(tup) + "\n")
	}
	b.WriteString(printRule + "\n")
	return b.String()
}
