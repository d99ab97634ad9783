package query

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrSchemaMismatch = errors.New("incompatible tables")
	ErrKeyShape       = errors.New("key does not match the primary key")
	ErrColumnPairs    = errors.New("join columns must pair up")
)

// SchemaMismatchError reports why two tables are not union compatible.
// Position is -1 when the arity differs, otherwise the first column whose
// domains disagree.
type SchemaMismatchError struct {
	Left     string
	Right    string
	Position int
}

func (e *SchemaMismatchError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("tables %s and %s have different arity", e.Left, e.Right)
	}
	return fmt.Sprintf("tables %s and %s disagree on domain %d", e.Left, e.Right, e.Position)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }
