package builder

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrDomainResolution  = errors.New("domain not resolved")
	ErrInvalidTable      = errors.New("invalid table definition")
	ErrTableExists       = errors.New("table already exists")
)

// TypeMismatchError is returned by Insert when a tuple does not fit the
// table's row shape. Column is -1 when the arity is wrong.
type TypeMismatchError struct {
	Table    string
	Column   int
	Expected string
	Found    string
}

func (e *TypeMismatchError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("insert into %s: expected %s values, found %s", e.Table, e.Expected, e.Found)
	}
	return fmt.Sprintf("insert into %s: column %d expects %s, found %s", e.Table, e.Column, e.Expected, e.Found)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

type AttributeNotFoundError struct {
	Table     string
	Attribute string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("attribute %q not found in table %s", e.Attribute, e.Table)
}

func (e *AttributeNotFoundError) Unwrap() error { return ErrAttributeNotFound }

// DomainResolutionWarning records a domain token that did not resolve.
// The table is still built; the column's domain is left unset.
type DomainResolutionWarning struct {
	Table     string
	Attribute string
	Token     string
}

func (e *DomainResolutionWarning) Error() string {
	return fmt.Sprintf("table %s: domain %q of attribute %s not resolved", e.Table, e.Token, e.Attribute)
}

func (e *DomainResolutionWarning) Unwrap() error { return ErrDomainResolution }
