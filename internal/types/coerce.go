package types

import (
	"fmt"

	"github.com/tobsdb/tobsrel/pkg"
)

// FromJSON converts a json decoded value into the Go type stored for domain d.
// json decodes every number as float64, so whole numbers headed for Integer
// columns become int. Unset columns take integers for whole numbers too.
func FromJSON(d Domain, v any) (any, error) {
	switch v := v.(type) {
	case float64:
		switch d {
		case DomainReal:
			return v, nil
		case DomainInteger, DomainUnset:
			if pkg.IsWholeNumber(v) {
				return pkg.NumToInt(v), nil
			}
			if d == DomainUnset {
				return v, nil
			}
			return nil, fmt.Errorf("%v is not a whole number", v)
		}
		return v, nil
	case nil:
		return nil, fmt.Errorf("null values are not supported")
	}
	return v, nil
}
