package types

import (
	"fmt"
	"strings"
)

// DomainOf classifies a Go value. ok is false for values no column can hold.
func DomainOf(v any) (Domain, bool) {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return DomainInteger, true
	case float32, float64:
		return DomainReal, true
	case string:
		return DomainText, true
	case bool:
		return DomainBool, true
	}
	return DomainUnset, false
}

// SameType reports whether a and b have the same dynamic Go type.
func SameType(a, b any) bool {
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

// EqualValues is value equality: same dynamic type and same value.
func EqualValues(a, b any) bool {
	if !SameType(a, b) {
		return false
	}
	if _, ok := DomainOf(a); !ok {
		return false
	}
	return a == b
}

// EqualTuples compares two rows element by element.
func EqualTuples(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualValues(a[i], b[i]) {
			return false
		}
	}
	return true
}

func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch v := v.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

var domainOrder = map[Domain]int{
	DomainUnset:   0,
	DomainBool:    1,
	DomainInteger: 2,
	DomainReal:    3,
	DomainText:    4,
}

func sign[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// CompareValues orders two values by their natural order.
// Values of different domains order by domain; within a domain, values of
// different Go types order by type name once their values tie.
func CompareValues(a, b any) int {
	da, _ := DomainOf(a)
	db, _ := DomainOf(b)
	if da != db {
		return sign(int64(domainOrder[da]), int64(domainOrder[db]))
	}

	c := 0
	switch da {
	case DomainInteger:
		ia, _ := toInt64(a)
		ib, _ := toInt64(b)
		c = sign(ia, ib)
	case DomainReal:
		fa, _ := toFloat64(a)
		fb, _ := toFloat64(b)
		c = sign(fa, fb)
	case DomainText:
		c = strings.Compare(a.(string), b.(string))
	case DomainBool:
		ba, bb := a.(bool), b.(bool)
		if ba != bb {
			c = -1
			if ba {
				c = 1
			}
		}
	default:
		c = strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}

	if c != 0 {
		return c
	}
	return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}
