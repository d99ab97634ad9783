package types_test

import (
	"testing"

	. "github.com/tobsdb/tobsrel/internal/types"
	"gotest.tools/assert"
)

func TestResolveDomain(t *testing.T) {
	for token, want := range map[string]Domain{
		"Integer":   DomainInteger,
		"Long":      DomainInteger,
		"Int":       DomainInteger,
		"Double":    DomainReal,
		"Float":     DomainReal,
		"String":    DomainText,
		"Character": DomainText,
		"Boolean":   DomainBool,
	} {
		d, ok := ResolveDomain(token)
		assert.Assert(t, ok, token)
		assert.Equal(t, d, want, token)
	}

	d, ok := ResolveDomain("Strin")
	assert.Assert(t, !ok)
	assert.Equal(t, d, DomainUnset)
	assert.Equal(t, d.String(), "Unset")
}

func TestDomainOf(t *testing.T) {
	d, ok := DomainOf(1977)
	assert.Assert(t, ok)
	assert.Equal(t, d, DomainInteger)

	d, _ = DomainOf(int64(1977))
	assert.Equal(t, d, DomainInteger)

	d, _ = DomainOf(1.5)
	assert.Equal(t, d, DomainReal)

	d, _ = DomainOf("Fox")
	assert.Equal(t, d, DomainText)

	d, _ = DomainOf(true)
	assert.Equal(t, d, DomainBool)

	_, ok = DomainOf(nil)
	assert.Assert(t, !ok)
	_, ok = DomainOf(struct{}{})
	assert.Assert(t, !ok)
}

func TestEqualValues(t *testing.T) {
	assert.Assert(t, EqualValues(12345, 12345))
	assert.Assert(t, EqualValues("Fox", "Fox"))
	assert.Assert(t, !EqualValues(12345, int64(12345)))
	assert.Assert(t, !EqualValues(1, 1.0))
	assert.Assert(t, !EqualValues(nil, nil))

	assert.Assert(t, EqualTuples([]any{"Fox", 1}, []any{"Fox", 1}))
	assert.Assert(t, !EqualTuples([]any{"Fox", 1}, []any{"Fox", 2}))
	assert.Assert(t, !EqualTuples([]any{"Fox"}, []any{"Fox", 1}))
}

func TestCompareValues(t *testing.T) {
	t.Run("within a domain", func(t *testing.T) {
		assert.Equal(t, CompareValues(1977, 1980), -1)
		assert.Equal(t, CompareValues(1980, 1977), 1)
		assert.Equal(t, CompareValues(1977, 1977), 0)
		assert.Equal(t, CompareValues("Rambo", "Rocky"), -1)
		assert.Equal(t, CompareValues(2.5, 1.5), 1)
		assert.Equal(t, CompareValues(false, true), -1)
	})

	t.Run("across domains", func(t *testing.T) {
		assert.Equal(t, CompareValues(true, 0), -1)
		assert.Equal(t, CompareValues(10, "a"), -1)
		assert.Equal(t, CompareValues("a", 1.5), 1)
	})

	t.Run("mixed integer types tie break on type", func(t *testing.T) {
		assert.Assert(t, CompareValues(1, int64(1)) != 0)
		assert.Equal(t, CompareValues(1, int64(2)), -1)
	})
}

func TestFromJSON(t *testing.T) {
	v, err := FromJSON(DomainInteger, float64(1977))
	assert.NilError(t, err)
	assert.Equal(t, v, 1977)

	_, err = FromJSON(DomainInteger, 19.77)
	assert.ErrorContains(t, err, "not a whole number")

	v, err = FromJSON(DomainReal, float64(2))
	assert.NilError(t, err)
	assert.Equal(t, v, float64(2))

	v, err = FromJSON(DomainText, "Fox")
	assert.NilError(t, err)
	assert.Equal(t, v, "Fox")

	_, err = FromJSON(DomainText, nil)
	assert.ErrorContains(t, err, "null")
}
