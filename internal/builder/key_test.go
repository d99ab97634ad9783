package builder_test

import (
	"testing"

	. "github.com/tobsdb/tobsrel/internal/builder"
	"gotest.tools/assert"
)

func TestKeyValue(t *testing.T) {
	t.Run("compare", func(t *testing.T) {
		assert.Equal(t, KeyValue{"Rocky", 1985}.Compare(KeyValue{"Rocky", 1985}), 0)
		assert.Equal(t, KeyValue{"Rambo", 1978}.Compare(KeyValue{"Rocky", 1985}), -1)
		assert.Equal(t, KeyValue{"Star_Wars", 1980}.Compare(KeyValue{"Star_Wars", 1977}), 1)
		assert.Equal(t, KeyValue{"Star_Wars"}.Compare(KeyValue{"Star_Wars", 1977}), -1)
	})

	t.Run("equal", func(t *testing.T) {
		assert.Assert(t, KeyValue{"Rocky", 1985}.Equal(KeyValue{"Rocky", 1985}))
		assert.Assert(t, !KeyValue{"Rocky", 1985}.Equal(KeyValue{"Rocky", "1985"}))
	})

	t.Run("encode", func(t *testing.T) {
		assert.Equal(t, KeyValue{"Rocky", 1985}.Encode(), KeyValue{"Rocky", 1985}.Encode())
		assert.Assert(t, KeyValue{"Rocky", 1985}.Encode() != KeyValue{"Rocky", "1985"}.Encode())
		assert.Assert(t, KeyValue{"a b"}.Encode() != KeyValue{"a", "b"}.Encode())
		assert.Assert(t, KeyValue{1}.Encode() != KeyValue{1.0}.Encode())
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, KeyValue{"Rocky", 1985}.String(), "(Rocky, 1985)")
	})
}

func TestPrimaryIndex(t *testing.T) {
	idx := NewPrimaryIndex()
	idx.Put(KeyValue{"Star_Wars", 1977}, Tuple{"Star_Wars", 1977})
	idx.Put(KeyValue{"Rocky", 1985}, Tuple{"Rocky", 1985})
	idx.Put(KeyValue{"Rambo", 1978}, Tuple{"Rambo", 1978})
	idx.Put(KeyValue{"Rocky", 1985}, Tuple{"Rocky", 1985, "again"})

	assert.Equal(t, idx.Len(), 3)
	assert.DeepEqual(t, idx.Keys(), []KeyValue{
		{"Rambo", 1978},
		{"Rocky", 1985},
		{"Star_Wars", 1977},
	})

	tup, ok := idx.Get(KeyValue{"Rocky", 1985})
	assert.Assert(t, ok)
	assert.Equal(t, len(tup), 3)

	_, ok = idx.Get(KeyValue{"Rocky", 1986})
	assert.Assert(t, !ok)

	assert.DeepEqual(t, NewPrimaryIndex().Keys(), []KeyValue{})
}
