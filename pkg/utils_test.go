package pkg_test

import (
	"testing"

	. "github.com/tobsdb/tobsrel/pkg"
	"gotest.tools/assert"
)

func TestFilter(t *testing.T) {
	res := Filter([]int{1, 2, 3, 4, 5, 6}, func(i int) bool {
		return i%2 == 0
	})

	assert.DeepEqual(t, res, []int{2, 4, 6})
}

func TestNumToInt(t *testing.T) {
	assert.Equal(t, NumToInt(1), 1)
	assert.Equal(t, NumToInt(1.1), 1)
	assert.Equal(t, NumToInt(int64(7)), 7)
	assert.Equal(t, NumToInt("7"), 0)
}

func TestIsWholeNumber(t *testing.T) {
	assert.Assert(t, IsWholeNumber(1977))
	assert.Assert(t, !IsWholeNumber(19.77))
}

func TestInsertSortMap(t *testing.T) {
	m := NewInsertSortMap[string, int]()
	m.Push("b", 1)
	m.Push("a", 2)
	m.Push("b", 3)

	assert.Equal(t, m.Len(), 2)
	assert.DeepEqual(t, m.Sorted, []string{"b", "a"})
	assert.Equal(t, m.Get("b"), 3)

	m.Delete("b")
	assert.DeepEqual(t, m.Sorted, []string{"a"})
	assert.Assert(t, !m.Has("b"))
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("debug")
	assert.NilError(t, err)
	assert.Equal(t, level, LogLevelDebug)

	_, err = ParseLogLevel("loud")
	assert.ErrorContains(t, err, "unknown log level")
}
