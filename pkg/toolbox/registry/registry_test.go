package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tbl := New[string, int]()
	assert.NotNil(t, tbl)
	assert.Equal(t, 0, tbl.Len())
}

func TestPutAndGet(t *testing.T) {
	tbl := New[string, int]()

	tbl.Put("one", 1)
	tbl.Put("two", 2)

	v, ok := tbl.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = tbl.Get("three")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestPutOverwriteKeepsPosition(t *testing.T) {
	tbl := New[string, string]()

	tbl.Put("a", "old")
	tbl.Put("b", "b")
	tbl.Put("a", "new")

	v, _ := tbl.Get("a")
	assert.Equal(t, "new", v)
	assert.Equal(t, []string{"a", "b"}, tbl.Keys())
}

func TestInsert(t *testing.T) {
	tbl := New[int, string]()

	assert.True(t, tbl.Insert(1, "first"))
	assert.False(t, tbl.Insert(1, "second"))

	v, _ := tbl.Get(1)
	assert.Equal(t, "first", v)
}

func TestMustGetPanic(t *testing.T) {
	tbl := New[string, int]()
	tbl.Put("key", 42)
	assert.Equal(t, 42, tbl.MustGet("key"))

	assert.PanicsWithValue(t, "registry: key not found", func() {
		tbl.MustGet("nonexistent")
	})
}

func TestTakeIsExactlyOnce(t *testing.T) {
	tbl := New[uint32, string]()
	tbl.Put(10, "cb")

	v, ok := tbl.Take(10)
	assert.True(t, ok)
	assert.Equal(t, "cb", v)

	_, ok = tbl.Take(10)
	assert.False(t, ok)
	assert.False(t, tbl.Has(10))
	assert.Equal(t, 0, tbl.Len())
}

func TestDelete(t *testing.T) {
	tbl := New[string, int]()
	tbl.Put("key", 42)

	tbl.Delete("key")
	tbl.Delete("nonexistent")

	assert.False(t, tbl.Has("key"))
	assert.Equal(t, 0, tbl.Len())
}

func TestKeysInsertionOrder(t *testing.T) {
	tbl := New[int, int]()
	for _, k := range []int{9, 2, 7, 4} {
		tbl.Put(k, k)
	}
	tbl.Delete(7)
	tbl.Put(1, 1)

	assert.Equal(t, []int{9, 2, 4, 1}, tbl.Keys())
}

func TestRangeSnapshot(t *testing.T) {
	tbl := New[int, string]()
	tbl.Put(1, "a")
	tbl.Put(2, "b")
	tbl.Put(3, "c")

	var visited []int
	tbl.Range(func(k int, _ string) bool {
		visited = append(visited, k)
		if k == 1 {
			tbl.Take(2)
			tbl.Put(4, "d")
		}
		return true
	})

	assert.Equal(t, []int{1, 3}, visited)
	assert.True(t, tbl.Has(4))
}

func TestRangeEarlyStop(t *testing.T) {
	tbl := New[string, int]()
	tbl.Put("one", 1)
	tbl.Put("two", 2)

	count := 0
	tbl.Range(func(string, int) bool {
		count++
		return false
	})

	assert.Equal(t, 1, count)
}

func TestGetOrCreate(t *testing.T) {
	tbl := New[string, int]()

	calls := 0
	factory := func() int {
		calls++
		return 42
	}

	assert.Equal(t, 42, tbl.GetOrCreate("key", factory))
	assert.Equal(t, 42, tbl.GetOrCreate("key", factory))
	assert.Equal(t, 1, calls)
}

func TestStructKeys(t *testing.T) {
	type key struct {
		Kind int
		ID   uint32
	}

	tbl := New[key, string]()
	tbl.Put(key{1, 5}, "toolbox")
	tbl.Put(key{2, 5}, "message")

	v, ok := tbl.Get(key{2, 5})
	assert.True(t, ok)
	assert.Equal(t, "message", v)
}
