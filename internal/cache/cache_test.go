package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens-dev/ledgerlens/internal/coerce"
)

func entry(lines ...int) Entry {
	e := Entry{Format: "csv"}
	for _, l := range lines {
		e.Rows = append(e.Rows, coerce.Row{Line: l})
	}
	return e
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("statement one"))
	assert.Equal(t, a, Fingerprint([]byte("statement one")))
	assert.NotEqual(t, a, Fingerprint([]byte("statement two")))
	assert.Equal(t, "ef46db3751d8e999", Fingerprint(nil), "xxhash64 of empty input")
}

func TestGetPut(t *testing.T) {
	c := New(2)
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("a", entry(22, 24))
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "csv", got.Format)
	assert.Len(t, got.Rows, 2)

	c.Put("a", entry(22))
	got, _ = c.Get("a")
	assert.Len(t, got.Rows, 1, "put replaces")
	assert.Equal(t, 1, c.Len())
}

func TestDefaultSizeDisplacesPreviousFile(t *testing.T) {
	c := New(1)
	c.Put("first", entry(1))
	c.Put("second", entry(2))

	_, ok := c.Get("first")
	assert.False(t, ok)
	_, ok = c.Get("second")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestLeastRecentlyUsedIsDisplaced(t *testing.T) {
	c := New(2)
	c.Put("a", entry(1))
	c.Put("b", entry(2))
	c.Get("a")
	c.Put("c", entry(3))

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestEvictAndPurge(t *testing.T) {
	c := New(3)
	c.Put("a", entry(1))
	c.Put("b", entry(2))

	assert.True(t, c.Evict("a"))
	assert.False(t, c.Evict("a"))
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok)
}

func TestNewClampsSize(t *testing.T) {
	c := New(0)
	c.Put("a", entry(1))
	c.Put("b", entry(2))
	assert.Equal(t, 1, c.Len())
}

func TestConcurrentUse(t *testing.T) {
	c := New(4)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%6)
			c.Put(key, entry(i))
			c.Get(key)
			if i%5 == 0 {
				c.Evict(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 4)
}
