// Package cache memoizes parsed statements by the content of the file
// they came from.
package cache

import (
	"container/list"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/ledgerlens-dev/ledgerlens/internal/coerce"
)

// Fingerprint returns the content key for data.
func Fingerprint(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// Entry is what the pipeline stores per file: the coerced rows.
type Entry struct {
	Format string
	Rows   []coerce.Row
}

// Cache is a bounded least-recently-used map from fingerprint to Entry.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	order      *list.List // front = most recently used
	items      map[string]*list.Element
}

type item struct {
	key   string
	entry Entry
}

// New creates a Cache holding at most maxEntries entries. Values below one
// are treated as one.
func New(maxEntries int) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache{
		maxEntries: maxEntries,
		order:      list.New(),
		items:      make(map[string]*list.Element),
	}
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return Entry{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*item).entry, true
}

// Put stores entry under key, displacing the least recently used entry
// when the cache is full.
func (c *Cache) Put(key string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*item).entry = entry
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&item{key: key, entry: entry})
	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*item).key)
	}
}

// Evict removes key and reports whether it was present.
func (c *Cache) Evict(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return true
}

// Purge removes every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.items)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
