package material

import (
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resolver resolves a material name to a record. Resolve never returns
// nil: unknown names yield a placeholder-backed record.
type Resolver interface {
	Resolve(name string) *Record
}

// Cache is a concurrency-safe material cache with an at-most-one-load
// discipline per distinct name.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*Record
	group singleflight.Group
	index *Index

	// Warnf receives missing-texture warnings, once per distinct name.
	// Defaults to log.Printf.
	Warnf func(format string, args ...any)
}

// NewCache creates a material cache backed by the given filesystem index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*Record),
		index: index,
		Warnf: log.Printf,
	}
}

// Resolve loads and caches a material by name. Concurrent resolves of
// the same name share a single load.
func (c *Cache) Resolve(name string) *Record {
	key := strings.ToLower(name)

	// Fast path: read lock
	c.mu.RLock()
	rec, ok := c.items[key]
	c.mu.RUnlock()
	if ok {
		return rec
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		rec, ok := c.items[key]
		c.mu.RUnlock()
		if ok {
			return rec, nil
		}
		rec = c.load(name)
		c.mu.Lock()
		c.items[key] = rec
		c.mu.Unlock()
		return rec, nil
	})
	return v.(*Record)
}

func (c *Cache) load(name string) *Record {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		c.Warnf("material: %q not found, using placeholder", name)
		return Placeholder(name)
	}
	img, err := LoadTexture(path)
	if err != nil {
		c.Warnf("material: %q: %v, using placeholder", name, err)
		return Placeholder(name)
	}
	b := img.Bounds()
	return &Record{Name: name, Width: b.Dx(), Height: b.Dy(), Image: img}
}

// Clear drops every cached record.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]*Record)
	c.mu.Unlock()
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
