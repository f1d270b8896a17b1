package ebitenout

import "sync"

// cache keeps rendered values by key and drops the ones a frame did not
// use. Values are rendered lazily on first use.
type cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry[V]
	render  func(string) V
	release func(V)
}

type cacheEntry[V any] struct {
	value V
	used  bool
}

func newCache[V any](render func(string) V, release func(V)) *cache[V] {
	return &cache[V]{
		entries: make(map[string]*cacheEntry[V]),
		render:  render,
		release: release,
	}
}

// get returns the value for key, rendering it when missing.
func (c *cache[V]) get(key string) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[key]
	if !found {
		e = &cacheEntry[V]{value: c.render(key)}
		c.entries[key] = e
	}
	e.used = true
	return e.value
}

// sweep evicts every entry not fetched since the previous sweep and
// returns how many were evicted.
func (c *cache[V]) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, e := range c.entries {
		if e.used {
			e.used = false
			continue
		}
		if c.release != nil {
			c.release(e.value)
		}
		delete(c.entries, key)
		evicted++
	}
	return evicted
}

func (c *cache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
