package cache

import "sync"

// FIFO is a bounded key-value cache with insertion-order eviction. Reads never
// promote an entry; when the cache is full, storing a new key evicts the
// single oldest-inserted entry. This trades hit-rate for predictable eviction
// under concurrent access.
//
// The lock guards only the in-memory maps; callers must compute values outside
// any call into the cache.
type FIFO[V any] struct {
	mu       sync.Mutex
	capacity int
	order    []string
	items    map[string]V
}

// NewFIFO creates a cache holding at most capacity entries. Capacity must be
// at least 1.
func NewFIFO[V any](capacity int) *FIFO[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFO[V]{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		items:    make(map[string]V, capacity),
	}
}

// Get returns the cached value for key, if present.
func (c *FIFO[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

// Add stores value under key, evicting the oldest entry first when the cache
// is full. Overwriting an existing key keeps its original insertion position.
func (c *FIFO[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		c.items[key] = value
		return
	}

	if len(c.items) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}

	c.items[key] = value
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *FIFO[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
