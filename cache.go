package settings

import "sync"

// syncCache is a read-mostly map. Misses are built under the write lock, so
// each key is built at most once.
type syncCache[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func newSyncCache[K comparable, V any]() *syncCache[K, V] {
	return &syncCache[K, V]{m: make(map[K]V)}
}

// cacheTx is the view a build function gets of the cache it is filling.
// Entries it puts are published together, and only if the build succeeds.
type cacheTx[K comparable, V any] struct {
	committed map[K]V
	staged    map[K]V
}

func (tx *cacheTx[K, V]) get(key K) (V, bool) {
	if v, ok := tx.staged[key]; ok {
		return v, true
	}
	v, ok := tx.committed[key]
	return v, ok
}

func (tx *cacheTx[K, V]) put(key K, v V) {
	tx.staged[key] = v
}

// load returns the entry for key or builds it.
func (c *syncCache[K, V]) load(key K, build func(tx *cacheTx[K, V]) (V, error)) (V, error) {
	// Fast path: read-lock cache check
	c.mu.RLock()
	if v, ok := c.m[key]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	// Slow path: build and cache with write-lock
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check pattern
	if v, ok := c.m[key]; ok {
		return v, nil
	}

	tx := &cacheTx[K, V]{committed: c.m, staged: make(map[K]V)}
	v, err := build(tx)
	if err != nil {
		var zero V
		return zero, err
	}
	for k, staged := range tx.staged {
		c.m[k] = staged
	}
	c.m[key] = v
	return v, nil
}

func (c *syncCache[K, V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *syncCache[K, V]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[K]V)
}
