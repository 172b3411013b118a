// Package cache holds the small shared caching policies: the
// version-gated process cache and the coalescing debouncer.
package cache

import "sync"

// Versioned is a process-wide cache slot gated by a version key. A
// stored value whose version differs from the version asked for is
// treated as absent.
type Versioned[T any] struct {
	mu      sync.RWMutex
	value   *T
	version string
}

// Put stores value under the given version, replacing any prior value
func (c *Versioned[T]) Put(version string, value *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.version = version
}

// Get returns the stored value when its version matches currentVersion.
// A mismatched or empty slot returns (nil, false).
func (c *Versioned[T]) Get(currentVersion string) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.value == nil || c.version != currentVersion {
		return nil, false
	}
	return c.value, true
}

// Clear empties the slot
func (c *Versioned[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.version = ""
}
