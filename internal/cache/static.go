// Copyright (c) 2026 Cordell Calitz

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cache

import (
	"fmt"
	"sync"
	"time"
)

// ensure Static implements Strategy at compile time.
var _ Strategy = (*Static)(nil)

// Static is an unbounded in-memory cache. No eviction takes place; entries
// only leave through Remove, Clear, or lazy TTL expiry on read.
type Static struct {
	name       string
	defaultTTL time.Duration

	mu    sync.RWMutex
	items map[string]entry
	rec   recorder
}

// NewStatic creates an unbounded map-backed cache.
func NewStatic(
	name string,
	defaultTTL time.Duration,
) *Static {
	return &Static{
		name:       name,
		defaultTTL: defaultTTL,
		items:      make(map[string]entry),
	}
}

// Name returns the cache name.
func (c *Static) Name() string { return c.name }

// Get returns the value stored under key, treating expired entries as
// absent. A miss with WithDefault stores the default and returns it.
func (c *Static) Get(
	key string,
	opts ...GetOption,
) (any, bool) {
	now := time.Now()

	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if ok && !e.expired(now) {
		c.rec.hit()
		return e.value, true
	}

	c.rec.miss()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under the write lock; a concurrent Set may have landed.
	if e, ok := c.items[key]; ok {
		if !e.expired(now) {
			return e.value, true
		}
		delete(c.items, key)
	}

	o := applyGetOptions(opts)
	if !o.hasDefault {
		return nil, false
	}

	c.items[key] = entry{value: o.defValue, expiresAt: expiry(o.defTTL, now)}

	return o.defValue, true
}

// Set stores value under key.
func (c *Static) Set(
	key string,
	value any,
	opts ...SetOption,
) error {
	ttl := resolveTTL(c.defaultTTL, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry{value: value, expiresAt: expiry(ttl, time.Now())}

	return nil
}

// Remove deletes key, reporting whether it was present.
func (c *Static) Remove(
	key string,
) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	delete(c.items, key)

	return ok
}

// Increment atomically adds delta to the counter under key, starting from
// zero when the key is absent or expired. An existing entry keeps its
// expiry; a fresh counter uses the instance default TTL.
func (c *Static) Increment(
	key string,
	delta int64,
) (int64, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if ok && e.expired(now) {
		delete(c.items, key)
		ok = false
	}

	var current int64
	expiresAt := expiry(c.defaultTTL, now)
	if ok {
		n, isNum := toInt64(e.value)
		if !isNum {
			return 0, fmt.Errorf("cache %s: entry %q is not numeric", c.name, key)
		}
		current = n
		expiresAt = e.expiresAt
	}

	current += delta
	c.items[key] = entry{value: current, expiresAt: expiresAt}

	return current, nil
}

// Clear removes all entries.
func (c *Static) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]entry)

	return nil
}

// Size returns the current entry count, including not-yet-purged expired
// entries.
func (c *Static) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stats returns hit/miss counters.
func (c *Static) Stats() InstanceStats {
	return c.rec.stats(KindStatic, c.Size())
}

// Stop is a no-op for the static strategy.
func (c *Static) Stop() {}

// toInt64 normalizes the numeric types a counter entry may hold.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
