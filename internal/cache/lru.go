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

	lru "github.com/hashicorp/golang-lru/v2"
)

// ensure LRU implements Strategy at compile time.
var _ Strategy = (*LRU)(nil)

// LRU is a bounded cache evicting the least-recently-used entry on
// insert-over-capacity. Recency is updated on both read and write. Per-entry
// TTLs are layered on top of the recency list and checked lazily on read.
type LRU struct {
	name       string
	max        int
	defaultTTL time.Duration

	// mu keeps TTL purges and Increment read-modify-write atomic; the
	// backing cache's own lock does not cover compound operations.
	mu      sync.Mutex
	backing *lru.Cache[string, entry]
	rec     recorder
}

// NewLRU creates a bounded LRU cache holding at most max entries.
func NewLRU(
	name string,
	max int,
	defaultTTL time.Duration,
) (*LRU, error) {
	if max <= 0 {
		max = DefaultLRUMax
	}

	backing, err := lru.New[string, entry](max)
	if err != nil {
		return nil, fmt.Errorf("create lru backing: %w", err)
	}

	return &LRU{
		name:       name,
		max:        max,
		defaultTTL: defaultTTL,
		backing:    backing,
	}, nil
}

// Name returns the cache name.
func (c *LRU) Name() string { return c.name }

// Get returns the value stored under key, treating expired entries as
// absent. A miss with WithDefault stores the default and returns it.
func (c *LRU) Get(
	key string,
	opts ...GetOption,
) (any, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.backing.Get(key); ok {
		if !e.expired(now) {
			c.rec.hit()
			return e.value, true
		}
		c.backing.Remove(key)
	}

	c.rec.miss()

	o := applyGetOptions(opts)
	if !o.hasDefault {
		return nil, false
	}

	c.backing.Add(key, entry{value: o.defValue, expiresAt: expiry(o.defTTL, now)})

	return o.defValue, true
}

// Set stores value under key, evicting the least-recently-used entry when
// over capacity.
func (c *LRU) Set(
	key string,
	value any,
	opts ...SetOption,
) error {
	ttl := resolveTTL(c.defaultTTL, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.backing.Add(key, entry{value: value, expiresAt: expiry(ttl, time.Now())})

	return nil
}

// Remove deletes key, reporting whether it was present.
func (c *LRU) Remove(
	key string,
) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.backing.Remove(key)
}

// Increment atomically adds delta to the counter under key, starting from
// zero when the key is absent or expired.
func (c *LRU) Increment(
	key string,
	delta int64,
) (int64, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	var current int64
	expiresAt := expiry(c.defaultTTL, now)

	if e, ok := c.backing.Get(key); ok && !e.expired(now) {
		n, isNum := toInt64(e.value)
		if !isNum {
			return 0, fmt.Errorf("cache %s: entry %q is not numeric", c.name, key)
		}
		current = n
		expiresAt = e.expiresAt
	}

	current += delta
	c.backing.Add(key, entry{value: current, expiresAt: expiresAt})

	return current, nil
}

// Clear removes all entries.
func (c *LRU) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.backing.Purge()

	return nil
}

// Size returns the current entry count.
func (c *LRU) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.backing.Len()
}

// Stats returns hit/miss counters.
func (c *LRU) Stats() InstanceStats {
	return c.rec.stats(KindLRU, c.Size())
}

// Stop is a no-op for the LRU strategy.
func (c *LRU) Stop() {}
