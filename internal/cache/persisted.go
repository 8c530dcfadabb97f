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
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// ensure Persisted implements Strategy at compile time.
var _ Strategy = (*Persisted)(nil)

// Persisted is a write-through cache backed by a durable KeyValue bucket.
// Writes are acknowledged by the backing store before Set returns; reads
// fall through to the store on a front-map miss, so entries survive process
// restarts. Keys are stored URL-base64 encoded under a prefix derived from
// the cache name, allowing many caches to share one bucket.
type Persisted struct {
	name       string
	defaultTTL time.Duration
	kv         KV
	logger     *slog.Logger

	mu    sync.Mutex
	front map[string]entry
	rec   recorder
}

// persistedEntry is the JSON wire form of one durable entry. Values must be
// JSON-marshalable.
type persistedEntry struct {
	Value     any       `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewPersisted creates a cache persisted to the given KeyValue bucket.
func NewPersisted(
	logger *slog.Logger,
	name string,
	kv KV,
	defaultTTL time.Duration,
) *Persisted {
	return &Persisted{
		name:       name,
		defaultTTL: defaultTTL,
		kv:         kv,
		logger:     logger,
		front:      make(map[string]entry),
	}
}

// Name returns the cache name.
func (c *Persisted) Name() string { return c.name }

// storeKey encodes key into the character set NATS KV accepts, namespaced
// by the cache name.
func (c *Persisted) storeKey(key string) string {
	return c.name + "." + base64.RawURLEncoding.EncodeToString([]byte(key))
}

// Get returns the value under key, consulting the backing store when the
// front map misses. Backing-store read errors are logged and read as a miss.
func (c *Persisted) Get(
	key string,
	opts ...GetOption,
) (any, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.front[key]; ok {
		if !e.expired(now) {
			c.rec.hit()
			return e.value, true
		}
		delete(c.front, key)
		_ = c.kv.Purge(c.storeKey(key))
	}

	if e, ok := c.fetch(key, now); ok {
		c.rec.hit()
		c.front[key] = e
		return e.value, true
	}

	c.rec.miss()

	o := applyGetOptions(opts)
	if !o.hasDefault {
		return nil, false
	}

	if err := c.put(key, o.defValue, expiry(o.defTTL, now)); err != nil {
		c.logger.Warn("failed persisting default entry",
			slog.String("cache", c.name),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	return o.defValue, true
}

// fetch loads one entry from the backing store, purging it when expired.
// Must be called with c.mu held.
func (c *Persisted) fetch(
	key string,
	now time.Time,
) (entry, bool) {
	kve, err := c.kv.Get(c.storeKey(key))
	if err != nil {
		if !errors.Is(err, nats.ErrKeyNotFound) {
			c.logger.Warn("failed reading persisted entry",
				slog.String("cache", c.name),
				slog.String("error", err.Error()),
			)
		}
		return entry{}, false
	}

	var pe persistedEntry
	if err := json.Unmarshal(kve.Value(), &pe); err != nil {
		c.logger.Warn("failed decoding persisted entry",
			slog.String("cache", c.name),
			slog.String("error", err.Error()),
		)
		return entry{}, false
	}

	e := entry{value: pe.Value, expiresAt: pe.ExpiresAt}
	if e.expired(now) {
		_ = c.kv.Purge(c.storeKey(key))
		return entry{}, false
	}

	return e, true
}

// put writes an entry through to the backing store and the front map.
// Must be called with c.mu held.
func (c *Persisted) put(
	key string,
	value any,
	expiresAt time.Time,
) error {
	data, err := json.Marshal(persistedEntry{Value: value, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if _, err := c.kv.Put(c.storeKey(key), data); err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}

	c.front[key] = entry{value: value, expiresAt: expiresAt}

	return nil
}

// Set stores value under key, returning only once the backing store has
// acknowledged the write.
func (c *Persisted) Set(
	key string,
	value any,
	opts ...SetOption,
) error {
	ttl := resolveTTL(c.defaultTTL, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.put(key, value, expiry(ttl, time.Now()))
}

// Remove deletes key from the front map and the backing store.
func (c *Persisted) Remove(
	key string,
) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.front[key]
	delete(c.front, key)

	if err := c.kv.Purge(c.storeKey(key)); err != nil {
		c.logger.Warn("failed purging persisted entry",
			slog.String("cache", c.name),
			slog.String("error", err.Error()),
		)
	}

	return ok
}

// Increment atomically adds delta to the counter under key, starting from
// zero when absent, persisting the new value before returning it.
func (c *Persisted) Increment(
	key string,
	delta int64,
) (int64, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.front[key]
	if ok && e.expired(now) {
		delete(c.front, key)
		ok = false
	}
	if !ok {
		e, ok = c.fetch(key, now)
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
	if err := c.put(key, current, expiresAt); err != nil {
		return 0, err
	}

	return current, nil
}

// Clear removes every entry belonging to this cache from the backing store.
// Other caches sharing the bucket are untouched.
func (c *Persisted) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.front = make(map[string]entry)

	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}
		return fmt.Errorf("list persisted keys: %w", err)
	}

	prefix := c.name + "."
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if err := c.kv.Purge(key); err != nil {
			return fmt.Errorf("purge persisted entry: %w", err)
		}
	}

	return nil
}

// Size returns the front-map entry count. Entries only present in the
// backing store are not counted until read.
func (c *Persisted) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.front)
}

// Stats returns hit/miss counters.
func (c *Persisted) Stats() InstanceStats {
	return c.rec.stats(KindPersist, c.Size())
}

// Stop drops the front map; the backing store keeps its entries.
func (c *Persisted) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.front = make(map[string]entry)
}
