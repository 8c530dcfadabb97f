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

// Package cache provides a registry of named key/value caches with
// interchangeable storage strategies: an unbounded in-memory map, a bounded
// LRU with per-entry TTL, and a write-through cache persisted to a NATS
// KeyValue bucket.
package cache

import (
	"time"

	"github.com/nats-io/nats.go"
)

// Kind selects the storage strategy for a cache instance.
type Kind string

// Supported cache strategies.
const (
	KindStatic  Kind = "static"
	KindLRU     Kind = "lru"
	KindPersist Kind = "persist"
)

// DefaultLRUMax bounds LRU caches created without an explicit capacity.
const DefaultLRUMax = 10000

// Strategy is the capability set shared by all cache instances. Instances
// are safe for concurrent use. Per-entry TTLs are honored lazily: an expired
// entry reads as absent and is purged on access.
type Strategy interface {
	// Name returns the name the instance was registered under.
	Name() string
	// Get returns the value stored under key. A miss with a WithDefault
	// option stores and returns the default instead.
	Get(key string, opts ...GetOption) (any, bool)
	// Set stores value under key. The entry TTL is the instance default
	// unless overridden with WithTTL.
	Set(key string, value any, opts ...SetOption) error
	// Remove deletes key, reporting whether it was present.
	Remove(key string) bool
	// Increment atomically adds delta to the numeric value under key,
	// starting from zero when absent, and returns the new value.
	Increment(key string, delta int64) (int64, error)
	// Clear removes all entries.
	Clear() error
	// Size returns the current entry count.
	Size() int
	// Stats returns hit/miss counters for the instance.
	Stats() InstanceStats
	// Stop releases any resources held by the instance.
	Stop()
}

// KV is the subset of the NATS KeyValue API the persisted strategy depends
// on. nats.KeyValue satisfies it.
type KV interface {
	Get(key string) (nats.KeyValueEntry, error)
	Put(key string, value []byte) (uint64, error)
	Purge(key string, opts ...nats.DeleteOpt) error
	Keys(opts ...nats.WatchOpt) ([]string, error)
}

// Options configures a cache instance at creation time.
type Options struct {
	// Kind selects the storage strategy. Defaults to KindStatic.
	Kind Kind
	// Overwrite allows Create to replace an existing instance of the
	// same name instead of failing.
	Overwrite bool
	// Max bounds the entry count for KindLRU instances.
	Max int
	// MaxAge is the default per-entry TTL. Zero means entries never
	// expire unless Set is given an explicit TTL.
	MaxAge time.Duration
	// KV is the durable backing store for KindPersist instances.
	KV KV
}

// InstanceStats reports usage counters for one cache instance.
type InstanceStats struct {
	Type   Kind    `json:"type"`
	Size   int     `json:"size"`
	Hits   int64   `json:"hits"`
	Misses int64   `json:"misses"`
	// HitRate is hits over total lookups, zero when no lookups occurred.
	HitRate float64 `json:"hit_rate"`
}

// GetOption modifies a single Get call.
type GetOption func(*getOptions)

type getOptions struct {
	hasDefault bool
	defValue   any
	defTTL     time.Duration
}

// WithDefault stores and returns value when the key is absent. The stored
// default expires after ttl (zero means never).
func WithDefault(
	value any,
	ttl time.Duration,
) GetOption {
	return func(o *getOptions) {
		o.hasDefault = true
		o.defValue = value
		o.defTTL = ttl
	}
}

// SetOption modifies a single Set call.
type SetOption func(*setOptions)

type setOptions struct {
	hasTTL bool
	ttl    time.Duration
}

// WithTTL overrides the instance default TTL for one entry. Zero disables
// expiry for the entry.
func WithTTL(
	ttl time.Duration,
) SetOption {
	return func(o *setOptions) {
		o.hasTTL = true
		o.ttl = ttl
	}
}

// entry is a stored value with an optional absolute expiry.
type entry struct {
	value     any
	expiresAt time.Time // zero means never
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// expiry converts a relative TTL into an absolute deadline.
func expiry(
	ttl time.Duration,
	now time.Time,
) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func applyGetOptions(opts []GetOption) getOptions {
	var o getOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolveTTL picks the entry TTL for a Set: the explicit per-call TTL when
// given, the instance default otherwise.
func resolveTTL(
	defaultTTL time.Duration,
	opts []SetOption,
) time.Duration {
	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasTTL {
		return o.ttl
	}
	return defaultTTL
}
