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
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Configuration errors returned by Create. They fail at setup time, never at
// request time.
var (
	ErrCacheExists = errors.New("a cache by this name already exists")
	ErrUnknownKind = errors.New("unknown cache kind")
	ErrMissingKV   = errors.New("persist cache requires a KeyValue backing store")
)

// instrumented lets the service attach Prometheus counters to an instance's
// internal recorder.
type instrumented interface {
	recorder() *recorder
}

func (c *Static) recorder() *recorder    { return &c.rec }
func (c *LRU) recorder() *recorder       { return &c.rec }
func (c *Persisted) recorder() *recorder { return &c.rec }

// Service is a process-wide registry of named cache instances. It is owned
// by whoever assembles the process: create it with NewService, register
// caches with Create or GetOrCreate, and call Stop on shutdown.
type Service struct {
	logger *slog.Logger

	mu     sync.Mutex
	caches map[string]Strategy

	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

// NewService creates an empty cache registry. When registerer is non-nil,
// per-cache hit and miss counters are registered with it.
func NewService(
	logger *slog.Logger,
	registerer prometheus.Registerer,
) *Service {
	s := &Service{
		logger: logger,
		caches: make(map[string]Strategy),
	}

	if registerer != nil {
		s.hits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Cache lookups served from the cache, by cache name.",
		}, []string{"cache"})
		s.misses = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Cache lookups that missed, by cache name.",
		}, []string{"cache"})
		registerer.MustRegister(s.hits, s.misses)
	}

	return s
}

// Create registers a new cache instance under name. It fails with
// ErrCacheExists when the name is taken and Overwrite is not set, and with
// ErrUnknownKind for an unrecognized strategy.
func (s *Service) Create(
	name string,
	opts Options,
) (Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.caches[name]; ok {
		if !opts.Overwrite {
			return nil, fmt.Errorf("create cache %q: %w", name, ErrCacheExists)
		}
		existing.Stop()
	}

	instance, err := s.build(name, opts)
	if err != nil {
		return nil, err
	}

	if s.hits != nil {
		rec := instance.(instrumented).recorder()
		rec.hitCtr = s.hits.WithLabelValues(name)
		rec.missCtr = s.misses.WithLabelValues(name)
	}

	s.caches[name] = instance
	s.logger.Debug("created cache",
		slog.String("name", name),
		slog.String("kind", string(kindOf(opts))),
	)

	return instance, nil
}

func (s *Service) build(
	name string,
	opts Options,
) (Strategy, error) {
	switch kindOf(opts) {
	case KindStatic:
		return NewStatic(name, opts.MaxAge), nil
	case KindLRU:
		return NewLRU(name, opts.Max, opts.MaxAge)
	case KindPersist:
		if opts.KV == nil {
			return nil, fmt.Errorf("create cache %q: %w", name, ErrMissingKV)
		}
		return NewPersisted(s.logger, name, opts.KV, opts.MaxAge), nil
	default:
		return nil, fmt.Errorf("create cache %q: %w: %s", name, ErrUnknownKind, opts.Kind)
	}
}

func kindOf(opts Options) Kind {
	if opts.Kind == "" {
		return KindStatic
	}
	return opts.Kind
}

// GetCache returns the instance registered under name, or nil.
func (s *Service) GetCache(
	name string,
) Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.caches[name]
}

// GetOrCreate returns the existing instance under name, creating it when
// absent.
func (s *Service) GetOrCreate(
	name string,
	opts Options,
) (Strategy, error) {
	s.mu.Lock()
	existing, ok := s.caches[name]
	s.mu.Unlock()

	if ok {
		return existing, nil
	}

	return s.Create(name, opts)
}

// Clear empties the named cache. Unknown names are a no-op so that
// collaborators may defensively clear caches that may not exist.
func (s *Service) Clear(
	name string,
) error {
	s.mu.Lock()
	instance, ok := s.caches[name]
	s.mu.Unlock()

	if !ok {
		return nil
	}

	return instance.Clear()
}

// ClearAll empties every registered cache.
func (s *Service) ClearAll() error {
	s.mu.Lock()
	instances := make([]Strategy, 0, len(s.caches))
	for _, instance := range s.caches {
		instances = append(instances, instance)
	}
	s.mu.Unlock()

	for _, instance := range instances {
		if err := instance.Clear(); err != nil {
			return fmt.Errorf("clear cache %q: %w", instance.Name(), err)
		}
	}

	return nil
}

// Delete stops and deregisters the named cache. Unknown names are a no-op.
func (s *Service) Delete(
	name string,
) {
	s.mu.Lock()
	instance, ok := s.caches[name]
	delete(s.caches, name)
	s.mu.Unlock()

	if !ok {
		return
	}

	instance.Stop()
	s.logger.Debug("deleted cache", slog.String("name", name))
}

// Stats reports per-cache usage counters keyed by cache name.
func (s *Service) Stats() map[string]InstanceStats {
	s.mu.Lock()
	instances := make([]Strategy, 0, len(s.caches))
	for _, instance := range s.caches {
		instances = append(instances, instance)
	}
	s.mu.Unlock()

	stats := make(map[string]InstanceStats, len(instances))
	for _, instance := range instances {
		stats[instance.Name()] = instance.Stats()
	}

	return stats
}

// Stop stops every registered cache and empties the registry.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, instance := range s.caches {
		instance.Stop()
	}
	s.caches = make(map[string]Strategy)
}
