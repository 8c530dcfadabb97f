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

package cache_test

import (
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/cordellcalitz/happner-suite/internal/cache"
)

type ServicePublicTestSuite struct {
	suite.Suite

	service *cache.Service
}

func (s *ServicePublicTestSuite) SetupTest() {
	s.service = cache.NewService(slog.Default(), nil)
}

func (s *ServicePublicTestSuite) TestCreate() {
	tests := []struct {
		name      string
		cacheName string
		opts      cache.Options
		expectErr error
	}{
		{
			name:      "static by default",
			cacheName: "defaulted",
			opts:      cache.Options{},
		},
		{
			name:      "lru",
			cacheName: "bounded",
			opts:      cache.Options{Kind: cache.KindLRU, Max: 5},
		},
		{
			name:      "persist with backing store",
			cacheName: "durable",
			opts:      cache.Options{Kind: cache.KindPersist, KV: newFakeKV()},
		},
		{
			name:      "persist without backing store",
			cacheName: "broken",
			opts:      cache.Options{Kind: cache.KindPersist},
			expectErr: cache.ErrMissingKV,
		},
		{
			name:      "unknown kind",
			cacheName: "unknown",
			opts:      cache.Options{Kind: cache.Kind("bogus")},
			expectErr: cache.ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			instance, err := s.service.Create(tt.cacheName, tt.opts)

			if tt.expectErr != nil {
				s.ErrorIs(err, tt.expectErr)
				s.Nil(instance)
			} else {
				s.NoError(err)
				s.NotNil(instance)
				s.Equal(tt.cacheName, instance.Name())
			}
		})
	}
}

func (s *ServicePublicTestSuite) TestCreateNameCollision() {
	_, err := s.service.Create("taken", cache.Options{})
	s.NoError(err)

	_, err = s.service.Create("taken", cache.Options{})
	s.ErrorIs(err, cache.ErrCacheExists)
}

func (s *ServicePublicTestSuite) TestCreateOverwrite() {
	first, err := s.service.Create("taken", cache.Options{})
	s.Require().NoError(err)
	s.NoError(first.Set("key", "value"))

	second, err := s.service.Create("taken", cache.Options{Overwrite: true})
	s.NoError(err)

	_, ok := second.Get("key")
	s.False(ok)
	s.Same(second, s.service.GetCache("taken"))
}

func (s *ServicePublicTestSuite) TestGetCacheUnknown() {
	s.Nil(s.service.GetCache("nope"))
}

func (s *ServicePublicTestSuite) TestGetOrCreate() {
	first, err := s.service.GetOrCreate("shared", cache.Options{})
	s.NoError(err)

	second, err := s.service.GetOrCreate("shared", cache.Options{})
	s.NoError(err)
	s.Same(first, second)
}

func (s *ServicePublicTestSuite) TestClearUnknownIsNoOp() {
	s.NoError(s.service.Clear("nope"))
}

func (s *ServicePublicTestSuite) TestClearAll() {
	a, err := s.service.Create("a", cache.Options{})
	s.Require().NoError(err)
	b, err := s.service.Create("b", cache.Options{Kind: cache.KindLRU})
	s.Require().NoError(err)

	s.NoError(a.Set("k", 1))
	s.NoError(b.Set("k", 2))

	s.NoError(s.service.ClearAll())

	s.Equal(0, a.Size())
	s.Equal(0, b.Size())
}

func (s *ServicePublicTestSuite) TestDelete() {
	_, err := s.service.Create("doomed", cache.Options{})
	s.Require().NoError(err)

	s.service.Delete("doomed")
	s.Nil(s.service.GetCache("doomed"))

	// Unknown names are a no-op.
	s.service.Delete("doomed")
}

func (s *ServicePublicTestSuite) TestStats() {
	instance, err := s.service.Create("measured", cache.Options{})
	s.Require().NoError(err)

	s.NoError(instance.Set("key", "value"))
	_, _ = instance.Get("key")
	_, _ = instance.Get("absent")

	stats := s.service.Stats()
	s.Len(stats, 1)
	s.Equal(int64(1), stats["measured"].Hits)
	s.Equal(int64(1), stats["measured"].Misses)
}

func (s *ServicePublicTestSuite) TestPrometheusCounters() {
	registry := prometheus.NewRegistry()
	service := cache.NewService(slog.Default(), registry)

	instance, err := service.Create("instrumented", cache.Options{})
	s.Require().NoError(err)

	s.NoError(instance.Set("key", "value"))
	_, _ = instance.Get("key")
	_, _ = instance.Get("absent")

	families, err := registry.Gather()
	s.NoError(err)

	found := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			found[family.GetName()] = metric.GetCounter().GetValue()
		}
	}
	s.Equal(float64(1), found["cache_hits_total"])
	s.Equal(float64(1), found["cache_misses_total"])
}

func (s *ServicePublicTestSuite) TestStop() {
	instance, err := s.service.Create("stopped", cache.Options{})
	s.Require().NoError(err)
	s.NoError(instance.Set("key", "value"))

	s.service.Stop()

	s.Nil(s.service.GetCache("stopped"))
}

func TestServicePublicTestSuite(t *testing.T) {
	suite.Run(t, new(ServicePublicTestSuite))
}
