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
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cordellcalitz/happner-suite/internal/cache"
)

type PersistedPublicTestSuite struct {
	suite.Suite

	kv    *fakeKV
	cache *cache.Persisted
}

func (s *PersistedPublicTestSuite) SetupTest() {
	s.kv = newFakeKV()
	s.cache = cache.NewPersisted(slog.Default(), "test_persist", s.kv, 0)
}

func (s *PersistedPublicTestSuite) TestSetWritesThrough() {
	err := s.cache.Set("key", "value")
	s.NoError(err)

	s.Equal(1, s.kv.len())

	got, ok := s.cache.Get("key")
	s.True(ok)
	s.Equal("value", got)
}

func (s *PersistedPublicTestSuite) TestSetFailsWhenStoreRejectsWrite() {
	s.kv.putErr = errors.New("bucket unavailable")

	err := s.cache.Set("key", "value")

	s.Error(err)
	s.Contains(err.Error(), "bucket unavailable")
}

func (s *PersistedPublicTestSuite) TestGetFallsThroughToStore() {
	s.NoError(s.cache.Set("key", "durable"))

	// A fresh instance over the same bucket sees the entry.
	reopened := cache.NewPersisted(slog.Default(), "test_persist", s.kv, 0)

	got, ok := reopened.Get("key")
	s.True(ok)
	s.Equal("durable", got)
}

func (s *PersistedPublicTestSuite) TestGetStoreErrorReadsAsMiss() {
	s.kv.getErr = errors.New("bucket unavailable")

	got, ok := s.cache.Get("key")

	s.False(ok)
	s.Nil(got)
}

func (s *PersistedPublicTestSuite) TestGetWithDefaultPersists() {
	got, ok := s.cache.Get("absent", cache.WithDefault(int64(0), 0))
	s.True(ok)
	s.Equal(int64(0), got)

	s.Equal(1, s.kv.len())
}

func (s *PersistedPublicTestSuite) TestEntryExpires() {
	s.NoError(s.cache.Set("key", "value", cache.WithTTL(20*time.Millisecond)))

	time.Sleep(40 * time.Millisecond)

	_, ok := s.cache.Get("key")
	s.False(ok)
	s.Equal(0, s.kv.len())
}

func (s *PersistedPublicTestSuite) TestIncrementSurvivesRestart() {
	n, err := s.cache.Increment("counter", 1)
	s.NoError(err)
	s.Equal(int64(1), n)

	reopened := cache.NewPersisted(slog.Default(), "test_persist", s.kv, 0)

	// JSON round-trips the counter as float64; Increment normalizes it.
	n, err = reopened.Increment("counter", 1)
	s.NoError(err)
	s.Equal(int64(2), n)
}

func (s *PersistedPublicTestSuite) TestRemovePurgesStore() {
	s.NoError(s.cache.Set("key", "value"))

	s.True(s.cache.Remove("key"))

	s.Equal(0, s.kv.len())
	_, ok := s.cache.Get("key")
	s.False(ok)
}

func (s *PersistedPublicTestSuite) TestClearOnlyTouchesOwnPrefix() {
	other := cache.NewPersisted(slog.Default(), "other_persist", s.kv, 0)

	s.NoError(s.cache.Set("a", 1))
	s.NoError(s.cache.Set("b", 2))
	s.NoError(other.Set("c", 3))

	s.NoError(s.cache.Clear())

	s.Equal(1, s.kv.len())
	got, ok := other.Get("c")
	s.True(ok)
	s.Equal(3, got)
}

func (s *PersistedPublicTestSuite) TestClearEmptyBucket() {
	s.NoError(s.cache.Clear())
}

func (s *PersistedPublicTestSuite) TestStopKeepsDurableEntries() {
	s.NoError(s.cache.Set("key", "value"))

	s.cache.Stop()

	s.Equal(0, s.cache.Size())
	got, ok := s.cache.Get("key")
	s.True(ok)
	s.Equal("value", got)
}

func TestPersistedPublicTestSuite(t *testing.T) {
	suite.Run(t, new(PersistedPublicTestSuite))
}
