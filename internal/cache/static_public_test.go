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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cordellcalitz/happner-suite/internal/cache"
)

type StaticPublicTestSuite struct {
	suite.Suite

	cache *cache.Static
}

func (s *StaticPublicTestSuite) SetupTest() {
	s.cache = cache.NewStatic("test_static", 0)
}

func (s *StaticPublicTestSuite) TestName() {
	s.Equal("test_static", s.cache.Name())
}

func (s *StaticPublicTestSuite) TestSetAndGet() {
	err := s.cache.Set("key", "value")
	s.NoError(err)

	got, ok := s.cache.Get("key")
	s.True(ok)
	s.Equal("value", got)
}

func (s *StaticPublicTestSuite) TestGetMissing() {
	got, ok := s.cache.Get("absent")

	s.False(ok)
	s.Nil(got)
}

func (s *StaticPublicTestSuite) TestGetWithDefault() {
	got, ok := s.cache.Get("absent", cache.WithDefault("fallback", 0))
	s.True(ok)
	s.Equal("fallback", got)

	// The default is now stored.
	got, ok = s.cache.Get("absent")
	s.True(ok)
	s.Equal("fallback", got)
}

func (s *StaticPublicTestSuite) TestGetWithDefaultDoesNotOverwrite() {
	err := s.cache.Set("key", "original")
	s.NoError(err)

	got, ok := s.cache.Get("key", cache.WithDefault("fallback", 0))
	s.True(ok)
	s.Equal("original", got)
}

func (s *StaticPublicTestSuite) TestEntryExpires() {
	err := s.cache.Set("key", "value", cache.WithTTL(20*time.Millisecond))
	s.NoError(err)

	got, ok := s.cache.Get("key")
	s.True(ok)
	s.Equal("value", got)

	time.Sleep(40 * time.Millisecond)

	_, ok = s.cache.Get("key")
	s.False(ok)
}

func (s *StaticPublicTestSuite) TestDefaultTTLApplies() {
	c := cache.NewStatic("short_lived", 20*time.Millisecond)

	err := c.Set("key", "value")
	s.NoError(err)

	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("key")
	s.False(ok)
}

func (s *StaticPublicTestSuite) TestRemove() {
	err := s.cache.Set("key", "value")
	s.NoError(err)

	s.True(s.cache.Remove("key"))
	s.False(s.cache.Remove("key"))

	_, ok := s.cache.Get("key")
	s.False(ok)
}

func (s *StaticPublicTestSuite) TestIncrement() {
	n, err := s.cache.Increment("counter", 1)
	s.NoError(err)
	s.Equal(int64(1), n)

	n, err = s.cache.Increment("counter", 2)
	s.NoError(err)
	s.Equal(int64(3), n)
}

func (s *StaticPublicTestSuite) TestIncrementNonNumeric() {
	err := s.cache.Set("key", "not a number")
	s.NoError(err)

	_, err = s.cache.Increment("key", 1)
	s.Error(err)
	s.Contains(err.Error(), "not numeric")
}

func (s *StaticPublicTestSuite) TestIncrementConcurrent() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.cache.Increment("counter", 1)
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, ok := s.cache.Get("counter")
	s.True(ok)
	s.Equal(int64(50), got)
}

func (s *StaticPublicTestSuite) TestClear() {
	s.NoError(s.cache.Set("a", 1))
	s.NoError(s.cache.Set("b", 2))
	s.Equal(2, s.cache.Size())

	s.NoError(s.cache.Clear())

	s.Equal(0, s.cache.Size())
}

func (s *StaticPublicTestSuite) TestStats() {
	s.NoError(s.cache.Set("key", "value"))

	_, _ = s.cache.Get("key")
	_, _ = s.cache.Get("key")
	_, _ = s.cache.Get("absent")

	stats := s.cache.Stats()
	s.Equal(cache.KindStatic, stats.Type)
	s.Equal(1, stats.Size)
	s.Equal(int64(2), stats.Hits)
	s.Equal(int64(1), stats.Misses)
	s.InDelta(2.0/3.0, stats.HitRate, 0.001)
}

func TestStaticPublicTestSuite(t *testing.T) {
	suite.Run(t, new(StaticPublicTestSuite))
}
