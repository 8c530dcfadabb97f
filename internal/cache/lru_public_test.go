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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cordellcalitz/happner-suite/internal/cache"
)

type LRUPublicTestSuite struct {
	suite.Suite
}

func (s *LRUPublicTestSuite) TestNewLRUDefaultsCapacity() {
	c, err := cache.NewLRU("defaulted", 0, 0)

	s.NoError(err)
	s.NotNil(c)
}

func (s *LRUPublicTestSuite) TestSetAndGet() {
	c, err := cache.NewLRU("test_lru", 10, 0)
	s.Require().NoError(err)

	s.NoError(c.Set("key", 42))

	got, ok := c.Get("key")
	s.True(ok)
	s.Equal(42, got)
}

func (s *LRUPublicTestSuite) TestEvictsLeastRecentlyUsed() {
	c, err := cache.NewLRU("bounded", 3, 0)
	s.Require().NoError(err)

	s.NoError(c.Set("a", 1))
	s.NoError(c.Set("b", 2))
	s.NoError(c.Set("c", 3))

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	s.True(ok)

	s.NoError(c.Set("d", 4))

	_, ok = c.Get("b")
	s.False(ok)
	_, ok = c.Get("a")
	s.True(ok)
	_, ok = c.Get("d")
	s.True(ok)
	s.Equal(3, c.Size())
}

func (s *LRUPublicTestSuite) TestEntryExpires() {
	c, err := cache.NewLRU("expiring", 10, 0)
	s.Require().NoError(err)

	s.NoError(c.Set("key", "value", cache.WithTTL(20*time.Millisecond)))

	got, ok := c.Get("key")
	s.True(ok)
	s.Equal("value", got)

	time.Sleep(40 * time.Millisecond)

	_, ok = c.Get("key")
	s.False(ok)
}

func (s *LRUPublicTestSuite) TestGetWithDefault() {
	c, err := cache.NewLRU("defaulting", 10, 0)
	s.Require().NoError(err)

	got, ok := c.Get("absent", cache.WithDefault(int64(0), time.Minute))
	s.True(ok)
	s.Equal(int64(0), got)

	got, ok = c.Get("absent")
	s.True(ok)
	s.Equal(int64(0), got)
}

func (s *LRUPublicTestSuite) TestIncrement() {
	c, err := cache.NewLRU("counting", 10, 0)
	s.Require().NoError(err)

	n, err := c.Increment("counter", 1)
	s.NoError(err)
	s.Equal(int64(1), n)

	n, err = c.Increment("counter", 4)
	s.NoError(err)
	s.Equal(int64(5), n)
}

func (s *LRUPublicTestSuite) TestRemoveAndClear() {
	c, err := cache.NewLRU("clearing", 10, 0)
	s.Require().NoError(err)

	s.NoError(c.Set("a", 1))
	s.NoError(c.Set("b", 2))

	s.True(c.Remove("a"))
	s.False(c.Remove("a"))

	s.NoError(c.Clear())
	s.Equal(0, c.Size())
}

func (s *LRUPublicTestSuite) TestStats() {
	c, err := cache.NewLRU("measured", 10, 0)
	s.Require().NoError(err)

	for i := 0; i < 5; i++ {
		s.NoError(c.Set(fmt.Sprintf("key-%d", i), i))
	}
	_, _ = c.Get("key-0")
	_, _ = c.Get("nope")

	stats := c.Stats()
	s.Equal(cache.KindLRU, stats.Type)
	s.Equal(5, stats.Size)
	s.Equal(int64(1), stats.Hits)
	s.Equal(int64(1), stats.Misses)
}

func TestLRUPublicTestSuite(t *testing.T) {
	suite.Run(t, new(LRUPublicTestSuite))
}
