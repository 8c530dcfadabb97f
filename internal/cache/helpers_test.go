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
	"time"

	"github.com/nats-io/nats.go"
)

// fakeKV is an in-memory stand-in for a NATS KeyValue bucket.
type fakeKV struct {
	mu       sync.Mutex
	data     map[string][]byte
	revision uint64

	// getErr forces Get to fail when set.
	getErr error
	// putErr forces Put to fail when set.
	putErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(key string) (nats.KeyValueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	value, ok := f.data[key]
	if !ok {
		return nil, nats.ErrKeyNotFound
	}

	return &fakeKVEntry{key: key, value: value, revision: f.revision}, nil
}

func (f *fakeKV) Put(key string, value []byte) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putErr != nil {
		return 0, f.putErr
	}

	f.revision++
	f.data[key] = append([]byte(nil), value...)

	return f.revision, nil
}

func (f *fakeKV) Purge(key string, _ ...nats.DeleteOpt) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data, key)

	return nil
}

func (f *fakeKV) Keys(_ ...nats.WatchOpt) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.data) == 0 {
		return nil, nats.ErrNoKeysFound
	}

	keys := make([]string, 0, len(f.data))
	for key := range f.data {
		keys = append(keys, key)
	}

	return keys, nil
}

func (f *fakeKV) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.data)
}

// fakeKVEntry satisfies nats.KeyValueEntry for reads from fakeKV.
type fakeKVEntry struct {
	key      string
	value    []byte
	revision uint64
}

func (e *fakeKVEntry) Bucket() string             { return "test-bucket" }
func (e *fakeKVEntry) Key() string                { return e.key }
func (e *fakeKVEntry) Value() []byte              { return e.value }
func (e *fakeKVEntry) Revision() uint64           { return e.revision }
func (e *fakeKVEntry) Created() time.Time         { return time.Time{} }
func (e *fakeKVEntry) Delta() uint64              { return 0 }
func (e *fakeKVEntry) Operation() nats.KeyValueOp { return nats.KeyValuePut }
