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
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// recorder counts lookups for one instance and mirrors them to optional
// Prometheus counters labeled by cache name.
type recorder struct {
	hits    atomic.Int64
	misses  atomic.Int64
	hitCtr  prometheus.Counter
	missCtr prometheus.Counter
}

func (r *recorder) hit() {
	r.hits.Add(1)
	if r.hitCtr != nil {
		r.hitCtr.Inc()
	}
}

func (r *recorder) miss() {
	r.misses.Add(1)
	if r.missCtr != nil {
		r.missCtr.Inc()
	}
}

func (r *recorder) stats(
	kind Kind,
	size int,
) InstanceStats {
	hits := r.hits.Load()
	misses := r.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return InstanceStats{
		Type:    kind,
		Size:    size,
		Hits:    hits,
		Misses:  misses,
		HitRate: rate,
	}
}
