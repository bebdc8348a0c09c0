// Copyright 2026 Palantir Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"math"
	"sort"
	"sync"

	"github.com/palantir/go-openmetrics/openmetrics"
)

// DefaultBuckets are the upper bounds used by a Histogram created without
// explicit buckets. They suit request latencies measured in seconds.
var DefaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ExponentialBuckets returns count upper bounds where the first is start
// and each following bound is the previous one multiplied by factor. It
// returns nil if count is less than one.
func ExponentialBuckets(start, factor float64, count int) []float64 {
	if count < 1 {
		return nil
	}
	buckets := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		buckets = append(buckets, start)
		start *= factor
	}
	return buckets
}

// LinearBuckets returns count upper bounds where the first is start and
// each following bound is width larger than the previous one. It returns
// nil if count is less than one.
func LinearBuckets(start, width float64, count int) []float64 {
	if count < 1 {
		return nil
	}
	buckets := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		buckets = append(buckets, start+float64(i)*width)
	}
	return buckets
}

// Histogram counts observations into buckets with fixed upper bounds and
// tracks their sum. An implicit +Inf bucket holds every observation. The
// zero value uses DefaultBuckets.
type Histogram struct {
	mu     sync.Mutex
	bounds []float64
	counts []uint64 // per bucket, the last entry is +Inf
	sum    float64
	count  uint64
}

// NewHistogram returns a histogram with the given upper bounds. Bounds are
// sorted and deduplicated; NaN and +Inf bounds are dropped. With no
// bounds, DefaultBuckets are used.
func NewHistogram(buckets ...float64) *Histogram {
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}

	bounds := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		if !math.IsNaN(b) && !math.IsInf(b, 1) {
			bounds = append(bounds, b)
		}
	}
	sort.Float64s(bounds)

	uniq := bounds[:0]
	for i, b := range bounds {
		if i == 0 || b != bounds[i-1] {
			uniq = append(uniq, b)
		}
	}

	return &Histogram{bounds: uniq, counts: make([]uint64, len(uniq)+1)}
}

// init must be called with h.mu held.
func (h *Histogram) init() {
	if h.counts != nil {
		return
	}
	if h.bounds == nil {
		h.bounds = append([]float64(nil), DefaultBuckets...)
	}
	h.counts = make([]uint64, len(h.bounds)+1)
}

// Observe records v in the first bucket whose upper bound is at least v.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.init()
	h.counts[sort.SearchFloat64s(h.bounds, v)]++
	h.sum += v
	h.count++
}

// Buckets returns the finite upper bounds of the histogram.
func (h *Histogram) Buckets() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.init()
	return append([]float64(nil), h.bounds...)
}

func (*Histogram) MetricType() MetricType { return MetricTypeHistogram }

func (h *Histogram) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	h.mu.Lock()
	h.init()
	buckets := make([]openmetrics.Bucket, len(h.counts))
	var cumulative uint64
	for i, c := range h.counts {
		cumulative += c
		upper := math.Inf(1)
		if i < len(h.bounds) {
			upper = h.bounds[i]
		}
		buckets[i] = openmetrics.Bucket{Count: cumulative, UpperBound: upper}
	}
	value := &openmetrics.HistogramValue{
		Sum:     openmetrics.Double(h.sum),
		Count:   h.count,
		Buckets: buckets,
	}
	h.mu.Unlock()

	return point(labels, value)
}
