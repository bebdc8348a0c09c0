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
	"sync/atomic"

	"github.com/palantir/go-openmetrics/openmetrics"
)

// Counter is a monotonically increasing integer count. The zero value is
// ready to use and all methods are safe for concurrent use.
type Counter struct {
	val atomic.Uint64
}

// Inc increments the counter by one and returns the previous value.
func (c *Counter) Inc() uint64 {
	return c.IncBy(1)
}

// IncBy increments the counter by v and returns the previous value.
func (c *Counter) IncBy(v uint64) uint64 {
	return c.val.Add(v) - v
}

// Get returns the current value.
func (c *Counter) Get() uint64 {
	return c.val.Load()
}

func (*Counter) MetricType() MetricType {
	return MetricTypeCounter
}

func (c *Counter) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	return point(labels, &openmetrics.CounterValue{Total: openmetrics.IntTotal(c.Get())})
}

// CounterFloat is a monotonically increasing floating point count. The
// zero value is ready to use and all methods are safe for concurrent use.
type CounterFloat struct {
	bits atomic.Uint64
}

// Inc increments the counter by one and returns the previous value.
func (c *CounterFloat) Inc() float64 {
	return c.IncBy(1)
}

// IncBy increments the counter by v and returns the previous value.
// Negative values are ignored.
func (c *CounterFloat) IncBy(v float64) float64 {
	for {
		old := c.bits.Load()
		prev := math.Float64frombits(old)
		if v <= 0 || math.IsNaN(v) {
			return prev
		}
		if c.bits.CompareAndSwap(old, math.Float64bits(prev+v)) {
			return prev
		}
	}
}

// Get returns the current value.
func (c *CounterFloat) Get() float64 {
	return math.Float64frombits(c.bits.Load())
}

func (*CounterFloat) MetricType() MetricType {
	return MetricTypeCounter
}

func (c *CounterFloat) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	return point(labels, &openmetrics.CounterValue{Total: openmetrics.DoubleTotal(c.Get())})
}
