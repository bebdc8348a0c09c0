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

// Gauge is an integer value that can go up and down. The zero value is
// ready to use and all methods are safe for concurrent use.
type Gauge struct {
	val atomic.Int64
}

// Set sets the gauge to v and returns the previous value.
func (g *Gauge) Set(v int64) int64 { return g.val.Swap(v) }

// Add adds v to the gauge and returns the previous value.
func (g *Gauge) Add(v int64) int64 { return g.val.Add(v) - v }

// Inc increments the gauge by one and returns the previous value.
func (g *Gauge) Inc() int64 { return g.Add(1) }

// Dec decrements the gauge by one and returns the previous value.
func (g *Gauge) Dec() int64 { return g.Add(-1) }

// Get returns the current value.
func (g *Gauge) Get() int64 { return g.val.Load() }

func (*Gauge) MetricType() MetricType { return MetricTypeGauge }

func (g *Gauge) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	return point(labels, &openmetrics.GaugeValue{Value: openmetrics.Int(g.Get())})
}

// GaugeFloat is a floating point value that can go up and down. The zero
// value is ready to use and all methods are safe for concurrent use.
type GaugeFloat struct {
	bits atomic.Uint64
}

// Set sets the gauge to v and returns the previous value.
func (g *GaugeFloat) Set(v float64) float64 {
	return math.Float64frombits(g.bits.Swap(math.Float64bits(v)))
}

// Add adds v to the gauge and returns the previous value.
func (g *GaugeFloat) Add(v float64) float64 {
	for {
		old := g.bits.Load()
		prev := math.Float64frombits(old)
		if g.bits.CompareAndSwap(old, math.Float64bits(prev+v)) {
			return prev
		}
	}
}

// Get returns the current value.
func (g *GaugeFloat) Get() float64 { return math.Float64frombits(g.bits.Load()) }

func (*GaugeFloat) MetricType() MetricType { return MetricTypeGauge }

func (g *GaugeFloat) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	return point(labels, &openmetrics.GaugeValue{Value: openmetrics.Double(g.Get())})
}

// FuncGauge is a gauge that computes its value by calling a function each
// time it is encoded. The function must be safe for concurrent use. A
// FuncGauge with a nil function reports zero.
type FuncGauge[N int64 | float64] struct {
	fn func() N
}

// NewFuncGauge returns a gauge that reports the result of fn.
func NewFuncGauge[N int64 | float64](fn func() N) *FuncGauge[N] {
	return &FuncGauge[N]{fn: fn}
}

// Value calls the gauge function and returns the result.
func (g *FuncGauge[N]) Value() N {
	if g.fn == nil {
		return 0
	}
	return g.fn()
}

func (*FuncGauge[N]) MetricType() MetricType { return MetricTypeGauge }

func (g *FuncGauge[N]) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	var n openmetrics.Number
	switch v := any(g.Value()).(type) {
	case int64:
		n = openmetrics.Int(v)
	case float64:
		n = openmetrics.Double(v)
	}
	return point(labels, &openmetrics.GaugeValue{Value: n})
}
