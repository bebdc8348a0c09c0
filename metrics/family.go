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
	"reflect"
	"sync"

	"github.com/palantir/go-openmetrics/openmetrics"
)

// LabelKey is the constraint for Family keys: a comparable value that
// encodes to labels. LabelSet, Pair, and user-defined structs with an
// EncodeLabels method all qualify.
type LabelKey interface {
	comparable
	LabelEncoder
}

// Family is a metric with dynamic labels. Each distinct key maps to its own
// instance of M, created on first use and kept for the life of the family.
//
// Note that each unique key produces a separate metric in the output. For
// this reason avoid label values that can take many values, like IDs.
//
// The zero Family is ready to use if M is a pointer to a type whose zero
// value is ready to use, such as *Counter or *Gauge. Otherwise create the
// family with NewFamily or NewFamilyWithKey.
type Family[K LabelKey, M EncodeMetric] struct {
	mu        sync.RWMutex
	metrics   map[K]M
	newMetric func(K) M
}

// NewFamily returns a family that creates metrics by calling newMetric.
func NewFamily[K LabelKey, M EncodeMetric](newMetric func() M) *Family[K, M] {
	return &Family[K, M]{newMetric: func(K) M { return newMetric() }}
}

// NewFamilyWithKey returns a family that creates metrics by calling
// newMetric with the key of the new metric.
func NewFamilyWithKey[K LabelKey, M EncodeMetric](newMetric func(K) M) *Family[K, M] {
	return &Family[K, M]{newMetric: newMetric}
}

// GetOrCreate returns the metric for key, creating it if it does not
// exist. Keys are compared by value. Concurrent callers with equal keys
// always receive the same instance; the constructor runs once per key.
func (f *Family[K, M]) GetOrCreate(key K) M {
	f.mu.RLock()
	m, ok := f.metrics[key]
	f.mu.RUnlock()
	if ok {
		return m
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// re-check, another writer may have won the race
	if m, ok := f.metrics[key]; ok {
		return m
	}
	if f.metrics == nil {
		f.metrics = make(map[K]M)
	}
	if f.newMetric != nil {
		m = f.newMetric(key)
	} else {
		m = newZero[M]()
	}
	if any(m) == nil {
		panic("metrics: Family of an interface metric type needs a constructor, create it with NewFamily")
	}
	f.metrics[key] = m
	return m
}

// Len returns the number of metrics in the family.
func (f *Family[K, M]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.metrics)
}

// Each calls fn for every metric in the family in an unspecified order. The
// family is read-locked while Each runs, so fn must not call GetOrCreate.
func (f *Family[K, M]) Each(fn func(K, M)) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for k, m := range f.metrics {
		fn(k, m)
	}
}

// MetricType returns the type of M. It does not depend on the members, so a
// family of an interface type such as EncodeMetric is MetricTypeUnknown.
func (f *Family[K, M]) MetricType() MetricType {
	var zero M
	if any(zero) == nil {
		return MetricTypeUnknown
	}
	return zero.MetricType()
}

// Encode returns the metrics of every member. The labels of each member's
// key come first, followed by labels.
func (f *Family[K, M]) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []openmetrics.Metric
	for key, m := range f.metrics {
		own := key.EncodeLabels()
		merged := make([]openmetrics.Label, 0, len(own)+len(labels))
		merged = append(append(merged, own...), labels...)
		out = append(out, m.Encode(merged)...)
	}
	return out
}

func newZero[M any]() M {
	var m M
	if t := reflect.TypeOf(&m).Elem(); t.Kind() == reflect.Pointer {
		m = reflect.New(t.Elem()).Interface().(M)
	}
	return m
}
