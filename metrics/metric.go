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
	"github.com/palantir/go-openmetrics/openmetrics"
)

// MetricType is the semantic kind of a metric. It is fixed by the concrete
// metric type and never depends on recorded data.
type MetricType int

const (
	MetricTypeUnknown MetricType = iota
	MetricTypeCounter
	MetricTypeGauge
	MetricTypeHistogram
	MetricTypeInfo
)

func (t MetricType) String() string {
	switch t {
	case MetricTypeCounter:
		return "counter"
	case MetricTypeGauge:
		return "gauge"
	case MetricTypeHistogram:
		return "histogram"
	case MetricTypeInfo:
		return "info"
	default:
		return "unknown"
	}
}

// EncodeMetric is implemented by every metric that can be stored in a
// registry.
//
// MetricType must not read receiver state: a Family calls it on the zero
// value of its metric type so it can report a type while empty.
//
// Encode returns the metric's data points with labels applied. It may be
// called at any time, concurrently with updates to the metric, and must
// not retain labels after returning.
type EncodeMetric interface {
	MetricType() MetricType
	Encode(labels []openmetrics.Label) []openmetrics.Metric
}

// point builds the single-point Metric used by scalar metric kinds.
func point(labels []openmetrics.Label, v openmetrics.PointValue) []openmetrics.Metric {
	return []openmetrics.Metric{{
		Labels:       labels,
		MetricPoints: []openmetrics.MetricPoint{{Value: v}},
	}}
}
