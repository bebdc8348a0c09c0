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

// Package metrics defines metric types that encode themselves to the
// OpenMetrics exchange model.
//
// Every metric implements EncodeMetric, which reports a fixed MetricType and
// produces data points for a set of inherited labels. Metrics of different
// types are stored together in a registry as EncodeMetric values and encoded
// uniformly.
//
// A Family partitions a metric by labels. The key type of a family is any
// comparable value that implements LabelEncoder:
//
//	requests := metrics.NewFamily[metrics.LabelSet](func() *metrics.Counter {
//		return new(metrics.Counter)
//	})
//	requests.GetOrCreate(metrics.Labels("method", "GET", "status", "200")).Inc()
//
// Custom structs make keys with typed fields:
//
//	type route struct {
//		Method string
//		Status int
//	}
//
//	func (r route) EncodeLabels() []openmetrics.Label {
//		return metrics.Seq[metrics.LabelEncoder]{
//			metrics.Pair[string, string]{Name: "method", Value: r.Method},
//			metrics.Pair[string, int]{Name: "status", Value: r.Status},
//		}.EncodeLabels()
//	}
//
// All metric types are safe for concurrent use.
package metrics
