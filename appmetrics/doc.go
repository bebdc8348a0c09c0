// Copyright 2023 Palantir Technologies, Inc.
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

// Package appmetrics creates and registers metrics structs.
//
// Applications that report metrics often want to define those metrics in a
// common type or package so they are easy to use in other parts of the
// application. The appmetrics package provides a way to easily define,
// initialize, and register these shared metric structs.
//
// A metrics struct contains one or more fields of a supported metric pointer
// type that have the "metric" tag giving the metric's name in a registry.
// The optional "metric-help" and "metric-unit" tags set the help text and
// unit of the metric. Any pointer to a metric type from the metrics package
// is supported, along with [Tagged] families. Histogram fields accept a
// "metric-buckets" tag and [metrics.FuncGauge] fields call a method or
// function field named with the "Compute" prefix.
//
// For global metrics, this struct is often exported as a field:
//
//	// in the app's "metrics" package
//	type Metrics struct {
//		Errors        *metrics.Counter `metric:"errors"`
//		ActiveWorkers *metrics.Gauge   `metric:"active_workers"`
//	}
//
//	var M *Metrics
//
//	func Init(r *registry.Registry) error {
//		M = appmetrics.New[Metrics]()
//		return appmetrics.Register(r, M)
//	}
//
//	// in a different package
//	metrics.M.Errors.Inc()
//	metrics.M.ActiveWorkers.Set(int64(len(workers)))
package appmetrics
