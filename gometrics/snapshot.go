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

package gometrics

import (
	"math"

	om "github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/openmetrics"
)

// snapshot holds the values of go-metrics metrics that share a name and
// type, read during a single collection.
type snapshot struct {
	help   string
	points []labeledPoint
}

type labeledPoint struct {
	labels om.LabelSet
	value  openmetrics.PointValue
}

type unknownSnapshot struct{ *snapshot }

type gaugeSnapshot struct{ *snapshot }

type histogramSnapshot struct{ *snapshot }

func (unknownSnapshot) MetricType() om.MetricType   { return om.MetricTypeUnknown }
func (gaugeSnapshot) MetricType() om.MetricType     { return om.MetricTypeGauge }
func (histogramSnapshot) MetricType() om.MetricType { return om.MetricTypeHistogram }

// metric returns s as a metric of type typ.
func (s *snapshot) metric(typ om.MetricType) om.EncodeMetric {
	switch typ {
	case om.MetricTypeGauge:
		return gaugeSnapshot{s}
	case om.MetricTypeHistogram:
		return histogramSnapshot{s}
	default:
		return unknownSnapshot{s}
	}
}

func (s *snapshot) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	out := make([]openmetrics.Metric, 0, len(s.points))
	for _, p := range s.points {
		own := p.labels.EncodeLabels()
		merged := make([]openmetrics.Label, 0, len(own)+len(labels))
		merged = append(merged, own...)
		merged = append(merged, labels...)

		out = append(out, openmetrics.Metric{
			Labels:       merged,
			MetricPoints: []openmetrics.MetricPoint{{Value: p.value}},
		})
	}
	return out
}

func unknown(n openmetrics.Number) openmetrics.PointValue {
	return &openmetrics.UnknownValue{Value: n}
}

func gauge(n openmetrics.Number) openmetrics.PointValue {
	return &openmetrics.GaugeValue{Value: n}
}

func histogram(count int64, sum float64) openmetrics.PointValue {
	return &openmetrics.HistogramValue{
		Sum:     openmetrics.Double(sum),
		Count:   uint64(count),
		Buckets: []openmetrics.Bucket{{Count: uint64(count), UpperBound: math.Inf(1)}},
	}
}
