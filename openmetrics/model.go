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

// Package openmetrics defines the OpenMetrics exchange data model: a
// MetricSet of MetricFamily values, each holding labeled Metric data points.
//
// The types mirror the messages of openmetrics_data_model.proto and can be
// serialized to that wire format with MarshalProto.
package openmetrics

// MetricType is the exchange code for the type of a metric family.
type MetricType int32

const (
	MetricTypeUnknown        MetricType = 0
	MetricTypeGauge          MetricType = 1
	MetricTypeCounter        MetricType = 2
	MetricTypeStateSet       MetricType = 3
	MetricTypeInfo           MetricType = 4
	MetricTypeHistogram      MetricType = 5
	MetricTypeGaugeHistogram MetricType = 6
	MetricTypeSummary        MetricType = 7
)

var metricTypeNames = map[MetricType]string{
	MetricTypeUnknown:        "UNKNOWN",
	MetricTypeGauge:          "GAUGE",
	MetricTypeCounter:        "COUNTER",
	MetricTypeStateSet:       "STATE_SET",
	MetricTypeInfo:           "INFO",
	MetricTypeHistogram:      "HISTOGRAM",
	MetricTypeGaugeHistogram: "GAUGE_HISTOGRAM",
	MetricTypeSummary:        "SUMMARY",
}

func (t MetricType) String() string {
	if name, ok := metricTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// MetricSet is the root of an exposition.
type MetricSet struct {
	MetricFamilies []MetricFamily
}

// MetricFamily is a set of metrics sharing a name, type, unit, and help.
// Unit is empty when the family has no unit.
type MetricFamily struct {
	Name    string
	Type    MetricType
	Unit    string
	Help    string
	Metrics []Metric
}

// Metric is a single labeled series in a family.
type Metric struct {
	Labels       []Label
	MetricPoints []MetricPoint
}

// Label is a name/value pair attached to a Metric.
type Label struct {
	Name  string
	Value string
}

// MetricPoint holds one typed value. Value is one of *UnknownValue,
// *GaugeValue, *CounterValue, *HistogramValue, or *InfoValue.
type MetricPoint struct {
	Value PointValue
}

// PointValue is implemented by the value types a MetricPoint may carry.
type PointValue interface {
	isPointValue()
}

// Number is either an Int or a Double.
type Number interface {
	isNumber()
}

type Int int64

type Double float64

func (Int) isNumber()    {}
func (Double) isNumber() {}

// CounterTotal is either an IntTotal or a DoubleTotal.
type CounterTotal interface {
	isCounterTotal()
}

type IntTotal uint64

type DoubleTotal float64

func (IntTotal) isCounterTotal()    {}
func (DoubleTotal) isCounterTotal() {}

type UnknownValue struct {
	Value Number
}

type GaugeValue struct {
	Value Number
}

type CounterValue struct {
	Total CounterTotal
}

// HistogramValue carries cumulative bucket counts. The last bucket has an
// upper bound of +Inf and a count equal to Count.
type HistogramValue struct {
	Sum     Number
	Count   uint64
	Buckets []Bucket
}

type Bucket struct {
	Count      uint64
	UpperBound float64
}

type InfoValue struct {
	Info []Label
}

func (*UnknownValue) isPointValue()   {}
func (*GaugeValue) isPointValue()     {}
func (*CounterValue) isPointValue()   {}
func (*HistogramValue) isPointValue() {}
func (*InfoValue) isPointValue()      {}
