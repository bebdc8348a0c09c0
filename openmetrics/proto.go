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

package openmetrics

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers from openmetrics_data_model.proto.
const (
	fieldMetricSetFamilies protowire.Number = 1

	fieldFamilyName    protowire.Number = 1
	fieldFamilyType    protowire.Number = 2
	fieldFamilyUnit    protowire.Number = 3
	fieldFamilyHelp    protowire.Number = 4
	fieldFamilyMetrics protowire.Number = 5

	fieldMetricLabels protowire.Number = 1
	fieldMetricPoints protowire.Number = 2

	fieldLabelName  protowire.Number = 1
	fieldLabelValue protowire.Number = 2

	fieldPointUnknown   protowire.Number = 1
	fieldPointGauge     protowire.Number = 2
	fieldPointCounter   protowire.Number = 3
	fieldPointHistogram protowire.Number = 4
	fieldPointInfo      protowire.Number = 6

	fieldNumberDouble protowire.Number = 1
	fieldNumberInt    protowire.Number = 2

	fieldHistogramCount   protowire.Number = 3
	fieldHistogramBuckets protowire.Number = 5

	fieldBucketCount      protowire.Number = 1
	fieldBucketUpperBound protowire.Number = 2

	fieldInfoLabels protowire.Number = 1
)

// MarshalProto encodes the set in the protobuf wire format of the
// OpenMetrics data model.
func (s *MetricSet) MarshalProto() []byte {
	return s.AppendProto(nil)
}

// AppendProto appends the protobuf encoding of the set to b.
func (s *MetricSet) AppendProto(b []byte) []byte {
	for i := range s.MetricFamilies {
		b = appendMessage(b, fieldMetricSetFamilies, s.MetricFamilies[i].appendProto)
	}
	return b
}

func (f *MetricFamily) appendProto(b []byte) []byte {
	b = appendString(b, fieldFamilyName, f.Name)
	if f.Type != MetricTypeUnknown {
		b = protowire.AppendTag(b, fieldFamilyType, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.Type))
	}
	b = appendString(b, fieldFamilyUnit, f.Unit)
	b = appendString(b, fieldFamilyHelp, f.Help)
	for i := range f.Metrics {
		b = appendMessage(b, fieldFamilyMetrics, f.Metrics[i].appendProto)
	}
	return b
}

func (m *Metric) appendProto(b []byte) []byte {
	b = appendLabels(b, fieldMetricLabels, m.Labels)
	for i := range m.MetricPoints {
		b = appendMessage(b, fieldMetricPoints, m.MetricPoints[i].appendProto)
	}
	return b
}

func (p *MetricPoint) appendProto(b []byte) []byte {
	switch v := p.Value.(type) {
	case *UnknownValue:
		b = appendMessage(b, fieldPointUnknown, func(b []byte) []byte {
			return appendNumber(b, v.Value)
		})
	case *GaugeValue:
		b = appendMessage(b, fieldPointGauge, func(b []byte) []byte {
			return appendNumber(b, v.Value)
		})
	case *CounterValue:
		b = appendMessage(b, fieldPointCounter, v.appendProto)
	case *HistogramValue:
		b = appendMessage(b, fieldPointHistogram, v.appendProto)
	case *InfoValue:
		b = appendMessage(b, fieldPointInfo, func(b []byte) []byte {
			return appendLabels(b, fieldInfoLabels, v.Info)
		})
	}
	return b
}

func (v *CounterValue) appendProto(b []byte) []byte {
	switch t := v.Total.(type) {
	case IntTotal:
		b = protowire.AppendTag(b, fieldNumberInt, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t))
	case DoubleTotal:
		b = appendDouble(b, fieldNumberDouble, float64(t))
	}
	return b
}

func (v *HistogramValue) appendProto(b []byte) []byte {
	b = appendNumber(b, v.Sum)
	if v.Count != 0 {
		b = protowire.AppendTag(b, fieldHistogramCount, protowire.VarintType)
		b = protowire.AppendVarint(b, v.Count)
	}
	for i := range v.Buckets {
		bucket := v.Buckets[i]
		b = appendMessage(b, fieldHistogramBuckets, func(b []byte) []byte {
			if bucket.Count != 0 {
				b = protowire.AppendTag(b, fieldBucketCount, protowire.VarintType)
				b = protowire.AppendVarint(b, bucket.Count)
			}
			if bucket.UpperBound != 0 {
				b = appendDouble(b, fieldBucketUpperBound, bucket.UpperBound)
			}
			return b
		})
	}
	return b
}

// appendNumber writes a oneof {double double_value = 1; int64 int_value = 2}.
func appendNumber(b []byte, n Number) []byte {
	switch n := n.(type) {
	case Int:
		b = protowire.AppendTag(b, fieldNumberInt, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(n))
	case Double:
		b = appendDouble(b, fieldNumberDouble, float64(n))
	}
	return b
}

func appendLabels(b []byte, num protowire.Number, labels []Label) []byte {
	for i := range labels {
		l := labels[i]
		b = appendMessage(b, num, func(b []byte) []byte {
			b = appendString(b, fieldLabelName, l.Name)
			return appendString(b, fieldLabelValue, l.Value)
		})
	}
	return b
}

func appendMessage(b []byte, num protowire.Number, fn func([]byte) []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, fn(nil))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendDouble(b []byte, num protowire.Number, f float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(f))
}
