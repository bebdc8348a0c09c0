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

// Package encoding converts the metrics in a registry to an OpenMetrics
// MetricSet.
package encoding

import (
	"github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/openmetrics"
	"github.com/palantir/go-openmetrics/registry"
)

// Source provides registered metrics in registration order. *registry.Registry
// implements Source.
type Source interface {
	Entries() []registry.Entry
}

var metricTypes = map[metrics.MetricType]openmetrics.MetricType{
	metrics.MetricTypeCounter:   openmetrics.MetricTypeCounter,
	metrics.MetricTypeGauge:     openmetrics.MetricTypeGauge,
	metrics.MetricTypeHistogram: openmetrics.MetricTypeHistogram,
	metrics.MetricTypeInfo:      openmetrics.MetricTypeInfo,
	metrics.MetricTypeUnknown:   openmetrics.MetricTypeUnknown,
}

// Encode returns a MetricSet with one family for each metric in src, in
// the order provided by src. Metric values are read at the time each
// family is encoded.
func Encode(src Source) openmetrics.MetricSet {
	entries := src.Entries()

	set := openmetrics.MetricSet{
		MetricFamilies: make([]openmetrics.MetricFamily, 0, len(entries)),
	}
	for _, e := range entries {
		set.MetricFamilies = append(set.MetricFamilies, encodeFamily(e.Descriptor, e.Metric))
	}
	return set
}

// Marshal encodes src and returns the MetricSet in the protobuf wire format.
func Marshal(src Source) []byte {
	set := Encode(src)
	return set.MarshalProto()
}

func encodeFamily(d *registry.Descriptor, m metrics.EncodeMetric) openmetrics.MetricFamily {
	family := openmetrics.MetricFamily{
		Name: d.Name(),
		Type: metricTypes[m.MetricType()],
		Help: d.Help(),
	}
	if unit, ok := d.Unit(); ok {
		family.Unit = unit.String()
	}
	family.Metrics = m.Encode(d.Labels().EncodeLabels())
	return family
}
