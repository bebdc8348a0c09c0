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

// Package prometheus exposes the metrics in a registry to a Prometheus
// registry.
package prometheus

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/palantir/go-openmetrics/encoding"
	"github.com/palantir/go-openmetrics/openmetrics"
)

// InfoSuffix is added to the name of info metrics, which are reported as
// gauges with a value of 1.
const InfoSuffix = "_info"

type Option func(*Collector)

// WithLabels sets static labels added to every metric. Labels already set
// on a metric take precedence.
func WithLabels(labels map[string]string) Option {
	return func(c *Collector) {
		c.labels = c.labels[:0]
		for name, value := range labels {
			c.labels = append(c.labels, openmetrics.Label{Name: name, Value: value})
		}
		sort.Slice(c.labels, func(i, j int) bool { return c.labels[i].Name < c.labels[j].Name })
	}
}

// Collector is a prometheus.Collector that reports the metrics of a source,
// usually a *registry.Registry. The source is encoded on each collection, so
// metrics added after the collector is registered are reported.
//
// Collector is an unchecked collector: it does not describe its metrics in
// advance.
type Collector struct {
	src    encoding.Source
	labels []openmetrics.Label
}

var _ prometheus.Collector = &Collector{}

// NewCollector creates a collector for src.
func NewCollector(src encoding.Source, opts ...Option) *Collector {
	c := &Collector{src: src}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	set := encoding.Encode(c.src)
	for _, f := range set.MetricFamilies {
		c.collectFamily(ch, f)
	}
}

func (c *Collector) collectFamily(ch chan<- prometheus.Metric, f openmetrics.MetricFamily) {
	name := sanitizeName(f.Name, true)
	if f.Type == openmetrics.MetricTypeInfo {
		name += InfoSuffix
	}

	for _, m := range f.Metrics {
		for _, p := range m.MetricPoints {
			labels := m.Labels
			if info, ok := p.Value.(*openmetrics.InfoValue); ok {
				labels = append(append([]openmetrics.Label(nil), labels...), info.Info...)
			}

			names, values := c.labelValues(labels)
			desc := prometheus.NewDesc(name, f.Help, names, nil)

			metric, err := newMetric(desc, f.Type, p.Value, values)
			if err != nil {
				metric = prometheus.NewInvalidMetric(desc, fmt.Errorf("metric %s: %w", f.Name, err))
			}
			ch <- metric
		}
	}
}

// labelValues returns sanitized label names and their values. The first
// label with a given name wins, followed by the labels of the collector.
func (c *Collector) labelValues(labels []openmetrics.Label) ([]string, []string) {
	seen := make(map[string]bool, len(labels)+len(c.labels))
	names := make([]string, 0, len(labels)+len(c.labels))
	values := make([]string, 0, len(labels)+len(c.labels))

	for _, group := range [][]openmetrics.Label{labels, c.labels} {
		for _, l := range group {
			name := sanitizeName(l.Name, false)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
			values = append(values, l.Value)
		}
	}
	return names, values
}

func newMetric(desc *prometheus.Desc, typ openmetrics.MetricType, v openmetrics.PointValue, labelValues []string) (prometheus.Metric, error) {
	switch typ {
	case openmetrics.MetricTypeCounter:
		if v, ok := v.(*openmetrics.CounterValue); ok {
			return prometheus.NewConstMetric(desc, prometheus.CounterValue, counterTotal(v.Total), labelValues...)
		}

	case openmetrics.MetricTypeGauge:
		if v, ok := v.(*openmetrics.GaugeValue); ok {
			return prometheus.NewConstMetric(desc, prometheus.GaugeValue, number(v.Value), labelValues...)
		}

	case openmetrics.MetricTypeUnknown:
		switch v := v.(type) {
		case *openmetrics.UnknownValue:
			return prometheus.NewConstMetric(desc, prometheus.UntypedValue, number(v.Value), labelValues...)
		case *openmetrics.GaugeValue:
			return prometheus.NewConstMetric(desc, prometheus.UntypedValue, number(v.Value), labelValues...)
		case *openmetrics.CounterValue:
			return prometheus.NewConstMetric(desc, prometheus.UntypedValue, counterTotal(v.Total), labelValues...)
		}

	case openmetrics.MetricTypeHistogram:
		if v, ok := v.(*openmetrics.HistogramValue); ok {
			buckets := make(map[float64]uint64, len(v.Buckets))
			for _, b := range v.Buckets {
				if !math.IsInf(b.UpperBound, 1) {
					buckets[b.UpperBound] = b.Count
				}
			}
			return prometheus.NewConstHistogram(desc, v.Count, number(v.Sum), buckets, labelValues...)
		}

	case openmetrics.MetricTypeInfo:
		if _, ok := v.(*openmetrics.InfoValue); ok {
			return prometheus.NewConstMetric(desc, prometheus.GaugeValue, 1, labelValues...)
		}

	default:
		return nil, fmt.Errorf("unsupported metric type %s", typ)
	}
	return nil, fmt.Errorf("unexpected %T value for %s metric", v, typ)
}

func number(n openmetrics.Number) float64 {
	switch n := n.(type) {
	case openmetrics.Int:
		return float64(n)
	case openmetrics.Double:
		return float64(n)
	}
	return 0
}

func counterTotal(t openmetrics.CounterTotal) float64 {
	switch t := t.(type) {
	case openmetrics.IntTotal:
		return float64(t)
	case openmetrics.DoubleTotal:
		return float64(t)
	}
	return 0
}

// sanitizeName replaces each run of characters that are not valid in a
// Prometheus name with an underscore and removes leading underscores. Colons
// are only valid in metric names.
func sanitizeName(name string, metric bool) string {
	var b strings.Builder
	b.Grow(len(name))

	replaced := false
	for _, r := range name {
		valid := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == ':' && metric
		if valid {
			b.WriteRune(r)
			replaced = false
		} else if !replaced {
			b.WriteByte('_')
			replaced = true
		}
	}

	s := strings.TrimLeft(b.String(), "_")
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}
