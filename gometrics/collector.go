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

// Package gometrics reports the metrics in a [go-metrics] registry through a
// registry.Registry.
//
// It supports a special format for go-metrics names to add metric-specific
// labels:
//
//	metricName[tag1,tag2:value2,...]
//
// Tags are converted to labels with [metrics.ParseTags] and metrics that
// share a base name are reported together.
//
// [go-metrics]: https://pkg.go.dev/github.com/rcrowley/go-metrics
package gometrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"

	om "github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/openmetrics"
	"github.com/palantir/go-openmetrics/registry"
)

type Option func(*Collector)

// WithLogger sets the logger used to report metrics that cannot be
// converted.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Collector) { c.logger = logger }
}

// Collector is a registry.Collector that reads a go-metrics registry each
// time it is collected.
//
// Counters and meters are reported as unknown metrics because their values
// may decrease. Histograms and timers are reported as histograms with only
// the +Inf bucket, along with unknown metrics for the minimum and maximum
// values. Timer values are converted to seconds.
type Collector struct {
	registry metrics.Registry
	logger   zerolog.Logger
}

var _ registry.Collector = &Collector{}

func NewCollector(r metrics.Registry, opts ...Option) *Collector {
	c := &Collector{
		registry: r,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type groupKey struct {
	name string
	typ  om.MetricType
}

func (c *Collector) Collect() []registry.Collected {
	groups := make(map[groupKey]*snapshot)
	add := func(name, help string, typ om.MetricType, labels om.LabelSet, v openmetrics.PointValue) {
		k := groupKey{name: name, typ: typ}
		s, ok := groups[k]
		if !ok {
			s = &snapshot{help: help}
			groups[k] = s
		}
		s.points = append(s.points, labeledPoint{labels: labels, value: v})
	}

	c.registry.Each(func(fullName string, metric interface{}) {
		name, tags := tagsFromName(fullName)
		name = strings.ReplaceAll(name, ".", "_")
		labels := om.ParseTags(tags...)

		switch m := metric.(type) {
		case metrics.Counter:
			add(name, "metrics.Counter", om.MetricTypeUnknown, labels, unknown(openmetrics.Int(m.Snapshot().Count())))

		case metrics.Gauge:
			add(name, "metrics.Gauge", om.MetricTypeGauge, labels, gauge(openmetrics.Int(m.Snapshot().Value())))

		case metrics.GaugeFloat64:
			add(name, "metrics.GaugeFloat64", om.MetricTypeGauge, labels, gauge(openmetrics.Double(m.Snapshot().Value())))

		case metrics.Meter:
			add(name+"_count", "metrics.Meter", om.MetricTypeUnknown, labels, unknown(openmetrics.Int(m.Snapshot().Count())))

		case metrics.Histogram:
			ms := m.Snapshot()
			add(name, "metrics.Histogram", om.MetricTypeHistogram, labels, histogram(ms.Count(), float64(ms.Sum())))
			add(name+"_max", "metrics.Histogram", om.MetricTypeUnknown, labels, unknown(openmetrics.Int(ms.Max())))
			add(name+"_min", "metrics.Histogram", om.MetricTypeUnknown, labels, unknown(openmetrics.Int(ms.Min())))

		case metrics.Timer:
			ms := m.Snapshot()
			add(name+"_seconds", "metrics.Timer", om.MetricTypeHistogram, labels, histogram(ms.Count(), seconds(ms.Sum())))
			add(name+"_max_seconds", "metrics.Timer", om.MetricTypeUnknown, labels, unknown(openmetrics.Double(seconds(ms.Max()))))
			add(name+"_min_seconds", "metrics.Timer", om.MetricTypeUnknown, labels, unknown(openmetrics.Double(seconds(ms.Min()))))

		default:
			c.logger.Debug().
				Str("metric", fullName).
				Str("type", fmt.Sprintf("%T", metric)).
				Msg("Skipping go-metrics metric with unsupported type")
		}
	})

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].typ < keys[j].typ
	})

	collected := make([]registry.Collected, 0, len(keys))
	for _, k := range keys {
		s := groups[k]
		sort.SliceStable(s.points, func(i, j int) bool {
			return s.points[i].labels.String() < s.points[j].labels.String()
		})
		collected = append(collected, registry.Collected{
			Name:   k.name,
			Help:   s.help,
			Metric: s.metric(k.typ),
		})
	}
	return collected
}

func tagsFromName(name string) (string, []string) {
	start := strings.IndexRune(name, '[')
	if start < 0 || name[len(name)-1] != ']' {
		return name, nil
	}
	return name[:start], strings.Split(name[start+1:len(name)-1], ",")
}

func seconds(ns int64) float64 {
	return time.Duration(ns).Seconds()
}

