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

package prometheus

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/openmetrics"
	"github.com/palantir/go-openmetrics/registry"
)

// staticMetric reports a fixed point with a declared type.
type staticMetric struct {
	typ   metrics.MetricType
	value openmetrics.PointValue
}

func (m staticMetric) MetricType() metrics.MetricType { return m.typ }

func (m staticMetric) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	return []openmetrics.Metric{{
		Labels:       labels,
		MetricPoints: []openmetrics.MetricPoint{{Value: m.value}},
	}}
}

func TestCollector(t *testing.T) {
	t.Run("metricTypes", func(t *testing.T) {
		r := registry.New()
		c := NewCollector(r)

		r.Register("counter", "A counter", new(metrics.Counter))
		r.Register("gauge", "A gauge", new(metrics.Gauge))
		r.Register("gauge_float", "A float gauge", new(metrics.GaugeFloat))
		r.Register("histogram", "A histogram", metrics.NewHistogram(1))
		r.Register("build", "Build information", metrics.NewInfo(metrics.Labels("version", "1.0")))

		expected := `
# HELP build_info Build information
# TYPE build_info gauge
build_info{version="1.0"} 1
# HELP counter A counter
# TYPE counter counter
counter 0
# HELP gauge A gauge
# TYPE gauge gauge
gauge 0
# HELP gauge_float A float gauge
# TYPE gauge_float gauge
gauge_float 0
# HELP histogram A histogram
# TYPE histogram histogram
histogram_bucket{le="1"} 0
histogram_bucket{le="+Inf"} 0
histogram_sum 0
histogram_count 0
`

		if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
			t.Error(err)
		}
	})

	t.Run("labels", func(t *testing.T) {
		r := registry.New()
		c := NewCollector(r, WithLabels(map[string]string{
			"test": "labels",
		}))

		counters := metrics.NewFamily[metrics.LabelSet](func() *metrics.Counter { return new(metrics.Counter) })
		r.Register("counter", "A counter family", counters)
		unlabeled := new(metrics.Counter)
		r.Register("unlabeled_counter", "An unlabeled counter", unlabeled)

		counters.GetOrCreate(metrics.ParseTags("subsystem:a", "role:server")).Inc()
		counters.GetOrCreate(metrics.ParseTags("subsystem:b", "role:server")).IncBy(2)
		unlabeled.IncBy(3)

		expected := `
# HELP counter A counter family
# TYPE counter counter
counter{role="server",subsystem="a",test="labels"} 1
counter{role="server",subsystem="b",test="labels"} 2
# HELP unlabeled_counter An unlabeled counter
# TYPE unlabeled_counter counter
unlabeled_counter{test="labels"} 3
`

		if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
			t.Error(err)
		}
	})

	t.Run("duplicateLabels", func(t *testing.T) {
		r := registry.New()
		c := NewCollector(r, WithLabels(map[string]string{"zone": "c"}))

		gauges := metrics.NewFamily[metrics.LabelSet](func() *metrics.Gauge { return new(metrics.Gauge) })
		r.SubRegistryWithLabel(metrics.LabelPair{Name: "zone", Value: "b"}).Register("gauge", "A gauge family", gauges)
		gauges.GetOrCreate(metrics.Labels("zone", "a")).Set(4)

		expected := `
# HELP gauge A gauge family
# TYPE gauge gauge
gauge{zone="a"} 4
`

		if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
			t.Error(err)
		}
	})

	t.Run("sanitize", func(t *testing.T) {
		r := registry.New()
		c := NewCollector(r)

		r.Register("> invalid metric names! are ~~fun~~ ☃️", "Invalid names", new(metrics.Counter))

		expected := `
# HELP invalid_metric_names_are_fun_ Invalid names
# TYPE invalid_metric_names_are_fun_ counter
invalid_metric_names_are_fun_ 0
`

		if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
			t.Error(err)
		}
	})

	t.Run("histogram", func(t *testing.T) {
		r := registry.New()
		c := NewCollector(r)

		hist := metrics.NewHistogram(1, 5)
		r.RegisterWithUnit("latency_seconds", "Request latency", registry.Seconds, hist)
		for _, v := range []float64{0.5, 3, 7.5} {
			hist.Observe(v)
		}

		expected := `
# HELP latency_seconds Request latency
# TYPE latency_seconds histogram
latency_seconds_bucket{le="1"} 1
latency_seconds_bucket{le="5"} 2
latency_seconds_bucket{le="+Inf"} 3
latency_seconds_sum 11
latency_seconds_count 3
`

		if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
			t.Error(err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		r := registry.New()
		c := NewCollector(r)

		r.Register("temperature", "Room temperature", staticMetric{
			typ:   metrics.MetricTypeUnknown,
			value: &openmetrics.UnknownValue{Value: openmetrics.Double(21.5)},
		})

		expected := `
# HELP temperature Room temperature
# TYPE temperature untyped
temperature 21.5
`

		if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
			t.Error(err)
		}
	})

	t.Run("invalidPoint", func(t *testing.T) {
		r := registry.New()
		r.Register("mismatch", "Mismatched point", staticMetric{
			typ:   metrics.MetricTypeCounter,
			value: &openmetrics.GaugeValue{Value: openmetrics.Int(1)},
		})

		reg := prometheus.NewPedanticRegistry()
		require.NoError(t, reg.Register(NewCollector(r)))

		_, err := reg.Gather()
		assert.ErrorContains(t, err, "unexpected *openmetrics.GaugeValue value for COUNTER metric")
	})

	t.Run("newMetrics", func(t *testing.T) {
		r := registry.New()
		c := NewCollector(r)
		assert.Equal(t, 0, testutil.CollectAndCount(c))

		r.Register("late", "Registered after the collector", new(metrics.Gauge))
		assert.Equal(t, 1, testutil.CollectAndCount(c))
	})
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]struct {
		Name     string
		Metric   bool
		Expected string
	}{
		"valid":         {"http_requests", true, "http_requests"},
		"colon":         {"ns:requests", true, "ns:requests"},
		"labelColon":    {"ns:key", false, "ns_key"},
		"dots":          {"foo.bar.count", true, "foo_bar_count"},
		"leadingDigit":  {"1xx", true, "_1xx"},
		"leadingSymbol": {"> 2xx", true, "_2xx"},
		"empty":         {"!!!", false, ""},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.Expected, sanitizeName(test.Name, test.Metric))
		})
	}
}
