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

package encoding

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/openmetrics"
	"github.com/palantir/go-openmetrics/registry"
)

// sortMetrics makes comparisons independent of family iteration order.
var sortMetrics = cmpopts.SortSlices(func(a, b openmetrics.Metric) bool {
	return labelString(a.Labels) < labelString(b.Labels)
})

func labelString(labels []openmetrics.Label) string {
	var b strings.Builder
	for _, l := range labels {
		fmt.Fprintf(&b, "%s=%q,", l.Name, l.Value)
	}
	return b.String()
}

func counterPoint(total uint64) []openmetrics.MetricPoint {
	return []openmetrics.MetricPoint{{Value: &openmetrics.CounterValue{Total: openmetrics.IntTotal(total)}}}
}

func TestEncode(t *testing.T) {
	t.Run("counter", func(t *testing.T) {
		r := registry.New()
		c := new(metrics.Counter)
		r.RegisterWithUnit("my_counter", "My counter", registry.Seconds, c)
		c.Inc()

		expected := openmetrics.MetricSet{
			MetricFamilies: []openmetrics.MetricFamily{{
				Name: "my_counter",
				Type: openmetrics.MetricTypeCounter,
				Unit: "seconds",
				Help: "My counter",
				Metrics: []openmetrics.Metric{{
					Labels:       []openmetrics.Label{},
					MetricPoints: counterPoint(1),
				}},
			}},
		}

		if diff := cmp.Diff(expected, Encode(r), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("incorrect metric set (-want +got):\n%s", diff)
		}
	})

	t.Run("familyWithInheritedLabels", func(t *testing.T) {
		r := registry.New()
		family := metrics.NewFamily[metrics.LabelSet](func() *metrics.Counter { return new(metrics.Counter) })
		sub := r.SubRegistryWithLabel(metrics.LabelPair{Name: "my_key", Value: "my_value"})
		sub.Register("my_counter_family", "My counter family", family)

		family.GetOrCreate(metrics.Labels("method", "GET", "status", "200")).Inc()
		family.GetOrCreate(metrics.Labels("method", "POST", "status", "503")).Inc()

		expected := openmetrics.MetricSet{
			MetricFamilies: []openmetrics.MetricFamily{{
				Name: "my_counter_family",
				Type: openmetrics.MetricTypeCounter,
				Help: "My counter family",
				Metrics: []openmetrics.Metric{
					{
						Labels: []openmetrics.Label{
							{Name: "method", Value: "GET"},
							{Name: "status", Value: "200"},
							{Name: "my_key", Value: "my_value"},
						},
						MetricPoints: counterPoint(1),
					},
					{
						Labels: []openmetrics.Label{
							{Name: "method", Value: "POST"},
							{Name: "status", Value: "503"},
							{Name: "my_key", Value: "my_value"},
						},
						MetricPoints: counterPoint(1),
					},
				},
			}},
		}

		if diff := cmp.Diff(expected, Encode(r), sortMetrics); diff != "" {
			t.Errorf("incorrect metric set (-want +got):\n%s", diff)
		}
	})

	t.Run("emptyFamily", func(t *testing.T) {
		r := registry.New()
		family := metrics.NewFamily[metrics.LabelSet](func() *metrics.Counter { return new(metrics.Counter) })
		r.RegisterWithUnit("empty", "Empty family", registry.Bytes, family)

		set := Encode(r)
		require.Len(t, set.MetricFamilies, 1)

		f := set.MetricFamilies[0]
		assert.Equal(t, "empty", f.Name)
		assert.Equal(t, openmetrics.MetricTypeCounter, f.Type)
		assert.Equal(t, "bytes", f.Unit)
		assert.Equal(t, "Empty family", f.Help)
		assert.Empty(t, f.Metrics)
	})

	t.Run("registryOrder", func(t *testing.T) {
		r := registry.New()
		r.Register("d1", "", new(metrics.Counter))
		r.SubRegistryWithPrefix("sub").Register("d2", "", new(metrics.Gauge))
		r.Register("d3", "", metrics.NewHistogram(1))

		set := Encode(r)
		require.Len(t, set.MetricFamilies, 3)
		assert.Equal(t, "d1", set.MetricFamilies[0].Name)
		assert.Equal(t, "sub_d2", set.MetricFamilies[1].Name)
		assert.Equal(t, "d3", set.MetricFamilies[2].Name)
	})

	t.Run("metricTypes", func(t *testing.T) {
		r := registry.New()
		r.Register("counter", "", new(metrics.Counter))
		r.Register("gauge", "", new(metrics.GaugeFloat))
		r.Register("histogram", "", new(metrics.Histogram))
		r.Register("info", "", metrics.NewInfo(metrics.LabelPair{Name: "version", Value: "1"}))
		r.Register("unknown", "", new(metrics.Family[metrics.LabelSet, metrics.EncodeMetric]))

		var types []openmetrics.MetricType
		for _, f := range Encode(r).MetricFamilies {
			types = append(types, f.Type)
		}
		assert.Equal(t, []openmetrics.MetricType{
			openmetrics.MetricTypeCounter,
			openmetrics.MetricTypeGauge,
			openmetrics.MetricTypeHistogram,
			openmetrics.MetricTypeInfo,
			openmetrics.MetricTypeUnknown,
		}, types)
	})

	t.Run("otherUnit", func(t *testing.T) {
		r := registry.New()
		r.RegisterWithUnit("queue", "", registry.OtherUnit("messages"), new(metrics.Gauge))
		r.Register("plain", "", new(metrics.Gauge))

		set := Encode(r)
		assert.Equal(t, "messages", set.MetricFamilies[0].Unit)
		assert.Equal(t, "", set.MetricFamilies[1].Unit)
	})

	t.Run("idempotentRead", func(t *testing.T) {
		r := registry.New()
		family := metrics.NewFamily[metrics.LabelSet](func() *metrics.Gauge { return new(metrics.Gauge) })
		r.SubRegistryWithLabel(metrics.LabelPair{Name: "k", Value: "v"}).Register("gauges", "", family)
		for _, s := range []string{"a", "b", "c", "d"} {
			family.GetOrCreate(metrics.Labels("name", s)).Set(int64(len(s)))
		}

		if diff := cmp.Diff(Encode(r), Encode(r), sortMetrics); diff != "" {
			t.Errorf("repeated encode changed output (-first +second):\n%s", diff)
		}
	})

	t.Run("noDuplicateKeys", func(t *testing.T) {
		r := registry.New()
		family := metrics.NewFamily[metrics.LabelSet](func() *metrics.Counter { return new(metrics.Counter) })
		r.Register("requests", "", family)
		for i := 0; i < 5; i++ {
			family.GetOrCreate(metrics.Labels("method", "GET")).Inc()
		}

		set := Encode(r)
		require.Len(t, set.MetricFamilies[0].Metrics, 1)
		assert.Equal(t, counterPoint(5), set.MetricFamilies[0].Metrics[0].MetricPoints)
	})

	t.Run("marshal", func(t *testing.T) {
		r := registry.New()
		r.Register("c", "h", new(metrics.Counter))

		set := Encode(r)
		assert.Equal(t, set.MarshalProto(), Marshal(r))
		assert.NotEmpty(t, Marshal(r))
	})
}

func TestEncodeConcurrent(t *testing.T) {
	const workers, rounds = 4, 500

	r := registry.New()
	family := metrics.NewFamily[metrics.Pair[string, int]](func() *metrics.Counter { return new(metrics.Counter) })
	r.Register("requests", "", family)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < rounds; i++ {
				family.GetOrCreate(metrics.Pair[string, int]{Name: "worker", Value: w}).Inc()
			}
			return nil
		})
		g.Go(func() error {
			for i := 0; i < rounds; i++ {
				set := Encode(r)
				if len(set.MetricFamilies) != 1 {
					return fmt.Errorf("incorrect number of families: %d", len(set.MetricFamilies))
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	set := Encode(r)
	require.Len(t, set.MetricFamilies[0].Metrics, workers)
	for _, m := range set.MetricFamilies[0].Metrics {
		assert.Equal(t, counterPoint(rounds), m.MetricPoints)
	}
}
