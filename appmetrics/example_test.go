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

package appmetrics

import (
	"fmt"

	"github.com/palantir/go-openmetrics/encoding"
	"github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/openmetrics"
	"github.com/palantir/go-openmetrics/registry"
)

type Metrics struct {
	Counter       *metrics.Counter          `metric:"counter"`
	TaggedCounter *Tagged[*metrics.Counter] `metric:"counter_tagged"`

	Gauge           *metrics.Gauge            `metric:"gauge"`
	FunctionalGauge *metrics.FuncGauge[int64] `metric:"gauge_functional"`

	calls int64
}

func (m *Metrics) ComputeFunctionalGauge() int64 {
	m.calls++
	return m.calls
}

func Example() {
	// Initialize a Metrics struct
	m := New[Metrics]()

	// Register it with a registry
	r := registry.New()
	if err := Register(r, m); err != nil {
		panic(err)
	}

	// Report metrics
	m.Counter.IncBy(5)
	m.TaggedCounter.Tag("foo").Inc()
	m.Gauge.Set(42)

	// Read metrics from the registry
	for _, f := range encoding.Encode(r).MetricFamilies {
		for _, metric := range f.Metrics {
			fmt.Printf("%s%v: ", f.Name, metric.Labels)
			switch v := metric.MetricPoints[0].Value.(type) {
			case *openmetrics.CounterValue:
				fmt.Println(v.Total)
			case *openmetrics.GaugeValue:
				fmt.Println(v.Value)
			}
		}
	}

	// Output: counter[]: 5
	// counter_tagged[{tag foo}]: 1
	// gauge[]: 42
	// gauge_functional[]: 1
}
