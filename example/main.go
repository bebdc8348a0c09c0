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

package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	rcmetrics "github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"

	"github.com/palantir/go-openmetrics/appmetrics"
	"github.com/palantir/go-openmetrics/config"
	promemitter "github.com/palantir/go-openmetrics/emitter/prometheus"
	"github.com/palantir/go-openmetrics/encoding"
	"github.com/palantir/go-openmetrics/gometrics"
	"github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/pkg/errfmt"
	"github.com/palantir/go-openmetrics/registry"
)

const version = "0.1.0"

// WorkerMetrics are the metrics reported by the simulated job workers.
type WorkerMetrics struct {
	Jobs      *metrics.Counter                     `metric:"jobs" metric-help:"Jobs processed"`
	Failures  *appmetrics.Tagged[*metrics.Counter] `metric:"failures" metric-help:"Jobs that failed by reason"`
	Duration  *metrics.Histogram                   `metric:"job_duration" metric-help:"Time to process a job" metric-unit:"seconds" metric-buckets:"exponential,0.005,2,8"`
	QueueSize *metrics.FuncGauge[int64]            `metric:"queue_size" metric-help:"Jobs waiting to be processed"`

	ComputeQueueSize func() int64
}

func (m *WorkerMetrics) Failed(reason string, retry bool) {
	m.Failures.Tag("reason:"+reason, "retry:"+strconv.FormatBool(retry)).Inc()
}

func main() {
	if err := run("example/config.yml"); err != nil {
		fmt.Fprintln(os.Stderr, errfmt.Print(err))
		os.Exit(1)
	}
}

func run(path string) error {
	// Load your configuration from a file
	c, err := config.ReadConfig(path)
	if err != nil {
		return err
	}

	// Configure a root logger for everything to use
	logger, err := config.ConfigureDefaultLogger(c.Logging)
	if err != nil {
		return err
	}

	// Create the root registry from the configuration
	r := config.NewRegistry(c.Registry, logger)
	r.Register("build", "Build information", metrics.NewInfo(metrics.Labels("version", version)))

	queue := make(chan time.Duration, 64)
	worker := appmetrics.New[WorkerMetrics]()
	worker.ComputeQueueSize = func() int64 { return int64(len(queue)) }
	if err := appmetrics.Register(r.SubRegistryWithPrefix("worker"), worker); err != nil {
		return errors.Wrap(err, "failed to register worker metrics")
	}

	requests := metrics.NewFamily[metrics.LabelSet](func() *metrics.Counter { return new(metrics.Counter) })
	r.SubRegistryWithLabel(metrics.LabelPair{Name: "component", Value: "http"}).
		Register("requests", "HTTP requests received", requests)

	// Report metrics from a library that uses go-metrics
	legacy := rcmetrics.NewRegistry()
	rcmetrics.NewRegisteredCounter("cache.hits[cache:users]", legacy).Inc(12)
	rcmetrics.NewRegisteredCounter("cache.hits[cache:groups]", legacy).Inc(3)
	r.SubRegistryWithPrefix("legacy").RegisterCollector(gometrics.NewCollector(legacy, gometrics.WithLogger(logger)))

	simulate(worker, requests, queue)

	set := encoding.Encode(r)
	for _, f := range set.MetricFamilies {
		logger.Info().
			Str("metric", f.Name).
			Str("type", f.Type.String()).
			Int("series", len(f.Metrics)).
			Msg("Encoded metric family")
	}
	logger.Info().Int("bytes", len(encoding.Marshal(r))).Msg("Marshaled metric set")

	return gatherPrometheus(r, logger)
}

func simulate(m *WorkerMetrics, requests *metrics.Family[metrics.LabelSet, *metrics.Counter], queue chan time.Duration) {
	for i := 0; i < cap(queue)/2; i++ {
		queue <- time.Duration(rand.Intn(100)) * time.Millisecond
	}

	for i := 0; i < 20; i++ {
		d := <-queue
		m.Jobs.Inc()
		m.Duration.Observe(d.Seconds())
		if d > 80*time.Millisecond {
			m.Failed("timeout", i%2 == 0)
		}

		method := "GET"
		if i%4 == 0 {
			method = "POST"
		}
		requests.GetOrCreate(metrics.Labels("method", method)).Inc()
	}
}

// gatherPrometheus reports the registry through a Prometheus registry, as
// an application that already exposes Prometheus metrics would.
func gatherPrometheus(r *registry.Registry, logger zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(promemitter.NewCollector(r)); err != nil {
		return errors.Wrap(err, "failed to register prometheus collector")
	}

	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather prometheus metrics")
	}

	for _, f := range families {
		logger.Debug().
			Str("metric", f.GetName()).
			Str("type", f.GetType().String()).
			Int("series", len(f.GetMetric())).
			Msg("Gathered Prometheus metric family")
	}
	return nil
}
