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

// Package registry stores metrics with their descriptors.
//
// A Registry holds metrics in registration order. Sub-registries add a name
// prefix or static labels to every metric registered with them and are
// iterated at the position where they were created, so a walk of the root
// registry visits every metric in the order it was added.
package registry

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/palantir/go-openmetrics/metrics"
)

// Entry is a registered metric and its descriptor.
type Entry struct {
	Descriptor *Descriptor
	Metric     metrics.EncodeMetric
}

// Collected is a metric produced by a Collector.
type Collected struct {
	Name   string
	Help   string
	Unit   Unit
	Labels []metrics.LabelPair
	Metric metrics.EncodeMetric
}

// Collector produces metrics when a registry is iterated. Use a collector
// for metrics that are discovered at runtime. The prefix and labels of the
// registry are applied to each collected metric.
type Collector interface {
	Collect() []Collected
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func() []Collected

func (f CollectorFunc) Collect() []Collected { return f() }

// Option configures a Registry created by New.
type Option func(*Registry)

// WithLogger sets the logger used to report registrations.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithPrefix sets a prefix added to the name of every metric.
func WithPrefix(prefix string) Option {
	return func(r *Registry) { r.prefix = prefix }
}

// WithLabels sets static labels added to every metric.
func WithLabels(labels ...metrics.LabelPair) Option {
	return func(r *Registry) { r.labels = append(r.labels, labels...) }
}

// Registry is a tree of registered metrics. It is safe for concurrent use.
// Create registries with New.
type Registry struct {
	logger zerolog.Logger
	prefix string
	labels []metrics.LabelPair
	seen   *identities

	mu    sync.RWMutex
	items []item
}

// item is one of entry, sub, or collector.
type item struct {
	entry     *Entry
	sub       *Registry
	collector Collector
}

type identities struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// add records id and reports whether it was new.
func (ids *identities) add(id string) bool {
	ids.mu.Lock()
	defer ids.mu.Unlock()

	if _, ok := ids.seen[id]; ok {
		return false
	}
	ids.seen[id] = struct{}{}
	return true
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger: zerolog.Nop(),
		seen:   &identities{seen: make(map[string]struct{})},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds a metric without a unit.
func (r *Registry) Register(name, help string, m metrics.EncodeMetric) {
	r.RegisterWithUnit(name, help, Unit{}, m)
}

// RegisterWithUnit adds a metric with a unit.
//
// Registering two metrics with the same name and labels is a mistake by the
// caller. Both metrics are kept and a warning is logged.
func (r *Registry) RegisterWithUnit(name, help string, unit Unit, m metrics.EncodeMetric) {
	d := newDescriptor(r.prefixed(name), help, unit, r.labels)
	r.checkIdentity(d)

	r.mu.Lock()
	r.items = append(r.items, item{entry: &Entry{Descriptor: d, Metric: m}})
	r.mu.Unlock()

	r.logger.Debug().
		Str("metric", d.Name()).
		Str("type", m.MetricType().String()).
		Msg("Registered metric")
}

// RegisterCollector adds a collector. Its metrics appear at this position
// in the registration order each time the registry is iterated.
func (r *Registry) RegisterCollector(c Collector) {
	r.mu.Lock()
	r.items = append(r.items, item{collector: c})
	r.mu.Unlock()
}

// SubRegistryWithPrefix returns a new registry that joins prefix to the
// names of its metrics with an underscore.
func (r *Registry) SubRegistryWithPrefix(prefix string) *Registry {
	sub := r.newSub()
	sub.prefix = r.prefixed(prefix)
	return sub
}

// SubRegistryWithLabel returns a new registry that adds label to its
// metrics, after any labels of this registry.
func (r *Registry) SubRegistryWithLabel(label metrics.LabelPair) *Registry {
	return r.SubRegistryWithLabels(label)
}

// SubRegistryWithLabels returns a new registry that adds labels to its
// metrics, after any labels of this registry.
func (r *Registry) SubRegistryWithLabels(labels ...metrics.LabelPair) *Registry {
	sub := r.newSub()
	sub.labels = append(sub.labels, labels...)
	return sub
}

func (r *Registry) newSub() *Registry {
	sub := &Registry{
		logger: r.logger,
		prefix: r.prefix,
		labels: append([]metrics.LabelPair(nil), r.labels...),
		seen:   r.seen,
	}

	r.mu.Lock()
	r.items = append(r.items, item{sub: sub})
	r.mu.Unlock()

	return sub
}

// Entries returns all metrics in the registry and its sub-registries in
// registration order. Collectors are called while building the result.
func (r *Registry) Entries() []Entry {
	return r.appendEntries(nil)
}

// Each calls fn for every metric in registration order.
func (r *Registry) Each(fn func(*Descriptor, metrics.EncodeMetric)) {
	for _, e := range r.Entries() {
		fn(e.Descriptor, e.Metric)
	}
}

func (r *Registry) appendEntries(entries []Entry) []Entry {
	r.mu.RLock()
	items := append([]item(nil), r.items...)
	r.mu.RUnlock()

	for _, it := range items {
		switch {
		case it.entry != nil:
			entries = append(entries, *it.entry)
		case it.sub != nil:
			entries = it.sub.appendEntries(entries)
		case it.collector != nil:
			for _, c := range it.collector.Collect() {
				labels := append(append([]metrics.LabelPair(nil), r.labels...), c.Labels...)
				d := newDescriptor(r.prefixed(c.Name), c.Help, c.Unit, labels)
				entries = append(entries, Entry{Descriptor: d, Metric: c.Metric})
			}
		}
	}
	return entries
}

func (r *Registry) prefixed(name string) string {
	if r.prefix == "" {
		return name
	}
	return r.prefix + "_" + name
}

func (r *Registry) checkIdentity(d *Descriptor) {
	if r.seen == nil {
		return
	}
	if !r.seen.add(d.identity()) {
		r.logger.Warn().
			Str("metric", d.Name()).
			Str("labels", metrics.NewLabelSet(d.labels...).String()).
			Msg("Metric registered more than once with the same name and labels")
	}
}
