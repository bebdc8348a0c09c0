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

package registry

import (
	"strings"

	"github.com/palantir/go-openmetrics/metrics"
)

// Descriptor is the immutable metadata of a registered metric.
type Descriptor struct {
	name   string
	help   string
	unit   Unit
	labels metrics.Seq[metrics.LabelPair]
}

func newDescriptor(name, help string, unit Unit, labels []metrics.LabelPair) *Descriptor {
	return &Descriptor{
		name:   name,
		help:   help,
		unit:   unit,
		labels: append(metrics.Seq[metrics.LabelPair](nil), labels...),
	}
}

func (d *Descriptor) Name() string { return d.name }

func (d *Descriptor) Help() string { return d.help }

// Unit returns the unit of the metric and true, or false if the metric has
// no unit.
func (d *Descriptor) Unit() (Unit, bool) {
	return d.unit, !d.unit.IsZero()
}

// Labels returns the static labels of the metric, inherited from the
// registry it was registered with.
func (d *Descriptor) Labels() metrics.Seq[metrics.LabelPair] {
	return append(metrics.Seq[metrics.LabelPair](nil), d.labels...)
}

// identity is the name and labels of the descriptor, used to find
// duplicate registrations.
func (d *Descriptor) identity() string {
	var b strings.Builder
	b.WriteString(d.name)
	b.WriteString(metrics.NewLabelSet(d.labels...).String())
	return b.String()
}
