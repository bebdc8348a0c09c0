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
	"github.com/palantir/go-openmetrics/metrics"
)

// Tagged is a family of metrics keyed by tags. Declare Tagged fields as
// pointers in a metrics struct; New creates an empty family for each one.
//
// While Tagged metrics can be used directly, it's helpful to wrap them in a
// function that accepts the expected tag values using the correct types. For
// example:
//
//	struct M {
//		Responses *appmetrics.Tagged[*metrics.Counter] `metric:"responses"`
//	}
//
//	func (m *M) ResponsesByTypeAndStatus(typ string, status int) *metrics.Counter {
//		return m.Responses.Tag("type:"+typ, "status:"+strconv.Itoa(status))
//	}
//
// Note that each unique combination of tags produces a separate metric in the
// family. For this reason avoid tags that can take many values, like IDs.
type Tagged[M metrics.EncodeMetric] struct {
	metrics.Family[metrics.LabelSet, M]
}

// Tag returns the metric that reports with the given tags, creating it if
// needed. Tags may be either plain values or key-value pairs separated by a
// colon. See [metrics.ParseTags] for how tags become labels.
func (t *Tagged[M]) Tag(tags ...string) M {
	return t.GetOrCreate(metrics.ParseTags(tags...))
}
