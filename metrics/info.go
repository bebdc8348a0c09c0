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

package metrics

import (
	"github.com/palantir/go-openmetrics/openmetrics"
)

// Info exposes constant textual information, such as a build version, as
// labels. The info labels are set once at construction.
type Info[S LabelEncoder] struct {
	labels S
}

func NewInfo[S LabelEncoder](labels S) *Info[S] {
	return &Info[S]{labels: labels}
}

func (*Info[S]) MetricType() MetricType { return MetricTypeInfo }

func (i *Info[S]) Encode(labels []openmetrics.Label) []openmetrics.Metric {
	var info []openmetrics.Label
	if any(i.labels) != nil {
		info = i.labels.EncodeLabels()
	}
	return point(labels, &openmetrics.InfoValue{Info: info})
}
