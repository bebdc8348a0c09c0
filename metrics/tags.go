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
	"sort"
	"strings"
)

// TagLabel is the label name given to tags that are plain values.
const TagLabel = "tag"

// ParseTags converts tags to a LabelSet. Tags are strings that can either be
// plain values or key-value pairs where the key and value are separated by
// a colon. Whitespace is trimmed from each tag, empty tags are ignored, and
// the remaining tags are sorted so the result does not depend on argument
// order. A plain value becomes a label named TagLabel.
func ParseTags(tags ...string) LabelSet {
	tags = cleanAndSortTags(tags)

	pairs := make([]LabelPair, 0, len(tags))
	for _, t := range tags {
		if name, value, ok := strings.Cut(t, ":"); ok {
			pairs = append(pairs, LabelPair{Name: name, Value: value})
		} else {
			pairs = append(pairs, LabelPair{Name: TagLabel, Value: t})
		}
	}
	return NewLabelSet(pairs...)
}

func cleanAndSortTags(tags []string) []string {
	cleanTags := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			cleanTags = append(cleanTags, t)
		}
	}
	sort.Strings(cleanTags)
	return cleanTags
}
