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
	"fmt"
	"strconv"
	"strings"

	"github.com/palantir/go-openmetrics/openmetrics"
)

// LabelEncoder is implemented by values that carry labels. EncodeLabels
// returns the labels in order and always returns a new slice.
type LabelEncoder interface {
	EncodeLabels() []openmetrics.Label
}

// Pair is a single label. The name and value are converted to text with
// fmt.Sprint, so any type with a natural string form may be used:
//
//	metrics.Pair[string, int]{Name: "status", Value: 200}
type Pair[N, V any] struct {
	Name  N
	Value V
}

// LabelPair is a label with string name and value.
type LabelPair = Pair[string, string]

func (p Pair[N, V]) EncodeLabels() []openmetrics.Label {
	return []openmetrics.Label{{Name: fmt.Sprint(p.Name), Value: fmt.Sprint(p.Value)}}
}

// Seq is an ordered sequence of label encoders. It encodes to the
// concatenation of its elements' labels.
type Seq[T LabelEncoder] []T

func (s Seq[T]) EncodeLabels() []openmetrics.Label {
	labels := make([]openmetrics.Label, 0, len(s))
	for _, e := range s {
		labels = append(labels, e.EncodeLabels()...)
	}
	return labels
}

// LabelSet is an ordered set of string labels that is comparable and can
// be used as a map key, for example as the key type of a Family. Two
// LabelSets are equal if they contain the same pairs in the same order.
//
// The zero LabelSet has no labels.
type LabelSet struct {
	// length-prefixed name/value fields, see NewLabelSet
	enc string
}

// NewLabelSet returns a LabelSet containing pairs in the given order.
func NewLabelSet(pairs ...LabelPair) LabelSet {
	var b strings.Builder
	for _, p := range pairs {
		writeField(&b, p.Name)
		writeField(&b, p.Value)
	}
	return LabelSet{enc: b.String()}
}

// Labels returns a LabelSet from alternating names and values. If kv has
// an odd length, the last name has an empty value.
func Labels(kv ...string) LabelSet {
	pairs := make([]LabelPair, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		p := LabelPair{Name: kv[i]}
		if i+1 < len(kv) {
			p.Value = kv[i+1]
		}
		pairs = append(pairs, p)
	}
	return NewLabelSet(pairs...)
}

// Pairs returns the pairs in the set in order.
func (s LabelSet) Pairs() []LabelPair {
	var pairs []LabelPair
	for rest := s.enc; len(rest) > 0; {
		var p LabelPair
		p.Name, rest = readField(rest)
		p.Value, rest = readField(rest)
		pairs = append(pairs, p)
	}
	return pairs
}

func (s LabelSet) Len() int {
	return len(s.Pairs())
}

func (s LabelSet) EncodeLabels() []openmetrics.Label {
	pairs := s.Pairs()
	labels := make([]openmetrics.Label, len(pairs))
	for i, p := range pairs {
		labels[i] = openmetrics.Label{Name: p.Name, Value: p.Value}
	}
	return labels
}

func (s LabelSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range s.Pairs() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(p.Value))
	}
	b.WriteByte('}')
	return b.String()
}

func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func readField(s string) (field, rest string) {
	i := strings.IndexByte(s, ':')
	n, _ := strconv.Atoi(s[:i])
	start := i + 1
	return s[start : start+n], s[start+n:]
}
