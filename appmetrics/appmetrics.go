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
	"reflect"
	"strconv"
	"strings"

	"github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/registry"
)

const (
	MetricTag        = "metric"
	MetricHelpTag    = "metric-help"
	MetricUnitTag    = "metric-unit"
	MetricBucketsTag = "metric-buckets"
)

var (
	encodeMetricType     = reflect.TypeOf((*metrics.EncodeMetric)(nil)).Elem()
	histogramType        = reflect.TypeOf((*metrics.Histogram)(nil))
	funcGaugeType        = reflect.TypeOf((*metrics.FuncGauge[int64])(nil))
	funcGaugeFloat64Type = reflect.TypeOf((*metrics.FuncGauge[float64])(nil))
)

// New allocates a metrics struct and creates a metric for each field with a
// "metric" tag. New panics if M is not a struct or if a tagged field is not
// a supported metric type.
func New[M any]() *M {
	var m M

	typ := reflect.TypeOf(m)
	if typ == nil || typ.Kind() != reflect.Struct {
		panic("appmetrics.New: type is not a struct")
	}

	fields, err := getMetricFields(typ)
	if err != nil {
		panic("appmetrics.New: " + err.Error())
	}

	v := reflect.ValueOf(&m).Elem()
	for _, f := range fields {
		if err := createField(v, f); err != nil {
			panic(fmt.Sprintf("appmetrics.New: field %s: %v", f.Name, err))
		}
	}
	return &m
}

// Register adds every tagged metric in m to r. The "metric-help" and
// "metric-unit" tags set the help text and unit of each metric. Register
// returns an error if a tagged field is nil.
func Register[M any](r *registry.Registry, m *M) error {
	v := reflect.ValueOf(m).Elem()
	if v.Type().Kind() != reflect.Struct {
		panic("appmetrics.Register: type is not a struct pointer")
	}

	fields, err := getMetricFields(v.Type())
	if err != nil {
		panic("appmetrics.Register: " + err.Error())
	}

	for _, f := range fields {
		fv := v.FieldByIndex(f.Index)
		if fv.IsNil() {
			return fmt.Errorf("field %s: metric is nil", f.Name)
		}

		name := f.Tag.Get(MetricTag)
		unit := registry.ParseUnit(f.Tag.Get(MetricUnitTag))
		r.RegisterWithUnit(name, f.Tag.Get(MetricHelpTag), unit, fv.Interface().(metrics.EncodeMetric))
	}
	return nil
}

func getMetricFields(typ reflect.Type) ([]reflect.StructField, error) {
	var fields []reflect.StructField
	for _, f := range reflect.VisibleFields(typ) {
		if metric := f.Tag.Get(MetricTag); metric != "" {
			if isMetricType(f.Type) {
				fields = append(fields, f)
			} else {
				return nil, fmt.Errorf("field %s: metric tag appears on non-metric type %s", f.Name, f.Type)
			}
		}
	}
	return fields, nil
}

// isMetricType reports if typ is a pointer to a metric. The pointed-to type
// must be usable as a zero value unless createField handles it directly.
func isMetricType(typ reflect.Type) bool {
	return typ.Kind() == reflect.Pointer &&
		typ.Elem().Kind() == reflect.Struct &&
		typ.Implements(encodeMetricType)
}

func createField(v reflect.Value, f reflect.StructField) error {
	var value any
	switch f.Type {
	case histogramType:
		if buckets := f.Tag.Get(MetricBucketsTag); buckets != "" {
			b, err := parseBuckets(buckets)
			if err != nil {
				return err
			}
			value = metrics.NewHistogram(b...)
		} else {
			value = metrics.NewHistogram()
		}

	case funcGaugeType:
		fn, err := getGaugeFunction[int64](v, f.Name)
		if err != nil {
			return err
		}
		value = metrics.NewFuncGauge(fn)

	case funcGaugeFloat64Type:
		fn, err := getGaugeFunction[float64](v, f.Name)
		if err != nil {
			return err
		}
		value = metrics.NewFuncGauge(fn)

	default:
		value = reflect.New(f.Type.Elem()).Interface()
	}

	v.FieldByIndex(f.Index).Set(reflect.ValueOf(value))
	return nil
}

// parseBuckets parses either a list of upper bounds ("0.1,0.5,1") or a
// generated layout ("exponential,start,factor,count" or
// "linear,start,width,count").
func parseBuckets(s string) ([]float64, error) {
	parts := strings.Split(strings.ToLower(s), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch parts[0] {
	case "exponential", "linear":
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid %s buckets", parts[0])
		}
		start, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s buckets: start: %w", parts[0], err)
		}
		step, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s buckets: step: %w", parts[0], err)
		}
		count, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid %s buckets: count: %w", parts[0], err)
		}
		if count < 1 {
			return nil, fmt.Errorf("invalid %s buckets: count must be positive", parts[0])
		}
		if parts[0] == "exponential" {
			return metrics.ExponentialBuckets(start, step, count), nil
		}
		return metrics.LinearBuckets(start, step, count), nil
	}

	buckets := make([]float64, 0, len(parts))
	for _, p := range parts {
		b, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}
