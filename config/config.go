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

// Package config loads the configuration of an application that reports
// metrics and builds its logger and root registry.
package config

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"github.com/palantir/go-openmetrics/metrics"
	"github.com/palantir/go-openmetrics/registry"
)

type Config struct {
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Registry RegistryConfig `yaml:"registry" json:"registry"`
}

// LoggingConfig contains options for logging.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`

	// Text enables colorized text output instead of JSON.
	Text bool `yaml:"text" json:"text"`
}

// RegistryConfig contains options for the root metrics registry.
type RegistryConfig struct {
	// Prefix is added to the name of every metric.
	Prefix string `yaml:"prefix" json:"prefix"`

	// Labels are added to every metric, ordered by name.
	Labels map[string]string `yaml:"labels" json:"labels"`
}

// ReadConfig reads a YAML configuration file and then applies values from
// the environment with SetValuesFromEnv.
func ReadConfig(path string) (*Config, error) {
	var c Config

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading config file: %s", path)
	}

	if err := yaml.UnmarshalStrict(bytes, &c); err != nil {
		return nil, errors.Wrap(err, "failed parsing config file")
	}

	c.SetValuesFromEnv("")
	return &c, nil
}

// SetValuesFromEnv sets values in the configuration from corresponding
// environment variables, if they exist. The optional prefix is added to the
// start of the names.
func (c *Config) SetValuesFromEnv(prefix string) {
	c.Logging.SetValuesFromEnv(prefix)
	c.Registry.SetValuesFromEnv(prefix)
}

// SetValuesFromEnv sets values from LOG_LEVEL and LOG_TEXT. Values of
// LOG_TEXT that are not booleans are ignored.
func (c *LoggingConfig) SetValuesFromEnv(prefix string) {
	setStringFromEnv("LOG_LEVEL", prefix, &c.Level)

	if v, ok := os.LookupEnv(prefix + "LOG_TEXT"); ok {
		if text, err := strconv.ParseBool(v); err == nil {
			c.Text = text
		}
	}
}

// SetValuesFromEnv sets values from METRICS_PREFIX and METRICS_LABELS. The
// labels variable is a comma-separated list of name=value pairs and replaces
// any configured labels. Pairs without a name are ignored.
func (c *RegistryConfig) SetValuesFromEnv(prefix string) {
	setStringFromEnv("METRICS_PREFIX", prefix, &c.Prefix)

	if v, ok := os.LookupEnv(prefix + "METRICS_LABELS"); ok {
		c.Labels = parseLabels(v)
	}
}

// NewRegistry creates a root registry that logs with logger and has the
// configured prefix and labels.
func NewRegistry(c RegistryConfig, logger zerolog.Logger) *registry.Registry {
	names := make([]string, 0, len(c.Labels))
	for name := range c.Labels {
		names = append(names, name)
	}
	sort.Strings(names)

	labels := make([]metrics.LabelPair, 0, len(names))
	for _, name := range names {
		labels = append(labels, metrics.LabelPair{Name: name, Value: c.Labels[name]})
	}

	return registry.New(
		registry.WithLogger(logger),
		registry.WithPrefix(c.Prefix),
		registry.WithLabels(labels...),
	)
}

func setStringFromEnv(key, prefix string, value *string) {
	if v, ok := os.LookupEnv(prefix + key); ok {
		*value = v
	}
}

func parseLabels(s string) map[string]string {
	labels := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		name, value, _ := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		labels[name] = strings.TrimSpace(value)
	}
	return labels
}
