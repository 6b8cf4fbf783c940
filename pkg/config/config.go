// Package config resolves run configuration from environment variables and
// an optional YAML file. Precedence is defaults, then environment, then
// file; command-line flags override all three in cmd.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"addrcluster/pkg/graph"
)

// Config holds the tunable strategy settings shared by both stages.
type Config struct {
	Mapping  string `yaml:"mapping"`
	Spanning string `yaml:"spanning"`
	LogEvery int    `yaml:"log_every"`
}

// Load returns the resolved configuration. path may be empty, in which case
// only defaults and environment variables apply.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Mapping:  getEnv("ADDRCLUSTER_MAPPING", graph.MappingDense),
		Spanning: getEnv("ADDRCLUSTER_SPANNING", graph.SpanningPath),
		LogEvery: getInt("ADDRCLUSTER_LOG_EVERY", 1000000),
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}
	if _, err := graph.NewMapper(cfg.Mapping); err != nil {
		return nil, err
	}
	if _, err := graph.NewSpanning(cfg.Spanning); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
