// Package config provides configuration loading and management for graphload.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete graphload configuration
type Config struct {
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Workload  WorkloadConfig  `yaml:"workload"`
	Output    OutputConfig    `yaml:"output"`
}

// EndpointsConfig holds the three store endpoint URLs
type EndpointsConfig struct {
	// Query is the SPARQL 1.1 Query endpoint URL
	Query string `yaml:"query"`
	// Update is the SPARQL 1.1 Update endpoint URL
	Update string `yaml:"update"`
	// GraphStore is the Graph Store Protocol endpoint URL
	GraphStore string `yaml:"graph_store"`
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration `yaml:"timeout"`
}

// WorkloadConfig shapes the generated operation stream
type WorkloadConfig struct {
	// Workers is the number of independent operation streams (default: 4)
	Workers int `yaml:"workers"`
	// OpsPerWorker is the number of operations per worker (default: 20)
	OpsPerWorker int `yaml:"ops_per_worker"`
	// Seed drives all random choices; 0 derives a seed from the clock
	Seed uint64 `yaml:"seed"`
	// Parallel runs workers concurrently (only sound against isolated stores)
	Parallel bool `yaml:"parallel"`
	// SkipReset skips the DROP ALL + seed load at run start
	SkipReset bool `yaml:"skip_reset"`
	// Insert bounds the triple count of inserting operations, half-open [min, max)
	Insert RangeConfig `yaml:"insert"`
	// Delete bounds the triple count of DeleteData operations, half-open [min, max)
	Delete RangeConfig `yaml:"delete"`
}

// RangeConfig is a half-open integer interval [Min, Max)
type RangeConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// OutputConfig configures where operation records are written
type OutputConfig struct {
	// Dir is the output directory for worker_<w>/op_<i>.json files
	Dir string `yaml:"dir"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Endpoints: EndpointsConfig{
			Timeout: 60 * time.Second,
		},
		Workload: WorkloadConfig{
			Workers:      4,
			OpsPerWorker: 20,
			Insert:       RangeConfig{Min: 1, Max: 10},
			Delete:       RangeConfig{Min: 1, Max: 10},
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Workload.Workers < 1 {
		return fmt.Errorf("workload.workers must be at least 1")
	}
	if c.Workload.OpsPerWorker < 0 {
		return fmt.Errorf("workload.ops_per_worker must not be negative")
	}
	if err := c.Workload.Insert.validate("workload.insert"); err != nil {
		return err
	}
	if err := c.Workload.Delete.validate("workload.delete"); err != nil {
		return err
	}
	return nil
}

func (r RangeConfig) validate(name string) error {
	if r.Min < 1 {
		return fmt.Errorf("%s.min must be at least 1", name)
	}
	if r.Max <= r.Min {
		return fmt.Errorf("%s.max must be greater than %s.min", name, name)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Endpoints
	if other.Endpoints.Query != "" {
		c.Endpoints.Query = other.Endpoints.Query
	}
	if other.Endpoints.Update != "" {
		c.Endpoints.Update = other.Endpoints.Update
	}
	if other.Endpoints.GraphStore != "" {
		c.Endpoints.GraphStore = other.Endpoints.GraphStore
	}
	if other.Endpoints.Timeout != 0 {
		c.Endpoints.Timeout = other.Endpoints.Timeout
	}

	// Workload
	if other.Workload.Workers != 0 {
		c.Workload.Workers = other.Workload.Workers
	}
	if other.Workload.OpsPerWorker != 0 {
		c.Workload.OpsPerWorker = other.Workload.OpsPerWorker
	}
	if other.Workload.Seed != 0 {
		c.Workload.Seed = other.Workload.Seed
	}
	if other.Workload.Parallel {
		c.Workload.Parallel = true
	}
	if other.Workload.SkipReset {
		c.Workload.SkipReset = true
	}
	if other.Workload.Insert != (RangeConfig{}) {
		c.Workload.Insert = other.Workload.Insert
	}
	if other.Workload.Delete != (RangeConfig{}) {
		c.Workload.Delete = other.Workload.Delete
	}

	// Output
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
}
