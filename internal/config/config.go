// Package config loads and validates the simulator's configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every constant the Tomasulo+ROB engine needs to build itself.
// Field values mirror the baked-in constants of the source algorithm
// (spec.md §6) but are exposed here so tests can override them.
type Config struct {
	// Reservation station pool sizes.
	AddStations   int `yaml:"addStations"`
	MultStations  int `yaml:"multStations"`
	LoadStations  int `yaml:"loadStations"`
	StoreStations int `yaml:"storeStations"`

	// Reorder buffer.
	ROBSize int `yaml:"robSize"`

	// Flat memory, in words.
	MemorySize int `yaml:"memorySize"`

	// Functional unit latencies, in cycles.
	LatencyAdd   int `yaml:"latencyAdd"`
	LatencySub   int `yaml:"latencySub"`
	LatencyMul   int `yaml:"latencyMul"`
	LatencyDiv   int `yaml:"latencyDiv"`
	LatencyLoad  int `yaml:"latencyLoad"`
	LatencyStore int `yaml:"latencyStore"`

	// Seed for the register-file pseudo-random initializer. The source
	// seeds rand() from wall-clock time; tests need this to be fixed.
	Seed int64 `yaml:"seed"`

	// Safety bound on the number of cycles the pipeline tick loop may run
	// before the watchdog aborts it (spec.md §4.5).
	CycleLimit int64 `yaml:"cycleLimit"`

	// Path to the instruction program to load. Empty means "prompt on stdin".
	ProgramPath string `yaml:"programPath"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validateConfig checks if the configuration is sane.
func validateConfig(cfg *Config) error {
	if cfg.AddStations <= 0 || cfg.MultStations <= 0 || cfg.LoadStations <= 0 || cfg.StoreStations <= 0 {
		return fmt.Errorf("reservation station pool sizes must be positive")
	}

	if cfg.ROBSize <= 0 {
		return fmt.Errorf("ROB size must be positive")
	}

	if cfg.MemorySize <= 0 {
		return fmt.Errorf("memory size must be positive")
	}

	for name, latency := range map[string]int{
		"ADD": cfg.LatencyAdd, "SUB": cfg.LatencySub, "MUL": cfg.LatencyMul,
		"DIV": cfg.LatencyDiv, "LOAD": cfg.LatencyLoad, "STORE": cfg.LatencyStore,
	} {
		if latency <= 0 {
			return fmt.Errorf("latency for %s must be positive", name)
		}
	}

	if cfg.CycleLimit <= 0 {
		return fmt.Errorf("cycle limit must be positive")
	}

	return nil
}

// DefaultConfig returns the constants baked into the original algorithm
// (spec.md §6).
func DefaultConfig() *Config {
	return &Config{
		AddStations:   3,
		MultStations:  2,
		LoadStations:  2,
		StoreStations: 2,

		ROBSize: 16,

		MemorySize: 1024,

		LatencyAdd:   2,
		LatencySub:   2,
		LatencyMul:   10,
		LatencyDiv:   40,
		LatencyLoad:  3,
		LatencyStore: 3,

		Seed: 0,

		CycleLimit: 50,
	}
}
