package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	content := `
addStations: 4
multStations: 3
loadStations: 2
storeStations: 2
robSize: 32
memorySize: 2048
latencyAdd: 1
latencySub: 1
latencyMul: 8
latencyDiv: 20
latencyLoad: 2
latencyStore: 2
seed: 42
cycleLimit: 100
programPath: "workloads/test.txt"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	cfg, err := LoadConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.AddStations != 4 {
		t.Errorf("Expected AddStations = 4, got %d", cfg.AddStations)
	}
	if cfg.ROBSize != 32 {
		t.Errorf("Expected ROBSize = 32, got %d", cfg.ROBSize)
	}
	if cfg.MemorySize != 2048 {
		t.Errorf("Expected MemorySize = 2048, got %d", cfg.MemorySize)
	}
	if cfg.Seed != 42 {
		t.Errorf("Expected Seed = 42, got %d", cfg.Seed)
	}
	if cfg.CycleLimit != 100 {
		t.Errorf("Expected CycleLimit = 100, got %d", cfg.CycleLimit)
	}
	if cfg.ProgramPath != "workloads/test.txt" {
		t.Errorf("Expected ProgramPath = workloads/test.txt, got %s", cfg.ProgramPath)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("LoadConfig() with missing file should return error")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		cfg := *DefaultConfig()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero add stations",
			mutate:  func(c *Config) { c.AddStations = 0 },
			wantErr: true,
		},
		{
			name:    "zero ROB size",
			mutate:  func(c *Config) { c.ROBSize = 0 },
			wantErr: true,
		},
		{
			name:    "zero memory size",
			mutate:  func(c *Config) { c.MemorySize = 0 },
			wantErr: true,
		},
		{
			name:    "zero DIV latency",
			mutate:  func(c *Config) { c.LatencyDiv = 0 },
			wantErr: true,
		},
		{
			name:    "negative cycle limit",
			mutate:  func(c *Config) { c.CycleLimit = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			if err := validateConfig(&cfg); (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatalf("DefaultConfig() returned nil")
	}

	if cfg.ROBSize != 16 {
		t.Errorf("Expected default ROBSize = 16, got %d", cfg.ROBSize)
	}
	if cfg.MemorySize != 1024 {
		t.Errorf("Expected default MemorySize = 1024, got %d", cfg.MemorySize)
	}
	if cfg.LatencyMul != 10 {
		t.Errorf("Expected default LatencyMul = 10, got %d", cfg.LatencyMul)
	}
	if cfg.LatencyDiv != 40 {
		t.Errorf("Expected default LatencyDiv = 40, got %d", cfg.LatencyDiv)
	}
	if cfg.CycleLimit != 50 {
		t.Errorf("Expected default CycleLimit = 50, got %d", cfg.CycleLimit)
	}
}
