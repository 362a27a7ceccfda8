package config

import (
	"os"
	"path/filepath"
	"testing"

	"radonfbp/pkg/filter"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Geometry.Angles != 180 {
		t.Errorf("Expected 180 default angles, got %d", cfg.Geometry.Angles)
	}
	if cfg.Geometry.Size != 256 {
		t.Errorf("Expected default size 256, got %d", cfg.Geometry.Size)
	}
	if !cfg.Filter.Enabled {
		t.Error("Expected filtering enabled by default")
	}
	if cfg.Filter.Window != "ramp" {
		t.Errorf("Expected default window ramp, got %q", cfg.Filter.Window)
	}
	if cfg.Processing.NumCores < 1 {
		t.Errorf("Expected at least one core, got %d", cfg.Processing.NumCores)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Geometry.Angles != DefaultConfig().Geometry.Angles {
		t.Error("Expected defaults when the config file is missing")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := DefaultConfig()
	cfg.Geometry.Angles = 90
	cfg.Geometry.Size = 64
	cfg.Geometry.Circle = false
	cfg.Filter.Window = "hann"
	cfg.Processing.NumCores = 2

	configPath := filepath.Join(tempDir, "nested", "config.yaml")
	if err := SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Geometry.Angles != 90 || loaded.Geometry.Size != 64 {
		t.Errorf("Expected 90 angles and size 64, got %d and %d",
			loaded.Geometry.Angles, loaded.Geometry.Size)
	}
	if loaded.Geometry.Circle {
		t.Error("Expected circle masking disabled after round trip")
	}
	if loaded.Filter.Window != "hann" {
		t.Errorf("Expected hann window, got %q", loaded.Filter.Window)
	}
	if loaded.Processing.NumCores != 2 {
		t.Errorf("Expected 2 cores, got %d", loaded.Processing.NumCores)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config-partial-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "config.yaml")
	partial := []byte("geometry:\n  angles: 45\n")
	if err := os.WriteFile(configPath, partial, 0644); err != nil {
		t.Fatalf("Failed to write partial config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Geometry.Angles != 45 {
		t.Errorf("Expected 45 angles from the file, got %d", cfg.Geometry.Angles)
	}
	if cfg.Geometry.Size != 256 {
		t.Errorf("Expected default size for omitted key, got %d", cfg.Geometry.Size)
	}
}

func TestToParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Geometry.Angles = 50
	cfg.Geometry.Size = 100
	cfg.Filter.Window = "shepp-logan"

	p, err := cfg.ToParams()
	if err != nil {
		t.Fatalf("ToParams failed: %v", err)
	}
	if p.Angles != 50 || p.Size != 100 {
		t.Errorf("Expected 50 angles and size 100, got %d and %d", p.Angles, p.Size)
	}
	if p.Window != filter.WindowSheppLogan {
		t.Errorf("Expected shepp-logan window, got %v", p.Window)
	}

	cfg.Filter.Window = "blackman"
	if _, err := cfg.ToParams(); err == nil {
		t.Error("Expected error for unknown window name, got nil")
	}
}
