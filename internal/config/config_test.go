package config

import (
	"testing"
)

// TestLoadDefaults tests default configuration values
func TestLoadDefaults(t *testing.T) {
	t.Setenv("SWINGSTATS_SHEET_NAME", "")
	t.Setenv("SWINGSTATS_MAX_COLUMN_WIDTH", "")
	t.Setenv("SWINGSTATS_STRICT_EXCLUSIONS", "")
	t.Setenv("SWINGSTATS_BATCH_PARALLELISM", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.SheetName != "Golf Stats" {
		t.Errorf("Expected default sheet name 'Golf Stats', got %q", cfg.Output.SheetName)
	}
	if cfg.Output.MaxColumnWidth != 20 {
		t.Errorf("Expected default width cap 20, got %d", cfg.Output.MaxColumnWidth)
	}
	if cfg.Exclusions.Strict {
		t.Error("Expected strict exclusions off by default")
	}
	if cfg.Batch.Parallelism != 4 {
		t.Errorf("Expected default parallelism 4, got %d", cfg.Batch.Parallelism)
	}
}

// TestLoadOverrides tests environment variable overrides
func TestLoadOverrides(t *testing.T) {
	t.Setenv("SWINGSTATS_SHEET_NAME", "Range Session")
	t.Setenv("SWINGSTATS_MAX_COLUMN_WIDTH", "32")
	t.Setenv("SWINGSTATS_STRICT_EXCLUSIONS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.SheetName != "Range Session" {
		t.Errorf("Expected sheet name override, got %q", cfg.Output.SheetName)
	}
	if cfg.Output.MaxColumnWidth != 32 {
		t.Errorf("Expected width cap 32, got %d", cfg.Output.MaxColumnWidth)
	}
	if !cfg.Exclusions.Strict {
		t.Error("Expected strict exclusions on")
	}
}

// TestValidate tests constraint checking
func TestValidate(t *testing.T) {
	t.Setenv("SWINGSTATS_MAX_COLUMN_WIDTH", "0")
	if _, err := Load(); err == nil {
		t.Error("Expected error for zero width cap")
	}
}
