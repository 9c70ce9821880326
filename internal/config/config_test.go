package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"thememgr/internal/models"
)

// ============ Load Tests ============

func TestLoadFromMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.FirstRun {
		t.Error("FirstRun = false on a missing config")
	}
	if cfg.StorageRoot != "." {
		t.Errorf("StorageRoot = %q, want .", cfg.StorageRoot)
	}
	if cfg.MaxThemes != models.DefaultMaxThemes {
		t.Errorf("MaxThemes = %d, want %d", cfg.MaxThemes, models.DefaultMaxThemes)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "storage_root: /mnt/flipper\nmax_themes: 12\nrestart_command: \"echo reboot\"\ndebug: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.StorageRoot != "/mnt/flipper" {
		t.Errorf("StorageRoot = %q", cfg.StorageRoot)
	}
	if cfg.MaxThemes != 12 {
		t.Errorf("MaxThemes = %d", cfg.MaxThemes)
	}
	if cfg.RestartCommand != "echo reboot" {
		t.Errorf("RestartCommand = %q", cfg.RestartCommand)
	}
	if !cfg.Debug {
		t.Error("Debug = false")
	}
	if cfg.FirstRun {
		t.Error("FirstRun = true for an existing config")
	}
}

func TestLoadFromNormalizesGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("max_themes: 0\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.MaxThemes != models.DefaultMaxThemes {
		t.Errorf("MaxThemes = %d, want clamped default", cfg.MaxThemes)
	}
	if cfg.StorageRoot != "." {
		t.Errorf("StorageRoot = %q, want .", cfg.StorageRoot)
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage_root: [broken\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

// ============ Save Tests ============

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "dir", "config.yaml")

	cfg := &Config{
		StorageRoot:    "/mnt/sd",
		MaxThemes:      7,
		RestartCommand: "true",
		Debug:          true,
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *loaded != (Config{StorageRoot: "/mnt/sd", MaxThemes: 7, RestartCommand: "true", Debug: true}) {
		t.Errorf("round trip = %+v", loaded)
	}
}

// ============ Template Tests ============

func TestTemplateParses(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(Template), &cfg); err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if cfg.StorageRoot != "." {
		t.Errorf("template storage_root = %q", cfg.StorageRoot)
	}
	if cfg.MaxThemes != models.DefaultMaxThemes {
		t.Errorf("template max_themes = %d", cfg.MaxThemes)
	}
	if cfg.Debug {
		t.Error("template debug = true")
	}
}
