package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() is not valid: %v", err)
	}

	if len(cfg.Integrations) == 0 {
		t.Error("Default() has no integrations")
	}
	if cfg.SchemasDir == "" {
		t.Error("Default() has empty schemas dir")
	}
	if cfg.SettingsPath != ".vscode/settings.json" {
		t.Errorf("SettingsPath = %q, want .vscode/settings.json", cfg.SettingsPath)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "ddschema.yml")

	content := []byte(`schemas_dir: out/schemas
timeout_seconds: 3
integrations:
  - disk
  - custom_check
`)
	if err := os.WriteFile(cfgFile, content, 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SchemasDir != "out/schemas" {
		t.Errorf("SchemasDir = %q, want %q", cfg.SchemasDir, "out/schemas")
	}
	if cfg.TimeoutSeconds != 3 {
		t.Errorf("TimeoutSeconds = %d, want 3", cfg.TimeoutSeconds)
	}
	if len(cfg.Integrations) != 2 {
		t.Errorf("len(Integrations) = %d, want 2", len(cfg.Integrations))
	}

	// Unset keys keep their defaults.
	if cfg.SettingsPath != ".vscode/settings.json" {
		t.Errorf("SettingsPath = %q, want default", cfg.SettingsPath)
	}
	if len(cfg.Globs) == 0 {
		t.Error("Globs lost their defaults")
	}
}

func TestLoadInvalidSourceURL(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "ddschema.yml")

	content := []byte("source_url: https://example.com/static/spec.yaml\n")
	if err := os.WriteFile(cfgFile, content, 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if _, err := Load(cfgFile); err == nil {
		t.Fatalf("expected error for source_url without %%s placeholder")
	}
}

func TestLoadInvalidGlob(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "ddschema.yml")

	content := []byte("globs:\n  - \"**/conf.d/*.yaml\"\n")
	if err := os.WriteFile(cfgFile, content, 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if _, err := Load(cfgFile); err == nil {
		t.Fatalf("expected error for glob without %%s placeholder")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadUnparseable(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "ddschema.yml")

	if err := os.WriteFile(cfgFile, []byte("integrations: [disk"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if _, err := Load(cfgFile); err == nil {
		t.Fatal("expected error for unparseable config file")
	}
}
