package main

import (
	"os"
	"path/filepath"
	"testing"
)

func resetCLI(t *testing.T) {
	t.Helper()
	saved := CLI
	t.Cleanup(func() { CLI = saved })
	CLI.Config = ""
	CLI.Input = ""
	CLI.Output = ""
}

func TestLoadConfigRequiresInput(t *testing.T) {
	resetCLI(t)

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected error when no input directory is set")
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	resetCLI(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "coalign.yaml")
	content := "input: /data/docs\noutput: /data/out\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	CLI.Config = configPath
	CLI.Output = "/elsewhere"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.Input != "/data/docs" {
		t.Errorf("input = %q, want value from config file", cfg.Input)
	}
	if cfg.Output != "/elsewhere" {
		t.Errorf("output = %q, want flag override", cfg.Output)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	resetCLI(t)
	CLI.Input = "/data/docs"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.Output != "out" {
		t.Errorf("output = %q, want default", cfg.Output)
	}
	if len(cfg.Discover.Patterns) == 0 {
		t.Error("expected default discovery patterns")
	}
}
