package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_FileExists(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `remote: upstream
backend: native
color: never
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Remote != "upstream" {
		t.Errorf("Remote = %q, want %q", cfg.Remote, "upstream")
	}
	if cfg.Backend != "native" {
		t.Errorf("Backend = %q, want %q", cfg.Backend, "native")
	}
	if cfg.Color != "never" {
		t.Errorf("Color = %q, want %q", cfg.Color, "never")
	}
}

func TestLoad_FileNotExists(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Zero values expected.
	if cfg.Remote != "" {
		t.Errorf("Remote = %q, want empty", cfg.Remote)
	}
	if cfg.Backend != "" {
		t.Errorf("Backend = %q, want empty", cfg.Backend)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ":::invalid")

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `remote: fork
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Remote != "fork" {
		t.Errorf("Remote = %q, want %q", cfg.Remote, "fork")
	}
	// Unset fields should be zero values.
	if cfg.Backend != "" {
		t.Errorf("Backend = %q, want empty", cfg.Backend)
	}
	if cfg.Color != "" {
		t.Errorf("Color = %q, want empty", cfg.Color)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `backend: subprocess
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoad_InvalidColor(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `color: sometimes
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for unknown color mode")
	}
}
