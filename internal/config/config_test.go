package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// --- Defaults ---

func TestDefault(t *testing.T) {
	cfg := Default()

	if !strings.HasSuffix(cfg.DataDir, ".docket") {
		t.Errorf("DataDir = %q, want ~/.docket", cfg.DataDir)
	}
	if cfg.MaxDocumentSize != 10<<20 {
		t.Errorf("MaxDocumentSize = %d, want 10 MiB", cfg.MaxDocumentSize)
	}
	if cfg.PreviewLength != 200 {
		t.Errorf("PreviewLength = %d, want 200", cfg.PreviewLength)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

// --- LoadFrom ---

func TestLoadFrom_OverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/srv/docket"
log_level = "debug"
sort_language = "sv"

[workspaces]
notes = "/home/me/notes"
work = "~/work"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DataDir != "/srv/docket" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
	if cfg.PreviewLength != 200 {
		t.Errorf("PreviewLength = %d, want default 200", cfg.PreviewLength)
	}
	if cfg.Language() != language.Swedish {
		t.Errorf("Language = %v, want sv", cfg.Language())
	}
	if cfg.Workspaces["notes"] != "/home/me/notes" {
		t.Errorf("notes workspace = %q", cfg.Workspaces["notes"])
	}
	if strings.HasPrefix(cfg.Workspaces["work"], "~") {
		t.Errorf("work workspace not expanded: %q", cfg.Workspaces["work"])
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "data_dir = [unclosed")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

// --- Load ---

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `data_dir = "/from/file"`)
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvDataDir, "/from/env")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("DataDir = %q, want /from/env", cfg.DataDir)
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level = %v, want warn", cfg.Level())
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `preview_length = -1`)
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvLogLevel, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error")
	}
}

// --- Validate ---

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"empty data dir", func(c *Config) { c.DataDir = " " }, "data_dir"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"zero size", func(c *Config) { c.MaxDocumentSize = 0 }, "max_document_size"},
		{"zero preview", func(c *Config) { c.PreviewLength = 0 }, "preview_length"},
		{"bad language", func(c *Config) { c.SortLanguage = "not a tag!" }, "sort_language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
