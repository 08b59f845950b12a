// Package config handles global docket configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

const (
	// EnvConfig points at an alternate config file.
	EnvConfig = "DOCKET_CONFIG"
	// EnvDataDir overrides data_dir.
	EnvDataDir = "DOCKET_DATA_DIR"
	// EnvLogLevel overrides log_level.
	EnvLogLevel = "DOCKET_LOG_LEVEL"

	defaultMaxDocumentSize = 10 << 20
	defaultPreviewLength   = 200
)

// Config represents the global docket configuration.
type Config struct {
	// DataDir holds docket.db (workspace registry and edit journal).
	DataDir string `toml:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// MaxDocumentSize is the largest document, in bytes, the editor loads.
	MaxDocumentSize int64 `toml:"max_document_size"`

	// PreviewLength bounds text previews in tool results.
	PreviewLength int `toml:"preview_length"`

	// SortLanguage is the BCP 47 tag used to collate text when sorting rows.
	SortLanguage string `toml:"sort_language"`

	// Workspaces maps workspace names to root directories. They are
	// registered on every server start.
	Workspaces map[string]string `toml:"workspaces"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:         filepath.Join(home, ".docket"),
		LogLevel:        "info",
		MaxDocumentSize: defaultMaxDocumentSize,
		PreviewLength:   defaultPreviewLength,
		SortLanguage:    "en",
		Workspaces:      map[string]string{},
	}
}

// Load loads the configuration from $DOCKET_CONFIG or the default
// location, then applies environment overrides. A missing file yields the
// defaults.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		loaded, err := LoadFrom(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom loads the configuration from a specific path. Keys absent from
// the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	for name, root := range cfg.Workspaces {
		cfg.Workspaces[name] = expandHome(root)
	}
	return cfg, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/docket/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "docket", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "docket", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		c.DataDir = expandHome(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxDocumentSize <= 0 {
		return fmt.Errorf("max_document_size must be positive, got %d", c.MaxDocumentSize)
	}
	if c.PreviewLength <= 0 {
		return fmt.Errorf("preview_length must be positive, got %d", c.PreviewLength)
	}
	if _, err := language.Parse(c.SortLanguage); err != nil {
		return fmt.Errorf("sort_language %q: %w", c.SortLanguage, err)
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// Language returns the configured collation language, English if unset.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.SortLanguage)
	if err != nil {
		return language.English
	}
	return tag
}

// ParseLevel maps a level name onto slog. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", s)
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
