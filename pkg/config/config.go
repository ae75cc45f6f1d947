// Package config loads gtv settings.
//
// Precedence, lowest to highest: built-in defaults, the YAML file, GTV_*
// environment variables, then command-line flags (applied by main).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/analysis"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/loader"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/logging"
	"github.com/Dicklesworthstone/goterm_viewer/pkg/navigate"
)

// Environment variables consulted by Load.
const (
	EnvLogLevel = "GTV_LOG_LEVEL"
	EnvLogFile  = "GTV_LOG_FILE"
	EnvResolve  = "GTV_RESOLVE"
	EnvCatalog  = "GTV_CATALOG"
)

// Config holds every tunable of a gtv session.
type Config struct {
	// Catalog is the OBO-XML file opened when no positional argument is given.
	Catalog string `yaml:"catalog"`
	// LogLevel applies to both the stderr and the session log.
	LogLevel string `yaml:"log_level"`
	// LogFile receives logs while the terminal UI is running. Empty discards them.
	LogFile string `yaml:"log_file"`
	// Resolve selects how a reference leaf finds its target: "id" or "label".
	Resolve string `yaml:"resolve"`
	// FollowCursor sends a selection event on every cursor move, so landing
	// on a reference leaf jumps at once. Off, only enter/space follow.
	FollowCursor bool `yaml:"follow_cursor"`
	// ShowDetails opens the details pane at startup.
	ShowDetails bool `yaml:"show_details"`
	// DetailsStyle is the glamour style of the details pane.
	DetailsStyle string `yaml:"details_style"`
	// TopReferred bounds the "most referenced" list of --stats.
	TopReferred int `yaml:"top_referred"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Catalog:      loader.DefaultPath,
		LogLevel:     "info",
		Resolve:      string(navigate.ResolveByID),
		DetailsStyle: "dark",
		TopReferred:  analysis.DefaultTopReferred,
	}
}

// Load reads path over the defaults and applies the environment overlay.
// An empty path skips the file; a missing named file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := getenv(EnvResolve); v != "" {
		c.Resolve = v
	}
	if v := getenv(EnvCatalog); v != "" {
		c.Catalog = v
	}
}

// Validate rejects settings the session cannot honour.
func (c *Config) Validate() error {
	var errs []error
	if _, err := navigate.ParseStrategy(c.Resolve); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.TopReferred < 0 {
		errs = append(errs, fmt.Errorf("top_referred must be >= 0, got %d", c.TopReferred))
	}
	if c.Catalog == "" {
		errs = append(errs, errors.New("catalog path cannot be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Strategy returns the parsed resolve strategy. Call after Validate.
func (c *Config) Strategy() navigate.Strategy {
	s, _ := navigate.ParseStrategy(c.Resolve)
	return s
}
