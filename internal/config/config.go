// Package config loads shelf settings. Sources are layered, later ones
// winning: built-in defaults, the YAML config file, SHELF_* environment
// variables, then command-line flags that were explicitly set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/LFroesch/shelf/internal/header"
	"github.com/LFroesch/shelf/internal/logger"
)

const (
	// EnvPrefix marks environment variables read as config keys.
	EnvPrefix = "SHELF_"

	minDebounceMS = 50
	maxDebounceMS = 5000
)

// Config holds all shelf configuration
type Config struct {
	Root             string `koanf:"root"`
	View             string `koanf:"view"`
	SortBy           string `koanf:"sort_by"`
	ShowHidden       bool   `koanf:"show_hidden"`
	SearchDebounceMS int    `koanf:"search_debounce_ms"`
	Watch            bool   `koanf:"watch"`
	UploadDir        string `koanf:"upload_dir"`
	LogLevel         string `koanf:"log_level"`

	// File is the config file that was read, empty when none was found.
	File string `koanf:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"root":               "",
		"view":               header.ViewColumns.String(),
		"sort_by":            header.SortName.String(),
		"show_hidden":        false,
		"search_debounce_ms": int(header.DefaultDebounce / time.Millisecond),
		"watch":              true,
		"upload_dir":         "",
		"log_level":          "info",
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "shelf", "config.yaml"), nil
}

// Load builds the configuration. cfgFile overrides the default location and
// must exist when given; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: SHELF_SORT_BY -> sort_by
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "config":
				return "", nil
			case "no-watch":
				off, _ := flags.GetBool("no-watch")
				return "watch", !off
			case "sort":
				return "sort_by", posflag.FlagVal(flags, f)
			case "debounce":
				return "search_debounce_ms", posflag.FlagVal(flags, f)
			case "hidden":
				return "show_hidden", posflag.FlagVal(flags, f)
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the file to read. An explicit path must exist; the
// default location is optional.
func findConfigFile(cfgFile string) (string, error) {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return cfgFile, nil
	}
	path, err := Path()
	if err != nil {
		logger.Warn("Failed to locate config file: %v", err)
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

func (c *Config) validate() error {
	if _, err := header.ParseView(c.View); err != nil {
		return err
	}
	if _, err := header.ParseSortKey(c.SortBy); err != nil {
		return err
	}

	if c.SearchDebounceMS <= 0 {
		c.SearchDebounceMS = int(header.DefaultDebounce / time.Millisecond)
	} else if c.SearchDebounceMS < minDebounceMS {
		logger.Warn("search_debounce_ms too low (%d), using minimum of %d", c.SearchDebounceMS, minDebounceMS)
		c.SearchDebounceMS = minDebounceMS
	} else if c.SearchDebounceMS > maxDebounceMS {
		logger.Warn("search_debounce_ms too high (%d), using maximum of %d", c.SearchDebounceMS, maxDebounceMS)
		c.SearchDebounceMS = maxDebounceMS
	}

	if c.Root != "" {
		abs, err := filepath.Abs(c.Root)
		if err != nil {
			return fmt.Errorf("invalid root %q: %w", c.Root, err)
		}
		c.Root = abs
	}
	return nil
}

// InitialView is the view the browser opens in.
func (c *Config) InitialView() header.View {
	v, _ := header.ParseView(c.View)
	return v
}

// InitialSort is the sort key the browser opens with.
func (c *Config) InitialSort() header.SortKey {
	s, _ := header.ParseSortKey(c.SortBy)
	return s
}

// SearchDebounce is the header's search debounce window.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

// WriteDefault writes a config file holding the defaults to path. An
// existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}
