// Package config loads revtrail's settings from defaults, an optional revtrail.yaml, REVTRAIL_* environment variables, and command-line overrides, in
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Keys, as used in revtrail.yaml. Environment variables are REVTRAIL_ plus the upper-cased key with "." replaced by "_" (ex: REVTRAIL_LOG_FILE).
const (
	KeyColor          = "color"
	KeyContext        = "context"
	KeyFormat         = "format"
	KeyWidth          = "width"
	KeyEastAsianWidth = "east_asian_width"
	KeyLogFile        = "log.file"
	KeyLogLevel       = "log.level"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// FallbackWidth is used when the width is 0 and the output is not a terminal.
const FallbackWidth = 100

var ErrInvalid = errors.New("config: invalid configuration")

// Config is revtrail's configuration.
type Config struct {
	Color   string `mapstructure:"color" validate:"oneof=auto always never"`
	Context int    `mapstructure:"context" validate:"gte=0"`
	Format  string `mapstructure:"format" validate:"oneof=numbered unified pretty html dump"`
	Width   int    `mapstructure:"width" validate:"gte=0"` // 0 = terminal width
	Log     Log    `mapstructure:"log"`

	// EastAsianWidth counts ambiguous-width runes as two cells, for terminals in a CJK locale.
	EastAsianWidth bool `mapstructure:"east_asian_width"`
}

type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// ConfigFile is an explicit config file. It must exist. If empty, revtrail.yaml is searched for in SearchPaths.
	ConfigFile string

	// SearchPaths defaults to DefaultSearchPaths().
	SearchPaths []string

	// Overrides are applied last, keyed by Key* constants. Typically set from command-line flags.
	Overrides map[string]any
}

// DefaultSearchPaths returns the working directory and $HOME/.config/revtrail.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "revtrail"))
	}
	return paths
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates the configuration. A missing config file is not an error unless opts.ConfigFile names it.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyColor, ColorAuto)
	v.SetDefault(KeyContext, 3)
	v.SetDefault(KeyFormat, "numbered")
	v.SetDefault(KeyWidth, 0)
	v.SetDefault(KeyEastAsianWidth, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix("revtrail")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("revtrail")
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if paths == nil {
			paths = DefaultSearchPaths()
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Color = strings.ToLower(cfg.Color)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &cfg, nil
}

// UseColor reports whether output to a file descriptor should be colored. "auto" means: only if fd is a terminal.
func (c *Config) UseColor(fd uintptr) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return term.IsTerminal(int(fd))
	}
}

// OutputWidth returns the configured width, or if it is 0, the width of the terminal at fd, or FallbackWidth.
func (c *Config) OutputWidth(fd uintptr) int {
	if c.Width > 0 {
		return c.Width
	}
	if w, _, err := term.GetSize(int(fd)); err == nil && w > 0 {
		return w
	}
	return FallbackWidth
}
