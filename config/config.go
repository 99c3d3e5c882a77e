package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration loaded by viper.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// RenderConfig holds defaults applied when a sheet does not set them itself.
type RenderConfig struct {
	Format      string  `mapstructure:"format" yaml:"format"`
	Ink         string  `mapstructure:"ink" yaml:"ink"`
	Brighten    float64 `mapstructure:"brighten" yaml:"brighten"`
	PagePadding float64 `mapstructure:"page_padding" yaml:"page_padding"` // mm
	CellSize    float64 `mapstructure:"cell_size" yaml:"cell_size"`       // mm
	CellStroke  float64 `mapstructure:"cell_stroke" yaml:"cell_stroke"`   // mm
	Resolution  float64 `mapstructure:"resolution" yaml:"resolution"`     // PNG dots per mm
	Background  string  `mapstructure:"background" yaml:"background"`     // PNG only
}

// SetDefaults initializes default values for all configuration keys.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "genkouyoushi")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", true)

	// -- Render --
	v.SetDefault("render.format", "svg")
	v.SetDefault("render.ink", "#4a7ebb")
	v.SetDefault("render.brighten", 0.6)
	v.SetDefault("render.page_padding", 10.0)
	v.SetDefault("render.cell_size", 10.0)
	v.SetDefault("render.cell_stroke", 0.3)
	v.SetDefault("render.resolution", 11.811)
	v.SetDefault("render.background", "#ffffff")
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := NewConfigFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Render.Format = strings.ToLower(strings.TrimSpace(cfg.Render.Format))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	switch c.Render.Format {
	case "svg", "pdf", "png":
	default:
		return fmt.Errorf("render.format must be one of svg, pdf, png (got %q)", c.Render.Format)
	}
	if c.Render.Brighten < 0 || c.Render.Brighten > 1 {
		return fmt.Errorf("render.brighten must be within [0, 1]")
	}
	if c.Render.PagePadding < 0 {
		return fmt.Errorf("render.page_padding must not be negative")
	}
	if c.Render.CellSize <= 0 {
		return fmt.Errorf("render.cell_size must be positive")
	}
	if c.Render.CellStroke < 0 {
		return fmt.Errorf("render.cell_stroke must not be negative")
	}
	if c.Render.Resolution <= 0 {
		return fmt.Errorf("render.resolution must be positive")
	}
	return nil
}
