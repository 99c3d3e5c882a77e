package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "genkouyoushi", cfg.Logger.ServiceName)
	assert.Empty(t, cfg.Logger.LogFile)
	assert.Equal(t, "svg", cfg.Render.Format)
	assert.Equal(t, "#4a7ebb", cfg.Render.Ink)
	assert.Equal(t, 0.6, cfg.Render.Brighten)
	assert.Equal(t, 10.0, cfg.Render.PagePadding)
	assert.Equal(t, 0.3, cfg.Render.CellStroke)
}

func TestNewConfigFromViperReadsYAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	yaml := []byte(`
logger:
  level: debug
  format: json
render:
  format: PDF
  brighten: 0.25
  page_padding: 15
`)
	require.NoError(t, v.ReadConfig(bytes.NewReader(yaml)))

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "pdf", cfg.Render.Format, "format is normalized")
	assert.Equal(t, 0.25, cfg.Render.Brighten)
	assert.Equal(t, 15.0, cfg.Render.PagePadding)
	assert.Equal(t, 10.0, cfg.Render.CellSize, "unset keys keep defaults")
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"format", func(c *Config) { c.Render.Format = "gif" }, "render.format"},
		{"brighten", func(c *Config) { c.Render.Brighten = 1.5 }, "render.brighten"},
		{"padding", func(c *Config) { c.Render.PagePadding = -1 }, "render.page_padding"},
		{"cell", func(c *Config) { c.Render.CellSize = 0 }, "render.cell_size"},
		{"stroke", func(c *Config) { c.Render.CellStroke = -0.1 }, "render.cell_stroke"},
		{"resolution", func(c *Config) { c.Render.Resolution = 0 }, "render.resolution"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			require.NoError(t, cfg.Validate())
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
