// Package config loads MarkBoard settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"MarkBoard/internal/ink"
	"MarkBoard/internal/render"
)

// ErrInvalid is returned by Validate and Load when a value is out of range.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Surface Surface `toml:"surface"`
	Pen     Pen     `toml:"pen"`
	Eraser  Eraser  `toml:"eraser"`
	Feed    Feed    `toml:"feed"`
	Log     Log     `toml:"log"`
}

type Surface struct {
	// LogicalWidth and PageHeight are the page size in unzoomed pixels.
	LogicalWidth float64 `toml:"logical_width"`
	PageHeight   float64 `toml:"page_height"`
	Scale        float64 `toml:"scale"`
}

type Pen struct {
	Color  string  `toml:"color"`
	Thin   float64 `toml:"thin"`
	Medium float64 `toml:"medium"`
	Thick  float64 `toml:"thick"`
}

type Eraser struct {
	RadiusPx        float64 `toml:"radius_px"`
	SampleSpacingPx float64 `toml:"sample_spacing_px"`
	MinSamples      int     `toml:"min_samples"`
	PathLimit       int     `toml:"path_limit"`
	PathKeep        int     `toml:"path_keep"`
}

type Feed struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
	Instance  string `toml:"instance"`
}

type Log struct {
	Verbose bool `toml:"verbose"`
}

func Default() Config {
	w := ink.DefaultWidths()
	return Config{
		Surface: Surface{LogicalWidth: 1440, PageHeight: 1920, Scale: 1},
		Pen: Pen{
			Color:  render.Palette[0].Value,
			Thin:   w.Resolve(ink.WidthThin),
			Medium: w.Resolve(ink.WidthMedium),
			Thick:  w.Resolve(ink.WidthThick),
		},
		Eraser: Eraser{
			RadiusPx:        ink.DefaultRadiusPx,
			SampleSpacingPx: ink.DefaultSampleSpacingPx,
			MinSamples:      ink.DefaultMinSamples,
			PathLimit:       ink.DefaultPathLimit,
			PathKeep:        ink.DefaultPathKeep,
		},
		Feed: Feed{Addr: ":7420", Advertise: true, Instance: "markboard"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Surface.LogicalWidth <= 0:
		return fmt.Errorf("%w: surface.logical_width must be positive", ErrInvalid)
	case c.Surface.PageHeight <= 0:
		return fmt.Errorf("%w: surface.page_height must be positive", ErrInvalid)
	case c.Surface.Scale <= 0:
		return fmt.Errorf("%w: surface.scale must be positive", ErrInvalid)
	case c.Pen.Thin <= 0 || c.Pen.Medium <= 0 || c.Pen.Thick <= 0:
		return fmt.Errorf("%w: pen widths must be positive", ErrInvalid)
	case c.Eraser.RadiusPx <= 0:
		return fmt.Errorf("%w: eraser.radius_px must be positive", ErrInvalid)
	case c.Eraser.SampleSpacingPx <= 0:
		return fmt.Errorf("%w: eraser.sample_spacing_px must be positive", ErrInvalid)
	case c.Eraser.MinSamples < 1:
		return fmt.Errorf("%w: eraser.min_samples must be at least 1", ErrInvalid)
	case c.Eraser.PathKeep < 1 || c.Eraser.PathKeep > c.Eraser.PathLimit:
		return fmt.Errorf("%w: eraser.path_keep must be in [1, path_limit]", ErrInvalid)
	case c.Feed.Enabled && c.Feed.Addr == "":
		return fmt.Errorf("%w: feed.addr is required when the feed is enabled", ErrInvalid)
	}
	if _, ok := render.ParseColor(c.Pen.Color); !ok {
		return fmt.Errorf("%w: pen.color %q is not a colour", ErrInvalid, c.Pen.Color)
	}
	return nil
}

// EraserConfig converts the eraser section for ink.NewEraser.
func (c Config) EraserConfig() ink.EraserConfig {
	return ink.EraserConfig{
		RadiusPx:        c.Eraser.RadiusPx,
		SampleSpacingPx: c.Eraser.SampleSpacingPx,
		MinSamples:      c.Eraser.MinSamples,
		PathLimit:       c.Eraser.PathLimit,
		PathKeep:        c.Eraser.PathKeep,
	}
}

func (c Config) Widths() ink.WidthTable {
	return ink.WidthTable{
		ink.WidthThin:   c.Pen.Thin,
		ink.WidthMedium: c.Pen.Medium,
		ink.WidthThick:  c.Pen.Thick,
	}
}

// TOML renders the effective configuration.
func (c Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
