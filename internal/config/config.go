// Package config loads the settings shared by the overlay commands.
//
// Values come from, in order of precedence: command line flags,
// OVERLAY_* environment variables, an optional config file and the
// defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kirides/d3doverlay/gfx"
)

const EnvPrefix = "OVERLAY"

type Config struct {
	// Display is the screen captured as host frame.
	Display int `mapstructure:"display"`
	FPS     int `mapstructure:"fps"`
	// Listen is the preview server address. Empty disables the preview.
	Listen  string `mapstructure:"listen"`
	Quality int    `mapstructure:"quality"`
	// Width and Height size the demo window or soft surface.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	// Background is the overlay clear colour, "#rrggbb" or "#rrggbbaa".
	Background   string  `mapstructure:"background"`
	Thickness    float32 `mapstructure:"thickness"`
	PreviewWidth uint    `mapstructure:"preview_width"`
	LogLevel     string  `mapstructure:"log_level"`
	LogFormat    string  `mapstructure:"log_format"`
}

func Default() *Config {
	return &Config{
		FPS:          30,
		Listen:       "127.0.0.1:8023",
		Quality:      75,
		Width:        1280,
		Height:       720,
		Background:   "#00000000",
		Thickness:    2,
		PreviewWidth: 1280,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// BindFlags registers a flag for every setting on fs and binds it to v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	d := Default()
	fs.Int("display", d.Display, "display to capture host frames from")
	fs.Int("fps", d.FPS, "frames per second")
	fs.String("listen", d.Listen, "preview server address, empty to disable")
	fs.Int("quality", d.Quality, "preview JPEG quality (1-100)")
	fs.Int("width", d.Width, "surface width in pixels")
	fs.Int("height", d.Height, "surface height in pixels")
	fs.String("background", d.Background, "overlay clear colour as #rrggbb[aa]")
	fs.Float32("thickness", d.Thickness, "line thickness in pixels")
	fs.Uint("preview-width", d.PreviewWidth, "width preview frames are scaled down to, 0 keeps the size")
	fs.String("log-level", d.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.String("log-format", d.LogFormat, "log format (text, json)")

	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if bindErr := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); bindErr != nil {
			err = fmt.Errorf("failed to bind flag %s. %w", f.Name, bindErr)
		}
	})
	return err
}

// Load reads the settings into a Config. cfgFile may be empty; a missing
// default config file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	d := Default()
	v.SetDefault("display", d.Display)
	v.SetDefault("fps", d.FPS)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("quality", d.Quality)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("background", d.Background)
	v.SetDefault("thickness", d.Thickness)
	v.SetDefault("preview_width", d.PreviewWidth)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("overlay")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config. %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config. %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, fmt.Errorf("quality must be within 1..100, got %d", c.Quality))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid size %dx%d", c.Width, c.Height))
	}
	if c.Display < 0 {
		errs = append(errs, fmt.Errorf("invalid display %d", c.Display))
	}
	if c.Thickness <= 0 {
		errs = append(errs, fmt.Errorf("thickness must be positive, got %v", c.Thickness))
	}
	if _, err := gfx.ParseColor(c.Background); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BackgroundColor parses Background. Call Validate first.
func (c *Config) BackgroundColor() gfx.Color {
	col, _ := gfx.ParseColor(c.Background)
	return col
}
