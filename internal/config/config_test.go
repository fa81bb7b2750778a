package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func load(t *testing.T, file string, args ...string) (*Config, error) {
	t.Helper()
	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(fs, v); err != nil {
		t.Fatalf("BindFlags() error = %v", err)
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return Load(v, file)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := load(t, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want %+v", cfg, Default())
	}
}

func TestLoadPrecedence(t *testing.T) {
	file := writeFile(t, "overlay.yaml", strings.Join([]string{
		"fps: 10",
		"quality: 40",
		"listen: 0.0.0.0:9000",
		"thickness: 3.5",
		"preview_width: 640",
	}, "\n"))
	t.Setenv("OVERLAY_QUALITY", "60")
	t.Setenv("OVERLAY_LOG_LEVEL", "debug")

	cfg, err := load(t, file, "--fps=24", "--log-format=json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name      string
		got, want any
	}{
		{"flag beats file", cfg.FPS, 24},
		{"env beats file", cfg.Quality, 60},
		{"file beats default", cfg.Listen, "0.0.0.0:9000"},
		{"float from file", cfg.Thickness, float32(3.5)},
		{"underscore key", cfg.PreviewWidth, uint(640)},
		{"env only", cfg.LogLevel, "debug"},
		{"dashed flag", cfg.LogFormat, "json"},
		{"default", cfg.Width, 1280},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := load(t, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() with a missing config file succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"quality too high", func(c *Config) { c.Quality = 101 }, "quality"},
		{"quality zero", func(c *Config) { c.Quality = 0 }, "quality"},
		{"bad colour", func(c *Config) { c.Background = "#12345" }, "colour"},
		{"no size", func(c *Config) { c.Width = 0 }, "size"},
		{"negative display", func(c *Config) { c.Display = -1 }, "display"},
		{"zero thickness", func(c *Config) { c.Thickness = 0 }, "thickness"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestBackgroundColor(t *testing.T) {
	cfg := Default()
	cfg.Background = "#ff000080"
	c := cfg.BackgroundColor()
	if c[0] != 1 || c[1] != 0 || c[3] < 0.5 || c[3] > 0.51 {
		t.Errorf("BackgroundColor() = %v", c)
	}
}
