// Package config loads the optional watermark.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Font      FontConfig      `mapstructure:"font"`
	Watermark WatermarkConfig `mapstructure:"watermark"`
	Preview   PreviewConfig   `mapstructure:"preview"`
	Export    ExportConfig    `mapstructure:"export"`
	Log       LogConfig       `mapstructure:"log"`
}

type FontConfig struct {
	Path string  `mapstructure:"path"`
	Size float64 `mapstructure:"size"`
}

type WatermarkConfig struct {
	Margin  int `mapstructure:"margin"`
	Opacity int `mapstructure:"opacity"`
}

type PreviewConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type ExportConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with every default set and the standard
// search paths registered.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName("watermark")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "watermark"))
	}
	v.AddConfigPath(".")

	v.SetDefault("font.path", "arial.ttf")
	v.SetDefault("font.size", 36.0)
	v.SetDefault("watermark.margin", 20)
	v.SetDefault("watermark.opacity", 120)
	v.SetDefault("preview.width", 500)
	v.SetDefault("preview.height", 400)
	v.SetDefault("export.jpeg_quality", 75)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	return v
}

// LoadConfig reads watermark.yaml from the search paths. A missing file is
// fine; a file that exists but does not parse is an error.
func LoadConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

// ParseConfig decodes v into a Config and checks its ranges.
func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load is New, LoadConfig and ParseConfig in one call.
func Load() (*Config, error) {
	v := New()
	if err := LoadConfig(v); err != nil {
		return nil, err
	}
	return ParseConfig(v)
}

func (c *Config) validate() error {
	if c.Font.Size <= 0 {
		return fmt.Errorf("font.size must be positive, got %v", c.Font.Size)
	}
	if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 255 {
		return fmt.Errorf("watermark.opacity must be within 0..255, got %d", c.Watermark.Opacity)
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("preview size must be positive, got %dx%d", c.Preview.Width, c.Preview.Height)
	}
	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		return fmt.Errorf("export.jpeg_quality must be within 1..100, got %d", c.Export.JPEGQuality)
	}
	return nil
}

// ConfigureLogger applies the log section to l.
func (c *Config) ConfigureLogger(l *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	l.SetLevel(level)

	switch c.Log.Format {
	case "json":
		l.SetFormatter(new(logrus.JSONFormatter))
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
