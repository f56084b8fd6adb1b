package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gonum.org/v1/plot/vg"

	"titanic/pkg/viz"
)

// Prefix is the environment variable prefix, e.g. TITANIC_DATA_PATH.
const Prefix = "TITANIC"

// Config holds the settings for one analysis run. Every field has a default,
// so running with an empty environment analyses ./data/Titanic.csv.
type Config struct {
	DataPath      string        `envconfig:"DATA_PATH" default:"./data/Titanic.csv" validate:"required"`
	FigurePath    string        `envconfig:"FIGURE_PATH" default:"titanic_distributions.png" validate:"required"`
	FigureWidth   float64       `envconfig:"FIGURE_WIDTH_IN" default:"14" validate:"gt=0"`
	FigureHeight  float64       `envconfig:"FIGURE_HEIGHT_IN" default:"6" validate:"gt=0"`
	HistogramBins int           `envconfig:"HISTOGRAM_BINS" default:"30" validate:"min=1"`
	Logging       LoggingConfig `envconfig:"LOG"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// FigureOptions converts the figure settings to render options.
func (c *Config) FigureOptions() viz.Options {
	return viz.Options{
		Width:  vg.Length(c.FigureWidth) * vg.Inch,
		Height: vg.Length(c.FigureHeight) * vg.Inch,
		Bins:   c.HistogramBins,
	}
}

// NewLogger builds a slog logger writing to w.
func (c LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.Level)}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
