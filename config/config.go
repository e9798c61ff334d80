// Package config loads tsadvisor settings from YAML with defaults and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/AydenZK/fuel-price-fcast/advisor"
	"github.com/AydenZK/fuel-price-fcast/charts"
	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// Environment variables that override the file.
const (
	EnvLogLevel  = "TSADVISOR_LOG_LEVEL"
	EnvOutputDir = "TSADVISOR_OUTPUT_DIR"
)

var validate = validator.New()

// Config is the tsadvisor configuration file.
type Config struct {
	Input         Input         `yaml:"input"`
	Analysis      Analysis      `yaml:"analysis"`
	Decomposition Decomposition `yaml:"decomposition"`
	Figure        Figure        `yaml:"figure"`
	Output        Output        `yaml:"output"`
	Log           Log           `yaml:"log"`
}

// Input describes the CSV layout.
type Input struct {
	DateColumn  string `yaml:"date_column" default:"date"`
	ValueColumn string `yaml:"value_column" default:"y" validate:"required"`
	DateFormat  string `yaml:"date_format" default:"2006-01-02" validate:"required"`
	Delimiter   string `yaml:"delimiter" default:"," validate:"len=1"`
	IDColumn    string `yaml:"id_column"`
	ID          string `yaml:"id"`
}

// Analysis holds the stationarity test settings.
type Analysis struct {
	Alpha          float64 `yaml:"alpha" default:"0.05" validate:"gt=0,lt=1"`
	MaxD           int     `yaml:"max_d" default:"2" validate:"gte=1,lte=5"`
	Parallel       bool    `yaml:"parallel" default:"true"`
	SeasonalPeriod int     `yaml:"seasonal_period" validate:"gte=0"`
}

// Decomposition sets the season length used by plot decomposition.
type Decomposition struct {
	Period int `yaml:"period" default:"365" validate:"gte=2"`
}

// Figure sizes are in inches.
type Figure struct {
	Width  float64 `yaml:"width" default:"16" validate:"gt=0"`
	Height float64 `yaml:"height" default:"8" validate:"gt=0"`
	DPI    int     `yaml:"dpi" default:"120" validate:"gt=0,lte=1200"`
}

// Output is where figures are written.
type Output struct {
	Dir string `yaml:"dir" default:"." validate:"required"`
}

// Log sets the logger level.
type Log struct {
	Level string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
}

// Default returns the configuration used when no file is given, with
// environment overrides applied.
func Default() (*Config, error) {
	return Parse(nil)
}

// Load reads and parses a YAML configuration file. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML on top of the defaults, applies environment overrides
// and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.Dir = v
	}
}

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), "Config.")
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, e.Tag(), e.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// CSVOptions returns the loader options for the input section.
func (c *Config) CSVOptions() *timeseries.CSVOptions {
	opts := timeseries.DefaultCSVOptions()
	opts.DateColumn = c.Input.DateColumn
	opts.ValueColumn = c.Input.ValueColumn
	opts.DateFormat = c.Input.DateFormat
	opts.Delimiter = []rune(c.Input.Delimiter)[0]
	opts.IDColumn = c.Input.IDColumn
	opts.IDFilter = c.Input.ID
	return opts
}

// FigureSize returns the chart size for the figure section.
func (c *Config) FigureSize() charts.Size {
	return charts.Size{
		Width:  vg.Length(c.Figure.Width) * vg.Inch,
		Height: vg.Length(c.Figure.Height) * vg.Inch,
		DPI:    c.Figure.DPI,
	}
}

// AdvisorOptions returns the advisor settings for the analysis section.
func (c *Config) AdvisorOptions(logger *zap.SugaredLogger) []advisor.Option {
	return []advisor.Option{
		advisor.WithAlpha(c.Analysis.Alpha),
		advisor.WithMaxD(c.Analysis.MaxD),
		advisor.WithParallel(c.Analysis.Parallel),
		advisor.WithLogger(logger),
	}
}
