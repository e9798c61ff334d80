package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/AydenZK/fuel-price-fcast/config"
	"github.com/AydenZK/fuel-price-fcast/logging"
	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// runtime bundles what every command needs.
type runtime struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// setup loads the configuration, applies the global flags and builds the
// logger.
func setup() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if valueColumn != "" {
		cfg.Input.ValueColumn = valueColumn
	}
	if dateColumn != "" {
		cfg.Input.DateColumn = dateColumn
	}
	if logLevel != "" {
		cfg.Log.Level = strings.ToLower(logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, log: logger}, nil
}

// loadSeries reads the CSV and drops missing observations.
func (r *runtime) loadSeries(path string) (*timeseries.Series, error) {
	series, err := r.readSeries(path)
	if err != nil {
		return nil, err
	}

	if series.HasMissing() {
		clean := series.DropMissing()
		r.log.Infow("dropped missing observations",
			"file", path,
			"dropped", series.Len()-clean.Len(),
			"remaining", clean.Len())
		series = clean
	}
	return series, nil
}

// loadSeriesWithGaps reads the CSV and keeps missing observations in place,
// for analyses where dropping a point would shift every later position.
func (r *runtime) loadSeriesWithGaps(path string) (*timeseries.Series, error) {
	series, err := r.readSeries(path)
	if err != nil {
		return nil, err
	}
	if series.HasMissing() {
		r.log.Warnw("series has missing observations", "file", path)
	}
	return series, nil
}

func (r *runtime) readSeries(path string) (*timeseries.Series, error) {
	series, err := timeseries.LoadCSV(path, r.cfg.CSVOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}

	observed := series.DropMissing()
	r.log.Debugw("loaded series",
		"file", path,
		"column", series.Name,
		"observations", series.Len(),
		"min", observed.Min(),
		"max", observed.Max(),
		"median", observed.Median(),
		"std", observed.Std())
	return series, nil
}

// baseName is the input file name without directory or extension.
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
