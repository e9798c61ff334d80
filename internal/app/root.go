package app

import (
	"github.com/spf13/cobra"
)

var (
	configPath  string
	valueColumn string
	dateColumn  string
	logLevel    string

	// RootCmd is the root command for tsadvisor
	RootCmd = &cobra.Command{
		Use:   "tsadvisor",
		Short: "Stationarity advice and diagnostic charts for time series",
		Long: `tsadvisor reads a time series from CSV, recommends how many times it
should be differenced and renders exploratory charts.

The differencing recommendation runs the ADF, KPSS and Phillips-Perron tests
independently and reports all three orders side by side.

Examples:
  # Recommend a differencing order
  tsadvisor ndiffs prices.csv --column price

  # Seasonal, decomposition and differencing charts
  tsadvisor plot seasonality prices.csv
  tsadvisor plot decomposition prices.csv --period 365
  tsadvisor plot differencing prices.csv

  # Write the first difference to a new file
  tsadvisor diff prices.csv --order 1 --out prices_diff.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	RootCmd.PersistentFlags().StringVar(&valueColumn, "column", "", "CSV value column (default from config: y)")
	RootCmd.PersistentFlags().StringVar(&dateColumn, "date-column", "", "CSV date column (default from config: date)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
