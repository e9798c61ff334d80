// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing time series data,
// along with functions for data loading, transformation, and calendar
// grouping.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// Attach dates when the series will be grouped by year, month or weekday:
//
//	series, err := timeseries.NewWithTimestamps(dates, values)
//
// # Loading from CSV
//
// Load a column of a CSV file, keeping its date column:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "price"
//	series, err := timeseries.LoadCSV("prices.csv", opts)
//
// Missing cells load as NaN. Statistical tests reject them, so drop gaps
// first:
//
//	if series.HasMissing() {
//	    series = series.DropMissing()
//	}
//
// # Transformations
//
//	diff := series.Diff()            // First difference
//	diff2 := series.DiffN(2)         // Second-order difference
//	sdiff := series.SeasonalDiff(12) // Seasonal difference
//
// # Calendar Grouping
//
//	years, err := series.Years()
//	keys, groups, err := timeseries.GroupBy(series, func(t time.Time) time.Month {
//	    return t.Month()
//	})
package timeseries
