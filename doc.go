// Package tsadvisor provides stationarity advice and diagnostic charts for
// time series.
//
// The one piece of decision logic is the differencing recommendation: the
// ADF, KPSS and Phillips-Perron tests each suggest how many first
// differences a series needs, and the three answers are reported side by
// side without being reconciled.
//
// # Packages
//
//   - timeseries: the Series type, differencing, calendar grouping and CSV I/O
//   - stats: stationarity tests, NDiffs/NSDiffs, ACF and classical decomposition
//   - advisor: the three-test differencing recommendation and its report
//   - charts: seasonality, decomposition and differencing figures (gonum/plot)
//   - config: YAML configuration with defaults and validation
//   - logging: zap logger construction
//
// # Quick Start
//
//	series, err := timeseries.LoadCSV("prices.csv", timeseries.DefaultCSVOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rec, err := advisor.RecommendDifferencing(series.DropMissing())
//	advisor.Fprint(os.Stdout, rec)
//
// Output:
//
//	Recommended Differencing:
//	ADF: 1
//	KPSS: 1
//	PP: 1
//
// Render the differencing figure:
//
//	fig, err := charts.Differencing(series, charts.DefaultSize())
//	fig.Save("differencing.png")
//
// The cmd/tsadvisor command wraps the same operations.
package tsadvisor
