// Package stats provides stationarity tests, differencing analysis,
// autocorrelation and classical decomposition for time series.
//
// # Stationarity Tests
//
// Every test returns an error instead of a result when the series cannot be
// tested. Invalid input (empty, shorter than MinObservations, missing values)
// matches ErrInvalidInput; a constant series matches ErrNumerical:
//
//	// Augmented Dickey-Fuller test
//	// H0: Series has unit root (non-stationary)
//	adf, err := stats.ADF(series, 0)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("ADF: stat=%.4f, p=%.4f, stationary=%v\n",
//	    adf.Statistic, adf.PValue, adf.IsStationary)
//
//	// KPSS test
//	// H0: Series is stationary
//	kpss, err := stats.KPSS(series, "c", 0)
//
//	// Phillips-Perron test
//	pp, err := stats.PhillipsPerron(series, 0)
//
// # Differencing Analysis
//
// Determine how many differences a series needs:
//
//	d, err := stats.NDiffs(series, stats.TestKPSS, stats.DefaultNDiffsOptions())
//
//	// Number of seasonal differences needed (for seasonal data)
//	sd, err := stats.NSDiffs(series, 12, 1)  // period=12 for monthly data
//
// # Autocorrelation
//
//	acf := stats.ACF(series, stats.DefaultACFLags(series.Len()))
//
//	// ACF with Bartlett confidence bounds
//	res := stats.ACFWithConfidence(series, 20, 0.05)
//	significant := stats.SignificantLags(res.Values, res.Bounds)
//
// # Time Series Decomposition
//
//	decomp, err := stats.Decompose(series, 12, stats.Multiplicative)
//	// decomp.Trend, decomp.Seasonal, decomp.Residual
package stats
