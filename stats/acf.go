package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// ACF calculates the Autocorrelation Function for the given series.
// Returns ACF values for lags 0 to maxLag, or nil for a constant or empty
// series.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := series.Mean()
	variance := 0.0
	for _, v := range series.Values {
		diff := v - mean
		variance += diff * diff
	}

	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (series.Values[i] - mean) * (series.Values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// DefaultACFLags returns min(10*log10(n), n-1), the usual number of lags
// shown in an autocorrelation plot.
func DefaultACFLags(n int) int {
	if n < 2 {
		return 0
	}
	lags := int(10 * math.Log10(float64(n)))
	if lags > n-1 {
		lags = n - 1
	}
	return lags
}

// ACFResult represents the result of ACF analysis.
type ACFResult struct {
	Lags   []int
	Values []float64
	// Bounds holds the half-width of the confidence band at each lag using
	// Bartlett's formula. Bounds[0] is zero.
	Bounds []float64
}

// ACFWithConfidence calculates ACF with Bartlett confidence bounds at level
// 1-alpha. The band at lag k is z * sqrt((1 + 2*sum_{j<k} r_j^2) / n).
func ACFWithConfidence(series *timeseries.Series, maxLag int, alpha float64) *ACFResult {
	acf := ACF(series, maxLag)
	if acf == nil {
		return nil
	}
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}

	n := float64(series.Len())
	z := distuv.UnitNormal.Quantile(1 - alpha/2)

	lags := make([]int, len(acf))
	bounds := make([]float64, len(acf))
	cum := 0.0
	for k := range acf {
		lags[k] = k
		if k == 0 {
			continue
		}
		if k > 1 {
			cum += acf[k-1] * acf[k-1]
		}
		bounds[k] = z * math.Sqrt((1+2*cum)/n)
	}

	return &ACFResult{
		Lags:   lags,
		Values: acf,
		Bounds: bounds,
	}
}

// SignificantLags returns the lags where ACF values exceed their confidence
// bounds. Lag 0 is skipped.
func SignificantLags(values []float64, bounds []float64) []int {
	var significant []int
	for i := 1; i < len(values) && i < len(bounds); i++ {
		if math.Abs(values[i]) > bounds[i] {
			significant = append(significant, i)
		}
	}
	return significant
}
