package stats

import (
	"fmt"
	"math"

	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// DecompositionModel selects how the components combine.
type DecompositionModel string

// Decomposition models.
const (
	Additive       DecompositionModel = "additive"       // Y = T + S + R
	Multiplicative DecompositionModel = "multiplicative" // Y = T * S * R
)

// DecompositionResult represents the decomposition of a time series.
type DecompositionResult struct {
	Original *timeseries.Series
	Trend    *timeseries.Series
	Seasonal *timeseries.Series
	Residual *timeseries.Series
	Period   int
	Model    DecompositionModel
}

// Decompose performs classical seasonal decomposition of a time series.
// The trend is a centered moving average, so the first and last period/2
// trend and residual values are NaN.
func Decompose(series *timeseries.Series, period int, model DecompositionModel) (*DecompositionResult, error) {
	if model != Additive && model != Multiplicative {
		return nil, fmt.Errorf("unknown decomposition model %q", model)
	}
	if period < 2 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("period must be at least 2, got %d", period)}
	}
	n := series.Len()
	if n < 2*period {
		return nil, &InvalidInputError{
			Reason: fmt.Sprintf("need at least two full periods (%d observations), got %d", 2*period, n),
		}
	}
	if series.HasMissing() {
		return nil, &InvalidInputError{Reason: "series contains missing values"}
	}
	if model == Multiplicative {
		for _, v := range series.Values {
			if v <= 0 {
				return nil, &InvalidInputError{Reason: "multiplicative decomposition requires strictly positive values"}
			}
		}
	}

	// Step 1: Calculate trend using centered moving average
	trend := calculateTrend(series, period)

	// Step 2: Detrend the series
	detrended := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			detrended[i] = math.NaN()
		case model == Multiplicative:
			detrended[i] = series.Values[i] / trend[i]
		default:
			detrended[i] = series.Values[i] - trend[i]
		}
	}

	// Step 3: Calculate seasonal component by averaging within each period
	seasonalPattern := make([]float64, period)
	counts := make([]int, period)

	for i := 0; i < n; i++ {
		if !math.IsNaN(detrended[i]) {
			seasonIdx := i % period
			seasonalPattern[seasonIdx] += detrended[i]
			counts[seasonIdx]++
		}
	}

	for i := 0; i < period; i++ {
		if counts[i] > 0 {
			seasonalPattern[i] /= float64(counts[i])
		}
	}

	// Normalize: seasonal factors average to 1 (multiplicative) or 0 (additive)
	sum := 0.0
	for _, v := range seasonalPattern {
		sum += v
	}
	mean := sum / float64(period)
	for i := range seasonalPattern {
		if model == Multiplicative {
			seasonalPattern[i] /= mean
		} else {
			seasonalPattern[i] -= mean
		}
	}

	seasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = seasonalPattern[i%period]
	}

	// Step 4: Calculate residual
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			residual[i] = math.NaN()
		case model == Multiplicative:
			residual[i] = series.Values[i] / (trend[i] * seasonal[i])
		default:
			residual[i] = series.Values[i] - trend[i] - seasonal[i]
		}
	}

	return &DecompositionResult{
		Original: series,
		Trend:    component(series, trend, "trend"),
		Seasonal: component(series, seasonal, "seasonal"),
		Residual: component(series, residual, "residual"),
		Period:   period,
		Model:    model,
	}, nil
}

func component(series *timeseries.Series, values []float64, name string) *timeseries.Series {
	return &timeseries.Series{
		Values:     values,
		Timestamps: series.Timestamps,
		Name:       name,
	}
}

// calculateTrend calculates trend using centered moving average.
func calculateTrend(series *timeseries.Series, period int) []float64 {
	n := series.Len()
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	halfPeriod := period / 2

	if period%2 == 0 {
		// Even period: 2xperiod MA, end points get half weight
		for i := halfPeriod; i < n-halfPeriod; i++ {
			sum := series.Values[i-halfPeriod]*0.5 + series.Values[i+halfPeriod]*0.5
			for j := i - halfPeriod + 1; j < i+halfPeriod; j++ {
				sum += series.Values[j]
			}
			trend[i] = sum / float64(period)
		}
	} else {
		for i := halfPeriod; i < n-halfPeriod; i++ {
			sum := 0.0
			for j := i - halfPeriod; j <= i+halfPeriod; j++ {
				sum += series.Values[j]
			}
			trend[i] = sum / float64(period)
		}
	}

	return trend
}
