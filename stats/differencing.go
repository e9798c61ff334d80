package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// NDiffsOptions controls the differencing-order search.
type NDiffsOptions struct {
	Alpha float64 // Significance level of each test (default 0.05)
	MaxD  int     // Maximum number of differences to consider (default 2)
}

// DefaultNDiffsOptions returns alpha 0.05 and at most two differences.
func DefaultNDiffsOptions() NDiffsOptions {
	return NDiffsOptions{Alpha: 0.05, MaxD: 2}
}

// NDiffs determines the number of first differences required for the chosen
// test to consider the series stationary. The series is tested, differenced,
// and re-tested until the test stops asking for a difference or MaxD is
// reached.
//
// A constant input is a NumericalError. A series that becomes constant after
// d differences needs exactly d. If differencing leaves fewer than
// MinObservations values the search stops at the current order.
//
// ADF and PP regress with a constant only, and KPSS tests level
// stationarity. pmdarima's ndiffs adds a linear trend to the ADF and PP
// regressions, so orders can differ from it on trending series.
func NDiffs(series *timeseries.Series, test TestType, opts NDiffsOptions) (int, error) {
	if opts.MaxD <= 0 {
		opts.MaxD = 2
	}
	if opts.Alpha <= 0 || opts.Alpha >= 1 {
		opts.Alpha = 0.05
	}

	shouldDiff, err := differencingRule(test)
	if err != nil {
		return 0, err
	}
	if err := checkSeries(series, test); err != nil {
		return 0, err
	}

	current := series
	d := 0
	for {
		diff, err := shouldDiff(current, opts.Alpha)
		if err != nil {
			if d == 0 {
				return 0, err
			}
			return d, fmt.Errorf("after %d differences: %w", d, err)
		}
		if !diff || d >= opts.MaxD {
			return d, nil
		}

		d++
		current = current.Diff()
		if current.IsConstant() || current.Len() < MinObservations {
			return d, nil
		}
	}
}

type diffRule func(s *timeseries.Series, alpha float64) (bool, error)

// differencingRule maps a test to its "should difference" decision. ADF and
// PP difference when the unit root cannot be rejected; KPSS differences when
// stationarity is rejected.
func differencingRule(test TestType) (diffRule, error) {
	switch test {
	case TestADF:
		return func(s *timeseries.Series, alpha float64) (bool, error) {
			r, err := ADF(s, 0)
			if err != nil {
				return false, err
			}
			return r.PValue >= alpha, nil
		}, nil
	case TestKPSS:
		return func(s *timeseries.Series, alpha float64) (bool, error) {
			r, err := KPSS(s, "c", 0)
			if err != nil {
				return false, err
			}
			return r.PValue < alpha, nil
		}, nil
	case TestPP:
		return func(s *timeseries.Series, alpha float64) (bool, error) {
			r, err := PhillipsPerron(s, 0)
			if err != nil {
				return false, err
			}
			return r.PValue >= alpha, nil
		}, nil
	}
	return nil, fmt.Errorf("unknown stationarity test %q", test)
}

// NSDiffs determines the number of seasonal differences required.
// Uses seasonal strength measure: if F_S >= 0.64, one seasonal difference is suggested.
// period is the seasonal period (e.g., 12 for monthly data with yearly seasonality).
func NSDiffs(series *timeseries.Series, period int, maxD int) (int, error) {
	if series == nil || series.Len() == 0 {
		return 0, &InvalidInputError{Reason: "series is empty"}
	}
	if series.HasMissing() {
		return 0, &InvalidInputError{Reason: "series contains missing values"}
	}
	if maxD <= 0 {
		maxD = 1
	}
	if period <= 1 || series.Len() < 2*period {
		return 0, nil
	}

	current := series
	for d := 0; d < maxD; d++ {
		// If seasonal strength < 0.64, no more seasonal differencing needed
		if seasonalStrength(current, period) < 0.64 {
			return d, nil
		}

		current = current.SeasonalDiff(period)
		if current.Len() < 2*period {
			return d + 1, nil
		}
	}

	return maxD, nil
}

// seasonalStrength calculates the strength of seasonality (F_S).
// F_S = max(0, 1 - Var(R) / Var(S+R))
// where S is seasonal component and R is residual.
func seasonalStrength(series *timeseries.Series, period int) float64 {
	decomp, err := Decompose(series, period, Additive)
	if err != nil {
		return 0
	}

	varR := variance(decomp.Residual.Values)

	seasonalPlusResid := make([]float64, len(decomp.Seasonal.Values))
	for i := range seasonalPlusResid {
		seasonalPlusResid[i] = decomp.Seasonal.Values[i] + decomp.Residual.Values[i]
	}
	varSR := variance(seasonalPlusResid)

	if varSR == 0 {
		return 0
	}

	return math.Max(0, 1-varR/varSR)
}

// variance calculates the sample variance of a slice, ignoring NaN values.
func variance(data []float64) float64 {
	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	if len(valid) < 2 {
		return 0
	}
	return stat.Variance(valid, nil)
}
