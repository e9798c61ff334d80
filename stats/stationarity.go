package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// MinObservations is the shortest series any stationarity test accepts.
const MinObservations = 10

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	NObs         int
	CriticalVals map[string]float64 // Critical values at 1%, 5%, 10%
	IsStationary bool
}

// ADF performs the Augmented Dickey-Fuller test for unit root.
// The null hypothesis is that the series has a unit root (is non-stationary).
// If p-value < 0.05, we reject the null and conclude the series is stationary.
// A maxLag of zero or less selects floor((n-1)^(1/3)) lags.
func ADF(series *timeseries.Series, maxLag int) (*ADFResult, error) {
	if err := checkSeries(series, TestADF); err != nil {
		return nil, err
	}
	n := series.Len()

	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}

	// Build regression: delta_y_t = alpha + beta*y_{t-1} + sum(gamma_i * delta_y_{t-i}) + epsilon
	// We're testing if beta = 0 (unit root) vs beta < 0 (stationary)
	nObs := n - maxLag - 1
	if nObs <= maxLag+3 {
		return nil, &InvalidInputError{
			Test:   TestADF,
			Reason: fmt.Sprintf("%d observations leave too few degrees of freedom for %d lags", n, maxLag),
		}
	}

	diff := series.Diff()
	y := make([]float64, nObs)
	x := make([][]float64, nObs)

	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y[i] = diff.Values[t]

		// x[i] = [1, y_{t-1}, delta_y_{t-1}, ..., delta_y_{t-maxLag}]
		x[i] = make([]float64, 2+maxLag)
		x[i][0] = 1
		x[i][1] = series.Values[t]
		for j := 1; j <= maxLag; j++ {
			x[i][1+j] = diff.Values[t-j]
		}
	}

	fit, err := olsRegression(x, y)
	if err != nil {
		return nil, &NumericalError{Test: TestADF, Reason: err.Error()}
	}

	tStat := fit.tRatio(1)
	if math.IsNaN(tStat) {
		return nil, &NumericalError{Test: TestADF, Reason: "lagged level coefficient is not identified"}
	}

	pValue := mackinnonPValue(tStat)

	return &ADFResult{
		Statistic: tStat,
		PValue:    pValue,
		Lags:      maxLag,
		NObs:      nObs,
		CriticalVals: map[string]float64{
			"1%":  -3.43,
			"5%":  -2.86,
			"10%": -2.57,
		},
		IsStationary: pValue < 0.05,
	}, nil
}

// KPSSResult represents the result of a KPSS test.
type KPSSResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	CriticalVals map[string]float64
	IsStationary bool
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test for stationarity.
// The null hypothesis is that the series is stationary around a level
// (regression "c") or a linear trend (regression "ct").
// If p-value < 0.05, we reject the null and conclude the series is non-stationary.
// An nlags of zero or less selects floor(3*sqrt(n)/13) lags.
func KPSS(series *timeseries.Series, regression string, nlags int) (*KPSSResult, error) {
	if err := checkSeries(series, TestKPSS); err != nil {
		return nil, err
	}
	n := series.Len()

	if regression != "ct" {
		regression = "c"
	}
	if nlags <= 0 {
		nlags = int(math.Floor(3 * math.Sqrt(float64(n)) / 13))
	}
	if nlags >= n {
		nlags = n - 1
	}

	residuals := make([]float64, n)
	if regression == "ct" {
		// Linear detrending: y = a + b*t + residual
		t := make([]float64, n)
		for i := range t {
			t[i] = float64(i)
		}
		a, b := stat.LinearRegression(t, series.Values, nil, false)
		for i, v := range series.Values {
			residuals[i] = v - a - b*float64(i)
		}
	} else {
		mean := series.Mean()
		for i, v := range series.Values {
			residuals[i] = v - mean
		}
	}

	cumSum := make([]float64, n)
	floats.CumSum(cumSum, residuals)

	s2 := longRunVariance(residuals, nlags)
	if s2 <= 0 || math.IsNaN(s2) {
		return nil, &NumericalError{Test: TestKPSS, Reason: "long-run variance is not positive"}
	}

	etaSq := floats.Dot(cumSum, cumSum)
	kpssStat := etaSq / (float64(n) * float64(n) * s2)

	var criticalVals map[string]float64
	if regression == "ct" {
		criticalVals = map[string]float64{
			"10%":  0.119,
			"5%":   0.146,
			"2.5%": 0.176,
			"1%":   0.216,
		}
	} else {
		criticalVals = map[string]float64{
			"10%":  0.347,
			"5%":   0.463,
			"2.5%": 0.574,
			"1%":   0.739,
		}
	}

	pValue := kpssPValue(kpssStat, regression)

	// For KPSS, null is stationary, so stationary if we don't reject null
	return &KPSSResult{
		Statistic:    kpssStat,
		PValue:       pValue,
		Lags:         nlags,
		CriticalVals: criticalVals,
		IsStationary: pValue >= 0.05,
	}, nil
}

// PhillipsPerronResult represents the result of a Phillips-Perron test.
type PhillipsPerronResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	CriticalVals map[string]float64
	IsStationary bool
}

// PhillipsPerron performs the Phillips-Perron Z(t) test for unit root.
// Similar to ADF but corrects the t-ratio for serial correlation with a
// Newey-West long-run variance instead of adding lagged differences.
// An nlags of zero or less selects floor(4*(n/100)^(1/4)) lags.
func PhillipsPerron(series *timeseries.Series, nlags int) (*PhillipsPerronResult, error) {
	if err := checkSeries(series, TestPP); err != nil {
		return nil, err
	}
	n := series.Len()

	if nlags <= 0 {
		nlags = int(math.Floor(4 * math.Pow(float64(n)/100, 0.25)))
	}

	diff := series.Diff()

	// Run OLS: delta_y_t = alpha + beta * y_{t-1} + epsilon
	nObs := n - 1
	if nlags >= nObs {
		nlags = nObs - 1
	}
	y := diff.Values
	x := make([][]float64, nObs)
	for i := 0; i < nObs; i++ {
		x[i] = []float64{1, series.Values[i]}
	}

	fit, err := olsRegression(x, y)
	if err != nil {
		return nil, &NumericalError{Test: TestPP, Reason: err.Error()}
	}

	criticalVals := map[string]float64{
		"1%":  -3.43,
		"5%":  -2.86,
		"10%": -2.57,
	}

	var ppStat float64
	if fit.Perfect {
		ppStat = fit.tRatio(1)
	} else {
		tStat := fit.tRatio(1)
		if math.IsNaN(tStat) {
			return nil, &NumericalError{Test: TestPP, Reason: "lagged level coefficient is not identified"}
		}

		gamma0 := fit.SSE / float64(nObs)
		lambda2 := longRunVariance(fit.Residuals, nlags)
		if lambda2 <= 0 {
			return nil, &NumericalError{Test: TestPP, Reason: "long-run variance is not positive"}
		}

		// Sum of squared y_{t-1} deviations
		lagged := series.Values[:nObs]
		xMean := stat.Mean(lagged, nil)
		sumXDev2 := 0.0
		for _, v := range lagged {
			d := v - xMean
			sumXDev2 += d * d
		}

		correction := (lambda2 - gamma0) * float64(nObs) / (2 * math.Sqrt(lambda2) * math.Sqrt(sumXDev2))
		ppStat = math.Sqrt(gamma0/lambda2)*tStat - correction
	}

	if math.IsNaN(ppStat) {
		return nil, &NumericalError{Test: TestPP, Reason: "statistic is not finite"}
	}

	pValue := mackinnonPValue(ppStat)

	return &PhillipsPerronResult{
		Statistic:    ppStat,
		PValue:       pValue,
		Lags:         nlags,
		CriticalVals: criticalVals,
		IsStationary: pValue < 0.05,
	}, nil
}

// checkSeries rejects series no stationarity test can run on.
func checkSeries(series *timeseries.Series, test TestType) error {
	if err := Validate(series, test); err != nil {
		return err
	}
	if series.IsConstant() {
		return &NumericalError{Test: test, Reason: "series is constant (zero variance)"}
	}
	return nil
}

// Validate checks that a series is non-empty, has at least MinObservations
// values and no missing values.
func Validate(series *timeseries.Series, test TestType) error {
	switch {
	case series == nil || series.Len() == 0:
		return &InvalidInputError{Test: test, Reason: "series is empty"}
	case series.HasMissing():
		return &InvalidInputError{Test: test, Reason: "series contains missing values"}
	case series.Len() < MinObservations:
		return &InvalidInputError{
			Test:   test,
			Reason: fmt.Sprintf("need at least %d observations, got %d", MinObservations, series.Len()),
		}
	}
	return nil
}

// longRunVariance is the Newey-West estimator with Bartlett weights.
func longRunVariance(residuals []float64, nlags int) float64 {
	n := len(residuals)
	s2 := floats.Dot(residuals, residuals) / float64(n)

	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}

	return s2
}

// MacKinnon (1994) response surface for one integrated variable with a
// constant term.
var (
	tauMaxC   = 2.74
	tauMinC   = -18.83
	tauStarC  = -1.61
	tauSmallP = []float64{2.1659, 1.4412, 3.8269e-2}
	tauLargeP = []float64{1.7339, 9.3202e-1, -1.2745e-1, -1.0368e-2}
)

// mackinnonPValue approximates the p-value of an ADF or PP statistic with a
// constant-only regression.
func mackinnonPValue(stat float64) float64 {
	switch {
	case stat > tauMaxC:
		return 1
	case stat < tauMinC:
		return 0
	}

	coef := tauLargeP
	if stat <= tauStarC {
		coef = tauSmallP
	}

	// Horner evaluation of coef[0] + coef[1]*x + coef[2]*x^2 + ...
	z := 0.0
	for i := len(coef) - 1; i >= 0; i-- {
		z = z*stat + coef[i]
	}
	return distuv.UnitNormal.CDF(z)
}

var (
	kpssPValues   = []float64{0.10, 0.05, 0.025, 0.01}
	kpssCritLevel = []float64{0.347, 0.463, 0.574, 0.739}
	kpssCritTrend = []float64{0.119, 0.146, 0.176, 0.216}
)

// kpssPValue interpolates the KPSS p-value on the critical value table.
// Values outside the table are clipped to [0.01, 0.10].
func kpssPValue(stat float64, regression string) float64 {
	crit := kpssCritLevel
	if regression == "ct" {
		crit = kpssCritTrend
	}

	switch {
	case stat <= crit[0]:
		return kpssPValues[0]
	case stat >= crit[len(crit)-1]:
		return kpssPValues[len(kpssPValues)-1]
	}

	for i := 1; i < len(crit); i++ {
		if stat <= crit[i] {
			frac := (stat - crit[i-1]) / (crit[i] - crit[i-1])
			return kpssPValues[i-1] + frac*(kpssPValues[i]-kpssPValues[i-1])
		}
	}
	return kpssPValues[len(kpssPValues)-1]
}
