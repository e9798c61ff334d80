// Package advisor recommends how many times a series should be differenced
// by running the ADF, KPSS and Phillips-Perron tests independently.
//
// The three orders are reported side by side and never reconciled:
//
//	rec, err := advisor.RecommendDifferencing(series)
//	advisor.Fprint(os.Stdout, rec)
//
// A test that fails leaves its entry at Unavailable while the other two
// still run. The returned error combines one *TestError per failed test.
package advisor

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AydenZK/fuel-price-fcast/logging"
	"github.com/AydenZK/fuel-price-fcast/stats"
	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// Unavailable marks a test that produced no differencing order.
const Unavailable = -1

// Tests lists the stationarity tests in reporting order.
var Tests = []stats.TestType{stats.TestADF, stats.TestKPSS, stats.TestPP}

// Recommendation holds the differencing order suggested by each test.
type Recommendation struct {
	ADF  int `json:"adf"`
	KPSS int `json:"kpss"`
	PP   int `json:"pp"`
}

func unavailable() Recommendation {
	return Recommendation{ADF: Unavailable, KPSS: Unavailable, PP: Unavailable}
}

// Get returns the order for a test, or Unavailable for an unknown test.
func (r Recommendation) Get(test stats.TestType) int {
	switch test {
	case stats.TestADF:
		return r.ADF
	case stats.TestKPSS:
		return r.KPSS
	case stats.TestPP:
		return r.PP
	}
	return Unavailable
}

func (r *Recommendation) set(test stats.TestType, d int) {
	switch test {
	case stats.TestADF:
		r.ADF = d
	case stats.TestKPSS:
		r.KPSS = d
	case stats.TestPP:
		r.PP = d
	}
}

// TestError records the failure of one test.
type TestError struct {
	Test stats.TestType
	Err  error
}

func (e *TestError) Error() string {
	return fmt.Sprintf("%s test failed: %v", e.Test.Label(), e.Err)
}

func (e *TestError) Unwrap() error { return e.Err }

// Advisor runs the differencing-order estimators.
type Advisor struct {
	alpha    float64
	maxD     int
	parallel bool
	tests    []stats.TestType
	logger   *zap.SugaredLogger
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithAlpha sets the significance level of every test.
func WithAlpha(alpha float64) Option {
	return func(a *Advisor) { a.alpha = alpha }
}

// WithMaxD sets the largest differencing order considered.
func WithMaxD(maxD int) Option {
	return func(a *Advisor) { a.maxD = maxD }
}

// WithParallel runs the three tests concurrently.
func WithParallel(parallel bool) Option {
	return func(a *Advisor) { a.parallel = parallel }
}

// WithTests restricts the run to the given tests. Entries of tests that are
// not selected stay Unavailable and are not reported as failures.
func WithTests(tests ...stats.TestType) Option {
	return func(a *Advisor) {
		if len(tests) > 0 {
			a.tests = tests
		}
	}
}

// WithLogger sets the logger used for per-test diagnostics.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(a *Advisor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New returns an Advisor with alpha 0.05, at most two differences and
// parallel execution.
func New(opts ...Option) *Advisor {
	defaults := stats.DefaultNDiffsOptions()
	a := &Advisor{
		alpha:    defaults.Alpha,
		maxD:     defaults.MaxD,
		parallel: true,
		tests:    Tests,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RecommendDifferencing runs all three tests with default settings.
func RecommendDifferencing(series *timeseries.Series) (Recommendation, error) {
	return New().Recommend(context.Background(), series)
}

// Recommend estimates the differencing order with each test. Invalid input
// is rejected before any test runs; otherwise every test runs to completion
// regardless of the others.
func (a *Advisor) Recommend(ctx context.Context, series *timeseries.Series) (Recommendation, error) {
	rec := unavailable()
	if err := stats.Validate(series, ""); err != nil {
		return rec, err
	}

	orders := make([]int, len(a.tests))
	errs := make([]error, len(a.tests))
	opts := stats.NDiffsOptions{Alpha: a.alpha, MaxD: a.maxD}

	run := func(ctx context.Context, i int) {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			return
		}
		orders[i], errs[i] = stats.NDiffs(series, a.tests[i], opts)
	}

	if a.parallel {
		eg, egCtx := errgroup.WithContext(ctx)
		for i := range a.tests {
			eg.Go(func() error {
				run(egCtx, i)
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for i := range a.tests {
			run(ctx, i)
		}
	}

	var err error
	for i, test := range a.tests {
		if errs[i] != nil {
			a.logger.Warnw("stationarity test failed", "test", test, "error", errs[i])
			err = multierr.Append(err, &TestError{Test: test, Err: errs[i]})
			continue
		}
		a.logger.Debugw("differencing order", "test", test, "d", orders[i])
		rec.set(test, orders[i])
	}

	return rec, err
}

// Seasonal returns the number of seasonal differences suggested for the
// given season length.
func Seasonal(series *timeseries.Series, period int) (int, error) {
	return stats.NSDiffs(series, period, 1)
}
