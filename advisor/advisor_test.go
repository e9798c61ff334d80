package advisor

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/AydenZK/fuel-price-fcast/stats"
	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

func noise(n int, seed uint64) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, 7)}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

func sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestRecommendDifferencing(t *testing.T) {
	t.Run("one to ten", func(t *testing.T) {
		rec, err := RecommendDifferencing(timeseries.New(sequence(10)))
		require.NoError(t, err)
		assert.Equal(t, Recommendation{ADF: 1, KPSS: 1, PP: 1}, rec)
	})

	t.Run("linear trend", func(t *testing.T) {
		rec, err := RecommendDifferencing(timeseries.New(sequence(200)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rec.ADF, 1)
		assert.GreaterOrEqual(t, rec.KPSS, 1)
	})

	t.Run("white noise", func(t *testing.T) {
		rec, err := RecommendDifferencing(timeseries.New(noise(500, 3)))
		require.NoError(t, err)
		assert.Equal(t, Recommendation{}, rec)
	})

	t.Run("random walk", func(t *testing.T) {
		walk := noise(500, 9)
		for i := 1; i < len(walk); i++ {
			walk[i] += walk[i-1]
		}
		rec, err := RecommendDifferencing(timeseries.New(walk))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rec.ADF, 1)
		assert.GreaterOrEqual(t, rec.KPSS, 1)
	})
}

func TestRecommendIsDeterministic(t *testing.T) {
	series := timeseries.New(noise(300, 5))
	original := series.Copy()

	parallel := New(WithParallel(true), WithLogger(zaptest.NewLogger(t).Sugar()))
	sequential := New(WithParallel(false))

	first, err := parallel.Recommend(context.Background(), series)
	require.NoError(t, err)
	second, err := parallel.Recommend(context.Background(), series)
	require.NoError(t, err)
	third, err := sequential.Recommend(context.Background(), series)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	if diff := cmp.Diff(original.Values, series.Values); diff != "" {
		t.Errorf("input series was modified (-want +got):\n%s", diff)
	}
}

func TestRecommendInvalidInput(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	a := New(WithLogger(zap.New(core).Sugar()))

	rec, err := a.Recommend(context.Background(), timeseries.New(sequence(5)))
	require.Error(t, err)
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
	assert.Equal(t, unavailable(), rec)
	assert.Zero(t, logs.Len(), "no test should run on invalid input")

	_, err = a.Recommend(context.Background(), timeseries.New(nil))
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
}

func TestRecommendConstantSeries(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 2.5
	}

	core, logs := observer.New(zap.WarnLevel)
	a := New(WithLogger(zap.New(core).Sugar()))

	rec, err := a.Recommend(context.Background(), timeseries.New(values))
	require.Error(t, err)
	assert.Equal(t, unavailable(), rec)
	assert.ErrorIs(t, err, stats.ErrNumerical)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	for i, e := range errs {
		var testErr *TestError
		require.True(t, errors.As(e, &testErr))
		assert.Equal(t, Tests[i], testErr.Test)
	}
	assert.Equal(t, 3, logs.FilterMessage("stationarity test failed").Len())
}

func TestRecommendCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec, err := New().Recommend(ctx, timeseries.New(sequence(20)))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, unavailable(), rec)
}

func TestRecommendationGet(t *testing.T) {
	rec := Recommendation{ADF: 0, KPSS: 1, PP: 2}
	assert.Equal(t, 0, rec.Get(stats.TestADF))
	assert.Equal(t, 1, rec.Get(stats.TestKPSS))
	assert.Equal(t, 2, rec.Get(stats.TestPP))
	assert.Equal(t, Unavailable, rec.Get("ljungbox"))
}

func TestSeasonal(t *testing.T) {
	values := make([]float64, 48)
	for i := range values {
		values[i] = float64(i%12) * 3
	}
	d, err := Seasonal(timeseries.New(values), 12)
	require.NoError(t, err)
	assert.Equal(t, 1, d)
}

func TestFormat(t *testing.T) {
	got := Format(Recommendation{ADF: 1, KPSS: 0, PP: 2})
	want := "Recommended Differencing:\nADF: 1\nKPSS: 0\nPP: 2\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}

	got = Format(Recommendation{ADF: Unavailable, KPSS: 1, PP: Unavailable})
	assert.Equal(t, "Recommended Differencing:\nADF: n/a\nKPSS: 1\nPP: n/a\n", got)

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, Recommendation{ADF: 1, KPSS: 1, PP: 1}))
	assert.Equal(t, "Recommended Differencing:\nADF: 1\nKPSS: 1\nPP: 1\n", buf.String())
}

func TestFormatSelectedTests(t *testing.T) {
	rec := Recommendation{ADF: Unavailable, KPSS: 1, PP: 2}
	assert.Equal(t, "Recommended Differencing:\nPP: 2\nKPSS: 1\n", Format(rec, stats.TestPP, stats.TestKPSS))

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, rec, stats.TestKPSS))
	assert.Equal(t, "Recommended Differencing:\nKPSS: 1\n", buf.String())
}

func TestRecommendWithTests(t *testing.T) {
	adv := New(WithTests(stats.TestKPSS))
	rec, err := adv.Recommend(context.Background(), timeseries.New(sequence(10)))
	require.NoError(t, err)
	assert.Equal(t, Recommendation{ADF: Unavailable, KPSS: 1, PP: Unavailable}, rec)

	// An empty selection keeps all three tests.
	rec, err = New(WithTests()).Recommend(context.Background(), timeseries.New(sequence(10)))
	require.NoError(t, err)
	assert.Equal(t, Recommendation{ADF: 1, KPSS: 1, PP: 1}, rec)
}
