package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

var allTests = []TestType{TestADF, TestKPSS, TestPP}

func TestNDiffsDeterministicTrends(t *testing.T) {
	quadratic := make([]float64, 50)
	for i := range quadratic {
		quadratic[i] = float64(i * i)
	}

	tests := []struct {
		name     string
		values   []float64
		expected int
	}{
		{"one to ten", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1},
		{"linear", linearTrend(100), 1},
		{"quadratic", quadratic, 2},
	}

	for _, tt := range tests {
		for _, test := range allTests {
			t.Run(tt.name+"/"+string(test), func(t *testing.T) {
				d, err := NDiffs(timeseries.New(tt.values), test, DefaultNDiffsOptions())
				if err != nil {
					t.Fatalf("NDiffs: %v", err)
				}
				if d != tt.expected {
					t.Errorf("Expected %d differences, got %d", tt.expected, d)
				}
			})
		}
	}
}

func TestNDiffsMaxD(t *testing.T) {
	quadratic := make([]float64, 50)
	for i := range quadratic {
		quadratic[i] = float64(i * i)
	}

	d, err := NDiffs(timeseries.New(quadratic), TestKPSS, NDiffsOptions{Alpha: 0.05, MaxD: 1})
	if err != nil {
		t.Fatalf("NDiffs: %v", err)
	}
	if d != 1 {
		t.Errorf("Expected the search to stop at MaxD=1, got %d", d)
	}

	// Zero options fall back to the defaults
	d, err = NDiffs(timeseries.New(quadratic), TestKPSS, NDiffsOptions{})
	if err != nil {
		t.Fatalf("NDiffs: %v", err)
	}
	if d != 2 {
		t.Errorf("Expected default MaxD of 2 to allow 2 differences, got %d", d)
	}
}

func TestNDiffsWhiteNoise(t *testing.T) {
	// Each test has a 5% false-positive rate, so require a clear majority
	const seeds = 20
	for _, test := range allTests {
		zero := 0
		for seed := uint64(1); seed <= seeds; seed++ {
			d, err := NDiffs(timeseries.New(whiteNoise(500, seed)), test, DefaultNDiffsOptions())
			if err != nil {
				t.Fatalf("%s seed %d: %v", test, seed, err)
			}
			if d == 0 {
				zero++
			}
		}
		t.Logf("%s: %d/%d white noise series need no differencing", test, zero, seeds)
		if zero < 15 {
			t.Errorf("%s: expected most white noise series to need 0 differences, got %d/%d", test, zero, seeds)
		}
	}
}

func TestNDiffsRandomWalk(t *testing.T) {
	const seeds = 20
	for _, test := range allTests {
		atLeastOne := 0
		for seed := uint64(100); seed < 100+seeds; seed++ {
			d, err := NDiffs(timeseries.New(randomWalk(500, seed)), test, DefaultNDiffsOptions())
			if err != nil {
				t.Fatalf("%s seed %d: %v", test, seed, err)
			}
			if d >= 1 {
				atLeastOne++
			}
		}
		t.Logf("%s: %d/%d random walks need differencing", test, atLeastOne, seeds)
		if atLeastOne < 15 {
			t.Errorf("%s: expected most random walks to need >= 1 difference, got %d/%d", test, atLeastOne, seeds)
		}
	}
}

func TestNDiffsErrors(t *testing.T) {
	constant := make([]float64, 30)
	for i := range constant {
		constant[i] = 7
	}

	for _, test := range allTests {
		_, err := NDiffs(timeseries.New(constant), test, DefaultNDiffsOptions())
		if !errors.Is(err, ErrNumerical) {
			t.Errorf("%s: expected ErrNumerical for constant series, got %v", test, err)
		}

		_, err = NDiffs(timeseries.New([]float64{1, 2, 3}), test, DefaultNDiffsOptions())
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput for short series, got %v", test, err)
		}
	}

	if _, err := NDiffs(timeseries.New(linearTrend(20)), TestType("ljungbox"), DefaultNDiffsOptions()); err == nil {
		t.Error("Expected error for unknown test")
	}
}

func TestNSDiffs(t *testing.T) {
	// Test with seasonal data (period 12)
	n := 120
	seasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		trend := 100 + float64(i)*0.5
		season := 15 * math.Sin(2*math.Pi*float64(i)/12)
		seasonal[i] = trend + season
	}

	sd, err := NSDiffs(timeseries.New(seasonal), 12, 1)
	if err != nil {
		t.Fatalf("NSDiffs: %v", err)
	}
	t.Logf("Seasonal series (period 12) nsdiffs: %d", sd)
	if sd != 1 {
		t.Errorf("Expected 1 seasonal difference, got %d", sd)
	}

	// Test with non-seasonal data
	noise := whiteNoise(n, 42)
	sd, err = NSDiffs(timeseries.New(noise), 12, 1)
	if err != nil {
		t.Fatalf("NSDiffs: %v", err)
	}
	t.Logf("Non-seasonal series nsdiffs: %d", sd)
	if sd != 0 {
		t.Errorf("Non-seasonal series should need 0 seasonal differences, got %d", sd)
	}

	// Too short for the period
	sd, err = NSDiffs(timeseries.New(seasonal[:20]), 12, 1)
	if err != nil || sd != 0 {
		t.Errorf("Expected 0 and no error for a series shorter than two periods, got %d, %v", sd, err)
	}

	if _, err := NSDiffs(timeseries.New(nil), 12, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty series, got %v", err)
	}
}

func TestSeasonalStrength(t *testing.T) {
	n := 120
	strong := make([]float64, n)
	for i := 0; i < n; i++ {
		strong[i] = 100 + 20*math.Sin(2*math.Pi*float64(i)/12)
	}

	strength := seasonalStrength(timeseries.New(strong), 12)
	t.Logf("Strong seasonal pattern strength: %.4f", strength)
	if strength < 0.9 {
		t.Errorf("Expected strength near 1 for a pure seasonal pattern, got %.4f", strength)
	}

	weakStrength := seasonalStrength(timeseries.New(whiteNoise(n, 11)), 12)
	t.Logf("Weak seasonal pattern strength: %.4f", weakStrength)
	if weakStrength >= 0.64 {
		t.Errorf("Expected low seasonal strength for noise, got %.4f", weakStrength)
	}
}

func TestVariance(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	// Mean = 5, sample variance with n-1 denominator
	v := variance(data)
	expectedVar := 32.0 / 7.0

	if math.Abs(v-expectedVar) > 0.001 {
		t.Errorf("Variance calculation incorrect: got %f, expected %f", v, expectedVar)
	}

	dataWithNaN := []float64{2, 4, math.NaN(), 4, 5, math.NaN(), 7, 9}
	vNaN := variance(dataWithNaN)
	expectedNaN := variance([]float64{2, 4, 4, 5, 7, 9})
	if math.Abs(vNaN-expectedNaN) > 1e-12 {
		t.Errorf("NaN values should be ignored: got %f, expected %f", vNaN, expectedNaN)
	}
}

func TestParseTestType(t *testing.T) {
	for _, in := range []string{"adf", "ADF", "kpss", "Kpss", "pp", "PP"} {
		if _, err := ParseTestType(in); err != nil {
			t.Errorf("ParseTestType(%q): %v", in, err)
		}
	}
	if _, err := ParseTestType("ljungbox"); err == nil {
		t.Error("Expected error for unknown test name")
	}
	if TestKPSS.Label() != "KPSS" {
		t.Errorf("Expected label KPSS, got %s", TestKPSS.Label())
	}
}
