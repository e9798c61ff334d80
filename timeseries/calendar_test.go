package timeseries

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func datedSeries(t *testing.T, start time.Time, days int) *Series {
	t.Helper()
	ts := make([]time.Time, days)
	values := make([]float64, days)
	for i := range ts {
		ts[i] = start.AddDate(0, 0, i)
		values[i] = float64(i)
	}
	s, err := NewWithTimestamps(ts, values)
	if err != nil {
		t.Fatalf("NewWithTimestamps: %v", err)
	}
	return s
}

func TestCalendarHelpers(t *testing.T) {
	// 2021-12-30 is a Thursday
	s := datedSeries(t, time.Date(2021, 12, 30, 0, 0, 0, 0, time.UTC), 4)

	years, err := s.Years()
	if err != nil {
		t.Fatalf("Years: %v", err)
	}
	if diff := cmp.Diff([]int{2021, 2021, 2022, 2022}, years); diff != "" {
		t.Errorf("Years mismatch (-want +got):\n%s", diff)
	}

	months, err := s.Months()
	if err != nil {
		t.Fatalf("Months: %v", err)
	}
	if diff := cmp.Diff([]time.Month{time.December, time.December, time.January, time.January}, months); diff != "" {
		t.Errorf("Months mismatch (-want +got):\n%s", diff)
	}

	days, err := s.Weekdays()
	if err != nil {
		t.Fatalf("Weekdays: %v", err)
	}
	want := []time.Weekday{time.Thursday, time.Friday, time.Saturday, time.Sunday}
	if diff := cmp.Diff(want, days); diff != "" {
		t.Errorf("Weekdays mismatch (-want +got):\n%s", diff)
	}
}

func TestCalendarHelpersWithoutTimestamps(t *testing.T) {
	s := New([]float64{1, 2, 3})
	if _, err := s.Years(); !errors.Is(err, ErrNoTimestamps) {
		t.Errorf("Years() error = %v, want ErrNoTimestamps", err)
	}
	if _, _, err := GroupBy(s, func(ts time.Time) int { return ts.Year() }); !errors.Is(err, ErrNoTimestamps) {
		t.Errorf("GroupBy() error = %v, want ErrNoTimestamps", err)
	}
}

func TestGroupBy(t *testing.T) {
	s := datedSeries(t, time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), 3)

	keys, groups, err := GroupBy(s, func(ts time.Time) int { return ts.Year() })
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	if diff := cmp.Diff([]int{2020, 2021}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2}, groups[2021]); diff != "" {
		t.Errorf("2021 group mismatch (-want +got):\n%s", diff)
	}
}
