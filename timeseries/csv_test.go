package timeseries

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadCSVFromReader(t *testing.T) {
	// Test basic CSV loading
	csvData := `ds,y
2020-01-01,100
2020-01-02,101
2020-01-03,102
2020-01-04,103
2020-01-05,104`

	reader := strings.NewReader(csvData)
	opts := DefaultCSVOptions()

	series, err := LoadCSVFromReader(reader, opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if series.Len() != 5 {
		t.Errorf("Expected 5 observations, got %d", series.Len())
	}

	// Check values
	expected := []float64{100, 101, 102, 103, 104}
	for i, v := range expected {
		if series.Values[i] != v {
			t.Errorf("Value at index %d: expected %f, got %f", i, v, series.Values[i])
		}
	}

	t.Logf("Loaded %d values: %v", series.Len(), series.Values)
}

func TestLoadCSVWithFilter(t *testing.T) {
	// Test filtered CSV loading
	csvData := `unique_id,ds,y
A,2020-01-01,100
B,2020-01-01,200
A,2020-01-02,101
B,2020-01-02,201
A,2020-01-03,102`

	reader := strings.NewReader(csvData)
	opts := DefaultCSVOptions()
	opts.IDColumn = "unique_id"
	opts.IDFilter = "A"

	series, err := LoadCSVFromReader(reader, opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if series.Len() != 3 {
		t.Errorf("Expected 3 observations for 'A', got %d", series.Len())
	}

	// Check values (should only have A's values)
	expected := []float64{100, 101, 102}
	for i, v := range expected {
		if series.Values[i] != v {
			t.Errorf("Value at index %d: expected %f, got %f", i, v, series.Values[i])
		}
	}

	t.Logf("Filtered series: %v", series.Values)
}

func TestLoadCSVWithNAValues(t *testing.T) {
	csvData := `ds,y
2020-01-01,100
2020-01-02,NA
2020-01-03,102
2020-01-04,NaN
2020-01-05,104`

	reader := strings.NewReader(csvData)
	opts := DefaultCSVOptions()

	series, err := LoadCSVFromReader(reader, opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	// Gaps are kept as NaN so timestamps stay aligned
	if series.Len() != 5 {
		t.Errorf("Expected 5 observations, got %d", series.Len())
	}
	if !series.HasTimestamps() {
		t.Error("Expected timestamps for every row")
	}
	if !math.IsNaN(series.Values[1]) || !math.IsNaN(series.Values[3]) {
		t.Errorf("Expected NaN at gaps, got %v", series.Values)
	}

	clean := series.DropMissing()
	expected := []float64{100, 102, 104}
	for i, v := range expected {
		if clean.Values[i] != v {
			t.Errorf("Value at index %d: expected %f, got %f", i, v, clean.Values[i])
		}
	}
}

func TestLoadCSVInvalidValue(t *testing.T) {
	csvData := `date,price
2020-01-01,100
2020-01-02,abc`

	opts := DefaultCSVOptions()
	opts.ValueColumn = "price"

	_, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	if err == nil {
		t.Fatal("Expected error for unparseable value")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("Expected error to name the row, got %v", err)
	}
}

func TestLoadCSVUnknownColumn(t *testing.T) {
	csvData := `date,price
2020-01-01,100`

	opts := DefaultCSVOptions()
	opts.ValueColumn = "volume"

	if _, err := LoadCSVFromReader(strings.NewReader(csvData), opts); err == nil {
		t.Fatal("Expected error for missing value column")
	}
}

func TestWriteCSV(t *testing.T) {
	base := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewWithTimestamps([]time.Time{base, base.AddDate(0, 0, 1)}, []float64{1.5, 2})
	if err != nil {
		t.Fatalf("NewWithTimestamps: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(s, &buf, true); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "ds,y\n2022-05-01,1.5\n2022-05-02,2\n"
	if buf.String() != want {
		t.Errorf("WriteCSV output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := WriteCSV(New([]float64{3}), &buf, true); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != "index,y\n1,3\n" {
		t.Errorf("WriteCSV without timestamps = %q", buf.String())
	}
}

func TestSaveAndLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	base := time.Date(2019, 12, 30, 0, 0, 0, 0, time.UTC)
	ts := []time.Time{base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2)}
	s, err := NewWithTimestamps(ts, []float64{10, 11, 12})
	if err != nil {
		t.Fatalf("NewWithTimestamps: %v", err)
	}

	if err := SaveCSV(s, path, true); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}

	opts := DefaultCSVOptions()
	opts.DateColumn = "ds"
	loaded, err := LoadCSV(path, opts)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if loaded.Len() != 3 || !loaded.HasTimestamps() {
		t.Fatalf("Expected 3 dated observations, got %d (timestamps=%v)", loaded.Len(), loaded.HasTimestamps())
	}
	if !loaded.Timestamps[2].Equal(ts[2]) {
		t.Errorf("Expected last date %v, got %v", ts[2], loaded.Timestamps[2])
	}
}

func TestLoadCSVMultipleColumns(t *testing.T) {
	// Test loading specific column
	csvData := `ds,Beer,Cement,Gas
2020-01-01,100,200,50
2020-01-02,110,210,55
2020-01-03,120,220,60`

	reader := strings.NewReader(csvData)
	opts := DefaultCSVOptions()
	opts.ValueColumn = "Cement"

	series, err := LoadCSVFromReader(reader, opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	expected := []float64{200, 210, 220}
	for i, v := range expected {
		if series.Values[i] != v {
			t.Errorf("Value at index %d: expected %f, got %f", i, v, series.Values[i])
		}
	}

	t.Logf("Cement column: %v", series.Values)
}

func TestLoadCSVQuotedFields(t *testing.T) {
	// Test handling of quoted fields
	csvData := `"unique_id","ds","y"
"Australia","2020-01-01","1000000"
"Australia","2020-01-02","1000100"
"Australia","2020-01-03","1000200"`

	reader := strings.NewReader(csvData)
	opts := DefaultCSVOptions()

	series, err := LoadCSVFromReader(reader, opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if series.Len() != 3 {
		t.Errorf("Expected 3 observations, got %d", series.Len())
	}

	t.Logf("Quoted fields loaded: %v", series.Values)
}

func TestLoadCSVDateFormats(t *testing.T) {
	// Test various date formats
	testCases := []struct {
		name    string
		csvData string
	}{
		{
			"ISO format",
			`ds,y
2020-01-01,100
2020-01-02,101`,
		},
		{
			"Year only",
			`ds,y
2020,100
2021,101`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := strings.NewReader(tc.csvData)
			opts := DefaultCSVOptions()

			series, err := LoadCSVFromReader(reader, opts)
			if err != nil {
				t.Fatalf("Failed to load CSV: %v", err)
			}

			if series.Len() != 2 {
				t.Errorf("Expected 2 observations, got %d", series.Len())
			}
		})
	}
}

func TestDefaultCSVOptions(t *testing.T) {
	opts := DefaultCSVOptions()

	if opts.DateColumn != "date" {
		t.Errorf("Expected default date column 'date', got '%s'", opts.DateColumn)
	}

	if opts.ValueColumn != "y" {
		t.Errorf("Expected default value column 'y', got '%s'", opts.ValueColumn)
	}

	if opts.DateFormat != "2006-01-02" {
		t.Errorf("Expected default date format '2006-01-02', got '%s'", opts.DateFormat)
	}

	if !opts.HasHeader {
		t.Error("Expected HasHeader to be true by default")
	}

	if opts.Delimiter != ',' {
		t.Errorf("Expected default delimiter ',', got '%c'", opts.Delimiter)
	}
}
