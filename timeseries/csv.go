package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (default: "date")
	ValueColumn string // Column name for values (default: "y")
	IDColumn    string // Column name for series ID (optional, for filtering)
	IDFilter    string // Value to filter by ID column
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:  "date",
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006-01",
	"2006",
}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadCSVFromReader loads a time series from an io.Reader.
// Missing cells ("", NA, NaN, null) are kept as NaN so the caller decides how
// to treat gaps.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	valueIdx, dateIdx, idIdx := -1, -1, -1
	name := opts.ValueColumn

	if opts.HasHeader {
		headers, err := reader.Read()
		if err != nil {
			return nil, err
		}

		for i, h := range headers {
			h = clean(h)
			switch {
			case opts.ValueColumn != "" && h == opts.ValueColumn:
				valueIdx = i
			case opts.DateColumn != "" && h == opts.DateColumn:
				dateIdx = i
			case opts.IDColumn != "" && h == opts.IDColumn:
				idIdx = i
			case h == "ds" || h == "date" || h == "Date" || h == "Month" || h == "Year":
				if dateIdx == -1 {
					dateIdx = i
				}
			case h == "unique_id" || h == "id" || h == "ID":
				if idIdx == -1 && opts.IDColumn == "" {
					idIdx = i
				}
			}
		}

		if valueIdx == -1 {
			if opts.ValueColumn != "" && opts.ValueColumn != "y" {
				return nil, fmt.Errorf("value column %q not found", opts.ValueColumn)
			}
			// Default to last column if not specified
			valueIdx = len(headers) - 1
			name = clean(headers[valueIdx])
		}
	} else {
		dateIdx = 0
		valueIdx = 1
	}

	var values []float64
	var timestamps []time.Time
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		if opts.IDFilter != "" && idIdx >= 0 && idIdx < len(record) {
			if clean(record[idIdx]) != opts.IDFilter {
				continue
			}
		}

		if valueIdx >= len(record) {
			return nil, fmt.Errorf("row %d: missing value column", row)
		}

		val, err := parseValue(clean(record[valueIdx]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		values = append(values, val)

		if dateIdx >= 0 && dateIdx < len(record) {
			if ts, ok := parseDate(clean(record[dateIdx]), opts.DateFormat); ok {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	s := &Series{Values: values, Name: name}
	if len(timestamps) == len(values) {
		s.Timestamps = timestamps
	}
	return s, nil
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func parseValue(s string) (float64, error) {
	switch s {
	case "", "NA", "NaN", "nan", "null":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return v, nil
}

func parseDate(s, layout string) (time.Time, bool) {
	if layout != "" {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	for _, l := range dateLayouts {
		if ts, err := time.Parse(l, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// SaveCSV saves a time series to a CSV file.
func SaveCSV(series *Series, filename string, includeIndex bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := WriteCSV(series, file, includeIndex); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteCSV writes a time series as CSV. With includeIndex the first column is
// the date (ds) when timestamps are present, otherwise a 1-based index.
func WriteCSV(series *Series, w io.Writer, includeIndex bool) error {
	writer := bufio.NewWriter(w)
	withDates := series.HasTimestamps()

	header := "y\n"
	if includeIndex && withDates {
		header = "ds,y\n"
	} else if includeIndex {
		header = "index,y\n"
	}
	if _, err := writer.WriteString(header); err != nil {
		return err
	}

	for i, v := range series.Values {
		var line strings.Builder
		if includeIndex {
			if withDates {
				line.WriteString(series.Timestamps[i].Format("2006-01-02"))
			} else {
				line.WriteString(strconv.Itoa(i + 1))
			}
			line.WriteByte(',')
		}
		line.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		line.WriteByte('\n')
		if _, err := writer.WriteString(line.String()); err != nil {
			return err
		}
	}

	return writer.Flush()
}
