package charts

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

var errNoData = errors.New("series has no finite observations")

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Seasonality returns two figures for a dated series. The first shows the
// monthly mean of every year as one line per year next to a box plot per
// year; the second shows box plots by month and by day of week. Missing
// values are dropped.
func Seasonality(series *timeseries.Series, size Size) ([]*Figure, error) {
	if !series.HasTimestamps() {
		return nil, timeseries.ErrNoTimestamps
	}
	s := series.DropMissing()
	if s.Len() == 0 {
		return nil, errNoData
	}

	profile := newFigure("", 1, 2, size)
	if err := yearlyProfile(profile.Plots[0][0], s); err != nil {
		return nil, fmt.Errorf("yearly profile: %w", err)
	}
	if err := boxesByYear(profile.Plots[0][1], s); err != nil {
		return nil, fmt.Errorf("year box plot: %w", err)
	}

	calendar := newFigure("", 1, 2, size)
	if err := boxesByMonth(calendar.Plots[0][0], s); err != nil {
		return nil, fmt.Errorf("month box plot: %w", err)
	}
	if err := boxesByWeekday(calendar.Plots[0][1], s); err != nil {
		return nil, fmt.Errorf("weekday box plot: %w", err)
	}

	return []*Figure{profile, calendar}, nil
}

type yearMonth struct {
	year  int
	month time.Month
}

func yearlyProfile(p *plot.Plot, s *timeseries.Series) error {
	keys, groups, err := timeseries.GroupBy(s, func(t time.Time) yearMonth {
		return yearMonth{year: t.Year(), month: t.Month()}
	})
	if err != nil {
		return err
	}

	lines := make(map[int]plotter.XYs)
	var years []int
	for _, k := range keys {
		if _, ok := lines[k.year]; !ok {
			years = append(years, k.year)
		}
		lines[k.year] = append(lines[k.year], plotter.XY{
			X: float64(k.month),
			Y: stat.Mean(groups[k], nil),
		})
	}
	sort.Ints(years)

	colors := YearPalette(len(years)).Colors()
	for i, year := range years {
		xys := lines[year]
		sort.Slice(xys, func(a, b int) bool { return xys[a].X < xys[b].X })

		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.LineStyle.Color = colors[i]
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(strconv.Itoa(year), l)
	}

	ticks := make([]plot.Tick, 12)
	for m := time.January; m <= time.December; m++ {
		ticks[m-1] = plot.Tick{Value: float64(m), Label: m.String()[:3]}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min, p.X.Max = 0.5, 12.5
	p.Title.Text = "Monthly mean by year"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = s.Name
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return nil
}

func boxesByYear(p *plot.Plot, s *timeseries.Series) error {
	years, err := s.Years()
	if err != nil {
		return err
	}
	byYear := make(map[int][]float64)
	for i, y := range years {
		byYear[y] = append(byYear[y], s.Values[i])
	}

	keys := make([]int, 0, len(byYear))
	for y := range byYear {
		keys = append(keys, y)
	}
	sort.Ints(keys)

	labels := make([]string, len(keys))
	groups := make([][]float64, len(keys))
	for i, y := range keys {
		labels[i] = strconv.Itoa(y)
		groups[i] = byYear[y]
	}

	p.Title.Text = "Year-wise box plot"
	p.X.Label.Text = "Year"
	return addBoxes(p, labels, groups)
}

func boxesByMonth(p *plot.Plot, s *timeseries.Series) error {
	months, err := s.Months()
	if err != nil {
		return err
	}
	groups := make([][]float64, 12)
	for i, m := range months {
		groups[m-1] = append(groups[m-1], s.Values[i])
	}
	labels := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		labels[m-1] = m.String()[:3]
	}

	p.Title.Text = "Month-wise box plot"
	p.X.Label.Text = "Month"
	return addBoxes(p, labels, groups)
}

func boxesByWeekday(p *plot.Plot, s *timeseries.Series) error {
	days, err := s.Weekdays()
	if err != nil {
		return err
	}
	groups := make([][]float64, 7)
	for i, d := range days {
		// Monday first
		idx := (int(d) + 6) % 7
		groups[idx] = append(groups[idx], s.Values[i])
	}

	p.Title.Text = "Day-of-week box plot"
	p.X.Label.Text = "Day of week"
	return addBoxes(p, weekdayLabels, groups)
}

// addBoxes adds one box per non-empty group and labels the x axis.
func addBoxes(p *plot.Plot, labels []string, groups [][]float64) error {
	var names []string
	for i, vals := range groups {
		if len(vals) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(len(names)), plotter.Values(vals))
		if err != nil {
			return err
		}
		p.Add(box)
		names = append(names, labels[i])
	}
	if len(names) == 0 {
		return errNoData
	}
	p.NominalX(names...)
	return nil
}
