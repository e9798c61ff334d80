package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/AydenZK/fuel-price-fcast/stats"
	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

var (
	lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	bandColor = color.RGBA{R: 31, G: 119, B: 180, A: 48}
	markColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// points pairs values with the series' x positions, skipping non-finite
// values. Timestamps become Unix seconds.
func points(s *timeseries.Series, values []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		x := float64(i)
		if s.HasTimestamps() {
			x = float64(s.Timestamps[i].Unix())
		}
		xys = append(xys, plotter.XY{X: x, Y: v})
	}
	return xys
}

func timeAxis(p *plot.Plot, s *timeseries.Series) {
	if s.HasTimestamps() {
		p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
		return
	}
	p.X.Label.Text = "Index"
}

// addLine plots values against the series positions. Plots with no finite
// values are left empty.
func addLine(p *plot.Plot, s *timeseries.Series, values []float64) error {
	xys := points(s, values)
	timeAxis(p, s)
	if len(xys) == 0 {
		return nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.LineStyle.Color = lineColor
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)
	return nil
}

func addScatter(p *plot.Plot, s *timeseries.Series, values []float64) error {
	xys := points(s, values)
	timeAxis(p, s)
	if len(xys) == 0 {
		return nil
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = lineColor
	sc.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(sc)
	return nil
}

// addACF draws ACF bars for lags 0..maxLag with the Bartlett band at level
// 1-alpha. Lags outside the band are marked. A constant series has no ACF and
// gets an annotated empty plot.
func addACF(p *plot.Plot, s *timeseries.Series, maxLag int, alpha float64) error {
	p.Title.Text = "Autocorrelation"
	p.X.Label.Text = "Lag"

	res := stats.ACFWithConfidence(s, maxLag, alpha)
	if res == nil {
		p.Title.Text = "Autocorrelation (undefined for a constant series)"
		return nil
	}

	if len(res.Bounds) > 1 {
		band := make(plotter.XYs, 0, 2*(len(res.Bounds)-1))
		for k := 1; k < len(res.Bounds); k++ {
			band = append(band, plotter.XY{X: float64(k), Y: res.Bounds[k]})
		}
		for k := len(res.Bounds) - 1; k >= 1; k-- {
			band = append(band, plotter.XY{X: float64(k), Y: -res.Bounds[k]})
		}
		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return err
		}
		poly.Color = bandColor
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	bars, err := plotter.NewBarChart(plotter.Values(res.Values), vg.Points(3))
	if err != nil {
		return err
	}
	bars.Color = lineColor
	bars.LineStyle.Width = 0
	p.Add(bars)

	if marks := significantMarks(res); len(marks) > 0 {
		sc, err := plotter.NewScatter(marks)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = markColor
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
	}

	p.Add(plotter.NewFunction(func(float64) float64 { return 0 }))
	p.Y.Min, p.Y.Max = -1, 1
	return nil
}

// significantMarks places a point on each lag whose ACF leaves the band.
func significantMarks(res *stats.ACFResult) plotter.XYs {
	lags := stats.SignificantLags(res.Values, res.Bounds)
	marks := make(plotter.XYs, len(lags))
	for i, k := range lags {
		marks[i] = plotter.XY{X: float64(k), Y: res.Values[k]}
	}
	return marks
}
