package charts

import (
	"fmt"

	"github.com/AydenZK/fuel-price-fcast/stats"
	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// acfAlpha is the significance level of the ACF band.
const acfAlpha = 0.05

var differencingTitles = []string{
	"Original Series",
	"1st Order Differencing",
	"2nd Order Differencing",
}

// Differencing returns a 3x2 figure: the series and its ACF, then the
// first and second order differences with their ACFs. Missing values are
// dropped before differencing.
func Differencing(series *timeseries.Series, size Size) (*Figure, error) {
	s := series.DropMissing()
	if s.Len() < 3 {
		return nil, fmt.Errorf("differencing chart needs at least 3 observations, got %d", s.Len())
	}

	fig := newFigure("", len(differencingTitles), 2, size)
	for order, title := range differencingTitles {
		d := s.DiffN(order)

		left := fig.Plots[order][0]
		left.Title.Text = title
		if err := addLine(left, d, d.Values); err != nil {
			return nil, fmt.Errorf("%s: %w", title, err)
		}

		if err := addACF(fig.Plots[order][1], d, stats.DefaultACFLags(d.Len()), acfAlpha); err != nil {
			return nil, fmt.Errorf("%s ACF: %w", title, err)
		}
	}
	return fig, nil
}
