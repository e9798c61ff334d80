package charts

import (
	"fmt"

	"github.com/AydenZK/fuel-price-fcast/stats"
	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

// DecompositionModels lists the models plotted by Decomposition, in order.
var DecompositionModels = []stats.DecompositionModel{stats.Multiplicative, stats.Additive}

// Decomposition returns one figure per model, multiplicative first, each
// with observed, trend, seasonal and residual panels stacked vertically.
func Decomposition(series *timeseries.Series, period int, size Size) ([]*Figure, error) {
	figs := make([]*Figure, 0, len(DecompositionModels))
	for _, model := range DecompositionModels {
		result, err := stats.Decompose(series, period, model)
		if err != nil {
			return nil, fmt.Errorf("%s decomposition: %w", model, err)
		}
		fig, err := DecompositionFigure(result, size)
		if err != nil {
			return nil, err
		}
		figs = append(figs, fig)
	}
	return figs, nil
}

// DecompositionFigure plots an existing decomposition.
func DecompositionFigure(result *stats.DecompositionResult, size Size) (*Figure, error) {
	title := "Additive Decomposition"
	if result.Model == stats.Multiplicative {
		title = "Multiplicative Decomposition"
	}
	fig := newFigure(title, 4, 1, size)

	panels := []struct {
		label  string
		series *timeseries.Series
	}{
		{"Observed", result.Original},
		{"Trend", result.Trend},
		{"Seasonal", result.Seasonal},
		{"Residual", result.Residual},
	}

	for i, panel := range panels {
		p := fig.Plots[i][0]
		p.Y.Label.Text = panel.label

		var err error
		if panel.label == "Residual" {
			err = addScatter(p, result.Original, panel.series.Values)
		} else {
			err = addLine(p, result.Original, panel.series.Values)
		}
		if err != nil {
			return nil, fmt.Errorf("%s panel: %w", panel.label, err)
		}
		if i < len(panels)-1 {
			p.X.Label.Text = ""
		}
	}
	return fig, nil
}
