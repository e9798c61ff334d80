package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AydenZK/fuel-price-fcast/charts"
)

var decompositionPeriod int

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render exploratory charts as PNG files",
	Long: `Render charts for a CSV series into the output directory
(output.dir in the config, or TSADVISOR_OUTPUT_DIR).

Figure size and resolution come from the figure section of the config.`,
}

var plotSeasonalityCmd = &cobra.Command{
	Use:   "seasonality <csv>",
	Short: "Monthly profile by year and calendar box plots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderFigures(cmd, args[0], "seasonality", func(rt *runtime) ([]*charts.Figure, error) {
			series, err := rt.loadSeries(args[0])
			if err != nil {
				return nil, err
			}
			return charts.Seasonality(series, rt.cfg.FigureSize())
		})
	},
}

var plotDecompositionCmd = &cobra.Command{
	Use:   "decomposition <csv>",
	Short: "Multiplicative and additive seasonal decomposition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderFigures(cmd, args[0], "decomposition", func(rt *runtime) ([]*charts.Figure, error) {
			series, err := rt.loadSeriesWithGaps(args[0])
			if err != nil {
				return nil, err
			}
			period := rt.cfg.Decomposition.Period
			if decompositionPeriod > 0 {
				period = decompositionPeriod
			}
			rt.log.Debugw("decomposing", "period", period, "observations", series.Len())
			return charts.Decomposition(series, period, rt.cfg.FigureSize())
		})
	},
}

var plotDifferencingCmd = &cobra.Command{
	Use:   "differencing <csv>",
	Short: "Series and ACF for the original, 1st and 2nd differences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderFigures(cmd, args[0], "differencing", func(rt *runtime) ([]*charts.Figure, error) {
			series, err := rt.loadSeries(args[0])
			if err != nil {
				return nil, err
			}
			fig, err := charts.Differencing(series, rt.cfg.FigureSize())
			if err != nil {
				return nil, err
			}
			return []*charts.Figure{fig}, nil
		})
	},
}

func init() {
	plotDecompositionCmd.Flags().IntVar(&decompositionPeriod, "period", 0, "Seasonal period (default from config: 365)")

	plotCmd.AddCommand(plotSeasonalityCmd)
	plotCmd.AddCommand(plotDecompositionCmd)
	plotCmd.AddCommand(plotDifferencingCmd)
	RootCmd.AddCommand(plotCmd)
}

// renderFigures builds the figures and saves them as
// <output dir>/<input>-<kind>[-N].png, printing each path.
func renderFigures(cmd *cobra.Command, input, kind string, build func(*runtime) ([]*charts.Figure, error)) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.log.Sync() //nolint:errcheck

	figs, err := build(rt)
	if err != nil {
		return fmt.Errorf("%s chart: %w", kind, err)
	}

	dir := rt.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, fig := range figs {
		name := fmt.Sprintf("%s-%s.png", baseName(input), kind)
		if len(figs) > 1 {
			name = fmt.Sprintf("%s-%s-%d.png", baseName(input), kind, i+1)
		}
		path := filepath.Join(dir, name)
		if err := fig.Save(path); err != nil {
			return err
		}
		rt.log.Infow("wrote figure", "path", path, "title", fig.Title)
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
