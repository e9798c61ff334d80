package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AydenZK/fuel-price-fcast/timeseries"
)

var (
	diffOrder    int
	diffSeasonal int
	diffOut      string
)

var diffCmd = &cobra.Command{
	Use:   "diff <csv>",
	Short: "Write the differenced series as CSV",
	Long: `Difference the series and write it as CSV with columns ds,y (or y when
the input has no dates). Without --out the result goes to stdout.`,
	Example: `  tsadvisor diff prices.csv --order 1 --out prices_diff.csv
  tsadvisor diff prices.csv --seasonal 7`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().IntVar(&diffOrder, "order", 1, "Number of first differences")
	diffCmd.Flags().IntVar(&diffSeasonal, "seasonal", 0, "Seasonal period to difference at before first differences")
	diffCmd.Flags().StringVar(&diffOut, "out", "", "Output CSV file (default: stdout)")

	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if diffOrder < 0 {
		return fmt.Errorf("invalid order: %d (must not be negative)", diffOrder)
	}
	if diffSeasonal < 0 {
		return fmt.Errorf("invalid seasonal period: %d (must not be negative)", diffSeasonal)
	}

	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.log.Sync() //nolint:errcheck

	series, err := rt.loadSeries(args[0])
	if err != nil {
		return err
	}

	if diffSeasonal > 0 {
		series = series.SeasonalDiff(diffSeasonal)
	}
	result := series.DiffN(diffOrder)
	if result.Len() == 0 {
		return fmt.Errorf("series of %d observations is too short to difference", series.Len())
	}

	if diffOut == "" {
		return timeseries.WriteCSV(result, cmd.OutOrStdout(), result.HasTimestamps())
	}
	if err := timeseries.SaveCSV(result, diffOut, result.HasTimestamps()); err != nil {
		return fmt.Errorf("failed to write %s: %w", diffOut, err)
	}
	rt.log.Infow("wrote differenced series", "path", diffOut, "order", diffOrder, "observations", result.Len())
	return nil
}
