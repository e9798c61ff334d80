package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/AydenZK/fuel-price-fcast/advisor"
	"github.com/AydenZK/fuel-price-fcast/stats"
)

var (
	ndiffsJSON           bool
	ndiffsSeasonalPeriod int
	ndiffsTests          []string
)

var ndiffsCmd = &cobra.Command{
	Use:   "ndiffs <csv>",
	Short: "Recommend a differencing order with ADF, KPSS and PP",
	Long: `Run the Augmented Dickey-Fuller, KPSS and Phillips-Perron tests on the
series and report how many first differences each one suggests.

The three answers are independent and may disagree. A test that cannot run
is reported as n/a and the command exits with an error after printing the
other results. --test limits the run to the named tests; in JSON output the
tests left out are reported as -1.`,
	Example: `  tsadvisor ndiffs prices.csv
  tsadvisor ndiffs prices.csv --column price --json
  tsadvisor ndiffs prices.csv --seasonal-period 7
  tsadvisor ndiffs prices.csv --test kpss,pp`,
	Args: cobra.ExactArgs(1),
	RunE: runNDiffs,
}

func init() {
	ndiffsCmd.Flags().BoolVar(&ndiffsJSON, "json", false, "Print the recommendation as JSON")
	ndiffsCmd.Flags().IntVar(&ndiffsSeasonalPeriod, "seasonal-period", 0, "Also report seasonal differences for this period")
	ndiffsCmd.Flags().StringSliceVar(&ndiffsTests, "test", nil, "Run only these tests (adf, kpss, pp)")

	RootCmd.AddCommand(ndiffsCmd)
}

type ndiffsReport struct {
	advisor.Recommendation
	Seasonal *int     `json:"seasonal,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// selectedTests parses the --test values. No values selects every test.
func selectedTests(names []string) ([]stats.TestType, error) {
	var tests []stats.TestType
	for _, name := range names {
		test, err := stats.ParseTestType(name)
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}
	return tests, nil
}

func runNDiffs(cmd *cobra.Command, args []string) error {
	tests, err := selectedTests(ndiffsTests)
	if err != nil {
		return err
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

	adv := advisor.New(append(rt.cfg.AdvisorOptions(rt.log), advisor.WithTests(tests...))...)
	rec, recErr := adv.Recommend(cmd.Context(), series)

	report := ndiffsReport{Recommendation: rec}
	for _, e := range multierr.Errors(recErr) {
		report.Errors = append(report.Errors, e.Error())
	}

	period := ndiffsSeasonalPeriod
	if period == 0 {
		period = rt.cfg.Analysis.SeasonalPeriod
	}
	if period > 0 {
		sd, err := advisor.Seasonal(series, period)
		if err != nil {
			recErr = multierr.Append(recErr, fmt.Errorf("seasonal differences: %w", err))
		} else {
			report.Seasonal = &sd
		}
	}

	out := cmd.OutOrStdout()
	if ndiffsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		if err := advisor.Fprint(out, rec, tests...); err != nil {
			return err
		}
		if report.Seasonal != nil {
			fmt.Fprintf(out, "Seasonal (period %d): %d\n", period, *report.Seasonal)
		}
	}

	return recErr
}
