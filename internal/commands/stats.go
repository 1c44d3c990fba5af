package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vypiska-dev/vypiska/internal/config"
	"github.com/vypiska-dev/vypiska/internal/period"
	"github.com/vypiska-dev/vypiska/internal/stats"
)

const flagDateFormat = "02.01.2006"

func newStatsCommand() *cobra.Command {
	var (
		presetName string
		from       string
		to         string
		rulesPath  string
	)

	cmd := &cobra.Command{
		Use:   "stats FILE...",
		Short: "Print the income/expense breakdown for a period",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := loadStatements(args)
			if err != nil {
				return err
			}

			start, end, err := resolveWindow(presetName, from, to)
			if err != nil {
				return err
			}
			txns := period.Filter(merged.Transactions, start, end)

			rules := config.Default()
			if rulesPath != "" {
				rules, err = config.Load(rulesPath)
				if err != nil {
					return err
				}
			}

			result := stats.Compute(txns, rules.Categories)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Period:   %s - %s\n",
				start.Format(flagDateFormat), end.Format(flagDateFormat))
			fmt.Fprintf(out, "Income:   %s\n", result.TotalIncome.StringFixed(2))
			fmt.Fprintf(out, "Expense:  %s\n", result.TotalExpense.StringFixed(2))
			fmt.Fprintf(out, "Net:      %s\n", result.NetProfit.StringFixed(2))

			names := make([]string, 0, len(result.ByCategory))
			for name := range result.ByCategory {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				totals := result.ByCategory[name]
				fmt.Fprintf(out, "  %-25s +%s  -%s\n",
					name, totals.Income.StringFixed(2), totals.Expense.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&presetName, "period", string(period.PresetMonth),
		"period preset (today, week, month, quarter, lastQuarter, previousQuarter, year, custom)")
	cmd.Flags().StringVar(&from, "from", "", "custom period start (DD.MM.YYYY)")
	cmd.Flags().StringVar(&to, "to", "", "custom period end (DD.MM.YYYY)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "categorization rules file")

	return cmd
}

// resolveWindow turns the period flags into an inclusive date range.
func resolveWindow(presetName, from, to string) (start, end time.Time, err error) {
	if period.Preset(presetName) != period.PresetCustom {
		return period.Range(period.Preset(presetName), time.Now())
	}

	if from == "" || to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("custom period requires --from and --to")
	}
	start, err = time.Parse(flagDateFormat, from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing --from: %w", err)
	}
	end, err = time.Parse(flagDateFormat, to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing --to: %w", err)
	}
	return start, end, nil
}
