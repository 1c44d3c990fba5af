package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vypiska-dev/vypiska/internal/decode"
	"github.com/vypiska-dev/vypiska/internal/ledger"
	"github.com/vypiska-dev/vypiska/internal/model"
	"github.com/vypiska-dev/vypiska/internal/statement"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Parse statement exports and print the merged ledger summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := loadStatements(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account:  %s", merged.AccountNumber)
			if merged.BankName != "" {
				fmt.Fprintf(out, " (%s)", merged.BankName)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Period:   %s - %s\n",
				merged.Period.Start.Format("02.01.2006"),
				merged.Period.End.Format("02.01.2006"))
			fmt.Fprintf(out, "Opening:  %s\n", merged.OpeningBalance.StringFixed(2))
			fmt.Fprintf(out, "Closing:  %s\n", merged.ClosingBalance.StringFixed(2))
			fmt.Fprintf(out, "Income:   %s\n", merged.TotalIncome.StringFixed(2))
			fmt.Fprintf(out, "Expense:  %s\n", merged.TotalExpense.StringFixed(2))
			fmt.Fprintf(out, "Entries:  %d\n", len(merged.Transactions))

			if len(merged.Transactions) == 0 {
				fmt.Fprintln(out, "Warning: no transactions found in the uploaded files")
			}
			if diff := ledger.Reconcile(merged); !diff.IsZero() {
				fmt.Fprintf(out, "Warning: closing balance differs from computed by %s\n",
					diff.StringFixed(2))
			}
			return nil
		},
	}
}

// loadStatements decodes, parses and merges the given export files.
func loadStatements(paths []string) (*model.ParsedStatement, error) {
	parser := &statement.Parser{}

	var stmts []*model.ParsedStatement
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		decoded := decode.Resolve(data, filepath.Base(path))
		slog.Debug("decoded upload", "file", path, "encoding", decoded.Encoding)

		stmt, err := parser.Parse(decoded.Text)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		stmts = append(stmts, stmt)
	}

	merged, err := ledger.Merge(stmts)
	if err != nil {
		return nil, fmt.Errorf("merging statements: %w", err)
	}
	return merged, nil
}
