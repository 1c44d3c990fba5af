package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/vypiska-dev/vypiska/internal/model"
)

// Reconcile compares the statement's reported closing balance against
// the balance implied by its opening balance and computed totals,
// returning the discrepancy (reported minus computed). Bank exporters
// are trusted by default: nothing in the pipeline enforces a zero
// discrepancy, this check exists for callers that want the warning.
func Reconcile(s *model.ParsedStatement) decimal.Decimal {
	computed := s.OpeningBalance.Add(s.TotalIncome).Sub(s.TotalExpense)
	return s.ClosingBalance.Sub(computed)
}
