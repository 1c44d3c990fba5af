// Package ledger combines parsed statements into one deduplicated,
// chronologically ordered transaction set.
package ledger

import (
	"errors"
	"sort"

	"github.com/vypiska-dev/vypiska/internal/model"
)

// ErrNoStatements is returned when Merge receives no input.
var ErrNoStatements = errors.New("no statements to merge")

// Merge concatenates the transactions of all statements in input
// order, drops duplicates by their composite identity key (first
// occurrence wins), sorts by date ascending and recomputes totals.
// The opening balance comes from the statement with the earliest
// period start, the closing balance from the one with the latest
// period end; account number and bank name come from the first input,
// which is assumed homogeneous.
func Merge(stmts []*model.ParsedStatement) (*model.ParsedStatement, error) {
	if len(stmts) == 0 {
		return nil, ErrNoStatements
	}

	seen := make(map[string]bool)
	var txns []model.BankTransaction
	for _, s := range stmts {
		for _, t := range s.Transactions {
			key := t.DedupKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			txns = append(txns, t)
		}
	}

	// Stable sort keeps the first-seen order among same-day entries.
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Before(txns[j].Date)
	})

	earliest, latest := stmts[0], stmts[0]
	for _, s := range stmts[1:] {
		if s.Period.Start.Before(earliest.Period.Start) {
			earliest = s
		}
		if s.Period.End.After(latest.Period.End) {
			latest = s
		}
	}

	merged := &model.ParsedStatement{
		AccountNumber:  stmts[0].AccountNumber,
		BankName:       stmts[0].BankName,
		Period:         model.Period{Start: earliest.Period.Start, End: latest.Period.End},
		OpeningBalance: earliest.OpeningBalance,
		ClosingBalance: latest.ClosingBalance,
		Transactions:   txns,
		CreationDate:   latest.CreationDate,
	}
	merged.TotalIncome, merged.TotalExpense = model.ComputeTotals(txns)
	return merged, nil
}
