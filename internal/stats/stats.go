// Package stats produces income/expense rollups for reporting views.
package stats

import (
	"sort"
	"strings"

	"github.com/vypiska-dev/vypiska/internal/config"
	"github.com/vypiska-dev/vypiska/internal/model"
)

// DefaultCategory receives transactions no rule matches.
const DefaultCategory = "Прочее"

// Compute classifies each transaction with the first matching rule and
// accumulates per-category, per-day and overall income/expense sums.
// NetProfit is total income minus total expense by construction.
func Compute(txns []model.BankTransaction, rules []config.CategoryRule) model.IncomeExpenseStats {
	s := model.IncomeExpenseStats{
		ByCategory: make(map[string]model.CategoryTotals),
	}

	byDay := make(map[string]*model.DayTotals)
	for _, t := range txns {
		cat := Classify(t, rules)
		totals := s.ByCategory[cat]

		dayKey := t.Date.Format("2006-01-02")
		day, ok := byDay[dayKey]
		if !ok {
			day = &model.DayTotals{Date: t.Date}
			byDay[dayKey] = day
		}

		switch t.Type {
		case model.DirectionIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
			totals.Income = totals.Income.Add(t.Amount)
			day.Income = day.Income.Add(t.Amount)
		case model.DirectionExpense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
			totals.Expense = totals.Expense.Add(t.Amount)
			day.Expense = day.Expense.Add(t.Amount)
		}
		s.ByCategory[cat] = totals
	}

	s.NetProfit = s.TotalIncome.Sub(s.TotalExpense)

	s.ByDay = make([]model.DayTotals, 0, len(byDay))
	for _, day := range byDay {
		s.ByDay = append(s.ByDay, *day)
	}
	sort.Slice(s.ByDay, func(i, j int) bool {
		return s.ByDay[i].Date.Before(s.ByDay[j].Date)
	})

	return s
}

// Classify returns the category of the first rule with a keyword
// occurring in the transaction's purpose or counterparty
// (case-insensitive), or DefaultCategory if none match.
func Classify(t model.BankTransaction, rules []config.CategoryRule) string {
	purpose := strings.ToLower(t.Purpose)
	counterparty := strings.ToLower(t.Counterparty)

	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			if strings.Contains(purpose, kw) || strings.Contains(counterparty, kw) {
				return rule.Name
			}
		}
	}
	return DefaultCategory
}
