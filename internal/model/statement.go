// Package model defines the typed data structures produced by the
// statement ingestion pipeline.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a transaction relative to the statement's account.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// BankTransaction is a single payment document extracted from a statement.
// Amount is always non-negative; Direction carries the sign.
type BankTransaction struct {
	ID             string
	Date           time.Time
	DocumentNumber string
	Type           Direction
	Amount         decimal.Decimal
	Counterparty   string
	Payer          string
	PayerINN       string
	Recipient      string
	RecipientINN   string
	Purpose        string
}

// DedupKey renders the composite identity used for duplicate detection.
// Two transactions with equal keys are the same real-world transaction.
func (t BankTransaction) DedupKey() string {
	return fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.DocumentNumber,
		t.Amount.StringFixed(2),
		t.Counterparty)
}

// DeriveID returns a short content-derived transaction ID. It is stable
// across re-parses of the same document and is not authoritative.
func (t BankTransaction) DeriveID() string {
	sum := sha256.Sum256([]byte(t.DedupKey()))
	return fmt.Sprintf("%x", sum[:8])
}

// Period is an inclusive date range covered by a statement.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsedStatement is the immutable result of parsing one uploaded file.
// TotalIncome and TotalExpense are always computed from Transactions,
// never taken from the source document's own summary fields.
type ParsedStatement struct {
	AccountNumber  string
	Period         Period
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	Transactions   []BankTransaction
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	BankName       string
	CreationDate   time.Time
}

// CategoryTotals holds per-category income and expense sums.
type CategoryTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DayTotals holds income and expense sums for a single calendar day.
type DayTotals struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// IncomeExpenseStats is the reporting rollup over a transaction set.
type IncomeExpenseStats struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetProfit    decimal.Decimal
	ByCategory   map[string]CategoryTotals
	ByDay        []DayTotals
}

// ComputeTotals sums transaction amounts by direction.
func ComputeTotals(txns []BankTransaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case DirectionIncome:
			income = income.Add(t.Amount)
		case DirectionExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}
