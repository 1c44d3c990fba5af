// Package statement parses the 1C client-bank exchange text format
// into typed statements. The format is line-oriented: a signature
// line, an account section and a sequence of payment-document
// sections, all built from Key=Value lines.
package statement

import (
	"bufio"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vypiska-dev/vypiska/internal/model"
)

// ErrInvalidFormat means the text carries no recognizable 1C exchange
// markers. It is the only hard failure the parser produces; anything
// inside a recognized document degrades to skipped lines instead.
var ErrInvalidFormat = errors.New("no 1C client-bank exchange markers found")

// Section and document delimiters of the exchange format.
const (
	markerSignature     = "1CClientBankExchange"
	markerAccountBegin  = "СекцияРасчСчет"
	markerAccountEnd    = "КонецРасчСчет"
	markerDocumentBegin = "СекцияДокумент"
	markerDocumentEnd   = "КонецДокумента"
	markerFileEnd       = "КонецФайла"
)

// Header and account-section keys.
const (
	keyAccount     = "РасчСчет"
	keyPeriodStart = "ДатаНачала"
	keyPeriodEnd   = "ДатаКонца"
	keySender      = "Отправитель"
	keyCreated     = "ДатаСоздания"
	keyOpeningRest = "НачальныйОстаток"
	keyClosingRest = "КонечныйОстаток"
)

// docBlock accumulates the raw fields of one payment-document section.
type docBlock struct {
	number           string
	date             time.Time
	hasDate          bool
	amount           decimal.Decimal
	hasAmount        bool
	payer            string
	payerINN         string
	payerAccount     string
	recipient        string
	recipientINN     string
	recipientAccount string
	debitedDate      string
	creditedDate     string
	purpose          string
}

// documentFields maps exchange-format keys to document attributes.
// Unknown keys fall through and are ignored; coercion failures are
// reported back to the caller for diagnostics.
var documentFields = map[string]func(d *docBlock, value string) error{
	"Номер": func(d *docBlock, v string) error {
		d.number = v
		return nil
	},
	"Дата": func(d *docBlock, v string) error {
		date, err := parseDate(v)
		if err != nil {
			return err
		}
		d.date, d.hasDate = date, true
		return nil
	},
	"Сумма": func(d *docBlock, v string) error {
		amount, err := parseAmount(v)
		if err != nil {
			return err
		}
		d.amount, d.hasAmount = amount, true
		return nil
	},
	"Плательщик": func(d *docBlock, v string) error {
		d.payer = cleanText(v)
		return nil
	},
	"ПлательщикИНН": func(d *docBlock, v string) error {
		d.payerINN = v
		return nil
	},
	"ПлательщикСчет": func(d *docBlock, v string) error {
		d.payerAccount = v
		return nil
	},
	"Получатель": func(d *docBlock, v string) error {
		d.recipient = cleanText(v)
		return nil
	},
	"ПолучательИНН": func(d *docBlock, v string) error {
		d.recipientINN = v
		return nil
	},
	"ПолучательСчет": func(d *docBlock, v string) error {
		d.recipientAccount = v
		return nil
	},
	"ДатаСписано": func(d *docBlock, v string) error {
		d.debitedDate = strings.TrimSpace(v)
		return nil
	},
	"ДатаПоступило": func(d *docBlock, v string) error {
		d.creditedDate = strings.TrimSpace(v)
		return nil
	},
	"НазначениеПлатежа": func(d *docBlock, v string) error {
		d.purpose = cleanText(v)
		return nil
	},
}

// Parser converts decoded exchange text into a ParsedStatement.
// The zero value is ready to use and logs through slog.Default.
type Parser struct {
	Log *slog.Logger
}

type section int

const (
	sectionNone section = iota
	sectionHeader
	sectionAccount
	sectionDocument
)

// Parse scans text block by block and returns the extracted statement.
// Lines that do not fit the Key=Value shape and documents missing a
// date or amount are dropped and counted, never fatal. The returned
// totals are computed from the extracted transactions.
func (p *Parser) Parse(text string) (*model.ParsedStatement, error) {
	if !strings.Contains(text, markerSignature) &&
		!strings.Contains(text, markerAccountBegin) &&
		!strings.Contains(text, markerDocumentBegin) {
		return nil, ErrInvalidFormat
	}

	log := p.Log
	if log == nil {
		log = slog.Default()
	}

	stmt := &model.ParsedStatement{}
	var (
		txns        []model.BankTransaction
		current     docBlock
		cur         = sectionNone
		skipped     int
		openingSeen bool
	)

	flush := func() {
		if txn, ok := current.transaction(stmt.AccountNumber); ok {
			txns = append(txns, txn)
		} else if current != (docBlock{}) {
			skipped++
			log.Warn("dropping document without date or amount",
				"document_number", current.number)
		}
		current = docBlock{}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, markerSignature):
			cur = sectionHeader
			continue
		case strings.HasPrefix(line, markerAccountBegin):
			cur = sectionAccount
			continue
		case strings.HasPrefix(line, markerAccountEnd):
			cur = sectionNone
			continue
		case strings.HasPrefix(line, markerDocumentBegin):
			flush()
			cur = sectionDocument
			continue
		case strings.HasPrefix(line, markerDocumentEnd):
			flush()
			cur = sectionNone
			continue
		case strings.HasPrefix(line, markerFileEnd):
			cur = sectionNone
			continue
		}

		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			if cur != sectionNone {
				skipped++
				log.Debug("skipping malformed line", "line", line)
			}
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch cur {
		case sectionHeader, sectionAccount:
			if err := p.headerField(stmt, key, value, cur, &openingSeen); err != nil {
				skipped++
				log.Warn("skipping malformed header field", "key", key, "error", err)
			}
		case sectionDocument:
			set, known := documentFields[key]
			if !known {
				continue
			}
			if err := set(&current, value); err != nil {
				skipped++
				log.Warn("skipping malformed document field", "key", key, "error", err)
			}
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		// Degrade to whatever was extracted before the scan stopped.
		log.Warn("statement scan stopped early", "error", err)
	}

	stmt.Transactions = txns
	stmt.TotalIncome, stmt.TotalExpense = model.ComputeTotals(txns)

	if len(txns) == 0 {
		log.Warn("statement contains no transactions", "account", stmt.AccountNumber)
	}
	log.Debug("statement parsed",
		"account", stmt.AccountNumber,
		"transactions", len(txns),
		"skipped", skipped)

	return stmt, nil
}

// headerField applies a header or account-section key. First value
// wins for the account number, period and opening balance; the
// closing balance is last-wins, matching bank exporters that repeat
// the account section.
func (p *Parser) headerField(stmt *model.ParsedStatement, key, value string, cur section, openingSeen *bool) error {
	switch key {
	case keyAccount:
		if stmt.AccountNumber == "" {
			stmt.AccountNumber = value
		}
	case keyPeriodStart:
		if !stmt.Period.Start.IsZero() {
			return nil
		}
		d, err := parseDate(value)
		if err != nil {
			return err
		}
		stmt.Period.Start = d
	case keyPeriodEnd:
		if !stmt.Period.End.IsZero() {
			return nil
		}
		d, err := parseDate(value)
		if err != nil {
			return err
		}
		stmt.Period.End = d
	case keySender:
		if cur == sectionHeader && stmt.BankName == "" {
			stmt.BankName = cleanText(value)
		}
	case keyCreated:
		if cur != sectionHeader || !stmt.CreationDate.IsZero() {
			return nil
		}
		d, err := parseDate(value)
		if err != nil {
			return err
		}
		stmt.CreationDate = d
	case keyOpeningRest:
		if *openingSeen {
			return nil
		}
		amount, err := parseAmount(value)
		if err != nil {
			return err
		}
		stmt.OpeningBalance = amount
		*openingSeen = true
	case keyClosingRest:
		amount, err := parseAmount(value)
		if err != nil {
			return err
		}
		stmt.ClosingBalance = amount
	}
	return nil
}

// transaction finalizes a document block against the statement's own
// account number. Blocks without both a date and an amount carry too
// little to be a ledger entry and are dropped.
func (d *docBlock) transaction(accountNumber string) (model.BankTransaction, bool) {
	if !d.hasDate || !d.hasAmount {
		return model.BankTransaction{}, false
	}

	txn := model.BankTransaction{
		Date:           d.date,
		DocumentNumber: d.number,
		Type:           d.direction(accountNumber),
		Amount:         d.amount.Abs(),
		Payer:          d.payer,
		PayerINN:       d.payerINN,
		Recipient:      d.recipient,
		RecipientINN:   d.recipientINN,
		Purpose:        d.purpose,
	}
	txn.Counterparty = d.counterparty(txn.Type)
	txn.ID = txn.DeriveID()
	return txn, true
}

// direction resolves income/expense relative to the statement account:
// money arriving on our account is income, leaving it is expense. The
// debited/credited date stamps serve as a fallback when the account
// fields are absent, and unknown documents default to expense.
func (d *docBlock) direction(accountNumber string) model.Direction {
	switch {
	case accountNumber != "" && d.recipientAccount == accountNumber:
		return model.DirectionIncome
	case accountNumber != "" && d.payerAccount == accountNumber:
		return model.DirectionExpense
	case d.creditedDate != "":
		return model.DirectionIncome
	case d.debitedDate != "":
		return model.DirectionExpense
	default:
		return model.DirectionExpense
	}
}

// counterparty is the opposite side of the payment: the payer for
// income, the recipient for expense, whichever is present otherwise.
func (d *docBlock) counterparty(dir model.Direction) string {
	switch {
	case dir == model.DirectionIncome && d.payer != "":
		return d.payer
	case dir == model.DirectionExpense && d.recipient != "":
		return d.recipient
	case d.payer != "":
		return d.payer
	case d.recipient != "":
		return d.recipient
	default:
		return "Не указано"
	}
}
