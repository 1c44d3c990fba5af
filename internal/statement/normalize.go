package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateFormat = "02.01.2006"

// parseDate converts a day.month.year date string to a time.Time.
// Slash separators are tolerated; some exporters use them.
func parseDate(s string) (time.Time, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/", ".")
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return d, nil
}

// parseAmount converts an amount string to a decimal. Exporters use
// either comma or period as the decimal separator and sometimes group
// digits with spaces.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, s)
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return amount, nil
}

// cleanText trims surrounding whitespace and collapses internal runs.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
