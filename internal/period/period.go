// Package period selects transactions inside named or explicit time
// windows. All windows are whole calendar days, inclusive on both
// ends.
package period

import (
	"fmt"
	"time"

	"github.com/vypiska-dev/vypiska/internal/model"
)

// Preset names a reporting window relative to a reference day.
type Preset string

const (
	// PresetToday is the current calendar day.
	PresetToday Preset = "today"
	// PresetWeek is the 7 calendar days ending today, inclusive.
	PresetWeek Preset = "week"
	// PresetMonth is the current calendar month.
	PresetMonth Preset = "month"
	// PresetQuarter is the current calendar quarter.
	PresetQuarter Preset = "quarter"
	// PresetLastQuarter is the most recently completed calendar quarter.
	PresetLastQuarter Preset = "lastQuarter"
	// PresetPreviousQuarter is the quarter immediately before PresetLastQuarter.
	PresetPreviousQuarter Preset = "previousQuarter"
	// PresetYear is the current calendar year.
	PresetYear Preset = "year"
	// PresetCustom is an explicit inclusive range; both bounds are
	// supplied by the caller and Range rejects it.
	PresetCustom Preset = "custom"
)

// Range computes the inclusive [start, end] window for a preset
// relative to now. PresetCustom has no derivable bounds and returns an
// error; callers pass their explicit range straight to Filter.
func Range(preset Preset, now time.Time) (start, end time.Time, err error) {
	today := truncateDay(now)

	switch preset {
	case PresetToday:
		return today, today, nil
	case PresetWeek:
		return today.AddDate(0, 0, -6), today, nil
	case PresetMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, today, nil
	case PresetQuarter:
		return quarterStart(today, 0), today, nil
	case PresetLastQuarter:
		start = quarterStart(today, -1)
		return start, quarterEnd(start), nil
	case PresetPreviousQuarter:
		start = quarterStart(today, -2)
		return start, quarterEnd(start), nil
	case PresetYear:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return start, today, nil
	case PresetCustom:
		return time.Time{}, time.Time{}, fmt.Errorf("custom period requires explicit start and end dates")
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period preset %q", preset)
	}
}

// Filter returns the subsequence of txns whose dates fall within
// [start, end], inclusive on both ends, at day granularity.
func Filter(txns []model.BankTransaction, start, end time.Time) []model.BankTransaction {
	start, end = truncateDay(start), truncateDay(end)

	var out []model.BankTransaction
	for _, t := range txns {
		d := truncateDay(t.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterPreset combines Range and Filter for the non-custom presets.
func FilterPreset(txns []model.BankTransaction, preset Preset, now time.Time) ([]model.BankTransaction, error) {
	start, end, err := Range(preset, now)
	if err != nil {
		return nil, err
	}
	return Filter(txns, start, end), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// quarterStart returns the first day of the quarter `offset` quarters
// away from the one containing day (offset <= 0).
func quarterStart(day time.Time, offset int) time.Time {
	q := (int(day.Month()) - 1) / 3
	start := time.Date(day.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, day.Location())
	return start.AddDate(0, offset*3, 0)
}

// quarterEnd returns the last day of the quarter starting at start.
func quarterEnd(start time.Time) time.Time {
	return start.AddDate(0, 3, -1)
}
