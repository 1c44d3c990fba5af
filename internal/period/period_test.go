package period

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vypiska-dev/vypiska/internal/model"
)

// Mid-August reference point: inside Q3.
var now = time.Date(2026, time.August, 15, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRange_Presets(t *testing.T) {
	tests := []struct {
		preset Preset
		start  time.Time
		end    time.Time
	}{
		{PresetToday, day(2026, time.August, 15), day(2026, time.August, 15)},
		{PresetWeek, day(2026, time.August, 9), day(2026, time.August, 15)},
		{PresetMonth, day(2026, time.August, 1), day(2026, time.August, 15)},
		{PresetQuarter, day(2026, time.July, 1), day(2026, time.August, 15)},
		{PresetLastQuarter, day(2026, time.April, 1), day(2026, time.June, 30)},
		{PresetPreviousQuarter, day(2026, time.January, 1), day(2026, time.March, 31)},
		{PresetYear, day(2026, time.January, 1), day(2026, time.August, 15)},
	}

	for _, tc := range tests {
		start, end, err := Range(tc.preset, now)
		require.NoError(t, err, "preset %s", tc.preset)
		assert.Equal(t, tc.start, start, "preset %s start", tc.preset)
		assert.Equal(t, tc.end, end, "preset %s end", tc.preset)
	}
}

func TestRange_QuartersAcrossYearBoundary(t *testing.T) {
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

	start, end, err := Range(PresetLastQuarter, feb)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.October, 1), start)
	assert.Equal(t, day(2025, time.December, 31), end)

	start, end, err = Range(PresetPreviousQuarter, feb)
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.July, 1), start)
	assert.Equal(t, day(2025, time.September, 30), end)
}

func TestRange_CustomRequiresExplicitBounds(t *testing.T) {
	_, _, err := Range(PresetCustom, now)
	assert.Error(t, err)
}

func TestRange_UnknownPreset(t *testing.T) {
	_, _, err := Range("fortnight", now)
	assert.Error(t, err)
}

func sampleTxns() []model.BankTransaction {
	days := []time.Time{
		day(2026, time.January, 5),
		day(2026, time.April, 10),
		day(2026, time.July, 1),
		day(2026, time.August, 9),
		day(2026, time.August, 15),
		day(2026, time.September, 1),
	}
	txns := make([]model.BankTransaction, len(days))
	for i, d := range days {
		txns[i] = model.BankTransaction{
			Date:   d,
			Type:   model.DirectionIncome,
			Amount: decimal.NewFromInt(int64(i + 1)),
		}
	}
	return txns
}

func TestFilter_InclusiveBounds(t *testing.T) {
	txns := sampleTxns()
	got := Filter(txns, day(2026, time.July, 1), day(2026, time.August, 15))
	require.Len(t, got, 3)
	assert.Equal(t, day(2026, time.July, 1), got[0].Date)
	assert.Equal(t, day(2026, time.August, 15), got[2].Date)
}

func TestFilter_PreservesOrder(t *testing.T) {
	txns := sampleTxns()
	got := Filter(txns, day(2026, time.January, 1), day(2026, time.December, 31))
	require.Len(t, got, len(txns))
	for i := range got {
		assert.Equal(t, txns[i].Date, got[i].Date)
	}
}

func TestFilter_IgnoresTimeOfDay(t *testing.T) {
	late := model.BankTransaction{Date: time.Date(2026, time.August, 15, 23, 59, 0, 0, time.UTC)}
	got := Filter([]model.BankTransaction{late}, day(2026, time.August, 15), day(2026, time.August, 15))
	assert.Len(t, got, 1)
}

func TestFilter_MonotonicContainment(t *testing.T) {
	txns := sampleTxns()

	month, err := FilterPreset(txns, PresetMonth, now)
	require.NoError(t, err)
	quarter, err := FilterPreset(txns, PresetQuarter, now)
	require.NoError(t, err)
	year, err := FilterPreset(txns, PresetYear, now)
	require.NoError(t, err)

	assert.Subset(t, keysOf(quarter), keysOf(month))
	assert.Subset(t, keysOf(year), keysOf(quarter))
}

func keysOf(txns []model.BankTransaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.DedupKey()
	}
	return out
}
