package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentChange(t *testing.T) {
	assert.Equal(t, "+50.0%", PercentChange(150, 100))
	assert.Equal(t, "-50.0%", PercentChange(50, 100))
	assert.Equal(t, "+0.0%", PercentChange(100, 100))
	assert.Equal(t, "+100%", PercentChange(42, 0))
	assert.Equal(t, "0.00%", PercentChange(0, 0))
}

type row struct {
	kind   string
	amount float64
}

func TestSumWithFilter(t *testing.T) {
	rows := []row{{"a", 100}, {"b", 50}, {"a", 25}}

	total := Sum(rows, func(r row) float64 { return r.amount }, nil)
	assert.InDelta(t, 175.0, total, 1e-9)

	onlyA := Sum(rows, func(r row) float64 { return r.amount }, func(r row) bool { return r.kind == "a" })
	assert.InDelta(t, 125.0, onlyA, 1e-9)
}

func TestBreakdown(t *testing.T) {
	rows := []row{{"SOFTWARE", 600}, {"TRAVEL", 300}, {"TRAVEL", 100}}

	groups := Breakdown(rows, func(r row) string { return r.kind }, func(r row) float64 { return r.amount })
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups["SOFTWARE"].Count)
	assert.Equal(t, 2, groups["TRAVEL"].Count)
	assert.InDelta(t, 60.0, groups["SOFTWARE"].Percent, 1e-9)
	assert.InDelta(t, 40.0, groups["TRAVEL"].Percent, 1e-9)
}

func TestBreakdownZeroTotal(t *testing.T) {
	rows := []row{{"A", 0}, {"B", 0}}

	groups := Breakdown(rows, func(r row) string { return r.kind }, func(r row) float64 { return r.amount })
	assert.InDelta(t, 0.0, groups["A"].Percent, 1e-9)
	assert.InDelta(t, 0.0, groups["B"].Percent, 1e-9)
}

func TestBreakdownEmptyInput(t *testing.T) {
	groups := Breakdown(nil, func(r row) string { return r.kind }, func(r row) float64 { return r.amount })
	assert.Empty(t, groups)
}

func TestMonthlyBuckets(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	windows := MonthlyBuckets(6, now)
	require.Len(t, windows, 6)

	assert.Equal(t, "Oct", windows[0].Label)
	assert.Equal(t, "Mar", windows[5].Label)
	assert.Equal(t, time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), windows[0].Start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), windows[5].Start)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), windows[5].End)

	// Windows are half-open: the boundary instant belongs to the next month.
	boundary := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, windows[4].Contains(boundary))
	assert.True(t, windows[5].Contains(boundary))
}

func TestCompletionPercent(t *testing.T) {
	assert.InDelta(t, 50.0, CompletionPercent(1000, 500), 1e-9)
	assert.InDelta(t, 33.0, CompletionPercent(300, 100), 1e-9)
	assert.InDelta(t, 0.0, CompletionPercent(0, 100), 1e-9)
}

func TestProfitMargin(t *testing.T) {
	assert.InDelta(t, 40.0, ProfitMargin(1000, 600), 1e-9)
	assert.InDelta(t, 0.0, ProfitMargin(0, 500), 1e-9)
}
