// Package aggregate holds the pure numeric helpers behind the
// reporting endpoints. Everything here is deterministic and
// database-free so report math can be tested in isolation.
package aggregate

import (
	"fmt"
	"math"
	"time"
)

// PercentChange formats the month-over-month delta between two values.
// A zero baseline reports "+100%" for any growth and "0.00%" when both
// values are zero.
func PercentChange(current, previous float64) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0.00%"
	}
	return fmt.Sprintf("%+.1f%%", (current-previous)/previous*100)
}

// Sum totals amount over the items keep admits. A nil keep admits
// everything.
func Sum[T any](items []T, amount func(T) float64, keep func(T) bool) float64 {
	var total float64
	for _, item := range items {
		if keep != nil && !keep(item) {
			continue
		}
		total += amount(item)
	}
	return total
}

// Group is one slice of a Breakdown.
type Group struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Percent float64 `json:"percent"`
}

// Breakdown groups items by key and reports each group's share of the
// grand total. Groups of a zero grand total all report 0 percent.
func Breakdown[T any, K comparable](items []T, key func(T) K, amount func(T) float64) map[K]Group {
	groups := make(map[K]Group)
	var grand float64
	for _, item := range items {
		k := key(item)
		g := groups[k]
		g.Count++
		g.Total += amount(item)
		groups[k] = g
		grand += amount(item)
	}

	for k, g := range groups {
		if grand != 0 {
			g.Percent = g.Total / grand * 100
		}
		groups[k] = g
	}
	return groups
}

// MonthWindow is one half-open monthly bucket, [Start, End).
type MonthWindow struct {
	Label string
	Start time.Time
	End   time.Time
}

// MonthlyBuckets returns exactly monthsBack calendar months ending
// with the month of now, oldest first.
func MonthlyBuckets(monthsBack int, now time.Time) []MonthWindow {
	if monthsBack <= 0 {
		return []MonthWindow{}
	}

	windows := make([]MonthWindow, 0, monthsBack)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthsBack - 1), 0)
	for i := 0; i < monthsBack; i++ {
		start := first.AddDate(0, i, 0)
		windows = append(windows, MonthWindow{
			Label: start.Month().String()[:3],
			Start: start,
			End:   start.AddDate(0, 1, 0),
		})
	}
	return windows
}

// Contains reports whether t falls inside the window.
func (w MonthWindow) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && t.Before(w.End)
}

// CompletionPercent reports how much of a budget has been paid off,
// rounded to the nearest whole percent. Zero budgets report 0.
func CompletionPercent(budget, paid float64) float64 {
	if budget <= 0 {
		return 0
	}
	return math.Round(paid / budget * 100)
}

// ProfitMargin returns net profit as a share of revenue, 0 when there
// is no revenue.
func ProfitMargin(revenue, expenses float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return (revenue - expenses) / revenue * 100
}
