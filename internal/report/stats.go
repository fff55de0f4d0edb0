package report

import (
	"time"

	"ledgerstats/internal/core"
)

// recentMonths is the size of the full-weight window: buckets younger than
// this count fully, older buckets decay harmonically.
const recentMonths = 12

// monthlyWeights builds the global weight sequence for n month buckets, where
// index i is "i months before the processing date". The most recent twelve
// months weigh 1, after that weight i is 1/(1+(i-12)).
func monthlyWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		if i < recentMonths {
			weights[i] = 1
		} else {
			weights[i] = 1 / float64(1+(i-recentMonths))
		}
	}
	return weights
}

// CalculateCategoryStats buckets normalized rows by category and elapsed month
// and derives, per active category, the simple and recency-weighted monthly
// averages plus the budget target parsed from the category name.
//
// Bucket index is always months-elapsed from the transaction date to now
// (0 = current month), and the weight sequence is global: it spans from the
// oldest transaction of any category, so a category's buckets line up with the
// weights by age alone. A category with no transactions yields zero averages.
func CalculateCategoryStats(categories map[string]core.Category, rows []core.TransactionRow, now time.Time) map[string]core.CategoryStats {
	oldestEver := now
	for _, t := range rows {
		if t.Date.Before(oldestEver) {
			oldestEver = t.Date.Time
		}
	}
	weights := monthlyWeights(monthsAgo(core.Date{Time: oldestEver}, now) + 1)

	stats := make(map[string]core.CategoryStats)
	for _, c := range categories {
		if !c.Active {
			continue
		}

		oldest := now
		for _, t := range rows {
			if t.Category == c.Name && t.Date.Before(oldest) {
				oldest = t.Date.Time
			}
		}
		months := make([]float64, monthsAgo(core.Date{Time: oldest}, now)+1)
		for _, t := range rows {
			if t.Category != c.Name {
				continue
			}
			idx := monthsAgo(t.Date, now)
			if idx < 0 {
				// Future-dated transactions count in the current month.
				idx = 0
			}
			months[idx] += t.Amount
		}

		var sum, weightedSum, weightSum float64
		for i, m := range months {
			sum += m
			weightedSum += m * weights[i]
			weightSum += weights[i]
		}
		var weighted float64
		if weightSum > 0 {
			weighted = weightedSum / weightSum
		}
		budgeted, _ := ParseBudgetTarget(c.Name)

		stats[c.Name] = core.CategoryStats{
			Name:            c.Name,
			Group:           c.Group,
			Average:         sum / float64(len(months)),
			WeightedAverage: weighted,
			Budgeted:        budgeted,
		}
	}
	return stats
}
