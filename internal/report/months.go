package report

import (
	"time"

	"ledgerstats/internal/core"
)

// monthsAgo returns the number of whole calendar months from d back to ref
// (0 = same month as ref). Day-of-month is ignored on purpose: bucketing and
// weighting both work on calendar months. Every month computation in this
// package goes through this one function so that bucket indices, transaction
// ages and weight indices all share the same convention.
func monthsAgo(d core.Date, ref time.Time) int {
	return (ref.Year()-d.Year())*12 + int(ref.Month()) - int(d.Month())
}
