package report

import (
	"regexp"
	"strconv"
)

// Budget tokens embedded in category display names: "500/m" spends 500 per
// month, "300/qt" per quarter, "1200/y" per year. Tokens of different periods
// are additive; at most one token per period is honored.
var (
	monthlyBudgetRe   = regexp.MustCompile(`(\d+(\.\d+)?)/m`)
	quarterlyBudgetRe = regexp.MustCompile(`(\d+(\.\d+)?)/qt`)
	yearlyBudgetRe    = regexp.MustCompile(`(\d+(\.\d+)?)/y`)
)

// ParseBudgetTarget extracts the monthly-equivalent budget from a category
// display name. ok is false when the name carries no budget token at all.
func ParseBudgetTarget(name string) (monthly float64, ok bool) {
	if m := monthlyBudgetRe.FindStringSubmatch(name); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		monthly += v
		ok = true
	}
	if m := quarterlyBudgetRe.FindStringSubmatch(name); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		monthly += v / 3
		ok = true
	}
	if m := yearlyBudgetRe.FindStringSubmatch(name); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		monthly += v / 12
		ok = true
	}
	return monthly, ok
}
