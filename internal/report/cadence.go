package report

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"ledgerstats/internal/core"
)

// cadenceTagRe matches the note annotation declaring that a transaction's
// amount covers a multi-month period, e.g. "#assume-cadence:6m" or
// "#assumed-interval:1y". Matching is case-sensitive and only the first
// occurrence in a note is honored.
var cadenceTagRe = regexp.MustCompile(`#assumed?-(?:cadence|interval):(\d+)([my])`)

// ParseCadenceTag extracts the declared cadence from a note, in months.
// Years convert to 12 months each. ok is false when the note carries no tag.
func ParseCadenceTag(notes string) (months int, ok bool) {
	m := cadenceTagRe.FindStringSubmatch(notes)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Cannot happen with the digit-only group, but a malformed tag must
		// pass the row through rather than fail.
		return 0, false
	}
	if m[2] == "y" {
		n *= 12
	}
	return n, true
}

// NormalizeByCadence pro-rates a lump payment over the elapsed part of its
// declared cadence. A transaction tagged with a period of N months that is
// younger than N months represents a payment still being "consumed": its
// amount is scaled by elapsed-months / period so it does not over-weight a
// single month's average. Rows without a tag, and rows whose full period has
// already elapsed, pass through unchanged.
func NormalizeByCadence(t core.TransactionRow, now time.Time) core.TransactionRow {
	period, ok := ParseCadenceTag(t.Notes)
	if !ok || period <= 0 {
		return t
	}
	age := monthsAgo(t.Date, now)
	if age < 1 {
		age = 1
	}
	if age >= period {
		return t
	}
	normalized := t.Amount * float64(age) / float64(period)
	t.Amount = normalized
	t.Notes = fmt.Sprintf("normalized to %.2f ", normalized) + t.Notes
	return t
}
