package core

import (
	"time"
)

// MinorUnitsPerUnit is the scale of the ledger's integer amounts. The
// budgeting service stores every amount as an integer in 1/10000 of the
// display currency unit.
const MinorUnitsPerUnit = 10000

// AmountFromMinorUnits converts a raw ledger amount into display currency units.
func AmountFromMinorUnits(v int64) float64 {
	return float64(v) / MinorUnitsPerUnit
}

type (
	// Date is a calendar date without a time component. All ledger dates are
	// treated as UTC midnight.
	Date struct {
		time.Time
	}

	// TransactionRow is one normalized ledger movement. Split transactions are
	// expanded into one row per sub-transaction before rows are built, so a row
	// always carries exactly one category and one amount.
	//
	// Category, CategoryGroup and Payee are empty when the referenced id has no
	// lookup entry (deleted or unknown); that is expected, not an error.
	TransactionRow struct {
		AccountName      string
		AccountClosed    bool
		AccountOffBudget bool
		CategoryActive   bool
		Date             Date
		Payee            string
		CategoryGroup    string
		Category         string
		Amount           float64
		Notes            string
		TransferID       string
	}

	// Category is a spending category with its resolved group name.
	// The display name may embed budget tokens like "500/m" or "1200/y".
	Category struct {
		Name   string
		Group  string
		Active bool
	}

	// AccountInfo is a derived per-account balance line.
	AccountInfo struct {
		Name    string
		Balance float64
		Active  bool
	}

	// CategoryStats is the derived report row for one category. Average and
	// WeightedAverage are monthly spend rates over the category's observed
	// lifetime; Budgeted is the monthly equivalent of any parsed budget token.
	CategoryStats struct {
		Name            string
		Group           string
		Average         float64
		WeightedAverage float64
		Budgeted        float64
	}

	// Report is a named rectangular table of primitive cell values, ready to be
	// handed to a sink. Rows may include a header row depending on the report.
	Report struct {
		Name string
		Rows [][]any
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a ledger date in the service's YYYY-MM-DD wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String renders the date back in the YYYY-MM-DD wire format.
func (d Date) String() string {
	return d.Format("2006-01-02")
}
