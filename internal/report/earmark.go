package report

import (
	"strings"

	"ledgerstats/internal/core"
)

// earmarkMarker flags a transfer into a receiving account as reserved for a
// purpose. Notes carry it as "#ear:<purpose>"; the bare marker is what the
// filter looks for, the prefixed form is what gets stripped from the output.
const (
	earmarkMarker = "ear:"
	earmarkPrefix = "#ear:"
)

// DefaultEarmarkAccounts is the built-in allow-list of savings-like accounts
// that receive earmarked transfers.
var DefaultEarmarkAccounts = []string{
	"[Santander] Sparkonto Tobi",
	"[Santander] Sparkonto+",
	"[Danske] Future Us",
	"[REV][EUR] Tobi Sparen",
	"[Resurs] Sparkonto",
	"🏡 Hjälmvik",
}

// EarmarkedTransactions filters rows to the given receiving accounts whose
// notes carry the earmark marker, one output row per matching transaction in
// input order. No aggregation happens here; the table is uploaded as-is.
func EarmarkedTransactions(rows []core.TransactionRow, receivingAccounts []string) core.Report {
	receiving := make(map[string]struct{}, len(receivingAccounts))
	for _, name := range receivingAccounts {
		receiving[name] = struct{}{}
	}

	table := [][]any{
		{"account name", "transaction date", "payee", "amount", "ear mark"},
	}
	for _, t := range rows {
		if _, ok := receiving[t.AccountName]; !ok {
			continue
		}
		if !strings.Contains(t.Notes, earmarkMarker) {
			continue
		}
		table = append(table, []any{
			t.AccountName,
			t.Date.String(),
			t.Payee,
			t.Amount,
			strings.Replace(t.Notes, earmarkPrefix, "", 1),
		})
	}
	return core.Report{Name: ReportEarmarkedTransactions, Rows: table}
}
