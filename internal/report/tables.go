package report

import (
	"sort"

	"ledgerstats/internal/core"
)

// Report names. Sinks map these to their own targets (a spreadsheet range, a
// file name).
const (
	ReportAccountBalances       = "account_balances"
	ReportCategoryStats         = "category_stats"
	ReportEarmarkedTransactions = "earmarked_transactions"
	ReportTransactions          = "transactions"
)

// AccountBalancesReport renders balances as a two-column table, no header.
// The spreadsheet range already carries its own labels.
func AccountBalancesReport(balances []core.AccountInfo) core.Report {
	rows := make([][]any, 0, len(balances))
	for _, a := range balances {
		rows = append(rows, []any{a.Name, a.Balance})
	}
	return core.Report{Name: ReportAccountBalances, Rows: rows}
}

// CategoryStatsReport renders stats sorted ascending by category name, no
// header.
func CategoryStatsReport(stats map[string]core.CategoryStats) core.Report {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]any, 0, len(names))
	for _, name := range names {
		s := stats[name]
		rows = append(rows, []any{s.Name, s.Group, s.Average, s.WeightedAverage, s.Budgeted})
	}
	return core.Report{Name: ReportCategoryStats, Rows: rows}
}

// TransactionsReport renders the full flattened row set with a header row,
// matching the CSV export layout.
func TransactionsReport(rows []core.TransactionRow) core.Report {
	table := make([][]any, 0, len(rows)+1)
	table = append(table, []any{
		"account closed", "account off-budget", "account name", "category active",
		"transaction date", "payee", "category group", "category", "amount",
		"notes", "transfer id",
	})
	for _, t := range rows {
		table = append(table, []any{
			t.AccountClosed, t.AccountOffBudget, t.AccountName, t.CategoryActive,
			t.Date.String(), t.Payee, t.CategoryGroup, t.Category, t.Amount,
			t.Notes, t.TransferID,
		})
	}
	return core.Report{Name: ReportTransactions, Rows: table}
}
