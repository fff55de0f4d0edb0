package report

import (
	"testing"

	"ledgerstats/internal/core"
)

func TestEarmarkedTransactions(t *testing.T) {
	receiving := []string{"Savings", "Future Us"}

	rows := []core.TransactionRow{
		{AccountName: "Savings", Date: core.NewDate(2024, 6, 1), Payee: "Transfer", Amount: 100, Notes: "#ear:vacation fund"},
		{AccountName: "Savings", Date: core.NewDate(2024, 5, 1), Payee: "Transfer", Amount: 50, Notes: "plain top-up"},
		{AccountName: "Checking", Date: core.NewDate(2024, 5, 1), Payee: "Transfer", Amount: 75, Notes: "#ear:not a savings account"},
		{AccountName: "Future Us", Date: core.NewDate(2024, 4, 1), Payee: "Transfer", Amount: 25, Notes: "house ear:roof"},
	}

	report := EarmarkedTransactions(rows, receiving)

	if report.Name != ReportEarmarkedTransactions {
		t.Errorf("Name = %q, want %q", report.Name, ReportEarmarkedTransactions)
	}
	if len(report.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want header plus two matches", len(report.Rows))
	}

	header := report.Rows[0]
	wantHeader := []any{"account name", "transaction date", "payee", "amount", "ear mark"}
	for i := range wantHeader {
		if header[i] != wantHeader[i] {
			t.Errorf("header[%d] = %v, want %v", i, header[i], wantHeader[i])
		}
	}

	first := report.Rows[1]
	if first[0] != "Savings" || first[1] != "2024-06-01" || first[3] != 100.0 {
		t.Errorf("first row = %v", first)
	}
	if first[4] != "vacation fund" {
		t.Errorf("ear mark = %q, want prefix stripped", first[4])
	}

	// The bare marker matches without the "#" prefix; nothing gets stripped.
	second := report.Rows[2]
	if second[0] != "Future Us" || second[4] != "house ear:roof" {
		t.Errorf("second row = %v", second)
	}
}

func TestEarmarkedTransactionsStripsPrefixOnce(t *testing.T) {
	rows := []core.TransactionRow{
		{AccountName: "Savings", Date: core.NewDate(2024, 6, 1), Notes: "#ear:one #ear:two"},
	}
	report := EarmarkedTransactions(rows, []string{"Savings"})
	if got := report.Rows[1][4]; got != "one #ear:two" {
		t.Errorf("ear mark = %q, want only the first prefix removed", got)
	}
}

func TestEarmarkedTransactionsNoMatches(t *testing.T) {
	rows := []core.TransactionRow{
		{AccountName: "Checking", Notes: "#ear:ignored"},
	}
	report := EarmarkedTransactions(rows, []string{"Savings"})
	if len(report.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want header only", len(report.Rows))
	}
}

func TestDefaultEarmarkAccounts(t *testing.T) {
	if len(DefaultEarmarkAccounts) == 0 {
		t.Fatal("DefaultEarmarkAccounts is empty")
	}
	seen := make(map[string]struct{}, len(DefaultEarmarkAccounts))
	for _, name := range DefaultEarmarkAccounts {
		if name == "" {
			t.Error("empty account name in default allow-list")
		}
		if _, ok := seen[name]; ok {
			t.Errorf("duplicate account name %q", name)
		}
		seen[name] = struct{}{}
	}
}
