package report

import (
	"context"
	"errors"
	"math"
	"testing"

	"ledgerstats/internal/core"
	"ledgerstats/internal/ledger"
	ledgermem "ledgerstats/internal/ledger/memory"
)

func testLookups() (map[string]core.Category, map[string]string) {
	categories := map[string]core.Category{
		"cat-food": {Name: "Food", Group: "Everyday", Active: true},
		"cat-rent": {Name: "Rent", Group: "Fixed", Active: true},
	}
	payees := map[string]string{
		"p-store":    "Corner Store",
		"p-landlord": "Landlord",
	}
	return categories, payees
}

func TestFetchRowsFlattensSplitTransactions(t *testing.T) {
	src := ledgermem.New()
	src.Accounts = []ledger.Account{
		{ID: "a1", Name: "Checking"},
	}
	src.Transactions["a1"] = []ledger.Transaction{
		{
			ID:         "t1",
			Date:       "2024-05-01",
			Amount:     -300000,
			PayeeID:    "p-store",
			Notes:      " parent note",
			TransferID: "tr-9",
			SubTransactions: []ledger.SubTransaction{
				{ID: "s1", Amount: -100000, CategoryID: "cat-food", Notes: "sub one"},
				{ID: "s2", Amount: -200000, CategoryID: "cat-rent", Notes: "sub two"},
			},
		},
	}
	categories, payees := testLookups()

	rows, err := FetchRows(context.Background(), src, categories, payees, 4)
	if err != nil {
		t.Fatalf("FetchRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want one row per sub-transaction", len(rows))
	}

	var total float64
	for _, row := range rows {
		total += row.Amount
		if row.AccountName != "Checking" {
			t.Errorf("AccountName = %q, want Checking", row.AccountName)
		}
		if row.Payee != "Corner Store" {
			t.Errorf("Payee = %q, want inherited from parent", row.Payee)
		}
		if row.TransferID != "tr-9" {
			t.Errorf("TransferID = %q, want inherited from parent", row.TransferID)
		}
		if row.Date.String() != "2024-05-01" {
			t.Errorf("Date = %s, want inherited from parent", row.Date)
		}
	}
	if !almostEqual(total, -30) {
		t.Errorf("sub-row amounts sum to %v, want parent total -30", total)
	}

	if rows[0].Category != "Food" || rows[1].Category != "Rent" {
		t.Errorf("categories = (%q, %q), want sub-transactions' own", rows[0].Category, rows[1].Category)
	}
	if rows[0].Notes != "sub one parent note" {
		t.Errorf("Notes = %q, want sub and parent notes concatenated", rows[0].Notes)
	}
}

func TestFetchRowsPlainTransaction(t *testing.T) {
	src := ledgermem.New()
	src.Accounts = []ledger.Account{
		{ID: "a1", Name: "Checking", Closed: false, OffBudget: true},
	}
	src.Transactions["a1"] = []ledger.Transaction{
		{ID: "t1", Date: "2024-04-02", Amount: 12345, CategoryID: "cat-food", PayeeID: "p-store", Notes: "lunch"},
	}
	categories, payees := testLookups()

	rows, err := FetchRows(context.Background(), src, categories, payees, 1)
	if err != nil {
		t.Fatalf("FetchRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	row := rows[0]
	if !almostEqual(row.Amount, 1.2345) {
		t.Errorf("Amount = %v, want minor units divided by 10000", row.Amount)
	}
	if !row.AccountOffBudget {
		t.Error("AccountOffBudget not carried over")
	}
	if row.Category != "Food" || row.CategoryGroup != "Everyday" || !row.CategoryActive {
		t.Errorf("category fields = (%q, %q, %v), want resolved lookup", row.Category, row.CategoryGroup, row.CategoryActive)
	}
}

func TestFetchRowsUnknownLookupsResolveEmpty(t *testing.T) {
	src := ledgermem.New()
	src.Accounts = []ledger.Account{{ID: "a1", Name: "Checking"}}
	src.Transactions["a1"] = []ledger.Transaction{
		{ID: "t1", Date: "2024-04-02", Amount: -5000, CategoryID: "gone", PayeeID: "gone-too"},
	}

	rows, err := FetchRows(context.Background(), src, map[string]core.Category{}, map[string]string{}, 1)
	if err != nil {
		t.Fatalf("FetchRows() error = %v", err)
	}
	row := rows[0]
	if row.Category != "" || row.CategoryGroup != "" || row.Payee != "" {
		t.Errorf("unknown lookups = (%q, %q, %q), want empty fields", row.Category, row.CategoryGroup, row.Payee)
	}
	if row.CategoryActive {
		t.Error("unknown category should not be active")
	}
}

func TestFetchRowsSortsDescendingByDate(t *testing.T) {
	src := ledgermem.New()
	src.Accounts = []ledger.Account{
		{ID: "a1", Name: "Checking"},
		{ID: "a2", Name: "Savings"},
	}
	src.Transactions["a1"] = []ledger.Transaction{
		{ID: "t1", Date: "2024-01-15", Amount: -100},
		{ID: "t2", Date: "2024-03-15", Amount: -200},
	}
	src.Transactions["a2"] = []ledger.Transaction{
		{ID: "t3", Date: "2024-02-15", Amount: -300},
		{ID: "t4", Date: "2024-03-15", Amount: -400},
	}

	rows, err := FetchRows(context.Background(), src, nil, nil, 2)
	if err != nil {
		t.Fatalf("FetchRows() error = %v", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Date.After(rows[i-1].Date.Time) {
			t.Fatalf("rows not sorted descending at %d: %s after %s", i, rows[i].Date, rows[i-1].Date)
		}
	}
	// Equal dates keep source order: account a1's row before a2's.
	if !almostEqual(rows[0].Amount, core.AmountFromMinorUnits(-200)) {
		t.Errorf("rows[0].Amount = %v, want the first account's 2024-03-15 row", rows[0].Amount)
	}
	if !almostEqual(rows[1].Amount, core.AmountFromMinorUnits(-400)) {
		t.Errorf("rows[1].Amount = %v, want the second account's 2024-03-15 row", rows[1].Amount)
	}
}

func TestFetchRowsBadDate(t *testing.T) {
	src := ledgermem.New()
	src.Accounts = []ledger.Account{{ID: "a1", Name: "Checking"}}
	src.Transactions["a1"] = []ledger.Transaction{
		{ID: "t1", Date: "01/02/2024", Amount: -100},
	}

	if _, err := FetchRows(context.Background(), src, nil, nil, 1); err == nil {
		t.Fatal("FetchRows() expected error for malformed date")
	}
}

type failingSource struct {
	ledger.Source
	err error
}

func (f failingSource) ListTransactions(context.Context, string) ([]ledger.Transaction, error) {
	return nil, f.err
}

func TestFetchRowsPropagatesSourceErrors(t *testing.T) {
	base := ledgermem.New()
	base.Accounts = []ledger.Account{{ID: "a1", Name: "Checking"}}
	src := failingSource{Source: base, err: errors.New("boom")}

	_, err := FetchRows(context.Background(), src, nil, nil, 1)
	if err == nil || !errors.Is(err, src.err) {
		t.Fatalf("FetchRows() error = %v, want wrapped source error", err)
	}
}

func TestAmountConversionPrecision(t *testing.T) {
	if got := core.AmountFromMinorUnits(123456); math.Abs(got-12.3456) > 1e-12 {
		t.Errorf("AmountFromMinorUnits(123456) = %v, want 12.3456", got)
	}
}
