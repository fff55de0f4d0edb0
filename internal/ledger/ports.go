package ledger

import (
	"context"
)

// Raw records as returned by the budgeting service. Nullable ids resolve to
// empty strings; amounts are integers in 1/10000 currency units.
type (
	Account struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Closed    bool   `json:"closed"`
		OffBudget bool   `json:"offbudget"`
	}

	SubTransaction struct {
		ID         string `json:"id"`
		Amount     int64  `json:"amount"`
		CategoryID string `json:"category"`
		Notes      string `json:"notes"`
	}

	Transaction struct {
		ID              string           `json:"id"`
		Date            string           `json:"date"`
		Amount          int64            `json:"amount"`
		CategoryID      string           `json:"category"`
		PayeeID         string           `json:"payee"`
		Notes           string           `json:"notes"`
		TransferID      string           `json:"transfer_id"`
		SubTransactions []SubTransaction `json:"subtransactions"`
	}

	CategoryGroup struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Hidden bool   `json:"hidden"`
	}

	Category struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		GroupID string `json:"group_id"`
		Hidden  bool   `json:"hidden"`
	}

	Payee struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)

// Source lists raw ledger records for one budget. Implementations must be safe
// for concurrent ListTransactions calls, since per-account fetches fan out.
type Source interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	ListTransactions(ctx context.Context, accountID string) ([]Transaction, error)
	ListCategoryGroups(ctx context.Context) ([]CategoryGroup, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListPayees(ctx context.Context) ([]Payee, error)
}

// BankSyncer is an optional capability of a Source: triggering a bank sync for
// one account before transactions are fetched.
type BankSyncer interface {
	SyncAccount(ctx context.Context, accountID string) error
}
