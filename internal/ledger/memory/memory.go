// Package memory is an in-memory LedgerSource used in tests and as the
// default backend when no server or budget file is configured.
package memory

import (
	"context"
	"sync"

	"ledgerstats/internal/ledger"
)

// Store serves fixed ledger records. Fields are set up front; list methods
// return copies and are safe for concurrent use.
type Store struct {
	Accounts     []ledger.Account
	Transactions map[string][]ledger.Transaction
	Groups       []ledger.CategoryGroup
	Categories   []ledger.Category
	Payees       []ledger.Payee

	mu     sync.Mutex
	synced []string
}

var (
	_ ledger.Source     = (*Store)(nil)
	_ ledger.BankSyncer = (*Store)(nil)
)

func New() *Store {
	return &Store{Transactions: make(map[string][]ledger.Transaction)}
}

func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	return append([]ledger.Account(nil), s.Accounts...), nil
}

func (s *Store) ListTransactions(_ context.Context, accountID string) ([]ledger.Transaction, error) {
	return append([]ledger.Transaction(nil), s.Transactions[accountID]...), nil
}

func (s *Store) ListCategoryGroups(_ context.Context) ([]ledger.CategoryGroup, error) {
	return append([]ledger.CategoryGroup(nil), s.Groups...), nil
}

func (s *Store) ListCategories(_ context.Context) ([]ledger.Category, error) {
	return append([]ledger.Category(nil), s.Categories...), nil
}

func (s *Store) ListPayees(_ context.Context) ([]ledger.Payee, error) {
	return append([]ledger.Payee(nil), s.Payees...), nil
}

// SyncAccount records the sync request; tests assert on SyncedAccounts.
func (s *Store) SyncAccount(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced = append(s.synced, accountID)
	return nil
}

// SyncedAccounts returns the account ids bank syncs were requested for.
func (s *Store) SyncedAccounts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.synced...)
}
