// Package file is a LedgerSource over an exported budget database. The
// budgeting service keeps its ledger in a sqlite file; pointing ledgerstats at
// an export avoids the server round-trips entirely. The database is opened
// read-only: the schema belongs to the budgeting service, not to us.
package file

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"ledgerstats/internal/ledger"
)

type DB struct {
	db *sql.DB
}

var _ ledger.Source = (*DB)(nil)

// Open opens an exported budget database read-only.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("budget file: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open budget file: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping budget file: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, closed, offbudget
		FROM accounts
		WHERE tombstone = 0
		ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var a ledger.Account
		var closed, offBudget int
		if err := rows.Scan(&a.ID, &a.Name, &closed, &offBudget); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Closed = closed != 0
		a.OffBudget = offBudget != 0
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ListTransactions returns one account's transactions, newest first. Split
// children are folded into their parent's SubTransactions so the result has
// the same shape as the HTTP API's listing.
func (d *DB) ListTransactions(ctx context.Context, accountID string) ([]ledger.Transaction, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, date, amount, category, description, notes, transferred_id, is_parent
		FROM transactions
		WHERE acct = ? AND tombstone = 0 AND is_child = 0
		ORDER BY date DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []ledger.Transaction
	var parents []string
	for rows.Next() {
		var t ledger.Transaction
		var date int
		var category, payee, notes, transfer sql.NullString
		var isParent int
		if err := rows.Scan(&t.ID, &date, &t.Amount, &category, &payee, &notes, &transfer, &isParent); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Date = formatDate(date)
		t.CategoryID = category.String
		t.PayeeID = payee.String
		t.Notes = notes.String
		t.TransferID = transfer.String
		transactions = append(transactions, t)
		if isParent != 0 {
			parents = append(parents, t.ID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(parents) == 0 {
		return transactions, nil
	}
	children, err := d.childTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		transactions[i].SubTransactions = children[transactions[i].ID]
	}
	return transactions, nil
}

// childTransactions maps parent transaction id to its split rows.
func (d *DB) childTransactions(ctx context.Context, accountID string) (map[string][]ledger.SubTransaction, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, parent_id, amount, category, notes
		FROM transactions
		WHERE acct = ? AND tombstone = 0 AND is_child = 1
		ORDER BY sort_order`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query split transactions: %w", err)
	}
	defer rows.Close()

	children := make(map[string][]ledger.SubTransaction)
	for rows.Next() {
		var st ledger.SubTransaction
		var parentID string
		var category, notes sql.NullString
		if err := rows.Scan(&st.ID, &parentID, &st.Amount, &category, &notes); err != nil {
			return nil, fmt.Errorf("scan split transaction: %w", err)
		}
		st.CategoryID = category.String
		st.Notes = notes.String
		children[parentID] = append(children[parentID], st)
	}
	return children, rows.Err()
}

func (d *DB) ListCategoryGroups(ctx context.Context) ([]ledger.CategoryGroup, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, hidden
		FROM category_groups
		WHERE tombstone = 0
		ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("query category groups: %w", err)
	}
	defer rows.Close()

	var groups []ledger.CategoryGroup
	for rows.Next() {
		var g ledger.CategoryGroup
		var hidden int
		if err := rows.Scan(&g.ID, &g.Name, &hidden); err != nil {
			return nil, fmt.Errorf("scan category group: %w", err)
		}
		g.Hidden = hidden != 0
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (d *DB) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, cat_group, hidden
		FROM categories
		WHERE tombstone = 0
		ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []ledger.Category
	for rows.Next() {
		var c ledger.Category
		var group sql.NullString
		var hidden int
		if err := rows.Scan(&c.ID, &c.Name, &group, &hidden); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.GroupID = group.String
		c.Hidden = hidden != 0
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (d *DB) ListPayees(ctx context.Context) ([]ledger.Payee, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name
		FROM payees
		WHERE tombstone = 0`)
	if err != nil {
		return nil, fmt.Errorf("query payees: %w", err)
	}
	defer rows.Close()

	var payees []ledger.Payee
	for rows.Next() {
		var p ledger.Payee
		var name sql.NullString
		if err := rows.Scan(&p.ID, &name); err != nil {
			return nil, fmt.Errorf("scan payee: %w", err)
		}
		p.Name = name.String
		payees = append(payees, p)
	}
	return payees, rows.Err()
}

// formatDate converts the database's YYYYMMDD integer dates to the wire format.
func formatDate(d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", d/10000, d/100%100, d%100)
}
