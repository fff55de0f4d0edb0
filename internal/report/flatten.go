package report

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"ledgerstats/internal/core"
	"ledgerstats/internal/ledger"
)

// FetchRows lists every account's transactions from the source and flattens
// them into normalized rows. Per-account fetches fan out concurrently (at most
// maxConcurrent in flight when > 0) and the merged result is sorted descending
// by transaction date; rows with equal dates keep their source order.
func FetchRows(ctx context.Context, src ledger.Source, categories map[string]core.Category, payees map[string]string, maxConcurrent int) ([]core.TransactionRow, error) {
	accounts, err := src.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	perAccount := make([][]core.TransactionRow, len(accounts))
	g, ctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		g.SetLimit(maxConcurrent)
	}
	for i, account := range accounts {
		g.Go(func() error {
			transactions, err := src.ListTransactions(ctx, account.ID)
			if err != nil {
				return fmt.Errorf("list transactions for %s: %w", account.Name, err)
			}
			rows, err := flattenAccount(account, transactions, categories, payees)
			if err != nil {
				return err
			}
			perAccount[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []core.TransactionRow
	for _, rows := range perAccount {
		all = append(all, rows...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date.Time)
	})
	return all, nil
}

// flattenAccount expands one account's transactions into rows: one row per
// sub-transaction for splits, exactly one row otherwise. Unknown category or
// payee ids resolve to empty fields.
func flattenAccount(account ledger.Account, transactions []ledger.Transaction, categories map[string]core.Category, payees map[string]string) ([]core.TransactionRow, error) {
	rows := make([]core.TransactionRow, 0, len(transactions))
	for _, t := range transactions {
		date, err := core.ParseDate(t.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s on %s: bad date %q: %w", t.ID, account.Name, t.Date, err)
		}
		base := core.TransactionRow{
			AccountName:      account.Name,
			AccountClosed:    account.Closed,
			AccountOffBudget: account.OffBudget,
			Date:             date,
			Payee:            payees[t.PayeeID],
			TransferID:       t.TransferID,
		}
		if len(t.SubTransactions) == 0 {
			row := base
			cat := categories[t.CategoryID]
			row.Category = cat.Name
			row.CategoryGroup = cat.Group
			row.CategoryActive = cat.Active
			row.Amount = core.AmountFromMinorUnits(t.Amount)
			row.Notes = t.Notes
			rows = append(rows, row)
			continue
		}
		for _, st := range t.SubTransactions {
			row := base
			cat := categories[st.CategoryID]
			row.Category = cat.Name
			row.CategoryGroup = cat.Group
			row.CategoryActive = cat.Active
			row.Amount = core.AmountFromMinorUnits(st.Amount)
			row.Notes = st.Notes + t.Notes
			rows = append(rows, row)
		}
	}
	return rows, nil
}
