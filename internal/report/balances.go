package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ledgerstats/internal/core"
	"ledgerstats/internal/ledger"
)

// AccountBalances sums raw transaction amounts per open account. It works on
// the unflattened transaction list (a split's sub-amounts equal the parent
// amount, so flattening would only double count). Closed accounts are left out
// entirely. The result is sorted ascending by account name with a leading "["
// ignored, so bracket-prefixed grouping labels sort next to their plain
// counterparts.
func AccountBalances(ctx context.Context, src ledger.Source, maxConcurrent int) ([]core.AccountInfo, error) {
	accounts, err := src.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	open := accounts[:0:0]
	for _, a := range accounts {
		if !a.Closed {
			open = append(open, a)
		}
	}

	balances := make([]core.AccountInfo, len(open))
	g, ctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		g.SetLimit(maxConcurrent)
	}
	for i, account := range open {
		g.Go(func() error {
			transactions, err := src.ListTransactions(ctx, account.ID)
			if err != nil {
				return fmt.Errorf("list transactions for %s: %w", account.Name, err)
			}
			var sum int64
			for _, t := range transactions {
				sum += t.Amount
			}
			balances[i] = core.AccountInfo{
				Name:    account.Name,
				Balance: core.AmountFromMinorUnits(sum),
				Active:  true,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(balances, func(i, j int) bool {
		return sortableAccountName(balances[i].Name) < sortableAccountName(balances[j].Name)
	})
	return balances, nil
}

func sortableAccountName(name string) string {
	return strings.TrimPrefix(name, "[")
}
