package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerstats/internal/core"
	"ledgerstats/internal/ledger"
	applog "ledgerstats/internal/log"
	"ledgerstats/internal/report"
	"ledgerstats/internal/sheets"
)

// Publisher announces finished report writes to interested consumers.
type Publisher interface {
	PublishReportWritten(ctx context.Context, reportName string, rows int) error
}

// Options selects which report sections a run produces.
type Options struct {
	BankSync              bool
	AccountBalances       bool
	CategoryStats         bool
	EarmarkedTransactions bool
	TransactionExport     bool
}

// RunnerConfig carries the tuning knobs for a Runner.
type RunnerConfig struct {
	EarmarkAccounts  []string
	FetchConcurrency int
	// Events may be nil; report writes then go unannounced.
	Events Publisher
	// Now overrides the processing date, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Runner computes one full report snapshot from the ledger source and hands
// each report to the sink. A failed write only loses that report; the
// remaining reports are still written and the failures come back joined.
type Runner struct {
	source ledger.Source
	sink   sheets.ReportSink
	log    *applog.Logger
	cfg    RunnerConfig
}

func NewRunner(source ledger.Source, sink sheets.ReportSink, logger *applog.Logger, cfg RunnerConfig) *Runner {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if len(cfg.EarmarkAccounts) == 0 {
		cfg.EarmarkAccounts = report.DefaultEarmarkAccounts
	}
	return &Runner{
		source: source,
		sink:   sink,
		log:    logger.WithComponent("runner"),
		cfg:    cfg,
	}
}

// Run executes one snapshot. Ledger fetch failures abort the run; sink write
// failures are collected per report.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	now := r.cfg.Now()

	if opts.BankSync {
		r.syncBanks(ctx)
	}

	var writeFailures []error

	if opts.AccountBalances {
		r.log.InfoContext(ctx, "Summarizing account balances")
		balances, err := report.AccountBalances(ctx, r.source, r.cfg.FetchConcurrency)
		if err != nil {
			return fmt.Errorf("account balances: %w", err)
		}
		r.write(ctx, report.AccountBalancesReport(balances), &writeFailures)
	}

	if opts.CategoryStats || opts.EarmarkedTransactions || opts.TransactionExport {
		rows, categories, err := r.loadRows(ctx, now)
		if err != nil {
			return err
		}

		if opts.CategoryStats {
			r.log.InfoContext(ctx, "Calculating category statistics")
			stats := report.CalculateCategoryStats(categories, rows, now)
			r.write(ctx, report.CategoryStatsReport(stats), &writeFailures)
		}
		if opts.EarmarkedTransactions {
			r.log.InfoContext(ctx, "Extracting earmarked transactions")
			r.write(ctx, report.EarmarkedTransactions(rows, r.cfg.EarmarkAccounts), &writeFailures)
		}
		if opts.TransactionExport {
			r.write(ctx, report.TransactionsReport(rows), &writeFailures)
		}
	}

	return errors.Join(writeFailures...)
}

// loadRows builds the lookups, flattens every account's transactions and
// applies cadence normalization. The category lookup is returned keyed by id
// for the stats calculator.
func (r *Runner) loadRows(ctx context.Context, now time.Time) ([]core.TransactionRow, map[string]core.Category, error) {
	r.log.InfoContext(ctx, "Loading categories and payees")
	groups, err := r.source.ListCategoryGroups(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list category groups: %w", err)
	}
	rawCategories, err := r.source.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list categories: %w", err)
	}
	rawPayees, err := r.source.ListPayees(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list payees: %w", err)
	}
	categories := report.BuildCategoryLookup(groups, rawCategories)
	payees := report.BuildPayeeLookup(rawPayees)

	r.log.InfoContext(ctx, "Loading transactions")
	rows, err := report.FetchRows(ctx, r.source, categories, payees, r.cfg.FetchConcurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch transactions: %w", err)
	}

	for i := range rows {
		normalized := report.NormalizeByCadence(rows[i], now)
		if normalized.Amount != rows[i].Amount {
			r.log.InfoContext(ctx, "Normalized transaction by cadence",
				"payee", rows[i].Payee,
				"date", rows[i].Date.String(),
				"from", rows[i].Amount,
				"to", normalized.Amount)
		}
		rows[i] = normalized
	}
	return rows, categories, nil
}

// syncBanks asks the source to pull fresh bank transactions for every open
// account. Sync failures are logged and ignored; reporting proceeds on
// whatever the ledger holds.
func (r *Runner) syncBanks(ctx context.Context) {
	syncer, ok := r.source.(ledger.BankSyncer)
	if !ok {
		r.log.InfoContext(ctx, "Ledger source does not support bank sync, skipping")
		return
	}

	accounts, err := r.source.ListAccounts(ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to list accounts for bank sync", "error", err)
		return
	}

	r.log.InfoContext(ctx, "Syncing accounts from bank")
	g, ctx := errgroup.WithContext(ctx)
	if r.cfg.FetchConcurrency > 0 {
		g.SetLimit(r.cfg.FetchConcurrency)
	}
	for _, account := range accounts {
		if account.Closed {
			continue
		}
		g.Go(func() error {
			if err := syncer.SyncAccount(ctx, account.ID); err != nil {
				r.log.WarnContext(ctx, "Bank sync failed", "account", account.Name, "error", err)
				return nil
			}
			r.log.InfoContext(ctx, "Synced account", "account", account.Name)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Runner) write(ctx context.Context, rep core.Report, failures *[]error) {
	if err := r.sink.WriteReport(ctx, rep); err != nil {
		r.log.ErrorContext(ctx, "Report write failed", "report", rep.Name, "error", err)
		*failures = append(*failures, fmt.Errorf("write %s: %w", rep.Name, err))
		return
	}
	r.log.InfoContext(ctx, "Report written", "report", rep.Name, "rows", len(rep.Rows))

	if r.cfg.Events == nil {
		return
	}
	if err := r.cfg.Events.PublishReportWritten(ctx, rep.Name, len(rep.Rows)); err != nil {
		r.log.WarnContext(ctx, "Failed to publish report event", "report", rep.Name, "error", err)
	}
}
