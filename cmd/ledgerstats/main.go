package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"ledgerstats/internal/backend"
	"ledgerstats/internal/cli"
	"ledgerstats/internal/services"
)

func main() {
	noBankSync := flag.Bool("no-bank-sync", false, "don't sync accounts with the bank before reporting")
	noCategoryStats := flag.Bool("no-category-stats", false, "don't calculate category stats")
	noEarmarked := flag.Bool("no-earmarked-transactions", false, "don't generate the earmarked transactions report")
	noAccountBalances := flag.Bool("no-account-balances", false, "don't update account balances")
	noTransactions := flag.Bool("no-transaction-export", false, "don't export the flattened transaction table")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, sourceCleanup, err := backend.NewSource(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger source", "error", err)
		os.Exit(1)
	}
	if sourceCleanup != nil {
		defer sourceCleanup()
	}

	sink, err := backend.NewSink(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize report sink", "error", err)
		os.Exit(1)
	}

	publisher, publisherCleanup := backend.NewPublisher(cfg, logger)
	if publisherCleanup != nil {
		defer publisherCleanup()
	}

	runnerCfg := services.RunnerConfig{
		EarmarkAccounts:  cfg.EarmarkAccounts,
		FetchConcurrency: cfg.FetchConcurrency,
	}
	if publisher != nil {
		runnerCfg.Events = publisher
	}
	runner := services.NewRunner(source, sink, logger, runnerCfg)

	opts := services.Options{
		BankSync:              !*noBankSync,
		AccountBalances:       !*noAccountBalances,
		CategoryStats:         !*noCategoryStats,
		EarmarkedTransactions: !*noEarmarked,
		TransactionExport:     !*noTransactions,
	}

	logger.Info("Starting report run",
		"source", cfg.SourceBackend,
		"sink", cfg.SinkBackend,
		"bank_sync", opts.BankSync)
	if err := runner.Run(ctx, opts); err != nil {
		logger.Error("Report run failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Report run complete")
}
