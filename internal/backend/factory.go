// Package backend builds the ledger source, report sink and event publisher
// selected by configuration.
package backend

import (
	"context"
	"fmt"

	"ledgerstats/internal/config"
	"ledgerstats/internal/events"
	"ledgerstats/internal/ledger"
	"ledgerstats/internal/ledger/actual"
	"ledgerstats/internal/ledger/file"
	ledgermem "ledgerstats/internal/ledger/memory"
	applog "ledgerstats/internal/log"
	"ledgerstats/internal/sheets"
	sheetscsv "ledgerstats/internal/sheets/csv"
	"ledgerstats/internal/sheets/google"
	sheetsmem "ledgerstats/internal/sheets/memory"
)

// CleanupFunc releases resources held by a backend. May be nil.
type CleanupFunc func() error

// NewSource creates the ledger source named by cfg.SourceBackend.
func NewSource(cfg *config.Config, logger *applog.Logger) (ledger.Source, CleanupFunc, error) {
	switch cfg.SourceBackend {
	case "http":
		client, err := actual.NewClient(actual.Config{
			ServerURL: cfg.ActualServerURL,
			APIKey:    cfg.ActualAPIKey,
			BudgetID:  cfg.ActualBudgetID,
			CacheSize: cfg.CacheSize,
			CacheTTL:  cfg.CacheTTL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("initialize http ledger source: %w", err)
		}
		logger.Info("Initialized http ledger source", "server", cfg.ActualServerURL, "budget", cfg.ActualBudgetID)
		return client, nil, nil
	case "file":
		db, err := file.Open(cfg.BudgetFilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize file ledger source: %w", err)
		}
		logger.Info("Initialized file ledger source", "path", cfg.BudgetFilePath)
		return db, db.Close, nil
	case "memory":
		logger.Info("Initialized memory ledger source")
		return ledgermem.New(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source backend: %s", cfg.SourceBackend)
	}
}

// NewSink creates the report sink named by cfg.SinkBackend.
func NewSink(ctx context.Context, cfg *config.Config, logger *applog.Logger) (sheets.ReportSink, error) {
	switch cfg.SinkBackend {
	case "sheets":
		client, err := google.New(ctx, google.Config{
			SpreadsheetID:   cfg.SpreadsheetID,
			Ranges:          cfg.Ranges(),
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets sink: %w", err)
		}
		logger.Info("Initialized Google Sheets sink", "spreadsheet_id", cfg.SpreadsheetID)
		return client, nil
	case "csv":
		writer, err := sheetscsv.NewWriter(cfg.CSVOutputDir)
		if err != nil {
			return nil, fmt.Errorf("initialize CSV sink: %w", err)
		}
		logger.Info("Initialized CSV sink", "dir", cfg.CSVOutputDir)
		return writer, nil
	case "memory":
		logger.Info("Initialized memory sink")
		return sheetsmem.New(), nil
	default:
		return nil, fmt.Errorf("unsupported sink backend: %s", cfg.SinkBackend)
	}
}

// NewPublisher creates the optional AMQP event publisher. A missing AMQP URL
// disables events; a connection failure only logs a warning, since events are
// a courtesy to downstream consumers, not part of the snapshot.
func NewPublisher(cfg *config.Config, logger *applog.Logger) (*events.Client, CleanupFunc) {
	if cfg.AMQPURL == "" {
		return nil, nil
	}
	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		return nil, nil
	}
	logger.Info("Initialized AMQP events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return client, client.Close
}
