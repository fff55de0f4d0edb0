package backend

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"ledgerstats/internal/config"
	ledgermem "ledgerstats/internal/ledger/memory"
	applog "ledgerstats/internal/log"
	sheetscsv "ledgerstats/internal/sheets/csv"
	sheetsmem "ledgerstats/internal/sheets/memory"
)

func testLogger() *applog.Logger {
	return applog.New(applog.Config{
		Component: "test",
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
}

func TestNewSource(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		src, cleanup, err := NewSource(&config.Config{SourceBackend: "memory"}, testLogger())
		if err != nil {
			t.Fatalf("NewSource() error = %v", err)
		}
		if cleanup != nil {
			t.Error("memory source should not need cleanup")
		}
		if _, ok := src.(*ledgermem.Store); !ok {
			t.Errorf("source = %T, want memory store", src)
		}
	})

	t.Run("http", func(t *testing.T) {
		cfg := &config.Config{
			SourceBackend:   "http",
			ActualServerURL: "http://actual.local",
			ActualBudgetID:  "My-Budget",
		}
		src, cleanup, err := NewSource(cfg, testLogger())
		if err != nil {
			t.Fatalf("NewSource() error = %v", err)
		}
		if src == nil || cleanup != nil {
			t.Errorf("source = %v, cleanup = %v", src, cleanup)
		}
	})

	t.Run("file with missing budget", func(t *testing.T) {
		cfg := &config.Config{
			SourceBackend:  "file",
			BudgetFilePath: filepath.Join(t.TempDir(), "missing.sqlite"),
		}
		if _, _, err := NewSource(cfg, testLogger()); err == nil {
			t.Error("NewSource() expected error for missing budget file")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, _, err := NewSource(&config.Config{SourceBackend: "tape"}, testLogger()); err == nil {
			t.Error("NewSource() expected error for unknown backend")
		}
	})
}

func TestNewSink(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		sink, err := NewSink(ctx, &config.Config{SinkBackend: "memory"}, testLogger())
		if err != nil {
			t.Fatalf("NewSink() error = %v", err)
		}
		if _, ok := sink.(*sheetsmem.Store); !ok {
			t.Errorf("sink = %T, want memory store", sink)
		}
	})

	t.Run("csv", func(t *testing.T) {
		cfg := &config.Config{SinkBackend: "csv", CSVOutputDir: t.TempDir()}
		sink, err := NewSink(ctx, cfg, testLogger())
		if err != nil {
			t.Fatalf("NewSink() error = %v", err)
		}
		if _, ok := sink.(*sheetscsv.Writer); !ok {
			t.Errorf("sink = %T, want csv writer", sink)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := NewSink(ctx, &config.Config{SinkBackend: "fax"}, testLogger()); err == nil {
			t.Error("NewSink() expected error for unknown backend")
		}
	})
}

func TestNewPublisherDisabledWithoutURL(t *testing.T) {
	pub, cleanup := NewPublisher(&config.Config{}, testLogger())
	if pub != nil || cleanup != nil {
		t.Errorf("NewPublisher() = (%v, %v), want events disabled", pub, cleanup)
	}
}

func TestNewPublisherConnectFailureIsNotFatal(t *testing.T) {
	cfg := &config.Config{
		AMQPURL:      "amqp://127.0.0.1:1",
		AMQPExchange: "ex",
		AMQPQueue:    "q",
	}
	pub, cleanup := NewPublisher(cfg, testLogger())
	if pub != nil || cleanup != nil {
		t.Errorf("NewPublisher() = (%v, %v), want nil on connection failure", pub, cleanup)
	}
}
