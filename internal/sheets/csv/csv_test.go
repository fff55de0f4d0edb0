package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ledgerstats/internal/core"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	report := core.Report{
		Name: "account_balances",
		Rows: [][]any{
			{"Checking", 12.5},
			{"Savings", -0.25},
			{"Closed?", true},
			{"Empty", nil},
		},
	}
	if err := w.WriteReport(context.Background(), report); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "account_balances.csv"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "Checking,12.5\nSavings,-0.25\nClosed?,true\nEmpty,\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}
}

func TestWriteReportReplacesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	ctx := context.Background()
	first := core.Report{Name: "stats", Rows: [][]any{{"old"}, {"rows"}}}
	second := core.Report{Name: "stats", Rows: [][]any{{"new"}}}
	if err := w.WriteReport(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteReport(ctx, second); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new\n" {
		t.Errorf("file content = %q, want previous rows gone", data)
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{12.5, "12.5"},
		{-0.1, "-0.1"},
		{true, "true"},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := formatCell(tt.in); got != tt.want {
			t.Errorf("formatCell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
