// Package csv writes reports as CSV files, one file per report, for runs
// without a spreadsheet (or for feeding the stats into other tooling).
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ledgerstats/internal/core"
	ports "ledgerstats/internal/sheets"
)

type Writer struct {
	dir string
}

var _ ports.ReportSink = (*Writer)(nil)

// NewWriter creates a CSV sink writing <report name>.csv files into dir.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteReport writes one report, replacing any previous file of the same name.
func (w *Writer) WriteReport(_ context.Context, r core.Report) error {
	path := filepath.Join(w.dir, r.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	for _, row := range r.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
