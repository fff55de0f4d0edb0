package sheets

import (
	"context"

	"ledgerstats/internal/core"
)

// ReportSink accepts one named report per call. Implementations decide where
// a report name lands (a spreadsheet range, a CSV file). A failed write only
// affects that report; the caller keeps writing the others.
type ReportSink interface {
	WriteReport(ctx context.Context, r core.Report) error
}
