package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"ledgerstats/internal/core"
	ports "ledgerstats/internal/sheets"
)

// Client uploads reports into fixed ranges of one spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Report name -> A1 range, e.g. "Account Balances!A2".
	ranges map[string]string
}

// Ensure interface conformance
var _ ports.ReportSink = (*Client)(nil)

// Config carries the spreadsheet target and credentials for the client.
// Exactly one of CredentialsJSON / CredentialsFile is needed; when both are
// empty GOOGLE_APPLICATION_CREDENTIALS is used.
type Config struct {
	SpreadsheetID   string
	Ranges          map[string]string
	CredentialsJSON string
	CredentialsFile string
}

// New creates a Sheets report sink using service account credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if len(cfg.Ranges) == 0 {
		return nil, errors.New("no report ranges configured")
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		ranges:        cfg.Ranges,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials, inline JSON first, then a credentials file.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	credentialsFile := strings.TrimSpace(cfg.CredentialsFile)
	if strings.TrimSpace(cfg.CredentialsJSON) == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case credentialsFile != "":
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// WriteReport uploads one report into its configured range. Values go in as
// USER_ENTERED so the spreadsheet parses dates and numbers itself.
func (c *Client) WriteReport(ctx context.Context, r core.Report) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng, ok := c.ranges[r.Name]
	if !ok {
		return fmt.Errorf("no range configured for report %q", r.Name)
	}

	vr := &gsheet.ValueRange{
		Range:          rng,
		MajorDimension: "ROWS",
		Values:         toCellValues(r.Rows),
	}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		IncludeValuesInResponse(false).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Uploaded report to Google Sheets",
		"report", r.Name,
		"range", rng,
		"rows", len(r.Rows))
	return nil
}

// toCellValues copies table rows into the API's [][]interface{} shape, mapping
// nils to empty strings so cells are cleared rather than skipped.
func toCellValues(rows [][]any) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			if v == nil {
				cells[j] = ""
				continue
			}
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}
