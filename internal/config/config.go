package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"ledgerstats/internal/report"
)

type Config struct {
	// Ledger source
	SourceBackend   string // http, file or memory
	ActualServerURL string
	ActualAPIKey    string
	ActualBudgetID  string
	BudgetFilePath  string

	// Fetch behaviour
	FetchConcurrency int
	CacheSize        int
	CacheTTL         time.Duration

	// Report sink
	SinkBackend              string // sheets, csv or memory
	SpreadsheetID            string
	AccountBalancesRange     string
	CategoryStatsRange       string
	EarmarkedRange           string
	TransactionsRange        string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
	CSVOutputDir             string

	// Earmark extraction
	EarmarkAccounts []string

	// Events (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	cfg := &Config{
		SourceBackend:   getEnv("SOURCE_BACKEND", "http"),
		ActualServerURL: getEnv("ACTUAL_SERVER_URL", ""),
		ActualAPIKey:    getEnv("ACTUAL_SERVER_PASSWORD", ""),
		ActualBudgetID:  getEnv("ACTUAL_BUDGET_ID", ""),
		BudgetFilePath:  getEnv("BUDGET_FILE_PATH", ""),

		FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 8),
		CacheSize:        getEnvInt("CACHE_SIZE", 64),
		CacheTTL:         getEnvDuration("CACHE_TTL", 5*time.Minute),

		SinkBackend:              getEnv("SINK_BACKEND", "sheets"),
		SpreadsheetID:            getEnv("SPREADSHEET_ID", ""),
		AccountBalancesRange:     getEnv("SPREADSHEET_ACCOUNT_BALANCES_RANGE", "Account Balances!A2"),
		CategoryStatsRange:       getEnv("SPREADSHEET_STATS_RANGE", "Category Stats!A2"),
		EarmarkedRange:           getEnv("SPREADSHEET_EARMARKED_TRANSACTIONS_RANGE", "Earmarked!A1"),
		TransactionsRange:        getEnv("SPREADSHEET_TRANSACTIONS_RANGE", "Transactions!A1"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		CSVOutputDir:             getEnv("CSV_OUTPUT_DIR", "./out"),

		EarmarkAccounts: getEnvList("EARMARK_ACCOUNTS", report.DefaultEarmarkAccounts),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ledgerstats"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_events"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	switch c.SourceBackend {
	case "http":
		if c.ActualServerURL == "" {
			errs = append(errs, "ACTUAL_SERVER_URL is required for the http source")
		} else if u, err := url.Parse(c.ActualServerURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Sprintf("invalid server URL '%s': must be http(s)", c.ActualServerURL))
		}
		if c.ActualBudgetID == "" {
			errs = append(errs, "ACTUAL_BUDGET_ID is required for the http source")
		}
	case "file":
		if c.BudgetFilePath == "" {
			errs = append(errs, "BUDGET_FILE_PATH is required for the file source")
		} else if _, err := os.Stat(c.BudgetFilePath); err != nil {
			errs = append(errs, fmt.Sprintf("budget file does not exist: %s", c.BudgetFilePath))
		}
	case "memory":
		// No configuration needed.
	default:
		errs = append(errs, fmt.Sprintf("invalid source backend '%s': must be one of [http file memory]", c.SourceBackend))
	}

	switch c.SinkBackend {
	case "sheets":
		if c.SpreadsheetID == "" {
			errs = append(errs, "SPREADSHEET_ID is required for the sheets sink")
		}
		hasJSON := c.GoogleServiceAccountJSON != ""
		hasFile := c.GoogleServiceAccountFile != ""
		hasADC := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
		if !hasJSON && !hasFile && !hasADC {
			errs = append(errs, "one of GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS must be provided for the sheets sink")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	case "csv":
		if c.CSVOutputDir == "" {
			errs = append(errs, "CSV_OUTPUT_DIR cannot be empty for the csv sink")
		}
	case "memory":
		// No configuration needed.
	default:
		errs = append(errs, fmt.Sprintf("invalid sink backend '%s': must be one of [sheets csv memory]", c.SinkBackend))
	}

	if c.FetchConcurrency < 1 {
		errs = append(errs, fmt.Sprintf("invalid fetch concurrency %d: must be at least 1", c.FetchConcurrency))
	} else if c.FetchConcurrency > 64 {
		errs = append(errs, fmt.Sprintf("invalid fetch concurrency %d: must be at most 64", c.FetchConcurrency))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// Ranges maps report names to their configured spreadsheet ranges.
func (c *Config) Ranges() map[string]string {
	return map[string]string{
		report.ReportAccountBalances:       c.AccountBalancesRange,
		report.ReportCategoryStats:         c.CategoryStatsRange,
		report.ReportEarmarkedTransactions: c.EarmarkedRange,
		report.ReportTransactions:          c.TransactionsRange,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
