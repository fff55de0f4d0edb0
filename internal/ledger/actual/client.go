// Package actual is a LedgerSource over the budgeting service's HTTP API.
package actual

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ledgerstats/internal/cache"
	"ledgerstats/internal/ledger"
)

// Client fetches raw ledger records for one budget. Per-account transaction
// listings are cached for the duration of a run, since the balance summarizer
// and the flattener both walk every account.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	txCache *cache.LRUCache[[]ledger.Transaction]
}

var (
	_ ledger.Source     = (*Client)(nil)
	_ ledger.BankSyncer = (*Client)(nil)
)

// Config for the HTTP ledger source.
type Config struct {
	// ServerURL is the API base, e.g. "https://actual.example.com".
	ServerURL string
	// APIKey authenticates every request via the x-api-key header.
	APIKey string
	// BudgetID is the sync id of the budget to read.
	BudgetID string
	// CacheSize / CacheTTL bound the per-account transactions cache.
	CacheSize int
	CacheTTL  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return nil, fmt.Errorf("missing server URL")
	}
	if strings.TrimSpace(cfg.BudgetID) == "" {
		return nil, fmt.Errorf("missing budget id")
	}
	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 64
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Client{
		http:    newHTTPClient(),
		baseURL: strings.TrimRight(cfg.ServerURL, "/") + "/v1/budgets/" + url.PathEscape(cfg.BudgetID),
		apiKey:  cfg.APIKey,
		txCache: cache.NewLRUCache[[]ledger.Transaction](cacheSize, cacheTTL),
	}, nil
}

// newHTTPClient builds an HTTP client with connection pooling and timeouts
// suited to walking many small API endpoints in one run.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

// envelope is the API's response wrapper.
type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	var out []ledger.Account
	if err := c.get(ctx, "/accounts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTransactions(ctx context.Context, accountID string) ([]ledger.Transaction, error) {
	if cached, ok := c.txCache.Get(accountID); ok {
		return cached, nil
	}
	var out []ledger.Transaction
	if err := c.get(ctx, "/accounts/"+url.PathEscape(accountID)+"/transactions", &out); err != nil {
		return nil, err
	}
	c.txCache.Set(accountID, out)
	return out, nil
}

func (c *Client) ListCategoryGroups(ctx context.Context) ([]ledger.CategoryGroup, error) {
	var out []ledger.CategoryGroup
	if err := c.get(ctx, "/categorygroups", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	var out []ledger.Category
	if err := c.get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPayees(ctx context.Context) ([]ledger.Payee, error) {
	var out []ledger.Payee
	if err := c.get(ctx, "/payees", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SyncAccount asks the service to pull fresh transactions from the bank for
// one account. It invalidates the account's cached transactions on success.
func (c *Client) SyncAccount(ctx context.Context, accountID string) error {
	if err := c.do(ctx, http.MethodPost, "/accounts/"+url.PathEscape(accountID)+"/banksync", nil); err != nil {
		return err
	}
	c.txCache.Delete(accountID)
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, out)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	var env envelope[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil || env.Data == nil {
		// Some deployments return the list bare, without the data envelope.
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
