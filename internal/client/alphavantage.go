// Package client talks to the Alpha Vantage market-data API (via the
// RapidAPI gateway). It is the only package that sees provider JSON: every
// operation returns a typed model, and the provider's numbered, inconsistent
// field names stay behind this boundary.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/equitylens/equitylens/internal/cache"
	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/config"
	"github.com/equitylens/equitylens/internal/models"
)

// Provider function names, passed as the "function" query parameter.
const (
	opQuote    = "GLOBAL_QUOTE"
	opDaily    = "TIME_SERIES_DAILY_ADJUSTED"
	opOverview = "OVERVIEW"
	opIncome   = "INCOME_STATEMENT"
	opBalance  = "BALANCE_SHEET"
	opCashFlow = "CASH_FLOW"
)

// statementDisplayWindow caps how many annual reports a statement set keeps.
const statementDisplayWindow = 5

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 4 << 20

// AlphaVantageClient issues provider requests through the response cache.
type AlphaVantageClient struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *common.Logger
}

// NewAlphaVantageClient creates a client for the configured provider
// endpoint. All operations route through responseCache, so repeated lookups
// within the freshness window cost no network calls.
func NewAlphaVantageClient(cfg *config.ProviderConfig, responseCache *cache.Cache, logger *common.Logger) *AlphaVantageClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AlphaVantageClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
		httpClient: &http.Client{Timeout: timeout},
		cache:      responseCache,
		logger:     logger,
	}
}

// GetQuote retrieves the live price snapshot for a ticker.
func (c *AlphaVantageClient) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	raw, err := c.fetch(ctx, opQuote, ticker, nil)
	if err != nil {
		return nil, err
	}
	return parseQuote(ticker, raw)
}

// GetDailyPrices retrieves the recent daily price history for a ticker.
// Bars come back sorted ascending by date regardless of provider order.
func (c *AlphaVantageClient) GetDailyPrices(ctx context.Context, ticker string) (*models.HistoricalSeries, error) {
	raw, err := c.fetch(ctx, opDaily, ticker, url.Values{"outputsize": {"compact"}})
	if err != nil {
		return nil, err
	}
	return parseDailySeries(ticker, raw)
}

// GetOverview retrieves company fundamentals for a ticker.
func (c *AlphaVantageClient) GetOverview(ctx context.Context, ticker string) (*models.FundamentalsOverview, error) {
	raw, err := c.fetch(ctx, opOverview, ticker, nil)
	if err != nil {
		return nil, err
	}
	return parseOverview(ticker, raw)
}

// GetIncomeStatement retrieves annual income statement reports.
func (c *AlphaVantageClient) GetIncomeStatement(ctx context.Context, ticker string) (*models.StatementSet, error) {
	return c.getStatements(ctx, opIncome, models.StatementIncome, ticker)
}

// GetBalanceSheet retrieves annual balance sheet reports.
func (c *AlphaVantageClient) GetBalanceSheet(ctx context.Context, ticker string) (*models.StatementSet, error) {
	return c.getStatements(ctx, opBalance, models.StatementBalance, ticker)
}

// GetCashFlowStatement retrieves annual cash flow reports.
func (c *AlphaVantageClient) GetCashFlowStatement(ctx context.Context, ticker string) (*models.StatementSet, error) {
	return c.getStatements(ctx, opCashFlow, models.StatementCashFlow, ticker)
}

func (c *AlphaVantageClient) getStatements(ctx context.Context, op string, kind models.StatementKind, ticker string) (*models.StatementSet, error) {
	raw, err := c.fetch(ctx, op, ticker, nil)
	if err != nil {
		return nil, err
	}
	return parseStatements(ticker, kind, raw)
}

// fetch returns the raw payload for (operation, ticker), from cache when
// fresh, otherwise from the network. Concurrent fetches for the same key
// share one request, and failed responses are never cached.
func (c *AlphaVantageClient) fetch(ctx context.Context, op, ticker string, extra url.Values) ([]byte, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker must not be empty")
	}

	key := cache.MakeKey(op, ticker)
	return c.cache.GetOrFetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		return c.fetchRemote(ctx, op, ticker, extra)
	})
}

func (c *AlphaVantageClient) fetchRemote(ctx context.Context, op, ticker string, extra url.Values) ([]byte, error) {
	params := url.Values{}
	params.Set("function", op)
	params.Set("symbol", ticker)
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Operation: op, Ticker: ticker, Err: err}
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	c.logger.Debug().Str("function", op).Str("ticker", ticker).Msg("fetching from provider")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Operation: op, Ticker: ticker, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Operation: op, Ticker: ticker, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Operation: op, Ticker: ticker, StatusCode: resp.StatusCode}
	}

	// The provider signals bad symbols, rate limits, and plan restrictions
	// inside a 200 body. Reject those before anything caches or parses them.
	var probe struct {
		ErrorMessage string `json:"Error Message"`
		Note         string `json:"Note"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, &TransportError{Operation: op, Ticker: ticker, Err: fmt.Errorf("malformed provider response: %w", err)}
	}
	if probe.ErrorMessage != "" || probe.Note != "" {
		msg := probe.ErrorMessage
		if msg == "" {
			msg = probe.Note
		}
		c.logger.Warn().Str("function", op).Str("ticker", ticker).Str("provider_message", msg).Msg("provider rejected request")
		return nil, &ProviderError{Operation: op, Ticker: ticker, Message: msg}
	}

	return body, nil
}
