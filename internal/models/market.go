// Package models defines data structures for equitylens.
package models

import (
	"sort"
	"time"
)

// Quote holds a real-time price snapshot for a ticker.
type Quote struct {
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`         // absolute change from previous close
	ChangePercent float64   `json:"change_percent"` // percentage change from previous close
	FetchedAt     time.Time `json:"fetched_at"`
}

// DailyBar represents a single day's price data.
type DailyBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
}

// HistoricalSeries holds daily bars for a ticker, sorted ascending by date.
// The provider does not guarantee order, so the parse boundary sorts before
// the series is handed to anything else.
type HistoricalSeries struct {
	Ticker string     `json:"ticker"`
	Bars   []DailyBar `json:"bars"`
}

// SortAscending orders the bars oldest-first.
func (s *HistoricalSeries) SortAscending() {
	sort.Slice(s.Bars, func(i, j int) bool {
		return s.Bars[i].Date.Before(s.Bars[j].Date)
	})
}

// TailWindow returns the most recent n bars. The full series is returned
// when it holds fewer than n observations.
func (s *HistoricalSeries) TailWindow(n int) []DailyBar {
	if n <= 0 || len(s.Bars) == 0 {
		return nil
	}
	if len(s.Bars) <= n {
		return s.Bars
	}
	return s.Bars[len(s.Bars)-n:]
}

// FundamentalsOverview contains company-level fundamental data.
// EPS is the only field the valuation engine consumes; it is a pointer so a
// missing or unparseable provider value is an explicit absence rather than a
// silent zero.
type FundamentalsOverview struct {
	Ticker        string    `json:"ticker"`
	Name          string    `json:"name"`
	Sector        string    `json:"sector"`
	Industry      string    `json:"industry"`
	Description   string    `json:"description,omitempty"`
	MarketCap     float64   `json:"market_cap"`
	PERatio       float64   `json:"pe_ratio"`
	DividendYield float64   `json:"dividend_yield"`
	EPS           *float64  `json:"eps,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// StatementKind identifies one of the three financial statement types.
type StatementKind string

const (
	StatementIncome   StatementKind = "income"
	StatementBalance  StatementKind = "balance"
	StatementCashFlow StatementKind = "cashflow"
)

// StatementReport is a single annual report: a fiscal period end date plus a
// mapping from line-item name to its reported value. Values stay as strings
// the way the provider sends them; display formatting is the consumer's job.
type StatementReport struct {
	FiscalDateEnding string            `json:"fiscal_date_ending"`
	Items            map[string]string `json:"items"`
}

// StatementSet holds the annual reports for one statement type,
// provider-ordered (most recent first) and capped at the display window.
type StatementSet struct {
	Ticker  string            `json:"ticker"`
	Kind    StatementKind     `json:"kind"`
	Reports []StatementReport `json:"reports"`
}

// CacheEntry is a cached provider payload with its storage timestamp.
// An entry is valid only while now - StoredAt stays under the cache TTL.
type CacheEntry struct {
	Key      string    `json:"key" badgerhold:"key"`
	Payload  []byte    `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}
