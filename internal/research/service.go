// Package research orchestrates the fetch burst and valuation for a ticker
// lookup. It owns supersession: selecting a new ticker invalidates any
// lookup still in flight, so a slow response for the old ticker can never be
// presented as data for the new one.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/interfaces"
	"github.com/equitylens/equitylens/internal/models"
	"github.com/equitylens/equitylens/internal/valuation"
)

// historyWindow is how many trailing daily bars a report carries.
const historyWindow = 60

// ErrSuperseded means a newer lookup started before this one finished; its
// result must be discarded, not rendered.
var ErrSuperseded = errors.New("lookup superseded by a newer selection")

// Service runs ticker research: concurrent quote/history/fundamentals
// fetches followed by the DCF engine and comparator.
type Service struct {
	client   interfaces.MarketDataClient
	logger   *common.Logger
	defaults valuation.Assumptions

	mu         sync.Mutex
	generation uint64
	cancelPrev context.CancelFunc
}

// NewService creates a research service over the given market-data client.
func NewService(client interfaces.MarketDataClient, logger *common.Logger, defaults valuation.Assumptions) *Service {
	return &Service{
		client:   client,
		logger:   logger,
		defaults: defaults,
	}
}

// Defaults returns the service's default model assumptions.
func (s *Service) Defaults() valuation.Assumptions {
	return s.defaults
}

// Lookup fetches quote, history, and fundamentals for a ticker concurrently,
// then derives the valuation. Starting a lookup cancels any lookup still
// outstanding; if this lookup is itself superseded before finishing, it
// fails with ErrSuperseded.
//
// Partial upstream failures degrade the report (nil section plus a warning)
// rather than failing it, but when both quote and fundamentals are missing
// there is nothing worth returning.
func (s *Service) Lookup(ctx context.Context, ticker string, overrides *valuation.Assumptions) (*models.StockReport, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	gen, lookupCtx := s.beginLookup(ctx)
	s.logger.Debug().Str("ticker", ticker).Int64("generation", int64(gen)).Msg("starting lookup")

	var (
		wg           sync.WaitGroup
		quote        *models.Quote
		history      *models.HistoricalSeries
		fundamentals *models.FundamentalsOverview
		quoteErr     error
		historyErr   error
		fundErr      error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		quote, quoteErr = s.client.GetQuote(lookupCtx, ticker)
	}()
	go func() {
		defer wg.Done()
		history, historyErr = s.client.GetDailyPrices(lookupCtx, ticker)
	}()
	go func() {
		defer wg.Done()
		fundamentals, fundErr = s.client.GetOverview(lookupCtx, ticker)
	}()
	wg.Wait()

	if !s.isCurrent(gen) {
		return nil, ErrSuperseded
	}
	if err := lookupCtx.Err(); err != nil {
		return nil, err
	}

	if quoteErr != nil && fundErr != nil {
		return nil, fmt.Errorf("lookup failed for %s: %w", ticker, quoteErr)
	}

	report := &models.StockReport{
		Ticker:      ticker,
		GeneratedAt: time.Now(),
	}

	if quoteErr != nil {
		report.Warnings = append(report.Warnings, "quote: "+quoteErr.Error())
	} else {
		report.Quote = quote
	}

	if historyErr != nil {
		report.Warnings = append(report.Warnings, "history: "+historyErr.Error())
	} else {
		report.History = &models.HistoricalSeries{
			Ticker: history.Ticker,
			Bars:   history.TailWindow(historyWindow),
		}
	}

	if fundErr != nil {
		report.Warnings = append(report.Warnings, "fundamentals: "+fundErr.Error())
	} else {
		report.Fundamentals = fundamentals
	}

	assumptions := s.resolveAssumptions(overrides)
	summary, valErr := deriveValuation(quote, fundamentals, assumptions)
	if valErr != nil {
		report.ValuationError = valErr.Error()
	} else {
		report.Valuation = summary
	}

	return report, nil
}

// Quote fetches the live quote for a ticker.
func (s *Service) Quote(ctx context.Context, ticker string) (*models.Quote, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	return s.client.GetQuote(ctx, ticker)
}

// History fetches the trailing daily price window for a ticker.
func (s *Service) History(ctx context.Context, ticker string) (*models.HistoricalSeries, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	series, err := s.client.GetDailyPrices(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return &models.HistoricalSeries{
		Ticker: series.Ticker,
		Bars:   series.TailWindow(historyWindow),
	}, nil
}

// Fundamentals fetches the company overview for a ticker.
func (s *Service) Fundamentals(ctx context.Context, ticker string) (*models.FundamentalsOverview, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	return s.client.GetOverview(ctx, ticker)
}

// Statements fetches one financial statement set for a ticker.
func (s *Service) Statements(ctx context.Context, ticker string, kind models.StatementKind) (*models.StatementSet, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	switch kind {
	case models.StatementIncome:
		return s.client.GetIncomeStatement(ctx, ticker)
	case models.StatementBalance:
		return s.client.GetBalanceSheet(ctx, ticker)
	case models.StatementCashFlow:
		return s.client.GetCashFlowStatement(ctx, ticker)
	default:
		return nil, fmt.Errorf("unknown statement kind: %s", kind)
	}
}

// Valuation fetches quote and fundamentals and runs the DCF model with the
// given assumptions (nil means service defaults).
func (s *Service) Valuation(ctx context.Context, ticker string, overrides *valuation.Assumptions) (*models.ValuationSummary, error) {
	ticker, err := normalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	var (
		wg           sync.WaitGroup
		quote        *models.Quote
		fundamentals *models.FundamentalsOverview
		quoteErr     error
		fundErr      error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		quote, quoteErr = s.client.GetQuote(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		fundamentals, fundErr = s.client.GetOverview(ctx, ticker)
	}()
	wg.Wait()

	if fundErr != nil {
		return nil, fundErr
	}
	if quoteErr != nil {
		return nil, quoteErr
	}

	return deriveValuation(quote, fundamentals, s.resolveAssumptions(overrides))
}

// beginLookup registers a new lookup generation and cancels the previous
// in-flight lookup, if any.
func (s *Service) beginLookup(ctx context.Context) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	lookupCtx, cancel := context.WithCancel(ctx)
	s.cancelPrev = cancel
	return s.generation, lookupCtx
}

// isCurrent reports whether gen is still the latest lookup generation.
func (s *Service) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == gen
}

func (s *Service) resolveAssumptions(overrides *valuation.Assumptions) valuation.Assumptions {
	if overrides != nil {
		return *overrides
	}
	return s.defaults
}

// deriveValuation runs the engine and comparator over fetched inputs.
// Missing EPS or a missing quote yields ErrValuationUnavailable; the model
// itself may fail with a valuation.InputError.
func deriveValuation(quote *models.Quote, fundamentals *models.FundamentalsOverview, a valuation.Assumptions) (*models.ValuationSummary, error) {
	if fundamentals == nil || fundamentals.EPS == nil {
		return nil, fmt.Errorf("%w: EPS not reported", valuation.ErrValuationUnavailable)
	}

	intrinsicValue, err := valuation.CalculateDCF(*fundamentals.EPS, a)
	if err != nil {
		return nil, err
	}

	if quote == nil {
		return nil, fmt.Errorf("%w: no market price", valuation.ErrValuationUnavailable)
	}

	verdict, err := valuation.Compare(intrinsicValue, quote.Price)
	if err != nil {
		return nil, err
	}

	return &models.ValuationSummary{
		IntrinsicValue:   verdict.IntrinsicValue,
		MarketPrice:      verdict.MarketPrice,
		RelativePricePct: verdict.RelativePricePct,
		Classification:   string(verdict.Classification),
		Assumptions: models.ValuationAssumptions{
			GrowthRate:          a.GrowthRate,
			DiscountRate:        a.DiscountRate,
			ForecastYears:       a.ForecastYears,
			PerpetualGrowthRate: a.PerpetualGrowthRate,
		},
	}, nil
}

// normalizeTicker uppercases and trims a ticker. The only validation is
// non-emptiness; bad symbols are the provider's to reject.
func normalizeTicker(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", errors.New("ticker must not be empty")
	}
	return ticker, nil
}
