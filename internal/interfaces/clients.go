package interfaces

import (
	"context"

	"github.com/equitylens/equitylens/internal/models"
)

// MarketDataClient provides access to the market-data provider. All
// operations go through the response cache and return typed models; raw
// provider JSON never crosses this boundary.
type MarketDataClient interface {
	// GetQuote retrieves a live price snapshot for a ticker
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)

	// GetDailyPrices retrieves recent daily price history, sorted ascending
	GetDailyPrices(ctx context.Context, ticker string) (*models.HistoricalSeries, error)

	// GetOverview retrieves company fundamentals
	GetOverview(ctx context.Context, ticker string) (*models.FundamentalsOverview, error)

	// GetIncomeStatement retrieves annual income statement reports
	GetIncomeStatement(ctx context.Context, ticker string) (*models.StatementSet, error)

	// GetBalanceSheet retrieves annual balance sheet reports
	GetBalanceSheet(ctx context.Context, ticker string) (*models.StatementSet, error)

	// GetCashFlowStatement retrieves annual cash flow reports
	GetCashFlowStatement(ctx context.Context, ticker string) (*models.StatementSet, error)
}
