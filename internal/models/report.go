package models

import "time"

// ValuationSummary is the output of the DCF engine and comparator for one
// ticker, combined for display.
type ValuationSummary struct {
	IntrinsicValue   float64              `json:"intrinsic_value"`
	MarketPrice      float64              `json:"market_price"`
	RelativePricePct float64              `json:"relative_price_pct"`
	Classification   string               `json:"classification"`
	Assumptions      ValuationAssumptions `json:"assumptions"`
}

// ValuationAssumptions mirrors the engine inputs in the report so a reader
// can see which parameters produced the intrinsic value.
type ValuationAssumptions struct {
	GrowthRate          float64 `json:"growth_rate"`
	DiscountRate        float64 `json:"discount_rate"`
	ForecastYears       int     `json:"forecast_years"`
	PerpetualGrowthRate float64 `json:"perpetual_growth_rate"`
}

// StockReport is the full research result for one ticker: the raw display
// data plus the derived valuation. Valuation is nil when it could not be
// computed; ValuationError then carries the reason so the presentation layer
// can render "data unavailable" instead of a fabricated number.
type StockReport struct {
	Ticker         string                `json:"ticker"`
	Quote          *Quote                `json:"quote,omitempty"`
	History        *HistoricalSeries     `json:"history,omitempty"`
	Fundamentals   *FundamentalsOverview `json:"fundamentals,omitempty"`
	Valuation      *ValuationSummary     `json:"valuation,omitempty"`
	ValuationError string                `json:"valuation_error,omitempty"`
	Warnings       []string              `json:"warnings,omitempty"`
	GeneratedAt    time.Time             `json:"generated_at"`
}
