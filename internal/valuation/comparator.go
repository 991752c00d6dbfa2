package valuation

import (
	"errors"
	"fmt"
	"math"
)

// Classification is the qualitative verdict from comparing intrinsic value
// against the quoted market price.
type Classification string

const (
	Undervalued  Classification = "undervalued"
	Overvalued   Classification = "overvalued"
	FairlyValued Classification = "fairly_valued"
)

// classificationBand is the symmetric tolerance around market price.
// Intrinsic value more than 10% above market reads undervalued, more than
// 10% below reads overvalued.
const classificationBand = 0.10

// ErrValuationUnavailable means the comparator was missing an input and
// refused to classify. Partial data never produces a verdict.
var ErrValuationUnavailable = errors.New("valuation unavailable")

// Verdict combines the engine output with the live market price.
type Verdict struct {
	IntrinsicValue   float64        `json:"intrinsic_value"`
	MarketPrice      float64        `json:"market_price"`
	RelativePricePct float64        `json:"relative_price_pct"`
	Classification   Classification `json:"classification"`
}

// Compare produces the mispricing verdict for an intrinsic value and a
// market price. Fails with ErrValuationUnavailable when either input is
// absent or unusable.
func Compare(intrinsicValue, marketPrice float64) (*Verdict, error) {
	if math.IsNaN(intrinsicValue) || math.IsInf(intrinsicValue, 0) || intrinsicValue <= 0 {
		return nil, fmt.Errorf("%w: no intrinsic value", ErrValuationUnavailable)
	}
	if math.IsNaN(marketPrice) || math.IsInf(marketPrice, 0) || marketPrice <= 0 {
		return nil, fmt.Errorf("%w: no market price", ErrValuationUnavailable)
	}

	verdict := &Verdict{
		IntrinsicValue:   intrinsicValue,
		MarketPrice:      marketPrice,
		RelativePricePct: (marketPrice - intrinsicValue) / intrinsicValue * 100,
	}

	switch {
	case intrinsicValue > marketPrice*(1+classificationBand):
		verdict.Classification = Undervalued
	case intrinsicValue < marketPrice*(1-classificationBand):
		verdict.Classification = Overvalued
	default:
		verdict.Classification = FairlyValued
	}

	return verdict, nil
}
