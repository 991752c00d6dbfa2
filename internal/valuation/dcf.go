// Package valuation implements the two-stage discounted cash flow model and
// the market-price comparator. Everything here is pure computation: no I/O,
// no clocks, no shared state.
package valuation

import (
	"fmt"
	"math"
)

// Assumptions parameterize the DCF model.
//
// The model is only defined while DiscountRate exceeds both growth rates;
// otherwise the terminal-value denominator collapses.
type Assumptions struct {
	GrowthRate          float64 `json:"growth_rate"`           // annual growth during the explicit forecast
	DiscountRate        float64 `json:"discount_rate"`         // WACC / required rate of return
	ForecastYears       int     `json:"forecast_years"`        // explicit forecast horizon
	PerpetualGrowthRate float64 `json:"perpetual_growth_rate"` // growth beyond the horizon
}

// DefaultAssumptions returns the shipped model parameters: 6% growth,
// 8% discount, 5 forecast years, 2% perpetual growth.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		GrowthRate:          0.06,
		DiscountRate:        0.08,
		ForecastYears:       5,
		PerpetualGrowthRate: 0.02,
	}
}

// InputError reports a precondition violation in the DCF inputs. The engine
// fails with it instead of ever returning NaN or Infinity.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid valuation input: " + e.Reason
}

// CalculateDCF computes intrinsic value per share from an EPS figure and
// model assumptions. EPS stands in for free cash flow per share; the
// statement-level FCF build-up is out of model scope.
//
// Stage one compounds EPS year by year through the explicit forecast and
// discounts each year back. Stage two capitalizes everything beyond the
// horizon as a Gordon-growth perpetuity and discounts that back too.
// The result is deterministic for fixed inputs and rounded to cents.
func CalculateDCF(eps float64, a Assumptions) (float64, error) {
	if math.IsNaN(eps) || math.IsInf(eps, 0) {
		return 0, &InputError{Reason: "EPS must be a finite number"}
	}
	if eps <= 0 {
		return 0, &InputError{Reason: fmt.Sprintf("EPS must be positive, got %g", eps)}
	}
	if a.DiscountRate <= a.GrowthRate {
		return 0, &InputError{Reason: fmt.Sprintf("discount rate %g must exceed growth rate %g", a.DiscountRate, a.GrowthRate)}
	}
	if a.DiscountRate <= a.PerpetualGrowthRate {
		return 0, &InputError{Reason: fmt.Sprintf("discount rate %g must exceed perpetual growth rate %g", a.DiscountRate, a.PerpetualGrowthRate)}
	}
	if a.ForecastYears < 1 {
		return 0, &InputError{Reason: fmt.Sprintf("forecast years must be at least 1, got %d", a.ForecastYears)}
	}

	// Stage one: explicit forecast period
	var presentValueForecast float64
	projectedCashFlow := eps
	for t := 1; t <= a.ForecastYears; t++ {
		projectedCashFlow *= 1 + a.GrowthRate
		presentValueForecast += projectedCashFlow / math.Pow(1+a.DiscountRate, float64(t))
	}

	// Stage two: Gordon-growth terminal value, discounted back to today.
	// The base cash flow takes one year of perpetual growth first.
	terminalBase := projectedCashFlow * (1 + a.PerpetualGrowthRate)
	terminalValue := terminalBase / (a.DiscountRate - a.PerpetualGrowthRate)
	presentValueTerminal := terminalValue / math.Pow(1+a.DiscountRate, float64(a.ForecastYears))

	intrinsicValue := presentValueForecast + presentValueTerminal
	return math.Round(intrinsicValue*100) / 100, nil
}
