package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/models"
	"github.com/equitylens/equitylens/internal/research"
	"github.com/equitylens/equitylens/internal/valuation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult marshals v into a text content result.
func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// numberArg extracts a float argument by name. Returns (0, false) when the
// argument is absent or not a number.
func numberArg(r mcp.CallToolRequest, name string) (float64, bool) {
	args := r.GetArguments()
	if args == nil {
		return 0, false
	}
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// QuoteToolHandler returns the handler for get_quote.
func QuoteToolHandler(svc *research.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := r.GetString("ticker", "")
		if ticker == "" {
			return errorResult("ticker is required"), nil
		}
		quote, err := svc.Quote(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(quote), nil
	}
}

// FundamentalsToolHandler returns the handler for get_fundamentals.
func FundamentalsToolHandler(svc *research.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := r.GetString("ticker", "")
		if ticker == "" {
			return errorResult("ticker is required"), nil
		}
		overview, err := svc.Fundamentals(ctx, ticker)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(overview), nil
	}
}

// ValuationToolHandler returns the handler for get_valuation. Optional model
// parameters override the server defaults one by one.
func ValuationToolHandler(svc *research.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := r.GetString("ticker", "")
		if ticker == "" {
			return errorResult("ticker is required"), nil
		}

		var overrides *valuation.Assumptions
		a := svc.Defaults()
		var overridden bool
		if f, ok := numberArg(r, "growth_rate"); ok {
			a.GrowthRate = f
			overridden = true
		}
		if f, ok := numberArg(r, "discount_rate"); ok {
			a.DiscountRate = f
			overridden = true
		}
		if f, ok := numberArg(r, "forecast_years"); ok {
			a.ForecastYears = int(f)
			overridden = true
		}
		if f, ok := numberArg(r, "perpetual_growth_rate"); ok {
			a.PerpetualGrowthRate = f
			overridden = true
		}
		if overridden {
			overrides = &a
		}

		summary, err := svc.Valuation(ctx, ticker, overrides)
		if err != nil {
			if errors.Is(err, valuation.ErrValuationUnavailable) {
				return jsonResult(map[string]string{
					"status": "unavailable",
					"reason": err.Error(),
				}), nil
			}
			return errorResult(err.Error()), nil
		}

		out, err := json.Marshal(summary)
		if err != nil {
			return errorResult("failed to marshal result"), nil
		}
		headline := fmt.Sprintf("%s: intrinsic %s vs market %s (%s, margin %s), %s",
			ticker,
			common.FormatMoney(summary.IntrinsicValue),
			common.FormatMoney(summary.MarketPrice),
			common.FormatSignedPct(summary.RelativePricePct),
			common.FormatSignedMoney(summary.IntrinsicValue-summary.MarketPrice),
			summary.Classification,
		)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(headline),
				mcp.NewTextContent(string(out)),
			},
		}, nil
	}
}

// StatementsToolHandler returns the handler for get_statements.
func StatementsToolHandler(svc *research.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := r.GetString("ticker", "")
		if ticker == "" {
			return errorResult("ticker is required"), nil
		}

		var kind models.StatementKind
		switch r.GetString("kind", "") {
		case "income":
			kind = models.StatementIncome
		case "balance":
			kind = models.StatementBalance
		case "cashflow":
			kind = models.StatementCashFlow
		default:
			return errorResult("kind must be one of: income, balance, cashflow"), nil
		}

		set, err := svc.Statements(ctx, ticker, kind)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(set), nil
	}
}

// ReportToolHandler returns the handler for get_report.
func ReportToolHandler(svc *research.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := r.GetString("ticker", "")
		if ticker == "" {
			return errorResult("ticker is required"), nil
		}
		report, err := svc.Lookup(ctx, ticker, nil)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(report), nil
	}
}
