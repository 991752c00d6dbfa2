package mcp

import (
	"github.com/equitylens/equitylens/internal/research"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the research tools on the MCP server and returns
// how many were added.
func RegisterTools(s *server.MCPServer, svc *research.Service) int {
	tools := []struct {
		tool    mcp.Tool
		handler server.ToolHandlerFunc
	}{
		{QuoteTool(), QuoteToolHandler(svc)},
		{FundamentalsTool(), FundamentalsToolHandler(svc)},
		{ValuationTool(), ValuationToolHandler(svc)},
		{StatementsTool(), StatementsToolHandler(svc)},
		{ReportTool(), ReportToolHandler(svc)},
	}
	for _, t := range tools {
		s.AddTool(t.tool, t.handler)
	}
	return len(tools)
}

// QuoteTool returns the tool definition for get_quote.
func QuoteTool() mcp.Tool {
	return mcp.NewTool("get_quote",
		mcp.WithDescription("Get the latest market quote for a stock ticker: price, change and change percent."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker symbol, e.g. AAPL")),
	)
}

// FundamentalsTool returns the tool definition for get_fundamentals.
func FundamentalsTool() mcp.Tool {
	return mcp.NewTool("get_fundamentals",
		mcp.WithDescription("Get company overview fundamentals for a stock ticker: name, sector, market cap, P/E ratio, EPS and related figures."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker symbol, e.g. AAPL")),
	)
}

// ValuationTool returns the tool definition for get_valuation.
func ValuationTool() mcp.Tool {
	return mcp.NewTool("get_valuation",
		mcp.WithDescription("Run a two-stage DCF valuation for a stock ticker and compare the intrinsic value against the market price. Model parameters are optional and default to the server's configured assumptions."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker symbol, e.g. AAPL")),
		mcp.WithNumber("growth_rate", mcp.Description("Annual growth rate during the explicit forecast, as a fraction (0.06 = 6%)")),
		mcp.WithNumber("discount_rate", mcp.Description("Discount rate / required rate of return, as a fraction")),
		mcp.WithNumber("forecast_years", mcp.Description("Explicit forecast horizon in years")),
		mcp.WithNumber("perpetual_growth_rate", mcp.Description("Growth rate beyond the forecast horizon, as a fraction")),
	)
}

// StatementsTool returns the tool definition for get_statements.
func StatementsTool() mcp.Tool {
	return mcp.NewTool("get_statements",
		mcp.WithDescription("Get annual financial statements for a stock ticker. Returns the most recent five fiscal years."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker symbol, e.g. AAPL")),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Statement kind: income, balance or cashflow")),
	)
}

// ReportTool returns the tool definition for get_report.
func ReportTool() mcp.Tool {
	return mcp.NewTool("get_report",
		mcp.WithDescription("Get the full research report for a stock ticker: quote, price history, fundamentals and DCF valuation in one call."),
		mcp.WithString("ticker", mcp.Required(), mcp.Description("Stock ticker symbol, e.g. AAPL")),
	)
}
