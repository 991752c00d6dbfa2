package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/equitylens/equitylens/internal/client"
	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/models"
	"github.com/equitylens/equitylens/internal/research"
	"github.com/equitylens/equitylens/internal/valuation"
)

// stubClient is a MarketDataClient returning canned data or errors.
type stubClient struct {
	quote        *models.Quote
	history      *models.HistoricalSeries
	fundamentals *models.FundamentalsOverview
	statements   *models.StatementSet

	quoteErr error
	fundErr  error
}

func (s *stubClient) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	return s.quote, s.quoteErr
}

func (s *stubClient) GetDailyPrices(ctx context.Context, ticker string) (*models.HistoricalSeries, error) {
	return s.history, nil
}

func (s *stubClient) GetOverview(ctx context.Context, ticker string) (*models.FundamentalsOverview, error) {
	return s.fundamentals, s.fundErr
}

func (s *stubClient) GetIncomeStatement(ctx context.Context, ticker string) (*models.StatementSet, error) {
	return s.statements, nil
}

func (s *stubClient) GetBalanceSheet(ctx context.Context, ticker string) (*models.StatementSet, error) {
	return s.statements, nil
}

func (s *stubClient) GetCashFlowStatement(ctx context.Context, ticker string) (*models.StatementSet, error) {
	return s.statements, nil
}

func newStubHandler(stub *stubClient) *StockHandler {
	logger := common.NewSilentLogger()
	svc := research.NewService(stub, logger, valuation.DefaultAssumptions())
	return NewStockHandler(logger, svc)
}

func healthyStub() *stubClient {
	eps := 5.00
	return &stubClient{
		quote:        &models.Quote{Ticker: "IBM", Price: 95.50},
		history:      &models.HistoricalSeries{Ticker: "IBM", Bars: []models.DailyBar{{Close: 95.50}}},
		fundamentals: &models.FundamentalsOverview{Ticker: "IBM", Name: "IBM", EPS: &eps},
		statements:   &models.StatementSet{Ticker: "IBM", Kind: models.StatementIncome},
	}
}

func doRequest(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestStockHandler_Report(t *testing.T) {
	h := newStubHandler(healthyStub())

	rec := doRequest(h, "GET", "/api/stocks/IBM")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}

	var report models.StockReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if report.Ticker != "IBM" {
		t.Errorf("ticker = %q, want IBM", report.Ticker)
	}
	if report.Valuation == nil {
		t.Fatalf("valuation missing (error %q)", report.ValuationError)
	}
	if report.Valuation.IntrinsicValue != 101.06 {
		t.Errorf("intrinsic value = %v, want 101.06", report.Valuation.IntrinsicValue)
	}
}

func TestStockHandler_Quote(t *testing.T) {
	h := newStubHandler(healthyStub())

	rec := doRequest(h, "GET", "/api/stocks/ibm/quote")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}

	var quote models.Quote
	if err := json.Unmarshal(rec.Body.Bytes(), &quote); err != nil {
		t.Fatalf("unmarshal quote: %v", err)
	}
	if quote.Price != 95.50 {
		t.Errorf("price = %v, want 95.50", quote.Price)
	}
}

func TestStockHandler_Statements(t *testing.T) {
	h := newStubHandler(healthyStub())

	for _, kind := range []string{"income", "balance", "cashflow"} {
		rec := doRequest(h, "GET", "/api/stocks/IBM/statements/"+kind)
		if rec.Code != http.StatusOK {
			t.Errorf("statements/%s status = %d, want 200", kind, rec.Code)
		}
	}

	rec := doRequest(h, "GET", "/api/stocks/IBM/statements/quarterly")
	if rec.Code != http.StatusNotFound {
		t.Errorf("statements/quarterly status = %d, want 404", rec.Code)
	}
}

func TestStockHandler_ValuationWithOverrides(t *testing.T) {
	h := newStubHandler(healthyStub())

	rec := doRequest(h, "GET", "/api/stocks/IBM/valuation?growth=0.04&discount=0.09")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}

	var summary models.ValuationSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if summary.Assumptions.GrowthRate != 0.04 {
		t.Errorf("growth = %v, want override 0.04", summary.Assumptions.GrowthRate)
	}
	if summary.Assumptions.DiscountRate != 0.09 {
		t.Errorf("discount = %v, want override 0.09", summary.Assumptions.DiscountRate)
	}
	// Unspecified parameters keep the defaults
	if summary.Assumptions.ForecastYears != 5 {
		t.Errorf("years = %v, want default 5", summary.Assumptions.ForecastYears)
	}
}

func TestStockHandler_ValuationBadParameter(t *testing.T) {
	h := newStubHandler(healthyStub())

	rec := doRequest(h, "GET", "/api/stocks/IBM/valuation?growth=lots")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStockHandler_ValuationInvalidModelInputs(t *testing.T) {
	h := newStubHandler(healthyStub())

	// growth above discount violates a model precondition
	rec := doRequest(h, "GET", "/api/stocks/IBM/valuation?growth=0.10&discount=0.08")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body %s", rec.Code, rec.Body)
	}
}

func TestStockHandler_ValuationUnavailableIsNotAnError(t *testing.T) {
	stub := healthyStub()
	stub.fundamentals = &models.FundamentalsOverview{Ticker: "IBM", Name: "IBM"} // no EPS
	h := newStubHandler(stub)

	rec := doRequest(h, "GET", "/api/stocks/IBM/valuation")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "unavailable" {
		t.Errorf("status field = %q, want unavailable", resp["status"])
	}
	if resp["reason"] == "" {
		t.Error("reason field empty")
	}
}

func TestStockHandler_ProviderErrorMapsTo422(t *testing.T) {
	stub := healthyStub()
	stub.quoteErr = &client.ProviderError{Operation: "GLOBAL_QUOTE", Ticker: "WRONG", Message: "Invalid API call"}
	h := newStubHandler(stub)

	rec := doRequest(h, "GET", "/api/stocks/WRONG/quote")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422; body %s", rec.Code, rec.Body)
	}
}

func TestStockHandler_TransportErrorMapsTo502(t *testing.T) {
	stub := healthyStub()
	stub.quoteErr = &client.TransportError{Operation: "GLOBAL_QUOTE", Ticker: "IBM", StatusCode: http.StatusServiceUnavailable}
	h := newStubHandler(stub)

	rec := doRequest(h, "GET", "/api/stocks/IBM/quote")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502; body %s", rec.Code, rec.Body)
	}
}

func TestStockHandler_UnknownResource(t *testing.T) {
	h := newStubHandler(healthyStub())

	rec := doRequest(h, "GET", "/api/stocks/IBM/dividends")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStockHandler_MethodNotAllowed(t *testing.T) {
	h := newStubHandler(healthyStub())

	rec := doRequest(h, "POST", "/api/stocks/IBM")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(common.NewSilentLogger())

	rec := doRequest(h, "GET", "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q, want ok", resp["status"])
	}
}

func TestVersionHandler(t *testing.T) {
	h := NewVersionHandler(common.NewSilentLogger())

	rec := doRequest(h, "GET", "/api/version")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["version"] == "" {
		t.Error("version field empty")
	}
}
