package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/equitylens/equitylens/internal/client"
	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/models"
	"github.com/equitylens/equitylens/internal/research"
	"github.com/equitylens/equitylens/internal/valuation"
)

// StockHandler serves the research API under /api/stocks/.
type StockHandler struct {
	logger  *common.Logger
	service *research.Service
}

// NewStockHandler creates a new stock research handler.
func NewStockHandler(logger *common.Logger, service *research.Service) *StockHandler {
	return &StockHandler{logger: logger, service: service}
}

// ServeHTTP routes /api/stocks/{ticker}[/{section}[/{kind}]].
func (h *StockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/stocks/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	ticker := parts[0]

	switch {
	case len(parts) == 1:
		h.report(w, r, ticker)
	case len(parts) == 2 && parts[1] == "quote":
		h.quote(w, r, ticker)
	case len(parts) == 2 && parts[1] == "history":
		h.history(w, r, ticker)
	case len(parts) == 2 && parts[1] == "fundamentals":
		h.fundamentals(w, r, ticker)
	case len(parts) == 2 && parts[1] == "valuation":
		h.valuation(w, r, ticker)
	case len(parts) == 3 && parts[1] == "statements":
		h.statements(w, r, ticker, parts[2])
	default:
		WriteError(w, http.StatusNotFound, "unknown stock resource")
	}
}

// report handles GET /api/stocks/{ticker}.
func (h *StockHandler) report(w http.ResponseWriter, r *http.Request, ticker string) {
	assumptions, ok := h.assumptionOverrides(w, r)
	if !ok {
		return
	}

	report, err := h.service.Lookup(r.Context(), ticker, assumptions)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// quote handles GET /api/stocks/{ticker}/quote.
func (h *StockHandler) quote(w http.ResponseWriter, r *http.Request, ticker string) {
	quote, err := h.service.Quote(r.Context(), ticker)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, quote)
}

// history handles GET /api/stocks/{ticker}/history.
func (h *StockHandler) history(w http.ResponseWriter, r *http.Request, ticker string) {
	series, err := h.service.History(r.Context(), ticker)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, series)
}

// fundamentals handles GET /api/stocks/{ticker}/fundamentals.
func (h *StockHandler) fundamentals(w http.ResponseWriter, r *http.Request, ticker string) {
	overview, err := h.service.Fundamentals(r.Context(), ticker)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}

// valuation handles GET /api/stocks/{ticker}/valuation with optional
// growth/discount/years/terminal query overrides.
func (h *StockHandler) valuation(w http.ResponseWriter, r *http.Request, ticker string) {
	assumptions, ok := h.assumptionOverrides(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Valuation(r.Context(), ticker, assumptions)
	if err != nil {
		if errors.Is(err, valuation.ErrValuationUnavailable) {
			// Missing data is an expected state, not a request failure
			WriteJSON(w, http.StatusOK, map[string]string{
				"status": "unavailable",
				"reason": err.Error(),
			})
			return
		}
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// statements handles GET /api/stocks/{ticker}/statements/{kind}.
func (h *StockHandler) statements(w http.ResponseWriter, r *http.Request, ticker, kind string) {
	var statementKind models.StatementKind
	switch kind {
	case "income":
		statementKind = models.StatementIncome
	case "balance":
		statementKind = models.StatementBalance
	case "cashflow":
		statementKind = models.StatementCashFlow
	default:
		WriteError(w, http.StatusNotFound, "unknown statement kind: "+kind)
		return
	}

	set, err := h.service.Statements(r.Context(), ticker, statementKind)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, set)
}

// assumptionOverrides parses optional valuation parameters from the query
// string. Returns (nil, true) when no overrides are present.
func (h *StockHandler) assumptionOverrides(w http.ResponseWriter, r *http.Request) (*valuation.Assumptions, bool) {
	q := r.URL.Query()
	if q.Get("growth") == "" && q.Get("discount") == "" && q.Get("years") == "" && q.Get("terminal") == "" {
		return nil, true
	}

	a := h.service.Defaults()

	if v := q.Get("growth"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid growth parameter: "+v)
			return nil, false
		}
		a.GrowthRate = f
	}
	if v := q.Get("discount"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid discount parameter: "+v)
			return nil, false
		}
		a.DiscountRate = f
	}
	if v := q.Get("years"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid years parameter: "+v)
			return nil, false
		}
		a.ForecastYears = n
	}
	if v := q.Get("terminal"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid terminal parameter: "+v)
			return nil, false
		}
		a.PerpetualGrowthRate = f
	}

	return &a, true
}

// writeServiceError maps service errors onto HTTP statuses: provider logical
// failures are the request's fault (422), transport failures are upstream
// infrastructure (502), model precondition violations are bad input (400),
// and a superseded lookup means the client already moved on (409).
func (h *StockHandler) writeServiceError(w http.ResponseWriter, err error) {
	var providerErr *client.ProviderError
	var transportErr *client.TransportError
	var inputErr *valuation.InputError

	switch {
	case errors.Is(err, research.ErrSuperseded):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &providerErr):
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &transportErr):
		WriteError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &inputErr):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		WriteError(w, http.StatusGatewayTimeout, err.Error())
	default:
		h.logger.Error().Err(err).Msg("stock request failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
