package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/equitylens/equitylens/internal/models"
)

// parseQuote maps a GLOBAL_QUOTE payload to a Quote. The change percent
// arrives as a signed string with a trailing "%".
func parseQuote(ticker string, raw []byte) (*models.Quote, error) {
	var payload struct {
		GlobalQuote struct {
			Symbol        string `json:"01. symbol"`
			Price         string `json:"05. price"`
			Change        string `json:"09. change"`
			ChangePercent string `json:"10. change percent"`
		} `json:"Global Quote"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse quote for %s: %w", ticker, err)
	}

	q := payload.GlobalQuote
	if q.Price == "" {
		// Unknown symbols come back as an empty Global Quote object
		return nil, &ProviderError{Operation: opQuote, Ticker: ticker, Message: "empty quote payload"}
	}

	price, err := strconv.ParseFloat(q.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("unparseable quote price %q for %s: %w", q.Price, ticker, err)
	}

	change, err := strconv.ParseFloat(q.Change, 64)
	if err != nil {
		return nil, fmt.Errorf("unparseable quote change %q for %s: %w", q.Change, ticker, err)
	}

	changePct, err := parsePercent(q.ChangePercent)
	if err != nil {
		return nil, fmt.Errorf("unparseable change percent %q for %s: %w", q.ChangePercent, ticker, err)
	}

	return &models.Quote{
		Ticker:        ticker,
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
		FetchedAt:     time.Now(),
	}, nil
}

// parsePercent parses a provider percentage string such as "-1.0581%".
func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return strconv.ParseFloat(s, 64)
}

// parseDailySeries maps a TIME_SERIES_DAILY_ADJUSTED payload into an
// ascending-by-date series. The provider keys bars by date string and
// guarantees neither order nor anything else, so bars with a malformed date
// or close are dropped rather than poisoning the series.
func parseDailySeries(ticker string, raw []byte) (*models.HistoricalSeries, error) {
	var payload struct {
		TimeSeries map[string]struct {
			Open     string `json:"1. open"`
			High     string `json:"2. high"`
			Low      string `json:"3. low"`
			Close    string `json:"4. close"`
			AdjClose string `json:"5. adjusted close"`
			Volume   string `json:"6. volume"`
		} `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse daily series for %s: %w", ticker, err)
	}
	if len(payload.TimeSeries) == 0 {
		return nil, &ProviderError{Operation: opDaily, Ticker: ticker, Message: "empty time series payload"}
	}

	series := &models.HistoricalSeries{
		Ticker: ticker,
		Bars:   make([]models.DailyBar, 0, len(payload.TimeSeries)),
	}
	for date, bar := range payload.TimeSeries {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		closePx, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			continue
		}

		open, _ := strconv.ParseFloat(bar.Open, 64)
		high, _ := strconv.ParseFloat(bar.High, 64)
		low, _ := strconv.ParseFloat(bar.Low, 64)
		adjClose, _ := strconv.ParseFloat(bar.AdjClose, 64)
		volume, _ := strconv.ParseInt(bar.Volume, 10, 64)

		series.Bars = append(series.Bars, models.DailyBar{
			Date:     day,
			Open:     open,
			High:     high,
			Low:      low,
			Close:    closePx,
			AdjClose: adjClose,
			Volume:   volume,
		})
	}

	series.SortAscending()
	return series, nil
}

// parseOverview maps an OVERVIEW payload to fundamentals. EPS is the only
// field valuation depends on; when the provider sends it missing, "None", or
// otherwise unparseable, it stays nil so downstream sees an explicit absence
// instead of a zero.
func parseOverview(ticker string, raw []byte) (*models.FundamentalsOverview, error) {
	var payload struct {
		Symbol        string `json:"Symbol"`
		Name          string `json:"Name"`
		Sector        string `json:"Sector"`
		Industry      string `json:"Industry"`
		Description   string `json:"Description"`
		MarketCap     string `json:"MarketCapitalization"`
		PERatio       string `json:"PERatio"`
		DividendYield string `json:"DividendYield"`
		EPS           string `json:"EPS"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse overview for %s: %w", ticker, err)
	}
	if payload.Symbol == "" && payload.Name == "" {
		return nil, &ProviderError{Operation: opOverview, Ticker: ticker, Message: "empty overview payload"}
	}

	overview := &models.FundamentalsOverview{
		Ticker:      ticker,
		Name:        payload.Name,
		Sector:      payload.Sector,
		Industry:    payload.Industry,
		Description: payload.Description,
		FetchedAt:   time.Now(),
	}

	overview.MarketCap, _ = strconv.ParseFloat(payload.MarketCap, 64)
	overview.PERatio, _ = strconv.ParseFloat(payload.PERatio, 64)
	overview.DividendYield, _ = strconv.ParseFloat(payload.DividendYield, 64)

	if eps, err := strconv.ParseFloat(payload.EPS, 64); err == nil {
		overview.EPS = &eps
	}

	return overview, nil
}

// parseStatements maps an annualReports payload to a StatementSet, keeping
// the provider's most-recent-first order and the display window of reports.
func parseStatements(ticker string, kind models.StatementKind, raw []byte) (*models.StatementSet, error) {
	var payload struct {
		AnnualReports []map[string]string `json:"annualReports"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse %s statements for %s: %w", kind, ticker, err)
	}
	if len(payload.AnnualReports) == 0 {
		return nil, &ProviderError{Operation: statementOp(kind), Ticker: ticker, Message: "no annual reports in payload"}
	}

	reports := payload.AnnualReports
	if len(reports) > statementDisplayWindow {
		reports = reports[:statementDisplayWindow]
	}

	set := &models.StatementSet{
		Ticker:  ticker,
		Kind:    kind,
		Reports: make([]models.StatementReport, 0, len(reports)),
	}
	for _, record := range reports {
		report := models.StatementReport{
			FiscalDateEnding: record["fiscalDateEnding"],
			Items:            make(map[string]string, len(record)),
		}
		for item, value := range record {
			if item == "fiscalDateEnding" {
				continue
			}
			report.Items[item] = value
		}
		set.Reports = append(set.Reports, report)
	}

	return set, nil
}

func statementOp(kind models.StatementKind) string {
	switch kind {
	case models.StatementBalance:
		return opBalance
	case models.StatementCashFlow:
		return opCashFlow
	default:
		return opIncome
	}
}
