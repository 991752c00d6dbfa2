package client

import (
	"errors"
	"testing"

	"github.com/equitylens/equitylens/internal/models"
)

func TestParseQuote_EmptyGlobalQuote(t *testing.T) {
	// Unknown symbols come back as 200 with an empty object
	_, err := parseQuote("WRONG", []byte(`{"Global Quote": {}}`))
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %T (%v), want *ProviderError", err, err)
	}
}

func TestParseQuote_UnparseablePrice(t *testing.T) {
	raw := []byte(`{"Global Quote": {"05. price": "not-a-number", "09. change": "0", "10. change percent": "0%"}}`)
	if _, err := parseQuote("IBM", raw); err == nil {
		t.Fatal("parseQuote succeeded on a non-numeric price")
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"-1.0567%", -1.0567},
		{"2.31%", 2.31},
		{" 0.5000% ", 0.5},
		{"3.2", 3.2},
	}
	for _, tt := range tests {
		got, err := parsePercent(tt.in)
		if err != nil {
			t.Errorf("parsePercent(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePercent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDailySeries_SortsAscending(t *testing.T) {
	raw := []byte(`{
		"Time Series (Daily)": {
			"2025-05-30": {"1. open": "10", "2. high": "11", "3. low": "9", "4. close": "10.5", "5. adjusted close": "10.5", "6. volume": "1000"},
			"2025-05-28": {"1. open": "9", "2. high": "10", "3. low": "8", "4. close": "9.5", "5. adjusted close": "9.5", "6. volume": "800"},
			"2025-05-29": {"1. open": "9.5", "2. high": "10.5", "3. low": "9", "4. close": "10.0", "5. adjusted close": "10.0", "6. volume": "900"}
		}
	}`)

	series, err := parseDailySeries("IBM", raw)
	if err != nil {
		t.Fatalf("parseDailySeries: %v", err)
	}
	if len(series.Bars) != 3 {
		t.Fatalf("bars = %d, want 3", len(series.Bars))
	}
	for i := 1; i < len(series.Bars); i++ {
		if !series.Bars[i-1].Date.Before(series.Bars[i].Date) {
			t.Errorf("bars out of order at %d: %v then %v", i, series.Bars[i-1].Date, series.Bars[i].Date)
		}
	}
	if series.Bars[0].Close != 9.5 {
		t.Errorf("oldest close = %v, want 9.5", series.Bars[0].Close)
	}
}

func TestParseDailySeries_SkipsMalformedBars(t *testing.T) {
	raw := []byte(`{
		"Time Series (Daily)": {
			"2025-05-30": {"4. close": "10.5"},
			"not-a-date": {"4. close": "10.0"},
			"2025-05-29": {"4. close": "garbage"}
		}
	}`)

	series, err := parseDailySeries("IBM", raw)
	if err != nil {
		t.Fatalf("parseDailySeries: %v", err)
	}
	if len(series.Bars) != 1 {
		t.Errorf("bars = %d, want 1 (malformed bars dropped)", len(series.Bars))
	}
}

func TestParseDailySeries_EmptyPayload(t *testing.T) {
	_, err := parseDailySeries("IBM", []byte(`{"Time Series (Daily)": {}}`))
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %T (%v), want *ProviderError", err, err)
	}
}

func TestParseOverview_EPSPresent(t *testing.T) {
	raw := []byte(`{"Symbol": "IBM", "Name": "International Business Machines", "Sector": "TECHNOLOGY", "EPS": "10.64", "PERatio": "22.4"}`)

	overview, err := parseOverview("IBM", raw)
	if err != nil {
		t.Fatalf("parseOverview: %v", err)
	}
	if overview.EPS == nil {
		t.Fatal("EPS = nil, want 10.64")
	}
	if *overview.EPS != 10.64 {
		t.Errorf("EPS = %v, want 10.64", *overview.EPS)
	}
	if overview.PERatio != 22.4 {
		t.Errorf("PERatio = %v, want 22.4", overview.PERatio)
	}
}

func TestParseOverview_EPSAbsentStaysNil(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing field", `{"Symbol": "IBM", "Name": "IBM"}`},
		{"None sentinel", `{"Symbol": "IBM", "Name": "IBM", "EPS": "None"}`},
		{"empty string", `{"Symbol": "IBM", "Name": "IBM", "EPS": ""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overview, err := parseOverview("IBM", []byte(tt.raw))
			if err != nil {
				t.Fatalf("parseOverview: %v", err)
			}
			if overview.EPS != nil {
				t.Errorf("EPS = %v, want nil", *overview.EPS)
			}
		})
	}
}

func TestParseOverview_EmptyPayload(t *testing.T) {
	_, err := parseOverview("WRONG", []byte(`{}`))
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %T (%v), want *ProviderError", err, err)
	}
}

func TestParseStatements_KeepsWindowAndOrder(t *testing.T) {
	raw := []byte(`{
		"annualReports": [
			{"fiscalDateEnding": "2024-12-31", "totalRevenue": "62753000000"},
			{"fiscalDateEnding": "2023-12-31", "totalRevenue": "61860000000"},
			{"fiscalDateEnding": "2022-12-31", "totalRevenue": "60530000000"},
			{"fiscalDateEnding": "2021-12-31", "totalRevenue": "57350000000"},
			{"fiscalDateEnding": "2020-12-31", "totalRevenue": "55179000000"},
			{"fiscalDateEnding": "2019-12-31", "totalRevenue": "57714000000"},
			{"fiscalDateEnding": "2018-12-31", "totalRevenue": "79591000000"}
		]
	}`)

	set, err := parseStatements("IBM", models.StatementIncome, raw)
	if err != nil {
		t.Fatalf("parseStatements: %v", err)
	}
	if len(set.Reports) != 5 {
		t.Fatalf("reports = %d, want 5", len(set.Reports))
	}
	if set.Reports[0].FiscalDateEnding != "2024-12-31" {
		t.Errorf("first report = %q, want most recent first", set.Reports[0].FiscalDateEnding)
	}
	if set.Reports[4].FiscalDateEnding != "2020-12-31" {
		t.Errorf("last report = %q, want 2020-12-31", set.Reports[4].FiscalDateEnding)
	}
	if set.Reports[0].Items["totalRevenue"] != "62753000000" {
		t.Errorf("totalRevenue = %q, want raw provider string", set.Reports[0].Items["totalRevenue"])
	}
	if _, ok := set.Reports[0].Items["fiscalDateEnding"]; ok {
		t.Error("fiscalDateEnding duplicated into Items")
	}
}

func TestParseStatements_NoReports(t *testing.T) {
	_, err := parseStatements("IBM", models.StatementBalance, []byte(`{"annualReports": []}`))
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %T (%v), want *ProviderError", err, err)
	}
}
