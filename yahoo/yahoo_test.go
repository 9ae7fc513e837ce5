package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// 2024-02-08 to 2024-02-12 at 09:30 New York time, 2024-02-09 pays a dividend.
const chartKO = `{"chart": {"result": [{
	"meta": {"currency": "USD", "symbol": "KO", "exchangeTimezoneName": "America/New_York"},
	"timestamp": [1707402600, 1707489000, 1707748200, 1707834600],
	"events": {"dividends": {"1707489000": {"amount": 0.46, "date": 1707489000}}},
	"indicators": {
		"quote": [{"close": [59.84, 60.05, null, 60.12]}],
		"adjclose": [{"adjclose": [58.1, 58.3, null, 58.4]}]
	}
}], "error": null}}`

const chartNotFound = `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`

func fakeYahoo(t *testing.T) *Provider {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v8/finance/chart/KO", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		if q := r.URL.Query(); q.Get("interval") != "1d" || q.Get("events") != "div" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(chartKO))
	})
	mux.HandleFunc("/v8/finance/chart/GONE", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(chartNotFound))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &Provider{BaseURL: srv.URL, Client: srv.Client()}
}

func TestProvider_FetchDailySeries(t *testing.T) {
	testCases := []struct {
		name     string
		adjusted bool
		r        date.Range
		want     []string // closes
		dividend []string
	}{
		{"raw", false, date.Between(date.New(2024, 2, 1), date.New(2024, 2, 29)), []string{"59.84", "60.05", "60.12"}, []string{"0", "0.46", "0"}},
		{"adjusted", true, date.Between(date.New(2024, 2, 1), date.New(2024, 2, 29)), []string{"58.1", "58.3", "58.4"}, []string{"0", "0.46", "0"}},
		{"restricted", false, date.Between(date.New(2024, 2, 9), date.New(2024, 2, 12)), []string{"60.05"}, []string{"0.46"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := fakeYahoo(t)
			p.Adjusted = tc.adjusted
			s, err := p.FetchDailySeries(context.Background(), "ko", tc.r)
			if err != nil {
				t.Fatalf("FetchDailySeries() unexpected error = %v", err)
			}
			if s.Len() != len(tc.want) {
				t.Fatalf("FetchDailySeries() len = %d, want %d", s.Len(), len(tc.want))
			}
			for i, o := range s.All() {
				if !o.Close.Equal(decimal.RequireFromString(tc.want[i])) || !o.Dividend.Equal(decimal.RequireFromString(tc.dividend[i])) {
					t.Errorf("FetchDailySeries()[%d] = %v %v, want %v %v", i, o.Close, o.Dividend, tc.want[i], tc.dividend[i])
				}
			}
			if s.Currency() != "USD" {
				t.Errorf("Currency() = %q, want USD", s.Currency())
			}
		})
	}
}

func TestProvider_Dates(t *testing.T) {
	s, err := fakeYahoo(t).FetchDailySeries(context.Background(), "KO", date.Between(date.New(2024, 2, 1), date.New(2024, 2, 29)))
	if err != nil {
		t.Fatalf("FetchDailySeries() unexpected error = %v", err)
	}
	want := []date.Date{date.New(2024, 2, 8), date.New(2024, 2, 9), date.New(2024, 2, 13)}
	for i, o := range s.All() {
		if o.Date != want[i] {
			t.Errorf("FetchDailySeries()[%d].Date = %v, want %v", i, o.Date, want[i])
		}
	}
}

func TestProvider_NotFound(t *testing.T) {
	_, err := fakeYahoo(t).FetchDailySeries(context.Background(), "gone", date.Between(date.New(2024, 2, 1), date.New(2024, 2, 29)))
	if !errors.Is(err, drip.ErrNotFound) {
		t.Errorf("FetchDailySeries() error = %v, want ErrNotFound", err)
	}
}

func TestParse_Empty(t *testing.T) {
	body := `{"chart": {"result": [{"meta": {"currency": "EUR", "exchangeTimezoneName": "Europe/Paris"}, "indicators": {"quote": [{}]}}], "error": null}}`
	s, err := (&Provider{}).parse("AI.PA", []byte(body), date.Between(date.New(2024, 1, 1), date.New(2024, 1, 2)))
	if err != nil {
		t.Fatalf("parse() unexpected error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("parse() len = %d, want 0", s.Len())
	}
}

func TestParse_ChartError(t *testing.T) {
	_, err := (&Provider{}).parse("GONE", []byte(chartNotFound), date.Between(date.New(2024, 1, 1), date.New(2024, 1, 2)))
	if !errors.Is(err, drip.ErrNotFound) {
		t.Errorf("parse() error = %v, want ErrNotFound", err)
	}
}
