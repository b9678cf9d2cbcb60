package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mekonee/stockscope/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

func TestFMPConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(cfg *FMPConfig)
		wantErr     bool
		errContains []string
	}{
		{
			name:    "valid config returns nil",
			modify:  func(cfg *FMPConfig) {},
			wantErr: false,
		},
		{
			name:        "missing APIKey",
			modify:      func(cfg *FMPConfig) { cfg.APIKey = "" },
			wantErr:     true,
			errContains: []string{"fmp api key cannot be an empty string"},
		},
		{
			name:        "missing BaseURL",
			modify:      func(cfg *FMPConfig) { cfg.BaseURL = "" },
			wantErr:     true,
			errContains: []string{"base url cannot be an empty string"},
		},
		{
			name:        "missing Logger",
			modify:      func(cfg *FMPConfig) { cfg.Logger = nil },
			wantErr:     true,
			errContains: []string{"logger cannot be nil"},
		},
		{
			name:    "multiple missing fields",
			modify:  func(cfg *FMPConfig) { *cfg = FMPConfig{} },
			wantErr: true,
			errContains: []string{
				"fmp api key cannot be an empty string",
				"base url cannot be an empty string",
				"logger cannot be nil",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &FMPConfig{
				APIKey:  "apikey",
				BaseURL: BaseURL,
				Logger:  &log.Logger,
			}
			tt.modify(cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			for _, want := range tt.errContains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected error to contain %q, got %v", want, err)
				}
			}
		})
	}
}

// setupClient starts a test server serving the provided handler and returns a
// client pointed at it.
func setupClient(t *testing.T, handler http.HandlerFunc) *FMPClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewFMPClient(&FMPConfig{
		APIKey:  "apikey",
		BaseURL: server.URL,
		Logger:  &log.Logger,
	})
	assert.NoError(t, err)

	return client
}

func TestFetchDailyHistorical(t *testing.T) {
	data := `[{"symbol":"AAPL","date":"2024-01-03","open":12,"high":16,"low":11,"close":14,"volume":7},
	{"symbol":"AAPL","date":"2024-01-02","open":10,"high":15,"low":8,"close":12,"volume":5}]`

	var gotPath, gotQuery string
	client := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(data))
	})

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	rows, err := client.FetchDailyHistorical(context.Background(), "AAPL", start, end)
	assert.NoError(t, err)
	assert.Equal(t, len(rows), 2)
	assert.Equal(t, gotPath, "/historical-price-eod/full")
	assert.True(t, strings.Contains(gotQuery, "symbol=AAPL"))
	assert.True(t, strings.Contains(gotQuery, "from=2024-01-01"))
	assert.True(t, strings.Contains(gotQuery, "to=2024-01-05"))

	// Ensure parsed rows round-trip into ordered candlesticks.
	candles, err := shared.ParseCandlesticks(rows, "AAPL", shared.OneDay)
	assert.NoError(t, err)
	assert.Equal(t, len(candles), 2)
	assert.True(t, candles[0].Date.Before(candles[1].Date))
}

func TestFetchIntradayHistorical(t *testing.T) {
	data := `[{"date":"2024-01-02 15:00:00","open":10,"high":15,"low":8,"close":12,"volume":5}]`

	var gotPath string
	client := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(data))
	})

	rows, err := client.FetchIntradayHistorical(context.Background(), "AAPL", shared.OneHour,
		time.Time{}, time.Time{})
	assert.NoError(t, err)
	assert.Equal(t, len(rows), 1)
	assert.Equal(t, gotPath, "/historical-chart/1hour")

	// Ensure unsupported intraday timeframes are an error.
	_, err = client.FetchIntradayHistorical(context.Background(), "AAPL", shared.OneDay,
		time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestFetchProfile(t *testing.T) {
	data := `[{"symbol":"AAPL","companyName":"Apple Inc.","exchangeFullName":"NASDAQ Global Select",
	"currency":"USD","ipoDate":"1980-12-12","isEtf":false,"isFund":false}]`

	client := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(data))
	})

	profile, err := client.FetchProfile(context.Background(), "AAPL")
	assert.NoError(t, err)
	assert.Equal(t, profile.CompanyName, "Apple Inc.")
	assert.True(t, profile.IsEquity())

	// Ensure an empty profile payload is an error.
	empty := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err = empty.FetchProfile(context.Background(), "UNKNOWN")
	assert.Error(t, err)
}

func TestFetchNews(t *testing.T) {
	data := `[{"symbol":"AAPL","publishedDate":"2024-06-03 14:22:00","publisher":"Reuters",
	"title":"Apple unveils new chips","url":"https://example.com/a"}]`

	var gotQuery string
	client := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(data))
	})

	items, err := client.FetchNews(context.Background(), "AAPL", 10)
	assert.NoError(t, err)
	assert.Equal(t, len(items), 1)
	assert.Equal(t, items[0].Publisher, "Reuters")
	assert.True(t, strings.Contains(gotQuery, "symbols=AAPL"))
	assert.True(t, strings.Contains(gotQuery, "limit=10"))
}

func TestFetchErrors(t *testing.T) {
	// Ensure non-200 responses surface as errors.
	failing := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := failing.FetchDailyHistorical(context.Background(), "AAPL", time.Time{}, time.Time{})
	assert.Error(t, err)

	// Ensure non-array payloads surface as errors.
	object := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"limit reached"}`))
	})

	_, err = object.FetchDailyHistorical(context.Background(), "AAPL", time.Time{}, time.Time{})
	assert.Error(t, err)
}
