package main

import (
	"os"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "valid config, api sourced",
			cfg: Config{
				Symbol:    "AAPL",
				Start:     "2024-01-01",
				End:       "2024-02-01",
				FMPAPIKey: "apikey",
			},
			wantErr: nil,
		},
		{
			name: "missing symbol",
			cfg: Config{
				Start:     "2024-01-01",
				End:       "2024-02-01",
				FMPAPIKey: "apikey",
			},
			wantErr: []string{"symbol cannot be an empty string"},
		},
		{
			name: "missing api key and range",
			cfg: Config{
				Symbol: "AAPL",
			},
			wantErr: []string{
				"fmp api key cannot be an empty string",
				"start date cannot be an empty string",
				"end date cannot be an empty string",
			},
		},
		{
			name: "file sourced needs no api key or range",
			cfg: Config{
				Symbol:   "AAPL",
				DataFile: "/tmp/data.json",
			},
			wantErr: nil,
		},
		{
			name: "valid indicators",
			cfg: Config{
				Symbol:     "AAPL",
				DataFile:   "/tmp/data.json",
				Indicators: []string{"ma", "macd", "macdhist", "bollinger", "rsi"},
			},
			wantErr: nil,
		},
		{
			name: "unknown indicator",
			cfg: Config{
				Symbol:     "AAPL",
				DataFile:   "/tmp/data.json",
				Indicators: []string{"vwap"},
			},
			wantErr: []string{"unknown indicator provided: vwap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error(s) %v, got none", tt.wantErr)
					return
				}
				for _, want := range tt.wantErr {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("expected error to contain %q, got %v", want, err)
					}
				}
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	// Save and restore original os.Args and affected environment variables.
	origArgs := os.Args
	keys := []string{"symbol", "start", "end", "fmpapikey", "datafile", "chartdir", "indicators", "news"}
	origEnv := make(map[string]string, len(keys))
	for _, key := range keys {
		origEnv[key] = os.Getenv(key)
	}
	defer func() {
		os.Args = origArgs
		for key, value := range origEnv {
			os.Setenv(key, value)
		}
	}()

	os.Setenv("symbol", "AAPL")
	os.Setenv("start", "2024-01-01")
	os.Setenv("end", "2024-02-01")
	os.Setenv("fmpapikey", "apikey")
	os.Setenv("indicators", "ma,rsi")
	os.Setenv("news", "true")
	os.Args = []string{"stockscope"}

	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %q", cfg.Symbol)
	}
	if cfg.Start != "2024-01-01" || cfg.End != "2024-02-01" {
		t.Errorf("unexpected analysis range: %q - %q", cfg.Start, cfg.End)
	}
	if len(cfg.Indicators) != 2 || cfg.Indicators[0] != "ma" || cfg.Indicators[1] != "rsi" {
		t.Errorf("unexpected indicators: %v", cfg.Indicators)
	}
	if !cfg.News {
		t.Errorf("expected the news flag to be set")
	}
}
