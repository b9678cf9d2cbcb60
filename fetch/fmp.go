package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/mekonee/stockscope/shared"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	// BaseURL is the FMP stable api base url.
	BaseURL = "https://financialmodelingprep.com/stable"

	// requestTimeout is the timeout for api requests.
	requestTimeout = time.Second * 5
)

// FMPConfig represents the configuration for the FMP client.
type FMPConfig struct {
	// APIkey is the FMP API Key.
	APIKey string
	// BaseURL is the base url of the FMP service.
	BaseURL string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *FMPConfig) Validate() error {
	var errs error

	if cfg.APIKey == "" {
		errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
	}
	if cfg.BaseURL == "" {
		errs = errors.Join(errs, fmt.Errorf("base url cannot be an empty string"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// FMPClient represents the Financial Modeling Preparation (FMP) API client.
type FMPClient struct {
	cfg   *FMPConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the FMPClient implements the fetcher interfaces.
var _ shared.MarketFetcher = (*FMPClient)(nil)
var _ shared.ProfileFetcher = (*FMPClient)(nil)
var _ shared.NewsFetcher = (*FMPClient)(nil)

// NewFMPClient instantiates a new FMP client.
func NewFMPClient(cfg *FMPConfig) (*FMPClient, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating fmp config: %w", err)
	}

	return &FMPClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: requestTimeout},
		buf:   bytes.NewBuffer(make([]byte, 0, 512)),
	}, nil
}

// formURL creates full urls including parameters for the api.
func (c *FMPClient) formURL(path string, params string) string {
	c.buf.WriteString(c.cfg.BaseURL)
	c.buf.WriteString(path)
	c.buf.WriteString("?")
	c.buf.WriteString(params)
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// fetchArray fetches the provided url and parses the response as a json array.
func (c *FMPClient) fetchArray(ctx context.Context, formedURL string) ([]gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, formedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", formedURL, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status %d: %s", resp.StatusCode, string(body))
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		c.cfg.Logger.Error().Msgf("unexpected response payload: %s", spew.Sdump(parsed.Value()))
		return nil, fmt.Errorf("expected a json array response from %s", formedURL)
	}

	return parsed.Array(), nil
}

// FetchDailyHistorical fetches daily (end-of-day) historical market data.
func (c *FMPClient) FetchDailyHistorical(ctx context.Context, symbol string, start time.Time, end time.Time) ([]gjson.Result, error) {
	const dailyHistoricalPath = "/historical-price-eod/full"

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("apikey", c.cfg.APIKey)
	if !start.IsZero() {
		params.Add("from", start.Format(shared.DateLayout))
	}
	if !end.IsZero() {
		params.Add("to", end.Format(shared.DateLayout))
	}

	data, err := c.fetchArray(ctx, c.formURL(dailyHistoricalPath, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetching daily historical data for %s: %w", symbol, err)
	}

	return data, nil
}

// FetchIntradayHistorical fetches intraday historical market data.
func (c *FMPClient) FetchIntradayHistorical(ctx context.Context, symbol string, timeframe shared.Timeframe, start time.Time, end time.Time) ([]gjson.Result, error) {
	const oneHourHistoricalPath = "/historical-chart/1hour"

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("apikey", c.cfg.APIKey)
	if !start.IsZero() {
		params.Add("from", start.Format(shared.DateLayout))
	}
	if !end.IsZero() {
		params.Add("to", end.Format(shared.DateLayout))
	}

	var formedURL string

	switch timeframe {
	case shared.OneHour:
		formedURL = c.formURL(oneHourHistoricalPath, params.Encode())
	default:
		return nil, fmt.Errorf("unknown intraday timeframe provided: %s", timeframe.String())
	}

	data, err := c.fetchArray(ctx, formedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching intraday historical data (%s) for %s: %w", timeframe.String(), symbol, err)
	}

	return data, nil
}

// FetchProfile fetches the listing profile for the provided symbol.
func (c *FMPClient) FetchProfile(ctx context.Context, symbol string) (*shared.Profile, error) {
	const profilePath = "/profile"

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("apikey", c.cfg.APIKey)

	data, err := c.fetchArray(ctx, c.formURL(profilePath, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetching profile for %s: %w", symbol, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("no profile found for symbol %s: %w", symbol, shared.ErrNoData)
	}

	profile, err := shared.ParseProfile(data[0])
	if err != nil {
		return nil, fmt.Errorf("parsing profile for %s: %w", symbol, err)
	}

	return profile, nil
}

// FetchNews fetches the latest news articles for the provided symbol.
func (c *FMPClient) FetchNews(ctx context.Context, symbol string, limit int) ([]shared.NewsItem, error) {
	const stockNewsPath = "/news/stock"

	params := url.Values{}
	params.Add("symbols", symbol)
	params.Add("apikey", c.cfg.APIKey)
	if limit > 0 {
		params.Add("limit", strconv.Itoa(limit))
	}

	data, err := c.fetchArray(ctx, c.formURL(stockNewsPath, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetching news for %s: %w", symbol, err)
	}

	items, err := shared.ParseNewsItems(data, symbol)
	if err != nil {
		return nil, fmt.Errorf("parsing news for %s: %w", symbol, err)
	}

	return items, nil
}
