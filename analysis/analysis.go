// Package analysis ties market data fetching, indicator calculation and chart
// rendering together for a single symbol and date range.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mekonee/stockscope/chart"
	"github.com/mekonee/stockscope/fetch"
	"github.com/mekonee/stockscope/indicator"
	"github.com/mekonee/stockscope/shared"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Config represents the configuration struct for an analysis.
type Config struct {
	// Symbol represents the analyzed market symbol.
	Symbol string
	// Start is the inclusive start date of the analyzed range (yyyy-mm-dd).
	Start string
	// End is the inclusive end date of the analyzed range (yyyy-mm-dd).
	End string
	// APIKey is the FMP service API Key.
	APIKey string
	// DataFile is an optional filepath to local market data, used instead of
	// the api when set.
	DataFile string
	// ChartDir is the directory rendered charts are written to.
	ChartDir string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("symbol cannot be an empty string"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	switch {
	case cfg.DataFile != "":
		// Local data needs no api key or mandatory range.
	default:
		if cfg.APIKey == "" {
			errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
		}
		if cfg.Start == "" {
			errs = errors.Join(errs, fmt.Errorf("start date cannot be an empty string"))
		}
		if cfg.End == "" {
			errs = errors.Join(errs, fmt.Errorf("end date cannot be an empty string"))
		}
	}

	return errs
}

// parseDate parses an optional yyyy-mm-dd date string.
func parseDate(name string, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	date, err := time.Parse(shared.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s date: %w", name, err)
	}

	return date, nil
}

// between filters entries to those dated within the provided range. Zero range
// bounds are unbounded.
func between[T any](entries []T, date func(*T) time.Time, start time.Time, end time.Time) []T {
	filtered := make([]T, 0, len(entries))
	for idx := range entries {
		d := date(&entries[idx])
		if !start.IsZero() && d.Before(start) {
			continue
		}
		if !end.IsZero() && d.After(end) {
			continue
		}

		filtered = append(filtered, entries[idx])
	}

	return filtered
}

// Analysis represents a stock analysis session for a symbol.
type Analysis struct {
	cfg   *Config
	start time.Time
	end   time.Time

	marketFetcher  shared.MarketFetcher
	profileFetcher shared.ProfileFetcher
	newsFetcher    shared.NewsFetcher

	candles []shared.Candlestick

	sma       []indicator.SMA
	smaWindow int
	macd      []indicator.MACD
	bands     []indicator.BollingerBand
	rsi       []indicator.RSI
	rsiWindow int

	logger *zerolog.Logger
}

// New initializes a new analysis.
func New(cfg *Config) (*Analysis, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating analysis config: %w", err)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	start, err := parseDate("start", cfg.Start)
	if err != nil {
		return nil, err
	}

	end, err := parseDate("end", cfg.End)
	if err != nil {
		return nil, err
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", cfg.End, cfg.Start)
	}

	logger := cfg.Logger.With().Str("component", "analysis").Str("symbol", cfg.Symbol).Logger()

	analysis := &Analysis{
		cfg:    cfg,
		start:  start,
		end:    end,
		logger: &logger,
	}

	switch {
	case cfg.DataFile != "":
		sourceLogger := cfg.Logger.With().Str("component", "filesource").Logger()
		source, err := fetch.NewFileSource(&fetch.FileSourceConfig{
			Symbol:    cfg.Symbol,
			Timeframe: shared.OneDay,
			FilePath:  cfg.DataFile,
			Logger:    &sourceLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating file source: %w", err)
		}

		analysis.marketFetcher = source
	default:
		clientLogger := cfg.Logger.With().Str("component", "fmpclient").Logger()
		client, err := fetch.NewFMPClient(&fetch.FMPConfig{
			APIKey:  cfg.APIKey,
			BaseURL: fetch.BaseURL,
			Logger:  &clientLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating fmp client: %w", err)
		}

		analysis.marketFetcher = client
		analysis.profileFetcher = client
		analysis.newsFetcher = client
	}

	return analysis, nil
}

// Candles returns the fetched candle series.
func (a *Analysis) Candles() []shared.Candlestick {
	return a.candles
}

// FetchStockData fetches and retains the candle series for the analyzed symbol,
// validating the symbol and date range against its listing profile first.
func (a *Analysis) FetchStockData(ctx context.Context) error {
	if a.profileFetcher != nil {
		profile, err := a.profileFetcher.FetchProfile(ctx, a.cfg.Symbol)
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}

		if !profile.IsEquity() {
			return fmt.Errorf("symbol %s does not belong to a stock or equity", a.cfg.Symbol)
		}

		if !profile.IPODate.IsZero() && !a.start.IsZero() && a.start.Before(profile.IPODate) {
			return fmt.Errorf("start date %s precedes the %s listing date %s",
				a.start.Format(shared.DateLayout), a.cfg.Symbol,
				profile.IPODate.Format(shared.DateLayout))
		}

		now, _, err := shared.NewYorkTime()
		if err != nil {
			return fmt.Errorf("fetching new york time: %w", err)
		}

		if a.end.After(now) {
			return fmt.Errorf("end date %s is after the current date",
				a.end.Format(shared.DateLayout))
		}
	}

	data, err := a.marketFetcher.FetchDailyHistorical(ctx, a.cfg.Symbol, a.start, a.end)
	if err != nil {
		return fmt.Errorf("fetching daily historical data: %w", err)
	}

	candles, err := shared.ParseCandlesticks(data, a.cfg.Symbol, shared.OneDay)
	if err != nil {
		return fmt.Errorf("parsing candlesticks: %w", err)
	}

	candles = between(candles, func(c *shared.Candlestick) time.Time { return c.Date },
		a.start, a.end)
	if len(candles) == 0 {
		return fmt.Errorf("%s: %w", a.cfg.Symbol, shared.ErrNoData)
	}

	a.candles = candles

	last := candles[len(candles)-1]
	a.logger.Info().Msgf("fetched %d candles for %s, latest close %.2f (%s)",
		len(candles), a.cfg.Symbol, last.Close, last.FetchSentiment().String())

	return nil
}

// MovingAverage calculates and retains the simple moving average over the fetched
// series. A non-positive window selects the default.
func (a *Analysis) MovingAverage(window int) ([]indicator.SMA, error) {
	if len(a.candles) == 0 {
		return nil, fmt.Errorf("fetch stock data before calculating the moving average: %w", shared.ErrNoData)
	}

	if window <= 0 {
		window = indicator.DefaultSMAWindow
	}

	series, err := indicator.SMASeries(a.candles, window)
	if err != nil {
		return nil, fmt.Errorf("calculating moving average: %w", err)
	}

	a.sma = series
	a.smaWindow = window
	a.logger.Info().Msgf("moving average (window=%d) calculated", window)

	return series, nil
}

// MACD calculates and retains the moving average convergence divergence over the
// fetched series. Non-positive windows select the defaults.
func (a *Analysis) MACD(short int, long int, signal int) ([]indicator.MACD, error) {
	if len(a.candles) == 0 {
		return nil, fmt.Errorf("fetch stock data before calculating macd: %w", shared.ErrNoData)
	}

	series, err := indicator.MACDSeries(a.candles, short, long, signal)
	if err != nil {
		return nil, fmt.Errorf("calculating macd: %w", err)
	}

	a.macd = series
	a.logger.Info().Msg("macd calculated")

	return series, nil
}

// BollingerBands calculates and retains bollinger bands over the fetched series.
// A non-positive window or multiplier selects the defaults.
func (a *Analysis) BollingerBands(window int, stdDevs float64) ([]indicator.BollingerBand, error) {
	if len(a.candles) == 0 {
		return nil, fmt.Errorf("fetch stock data before calculating bollinger bands: %w", shared.ErrNoData)
	}

	series, err := indicator.BollingerBandsSeries(a.candles, window, stdDevs)
	if err != nil {
		return nil, fmt.Errorf("calculating bollinger bands: %w", err)
	}

	a.bands = series
	a.logger.Info().Msg("bollinger bands calculated")

	return series, nil
}

// RSI calculates and retains the relative strength index over the fetched series.
// A non-positive window selects the default.
func (a *Analysis) RSI(window int) ([]indicator.RSI, error) {
	if len(a.candles) == 0 {
		return nil, fmt.Errorf("fetch stock data before calculating rsi: %w", shared.ErrNoData)
	}

	if window <= 0 {
		window = indicator.DefaultRSIWindow
	}

	series, err := indicator.RSISeries(a.candles, window)
	if err != nil {
		return nil, fmt.Errorf("calculating rsi: %w", err)
	}

	a.rsi = series
	a.rsiWindow = window
	a.logger.Info().Msgf("rsi (window=%d) calculated", window)

	return series, nil
}

// plotRange resolves the plot window against the fetched data range.
func (a *Analysis) plotRange(plotStart string, plotEnd string) (time.Time, time.Time, error) {
	dataStart := a.candles[0].Date
	dataEnd := a.candles[len(a.candles)-1].Date

	start, err := parseDate("plot start", plotStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := parseDate("plot end", plotEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if start.IsZero() {
		start = dataStart
	}
	if end.IsZero() {
		end = dataEnd
	}

	if start.Before(dataStart) {
		return time.Time{}, time.Time{}, fmt.Errorf("plot start date %s precedes the fetched data start %s",
			start.Format(shared.DateLayout), dataStart.Format(shared.DateLayout))
	}
	if end.After(dataEnd) {
		return time.Time{}, time.Time{}, fmt.Errorf("plot end date %s is after the fetched data end %s",
			end.Format(shared.DateLayout), dataEnd.Format(shared.DateLayout))
	}

	return start, end, nil
}

// Visualize renders the requested chart for the fetched series and returns the
// written file path. Indicator overlays require their indicator to have been
// calculated. An empty plot start or end defaults to the fetched range.
func (a *Analysis) Visualize(overlay chart.Overlay, plotStart string, plotEnd string) (string, error) {
	if len(a.candles) == 0 {
		return "", fmt.Errorf("fetch stock data before visualizing: %w", shared.ErrNoData)
	}

	start, end, err := a.plotRange(plotStart, plotEnd)
	if err != nil {
		return "", err
	}

	candles := between(a.candles, func(c *shared.Candlestick) time.Time { return c.Date }, start, end)

	var rendered chart.Renderable

	switch overlay {
	case chart.MovingAverage:
		if a.sma == nil {
			return "", fmt.Errorf("moving average not calculated")
		}

		sma := between(a.sma, func(s *indicator.SMA) time.Time { return s.Date }, start, end)
		rendered, err = chart.BuildKline(&chart.KlineConfig{
			Symbol:    a.cfg.Symbol,
			Candles:   candles,
			SMA:       sma,
			SMAWindow: a.smaWindow,
		})
	case chart.Bollinger:
		if a.bands == nil {
			return "", fmt.Errorf("bollinger bands not calculated")
		}

		bands := between(a.bands, func(b *indicator.BollingerBand) time.Time { return b.Date }, start, end)
		rendered, err = chart.BuildKline(&chart.KlineConfig{
			Symbol:  a.cfg.Symbol,
			Candles: candles,
			Bands:   bands,
		})
	case chart.MACD:
		if a.macd == nil {
			return "", fmt.Errorf("macd not calculated")
		}

		macd := between(a.macd, func(m *indicator.MACD) time.Time { return m.Date }, start, end)
		rendered, err = chart.BuildMACDChart(&chart.MACDConfig{Symbol: a.cfg.Symbol, Series: macd})
	case chart.MACDHistogram:
		if a.macd == nil {
			return "", fmt.Errorf("macd not calculated")
		}

		macd := between(a.macd, func(m *indicator.MACD) time.Time { return m.Date }, start, end)
		rendered, err = chart.BuildMACDHistogram(&chart.MACDConfig{Symbol: a.cfg.Symbol, Series: macd})
	case chart.RSI:
		if a.rsi == nil {
			return "", fmt.Errorf("rsi not calculated")
		}

		rsi := between(a.rsi, func(r *indicator.RSI) time.Time { return r.Date }, start, end)
		rendered, err = chart.BuildRSIChart(&chart.RSIConfig{Symbol: a.cfg.Symbol, Series: rsi})
	default:
		rendered, err = chart.BuildKline(&chart.KlineConfig{Symbol: a.cfg.Symbol, Candles: candles})
	}
	if err != nil {
		return "", fmt.Errorf("building %s chart: %w", overlay.String(), err)
	}

	path, err := chart.WriteHTML(rendered, a.cfg.Symbol, overlay, a.cfg.ChartDir)
	if err != nil {
		return "", err
	}

	a.logger.Info().Msgf("%s chart written to %s", overlay.String(), path)

	return path, nil
}

// LatestNews fetches the latest news articles for the analyzed symbol.
func (a *Analysis) LatestNews(ctx context.Context, limit int) ([]shared.NewsItem, error) {
	if a.newsFetcher == nil {
		return nil, fmt.Errorf("news is not available for file-sourced data")
	}

	items, err := a.newsFetcher.FetchNews(ctx, a.cfg.Symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching latest news: %w", err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", a.cfg.Symbol, shared.ErrNoNews)
	}

	return items, nil
}
