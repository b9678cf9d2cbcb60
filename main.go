package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mekonee/stockscope/analysis"
	"github.com/mekonee/stockscope/chart"
	"github.com/rs/zerolog/log"
)

// newsLimit is the number of news articles fetched for a symbol.
const newsLimit = 10

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

// run fetches market data for the configured symbol, calculates the requested
// indicators and renders their charts.
func run(ctx context.Context, cfg *Config) error {
	logger := log.With().Str("service", "stockscope").Logger()

	a, err := analysis.New(&analysis.Config{
		Symbol:   cfg.Symbol,
		Start:    cfg.Start,
		End:      cfg.End,
		APIKey:   cfg.FMPAPIKey,
		DataFile: cfg.DataFile,
		ChartDir: cfg.ChartDir,
		Logger:   &logger,
	})
	if err != nil {
		return err
	}

	err = a.FetchStockData(ctx)
	if err != nil {
		return err
	}

	if len(cfg.Indicators) == 0 {
		_, err = a.Visualize(chart.None, "", "")
		if err != nil {
			return err
		}
	}

	for _, name := range cfg.Indicators {
		overlay, err := chart.ParseOverlay(name)
		if err != nil {
			return err
		}

		switch overlay {
		case chart.MovingAverage:
			_, err = a.MovingAverage(0)
		case chart.MACD, chart.MACDHistogram:
			_, err = a.MACD(0, 0, 0)
		case chart.Bollinger:
			_, err = a.BollingerBands(0, 0)
		case chart.RSI:
			_, err = a.RSI(0)
		}
		if err != nil {
			return err
		}

		_, err = a.Visualize(overlay, "", "")
		if err != nil {
			return err
		}
	}

	if cfg.News {
		items, err := a.LatestNews(ctx, newsLimit)
		if err != nil {
			return err
		}

		for _, item := range items {
			logger.Info().Str("publisher", item.Publisher).Str("url", item.URL).Msg(item.Title)
		}
	}

	return nil
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleTermination(ctx, cancel)

	err = run(ctx, &cfg)
	if err != nil {
		log.Printf("running analysis: %v", err)
	}
}
