package chart

import (
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mekonee/stockscope/indicator"
	"github.com/mekonee/stockscope/shared"
)

// KlineConfig represents the configuration for a candlestick chart.
type KlineConfig struct {
	// Symbol represents the charted market symbol.
	Symbol string
	// Candles represents the charted candle series.
	Candles []shared.Candlestick
	// SMA is an optional moving average overlay.
	SMA []indicator.SMA
	// SMAWindow is the window of the moving average overlay, used for labelling.
	SMAWindow int
	// Bands is an optional bollinger bands overlay.
	Bands []indicator.BollingerBand
}

// Validate asserts the config sane inputs.
func (cfg *KlineConfig) Validate() error {
	var errs error

	if cfg.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("symbol cannot be an empty string"))
	}
	if len(cfg.Candles) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no candles provided for chart"))
	}

	return errs
}

// candleDates formats the provided candle series into x-axis labels.
func candleDates(candles []shared.Candlestick) []string {
	dates := make([]string, 0, len(candles))
	for idx := range candles {
		dates = append(dates, candles[idx].Date.Format(candles[idx].Timeframe.Layout()))
	}

	return dates
}

// paddedLine left-pads a line series with missing values so it aligns with an
// x-axis of the provided length.
func paddedLine(length int, values []float64) []opts.LineData {
	line := make([]opts.LineData, 0, length)
	for idx := 0; idx < length-len(values); idx++ {
		line = append(line, opts.LineData{Value: "-"})
	}
	for _, value := range values {
		line = append(line, opts.LineData{Value: value})
	}

	return line
}

// BuildKline builds a candlestick chart with the configured overlays.
func BuildKline(cfg *KlineConfig) (*charts.Kline, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating kline config: %w", err)
	}

	dates := candleDates(cfg.Candles)

	candles := make([]opts.KlineData, 0, len(cfg.Candles))
	for idx := range cfg.Candles {
		candle := cfg.Candles[idx]
		candles = append(candles, opts.KlineData{
			Value: [4]float64{candle.Open, candle.Close, candle.Low, candle.High},
		})
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: cfg.Symbol}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s candlesticks", cfg.Symbol)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "price", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	kline.SetXAxis(dates).AddSeries("price", candles)

	if len(cfg.SMA) > 0 {
		values := make([]float64, 0, len(cfg.SMA))
		for idx := range cfg.SMA {
			values = append(values, cfg.SMA[idx].Value)
		}

		name := fmt.Sprintf("MA(%d)", cfg.SMAWindow)
		line := charts.NewLine()
		line.SetXAxis(dates).AddSeries(name, paddedLine(len(dates), values),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		kline.Overlap(line)
	}

	if len(cfg.Bands) > 0 {
		upper := make([]float64, 0, len(cfg.Bands))
		middle := make([]float64, 0, len(cfg.Bands))
		lower := make([]float64, 0, len(cfg.Bands))
		for idx := range cfg.Bands {
			upper = append(upper, cfg.Bands[idx].Upper)
			middle = append(middle, cfg.Bands[idx].Middle)
			lower = append(lower, cfg.Bands[idx].Lower)
		}

		line := charts.NewLine()
		line.SetXAxis(dates).
			AddSeries("upper band", paddedLine(len(dates), upper)).
			AddSeries("middle band", paddedLine(len(dates), middle)).
			AddSeries("lower band", paddedLine(len(dates), lower))
		kline.Overlap(line)
	}

	return kline, nil
}
