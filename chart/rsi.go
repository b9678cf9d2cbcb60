package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mekonee/stockscope/indicator"
)

const (
	// overboughtLevel is the rsi overbought reference level.
	overboughtLevel = 70
	// oversoldLevel is the rsi oversold reference level.
	oversoldLevel = 30
)

// RSIConfig represents the configuration for rsi charts.
type RSIConfig struct {
	// Symbol represents the charted market symbol.
	Symbol string
	// Series represents the charted rsi series.
	Series []indicator.RSI
}

// Validate asserts the config sane inputs.
func (cfg *RSIConfig) Validate() error {
	var errs error

	if cfg.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("symbol cannot be an empty string"))
	}
	if len(cfg.Series) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no rsi entries provided for chart"))
	}

	return errs
}

// BuildRSIChart builds a line chart of the rsi with overbought and oversold
// reference lines.
func BuildRSIChart(cfg *RSIConfig) (*charts.Line, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating rsi config: %w", err)
	}

	dates := make([]time.Time, 0, len(cfg.Series))
	rsi := make([]opts.LineData, 0, len(cfg.Series))
	overbought := make([]opts.LineData, 0, len(cfg.Series))
	oversold := make([]opts.LineData, 0, len(cfg.Series))
	for idx := range cfg.Series {
		dates = append(dates, cfg.Series[idx].Date)
		rsi = append(rsi, opts.LineData{Value: cfg.Series[idx].Value})
		overbought = append(overbought, opts.LineData{Value: overboughtLevel})
		oversold = append(oversold, opts.LineData{Value: oversoldLevel})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: cfg.Symbol}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s rsi", cfg.Symbol)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rsi", Max: 100}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(seriesDates(dates)).
		AddSeries("rsi", rsi).
		AddSeries("overbought", overbought).
		AddSeries("oversold", oversold)

	return line, nil
}
