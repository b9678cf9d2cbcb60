package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mekonee/stockscope/indicator"
	"github.com/mekonee/stockscope/shared"
)

// MACDConfig represents the configuration for macd charts.
type MACDConfig struct {
	// Symbol represents the charted market symbol.
	Symbol string
	// Series represents the charted macd series.
	Series []indicator.MACD
}

// Validate asserts the config sane inputs.
func (cfg *MACDConfig) Validate() error {
	var errs error

	if cfg.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("symbol cannot be an empty string"))
	}
	if len(cfg.Series) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no macd entries provided for chart"))
	}

	return errs
}

// seriesDates formats the provided dates into x-axis labels.
func seriesDates(dates []time.Time) []string {
	labels := make([]string, 0, len(dates))
	for idx := range dates {
		labels = append(labels, dates[idx].Format(shared.DateLayout))
	}

	return labels
}

// BuildMACDChart builds a line chart of the macd and signal lines.
func BuildMACDChart(cfg *MACDConfig) (*charts.Line, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating macd config: %w", err)
	}

	dates := make([]time.Time, 0, len(cfg.Series))
	macd := make([]opts.LineData, 0, len(cfg.Series))
	signal := make([]opts.LineData, 0, len(cfg.Series))
	for idx := range cfg.Series {
		dates = append(dates, cfg.Series[idx].Date)
		macd = append(macd, opts.LineData{Value: cfg.Series[idx].Value})
		signal = append(signal, opts.LineData{Value: cfg.Series[idx].Signal})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: cfg.Symbol}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s macd", cfg.Symbol)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "macd"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(seriesDates(dates)).
		AddSeries("macd", macd).
		AddSeries("signal", signal)

	return line, nil
}

// BuildMACDHistogram builds a bar chart of the macd histogram.
func BuildMACDHistogram(cfg *MACDConfig) (*charts.Bar, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating macd config: %w", err)
	}

	dates := make([]time.Time, 0, len(cfg.Series))
	histogram := make([]opts.BarData, 0, len(cfg.Series))
	for idx := range cfg.Series {
		dates = append(dates, cfg.Series[idx].Date)
		histogram = append(histogram, opts.BarData{Value: cfg.Series[idx].Histogram})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: cfg.Symbol}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s macd histogram", cfg.Symbol)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "histogram"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	bar.SetXAxis(seriesDates(dates)).AddSeries("histogram", histogram)

	return bar, nil
}
