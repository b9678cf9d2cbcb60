package indicator

import (
	"fmt"
	"math"
	"time"

	"github.com/mekonee/stockscope/shared"
	"go.uber.org/atomic"
)

// BollingerBand represents a unit bollinger band entry for a market.
type BollingerBand struct {
	Upper  float64
	Middle float64
	Lower  float64
	Date   time.Time
}

// BollingerBandsGenerator represents the streaming bollinger bands indicator.
// The middle band is a close sma, the upper and lower bands offset from it by a
// multiple of the rolling sample standard deviation.
type BollingerBandsGenerator struct {
	Market    string
	Timeframe shared.Timeframe
	Window    int
	StdDevs   float64
	Current   atomic.Pointer[BollingerBand]

	closes []float64
}

// NewBollingerBandsGenerator initializes a bollinger bands indicator for the provided
// market and timeframe. A non-positive window or multiplier selects the defaults.
func NewBollingerBandsGenerator(market string, timeframe shared.Timeframe, window int, stdDevs float64) *BollingerBandsGenerator {
	if window <= 1 {
		window = DefaultBollingerWindow
	}
	if stdDevs <= 0 {
		stdDevs = DefaultBollingerStdDev
	}

	return &BollingerBandsGenerator{
		Market:    market,
		Timeframe: timeframe,
		Window:    window,
		StdDevs:   stdDevs,
		closes:    make([]float64, 0, window),
	}
}

// Ready asserts whether the indicator has seen a full window of candles.
func (b *BollingerBandsGenerator) Ready() bool {
	return len(b.closes) == b.Window
}

// Update updates the bollinger bands indicator with the provided candlestick data.
// It returns nil until the warmup window fills.
func (b *BollingerBandsGenerator) Update(candle *shared.Candlestick) (*BollingerBand, error) {
	if candle.Timeframe != b.Timeframe {
		return nil, fmt.Errorf("expected candles with timeframe %s, got %s",
			b.Timeframe.String(), candle.Timeframe.String())
	}

	b.closes = append(b.closes, candle.Close)
	if len(b.closes) > b.Window {
		b.closes = b.closes[1:]
	}

	if !b.Ready() {
		return nil, nil
	}

	var sum float64
	for _, close := range b.closes {
		sum += close
	}
	mean := sum / float64(b.Window)

	var squares float64
	for _, close := range b.closes {
		diff := close - mean
		squares += diff * diff
	}
	std := math.Sqrt(squares / float64(b.Window-1))

	band := &BollingerBand{
		Upper:  mean + b.StdDevs*std,
		Middle: mean,
		Lower:  mean - b.StdDevs*std,
		Date:   candle.Date,
	}
	b.Current.Store(band)

	return band, nil
}

// Reset resets the bollinger bands indicator.
func (b *BollingerBandsGenerator) Reset() {
	b.closes = b.closes[:0]
	b.Current.Store(nil)
}

// BollingerBandsSeries computes bollinger bands over the provided candle series.
// An n-candle series with window w yields n-w+1 entries.
func BollingerBandsSeries(candles []shared.Candlestick, window int, stdDevs float64) ([]BollingerBand, error) {
	if window <= 1 {
		window = DefaultBollingerWindow
	}
	if len(candles) < window {
		return nil, fmt.Errorf("%d candles with window %d: %w", len(candles), window, ErrNotEnoughData)
	}

	gen := NewBollingerBandsGenerator(candles[0].Market, candles[0].Timeframe, window, stdDevs)
	series := make([]BollingerBand, 0, len(candles)-window+1)

	for idx := range candles {
		band, err := gen.Update(&candles[idx])
		if err != nil {
			return nil, err
		}

		if band != nil {
			series = append(series, *band)
		}
	}

	return series, nil
}
