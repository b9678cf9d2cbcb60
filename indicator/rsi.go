package indicator

import (
	"fmt"
	"time"

	"github.com/mekonee/stockscope/shared"
	"go.uber.org/atomic"
)

// RSI represents a unit relative strength index entry for a market.
type RSI struct {
	Value float64
	Date  time.Time
}

// RSIGenerator represents the streaming relative strength index indicator. Average
// gains and losses use a simple rolling mean over the window. A flat window reads
// as 50, a window with gains and no losses as 100.
type RSIGenerator struct {
	Market    string
	Timeframe shared.Timeframe
	Window    int
	Current   atomic.Pointer[RSI]

	prevClose float64
	seeded    bool
	gains     []float64
	losses    []float64
	gainSum   float64
	lossSum   float64
}

// NewRSIGenerator initializes an rsi indicator for the provided market and timeframe.
// A non-positive window selects the default.
func NewRSIGenerator(market string, timeframe shared.Timeframe, window int) *RSIGenerator {
	if window <= 0 {
		window = DefaultRSIWindow
	}

	return &RSIGenerator{
		Market:    market,
		Timeframe: timeframe,
		Window:    window,
		gains:     make([]float64, 0, window),
		losses:    make([]float64, 0, window),
	}
}

// Ready asserts whether the indicator has seen a full window of price changes.
func (r *RSIGenerator) Ready() bool {
	return len(r.gains) == r.Window
}

// Update updates the rsi indicator with the provided candlestick data. It returns
// nil until a full window of price changes accumulates, which requires one candle
// more than the window.
func (r *RSIGenerator) Update(candle *shared.Candlestick) (*RSI, error) {
	if candle.Timeframe != r.Timeframe {
		return nil, fmt.Errorf("expected candles with timeframe %s, got %s",
			r.Timeframe.String(), candle.Timeframe.String())
	}

	if !r.seeded {
		r.prevClose = candle.Close
		r.seeded = true
		return nil, nil
	}

	change := candle.Close - r.prevClose
	r.prevClose = candle.Close

	var gain, loss float64
	switch {
	case change > 0:
		gain = change
	case change < 0:
		loss = -change
	}

	r.gains = append(r.gains, gain)
	r.gainSum += gain
	r.losses = append(r.losses, loss)
	r.lossSum += loss
	if len(r.gains) > r.Window {
		r.gainSum -= r.gains[0]
		r.gains = r.gains[1:]
		r.lossSum -= r.losses[0]
		r.losses = r.losses[1:]
	}

	if !r.Ready() {
		return nil, nil
	}

	avgGain := r.gainSum / float64(r.Window)
	avgLoss := r.lossSum / float64(r.Window)

	var value float64
	switch {
	case avgLoss == 0 && avgGain == 0:
		value = 50
	case avgLoss == 0:
		value = 100
	default:
		value = 100 - 100/(1+avgGain/avgLoss)
	}

	rsi := &RSI{
		Value: value,
		Date:  candle.Date,
	}
	r.Current.Store(rsi)

	return rsi, nil
}

// Reset resets the rsi indicator.
func (r *RSIGenerator) Reset() {
	r.prevClose = 0
	r.seeded = false
	r.gains = r.gains[:0]
	r.losses = r.losses[:0]
	r.gainSum = 0
	r.lossSum = 0
	r.Current.Store(nil)
}

// RSISeries computes the relative strength index over the provided candle series.
// An n-candle series with window w yields n-w entries.
func RSISeries(candles []shared.Candlestick, window int) ([]RSI, error) {
	if window <= 0 {
		window = DefaultRSIWindow
	}
	if len(candles) < window+1 {
		return nil, fmt.Errorf("%d candles with window %d: %w", len(candles), window, ErrNotEnoughData)
	}

	gen := NewRSIGenerator(candles[0].Market, candles[0].Timeframe, window)
	series := make([]RSI, 0, len(candles)-window)

	for idx := range candles {
		rsi, err := gen.Update(&candles[idx])
		if err != nil {
			return nil, err
		}

		if rsi != nil {
			series = append(series, *rsi)
		}
	}

	return series, nil
}
