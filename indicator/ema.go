package indicator

import (
	"fmt"
	"time"

	"github.com/mekonee/stockscope/shared"
	"go.uber.org/atomic"
)

// EMA represents a unit exponential moving average entry for a market.
type EMA struct {
	Value float64
	Date  time.Time
}

// EMAGenerator represents the streaming exponential moving average indicator.
// The average is seeded with the first value seen, matching the recursive
// formulation y(t) = y(t-1) + α(x(t) - y(t-1)) with α = 2/(span+1).
type EMAGenerator struct {
	Market    string
	Timeframe shared.Timeframe
	Span      int
	Current   atomic.Pointer[EMA]

	value  float64
	seeded bool
}

// NewEMAGenerator initializes an ema indicator for the provided market and timeframe.
// A non-positive span selects the sma default window.
func NewEMAGenerator(market string, timeframe shared.Timeframe, span int) *EMAGenerator {
	if span <= 0 {
		span = DefaultSMAWindow
	}

	return &EMAGenerator{
		Market:    market,
		Timeframe: timeframe,
		Span:      span,
	}
}

// Ready asserts whether the indicator has a value.
func (e *EMAGenerator) Ready() bool {
	return e.seeded
}

// update advances the average with the provided raw value.
func (e *EMAGenerator) update(value float64) float64 {
	if !e.seeded {
		e.value = value
		e.seeded = true
		return e.value
	}

	alpha := 2 / (float64(e.Span) + 1)
	e.value += alpha * (value - e.value)

	return e.value
}

// Update updates the ema indicator with the provided candlestick data.
func (e *EMAGenerator) Update(candle *shared.Candlestick) (*EMA, error) {
	if candle.Timeframe != e.Timeframe {
		return nil, fmt.Errorf("expected candles with timeframe %s, got %s",
			e.Timeframe.String(), candle.Timeframe.String())
	}

	ema := &EMA{
		Value: e.update(candle.Close),
		Date:  candle.Date,
	}
	e.Current.Store(ema)

	return ema, nil
}

// Reset resets the ema indicator.
func (e *EMAGenerator) Reset() {
	e.value = 0
	e.seeded = false
	e.Current.Store(nil)
}

// EMASeries computes the exponential moving average over the provided candle series.
func EMASeries(candles []shared.Candlestick, span int) ([]EMA, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("empty candle series: %w", ErrNotEnoughData)
	}

	gen := NewEMAGenerator(candles[0].Market, candles[0].Timeframe, span)
	series := make([]EMA, 0, len(candles))

	for idx := range candles {
		ema, err := gen.Update(&candles[idx])
		if err != nil {
			return nil, err
		}

		series = append(series, *ema)
	}

	return series, nil
}
