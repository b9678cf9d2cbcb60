package indicator

import (
	"fmt"
	"time"

	"github.com/mekonee/stockscope/shared"
	"go.uber.org/atomic"
)

// SMA represents a unit simple moving average entry for a market.
type SMA struct {
	Value float64
	Date  time.Time
}

// SMAGenerator represents the streaming simple moving average indicator.
type SMAGenerator struct {
	Market    string
	Timeframe shared.Timeframe
	Window    int
	Current   atomic.Pointer[SMA]

	closes []float64
	sum    float64
}

// NewSMAGenerator initializes an sma indicator for the provided market and timeframe.
// A non-positive window selects the default.
func NewSMAGenerator(market string, timeframe shared.Timeframe, window int) *SMAGenerator {
	if window <= 0 {
		window = DefaultSMAWindow
	}

	return &SMAGenerator{
		Market:    market,
		Timeframe: timeframe,
		Window:    window,
		closes:    make([]float64, 0, window),
	}
}

// Ready asserts whether the indicator has seen a full window of candles.
func (s *SMAGenerator) Ready() bool {
	return len(s.closes) == s.Window
}

// Update updates the sma indicator with the provided candlestick data. It returns
// nil until the warmup window fills.
func (s *SMAGenerator) Update(candle *shared.Candlestick) (*SMA, error) {
	if candle.Timeframe != s.Timeframe {
		return nil, fmt.Errorf("expected candles with timeframe %s, got %s",
			s.Timeframe.String(), candle.Timeframe.String())
	}

	s.closes = append(s.closes, candle.Close)
	s.sum += candle.Close
	if len(s.closes) > s.Window {
		s.sum -= s.closes[0]
		s.closes = s.closes[1:]
	}

	if !s.Ready() {
		return nil, nil
	}

	sma := &SMA{
		Value: s.sum / float64(s.Window),
		Date:  candle.Date,
	}
	s.Current.Store(sma)

	return sma, nil
}

// Reset resets the sma indicator.
func (s *SMAGenerator) Reset() {
	s.closes = s.closes[:0]
	s.sum = 0
	s.Current.Store(nil)
}

// SMASeries computes the simple moving average over the provided candle series.
// An n-candle series with window w yields n-w+1 entries.
func SMASeries(candles []shared.Candlestick, window int) ([]SMA, error) {
	if window <= 0 {
		window = DefaultSMAWindow
	}
	if len(candles) < window {
		return nil, fmt.Errorf("%d candles with window %d: %w", len(candles), window, ErrNotEnoughData)
	}

	gen := NewSMAGenerator(candles[0].Market, candles[0].Timeframe, window)
	series := make([]SMA, 0, len(candles)-window+1)

	for idx := range candles {
		sma, err := gen.Update(&candles[idx])
		if err != nil {
			return nil, err
		}

		if sma != nil {
			series = append(series, *sma)
		}
	}

	return series, nil
}
