package indicator

import (
	"fmt"
	"time"

	"github.com/mekonee/stockscope/shared"
	"go.uber.org/atomic"
)

// MACD represents a unit moving average convergence divergence entry for a market.
type MACD struct {
	Value     float64
	Signal    float64
	Histogram float64
	Date      time.Time
}

// MACDGenerator represents the streaming moving average convergence divergence
// indicator. The macd line is the difference of a short and long close ema, the
// signal line an ema of the macd line, and the histogram their difference.
type MACDGenerator struct {
	Market    string
	Timeframe shared.Timeframe
	Current   atomic.Pointer[MACD]

	shortEMA  *EMAGenerator
	longEMA   *EMAGenerator
	signalEMA *EMAGenerator
}

// NewMACDGenerator initializes a macd indicator for the provided market and timeframe.
// Non-positive windows select the defaults.
func NewMACDGenerator(market string, timeframe shared.Timeframe, short int, long int, signal int) *MACDGenerator {
	if short <= 0 {
		short = DefaultMACDShortWindow
	}
	if long <= 0 {
		long = DefaultMACDLongWindow
	}
	if signal <= 0 {
		signal = DefaultMACDSignalWindow
	}

	return &MACDGenerator{
		Market:    market,
		Timeframe: timeframe,
		shortEMA:  NewEMAGenerator(market, timeframe, short),
		longEMA:   NewEMAGenerator(market, timeframe, long),
		signalEMA: NewEMAGenerator(market, timeframe, signal),
	}
}

// Ready asserts whether the indicator has a value.
func (m *MACDGenerator) Ready() bool {
	return m.signalEMA.Ready()
}

// Update updates the macd indicator with the provided candlestick data.
func (m *MACDGenerator) Update(candle *shared.Candlestick) (*MACD, error) {
	if candle.Timeframe != m.Timeframe {
		return nil, fmt.Errorf("expected candles with timeframe %s, got %s",
			m.Timeframe.String(), candle.Timeframe.String())
	}

	value := m.shortEMA.update(candle.Close) - m.longEMA.update(candle.Close)
	signal := m.signalEMA.update(value)

	macd := &MACD{
		Value:     value,
		Signal:    signal,
		Histogram: value - signal,
		Date:      candle.Date,
	}
	m.Current.Store(macd)

	return macd, nil
}

// Reset resets the macd indicator.
func (m *MACDGenerator) Reset() {
	m.shortEMA.Reset()
	m.longEMA.Reset()
	m.signalEMA.Reset()
	m.Current.Store(nil)
}

// MACDSeries computes the macd over the provided candle series.
func MACDSeries(candles []shared.Candlestick, short int, long int, signal int) ([]MACD, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("empty candle series: %w", ErrNotEnoughData)
	}

	gen := NewMACDGenerator(candles[0].Market, candles[0].Timeframe, short, long, signal)
	series := make([]MACD, 0, len(candles))

	for idx := range candles {
		macd, err := gen.Update(&candles[idx])
		if err != nil {
			return nil, err
		}

		series = append(series, *macd)
	}

	return series, nil
}
