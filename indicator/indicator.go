// Package indicator provides streaming technical analysis indicators computed
// from market candlesticks.
package indicator

import "errors"

const (
	// DefaultSMAWindow is the default window for the simple moving average.
	DefaultSMAWindow = 21
	// DefaultMACDShortWindow is the default short ema window for macd.
	DefaultMACDShortWindow = 13
	// DefaultMACDLongWindow is the default long ema window for macd.
	DefaultMACDLongWindow = 33
	// DefaultMACDSignalWindow is the default signal line ema window for macd.
	DefaultMACDSignalWindow = 9
	// DefaultBollingerWindow is the default window for bollinger bands.
	DefaultBollingerWindow = 20
	// DefaultBollingerStdDev is the default standard deviation multiplier for bollinger bands.
	DefaultBollingerStdDev = 2
	// DefaultRSIWindow is the default window for the relative strength index.
	DefaultRSIWindow = 14
)

// ErrNotEnoughData indicates a candle series is shorter than an indicator's warmup window.
var ErrNotEnoughData = errors.New("not enough market data for indicator window")
