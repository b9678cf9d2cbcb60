package indicator

import (
	"testing"

	"github.com/mekonee/stockscope/shared"
	"github.com/peterldowns/testy/assert"
)

func TestMACDGenerator(t *testing.T) {
	market := "AAPL"
	timeframe := shared.OneDay
	macd := NewMACDGenerator(market, timeframe, 13, 33, 9)

	// Ensure the generator rejects candles of an unexpected timeframe.
	mismatched := makeCandles(market, shared.OneHour, 10)
	_, err := macd.Update(&mismatched[0])
	assert.Error(t, err)

	// Ensure a constant series reads as zero on all three lines.
	candles := makeCandles(market, timeframe, 50, 50, 50, 50, 50)
	for idx := range candles {
		point, uerr := macd.Update(&candles[idx])
		assert.NoError(t, uerr)
		assert.Equal(t, point.Value, float64(0))
		assert.Equal(t, point.Signal, float64(0))
		assert.Equal(t, point.Histogram, float64(0))
	}
	assert.True(t, macd.Ready())

	// Ensure resetting the generator clears its state.
	macd.Reset()
	assert.True(t, !macd.Ready())
	assert.True(t, macd.Current.Load() == nil)
}

func TestMACDSeries(t *testing.T) {
	candles := makeCandles("AAPL", shared.OneDay, 10, 12, 11, 14, 13, 15, 16, 14)

	// Ensure macd yields an entry per candle.
	series, err := MACDSeries(candles, 3, 6, 2)
	assert.NoError(t, err)
	assert.Equal(t, len(series), len(candles))

	// Both emas seed with the first close, so the first entry is zero.
	assert.Equal(t, series[0].Value, float64(0))

	// Ensure the histogram is the difference of the macd and signal lines.
	for idx := range series {
		assert.Equal(t, series[idx].Histogram, series[idx].Value-series[idx].Signal)
	}

	// A rising series keeps the short ema above the long one.
	rising, err := MACDSeries(makeCandles("AAPL", shared.OneDay, 1, 2, 3, 4, 5, 6), 3, 6, 2)
	assert.NoError(t, err)
	assert.True(t, rising[len(rising)-1].Value > 0)

	// Ensure an empty series is an error.
	_, err = MACDSeries(nil, 0, 0, 0)
	assert.Error(t, err)
}
