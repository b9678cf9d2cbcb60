package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/mekonee/stockscope/shared"
	"github.com/peterldowns/testy/assert"
)

func TestRSIGenerator(t *testing.T) {
	market := "AAPL"
	timeframe := shared.OneDay
	rsi := NewRSIGenerator(market, timeframe, 3)

	// Ensure the generator rejects candles of an unexpected timeframe.
	mismatched := makeCandles(market, shared.OneHour, 10)
	_, err := rsi.Update(&mismatched[0])
	assert.Error(t, err)

	// Ensure the generator yields nothing until a full window of changes accumulates,
	// which takes window+1 candles.
	candles := makeCandles(market, timeframe, 10, 11, 10, 11)
	for idx := 0; idx < 3; idx++ {
		point, uerr := rsi.Update(&candles[idx])
		assert.NoError(t, uerr)
		assert.True(t, point == nil)
	}

	// Changes +1, -1, +1 give an average gain of 2/3 and average loss of 1/3,
	// so rs = 2 and rsi = 100 - 100/3.
	point, err := rsi.Update(&candles[3])
	assert.NoError(t, err)
	assert.True(t, rsi.Ready())
	assert.True(t, math.Abs(point.Value-(100-100.0/3)) < floatTolerance)

	// Ensure resetting the generator clears its state.
	rsi.Reset()
	assert.True(t, !rsi.Ready())
	assert.True(t, rsi.Current.Load() == nil)
}

func TestRSISeries(t *testing.T) {
	// Ensure a flat series reads as 50.
	flat := makeCandles("AAPL", shared.OneDay, 5, 5, 5, 5, 5)
	series, err := RSISeries(flat, 3)
	assert.NoError(t, err)
	assert.Equal(t, len(series), 2)
	for idx := range series {
		assert.Equal(t, series[idx].Value, float64(50))
	}

	// Ensure a strictly rising series reads as 100.
	rising := makeCandles("AAPL", shared.OneDay, 1, 2, 3, 4, 5)
	series, err = RSISeries(rising, 3)
	assert.NoError(t, err)
	assert.Equal(t, series[len(series)-1].Value, float64(100))

	// Ensure a strictly falling series reads as 0.
	falling := makeCandles("AAPL", shared.OneDay, 5, 4, 3, 2, 1)
	series, err = RSISeries(falling, 3)
	assert.NoError(t, err)
	assert.Equal(t, series[len(series)-1].Value, float64(0))

	// Ensure an n-candle series with window w yields n-w entries.
	assert.Equal(t, len(series), len(falling)-3)

	// Ensure a series shorter than window+1 is an error.
	_, err = RSISeries(flat[:3], 3)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEnoughData))
}
