package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestTimeframeString(t *testing.T) {
	oneDay := OneDay
	oneHour := OneHour
	unknown := Timeframe(999)

	assert.Equal(t, oneDay.String(), "1D")
	assert.Equal(t, oneHour.String(), "1H")
	assert.Equal(t, unknown.String(), "unknown")
}

func TestTimeframeLayout(t *testing.T) {
	oneDay := OneDay
	oneHour := OneHour

	assert.Equal(t, oneDay.Layout(), DateLayout)
	assert.Equal(t, oneHour.Layout(), DateTimeLayout)
}

func TestNewYorkTime(t *testing.T) {
	now, loc, err := NewYorkTime()
	assert.NoError(t, err)
	assert.Equal(t, loc.String(), NewYorkLocation)
	assert.Equal(t, now.Location().String(), NewYorkLocation)
}
