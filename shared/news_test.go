package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/tidwall/gjson"
)

func TestParseNewsItems(t *testing.T) {
	symbol := "AAPL"

	// Ensure news articles parse.
	data := `[{"symbol":"AAPL","publishedDate":"2024-06-03 14:22:00","publisher":"Reuters",
	"title":"Apple unveils new chips","url":"https://example.com/a","text":"Apple said..."}]`
	rows := gjson.Parse(data).Array()

	items, err := ParseNewsItems(rows, symbol)
	assert.NoError(t, err)
	assert.Equal(t, len(items), 1)
	assert.Equal(t, items[0].Title, "Apple unveils new chips")
	assert.Equal(t, items[0].Publisher, "Reuters")
	assert.Equal(t, items[0].URL, "https://example.com/a")
	assert.Equal(t, items[0].Symbol, symbol)
	assert.Equal(t, items[0].Published.Hour(), 14)

	// Ensure a missing published date is tolerated.
	data = `[{"title":"no date","publisher":"AP","url":"https://example.com/b"}]`
	rows = gjson.Parse(data).Array()

	items, err = ParseNewsItems(rows, symbol)
	assert.NoError(t, err)
	assert.True(t, items[0].Published.IsZero())

	// Ensure a malformed published date is an error.
	data = `[{"title":"bad date","publishedDate":"June 3rd"}]`
	rows = gjson.Parse(data).Array()

	_, err = ParseNewsItems(rows, symbol)
	assert.Error(t, err)
}

func TestParseProfile(t *testing.T) {
	// Ensure an equity profile parses.
	data := `{"symbol":"AAPL","companyName":"Apple Inc.","exchangeFullName":"NASDAQ Global Select",
	"currency":"USD","ipoDate":"1980-12-12","isEtf":false,"isFund":false}`

	profile, err := ParseProfile(gjson.Parse(data))
	assert.NoError(t, err)
	assert.Equal(t, profile.Symbol, "AAPL")
	assert.Equal(t, profile.CompanyName, "Apple Inc.")
	assert.Equal(t, profile.IPODate.Year(), 1980)
	assert.True(t, profile.IsEquity())

	// Ensure fund tickers are not equities.
	data = `{"symbol":"SPY","companyName":"SPDR S&P 500 ETF Trust","isEtf":true,"isFund":false}`

	profile, err = ParseProfile(gjson.Parse(data))
	assert.NoError(t, err)
	assert.True(t, !profile.IsEquity())
	assert.True(t, profile.IPODate.IsZero())

	// Ensure a malformed ipo date is an error.
	data = `{"symbol":"AAPL","ipoDate":"12/12/1980"}`

	_, err = ParseProfile(gjson.Parse(data))
	assert.Error(t, err)
}
