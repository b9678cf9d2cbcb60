package shared

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// NewsItem represents a single news article concerning a market symbol.
type NewsItem struct {
	Symbol    string
	Title     string
	Publisher string
	URL       string
	Text      string
	Published time.Time
}

// ParseNewsItems parses news articles from the provided json data.
func ParseNewsItems(data []gjson.Result, symbol string) ([]NewsItem, error) {
	items := make([]NewsItem, 0, len(data))

	for idx := range data {
		item := NewsItem{
			Symbol:    symbol,
			Title:     data[idx].Get("title").String(),
			Publisher: data[idx].Get("publisher").String(),
			URL:       data[idx].Get("url").String(),
			Text:      data[idx].Get("text").String(),
		}

		published := data[idx].Get("publishedDate").String()
		if published != "" {
			dt, err := time.Parse(DateTimeLayout, published)
			if err != nil {
				return nil, fmt.Errorf("parsing news published date: %w", err)
			}

			item.Published = dt
		}

		items = append(items, item)
	}

	return items, nil
}
