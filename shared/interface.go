package shared

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
)

// MarketFetcher defines the requirements for fetching historical market data.
type MarketFetcher interface {
	// FetchDailyHistorical fetches daily (end-of-day) historical market data.
	FetchDailyHistorical(ctx context.Context, symbol string, start time.Time, end time.Time) ([]gjson.Result, error)
	// FetchIntradayHistorical fetches intraday historical market data.
	FetchIntradayHistorical(ctx context.Context, symbol string, timeframe Timeframe, start time.Time, end time.Time) ([]gjson.Result, error)
}

// ProfileFetcher defines the requirements for fetching symbol profiles.
type ProfileFetcher interface {
	// FetchProfile fetches the listing profile for the provided symbol.
	FetchProfile(ctx context.Context, symbol string) (*Profile, error)
}

// NewsFetcher defines the requirements for fetching symbol news.
type NewsFetcher interface {
	// FetchNews fetches the latest news articles for the provided symbol.
	FetchNews(ctx context.Context, symbol string, limit int) ([]NewsItem, error)
}
