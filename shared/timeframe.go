package shared

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the format layout for parsing end-of-day dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the format layout for parsing intraday timestamps.
	DateTimeLayout = "2006-01-02 15:04:05"
	// NewYorkLocation is the locale used for fetching exchange-local time.
	NewYorkLocation = "America/New_York"
)

// Timeframe represents the market data time period.
type Timeframe int

const (
	OneDay Timeframe = iota
	OneHour
)

// String stringifies the provided timeframe.
func (t *Timeframe) String() string {
	switch *t {
	case OneDay:
		return "1D"
	case OneHour:
		return "1H"
	default:
		return "unknown"
	}
}

// Layout returns the date format layout used by market data rows of the provided timeframe.
func (t *Timeframe) Layout() string {
	switch *t {
	case OneDay:
		return DateLayout
	default:
		return DateTimeLayout
	}
}

// NewYorkTime returns the current time in new york (EST/EDT adjusted automatically).
func NewYorkTime() (time.Time, *time.Location, error) {
	loc, err := time.LoadLocation(NewYorkLocation)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("loading new york timezone: %w", err)
	}

	now := time.Now().In(loc)
	return now, loc, nil
}
