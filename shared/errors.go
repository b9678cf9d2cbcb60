package shared

import "errors"

var (
	// ErrNoData indicates no market data is available for a symbol.
	ErrNoData = errors.New("no market data available")
	// ErrNoNews indicates no news is available for a symbol.
	ErrNoNews = errors.New("no news available")
)
