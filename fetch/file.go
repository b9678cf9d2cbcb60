package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mekonee/stockscope/shared"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// FileSourceConfig represents the configuration for a file-backed data source.
type FileSourceConfig struct {
	// Symbol represents the market symbol the data covers.
	Symbol string
	// Timeframe represents the timeframe of the market data rows.
	Timeframe shared.Timeframe
	// FilePath is the filepath to the market data.
	FilePath string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *FileSourceConfig) Validate() error {
	var errs error

	if cfg.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("symbol cannot be an empty string"))
	}
	if cfg.FilePath == "" {
		errs = errors.Join(errs, fmt.Errorf("file path cannot be an empty string"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// FileSource represents market data sourced from a local json file. It serves
// offline analysis the same way the api client serves live analysis.
type FileSource struct {
	cfg  *FileSourceConfig
	rows []gjson.Result
}

// Ensure the FileSource implements the MarketFetcher interface.
var _ shared.MarketFetcher = (*FileSource)(nil)

// loadRows loads market data rows from the provided file path.
func loadRows(filepath string) ([]gjson.Result, error) {
	readb, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading market data from file with path '%s': %w", filepath, err)
	}

	parsed := gjson.ParseBytes(readb)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("expected a json array in file with path '%s'", filepath)
	}

	return parsed.Array(), nil
}

// NewFileSource initializes a new file-backed data source.
func NewFileSource(cfg *FileSourceConfig) (*FileSource, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating file source config: %w", err)
	}

	rows, err := loadRows(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("loading market data: %w", err)
	}

	cfg.Logger.Info().Msgf("loaded %d market data rows for %s from %s",
		len(rows), cfg.Symbol, cfg.FilePath)

	return &FileSource{
		cfg:  cfg,
		rows: rows,
	}, nil
}

// FetchDailyHistorical returns the loaded daily market data rows. Range filtering
// is left to the caller once rows are parsed into candlesticks.
func (f *FileSource) FetchDailyHistorical(ctx context.Context, symbol string, start time.Time, end time.Time) ([]gjson.Result, error) {
	if symbol != f.cfg.Symbol {
		return nil, fmt.Errorf("file source covers %s, not %s", f.cfg.Symbol, symbol)
	}
	if f.cfg.Timeframe != shared.OneDay {
		daily := shared.OneDay
		return nil, fmt.Errorf("file source rows have timeframe %s, not %s",
			f.cfg.Timeframe.String(), daily.String())
	}

	return f.rows, nil
}

// FetchIntradayHistorical returns the loaded intraday market data rows.
func (f *FileSource) FetchIntradayHistorical(ctx context.Context, symbol string, timeframe shared.Timeframe, start time.Time, end time.Time) ([]gjson.Result, error) {
	if symbol != f.cfg.Symbol {
		return nil, fmt.Errorf("file source covers %s, not %s", f.cfg.Symbol, symbol)
	}
	if timeframe != f.cfg.Timeframe {
		return nil, fmt.Errorf("file source rows have timeframe %s, not %s",
			f.cfg.Timeframe.String(), timeframe.String())
	}

	return f.rows, nil
}
