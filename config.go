package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// validIndicators is the set of indicator names accepted on the command line.
var validIndicators = map[string]bool{
	"ma":        true,
	"macd":      true,
	"macdhist":  true,
	"bollinger": true,
	"rsi":       true,
}

// Config is the configuration struct for the service.
type Config struct {
	// Symbol represents the analyzed market symbol.
	Symbol string
	// Start is the inclusive start date of the analyzed range (yyyy-mm-dd).
	Start string
	// End is the inclusive end date of the analyzed range (yyyy-mm-dd).
	End string
	// FMPAPIkey is the FMP service API Key.
	FMPAPIKey string
	// DataFile is an optional filepath to local market data, used instead of the api.
	DataFile string
	// ChartDir is the directory rendered charts are written to.
	ChartDir string
	// Indicators represents the indicators to calculate and chart.
	Indicators []string
	// News is the latest news flag.
	News bool

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("symbol cannot be an empty string"))
	}

	switch {
	case cfg.DataFile != "":
		// Local data needs no api key or mandatory range.
	default:
		if cfg.FMPAPIKey == "" {
			errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
		}
		if cfg.Start == "" {
			errs = errors.Join(errs, fmt.Errorf("start date cannot be an empty string"))
		}
		if cfg.End == "" {
			errs = errors.Join(errs, fmt.Errorf("end date cannot be an empty string"))
		}
	}

	for _, name := range cfg.Indicators {
		if !validIndicators[name] {
			errs = errors.Join(errs, fmt.Errorf("unknown indicator provided: %s", name))
		}
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	err = cfg.registerFlag("symbol", &cfg.Symbol, "the analyzed market symbol")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("start", &cfg.Start, "the analysis start date (yyyy-mm-dd)")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("end", &cfg.End, "the analysis end date (yyyy-mm-dd)")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("fmpapikey", &cfg.FMPAPIKey, "the FMP api key")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("datafile", &cfg.DataFile, "the filepath to local market data")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("chartdir", &cfg.ChartDir, "the directory charts are written to")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("indicators", &cfg.Indicators, "the indicators to calculate and chart")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("news", &cfg.News, "the latest news flag")
	if err != nil {
		return err
	}

	// Parse command-line flags.
	flag.Parse()

	return cfg.Validate()
}
