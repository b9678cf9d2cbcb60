// Package chart renders candlestick charts and indicator charts to standalone
// html files.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Overlay represents the chart variant to render.
type Overlay int

const (
	None Overlay = iota
	MovingAverage
	Bollinger
	MACD
	MACDHistogram
	RSI
)

// String stringifies the provided overlay.
func (o Overlay) String() string {
	switch o {
	case MovingAverage:
		return "ma"
	case Bollinger:
		return "bollinger"
	case MACD:
		return "macd"
	case MACDHistogram:
		return "macdhist"
	case RSI:
		return "rsi"
	default:
		return "candlestick"
	}
}

// ParseOverlay parses an overlay from the provided string.
func ParseOverlay(name string) (Overlay, error) {
	switch name {
	case "", "candlestick":
		return None, nil
	case "ma":
		return MovingAverage, nil
	case "bollinger":
		return Bollinger, nil
	case "macd":
		return MACD, nil
	case "macdhist":
		return MACDHistogram, nil
	case "rsi":
		return RSI, nil
	default:
		return None, fmt.Errorf("unknown overlay provided: %s", name)
	}
}

// Renderable is the subset of chart behaviour needed to write chart html.
type Renderable interface {
	Render(w io.Writer) error
}

// WriteHTML renders the provided chart to an html file in the provided directory
// and returns the written file path.
func WriteHTML(chart Renderable, symbol string, overlay Overlay, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return "", fmt.Errorf("creating chart directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s-%s.html", strings.ToLower(symbol), overlay.String(), uuid.New().String())
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating chart file: %w", err)
	}

	defer file.Close()

	err = chart.Render(file)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return path, nil
}
