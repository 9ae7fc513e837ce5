// Package export writes the aligned series of an Analysis to parquet or csv files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/drip"
	"github.com/parquet-go/parquet-go"
)

// ErrUnknownFormat is returned for a file extension that is neither .parquet nor .csv.
var ErrUnknownFormat = errors.New("unknown export format")

// Record is the on-disk schema, one row per trading day.
type Record struct {
	Ticker   string  `parquet:"ticker"`
	Date     string  `parquet:"date"`
	Close    float64 `parquet:"close"`
	Dividend float64 `parquet:"dividend"`
	Bought   float64 `parquet:"bought"`
	Shares   float64 `parquet:"shares"`
	Value    float64 `parquet:"value"`
	Gain     float64 `parquet:"gain"`
}

// header is the csv header, in Record field order.
var header = []string{"ticker", "date", "close", "dividend", "bought", "shares", "value", "gain"}

// Records returns one Record per simulated day.
func Records(a *drip.Analysis) []Record {
	ticker := a.Series.Ticker()
	points := a.Simulation.Points()
	records := make([]Record, len(points))
	for i, p := range points {
		records[i] = Record{
			Ticker:   ticker,
			Date:     p.Date.String(),
			Close:    p.Close.InexactFloat64(),
			Dividend: p.Dividend.InexactFloat64(),
			Bought:   p.Bought.InexactFloat64(),
			Shares:   p.Shares.InexactFloat64(),
			Value:    p.Value.InexactFloat64(),
			Gain:     p.Gain.InexactFloat64(),
		}
	}
	return records
}

// WriteFile writes a to path, in the format given by the file extension.
func WriteFile(path string, a *drip.Analysis) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return WriteParquet(path, a)
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteCSV(f, a); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%w %q, want .parquet or .csv", ErrUnknownFormat, ext)
	}
}

// WriteParquet writes a to a parquet file at path.
func WriteParquet(path string, a *drip.Analysis) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, Records(a))
}

// WriteCSV writes a as csv to w. Decimal values are written exactly.
func WriteCSV(w io.Writer, a *drip.Analysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	ticker := a.Series.Ticker()
	for _, p := range a.Simulation.Points() {
		row := []string{
			ticker,
			p.Date.String(),
			p.Close.String(),
			p.Dividend.String(),
			p.Bought.String(),
			p.Shares.String(),
			p.Value.String(),
			p.Gain.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
