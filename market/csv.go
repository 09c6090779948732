package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Kline CSVs come from the data collector with a fixed prefix of columns;
// anything after volume is treated as a named indicator column.
var klineColumns = []string{"timestamp", "open", "high", "low", "close", "volume"}

// LoadCSV reads a kline CSV file into a validated Series. The series name
// is the file's base name without extension.
func LoadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kline csv: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadCSV(name, f)
}

// ReadCSV parses kline rows. Rows with unparseable required fields are
// skipped with a warning; indicator cells that fail to parse are dropped
// from that row only. Series-level malformation (shuffled timestamps) is
// still fatal, via NewSeries.
func ReadCSV(name string, r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read kline header: %w", err)
	}
	if len(header) < len(klineColumns) {
		return nil, fmt.Errorf("kline header has %d columns, want at least %d", len(header), len(klineColumns))
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}
	for i, want := range klineColumns {
		if !strings.EqualFold(cols[i], want) {
			return nil, fmt.Errorf("kline column %d is %q, want %q", i, cols[i], want)
		}
	}

	var bars []Bar
	badLines := 0

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read kline row: %w", err)
		}
		bar, ok := parseKlineRow(cols, rec)
		if !ok {
			badLines++
			continue
		}
		bars = append(bars, bar)
	}

	if badLines > 0 {
		fmt.Fprintf(os.Stderr, "ingest warnings: %s badLines=%d\n", name, badLines)
	}

	return NewSeries(name, bars)
}

func parseKlineRow(cols, rec []string) (Bar, bool) {
	if len(rec) < len(klineColumns) {
		return Bar{}, false
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return Bar{}, false
	}

	var v [5]float64
	for i := range v {
		v[i], err = strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return Bar{}, false
		}
	}

	bar := Bar{
		Timestamp: ts,
		Open:      v[0],
		High:      v[1],
		Low:       v[2],
		Close:     v[3],
		Volume:    v[4],
	}

	for i := len(klineColumns); i < len(rec) && i < len(cols); i++ {
		cell := strings.TrimSpace(rec[i])
		if cell == "" {
			continue
		}
		x, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		if bar.Indicators == nil {
			bar.Indicators = make(map[string]float64)
		}
		bar.Indicators[cols[i]] = x
	}

	return bar, true
}
