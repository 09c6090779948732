package market

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const klineFixture = `timestamp,open,high,low,close,volume,SMA_50,RSI_14
60000,10,11,9,10.5,100,10.2,48.0
120000,10.5,12,10,11,150,10.4,
180000,11,11.5,10.5,11.2,90,10.6,61.5
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	s, err := ReadCSV("btc-1m", strings.NewReader(klineFixture))
	require.NoError(t, err)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, "btc-1m", s.Name)
	assert.Equal(t, int64(60), s.Interval())

	b := s.Bars[0]
	assert.Equal(t, int64(60000), b.Timestamp)
	assert.Equal(t, 10.5, b.Close)
	assert.Equal(t, 100.0, b.Volume)

	sma, ok := b.Indicator("SMA_50")
	assert.True(t, ok)
	assert.Equal(t, 10.2, sma)

	// Empty indicator cell drops that column for the row only.
	_, ok = s.Bars[1].Indicator("RSI_14")
	assert.False(t, ok)
	_, ok = s.Bars[1].Indicator("SMA_50")
	assert.True(t, ok)
}

func TestReadCSVSkipsBadRows(t *testing.T) {
	t.Parallel()

	in := `timestamp,open,high,low,close,volume
60000,10,11,9,10.5,100
not-a-number,10,11,9,10.5,100
120000,10,oops,9,10.5,100
180000,11,12,10,11.5,90
`
	s, err := ReadCSV("dirty", strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, int64(180000), s.Bars[1].Timestamp)
}

func TestReadCSVRejectsBadHeader(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV("short", strings.NewReader("timestamp,open,high\n"))
	assert.Error(t, err)

	_, err = ReadCSV("renamed", strings.NewReader("time,open,high,low,close,volume\n"))
	assert.ErrorContains(t, err, "timestamp")
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "eth-1m.csv")
	require.NoError(t, os.WriteFile(path, []byte(klineFixture), 0644))

	s, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "eth-1m", s.Name, "series named after the file")
	assert.Equal(t, 3, s.Len())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
