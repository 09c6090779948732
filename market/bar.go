package market

import "time"

// Bar is one OHLCV sample at a fixed interval. Timestamp is epoch
// milliseconds as delivered by the data provider; all reporting uses
// unix seconds.
type Bar struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64

	// Indicators holds precomputed columns keyed by name (SMA_50,
	// EMA_20, RSI_14, ...). The engine never computes these itself.
	Indicators map[string]float64
}

func (b Bar) Unix() int64 { return b.Timestamp / 1000 }

func (b Bar) Time() time.Time { return time.UnixMilli(b.Timestamp).UTC() }

// Indicator returns the named indicator column, false if the provider
// did not supply it for this bar.
func (b Bar) Indicator(name string) (float64, bool) {
	v, ok := b.Indicators[name]
	return v, ok
}
