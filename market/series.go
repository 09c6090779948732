package market

import "fmt"

// Series is a validated, strictly time-ordered bar sequence for a single
// asset. Construction is the only place series-level malformation is
// checked; everything downstream may assume ordering.
type Series struct {
	Name string
	Bars []Bar
}

// NewSeries validates the bar sequence. Non-monotonic timestamps and
// impossible bars abort the run here, before any ledger state exists.
func NewSeries(name string, bars []Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("series %q: no bars", name)
	}

	for i, b := range bars {
		if i > 0 && b.Timestamp <= bars[i-1].Timestamp {
			return nil, fmt.Errorf("series %q: non-monotonic timestamp at index %d (%d after %d)",
				name, i, b.Timestamp, bars[i-1].Timestamp)
		}
		if b.High < b.Low {
			return nil, fmt.Errorf("series %q: bar %d high %v below low %v", name, i, b.High, b.Low)
		}
		if b.Volume < 0 {
			return nil, fmt.Errorf("series %q: bar %d negative volume", name, i)
		}
	}

	return &Series{Name: name, Bars: bars}, nil
}

func (s *Series) Len() int { return len(s.Bars) }

// Interval is the bar spacing in seconds, taken from the first two bars.
func (s *Series) Interval() int64 {
	if len(s.Bars) < 2 {
		return 0
	}
	return (s.Bars[1].Timestamp - s.Bars[0].Timestamp) / 1000
}

// Start and End are the series bounds in unix seconds.
func (s *Series) Start() int64 { return s.Bars[0].Unix() }
func (s *Series) End() int64   { return s.Bars[len(s.Bars)-1].Unix() }

// Window returns the trailing window of up to n bars ending just before
// index i. The slice shares backing storage and is read-only by contract.
func (s *Series) Window(i, n int) []Bar {
	lo := i - n
	if lo < 0 {
		lo = 0
	}
	return s.Bars[lo:i:i]
}
