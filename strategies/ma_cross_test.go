package strategies

import (
	"testing"

	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maBar(close, fast, slow float64) market.Bar {
	return market.Bar{
		Timestamp: 60_000,
		Close:     close,
		Indicators: map[string]float64{
			"EMA_20": fast,
			"SMA_50": slow,
		},
	}
}

func TestMACrossEntersOnCrossUp(t *testing.T) {
	t.Parallel()

	s := NewMACross()
	prev := maBar(100, 99, 100) // fast below slow
	cur := maBar(102, 101, 100) // fast crossed above

	acts := s.OnBar(cur, []market.Bar{prev}, nil)
	require.Len(t, acts, 1)

	a := acts[0]
	assert.Equal(t, sim.OpenLong, a.Type)
	assert.Equal(t, 100.0, a.Amount)
	require.Len(t, a.StopLoss, 1)
	assert.InDelta(t, 102*0.99, a.StopLoss[0].Price, 1e-9)
	require.Len(t, a.TakeProfit, 1)
	assert.InDelta(t, 102*1.02, a.TakeProfit[0].Price, 1e-9)
}

func TestMACrossStaysFlatWithoutCross(t *testing.T) {
	t.Parallel()

	s := NewMACross()

	// Fast already above slow on both bars: no fresh cross.
	acts := s.OnBar(maBar(102, 101, 100), []market.Bar{maBar(100, 101, 100)}, nil)
	assert.Empty(t, acts)

	// Fast below slow on both bars.
	acts = s.OnBar(maBar(102, 99, 100), []market.Bar{maBar(100, 99, 100)}, nil)
	assert.Empty(t, acts)
}

func TestMACrossSkipsEntryWhileLong(t *testing.T) {
	t.Parallel()

	s := NewMACross()
	open := map[int]sim.Position{0: {Direction: sim.Long, RemainingAmount: 100}}

	acts := s.OnBar(maBar(102, 101, 100), []market.Bar{maBar(100, 99, 100)}, open)
	assert.Empty(t, acts)
}

func TestMACrossFlattensOnCrossDown(t *testing.T) {
	t.Parallel()

	s := NewMACross()
	open := map[int]sim.Position{0: {Direction: sim.Long, RemainingAmount: 100}}

	acts := s.OnBar(maBar(98, 99, 100), []market.Bar{maBar(100, 101, 100)}, open)
	require.Len(t, acts, 1)
	assert.Equal(t, sim.CloseLong, acts[0].Type)
	assert.Nil(t, acts[0].Key)
}

func TestMACrossRiskSizing(t *testing.T) {
	t.Parallel()

	s := NewMACross()
	s.Equity = 10000
	s.RiskPct = 0.01

	cur := maBar(100, 101, 100)
	acts := s.OnBar(cur, []market.Bar{maBar(100, 99, 100)}, nil)
	require.Len(t, acts, 1)

	// Risk $100 over a $1 stop distance (StopPct 0.99 of a $100 entry).
	assert.InDelta(t, 100, acts[0].Amount, 1e-9)
}

func TestMACrossRequiresIndicators(t *testing.T) {
	t.Parallel()

	s := NewMACross()
	bare := market.Bar{Timestamp: 60_000, Close: 100}

	assert.Empty(t, s.OnBar(bare, []market.Bar{maBar(100, 99, 100)}, nil))
	assert.Empty(t, s.OnBar(maBar(102, 101, 100), []market.Bar{bare}, nil))
	assert.Empty(t, s.OnBar(maBar(102, 101, 100), nil, nil), "no history yet")
}
