package sim

import (
	"testing"

	"github.com/rustyeddy/backsim/market"
	"github.com/stretchr/testify/assert"
)

func testBar(high, low float64) market.Bar {
	return market.Bar{
		Timestamp: 1700000000000,
		Open:      (high + low) / 2,
		High:      high,
		Low:       low,
		Close:     (high + low) / 2,
		Volume:    1000,
	}
}

func TestTriggeredOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dir    Direction
		reason ExitReason
		ladder []Level
		bar    market.Bar
		want   []float64 // fired prices, in fill order
	}{
		{
			name:   "long takeprofit fills ascending",
			dir:    Long,
			reason: TakeProfit,
			ladder: []Level{{Price: 130, Amount: 10}, {Price: 110, Amount: 10}, {Price: 120, Amount: 10}},
			bar:    testBar(125, 95),
			want:   []float64{110, 120},
		},
		{
			name:   "long stoploss fills descending",
			dir:    Long,
			reason: StopLoss,
			ladder: []Level{{Price: 80, Amount: 10}, {Price: 95, Amount: 10}, {Price: 90, Amount: 10}},
			bar:    testBar(105, 85),
			want:   []float64{95, 90},
		},
		{
			name:   "short takeprofit fills descending",
			dir:    Short,
			reason: TakeProfit,
			ladder: []Level{{Price: 70, Amount: 10}, {Price: 90, Amount: 10}},
			bar:    testBar(105, 85),
			want:   []float64{90},
		},
		{
			name:   "short stoploss fills ascending",
			dir:    Short,
			reason: StopLoss,
			ladder: []Level{{Price: 120, Amount: 10}, {Price: 110, Amount: 10}},
			bar:    testBar(115, 95),
			want:   []float64{110},
		},
		{
			name:   "nothing fires outside the range",
			dir:    Long,
			reason: TakeProfit,
			ladder: []Level{{Price: 110, Amount: 10}},
			bar:    testBar(105, 95),
			want:   nil,
		},
		{
			name:   "empty ladder",
			dir:    Long,
			reason: TakeProfit,
			ladder: nil,
			bar:    testBar(200, 0),
			want:   nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fired := Triggered(tt.dir, tt.reason, tt.ladder, tt.bar)
			var prices []float64
			for _, lv := range fired {
				prices = append(prices, lv.Price)
			}
			assert.Equal(t, tt.want, prices)
		})
	}
}

// A distal level must never fire past an untouched proximal one, even if
// the bar range reaches it.
func TestTriggeredStopsAtFirstMiss(t *testing.T) {
	t.Parallel()

	ladder := []Level{{Price: 110, Amount: 10}, {Price: 150, Amount: 10}}
	bar := market.Bar{Timestamp: 1700000000000, High: 160, Low: 112, Close: 120}
	// Proximal 110 is below the bar low but High >= 110 still holds for
	// an upper ladder, so both fire; the order is what matters.
	fired := Triggered(Long, TakeProfit, ladder, bar)
	assert.Len(t, fired, 2)
	assert.Equal(t, 110.0, fired[0].Price)

	// Raise the proximal level above the high: the distal one is blocked.
	ladder = []Level{{Price: 170, Amount: 10}, {Price: 150, Amount: 10}}
	fired = Triggered(Long, TakeProfit, ladder, bar)
	assert.Len(t, fired, 1)
	assert.Equal(t, 150.0, fired[0].Price)
}

func TestTriggeredDoesNotMutateLadder(t *testing.T) {
	t.Parallel()

	ladder := []Level{{Price: 130, Amount: 10}, {Price: 110, Amount: 10}}
	Triggered(Long, TakeProfit, ladder, testBar(200, 50))
	assert.Equal(t, []Level{{Price: 130, Amount: 10}, {Price: 110, Amount: 10}}, ladder)
}

func TestRemoveLevel(t *testing.T) {
	t.Parallel()

	ladder := []Level{{Price: 110, Amount: 10}, {Price: 120, Amount: 20}, {Price: 110, Amount: 10}}

	out := removeLevel(ladder, Level{Price: 110, Amount: 10})
	assert.Equal(t, []Level{{Price: 120, Amount: 20}, {Price: 110, Amount: 10}}, out)

	out = removeLevel(out, Level{Price: 999, Amount: 1})
	assert.Len(t, out, 2, "missing level is a no-op")
}
