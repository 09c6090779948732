package sim

import (
	"sort"

	"github.com/rustyeddy/backsim/market"
)

// ExitReason tags why a ladder level fired.
type ExitReason string

const (
	StopLoss   ExitReason = "stoploss"
	TakeProfit ExitReason = "takeprofit"
)

// upperLadder reports whether the ladder sits above the entry price: long
// take-profits and short stop-losses. Upper ladders fill against the bar
// high and are walked in ascending price order; lower ladders fill against
// the bar low and are walked descending. Both orders are nearest-to-entry
// first.
func upperLadder(dir Direction, reason ExitReason) bool {
	return (dir == Long) == (reason == TakeProfit)
}

// Triggered returns the levels of one ladder that fire on this bar, in the
// order they fill. Evaluation is price-priority: levels are visited
// nearest-to-entry first and stop at the first level the bar did not
// touch, so a distal level can never fire while a proximal one has not.
// Triggered is pure; consuming the fills is the Ledger's job.
func Triggered(dir Direction, reason ExitReason, ladder []Level, bar market.Bar) []Level {
	if len(ladder) == 0 {
		return nil
	}

	sorted := append([]Level(nil), ladder...)
	ascending := upperLadder(dir, reason)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].Price < sorted[j].Price
		}
		return sorted[i].Price > sorted[j].Price
	})

	var fired []Level
	for _, lv := range sorted {
		if !touches(dir, reason, lv.Price, bar) {
			break
		}
		fired = append(fired, lv)
	}
	return fired
}

// touches reports whether the bar reached the level price.
func touches(dir Direction, reason ExitReason, price float64, bar market.Bar) bool {
	if upperLadder(dir, reason) {
		return bar.High >= price
	}
	return bar.Low <= price
}

// removeLevel drops the first level equal to lv. Levels are one-shot: a
// fired level is never re-tested.
func removeLevel(ladder []Level, lv Level) []Level {
	for i := range ladder {
		if ladder[i] == lv {
			return append(ladder[:i], ladder[i+1:]...)
		}
	}
	return ladder
}
