package strategies

import (
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
)

// Noop never trades. Baseline for harness testing.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) OnBar(market.Bar, []market.Bar, map[int]sim.Position) []sim.Action {
	return nil
}
