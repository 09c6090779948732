package strategies

import (
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
)

// MALadder opens a long with a three-rung scale-out ladder when the
// window mean of closes rises above the slow average column, and moves
// the stop to break-even once the first rung fills (ladder transfer).
// Flattens when the window mean drops back below the slow average.
type MALadder struct {
	SlowColumn string
	Amount     float64
}

func NewMALadder() *MALadder {
	return &MALadder{
		SlowColumn: "SMA_20",
		Amount:     100,
	}
}

func (s *MALadder) Name() string { return "ma-ladder" }

func (s *MALadder) OnBar(bar market.Bar, history []market.Bar, open map[int]sim.Position) []sim.Action {
	slow, ok := bar.Indicator(s.SlowColumn)
	if !ok || len(history) == 0 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.Close
	}
	mean := sum / float64(len(history))

	long := hasDirection(open, sim.Long)

	switch {
	case mean > slow && !long:
		a, err := sim.Open(sim.OpenLong, s.Amount,
			[]sim.Level{{Price: bar.Close * 0.8, Amount: s.Amount}},
			[]sim.Level{
				{Price: bar.Close * 1.1, Amount: s.Amount * 0.5},
				{Price: bar.Close * 1.2, Amount: s.Amount * 0.25},
				{Price: bar.Close * 1.3, Amount: s.Amount * 0.25},
			},
		)
		if err != nil {
			return nil
		}
		// Break-even stop once any take-profit rung fills.
		a, err = a.WithTransfer(
			[]sim.Level{{Price: bar.Close, Amount: s.Amount}},
			nil,
		)
		if err != nil {
			return nil
		}
		return []sim.Action{a}

	case mean < slow && long:
		return []sim.Action{sim.CloseAll(sim.Long)}
	}

	return nil
}
