package strategies

import (
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/risk"
	"github.com/rustyeddy/backsim/sim"
)

// MACross goes long when the fast average column crosses above the slow
// one and flattens on the opposite cross. Both averages are precomputed
// indicator columns on the bars; the strategy only compares them.
type MACross struct {
	FastColumn string
	SlowColumn string

	// Fixed position size, used unless risk sizing is enabled.
	Amount float64

	// Optional risk sizing: when RiskPct > 0, the amount is derived from
	// Equity, RiskPct, and the stop distance instead of Amount.
	Equity  float64
	RiskPct float64

	StopPct   float64 // stop price as a fraction of entry, e.g. 0.99
	TargetPct float64 // take price as a fraction of entry, e.g. 1.02
}

func NewMACross() *MACross {
	return &MACross{
		FastColumn: "EMA_20",
		SlowColumn: "SMA_50",
		Amount:     100,
		StopPct:    0.99,
		TargetPct:  1.02,
	}
}

func (s *MACross) Name() string { return "ma-cross" }

func (s *MACross) OnBar(bar market.Bar, history []market.Bar, open map[int]sim.Position) []sim.Action {
	fast, ok := bar.Indicator(s.FastColumn)
	if !ok {
		return nil
	}
	slow, ok := bar.Indicator(s.SlowColumn)
	if !ok {
		return nil
	}
	if len(history) == 0 {
		return nil
	}

	prev := history[len(history)-1]
	prevFast, ok := prev.Indicator(s.FastColumn)
	if !ok {
		return nil
	}
	prevSlow, ok := prev.Indicator(s.SlowColumn)
	if !ok {
		return nil
	}

	long := hasDirection(open, sim.Long)

	switch {
	case prevFast <= prevSlow && fast > slow && !long:
		stop := bar.Close * s.StopPct
		take := bar.Close * s.TargetPct

		amount := s.Amount
		if s.RiskPct > 0 {
			amount = risk.Calculate(risk.Inputs{
				Available:  s.Equity,
				RiskPct:    s.RiskPct,
				EntryPrice: bar.Close,
				StopPrice:  stop,
			}).Amount
		}
		if amount <= 0 {
			return nil
		}

		a, err := sim.Open(sim.OpenLong, amount,
			[]sim.Level{{Price: stop, Amount: amount}},
			[]sim.Level{{Price: take, Amount: amount}},
		)
		if err != nil {
			return nil
		}
		return []sim.Action{a}

	case prevFast >= prevSlow && fast < slow && long:
		return []sim.Action{sim.CloseAll(sim.Long)}
	}

	return nil
}
