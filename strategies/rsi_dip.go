package strategies

import (
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
)

// RSIDip buys two kinds of dips off a precomputed RSI column: a pullback
// from an overbought peak, and a plain oversold reading. The overbought
// peak price is per-run strategy state.
type RSIDip struct {
	Column string
	Amount float64

	Overbought  float64 // start tracking the peak above this RSI
	Oversold    float64 // plain entry below this RSI
	PullbackPct float64 // entry when close falls this far off the peak

	peak float64
}

func NewRSIDip() *RSIDip {
	return &RSIDip{
		Column:      "RSI_14",
		Amount:      100,
		Overbought:  80,
		Oversold:    30,
		PullbackPct: 0.2,
	}
}

func (s *RSIDip) Name() string { return "rsi-dip" }

func (s *RSIDip) OnBar(bar market.Bar, history []market.Bar, open map[int]sim.Position) []sim.Action {
	rsi, ok := bar.Indicator(s.Column)
	if !ok {
		return nil
	}

	if rsi > s.Overbought && bar.High > s.peak {
		s.peak = bar.High
	}

	if hasDirection(open, sim.Long) {
		return nil
	}

	switch {
	case s.peak > 0 && bar.Close < s.peak*(1-s.PullbackPct):
		s.peak = 0
		half := s.Amount / 2
		a, err := sim.Open(sim.OpenLong, s.Amount,
			[]sim.Level{{Price: bar.Close * 0.8, Amount: s.Amount}},
			[]sim.Level{
				{Price: bar.Close * 1.2, Amount: half},
				{Price: bar.Close * 1.3, Amount: half},
			},
		)
		if err != nil {
			return nil
		}
		return []sim.Action{a}

	case rsi < s.Oversold:
		a, err := sim.Open(sim.OpenLong, s.Amount,
			[]sim.Level{{Price: bar.Close * 0.9, Amount: s.Amount}},
			[]sim.Level{{Price: bar.Close * 1.2, Amount: s.Amount}},
		)
		if err != nil {
			return nil
		}
		return []sim.Action{a}
	}

	return nil
}
