package risk

import "math"

// Inputs sizes a position from the capital a strategy is willing to lose
// if its stop is hit.
type Inputs struct {
	Available  float64 // capital available to commit
	RiskPct    float64 // fraction of Available to lose at the stop, e.g. 0.01
	EntryPrice float64
	StopPrice  float64
}

// Result of a sizing calculation. Amount is floored to whole units.
type Result struct {
	Amount       float64
	RiskAmount   float64
	StopDistance float64
}

// Calculate returns the position size whose loss at the stop equals the
// requested risk amount. A zero stop distance yields a zero size rather
// than an unbounded one.
func Calculate(in Inputs) Result {
	dist := math.Abs(in.EntryPrice - in.StopPrice)
	riskAmt := in.Available * in.RiskPct
	if dist == 0 || riskAmt <= 0 {
		return Result{StopDistance: dist}
	}
	return Result{
		Amount:       math.Floor(riskAmt / dist),
		RiskAmount:   riskAmt,
		StopDistance: dist,
	}
}

// RR is the reward-to-risk ratio of an entry/stop/take triple.
func RR(entry, stop, take float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return math.Abs(take-entry) / risk
}
