package sim

// Direction of a position: +1 long, -1 short.
type Direction int8

const (
	Long  Direction = +1
	Short Direction = -1
)

func (d Direction) String() string {
	if d == Short {
		return "short"
	}
	return "long"
}

// Level is one conditional partial-exit instruction: close Amount units if
// the market touches Price. A ladder is a working set of levels; ordering
// is imposed at evaluation time, never at storage time.
type Level struct {
	Price  float64 `json:"price" yaml:"price"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Position is a single directional holding with an entry fill, a mutable
// remaining quantity, and two ladders of conditional exits. Positions are
// created and destroyed only by the Ledger.
type Position struct {
	Key       int
	Direction Direction

	EntryPrice float64
	EntryTime  int64 // unix seconds
	EntryValue float64

	InitialAmount   float64
	RemainingAmount float64

	StopLoss   []Level
	TakeProfit []Level

	// Replacement ladders installed when the opposite ladder type fires
	// (ladder transfer). Nil disables the transfer.
	ChangeStopLoss   []Level
	ChangeTakeProfit []Level

	RealizedProfit float64
	HoldTime       int64 // seconds since entry, updated on every touch
}

// reduce consumes quantity from the position, floored at zero.
func (p *Position) reduce(amount float64) {
	p.RemainingAmount -= amount
	if p.RemainingAmount <= 0 {
		p.RemainingAmount = 0
	}
}

func (p *Position) Closed() bool { return p.RemainingAmount <= 0 }

// UnrealizedProfit is the mark-to-market paper profit of the remaining
// quantity against the given price.
func (p *Position) UnrealizedProfit(price float64) float64 {
	return p.RemainingAmount * float64(p.Direction) * (price - p.EntryPrice)
}

func (p *Position) touch(now int64) {
	p.HoldTime = now - p.EntryTime
}

// View returns a defensive copy with cloned ladders. Strategy callbacks
// receive views; mutating one has no effect on ledger state.
func (p *Position) View() Position {
	v := *p
	v.StopLoss = append([]Level(nil), p.StopLoss...)
	v.TakeProfit = append([]Level(nil), p.TakeProfit...)
	v.ChangeStopLoss = append([]Level(nil), p.ChangeStopLoss...)
	v.ChangeTakeProfit = append([]Level(nil), p.ChangeTakeProfit...)
	return v
}
