package sim

import (
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/rustyeddy/backsim/journal"
	"github.com/rustyeddy/backsim/market"
)

// Config unifies the accounting knobs that used to be scattered across
// near-duplicate engine variants.
type Config struct {
	InitialBalance float64

	// SlippagePct worsens every fill price by this fraction, against the
	// trader. Zero disables.
	SlippagePct float64

	// TransactionCostPct is charged on each exit fill's notional and
	// folded into that fill's realized profit. Zero disables.
	TransactionCostPct float64

	// UseMarginAccounting gates opens on the margin reserve (guarantee)
	// pool; when false, opens debit and closes settle against the cash
	// balance directly.
	UseMarginAccounting bool
}

// Stats is the running-statistics snapshot used for run metadata.
type Stats struct {
	OpenedCount   int
	ClosedCount   int
	WinCount      int
	LoseCount     int
	OpenPositions int

	InitialBalance   float64
	Balance          float64
	MarginReserve    float64
	ClosedProfit     float64
	RealizedProfit   float64
	UnrealizedProfit float64
	TotalBought      float64
	FeesPaid         float64
}

// Ledger owns the open positions, cash and margin balances, and the
// running statistics of a single simulation run. It is strictly
// single-threaded: parallel parameter sweeps must each own a Ledger.
type Ledger struct {
	cfg      Config
	recorder journal.Recorder
	log      *slog.Logger

	balance   float64 // cash including settled PnL
	guarantee float64 // margin reserve backing open positions

	counter   int
	positions map[int]*Position

	winCount   int
	loseCount  int
	tradeCount int

	closedProfit     float64 // realized PnL of fully closed positions only
	realizedProfit   float64 // realized PnL including partial closes
	unrealizedProfit float64 // last mark-to-market of open positions
	totalBought      float64
	feesPaid         float64
	marked           bool // final unrealized folded into balance
}

// NewLedger builds a ledger with the full initial balance available. A nil
// recorder discards records; a nil logger is silent.
func NewLedger(cfg Config, rec journal.Recorder, log *slog.Logger) *Ledger {
	if rec == nil {
		rec = journal.Discard{}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Ledger{
		cfg:       cfg,
		recorder:  rec,
		log:       log,
		balance:   cfg.InitialBalance,
		guarantee: cfg.InitialBalance,
		positions: make(map[int]*Position),
	}
}

// Apply executes one strategy action against the current bar. Unknown
// action types and rejected opens are logged no-ops, never fatal.
func (l *Ledger) Apply(bar market.Bar, a Action) {
	switch a.Type {
	case OpenLong:
		l.openPosition(bar, a, Long)
	case OpenShort:
		l.openPosition(bar, a, Short)
	case CloseLong:
		l.closePositions(bar, Long, a.Key, "close")
	case CloseShort:
		l.closePositions(bar, Short, a.Key, "close")
	default:
		l.log.Warn("ignoring action", "err", ErrUnknownAction, "type", string(a.Type))
	}
}

func (l *Ledger) openPosition(bar market.Bar, a Action, dir Direction) {
	if a.Amount <= 0 {
		l.log.Warn("open rejected", "err", ErrInvalidAmount, "amount", a.Amount)
		return
	}

	entryPrice := l.fillPrice(dir, bar.Close, true)
	notional := a.Amount * entryPrice

	if l.available() < notional {
		l.log.Warn("open rejected", "err", ErrInsufficientCapital,
			"direction", dir.String(), "notional", notional, "available", l.available())
		return
	}
	l.debit(notional)
	l.totalBought += notional

	key := l.counter
	l.counter++

	pos := &Position{
		Key:              key,
		Direction:        dir,
		EntryPrice:       entryPrice,
		EntryTime:        bar.Unix(),
		EntryValue:       notional,
		InitialAmount:    a.Amount,
		RemainingAmount:  a.Amount,
		StopLoss:         append([]Level(nil), a.StopLoss...),
		TakeProfit:       append([]Level(nil), a.TakeProfit...),
		ChangeStopLoss:   append([]Level(nil), a.ChangeStopLoss...),
		ChangeTakeProfit: append([]Level(nil), a.ChangeTakeProfit...),
	}
	l.positions[key] = pos

	l.record(journal.TradeRecord{
		Key:       key,
		Timestamp: bar.Unix(),
		Action:    "open " + dir.String(),
		Amount:    a.Amount,
		Price:     entryPrice,
		Reserve:   l.guarantee,
	})
	l.log.Info("opened position",
		"key", key, "direction", dir.String(), "amount", a.Amount, "price", entryPrice)
}

// closePositions closes one position (key != nil) or every open position
// of the direction, at the bar close, in ascending key order.
func (l *Ledger) closePositions(bar market.Bar, dir Direction, key *int, label string) {
	var keys []int
	if key != nil {
		if _, ok := l.positions[*key]; ok {
			keys = append(keys, *key)
		}
	} else {
		for k, p := range l.positions {
			if p.Direction == dir {
				keys = append(keys, k)
			}
		}
		sort.Ints(keys)
	}
	for _, k := range keys {
		l.closePosition(bar, l.positions[k], label)
	}
}

// closePosition settles any remaining quantity at the bar close, emits the
// position summary exactly once, and removes the position from the open
// set. Also the finalization path for ladder fills that zero a position.
func (l *Ledger) closePosition(bar market.Bar, pos *Position, label string) {
	now := bar.Unix()
	pos.touch(now)
	closePrice := l.fillPrice(pos.Direction, bar.Close, false)

	if pos.RemainingAmount > 0 {
		amount := pos.RemainingAmount
		pos.reduce(amount)
		l.settle(pos, amount, closePrice)
		l.record(journal.TradeRecord{
			Key:       pos.Key,
			Timestamp: now,
			Action:    label + " " + pos.Direction.String(),
			Amount:    amount,
			Price:     closePrice,
			Reserve:   l.guarantee,
		})
	}

	if pos.RealizedProfit > 0 {
		l.winCount++
	} else {
		l.loseCount++
	}
	l.tradeCount++
	l.closedProfit += pos.RealizedProfit

	l.recordSummary(journal.PositionSummary{
		Key:         pos.Key,
		EntryTime:   pos.EntryTime,
		ExitTime:    now,
		HoldTime:    pos.HoldTime,
		EntryPrice:  pos.EntryPrice,
		EntryValue:  pos.EntryValue,
		ExitPrice:   closePrice,
		Amount:      pos.InitialAmount,
		FinalProfit: pos.RealizedProfit,
		PNL:         journal.FormatPNL(pos.RealizedProfit, pos.EntryValue),
	})

	delete(l.positions, pos.Key)
	l.log.Info("closed position", "key", pos.Key, "profit", pos.RealizedProfit)
}

// CheckExits runs the ladder evaluator against every open position for the
// bar, in ascending key order.
func (l *Ledger) CheckExits(bar market.Bar) {
	keys := make([]int, 0, len(l.positions))
	for k := range l.positions {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		if pos, ok := l.positions[k]; ok {
			l.runLadders(bar, pos)
		}
	}
}

// runLadders processes the take-profit ladder first, then the stop-loss
// ladder. A ladder transfer installs only after a trigger of the other
// ladder type, and only while the position is still open; the replacement
// is live for the rest of this bar.
func (l *Ledger) runLadders(bar market.Bar, pos *Position) {
	tpFired := l.runLadder(bar, pos, TakeProfit)
	if pos.Closed() {
		return
	}
	if tpFired && pos.ChangeStopLoss != nil {
		pos.StopLoss = append([]Level(nil), pos.ChangeStopLoss...)
	}

	slFired := l.runLadder(bar, pos, StopLoss)
	if pos.Closed() {
		return
	}
	if slFired && pos.ChangeTakeProfit != nil {
		pos.TakeProfit = append([]Level(nil), pos.ChangeTakeProfit...)
	}
}

// runLadder fills the triggered levels of one ladder in price-priority
// order, stopping as soon as the position closes. Reports whether at least
// one level filled.
func (l *Ledger) runLadder(bar market.Bar, pos *Position, reason ExitReason) bool {
	ladder := pos.TakeProfit
	if reason == StopLoss {
		ladder = pos.StopLoss
	}

	fired := false
	for _, lv := range Triggered(pos.Direction, reason, ladder, bar) {
		if pos.Closed() {
			break
		}
		l.partialClose(bar, pos, lv, reason)
		fired = true
	}
	return fired
}

// partialClose fills one ladder level at its price (a limit-style fill,
// not a market fill at the bar close), clamped to the remaining amount,
// and removes the level from its ladder. A fill that zeroes the position
// finalizes the full close immediately.
func (l *Ledger) partialClose(bar market.Bar, pos *Position, lv Level, reason ExitReason) {
	amount := math.Min(lv.Amount, pos.RemainingAmount)
	fill := l.fillPrice(pos.Direction, lv.Price, false)

	pos.reduce(amount)
	if reason == TakeProfit {
		pos.TakeProfit = removeLevel(pos.TakeProfit, lv)
	} else {
		pos.StopLoss = removeLevel(pos.StopLoss, lv)
	}
	l.settle(pos, amount, fill)

	l.record(journal.TradeRecord{
		Key:       pos.Key,
		Timestamp: bar.Unix(),
		Action:    string(reason) + " " + pos.Direction.String(),
		Amount:    amount,
		Price:     fill,
		Reserve:   l.guarantee,
	})
	l.log.Info("ladder fill",
		"key", pos.Key, "reason", string(reason), "amount", amount, "price", fill)

	if pos.Closed() {
		l.closePosition(bar, pos, "close")
	}
}

// settle realizes the profit of a closed quantity and releases its share
// of the entry notional back to the capital pool.
func (l *Ledger) settle(pos *Position, amount, fill float64) {
	profit := amount * float64(pos.Direction) * (fill - pos.EntryPrice)

	fee := amount * fill * l.cfg.TransactionCostPct
	profit -= fee
	l.feesPaid += fee

	pos.RealizedProfit += profit
	l.realizedProfit += profit

	released := amount * pos.EntryPrice
	if l.cfg.UseMarginAccounting {
		l.balance += profit
		l.guarantee += profit + released
	} else {
		l.balance += profit + released
	}
}

// CloseAll force-closes every open position at the bar close, recording
// the fills as "endofdata". Terminal liquidation mode only; the default
// run leaves end-of-series positions open.
func (l *Ledger) CloseAll(bar market.Bar) {
	l.closePositions(bar, Long, nil, "endofdata")
	l.closePositions(bar, Short, nil, "endofdata")
}

// UpdateUnrealized recomputes open-position paper profit against the bar
// close. Advisory: never folded into realized profit.
func (l *Ledger) UpdateUnrealized(bar market.Bar) {
	var sum float64
	for _, p := range l.positions {
		sum += p.UnrealizedProfit(bar.Close)
	}
	l.unrealizedProfit = sum
}

// MarkToMarket folds the final unrealized profit into the reported
// balance. Call once, after the last bar.
func (l *Ledger) MarkToMarket(bar market.Bar) {
	l.UpdateUnrealized(bar)
	if !l.marked {
		l.balance += l.unrealizedProfit
		l.marked = true
	}
}

// Equity is the bar-boundary account value: cash plus open-position
// mark-to-market, plus capital locked in open entries when the simple
// cash-accounting mode is active.
func (l *Ledger) Equity() float64 {
	eq := l.balance
	if !l.cfg.UseMarginAccounting {
		for _, p := range l.positions {
			eq += p.RemainingAmount * p.EntryPrice
		}
	}
	if !l.marked {
		eq += l.unrealizedProfit
	}
	return eq
}

// Snapshot returns defensive copies of the open positions keyed by
// position key. Strategies receive this map and cannot corrupt ledger
// state through it.
func (l *Ledger) Snapshot() map[int]Position {
	out := make(map[int]Position, len(l.positions))
	for k, p := range l.positions {
		out[k] = p.View()
	}
	return out
}

func (l *Ledger) Balance() float64       { return l.balance }
func (l *Ledger) MarginReserve() float64 { return l.guarantee }

func (l *Ledger) Stats() Stats {
	return Stats{
		OpenedCount:      l.counter,
		ClosedCount:      l.tradeCount,
		WinCount:         l.winCount,
		LoseCount:        l.loseCount,
		OpenPositions:    len(l.positions),
		InitialBalance:   l.cfg.InitialBalance,
		Balance:          l.balance,
		MarginReserve:    l.guarantee,
		ClosedProfit:     l.closedProfit,
		RealizedProfit:   l.realizedProfit,
		UnrealizedProfit: l.unrealizedProfit,
		TotalBought:      l.totalBought,
		FeesPaid:         l.feesPaid,
	}
}

// fillPrice applies slippage against the trader: entries fill worse in the
// trade direction, exits worse against it.
func (l *Ledger) fillPrice(dir Direction, price float64, entry bool) float64 {
	if l.cfg.SlippagePct == 0 {
		return price
	}
	adverse := float64(dir)
	if !entry {
		adverse = -adverse
	}
	return price * (1 + adverse*l.cfg.SlippagePct)
}

func (l *Ledger) available() float64 {
	if l.cfg.UseMarginAccounting {
		return l.guarantee
	}
	return l.balance
}

func (l *Ledger) debit(v float64) {
	if l.cfg.UseMarginAccounting {
		l.guarantee -= v
	} else {
		l.balance -= v
	}
}

// Recorder failures are reported, not fatal: a run's accounting stays
// consistent even if the sink drops a row.
func (l *Ledger) record(t journal.TradeRecord) {
	if err := l.recorder.RecordTrade(t); err != nil {
		l.log.Error("record trade", "err", err)
	}
}

func (l *Ledger) recordSummary(s journal.PositionSummary) {
	if err := l.recorder.RecordSummary(s); err != nil {
		l.log.Error("record summary", "err", err)
	}
}
