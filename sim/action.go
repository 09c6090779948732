package sim

import (
	"errors"
	"fmt"
)

// ActionType uses the wire names of the strategy protocol.
type ActionType string

const (
	OpenLong   ActionType = "buy"
	OpenShort  ActionType = "sell_short"
	CloseLong  ActionType = "sell"
	CloseShort ActionType = "cover"
)

var (
	ErrInsufficientCapital = errors.New("insufficient capital")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidLevelAmount  = errors.New("level amount must be positive")
	ErrUnknownAction       = errors.New("unknown action type")
)

// Action is one strategy instruction for the current bar. Build opens with
// Open so the required fields are validated up front; close actions need
// no validation.
type Action struct {
	Type   ActionType
	Amount float64

	StopLoss   []Level
	TakeProfit []Level

	// Replacement ladders for the ladder-transfer feature. Optional.
	ChangeStopLoss   []Level
	ChangeTakeProfit []Level

	// Close a single position instead of every position of the action's
	// direction. Optional, close actions only.
	Key *int
}

// Open builds a validated open action. Level amounts may exceed the
// position amount; fills are clamped at execution time.
func Open(t ActionType, amount float64, stoploss, takeprofit []Level) (Action, error) {
	if t != OpenLong && t != OpenShort {
		return Action{}, fmt.Errorf("%w: %q is not an open", ErrUnknownAction, t)
	}
	if amount <= 0 {
		return Action{}, fmt.Errorf("open %s: %w", t, ErrInvalidAmount)
	}
	if err := checkLevels(stoploss); err != nil {
		return Action{}, fmt.Errorf("stoploss ladder: %w", err)
	}
	if err := checkLevels(takeprofit); err != nil {
		return Action{}, fmt.Errorf("takeprofit ladder: %w", err)
	}
	return Action{Type: t, Amount: amount, StopLoss: stoploss, TakeProfit: takeprofit}, nil
}

// WithTransfer attaches replacement ladders: stoploss installs after a
// take-profit trigger, takeprofit after a stop-loss trigger. Either may be
// nil.
func (a Action) WithTransfer(stoploss, takeprofit []Level) (Action, error) {
	if err := checkLevels(stoploss); err != nil {
		return Action{}, fmt.Errorf("change_stoploss ladder: %w", err)
	}
	if err := checkLevels(takeprofit); err != nil {
		return Action{}, fmt.Errorf("change_takeprofit ladder: %w", err)
	}
	a.ChangeStopLoss = stoploss
	a.ChangeTakeProfit = takeprofit
	return a, nil
}

// CloseAll closes every open position in the given direction.
func CloseAll(dir Direction) Action {
	if dir == Short {
		return Action{Type: CloseShort}
	}
	return Action{Type: CloseLong}
}

// CloseOne closes a single position by key.
func CloseOne(dir Direction, key int) Action {
	a := CloseAll(dir)
	a.Key = &key
	return a
}

func checkLevels(ladder []Level) error {
	for _, lv := range ladder {
		if lv.Amount <= 0 {
			return fmt.Errorf("level at %v: %w", lv.Price, ErrInvalidLevelAmount)
		}
	}
	return nil
}
