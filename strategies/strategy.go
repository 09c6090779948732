package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
)

// Strategy decides the actions for each bar. OnBar receives the current
// bar, a read-only trailing window of prior bars, and a snapshot of the
// open positions; it must not retain or mutate any of them. Returned
// actions are applied in order, before any ladder exits for the bar.
type Strategy interface {
	Name() string
	OnBar(bar market.Bar, history []market.Bar, open map[int]sim.Position) []sim.Action
}

// Func adapts a plain function to a named Strategy.
type Func struct {
	ID string
	Fn func(bar market.Bar, history []market.Bar, open map[int]sim.Position) []sim.Action
}

func (f Func) Name() string { return f.ID }

func (f Func) OnBar(bar market.Bar, history []market.Bar, open map[int]sim.Position) []sim.Action {
	return f.Fn(bar, history, open)
}

// registry holds constructors for externally contributed strategies.
// Constructors, not instances: strategies carry per-run state.
var registry = make(map[string]func() Strategy)

// Register makes a strategy constructor available to ByName. Registered
// names take precedence over the built-ins.
func Register(name string, fn func() Strategy) {
	registry[strings.ToLower(strings.TrimSpace(name))] = fn
}

// ByName returns a fresh, default-configured strategy instance. Strategies
// carry per-run state, so instances are never shared between runs.
func ByName(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if fn, ok := registry[key]; ok {
		return fn(), nil
	}

	switch key {
	case "noop", "none":
		return Noop{}, nil

	case "ma-cross", "macross":
		return NewMACross(), nil

	case "rsi-dip", "rsi":
		return NewRSIDip(), nil

	case "ma-ladder", "maladder":
		return NewMALadder(), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, ma-cross, rsi-dip, ma-ladder)", name)
	}
}

func hasDirection(open map[int]sim.Position, dir sim.Direction) bool {
	for _, p := range open {
		if p.Direction == dir {
			return true
		}
	}
	return false
}
