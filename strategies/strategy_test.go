package strategies

import (
	"testing"

	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "noop", want: "noop"},
		{in: "none", want: "noop"},
		{in: "ma-cross", want: "ma-cross"},
		{in: "MACross", want: "ma-cross"},
		{in: " rsi ", want: "rsi-dip"},
		{in: "ma-ladder", want: "ma-ladder"},
	}

	for _, tt := range tests {
		s, err := ByName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, s.Name())
	}

	_, err := ByName("martingale")
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestRegister(t *testing.T) {
	Register("Custom", func() Strategy { return Func{ID: "custom"} })

	s, err := ByName("custom")
	require.NoError(t, err)
	assert.Equal(t, "custom", s.Name())

	// Registered constructors take precedence over the built-ins.
	Register("noop", func() Strategy { return Func{ID: "not-noop"} })
	defer delete(registry, "noop")

	s, err = ByName("noop")
	require.NoError(t, err)
	assert.Equal(t, "not-noop", s.Name())
}

func TestByNameReturnsFreshInstances(t *testing.T) {
	t.Parallel()

	a, err := ByName("rsi-dip")
	require.NoError(t, err)
	b, err := ByName("rsi-dip")
	require.NoError(t, err)
	assert.NotSame(t, a, b, "per-run state must not be shared")
}

func TestFuncAdapter(t *testing.T) {
	t.Parallel()

	called := 0
	f := Func{
		ID: "probe",
		Fn: func(market.Bar, []market.Bar, map[int]sim.Position) []sim.Action {
			called++
			return []sim.Action{sim.CloseAll(sim.Long)}
		},
	}

	assert.Equal(t, "probe", f.Name())
	acts := f.OnBar(market.Bar{}, nil, nil)
	assert.Equal(t, 1, called)
	require.Len(t, acts, 1)
}

func TestNoop(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Noop{}.OnBar(market.Bar{Close: 100}, nil, nil))
}
