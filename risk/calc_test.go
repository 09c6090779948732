package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Inputs
		want Result
	}{
		{
			name: "long sizing",
			in:   Inputs{Available: 10000, RiskPct: 0.01, EntryPrice: 100, StopPrice: 98},
			want: Result{Amount: 50, RiskAmount: 100, StopDistance: 2},
		},
		{
			name: "short sizing uses absolute distance",
			in:   Inputs{Available: 10000, RiskPct: 0.02, EntryPrice: 100, StopPrice: 104},
			want: Result{Amount: 50, RiskAmount: 200, StopDistance: 4},
		},
		{
			name: "amount floors to whole units",
			in:   Inputs{Available: 1000, RiskPct: 0.01, EntryPrice: 100, StopPrice: 97},
			want: Result{Amount: 3, RiskAmount: 10, StopDistance: 3},
		},
		{
			name: "zero stop distance yields zero size",
			in:   Inputs{Available: 10000, RiskPct: 0.01, EntryPrice: 100, StopPrice: 100},
			want: Result{},
		},
		{
			name: "zero risk yields zero size",
			in:   Inputs{Available: 10000, RiskPct: 0, EntryPrice: 100, StopPrice: 98},
			want: Result{StopDistance: 2},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Calculate(tt.in))
		})
	}
}

func TestRR(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, RR(100, 98, 104), 1e-9)
	assert.InDelta(t, 2.0, RR(100, 102, 96), 1e-9, "short side")
	assert.Zero(t, RR(100, 100, 110))
}
