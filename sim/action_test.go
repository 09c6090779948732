package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     ActionType
		amount  float64
		sl, tp  []Level
		wantErr error
	}{
		{name: "valid long", typ: OpenLong, amount: 10},
		{name: "valid short with ladders", typ: OpenShort, amount: 10,
			sl: []Level{{Price: 110, Amount: 10}}, tp: []Level{{Price: 90, Amount: 10}}},
		{name: "close is not an open", typ: CloseLong, amount: 10, wantErr: ErrUnknownAction},
		{name: "zero amount", typ: OpenLong, amount: 0, wantErr: ErrInvalidAmount},
		{name: "negative amount", typ: OpenLong, amount: -5, wantErr: ErrInvalidAmount},
		{name: "zero level amount", typ: OpenLong, amount: 10,
			tp: []Level{{Price: 110, Amount: 0}}, wantErr: ErrInvalidLevelAmount},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Open(tt.typ, tt.amount, tt.sl, tt.tp)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.typ, a.Type)
			assert.Equal(t, tt.amount, a.Amount)
		})
	}
}

func TestWithTransfer(t *testing.T) {
	t.Parallel()

	a, err := Open(OpenLong, 10, nil, []Level{{Price: 110, Amount: 10}})
	require.NoError(t, err)

	a, err = a.WithTransfer([]Level{{Price: 100, Amount: 10}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Level{{Price: 100, Amount: 10}}, a.ChangeStopLoss)
	assert.Nil(t, a.ChangeTakeProfit)

	_, err = a.WithTransfer(nil, []Level{{Price: 120, Amount: -1}})
	assert.ErrorIs(t, err, ErrInvalidLevelAmount)
}

func TestCloseHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CloseLong, CloseAll(Long).Type)
	assert.Equal(t, CloseShort, CloseAll(Short).Type)
	assert.Nil(t, CloseAll(Long).Key)

	a := CloseOne(Short, 7)
	assert.Equal(t, CloseShort, a.Type)
	require.NotNil(t, a.Key)
	assert.Equal(t, 7, *a.Key)
}

func TestDirectionString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "long", Long.String())
	assert.Equal(t, "short", Short.String())
}
