package feetoken

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	eventsdb "github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/stretchr/testify/require"
)

func TestFeeToken_Transfer(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)
	tt.pending(t)

	require.NoError(t, tt.Transfer(alice, bob, helpers.TokensToUnits(1000)))

	require.Equal(t, "998502246630054917623", helpers.ValueToString(tt.BalanceOf(bob)))
	require.Equal(t, "1497753369945082377", helpers.ValueToString(tt.FeePool()))
	require.Equal(t, helpers.TokensToUnits(9000), tt.BalanceOf(alice))
	require.Equal(t, helpers.TokensToUnits(10000), tt.TotalSupply())

	self := tt.Self()
	require.Equal(t, eventsdb.Events{
		&eventsdb.TransferEvent{From: alice, To: bob, Value: "998502246630054917623"},
		&eventsdb.TransferEvent{From: alice, To: self, Value: "1497753369945082377"},
	}, tt.pending(t))
}

func TestFeeToken_TransferSenderPaysFee(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)

	require.NoError(t, tt.TransferSenderPaysFee(alice, bob, helpers.TokensToUnits(1000)))

	require.Equal(t, helpers.TokensToUnits(1000), tt.BalanceOf(bob))
	require.Equal(t, "1500000000000000000", helpers.ValueToString(tt.FeePool()))
	require.Equal(t, "8998500000000000000000", helpers.ValueToString(tt.BalanceOf(alice)))
	tt.requireConserved(t, alice, bob)
}

func TestFeeToken_TransferRounding(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)
	tt.pending(t)

	require.NoError(t, tt.Transfer(alice, bob, uint256.NewInt(666)))
	require.Equal(t, uint256.NewInt(665), tt.BalanceOf(bob))
	require.Equal(t, uint256.NewInt(1), tt.FeePool())

	require.NoError(t, tt.Transfer(alice, carol, uint256.NewInt(1)))
	require.True(t, tt.BalanceOf(carol).IsZero())
	require.Equal(t, uint256.NewInt(2), tt.FeePool())

	tt.pending(t)

	// the fee on 666 floors to zero when paid by the sender
	require.NoError(t, tt.TransferSenderPaysFee(alice, carol, uint256.NewInt(666)))
	require.Equal(t, uint256.NewInt(666), tt.BalanceOf(carol))
	require.Equal(t, uint256.NewInt(2), tt.FeePool())

	self := tt.Self()
	require.Equal(t, eventsdb.Events{
		&eventsdb.TransferEvent{From: alice, To: carol, Value: "666"},
		&eventsdb.TransferEvent{From: alice, To: self, Value: "0"},
	}, tt.pending(t))

	tt.requireConserved(t, alice, bob, carol)
}

func TestFeeToken_TransferZero(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)

	require.NoError(t, tt.Transfer(alice, bob, new(uint256.Int)))
	require.True(t, tt.BalanceOf(bob).IsZero())
	require.Equal(t, helpers.TokensToUnits(10000), tt.BalanceOf(alice))
}

func TestFeeToken_TransferFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from types.Address
		to   func(tt *testToken) types.Address
		code uint32
	}{
		{
			name: "null recipient",
			from: alice,
			to:   func(*testToken) types.Address { return types.Address{} },
			code: code.InvalidRecipient,
		},
		{
			name: "pool recipient",
			from: alice,
			to:   func(tt *testToken) types.Address { return tt.Self() },
			code: code.FrozenRecipient,
		},
		{
			name: "pool sender",
			from: types.SelfAddress("PEG"),
			to:   func(*testToken) types.Address { return bob },
			code: code.Unauthorized,
		},
		{
			name: "insufficient balance",
			from: bob,
			to:   func(*testToken) types.Address { return carol },
			code: code.Underflow,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			tt := newTestToken(t)
			tt.pending(t)
			hash := tt.state.Hash()

			requireCode(t, test.code, tt.Transfer(test.from, test.to(tt), helpers.TokensToUnits(1)))
			requireCode(t, test.code, tt.TransferSenderPaysFee(test.from, test.to(tt), helpers.TokensToUnits(1)))

			require.Empty(t, tt.pending(t))
			require.Equal(t, hash, tt.state.Hash())
		})
	}
}

func TestFeeToken_TransferInsufficientForFee(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)

	// the whole balance can be sent when the recipient pays
	require.NoError(t, tt.Transfer(alice, bob, helpers.TokensToUnits(10000)))
	require.True(t, tt.BalanceOf(alice).IsZero())

	// but not when the sender has to add the fee on top
	requireCode(t, code.Underflow, tt.TransferSenderPaysFee(bob, carol, tt.BalanceOf(bob)))
	require.True(t, tt.BalanceOf(carol).IsZero())
}
