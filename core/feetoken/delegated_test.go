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

func TestFeeToken_Approve(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)
	tt.pending(t)

	require.NoError(t, tt.Approve(alice, bob, helpers.TokensToUnits(100)))
	require.Equal(t, helpers.TokensToUnits(100), tt.Allowance(alice, bob))
	require.True(t, tt.Allowance(bob, alice).IsZero())

	require.NoError(t, tt.Approve(alice, bob, helpers.TokensToUnits(7)))
	require.Equal(t, helpers.TokensToUnits(7), tt.Allowance(alice, bob))

	require.Equal(t, eventsdb.Events{
		&eventsdb.ApprovalEvent{Owner: alice, Spender: bob, Value: "100000000000000000000"},
		&eventsdb.ApprovalEvent{Owner: alice, Spender: bob, Value: "7000000000000000000"},
	}, tt.pending(t))

	// an allowance may exceed the balance
	require.NoError(t, tt.Approve(carol, bob, helpers.TokensToUnits(1)))

	requireCode(t, code.Unauthorized, tt.Approve(tt.Self(), bob, helpers.TokensToUnits(1)))
}

func TestFeeToken_TransferFrom(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)

	require.NoError(t, tt.Approve(alice, bob, helpers.TokensToUnits(1000)))
	tt.pending(t)

	require.NoError(t, tt.TransferFrom(bob, alice, carol, helpers.TokensToUnits(1000)))

	require.True(t, tt.Allowance(alice, bob).IsZero())
	require.Equal(t, "998502246630054917623", helpers.ValueToString(tt.BalanceOf(carol)))
	require.Equal(t, helpers.TokensToUnits(9000), tt.BalanceOf(alice))
	require.True(t, tt.BalanceOf(bob).IsZero())

	self := tt.Self()
	require.Equal(t, eventsdb.Events{
		&eventsdb.TransferEvent{From: alice, To: carol, Value: "998502246630054917623"},
		&eventsdb.TransferEvent{From: alice, To: self, Value: "1497753369945082377"},
	}, tt.pending(t))

	requireCode(t, code.Underflow, tt.TransferFrom(bob, alice, carol, uint256.NewInt(1)))
	tt.requireConserved(t, alice, bob, carol)
}

func TestFeeToken_TransferFromSenderPaysFee(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)

	require.NoError(t, tt.Approve(alice, bob, helpers.TokensToUnits(100)))

	// value plus fee must fit into the allowance
	requireCode(t, code.Underflow, tt.TransferFromSenderPaysFee(bob, alice, carol, helpers.TokensToUnits(100)))
	require.Equal(t, helpers.TokensToUnits(100), tt.Allowance(alice, bob))
	require.True(t, tt.BalanceOf(carol).IsZero())

	require.NoError(t, tt.Approve(alice, bob, helpers.StringToValue("100150000000000000000")))
	require.NoError(t, tt.TransferFromSenderPaysFee(bob, alice, carol, helpers.TokensToUnits(100)))

	require.True(t, tt.Allowance(alice, bob).IsZero())
	require.Equal(t, helpers.TokensToUnits(100), tt.BalanceOf(carol))
	require.Equal(t, "150000000000000000", helpers.ValueToString(tt.FeePool()))
	require.Equal(t, "9899850000000000000000", helpers.ValueToString(tt.BalanceOf(alice)))
}

func TestFeeToken_TransferFromFailures(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)

	require.NoError(t, tt.Approve(bob, carol, helpers.TokensToUnits(10)))
	require.NoError(t, tt.Approve(alice, carol, helpers.TokensToUnits(10)))

	// allowance without balance
	requireCode(t, code.Underflow, tt.TransferFrom(carol, bob, alice, helpers.TokensToUnits(1)))
	require.Equal(t, helpers.TokensToUnits(10), tt.Allowance(bob, carol))

	requireCode(t, code.FrozenRecipient, tt.TransferFrom(carol, alice, tt.Self(), helpers.TokensToUnits(1)))
	requireCode(t, code.InvalidRecipient, tt.TransferFrom(carol, alice, types.Address{}, helpers.TokensToUnits(1)))
	require.Equal(t, helpers.TokensToUnits(10), tt.Allowance(alice, carol))
	require.Equal(t, helpers.TokensToUnits(10000), tt.BalanceOf(alice))
}
