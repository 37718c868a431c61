package feetoken

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	eventsdb "github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/governance"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/formula"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/stretchr/testify/require"
)

func TestFeeToken_SetTransferFeeRate(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)
	tt.pending(t)

	max := formula.MaxTransferFeeRate()
	require.NoError(t, tt.SetTransferFeeRate(owner, max))
	require.Equal(t, max, tt.TransferFeeRate())

	requireCode(t, code.InvalidFeeRate, tt.SetTransferFeeRate(owner, new(uint256.Int).AddUint64(max, 1)))
	requireCode(t, code.Unauthorized, tt.SetTransferFeeRate(feeAuthority, uint256.NewInt(1)))
	require.Equal(t, max, tt.TransferFeeRate())

	require.Equal(t, eventsdb.Events{
		&eventsdb.FeeRateUpdatedEvent{Rate: "100000000000000000"},
	}, tt.pending(t))

	require.NoError(t, tt.SetTransferFeeRate(owner, new(uint256.Int)))
	require.NoError(t, tt.Transfer(alice, bob, helpers.TokensToUnits(1000)))
	require.Equal(t, helpers.TokensToUnits(1000), tt.BalanceOf(bob))
	require.True(t, tt.FeePool().IsZero())
}

func TestFeeToken_Roles(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)
	tt.pending(t)

	requireCode(t, code.Unauthorized, tt.SetFeeAuthority(issuer, bob))
	requireCode(t, code.Unauthorized, tt.SetIssuer(issuer, bob, false))
	requireCode(t, code.Unauthorized, tt.SetCourt(courtAddress, governance.NewStatic(bob)))

	require.NoError(t, tt.SetFeeAuthority(owner, carol))
	require.Equal(t, carol, tt.FeeAuthority())

	require.NoError(t, tt.SetIssuer(owner, bob, false))
	require.Equal(t, bob, tt.Issuer())
	require.Equal(t, carol, tt.FeeAuthority())

	require.NoError(t, tt.SetIssuer(owner, alice, true))
	require.Equal(t, alice, tt.Issuer())
	require.Equal(t, alice, tt.FeeAuthority())

	require.NoError(t, tt.SetCourt(owner, governance.NewStatic(bob)))
	require.Equal(t, bob, tt.Court())

	require.Equal(t, eventsdb.Events{
		&eventsdb.FeeAuthorityUpdatedEvent{FeeAuthority: carol},
		&eventsdb.IssuerUpdatedEvent{Issuer: bob},
		&eventsdb.IssuerUpdatedEvent{Issuer: alice},
		&eventsdb.FeeAuthorityUpdatedEvent{FeeAuthority: alice},
		&eventsdb.CourtUpdatedEvent{Court: bob},
	}, tt.pending(t))

	// the previous court lost its power
	requireCode(t, code.Unauthorized, tt.FreezeAndConfiscate(courtAddress, alice))
}

func TestFeeToken_SetLedger(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)

	next := types.LedgerAddress("PEG", 1)

	requireCode(t, code.InvalidTarget, tt.SetLedger(owner, next))
	requireCode(t, code.Unauthorized, tt.CreateLedger(alice, next))
	require.NoError(t, tt.CreateLedger(owner, next))
	requireCode(t, code.InvalidTarget, tt.CreateLedger(owner, next))
	requireCode(t, code.Unauthorized, tt.SetLedger(alice, next))

	tt.pending(t)
	require.NoError(t, tt.SetLedger(owner, next))
	require.Equal(t, next, tt.Ledger())
	require.Equal(t, eventsdb.Events{
		&eventsdb.LedgerUpdatedEvent{Ledger: next},
	}, tt.pending(t))

	// balances live in the ledger and are not carried over
	require.True(t, tt.BalanceOf(alice).IsZero())
	require.Equal(t, helpers.TokensToUnits(10000), tt.TotalSupply())
	requireCode(t, code.Underflow, tt.Transfer(alice, bob, helpers.TokensToUnits(1)))

	// switching back restores them
	require.NoError(t, tt.SetLedger(owner, types.LedgerAddress("PEG", 0)))
	require.Equal(t, helpers.TokensToUnits(10000), tt.BalanceOf(alice))
}

func TestFeeToken_FailedOperationLeavesNoTrace(t *testing.T) {
	t.Parallel()
	tt := newTestToken(t)

	require.NoError(t, tt.Approve(alice, bob, helpers.TokensToUnits(20000)))
	hash, _, err := tt.state.Commit()
	require.NoError(t, err)

	// the allowance is spent before the balance turns out to be insufficient
	requireCode(t, code.Underflow, tt.TransferFrom(bob, alice, carol, helpers.TokensToUnits(15000)))

	require.Equal(t, helpers.TokensToUnits(20000), tt.Allowance(alice, bob))
	require.Equal(t, helpers.TokensToUnits(10000), tt.BalanceOf(alice))
	require.True(t, tt.BalanceOf(carol).IsZero())

	committed, _, err := tt.state.Commit()
	require.NoError(t, err)
	require.Equal(t, hash, committed)
	require.Empty(t, tt.state.Events().Pending())
}
