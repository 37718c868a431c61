package checker

import (
	"math/big"
	"testing"

	"github.com/pegfee/pegfee-node/core/state/bus"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/stretchr/testify/require"
)

func TestChecker_Check(t *testing.T) {
	t.Parallel()

	b := bus.NewBus()
	c := NewChecker(b)
	require.Equal(t, c, b.Checker())

	ledger := types.Address{1}

	// a transfer moves value between accounts
	c.AddBalance(ledger, big.NewInt(-100))
	c.AddBalance(ledger, big.NewInt(99))
	c.AddBalance(ledger, big.NewInt(1))
	require.NoError(t, c.Check())

	// issuance adds to a balance and to the supply
	c.AddBalance(ledger, big.NewInt(50))
	require.Error(t, c.Check())
	c.AddSupply(ledger, big.NewInt(50))
	require.NoError(t, c.Check())

	c.Reset()
	c.AddSupply(types.Address{2}, big.NewInt(-1))
	require.Error(t, c.Check())

	c.Reset()
	require.NoError(t, c.Check())
}
