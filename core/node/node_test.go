package node

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/pegfee/pegfee-node/config"
	eventsdb "github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/governance"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	owner = types.Address{1}
	court = types.Address{4}
	alice = types.Address{10}
	bob   = types.Address{11}
)

func genesis() types.AppState {
	return types.AppState{
		Name:            "Pegged Dollar",
		Symbol:          "PEG",
		Owner:           owner,
		Issuer:          owner,
		FeeAuthority:    owner,
		Court:           court,
		TransferFeeRate: "1500000000000000",
		TotalSupply:     helpers.ValueToString(helpers.TokensToUnits(100)),
		Accounts: []types.Account{
			{Address: alice, Balance: helpers.ValueToString(helpers.TokensToUnits(100))},
		},
	}
}

func writeJSON(t *testing.T, path string, v interface{}) {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(path, data, 0600))
}

func testConfig(t *testing.T) *config.Config {
	home := t.TempDir()
	cfg, err := config.GetConfig(home)
	require.NoError(t, err)
	cfg.KeepLastStates = 0

	return cfg
}

func TestNode_InitChain(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	writeJSON(t, cfg.GenesisFile(), genesis())

	n, err := NewNode(cfg, log.NewNopLogger())
	require.NoError(t, err)
	defer n.Stop()

	require.False(t, n.Initialized())
	_, err = n.Token()
	require.ErrorIs(t, err, ErrNotInitialized)

	appState, err := LoadGenesis(cfg.GenesisFile())
	require.NoError(t, err)
	require.NoError(t, n.InitChain(appState))
	require.Error(t, n.InitChain(appState))

	token, err := n.Token()
	require.NoError(t, err)
	require.Equal(t, helpers.TokensToUnits(100), token.BalanceOf(alice))
	require.Equal(t, int64(1), n.CurrentState().Version())

	require.NoError(t, token.Transfer(alice, bob, helpers.TokensToUnits(10)))
	_, version, err := n.Commit()
	require.NoError(t, err)
	require.Equal(t, int64(2), version)

	items, err := n.GetEventsDB().LoadEvents(2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, eventsdb.TypeTransferEvent, items[0].Type())

	old, err := n.GetStateForVersion(1)
	require.NoError(t, err)
	require.True(t, old.Ledgers().BalanceOf(old.Token().Ledger(), bob).IsZero())
	require.Equal(t, appState.Accounts, old.Export().Accounts)

	_, err = n.GetStateForVersion(3)
	require.Error(t, err)
}

func TestNode_Reopen(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	writeJSON(t, cfg.CourtFile(), map[string]interface{}{
		"address": court,
		"motions": []governance.Motion{{ID: 3, Target: alice, Confirming: true, Passed: true}},
	})

	n, err := NewNode(cfg, log.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, n.InitChain(genesis()))

	token, err := n.Token()
	require.NoError(t, err)
	require.NoError(t, token.FreezeAndConfiscate(court, alice))
	hash, _, err := n.Commit()
	require.NoError(t, err)
	require.NoError(t, n.Stop())

	n, err = NewNode(cfg, log.NewNopLogger())
	require.NoError(t, err)
	defer n.Stop()

	token, err = n.Token()
	require.NoError(t, err)
	require.Equal(t, hash, n.CurrentState().Hash())
	require.True(t, token.IsFrozen(alice))
	require.Equal(t, helpers.TokensToUnits(100), token.FeePool())
}

func TestLoadGenesis(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := LoadGenesis(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	path := filepath.Join(dir, "genesis.json")
	require.NoError(t, ioutil.WriteFile(path, []byte("{"), 0600))
	_, err = LoadGenesis(path)
	require.Error(t, err)
}
