package cmd

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pegfee/pegfee-node/cmd/utils"
	"github.com/pegfee/pegfee-node/core/governance"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/stretchr/testify/require"
)

var (
	owner = types.Address{1}
	court = types.Address{4}
	alice = types.Address{10}
	bob   = types.Address{11}
)

func TestMain(m *testing.M) {
	RootCmd.AddCommand(Commands()...)
	os.Exit(m.Run())
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(ioutil.Discard)
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	out, err := run(t, args...)
	require.NoError(t, err, "%v", args)
	return out
}

func setupHome(t *testing.T) string {
	home := t.TempDir()
	utils.PegfeeHome = home
	t.Cleanup(func() { utils.PegfeeHome = "" })

	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0700))

	writeJSON(t, filepath.Join(home, "config", "genesis.json"), types.AppState{
		Name:            "Pegged Dollar",
		Symbol:          "PEG",
		Owner:           owner,
		Issuer:          owner,
		FeeAuthority:    owner,
		Court:           court,
		TransferFeeRate: "1500000000000000",
		TotalSupply:     helpers.ValueToString(helpers.TokensToUnits(10000)),
		Accounts: []types.Account{
			{Address: alice, Balance: helpers.ValueToString(helpers.TokensToUnits(10000))},
		},
	})

	writeJSON(t, filepath.Join(home, "config", "court.json"), map[string]interface{}{
		"address": court,
		"motions": []governance.Motion{{ID: 1, Target: bob, Confirming: true, Passed: true}},
	})

	return home
}

func writeJSON(t *testing.T, path string, v interface{}) {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(path, data, 0600))
}

func TestCommands(t *testing.T) {
	setupHome(t)

	require.Contains(t, mustRun(t, "verify-genesis"), "Genesis is ok")
	require.Contains(t, mustRun(t, "init"), "initialized Pegged Dollar (PEG), version 1")

	_, err := run(t, "init")
	require.Error(t, err)

	require.Contains(t, mustRun(t, "transfer", bob.String(), "1000", "--from", alice.String(), "--sender-pays=false"), "committed version 2")
	require.Equal(t, "998.502246630054917623 PEG\n", mustRun(t, "balance", bob.String()))
	require.Equal(t, "9000 PEG\n", mustRun(t, "balance", alice.String()))

	mustRun(t, "transfer", bob.String(), "100", "--from", alice.String(), "--sender-pays=true")
	require.Equal(t, "1098.502246630054917623 PEG\n", mustRun(t, "balance", bob.String()))

	mustRun(t, "approve", owner.String(), "5", "--from", alice.String())
	require.Equal(t, "5 PEG\n", mustRun(t, "allowance", alice.String(), owner.String()))
	mustRun(t, "transfer-from", alice.String(), owner.String(), "5", "--from", owner.String(), "--sender-pays=false")
	require.Equal(t, "0 PEG\n", mustRun(t, "allowance", alice.String(), owner.String()))

	mustRun(t, "issue", alice.String(), "500", "--from", owner.String())
	mustRun(t, "burn", alice.String(), "100", "--from", owner.String())

	_, err = run(t, "issue", alice.String(), "1", "--from", alice.String())
	require.Error(t, err)

	mustRun(t, "freeze", bob.String(), "--from", court.String())
	require.Equal(t, "0 PEG (frozen)\n", mustRun(t, "balance", bob.String()))

	_, err = run(t, "transfer", bob.String(), "1", "--from", alice.String(), "--sender-pays=false")
	require.Error(t, err)

	mustRun(t, "unfreeze", bob.String(), "--from", owner.String())
	mustRun(t, "withdraw-fees", bob.String(), "1", "--from", owner.String())
	require.Equal(t, "1 PEG\n", mustRun(t, "balance", bob.String()))
	mustRun(t, "donate", "1", "--from", bob.String())

	mustRun(t, "set-fee-rate", "0.1", "--from", owner.String())
	_, err = run(t, "set-fee-rate", "0.11", "--from", owner.String())
	require.Error(t, err)

	require.Contains(t, mustRun(t, "estimate", "100"), "sender pays: 10 fee, 110 charged")

	mustRun(t, "set-issuer", alice.String(), "--fee-authority", "--from", owner.String())
	mustRun(t, "set-fee-authority", owner.String(), "--from", owner.String())
	nextCourt := filepath.Join(t.TempDir(), "court.json")
	writeJSON(t, nextCourt, map[string]interface{}{
		"address": alice,
		"motions": []governance.Motion{{ID: 2, Target: owner, Confirming: true, Passed: true}},
	})
	_, err = run(t, "set-court", nextCourt, "--from", alice.String())
	require.Error(t, err)
	mustRun(t, "set-court", nextCourt, "--from", owner.String())

	// the installed court file is used from now on
	_, err = run(t, "freeze", owner.String(), "--from", court.String())
	require.Error(t, err)
	mustRun(t, "freeze", owner.String(), "--from", alice.String())
	mustRun(t, "unfreeze", owner.String(), "--from", owner.String())

	next := types.LedgerAddress("PEG", 1)
	mustRun(t, "create-ledger", next.String(), "--from", owner.String())
	_, err = run(t, "set-ledger", types.LedgerAddress("PEG", 2).String(), "--from", owner.String())
	require.Error(t, err)

	var status struct {
		Issuer       types.Address `json:"issuer"`
		FeeAuthority types.Address `json:"fee_authority"`
		Court        types.Address `json:"court"`
		TotalSupply  string        `json:"total_supply"`
		StateVersion int64         `json:"state_version"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "status")), &status))
	require.Equal(t, alice, status.Issuer)
	require.Equal(t, owner, status.FeeAuthority)
	require.Equal(t, alice, status.Court)
	require.Equal(t, "10400", status.TotalSupply)

	var items []struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "events", "2")), &items))
	require.Len(t, items, 2)

	var exported types.AppState
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "export")), &exported))
	require.NoError(t, exported.Verify())
	require.Equal(t, "10400000000000000000000", exported.TotalSupply)

	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "export", "--version", "1")), &exported))
	require.Equal(t, "10000000000000000000000", exported.TotalSupply)
}

func TestCommands_NotInitialized(t *testing.T) {
	setupHome(t)

	_, err := run(t, "balance", alice.String())
	require.Error(t, err)

	_, err = run(t, "transfer", bob.String(), "1", "--from", "nonsense", "--sender-pays=false")
	require.Error(t, err)
}
