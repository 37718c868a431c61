package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pegfee/pegfee-node/formula"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/stretchr/testify/require"
)

func TestIsHexAddress(t *testing.T) {
	tests := []struct {
		str string
		exp bool
	}{
		{"Px5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"PxAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true},
		{"Px5aaeb6053f3e94c9b9a09f33669435e7ef1beaed1", false},
		{"Px5aaeb6053f3e94c9b9a09f33669435e7ef1beae", false},
		{"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed11", false},
		{"Pxxaaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
	}

	for _, test := range tests {
		if result := IsHexAddress(test.str); result != test.exp {
			t.Errorf("IsHexAddress(%s) == %v; expected %v",
				test.str, result, test.exp)
		}
	}
}

func TestAddressHexRoundTrip(t *testing.T) {
	t.Parallel()

	addr := HexToAddress("Px5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.Equal(t, "Px5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", addr.String())
	require.False(t, addr.IsZero())
	require.True(t, Address{}.IsZero())

	parsed, err := ParseAddress(strings.ToUpper(addr.Hex()[2:]))
	require.NoError(t, err)
	require.Equal(t, addr, parsed)

	_, err = ParseAddress("Px01")
	require.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	t.Parallel()

	addr := HexToAddress("Px5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	require.Equal(t, `"Px5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, addr, decoded)

	require.Error(t, json.Unmarshal([]byte(`"Pxzz"`), &decoded))
}

func TestReservedAddresses(t *testing.T) {
	t.Parallel()

	require.Equal(t, SelfAddress("PEG"), SelfAddress("PEG"))
	require.NotEqual(t, SelfAddress("PEG"), SelfAddress("USD"))
	require.NotEqual(t, LedgerAddress("PEG", 0), LedgerAddress("PEG", 1))
	require.NotEqual(t, SelfAddress("PEG"), LedgerAddress("PEG", 0))
	require.False(t, SelfAddress("PEG").IsZero())
}

func validAppState() AppState {
	return AppState{
		Name:            "Pegged Dollar",
		Symbol:          "PEG",
		Owner:           Address{1},
		Issuer:          Address{2},
		FeeAuthority:    Address{3},
		Court:           Address{4},
		TransferFeeRate: "1500000000000000",
		TotalSupply:     "3000",
		Accounts: []Account{
			{Address: Address{10}, Balance: "1000"},
			{Address: Address{11}, Balance: "2000"},
		},
		Allowances: []Allowance{
			{Owner: Address{10}, Spender: Address{11}, Value: "500"},
		},
		Frozen: []Address{{12}},
	}
}

func TestAppState_Verify(t *testing.T) {
	t.Parallel()

	state := validAppState()
	require.NoError(t, state.Verify())
	require.Equal(t, SelfAddress("PEG"), state.SelfAddress())
	require.Equal(t, LedgerAddress("PEG", 0), state.LedgerAddress())

	state.TransferFeeRate = helpers.ValueToString(formula.MaxTransferFeeRate())
	require.NoError(t, state.Verify())

	cases := map[string]func(s *AppState){
		"supply mismatch": func(s *AppState) { s.TotalSupply = "3001" },
		"rate too high":   func(s *AppState) { s.TransferFeeRate = "100000000000000001" },
		"bad rate":        func(s *AppState) { s.TransferFeeRate = "-1" },
		"no owner":        func(s *AppState) { s.Owner = Address{} },
		"no symbol":       func(s *AppState) { s.Symbol = "" },
		"dup account": func(s *AppState) {
			s.Accounts = append(s.Accounts, Account{Address: Address{10}, Balance: "0"})
		},
		"null account": func(s *AppState) {
			s.Accounts = append(s.Accounts, Account{Address: Address{}, Balance: "0"})
		},
		"bad balance": func(s *AppState) { s.Accounts[0].Balance = "1.5" },
		"dup allowance": func(s *AppState) {
			s.Allowances = append(s.Allowances, s.Allowances[0])
		},
		"pool allowance": func(s *AppState) {
			s.Allowances[0].Owner = SelfAddress("PEG")
		},
		"dup frozen": func(s *AppState) { s.Frozen = append(s.Frozen, Address{12}) },
	}

	for name, mutate := range cases {
		state := validAppState()
		mutate(&state)
		require.Error(t, state.Verify(), name)
	}
}
