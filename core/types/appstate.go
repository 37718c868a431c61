package types

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/formula"
	"github.com/pegfee/pegfee-node/helpers"
)

// AppState is the genesis document of a token and also the result of an
// export. Values are decimal strings of base units.
type AppState struct {
	Note            string      `json:"note"`
	Name            string      `json:"name"`
	Symbol          string      `json:"symbol"`
	Owner           Address     `json:"owner"`
	Issuer          Address     `json:"issuer"`
	FeeAuthority    Address     `json:"fee_authority"`
	Court           Address     `json:"court"`
	Self            *Address    `json:"self,omitempty"`
	Ledger          *Address    `json:"ledger,omitempty"`
	TransferFeeRate string      `json:"transfer_fee_rate"`
	TotalSupply     string      `json:"total_supply"`
	Accounts        []Account   `json:"accounts,omitempty"`
	Allowances      []Allowance `json:"allowances,omitempty"`
	Frozen          []Address   `json:"frozen,omitempty"`
}

type Account struct {
	Address Address `json:"address"`
	Balance string  `json:"balance"`
}

type Allowance struct {
	Owner   Address `json:"owner"`
	Spender Address `json:"spender"`
	Value   string  `json:"value"`
}

// SelfAddress returns the configured own address of the token or the one
// derived from its symbol.
func (s *AppState) SelfAddress() Address {
	if s.Self != nil && !s.Self.IsZero() {
		return *s.Self
	}

	return SelfAddress(s.Symbol)
}

// LedgerAddress returns the configured ledger address or the first one
// derived from the symbol.
func (s *AppState) LedgerAddress() Address {
	if s.Ledger != nil && !s.Ledger.IsZero() {
		return *s.Ledger
	}

	return LedgerAddress(s.Symbol, 0)
}

func (s *AppState) Verify() error {
	if s.Symbol == "" {
		return fmt.Errorf("symbol is empty")
	}

	if s.Owner.IsZero() {
		return fmt.Errorf("owner is not set")
	}

	self := s.SelfAddress()

	rate, err := helpers.ParseValue(s.TransferFeeRate)
	if err != nil {
		return fmt.Errorf("transfer fee rate is not valid: %s", err)
	}

	if ceiling := formula.MaxTransferFeeRate(); rate.Gt(ceiling) {
		return fmt.Errorf("transfer fee rate %s exceeds maximum %s", s.TransferFeeRate, helpers.ValueToString(ceiling))
	}

	totalSupply, err := helpers.ParseValue(s.TotalSupply)
	if err != nil {
		return fmt.Errorf("total supply is not valid: %s", err)
	}

	sum := uint256.NewInt(0)
	accounts := map[Address]struct{}{}
	for _, acc := range s.Accounts {
		// check for account duplication
		if _, exists := accounts[acc.Address]; exists {
			return fmt.Errorf("duplicated account %s", acc.Address.String())
		}

		accounts[acc.Address] = struct{}{}

		if acc.Address.IsZero() {
			return fmt.Errorf("account with null address")
		}

		balance, err := helpers.ParseValue(acc.Balance)
		if err != nil {
			return fmt.Errorf("balance of account %s is not valid: %s", acc.Address.String(), err)
		}

		if _, overflow := sum.AddOverflow(sum, balance); overflow {
			return fmt.Errorf("sum of balances overflows")
		}
	}

	if !sum.Eq(totalSupply) {
		return fmt.Errorf("sum of balances %s does not match total supply %s", helpers.ValueToString(sum), s.TotalSupply)
	}

	allowances := map[[2]Address]struct{}{}
	for _, allowance := range s.Allowances {
		key := [2]Address{allowance.Owner, allowance.Spender}
		if _, exists := allowances[key]; exists {
			return fmt.Errorf("duplicated allowance %s -> %s", allowance.Owner.String(), allowance.Spender.String())
		}

		allowances[key] = struct{}{}

		if allowance.Owner == self {
			return fmt.Errorf("fee pool can not grant allowances")
		}

		if !helpers.IsValidValue(allowance.Value) {
			return fmt.Errorf("allowance %s -> %s is not valid", allowance.Owner.String(), allowance.Spender.String())
		}
	}

	frozen := map[Address]struct{}{}
	for _, address := range s.Frozen {
		if _, exists := frozen[address]; exists {
			return fmt.Errorf("duplicated frozen account %s", address.String())
		}

		frozen[address] = struct{}{}
	}

	return nil
}
