// Package feetoken implements a token whose transfers carry a percentage fee
// collected into a pool, whose accounts can be frozen and confiscated by an
// external court, and whose supply is managed by an issuer.
//
// Every mutating method runs as a single state.Apply: it either applies in
// full or leaves no trace.
package feetoken

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/governance"
	"github.com/pegfee/pegfee-node/core/state"
	"github.com/pegfee/pegfee-node/core/statistics"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/formula"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
)

type FeeToken struct {
	state  *state.State
	court  governance.Court
	logger log.Logger
	stats  *statistics.Data
}

func New(st *state.State, court governance.Court, logger log.Logger) *FeeToken {
	return &FeeToken{
		state:  st,
		court:  court,
		logger: logger.With("module", "feetoken"),
	}
}

// SetStatistics enables metrics. A nil value disables them.
func (t *FeeToken) SetStatistics(stats *statistics.Data) {
	t.stats = stats
}

func (t *FeeToken) apply(op string, fn func() error) error {
	err := t.state.Apply(fn)
	t.stats.ObserveOperation(op, err)

	if err != nil {
		t.logger.Debug("operation failed", "op", op, "code", code.Name(code.CodeOf(err)), "err", err)
		return err
	}

	if t.stats != nil {
		t.stats.SetBalances(t.TotalSupply(), t.FeePool())
	}

	return nil
}

// Helpers below run inside Apply and read the stores directly.

func (t *FeeToken) self() types.Address {
	return t.state.Token.Self()
}

func (t *FeeToken) ledger() types.Address {
	return t.state.Token.Ledger()
}

func (t *FeeToken) balanceOf(account types.Address) *uint256.Int {
	return t.state.Ledgers.BalanceOf(t.ledger(), account)
}

func (t *FeeToken) setBalanceOf(account types.Address, value *uint256.Int) error {
	return t.state.Ledgers.SetBalanceOf(t.self(), t.ledger(), account, value)
}

func (t *FeeToken) allowance(owner, spender types.Address) *uint256.Int {
	return t.state.Ledgers.Allowance(t.ledger(), owner, spender)
}

func (t *FeeToken) setAllowance(owner, spender types.Address, value *uint256.Int) error {
	return t.state.Ledgers.SetAllowance(t.self(), t.ledger(), owner, spender, value)
}

// credit adds value to the balance of account.
func (t *FeeToken) credit(account types.Address, value *uint256.Int) error {
	balance, err := formula.Add(t.balanceOf(account), value)
	if err != nil {
		return errors.Wrapf(err, "credit %s", account.String())
	}

	return t.setBalanceOf(account, balance)
}

// debit subtracts value from the balance of account, failing with underflow
// on insufficient balance.
func (t *FeeToken) debit(account types.Address, value *uint256.Int) error {
	balance, err := formula.Sub(t.balanceOf(account), value)
	if err != nil {
		return errors.Wrapf(err, "insufficient balance of %s", account.String())
	}

	return t.setBalanceOf(account, balance)
}

func (t *FeeToken) emitTransfer(from, to types.Address, value *uint256.Int) {
	t.state.Emit(&events.TransferEvent{From: from, To: to, Value: helpers.ValueToString(value)})
}

func (t *FeeToken) onlyOwner(sender types.Address) error {
	if sender != t.state.Token.Owner() {
		return errors.Wrapf(code.ErrUnauthorized, "%s is not the owner", sender.String())
	}

	return nil
}

// notSelf rejects calls made in the name of the pool account.
func (t *FeeToken) notSelf(sender types.Address) error {
	if sender == t.self() {
		return errors.Wrap(code.ErrUnauthorized, "pool account can not act")
	}

	return nil
}

func (t *FeeToken) Name() string {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.Name()
}

func (t *FeeToken) Symbol() string {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.Symbol()
}

func (t *FeeToken) TotalSupply() *uint256.Int {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.TotalSupply()
}

func (t *FeeToken) BalanceOf(account types.Address) *uint256.Int {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.balanceOf(account)
}

func (t *FeeToken) Allowance(owner, spender types.Address) *uint256.Int {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.allowance(owner, spender)
}

func (t *FeeToken) TransferFeeRate() *uint256.Int {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.TransferFeeRate()
}

func (t *FeeToken) FeeAuthority() types.Address {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.FeeAuthority()
}

func (t *FeeToken) Owner() types.Address {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.Owner()
}

func (t *FeeToken) Issuer() types.Address {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.Issuer()
}

func (t *FeeToken) Court() types.Address {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.Court()
}

func (t *FeeToken) Ledger() types.Address {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.ledger()
}

// Self is the own address of the token. Its balance is the fee pool.
func (t *FeeToken) Self() types.Address {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.self()
}

func (t *FeeToken) IsFrozen(account types.Address) bool {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.state.Token.IsFrozen(account)
}
