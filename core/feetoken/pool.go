package feetoken

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pkg/errors"
)

// FeePool returns the balance of the token's own account.
func (t *FeeToken) FeePool() *uint256.Int {
	t.state.RLock()
	defer t.state.RUnlock()

	return t.balanceOf(t.self())
}

// WithdrawFees pays value out of the pool. A zero value does nothing and
// succeeds.
func (t *FeeToken) WithdrawFees(sender, account types.Address, value *uint256.Int) error {
	return t.apply("withdraw_fees", func() error {
		if sender != t.state.Token.FeeAuthority() {
			return errors.Wrapf(code.ErrUnauthorized, "%s is not the fee authority", sender.String())
		}

		self := t.self()
		if account.IsZero() || account == self {
			return errors.Wrapf(code.ErrInvalidRecipient, "withdraw to %s", account.String())
		}

		if value.IsZero() {
			return nil
		}

		if err := t.debit(self, value); err != nil {
			return err
		}

		if err := t.credit(account, value); err != nil {
			return err
		}

		t.state.Emit(&events.FeesWithdrawnEvent{Account: account, Value: helpers.ValueToString(value)})
		t.emitTransfer(self, account, value)

		t.logger.Info("fees withdrawn", "account", account, "value", helpers.ValueToString(value))

		return nil
	})
}

// DonateToFeePool moves value from the sender into the pool.
func (t *FeeToken) DonateToFeePool(sender types.Address, value *uint256.Int) error {
	return t.apply("donate_to_fee_pool", func() error {
		if err := t.notSelf(sender); err != nil {
			return err
		}

		// debit alone accepts a zero donation from an empty account
		if t.balanceOf(sender).IsZero() {
			return errors.Wrapf(code.ErrUnderflow, "%s has no balance", sender.String())
		}

		self := t.self()

		if err := t.debit(sender, value); err != nil {
			return err
		}

		if err := t.credit(self, value); err != nil {
			return err
		}

		t.state.Emit(&events.FeesDonatedEvent{Donor: sender, Value: helpers.ValueToString(value)})
		t.emitTransfer(sender, self, value)

		return nil
	})
}
