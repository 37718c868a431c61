package feetoken

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/formula"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pkg/errors"
)

func (t *FeeToken) onlyIssuer(sender types.Address) error {
	if sender != t.state.Token.Issuer() {
		return errors.Wrapf(code.ErrUnauthorized, "%s is not the issuer", sender.String())
	}

	return nil
}

// Issue creates amount new tokens on the balance of account. Frozen accounts
// are not special here.
func (t *FeeToken) Issue(sender, account types.Address, amount *uint256.Int) error {
	return t.apply("issue", func() error {
		if err := t.onlyIssuer(sender); err != nil {
			return err
		}

		if account.IsZero() {
			return errors.Wrap(code.ErrInvalidRecipient, "issue to null address")
		}

		supply, err := formula.Add(t.state.Token.TotalSupply(), amount)
		if err != nil {
			return errors.Wrap(err, "total supply")
		}

		if err := t.credit(account, amount); err != nil {
			return err
		}

		t.state.Token.SetTotalSupply(supply)

		t.state.Emit(&events.IssuedEvent{Account: account, Amount: helpers.ValueToString(amount)})
		t.emitTransfer(types.Address{}, account, amount)

		t.logger.Info("issued", "account", account, "amount", helpers.ValueToString(amount))

		return nil
	})
}

// Burn destroys amount tokens from the balance of account.
func (t *FeeToken) Burn(sender, account types.Address, amount *uint256.Int) error {
	return t.apply("burn", func() error {
		if err := t.onlyIssuer(sender); err != nil {
			return err
		}

		supply, err := formula.Sub(t.state.Token.TotalSupply(), amount)
		if err != nil {
			return errors.Wrap(err, "total supply")
		}

		if err := t.debit(account, amount); err != nil {
			return err
		}

		t.state.Token.SetTotalSupply(supply)

		t.state.Emit(&events.BurnedEvent{Account: account, Amount: helpers.ValueToString(amount)})
		t.emitTransfer(account, types.Address{}, amount)

		t.logger.Info("burned", "account", account, "amount", helpers.ValueToString(amount))

		return nil
	})
}
