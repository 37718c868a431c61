package feetoken

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/formula"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pkg/errors"
)

func (t *FeeToken) spendAllowance(owner, spender types.Address, value *uint256.Int) error {
	remaining, err := formula.Sub(t.allowance(owner, spender), value)
	if err != nil {
		return errors.Wrapf(err, "insufficient allowance of %s from %s", spender.String(), owner.String())
	}

	return t.setAllowance(owner, spender, remaining)
}

// TransferFrom moves value out of from's balance on behalf of sender, with
// the recipient paying the fee. The whole value is taken from the allowance.
func (t *FeeToken) TransferFrom(sender, from, to types.Address, value *uint256.Int) error {
	return t.apply("transfer_from", func() error {
		if err := t.checkRecipient(to); err != nil {
			return err
		}

		if err := t.spendAllowance(from, sender, value); err != nil {
			return err
		}

		received, fee, err := t.splitReceiverPays(value)
		if err != nil {
			return err
		}

		return t.transfer(from, to, received, fee)
	})
}

// TransferFromSenderPaysFee delivers exactly value on behalf of sender. Value
// plus the fee is taken from the allowance.
func (t *FeeToken) TransferFromSenderPaysFee(sender, from, to types.Address, value *uint256.Int) error {
	return t.apply("transfer_from_sender_pays_fee", func() error {
		if err := t.checkRecipient(to); err != nil {
			return err
		}

		fee, err := t.senderPaysFee(value)
		if err != nil {
			return err
		}

		total, err := formula.Add(value, fee)
		if err != nil {
			return err
		}

		if err := t.spendAllowance(from, sender, total); err != nil {
			return err
		}

		return t.transfer(from, to, value, fee)
	})
}

// Approve lets spender move up to value out of the sender's balance. The
// previous allowance is overwritten.
func (t *FeeToken) Approve(sender, spender types.Address, value *uint256.Int) error {
	return t.apply("approve", func() error {
		if err := t.notSelf(sender); err != nil {
			return err
		}

		if err := t.setAllowance(sender, spender, value); err != nil {
			return err
		}

		t.state.Emit(&events.ApprovalEvent{Owner: sender, Spender: spender, Value: helpers.ValueToString(value)})

		return nil
	})
}
