package feetoken

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/formula"
	"github.com/pkg/errors"
)

// TransferFeeIncurred returns the fee charged on top of value when the sender
// pays it.
func (t *FeeToken) TransferFeeIncurred(value *uint256.Int) (*uint256.Int, error) {
	return formula.FeeIncurred(value, t.TransferFeeRate())
}

// TransferPlusFee returns value plus the fee charged on it.
func (t *FeeToken) TransferPlusFee(value *uint256.Int) (*uint256.Int, error) {
	fee, err := t.TransferFeeIncurred(value)
	if err != nil {
		return nil, err
	}

	return formula.Add(value, fee)
}

// AmountReceived returns the part of value that reaches the recipient when
// the recipient pays the fee.
func (t *FeeToken) AmountReceived(value *uint256.Int) (*uint256.Int, error) {
	return formula.AmountReceived(value, t.TransferFeeRate())
}

// splitReceiverPays divides a gross value into the received amount and the fee.
func (t *FeeToken) splitReceiverPays(value *uint256.Int) (received, fee *uint256.Int, err error) {
	received, err = formula.AmountReceived(value, t.state.Token.TransferFeeRate())
	if err != nil {
		return nil, nil, err
	}

	fee, err = formula.Sub(value, received)
	if err != nil {
		return nil, nil, err
	}

	return received, fee, nil
}

func (t *FeeToken) senderPaysFee(value *uint256.Int) (*uint256.Int, error) {
	return formula.FeeIncurred(value, t.state.Token.TransferFeeRate())
}

func (t *FeeToken) checkRecipient(to types.Address) error {
	if t.state.Token.IsFrozen(to) {
		return errors.Wrapf(code.ErrFrozenRecipient, "transfer to %s", to.String())
	}

	return nil
}

// transfer moves amount from one account to another and fee into the pool.
// The caller runs it inside Apply, so a failure at any step discards the
// previous ones.
func (t *FeeToken) transfer(from, to types.Address, amount, fee *uint256.Int) error {
	self := t.self()
	if to.IsZero() || to == self {
		return errors.Wrapf(code.ErrInvalidRecipient, "transfer to %s", to.String())
	}

	total, err := formula.Add(amount, fee)
	if err != nil {
		return err
	}

	if err := t.debit(from, total); err != nil {
		return err
	}

	if err := t.credit(to, amount); err != nil {
		return err
	}

	if err := t.credit(self, fee); err != nil {
		return err
	}

	t.emitTransfer(from, to, amount)
	t.emitTransfer(from, self, fee)

	return nil
}

// Transfer sends value out of the sender's balance. The recipient gets value
// minus the fee.
func (t *FeeToken) Transfer(sender, to types.Address, value *uint256.Int) error {
	return t.apply("transfer", func() error {
		if err := t.checkRecipient(to); err != nil {
			return err
		}

		if err := t.notSelf(sender); err != nil {
			return err
		}

		received, fee, err := t.splitReceiverPays(value)
		if err != nil {
			return err
		}

		return t.transfer(sender, to, received, fee)
	})
}

// TransferSenderPaysFee delivers exactly value to the recipient and charges
// the sender value plus the fee.
func (t *FeeToken) TransferSenderPaysFee(sender, to types.Address, value *uint256.Int) error {
	return t.apply("transfer_sender_pays_fee", func() error {
		if err := t.checkRecipient(to); err != nil {
			return err
		}

		if err := t.notSelf(sender); err != nil {
			return err
		}

		fee, err := t.senderPaysFee(value)
		if err != nil {
			return err
		}

		return t.transfer(sender, to, value, fee)
	})
}
