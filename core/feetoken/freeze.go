package feetoken

import (
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pkg/errors"
)

// FreezeAndConfiscate moves the whole balance of target into the pool and
// freezes the account. Only the court may call it, and only once its motion
// against target is confirming and passed.
func (t *FeeToken) FreezeAndConfiscate(sender, target types.Address) error {
	return t.apply("freeze_and_confiscate", func() error {
		court := t.state.Token.Court()
		if court.IsZero() || sender != court || t.court == nil || t.court.Address() != court {
			return errors.Wrapf(code.ErrUnauthorized, "%s is not the court", sender.String())
		}

		motionID := t.court.MotionID(target)
		if motionID == 0 {
			return errors.Wrapf(code.ErrNoActiveMotion, "target %s", target.String())
		}

		if !t.court.IsConfirming(motionID) {
			return errors.Wrapf(code.ErrMotionNotConfirming, "motion %d", motionID)
		}

		if !t.court.HasPassed(motionID) {
			return errors.Wrapf(code.ErrMotionNotPassed, "motion %d", motionID)
		}

		if t.state.Token.IsFrozen(target) {
			return errors.Wrapf(code.ErrAlreadyFrozen, "target %s", target.String())
		}

		self := t.self()
		amount := t.balanceOf(target)

		if err := t.debit(target, amount); err != nil {
			return err
		}

		if err := t.credit(self, amount); err != nil {
			return err
		}

		t.state.Token.SetFrozen(target, true)

		t.state.Emit(&events.AccountFrozenEvent{Account: target, Amount: helpers.ValueToString(amount)})
		t.emitTransfer(target, self, amount)

		t.logger.Info("account frozen", "account", target, "amount", helpers.ValueToString(amount), "motion", motionID)

		return nil
	})
}

// UnfreezeAccount lets target transact again. Confiscated funds stay in the
// pool.
func (t *FeeToken) UnfreezeAccount(sender, target types.Address) error {
	return t.apply("unfreeze_account", func() error {
		if err := t.onlyOwner(sender); err != nil {
			return err
		}

		if target == t.self() {
			return errors.Wrap(code.ErrInvalidTarget, "pool account stays frozen")
		}

		if !t.state.Token.IsFrozen(target) {
			return errors.Wrapf(code.ErrNotFrozen, "target %s", target.String())
		}

		t.state.Token.SetFrozen(target, false)
		t.state.Emit(&events.AccountUnfrozenEvent{Account: target})

		t.logger.Info("account unfrozen", "account", target)

		return nil
	})
}
