package feetoken

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/governance"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/formula"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pkg/errors"
)

func (t *FeeToken) SetTransferFeeRate(sender types.Address, rate *uint256.Int) error {
	return t.apply("set_transfer_fee_rate", func() error {
		if err := t.onlyOwner(sender); err != nil {
			return err
		}

		if rate.Gt(formula.MaxTransferFeeRate()) {
			return errors.Wrapf(code.ErrInvalidFeeRate, "rate %s", helpers.ValueToString(rate))
		}

		t.state.Token.SetTransferFeeRate(rate)
		t.state.Emit(&events.FeeRateUpdatedEvent{Rate: helpers.ValueToString(rate)})

		t.logger.Info("transfer fee rate updated", "rate", helpers.ValueToString(rate))

		return nil
	})
}

func (t *FeeToken) SetFeeAuthority(sender, feeAuthority types.Address) error {
	return t.apply("set_fee_authority", func() error {
		if err := t.onlyOwner(sender); err != nil {
			return err
		}

		t.setFeeAuthority(feeAuthority)

		return nil
	})
}

func (t *FeeToken) setFeeAuthority(feeAuthority types.Address) {
	t.state.Token.SetFeeAuthority(feeAuthority)
	t.state.Emit(&events.FeeAuthorityUpdatedEvent{FeeAuthority: feeAuthority})

	t.logger.Info("fee authority updated", "fee_authority", feeAuthority)
}

// SetIssuer changes the issuer and, when alsoFeeAuthority is set, makes it the
// fee authority as well.
func (t *FeeToken) SetIssuer(sender, issuer types.Address, alsoFeeAuthority bool) error {
	return t.apply("set_issuer", func() error {
		if err := t.onlyOwner(sender); err != nil {
			return err
		}

		t.state.Token.SetIssuer(issuer)
		t.state.Emit(&events.IssuerUpdatedEvent{Issuer: issuer})

		t.logger.Info("issuer updated", "issuer", issuer)

		if alsoFeeAuthority {
			t.setFeeAuthority(issuer)
		}

		return nil
	})
}

// SetCourt makes court the governance body allowed to confiscate. A nil
// court leaves the token without one.
func (t *FeeToken) SetCourt(sender types.Address, court governance.Court) error {
	var address types.Address
	if court != nil {
		address = court.Address()
	}

	return t.apply("set_court", func() error {
		if err := t.onlyOwner(sender); err != nil {
			return err
		}

		t.state.Token.SetCourt(address)
		t.court = court
		t.state.Emit(&events.CourtUpdatedEvent{Court: address})

		t.logger.Info("court updated", "court", address)

		return nil
	})
}

// SetLedger points the token at another existing ledger. Balances are not
// copied.
func (t *FeeToken) SetLedger(sender, ledger types.Address) error {
	return t.apply("set_ledger", func() error {
		if err := t.onlyOwner(sender); err != nil {
			return err
		}

		if err := t.state.Token.SetLedger(ledger); err != nil {
			return err
		}

		t.state.Emit(&events.LedgerUpdatedEvent{Ledger: ledger})

		t.logger.Info("ledger updated", "ledger", ledger)

		return nil
	})
}

// CreateLedger registers an empty ledger owned by sender and associated with
// this token, ready to be switched to with SetLedger.
func (t *FeeToken) CreateLedger(sender, ledger types.Address) error {
	return t.apply("create_ledger", func() error {
		if err := t.onlyOwner(sender); err != nil {
			return err
		}

		return t.state.Ledgers.Create(ledger, sender, t.self())
	})
}
