package formula

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pkg/errors"
)

// UnitDecimals is the number of decimal places of a scaled value
const UnitDecimals = 18

var (
	unit               = uint256.NewInt(1e18)
	maxTransferFeeRate = uint256.NewInt(1e17)
)

// Unit returns the scale factor of fixed-point values; a rate of 100% equals Unit.
func Unit() *uint256.Int {
	return new(uint256.Int).Set(unit)
}

// MaxTransferFeeRate returns the highest accepted transfer fee rate, 10% of Unit.
func MaxTransferFeeRate() *uint256.Int {
	return new(uint256.Int).Set(maxTransferFeeRate)
}

// Add returns a + b, failing when the sum does not fit in 256 bits.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, errors.Wrap(code.ErrOverflow, "add")
	}

	return z, nil
}

// Sub returns a - b, failing when b > a. Every balance and allowance
// sufficiency check relies on this failing closed.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, errors.Wrap(code.ErrUnderflow, "sub")
	}

	return z, nil
}

// MulScaled returns floor(a * b / Unit). The product is computed in 512 bits.
func MulScaled(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulDivOverflow(a, b, unit)
	if overflow {
		return nil, errors.Wrap(code.ErrOverflow, "mul")
	}

	return z, nil
}

// DivScaled returns floor(a * Unit / b).
func DivScaled(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, errors.WithStack(code.ErrDivideByZero)
	}

	z, overflow := new(uint256.Int).MulDivOverflow(a, unit, b)
	if overflow {
		return nil, errors.Wrap(code.ErrOverflow, "div")
	}

	return z, nil
}

// FeeIncurred = value * rate / Unit
//
// The fee charged on top of value when the sender pays it.
func FeeIncurred(value, rate *uint256.Int) (*uint256.Int, error) {
	return MulScaled(value, rate)
}

// AmountReceived = value * Unit / (Unit + rate)
//
// The part of a gross value that reaches the recipient when the recipient
// pays the fee. Floor rounding leaves tiny values without any fee.
func AmountReceived(value, rate *uint256.Int) (*uint256.Int, error) {
	denominator, err := Add(unit, rate)
	if err != nil {
		return nil, err
	}

	return DivScaled(value, denominator)
}
