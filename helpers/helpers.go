package helpers

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// UnitDecimals is the number of decimal places of one token
const UnitDecimals = 18

var unit = uint256.NewInt(1e18)

// TokensToUnits converts whole tokens to base units (multiplies input by 1e18)
func TokensToUnits(tokens uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(tokens), unit)
}

// StringToValue converts a decimal string of base units, panics on empty strings and errors
func StringToValue(s string) *uint256.Int {
	v, err := ParseValue(s)
	if err != nil {
		panic(err)
	}

	return v
}

// ParseValue converts a decimal string of base units into a 256-bit unsigned value
func ParseValue(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("string is empty")
	}

	b, success := new(big.Int).SetString(s, 10)
	if !success {
		return nil, fmt.Errorf("cannot decode %s into integer", s)
	}

	if b.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s", s)
	}

	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("value %s exceeds 256 bits", s)
	}

	return v, nil
}

// IsValidValue verifies that string is a valid unsigned 256-bit value
func IsValidValue(s string) bool {
	_, err := ParseValue(s)
	return err == nil
}

// ValueToString renders base units as a decimal string
func ValueToString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}

	return v.ToBig().String()
}

// ParseTokens converts a decimal token amount like "998.5" into base units.
// At most UnitDecimals fractional digits are accepted.
func ParseTokens(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("string is empty")
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}

	if len(frac) > UnitDecimals {
		return nil, fmt.Errorf("too many decimal places in %s", s)
	}

	if whole == "" {
		whole = "0"
	}

	return ParseValue(whole + frac + strings.Repeat("0", UnitDecimals-len(frac)))
}

// FormatTokens renders base units as a decimal token amount
func FormatTokens(v *uint256.Int) string {
	s := ValueToString(v)
	if len(s) <= UnitDecimals {
		s = strings.Repeat("0", UnitDecimals-len(s)+1) + s
	}

	whole, frac := s[:len(s)-UnitDecimals], strings.TrimRight(s[len(s)-UnitDecimals:], "0")
	if frac == "" {
		return whole
	}

	return whole + "." + frac
}
