package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	HashLength    = 32
	AddressLength = 20

	// AddressPrefix is prepended to hex-encoded addresses
	AddressPrefix = "Px"
)

/////////// Address

// Address identifies an account, a ledger or a role holder. The zero value is
// the null address.
type Address [AddressLength]byte

func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

func HexToAddress(s string) Address { return BytesToAddress(FromHex(s, AddressPrefix)) }

// CreateAddress derives a reserved address from a seed, e.g. the token's own
// pool account or a ledger identity.
func CreateAddress(seed string) Address {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(seed))

	var addr Address
	copy(addr[:], h.Sum(nil)[12:])

	return addr
}

// IsHexAddress verifies whether a string can represent a valid hex-encoded
// address or not.
func IsHexAddress(s string) bool {
	if hasHexPrefix(s, AddressPrefix) || hasHexPrefix(s, "0x") {
		s = s[2:]
	}
	return len(s) == 2*AddressLength && isHex(s)
}

// ParseAddress is a strict version of HexToAddress.
func ParseAddress(s string) (Address, error) {
	if !IsHexAddress(s) {
		return Address{}, fmt.Errorf("invalid address %q", s)
	}

	return HexToAddress(s), nil
}

func (a Address) Bytes() []byte { return a[:] }

func (a Address) IsZero() bool { return a == Address{} }

func (a Address) Hex() string {
	return AddressPrefix + hex.EncodeToString(a[:])
}

// String implements the stringer interface and is used also by the logger.
func (a Address) String() string {
	return a.Hex()
}

// SetBytes sets the address to the value of b. If b is larger than len(a) the
// leading bytes are dropped.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

func (a Address) Compare(a2 Address) int {
	return bytes.Compare(a[:], a2[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText parses an address in hex syntax.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := ParseAddress(string(input))
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with the given prefix or with "0x".
func FromHex(s string, prefix string) []byte {
	if hasHexPrefix(s, prefix) || hasHexPrefix(s, "0x") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}

	h, _ := hex.DecodeString(s)
	return h
}

func hasHexPrefix(str, prefix string) bool {
	return len(str) >= 2 && strings.EqualFold(str[:2], prefix)
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isHex(str string) bool {
	if len(str)%2 != 0 {
		return false
	}
	for _, c := range []byte(str) {
		if !isHexCharacter(c) {
			return false
		}
	}
	return true
}
