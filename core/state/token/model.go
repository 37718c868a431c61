package token

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/types"
)

// Model holds the scalar state of the token. Amounts are stored as big endian
// bytes of 256-bit values.
type Model struct {
	Name            string
	Symbol          string
	Owner           types.Address
	Issuer          types.Address
	FeeAuthority    types.Address
	Court           types.Address
	Self            types.Address
	Ledger          types.Address
	TotalSupply     []byte
	TransferFeeRate []byte

	markDirty func()
}

func (m *Model) getTotalSupply() *uint256.Int {
	return new(uint256.Int).SetBytes(m.TotalSupply)
}

func (m *Model) setTotalSupply(value *uint256.Int) {
	m.TotalSupply = value.Bytes()
	m.markDirty()
}

func (m *Model) getTransferFeeRate() *uint256.Int {
	return new(uint256.Int).SetBytes(m.TransferFeeRate)
}

func (m *Model) setTransferFeeRate(value *uint256.Int) {
	m.TransferFeeRate = value.Bytes()
	m.markDirty()
}

func (m *Model) setFeeAuthority(address types.Address) {
	m.FeeAuthority = address
	m.markDirty()
}

func (m *Model) setIssuer(address types.Address) {
	m.Issuer = address
	m.markDirty()
}

func (m *Model) setCourt(address types.Address) {
	m.Court = address
	m.markDirty()
}

func (m *Model) setLedger(address types.Address) {
	m.Ledger = address
	m.markDirty()
}
