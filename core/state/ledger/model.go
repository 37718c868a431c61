package ledger

import "github.com/pegfee/pegfee-node/core/types"

// Model is the metadata of one ledger. Only the associated token may change
// balances and allowances; only the owner may re-associate the ledger.
type Model struct {
	Owner      types.Address
	Associated types.Address

	address types.Address
}

type balanceKey struct {
	ledger  types.Address
	account types.Address
}

type allowanceKey struct {
	ledger  types.Address
	owner   types.Address
	spender types.Address
}

func (k balanceKey) path() []byte {
	path := append([]byte{mainPrefix}, k.ledger[:]...)
	path = append(path, balancePrefix)
	return append(path, k.account[:]...)
}

func (k allowanceKey) path() []byte {
	path := append([]byte{mainPrefix}, k.ledger[:]...)
	path = append(path, allowancePrefix)
	path = append(path, k.owner[:]...)
	return append(path, k.spender[:]...)
}

func metaPath(ledger types.Address) []byte {
	path := append([]byte{mainPrefix}, ledger[:]...)
	return append(path, metaPrefix)
}
