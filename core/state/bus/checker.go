package bus

import (
	"math/big"

	"github.com/pegfee/pegfee-node/core/types"
)

type Checker interface {
	AddBalance(ledger types.Address, delta *big.Int)
	AddSupply(ledger types.Address, delta *big.Int)
}
