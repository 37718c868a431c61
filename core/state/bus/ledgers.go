package bus

import "github.com/pegfee/pegfee-node/core/types"

type Ledgers interface {
	Exists(ledger types.Address) bool
}
