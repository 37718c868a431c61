package types

import "strconv"

// Seeds of reserved addresses derived at genesis when none are given.
const (
	selfSeedPrefix   = "pegfee/token/"
	ledgerSeedPrefix = "pegfee/ledger/"
)

// SelfAddress returns the default own address of the token with the given
// symbol. Its ledger entry is the fee pool.
func SelfAddress(symbol string) Address {
	return CreateAddress(selfSeedPrefix + symbol)
}

// LedgerAddress returns the default address of the ledger numbered seq for
// the token with the given symbol.
func LedgerAddress(symbol string, seq uint64) Address {
	return CreateAddress(ledgerSeedPrefix + symbol + "/" + strconv.FormatUint(seq, 10))
}
