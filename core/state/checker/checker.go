package checker

import (
	"fmt"
	"math/big"

	"github.com/pegfee/pegfee-node/core/state/bus"
	"github.com/pegfee/pegfee-node/core/types"
)

// Checker accumulates signed balance and supply changes per ledger during one
// operation. Conservation holds when both sums match for every ledger.
type Checker struct {
	delta       map[types.Address]*big.Int
	supplyDelta map[types.Address]*big.Int
}

func NewChecker(bus *bus.Bus) *Checker {
	checker := &Checker{
		delta:       map[types.Address]*big.Int{},
		supplyDelta: map[types.Address]*big.Int{},
	}
	bus.SetChecker(checker)

	return checker
}

func (c *Checker) AddBalance(ledger types.Address, value *big.Int) {
	add(c.delta, ledger, value)
}

func (c *Checker) AddSupply(ledger types.Address, value *big.Int) {
	add(c.supplyDelta, ledger, value)
}

func add(m map[types.Address]*big.Int, ledger types.Address, value *big.Int) {
	cValue, exists := m[ledger]

	if !exists {
		cValue = big.NewInt(0)
		m[ledger] = cValue
	}

	cValue.Add(cValue, value)
}

func (c *Checker) Reset() {
	c.delta = map[types.Address]*big.Int{}
	c.supplyDelta = map[types.Address]*big.Int{}
}

// Check returns an error naming the first ledger whose balances moved by a
// different amount than the supply.
func (c *Checker) Check() error {
	for ledger, delta := range c.delta {
		supply, ok := c.supplyDelta[ledger]
		if !ok {
			supply = big.NewInt(0)
		}

		if delta.Cmp(supply) != 0 {
			return fmt.Errorf("ledger %s: balances changed by %s, supply by %s", ledger.String(), delta.String(), supply.String())
		}
	}

	for ledger, supply := range c.supplyDelta {
		if _, ok := c.delta[ledger]; !ok && supply.Sign() != 0 {
			return fmt.Errorf("ledger %s: supply changed by %s without balance changes", ledger.String(), supply.String())
		}
	}

	return nil
}
