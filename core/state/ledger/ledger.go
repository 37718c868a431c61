package ledger

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/state/bus"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pegfee/pegfee-node/tree"
	"github.com/pkg/errors"
	"github.com/tendermint/go-amino"
)

const (
	mainPrefix      = byte('l')
	metaPrefix      = byte('m')
	balancePrefix   = byte('b')
	allowancePrefix = byte('a')
)

// RLedgers is the read-only part of the ledger store.
type RLedgers interface {
	Export(ledger types.Address, state *types.AppState)
	Exists(ledger types.Address) bool
	Owner(ledger types.Address) types.Address
	Associated(ledger types.Address) types.Address
	BalanceOf(ledger, account types.Address) *uint256.Int
	Allowance(ledger, owner, spender types.Address) *uint256.Int
}

// Ledgers keeps balances and allowances of any number of ledgers. It knows
// nothing about fees, freezing or supply.
type Ledgers struct {
	list  map[types.Address]*Model
	dirty map[types.Address]struct{}

	balances        map[balanceKey]*uint256.Int
	dirtyBalances   map[balanceKey]struct{}
	allowances      map[allowanceKey]*uint256.Int
	dirtyAllowances map[allowanceKey]struct{}

	iavl tree.ReadOnlyTree
	bus  *bus.Bus
	cdc  *amino.Codec

	lock sync.Mutex
}

func NewLedgers(stateBus *bus.Bus, iavl tree.ReadOnlyTree) *Ledgers {
	ledgers := &Ledgers{
		iavl: iavl,
		bus:  stateBus,
		cdc:  amino.NewCodec(),
	}
	ledgers.reset()
	ledgers.bus.SetLedgers(ledgers)

	return ledgers
}

func (l *Ledgers) reset() {
	l.list = map[types.Address]*Model{}
	l.dirty = map[types.Address]struct{}{}
	l.balances = map[balanceKey]*uint256.Int{}
	l.dirtyBalances = map[balanceKey]struct{}{}
	l.allowances = map[allowanceKey]*uint256.Int{}
	l.dirtyAllowances = map[allowanceKey]struct{}{}
}

// Commit writes every dirty entry into db. Zero balances and allowances are
// removed from the tree.
func (l *Ledgers) Commit(db tree.MTree) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	for _, address := range l.getOrderedDirty() {
		model := l.list[address]
		delete(l.dirty, address)

		data, err := l.cdc.MarshalBinaryBare(model)
		if err != nil {
			return fmt.Errorf("can't encode ledger %s: %v", address.String(), err)
		}

		db.Set(metaPath(address), data)
	}

	balanceKeys := make([]balanceKey, 0, len(l.dirtyBalances))
	for key := range l.dirtyBalances {
		balanceKeys = append(balanceKeys, key)
	}
	sort.Slice(balanceKeys, func(i, j int) bool {
		return bytes.Compare(balanceKeys[i].path(), balanceKeys[j].path()) == -1
	})

	for _, key := range balanceKeys {
		delete(l.dirtyBalances, key)
		setOrRemove(db, key.path(), l.balances[key])
	}

	allowanceKeys := make([]allowanceKey, 0, len(l.dirtyAllowances))
	for key := range l.dirtyAllowances {
		allowanceKeys = append(allowanceKeys, key)
	}
	sort.Slice(allowanceKeys, func(i, j int) bool {
		return bytes.Compare(allowanceKeys[i].path(), allowanceKeys[j].path()) == -1
	})

	for _, key := range allowanceKeys {
		delete(l.dirtyAllowances, key)
		setOrRemove(db, key.path(), l.allowances[key])
	}

	return nil
}

func setOrRemove(db tree.MTree, path []byte, value *uint256.Int) {
	if value.IsZero() {
		db.Remove(path)
		return
	}

	enc := value.Bytes32()
	db.Set(path, enc[:])
}

// Rollback drops every change not committed yet.
func (l *Ledgers) Rollback() {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.reset()
}

func (l *Ledgers) getOrderedDirty() []types.Address {
	keys := make([]types.Address, 0, len(l.dirty))
	for k := range l.dirty {
		keys = append(keys, k)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) == -1
	})

	return keys
}

func (l *Ledgers) get(address types.Address) *Model {
	if model := l.list[address]; model != nil {
		return model
	}

	_, enc := l.iavl.Get(metaPath(address))
	if len(enc) == 0 {
		return nil
	}

	model := &Model{}
	if err := l.cdc.UnmarshalBinaryBare(enc, model); err != nil {
		panic(fmt.Sprintf("failed to decode ledger %s: %s", address.String(), err))
	}

	model.address = address
	l.list[address] = model

	return model
}

// Create registers a new ledger. The owner may later re-associate it with
// another token.
func (l *Ledgers) Create(address, owner, associated types.Address) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if address.IsZero() {
		return errors.Wrap(code.ErrInvalidTarget, "null ledger address")
	}

	if l.get(address) != nil {
		return errors.Wrapf(code.ErrInvalidTarget, "ledger %s already exists", address.String())
	}

	l.list[address] = &Model{
		Owner:      owner,
		Associated: associated,
		address:    address,
	}
	l.dirty[address] = struct{}{}

	return nil
}

func (l *Ledgers) Exists(address types.Address) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.get(address) != nil
}

func (l *Ledgers) Owner(address types.Address) types.Address {
	l.lock.Lock()
	defer l.lock.Unlock()

	if model := l.get(address); model != nil {
		return model.Owner
	}

	return types.Address{}
}

func (l *Ledgers) Associated(address types.Address) types.Address {
	l.lock.Lock()
	defer l.lock.Unlock()

	if model := l.get(address); model != nil {
		return model.Associated
	}

	return types.Address{}
}

// SetAssociated hands write access of the ledger to another token.
func (l *Ledgers) SetAssociated(caller, address, associated types.Address) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	model := l.get(address)
	if model == nil {
		return errors.Wrapf(code.ErrInvalidTarget, "ledger %s does not exist", address.String())
	}

	if model.Owner != caller {
		return errors.Wrapf(code.ErrUnauthorized, "%s is not the owner of ledger %s", caller.String(), address.String())
	}

	model.Associated = associated
	l.dirty[address] = struct{}{}

	return nil
}

func (l *Ledgers) authorize(caller, address types.Address) error {
	model := l.get(address)
	if model == nil || model.Associated != caller {
		return errors.Wrapf(code.ErrUnauthorized, "%s is not associated with ledger %s", caller.String(), address.String())
	}

	return nil
}

func (l *Ledgers) balanceOf(key balanceKey) *uint256.Int {
	if balance, ok := l.balances[key]; ok {
		return balance
	}

	balance := uint256.NewInt(0)
	if _, enc := l.iavl.Get(key.path()); len(enc) != 0 {
		balance.SetBytes(enc)
	}

	l.balances[key] = balance

	return balance
}

// BalanceOf returns the balance of account, zero when it was never set.
func (l *Ledgers) BalanceOf(ledger, account types.Address) *uint256.Int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return new(uint256.Int).Set(l.balanceOf(balanceKey{ledger: ledger, account: account}))
}

// SetBalanceOf overwrites the balance of account.
func (l *Ledgers) SetBalanceOf(caller, ledger, account types.Address, value *uint256.Int) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.authorize(caller, ledger); err != nil {
		return err
	}

	key := balanceKey{ledger: ledger, account: account}
	prev := l.balanceOf(key)

	delta := new(big.Int).Sub(value.ToBig(), prev.ToBig())
	if delta.Sign() != 0 {
		l.bus.Checker().AddBalance(ledger, delta)
	}

	l.balances[key] = new(uint256.Int).Set(value)
	l.dirtyBalances[key] = struct{}{}

	return nil
}

func (l *Ledgers) allowance(key allowanceKey) *uint256.Int {
	if value, ok := l.allowances[key]; ok {
		return value
	}

	value := uint256.NewInt(0)
	if _, enc := l.iavl.Get(key.path()); len(enc) != 0 {
		value.SetBytes(enc)
	}

	l.allowances[key] = value

	return value
}

// Allowance returns how much spender may still move out of owner's balance.
func (l *Ledgers) Allowance(ledger, owner, spender types.Address) *uint256.Int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return new(uint256.Int).Set(l.allowance(allowanceKey{ledger: ledger, owner: owner, spender: spender}))
}

func (l *Ledgers) SetAllowance(caller, ledger, owner, spender types.Address, value *uint256.Int) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.authorize(caller, ledger); err != nil {
		return err
	}

	key := allowanceKey{ledger: ledger, owner: owner, spender: spender}
	l.allowances[key] = new(uint256.Int).Set(value)
	l.dirtyAllowances[key] = struct{}{}

	return nil
}

// Export appends non-zero balances and allowances of the ledger as stored in
// the tree.
func (l *Ledgers) Export(ledger types.Address, state *types.AppState) {
	l.lock.Lock()
	defer l.lock.Unlock()

	balancesStart := append([]byte{mainPrefix}, ledger[:]...)
	balancesStart = append(balancesStart, balancePrefix)
	l.iavl.IterateRange(balancesStart, prefixEnd(balancesStart), true, func(key []byte, value []byte) bool {
		balance := new(uint256.Int).SetBytes(value)
		if balance.IsZero() {
			return false
		}

		state.Accounts = append(state.Accounts, types.Account{
			Address: types.BytesToAddress(key[len(balancesStart):]),
			Balance: helpers.ValueToString(balance),
		})

		return false
	})

	allowancesStart := append([]byte{mainPrefix}, ledger[:]...)
	allowancesStart = append(allowancesStart, allowancePrefix)
	l.iavl.IterateRange(allowancesStart, prefixEnd(allowancesStart), true, func(key []byte, value []byte) bool {
		allowance := new(uint256.Int).SetBytes(value)
		if allowance.IsZero() {
			return false
		}

		rest := key[len(allowancesStart):]
		state.Allowances = append(state.Allowances, types.Allowance{
			Owner:   types.BytesToAddress(rest[:types.AddressLength]),
			Spender: types.BytesToAddress(rest[types.AddressLength:]),
			Value:   helpers.ValueToString(allowance),
		})

		return false
	})
}

// prefixEnd returns the smallest key greater than every key with the prefix.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)

	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}
