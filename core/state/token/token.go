package token

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
	mainPrefix   = byte('t')
	frozenPrefix = byte('f')
)

type RToken interface {
	Export(state *types.AppState)
	Exists() bool
	Name() string
	Symbol() string
	Owner() types.Address
	Issuer() types.Address
	FeeAuthority() types.Address
	Court() types.Address
	Self() types.Address
	Ledger() types.Address
	TotalSupply() *uint256.Int
	TransferFeeRate() *uint256.Int
	IsFrozen(address types.Address) bool
}

// Token is the store of the token scalars and of the frozen account set.
type Token struct {
	model   *Model
	isDirty bool

	frozen      map[types.Address]bool
	dirtyFrozen map[types.Address]struct{}

	iavl tree.ReadOnlyTree
	bus  *bus.Bus
	cdc  *amino.Codec

	lock sync.Mutex
}

func NewToken(stateBus *bus.Bus, iavl tree.ReadOnlyTree) *Token {
	return &Token{
		frozen:      map[types.Address]bool{},
		dirtyFrozen: map[types.Address]struct{}{},
		iavl:        iavl,
		bus:         stateBus,
		cdc:         amino.NewCodec(),
	}
}

func (t *Token) Commit(db tree.MTree) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.isDirty {
		t.isDirty = false

		data, err := t.cdc.MarshalBinaryBare(t.model)
		if err != nil {
			return fmt.Errorf("can't encode token model: %s", err)
		}

		db.Set([]byte{mainPrefix}, data)
	}

	keys := make([]types.Address, 0, len(t.dirtyFrozen))
	for address := range t.dirtyFrozen {
		keys = append(keys, address)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) == -1
	})

	for _, address := range keys {
		delete(t.dirtyFrozen, address)

		if t.frozen[address] {
			db.Set(frozenPath(address), []byte{1})
		} else {
			db.Remove(frozenPath(address))
		}
	}

	return nil
}

// Rollback drops every change not committed yet.
func (t *Token) Rollback() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.model = nil
	t.isDirty = false
	t.frozen = map[types.Address]bool{}
	t.dirtyFrozen = map[types.Address]struct{}{}
}

func (t *Token) get() *Model {
	if t.model != nil {
		return t.model
	}

	_, enc := t.iavl.Get([]byte{mainPrefix})
	if len(enc) == 0 {
		return nil
	}

	model := &Model{}
	if err := t.cdc.UnmarshalBinaryBare(enc, model); err != nil {
		panic(fmt.Sprintf("failed to decode token model: %s", err))
	}

	model.markDirty = t.markDirty
	t.model = model

	return t.model
}

// getOrEmpty lets views work on a state without a token.
func (t *Token) getOrEmpty() *Model {
	if model := t.get(); model != nil {
		return model
	}

	return &Model{markDirty: func() {}}
}

func (t *Token) markDirty() {
	t.isDirty = true
}

// Create sets the token scalars. Used once at genesis.
func (t *Token) Create(name, symbol string, owner, issuer, feeAuthority, court, self, ledger types.Address, rate *uint256.Int) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.get() != nil {
		return errors.Wrap(code.ErrInvalidTarget, "token already exists")
	}

	t.model = &Model{
		Name:            name,
		Symbol:          symbol,
		Owner:           owner,
		Issuer:          issuer,
		FeeAuthority:    feeAuthority,
		Court:           court,
		Self:            self,
		Ledger:          ledger,
		TotalSupply:     []byte{},
		TransferFeeRate: rate.Bytes(),
		markDirty:       t.markDirty,
	}
	t.isDirty = true

	t.setFrozen(self, true)

	return nil
}

func (t *Token) Exists() bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.get() != nil
}

func (t *Token) Name() string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().Name
}

func (t *Token) Symbol() string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().Symbol
}

func (t *Token) Owner() types.Address {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().Owner
}

func (t *Token) Issuer() types.Address {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().Issuer
}

func (t *Token) FeeAuthority() types.Address {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().FeeAuthority
}

func (t *Token) Court() types.Address {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().Court
}

func (t *Token) Self() types.Address {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().Self
}

func (t *Token) Ledger() types.Address {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().Ledger
}

func (t *Token) TotalSupply() *uint256.Int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().getTotalSupply()
}

func (t *Token) TransferFeeRate() *uint256.Int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.getOrEmpty().getTransferFeeRate()
}

// SetTotalSupply overwrites the supply and reports the change to the
// conservation checker under the active ledger.
func (t *Token) SetTotalSupply(value *uint256.Int) {
	t.lock.Lock()
	defer t.lock.Unlock()

	model := t.get()

	delta := new(big.Int).Sub(value.ToBig(), model.getTotalSupply().ToBig())
	if delta.Sign() != 0 {
		t.bus.Checker().AddSupply(model.Ledger, delta)
	}

	model.setTotalSupply(value)
}

func (t *Token) SetTransferFeeRate(value *uint256.Int) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.get().setTransferFeeRate(value)
}

func (t *Token) SetFeeAuthority(address types.Address) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.get().setFeeAuthority(address)
}

func (t *Token) SetIssuer(address types.Address) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.get().setIssuer(address)
}

func (t *Token) SetCourt(address types.Address) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.get().setCourt(address)
}

// SetLedger points the token at another ledger, which must exist.
func (t *Token) SetLedger(address types.Address) error {
	if !t.bus.Ledgers().Exists(address) {
		return errors.Wrapf(code.ErrInvalidTarget, "ledger %s does not exist", address.String())
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.get().setLedger(address)

	return nil
}

func (t *Token) isFrozen(address types.Address) bool {
	if frozen, ok := t.frozen[address]; ok {
		return frozen
	}

	_, enc := t.iavl.Get(frozenPath(address))
	frozen := len(enc) != 0
	t.frozen[address] = frozen

	return frozen
}

func (t *Token) IsFrozen(address types.Address) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.isFrozen(address)
}

func (t *Token) setFrozen(address types.Address, frozen bool) {
	t.frozen[address] = frozen
	t.dirtyFrozen[address] = struct{}{}
}

func (t *Token) SetFrozen(address types.Address, frozen bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.setFrozen(address, frozen)
}

// Export fills the token part of the app state. Balances are exported by the
// ledger store.
func (t *Token) Export(state *types.AppState) {
	t.lock.Lock()
	defer t.lock.Unlock()

	model := t.getOrEmpty()
	self, ledger := model.Self, model.Ledger

	state.Name = model.Name
	state.Symbol = model.Symbol
	state.Owner = model.Owner
	state.Issuer = model.Issuer
	state.FeeAuthority = model.FeeAuthority
	state.Court = model.Court
	state.Self = &self
	state.Ledger = &ledger
	state.TotalSupply = helpers.ValueToString(model.getTotalSupply())
	state.TransferFeeRate = helpers.ValueToString(model.getTransferFeeRate())

	start := []byte{frozenPrefix}
	t.iavl.IterateRange(start, []byte{frozenPrefix + 1}, true, func(key []byte, value []byte) bool {
		state.Frozen = append(state.Frozen, types.BytesToAddress(key[1:]))
		return false
	})
}

func frozenPath(address types.Address) []byte {
	return append([]byte{frozenPrefix}, address[:]...)
}
