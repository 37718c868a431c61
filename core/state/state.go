package state

import (
	"sync"

	eventsdb "github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/code"
	"github.com/pegfee/pegfee-node/core/state/bus"
	"github.com/pegfee/pegfee-node/core/state/checker"
	"github.com/pegfee/pegfee-node/core/state/ledger"
	"github.com/pegfee/pegfee-node/core/state/token"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pegfee/pegfee-node/tree"
	"github.com/pkg/errors"
	db "github.com/tendermint/tm-db"
)

type CheckState struct {
	state *State
}

func NewCheckState(state *State) *CheckState {
	return &CheckState{state: state}
}

func (cs *CheckState) Export() types.AppState {
	appState := new(types.AppState)
	cs.Token().Export(appState)
	cs.Ledgers().Export(cs.Token().Ledger(), appState)

	return *appState
}

func (cs *CheckState) Token() token.RToken {
	return cs.state.Token
}

func (cs *CheckState) Ledgers() ledger.RLedgers {
	return cs.state.Ledgers
}

func (cs *CheckState) Version() int64 {
	return cs.state.iavl.Version()
}

func (cs *CheckState) Hash() []byte {
	return cs.state.iavl.Hash()
}

type State struct {
	Ledgers *ledger.Ledgers
	Token   *token.Token
	Checker *checker.Checker

	events         eventsdb.IEventsDB
	tree           tree.MTree
	iavl           tree.ReadOnlyTree
	keepLastStates int64
	bus            *bus.Bus
	pending        eventsdb.Events

	lock sync.RWMutex
}

// NewState opens the latest version of the state stored in db.
func NewState(db db.DB, events eventsdb.IEventsDB, cacheSize int, keepLastStates int64) (*State, error) {
	iavlTree, err := tree.NewMutableTree(db, cacheSize)
	if err != nil {
		return nil, err
	}

	state := newStateForTree(iavlTree, events, keepLastStates)
	state.tree = iavlTree

	return state, nil
}

// CheckStateAtVersion opens a read-only view of a saved version still kept
// in the tree.
func (s *State) CheckStateAtVersion(version int64) (*CheckState, error) {
	available := false
	for _, v := range s.tree.AvailableVersions() {
		if int64(v) == version {
			available = true
			break
		}
	}

	if !available {
		return nil, errors.Errorf("version %d is not available, last version %d", version, s.tree.Version())
	}

	immutableTree, err := s.tree.GetImmutableAtHeight(version)
	if err != nil {
		return nil, err
	}

	return NewCheckState(newStateForTree(immutableTree, nil, 0)), nil
}

func newStateForTree(iavlTree tree.ReadOnlyTree, events eventsdb.IEventsDB, keepLastStates int64) *State {
	stateBus := bus.NewBus()
	stateChecker := checker.NewChecker(stateBus)

	return &State{
		Ledgers:        ledger.NewLedgers(stateBus, iavlTree),
		Token:          token.NewToken(stateBus, iavlTree),
		Checker:        stateChecker,
		events:         events,
		iavl:           iavlTree,
		keepLastStates: keepLastStates,
		bus:            stateBus,
	}
}

func (s *State) Events() eventsdb.IEventsDB {
	return s.events
}

func (s *State) RLock() {
	s.lock.RLock()
}

func (s *State) RUnlock() {
	s.lock.RUnlock()
}

// Emit queues an event of the operation being applied. Only valid inside Apply.
func (s *State) Emit(event eventsdb.Event) {
	s.pending = append(s.pending, event)
}

// Apply runs fn as one atomic operation. If fn fails or the balances no
// longer add up to the supply, every change made by fn is dropped. Otherwise
// the changes are written into the working tree and the emitted events are
// queued for the next Commit.
func (s *State) Apply(fn func() error) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.pending = nil

	if err := fn(); err != nil {
		s.rollback()
		return err
	}

	if err := s.Checker.Check(); err != nil {
		s.rollback()
		return errors.Wrap(code.ErrInvariantViolation, err.Error())
	}
	s.Checker.Reset()

	if err := s.Ledgers.Commit(s.tree); err != nil {
		panic(err)
	}
	if err := s.Token.Commit(s.tree); err != nil {
		panic(err)
	}

	if s.events != nil && len(s.pending) > 0 {
		s.events.AddEvents(s.pending)
	}
	s.pending = nil

	return nil
}

func (s *State) rollback() {
	s.Ledgers.Rollback()
	s.Token.Rollback()
	s.Checker.Reset()
	s.pending = nil
}

// Commit saves a new version of the tree and stores queued events under it.
// Only the last keepLastStates versions are kept, 0 keeps everything.
func (s *State) Commit() ([]byte, int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.tree.GlobalLock()
	defer s.tree.GlobalUnlock()

	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return nil, 0, err
	}

	if s.events != nil {
		if err := s.events.CommitEvents(uint64(version)); err != nil {
			return hash, version, err
		}
	}

	if s.keepLastStates > 0 {
		oldest := version - s.keepLastStates + 1
		if err := s.tree.DeleteVersionsIfExists(1, oldest); err != nil {
			return hash, version, errors.Wrapf(err, "delete versions before %d", oldest)
		}
	}

	return hash, version, nil
}

func (s *State) Version() int64 {
	return s.iavl.Version()
}

func (s *State) Hash() []byte {
	return s.iavl.Hash()
}

// Import initialises an empty state from a genesis document.
func (s *State) Import(state types.AppState) error {
	if err := state.Verify(); err != nil {
		return errors.Wrap(code.ErrInvalidValue, err.Error())
	}

	self, ledgerAddress := state.SelfAddress(), state.LedgerAddress()

	return s.Apply(func() error {
		if err := s.Ledgers.Create(ledgerAddress, state.Owner, self); err != nil {
			return err
		}

		rate := helpers.StringToValue(state.TransferFeeRate)
		if err := s.Token.Create(state.Name, state.Symbol, state.Owner, state.Issuer, state.FeeAuthority, state.Court, self, ledgerAddress, rate); err != nil {
			return err
		}

		for _, account := range state.Accounts {
			if err := s.Ledgers.SetBalanceOf(self, ledgerAddress, account.Address, helpers.StringToValue(account.Balance)); err != nil {
				return err
			}
		}
		s.Token.SetTotalSupply(helpers.StringToValue(state.TotalSupply))

		for _, allowance := range state.Allowances {
			if err := s.Ledgers.SetAllowance(self, ledgerAddress, allowance.Owner, allowance.Spender, helpers.StringToValue(allowance.Value)); err != nil {
				return err
			}
		}

		for _, address := range state.Frozen {
			s.Token.SetFrozen(address, true)
		}

		return nil
	})
}

func (s *State) Export() types.AppState {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return NewCheckState(s).Export()
}
