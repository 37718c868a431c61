// Package node ties the token to its storage: it opens the databases, the
// state and the court described by the config, and commits versions.
package node

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"time"

	"github.com/pegfee/pegfee-node/cmd/utils"
	"github.com/pegfee/pegfee-node/config"
	eventsdb "github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/feetoken"
	"github.com/pegfee/pegfee-node/core/governance"
	"github.com/pegfee/pegfee-node/core/state"
	"github.com/pegfee/pegfee-node/core/statistics"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ErrNotInitialized is returned when the state has no token yet.
var ErrNotInitialized = errors.New("state is not initialized, run init first")

type Node struct {
	storage *utils.Storage
	logger  log.Logger

	state  *state.State
	events eventsdb.IEventsDB
	token  *feetoken.FeeToken
	stats  *statistics.Data
}

// NewNode opens the databases under cfg and loads the latest state version.
func NewNode(cfg *config.Config, logger log.Logger) (*Node, error) {
	storage := utils.NewStorage(cfg.DBDir(), cfg.DBBackend)

	stateDB, err := storage.InitStateDB(utils.GetDbOpts(cfg.StateCacheSize / 1000))
	if err != nil {
		return nil, err
	}

	eventsDB, err := storage.InitEventsDB(nil)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	events := eventsdb.NewEventsStore(eventsDB)

	st, err := state.NewState(stateDB, events, cfg.StateCacheSize, cfg.KeepLastStates)
	if err != nil {
		_ = storage.Close()
		return nil, errors.Wrap(err, "load state")
	}

	court, err := loadCourt(cfg.CourtFile())
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	n := &Node{
		storage: storage,
		logger:  logger.With("module", "main"),
		state:   st,
		events:  events,
		token:   feetoken.New(st, court, logger),
	}

	n.logger.Info("state loaded", "version", st.Version(), "hash", st.Hash())

	return n, nil
}

// loadCourt reads the court file. A missing file gives a court that answers
// for nobody.
func loadCourt(path string) (governance.Court, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return governance.NewStatic(types.Address{}), nil
	}

	court, err := governance.LoadStatic(path)
	if err != nil {
		return nil, err
	}

	return court, nil
}

// LoadGenesis reads a genesis app state from a JSON file.
func LoadGenesis(path string) (types.AppState, error) {
	var appState types.AppState

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return appState, errors.Wrap(err, "read genesis")
	}

	if err := json.Unmarshal(data, &appState); err != nil {
		return appState, errors.Wrap(err, "decode genesis")
	}

	return appState, nil
}

// InitChain imports the genesis state and commits it as the first version.
func (n *Node) InitChain(appState types.AppState) error {
	if n.Initialized() {
		return errors.New("state is already initialized")
	}

	if err := n.state.Import(appState); err != nil {
		return err
	}

	_, _, err := n.Commit()
	return err
}

// Initialized reports whether the state holds a token.
func (n *Node) Initialized() bool {
	n.state.RLock()
	defer n.state.RUnlock()

	return n.state.Token.Exists()
}

// Token returns the token, or ErrNotInitialized before InitChain.
func (n *Node) Token() (*feetoken.FeeToken, error) {
	if !n.Initialized() {
		return nil, ErrNotInitialized
	}

	return n.token, nil
}

// SetStatisticData enables metrics on the token and commits.
func (n *Node) SetStatisticData(stats *statistics.Data) *Node {
	n.stats = stats
	n.token.SetStatistics(stats)

	return n
}

func (n *Node) CurrentState() *state.State {
	return n.state
}

// GetStateForVersion opens a read-only view of a committed version.
func (n *Node) GetStateForVersion(version uint64) (*state.CheckState, error) {
	return n.state.CheckStateAtVersion(int64(version))
}

func (n *Node) GetEventsDB() eventsdb.IEventsDB {
	return n.events
}

// Commit saves the applied operations as a new version.
func (n *Node) Commit() ([]byte, int64, error) {
	start := time.Now()

	hash, version, err := n.state.Commit()
	if err != nil {
		return nil, 0, errors.Wrap(err, "commit state")
	}

	n.stats.SetCommit(version, time.Since(start))
	n.logger.Info("committed state", "version", version, "hash", hash)

	return hash, version, nil
}

// Stop closes the databases.
func (n *Node) Stop() error {
	return n.storage.Close()
}
