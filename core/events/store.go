package events

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"
	"github.com/tendermint/go-amino"
	db "github.com/tendermint/tm-db"
)

// IEventsDB is an interface of Events
type IEventsDB interface {
	AddEvents(events Events)
	Pending() Events
	CommitEvents(version uint64) error
	LoadEvents(version uint64) (Events, error)
}

type eventsStore struct {
	cdc *amino.Codec
	sync.RWMutex
	db      db.DB
	pending pendingEvents
}

type pendingEvents struct {
	sync.Mutex
	items Events
}

// NewEventsStore creates new events store in given DB
func NewEventsStore(db db.DB) IEventsDB {
	codec := amino.NewCodec()
	RegisterAminoEvents(codec)

	return &eventsStore{
		cdc:     codec,
		RWMutex: sync.RWMutex{},
		db:      db,
		pending: pendingEvents{},
	}
}

// AddEvents queues events of one applied operation until the next commit.
func (store *eventsStore) AddEvents(events Events) {
	store.pending.Lock()
	defer store.pending.Unlock()

	store.pending.items = append(store.pending.items, events...)
}

func (store *eventsStore) Pending() Events {
	store.pending.Lock()
	defer store.pending.Unlock()

	return append(Events{}, store.pending.items...)
}

func (store *eventsStore) LoadEvents(version uint64) (Events, error) {
	store.RLock()
	defer store.RUnlock()

	bytes, err := store.db.Get(uint64ToBytes(version))
	if err != nil {
		return nil, err
	}
	if len(bytes) == 0 {
		return Events{}, nil
	}

	var items Events
	if err := store.cdc.UnmarshalBinaryBare(bytes, &items); err != nil {
		return nil, errors.Wrapf(err, "decode events of version %d", version)
	}

	return items, nil
}

// CommitEvents stores queued events under the given version. Versions without
// events are not written.
func (store *eventsStore) CommitEvents(version uint64) error {
	store.pending.Lock()
	defer store.pending.Unlock()

	if len(store.pending.items) == 0 {
		return nil
	}

	bytes, err := store.cdc.MarshalBinaryBare(store.pending.items)
	if err != nil {
		return err
	}

	store.Lock()
	defer store.Unlock()
	if err := store.db.Set(uint64ToBytes(version), bytes); err != nil {
		return err
	}

	store.pending.items = nil
	return nil
}

func uint64ToBytes(version uint64) []byte {
	var h = make([]byte, 8)
	binary.BigEndian.PutUint64(h, version)
	return h
}
