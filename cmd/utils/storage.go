package utils

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	db "github.com/tendermint/tm-db"
)

const (
	stateDBName  = "state"
	eventsDBName = "events"
)

// Storage opens and owns the databases of a node.
type Storage struct {
	dir     string
	backend string

	stateDB  db.DB
	eventsDB db.DB
}

// NewStorage returns storage rooted at dir. The memdb backend ignores dir.
func NewStorage(dir, backend string) *Storage {
	if backend == "" {
		backend = string(db.GoLevelDBBackend)
	}

	return &Storage{dir: dir, backend: backend}
}

// GetDbOpts returns goleveldb options sized to memLimit megabytes.
func GetDbOpts(memLimit int) *opt.Options {
	if memLimit < 16 {
		memLimit = 16
	}

	return &opt.Options{
		OpenFilesCacheCapacity: memLimit,
		BlockCacheCapacity:     memLimit / 2 * opt.MiB,
		WriteBuffer:            memLimit / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	}
}

func (s *Storage) open(name string, opts *opt.Options) (db.DB, error) {
	switch s.backend {
	case string(db.MemDBBackend):
		return db.NewMemDB(), nil
	case string(db.GoLevelDBBackend):
		ldb, err := db.NewGoLevelDBWithOpts(name, s.dir, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s database in %s", name, s.dir)
		}

		return ldb, nil
	default:
		return nil, errors.Errorf("unsupported db backend %q", s.backend)
	}
}

func (s *Storage) InitStateDB(opts *opt.Options) (db.DB, error) {
	ldb, err := s.open(stateDBName, opts)
	if err != nil {
		return nil, err
	}

	s.stateDB = ldb
	return ldb, nil
}

func (s *Storage) InitEventsDB(opts *opt.Options) (db.DB, error) {
	ldb, err := s.open(eventsDBName, opts)
	if err != nil {
		return nil, err
	}

	s.eventsDB = ldb
	return ldb, nil
}

// Close closes every opened database.
func (s *Storage) Close() error {
	var result error

	for _, d := range []db.DB{s.stateDB, s.eventsDB} {
		if d == nil {
			continue
		}

		if err := d.Close(); err != nil && result == nil {
			result = err
		}
	}

	s.stateDB, s.eventsDB = nil, nil

	return result
}
