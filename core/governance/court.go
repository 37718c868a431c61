// Package governance describes the external body that votes on confiscation
// motions. The token only reads motion status; voting happens elsewhere.
package governance

import (
	"encoding/json"
	"io/ioutil"
	"sync"

	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pkg/errors"
)

// Court answers questions about confiscation motions. A motion id of 0 means
// there is no motion against the target.
type Court interface {
	Address() types.Address
	MotionID(target types.Address) uint64
	IsConfirming(id uint64) bool
	HasPassed(id uint64) bool
}

type Motion struct {
	ID         uint64        `json:"id"`
	Target     types.Address `json:"target"`
	Confirming bool          `json:"confirming"`
	Passed     bool          `json:"passed"`
}

// Static is a Court with a fixed set of motions, kept in memory.
type Static struct {
	address types.Address

	lock    sync.RWMutex
	motions map[uint64]Motion
	targets map[types.Address]uint64
}

func NewStatic(address types.Address, motions ...Motion) *Static {
	court := &Static{
		address: address,
		motions: map[uint64]Motion{},
		targets: map[types.Address]uint64{},
	}

	for _, motion := range motions {
		court.SetMotion(motion)
	}

	return court
}

type courtFile struct {
	Address types.Address `json:"address"`
	Motions []Motion      `json:"motions"`
}

// LoadStatic reads a court from a JSON file of the form
// {"address": "Px...", "motions": [{"id": 1, "target": "Px...", "confirming": true, "passed": true}]}.
func LoadStatic(path string) (*Static, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read court file")
	}

	var file courtFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "decode court file %s", path)
	}

	return NewStatic(file.Address, file.Motions...), nil
}

// SetMotion adds or replaces a motion. A zero id clears the target.
func (s *Static) SetMotion(motion Motion) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if motion.ID == 0 {
		delete(s.targets, motion.Target)
		return
	}

	s.motions[motion.ID] = motion
	s.targets[motion.Target] = motion.ID
}

func (s *Static) Address() types.Address {
	return s.address
}

func (s *Static) MotionID(target types.Address) uint64 {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.targets[target]
}

func (s *Static) IsConfirming(id uint64) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.motions[id].Confirming
}

func (s *Static) HasPassed(id uint64) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.motions[id].Passed
}
