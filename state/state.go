// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/aitoothbrush/brusho-vsr/kv"
	"github.com/aitoothbrush/brusho-vsr/stackedmap"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return "state: " + e.cause.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr vsr.Address
	key  vsr.Bytes32
}

func (k storageKey) bytes() []byte {
	return append(append(make([]byte, 0, 64), k.addr[:]...), k.key[:]...)
}

// State manages program storage over a kv store.
// Every change stays in memory until it is staged and committed.
type State struct {
	db kv.Getter
	sm *stackedmap.StackedMap[storageKey, []byte]
}

// New create a state object on the given kv store.
func New(db kv.Getter) *State {
	s := &State{db: db}
	s.sm = stackedmap.New(s.load)
	return s
}

func (s *State) load(key storageKey) ([]byte, bool, error) {
	return kv.Lookup(s.db, key.bytes())
}

// GetRawStorage returns storage value in raw bytes for given address and key.
// An absent value returns nil.
func (s *State) GetRawStorage(addr vsr.Address, key vsr.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage set storage value in raw bytes. Empty raw clears the value.
func (s *State) SetRawStorage(addr vsr.Address, key vsr.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr vsr.Address, key vsr.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr vsr.Address, key vsr.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects the cumulative changes, ready to be committed.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	var order []storageKey
	s.sm.Journal(func(k storageKey, v []byte) bool {
		if _, ok := changes[k]; !ok {
			order = append(order, k)
		}
		changes[k] = v
		return true
	})
	return &Stage{changes: changes, order: order}
}
