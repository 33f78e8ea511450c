// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/kv"
)

// Stage abstracts changes on the storage.
type Stage struct {
	changes map[storageKey][]byte
	order   []storageKey
}

// Len returns count of changed storage values.
func (s *Stage) Len() int {
	return len(s.order)
}

// Write puts all changes into the putter, usually a batch shared with other writes.
func (s *Stage) Write(putter kv.Putter) error {
	for _, k := range s.order {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = putter.Delete(k.bytes())
		} else {
			err = putter.Put(k.bytes(), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage")
		}
	}
	return nil
}

// Commit writes all changes into the store in a single batch.
func (s *Stage) Commit(store kv.Store) error {
	batch := store.NewBatch()
	if err := s.Write(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit stage")
	}
	return nil
}
