// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter reads values by key. Reading an absent key fails with an error
// that IsNotFound recognizes.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter writes and removes values.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Batch collects writes that Write applies at once.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Iterator walks key-value pairs in ascending key order.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Range spans keys from Start (included) to Limit (excluded). An empty Limit
// leaves the range open ended.
type Range struct {
	Start []byte
	Limit []byte
}

// Store is what the registry persists its state and event log in.
type Store interface {
	Getter
	Putter

	NewBatch() Batch
	Iterate(r Range) Iterator
}

// Lookup reads key, reporting an absent key through ok instead of an error.
func Lookup(g Getter, key []byte) (val []byte, ok bool, err error) {
	val, err = g.Get(key)
	if err != nil {
		if g.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// Scan calls fn for each pair in r until fn returns false or an error.
// The iterator is released before Scan returns.
func Scan(s Store, r Range, fn func(key, val []byte) (bool, error)) error {
	iter := s.Iterate(r)
	defer iter.Release()

	for iter.Next() {
		more, err := fn(iter.Key(), iter.Value())
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return iter.Error()
}
