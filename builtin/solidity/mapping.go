// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction, similar to the mapping in Solidity.
// Values are rlp encoded. A missing value decodes into the zero value of V,
// which is nil when V is a pointer type.
type Mapping[K Key, V any] struct {
	context *Context
	basePos vsr.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos vsr.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) vsr.Bytes32 {
	return vsr.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.load(m.position(key), &value)
	return
}

// Exists reports whether a value is stored for the key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	return m.context.occupied(m.position(key))
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.store(m.position(key), value)
}

// Delete clears the value stored for the key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.clear(m.position(key))
}
