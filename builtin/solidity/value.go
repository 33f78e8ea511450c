// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Uint64 is a single storage slot holding an uint64.
type Uint64 struct {
	context *Context
	pos     vsr.Bytes32
}

func NewUint64(context *Context, slot vsr.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: slot}
}

func (u *Uint64) Get() (value uint64, err error) {
	err = u.context.load(u.pos, &value)
	return
}

// Set stores value, clearing the slot for zero.
func (u *Uint64) Set(value uint64) error {
	if value == 0 {
		u.context.clear(u.pos)
		return nil
	}
	return u.context.store(u.pos, value)
}

// Add increases the stored value and returns the new value.
func (u *Uint64) Add(delta uint64) (uint64, error) {
	v, err := u.Get()
	if err != nil {
		return 0, err
	}
	v += delta
	return v, u.Set(v)
}
