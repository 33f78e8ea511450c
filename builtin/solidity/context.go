// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aitoothbrush/brusho-vsr/state"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Context is the storage of one program account. Every slot a Mapping or
// Uint64 built on it touches belongs to owner, so programs sharing a state
// never see each other's slots.
type Context struct {
	owner vsr.Address
	state *state.State
}

func NewContext(owner vsr.Address, st *state.State) *Context {
	return &Context{owner: owner, state: st}
}

// load decodes the slot into out, leaving out untouched when the slot is empty.
func (c *Context) load(pos vsr.Bytes32, out any) error {
	return c.state.DecodeStorage(c.owner, pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, out)
	})
}

func (c *Context) store(pos vsr.Bytes32, val any) error {
	return c.state.EncodeStorage(c.owner, pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(val)
	})
}

func (c *Context) occupied(pos vsr.Bytes32) (bool, error) {
	raw, err := c.state.GetRawStorage(c.owner, pos)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func (c *Context) clear(pos vsr.Bytes32) {
	c.state.SetRawStorage(c.owner, pos, nil)
}
