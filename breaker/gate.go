// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package breaker

import (
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/builtin/solidity"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/token"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var slotBreakers = vsr.BytesToBytes32([]byte("breakers"))

// Gate transfers tokens out of guarded accounts. Breakers are keyed by the
// token account address they guard.
type Gate struct {
	breakers *solidity.Mapping[vsr.Address, *Breaker]
	ledger   *token.Ledger
}

func NewGate(sctx *solidity.Context, ledger *token.Ledger) *Gate {
	return &Gate{
		breakers: solidity.NewMapping[vsr.Address, *Breaker](sctx, slotBreakers),
		ledger:   ledger,
	}
}

// Install puts a breaker on the account of owner for mint.
func (g *Gate) Install(mint, owner, authority vsr.Address, config Config) error {
	b, err := New(authority, config)
	if err != nil {
		return err
	}
	return g.breakers.Set(token.AccountOf(mint, owner), b)
}

// Get returns the breaker guarding the account, or nil.
func (g *Gate) Get(mint, owner vsr.Address) (*Breaker, error) {
	b, err := g.breakers.Get(token.AccountOf(mint, owner))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get breaker")
	}
	return b, nil
}

// Update replaces the config of a breaker. Only its authority may call it.
func (g *Gate) Update(mint, owner, authority vsr.Address, config Config) error {
	b, err := g.Get(mint, owner)
	if err != nil {
		return err
	}
	if b == nil {
		return reverts.ErrTokenAccountNotFound
	}
	if b.Authority != authority {
		return reverts.ErrInvalidAuthority
	}
	if err := config.Validate(); err != nil {
		return err
	}
	b.Config = config
	return g.breakers.Set(token.AccountOf(mint, owner), b)
}

// Transfer moves amount out of the guarded account of owner to destination.
// The breaker records the outflow before any token moves.
func (g *Gate) Transfer(now int64, mint, owner, destination vsr.Address, amount uint64) error {
	b, err := g.Get(mint, owner)
	if err != nil {
		return err
	}
	if b == nil {
		return reverts.ErrTokenAccountNotFound
	}
	balance, err := g.ledger.BalanceOf(mint, owner)
	if err != nil {
		return err
	}
	if err := b.Record(now, amount, balance); err != nil {
		return err
	}
	if err := g.ledger.Transfer(mint, owner, destination, amount); err != nil {
		return err
	}
	return g.breakers.Set(token.AccountOf(mint, owner), b)
}
