// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/aitoothbrush/brusho-vsr/breaker"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/token"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// CreateMint registers a governing token mint with the caller as its authority.
func (r *Registry) CreateMint(caller, mint vsr.Address, decimals uint8) error {
	err := r.execute("create_mint", func(t *txn) error {
		return t.ledger.CreateMint(mint, caller, decimals)
	})
	if err != nil {
		logger.Info("create mint failed", "mint", mint, "error", err)
		return err
	}
	logger.Info("created mint", "mint", mint, "authority", caller)
	return nil
}

// MintTo issues amount to the account of owner. Only the mint authority may call it.
func (r *Registry) MintTo(caller, mint, owner vsr.Address, amount uint64) error {
	err := r.execute("mint_to", func(t *txn) error {
		return t.ledger.MintTo(mint, caller, owner, amount)
	})
	if err != nil {
		logger.Info("mint failed", "mint", mint, "owner", owner, "error", err)
		return err
	}
	return nil
}

func (r *Registry) Mint(mint vsr.Address) (m *token.Mint, err error) {
	err = r.view(func(t *txn) error {
		m, err = t.ledger.GetMint(mint)
		return err
	})
	return
}

func (r *Registry) BalanceOf(mint, owner vsr.Address) (balance uint64, err error) {
	err = r.view(func(t *txn) error {
		balance, err = t.ledger.BalanceOf(mint, owner)
		return err
	})
	return
}

// RewardBreaker returns the circuit breaker guarding the reward vault of the registrar.
func (r *Registry) RewardBreaker(registrarAddr vsr.Address) (b *breaker.Breaker, err error) {
	err = r.view(func(t *txn) error {
		reg, err := t.registrars.MustGet(registrarAddr)
		if err != nil {
			return err
		}
		b, err = t.gate.Get(reg.GoverningTokenMint, registrar.RewardVaultOf(registrarAddr))
		return err
	})
	return
}
