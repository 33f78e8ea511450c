// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is a minimal fungible token ledger: mints with an authority and
// a supply, and balances keyed by (mint, owner).
package token

import (
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/builtin/solidity"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var (
	slotMints    = vsr.BytesToBytes32([]byte("token-mints"))
	slotAccounts = vsr.BytesToBytes32([]byte("token-accounts"))
)

type Mint struct {
	Authority vsr.Address `json:"authority"`
	Supply    uint64      `json:"supply"`
	Decimals  uint8       `json:"decimals"`
}

type Account struct {
	Mint   vsr.Address `json:"mint"`
	Owner  vsr.Address `json:"owner"`
	Amount uint64      `json:"amount"`
}

// AccountOf derives the token account address of an owner for a mint.
func AccountOf(mint, owner vsr.Address) vsr.Address {
	return vsr.DeriveAddress(mint.Bytes(), []byte("token-account"), owner.Bytes())
}

// Ledger keeps mints and token accounts in program storage.
type Ledger struct {
	mints    *solidity.Mapping[vsr.Address, *Mint]
	accounts *solidity.Mapping[vsr.Address, *Account]
}

func New(sctx *solidity.Context) *Ledger {
	return &Ledger{
		mints:    solidity.NewMapping[vsr.Address, *Mint](sctx, slotMints),
		accounts: solidity.NewMapping[vsr.Address, *Account](sctx, slotAccounts),
	}
}

// CreateMint registers a mint. An existing mint is left untouched.
func (l *Ledger) CreateMint(mint, authority vsr.Address, decimals uint8) error {
	exists, err := l.mints.Exists(mint)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("mint %v already exists", mint)
	}
	return l.mints.Set(mint, &Mint{Authority: authority, Decimals: decimals})
}

// GetMint returns the mint, failing with MintNotFound when absent.
func (l *Ledger) GetMint(mint vsr.Address) (*Mint, error) {
	m, err := l.mints.Get(mint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get mint")
	}
	if m == nil {
		return nil, reverts.ErrMintNotFound
	}
	return m, nil
}

// MintTo issues amount to the owner. Only the mint authority may call it.
func (l *Ledger) MintTo(mint, authority, owner vsr.Address, amount uint64) error {
	m, err := l.GetMint(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority {
		return reverts.ErrInvalidAuthority
	}
	if m.Supply+amount < m.Supply {
		return reverts.ErrArithmeticOverflow
	}
	m.Supply += amount
	if err := l.mints.Set(mint, m); err != nil {
		return err
	}
	return l.credit(mint, owner, amount)
}

// BalanceOf returns the balance of the owner, zero when it has no account.
func (l *Ledger) BalanceOf(mint, owner vsr.Address) (uint64, error) {
	acc, err := l.accounts.Get(AccountOf(mint, owner))
	if err != nil {
		return 0, errors.Wrap(err, "failed to get token account")
	}
	if acc == nil {
		return 0, nil
	}
	return acc.Amount, nil
}

// Transfer moves amount between owners of the same mint.
func (l *Ledger) Transfer(mint, from, to vsr.Address, amount uint64) error {
	if _, err := l.GetMint(mint); err != nil {
		return err
	}
	src, err := l.accounts.Get(AccountOf(mint, from))
	if err != nil {
		return errors.Wrap(err, "failed to get token account")
	}
	if src == nil {
		return reverts.ErrTokenAccountNotFound
	}
	if src.Amount < amount {
		return reverts.ErrInsufficientFunds
	}
	src.Amount -= amount
	if err := l.accounts.Set(AccountOf(mint, from), src); err != nil {
		return err
	}
	return l.credit(mint, to, amount)
}

func (l *Ledger) credit(mint, owner vsr.Address, amount uint64) error {
	key := AccountOf(mint, owner)
	acc, err := l.accounts.Get(key)
	if err != nil {
		return errors.Wrap(err, "failed to get token account")
	}
	if acc == nil {
		acc = &Account{Mint: mint, Owner: owner}
	}
	if acc.Amount+amount < acc.Amount {
		return reverts.ErrArithmeticOverflow
	}
	acc.Amount += amount
	return l.accounts.Set(key, acc)
}
