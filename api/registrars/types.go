// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registrars

import (
	"github.com/aitoothbrush/brusho-vsr/breaker"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/voter"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Registrar is the registrar with its reward vault and payout breaker.
type Registrar struct {
	Address vsr.Address `json:"address"`
	*registrar.Registrar
	RewardVault        vsr.Address      `json:"rewardVault"`
	RewardVaultBalance uint64           `json:"rewardVaultBalance"`
	Breaker            *breaker.Breaker `json:"breaker"`
}

// Voter is the stored voter with its vault balance.
type Voter struct {
	Address vsr.Address `json:"address"`
	*voter.Voter
	Vault        vsr.Address `json:"vault"`
	VaultBalance uint64      `json:"vaultBalance"`
}
