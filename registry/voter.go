// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/aitoothbrush/brusho-vsr/registry/events"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/registry/voter"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// CreateVoter creates the voter of the caller. Its reward index starts at the
// registrar's current index, so nothing accrued before counts.
func (r *Registry) CreateVoter(caller, registrarAddr vsr.Address) (vsr.Address, error) {
	addr := voter.AddressOf(registrarAddr, caller)
	logger.Debug("creating voter", "registrar", registrarAddr, "authority", caller)

	err := r.execute("create_voter", func(t *txn) error {
		reg, curr, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		exists, err := t.voters.Exists(addr)
		if err != nil {
			return err
		}
		if exists {
			return reverts.ErrVoterAlreadyExists
		}
		if err := t.saveRegistrar(reg); err != nil {
			return err
		}
		return t.saveVoter(reg, voter.New(caller, registrarAddr, reg.RewardIndex), curr)
	})
	if err != nil {
		logger.Info("create voter failed", "registrar", registrarAddr, "authority", caller, "error", err)
		return vsr.Address{}, err
	}
	logger.Info("created voter", "voter", addr)
	return addr, nil
}

// CloseVoter removes the voter of the caller. The voter must hold no tokens
// and no unclaimed reward.
func (r *Registry) CloseVoter(caller, registrarAddr vsr.Address) error {
	logger.Debug("closing voter", "registrar", registrarAddr, "authority", caller)
	err := r.execute("close_voter", func(t *txn) error {
		reg, _, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		v, err := t.loadVoter(reg, caller, &caller)
		if err != nil {
			return err
		}
		if v.AmountDeposited() != 0 {
			return reverts.ErrVaultTokenNonZero
		}
		balance, err := t.ledger.BalanceOf(reg.GoverningTokenMint, voter.VaultOf(v.Address()))
		if err != nil {
			return err
		}
		if balance != 0 {
			return reverts.ErrVaultTokenNonZero
		}
		if v.RewardClaimableAmount != 0 {
			return reverts.ErrClaimableRewardNonZero
		}
		if err := t.saveRegistrar(reg); err != nil {
			return err
		}
		t.touchedVoters[v.Address()] = struct{}{}
		t.voters.Delete(v.Address())
		return nil
	})
	if err != nil {
		logger.Info("close voter failed", "registrar", registrarAddr, "authority", caller, "error", err)
		return err
	}
	logger.Info("closed voter", "registrar", registrarAddr, "authority", caller)
	return nil
}

// UpdateVoterWeightRecord publishes the current weight of the voter.
func (r *Registry) UpdateVoterWeightRecord(registrarAddr, authority vsr.Address) (*voter.WeightRecord, error) {
	var rec *voter.WeightRecord
	err := r.execute("update_voter_weight_record", func(t *txn) error {
		reg, err := t.registrars.MustGet(registrarAddr)
		if err != nil {
			return err
		}
		addr := voter.AddressOf(registrarAddr, authority)
		v, err := t.voters.MustGet(addr)
		if err != nil {
			return err
		}
		if err := t.refreshWeight(reg, v, reg.Now(t.now)); err != nil {
			return err
		}
		rec, err = t.voters.GetWeightRecord(addr)
		return err
	})
	if err != nil {
		logger.Info("update voter weight record failed", "registrar", registrarAddr, "authority", authority, "error", err)
		return nil, err
	}
	return rec, nil
}

// LogVoterInfo emits the projection of the voter as an event.
func (r *Registry) LogVoterInfo(registrarAddr, authority vsr.Address) (*voter.Info, error) {
	var info *voter.Info
	err := r.execute("log_voter_info", func(t *txn) error {
		reg, err := t.registrars.MustGet(registrarAddr)
		if err != nil {
			return err
		}
		v, err := t.voters.MustGet(voter.AddressOf(registrarAddr, authority))
		if err != nil {
			return err
		}
		curr := reg.Now(t.now)
		if info, err = v.Info(reg, curr); err != nil {
			return err
		}
		return t.emit(reg, curr, events.NewVoterInfo(authority, info))
	})
	if err != nil {
		logger.Info("log voter info failed", "registrar", registrarAddr, "authority", authority, "error", err)
		return nil, err
	}
	return info, nil
}

//
// Getters - no state change
//

func (r *Registry) Registrar(addr vsr.Address) (reg *registrar.Registrar, err error) {
	err = r.view(func(t *txn) error {
		reg, err = t.registrars.MustGet(addr)
		return err
	})
	return
}

func (r *Registry) MaxVoteWeightRecord(registrarAddr vsr.Address) (rec *registrar.MaxWeightRecord, err error) {
	err = r.view(func(t *txn) error {
		if rec, err = t.registrars.GetMaxWeightRecord(registrarAddr); err != nil {
			return err
		}
		if rec == nil {
			return reverts.ErrRegistrarNotFound
		}
		return nil
	})
	return
}

// Voter returns a copy of the stored voter, served from the voter cache.
func (r *Registry) Voter(registrarAddr, authority vsr.Address) (*voter.Voter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, err := r.voters.GetOrLoad(voter.AddressOf(registrarAddr, authority), func(addr vsr.Address) (*voter.Voter, error) {
		return r.newTxn().voters.MustGet(addr)
	})
	if err != nil {
		return nil, err
	}
	return v.Copy(), nil
}

func (r *Registry) VoterWeightRecord(registrarAddr, authority vsr.Address) (rec *voter.WeightRecord, err error) {
	err = r.view(func(t *txn) error {
		if rec, err = t.voters.GetWeightRecord(voter.AddressOf(registrarAddr, authority)); err != nil {
			return err
		}
		if rec == nil {
			return reverts.ErrVoterNotFound
		}
		return nil
	})
	return
}

// VoterInfo projects the voter at the registrar clock without changing anything.
func (r *Registry) VoterInfo(registrarAddr, authority vsr.Address) (*voter.Info, error) {
	reg, err := r.Registrar(registrarAddr)
	if err != nil {
		return nil, err
	}
	v, err := r.Voter(registrarAddr, authority)
	if err != nil {
		return nil, err
	}
	return v.Info(reg, reg.Now(r.clock.Now().Unix()))
}
