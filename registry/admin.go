// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/aitoothbrush/brusho-vsr/breaker"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// CreateRegistrar creates the registrar of (realm, mint) with its reward vault
// guarded by a circuit breaker. The caller becomes the realm authority.
func (r *Registry) CreateRegistrar(
	caller, realm, mint vsr.Address,
	voting registrar.VotingConfig,
	deposit registrar.DepositConfig,
	payout breaker.Config,
) (vsr.Address, error) {
	addr := registrar.AddressOf(realm, mint)
	logger.Debug("creating registrar", "realm", realm, "mint", mint, "authority", caller)

	err := r.execute("create_registrar", func(t *txn) error {
		exists, err := t.registrars.Exists(addr)
		if err != nil {
			return err
		}
		if exists {
			return reverts.ErrRegistrarAlreadyExists
		}
		m, err := t.ledger.GetMint(mint)
		if err != nil {
			return err
		}
		reg, err := registrar.New(realm, caller, mint, voting, deposit)
		if err != nil {
			return err
		}
		// vote weight of the whole supply must fit
		if _, err := reg.MaxVoteWeight(mint, m.Supply); err != nil {
			return err
		}
		reg.Start(reg.Now(t.now))

		if err := t.gate.Install(mint, registrar.RewardVaultOf(addr), caller, payout); err != nil {
			return err
		}
		if err := t.registrars.SetMaxWeightRecord(addr, &registrar.MaxWeightRecord{
			Realm:              realm,
			GoverningTokenMint: mint,
		}); err != nil {
			return err
		}
		return t.saveRegistrar(reg)
	})
	if err != nil {
		logger.Info("create registrar failed", "realm", realm, "mint", mint, "error", err)
		return vsr.Address{}, err
	}
	logger.Info("created registrar", "registrar", addr)
	return addr, nil
}

// UpdateVotingConfig replaces the voting config. Existing entries keep their lockups.
func (r *Registry) UpdateVotingConfig(caller, registrarAddr vsr.Address, cfg registrar.VotingConfig) error {
	logger.Debug("updating voting config", "registrar", registrarAddr)
	err := r.execute("update_voting_config", func(t *txn) error {
		reg, err := t.registrars.MustGet(registrarAddr)
		if err != nil {
			return err
		}
		if err := authorize(reg, caller); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		m, err := t.ledger.GetMint(reg.GoverningTokenMint)
		if err != nil {
			return err
		}
		reg.VotingConfig = cfg
		if _, err := reg.MaxVoteWeight(reg.GoverningTokenMint, m.Supply); err != nil {
			return err
		}
		return t.saveRegistrar(reg)
	})
	if err != nil {
		logger.Info("update voting config failed", "registrar", registrarAddr, "error", err)
		return err
	}
	logger.Info("updated voting config", "registrar", registrarAddr)
	return nil
}

func (r *Registry) UpdateDepositConfig(caller, registrarAddr vsr.Address, cfg registrar.DepositConfig) error {
	logger.Debug("updating deposit config", "registrar", registrarAddr)
	err := r.execute("update_deposit_config", func(t *txn) error {
		reg, err := t.registrars.MustGet(registrarAddr)
		if err != nil {
			return err
		}
		if err := authorize(reg, caller); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		reg.DepositConfig = cfg
		return t.saveRegistrar(reg)
	})
	if err != nil {
		logger.Info("update deposit config failed", "registrar", registrarAddr, "error", err)
		return err
	}
	logger.Info("updated deposit config", "registrar", registrarAddr)
	return nil
}

// SetTimeOffset shifts the registrar clock. Rewards are accrued up to the
// old clock first.
func (r *Registry) SetTimeOffset(caller, registrarAddr vsr.Address, offset int64) error {
	logger.Debug("setting time offset", "registrar", registrarAddr, "offset", offset)
	err := r.execute("set_time_offset", func(t *txn) error {
		reg, _, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		if err := authorize(reg, caller); err != nil {
			return err
		}
		reg.TimeOffset = offset
		return t.saveRegistrar(reg)
	})
	if err != nil {
		logger.Info("set time offset failed", "registrar", registrarAddr, "error", err)
		return err
	}
	logger.Info("set time offset", "registrar", registrarAddr, "offset", offset)
	return nil
}

// UpdateBreaker replaces the config of the reward vault breaker. Only the
// breaker authority may call it.
func (r *Registry) UpdateBreaker(caller, registrarAddr vsr.Address, cfg breaker.Config) error {
	logger.Debug("updating breaker", "registrar", registrarAddr)
	err := r.execute("update_breaker", func(t *txn) error {
		reg, err := t.registrars.MustGet(registrarAddr)
		if err != nil {
			return err
		}
		return t.gate.Update(reg.GoverningTokenMint, registrar.RewardVaultOf(registrarAddr), caller, cfg)
	})
	if err != nil {
		logger.Info("update breaker failed", "registrar", registrarAddr, "error", err)
		return err
	}
	logger.Info("updated breaker", "registrar", registrarAddr)
	return nil
}

// UpdateMaxVoteWeight publishes the max voter weight for the current supply of mint.
func (r *Registry) UpdateMaxVoteWeight(registrarAddr, mint vsr.Address) (*registrar.MaxWeightRecord, error) {
	var rec *registrar.MaxWeightRecord
	err := r.execute("update_max_vote_weight", func(t *txn) error {
		reg, err := t.registrars.MustGet(registrarAddr)
		if err != nil {
			return err
		}
		m, err := t.ledger.GetMint(mint)
		if err != nil {
			return err
		}
		weight, err := reg.MaxVoteWeight(mint, m.Supply)
		if err != nil {
			return err
		}
		rec = &registrar.MaxWeightRecord{
			Realm:              reg.Realm,
			GoverningTokenMint: reg.GoverningTokenMint,
			MaxVoterWeight:     weight,
			ExpiryTs:           uint64(reg.Now(t.now)),
		}
		return t.registrars.SetMaxWeightRecord(registrarAddr, rec)
	})
	if err != nil {
		logger.Info("update max vote weight failed", "registrar", registrarAddr, "error", err)
		return nil, err
	}
	return rec, nil
}

// FundRewards moves amount from the caller's account into the reward vault.
func (r *Registry) FundRewards(caller, registrarAddr vsr.Address, amount uint64) error {
	err := r.execute("fund_rewards", func(t *txn) error {
		reg, err := t.registrars.MustGet(registrarAddr)
		if err != nil {
			return err
		}
		return t.ledger.Transfer(reg.GoverningTokenMint, caller, registrar.RewardVaultOf(registrarAddr), amount)
	})
	if err != nil {
		logger.Info("fund rewards failed", "registrar", registrarAddr, "error", err)
		return err
	}
	logger.Info("funded rewards", "registrar", registrarAddr, "amount", amount)
	return nil
}
