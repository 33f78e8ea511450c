// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/aitoothbrush/brusho-vsr/registry/events"
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/registry/voter"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// NodeDeposit locks the node security deposit of the registrar into slot 0 of
// the voter of authority. The tokens come from the depositor's account.
func (r *Registry) NodeDeposit(depositor, registrarAddr, authority vsr.Address) error {
	logger.Debug("node deposit", "registrar", registrarAddr, "voter", authority, "depositor", depositor)
	err := r.execute("node_deposit", func(t *txn) error {
		reg, curr, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		v, err := t.loadVoter(reg, authority, nil)
		if err != nil {
			return err
		}
		active, err := v.IsActive(vsr.NodeDepositEntryIndex)
		if err != nil {
			return err
		}
		if active {
			return reverts.ErrDuplicateNodeDeposit
		}

		amount := reg.DepositConfig.NodeSecurityDeposit
		if err := t.ledger.Transfer(reg.GoverningTokenMint, depositor, voter.VaultOf(v.Address()), amount); err != nil {
			return err
		}
		l, err := lockup.New(lockup.Constant, reg.DepositConfig.NodeDepositLockupDuration, curr, curr)
		if err != nil {
			return err
		}
		if err := v.Activate(vsr.NodeDepositEntryIndex, l); err != nil {
			return err
		}
		if err := v.Deposit(vsr.NodeDepositEntryIndex, curr, amount); err != nil {
			return err
		}
		if err := reg.IncreaseLocked(amount); err != nil {
			return err
		}

		if err := t.saveRegistrar(reg); err != nil {
			return err
		}
		if err := t.saveVoter(reg, v, curr); err != nil {
			return err
		}
		return t.emit(reg, curr, &events.NodeDeposit{Voter: authority, Amount: amount, Lockup: l})
	})
	if err != nil {
		logger.Info("node deposit failed", "registrar", registrarAddr, "voter", authority, "error", err)
		return err
	}
	logger.Info("node deposited", "registrar", registrarAddr, "voter", authority)
	return nil
}

// OrdinaryDeposit adds amount to an ordinary slot of the voter. An inactive
// slot is opened with the given duration. An active slot is relocked from now
// with everything it holds, provided the new duration is not shorter than the
// time its current lockup has left.
func (r *Registry) OrdinaryDeposit(
	depositor, registrarAddr, authority vsr.Address,
	index uint8,
	amount uint64,
	duration lockup.Duration,
) error {
	logger.Debug("ordinary deposit", "registrar", registrarAddr, "voter", authority, "index", index, "amount", amount, "duration", duration)
	err := r.execute("ordinary_deposit", func(t *txn) error {
		if index == vsr.NodeDepositEntryIndex {
			return reverts.ErrNodeDepositReservedEntryIndex
		}
		reg, curr, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		if duration.Cmp(reg.DepositConfig.OrdinaryDepositMinLockupDuration) < 0 {
			return reverts.ErrInvalidLockupDuration
		}
		v, err := t.loadVoter(reg, authority, nil)
		if err != nil {
			return err
		}
		e, err := v.EntryAt(index)
		if err != nil {
			return err
		}
		l, err := lockup.FromDuration(duration, curr, curr)
		if err != nil {
			return err
		}

		if amount > 0 {
			if err := t.ledger.Transfer(reg.GoverningTokenMint, depositor, voter.VaultOf(v.Address()), amount); err != nil {
				return err
			}
		}

		toDeposit := amount
		if e.IsActive {
			if !e.Lockup.Kind.IsVesting() {
				return reverts.ErrInternal
			}
			if duration.Seconds() < e.Lockup.SecondsLeft(curr) {
				return reverts.ErrCanNotShortenLockupDuration
			}
			toDeposit = e.AmountDeposited + amount
			if toDeposit < amount {
				return reverts.ErrArithmeticOverflow
			}
			if err := v.Deactivate(index); err != nil {
				return err
			}
		}
		if err := v.Activate(index, l); err != nil {
			return err
		}
		if err := v.Deposit(index, curr, toDeposit); err != nil {
			return err
		}
		if err := reg.IncreaseLocked(amount); err != nil {
			return err
		}

		if err := t.saveRegistrar(reg); err != nil {
			return err
		}
		if err := t.saveVoter(reg, v, curr); err != nil {
			return err
		}
		return t.emit(reg, curr, &events.OrdinaryDeposit{
			Voter:             authority,
			DepositEntryIndex: index,
			Amount:            amount,
			Lockup:            e.Lockup,
		})
	})
	if err != nil {
		logger.Info("ordinary deposit failed", "registrar", registrarAddr, "voter", authority, "index", index, "error", err)
		return err
	}
	logger.Info("ordinary deposited", "registrar", registrarAddr, "voter", authority, "index", index, "amount", amount)
	return nil
}

// OrdinaryReleaseDeposit moves amount from an ordinary slot into an inactive
// one. The target gets the same duration starting now. Tokens stay locked.
func (r *Registry) OrdinaryReleaseDeposit(caller, registrarAddr vsr.Address, index, target uint8, amount uint64) error {
	logger.Debug("ordinary release", "registrar", registrarAddr, "voter", caller, "index", index, "target", target, "amount", amount)
	err := r.execute("ordinary_release_deposit", func(t *txn) error {
		if amount == 0 {
			return reverts.ErrZeroAmount
		}
		if index == vsr.NodeDepositEntryIndex || target == vsr.NodeDepositEntryIndex {
			return reverts.ErrNodeDepositReservedEntryIndex
		}
		reg, curr, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		v, err := t.loadVoter(reg, caller, &caller)
		if err != nil {
			return err
		}
		src, err := v.EntryAt(index)
		if err != nil {
			return err
		}
		if !src.IsActive {
			return reverts.ErrInactiveDepositEntry
		}
		dst, err := v.EntryAt(target)
		if err != nil {
			return err
		}
		if dst.IsActive {
			return reverts.ErrActiveDepositEntryIndex
		}
		if !src.Lockup.Kind.IsVesting() {
			return reverts.ErrNotOrdinaryDepositEntry
		}

		l, err := lockup.FromDuration(src.Lockup.Duration, curr, curr)
		if err != nil {
			return err
		}
		if err := src.Reduce(amount); err != nil {
			return err
		}
		if src.AmountDeposited == 0 {
			if err := v.Deactivate(index); err != nil {
				return err
			}
		}
		if err := v.Activate(target, l); err != nil {
			return err
		}
		if err := v.Deposit(target, curr, amount); err != nil {
			return err
		}

		if err := t.saveRegistrar(reg); err != nil {
			return err
		}
		if err := t.saveVoter(reg, v, curr); err != nil {
			return err
		}
		return t.emit(reg, curr, &events.OrdinaryReleaseDeposit{
			Voter:                   caller,
			DepositEntryIndex:       index,
			TargetDepositEntryIndex: target,
			Amount:                  amount,
		})
	})
	if err != nil {
		logger.Info("ordinary release failed", "registrar", registrarAddr, "voter", caller, "index", index, "error", err)
		return err
	}
	logger.Info("ordinary released", "registrar", registrarAddr, "voter", caller, "index", index, "target", target)
	return nil
}

// NodeReleaseDeposit moves an ended node deposit into an ordinary slot which
// vests over the node lockup duration from now.
func (r *Registry) NodeReleaseDeposit(caller, registrarAddr vsr.Address, target uint8) error {
	logger.Debug("node release", "registrar", registrarAddr, "voter", caller, "target", target)
	err := r.execute("node_release_deposit", func(t *txn) error {
		if target == vsr.NodeDepositEntryIndex {
			return reverts.ErrNodeDepositReservedEntryIndex
		}
		reg, curr, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		v, err := t.loadVoter(reg, caller, &caller)
		if err != nil {
			return err
		}
		node, err := v.EntryAt(vsr.NodeDepositEntryIndex)
		if err != nil {
			return err
		}
		if !node.IsActive {
			return reverts.ErrInactiveDepositEntry
		}
		active, err := v.IsActive(target)
		if err != nil {
			return err
		}
		if active {
			return reverts.ErrActiveDepositEntryIndex
		}
		if node.Lockup.Kind != lockup.Constant {
			return reverts.ErrInternal
		}
		if !node.Lockup.Ended(curr) {
			return reverts.ErrNodeDepositUnreleasable
		}

		amount := node.AmountDeposited
		l, err := lockup.FromDuration(node.Lockup.Duration, curr, curr)
		if err != nil {
			return err
		}
		if err := v.Deactivate(vsr.NodeDepositEntryIndex); err != nil {
			return err
		}
		if err := v.Activate(target, l); err != nil {
			return err
		}
		if err := v.Deposit(target, curr, amount); err != nil {
			return err
		}

		if err := t.saveRegistrar(reg); err != nil {
			return err
		}
		if err := t.saveVoter(reg, v, curr); err != nil {
			return err
		}
		return t.emit(reg, curr, &events.NodeReleaseDeposit{
			Voter:                   caller,
			DepositEntryIndex:       vsr.NodeDepositEntryIndex,
			TargetDepositEntryIndex: target,
			Amount:                  amount,
		})
	})
	if err != nil {
		logger.Info("node release failed", "registrar", registrarAddr, "voter", caller, "error", err)
		return err
	}
	logger.Info("node released", "registrar", registrarAddr, "voter", caller, "target", target)
	return nil
}

// Withdraw sends amount of the unlocked part of a slot to the account of
// destination. An emptied slot is closed.
func (r *Registry) Withdraw(caller, registrarAddr vsr.Address, index uint8, amount uint64, destination vsr.Address) error {
	logger.Debug("withdrawing", "registrar", registrarAddr, "voter", caller, "index", index, "amount", amount)
	err := r.execute("withdraw", func(t *txn) error {
		reg, curr, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		v, err := t.loadVoter(reg, caller, &caller)
		if err != nil {
			return err
		}
		e, err := v.EntryAt(index)
		if err != nil {
			return err
		}
		if !e.IsActive {
			return reverts.ErrInactiveDepositEntry
		}
		if err := v.Withdraw(index, curr, amount); err != nil {
			return err
		}
		if err := reg.DecreaseLocked(amount); err != nil {
			return err
		}
		if e.AmountDeposited == 0 {
			if err := v.Deactivate(index); err != nil {
				return err
			}
		}
		if err := t.ledger.Transfer(reg.GoverningTokenMint, voter.VaultOf(v.Address()), destination, amount); err != nil {
			return err
		}

		if err := t.saveRegistrar(reg); err != nil {
			return err
		}
		if err := t.saveVoter(reg, v, curr); err != nil {
			return err
		}
		return t.emit(reg, curr, &events.Withdraw{Voter: caller, DepositEntryIndex: index, Amount: amount})
	})
	if err != nil {
		logger.Info("withdraw failed", "registrar", registrarAddr, "voter", caller, "index", index, "error", err)
		return err
	}
	logger.Info("withdrew", "registrar", registrarAddr, "voter", caller, "index", index, "amount", amount)
	return nil
}

// ClaimReward pays amount, or everything claimable when amount is nil, from
// the reward vault through its circuit breaker. It returns the claimed amount.
func (r *Registry) ClaimReward(caller, registrarAddr vsr.Address, amount *uint64, destination vsr.Address) (uint64, error) {
	logger.Debug("claiming reward", "registrar", registrarAddr, "voter", caller)
	var claimed uint64
	err := r.execute("claim_reward", func(t *txn) error {
		reg, curr, err := t.accrue(registrarAddr)
		if err != nil {
			return err
		}
		v, err := t.loadVoter(reg, caller, &caller)
		if err != nil {
			return err
		}
		if claimed, err = v.Claim(amount); err != nil {
			return err
		}
		vault := registrar.RewardVaultOf(registrarAddr)
		if err := t.gate.Transfer(t.now, reg.GoverningTokenMint, vault, destination, claimed); err != nil {
			return err
		}

		if err := t.saveRegistrar(reg); err != nil {
			return err
		}
		if err := t.saveVoter(reg, v, curr); err != nil {
			return err
		}
		return t.emit(reg, curr, &events.ClaimReward{Voter: caller, Amount: claimed})
	})
	if err != nil {
		logger.Info("claim reward failed", "registrar", registrarAddr, "voter", caller, "error", err)
		return 0, err
	}
	metricClaimed().Observe(int64(claimed))
	logger.Info("claimed reward", "registrar", registrarAddr, "voter", caller, "amount", claimed)
	return claimed, nil
}
