// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposit

import (
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
)

// Entry is one lockup slot of a voter.
//
// AmountDeposited is what the voter may ever take back, withdrawals reduce it.
// AmountInitiallyLocked is the vesting base, it is not touched by withdrawals
// so the per-period release stays constant.
type Entry struct {
	Lockup                lockup.Lockup `json:"lockup"`
	AmountDeposited       uint64        `json:"amountDeposited"`
	AmountInitiallyLocked uint64        `json:"amountInitiallyLocked"`
	IsActive              bool          `json:"isActive"`
}

// New returns an active empty entry with the given lockup.
func New(l lockup.Lockup) Entry {
	return Entry{Lockup: l, IsActive: true}
}

// Deactivate zeroes the entry.
func (e *Entry) Deactivate() error {
	if !e.IsActive {
		return reverts.ErrInternal
	}
	*e = Entry{}
	return nil
}

// Deposit adds amount to both the deposited amount and the vesting base. A
// vesting entry takes deposits only until its first period elapsed, a running
// one has to be relocked first so no new token counts as already vested.
func (e *Entry) Deposit(curr int64, amount uint64) error {
	if !e.IsActive {
		return reverts.ErrInternal
	}
	if e.Lockup.Kind.IsVesting() && e.Lockup.PeriodCurrent(curr) > 0 {
		return reverts.ErrInternal
	}
	initial := e.AmountInitiallyLocked + amount
	deposited := e.AmountDeposited + amount
	if initial < amount || deposited < amount {
		return reverts.ErrArithmeticOverflow
	}
	e.AmountInitiallyLocked = initial
	e.AmountDeposited = deposited
	return nil
}

// Withdraw takes amount out of the unlocked part.
func (e *Entry) Withdraw(curr int64, amount uint64) error {
	unlocked, err := e.AmountUnlocked(curr)
	if err != nil {
		return err
	}
	if amount > unlocked {
		return reverts.ErrInsufficientUnlockedTokens
	}
	e.AmountDeposited -= amount
	return nil
}

// Reduce takes amount out of both the deposited and the vesting base,
// regardless of the lock. It is used when moving principal to another slot.
func (e *Entry) Reduce(amount uint64) error {
	if !e.IsActive {
		return reverts.ErrInternal
	}
	if amount > e.AmountDeposited {
		return reverts.ErrInsufficientLockedTokens
	}
	e.AmountDeposited -= amount
	if amount > e.AmountInitiallyLocked {
		e.AmountInitiallyLocked = 0
	} else {
		e.AmountInitiallyLocked -= amount
	}
	return nil
}

// Vested returns the part of the vesting base released at curr.
func (e *Entry) Vested(curr int64) (uint64, error) {
	if !e.IsActive {
		return 0, reverts.ErrInternal
	}
	if e.Lockup.Expired(curr) {
		return e.AmountInitiallyLocked, nil
	}
	if !e.Lockup.Kind.IsVesting() {
		return 0, nil
	}
	current := e.Lockup.PeriodCurrent(curr)
	total := e.Lockup.PeriodsTotal()
	if current == 0 {
		return 0, nil
	}
	if current >= total {
		return e.AmountInitiallyLocked, nil
	}
	return mulDiv(e.AmountInitiallyLocked, current, total)
}

// AmountLocked returns the tokens still locked at curr.
func (e *Entry) AmountLocked(curr int64) (uint64, error) {
	vested, err := e.Vested(curr)
	if err != nil {
		return 0, err
	}
	return e.AmountInitiallyLocked - vested, nil
}

// AmountUnlocked returns the tokens that may be withdrawn at curr.
func (e *Entry) AmountUnlocked(curr int64) (uint64, error) {
	locked, err := e.AmountLocked(curr)
	if err != nil {
		return 0, err
	}
	if locked > e.AmountDeposited {
		return 0, nil
	}
	return e.AmountDeposited - locked, nil
}

// VotingPower returns the baseline weight of the deposit plus the bonus of its locked part.
func (e *Entry) VotingPower(cfg *registrar.VotingConfig, curr int64) (uint64, error) {
	if !e.IsActive {
		return 0, reverts.ErrInternal
	}
	baseline, err := cfg.BaselineVoteWeight(e.AmountDeposited)
	if err != nil {
		return 0, err
	}
	maxLocked, err := cfg.MaxExtraLockupVoteWeight(e.AmountInitiallyLocked)
	if err != nil {
		return 0, err
	}
	locked, err := e.VotingPowerLocked(curr, maxLocked, cfg.LockupSaturationSecs)
	if err != nil {
		return 0, err
	}
	if locked > maxLocked {
		return 0, reverts.ErrInternal
	}
	sum := baseline + locked
	if sum < baseline {
		return 0, reverts.ErrVoterWeightOverflow
	}
	return sum, nil
}

// VotingPowerLocked returns the bonus weight of the locked funds only.
func (e *Entry) VotingPowerLocked(curr int64, maxLocked, saturation uint64) (uint64, error) {
	if !e.IsActive {
		return 0, reverts.ErrInternal
	}
	if e.Lockup.Expired(curr) || maxLocked == 0 {
		return 0, nil
	}
	if e.Lockup.Kind.IsVesting() {
		return e.votingPowerLinearVesting(curr, maxLocked, saturation)
	}
	return e.votingPowerCliff(curr, maxLocked, saturation)
}

func (e *Entry) votingPowerCliff(curr int64, maxLocked, saturation uint64) (uint64, error) {
	remaining := min(e.Lockup.SecondsLeft(curr), saturation)
	return mulDiv(maxLocked, remaining, saturation)
}
