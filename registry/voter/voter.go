// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voter

import (
	"github.com/holiman/uint256"

	"github.com/aitoothbrush/brusho-vsr/registry/deposit"
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Voter is the deposit ledger of one participant under a registrar.
// Slot vsr.NodeDepositEntryIndex is reserved for the node deposit.
type Voter struct {
	Authority             vsr.Address                          `json:"authority"`
	Registrar             vsr.Address                          `json:"registrar"`
	Deposits              [vsr.MaxDepositEntries]deposit.Entry `json:"deposits"`
	RewardIndex           *uint256.Int                         `json:"rewardIndex"`
	RewardClaimableAmount uint64                               `json:"rewardClaimableAmount"`
}

// AddressOf derives the voter address of an authority under a registrar.
func AddressOf(registrar, authority vsr.Address) vsr.Address {
	return vsr.DeriveAddress(registrar.Bytes(), []byte("voter"), authority.Bytes())
}

// VaultOf derives the address owning the deposit vault of a voter.
func VaultOf(voter vsr.Address) vsr.Address {
	return vsr.DeriveAddress(voter.Bytes(), []byte("vault"))
}

// New creates a voter whose reward snapshot starts at rewardIndex.
func New(authority, registrar vsr.Address, rewardIndex *uint256.Int) *Voter {
	return &Voter{
		Authority:   authority,
		Registrar:   registrar,
		RewardIndex: new(uint256.Int).Set(rewardIndex),
	}
}

// Address returns the derived address of the voter.
func (v *Voter) Address() vsr.Address {
	return AddressOf(v.Registrar, v.Authority)
}

// EntryAt returns the deposit entry at index.
func (v *Voter) EntryAt(index uint8) (*deposit.Entry, error) {
	if int(index) >= len(v.Deposits) {
		return nil, reverts.ErrOutOfBoundsDepositEntryIndex
	}
	return &v.Deposits[index], nil
}

// IsActive returns if the entry at index is active.
func (v *Voter) IsActive(index uint8) (bool, error) {
	e, err := v.EntryAt(index)
	if err != nil {
		return false, err
	}
	return e.IsActive, nil
}

// Activate opens the inactive entry at index with the lockup.
func (v *Voter) Activate(index uint8, l lockup.Lockup) error {
	e, err := v.EntryAt(index)
	if err != nil {
		return err
	}
	if e.IsActive {
		return reverts.ErrInternal
	}
	*e = deposit.New(l)
	return nil
}

// Deactivate zeroes the entry at index.
func (v *Voter) Deactivate(index uint8) error {
	e, err := v.EntryAt(index)
	if err != nil {
		return err
	}
	return e.Deactivate()
}

// Deposit adds amount to the entry at index.
func (v *Voter) Deposit(index uint8, curr int64, amount uint64) error {
	e, err := v.EntryAt(index)
	if err != nil {
		return err
	}
	return e.Deposit(curr, amount)
}

// Withdraw takes amount out of the unlocked part of the entry at index.
func (v *Voter) Withdraw(index uint8, curr int64, amount uint64) error {
	e, err := v.EntryAt(index)
	if err != nil {
		return err
	}
	return e.Withdraw(curr, amount)
}

// HasDeposits returns if any entry is active.
func (v *Voter) HasDeposits() bool {
	for i := range v.Deposits {
		if v.Deposits[i].IsActive {
			return true
		}
	}
	return false
}

// AmountDeposited returns the sum deposited over all active entries,
// which is the voter's share of the registrar's permanently locked amount.
func (v *Voter) AmountDeposited() uint64 {
	var sum uint64
	for i := range v.Deposits {
		if v.Deposits[i].IsActive {
			sum += v.Deposits[i].AmountDeposited
		}
	}
	return sum
}

// Weight sums the voting power of all active entries.
func (v *Voter) Weight(cfg *registrar.VotingConfig, curr int64) (uint64, error) {
	var sum uint64
	for i := range v.Deposits {
		if !v.Deposits[i].IsActive {
			continue
		}
		power, err := v.Deposits[i].VotingPower(cfg, curr)
		if err != nil {
			return 0, err
		}
		if sum+power < sum {
			return 0, reverts.ErrVoterWeightOverflow
		}
		sum += power
	}
	return sum, nil
}

// WeightBaseline sums the baseline weight of all active entries.
func (v *Voter) WeightBaseline(cfg *registrar.VotingConfig) (uint64, error) {
	var sum uint64
	for i := range v.Deposits {
		if !v.Deposits[i].IsActive {
			continue
		}
		w, err := cfg.BaselineVoteWeight(v.Deposits[i].AmountDeposited)
		if err != nil {
			return 0, err
		}
		if sum+w < sum {
			return 0, reverts.ErrVoterWeightOverflow
		}
		sum += w
	}
	return sum, nil
}

// Reconcile credits the reward earned since the last snapshot and moves the
// snapshot to the registrar's index. The registrar must be accrued first.
func (v *Voter) Reconcile(r *registrar.Registrar) error {
	earned, err := r.Reconcile(v.AmountDeposited(), v.RewardIndex)
	if err != nil {
		return err
	}
	claimable := v.RewardClaimableAmount + earned
	if claimable < earned {
		return reverts.ErrArithmeticOverflow
	}
	v.RewardClaimableAmount = claimable
	v.RewardIndex = new(uint256.Int).Set(r.RewardIndex)
	return nil
}

// Claim takes amount out of the claimable reward, or all of it when amount is nil.
func (v *Voter) Claim(amount *uint64) (uint64, error) {
	claimed := v.RewardClaimableAmount
	if amount != nil {
		if *amount > v.RewardClaimableAmount {
			return 0, reverts.ErrInsufficientClaimableReward
		}
		claimed = *amount
	}
	v.RewardClaimableAmount -= claimed
	return claimed, nil
}

// Copy returns a deep copy.
func (v *Voter) Copy() *Voter {
	cpy := *v
	if v.RewardIndex != nil {
		cpy.RewardIndex = new(uint256.Int).Set(v.RewardIndex)
	}
	return &cpy
}
