// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registrar

import (
	"github.com/holiman/uint256"

	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var (
	expScale    = uint256.NewInt(vsr.ExpScale)
	rewardFloor = uint256.NewInt(vsr.FullRewardPermanentlyLockedFloor)
	secsPerYear = uint256.NewInt(vsr.SecsPerYear)
)

// Accrue brings the reward index up to now and re-strikes the emission rate
// once a rotation period has passed.
func (r *Registrar) Accrue(now int64) error {
	if err := r.advance(now); err != nil {
		return err
	}
	r.rotate(now)
	return nil
}

// advance moves the global reward index and the issued amount forward by the
// time elapsed since the last accrual.
func (r *Registrar) advance(now int64) error {
	if now <= r.RewardAccrualTs {
		return nil
	}
	elapsed := uint256.NewInt(uint64(now - r.RewardAccrualTs))
	emitted := new(uint256.Int).Mul(r.rate(), elapsed)

	denominator := uint256.NewInt(r.PermanentlyLockedAmount)
	if denominator.Lt(rewardFloor) {
		denominator = rewardFloor
	}
	delta := new(uint256.Int).Div(emitted, denominator)
	if _, overflow := r.rewardIndex().AddOverflow(r.rewardIndex(), delta); overflow {
		return reverts.ErrArithmeticOverflow
	}

	issued := new(uint256.Int).Div(emitted, expScale)
	issued.Add(issued, uint256.NewInt(r.IssuedRewardAmount))
	if !issued.IsUint64() {
		return reverts.ErrArithmeticOverflow
	}
	r.IssuedRewardAmount = issued.Uint64()
	r.RewardAccrualTs = now
	return nil
}

// Start opens the reward clock at now and strikes the first emission rate.
func (r *Registrar) Start(now int64) {
	r.RewardAccrualTs = now
	r.strike(now)
}

func (r *Registrar) rotate(now int64) {
	if now-r.LastRewardAmountPerSecondRotateTs < int64(vsr.RewardRotationPeriod) {
		return
	}
	r.strike(now)
}

// strike recomputes the per-second rate from the unissued pool.
func (r *Registrar) strike(now int64) {
	var remaining uint64
	if vsr.TotalRewardAmount > r.IssuedRewardAmount {
		remaining = vsr.TotalRewardAmount - r.IssuedRewardAmount
	}
	rate := uint256.NewInt(remaining * vsr.AnnualRewardRatePercent / 100)
	rate.Mul(rate, expScale)
	rate.Div(rate, secsPerYear)

	r.CurrentRewardAmountPerSecond = rate
	r.LastRewardAmountPerSecondRotateTs = now
}

// Reconcile returns the reward a stake earned between voterIndex and the
// current global index.
func (r *Registrar) Reconcile(stake uint64, voterIndex *uint256.Int) (uint64, error) {
	if voterIndex == nil {
		voterIndex = new(uint256.Int)
	}
	if r.rewardIndex().Lt(voterIndex) {
		return 0, reverts.ErrInternal
	}
	delta := new(uint256.Int).Sub(r.rewardIndex(), voterIndex)
	reward, overflow := new(uint256.Int).MulOverflow(delta, uint256.NewInt(stake))
	if overflow {
		return 0, reverts.ErrArithmeticOverflow
	}
	reward.Div(reward, expScale)
	if !reward.IsUint64() {
		return 0, reverts.ErrArithmeticOverflow
	}
	return reward.Uint64(), nil
}
