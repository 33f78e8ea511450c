// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registrar

import (
	"github.com/holiman/uint256"

	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// VotingConfig holds the vote weight factors. Factors are scaled by vsr.ScaledFactorBase.
type VotingConfig struct {
	BaselineVoteWeightScaledFactor       uint64 `json:"baselineVoteWeightScaledFactor" yaml:"baseline-vote-weight-scaled-factor"`
	MaxExtraLockupVoteWeightScaledFactor uint64 `json:"maxExtraLockupVoteWeightScaledFactor" yaml:"max-extra-lockup-vote-weight-scaled-factor"`
	LockupSaturationSecs                 uint64 `json:"lockupSaturationSecs" yaml:"lockup-saturation-secs"`
}

// Validate rejects a zero saturation.
func (c *VotingConfig) Validate() error {
	if c.LockupSaturationSecs == 0 {
		return reverts.ErrLockupSaturationMustBePositive
	}
	return nil
}

// BaselineVoteWeight returns the weight every deposited token carries.
func (c *VotingConfig) BaselineVoteWeight(amount uint64) (uint64, error) {
	return ApplyFactor(amount, c.BaselineVoteWeightScaledFactor)
}

// MaxExtraLockupVoteWeight returns the bonus weight of a fully saturated lockup.
func (c *VotingConfig) MaxExtraLockupVoteWeight(amount uint64) (uint64, error) {
	return ApplyFactor(amount, c.MaxExtraLockupVoteWeightScaledFactor)
}

// ApplyFactor computes base * factor / ScaledFactorBase.
func ApplyFactor(base, factor uint64) (uint64, error) {
	v := new(uint256.Int).Mul(uint256.NewInt(base), uint256.NewInt(factor))
	v.Div(v, uint256.NewInt(vsr.ScaledFactorBase))
	if !v.IsUint64() {
		return 0, reverts.ErrVoterWeightOverflow
	}
	return v.Uint64(), nil
}

// DepositConfig holds the deposit rules.
type DepositConfig struct {
	OrdinaryDepositMinLockupDuration lockup.Duration `json:"ordinaryDepositMinLockupDuration" yaml:"ordinary-deposit-min-lockup-duration"`
	NodeDepositLockupDuration        lockup.Duration `json:"nodeDepositLockupDuration" yaml:"node-deposit-lockup-duration"`
	NodeSecurityDeposit              uint64          `json:"nodeSecurityDeposit" yaml:"node-security-deposit"`
}

// Validate rejects a zero node security deposit and out of range durations.
func (c *DepositConfig) Validate() error {
	if c.NodeSecurityDeposit == 0 {
		return reverts.ErrNodeSecurityDepositMustBePositive
	}
	if err := c.OrdinaryDepositMinLockupDuration.Validate(); err != nil {
		return err
	}
	return c.NodeDepositLockupDuration.Validate()
}
