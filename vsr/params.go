// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vsr

// Time constants.
const (
	SecsPerDay   uint64 = 86_400
	SecsPerMonth uint64 = 365 * SecsPerDay / 12
	SecsPerYear  uint64 = 365 * SecsPerDay
)

// Reward emission constants. Amounts are in native units (6 decimals).
const (
	ExpScale uint64 = 1_000_000_000_000_000_000

	TotalRewardAmount                uint64 = 770_000_000_000_000 // 770M
	FullRewardPermanentlyLockedFloor uint64 = 195_000_000_000_000 // 195M
	AnnualRewardRatePercent          uint64 = 12
	RewardRotationPeriod             uint64 = SecsPerYear / 2
)

// Vote weight factors are scaled by ScaledFactorBase, 1e9 means 1x.
const ScaledFactorBase uint64 = 1_000_000_000

// Deposit entry layout of a voter.
const (
	MaxDepositEntries     = 10
	NodeDepositEntryIndex = 0
)
