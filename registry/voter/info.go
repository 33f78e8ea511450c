// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voter

import (
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Info is a read-only projection of a voter at a point in time.
type Info struct {
	VotingPower         uint64                            `json:"votingPower"`
	VotingPowerBaseline uint64                            `json:"votingPowerBaseline"`
	RewardAmount        uint64                            `json:"rewardAmount"`
	DepositEntries      [vsr.MaxDepositEntries]*EntryInfo `json:"depositEntries"`
}

// EntryInfo describes one active deposit entry.
type EntryInfo struct {
	Lockup              lockup.Lockup `json:"lockup"`
	AmountLocked        uint64        `json:"amountLocked"`
	AmountUnlocked      uint64        `json:"amountUnlocked"`
	VotingPower         uint64        `json:"votingPower"`
	VotingPowerBaseline uint64        `json:"votingPowerBaseline"`
	Vesting             *VestingInfo  `json:"vesting"`
}

// VestingInfo tells how much a vesting entry releases per period and when the next release happens.
type VestingInfo struct {
	Rate          uint64 `json:"rate"`
	NextTimestamp uint64 `json:"nextTimestamp"`
}

// Info projects the voter at curr. The reward amount includes what would be
// credited if the registrar accrued at curr. Neither argument is modified.
func (v *Voter) Info(r *registrar.Registrar, curr int64) (*Info, error) {
	cfg := &r.VotingConfig
	info := &Info{}
	for i := range v.Deposits {
		e := &v.Deposits[i]
		if !e.IsActive {
			continue
		}
		locked, err := e.AmountLocked(curr)
		if err != nil {
			return nil, err
		}
		unlocked, err := e.AmountUnlocked(curr)
		if err != nil {
			return nil, err
		}
		power, err := e.VotingPower(cfg, curr)
		if err != nil {
			return nil, err
		}
		baseline, err := cfg.BaselineVoteWeight(e.AmountDeposited)
		if err != nil {
			return nil, err
		}
		entry := &EntryInfo{
			Lockup:              e.Lockup,
			AmountLocked:        locked,
			AmountUnlocked:      unlocked,
			VotingPower:         power,
			VotingPowerBaseline: baseline,
		}
		if e.Lockup.Kind.IsVesting() && e.Lockup.PeriodsTotal() > 0 {
			entry.Vesting = nextVesting(e.Lockup, e.AmountInitiallyLocked, curr)
		}
		info.DepositEntries[i] = entry
	}

	var err error
	if info.VotingPower, err = v.Weight(cfg, curr); err != nil {
		return nil, err
	}
	if info.VotingPowerBaseline, err = v.WeightBaseline(cfg); err != nil {
		return nil, err
	}

	projected := r.Copy()
	if err := projected.Accrue(curr); err != nil {
		return nil, err
	}
	snapshot := v.Copy()
	if err := snapshot.Reconcile(projected); err != nil {
		return nil, err
	}
	info.RewardAmount = snapshot.RewardClaimableAmount
	return info, nil
}

func nextVesting(l lockup.Lockup, initial uint64, curr int64) *VestingInfo {
	left := l.PeriodsLeft(curr)
	var pending uint64
	if left > 0 {
		pending = (left - 1) * l.PeriodSecs()
	}
	var next uint64
	if end := uint64(l.EndTs()); end > pending {
		next = end - pending
	}
	return &VestingInfo{
		Rate:          initial / l.PeriodsTotal(),
		NextTimestamp: next,
	}
}
