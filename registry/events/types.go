// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/voter"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Type identifies the payload of a record.
type Type uint8

const (
	TypeNodeDeposit Type = iota + 1
	TypeNodeReleaseDeposit
	TypeOrdinaryDeposit
	TypeOrdinaryReleaseDeposit
	TypeWithdraw
	TypeClaimReward
	TypeVoterInfo
)

var typeNames = map[Type]string{
	TypeNodeDeposit:            "NodeDeposit",
	TypeNodeReleaseDeposit:     "NodeReleaseDeposit",
	TypeOrdinaryDeposit:        "OrdinaryDeposit",
	TypeOrdinaryReleaseDeposit: "OrdinaryReleaseDeposit",
	TypeWithdraw:               "Withdraw",
	TypeClaimReward:            "ClaimReward",
	TypeVoterInfo:              "VoterInfo",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	for k, name := range typeNames {
		if name == string(text) {
			*t = k
			return nil
		}
	}
	return errors.Errorf("unknown event type %q", text)
}

// newPayload allocates an empty payload of the type.
func (t Type) newPayload() (Payload, error) {
	switch t {
	case TypeNodeDeposit:
		return &NodeDeposit{}, nil
	case TypeNodeReleaseDeposit:
		return &NodeReleaseDeposit{}, nil
	case TypeOrdinaryDeposit:
		return &OrdinaryDeposit{}, nil
	case TypeOrdinaryReleaseDeposit:
		return &OrdinaryReleaseDeposit{}, nil
	case TypeWithdraw:
		return &Withdraw{}, nil
	case TypeClaimReward:
		return &ClaimReward{}, nil
	case TypeVoterInfo:
		return &VoterInfo{}, nil
	}
	return nil, errors.Errorf("unknown event type %d", uint8(t))
}

// Payload is the body of an event.
type Payload interface {
	Type() Type
}

type NodeDeposit struct {
	Voter  vsr.Address   `json:"voter"`
	Amount uint64        `json:"amount"`
	Lockup lockup.Lockup `json:"lockup"`
}

type NodeReleaseDeposit struct {
	Voter                   vsr.Address `json:"voter"`
	DepositEntryIndex       uint8       `json:"depositEntryIndex"`
	TargetDepositEntryIndex uint8       `json:"targetDepositEntryIndex"`
	Amount                  uint64      `json:"amount"`
}

type OrdinaryDeposit struct {
	Voter             vsr.Address   `json:"voter"`
	DepositEntryIndex uint8         `json:"depositEntryIndex"`
	Amount            uint64        `json:"amount"`
	Lockup            lockup.Lockup `json:"lockup"`
}

type OrdinaryReleaseDeposit struct {
	Voter                   vsr.Address `json:"voter"`
	DepositEntryIndex       uint8       `json:"depositEntryIndex"`
	TargetDepositEntryIndex uint8       `json:"targetDepositEntryIndex"`
	Amount                  uint64      `json:"amount"`
}

type Withdraw struct {
	Voter             vsr.Address `json:"voter"`
	DepositEntryIndex uint8       `json:"depositEntryIndex"`
	Amount            uint64      `json:"amount"`
}

type ClaimReward struct {
	Voter  vsr.Address `json:"voter"`
	Amount uint64      `json:"amount"`
}

// VoterInfo carries a voter projection. Only active entries are listed.
type VoterInfo struct {
	Voter               vsr.Address        `json:"voter"`
	VotingPower         uint64             `json:"votingPower"`
	VotingPowerBaseline uint64             `json:"votingPowerBaseline"`
	RewardAmount        uint64             `json:"rewardAmount"`
	DepositEntries      []DepositEntryInfo `json:"depositEntries"`
}

type DepositEntryInfo struct {
	Index               uint8              `json:"index"`
	Lockup              lockup.Lockup      `json:"lockup"`
	AmountLocked        uint64             `json:"amountLocked"`
	AmountUnlocked      uint64             `json:"amountUnlocked"`
	VotingPower         uint64             `json:"votingPower"`
	VotingPowerBaseline uint64             `json:"votingPowerBaseline"`
	Vesting             *voter.VestingInfo `json:"vesting" rlp:"nil"`
}

func (*NodeDeposit) Type() Type            { return TypeNodeDeposit }
func (*NodeReleaseDeposit) Type() Type     { return TypeNodeReleaseDeposit }
func (*OrdinaryDeposit) Type() Type        { return TypeOrdinaryDeposit }
func (*OrdinaryReleaseDeposit) Type() Type { return TypeOrdinaryReleaseDeposit }
func (*Withdraw) Type() Type               { return TypeWithdraw }
func (*ClaimReward) Type() Type            { return TypeClaimReward }
func (*VoterInfo) Type() Type              { return TypeVoterInfo }

// NewVoterInfo converts a voter projection into an event payload.
func NewVoterInfo(authority vsr.Address, info *voter.Info) *VoterInfo {
	ev := &VoterInfo{
		Voter:               authority,
		VotingPower:         info.VotingPower,
		VotingPowerBaseline: info.VotingPowerBaseline,
		RewardAmount:        info.RewardAmount,
	}
	for i, e := range info.DepositEntries {
		if e == nil {
			continue
		}
		ev.DepositEntries = append(ev.DepositEntries, DepositEntryInfo{
			Index:               uint8(i),
			Lockup:              e.Lockup,
			AmountLocked:        e.AmountLocked,
			AmountUnlocked:      e.AmountUnlocked,
			VotingPower:         e.VotingPower,
			VotingPowerBaseline: e.VotingPowerBaseline,
			Vesting:             e.Vesting,
		})
	}
	return ev
}
