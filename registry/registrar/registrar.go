// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registrar

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Registrar is the configuration and reward state of one (realm, mint) pair.
type Registrar struct {
	Realm              vsr.Address `json:"realm"`
	RealmAuthority     vsr.Address `json:"realmAuthority"`
	GoverningTokenMint vsr.Address `json:"governingTokenMint"`

	VotingConfig  VotingConfig  `json:"votingConfig"`
	DepositConfig DepositConfig `json:"depositConfig"`

	TimeOffset int64 `json:"timeOffset"`

	PermanentlyLockedAmount uint64 `json:"permanentlyLockedAmount"`

	RewardIndex                       *uint256.Int `json:"rewardIndex"`
	RewardAccrualTs                   int64        `json:"rewardAccrualTs"`
	CurrentRewardAmountPerSecond      *uint256.Int `json:"currentRewardAmountPerSecond"`
	LastRewardAmountPerSecondRotateTs int64        `json:"lastRewardAmountPerSecondRotatedTs"`
	IssuedRewardAmount                uint64       `json:"issuedRewardAmount"`
}

// AddressOf derives the registrar address of a realm and mint.
func AddressOf(realm, mint vsr.Address) vsr.Address {
	return vsr.DeriveAddress(realm.Bytes(), []byte("registrar"), mint.Bytes())
}

// RewardVaultOf derives the address owning the reward vault of a registrar.
func RewardVaultOf(registrar vsr.Address) vsr.Address {
	return vsr.DeriveAddress(registrar.Bytes(), []byte("reward-vault"))
}

// New creates a registrar with a zero reward rate. The first call to Accrue strikes the rate.
func New(realm, realmAuthority, mint vsr.Address, voting VotingConfig, deposit DepositConfig) (*Registrar, error) {
	if err := voting.Validate(); err != nil {
		return nil, err
	}
	if err := deposit.Validate(); err != nil {
		return nil, err
	}
	return &Registrar{
		Realm:                        realm,
		RealmAuthority:               realmAuthority,
		GoverningTokenMint:           mint,
		VotingConfig:                 voting,
		DepositConfig:                deposit,
		RewardIndex:                  new(uint256.Int),
		CurrentRewardAmountPerSecond: new(uint256.Int),
	}, nil
}

// Address returns the derived address of the registrar.
func (r *Registrar) Address() vsr.Address {
	return AddressOf(r.Realm, r.GoverningTokenMint)
}

// Now shifts the physical clock by the administrative offset.
func (r *Registrar) Now(physical int64) int64 {
	return physical + r.TimeOffset
}

// MaxVoteWeight returns the upper bound of total voting power for the given token supply.
// Only the baseline factor is applied.
func (r *Registrar) MaxVoteWeight(mint vsr.Address, supply uint64) (uint64, error) {
	if mint != r.GoverningTokenMint {
		return 0, reverts.ErrInvalidVotingMint
	}
	return r.VotingConfig.BaselineVoteWeight(supply)
}

// IncreaseLocked adds amount to the permanently locked aggregate.
func (r *Registrar) IncreaseLocked(amount uint64) error {
	sum := r.PermanentlyLockedAmount + amount
	if sum < r.PermanentlyLockedAmount {
		return reverts.ErrArithmeticOverflow
	}
	r.PermanentlyLockedAmount = sum
	return nil
}

// DecreaseLocked subtracts amount from the permanently locked aggregate.
func (r *Registrar) DecreaseLocked(amount uint64) error {
	if amount > r.PermanentlyLockedAmount {
		return reverts.ErrInternal
	}
	r.PermanentlyLockedAmount -= amount
	return nil
}

// Copy returns a deep copy.
func (r *Registrar) Copy() *Registrar {
	cpy := *r
	cpy.RewardIndex = new(uint256.Int).Set(r.rewardIndex())
	cpy.CurrentRewardAmountPerSecond = new(uint256.Int).Set(r.rate())
	return &cpy
}

func (r *Registrar) rewardIndex() *uint256.Int {
	if r.RewardIndex == nil {
		r.RewardIndex = new(uint256.Int)
	}
	return r.RewardIndex
}

func (r *Registrar) rate() *uint256.Int {
	if r.CurrentRewardAmountPerSecond == nil {
		r.CurrentRewardAmountPerSecond = new(uint256.Int)
	}
	return r.CurrentRewardAmountPerSecond
}

type registrarRLP struct {
	Realm              vsr.Address
	RealmAuthority     vsr.Address
	GoverningTokenMint vsr.Address
	VotingConfig       VotingConfig
	DepositConfig      DepositConfig
	TimeOffset         uint64

	PermanentlyLockedAmount           uint64
	RewardIndex                       *uint256.Int
	RewardAccrualTs                   uint64
	CurrentRewardAmountPerSecond      *uint256.Int
	LastRewardAmountPerSecondRotateTs uint64
	IssuedRewardAmount                uint64
}

// EncodeRLP implements rlp.Encoder.
func (r *Registrar) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &registrarRLP{
		Realm:                             r.Realm,
		RealmAuthority:                    r.RealmAuthority,
		GoverningTokenMint:                r.GoverningTokenMint,
		VotingConfig:                      r.VotingConfig,
		DepositConfig:                     r.DepositConfig,
		TimeOffset:                        uint64(r.TimeOffset),
		PermanentlyLockedAmount:           r.PermanentlyLockedAmount,
		RewardIndex:                       r.rewardIndex(),
		RewardAccrualTs:                   uint64(r.RewardAccrualTs),
		CurrentRewardAmountPerSecond:      r.rate(),
		LastRewardAmountPerSecondRotateTs: uint64(r.LastRewardAmountPerSecondRotateTs),
		IssuedRewardAmount:                r.IssuedRewardAmount,
	})
}

// DecodeRLP implements rlp.Decoder.
func (r *Registrar) DecodeRLP(s *rlp.Stream) error {
	var obj registrarRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	*r = Registrar{
		Realm:                             obj.Realm,
		RealmAuthority:                    obj.RealmAuthority,
		GoverningTokenMint:                obj.GoverningTokenMint,
		VotingConfig:                      obj.VotingConfig,
		DepositConfig:                     obj.DepositConfig,
		TimeOffset:                        int64(obj.TimeOffset),
		PermanentlyLockedAmount:           obj.PermanentlyLockedAmount,
		RewardIndex:                       obj.RewardIndex,
		RewardAccrualTs:                   int64(obj.RewardAccrualTs),
		CurrentRewardAmountPerSecond:      obj.CurrentRewardAmountPerSecond,
		LastRewardAmountPerSecondRotateTs: int64(obj.LastRewardAmountPerSecondRotateTs),
		IssuedRewardAmount:                obj.IssuedRewardAmount,
	}
	return nil
}
