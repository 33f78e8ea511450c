// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voter

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoothbrush/brusho-vsr/builtin/solidity"
	"github.com/aitoothbrush/brusho-vsr/lvldb"
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/state"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

const now = int64(1_700_000_000)

var (
	authority = vsr.BytesToAddress([]byte("voter"))
	day       = int64(vsr.SecsPerDay)
)

func newRegistrar(t *testing.T) *registrar.Registrar {
	r, err := registrar.New(
		vsr.BytesToAddress([]byte("realm")),
		vsr.BytesToAddress([]byte("realm-authority")),
		vsr.BytesToAddress([]byte("mint")),
		registrar.VotingConfig{
			BaselineVoteWeightScaledFactor:       vsr.ScaledFactorBase,
			MaxExtraLockupVoteWeightScaledFactor: vsr.ScaledFactorBase,
			LockupSaturationSecs:                 uint64(30 * day),
		},
		registrar.DepositConfig{
			OrdinaryDepositMinLockupDuration: lockup.Days(15),
			NodeDepositLockupDuration:        lockup.Months(6),
			NodeSecurityDeposit:              10_000,
		},
	)
	require.NoError(t, err)
	r.Start(now)
	return r
}

func activate(t *testing.T, v *Voter, index uint8, d lockup.Duration, amount uint64) {
	l, err := lockup.FromDuration(d, now, now)
	require.NoError(t, err)
	require.NoError(t, v.Activate(index, l))
	require.NoError(t, v.Deposit(index, now, amount))
}

func TestInitialization(t *testing.T) {
	v := New(authority, vsr.Address{1}, uint256.NewInt(5))
	for i := range v.Deposits {
		active, err := v.IsActive(uint8(i))
		assert.NoError(t, err)
		assert.False(t, active)
	}
	_, err := v.EntryAt(vsr.MaxDepositEntries)
	assert.ErrorIs(t, err, reverts.ErrOutOfBoundsDepositEntryIndex)
	_, err = v.IsActive(vsr.MaxDepositEntries)
	assert.ErrorIs(t, err, reverts.ErrOutOfBoundsDepositEntryIndex)
	assert.Equal(t, uint256.NewInt(5), v.RewardIndex)
	assert.Equal(t, AddressOf(vsr.Address{1}, authority), v.Address())
}

func TestActivateDeactivate(t *testing.T) {
	v := New(authority, vsr.Address{1}, new(uint256.Int))
	l, err := lockup.FromDuration(lockup.Days(15), now, now)
	require.NoError(t, err)

	assert.ErrorIs(t, v.Activate(vsr.MaxDepositEntries, l), reverts.ErrOutOfBoundsDepositEntryIndex)
	require.NoError(t, v.Activate(1, l))
	assert.ErrorIs(t, v.Activate(1, l), reverts.ErrInternal)

	require.NoError(t, v.Deactivate(1))
	assert.ErrorIs(t, v.Deactivate(1), reverts.ErrInternal)
	assert.False(t, v.HasDeposits())
}

func TestWeightAndAmounts(t *testing.T) {
	r := newRegistrar(t)
	v := New(authority, r.Address(), r.RewardIndex)
	activate(t, v, 1, lockup.Days(15), 1_000)
	activate(t, v, 2, lockup.Months(2), 2_000)

	assert.True(t, v.HasDeposits())
	assert.Equal(t, uint64(3_000), v.AmountDeposited())

	baseline, err := v.WeightBaseline(&r.VotingConfig)
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000), baseline)

	weight, err := v.Weight(&r.VotingConfig, now)
	require.NoError(t, err)
	assert.Greater(t, weight, baseline)

	later, err := v.Weight(&r.VotingConfig, now+100*day)
	require.NoError(t, err)
	assert.Equal(t, baseline, later)

	require.NoError(t, v.Withdraw(2, now+100*day, 2_000))
	assert.Equal(t, uint64(1_000), v.AmountDeposited())
}

func TestReconcileAndClaim(t *testing.T) {
	r := newRegistrar(t)
	v := New(authority, r.Address(), r.RewardIndex)
	activate(t, v, 1, lockup.Days(15), vsr.FullRewardPermanentlyLockedFloor)
	require.NoError(t, r.IncreaseLocked(vsr.FullRewardPermanentlyLockedFloor))

	require.NoError(t, r.Accrue(now+1_000))
	require.NoError(t, v.Reconcile(r))
	claimable := v.RewardClaimableAmount
	assert.NotZero(t, claimable)
	assert.Equal(t, r.RewardIndex, v.RewardIndex)

	// immediate repetition changes nothing
	require.NoError(t, r.Accrue(now+1_000))
	require.NoError(t, v.Reconcile(r))
	assert.Equal(t, claimable, v.RewardClaimableAmount)

	over := claimable + 1
	_, err := v.Claim(&over)
	assert.ErrorIs(t, err, reverts.ErrInsufficientClaimableReward)

	part := claimable / 2
	claimed, err := v.Claim(&part)
	require.NoError(t, err)
	assert.Equal(t, part, claimed)

	claimed, err = v.Claim(nil)
	require.NoError(t, err)
	assert.Equal(t, claimable-part, claimed)
	assert.Zero(t, v.RewardClaimableAmount)
}

func TestInfo(t *testing.T) {
	r := newRegistrar(t)
	v := New(authority, r.Address(), r.RewardIndex)
	activate(t, v, 3, lockup.Days(10), 10_000)
	require.NoError(t, r.IncreaseLocked(10_000))

	regBefore := r.Copy()
	voterBefore := v.Copy()

	info, err := v.Info(r, now+day)
	require.NoError(t, err)

	assert.Equal(t, regBefore, r)
	assert.Equal(t, voterBefore, v)

	for i, e := range info.DepositEntries {
		if i != 3 {
			assert.Nil(t, e)
		}
	}
	entry := info.DepositEntries[3]
	require.NotNil(t, entry)
	assert.Equal(t, uint64(9_000), entry.AmountLocked)
	assert.Equal(t, uint64(1_000), entry.AmountUnlocked)
	assert.Equal(t, uint64(10_000), entry.VotingPowerBaseline)
	require.NotNil(t, entry.Vesting)
	assert.Equal(t, uint64(1_000), entry.Vesting.Rate)
	assert.Equal(t, uint64(now+2*day), entry.Vesting.NextTimestamp)

	assert.Equal(t, entry.VotingPower, info.VotingPower)
	assert.Equal(t, uint64(10_000), info.VotingPowerBaseline)

	projected := r.Copy()
	require.NoError(t, projected.Accrue(now+day))
	expected, err := projected.Reconcile(10_000, v.RewardIndex)
	require.NoError(t, err)
	assert.Equal(t, expected, info.RewardAmount)
}

func TestVoterRLP(t *testing.T) {
	r := newRegistrar(t)
	v := New(authority, r.Address(), uint256.NewInt(123))
	activate(t, v, 0, lockup.Months(6), 10_000)
	v.RewardClaimableAmount = 9

	data, err := rlp.EncodeToBytes(v)
	require.NoError(t, err)
	var decoded Voter
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, v, &decoded)
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := NewService(solidity.NewContext(vsr.Address{1}, state.New(db)))

	v := New(authority, vsr.Address{2}, uint256.NewInt(1))
	addr := v.Address()

	_, err = svc.MustGet(addr)
	assert.ErrorIs(t, err, reverts.ErrVoterNotFound)

	require.NoError(t, svc.Set(addr, v))
	require.NoError(t, svc.SetWeightRecord(addr, &WeightRecord{GoverningTokenOwner: authority, VoterWeight: 5}))

	got, err := svc.MustGet(addr)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	rec, err := svc.GetWeightRecord(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), rec.VoterWeight)

	svc.Delete(addr)
	exists, err := svc.Exists(addr)
	require.NoError(t, err)
	assert.False(t, exists)
	rec, err = svc.GetWeightRecord(addr)
	require.NoError(t, err)
	assert.Nil(t, rec)
}
