// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposit

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var (
	day   = int64(vsr.SecsPerDay)
	month = int64(vsr.SecsPerMonth)
)

func newEntry(t *testing.T, kind lockup.Kind, d lockup.Duration, curr, start int64) Entry {
	l, err := lockup.New(kind, d, curr, start)
	require.NoError(t, err)
	return New(l)
}

type amounts struct {
	vested, locked, unlocked uint64
}

func checkAmounts(t *testing.T, e *Entry, curr int64, want amounts) {
	vested, err := e.Vested(curr)
	require.NoError(t, err)
	locked, err := e.AmountLocked(curr)
	require.NoError(t, err)
	unlocked, err := e.AmountUnlocked(curr)
	require.NoError(t, err)
	assert.Equal(t, want, amounts{vested, locked, unlocked}, "at %d", curr)
}

func TestDeactivate(t *testing.T) {
	e := newEntry(t, lockup.Daily, lockup.Days(2), 0, 1)
	assert.NoError(t, e.Deactivate())
	assert.Equal(t, Entry{}, e)
	assert.ErrorIs(t, e.Deactivate(), reverts.ErrInternal)
}

func TestDeposit(t *testing.T) {
	start := int64(1)
	e := newEntry(t, lockup.Daily, lockup.Days(4), 0, start)
	origin := e.Lockup

	require.NoError(t, e.Deposit(0, 10_000))
	assert.Equal(t, uint64(10_000), e.AmountDeposited)
	assert.Equal(t, uint64(10_000), e.AmountInitiallyLocked)

	require.NoError(t, e.Deposit(start+day-1, 10_000))
	assert.Equal(t, uint64(20_000), e.AmountDeposited)
	assert.Equal(t, uint64(20_000), e.AmountInitiallyLocked)
	assert.Equal(t, origin, e.Lockup)

	// a period vested, the entry must be relocked before taking more
	assert.ErrorIs(t, e.Deposit(start+day, 10_000), reverts.ErrInternal)
	assert.LessOrEqual(t, e.AmountDeposited, e.AmountInitiallyLocked)

	require.NoError(t, e.Deactivate())
	assert.ErrorIs(t, e.Deposit(start+day, 10_000), reverts.ErrInternal)
}

func TestDepositConstant(t *testing.T) {
	e := newEntry(t, lockup.Constant, lockup.Months(1), 0, 0)
	require.NoError(t, e.Deposit(0, 1_000))
	require.NoError(t, e.Deposit(2*month, 500))
	assert.Equal(t, uint64(1_500), e.AmountDeposited)
	assert.Equal(t, uint64(1_500), e.AmountInitiallyLocked)
}

func TestDailyVested(t *testing.T) {
	start := int64(1)
	e := newEntry(t, lockup.Daily, lockup.Days(2), 0, start)
	require.NoError(t, e.Deposit(start, 10_000))

	checkAmounts(t, &e, start-1, amounts{0, 10_000, 0})
	checkAmounts(t, &e, start+day-1, amounts{0, 10_000, 0})
	checkAmounts(t, &e, start+day, amounts{5_000, 5_000, 5_000})
	checkAmounts(t, &e, start+2*day-1, amounts{5_000, 5_000, 5_000})
	checkAmounts(t, &e, start+2*day, amounts{10_000, 0, 10_000})
	checkAmounts(t, &e, start+2*day+1, amounts{10_000, 0, 10_000})
}

func TestMonthlyVested(t *testing.T) {
	start := int64(1)
	e := newEntry(t, lockup.Monthly, lockup.Months(2), 0, start)
	require.NoError(t, e.Deposit(start, 10_000))

	checkAmounts(t, &e, start-1, amounts{0, 10_000, 0})
	checkAmounts(t, &e, start+month-1, amounts{0, 10_000, 0})
	checkAmounts(t, &e, start+month, amounts{5_000, 5_000, 5_000})
	checkAmounts(t, &e, start+2*month-1, amounts{5_000, 5_000, 5_000})
	checkAmounts(t, &e, start+2*month, amounts{10_000, 0, 10_000})
	checkAmounts(t, &e, start+2*month+1, amounts{10_000, 0, 10_000})
}

func TestConstantNeverVests(t *testing.T) {
	start := int64(1)
	e := newEntry(t, lockup.Constant, lockup.Months(1), 0, start)
	require.NoError(t, e.Deposit(start, 10_000))

	checkAmounts(t, &e, start-1, amounts{0, 10_000, 0})
	checkAmounts(t, &e, start+month-1, amounts{0, 10_000, 0})
	checkAmounts(t, &e, start+month+1, amounts{0, 10_000, 0})
}

func TestWithdraw(t *testing.T) {
	e := newEntry(t, lockup.Daily, lockup.Days(4), 0, 0)
	origin := e.Lockup
	require.NoError(t, e.Deposit(0, 10_000))

	at := day
	unlocked, err := e.AmountUnlocked(at)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500), unlocked)

	require.NoError(t, e.Withdraw(at, 1_000))
	assert.Equal(t, uint64(9_000), e.AmountDeposited)
	assert.Equal(t, uint64(10_000), e.AmountInitiallyLocked)
	unlocked, _ = e.AmountUnlocked(at)
	assert.Equal(t, uint64(1_500), unlocked)

	require.NoError(t, e.Withdraw(at, 1_000))
	unlocked, _ = e.AmountUnlocked(at)
	assert.Equal(t, uint64(500), unlocked)

	assert.ErrorIs(t, e.Withdraw(at, 1_000), reverts.ErrInsufficientUnlockedTokens)

	require.NoError(t, e.Withdraw(at, 500))
	assert.Equal(t, uint64(7_500), e.AmountDeposited)
	unlocked, _ = e.AmountUnlocked(at)
	assert.Zero(t, unlocked)
	assert.Equal(t, origin, e.Lockup)

	require.NoError(t, e.Deactivate())
	assert.ErrorIs(t, e.Withdraw(at, 1_000), reverts.ErrInternal)
}

func TestReduce(t *testing.T) {
	e := newEntry(t, lockup.Daily, lockup.Days(4), 0, 0)
	require.NoError(t, e.Deposit(0, 1_000))

	assert.ErrorIs(t, e.Reduce(1_001), reverts.ErrInsufficientLockedTokens)
	require.NoError(t, e.Reduce(400))
	assert.Equal(t, uint64(600), e.AmountDeposited)
	assert.Equal(t, uint64(600), e.AmountInitiallyLocked)
}

func TestFarFutureLockupStart(t *testing.T) {
	saturation := 5 * day
	start := int64(10_000_000_000)
	e := newEntry(t, lockup.Daily, lockup.Days(2), start, start)
	require.NoError(t, e.Deposit(start, 10_000))

	cfg := registrar.VotingConfig{
		BaselineVoteWeightScaledFactor:       vsr.ScaledFactorBase,
		MaxExtraLockupVoteWeightScaledFactor: vsr.ScaledFactorBase,
		LockupSaturationSecs:                 uint64(saturation),
	}

	unlocked, err := e.AmountUnlocked(100_000)
	require.NoError(t, err)
	assert.Zero(t, unlocked)

	tests := []struct {
		curr int64
		want uint64
	}{
		{100_000, 20_000},
		{start - saturation, 20_000},
		{start - saturation + day, 20_000},
		{start - saturation + day + 1, 19_999},
		// the second cliff has only 4/5th of the saturation left
		{start - saturation + 2*day, 19_000},
		{start - saturation + 2*day + 1, 18_999},
	}
	for _, tt := range tests {
		power, err := e.VotingPower(&cfg, tt.curr)
		require.NoError(t, err)
		assert.Equal(t, tt.want, power, "at %d", tt.curr)
	}
}

func TestVotingPowerCliff(t *testing.T) {
	cfg := registrar.VotingConfig{
		BaselineVoteWeightScaledFactor:       vsr.ScaledFactorBase,
		MaxExtraLockupVoteWeightScaledFactor: vsr.ScaledFactorBase,
		LockupSaturationSecs:                 uint64(12 * month),
	}
	e := newEntry(t, lockup.Constant, lockup.Months(6), 0, 0)
	require.NoError(t, e.Deposit(0, 10_000))

	// half of the saturation, and it does not decay
	for _, curr := range []int64{0, 3 * month, 7 * month} {
		power, err := e.VotingPower(&cfg, curr)
		require.NoError(t, err)
		assert.Equal(t, uint64(15_000), power)
	}

	require.NoError(t, e.Deactivate())
	_, err := e.VotingPower(&cfg, 0)
	assert.ErrorIs(t, err, reverts.ErrInternal)
}

func TestVotingPowerBaselineOnly(t *testing.T) {
	cfg := registrar.VotingConfig{
		BaselineVoteWeightScaledFactor: vsr.ScaledFactorBase,
		LockupSaturationSecs:           uint64(day),
	}
	e := newEntry(t, lockup.Daily, lockup.Days(15), 0, 0)
	require.NoError(t, e.Deposit(0, 1_000))

	power, err := e.VotingPower(&cfg, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), power)
}

func TestEntryRLP(t *testing.T) {
	e := newEntry(t, lockup.Monthly, lockup.Months(3), 100, 100)
	require.NoError(t, e.Deposit(100, 77))

	data, err := rlp.EncodeToBytes(&e)
	require.NoError(t, err)
	var decoded Entry
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, e, decoded)
}
