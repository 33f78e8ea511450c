// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposit

import (
	"github.com/holiman/uint256"

	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
)

// votingPowerLinearVesting treats a vesting lockup as a series of cliffs, one
// per remaining period, each carrying maxLocked/periodsTotal of the bonus.
//
// Cliff p (1-based, nearest first) has secsToClosestCliff + (p-1)*periodSecs
// left, capped at saturation. With q the number of cliffs below saturation
// and r the saturated rest, the seconds summed over all cliffs are
//
//	q*secsToClosestCliff + periodSecs*q*(q-1)/2 + r*saturation
//
// and the weight is maxLocked * that / (periodsTotal * saturation).
func (e *Entry) votingPowerLinearVesting(curr int64, maxLocked, saturation uint64) (uint64, error) {
	periodsLeft := e.Lockup.PeriodsLeft(curr)
	periodsTotal := e.Lockup.PeriodsTotal()
	periodSecs := e.Lockup.PeriodSecs()
	if periodsLeft == 0 {
		return 0, nil
	}

	secsLeft := e.Lockup.SecondsLeft(curr)
	fullPeriods := periodSecs * (periodsLeft - 1)
	if fullPeriods > secsLeft {
		return 0, reverts.ErrInternal
	}
	secsToClosestCliff := secsLeft - fullPeriods
	if secsToClosestCliff >= saturation {
		return maxLocked, nil
	}

	saturationPeriods := (saturation - secsToClosestCliff + periodSecs) / periodSecs
	q := min(saturationPeriods, periodsLeft)
	r := periodsLeft - q

	u := uint256.NewInt
	lockupSecs := new(uint256.Int).Mul(u(q), u(secsToClosestCliff))
	lockupSecs.Add(lockupSecs, new(uint256.Int).Mul(u(q*(q-1)/2), u(periodSecs)))
	lockupSecs.Add(lockupSecs, new(uint256.Int).Mul(u(r), u(saturation)))

	denominator := new(uint256.Int).Mul(u(periodsTotal), u(saturation))
	v := new(uint256.Int).Mul(u(maxLocked), lockupSecs)
	v.Div(v, denominator)
	if !v.IsUint64() {
		return 0, reverts.ErrArithmeticOverflow
	}
	return v.Uint64(), nil
}

// mulDiv computes a * b / c without intermediate overflow.
func mulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, reverts.ErrInternal
	}
	v := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	v.Div(v, uint256.NewInt(c))
	if !v.IsUint64() {
		return 0, reverts.ErrArithmeticOverflow
	}
	return v.Uint64(), nil
}
