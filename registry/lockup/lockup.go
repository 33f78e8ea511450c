// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockup

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
)

const (
	// MaxPeriods bounds the period count of any lockup.
	MaxPeriods uint64 = 365 * 200
	// MaxInFutureSecs bounds how far a lockup may start after now.
	MaxInFutureSecs int64 = 100 * 365 * 24 * 60 * 60
)

// Lockup is the lock schedule of a deposit entry.
type Lockup struct {
	StartTs  int64    `json:"startTs"`
	Kind     Kind     `json:"kind"`
	Duration Duration `json:"duration"`
}

// New creates a lockup of the given kind. The start must not lie further than
// MaxInFutureSecs ahead of curr, and the period count is bounded by MaxPeriods.
func New(kind Kind, duration Duration, curr, start int64) (Lockup, error) {
	if start >= curr+MaxInFutureSecs {
		return Lockup{}, reverts.ErrDepositStartTooFarInFuture
	}
	if err := duration.Validate(); err != nil {
		return Lockup{}, err
	}
	return Lockup{StartTs: start, Kind: kind, Duration: duration}, nil
}

// FromDuration creates a vesting lockup whose kind follows the duration unit,
// Daily for days and Monthly for months.
func FromDuration(duration Duration, curr, start int64) (Lockup, error) {
	kind := Daily
	if duration.Unit == Month {
		kind = Monthly
	}
	return New(kind, duration, curr, start)
}

// EndTs returns the timestamp at which the lockup ends.
func (l Lockup) EndTs() int64 {
	return l.StartTs + int64(l.Duration.Seconds())
}

// PeriodSecs returns the length of one period.
func (l Lockup) PeriodSecs() uint64 {
	return l.Duration.Unit.Seconds()
}

// PeriodsTotal returns the number of periods of the lockup.
func (l Lockup) PeriodsTotal() uint64 {
	return l.Duration.Periods
}

// SecondsLeft returns the seconds until the lockup ends.
// A Constant lockup does not run down, it always has its whole duration left.
func (l Lockup) SecondsLeft(curr int64) uint64 {
	if l.Kind == Constant {
		curr = l.StartTs
	}
	end := l.EndTs()
	if curr >= end {
		return 0
	}
	return uint64(end - curr)
}

// Expired returns if no second is left.
func (l Lockup) Expired(curr int64) bool {
	return l.SecondsLeft(curr) == 0
}

// Ended reports whether the wall clock passed the end timestamp, regardless of kind.
func (l Lockup) Ended(curr int64) bool {
	return curr >= l.EndTs()
}

// PeriodsLeft returns the number of started but not yet elapsed periods.
func (l Lockup) PeriodsLeft(curr int64) uint64 {
	periodSecs := l.PeriodSecs()
	if periodSecs == 0 {
		return 0
	}
	if curr < l.StartTs {
		return l.PeriodsTotal()
	}
	return (l.SecondsLeft(curr) + periodSecs - 1) / periodSecs
}

// PeriodCurrent returns the number of elapsed periods.
func (l Lockup) PeriodCurrent(curr int64) uint64 {
	left := l.PeriodsLeft(curr)
	if left >= l.PeriodsTotal() {
		return 0
	}
	return l.PeriodsTotal() - left
}

type lockupRLP struct {
	StartTs  uint64
	Kind     Kind
	Duration Duration
}

// EncodeRLP implements rlp.Encoder.
func (l Lockup) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &lockupRLP{
		StartTs:  uint64(l.StartTs),
		Kind:     l.Kind,
		Duration: l.Duration,
	})
}

// DecodeRLP implements rlp.Decoder.
func (l *Lockup) DecodeRLP(s *rlp.Stream) error {
	var obj lockupRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	*l = Lockup{
		StartTs:  int64(obj.StartTs),
		Kind:     obj.Kind,
		Duration: obj.Duration,
	}
	return nil
}
