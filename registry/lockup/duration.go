// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockup

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// TimeUnit is the unit of a lockup period.
type TimeUnit uint8

const (
	Day TimeUnit = iota
	Month
)

// Seconds returns the length of the unit.
func (u TimeUnit) Seconds() uint64 {
	switch u {
	case Day:
		return vsr.SecsPerDay
	case Month:
		return vsr.SecsPerMonth
	}
	return 0
}

func (u TimeUnit) String() string {
	switch u {
	case Day:
		return "day"
	case Month:
		return "month"
	}
	return fmt.Sprintf("unit(%d)", uint8(u))
}

func (u TimeUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *TimeUnit) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "day", "days":
		*u = Day
	case "month", "months":
		*u = Month
	default:
		return errors.Errorf("unknown time unit %q", text)
	}
	return nil
}

// Duration is a lockup length as a count of periods.
type Duration struct {
	Periods uint64   `json:"periods" yaml:"periods"`
	Unit    TimeUnit `json:"unit" yaml:"unit"`
}

// Days returns a duration of n days.
func Days(n uint64) Duration {
	return Duration{Periods: n, Unit: Day}
}

// Months returns a duration of n months.
func Months(n uint64) Duration {
	return Duration{Periods: n, Unit: Month}
}

// Seconds converts the duration into seconds.
func (d Duration) Seconds() uint64 {
	return d.Unit.Seconds() * d.Periods
}

// Cmp compares durations by their length in seconds.
func (d Duration) Cmp(other Duration) int {
	a, b := d.Seconds(), other.Seconds()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Validate checks the period count and unit.
func (d Duration) Validate() error {
	if d.Unit != Day && d.Unit != Month {
		return reverts.ErrInvalidLockupPeriod
	}
	if d.Periods > MaxPeriods {
		return reverts.ErrInvalidLockupPeriod
	}
	return nil
}

func (d Duration) String() string {
	return fmt.Sprintf("%d %ss", d.Periods, d.Unit)
}

// Kind is the schedule by which a lockup releases its amount.
type Kind uint8

const (
	Daily Kind = iota
	Monthly
	Constant
)

// IsVesting returns if the kind releases the amount period by period.
func (k Kind) IsVesting() bool {
	return k == Daily || k == Monthly
}

func (k Kind) String() string {
	switch k {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	case Constant:
		return "constant"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "daily":
		*k = Daily
	case "monthly":
		*k = Monthly
	case "constant":
		*k = Constant
	default:
		return errors.Errorf("unknown lockup kind %q", text)
	}
	return nil
}
