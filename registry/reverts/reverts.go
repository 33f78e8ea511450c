// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"github.com/pkg/errors"
)

// Category groups reverts by the kind of rule they enforce.
type Category uint8

const (
	Authorization Category = iota + 1 // caller is not the recorded authority
	Precondition                      // slot or account in the wrong lifecycle state
	Argument                          // malformed or out of range input
	Invariant                         // the operation would break a ledger invariant
	External                          // custody or payout gate refused
)

func (c Category) String() string {
	switch c {
	case Authorization:
		return "authorization"
	case Precondition:
		return "precondition"
	case Argument:
		return "argument"
	case Invariant:
		return "invariant"
	case External:
		return "external"
	}
	return "unknown"
}

type ErrRevert struct {
	code     string
	category Category
	message  string
}

func New(code string, category Category, message string) *ErrRevert {
	return &ErrRevert{
		code:     code,
		category: category,
		message:  message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Code returns the stable name of the revert.
func (e *ErrRevert) Code() string {
	return e.code
}

func (e *ErrRevert) Category() Category {
	return e.category
}

// Is matches reverts by code, so wrapped or re-created reverts compare equal.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.code == e.code
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// CategoryOf returns the category of a revert error, or zero for other errors.
func CategoryOf(err error) Category {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.category
	}
	return 0
}
