// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

var (
	ErrInvalidAuthority      = New("InvalidAuthority", Authorization, "invalid authority")
	ErrInvalidRealmAuthority = New("InvalidRealmAuthority", Authorization, "invalid realm authority")

	ErrRegistrarAlreadyExists  = New("RegistrarAlreadyExists", Precondition, "registrar already exists")
	ErrRegistrarNotFound       = New("RegistrarNotFound", Precondition, "registrar not found")
	ErrVoterAlreadyExists      = New("VoterAlreadyExists", Precondition, "voter already exists")
	ErrVoterNotFound           = New("VoterNotFound", Precondition, "voter not found")
	ErrInactiveDepositEntry    = New("InactiveDepositEntry", Precondition, "deposit entry is inactive")
	ErrActiveDepositEntryIndex = New("ActiveDepositEntryIndex", Precondition, "deposit entry index is already active")
	ErrNotOrdinaryDepositEntry = New("NotOrdinaryDepositEntry", Precondition, "deposit entry is not an ordinary deposit")
	ErrNodeDepositUnreleasable = New("NodeDepositUnreleasableAtPresent", Precondition, "node deposit can not be released at present")
	ErrVaultTokenNonZero       = New("VaultTokenNonZero", Precondition, "voter vault still holds deposited tokens")
	ErrClaimableRewardNonZero  = New("ClaimableRewardNonZero", Precondition, "voter still has claimable reward")
	ErrTokenAccountNotFound    = New("TokenAccountNotFound", Precondition, "token account not found")
	ErrMintNotFound            = New("MintNotFound", Precondition, "mint not found")
	ErrInvalidVotingMint       = New("InvalidVotingMint", Precondition, "mint does not match the registrar")

	ErrOutOfBoundsDepositEntryIndex      = New("OutOfBoundsDepositEntryIndex", Argument, "deposit entry index out of bounds")
	ErrNodeDepositReservedEntryIndex     = New("NodeDepositReservedEntryIndex", Argument, "deposit entry index is reserved for node deposit")
	ErrZeroAmount                        = New("ZeroAmount", Argument, "amount must be positive")
	ErrInvalidLockupDuration             = New("InvalidLockupDuration", Argument, "lockup duration is shorter than the minimum")
	ErrInvalidLockupPeriod               = New("InvalidLockupPeriod", Argument, "lockup period count out of range")
	ErrDepositStartTooFarInFuture        = New("DepositStartTooFarInFuture", Argument, "deposit start is too far in the future")
	ErrLockupSaturationMustBePositive    = New("LockupSaturationMustBePositive", Argument, "lockup saturation must be positive")
	ErrNodeSecurityDepositMustBePositive = New("NodeSecurityDepositMustBePositive", Argument, "node security deposit must be positive")
	ErrInvalidBreakerConfig              = New("InvalidBreakerConfig", Argument, "invalid circuit breaker config")

	ErrCanNotShortenLockupDuration = New("CanNotShortenLockupDuration", Invariant, "lockup duration can not be shortened")
	ErrDuplicateNodeDeposit        = New("DuplicateNodeDeposit", Invariant, "node deposit already exists")
	ErrInsufficientLockedTokens    = New("InsufficientLockedTokens", Invariant, "insufficient locked tokens")
	ErrInsufficientUnlockedTokens  = New("InsufficientUnlockedTokens", Invariant, "insufficient unlocked tokens")
	ErrInsufficientClaimableReward = New("InsufficientClaimableReward", Invariant, "requested amount exceeds claimable reward")
	ErrVoterWeightOverflow         = New("VoterWeightOverflow", Invariant, "voter weight overflow")
	ErrArithmeticOverflow          = New("ArithmeticOverflow", Invariant, "arithmetic overflow")
	ErrInternal                    = New("InternalProgramError", Invariant, "internal program error")

	ErrInsufficientFunds       = New("InsufficientFunds", External, "insufficient funds")
	ErrCircuitBreakerTriggered = New("CircuitBreakerTriggered", External, "circuit breaker triggered")
)
