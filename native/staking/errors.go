package staking

import "errors"

var (
	// ErrAlreadyInitialized is returned when the pool already exists.
	ErrAlreadyInitialized = errors.New("staking: pool already initialized")
	// ErrNotInitialized is returned when the pool has not been created yet.
	ErrNotInitialized = errors.New("staking: pool not initialized")
	// ErrPoolInactive is returned when the pool is switched off.
	ErrPoolInactive = errors.New("staking: pool inactive")
	// ErrTierNotFound is returned for lookups against an unknown tier.
	ErrTierNotFound = errors.New("staking: tier not found")
	// ErrTierNotActive is returned when staking into a retired tier.
	ErrTierNotActive = errors.New("staking: tier not active")
	// ErrInvalidTier is returned for tier definitions that fail validation.
	ErrInvalidTier = errors.New("staking: invalid tier parameters")
	// ErrInvalidPenalty is returned for penalty rates above 100%.
	ErrInvalidPenalty = errors.New("staking: invalid penalty rate")
	// ErrTierLimitReached is returned when the tier identifier space is full.
	ErrTierLimitReached = errors.New("staking: tier limit reached")
	// ErrStakeNotFound is returned when no position exists for the user.
	ErrStakeNotFound = errors.New("staking: stake not found")
	// ErrStakeExists is returned when a position record already exists for the user.
	ErrStakeExists = errors.New("staking: stake already exists")
	// ErrStakeNotActive is returned for operations against a closed position.
	ErrStakeNotActive = errors.New("staking: stake not active")
	// ErrStakingPeriodNotComplete is returned when unstaking before the lock
	// ends without accepting the early-exit penalty.
	ErrStakingPeriodNotComplete = errors.New("staking: lock period not complete")
	// ErrNoRewardsAvailable is returned when the claimable accrual is zero.
	ErrNoRewardsAvailable = errors.New("staking: no rewards available")
	// ErrBelowMinimumStake is returned when the principal is under the tier floor.
	ErrBelowMinimumStake = errors.New("staking: amount below tier minimum")
	// ErrInvalidAmount is returned for nil or non-positive amounts.
	ErrInvalidAmount = errors.New("staking: invalid amount")
	// ErrUnauthorized is returned when the caller lacks the required authority.
	ErrUnauthorized = errors.New("staking: caller is not authorized")

	errStateNotConfigured  = errors.New("staking: state not configured")
	errLedgerNotConfigured = errors.New("staking: ledger not configured")
)
