package governance

import "errors"

var (
	// ErrAlreadyInitialized is returned when Initialize runs twice.
	ErrAlreadyInitialized = errors.New("governance: already initialized")
	// ErrNotInitialized is returned when no governance record exists.
	ErrNotInitialized = errors.New("governance: not initialized")
	// ErrProposalNotFound is returned for unknown proposal identifiers.
	ErrProposalNotFound = errors.New("governance: proposal not found")
	// ErrInsufficientTokensForProposal is returned when the proposer's
	// balance is below the proposal threshold.
	ErrInsufficientTokensForProposal = errors.New("governance: insufficient tokens to create proposal")
	// ErrProposalNotActive is returned when a vote or finalize targets a
	// proposal outside the Active status.
	ErrProposalNotActive = errors.New("governance: proposal not active")
	// ErrVotingPeriodEnded is returned for votes cast outside the voting
	// window.
	ErrVotingPeriodEnded = errors.New("governance: voting period ended")
	// ErrVotingPeriodNotEnded is returned when finalize runs before the
	// voting window closes.
	ErrVotingPeriodNotEnded = errors.New("governance: voting period not ended")
	// ErrInsufficientVotingPower is returned when the claimed voting power
	// exceeds the voter's token balance.
	ErrInsufficientVotingPower = errors.New("governance: insufficient voting power")
	// ErrAlreadyVoted is returned when a voter casts a second ballot on the
	// same proposal.
	ErrAlreadyVoted = errors.New("governance: already voted")
	// ErrProposalNotPassed is returned when execute targets a proposal that
	// did not pass, including re-execution of an executed proposal.
	ErrProposalNotPassed = errors.New("governance: proposal not passed")
	// ErrExecutionDelayNotMet is returned when execute runs before the
	// execution delay elapses.
	ErrExecutionDelayNotMet = errors.New("governance: execution delay not met")
	// ErrInvalidProposal is returned for malformed proposal arguments.
	ErrInvalidProposal = errors.New("governance: invalid proposal")
	// ErrInvalidQuorum is returned for quorum percentages above 100.
	ErrInvalidQuorum = errors.New("governance: invalid quorum percentage")
	// ErrInvalidVotingPower is returned for nil or non-positive voting power.
	ErrInvalidVotingPower = errors.New("governance: invalid voting power")

	errStateNotConfigured    = errors.New("governance: state not configured")
	errBalancesNotConfigured = errors.New("governance: balance view not configured")
	errSupplyNotConfigured   = errors.New("governance: supply view not configured")
)
