package token

import "errors"

var (
	// ErrAlreadyInitialized is returned when Initialize runs twice for a mint.
	ErrAlreadyInitialized = errors.New("token: already initialized")
	// ErrNotInitialized is returned for operations against an unknown mint.
	ErrNotInitialized = errors.New("token: not initialized")
	// ErrExceedsMaxSupply is returned when a mint would push circulating
	// supply past the supply cap.
	ErrExceedsMaxSupply = errors.New("token: amount exceeds maximum supply")
	// ErrCirculationUnderflow is returned when a burn exceeds circulating
	// supply.
	ErrCirculationUnderflow = errors.New("token: circulating supply underflow")
	// ErrUnauthorized is returned when the caller is not the token authority.
	ErrUnauthorized = errors.New("token: unauthorized")
	// ErrInvalidAmount is returned for nil or negative amounts.
	ErrInvalidAmount = errors.New("token: invalid amount")
	// ErrInvalidMetadata is returned when name or symbol violates the bounds.
	ErrInvalidMetadata = errors.New("token: invalid metadata")

	errStateNotConfigured  = errors.New("token: state not configured")
	errLedgerNotConfigured = errors.New("token: ledger not configured")
)
