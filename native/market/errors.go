package market

import "errors"

var (
	// ErrAlreadyInitialized is returned when Initialize runs twice.
	ErrAlreadyInitialized = errors.New("market: already initialized")
	// ErrNotInitialized is returned when no marketplace record exists.
	ErrNotInitialized = errors.New("market: not initialized")
	// ErrModelNotFound is returned for unknown listing identifiers.
	ErrModelNotFound = errors.New("market: model not found")
	// ErrModelNotActive is returned when purchasing a delisted model.
	ErrModelNotActive = errors.New("market: model not active")
	// ErrAlreadyPurchased is returned when a buyer re-purchases a model they
	// already hold access to.
	ErrAlreadyPurchased = errors.New("market: already purchased")
	// ErrInvalidRating is returned for ratings outside [1,5].
	ErrInvalidRating = errors.New("market: invalid rating")
	// ErrNoAccessToModel is returned when rating without a purchase.
	ErrNoAccessToModel = errors.New("market: no access to model")
	// ErrAlreadyReviewed is returned when a reviewer rates a model twice.
	ErrAlreadyReviewed = errors.New("market: already reviewed")
	// ErrUnauthorized is returned when a non-creator updates a listing.
	ErrUnauthorized = errors.New("market: unauthorized")
	// ErrInvalidListing is returned for malformed listing arguments.
	ErrInvalidListing = errors.New("market: invalid listing")
	// ErrInvalidRoyalty is returned for royalty rates above 10000 bps.
	ErrInvalidRoyalty = errors.New("market: invalid royalty")

	errStateNotConfigured  = errors.New("market: state not configured")
	errLedgerNotConfigured = errors.New("market: ledger not configured")
)
