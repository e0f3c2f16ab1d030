package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOfferConflict is returned when a write would violate the
	// at-most-one-active-offer-per-token invariant
	ErrOfferConflict = errors.New("an active offer already exists for this token")

	// ErrOfferNotFound is returned when a referenced offer does not exist
	ErrOfferNotFound = errors.New("offer not found")

	// ErrInvalidInput is returned for malformed or out-of-range input,
	// rejected before any state is touched
	ErrInvalidInput = errors.New("invalid input")

	// ErrCollectionNotFound is returned when a referenced collection is not recognized
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrTokenNotFound is returned when a referenced token is not indexed
	ErrTokenNotFound = errors.New("token not found")

	// ErrChainUnavailable is returned when the chain client is unreachable or timed out.
	// Idempotent reads may be retried with backoff; submissions must re-check
	// outcome before any retry.
	ErrChainUnavailable = errors.New("chain unavailable")

	// ErrBidTooLow is returned when a bid does not clear the current highest bid
	// plus the auction's price step
	ErrBidTooLow = errors.New("bid below required minimum")

	// ErrNotAuction is returned when an auction-only operation targets a
	// fixed-price or fiat offer
	ErrNotAuction = errors.New("offer is not an auction")
)

// PaymentError indicates the charge request itself failed at the gateway.
// GatewayBody carries the raw gateway response for operator triage.
type PaymentError struct {
	GatewayBody string
	Err         error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed: %v", e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// PaymentDeclined indicates the gateway processed the charge and rejected it.
// Never retried automatically.
type PaymentDeclined struct {
	PaymentID    string
	ResponseCode string
	GatewayBody  string
}

func (e *PaymentDeclined) Error() string {
	return fmt.Sprintf("payment declined: response code %s", e.ResponseCode)
}

// TransferError indicates the on-chain token transfer failed after payment
// capture. It is surfaced to the caller even when the compensating refund
// also fails.
type TransferError struct {
	CollectionID uint64
	TokenID      uint64
	Err          error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("token transfer failed for collection %d token %d: %v", e.CollectionID, e.TokenID, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
