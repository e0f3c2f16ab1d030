package adapter

import "context"

// ChargeRequest is one payment capture attempt. Amount is expressed in fiat
// cents; Reference is a caller-minted uuid used for gateway-side dedup.
type ChargeRequest struct {
	Amount    int64
	Currency  string
	Reference string
	CardToken string
	Customer  string
}

// ChargeResult carries the gateway's decision. RawBody preserves the full
// gateway payload for support triage on declines.
type ChargeResult struct {
	Approved     bool
	PaymentID    string
	ResponseCode string
	RawBody      string
}

// RefundRequest reverses a captured payment, fully or partially
type RefundRequest struct {
	PaymentID string
	Amount    int64
	Reference string
}

// PaymentGateway is the card payment collaborator. Charge is not idempotent
// at the transport level: a transport failure leaves the capture outcome
// unknown and must never be retried automatically.
//
//go:generate mockgen -source=payment.go -destination=../mocks/payment.go -package=mocks -mock_names=PaymentGateway=MockPaymentGateway
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, req RefundRequest) error
}
