package fiat

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// Settler is the ledger surface the fiat flow needs
//
//go:generate mockgen -source=service.go -destination=../mocks/fiat.go -package=mocks -mock_names=Settler=MockSettler
type Settler interface {
	Settle(ctx context.Context, offerID, buyer string, blockNumber *uint64, method domain.SettlementMethod) (*schema.Trade, error)
}

// PayOfferRequest is one fiat checkout attempt against the main sale account
type PayOfferRequest struct {
	Network      domain.Network
	CollectionID uint64
	TokenID      uint64
	Buyer        string
	CardToken    string
	Email        string
}

// Service is where fiat money and token custody meet. The charge, the chain
// transfer and the ledger settle cannot share a transaction, so ordering is
// fixed (charge, then transfer, then settle) and the refund is the only
// compensation: money is never kept without a successful token transfer, and
// no token moves without prior payment capture.
type Service struct {
	store       store.Store
	ledger      Settler
	gateway     adapter.PaymentGateway
	chains      map[domain.Network]adapter.ChainClient
	mainAccount string
}

// New creates the fiat settlement service. mainAccount is the custody
// address whose fiat offers are payable.
func New(s store.Store, ledger Settler, gateway adapter.PaymentGateway, chains map[domain.Network]adapter.ChainClient, mainAccount string) *Service {
	return &Service{
		store:       s,
		ledger:      ledger,
		gateway:     gateway,
		chains:      chains,
		mainAccount: domain.NormalizeAddress(mainAccount),
	}
}

// PayOffer charges the buyer's card for the token's Active fiat offer,
// transfers the token from the main account and settles the offer.
//
// A money_transfers row is written pending before the chain transfer and
// promoted after settlement, so a crash in between leaves a visible pending
// row the reconciler replays.
func (s *Service) PayOffer(ctx context.Context, req PayOfferRequest) (*schema.Trade, error) {
	if req.Buyer == "" || req.CardToken == "" {
		return nil, fmt.Errorf("%w: buyer and card token are required", domain.ErrInvalidInput)
	}
	buyerAddr, err := domain.ParseAddress(req.Buyer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	req.Buyer = buyerAddr.Value

	chain, ok := s.chains[req.Network]
	if !ok {
		return nil, fmt.Errorf("%w: no chain client for network %q", domain.ErrChainUnavailable, req.Network)
	}

	offer, err := s.store.GetActiveOfferForSeller(ctx, req.Network, req.CollectionID, req.TokenID, s.mainAccount, domain.OfferTypeFiat)
	if err != nil {
		return nil, fmt.Errorf("failed to look up fiat offer: %w", err)
	}
	if offer == nil {
		return nil, domain.ErrOfferNotFound
	}

	// offer.Price is fiat cents (decimal price scaled x100 at listing time)
	amount, err := strconv.ParseInt(offer.Price, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("offer %s carries a non-integer fiat price %q: %w", offer.ID, offer.Price, err)
	}

	result, err := s.gateway.Charge(ctx, adapter.ChargeRequest{
		Amount:    amount,
		Currency:  offer.Currency,
		Reference: uuid.NewString(),
		CardToken: req.CardToken,
		Customer:  req.Email,
	})
	if err != nil {
		return nil, err
	}
	if !result.Approved {
		return nil, &domain.PaymentDeclined{
			PaymentID:    result.PaymentID,
			ResponseCode: result.ResponseCode,
			GatewayBody:  result.RawBody,
		}
	}

	transfer := &schema.MoneyTransfer{
		ID:          schema.NewID(),
		PaymentID:   result.PaymentID,
		OfferID:     offer.ID,
		Amount:      offer.Price,
		Currency:    offer.Currency,
		AddressFrom: req.Buyer,
		AddressTo:   s.mainAccount,
		Status:      schema.MoneyTransferStatusPending,
	}
	if err := s.store.CreateMoneyTransfer(ctx, transfer); err != nil {
		// Money is captured but we cannot record it; refund and bail out
		// before touching token custody.
		s.refund(ctx, result.PaymentID, amount, offer.ID)
		return nil, fmt.Errorf("failed to record money transfer: %w", err)
	}

	blockNumber, err := chain.TransferToken(ctx, req.CollectionID, req.TokenID, req.Buyer)
	if err != nil {
		blockNumber, err = s.resolveTransferOutcome(ctx, chain, req, err)
	}
	if err != nil {
		if s.refund(ctx, result.PaymentID, amount, offer.ID) {
			if mtErr := s.store.UpdateMoneyTransferStatus(ctx, transfer.ID, schema.MoneyTransferStatusRefunded, nil); mtErr != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("failed to mark money transfer refunded: %w", mtErr),
					zap.String("moneyTransferID", transfer.ID))
			}
		}
		return nil, &domain.TransferError{
			CollectionID: req.CollectionID,
			TokenID:      req.TokenID,
			Err:          err,
		}
	}

	trade, err := s.ledger.Settle(ctx, offer.ID, req.Buyer, &blockNumber, domain.SettlementMethodFiat)
	if err != nil {
		// Token and money both moved; the pending money_transfers row is the
		// recovery handle and the reconciler replays the settle.
		return nil, fmt.Errorf("failed to settle offer %s after transfer: %w", offer.ID, err)
	}

	if err := s.store.UpdateMoneyTransferStatus(ctx, transfer.ID, schema.MoneyTransferStatusCompleted, &blockNumber); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to mark money transfer completed: %w", err),
			zap.String("moneyTransferID", transfer.ID))
	}

	logger.InfoCtx(ctx, "Fiat offer settled",
		zap.String("offerID", offer.ID),
		zap.String("tradeID", trade.ID),
		zap.String("buyer", req.Buyer),
		zap.Uint64("blockNumber", blockNumber))

	return trade, nil
}

// resolveTransferOutcome decides what a failed TransferToken call actually
// means. A timeout has an unknown outcome, so chain ownership is re-queried
// before treating it as a failure.
func (s *Service) resolveTransferOutcome(ctx context.Context, chain adapter.ChainClient, req PayOfferRequest, transferErr error) (uint64, error) {
	if !errors.Is(transferErr, context.DeadlineExceeded) && !errors.Is(transferErr, context.Canceled) {
		return 0, transferErr
	}

	owner, err := chain.OwnerOf(ctx, req.CollectionID, req.TokenID)
	if err != nil {
		logger.WarnCtx(ctx, "Could not verify ownership after transfer timeout",
			zap.Uint64("collectionID", req.CollectionID),
			zap.Uint64("tokenID", req.TokenID),
			zap.Error(err))
		return 0, transferErr
	}
	if !domain.SameAddress(owner, req.Buyer) {
		return 0, transferErr
	}

	// The transfer landed despite the timeout. The inclusion block is not
	// recoverable from here; the current height is close enough for audit.
	height, err := chain.BlockNumber(ctx)
	if err != nil {
		height = 0
	}

	logger.InfoCtx(ctx, "Transfer confirmed by ownership re-query after timeout",
		zap.Uint64("collectionID", req.CollectionID),
		zap.Uint64("tokenID", req.TokenID),
		zap.String("owner", owner))

	return height, nil
}

// refund issues exactly one compensation attempt for a captured payment.
// The refund amount is price/100: the gateway's refund endpoint takes major
// currency units while charges take cents. This asymmetry is a hard external
// contract; changing it double-refunds or under-refunds real money.
//
// A refund failure is logged, never re-thrown: the payment system is the
// source of truth for money movement and a failed refund must not mask the
// transfer failure that triggered it.
func (s *Service) refund(ctx context.Context, paymentID string, amount int64, offerID string) bool {
	refundAmount := amount / domain.FIAT_CENTS_FACTOR

	err := s.gateway.Refund(ctx, adapter.RefundRequest{
		PaymentID: paymentID,
		Amount:    refundAmount,
		Reference: uuid.NewString(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("refund failed for payment %s: %w", paymentID, err),
			zap.String("offerID", offerID),
			zap.Int64("chargedAmount", amount),
			zap.Int64("refundAmount", refundAmount))
		return false
	}

	logger.InfoCtx(ctx, "Payment refunded",
		zap.String("paymentID", paymentID),
		zap.String("offerID", offerID),
		zap.Int64("refundAmount", refundAmount))
	return true
}
