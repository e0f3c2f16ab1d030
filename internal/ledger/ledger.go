package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// Indexer regenerates search rows for a token after its offer state changes
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Indexer=MockIndexer
type Indexer interface {
	Reindex(ctx context.Context, network domain.Network, collectionID, tokenID uint64) error
}

// OpenRequest carries the terms of a new offer
type OpenRequest struct {
	Network      domain.Network
	CollectionID uint64
	TokenID      uint64
	Type         domain.OfferType
	Price        string
	Currency     string
	Seller       string
	BlockNumber  *uint64

	// Auction-only terms
	StartPrice *string
	PriceStep  *string
	StopAt     *time.Time
}

// CancelSelector names the Active offers a bulk cancel applies to
type CancelSelector struct {
	Network domain.Network
	Seller  string
	Type    domain.OfferType
	// Status is the terminal state to apply (Cancelled or RemovedByAdmin)
	Status domain.OfferStatus
}

// ReconcileResult summarizes one reconciliation pass
type ReconcileResult struct {
	Checked   int
	Cancelled int
	Resettled int
}

// OfferLedger is the sole writer of offer status transitions. It guarantees
// the at-most-one-Active invariant and idempotent re-application of chain
// events; every other component routes offer state changes through it.
type OfferLedger struct {
	store             store.Store
	indexer           Indexer
	clock             adapter.Clock
	commissionPercent int64
}

// New creates an offer ledger. commissionPercent is the platform commission
// recorded on trades, in whole percent.
func New(s store.Store, indexer Indexer, clock adapter.Clock, commissionPercent int64) *OfferLedger {
	return &OfferLedger{
		store:             s,
		indexer:           indexer,
		clock:             clock,
		commissionPercent: commissionPercent,
	}
}

func (r OpenRequest) validate() error {
	if !domain.IsValidNetwork(r.Network) {
		return fmt.Errorf("%w: unknown network %q", domain.ErrInvalidInput, r.Network)
	}
	if !domain.IsValidOfferType(r.Type) {
		return fmt.Errorf("%w: unknown offer type %q", domain.ErrInvalidInput, r.Type)
	}
	if r.CollectionID == 0 {
		return fmt.Errorf("%w: collection id must be positive", domain.ErrInvalidInput)
	}
	if r.Seller == "" {
		return fmt.Errorf("%w: seller is required", domain.ErrInvalidInput)
	}
	if _, ok := new(big.Int).SetString(r.Price, 10); !ok || r.Price == "" {
		return fmt.Errorf("%w: price must be a base-10 integer", domain.ErrInvalidInput)
	}
	if r.Type == domain.OfferTypeAuction {
		if r.StartPrice == nil || r.PriceStep == nil {
			return fmt.Errorf("%w: auction offers require start price and price step", domain.ErrInvalidInput)
		}
	}
	return nil
}

// Open creates a new Active offer. Returns domain.ErrOfferConflict when an
// Active offer already exists for the token; the check and insert share one
// statement so concurrent opens cannot both succeed.
func (l *OfferLedger) Open(ctx context.Context, req OpenRequest) (*schema.Offer, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	offer := &schema.Offer{
		ID:             schema.NewID(),
		Network:        req.Network,
		CollectionID:   req.CollectionID,
		TokenID:        req.TokenID,
		Type:           req.Type,
		AddressFrom:    domain.NormalizeAddress(req.Seller),
		Status:         domain.OfferStatusActive,
		Price:          req.Price,
		Currency:       req.Currency,
		BlockNumberAsk: req.BlockNumber,
		StartPrice:     req.StartPrice,
		PriceStep:      req.PriceStep,
		StopAt:         req.StopAt,
	}
	if req.Type == domain.OfferTypeAuction {
		status := domain.AuctionStatusActive
		offer.AuctionStatus = &status
	}

	if err := l.store.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}

	// Search indexing is best-effort: a failure here must not undo the offer,
	// the reindex can be re-run later
	if err := l.indexer.Reindex(ctx, req.Network, req.CollectionID, req.TokenID); err != nil {
		logger.WarnCtx(ctx, "failed to reindex token after offer open",
			zap.Error(err),
			zap.String("network", string(req.Network)),
			zap.Uint64("collection_id", req.CollectionID),
			zap.Uint64("token_id", req.TokenID))
	}

	return offer, nil
}

// Cancel transitions an Active offer to Cancelled. Cancelling an already
// Cancelled offer is a no-op; a Bought or RemovedByAdmin offer cannot be
// cancelled.
func (l *OfferLedger) Cancel(ctx context.Context, offerID string, blockNumber *uint64) error {
	offer, err := l.store.GetOfferByID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return domain.ErrOfferNotFound
	}

	switch offer.Status {
	case domain.OfferStatusCancelled:
		return nil
	case domain.OfferStatusActive:
		terminated, err := l.store.TerminateOffer(ctx, offerID, domain.OfferStatusCancelled, blockNumber)
		if err != nil {
			return err
		}
		if !terminated {
			// Lost a race with another transition; re-read to classify
			return l.Cancel(ctx, offerID, blockNumber)
		}
		return nil
	default:
		return fmt.Errorf("%w: offer %s is %s", domain.ErrOfferConflict, offerID, offer.Status)
	}
}

// CancelMatching applies one terminal transition to every Active offer the
// selector matches, as a single set-based statement. Returns the count
// affected; zero matches is a no-op, not an error.
func (l *OfferLedger) CancelMatching(ctx context.Context, sel CancelSelector) (int64, error) {
	if sel.Status != domain.OfferStatusCancelled && sel.Status != domain.OfferStatusRemovedByAdmin {
		return 0, fmt.Errorf("%w: %s is not a cancel status", domain.ErrInvalidInput, sel.Status)
	}
	return l.store.TerminateOffersBySeller(ctx, sel.Network, domain.NormalizeAddress(sel.Seller), sel.Type, sel.Status)
}

// Settle transitions an Active offer to Bought and records the trade, both in
// one transaction. Re-settling with the same buyer returns the recorded trade.
func (l *OfferLedger) Settle(ctx context.Context, offerID, buyer string, blockNumber *uint64, method domain.SettlementMethod) (*schema.Trade, error) {
	offer, err := l.store.GetOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrOfferNotFound
	}

	trade, err := l.store.SettleOffer(ctx, store.SettleOfferInput{
		OfferID:     offerID,
		Buyer:       domain.NormalizeAddress(buyer),
		BlockNumber: blockNumber,
		Commission:  l.commission(offer.Price),
		Method:      method,
		TradeDate:   l.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := l.indexer.Reindex(ctx, offer.Network, offer.CollectionID, offer.TokenID); err != nil {
		logger.WarnCtx(ctx, "failed to reindex token after settlement",
			zap.Error(err),
			zap.String("offer_id", offerID))
	}

	return trade, nil
}

// PlaceBid appends a bid to an Active auction offer. The bid must clear the
// current highest bid plus the auction's price step, or the start price when
// no bids exist yet.
func (l *OfferLedger) PlaceBid(ctx context.Context, offerID, bidder, amount string, blockNumber uint64) error {
	bid, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return fmt.Errorf("%w: bid amount must be a base-10 integer", domain.ErrInvalidInput)
	}

	offer, err := l.store.GetOfferByID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return domain.ErrOfferNotFound
	}
	if offer.Type != domain.OfferTypeAuction {
		return domain.ErrNotAuction
	}
	if offer.Status != domain.OfferStatusActive {
		return fmt.Errorf("%w: offer %s is %s", domain.ErrOfferConflict, offerID, offer.Status)
	}

	minimum, err := l.minimumBid(ctx, offer)
	if err != nil {
		return err
	}
	if bid.Cmp(minimum) < 0 {
		return fmt.Errorf("%w: minimum is %s", domain.ErrBidTooLow, minimum.String())
	}

	return l.store.CreateBid(ctx, &schema.Bid{
		OfferID:     offerID,
		Bidder:      bidder,
		Amount:      amount,
		BlockNumber: blockNumber,
	})
}

// minimumBid derives the lowest acceptable bid: start price when the auction
// has no bids, otherwise highest bid plus price step
func (l *OfferLedger) minimumBid(ctx context.Context, offer *schema.Offer) (*big.Int, error) {
	step := big.NewInt(0)
	if offer.PriceStep != nil {
		if v, ok := new(big.Int).SetString(*offer.PriceStep, 10); ok {
			step = v
		}
	}

	highest, err := l.store.GetHighestBid(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	if highest == nil {
		start := big.NewInt(0)
		if offer.StartPrice != nil {
			if v, ok := new(big.Int).SetString(*offer.StartPrice, 10); ok {
				start = v
			}
		}
		return start, nil
	}

	current, ok := new(big.Int).SetString(highest.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("malformed stored bid amount %q for offer %s", highest.Amount, offer.ID)
	}
	return current.Add(current, step), nil
}

// ReconcileFromChain corrects ledger state against an on-chain ownership
// snapshot. Chain state is ground truth: an Active offer whose token moved
// away from the recorded seller is cancelled, unless the token reached the
// buyer of a pending fiat settlement, in which case the settle is replayed.
// Re-running the pass over the same snapshot is idempotent.
func (l *OfferLedger) ReconcileFromChain(ctx context.Context, snapshot []domain.TokenOwnership) (ReconcileResult, error) {
	var result ReconcileResult

	pending, err := l.store.ListPendingMoneyTransfers(ctx, l.clock.Now())
	if err != nil {
		return result, err
	}
	pendingByOffer := make(map[string]*schema.MoneyTransfer, len(pending))
	for i := range pending {
		pendingByOffer[pending[i].OfferID] = &pending[i]
	}

	for _, entry := range snapshot {
		offer, err := l.store.GetActiveOffer(ctx, entry.Network, entry.CollectionID, entry.TokenID)
		if err != nil {
			return result, err
		}
		if offer == nil {
			continue
		}
		result.Checked++

		if domain.SameAddress(offer.AddressFrom, entry.Owner) {
			continue
		}

		if transfer, ok := pendingByOffer[offer.ID]; ok && domain.SameAddress(transfer.AddressFrom, entry.Owner) {
			// Token reached the fiat buyer but the crash window swallowed the
			// settle; replay it and promote the money transfer
			if _, err := l.Settle(ctx, offer.ID, entry.Owner, &entry.BlockNumber, domain.SettlementMethodFiat); err != nil {
				return result, fmt.Errorf("failed to replay fiat settlement for offer %s: %w", offer.ID, err)
			}
			if err := l.store.UpdateMoneyTransferStatus(ctx, transfer.ID, schema.MoneyTransferStatusCompleted, &entry.BlockNumber); err != nil {
				return result, err
			}
			result.Resettled++
			continue
		}

		// Out-of-band transfer: the seller no longer owns the token
		terminated, err := l.store.TerminateOffer(ctx, offer.ID, domain.OfferStatusCancelled, &entry.BlockNumber)
		if err != nil {
			return result, err
		}
		if terminated {
			result.Cancelled++
			logger.InfoCtx(ctx, "cancelled offer after out-of-band transfer",
				zap.String("offer_id", offer.ID),
				zap.String("recorded_seller", offer.AddressFrom),
				zap.String("chain_owner", entry.Owner))
		}
	}

	return result, nil
}

// ExpireAuctions terminates Active auction offers whose stop time has passed:
// auctions with bids settle to the highest bidder, auctions without bids are
// cancelled
func (l *OfferLedger) ExpireAuctions(ctx context.Context) (int, error) {
	expired, err := l.store.ListExpiredAuctions(ctx, l.clock.Now())
	if err != nil {
		return 0, err
	}

	var processed int
	for _, offer := range expired {
		highest, err := l.store.GetHighestBid(ctx, offer.ID)
		if err != nil {
			return processed, err
		}

		if highest == nil {
			if _, err := l.store.TerminateOffer(ctx, offer.ID, domain.OfferStatusCancelled, nil); err != nil {
				return processed, err
			}
		} else {
			if _, err := l.Settle(ctx, offer.ID, highest.Bidder, &highest.BlockNumber, domain.SettlementMethodOnChain); err != nil {
				// Settle conflicts mean someone else already closed it; skip
				if errors.Is(err, domain.ErrOfferConflict) {
					continue
				}
				return processed, err
			}
		}
		processed++
	}

	return processed, nil
}

// commission computes the platform commission for a price, truncating toward
// zero. Malformed prices cannot reach here because Open validates them.
func (l *OfferLedger) commission(price string) string {
	v, ok := new(big.Int).SetString(price, 10)
	if !ok {
		return "0"
	}
	v.Mul(v, big.NewInt(l.commissionPercent))
	v.Quo(v, big.NewInt(100))
	return v.String()
}
