package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/ledger"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// Ledger is the subset of offer ledger operations the applier drives.
// All offer status transitions go through it, never through the store directly.
//
//go:generate mockgen -source=applier.go -destination=../mocks/applier.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	Open(ctx context.Context, req ledger.OpenRequest) (*schema.Offer, error)
	Cancel(ctx context.Context, offerID string, blockNumber *uint64) error
	Settle(ctx context.Context, offerID, buyer string, blockNumber *uint64, method domain.SettlementMethod) (*schema.Trade, error)
	PlaceBid(ctx context.Context, offerID, bidder, amount string, blockNumber uint64) error
}

// Applier applies normalized market events to the offer ledger. Chain events
// are delivered at least once, so every application path tolerates replays:
// a duplicate event is a no-op, never an error.
type Applier struct {
	store   store.Store
	ledger  Ledger
	chains  map[domain.Network]adapter.ChainClient
	indexer ledger.Indexer
}

// NewApplier creates an event applier
func NewApplier(s store.Store, l Ledger, chains map[domain.Network]adapter.ChainClient, indexer ledger.Indexer) *Applier {
	return &Applier{
		store:   s,
		ledger:  l,
		chains:  chains,
		indexer: indexer,
	}
}

// Apply routes a market event to its application path. It is the handler
// registered with the broker subscriber; returning an error triggers
// redelivery.
func (a *Applier) Apply(ctx context.Context, event *domain.MarketEvent) error {
	switch event.EventType {
	case domain.MarketEventTypeAsk:
		return a.applyAsk(ctx, event)
	case domain.MarketEventTypeCancel:
		return a.applyCancel(ctx, event)
	case domain.MarketEventTypeBuy:
		return a.applyBuy(ctx, event)
	case domain.MarketEventTypeBid:
		return a.applyBid(ctx, event)
	case domain.MarketEventTypeTransfer:
		return a.applyTransfer(ctx, event)
	default:
		return fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, event.EventType)
	}
}

func (a *Applier) applyAsk(ctx context.Context, event *domain.MarketEvent) error {
	_, err := a.ledger.Open(ctx, ledger.OpenRequest{
		Network:      event.Network,
		CollectionID: event.CollectionID,
		TokenID:      event.TokenID,
		Type:         domain.OfferTypeFixedPrice,
		Price:        event.Price,
		Currency:     event.Currency,
		Seller:       *event.Seller,
		BlockNumber:  &event.BlockNumber,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOfferConflict) {
			// An Active offer already exists for this token: replayed ask
			logger.InfoCtx(ctx, "skipping duplicate ask event", zap.String("token", event.TokenKey()))
			return nil
		}
		return fmt.Errorf("failed to open offer from ask event: %w", err)
	}
	return nil
}

func (a *Applier) applyCancel(ctx context.Context, event *domain.MarketEvent) error {
	offer, err := a.store.GetActiveOffer(ctx, event.Network, event.CollectionID, event.TokenID)
	if err != nil {
		return err
	}
	if offer == nil {
		// Nothing active: the cancel already applied or the ask was never seen
		logger.InfoCtx(ctx, "no active offer for cancel event", zap.String("token", event.TokenKey()))
		return nil
	}
	if !domain.SameAddress(offer.AddressFrom, *event.Seller) {
		logger.WarnCtx(ctx, "cancel event seller does not own the active offer",
			zap.String("token", event.TokenKey()),
			zap.String("offerSeller", offer.AddressFrom),
			zap.String("eventSeller", *event.Seller),
		)
		return nil
	}

	if err := a.ledger.Cancel(ctx, offer.ID, &event.BlockNumber); err != nil {
		if errors.Is(err, domain.ErrOfferConflict) {
			return nil
		}
		return fmt.Errorf("failed to cancel offer %s: %w", offer.ID, err)
	}
	return nil
}

func (a *Applier) applyBuy(ctx context.Context, event *domain.MarketEvent) error {
	offer, err := a.store.GetActiveOffer(ctx, event.Network, event.CollectionID, event.TokenID)
	if err != nil {
		return err
	}
	if offer == nil {
		logger.InfoCtx(ctx, "no active offer for buy event", zap.String("token", event.TokenKey()))
		return nil
	}

	if _, err := a.ledger.Settle(ctx, offer.ID, *event.Buyer, &event.BlockNumber, domain.SettlementMethodOnChain); err != nil {
		if errors.Is(err, domain.ErrOfferConflict) {
			return nil
		}
		return fmt.Errorf("failed to settle offer %s: %w", offer.ID, err)
	}
	return nil
}

func (a *Applier) applyBid(ctx context.Context, event *domain.MarketEvent) error {
	offer, err := a.store.GetActiveOffer(ctx, event.Network, event.CollectionID, event.TokenID)
	if err != nil {
		return err
	}
	if offer == nil {
		logger.WarnCtx(ctx, "no active offer for bid event", zap.String("token", event.TokenKey()))
		return nil
	}

	err = a.ledger.PlaceBid(ctx, offer.ID, *event.Bidder, event.Price, event.BlockNumber)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrNotAuction),
		errors.Is(err, domain.ErrOfferConflict):
		// The bid cannot apply and never will; redelivery would not help
		logger.WarnCtx(ctx, "dropping unusable bid event",
			zap.Error(err),
			zap.String("token", event.TokenKey()),
			zap.String("bidder", *event.Bidder),
		)
		return nil
	default:
		return fmt.Errorf("failed to place bid on offer %s: %w", offer.ID, err)
	}
}

// applyTransfer records the ownership movement and refreshes the cached
// chain metadata for the token. Offer corrections driven by ownership changes
// are left to the reconciler, which compares against live chain state; acting
// here would race the buy event for the same block.
func (a *Applier) applyTransfer(ctx context.Context, event *domain.MarketEvent) error {
	err := a.store.CreateNFTTransfer(ctx, &schema.NFTTransfer{
		Network:      event.Network,
		CollectionID: event.CollectionID,
		TokenID:      event.TokenID,
		AddressFrom:  *event.AddressFrom,
		AddressTo:    *event.AddressTo,
		BlockNumber:  event.BlockNumber,
	})
	if err != nil {
		return fmt.Errorf("failed to record nft transfer: %w", err)
	}

	// Metadata caching is best-effort: the audit row above is the part that
	// must not be lost
	if err := a.refreshTokenCache(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to refresh token cache after transfer",
			zap.Error(err),
			zap.String("token", event.TokenKey()),
		)
		return nil
	}

	if err := a.indexer.Reindex(ctx, event.Network, event.CollectionID, event.TokenID); err != nil {
		logger.WarnCtx(ctx, "failed to reindex token after transfer",
			zap.Error(err),
			zap.String("token", event.TokenKey()),
		)
	}
	return nil
}

func (a *Applier) refreshTokenCache(ctx context.Context, event *domain.MarketEvent) error {
	chain, ok := a.chains[event.Network]
	if !ok {
		return fmt.Errorf("no chain client for network %s", event.Network)
	}

	collection, err := a.store.GetCollection(ctx, event.Network, event.CollectionID)
	if err != nil {
		return err
	}
	if collection == nil {
		info, err := chain.CollectionInfo(ctx, event.CollectionID)
		if err != nil {
			return fmt.Errorf("failed to fetch collection info: %w", err)
		}
		cached := &schema.Collection{
			Network:      event.Network,
			CollectionID: event.CollectionID,
			Name:         info.Name,
			Description:  info.Description,
			TokenPrefix:  info.TokenPrefix,
		}
		if info.Owner != "" {
			owner := info.Owner
			cached.Owner = &owner
		}
		if len(info.Raw) > 0 {
			cached.Data = datatypes.JSON(info.Raw)
		}
		if err := a.store.UpsertCollection(ctx, cached); err != nil {
			return err
		}
	}

	info, err := chain.TokenInfo(ctx, event.CollectionID, event.TokenID)
	if err != nil {
		return fmt.Errorf("failed to fetch token info: %w", err)
	}

	token := &schema.Token{
		Network:      event.Network,
		CollectionID: event.CollectionID,
		TokenID:      event.TokenID,
	}
	if info.Owner != "" {
		owner := info.Owner
		token.Owner = &owner
	}
	if len(info.Metadata) > 0 {
		token.Data = datatypes.JSON(info.Metadata)
	}
	return a.store.UpsertToken(ctx, token)
}
