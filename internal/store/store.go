package store

import (
	"context"
	"time"

	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// OfferFilter narrows ListOffers
type OfferFilter struct {
	Network      domain.Network
	CollectionID *uint64
	TokenID      *uint64
	Seller       string
	Types        []domain.OfferType
	Statuses     []domain.OfferStatus
	MinPrice     string
	MaxPrice     string
	// TraitKey/TraitValue filter through the search index
	TraitKey   string
	TraitValue string
	Limit      int
	Offset     uint64
}

// TradeFilter narrows ListTrades
type TradeFilter struct {
	Network      domain.Network
	CollectionID *uint64
	TokenID      *uint64
	Seller       string
	Buyer        string
	Limit        int
	Offset       uint64
}

// OfferTerms carries the commercial terms applied when reactivating
// previously cancelled offers during mass listing
type OfferTerms struct {
	Type           domain.OfferType
	Price          string
	Currency       string
	BlockNumberAsk *uint64
	StartPrice     *string
	PriceStep      *string
	AuctionStatus  *domain.AuctionStatus
	StopAt         *time.Time
}

// ReactivateBatch names the cancelled offers brought back to Active in one
// mass-listing write, all under the same terms
type ReactivateBatch struct {
	IDs   []string
	Terms OfferTerms
}

// SettleOfferInput captures a settlement: the Active offer transitions to
// bought and the trade row is created in the same transaction
type SettleOfferInput struct {
	OfferID     string
	Buyer       string
	BlockNumber *uint64
	Commission  string
	Method      domain.SettlementMethod
	TradeDate   time.Time
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetOfferByID retrieves an offer by its ID, nil when absent
	GetOfferByID(ctx context.Context, offerID string) (*schema.Offer, error)
	// GetActiveOffer retrieves the Active offer for a token, nil when absent
	GetActiveOffer(ctx context.Context, network domain.Network, collectionID, tokenID uint64) (*schema.Offer, error)
	// GetActiveOfferForSeller retrieves the Active offer for a token constrained to a seller and offer type
	GetActiveOfferForSeller(ctx context.Context, network domain.Network, collectionID, tokenID uint64, seller string, offerType domain.OfferType) (*schema.Offer, error)
	// ListOffers retrieves offers matching the filter with the total count
	ListOffers(ctx context.Context, filter OfferFilter) ([]schema.Offer, uint64, error)
	// CreateOffer inserts a new offer; returns domain.ErrOfferConflict when an
	// Active offer already exists for the same token
	CreateOffer(ctx context.Context, offer *schema.Offer) error
	// TerminateOffer moves an Active offer to the given terminal status.
	// Returns (false, nil) when the offer exists but was not Active.
	TerminateOffer(ctx context.Context, offerID string, status domain.OfferStatus, blockNumber *uint64) (bool, error)
	// TerminateOffersBySeller moves every matching Active offer to the given
	// terminal status in a single set-based statement; returns rows affected
	TerminateOffersBySeller(ctx context.Context, network domain.Network, seller string, offerType domain.OfferType, status domain.OfferStatus) (int64, error)
	// SettleOffer transitions an Active offer to bought and creates the trade
	// row atomically; idempotent for a repeated settle with the same buyer
	SettleOffer(ctx context.Context, input SettleOfferInput) (*schema.Trade, error)
	// GetOffersBySellerTokens retrieves a seller's offers (any status) for the
	// given token subset
	GetOffersBySellerTokens(ctx context.Context, network domain.Network, collectionID uint64, seller string, tokenIDs []uint64, offerType domain.OfferType) ([]schema.Offer, error)
	// ApplyMassListing persists mass-listing creates and reactivations in one transaction
	ApplyMassListing(ctx context.Context, creates []*schema.Offer, reactivate ReactivateBatch) error
	// ListActiveChainOffers pages through Active non-fiat offers for
	// reconciliation, keyset-style: offers with ID greater than afterID in
	// ID order. Keyset paging stays stable while the sweep cancels rows out
	// of the active set.
	ListActiveChainOffers(ctx context.Context, limit int, afterID string) ([]schema.Offer, error)
	// ListExpiredAuctions retrieves Active auction offers whose stop_at has passed
	ListExpiredAuctions(ctx context.Context, now time.Time) ([]schema.Offer, error)

	// CreateBid appends an auction bid
	CreateBid(ctx context.Context, bid *schema.Bid) error
	// GetHighestBid retrieves the highest bid for an offer, nil when none exist
	GetHighestBid(ctx context.Context, offerID string) (*schema.Bid, error)

	// ListTrades retrieves settled trades matching the filter with the total count
	ListTrades(ctx context.Context, filter TradeFilter) ([]schema.Trade, uint64, error)

	// UpsertCollection creates or refreshes a cached collection projection
	UpsertCollection(ctx context.Context, collection *schema.Collection) error
	// GetCollection retrieves a collection by chain identity, nil when absent
	GetCollection(ctx context.Context, network domain.Network, collectionID uint64) (*schema.Collection, error)
	// SetCollectionEnabled toggles marketplace trading for a collection;
	// returns false when the collection is not known
	SetCollectionEnabled(ctx context.Context, network domain.Network, collectionID uint64, enabled bool) (bool, error)
	// SetAllowedTokens replaces the allowed-tokens expression for a collection
	SetAllowedTokens(ctx context.Context, network domain.Network, collectionID uint64, allowedTokens string) (bool, error)
	// ListCollections retrieves cached collections, optionally only enabled ones
	ListCollections(ctx context.Context, network domain.Network, enabledOnly bool) ([]schema.Collection, error)

	// UpsertToken creates or refreshes a cached token projection
	UpsertToken(ctx context.Context, token *schema.Token) error
	// GetToken retrieves a token by chain identity, nil when absent
	GetToken(ctx context.Context, network domain.Network, collectionID, tokenID uint64) (*schema.Token, error)

	// ReplaceSearchIndex regenerates the search rows for one token
	ReplaceSearchIndex(ctx context.Context, network domain.Network, collectionID, tokenID uint64, entries []schema.SearchIndexEntry) error

	// CreateAdminSession records an issued admin session token
	CreateAdminSession(ctx context.Context, session *schema.AdminSession) error

	// GetSetting retrieves a settings value, empty string when absent
	GetSetting(ctx context.Context, key string) (string, error)
	// SetSetting stores a settings value
	SetSetting(ctx context.Context, key, value string) error

	// CreateNFTTransfer records an observed token transfer; duplicates are ignored
	CreateNFTTransfer(ctx context.Context, transfer *schema.NFTTransfer) error
	// CreateMoneyTransfer records a fiat money movement
	CreateMoneyTransfer(ctx context.Context, transfer *schema.MoneyTransfer) error
	// UpdateMoneyTransferStatus promotes a money transfer's lifecycle status
	UpdateMoneyTransferStatus(ctx context.Context, id string, status schema.MoneyTransferStatus, blockNumber *uint64) error
	// ListPendingMoneyTransfers retrieves fiat transfers stuck in pending for crash recovery
	ListPendingMoneyTransfers(ctx context.Context, olderThan time.Time) ([]schema.MoneyTransfer, error)
}
