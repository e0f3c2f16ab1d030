package schema

import (
	"time"

	"github.com/gallerium/marketplace-v2/internal/domain"
)

// Offer represents the offers table - a seller's standing intent to sell a
// specific token. Fixed-price, auction, and fiat sales share one row shape;
// auction-only columns are nil for the other variants and application code
// branches on Type, not on field-nullness.
//
// Rows are mutated in place as status transitions and never deleted, so the
// table doubles as the audit trail. A partial unique index guarantees at most
// one Active offer per (network, collection_id, token_id).
type Offer struct {
	// ID is an opaque ULID assigned at creation
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Network identifies the blockchain network
	Network domain.Network `gorm:"column:network;not null;type:text;uniqueIndex:idx_offers_one_active,priority:1,where:status = 'active'"`
	// CollectionID is the chain collection identifier
	CollectionID uint64 `gorm:"column:collection_id;not null;uniqueIndex:idx_offers_one_active,priority:2,where:status = 'active';index:idx_offers_collection_token,priority:1"`
	// TokenID is the token identifier within the collection
	TokenID uint64 `gorm:"column:token_id;not null;uniqueIndex:idx_offers_one_active,priority:3,where:status = 'active';index:idx_offers_collection_token,priority:2"`
	// Type distinguishes fixed_price, auction and fiat offers
	Type domain.OfferType `gorm:"column:type;not null;type:text"`
	// Status is the lifecycle state (active, cancelled, bought, removed_by_admin)
	Status domain.OfferStatus `gorm:"column:status;not null;type:text;index:idx_offers_status_seller"`
	// Price in the smallest currency unit (fiat prices are cents)
	Price string `gorm:"column:price;not null;type:numeric(39,0)"`
	// Currency is the chain-native or fiat currency identifier
	Currency string `gorm:"column:currency;not null;type:text"`
	// AddressFrom is the seller address owning this offer while Active
	AddressFrom string `gorm:"column:address_from;not null;type:text;index:idx_offers_status_seller,priority:2"`
	// AddressTo is the buyer address, set only when Status becomes bought
	AddressTo *string `gorm:"column:address_to;type:text"`

	// Auction-only terms, nil unless Type is auction
	StartPrice    *string               `gorm:"column:start_price;type:numeric(39,0)"`
	PriceStep     *string               `gorm:"column:price_step;type:numeric(39,0)"`
	AuctionStatus *domain.AuctionStatus `gorm:"column:auction_status;type:text"`
	StopAt        *time.Time            `gorm:"column:stop_at;type:timestamptz"`

	// Block heights recording each transition, nil until the transition occurs
	BlockNumberAsk    *uint64 `gorm:"column:block_number_ask;type:bigint"`
	BlockNumberCancel *uint64 `gorm:"column:block_number_cancel;type:bigint"`
	BlockNumberBuy    *uint64 `gorm:"column:block_number_buy;type:bigint"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Bids []Bid `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}
