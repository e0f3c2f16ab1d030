package schema

import (
	"time"

	"github.com/gallerium/marketplace-v2/internal/domain"
)

// Trade represents the trades table - an immutable record created exactly once
// when an offer transitions to bought. Seller, buyer, price and commission are
// denormalized for reporting; rows are never mutated after creation.
type Trade struct {
	// ID is an opaque ULID assigned at creation
	ID string `gorm:"column:id;primaryKey;type:text"`
	// OfferID references the offer this trade settled; unique so settlement
	// can never double-record
	OfferID string `gorm:"column:offer_id;not null;uniqueIndex;type:text"`

	Network      domain.Network `gorm:"column:network;not null;type:text"`
	CollectionID uint64         `gorm:"column:collection_id;not null;index:idx_trades_collection_token,priority:1"`
	TokenID      uint64         `gorm:"column:token_id;not null;index:idx_trades_collection_token,priority:2"`

	Seller string `gorm:"column:seller;not null;type:text"`
	Buyer  string `gorm:"column:buyer;not null;type:text"`
	// Price in the smallest currency unit at settlement
	Price    string `gorm:"column:price;not null;type:numeric(39,0)"`
	Currency string `gorm:"column:currency;not null;type:text"`
	// Commission in the smallest currency unit retained by the platform
	Commission string `gorm:"column:commission;not null;type:numeric(39,0)"`
	// Method records how the trade settled (onchain, fiat)
	Method domain.SettlementMethod `gorm:"column:method;not null;type:text"`

	// BlockNumber of the buy transition (nil for fiat settlements pending transfer finality data)
	BlockNumber *uint64   `gorm:"column:block_number;type:bigint"`
	TradeDate   time.Time `gorm:"column:trade_date;not null;type:timestamptz"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Offer Offer `gorm:"foreignKey:OfferID"`
}

// TableName specifies the table name for the Trade model
func (Trade) TableName() string {
	return "trades"
}
