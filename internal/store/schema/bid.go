package schema

import "time"

// Bid represents the bids table - append-only auction bids. Bids belong to
// their offer and are never updated; the winning bid is derived as the
// highest amount, not stored.
type Bid struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OfferID references the auction offer this bid targets
	OfferID string `gorm:"column:offer_id;not null;type:text;index:idx_bids_offer_amount,priority:1"`
	// Bidder is the bidding address
	Bidder string `gorm:"column:bidder;not null;type:text"`
	// Amount in the smallest currency unit
	Amount string `gorm:"column:amount;not null;type:numeric(39,0);index:idx_bids_offer_amount,priority:2,sort:desc"`
	// BlockNumber is the block where the bid was observed
	BlockNumber uint64    `gorm:"column:block_number;not null;type:bigint"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Offer Offer `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Bid model
func (Bid) TableName() string {
	return "bids"
}
