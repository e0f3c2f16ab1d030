package schema

import (
	"time"

	"github.com/gallerium/marketplace-v2/internal/domain"
)

// NFTTransfer represents the nft_transfers table - audit trail of observed
// token transfers, written by the ingest worker
type NFTTransfer struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`

	Network      domain.Network `gorm:"column:network;not null;type:text;uniqueIndex:idx_nft_transfers_dedup,priority:1"`
	CollectionID uint64         `gorm:"column:collection_id;not null;uniqueIndex:idx_nft_transfers_dedup,priority:2"`
	TokenID      uint64         `gorm:"column:token_id;not null;uniqueIndex:idx_nft_transfers_dedup,priority:3"`

	AddressFrom string `gorm:"column:address_from;not null;type:text;uniqueIndex:idx_nft_transfers_dedup,priority:4"`
	AddressTo   string `gorm:"column:address_to;not null;type:text;uniqueIndex:idx_nft_transfers_dedup,priority:5"`

	BlockNumber uint64    `gorm:"column:block_number;not null;type:bigint;uniqueIndex:idx_nft_transfers_dedup,priority:6"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NFTTransfer model
func (NFTTransfer) TableName() string {
	return "nft_transfers"
}

// MoneyTransferStatus tracks the fiat money movement lifecycle
type MoneyTransferStatus string

const (
	MoneyTransferStatusPending   MoneyTransferStatus = "pending"
	MoneyTransferStatusCompleted MoneyTransferStatus = "completed"
	MoneyTransferStatusRefunded  MoneyTransferStatus = "refunded"
)

// MoneyTransfer represents the money_transfers table - audit trail of fiat
// money movement through the payment gateway. Written pending before the
// chain transfer and promoted afterwards, so a crash between the two leaves
// a visible pending row for reconciliation.
type MoneyTransfer struct {
	// ID is an opaque ULID assigned at creation
	ID string `gorm:"column:id;primaryKey;type:text"`
	// PaymentID is the gateway's charge identifier
	PaymentID string `gorm:"column:payment_id;not null;type:text;index"`
	// OfferID references the offer being paid for
	OfferID string `gorm:"column:offer_id;not null;type:text;index"`

	// Amount in fiat cents, Currency the fiat currency identifier
	Amount   string `gorm:"column:amount;not null;type:numeric(39,0)"`
	Currency string `gorm:"column:currency;not null;type:text"`

	AddressFrom string `gorm:"column:address_from;not null;type:text"`
	AddressTo   string `gorm:"column:address_to;not null;type:text"`

	Status      MoneyTransferStatus `gorm:"column:status;not null;type:text"`
	BlockNumber *uint64             `gorm:"column:block_number;type:bigint"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MoneyTransfer model
func (MoneyTransfer) TableName() string {
	return "money_transfers"
}
