package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/gallerium/marketplace-v2/internal/domain"
)

// Token represents the tokens table - a cached projection of on-chain token
// metadata, owned by ingestion and refreshed on demand. Not authoritative.
type Token struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`

	Network      domain.Network `gorm:"column:network;not null;type:text;uniqueIndex:idx_tokens_identity,priority:1"`
	CollectionID uint64         `gorm:"column:collection_id;not null;uniqueIndex:idx_tokens_identity,priority:2"`
	TokenID      uint64         `gorm:"column:token_id;not null;uniqueIndex:idx_tokens_identity,priority:3"`

	// Owner is the last observed on-chain owner
	Owner *string `gorm:"column:owner;type:text"`
	// Data holds the raw token metadata rows as fetched from chain
	Data datatypes.JSON `gorm:"column:data;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
