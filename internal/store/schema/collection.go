package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/gallerium/marketplace-v2/internal/domain"
)

// Collection represents the collections table - a cached projection of
// on-chain collection metadata. The chain is authoritative; rows exist to
// avoid redundant chain calls and to drive search and admin listing.
type Collection struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Network identifies the blockchain network
	Network domain.Network `gorm:"column:network;not null;type:text;uniqueIndex:idx_collections_network_cid,priority:1"`
	// CollectionID is the chain collection identifier
	CollectionID uint64 `gorm:"column:collection_id;not null;uniqueIndex:idx_collections_network_cid,priority:2"`
	// Enabled marks the collection as tradable on the marketplace
	Enabled bool `gorm:"column:enabled;not null;default:false"`
	// AllowedTokens optionally restricts mass operations to a token range/list
	// expression (e.g. "1-300,500")
	AllowedTokens string `gorm:"column:allowed_tokens;not null;default:'';type:text"`

	Name            string  `gorm:"column:name;not null;default:'';type:text"`
	Description     string  `gorm:"column:description;not null;default:'';type:text"`
	TokenPrefix     string  `gorm:"column:token_prefix;not null;default:'';type:text"`
	Owner           *string `gorm:"column:owner;type:text"`
	// Data holds the raw chain metadata for fields we do not project
	Data datatypes.JSON `gorm:"column:data;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
