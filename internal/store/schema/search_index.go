package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/gallerium/marketplace-v2/internal/domain"
)

// SearchIndexEntry represents the search_index table - denormalized searchable
// attributes derived from raw token metadata. Entries are regenerated
// wholesale (delete + insert) whenever token metadata changes, never merged.
type SearchIndexEntry struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`

	Network      domain.Network `gorm:"column:network;not null;type:text;index:idx_search_token,priority:1"`
	CollectionID uint64         `gorm:"column:collection_id;not null;index:idx_search_token,priority:2"`
	TokenID      uint64         `gorm:"column:token_id;not null;index:idx_search_token,priority:3"`

	// Key is the attribute name (prefix, collectionName, description, image,
	// video, or a trait name)
	Key string `gorm:"column:key;not null;type:text;index"`
	// Items holds the attribute values: a single-element array for scalar
	// attributes, multi-element for list traits
	Items datatypes.JSON `gorm:"column:items;not null;type:jsonb"`
	// IsTrait marks trait attributes as opposed to descriptive fields
	IsTrait bool `gorm:"column:is_trait;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SearchIndexEntry model
func (SearchIndexEntry) TableName() string {
	return "search_index"
}
