package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// Descriptive keys folded from collection and token metadata. Everything else
// in the metadata rows is treated as a trait.
const (
	keyPrefix         = "prefix"
	keyCollectionName = "collectionName"
	keyDescription    = "description"
	keyImage          = "image"
	keyVideo          = "video"
)

// Config holds search indexer configuration
type Config struct {
	// IPFSGateway is the base URL prepended to bare IPFS identifiers
	IPFSGateway string
}

// metadataRow is one raw attribute as cached on the token projection
type metadataRow struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Indexer derives denormalized searchable rows from cached token and
// collection metadata. Rows for a token are regenerated wholesale on every
// run, never merged.
type Indexer struct {
	store  store.Store
	config Config
}

// NewIndexer creates a search indexer
func NewIndexer(s store.Store, config Config) *Indexer {
	if config.IPFSGateway == "" {
		config.IPFSGateway = domain.DEFAULT_IPFS_GATEWAY
	}
	return &Indexer{store: s, config: config}
}

// Reindex rebuilds the search rows for one token from its cached metadata
func (ix *Indexer) Reindex(ctx context.Context, network domain.Network, collectionID, tokenID uint64) error {
	token, err := ix.store.GetToken(ctx, network, collectionID, tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return domain.ErrTokenNotFound
	}

	collection, err := ix.store.GetCollection(ctx, network, collectionID)
	if err != nil {
		return err
	}

	entries := ix.fold(network, collectionID, tokenID, collection, token)

	if err := ix.store.ReplaceSearchIndex(ctx, network, collectionID, tokenID, entries); err != nil {
		return fmt.Errorf("failed to replace search index: %w", err)
	}
	return nil
}

// fold accumulates collection descriptors and token attributes into search
// entries. Single-value traits become one-element arrays so the items column
// has a uniform shape.
func (ix *Indexer) fold(network domain.Network, collectionID, tokenID uint64, collection *schema.Collection, token *schema.Token) []schema.SearchIndexEntry {
	var entries []schema.SearchIndexEntry

	add := func(key string, items []string, isTrait bool) {
		if len(items) == 0 {
			return
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return
		}
		entries = append(entries, schema.SearchIndexEntry{
			Network:      network,
			CollectionID: collectionID,
			TokenID:      tokenID,
			Key:          key,
			Items:        datatypes.JSON(raw),
			IsTrait:      isTrait,
		})
	}

	if collection != nil {
		if collection.TokenPrefix != "" {
			add(keyPrefix, []string{collection.TokenPrefix}, false)
		}
		if collection.Name != "" {
			add(keyCollectionName, []string{collection.Name}, false)
		}
		if collection.Description != "" {
			add(keyDescription, []string{collection.Description}, false)
		}
	}

	var rows []metadataRow
	if len(token.Data) > 0 {
		// Undecodable metadata is not fatal: collection descriptors are still
		// indexed and the token can be re-indexed after a metadata refresh
		_ = json.Unmarshal(token.Data, &rows)
	}

	for _, row := range rows {
		values := decodeValues(row.Value)
		if len(values) == 0 {
			continue
		}

		switch row.Key {
		case keyImage, keyVideo:
			for i, v := range values {
				values[i] = ix.normalizeMediaURL(v)
			}
			add(row.Key, values, false)
		case keyPrefix, keyCollectionName, keyDescription:
			add(row.Key, values, false)
		default:
			add(row.Key, values, true)
		}
	}

	return entries
}

// decodeValues accepts the scalar and list shapes metadata values come in
func decodeValues(raw json.RawMessage) []string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		values := make([]string, 0, len(list))
		for _, v := range list {
			if v != "" {
				values = append(values, v)
			}
		}
		return values
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return []string{number.String()}
	}

	return nil
}

// normalizeMediaURL passes absolute http(s) URLs through unchanged and
// prefixes bare identifiers (including ipfs:// URIs) with the gateway base
func (ix *Indexer) normalizeMediaURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if cid, ok := strings.CutPrefix(raw, "ipfs://"); ok {
		return ix.config.IPFSGateway + cid
	}
	return ix.config.IPFSGateway + raw
}
