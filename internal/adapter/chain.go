package adapter

import (
	"context"
	"encoding/json"

	"github.com/gallerium/marketplace-v2/internal/domain"
)

// ChainCollection is the on-chain collection description as reported by the
// node. Raw carries fields the projection does not model.
type ChainCollection struct {
	Name        string
	Description string
	TokenPrefix string
	Owner       string
	Raw         json.RawMessage
}

// ChainToken is the on-chain token state: current owner plus raw metadata rows
type ChainToken struct {
	Owner    string
	Metadata json.RawMessage
}

// ChainClient is the blockchain collaborator contract. The chain is
// authoritative for ownership and marketplace state; every call is
// context-bound and the caller imposes the timeout. A timed-out submission has
// an unknown outcome and must be re-checked, never blindly retried.
//
//go:generate mockgen -source=chain.go -destination=../mocks/chain.go -package=mocks -mock_names=ChainClient=MockChainClient,MetadataSource=MockMetadataSource
type ChainClient interface {
	// Network reports which network this client talks to
	Network() domain.Network

	// AccountTokens lists the token ids an address owns within a collection
	AccountTokens(ctx context.Context, collectionID uint64, owner string) ([]uint64, error)

	// OwnerOf returns the current owner address of a token
	OwnerOf(ctx context.Context, collectionID, tokenID uint64) (string, error)

	// TransferToken submits a token transfer signed by the configured market
	// account and waits for inclusion; returns the inclusion block number
	TransferToken(ctx context.Context, collectionID, tokenID uint64, to string) (uint64, error)

	// BlockNumber returns the latest block height
	BlockNumber(ctx context.Context) (uint64, error)

	// MarketEvents returns the normalized marketplace events recorded in the
	// inclusive block range
	MarketEvents(ctx context.Context, fromBlock, toBlock uint64) ([]domain.MarketEvent, error)

	// CollectionInfo fetches the on-chain collection description
	CollectionInfo(ctx context.Context, collectionID uint64) (*ChainCollection, error)

	// TokenInfo fetches the on-chain token owner and metadata
	TokenInfo(ctx context.Context, collectionID, tokenID uint64) (*ChainToken, error)

	// Close releases the underlying connections
	Close()
}

// MetadataSource supplies richer collection/token metadata than the EVM
// facade exposes. Substrate-family networks implement it over the node's
// native RPC; plain EVM networks go without and fall back to contract calls.
type MetadataSource interface {
	CollectionByID(ctx context.Context, collectionID uint64) (*ChainCollection, error)
	TokenData(ctx context.Context, collectionID, tokenID uint64) (*ChainToken, error)
}
