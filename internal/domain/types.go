package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Network identifies the blockchain network an offer lives on
type Network string

const (
	NetworkQuartz   Network = "quartz"
	NetworkOpal     Network = "opal"
	NetworkEthereum Network = "ethereum"
)

// IsValidNetwork checks if a network is one we index
func IsValidNetwork(n Network) bool {
	return n == NetworkQuartz || n == NetworkOpal || n == NetworkEthereum
}

// OfferType distinguishes how an offer is settled
type OfferType string

const (
	OfferTypeFixedPrice OfferType = "fixed_price"
	OfferTypeAuction    OfferType = "auction"
	OfferTypeFiat       OfferType = "fiat"
)

// IsValidOfferType checks if an offer type is known
func IsValidOfferType(t OfferType) bool {
	return t == OfferTypeFixedPrice || t == OfferTypeAuction || t == OfferTypeFiat
}

// OfferStatus is the lifecycle state of an offer.
// Active is the only non-terminal state: once an offer leaves Active it never
// transitions again.
type OfferStatus string

const (
	OfferStatusActive         OfferStatus = "active"
	OfferStatusCancelled      OfferStatus = "cancelled"
	OfferStatusBought         OfferStatus = "bought"
	OfferStatusRemovedByAdmin OfferStatus = "removed_by_admin"
)

// Terminal reports whether the status absorbs all further transitions
func (s OfferStatus) Terminal() bool {
	return s != OfferStatusActive
}

// IsValidOfferStatus checks if an offer status is known
func IsValidOfferStatus(s OfferStatus) bool {
	switch s {
	case OfferStatusActive, OfferStatusCancelled, OfferStatusBought, OfferStatusRemovedByAdmin:
		return true
	default:
		return false
	}
}

// AuctionStatus tracks the auction sub-lifecycle of an auction offer
type AuctionStatus string

const (
	AuctionStatusCreated AuctionStatus = "created"
	AuctionStatusActive  AuctionStatus = "active"
	AuctionStatusStopped AuctionStatus = "stopped"
)

// SettlementMethod records how a trade was settled
type SettlementMethod string

const (
	SettlementMethodOnChain SettlementMethod = "onchain"
	SettlementMethodFiat    SettlementMethod = "fiat"
)

// MarketEventType represents the type of marketplace event observed on chain
type MarketEventType string

const (
	MarketEventTypeAsk      MarketEventType = "ask"
	MarketEventTypeCancel   MarketEventType = "cancel"
	MarketEventTypeBuy      MarketEventType = "buy"
	MarketEventTypeBid      MarketEventType = "bid"
	MarketEventTypeTransfer MarketEventType = "transfer"
)

// MarketEvent is a normalized marketplace event.
// This is the standard format published to NATS by the event emitter and
// consumed by the ingest worker.
type MarketEvent struct {
	Network      Network         `json:"network"`                 // e.g., "quartz", "ethereum"
	EventType    MarketEventType `json:"event_type"`              // ask, cancel, buy, bid, transfer
	CollectionID uint64          `json:"collection_id"`           // chain collection identifier
	TokenID      uint64          `json:"token_id"`                // token identifier within the collection
	Seller       *string         `json:"seller,omitempty"`        // seller address (ask, cancel)
	Buyer        *string         `json:"buyer,omitempty"`         // buyer address (buy)
	Bidder       *string         `json:"bidder,omitempty"`        // bidder address (bid)
	AddressFrom  *string         `json:"address_from,omitempty"`  // sender (transfer)
	AddressTo    *string         `json:"address_to,omitempty"`    // recipient (transfer)
	Price        string          `json:"price,omitempty"`         // price/bid amount in smallest currency unit
	Currency     string          `json:"currency,omitempty"`      // chain-native currency identifier
	BlockNumber  uint64          `json:"block_number"`            // block where the event was recorded
	TxHash       *string         `json:"tx_hash,omitempty"`       // transaction hash (when available)
	Timestamp    time.Time       `json:"timestamp"`               // block timestamp
}

// Valid performs structural validation of a market event
func (e *MarketEvent) Valid() bool {
	if !IsValidNetwork(e.Network) {
		return false
	}
	if e.CollectionID == 0 {
		return false
	}

	switch e.EventType {
	case MarketEventTypeAsk:
		if e.Seller == nil || *e.Seller == "" {
			return false
		}
		if !validAmount(e.Price) {
			return false
		}
	case MarketEventTypeCancel:
		if e.Seller == nil || *e.Seller == "" {
			return false
		}
	case MarketEventTypeBuy:
		if e.Buyer == nil || *e.Buyer == "" {
			return false
		}
	case MarketEventTypeBid:
		if e.Bidder == nil || *e.Bidder == "" {
			return false
		}
		if !validAmount(e.Price) {
			return false
		}
	case MarketEventTypeTransfer:
		if e.AddressFrom == nil || *e.AddressFrom == "" {
			return false
		}
		if e.AddressTo == nil || *e.AddressTo == "" {
			return false
		}
	default:
		return false
	}

	return true
}

// TokenKey returns the (network, collection, token) identity of the event's subject
func (e *MarketEvent) TokenKey() string {
	return fmt.Sprintf("%s:%d:%d", e.Network, e.CollectionID, e.TokenID)
}

// TokenOwnership is a single entry of an on-chain ownership snapshot,
// used by the reconciliation pass to compare ledger state against chain truth.
type TokenOwnership struct {
	Network      Network `json:"network"`
	CollectionID uint64  `json:"collection_id"`
	TokenID      uint64  `json:"token_id"`
	Owner        string  `json:"owner"`
	BlockNumber  uint64  `json:"block_number"`
}

// validAmount checks that an amount string is a positive base-10 integer
func validAmount(amount string) bool {
	v, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		// amounts can exceed uint64; fall back to a digits-only check
		if amount == "" {
			return false
		}
		for _, r := range amount {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return v > 0
}
