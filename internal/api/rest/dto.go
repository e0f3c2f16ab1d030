package rest

import (
	"time"

	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// OfferDTO is the public representation of an offer
type OfferDTO struct {
	ID           string         `json:"id"`
	Network      domain.Network `json:"network"`
	CollectionID uint64         `json:"collectionId"`
	TokenID      uint64         `json:"tokenId"`
	Type         string         `json:"type"`
	Status       string         `json:"status"`
	Price        string         `json:"price"`
	Currency     string         `json:"currency"`
	Seller       string         `json:"seller"`
	Buyer        *string        `json:"buyer,omitempty"`

	StartPrice    *string    `json:"startPrice,omitempty"`
	PriceStep     *string    `json:"priceStep,omitempty"`
	AuctionStatus *string    `json:"auctionStatus,omitempty"`
	StopAt        *time.Time `json:"stopAt,omitempty"`

	BlockNumberAsk    *uint64 `json:"blockNumberAsk,omitempty"`
	BlockNumberCancel *uint64 `json:"blockNumberCancel,omitempty"`
	BlockNumberBuy    *uint64 `json:"blockNumberBuy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toOfferDTO(offer *schema.Offer) OfferDTO {
	dto := OfferDTO{
		ID:                offer.ID,
		Network:           offer.Network,
		CollectionID:      offer.CollectionID,
		TokenID:           offer.TokenID,
		Type:              string(offer.Type),
		Status:            string(offer.Status),
		Price:             offer.Price,
		Currency:          offer.Currency,
		Seller:            offer.AddressFrom,
		Buyer:             offer.AddressTo,
		StartPrice:        offer.StartPrice,
		PriceStep:         offer.PriceStep,
		StopAt:            offer.StopAt,
		BlockNumberAsk:    offer.BlockNumberAsk,
		BlockNumberCancel: offer.BlockNumberCancel,
		BlockNumberBuy:    offer.BlockNumberBuy,
		CreatedAt:         offer.CreatedAt,
		UpdatedAt:         offer.UpdatedAt,
	}
	if offer.AuctionStatus != nil {
		status := string(*offer.AuctionStatus)
		dto.AuctionStatus = &status
	}
	return dto
}

func toOfferDTOs(offers []schema.Offer) []OfferDTO {
	dtos := make([]OfferDTO, 0, len(offers))
	for i := range offers {
		dtos = append(dtos, toOfferDTO(&offers[i]))
	}
	return dtos
}

// TradeDTO is the public representation of a settled trade
type TradeDTO struct {
	ID           string         `json:"id"`
	OfferID      string         `json:"offerId"`
	Network      domain.Network `json:"network"`
	CollectionID uint64         `json:"collectionId"`
	TokenID      uint64         `json:"tokenId"`
	Seller       string         `json:"seller"`
	Buyer        string         `json:"buyer"`
	Price        string         `json:"price"`
	Currency     string         `json:"currency"`
	Commission   string         `json:"commission"`
	Method       string         `json:"method"`
	BlockNumber  *uint64        `json:"blockNumber,omitempty"`
	TradeDate    time.Time      `json:"tradeDate"`
}

func toTradeDTOs(trades []schema.Trade) []TradeDTO {
	dtos := make([]TradeDTO, 0, len(trades))
	for _, trade := range trades {
		dtos = append(dtos, TradeDTO{
			ID:           trade.ID,
			OfferID:      trade.OfferID,
			Network:      trade.Network,
			CollectionID: trade.CollectionID,
			TokenID:      trade.TokenID,
			Seller:       trade.Seller,
			Buyer:        trade.Buyer,
			Price:        trade.Price,
			Currency:     trade.Currency,
			Commission:   trade.Commission,
			Method:       string(trade.Method),
			BlockNumber:  trade.BlockNumber,
			TradeDate:    trade.TradeDate,
		})
	}
	return dtos
}

// CollectionDTO is the public representation of a collection
type CollectionDTO struct {
	Network       domain.Network `json:"network"`
	CollectionID  uint64         `json:"collectionId"`
	Enabled       bool           `json:"enabled"`
	AllowedTokens string         `json:"allowedTokens,omitempty"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	TokenPrefix   string         `json:"tokenPrefix"`
	Owner         *string        `json:"owner,omitempty"`
}

func toCollectionDTOs(collections []schema.Collection) []CollectionDTO {
	dtos := make([]CollectionDTO, 0, len(collections))
	for _, collection := range collections {
		dtos = append(dtos, CollectionDTO{
			Network:       collection.Network,
			CollectionID:  collection.CollectionID,
			Enabled:       collection.Enabled,
			AllowedTokens: collection.AllowedTokens,
			Name:          collection.Name,
			Description:   collection.Description,
			TokenPrefix:   collection.TokenPrefix,
			Owner:         collection.Owner,
		})
	}
	return dtos
}
