package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/store"
)

const MAX_PAGE_SIZE = 100

// ListOffersQueryParams holds query parameters for GET /offers
type ListOffersQueryParams struct {
	Network      string   `form:"network"`
	CollectionID *uint64  `form:"collectionId"`
	TokenID      *uint64  `form:"tokenId"`
	Seller       string   `form:"seller"`
	Types        []string `form:"type"`
	Statuses     []string `form:"status"`
	MinPrice     string   `form:"minPrice"`
	MaxPrice     string   `form:"maxPrice"`
	TraitKey     string   `form:"traitKey"`
	TraitValue   string   `form:"traitValue"`

	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListOffersQuery parses and validates query parameters for GET /offers
func ParseListOffersQuery(c *gin.Context) (store.OfferFilter, error) {
	var params ListOffersQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return store.OfferFilter{}, err
	}

	if params.Limit <= 0 || params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	filter := store.OfferFilter{
		Network:      domain.Network(params.Network),
		CollectionID: params.CollectionID,
		TokenID:      params.TokenID,
		Seller:       params.Seller,
		MinPrice:     params.MinPrice,
		MaxPrice:     params.MaxPrice,
		TraitKey:     params.TraitKey,
		TraitValue:   params.TraitValue,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}

	if params.Network != "" && !domain.IsValidNetwork(filter.Network) {
		return store.OfferFilter{}, fmt.Errorf("unknown network %q", params.Network)
	}

	for _, t := range params.Types {
		offerType := domain.OfferType(t)
		if !domain.IsValidOfferType(offerType) {
			return store.OfferFilter{}, fmt.Errorf("unknown offer type %q", t)
		}
		filter.Types = append(filter.Types, offerType)
	}

	for _, s := range params.Statuses {
		status := domain.OfferStatus(s)
		if !domain.IsValidOfferStatus(status) {
			return store.OfferFilter{}, fmt.Errorf("unknown offer status %q", s)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// ListTradesQueryParams holds query parameters for GET /trades
type ListTradesQueryParams struct {
	Network      string  `form:"network"`
	CollectionID *uint64 `form:"collectionId"`
	TokenID      *uint64 `form:"tokenId"`
	Seller       string  `form:"seller"`
	Buyer        string  `form:"buyer"`

	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListTradesQuery parses and validates query parameters for GET /trades
func ParseListTradesQuery(c *gin.Context) (store.TradeFilter, error) {
	var params ListTradesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return store.TradeFilter{}, err
	}

	if params.Limit <= 0 || params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	filter := store.TradeFilter{
		Network:      domain.Network(params.Network),
		CollectionID: params.CollectionID,
		TokenID:      params.TokenID,
		Seller:       params.Seller,
		Buyer:        params.Buyer,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}

	if params.Network != "" && !domain.IsValidNetwork(filter.Network) {
		return store.TradeFilter{}, fmt.Errorf("unknown network %q", params.Network)
	}

	return filter, nil
}
