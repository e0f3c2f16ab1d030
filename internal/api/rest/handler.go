package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/api/auth"
	"github.com/gallerium/marketplace-v2/internal/api/middleware"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/fiat"
	"github.com/gallerium/marketplace-v2/internal/massops"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// MassOps is the bulk listing/cancellation surface the admin endpoints drive
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api.go -package=mocks -mock_names=MassOps=MockMassOps,FiatCheckout=MockFiatCheckout,AdminAuthenticator=MockAdminAuthenticator
type MassOps interface {
	MassList(ctx context.Context, req massops.ListRequest) (massops.Result, error)
	MassListAuction(ctx context.Context, req massops.ListRequest, terms massops.AuctionTerms) (massops.Result, error)
	MassCancel(ctx context.Context, network domain.Network, seller string, saleType domain.OfferType) (int64, error)
}

// FiatCheckout is the card payment surface behind POST /pay
type FiatCheckout interface {
	PayOffer(ctx context.Context, req fiat.PayOfferRequest) (*schema.Trade, error)
}

// AdminAuthenticator issues admin sessions from signed challenges
type AdminAuthenticator interface {
	Login(ctx context.Context, address string, timestamp int64, signature string) (*auth.Session, error)
}

// Handler defines the REST API handlers
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// ListOffers retrieves offers with optional filters
	// GET /api/v1/offers?network=<n>&collectionId=<id>&seller=<addr>&type=<t>&status=<s>&minPrice=<p>&maxPrice=<p>&traitKey=<k>&traitValue=<v>&limit=<l>&offset=<o>
	ListOffers(c *gin.Context)

	// GetOffer retrieves a single offer by its id
	// GET /api/v1/offers/:id
	GetOffer(c *gin.Context)

	// ListCollections retrieves enabled collections
	// GET /api/v1/collections?network=<n>
	ListCollections(c *gin.Context)

	// ListTrades retrieves settled trades with optional filters
	// GET /api/v1/trades?network=<n>&collectionId=<id>&seller=<addr>&buyer=<addr>&limit=<l>&offset=<o>
	ListTrades(c *gin.Context)

	// Login verifies a signed admin challenge and issues a bearer token
	// POST /api/v1/admin/login
	Login(c *gin.Context)

	// AdminListCollections retrieves every known collection including disabled ones
	// GET /api/v1/admin/collections
	AdminListCollections(c *gin.Context)

	// EnableCollection marks a collection tradable, caching its chain
	// metadata when it was never seen before
	// POST /api/v1/admin/collections
	EnableCollection(c *gin.Context)

	// DisableCollection marks a collection not tradable
	// DELETE /api/v1/admin/collections/:id?network=<n>
	DisableCollection(c *gin.Context)

	// SetAllowedTokens restricts mass operations on a collection to a token
	// range/list expression
	// POST /api/v1/admin/tokens
	SetAllowedTokens(c *gin.Context)

	// MassListFixed lists owned tokens at a fixed chain-native price
	// POST /api/v1/admin/offers/fixed
	MassListFixed(c *gin.Context)

	// MassListAuction lists owned tokens as auctions
	// POST /api/v1/admin/offers/auction
	MassListAuction(c *gin.Context)

	// MassCancel cancels every active chain-sale offer of the main account
	// DELETE /api/v1/admin/offers
	MassCancel(c *gin.Context)

	// MassListFiat lists owned tokens at a decimal fiat price (scaled to cents)
	// POST /api/v1/admin/offers/fiat
	MassListFiat(c *gin.Context)

	// MassCancelFiat cancels every active fiat offer of the main account
	// DELETE /api/v1/admin/offers/fiat
	MassCancelFiat(c *gin.Context)

	// PayOffer charges a card and transfers the token to the buyer
	// POST /api/v1/pay
	PayOffer(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store           store.Store
	massops         MassOps
	fiat            FiatCheckout
	auth            AdminAuthenticator
	chains          map[domain.Network]adapter.ChainClient
	mainSaleAddress string
}

// NewHandler creates a new REST API handler
func NewHandler(
	st store.Store,
	mass MassOps,
	checkout FiatCheckout,
	authenticator AdminAuthenticator,
	chains map[domain.Network]adapter.ChainClient,
	mainSaleAddress string,
) Handler {
	return &handler{
		store:           st,
		massops:         mass,
		fiat:            checkout,
		auth:            authenticator,
		chains:          chains,
		mainSaleAddress: domain.NormalizeAddress(mainSaleAddress),
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListOffers retrieves offers with optional filters
func (h *handler) ListOffers(c *gin.Context) {
	filter, err := ParseListOffersQuery(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	offers, total, err := h.store.ListOffers(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "Failed to list offers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"offers": toOfferDTOs(offers),
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// GetOffer retrieves a single offer by its id
func (h *handler) GetOffer(c *gin.Context) {
	offerID := c.Param("id")
	if offerID == "" {
		respondBadRequest(c, "Offer id is required")
		return
	}

	offer, err := h.store.GetOfferByID(c.Request.Context(), offerID)
	if err != nil {
		respondInternalError(c, err, "Failed to get offer")
		return
	}
	if offer == nil {
		respondNotFound(c, "Offer not found")
		return
	}

	response := gin.H{"offer": toOfferDTO(offer)}

	if offer.Type == domain.OfferTypeAuction {
		bid, err := h.store.GetHighestBid(c.Request.Context(), offer.ID)
		if err != nil {
			respondInternalError(c, err, "Failed to get highest bid")
			return
		}
		if bid != nil {
			response["highestBid"] = gin.H{
				"bidder":      bid.Bidder,
				"amount":      bid.Amount,
				"blockNumber": bid.BlockNumber,
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

// ListCollections retrieves enabled collections
func (h *handler) ListCollections(c *gin.Context) {
	network := domain.Network(c.Query("network"))
	if network != "" && !domain.IsValidNetwork(network) {
		respondBadRequest(c, "Unknown network")
		return
	}

	collections, err := h.store.ListCollections(c.Request.Context(), network, true)
	if err != nil {
		respondInternalError(c, err, "Failed to list collections")
		return
	}

	c.JSON(http.StatusOK, gin.H{"collections": toCollectionDTOs(collections)})
}

// ListTrades retrieves settled trades with optional filters
func (h *handler) ListTrades(c *gin.Context) {
	filter, err := ParseListTradesQuery(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	trades, total, err := h.store.ListTrades(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "Failed to list trades")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trades": toTradeDTOs(trades),
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

type loginRequest struct {
	Address   string `json:"address" binding:"required"`
	Timestamp int64  `json:"timestamp" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// Login verifies a signed admin challenge and issues a bearer token
func (h *handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Address, req.Timestamp, req.Signature)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			respondUnauthorized(c, "Login failed")
			return
		}
		respondInternalError(c, err, "Failed to log in")
		return
	}

	respondSuccess(c, envelope{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}

// AdminListCollections retrieves every known collection including disabled ones
func (h *handler) AdminListCollections(c *gin.Context) {
	network := domain.Network(c.Query("network"))
	if network != "" && !domain.IsValidNetwork(network) {
		respondBadRequest(c, "Unknown network")
		return
	}

	collections, err := h.store.ListCollections(c.Request.Context(), network, false)
	if err != nil {
		respondInternalError(c, err, "Failed to list collections")
		return
	}

	respondSuccess(c, envelope{"collections": toCollectionDTOs(collections)})
}

type collectionRequest struct {
	Network      string `json:"network" binding:"required"`
	CollectionID uint64 `json:"collectionId" binding:"required"`
}

// EnableCollection marks a collection tradable, caching its chain metadata
// when it was never seen before
func (h *handler) EnableCollection(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	network := domain.Network(req.Network)
	if !domain.IsValidNetwork(network) {
		respondBadRequest(c, "Unknown network")
		return
	}

	ctx := c.Request.Context()
	collection, err := h.store.GetCollection(ctx, network, req.CollectionID)
	if err != nil {
		respondInternalError(c, err, "Failed to get collection")
		return
	}
	if collection == nil {
		if err := h.cacheCollection(ctx, network, req.CollectionID); err != nil {
			respondBadRequest(c, "Collection not recognized")
			return
		}
	}

	found, err := h.store.SetCollectionEnabled(ctx, network, req.CollectionID, true)
	if err != nil {
		respondInternalError(c, err, "Failed to enable collection")
		return
	}
	if !found {
		respondBadRequest(c, "Collection not recognized")
		return
	}

	respondSuccess(c, nil)
}

// cacheCollection fetches chain metadata for a collection never seen before
func (h *handler) cacheCollection(ctx context.Context, network domain.Network, collectionID uint64) error {
	chain, ok := h.chains[network]
	if !ok {
		return domain.ErrChainUnavailable
	}
	info, err := chain.CollectionInfo(ctx, collectionID)
	if err != nil {
		return err
	}

	cached := &schema.Collection{
		Network:      network,
		CollectionID: collectionID,
		Name:         info.Name,
		Description:  info.Description,
		TokenPrefix:  info.TokenPrefix,
	}
	if info.Owner != "" {
		owner := info.Owner
		cached.Owner = &owner
	}
	if len(info.Raw) > 0 {
		cached.Data = datatypes.JSON(info.Raw)
	}
	return h.store.UpsertCollection(ctx, cached)
}

// DisableCollection marks a collection not tradable
func (h *handler) DisableCollection(c *gin.Context) {
	collectionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid collection id")
		return
	}
	network := domain.Network(c.Query("network"))
	if !domain.IsValidNetwork(network) {
		respondBadRequest(c, "Unknown network")
		return
	}

	found, err := h.store.SetCollectionEnabled(c.Request.Context(), network, collectionID, false)
	if err != nil {
		respondInternalError(c, err, "Failed to disable collection")
		return
	}
	if !found {
		respondBadRequest(c, "Collection not recognized")
		return
	}

	respondSuccess(c, nil)
}

type allowedTokensRequest struct {
	Network       string `json:"network" binding:"required"`
	CollectionID  uint64 `json:"collectionId" binding:"required"`
	AllowedTokens string `json:"allowedTokens"`
}

// SetAllowedTokens restricts mass operations on a collection to a token
// range/list expression like "1-300,500"
func (h *handler) SetAllowedTokens(c *gin.Context) {
	var req allowedTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	network := domain.Network(req.Network)
	if !domain.IsValidNetwork(network) {
		respondBadRequest(c, "Unknown network")
		return
	}

	found, err := h.store.SetAllowedTokens(c.Request.Context(), network, req.CollectionID, req.AllowedTokens)
	if err != nil {
		respondInternalError(c, err, "Failed to set allowed tokens")
		return
	}
	if !found {
		respondBadRequest(c, "Collection not recognized")
		return
	}

	respondSuccess(c, nil)
}

// requireMainSale checks the authenticated admin is the configured main
// sale account. Mass sale endpoints move the main account's inventory, so
// token custody stays with one principal.
func (h *handler) requireMainSale(c *gin.Context) bool {
	caller := middleware.AdminAddress(c)
	if !domain.SameAddress(caller, h.mainSaleAddress) && !strings.EqualFold(caller, h.mainSaleAddress) {
		respondForbidden(c, "Caller is not the main sale account")
		return false
	}
	return true
}

type massListRequest struct {
	Network      string   `json:"network" binding:"required"`
	CollectionID uint64   `json:"collectionId" binding:"required"`
	TokenIDs     []uint64 `json:"tokenIds"`
	Price        string   `json:"price"`
	Currency     string   `json:"currency" binding:"required"`

	// Auction-only terms
	StartPrice string     `json:"startPrice"`
	PriceStep  string     `json:"priceStep"`
	StopAt     *time.Time `json:"stopAt"`
}

func (r *massListRequest) toListRequest(seller string, offerType domain.OfferType) massops.ListRequest {
	req := massops.ListRequest{
		Network:      domain.Network(r.Network),
		CollectionID: r.CollectionID,
		TokenIDs:     r.TokenIDs,
		Seller:       seller,
		Type:         offerType,
		Currency:     r.Currency,
	}
	if offerType == domain.OfferTypeFiat {
		req.FiatPrice = r.Price
	} else {
		req.Price = r.Price
	}
	return req
}

// massListResponse builds the envelope for a mass listing outcome.
// tokenIds carries every token the run listed or relisted.
func massListResponse(c *gin.Context, result massops.Result) {
	tokenIDs := make([]uint64, 0, len(result.Created)+len(result.Reactivated))
	tokenIDs = append(tokenIDs, result.Created...)
	tokenIDs = append(tokenIDs, result.Reactivated...)

	extra := envelope{
		"tokenIds":    tokenIDs,
		"created":     result.Created,
		"reactivated": result.Reactivated,
		"skipped":     result.Skipped,
	}
	if len(result.Failed) > 0 {
		failed := make(map[string]string, len(result.Failed))
		for id, reason := range result.Failed {
			failed[strconv.FormatUint(id, 10)] = reason
		}
		extra["failed"] = failed
	}
	respondSuccess(c, extra)
}

func (h *handler) runMassList(c *gin.Context, offerType domain.OfferType) {
	if !h.requireMainSale(c) {
		return
	}

	var req massListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	listReq := req.toListRequest(h.mainSaleAddress, offerType)

	var result massops.Result
	var err error
	if offerType == domain.OfferTypeAuction {
		if req.StartPrice == "" || req.PriceStep == "" || req.StopAt == nil {
			respondBadRequest(c, "Auction listings require startPrice, priceStep and stopAt")
			return
		}
		result, err = h.massops.MassListAuction(c.Request.Context(), listReq, massops.AuctionTerms{
			StartPrice: req.StartPrice,
			PriceStep:  req.PriceStep,
			StopAt:     *req.StopAt,
		})
	} else {
		if req.Price == "" {
			respondBadRequest(c, "Price is required")
			return
		}
		result, err = h.massops.MassList(c.Request.Context(), listReq)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput),
			errors.Is(err, domain.ErrCollectionNotFound):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "Failed to run mass listing",
				zap.String("network", req.Network),
				zap.Uint64("collection_id", req.CollectionID),
			)
		}
		return
	}

	massListResponse(c, result)
}

// MassListFixed lists owned tokens at a fixed chain-native price
func (h *handler) MassListFixed(c *gin.Context) {
	h.runMassList(c, domain.OfferTypeFixedPrice)
}

// MassListAuction lists owned tokens as auctions
func (h *handler) MassListAuction(c *gin.Context) {
	h.runMassList(c, domain.OfferTypeAuction)
}

// MassListFiat lists owned tokens at a decimal fiat price (scaled to cents)
func (h *handler) MassListFiat(c *gin.Context) {
	h.runMassList(c, domain.OfferTypeFiat)
}

type massCancelRequest struct {
	Network string `json:"network" binding:"required"`
	Type    string `json:"type"`
}

func (h *handler) runMassCancel(c *gin.Context, offerType domain.OfferType) {
	if !h.requireMainSale(c) {
		return
	}

	var req massCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	affected, err := h.massops.MassCancel(c.Request.Context(), domain.Network(req.Network), h.mainSaleAddress, offerType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "Failed to run mass cancel",
			zap.String("network", req.Network),
		)
		return
	}

	respondSuccess(c, envelope{"cancelled": affected})
}

// MassCancel cancels every active chain-sale offer of the main account.
// The optional type field selects fixed_price (default) or auction.
func (h *handler) MassCancel(c *gin.Context) {
	if !h.requireMainSale(c) {
		return
	}

	var req massCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	offerType := domain.OfferTypeFixedPrice
	if req.Type != "" {
		offerType = domain.OfferType(req.Type)
		if offerType == domain.OfferTypeFiat || !domain.IsValidOfferType(offerType) {
			respondBadRequest(c, "Type must be fixed_price or auction")
			return
		}
	}

	affected, err := h.massops.MassCancel(c.Request.Context(), domain.Network(req.Network), h.mainSaleAddress, offerType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "Failed to run mass cancel",
			zap.String("network", req.Network),
		)
		return
	}

	respondSuccess(c, envelope{"cancelled": affected})
}

// MassCancelFiat cancels every active fiat offer of the main account
func (h *handler) MassCancelFiat(c *gin.Context) {
	h.runMassCancel(c, domain.OfferTypeFiat)
}

type payOfferRequest struct {
	Network      string `json:"network" binding:"required"`
	CollectionID uint64 `json:"collectionId" binding:"required"`
	TokenID      uint64 `json:"tokenId" binding:"required"`
	Buyer        string `json:"buyer" binding:"required"`
	CardToken    string `json:"cardToken" binding:"required"`
	Email        string `json:"email"`
}

// PayOffer charges a card and transfers the token to the buyer
func (h *handler) PayOffer(c *gin.Context) {
	var req payOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	network := domain.Network(req.Network)
	if !domain.IsValidNetwork(network) {
		respondBadRequest(c, "Unknown network")
		return
	}

	trade, err := h.fiat.PayOffer(c.Request.Context(), fiat.PayOfferRequest{
		Network:      network,
		CollectionID: req.CollectionID,
		TokenID:      req.TokenID,
		Buyer:        req.Buyer,
		CardToken:    req.CardToken,
		Email:        req.Email,
	})
	if err != nil {
		var declined *domain.PaymentDeclined
		var transferErr *domain.TransferError
		var paymentErr *domain.PaymentError
		switch {
		case errors.Is(err, domain.ErrOfferNotFound):
			respondNotFound(c, "No active fiat offer for this token")
		case errors.Is(err, domain.ErrInvalidInput):
			respondBadRequest(c, err.Error())
		case errors.As(err, &declined):
			c.JSON(http.StatusBadRequest, envelope{
				"statusCode":   http.StatusBadRequest,
				"message":      "Payment declined",
				"responseCode": declined.ResponseCode,
			})
		case errors.As(err, &paymentErr):
			respondBadRequest(c, "Payment failed")
		case errors.As(err, &transferErr):
			respondInternalError(c, err, "Token transfer failed, payment refunded",
				zap.Uint64("collection_id", req.CollectionID),
				zap.Uint64("token_id", req.TokenID),
			)
		default:
			respondInternalError(c, err, "Failed to process payment")
		}
		return
	}

	respondSuccess(c, envelope{
		"trade": gin.H{
			"id":       trade.ID,
			"offerId":  trade.OfferID,
			"price":    trade.Price,
			"currency": trade.Currency,
		},
	})
}
