package rest_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/api/auth"
	"github.com/gallerium/marketplace-v2/internal/api/rest"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/fiat"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/massops"
	"github.com/gallerium/marketplace-v2/internal/mocks"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

const (
	mainSaleAddress = "0xMainSaleAccount"
	otherAdmin      = "0xOtherAdmin"

	mainSaleToken   = "main-sale-token"
	otherAdminToken = "other-admin-token"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// staticValidator maps fixed bearer tokens to admin addresses
type staticValidator struct{}

func (staticValidator) ValidateToken(token string) (string, error) {
	switch token {
	case mainSaleToken:
		return mainSaleAddress, nil
	case otherAdminToken:
		return otherAdmin, nil
	default:
		return "", auth.ErrUnauthorized
	}
}

type testHandlerMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	massops *mocks.MockMassOps
	fiat    *mocks.MockFiatCheckout
	auth    *mocks.MockAdminAuthenticator
	chain   *mocks.MockChainClient
	router  *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandlerMocks {
	ctrl := gomock.NewController(t)

	tm := &testHandlerMocks{
		ctrl:    ctrl,
		store:   mocks.NewMockStore(ctrl),
		massops: mocks.NewMockMassOps(ctrl),
		fiat:    mocks.NewMockFiatCheckout(ctrl),
		auth:    mocks.NewMockAdminAuthenticator(ctrl),
		chain:   mocks.NewMockChainClient(ctrl),
	}

	handler := rest.NewHandler(tm.store, tm.massops, tm.fiat, tm.auth, map[domain.Network]adapter.ChainClient{
		domain.NetworkQuartz: tm.chain,
	}, mainSaleAddress)

	tm.router = gin.New()
	rest.SetupRoutes(tm.router, handler, staticValidator{})
	return tm
}

func tearDownTestHandler(tm *testHandlerMocks) {
	tm.ctrl.Finish()
}

func doRequest(tm *testHandlerMocks, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func strPtr(s string) *string { return &s }

func sampleOffer() *schema.Offer {
	return &schema.Offer{
		ID:           "01HV0RESTOFFER00000000000",
		Network:      domain.NetworkQuartz,
		CollectionID: 42,
		TokenID:      7,
		Type:         domain.OfferTypeFixedPrice,
		Status:       domain.OfferStatusActive,
		Price:        "5000000000000000000",
		Currency:     "QTZ",
		AddressFrom:  mainSaleAddress,
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestListOffers(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		ListOffers(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filter store.OfferFilter) ([]schema.Offer, uint64, error) {
			assert.Equal(t, domain.NetworkQuartz, filter.Network)
			assert.Equal(t, []domain.OfferStatus{domain.OfferStatusActive}, filter.Statuses)
			assert.Equal(t, 20, filter.Limit)
			return []schema.Offer{*sampleOffer()}, 1, nil
		})

	w := doRequest(tm, http.MethodGet, "/api/v1/offers?network=quartz&status=active", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])
	offers := body["offers"].([]interface{})
	require.Len(t, offers, 1)
	offer := offers[0].(map[string]interface{})
	assert.Equal(t, "01HV0RESTOFFER00000000000", offer["id"])
	assert.Equal(t, "5000000000000000000", offer["price"])
	assert.Equal(t, mainSaleAddress, offer["seller"])
}

func TestListOffersUnknownNetwork(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodGet, "/api/v1/offers?network=solana", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(400), decodeBody(t, w)["statusCode"])
}

func TestGetOffer(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	offer := sampleOffer()
	tm.store.EXPECT().GetOfferByID(gomock.Any(), offer.ID).Return(offer, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/offers/"+offer.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, offer.ID, body["offer"].(map[string]interface{})["id"])
	assert.NotContains(t, body, "highestBid")
}

func TestGetOfferAuctionIncludesHighestBid(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	offer := sampleOffer()
	offer.Type = domain.OfferTypeAuction
	offer.StartPrice = strPtr("1000000000000000000")
	tm.store.EXPECT().GetOfferByID(gomock.Any(), offer.ID).Return(offer, nil)
	tm.store.EXPECT().GetHighestBid(gomock.Any(), offer.ID).Return(&schema.Bid{
		OfferID:     offer.ID,
		Bidder:      "0xBidder",
		Amount:      "2000000000000000000",
		BlockNumber: 150,
	}, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/offers/"+offer.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	bid := decodeBody(t, w)["highestBid"].(map[string]interface{})
	assert.Equal(t, "0xBidder", bid["bidder"])
	assert.Equal(t, "2000000000000000000", bid["amount"])
}

func TestGetOfferNotFound(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().GetOfferByID(gomock.Any(), "missing").Return(nil, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/offers/missing", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCollectionsOnlyEnabled(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		ListCollections(gomock.Any(), domain.NetworkQuartz, true).
		Return([]schema.Collection{{
			Network:      domain.NetworkQuartz,
			CollectionID: 42,
			Enabled:      true,
			Name:         "Chimera",
		}}, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/collections?network=quartz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	collections := decodeBody(t, w)["collections"].([]interface{})
	require.Len(t, collections, 1)
	assert.Equal(t, "Chimera", collections[0].(map[string]interface{})["name"])
}

func TestLogin(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	expiresAt := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	tm.auth.EXPECT().
		Login(gomock.Any(), "0xAdmin", int64(1700000000), "0xSignature").
		Return(&auth.Session{Token: "issued-token", Address: "0xadmin", ExpiresAt: expiresAt}, nil)

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/login", "", gin.H{
		"address":   "0xAdmin",
		"timestamp": 1700000000,
		"signature": "0xSignature",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(200), body["statusCode"])
	assert.Equal(t, "success", body["message"])
	assert.Equal(t, "issued-token", body["token"])
}

func TestLoginRejected(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.auth.EXPECT().
		Login(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: challenge expired", auth.ErrUnauthorized))

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/login", "", gin.H{
		"address":   "0xAdmin",
		"timestamp": 1700000000,
		"signature": "0xSignature",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodGet, "/api/v1/admin/collections", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(tm, http.MethodGet, "/api/v1/admin/collections", "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminListCollectionsIncludesDisabled(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		ListCollections(gomock.Any(), domain.Network(""), false).
		Return([]schema.Collection{
			{Network: domain.NetworkQuartz, CollectionID: 42, Enabled: true},
			{Network: domain.NetworkQuartz, CollectionID: 43, Enabled: false},
		}, nil)

	w := doRequest(tm, http.MethodGet, "/api/v1/admin/collections", otherAdminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["collections"], 2)
}

func TestEnableCollectionKnown(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		GetCollection(gomock.Any(), domain.NetworkQuartz, uint64(42)).
		Return(&schema.Collection{Network: domain.NetworkQuartz, CollectionID: 42}, nil)
	tm.store.EXPECT().
		SetCollectionEnabled(gomock.Any(), domain.NetworkQuartz, uint64(42), true).
		Return(true, nil)

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/collections", otherAdminToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestEnableCollectionCachesUnknown(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		GetCollection(gomock.Any(), domain.NetworkQuartz, uint64(42)).
		Return(nil, nil)
	tm.chain.EXPECT().
		CollectionInfo(gomock.Any(), uint64(42)).
		Return(&adapter.ChainCollection{Name: "Chimera", TokenPrefix: "CHIM", Owner: "0xCreator"}, nil)
	tm.store.EXPECT().
		UpsertCollection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, collection *schema.Collection) error {
			assert.Equal(t, uint64(42), collection.CollectionID)
			assert.Equal(t, "Chimera", collection.Name)
			assert.False(t, collection.Enabled)
			return nil
		})
	tm.store.EXPECT().
		SetCollectionEnabled(gomock.Any(), domain.NetworkQuartz, uint64(42), true).
		Return(true, nil)

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/collections", otherAdminToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestEnableCollectionUnknownOnChain(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		GetCollection(gomock.Any(), domain.NetworkQuartz, uint64(42)).
		Return(nil, nil)
	tm.chain.EXPECT().
		CollectionInfo(gomock.Any(), uint64(42)).
		Return(nil, errors.New("collection does not exist"))

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/collections", otherAdminToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDisableCollection(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		SetCollectionEnabled(gomock.Any(), domain.NetworkQuartz, uint64(42), false).
		Return(true, nil)

	w := doRequest(tm, http.MethodDelete, "/api/v1/admin/collections/42?network=quartz", otherAdminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSetAllowedTokens(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.store.EXPECT().
		SetAllowedTokens(gomock.Any(), domain.NetworkQuartz, uint64(42), "1-300,500").
		Return(true, nil)

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/tokens", otherAdminToken, gin.H{
		"network":       "quartz",
		"collectionId":  42,
		"allowedTokens": "1-300,500",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMassListFixed(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.massops.EXPECT().
		MassList(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req massops.ListRequest) (massops.Result, error) {
			assert.Equal(t, domain.NetworkQuartz, req.Network)
			assert.Equal(t, uint64(42), req.CollectionID)
			assert.Equal(t, mainSaleAddress, req.Seller)
			assert.Equal(t, domain.OfferTypeFixedPrice, req.Type)
			assert.Equal(t, "5000000000000000000", req.Price)
			assert.Empty(t, req.FiatPrice)
			return massops.Result{
				Created:     []uint64{1, 2},
				Reactivated: []uint64{3},
				Skipped:     []uint64{4},
			}, nil
		})

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/offers/fixed", mainSaleToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"tokenIds":     []uint64{1, 2, 3, 4},
		"price":        "5000000000000000000",
		"currency":     "QTZ",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(200), body["statusCode"])
	assert.Equal(t, "success", body["message"])
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, body["tokenIds"])
	assert.Equal(t, []interface{}{float64(4)}, body["skipped"])
}

func TestMassListRequiresMainSaleAccount(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/offers/fixed", otherAdminToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"price":        "5000000000000000000",
		"currency":     "QTZ",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, float64(403), decodeBody(t, w)["statusCode"])
}

func TestMassListBusinessFailure(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.massops.EXPECT().
		MassList(gomock.Any(), gomock.Any()).
		Return(massops.Result{}, fmt.Errorf("%w: collection 42 is not enabled", domain.ErrCollectionNotFound))

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/offers/fixed", mainSaleToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"price":        "5000000000000000000",
		"currency":     "QTZ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMassListAuction(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	stopAt := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	tm.massops.EXPECT().
		MassListAuction(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req massops.ListRequest, terms massops.AuctionTerms) (massops.Result, error) {
			assert.Equal(t, domain.OfferTypeAuction, req.Type)
			assert.Equal(t, "1000000000000000000", terms.StartPrice)
			assert.Equal(t, "100000000000000000", terms.PriceStep)
			assert.True(t, terms.StopAt.Equal(stopAt))
			return massops.Result{Created: []uint64{1}}, nil
		})

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/offers/auction", mainSaleToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"tokenIds":     []uint64{1},
		"currency":     "QTZ",
		"startPrice":   "1000000000000000000",
		"priceStep":    "100000000000000000",
		"stopAt":       stopAt,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{float64(1)}, decodeBody(t, w)["tokenIds"])
}

func TestMassListAuctionMissingTerms(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/offers/auction", mainSaleToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"currency":     "QTZ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMassListFiat(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.massops.EXPECT().
		MassList(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req massops.ListRequest) (massops.Result, error) {
			assert.Equal(t, domain.OfferTypeFiat, req.Type)
			assert.Equal(t, "150.50", req.FiatPrice)
			assert.Empty(t, req.Price)
			return massops.Result{Created: []uint64{9}}, nil
		})

	w := doRequest(tm, http.MethodPost, "/api/v1/admin/offers/fiat", mainSaleToken, gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"tokenIds":     []uint64{9},
		"price":        "150.50",
		"currency":     "USD",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMassCancel(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.massops.EXPECT().
		MassCancel(gomock.Any(), domain.NetworkQuartz, mainSaleAddress, domain.OfferTypeFixedPrice).
		Return(int64(12), nil)

	w := doRequest(tm, http.MethodDelete, "/api/v1/admin/offers", mainSaleToken, gin.H{
		"network": "quartz",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(12), decodeBody(t, w)["cancelled"])
}

func TestMassCancelFiatType(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.massops.EXPECT().
		MassCancel(gomock.Any(), domain.NetworkQuartz, mainSaleAddress, domain.OfferTypeFiat).
		Return(int64(3), nil)

	w := doRequest(tm, http.MethodDelete, "/api/v1/admin/offers/fiat", mainSaleToken, gin.H{
		"network": "quartz",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["cancelled"])
}

func TestMassCancelRejectsFiatTypeOnChainEndpoint(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := doRequest(tm, http.MethodDelete, "/api/v1/admin/offers", mainSaleToken, gin.H{
		"network": "quartz",
		"type":    "fiat",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayOffer(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.fiat.EXPECT().
		PayOffer(gomock.Any(), fiat.PayOfferRequest{
			Network:      domain.NetworkQuartz,
			CollectionID: 42,
			TokenID:      7,
			Buyer:        "0xBuyer",
			CardToken:    "tok_visa",
			Email:        "buyer@example.com",
		}).
		Return(&schema.Trade{
			ID:       "01HV0RESTTRADE00000000000",
			OfferID:  "01HV0RESTOFFER00000000000",
			Price:    "15050",
			Currency: "USD",
		}, nil)

	w := doRequest(tm, http.MethodPost, "/api/v1/pay", "", gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"tokenId":      7,
		"buyer":        "0xBuyer",
		"cardToken":    "tok_visa",
		"email":        "buyer@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	trade := decodeBody(t, w)["trade"].(map[string]interface{})
	assert.Equal(t, "15050", trade["price"])
}

func TestPayOfferNoActiveOffer(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.fiat.EXPECT().
		PayOffer(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrOfferNotFound)

	w := doRequest(tm, http.MethodPost, "/api/v1/pay", "", gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"tokenId":      7,
		"buyer":        "0xBuyer",
		"cardToken":    "tok_visa",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayOfferDeclined(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.fiat.EXPECT().
		PayOffer(gomock.Any(), gomock.Any()).
		Return(nil, &domain.PaymentDeclined{ResponseCode: "51"})

	w := doRequest(tm, http.MethodPost, "/api/v1/pay", "", gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"tokenId":      7,
		"buyer":        "0xBuyer",
		"cardToken":    "tok_visa",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "51", body["responseCode"])
}

func TestPayOfferTransferFailure(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.fiat.EXPECT().
		PayOffer(gomock.Any(), gomock.Any()).
		Return(nil, &domain.TransferError{Err: errors.New("chain timeout")})

	w := doRequest(tm, http.MethodPost, "/api/v1/pay", "", gin.H{
		"network":      "quartz",
		"collectionId": 42,
		"tokenId":      7,
		"buyer":        "0xBuyer",
		"cardToken":    "tok_visa",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
