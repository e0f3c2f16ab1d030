package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/datatypes"

	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

// RunStoreTests runs the shared store test suite against any Store
// implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateAndGetOffer", testCreateAndGetOffer},
		{"AtMostOneActiveOffer", testAtMostOneActiveOffer},
		{"CancelThenRelist", testCancelThenRelist},
		{"TerminateOfferNotActive", testTerminateOfferNotActive},
		{"TerminateOffersBySeller", testTerminateOffersBySeller},
		{"SettleOffer", testSettleOffer},
		{"SettleOfferIdempotentSameBuyer", testSettleOfferIdempotentSameBuyer},
		{"SettleOfferRejectsSecondBuyer", testSettleOfferRejectsSecondBuyer},
		{"ApplyMassListing", testApplyMassListing},
		{"ApplyMassListingReRun", testApplyMassListingReRun},
		{"GetOffersBySellerTokens", testGetOffersBySellerTokens},
		{"ListOffersFilter", testListOffersFilter},
		{"ListActiveChainOffers", testListActiveChainOffers},
		{"ListExpiredAuctions", testListExpiredAuctions},
		{"BidsHighest", testBidsHighest},
		{"ListTrades", testListTrades},
		{"Collections", testCollections},
		{"TokensAndSearchIndex", testTokensAndSearchIndex},
		{"Settings", testSettings},
		{"AdminSessions", testAdminSessions},
		{"NFTTransferDedup", testNFTTransferDedup},
		{"MoneyTransferLifecycle", testMoneyTransferLifecycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := initDB(t)
			tt.fn(t, s)
		})
	}
}

func strPtr(s string) *string { return &s }
func u64Ptr(v uint64) *uint64 { return &v }

func newTestOffer(network domain.Network, collectionID, tokenID uint64, seller string, offerType domain.OfferType, status domain.OfferStatus, price string) *schema.Offer {
	return &schema.Offer{
		ID:             schema.NewID(),
		Network:        network,
		CollectionID:   collectionID,
		TokenID:        tokenID,
		Type:           offerType,
		Status:         status,
		Price:          price,
		Currency:       "QTZ",
		AddressFrom:    seller,
		BlockNumberAsk: u64Ptr(100),
	}
}

func testCreateAndGetOffer(t *testing.T, s Store) {
	ctx := context.Background()

	offer := newTestOffer(domain.NetworkQuartz, 10, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "1000000")
	require.NoError(t, s.CreateOffer(ctx, offer))

	got, err := s.GetOfferByID(ctx, offer.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, offer.ID, got.ID)
	assert.Equal(t, domain.OfferStatusActive, got.Status)
	assert.Equal(t, "1000000", got.Price)

	active, err := s.GetActiveOffer(ctx, domain.NetworkQuartz, 10, 1)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, offer.ID, active.ID)

	// Absent token has no active offer
	none, err := s.GetActiveOffer(ctx, domain.NetworkQuartz, 10, 999)
	require.NoError(t, err)
	assert.Nil(t, none)

	missing, err := s.GetOfferByID(ctx, "no-such-offer")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testAtMostOneActiveOffer(t *testing.T, s Store) {
	ctx := context.Background()

	first := newTestOffer(domain.NetworkQuartz, 20, 5, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "500")
	require.NoError(t, s.CreateOffer(ctx, first))

	// A second Active offer for the same token is rejected even with a
	// different seller and type
	second := newTestOffer(domain.NetworkQuartz, 20, 5, "seller-b", domain.OfferTypeAuction, domain.OfferStatusActive, "900")
	err := s.CreateOffer(ctx, second)
	require.ErrorIs(t, err, domain.ErrOfferConflict)
}

func testCancelThenRelist(t *testing.T, s Store) {
	ctx := context.Background()

	first := newTestOffer(domain.NetworkQuartz, 21, 7, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "500")
	require.NoError(t, s.CreateOffer(ctx, first))

	terminated, err := s.TerminateOffer(ctx, first.ID, domain.OfferStatusCancelled, u64Ptr(120))
	require.NoError(t, err)
	assert.True(t, terminated)

	active, err := s.GetActiveOffer(ctx, domain.NetworkQuartz, 21, 7)
	require.NoError(t, err)
	assert.Nil(t, active)

	// Cancelled row no longer occupies the active slot
	second := newTestOffer(domain.NetworkQuartz, 21, 7, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "800")
	require.NoError(t, s.CreateOffer(ctx, second))

	// Both rows survive as audit trail
	cid := uint64(21)
	tid := uint64(7)
	_, total, err := s.ListOffers(ctx, OfferFilter{
		Network:      domain.NetworkQuartz,
		CollectionID: &cid,
		TokenID:      &tid,
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
}

func testTerminateOfferNotActive(t *testing.T, s Store) {
	ctx := context.Background()

	offer := newTestOffer(domain.NetworkQuartz, 22, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusCancelled, "500")
	require.NoError(t, s.CreateOffer(ctx, offer))

	terminated, err := s.TerminateOffer(ctx, offer.ID, domain.OfferStatusCancelled, u64Ptr(130))
	require.NoError(t, err)
	assert.False(t, terminated)

	terminated, err = s.TerminateOffer(ctx, "no-such-offer", domain.OfferStatusCancelled, nil)
	require.NoError(t, err)
	assert.False(t, terminated)
}

func testTerminateOffersBySeller(t *testing.T, s Store) {
	ctx := context.Background()

	for tid := uint64(1); tid <= 3; tid++ {
		require.NoError(t, s.CreateOffer(ctx,
			newTestOffer(domain.NetworkQuartz, 30, tid, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "500")))
	}
	// Different type and different seller stay untouched
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 30, 4, "seller-a", domain.OfferTypeAuction, domain.OfferStatusActive, "500")))
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 30, 5, "seller-b", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "500")))

	affected, err := s.TerminateOffersBySeller(ctx, domain.NetworkQuartz, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusRemovedByAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	remaining, _, err := s.ListOffers(ctx, OfferFilter{
		Network:  domain.NetworkQuartz,
		Statuses: []domain.OfferStatus{domain.OfferStatusActive},
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	// Re-run finds nothing left to terminate
	affected, err = s.TerminateOffersBySeller(ctx, domain.NetworkQuartz, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusRemovedByAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func testSettleOffer(t *testing.T, s Store) {
	ctx := context.Background()

	offer := newTestOffer(domain.NetworkQuartz, 40, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "1000")
	require.NoError(t, s.CreateOffer(ctx, offer))

	tradeDate := time.Now().UTC().Truncate(time.Second)
	trade, err := s.SettleOffer(ctx, SettleOfferInput{
		OfferID:     offer.ID,
		Buyer:       "buyer-x",
		BlockNumber: u64Ptr(200),
		Commission:  "100",
		Method:      domain.SettlementMethodOnChain,
		TradeDate:   tradeDate,
	})
	require.NoError(t, err)
	require.NotNil(t, trade)
	assert.Equal(t, offer.ID, trade.OfferID)
	assert.Equal(t, "seller-a", trade.Seller)
	assert.Equal(t, "buyer-x", trade.Buyer)
	assert.Equal(t, "1000", trade.Price)
	assert.Equal(t, "100", trade.Commission)

	settled, err := s.GetOfferByID(ctx, offer.ID)
	require.NoError(t, err)
	require.NotNil(t, settled)
	assert.Equal(t, domain.OfferStatusBought, settled.Status)
	require.NotNil(t, settled.AddressTo)
	assert.Equal(t, "buyer-x", *settled.AddressTo)
	require.NotNil(t, settled.BlockNumberBuy)
	assert.Equal(t, uint64(200), *settled.BlockNumberBuy)

	// Token's active slot is free again
	active, err := s.GetActiveOffer(ctx, domain.NetworkQuartz, 40, 1)
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = s.SettleOffer(ctx, SettleOfferInput{
		OfferID:   "no-such-offer",
		Buyer:     "buyer-x",
		Method:    domain.SettlementMethodOnChain,
		TradeDate: tradeDate,
	})
	require.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func testSettleOfferIdempotentSameBuyer(t *testing.T, s Store) {
	ctx := context.Background()

	offer := newTestOffer(domain.NetworkQuartz, 41, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "1000")
	require.NoError(t, s.CreateOffer(ctx, offer))

	input := SettleOfferInput{
		OfferID:     offer.ID,
		Buyer:       "buyer-x",
		BlockNumber: u64Ptr(210),
		Commission:  "100",
		Method:      domain.SettlementMethodOnChain,
		TradeDate:   time.Now().UTC(),
	}

	first, err := s.SettleOffer(ctx, input)
	require.NoError(t, err)

	// Re-delivered chain event settles again with the same buyer: no error,
	// no second trade row
	second, err := s.SettleOffer(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, total, err := s.ListTrades(ctx, TradeFilter{Network: domain.NetworkQuartz, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
}

func testSettleOfferRejectsSecondBuyer(t *testing.T, s Store) {
	ctx := context.Background()

	offer := newTestOffer(domain.NetworkQuartz, 42, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "1000")
	require.NoError(t, s.CreateOffer(ctx, offer))

	_, err := s.SettleOffer(ctx, SettleOfferInput{
		OfferID:   offer.ID,
		Buyer:     "buyer-x",
		Method:    domain.SettlementMethodOnChain,
		TradeDate: time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = s.SettleOffer(ctx, SettleOfferInput{
		OfferID:   offer.ID,
		Buyer:     "buyer-y",
		Method:    domain.SettlementMethodOnChain,
		TradeDate: time.Now().UTC(),
	})
	require.ErrorIs(t, err, domain.ErrOfferConflict)
}

func testApplyMassListing(t *testing.T, s Store) {
	ctx := context.Background()

	cancelled := newTestOffer(domain.NetworkQuartz, 50, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusCancelled, "500")
	require.NoError(t, s.CreateOffer(ctx, cancelled))

	creates := []*schema.Offer{
		newTestOffer(domain.NetworkQuartz, 50, 2, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "750"),
		newTestOffer(domain.NetworkQuartz, 50, 3, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "750"),
	}
	reactivate := ReactivateBatch{
		IDs: []string{cancelled.ID},
		Terms: OfferTerms{
			Type:           domain.OfferTypeFixedPrice,
			Price:          "750",
			Currency:       "QTZ",
			BlockNumberAsk: u64Ptr(300),
		},
	}

	require.NoError(t, s.ApplyMassListing(ctx, creates, reactivate))

	// Cancelled row was reused, not duplicated
	reused, err := s.GetActiveOffer(ctx, domain.NetworkQuartz, 50, 1)
	require.NoError(t, err)
	require.NotNil(t, reused)
	assert.Equal(t, cancelled.ID, reused.ID)
	assert.Equal(t, "750", reused.Price)
	assert.Nil(t, reused.BlockNumberCancel)

	active, _, err := s.ListOffers(ctx, OfferFilter{
		Network:  domain.NetworkQuartz,
		Statuses: []domain.OfferStatus{domain.OfferStatusActive},
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func testApplyMassListingReRun(t *testing.T, s Store) {
	ctx := context.Background()

	offer := newTestOffer(domain.NetworkQuartz, 51, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "750")
	require.NoError(t, s.CreateOffer(ctx, offer))

	// Reactivating an offer that is already Active matches no cancelled rows
	// and changes nothing
	require.NoError(t, s.ApplyMassListing(ctx, nil, ReactivateBatch{
		IDs: []string{offer.ID},
		Terms: OfferTerms{
			Type:     domain.OfferTypeFixedPrice,
			Price:    "999",
			Currency: "QTZ",
		},
	}))

	got, err := s.GetOfferByID(ctx, offer.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "750", got.Price)

	// Empty batch is a no-op
	require.NoError(t, s.ApplyMassListing(ctx, nil, ReactivateBatch{}))
}

func testGetOffersBySellerTokens(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 60, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "500")))
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 60, 2, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusCancelled, "500")))
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 60, 3, "seller-b", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "500")))

	offers, err := s.GetOffersBySellerTokens(ctx, domain.NetworkQuartz, 60, "seller-a", []uint64{1, 2, 3}, domain.OfferTypeFixedPrice)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, uint64(1), offers[0].TokenID)
	assert.Equal(t, uint64(2), offers[1].TokenID)

	empty, err := s.GetOffersBySellerTokens(ctx, domain.NetworkQuartz, 60, "seller-a", nil, domain.OfferTypeFixedPrice)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testListOffersFilter(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 70, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "100")))
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 70, 2, "seller-a", domain.OfferTypeAuction, domain.OfferStatusActive, "5000")))
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkOpal, 70, 3, "seller-b", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "300")))

	byNetwork, total, err := s.ListOffers(ctx, OfferFilter{Network: domain.NetworkQuartz, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, byNetwork, 2)

	byType, _, err := s.ListOffers(ctx, OfferFilter{
		Network: domain.NetworkQuartz,
		Types:   []domain.OfferType{domain.OfferTypeAuction},
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, uint64(2), byType[0].TokenID)

	bySeller, _, err := s.ListOffers(ctx, OfferFilter{Seller: "seller-b", Limit: 10})
	require.NoError(t, err)
	require.Len(t, bySeller, 1)
	assert.Equal(t, domain.NetworkOpal, bySeller[0].Network)

	byPrice, _, err := s.ListOffers(ctx, OfferFilter{MinPrice: "200", MaxPrice: "6000", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byPrice, 2)

	// Pagination: count reflects the full match, rows the page
	page, total, err := s.ListOffers(ctx, OfferFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, page, 1)
}

func testListActiveChainOffers(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 80, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "100")))
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 80, 2, "seller-a", domain.OfferTypeAuction, domain.OfferStatusActive, "100")))
	// Fiat offers have no on-chain counterpart to reconcile against
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 80, 3, "seller-a", domain.OfferTypeFiat, domain.OfferStatusActive, "100")))
	require.NoError(t, s.CreateOffer(ctx,
		newTestOffer(domain.NetworkQuartz, 80, 4, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusCancelled, "100")))

	offers, err := s.ListActiveChainOffers(ctx, 10, "")
	require.NoError(t, err)
	assert.Len(t, offers, 2)
	for _, o := range offers {
		assert.NotEqual(t, domain.OfferTypeFiat, o.Type)
		assert.Equal(t, domain.OfferStatusActive, o.Status)
	}

	// Keyset cursor: paging after the first offer's ID yields only the rest,
	// even if earlier rows leave the active set between pages
	rest, err := s.ListActiveChainOffers(ctx, 10, offers[0].ID)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, offers[1].ID, rest[0].ID)

	_, err = s.TerminateOffer(ctx, offers[0].ID, domain.OfferStatusCancelled, nil)
	require.NoError(t, err)
	rest, err = s.ListActiveChainOffers(ctx, 1, offers[0].ID)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, offers[1].ID, rest[0].ID)
}

func testListExpiredAuctions(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	expired := newTestOffer(domain.NetworkQuartz, 90, 1, "seller-a", domain.OfferTypeAuction, domain.OfferStatusActive, "100")
	expired.StopAt = timePtr(now.Add(-time.Hour))
	require.NoError(t, s.CreateOffer(ctx, expired))

	running := newTestOffer(domain.NetworkQuartz, 90, 2, "seller-a", domain.OfferTypeAuction, domain.OfferStatusActive, "100")
	running.StopAt = timePtr(now.Add(time.Hour))
	require.NoError(t, s.CreateOffer(ctx, running))

	openEnded := newTestOffer(domain.NetworkQuartz, 90, 3, "seller-a", domain.OfferTypeAuction, domain.OfferStatusActive, "100")
	require.NoError(t, s.CreateOffer(ctx, openEnded))

	auctions, err := s.ListExpiredAuctions(ctx, now)
	require.NoError(t, err)
	require.Len(t, auctions, 1)
	assert.Equal(t, expired.ID, auctions[0].ID)
}

func testBidsHighest(t *testing.T, s Store) {
	ctx := context.Background()

	offer := newTestOffer(domain.NetworkQuartz, 100, 1, "seller-a", domain.OfferTypeAuction, domain.OfferStatusActive, "100")
	require.NoError(t, s.CreateOffer(ctx, offer))

	none, err := s.GetHighestBid(ctx, offer.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	for _, b := range []struct {
		bidder string
		amount string
		block  uint64
	}{
		{"bidder-a", "150", 400},
		{"bidder-b", "300", 401},
		{"bidder-c", "200", 402},
	} {
		require.NoError(t, s.CreateBid(ctx, &schema.Bid{
			OfferID:     offer.ID,
			Bidder:      b.bidder,
			Amount:      b.amount,
			BlockNumber: b.block,
		}))
	}

	highest, err := s.GetHighestBid(ctx, offer.ID)
	require.NoError(t, err)
	require.NotNil(t, highest)
	assert.Equal(t, "bidder-b", highest.Bidder)
	assert.Equal(t, "300", highest.Amount)
}

func testListTrades(t *testing.T, s Store) {
	ctx := context.Background()

	for tid := uint64(1); tid <= 2; tid++ {
		offer := newTestOffer(domain.NetworkQuartz, 110, tid, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "1000")
		require.NoError(t, s.CreateOffer(ctx, offer))
		_, err := s.SettleOffer(ctx, SettleOfferInput{
			OfferID:    offer.ID,
			Buyer:      "buyer-x",
			Method:     domain.SettlementMethodOnChain,
			Commission: "100",
			TradeDate:  time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	trades, total, err := s.ListTrades(ctx, TradeFilter{Network: domain.NetworkQuartz, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, trades, 2)

	buyer, _, err := s.ListTrades(ctx, TradeFilter{Buyer: "buyer-x", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, buyer, 1)

	none, total, err := s.ListTrades(ctx, TradeFilter{Seller: "seller-z", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)
	assert.Empty(t, none)
}

func testCollections(t *testing.T, s Store) {
	ctx := context.Background()

	collection := &schema.Collection{
		Network:      domain.NetworkQuartz,
		CollectionID: 120,
		Name:         "Chained Dogs",
		TokenPrefix:  "DOG",
		Owner:        strPtr("owner-a"),
	}
	require.NoError(t, s.UpsertCollection(ctx, collection))

	got, err := s.GetCollection(ctx, domain.NetworkQuartz, 120)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Chained Dogs", got.Name)
	assert.False(t, got.Enabled)

	ok, err := s.SetCollectionEnabled(ctx, domain.NetworkQuartz, 120, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetAllowedTokens(ctx, domain.NetworkQuartz, 120, "1-300,500")
	require.NoError(t, err)
	assert.True(t, ok)

	// Metadata refresh keeps the admin-owned columns
	refreshed := &schema.Collection{
		Network:      domain.NetworkQuartz,
		CollectionID: 120,
		Name:         "Chained Dogs v2",
	}
	require.NoError(t, s.UpsertCollection(ctx, refreshed))

	got, err = s.GetCollection(ctx, domain.NetworkQuartz, 120)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Chained Dogs v2", got.Name)
	assert.True(t, got.Enabled)
	assert.Equal(t, "1-300,500", got.AllowedTokens)

	ok, err = s.SetCollectionEnabled(ctx, domain.NetworkQuartz, 999, true)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.UpsertCollection(ctx, &schema.Collection{
		Network:      domain.NetworkQuartz,
		CollectionID: 121,
		Name:         "Disabled",
	}))

	enabled, err := s.ListCollections(ctx, domain.NetworkQuartz, true)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, uint64(120), enabled[0].CollectionID)

	all, err := s.ListCollections(ctx, domain.NetworkQuartz, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testTokensAndSearchIndex(t *testing.T, s Store) {
	ctx := context.Background()

	token := &schema.Token{
		Network:      domain.NetworkQuartz,
		CollectionID: 130,
		TokenID:      1,
		Owner:        strPtr("owner-a"),
	}
	require.NoError(t, s.UpsertToken(ctx, token))

	token.Owner = strPtr("owner-b")
	require.NoError(t, s.UpsertToken(ctx, token))

	got, err := s.GetToken(ctx, domain.NetworkQuartz, 130, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner-b", *got.Owner)

	entries := []schema.SearchIndexEntry{
		{Network: domain.NetworkQuartz, CollectionID: 130, TokenID: 1, Key: "prefix", Items: datatypes.JSON(`["DOG"]`)},
		{Network: domain.NetworkQuartz, CollectionID: 130, TokenID: 1, Key: "Traits", Items: datatypes.JSON(`["Fluffy","Brave"]`), IsTrait: true},
	}
	require.NoError(t, s.ReplaceSearchIndex(ctx, domain.NetworkQuartz, 130, 1, entries))

	// Regeneration replaces, never merges
	replacement := []schema.SearchIndexEntry{
		{Network: domain.NetworkQuartz, CollectionID: 130, TokenID: 1, Key: "prefix", Items: datatypes.JSON(`["CAT"]`)},
	}
	require.NoError(t, s.ReplaceSearchIndex(ctx, domain.NetworkQuartz, 130, 1, replacement))

	cid := uint64(130)
	tid := uint64(1)
	offer := newTestOffer(domain.NetworkQuartz, 130, 1, "seller-a", domain.OfferTypeFixedPrice, domain.OfferStatusActive, "100")
	require.NoError(t, s.CreateOffer(ctx, offer))

	matched, _, err := s.ListOffers(ctx, OfferFilter{
		Network:      domain.NetworkQuartz,
		CollectionID: &cid,
		TokenID:      &tid,
		TraitKey:     "prefix",
		TraitValue:   "CAT",
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	stale, _, err := s.ListOffers(ctx, OfferFilter{
		Network:    domain.NetworkQuartz,
		TraitKey:   "Traits",
		TraitValue: "Fluffy",
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Empty(t, stale)

	// Empty regeneration clears all rows for the token
	require.NoError(t, s.ReplaceSearchIndex(ctx, domain.NetworkQuartz, 130, 1, nil))
}

func testSettings(t *testing.T, s Store) {
	ctx := context.Background()

	missing, err := s.GetSetting(ctx, "main_sale_active")
	require.NoError(t, err)
	assert.Equal(t, "", missing)

	require.NoError(t, s.SetSetting(ctx, "main_sale_active", "true"))

	got, err := s.GetSetting(ctx, "main_sale_active")
	require.NoError(t, err)
	assert.Equal(t, "true", got)

	require.NoError(t, s.SetSetting(ctx, "main_sale_active", "false"))

	got, err = s.GetSetting(ctx, "main_sale_active")
	require.NoError(t, err)
	assert.Equal(t, "false", got)
}

func testAdminSessions(t *testing.T, s Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateAdminSession(ctx, &schema.AdminSession{
		Address:   "admin-a",
		Token:     "token-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, s.CreateAdminSession(ctx, &schema.AdminSession{
		Address:   "admin-a",
		Token:     "token-2",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func testNFTTransferDedup(t *testing.T, s Store) {
	ctx := context.Background()

	transfer := &schema.NFTTransfer{
		Network:      domain.NetworkQuartz,
		CollectionID: 140,
		TokenID:      1,
		AddressFrom:  "owner-a",
		AddressTo:    "owner-b",
		BlockNumber:  500,
	}
	require.NoError(t, s.CreateNFTTransfer(ctx, transfer))

	// Re-delivered event is silently skipped
	duplicate := &schema.NFTTransfer{
		Network:      domain.NetworkQuartz,
		CollectionID: 140,
		TokenID:      1,
		AddressFrom:  "owner-a",
		AddressTo:    "owner-b",
		BlockNumber:  500,
	}
	require.NoError(t, s.CreateNFTTransfer(ctx, duplicate))
}

func testMoneyTransferLifecycle(t *testing.T, s Store) {
	ctx := context.Background()

	transfer := &schema.MoneyTransfer{
		ID:          schema.NewID(),
		PaymentID:   "pay_123",
		OfferID:     "offer-1",
		Amount:      "1500",
		Currency:    "USD",
		AddressFrom: "buyer-x",
		AddressTo:   "seller-a",
		Status:      schema.MoneyTransferStatusPending,
	}
	require.NoError(t, s.CreateMoneyTransfer(ctx, transfer))

	pending, err := s.ListPendingMoneyTransfers(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, transfer.ID, pending[0].ID)

	require.NoError(t, s.UpdateMoneyTransferStatus(ctx, transfer.ID, schema.MoneyTransferStatusCompleted, u64Ptr(600)))

	pending, err = s.ListPendingMoneyTransfers(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func timePtr(t time.Time) *time.Time { return &t }
