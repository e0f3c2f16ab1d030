package sweeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/ledger"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/mocks"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
	"github.com/gallerium/marketplace-v2/internal/sweeper"
)

// testReconcilerMocks contains all the mocks needed for testing the reconciler
type testReconcilerMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	ledger  *mocks.MockReconcileLedger
	chain   *mocks.MockChainClient
	clock   *mocks.MockClock
	sweeper sweeper.Sweeper
}

// setupTestReconciler creates all the mocks and sweeper for testing
func setupTestReconciler(t *testing.T) *testReconcilerMocks {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testReconcilerMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		ledger: mocks.NewMockReconcileLedger(ctrl),
		chain:  mocks.NewMockChainClient(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}

	config := &sweeper.OfferReconcilerConfig{
		BatchSize:      10,
		WorkerPoolSize: 2,
	}

	tm.sweeper = sweeper.NewOfferReconciler(
		config,
		tm.store,
		tm.ledger,
		map[domain.Network]adapter.ChainClient{
			domain.NetworkQuartz: tm.chain,
		},
		tm.clock,
	)

	return tm
}

// tearDownTestReconciler cleans up the test mocks
func tearDownTestReconciler(mocks *testReconcilerMocks) {
	mocks.ctrl.Finish()
}

// mockCycleClock wires Now/Since/After so cycles complete quickly
func mockCycleClock(tm *testReconcilerMocks) {
	now := time.Now()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()
	tm.clock.EXPECT().After(sweeper.SWEEP_CYCLE_INTERVAL).
		DoAndReturn(func(d time.Duration) <-chan time.Time {
			ch := make(chan time.Time, 1)
			go func() {
				time.Sleep(50 * time.Millisecond)
				ch <- time.Now()
			}()
			return ch
		}).
		AnyTimes()
}

func chainOffer(id string, collectionID, tokenID uint64, seller string) schema.Offer {
	return schema.Offer{
		ID:           id,
		Network:      domain.NetworkQuartz,
		CollectionID: collectionID,
		TokenID:      tokenID,
		Type:         domain.OfferTypeFixedPrice,
		Status:       domain.OfferStatusActive,
		Price:        "5000000000000000000",
		Currency:     "QTZ",
		AddressFrom:  seller,
	}
}

func TestOfferReconciler_Name(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	assert.Equal(t, "offer-reconciler", tm.sweeper.Name())
}

func TestOfferReconciler_SnapshotsAndReconciles(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	mockCycleClock(tm)

	tm.ledger.EXPECT().ExpireAuctions(gomock.Any()).Return(0, nil).AnyTimes()
	tm.chain.EXPECT().BlockNumber(gomock.Any()).Return(uint64(900), nil).AnyTimes()

	tm.store.EXPECT().
		ListActiveChainOffers(gomock.Any(), 10, "").
		Return([]schema.Offer{
			chainOffer("01HV0RECONCILE00000000001", 42, 7, "0xSeller"),
			chainOffer("01HV0RECONCILE00000000002", 42, 8, "0xSeller"),
		}, nil).
		AnyTimes()
	tm.store.EXPECT().
		ListActiveChainOffers(gomock.Any(), 10, "01HV0RECONCILE00000000002").
		Return(nil, nil).
		AnyTimes()

	tm.chain.EXPECT().OwnerOf(gomock.Any(), uint64(42), uint64(7)).
		Return("0xSeller", nil).AnyTimes()
	tm.chain.EXPECT().OwnerOf(gomock.Any(), uint64(42), uint64(8)).
		Return("0xNewOwner", nil).AnyTimes()

	tm.ledger.EXPECT().
		ReconcileFromChain(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot []domain.TokenOwnership) (ledger.ReconcileResult, error) {
			assert.ElementsMatch(t, []domain.TokenOwnership{
				{Network: domain.NetworkQuartz, CollectionID: 42, TokenID: 7, Owner: "0xSeller", BlockNumber: 900},
				{Network: domain.NetworkQuartz, CollectionID: 42, TokenID: 8, Owner: "0xNewOwner", BlockNumber: 900},
			}, snapshot)
			return ledger.ReconcileResult{Checked: 2, Cancelled: 1}, nil
		}).
		AnyTimes()

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = tm.sweeper.Stop(ctx)
	}()

	err := tm.sweeper.Start(ctx)
	require.NoError(t, err)
}

func TestOfferReconciler_SkipsNetworksWithoutClient(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	mockCycleClock(tm)

	tm.ledger.EXPECT().ExpireAuctions(gomock.Any()).Return(0, nil).AnyTimes()
	tm.chain.EXPECT().BlockNumber(gomock.Any()).Return(uint64(900), nil).AnyTimes()

	foreign := chainOffer("01HV0RECONCILE00000000003", 42, 9, "0xSeller")
	foreign.Network = domain.NetworkEthereum

	tm.store.EXPECT().
		ListActiveChainOffers(gomock.Any(), 10, "").
		Return([]schema.Offer{
			chainOffer("01HV0RECONCILE00000000001", 42, 7, "0xSeller"),
			foreign,
		}, nil).
		AnyTimes()
	tm.store.EXPECT().
		ListActiveChainOffers(gomock.Any(), 10, "01HV0RECONCILE00000000003").
		Return(nil, nil).
		AnyTimes()

	tm.chain.EXPECT().OwnerOf(gomock.Any(), uint64(42), uint64(7)).
		Return("0xSeller", nil).AnyTimes()

	// Only the quartz token makes it into the snapshot
	tm.ledger.EXPECT().
		ReconcileFromChain(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot []domain.TokenOwnership) (ledger.ReconcileResult, error) {
			require.Len(t, snapshot, 1)
			assert.Equal(t, uint64(7), snapshot[0].TokenID)
			return ledger.ReconcileResult{Checked: 1}, nil
		}).
		AnyTimes()

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = tm.sweeper.Stop(ctx)
	}()

	err := tm.sweeper.Start(ctx)
	require.NoError(t, err)
}

func TestOfferReconciler_ExpireAuctionFailureDoesNotBlockCycle(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	mockCycleClock(tm)

	tm.ledger.EXPECT().ExpireAuctions(gomock.Any()).
		Return(0, errors.New("db down")).AnyTimes()
	tm.chain.EXPECT().BlockNumber(gomock.Any()).Return(uint64(900), nil).AnyTimes()
	tm.store.EXPECT().
		ListActiveChainOffers(gomock.Any(), 10, "").
		Return(nil, nil).
		AnyTimes()

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = tm.sweeper.Stop(ctx)
	}()

	err := tm.sweeper.Start(ctx)
	require.NoError(t, err)
}

func TestOfferReconciler_StopBeforeStart(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	err := tm.sweeper.Stop(context.Background())
	require.NoError(t, err)
}

func TestOfferReconciler_DoubleStart(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	mockCycleClock(tm)

	tm.ledger.EXPECT().ExpireAuctions(gomock.Any()).Return(0, nil).AnyTimes()
	tm.chain.EXPECT().BlockNumber(gomock.Any()).Return(uint64(900), nil).AnyTimes()
	tm.store.EXPECT().
		ListActiveChainOffers(gomock.Any(), 10, "").
		Return(nil, nil).
		AnyTimes()

	errChan := make(chan error, 1)
	go func() {
		errChan <- tm.sweeper.Start(ctx)
	}()

	// Give first start time to begin
	time.Sleep(50 * time.Millisecond)

	err := tm.sweeper.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	_ = tm.sweeper.Stop(ctx)
	<-errChan
}
