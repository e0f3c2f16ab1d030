package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/ledger"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

const (
	SWEEP_CYCLE_INTERVAL = 5 * time.Minute // Time to sleep between reconcile cycles
)

// ReconcileLedger is the subset of offer ledger operations the reconciler drives
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=ReconcileLedger=MockReconcileLedger
type ReconcileLedger interface {
	ReconcileFromChain(ctx context.Context, snapshot []domain.TokenOwnership) (ledger.ReconcileResult, error)
	ExpireAuctions(ctx context.Context) (int, error)
}

// OfferReconcilerConfig holds configuration for the offer reconciler
type OfferReconcilerConfig struct {
	BatchSize      int // Offers loaded per batch
	WorkerPoolSize int // Concurrent ownership queries
}

// offerReconciler implements the Sweeper interface. Each cycle it snapshots
// on-chain ownership for every active chain-sale offer and hands the snapshot
// to the ledger, which treats the chain as ground truth. It also expires
// auctions whose stop time has passed.
type offerReconciler struct {
	config    *OfferReconcilerConfig
	store     store.Store
	ledger    ReconcileLedger
	chains    map[domain.Network]adapter.ChainClient
	pool      pond.Pool
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewOfferReconciler creates a new offer reconciler sweeper
func NewOfferReconciler(
	config *OfferReconcilerConfig,
	st store.Store,
	lg ReconcileLedger,
	chains map[domain.Network]adapter.ChainClient,
	clock adapter.Clock,
) Sweeper {
	return &offerReconciler{
		config:    config,
		store:     st,
		ledger:    lg,
		chains:    chains,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *offerReconciler) Name() string {
	return "offer-reconciler"
}

// Start begins the sweeper's main loop
func (s *offerReconciler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting offer reconciler",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Offer reconciler stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Offer reconciler stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *offerReconciler) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *offerReconciler) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping offer reconciler")

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Offer reconciler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Offer reconciler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single reconcile cycle
func (s *offerReconciler) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting reconcile cycle")

	expired, err := s.ledger.ExpireAuctions(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to expire auctions: %w", err))
	} else if expired > 0 {
		logger.InfoCtx(ctx, "Expired auctions", zap.Int("count", expired))
	}

	// Pin one block height per network so the whole snapshot is coherent
	heights := s.blockHeights(ctx)

	var checked int
	var result ledger.ReconcileResult
	var lastID string
	for {
		offers, err := s.store.ListActiveChainOffers(ctx, s.config.BatchSize, lastID)
		if err != nil {
			return fmt.Errorf("failed to list active offers: %w", err)
		}
		if len(offers) == 0 {
			break
		}

		snapshot := s.snapshotOwnership(ctx, offers, heights)
		checked += len(offers)

		batchResult, err := s.ledger.ReconcileFromChain(ctx, snapshot)
		if err != nil {
			return fmt.Errorf("failed to reconcile offers: %w", err)
		}
		result.Checked += batchResult.Checked
		result.Cancelled += batchResult.Cancelled
		result.Resettled += batchResult.Resettled

		lastID = offers[len(offers)-1].ID
	}

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Reconcile cycle completed",
		zap.Duration("duration", duration),
		zap.Int("total_offers", checked),
		zap.Int("reconciled", result.Checked),
		zap.Int("cancelled", result.Cancelled),
		zap.Int("resettled", result.Resettled),
	)

	if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
		return ctx.Err() // Context canceled during sleep
	}

	return nil
}

// blockHeights fetches the current block number for every configured network.
// A network whose height cannot be fetched is skipped this cycle.
func (s *offerReconciler) blockHeights(ctx context.Context) map[domain.Network]uint64 {
	heights := make(map[domain.Network]uint64, len(s.chains))
	for network, chain := range s.chains {
		height, err := chain.BlockNumber(ctx)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to get block height, skipping network this cycle",
				zap.Error(err),
				zap.String("network", string(network)),
			)
			continue
		}
		heights[network] = height
	}
	return heights
}

// snapshotOwnership queries current on-chain owners for a batch of offers
// concurrently. Offers whose owner cannot be resolved are left out of the
// snapshot; the ledger only acts on tokens it is given.
func (s *offerReconciler) snapshotOwnership(ctx context.Context, offers []schema.Offer, heights map[domain.Network]uint64) []domain.TokenOwnership {
	var mu sync.Mutex
	snapshot := make([]domain.TokenOwnership, 0, len(offers))

	for _, offer := range offers {
		chain, ok := s.chains[offer.Network]
		if !ok {
			continue
		}
		height, ok := heights[offer.Network]
		if !ok {
			continue
		}

		s.pool.Submit(func() {
			owner, err := s.ownerOfWithRetry(ctx, chain, offer.CollectionID, offer.TokenID)
			if err != nil {
				logger.WarnCtx(ctx, "Failed to resolve token owner, skipping",
					zap.Error(err),
					zap.String("network", string(offer.Network)),
					zap.Uint64("collection_id", offer.CollectionID),
					zap.Uint64("token_id", offer.TokenID),
				)
				return
			}

			mu.Lock()
			snapshot = append(snapshot, domain.TokenOwnership{
				Network:      offer.Network,
				CollectionID: offer.CollectionID,
				TokenID:      offer.TokenID,
				Owner:        owner,
				BlockNumber:  height,
			})
			mu.Unlock()
		})
	}

	s.pool.StopAndWait()

	// Recreate pool for the next batch
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	return snapshot
}

// ownerOfWithRetry queries token ownership with exponential backoff.
// The query is idempotent so retrying is always safe.
func (s *offerReconciler) ownerOfWithRetry(ctx context.Context, chain adapter.ChainClient, collectionID, tokenID uint64) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 1 * time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5 // Add jitter to prevent thundering herd

	backoffWithContext := backoff.WithContext(b, ctx)

	var owner string
	operation := func() error {
		var err error
		owner, err = chain.OwnerOf(ctx, collectionID, tokenID)
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Ownership query failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoffWithContext, notifyOnError); err != nil {
		return "", fmt.Errorf("failed after %d attempts: %w", attemptCount, err)
	}
	return owner, nil
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (s *offerReconciler) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}
