package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/messaging"
	"github.com/gallerium/marketplace-v2/internal/store"
)

// EmitterConfig holds the configuration for the market event emitter
type EmitterConfig struct {
	// StartBlock overrides the stored cursor when non-zero
	StartBlock uint64
	// BatchSize is the maximum number of blocks scanned per poll
	BatchSize uint64
	// Confirmations is how many blocks behind the head are treated as final
	Confirmations uint64
	// PollInterval is the sleep between polls once caught up with the head
	PollInterval time.Duration
}

// Emitter polls the chain for market events and publishes them to the
// broker. The block cursor is persisted in the settings table and only
// advanced after every event in a range was published, so a crash replays
// the range rather than skipping it.
type Emitter struct {
	chain     adapter.ChainClient
	publisher messaging.Publisher
	store     store.Store
	clock     adapter.Clock
	config    EmitterConfig
}

// NewEmitter creates a market event emitter for one chain
func NewEmitter(
	chain adapter.ChainClient,
	pub messaging.Publisher,
	st store.Store,
	clock adapter.Clock,
	cfg EmitterConfig,
) *Emitter {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 1000
	}
	return &Emitter{
		chain:     chain,
		publisher: pub,
		store:     st,
		clock:     clock,
		config:    cfg,
	}
}

func (e *Emitter) cursorKey() string {
	return fmt.Sprintf("market_events_cursor_%s", e.chain.Network())
}

// Run starts the emitter loop and blocks until ctx is cancelled
func (e *Emitter) Run(ctx context.Context) error {
	from, err := e.startBlock(ctx)
	if err != nil {
		return err
	}

	logger.Info("Starting market event emitter",
		zap.String("network", string(e.chain.Network())),
		zap.Uint64("fromBlock", from),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down market event emitter", zap.String("network", string(e.chain.Network())))
			return ctx.Err()
		default:
		}

		next, emitted, err := e.emitRange(ctx, from)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.Uint64("fromBlock", from))
			if !e.sleep(ctx) {
				return ctx.Err()
			}
			continue
		}
		from = next

		// Caught up with the confirmed head
		if !emitted {
			if !e.sleep(ctx) {
				return ctx.Err()
			}
		}
	}
}

// startBlock resolves the first block to scan: the configured override, the
// stored cursor plus one, or the current head for a fresh deployment.
func (e *Emitter) startBlock(ctx context.Context) (uint64, error) {
	if e.config.StartBlock > 0 {
		return e.config.StartBlock, nil
	}

	raw, err := e.store.GetSetting(ctx, e.cursorKey())
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}
	if raw != "" {
		cursor, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse block cursor %q: %w", raw, err)
		}
		return cursor + 1, nil
	}

	head, err := e.chain.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	return head, nil
}

// emitRange scans one block range. It returns the next block to scan and
// whether any range was processed at all.
func (e *Emitter) emitRange(ctx context.Context, from uint64) (uint64, bool, error) {
	head, err := e.chain.BlockNumber(ctx)
	if err != nil {
		return from, false, fmt.Errorf("failed to get latest block number: %w", err)
	}
	if head < e.config.Confirmations {
		return from, false, nil
	}
	final := head - e.config.Confirmations
	if from > final {
		return from, false, nil
	}

	to := from + e.config.BatchSize - 1
	if to > final {
		to = final
	}

	events, err := e.chain.MarketEvents(ctx, from, to)
	if err != nil {
		return from, false, fmt.Errorf("failed to fetch market events [%d, %d]: %w", from, to, err)
	}

	for i := range events {
		event := &events[i]
		if !event.Valid() {
			logger.WarnCtx(ctx, "dropping structurally invalid chain event",
				zap.String("token", event.TokenKey()),
				zap.String("eventType", string(event.EventType)),
				zap.Uint64("blockNumber", event.BlockNumber),
			)
			continue
		}
		if err := e.publisher.PublishEvent(ctx, event); err != nil {
			// Cursor stays put: the whole range is replayed and ingestion
			// deduplicates
			return from, false, fmt.Errorf("failed to publish event at block %d: %w", event.BlockNumber, err)
		}
	}

	if err := e.store.SetSetting(ctx, e.cursorKey(), strconv.FormatUint(to, 10)); err != nil {
		return from, false, fmt.Errorf("failed to save block cursor: %w", err)
	}

	if len(events) > 0 {
		logger.InfoCtx(ctx, "emitted market events",
			zap.String("network", string(e.chain.Network())),
			zap.Int("count", len(events)),
			zap.Uint64("fromBlock", from),
			zap.Uint64("toBlock", to),
		)
	}

	return to + 1, true, nil
}

// sleep waits one poll interval, returning false when ctx was cancelled
func (e *Emitter) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-e.clock.After(e.config.PollInterval):
		return true
	}
}

// Close releases the chain and broker connections
func (e *Emitter) Close() {
	e.publisher.Close()
	e.chain.Close()
}
