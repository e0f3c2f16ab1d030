package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/config"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/ledger"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/providers/evm"
	"github.com/gallerium/marketplace-v2/internal/providers/unique"
	"github.com/gallerium/marketplace-v2/internal/search"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcilerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "reconciler",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting offer reconciler")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	clock := adapter.NewClock()
	dialer := adapter.NewEthClientDialer()

	// Chain clients for ownership snapshots
	chains := make(map[domain.Network]adapter.ChainClient)
	chainConfigs := map[domain.Network]config.ChainConfig{
		domain.NetworkQuartz:   cfg.Quartz,
		domain.NetworkOpal:     cfg.Opal,
		domain.NetworkEthereum: cfg.Ethereum,
	}
	for network, chainCfg := range chainConfigs {
		if !chainCfg.Enabled {
			continue
		}
		ethClient, err := dialer.Dial(ctx, chainCfg.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to dial RPC", zap.Error(err), zap.String("network", string(network)))
		}
		var meta adapter.MetadataSource
		if chainCfg.NodeRPCURL != "" {
			meta = unique.NewClient(chainCfg.NodeRPCURL, adapter.NewHTTPClient(30*time.Second))
		}
		chain, err := evm.NewClient(evm.Config{
			Network:          network,
			Currency:         chainCfg.Currency,
			MarketContract:   chainCfg.MarketContract,
			MarketAccountKey: chainCfg.MarketAccountKey,
			WatchCollections: chainCfg.WatchCollections,
		}, ethClient, meta, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create chain client", zap.Error(err), zap.String("network", string(network)))
		}
		chains[network] = chain
	}
	defer func() {
		for _, chain := range chains {
			chain.Close()
		}
	}()

	// Domain services
	searchIndexer := search.NewIndexer(dataStore, search.Config{IPFSGateway: cfg.Search.IPFSGateway})
	offerLedger := ledger.New(dataStore, searchIndexer, clock, cfg.CommissionPercent)

	reconciler := sweeper.NewOfferReconciler(&sweeper.OfferReconcilerConfig{
		BatchSize:      cfg.Reconciler.BatchSize,
		WorkerPoolSize: cfg.Reconciler.Worker.PoolSize,
	}, dataStore, offerLedger, chains, clock)

	errCh := make(chan error, 1)
	go func() {
		if err := reconciler.Start(ctx); err != nil && ctx.Err() == nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "reconciler"))
	}

	// Let the in-progress sweep finish before exiting
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := reconciler.Stop(stopCtx); err != nil {
		logger.ErrorCtx(stopCtx, err, zap.String("component", "reconciler"))
	}
	cancel()

	logger.Info("Offer reconciler stopped")
}
