package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/config"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/ingest"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/providers/evm"
	"github.com/gallerium/marketplace-v2/internal/providers/jetstream"
	"github.com/gallerium/marketplace-v2/internal/providers/unique"
	"github.com/gallerium/marketplace-v2/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEmitterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "market-event-emitter",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting market event emitter")

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
	natsJS := adapter.NewNatsJetStream()
	jsonAdapter := adapter.NewJSON()

	chainConfigs := map[domain.Network]config.ChainConfig{
		domain.NetworkQuartz:   cfg.Quartz,
		domain.NetworkOpal:     cfg.Opal,
		domain.NetworkEthereum: cfg.Ethereum,
	}

	// One emitter per enabled network, each with its own publisher connection
	var emitters []*ingest.Emitter
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

		publisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: fmt.Sprintf("market-event-emitter-%s", network),
		}, natsJS, jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create publisher", zap.Error(err), zap.String("network", string(network)))
		}

		emitters = append(emitters, ingest.NewEmitter(chain, publisher, dataStore, clock, ingest.EmitterConfig{
			StartBlock:    chainCfg.StartBlock,
			BatchSize:     chainCfg.BatchSize,
			Confirmations: chainCfg.Confirmations,
			PollInterval:  chainCfg.PollInterval,
		}))
	}

	if len(emitters) == 0 {
		logger.FatalCtx(ctx, "No networks enabled")
	}

	var wg sync.WaitGroup
	for _, emitter := range emitters {
		wg.Add(1)
		go func(e *ingest.Emitter) {
			defer wg.Done()
			if err := e.Run(ctx); err != nil && ctx.Err() == nil {
				logger.ErrorCtx(ctx, err, zap.String("component", "emitter"))
				cancel()
			}
		}(emitter)
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case <-ctx.Done():
	}

	wg.Wait()
	for _, emitter := range emitters {
		emitter.Close()
	}

	logger.Info("Market event emitter stopped")
}
