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
	"github.com/gallerium/marketplace-v2/internal/api/auth"
	"github.com/gallerium/marketplace-v2/internal/api/rest"
	"github.com/gallerium/marketplace-v2/internal/api/server"
	"github.com/gallerium/marketplace-v2/internal/config"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/fiat"
	"github.com/gallerium/marketplace-v2/internal/ledger"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/massops"
	"github.com/gallerium/marketplace-v2/internal/providers/evm"
	"github.com/gallerium/marketplace-v2/internal/providers/payment"
	"github.com/gallerium/marketplace-v2/internal/providers/unique"
	"github.com/gallerium/marketplace-v2/internal/search"
	"github.com/gallerium/marketplace-v2/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func buildChainClients(
	ctx context.Context,
	clock adapter.Clock,
	chainConfigs map[domain.Network]config.ChainConfig,
) (map[domain.Network]adapter.ChainClient, error) {
	dialer := adapter.NewEthClientDialer()
	clients := make(map[domain.Network]adapter.ChainClient)

	for network, chainCfg := range chainConfigs {
		if !chainCfg.Enabled {
			continue
		}

		ethClient, err := dialer.Dial(ctx, chainCfg.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to dial %s RPC: %w", network, err)
		}

		var meta adapter.MetadataSource
		if chainCfg.NodeRPCURL != "" {
			meta = unique.NewClient(chainCfg.NodeRPCURL, adapter.NewHTTPClient(30*time.Second))
		}

		client, err := evm.NewClient(evm.Config{
			Network:          network,
			Currency:         chainCfg.Currency,
			MarketContract:   chainCfg.MarketContract,
			MarketAccountKey: chainCfg.MarketAccountKey,
			WatchCollections: chainCfg.WatchCollections,
		}, ethClient, meta, clock)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s chain client: %w", network, err)
		}
		clients[network] = client
	}

	return clients, nil
}

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "api-server",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting marketplace API")

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

	// Chain clients
	chains, err := buildChainClients(ctx, clock, map[domain.Network]config.ChainConfig{
		domain.NetworkQuartz:   cfg.Quartz,
		domain.NetworkOpal:     cfg.Opal,
		domain.NetworkEthereum: cfg.Ethereum,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build chain clients", zap.Error(err))
	}
	defer func() {
		for _, chain := range chains {
			chain.Close()
		}
	}()

	// Domain services
	searchIndexer := search.NewIndexer(dataStore, search.Config{IPFSGateway: cfg.Search.IPFSGateway})
	offerLedger := ledger.New(dataStore, searchIndexer, clock, cfg.CommissionPercent)
	engine := massops.New(dataStore, chains, cfg.Worker.PoolSize)
	gateway := payment.NewClient(cfg.Payment.APIURL, cfg.Payment.SecretKey, adapter.NewHTTPClient(60*time.Second), adapter.NewJSON())
	checkout := fiat.New(dataStore, offerLedger, gateway, chains, cfg.Auth.MainSaleAddress)
	authService := auth.NewService(auth.Config{
		JWTSecret:       cfg.Auth.JWTSecret,
		TokenTTL:        cfg.Auth.TokenTTL,
		ChallengeWindow: cfg.Auth.ChallengeWindow,
		AdminAddresses:  cfg.Auth.AdminAddresses,
	}, dataStore, auth.NewEthereumVerifier(), clock)

	handler := rest.NewHandler(dataStore, engine, checkout, authService, chains, cfg.Auth.MainSaleAddress)

	srv := server.New(server.Config{
		Host:  cfg.Server.Host,
		Port:  cfg.Server.Port,
		Debug: cfg.Debug,
	}, handler, authService)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Don't reuse the canceled ctx for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
