package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// ChainConfig holds per-network chain access configuration
type ChainConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// RPCURL is the EVM JSON-RPC endpoint (ownership, market contract)
	RPCURL string `mapstructure:"rpc_url"`
	// NodeRPCURL is the native node RPC endpoint serving collection and
	// token metadata on Unique-family networks
	NodeRPCURL     string `mapstructure:"node_rpc_url"`
	Currency       string `mapstructure:"currency"`
	MarketContract string `mapstructure:"market_contract"`
	// MarketAccountKey signs outgoing custody transfers
	MarketAccountKey string        `mapstructure:"market_account_key"`
	WatchCollections []uint64      `mapstructure:"watch_collections"`
	StartBlock       uint64        `mapstructure:"start_block"`
	Confirmations    uint64        `mapstructure:"confirmations"`
	BatchSize        uint64        `mapstructure:"batch_size"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AuthConfig holds admin authentication configuration
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	ChallengeWindow time.Duration `mapstructure:"challenge_window"`
	AdminAddresses  []string      `mapstructure:"admin_addresses"`
	MainSaleAddress string        `mapstructure:"main_sale_address"`
}

// PaymentConfig holds the card gateway configuration
type PaymentConfig struct {
	APIURL    string `mapstructure:"api_url"`
	SecretKey string `mapstructure:"secret_key"`
}

// SearchConfig holds search indexer configuration
type SearchConfig struct {
	IPFSGateway string `mapstructure:"ipfs_gateway"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	PoolSize  int `mapstructure:"pool_size"`
	QueueSize int `mapstructure:"queue_size"`
}

// ReconcilerSweeperConfig holds configuration for the offer reconciler
type ReconcilerSweeperConfig struct {
	BatchSize int          `mapstructure:"batch_size"`
	Worker    WorkerConfig `mapstructure:"worker"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig        `mapstructure:",squash"`
	Server            ServerConfig   `mapstructure:"server"`
	Database          DatabaseConfig `mapstructure:"database"`
	Auth              AuthConfig     `mapstructure:"auth"`
	Payment           PaymentConfig  `mapstructure:"payment"`
	Search            SearchConfig   `mapstructure:"search"`
	Quartz            ChainConfig    `mapstructure:"quartz"`
	Opal              ChainConfig    `mapstructure:"opal"`
	Ethereum          ChainConfig    `mapstructure:"ethereum"`
	Worker            WorkerConfig   `mapstructure:"worker"`
	CommissionPercent int64          `mapstructure:"commission_percent"`
}

// EmitterConfig holds configuration for market-event-emitter
type EmitterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Quartz     ChainConfig    `mapstructure:"quartz"`
	Opal       ChainConfig    `mapstructure:"opal"`
	Ethereum   ChainConfig    `mapstructure:"ethereum"`
}

// IngestConfig holds configuration for event-ingest
type IngestConfig struct {
	BaseConfig        `mapstructure:",squash"`
	Database          DatabaseConfig `mapstructure:"database"`
	NATS              NATSConfig     `mapstructure:"nats"`
	Search            SearchConfig   `mapstructure:"search"`
	Quartz            ChainConfig    `mapstructure:"quartz"`
	Opal              ChainConfig    `mapstructure:"opal"`
	Ethereum          ChainConfig    `mapstructure:"ethereum"`
	CommissionPercent int64          `mapstructure:"commission_percent"`
}

// ReconcilerConfig holds configuration for the reconciler program
type ReconcilerConfig struct {
	BaseConfig        `mapstructure:",squash"`
	Database          DatabaseConfig          `mapstructure:"database"`
	Search            SearchConfig            `mapstructure:"search"`
	Quartz            ChainConfig             `mapstructure:"quartz"`
	Opal              ChainConfig             `mapstructure:"opal"`
	Ethereum          ChainConfig             `mapstructure:"ethereum"`
	Reconciler        ReconcilerSweeperConfig `mapstructure:"reconciler"`
	CommissionPercent int64                   `mapstructure:"commission_percent"`
}

func setChainDefaults(v *viper.Viper) {
	for _, network := range []string{"quartz", "opal", "ethereum"} {
		v.SetDefault(network+".enabled", false)
		v.SetDefault(network+".confirmations", 5)
		v.SetDefault(network+".batch_size", 1000)
		v.SetDefault(network+".poll_interval", "12s")
	}
	v.SetDefault("quartz.currency", "QTZ")
	v.SetDefault("opal.currency", "OPL")
	v.SetDefault("ethereum.currency", "ETH")
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "MARKET_EVENTS")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 3)
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	setDatabaseDefaults(v)
	setChainDefaults(v)
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.challenge_window", "5m")
	v.SetDefault("worker.pool_size", 10)
	v.SetDefault("worker.queue_size", 1024)
	v.SetDefault("commission_percent", 10)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadEmitterConfig loads configuration for market-event-emitter
func LoadEmitterConfig(configFile string, envPath string) (*EmitterConfig, error) {
	v := configureViper("market-event-emitter", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setChainDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config EmitterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadIngestConfig loads configuration for event-ingest
func LoadIngestConfig(configFile string, envPath string) (*IngestConfig, error) {
	v := configureViper("event-ingest", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setChainDefaults(v)
	v.SetDefault("nats.consumer_name", "event-ingest")
	v.SetDefault("commission_percent", 10)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config IngestConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadReconcilerConfig loads configuration for the reconciler program
func LoadReconcilerConfig(configFile string, envPath string) (*ReconcilerConfig, error) {
	v := configureViper("reconciler", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setChainDefaults(v)
	v.SetDefault("reconciler.batch_size", 500)
	v.SetDefault("reconciler.worker.pool_size", 10)
	v.SetDefault("reconciler.worker.queue_size", 1024)
	v.SetDefault("commission_percent", 10)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config ReconcilerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("MARKETPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"commission_percent",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Server
		"server.host",
		"server.port",
		// Auth
		"auth.jwt_secret",
		"auth.token_ttl",
		"auth.challenge_window",
		"auth.admin_addresses",
		"auth.main_sale_address",
		// Payment
		"payment.api_url",
		"payment.secret_key",
		// Search
		"search.ipfs_gateway",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Reconciler
		"reconciler.batch_size",
		"reconciler.worker.pool_size",
		"reconciler.worker.queue_size",
	}

	chainKeys := []string{
		"enabled",
		"rpc_url",
		"node_rpc_url",
		"currency",
		"market_contract",
		"market_account_key",
		"watch_collections",
		"start_block",
		"confirmations",
		"batch_size",
		"poll_interval",
	}
	for _, network := range []string{"quartz", "opal", "ethereum"} {
		for _, key := range chainKeys {
			keys = append(keys, network+"."+key)
		}
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
