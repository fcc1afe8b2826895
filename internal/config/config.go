package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Record store
	StoreBackend string `mapstructure:"STORE_BACKEND"` // file | redis | sqlite
	DataDir      string `mapstructure:"DATA_DIR"`
	RedisURL     string `mapstructure:"REDIS_URL"`
	SQLitePath   string `mapstructure:"SQLITE_PATH"`

	// Remote sync endpoint (Supabase-style REST)
	RemoteURL         string `mapstructure:"REMOTE_URL"`
	RemoteAPIKey      string `mapstructure:"REMOTE_API_KEY"`
	RemoteBearerToken string `mapstructure:"REMOTE_BEARER_TOKEN"`

	// Sync circuit breaker: consecutive failures to trip open, successes in
	// half-open to close, seconds open before probing
	SyncCBFailureThreshold int `mapstructure:"SYNC_CB_FAILURE_THRESHOLD"`
	SyncCBSuccessThreshold int `mapstructure:"SYNC_CB_SUCCESS_THRESHOLD"`
	SyncCBOpenTimeoutSec   int `mapstructure:"SYNC_CB_OPEN_TIMEOUT_SEC"`

	// Tank defaults — used only when no snapshot exists yet
	TankName         string  `mapstructure:"TANK_NAME"`
	TankCapacity     float64 `mapstructure:"TANK_CAPACITY"`
	TankInitialLevel float64 `mapstructure:"TANK_INITIAL_LEVEL"`
	LowFuelThreshold float64 `mapstructure:"LOW_FUEL_THRESHOLD"`

	// Reports
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("SQLITE_PATH", "./data/ecotanque.db")
	viper.SetDefault("REMOTE_URL", "")
	viper.SetDefault("REMOTE_API_KEY", "")
	viper.SetDefault("REMOTE_BEARER_TOKEN", "")
	viper.SetDefault("SYNC_CB_FAILURE_THRESHOLD", 5)
	viper.SetDefault("SYNC_CB_SUCCESS_THRESHOLD", 2)
	viper.SetDefault("SYNC_CB_OPEN_TIMEOUT_SEC", 60)
	viper.SetDefault("TANK_NAME", "Tanque Principal 01")
	viper.SetDefault("TANK_CAPACITY", 15000)
	viper.SetDefault("TANK_INITIAL_LEVEL", 10620)
	viper.SetDefault("LOW_FUEL_THRESHOLD", 3000)
	viper.SetDefault("PDF_STORAGE_PATH", "/tmp/ecotanque/pdfs")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
