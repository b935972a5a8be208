package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Rate feed endpoints. Both default to the public ECB reference feeds.
	FeedLatestURL  string `mapstructure:"FEED_LATEST_URL"`
	FeedHistoryURL string `mapstructure:"FEED_HISTORY_URL"`

	// RefreshInterval is how often the scheduler pulls fresh rates.
	RefreshInterval time.Duration

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string `mapstructure:"RATE_LIMIT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("FEED_LATEST_URL", "")
	viper.SetDefault("FEED_HISTORY_URL", "")
	viper.SetDefault("REFRESH_INTERVAL", "1h")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Snapshots will not be persisted.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	refreshIntervalStr := viper.GetString("REFRESH_INTERVAL")
	refreshInterval, err := time.ParseDuration(refreshIntervalStr)
	if err != nil || refreshInterval <= 0 {
		refreshInterval = time.Hour
		if refreshIntervalStr != "" {
			log.Printf("Warning: Invalid value for REFRESH_INTERVAL ('%s'). Defaulting to %s.\n", refreshIntervalStr, refreshInterval.String())
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.FeedLatestURL = viper.GetString("FEED_LATEST_URL")
	cfg.FeedHistoryURL = viper.GetString("FEED_HISTORY_URL")
	cfg.RefreshInterval = refreshInterval
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
