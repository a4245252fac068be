package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	StoreDriver      string
	DatabaseURL      string
	EnableDBCheck    bool
	RunMigrations    bool
	IsProduction     bool
	LogLevel         string
	WorkerPoolSize   int64
	OperationTimeout time.Duration
	AllowOverdraft   bool
	CurrenciesFile   string
	MetricsAddr      string
	KafkaBrokers     []string
	KafkaTopic       string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WORKER_POOL_SIZE", 16)
	v.SetDefault("OPERATION_TIMEOUT", "30s")
	v.SetDefault("ALLOW_OVERDRAFT", false)
	v.SetDefault("CURRENCIES_FILE", "")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "economy.transactions")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		StoreDriver:    strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:    v.GetString("PGSQL_URL"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		WorkerPoolSize: v.GetInt64("WORKER_POOL_SIZE"),
		AllowOverdraft: v.GetBool("ALLOW_OVERDRAFT"),
		CurrenciesFile: v.GetString("CURRENCIES_FILE"),
		MetricsAddr:    v.GetString("METRICS_ADDR"),
		KafkaTopic:     v.GetString("KAFKA_TOPIC"),
	}

	switch cfg.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required for store driver %q", cfg.StoreDriver)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	timeoutStr := v.GetString("OPERATION_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout < 0 {
		timeout = 30 * time.Second
		log.Printf("Warning: Invalid value for OPERATION_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.OperationTimeout = timeout

	if cfg.WorkerPoolSize < 1 {
		log.Printf("Warning: WORKER_POOL_SIZE must be positive, got %d. Defaulting to 16.\n", cfg.WorkerPoolSize)
		cfg.WorkerPoolSize = 16
	}

	for _, broker := range strings.Split(v.GetString("KAFKA_BROKERS"), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
		}
	}

	return cfg, nil
}
