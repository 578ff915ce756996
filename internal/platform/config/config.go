package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DatabaseDriver       string
	DatabaseURL          string
	SQLitePath           string
	IsProduction         bool
	EnableDBCheck        bool
	LogLevel             string
	ReconcileConcurrency int
	MetricsTextfile      string
	DefaultPageSize      int
}

// BindFlags registers command-line overrides on fs and binds them into v.
// Flag names are the lower-kebab form of the environment keys.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("database-driver", "", "storage driver: postgres or sqlite")
	fs.String("pgsql-url", "", "PostgreSQL connection URL")
	fs.String("sqlite-path", "", "SQLite database file")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.String("metrics-textfile", "", "write Prometheus metrics to this file on exit")

	bindings := map[string]string{
		"DATABASE_DRIVER":  "database-driver",
		"PGSQL_URL":        "pgsql-url",
		"SQLITE_PATH":      "sqlite-path",
		"LOG_LEVEL":        "log-level",
		"METRICS_TEXTFILE": "metrics-textfile",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper())
}

// Load reads configuration from v, applying defaults first.
func Load(v *viper.Viper) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/ledger.db")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RECONCILE_CONCURRENCY", 4)
	v.SetDefault("METRICS_TEXTFILE", "")
	v.SetDefault("DEFAULT_PAGE_SIZE", 50)

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseDriver:       strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseURL:          v.GetString("PGSQL_URL"),
		SQLitePath:           v.GetString("SQLITE_PATH"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		ReconcileConcurrency: v.GetInt("RECONCILE_CONCURRENCY"),
		MetricsTextfile:      v.GetString("METRICS_TEXTFILE"),
		DefaultPageSize:      v.GetInt("DEFAULT_PAGE_SIZE"),
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when DATABASE_DRIVER is %s", DriverPostgres)
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH must be set when DATABASE_DRIVER is %s", DriverSQLite)
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	if cfg.ReconcileConcurrency <= 0 {
		log.Printf("Warning: Invalid value for RECONCILE_CONCURRENCY (%d). Defaulting to 1.\n", cfg.ReconcileConcurrency)
		cfg.ReconcileConcurrency = 1
	}
	if cfg.DefaultPageSize <= 0 {
		log.Printf("Warning: Invalid value for DEFAULT_PAGE_SIZE (%d). Defaulting to 50.\n", cfg.DefaultPageSize)
		cfg.DefaultPageSize = 50
	}

	return cfg, nil
}
