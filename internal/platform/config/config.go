package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	DatabaseDriver     string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL        string `mapstructure:"PGSQL_URL"`
	SQLitePath         string `mapstructure:"SQLITE_PATH"`
	Port               string `mapstructure:"PORT"`
	IsProduction       bool   `mapstructure:"IS_PRODUCTION"`
	EnableDBCheck      bool   `mapstructure:"ENABLE_DB_CHECK"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	RateLimit          string `mapstructure:"RATE_LIMIT"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Display settings handed to hosts; the ledger itself ignores them.
	DisplayDateFormat string `mapstructure:"DISPLAY_DATE_FORMAT"`
	CurrencySymbol    string `mapstructure:"CURRENCY_SYMBOL"`
	Timezone          string `mapstructure:"TIMEZONE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "ledger.sqlite")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DISPLAY_DATE_FORMAT", "yyyy-LL-dd")
	v.SetDefault("CURRENCY_SYMBOL", "₦")
	v.SetDefault("TIMEZONE", "UTC+1")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseDriver:     strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		DisplayDateFormat:  v.GetString("DISPLAY_DATE_FORMAT"),
		CurrencySymbol:     v.GetString("CURRENCY_SYMBOL"),
		Timezone:           v.GetString("TIMEZONE"),
	}

	switch cfg.DatabaseDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH must be set when DATABASE_DRIVER is %s", DriverSQLite)
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when DATABASE_DRIVER is %s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, defaulting", slog.String("port", cfg.Port))
	}
	if cfg.JWTSecret == "" && cfg.IsProduction {
		slog.Warn("JWT_SECRET not set; API authentication is disabled")
	}
	return cfg, nil
}

// SlogLevel parses LogLevel, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Settings returns the display preferences exposed by getSettings.
func (c *Config) Settings() domain.Settings {
	return domain.Settings{
		DisplayDateFormat: c.DisplayDateFormat,
		CurrencySymbol:    c.CurrencySymbol,
		Timezone:          c.Timezone,
	}
}
