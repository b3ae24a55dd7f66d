package config

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key; viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DATABASE_DRIVER", "PGSQL_URL", "SQLITE_PATH", "PORT", "JWT_SECRET", "RATE_LIMIT",
		"DISPLAY_DATE_FORMAT", "CURRENCY_SYMBOL", "TIMEZONE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_SQLiteDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "ledger.sqlite", cfg.SQLitePath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Empty(t, cfg.JWTSecret)

	s := cfg.Settings()
	assert.Equal(t, "yyyy-LL-dd", s.DisplayDateFormat)
	assert.Equal(t, "₦", s.CurrencySymbol)
	assert.Equal(t, "UTC+1", s.Timezone)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PGSQL_URL")

	t.Setenv("PGSQL_URL", "postgres://localhost/ledger")
	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err := load(viper.New())
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "WARN"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "loud"}).SlogLevel())
}
