package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ClosesStorageOnStartupFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend.sqlite")
	cfg := &config.Config{
		DatabaseDriver:     config.DriverSQLite,
		SQLitePath:         path,
		Port:               "0",
		RateLimit:          "not-a-rate",
		CORSAllowedOrigins: "*",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := serve(cfg, logger)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "storage should have been opened and migrated")
	_, walErr := os.Stat(path + "-wal")
	assert.True(t, os.IsNotExist(walErr), "closing the last connection checkpoints and removes the WAL")
}

func TestServe_FailsOnUnknownDriver(t *testing.T) {
	cfg := &config.Config{DatabaseDriver: "oracle"}
	err := serve(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
