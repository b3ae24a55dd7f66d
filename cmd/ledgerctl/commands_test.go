package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, name string) *actionCmd {
	t.Helper()
	for _, c := range commands() {
		if a, ok := c.(*actionCmd); ok && a.action == name {
			return a
		}
	}
	t.Fatalf("no command %s", name)
	return nil
}

func parse(t *testing.T, c *actionCmd, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestPayload_OnlyGivenFlags(t *testing.T) {
	c := findCommand(t, actions.UpdateAccount)
	fs := parse(t, c, "-id", "4", "-parentId", "null", "-name", "Bank")

	payload, err := c.payload(fs)

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"parentId":null,"name":"Bank"}`, string(payload))
}

func TestPayload_TypedFields(t *testing.T) {
	c := findCommand(t, actions.GetLedger)
	fs := parse(t, c, "-accountId", "2", "-includeRunningBalance", "true", "-startDate", "2024-01-01")

	payload, err := c.payload(fs)

	require.NoError(t, err)
	assert.JSONEq(t, `{"accountId":2,"includeRunningBalance":true,"startDate":"2024-01-01"}`, string(payload))
}

func TestPayload_RejectsBadValues(t *testing.T) {
	c := findCommand(t, actions.CreateJournalEntry)
	_, err := c.payload(parse(t, c, "-lines", "[{"))
	assert.Error(t, err)

	c = findCommand(t, actions.GetAccountByID)
	_, err = c.payload(parse(t, c, "-id", "one"))
	assert.Error(t, err)
}

func TestEveryActionHasACommand(t *testing.T) {
	names := map[string]bool{}
	for _, c := range commands() {
		names[c.Name()] = true
	}
	for _, action := range []string{
		actions.CreateAccount, actions.UpdateAccount, actions.GetAccountByID, actions.ListAccounts,
		actions.DeleteAccount, actions.CreateJournalEntry, actions.DeleteJournalEntry,
		actions.GetJournalEntryByID, actions.SearchJournalEntries, actions.ClosePeriod,
		actions.GetPeriodLock, actions.GetTrialBalance, actions.GetLedger, actions.GetBalanceSheet,
		actions.GetProfitLoss, actions.GetSettings,
	} {
		assert.True(t, names[action], action)
	}
	assert.True(t, names["exec"])
}

func TestRun_AgainstSQLite(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.sqlite"))
	t.Setenv("LOG_LEVEL", "error")
	ctx := context.Background()

	var out bytes.Buffer
	status := run(ctx, actions.CreateAccount, json.RawMessage(`{"code":"1000","name":"Cash","type":"Asset"}`), &out)
	require.Equal(t, subcommands.ExitSuccess, status, out.String())

	var env map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.Equal(t, true, env["success"])

	out.Reset()
	status = run(ctx, actions.CreateAccount, json.RawMessage(`{"code":"1000","name":"Cash again","type":"Asset"}`), &out)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, out.String(), "DUPLICATE_CODE")
}
