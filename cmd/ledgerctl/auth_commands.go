package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/google/subcommands"
)

// tokenCmd mints a bearer token for the HTTP API signed with JWT_SECRET.
type tokenCmd struct {
	subject string
	ttl     time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "issue an API bearer token signed with JWT_SECRET" }
func (*tokenCmd) Usage() string {
	return `ledgerctl token [-subject <name>] [-ttl <duration>]

  Prints a token accepted by the HTTP server's Authorization header.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.subject, "subject", "ledger-owner", "token subject")
	f.DurationVar(&c.ttl, "ttl", 24*time.Hour, "token lifetime")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set; the server accepts requests without a token")
		return subcommands.ExitFailure
	}
	token, err := utils.IssueToken(c.subject, cfg.JWTSecret, c.ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(token)
	return subcommands.ExitSuccess
}

// secretCmd prints a fresh random value for JWT_SECRET.
type secretCmd struct {
	bytes int
}

func (*secretCmd) Name() string     { return "secret" }
func (*secretCmd) Synopsis() string { return "generate a random JWT_SECRET" }
func (*secretCmd) Usage() string {
	return `ledgerctl secret [-bytes <n>]
`
}

func (c *secretCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.bytes, "bytes", 32, "number of random bytes")
}

func (c *secretCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	secret, err := utils.GenerateSecret(c.bytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	fmt.Println(secret)
	return subcommands.ExitSuccess
}
