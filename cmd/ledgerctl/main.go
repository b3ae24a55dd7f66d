// Command ledgerctl runs ledger actions against the configured database and
// prints the result envelope as JSON.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func groupOf(c subcommands.Command) string {
	switch c := c.(type) {
	case *actionCmd:
		return c.group
	case *tokenCmd, *secretCmd:
		return "auth"
	}
	return ""
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range commands() {
		commander.Register(c, groupOf(c))
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
