package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/storage"
	"github.com/google/subcommands"
)

type fieldKind int

const (
	stringField fieldKind = iota
	intField
	nullableIntField // accepts "null" to send an explicit null
	boolField
	jsonField
)

// field maps one flag onto one payload key of the same name.
type field struct {
	name  string
	kind  fieldKind
	usage string
}

// actionCmd is a subcommand that runs a single ledger action.
type actionCmd struct {
	action   string
	group    string
	synopsis string
	fields   []field
	values   map[string]*string
}

func (c *actionCmd) Name() string     { return c.action }
func (c *actionCmd) Synopsis() string { return c.synopsis }
func (c *actionCmd) Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ledgerctl %s", c.action)
	for _, f := range c.fields {
		fmt.Fprintf(&b, " [-%s <%s>]", f.name, f.name)
	}
	fmt.Fprintf(&b, "\n\n  %s\n", c.synopsis)
	return b.String()
}

func (c *actionCmd) SetFlags(f *flag.FlagSet) {
	c.values = make(map[string]*string, len(c.fields))
	for _, fd := range c.fields {
		c.values[fd.name] = f.String(fd.name, "", fd.usage)
	}
}

func (c *actionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	payload, err := c.payload(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return run(ctx, c.action, payload, os.Stdout)
}

// payload collects only the flags given on the command line, so absent
// flags stay absent in the JSON object.
func (c *actionCmd) payload(f *flag.FlagSet) (json.RawMessage, error) {
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	obj := map[string]any{}
	for _, fd := range c.fields {
		if !set[fd.name] {
			continue
		}
		raw := *c.values[fd.name]
		switch fd.kind {
		case intField, nullableIntField:
			if fd.kind == nullableIntField && raw == "null" {
				obj[fd.name] = nil
				continue
			}
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("-%s must be an integer: %w", fd.name, err)
			}
			obj[fd.name] = n
		case boolField:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("-%s must be true or false: %w", fd.name, err)
			}
			obj[fd.name] = b
		case jsonField:
			if !json.Valid([]byte(raw)) {
				return nil, fmt.Errorf("-%s must be valid JSON", fd.name)
			}
			obj[fd.name] = json.RawMessage(raw)
		default:
			obj[fd.name] = raw
		}
	}
	return json.Marshal(obj)
}

// execCmd runs any action with a raw JSON payload.
type execCmd struct {
	payload string
}

func (*execCmd) Name() string     { return "exec" }
func (*execCmd) Synopsis() string { return "run any action with a JSON payload" }
func (*execCmd) Usage() string {
	return `ledgerctl exec [-payload <json>] <action>

  Runs the named action. The payload defaults to an empty object.
`
}

func (c *execCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.payload, "payload", "{}", "JSON object passed to the action")
}

func (c *execCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exec takes exactly one action name")
		return subcommands.ExitUsageError
	}
	if !json.Valid([]byte(c.payload)) {
		fmt.Fprintln(os.Stderr, "-payload must be valid JSON")
		return subcommands.ExitUsageError
	}
	return run(ctx, f.Arg(0), json.RawMessage(c.payload), os.Stdout)
}

// run opens the ledger, executes one action and prints its envelope.
func run(ctx context.Context, action string, payload json.RawMessage, out io.Writer) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	repos, closeDB, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeDB()

	dispatcher := actions.NewDispatcher(services.NewServiceContainer(repos), cfg.Settings())
	return printResult(out, dispatcher.Execute(ctx, action, payload))
}

func printResult(out io.Writer, res actions.Result) subcommands.ExitStatus {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !res.Success {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func commands() []subcommands.Command {
	id := field{"id", intField, "record id"}
	dateRange := []field{
		{"startDate", stringField, "inclusive start date (YYYY-MM-DD)"},
		{"endDate", stringField, "inclusive end date (YYYY-MM-DD)"},
	}
	asOf := field{"asOf", stringField, "include entries dated on or before (YYYY-MM-DD)"}

	return []subcommands.Command{
		&actionCmd{action: actions.CreateAccount, group: "accounts", synopsis: "create an account", fields: []field{
			{"code", stringField, "unique account code"},
			{"name", stringField, "account name"},
			{"type", stringField, "Asset, Liability, Equity, Income or Expense"},
			{"parentId", intField, "parent account id"},
		}},
		&actionCmd{action: actions.UpdateAccount, group: "accounts", synopsis: "update an account", fields: []field{
			id,
			{"code", stringField, "new code"},
			{"name", stringField, "new name"},
			{"type", stringField, "new type"},
			{"parentId", nullableIntField, "new parent id, or null to detach"},
		}},
		&actionCmd{action: actions.GetAccountByID, group: "accounts", synopsis: "show one account", fields: []field{id}},
		&actionCmd{action: actions.ListAccounts, group: "accounts", synopsis: "list accounts ordered by code", fields: []field{
			{"code", stringField, "code contains"},
			{"name", stringField, "name contains"},
			{"type", stringField, "account type"},
		}},
		&actionCmd{action: actions.DeleteAccount, group: "accounts", synopsis: "delete an account and its descendants", fields: []field{id}},

		&actionCmd{action: actions.CreateJournalEntry, group: "journal", synopsis: "record a balanced journal entry", fields: []field{
			{"date", stringField, "entry date (YYYY-MM-DD)"},
			{"description", stringField, "free text description"},
			{"reference", stringField, "external reference"},
			{"lines", jsonField, `lines as JSON, e.g. [{"accountId":1,"debit":100},{"accountId":2,"credit":100}]`},
		}},
		&actionCmd{action: actions.DeleteJournalEntry, group: "journal", synopsis: "delete a journal entry", fields: []field{id}},
		&actionCmd{action: actions.GetJournalEntryByID, group: "journal", synopsis: "show an entry with its lines", fields: []field{id}},
		&actionCmd{action: actions.SearchJournalEntries, group: "journal", synopsis: "search journal entries", fields: append(dateRange,
			field{"reference", stringField, "reference contains"},
			field{"description", stringField, "description contains"},
		)},

		&actionCmd{action: actions.ClosePeriod, group: "period", synopsis: "lock journal writes through a date", fields: []field{
			{"throughDate", stringField, "last locked date (YYYY-MM-DD)"},
		}},
		&actionCmd{action: actions.GetPeriodLock, group: "period", synopsis: "show the period lock"},
		&actionCmd{action: actions.GetSettings, group: "period", synopsis: "show display settings"},

		&actionCmd{action: actions.GetTrialBalance, group: "reports", synopsis: "trial balance", fields: []field{asOf}},
		&actionCmd{action: actions.GetLedger, group: "reports", synopsis: "account ledger", fields: append([]field{
			{"accountId", intField, "account id"},
			{"includeRunningBalance", boolField, "add running balances"},
		}, dateRange...)},
		&actionCmd{action: actions.GetBalanceSheet, group: "reports", synopsis: "balance sheet", fields: []field{asOf}},
		&actionCmd{action: actions.GetProfitLoss, group: "reports", synopsis: "profit and loss", fields: dateRange},

		&execCmd{},
		&tokenCmd{},
		&secretCmd{},
	}
}
