package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobportal/jobportal-client/cmd/portal/cli"
	"github.com/jobportal/jobportal-client/internal/app"
)

const usage = `usage: portal <command> [flags]

commands:
  login           sign in and print the reachable navigation
  nav             print the navigation of the stored session
  fetch           load one resource (profile, employers, employer_details,
                  employer_names, consultants, consultant_details, job_reports)
  report          export the jobs report as CSV
  language        print or change the language preference
  watch           refresh resources and serve /metrics
  logout          end the session
  delete-account  delete the signed-in account
`

func main() {
	if app.InTestMode() {
		return
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(stderr, usage)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.LoadEnvFiles(".env", ".env."+os.Getenv("APP_ENV")); err != nil {
		slog.Default().Warn("env file ignored", slog.Any("error", err))
	}
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("failed to load config", slog.Any("error", err))
		return 1
	}
	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	portal, closeStore, err := cli.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start portal client", slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close storage", slog.Any("error", err))
		}
	}()
	portal.Locale.Load(ctx)

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := cli.Output{Stdout: stdout, Stderr: stderr}
	fs.BoolVar(&out.JSON, "json", false, "print JSON output")

	switch cmd {
	case "login":
		email := fs.String("email", "", "account email")
		password := fs.String("password", os.Getenv("PORTAL_PASSWORD"), "account password")
		if fs.Parse(rest) != nil {
			return 2
		}
		return portal.LoginCommand(ctx, cli.LoginOptions{Output: out, Email: *email, Password: *password})
	case "nav":
		if fs.Parse(rest) != nil {
			return 2
		}
		return portal.NavCommand(ctx, out)
	case "fetch":
		id := fs.Int64("id", 0, "record id")
		if fs.Parse(rest) != nil || fs.NArg() != 1 {
			_, _ = fmt.Fprintln(stderr, "fetch: expected one resource name")
			return 2
		}
		return portal.FetchCommand(ctx, cli.FetchOptions{Output: out, Resource: fs.Arg(0), ID: *id})
	case "report":
		query := fs.String("q", "", "filter by subscription name")
		path := fs.String("o", "", "write CSV to file instead of stdout")
		if fs.Parse(rest) != nil {
			return 2
		}
		return portal.ReportCommand(ctx, cli.ReportOptions{Output: out, Query: *query, Path: *path})
	case "language":
		set := fs.String("set", "", "language to select (en, hi, mr)")
		if fs.Parse(rest) != nil {
			return 2
		}
		return portal.LanguageCommand(ctx, cli.LanguageOptions{Output: out, Set: *set})
	case "watch":
		addr := fs.String("addr", ":9102", "metrics listen address")
		interval := fs.Duration("interval", time.Minute, "refresh interval")
		if fs.Parse(rest) != nil {
			return 2
		}
		return portal.WatchCommand(ctx, cli.WatchOptions{Output: out, Addr: *addr, Interval: *interval})
	case "logout":
		if fs.Parse(rest) != nil {
			return 2
		}
		return portal.LogoutCommand(ctx, out)
	case "delete-account":
		yes := fs.Bool("yes", false, "confirm account deletion")
		if fs.Parse(rest) != nil {
			return 2
		}
		return portal.DeleteAccountCommand(ctx, cli.DeleteAccountOptions{Output: out, Confirm: *yes})
	default:
		_, _ = fmt.Fprint(stderr, usage)
		return 2
	}
}
