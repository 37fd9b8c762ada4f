package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/aakashsubedi/NoteSpace/config"
	authRepo "github.com/aakashsubedi/NoteSpace/internal/auth/repository/rest"
	authUC "github.com/aakashsubedi/NoteSpace/internal/auth/usecase"
	noteRepo "github.com/aakashsubedi/NoteSpace/internal/note/repository/rest"
	noteUC "github.com/aakashsubedi/NoteSpace/internal/note/usecase"
	"github.com/aakashsubedi/NoteSpace/internal/session"
	"github.com/aakashsubedi/NoteSpace/pkg/httpclient"
	"github.com/aakashsubedi/NoteSpace/pkg/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("notespace", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(stderr)
	flags.String("api-url", "", "backend API base URL (default "+config.DefaultBaseURL+")")
	flags.Duration("timeout", 0, "per-request timeout (default 10s)")
	flags.String("session", "", "session file path")
	flags.Bool("ephemeral", false, "keep the session in memory only")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "also write JSON logs to this file")
	flags.Usage = func() { printUsage(stderr, flags) }

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 1
	}
	if flags.NArg() == 0 {
		printUsage(stderr, flags)
		return 1
	}

	// 1. Configuration
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(stderr, "Failed to load config:", err)
		return 1
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		FilePath:     cfg.Logger.File,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debugf(ctx, "API base URL: %s", cfg.API.BaseURL)

	// 3. Session
	var store session.Store
	if cfg.Session.Ephemeral {
		store = session.NewMemory()
	} else {
		store, err = session.NewFile(cfg.Session.Path, logger)
		if err != nil {
			fmt.Fprintln(stderr, "Failed to open session:", err)
			return 1
		}
	}

	// 4. HTTP client
	client := httpclient.New(httpclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		UserAgent: cfg.API.UserAgent,
	}, store, logger)

	// 5. Domains
	a := &app{
		auth:   authUC.New(authRepo.New(client, logger), store, logger),
		notes:  noteUC.New(noteRepo.New(client, logger), logger),
		stdin:  stdin,
		out:    newPrinter(stdout),
		errOut: newPrinter(stderr),
	}

	// 6. Run
	if err := a.dispatch(ctx, flags.Args()); err != nil {
		a.errOut.failure(err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprint(w, `Usage: notespace [global flags] <command> [flags]

Commands:
  login     [--email e] [--password p]   sign in
  signup    [--email e] [--password p]   create an account and sign in
  logout                                 forget the local session
  whoami                                 show the current session
  refresh                                renew the access token
  list      [--search s] [--tag t]       list notes
  tags                                   list every tag in use
  show      <id>                         print one note
  create    --title t --content c [--tag t]...
  edit      <id> --title t --content c
  delete    <id>

Global flags:
`)
	fmt.Fprint(w, flags.FlagUsages())
}
