// Package cli is the command-line surface of ferry. Every verb is a thin
// wrapper over the engine; the cli owns only argument parsing, prompting and
// human-readable output.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/mbelyaev/ferry/internal/adapter"
	"github.com/mbelyaev/ferry/internal/adapter/disk"
	"github.com/mbelyaev/ferry/internal/adapter/minio"
	"github.com/mbelyaev/ferry/internal/adapter/s3"
	"github.com/mbelyaev/ferry/internal/adapter/webform"
	"github.com/mbelyaev/ferry/internal/config"
	"github.com/mbelyaev/ferry/internal/download"
	"github.com/mbelyaev/ferry/internal/engine"
	"github.com/mbelyaev/ferry/internal/flagx"
	"github.com/mbelyaev/ferry/internal/history"
	"github.com/mbelyaev/ferry/internal/logging"
	"github.com/mbelyaev/ferry/internal/profile"
)

// configFlags are the flags the config layer owns; Run strips them to get at
// the positional arguments.
var configFlags = []string{"-p", "-x", "-d", "-l", "-c", "-config"}

type App struct {
	cfg      *config.Config
	store    *profile.Store
	orch     *engine.Orchestrator
	streamer *download.Streamer
	recorder history.Recorder
	log      logging.Logger

	out    io.Writer
	reader *bufio.Reader
	db     *sql.DB
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    log,
		out:    os.Stdout,
		reader: bufio.NewReader(os.Stdin),
	}

	if err := a.promptSecrets(cfg.Profiles); err != nil {
		return nil, err
	}

	var err error
	switch cfg.HistoryDriver {
	case "postgres":
		a.db, err = history.OpenPostgres(ctx, cfg.HistoryDSN)
		if err != nil {
			return nil, err
		}
		a.recorder = history.NewPostgresRecorder(a.db)
	default:
		a.db, err = history.OpenSQLite(ctx, cfg.HistoryDSN)
		if err != nil {
			return nil, err
		}
		a.recorder = history.NewSQLiteRecorder(a.db)
	}

	a.store = profile.NewStore(cfg.Profiles)
	registry := adapter.NewRegistry(disk.New(), s3.New(), minio.New(), webform.New())

	a.orch = engine.New(profile.NewResolver(a.store, cfg.DefaultProfileID), registry,
		cfg, a.recorder, &consoleDispatcher{out: a.out}, log)

	a.streamer, err = download.New(cfg.DownloadDir, cfg.Proxy, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// Run dispatches one verb. The config-owned flags may appear anywhere in
// args; they were already consumed by config loading and are stripped here.
func (a *App) Run(ctx context.Context, args []string) error {
	rest := flagx.StripArgs(args, configFlags)
	if len(rest) == 0 {
		a.usage()
		return nil
	}

	verb, rest := rest[0], rest[1:]
	switch verb {
	case "upload", "u":
		return a.Upload(ctx, rest)
	case "download", "get":
		return a.Download(ctx, rest)
	case "test":
		return a.Test(ctx, rest)
	case "history":
		return a.History(ctx, rest)
	case "ls":
		return a.ListRemote(ctx, rest)
	case "rm":
		return a.DeleteRemote(ctx, rest)
	case "mkdir":
		return a.MakeRemoteDir(ctx, rest)
	case "profiles":
		return a.Profiles()
	case "help":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", verb)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `Usage: ferry [flags] <command> [args]

Commands:
  upload <file>...       upload files through the active profile
  download <url> [name]  fetch a url into the download directory
  test <profile-id>      check that a profile can actually upload
  history [n|clear]      show the last n uploads, or drop failed records
  ls [dir]               list remote files (backends that support it)
  rm <key>...            delete remote files (backends that support it)
  mkdir <dir>            create a remote directory (backends that support it)
  profiles               list configured profiles

Flags:
  -p <id>      profile to use instead of the configured default
  -x <url>     proxy for transfers
  -d <dir>     download directory
  -l <format>  link format: url, html or markdown
  -c <path>    config file`)
}
