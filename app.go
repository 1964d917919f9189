// app.go
//
// Shared startup for every command.
// Responsibilities:
//   - Load .env (godotenv), the YAML config and flag overrides.
//   - Configure zerolog.
//   - Open the ledger (SQLite with migrations, or in-memory when no path).
//   - Build the word sources and the session manager.

package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/database"
	"github.com/robalobadob/hangman/internal/ledger"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// app holds what a command needs once startup succeeded.
type app struct {
	cfg     config.Config
	ledger  ledger.Ledger
	list    *words.List
	manager *session.Manager
	closers []io.Closer
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("close")
		}
	}
}

// loadConfig reads .env, the config file and the global flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("db-driver") {
		cfg.DBDriver = flagDBDriver
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// setupLogging sets the global level; console output goes to stderr so it
// does not mix with command output.
func setupLogging(level string, console bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openLedger opens the SQLite ledger, or an in-memory one when the path
// is empty.
func openLedger(ctx context.Context, cfg config.Config) (ledger.Ledger, io.Closer, error) {
	if cfg.DBPath == "" {
		log.Info().Msg("no database path, scores are kept in memory")
		return ledger.NewMemory(), nil, nil
	}
	db, err := database.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx, db, assets.Migrations()); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info().Str("path", cfg.DBPath).Str("driver", cfg.DBDriver).Msg("ledger opened")
	return ledger.NewSQL(db), db, nil
}

// newApp wires configuration, ledger, word sources and the manager.
// reg may be nil when metrics are not exposed.
func newApp(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (*app, error) {
	a := &app{cfg: cfg}

	l, closer, err := openLedger(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.ledger = l
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	list, err := words.LoadList(cfg.WordsFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.list = list

	var metrics *session.Metrics
	if reg != nil {
		metrics = session.NewMetrics(reg)
	}
	a.manager = session.New(session.Config{
		Source: words.Mux{
			words.Spanish: list,
			words.English: words.NewRemote(cfg.WordAPIURL, cfg.WordAPITimeout),
		},
		Daily:   &words.Daily{List: list, Salt: cfg.DailySalt},
		Rounds:  store.NewMemoryStore(),
		Ledger:  l,
		Metrics: metrics,
	})
	return a, nil
}

// watchWords hot-reloads the word file until ctx is done.
func (a *app) watchWords(ctx context.Context) {
	if a.cfg.WordsFile == "" {
		return
	}
	go func() {
		if err := words.Watch(ctx, a.cfg.WordsFile, a.list); err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("word list watcher stopped")
		}
	}()
}
