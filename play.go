package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/internal/tui"
	"github.com/robalobadob/hangman/internal/words"
)

var (
	flagLang   string
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a round in the terminal.

Controls:
  A-Z (and Ñ in Spanish) - Guess a letter
  Tab                    - Switch language (starts a new round)
  Ctrl+R                 - Restart
  Esc/Ctrl+C             - Quit

Examples:
  hangman play
  hangman play --lang EN`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLang, "lang", "ES", "Language: ES or EN")
	playCmd.Flags().StringVar(&flagPlayer, "player", tui.LocalPlayer, "Ledger player name")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lang, err := words.ParseLanguage(flagLang)
	if err != nil {
		return err
	}
	// The alternate screen owns stdout; only warnings reach stderr.
	if cfg.LogLevel == "info" || cfg.LogLevel == "debug" {
		cfg.LogLevel = "warn"
	}
	setupLogging(cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := newApp(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()
	a.watchWords(ctx)

	if err := tui.Run(a.manager, flagPlayer, lang); err != nil {
		log.Error().Err(err).Msg("terminal client failed")
		return err
	}
	return nil
}
