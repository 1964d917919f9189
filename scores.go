package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/internal/i18n"
	"github.com/robalobadob/hangman/internal/ledger"
	"github.com/robalobadob/hangman/internal/tui"
	"github.com/robalobadob/hangman/internal/words"
)

var (
	flagScoresPlayer string
	flagScoresLang   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show win/loss counters",
	Long: `Display the wins and losses recorded for a player.

The terminal client records under "local"; browser players are keyed by
the ID in their identity cookie.

Examples:
  hangman scores
  hangman scores --player 6f1c...`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", tui.LocalPlayer, "Player ID")
	scoresCmd.Flags().StringVar(&flagScoresLang, "lang", "ES", "Label language: ES or EN")
}

var (
	scoreTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	scoreBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	scoreKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(10)
)

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lang, err := words.ParseLanguage(flagScoresLang)
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel, true)

	ctx := context.Background()
	l, closer, err := openLedger(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	sc, err := l.Load(ctx, flagScoresPlayer)
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderScores(i18n.For(lang), flagScoresPlayer, sc))
	return nil
}

func renderScores(labels i18n.Labels, player string, sc ledger.Score) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		scoreTitle.Render(labels.Title+" · "+player),
		"",
		scoreKey.Render(labels.Wins)+fmt.Sprint(sc.Wins),
		scoreKey.Render(labels.Losses)+fmt.Sprint(sc.Losses),
	)
	return scoreBox.Render(body)
}
