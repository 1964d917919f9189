// hangman is a two-language word-guessing game with a browser client, a
// terminal client and a persistent win/loss ledger.
//
// Usage:
//
//	hangman [serve]          - Start the HTTP server (default)
//	hangman play             - Play in the terminal
//	hangman scores           - Show the win/loss counters
//
// Global flags:
//
//	--config <path>     - YAML config file
//	--db <path>         - SQLite database path ("" keeps scores in memory)
//	--db-driver <name>  - "sqlite3" (cgo) or "sqlite" (pure Go)
//	--log-level <lvl>   - zerolog level (debug, info, warn, error)
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagDBDriver string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("hangman exited")
	}
}

var rootCmd = &cobra.Command{
	Use:   "hangman",
	Short: "Hangman - guess the word before the gallows is complete",
	Long: `Hangman picks a word (Spanish from a built-in list, English from a
remote word API) and lets you guess it one letter at a time. Ten wrong
guesses lose the round. Wins and losses are kept in a SQLite ledger.

Available commands:
  serve    - HTTP server with the browser client (default)
  play     - Terminal client
  scores   - Show win/loss counters

Examples:
  hangman
  hangman serve --addr :8080
  hangman play --lang EN
  hangman scores --player local`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", os.Getenv("HANGMAN_CONFIG"), "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBDriver, "db-driver", "", "SQLite driver: sqlite3 or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides PORT)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}
