package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/httpserver"
)

var flagAddr string

// shutdownTimeout bounds the wait for in-flight requests on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serve the browser client and the JSON API.

Endpoints:
  GET  /              - browser client
  GET  /config        - labels, alphabet and gallows for ?lang=ES|EN
  POST /round/new     - start a round
  GET  /round/{id}    - read a round
  POST /round/guess   - guess a letter
  GET  /scores        - win/loss counters
  GET  /health        - liveness
  GET  /metrics       - Prometheus metrics

Examples:
  hangman serve
  hangman serve --addr :8080 --db ./data/hangman.db`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flagAddr
	}
	setupLogging(cfg.LogLevel, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := newApp(ctx, cfg, reg)
	if err != nil {
		return err
	}
	defer a.Close()
	a.watchWords(ctx)

	srv := httpserver.New(httpserver.Options{
		Manager:      a.manager,
		Web:          assets.Web(),
		Gatherer:     reg,
		PlayerSecret: cfg.PlayerSecret,
		ClientOrigin: cfg.ClientOrigin,
		MusicURL:     cfg.MusicURL,
		Secure:       strings.HasPrefix(cfg.ClientOrigin, "https://"),
	})

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting hangman server")
		errc <- srv.Start(cfg.Addr)
	}()

	select {
	case err := <-errc:
		log.Error().Err(err).Msg("server exited")
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown")
		return err
	}
	return <-errc
}
