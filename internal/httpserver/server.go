// internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (request IDs, logging, panic recovery, timeouts, CORS).
//   - Browser client: "/" and "/static/*" from the embedded assets.
//   - Diagnostics: "/health", "/metrics".
//   - Game endpoints: GET /config, POST /round/new, GET /round/{id},
//     POST /round/guess, GET /scores (mounted in routes_round.go).
//
// Notes:
//   - Every game request carries a player identity cookie (see player.go);
//     one is minted on first contact.
//   - Errors are JSON bodies of the form {"error":"code"}.

package httpserver

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/hangman/internal/session"
)

// Options configures a Server.
type Options struct {
	Manager      *session.Manager
	Web          fs.FS                // Browser client; nil disables "/".
	Gatherer     prometheus.Gatherer  // nil disables "/metrics".
	PlayerSecret string
	ClientOrigin string // Enables credentialed CORS for this origin when set.
	MusicURL     string
	Secure       bool // Mark cookies Secure (HTTPS deployments).
}

// Server bundles router and game dependencies.
type Server struct {
	r       *chi.Mux
	opts    Options
	players *players
	http    *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		opts:    opts,
		players: newPlayers(opts.PlayerSecret, opts.Secure),
	}
	s.http = &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time
	if opts.ClientOrigin != "" {
		s.r.Use(cors(opts.ClientOrigin))
	}

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	if opts.Gatherer != nil {
		s.r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	// --- browser client ---
	if opts.Web != nil {
		static := http.FileServer(http.FS(opts.Web))
		s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFileFS(w, r, opts.Web, "index.html")
		})
		s.r.Handle("/static/*", http.StripPrefix("/static/", static))
	}

	// --- game API ---
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Use(s.withPlayer)
		s.mountRounds(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr. It returns nil after Shutdown.
func (s *Server) Start(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Shutdown.
func (s *Server) Serve(l net.Listener) error {
	if err := s.http.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }

// Handler exposes the router (used by tests and custom servers).
func (s *Server) Handler() http.Handler { return s.r }
