// internal/httpserver/routes_round.go
//
// Game routes:
//   - GET  /config      → labels, alphabet, gallows table, music URL for a language
//   - POST /round/new   → start a round (replaces the player's current round)
//   - GET  /round/current → the player's current round
//   - GET  /round/{id}  → current view of a round
//   - POST /round/guess → guess one letter
//   - GET  /scores      → the player's win/loss counters
//
// The secret word is only included in a round view once the round is over.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/gallows"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/i18n"
	"github.com/robalobadob/hangman/internal/ledger"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func (s *Server) mountRounds(r chi.Router) {
	r.Get("/config", s.handleConfig)
	r.Post("/round/new", s.handleNewRound)
	r.Get("/round/current", s.handleCurrentRound)
	r.Get("/round/{id}", s.handleGetRound)
	r.Post("/round/guess", s.handleGuess)
	r.Get("/scores", s.handleScores)
}

// ------------------------------ views --------------------------------------

// roundView is the JSON shape of a round.
type roundView struct {
	RoundID      string         `json:"roundId"`
	Language     words.Language `json:"language"`
	Daily        bool           `json:"daily"`
	Revealed     string         `json:"revealed"` // "G___"
	Display      string         `json:"display"`  // "G _ _ _"
	Length       int            `json:"length"`
	Mistakes     int            `json:"mistakes"`
	MaxMistakes  int            `json:"maxMistakes"`
	Remaining    int            `json:"remaining"`
	Guessed      []string       `json:"guessed"`
	State        game.State     `json:"state"`
	SourceFailed bool           `json:"sourceFailed"`
	Message      string         `json:"message"`
	Word         string         `json:"word,omitempty"`
	Scores       *ledger.Score  `json:"scores,omitempty"`
}

func viewOf(sess *store.Session) roundView {
	r := sess.Round
	v := roundView{
		RoundID:      sess.ID,
		Language:     sess.Language,
		Daily:        sess.Daily,
		Revealed:     r.Masked(),
		Display:      r.Display(),
		Length:       len(r.Secret),
		Mistakes:     r.Mistakes,
		MaxMistakes:  game.MaxMistakes,
		Remaining:    r.Remaining(),
		Guessed:      r.Letters(),
		State:        r.State,
		SourceFailed: sess.SourceFailed,
		Message:      i18n.Message(sess.Language, r, sess.SourceFailed),
	}
	if r.State.Terminal() {
		v.Word = r.Word()
	}
	return v
}

// withScores attaches the ledger counters; failures are logged, not fatal.
func (s *Server) withScores(r *http.Request, v roundView) roundView {
	sc, err := s.opts.Manager.Scores(r.Context(), playerID(r))
	if err != nil {
		log.Warn().Err(err).Msg("load scores")
		return v
	}
	v.Scores = &sc
	return v
}

// ------------------------------ /config ------------------------------------

type configRes struct {
	Language    words.Language    `json:"language"`
	Labels      i18n.Labels       `json:"labels"`
	Alphabet    []string          `json:"alphabet"`
	MaxMistakes int               `json:"maxMistakes"`
	Gallows     []gallows.Segment `json:"gallows"`
	Canvas      [2]int            `json:"canvas"`
	MusicURL    string            `json:"musicUrl"`
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	lang, err := words.ParseLanguage(r.URL.Query().Get("lang"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_language")
		return
	}
	writeJSON(w, http.StatusOK, configRes{
		Language:    lang,
		Labels:      i18n.For(lang),
		Alphabet:    i18n.Alphabet(lang),
		MaxMistakes: game.MaxMistakes,
		Gallows:     gallows.All(),
		Canvas:      [2]int{gallows.Width, gallows.Height},
		MusicURL:    s.opts.MusicURL,
	})
}

// ------------------------------ rounds -------------------------------------

type newRoundReq struct {
	Language string `json:"language"`
	Daily    bool   `json:"daily"`
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	// An empty body starts a random Spanish round.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	lang, err := words.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_language")
		return
	}

	sess, err := s.opts.Manager.NewRound(r.Context(), playerID(r), session.Options{Language: lang, Daily: req.Daily})
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.withScores(r, viewOf(sess)))
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	sess, err := s.opts.Manager.Round(r.Context(), playerID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.withScores(r, viewOf(sess)))
}

func (s *Server) handleCurrentRound(w http.ResponseWriter, r *http.Request) {
	sess, err := s.opts.Manager.Current(r.Context(), playerID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.withScores(r, viewOf(sess)))
}

type guessReq struct {
	RoundID string `json:"roundId"`
	Letter  string `json:"letter"`
}

type guessRes struct {
	Round   roundView        `json:"round"`
	Event   game.Event       `json:"event"`
	Letter  string           `json:"letter"`
	Segment *gallows.Segment `json:"segment,omitempty"` // Drawn by a miss.
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ev, err := s.opts.Manager.Guess(r.Context(), playerID(r), req.RoundID, req.Letter)
	if err != nil {
		s.fail(w, err)
		return
	}
	res := guessRes{Round: s.withScores(r, viewOf(sess)), Event: ev, Letter: string(ev.Letter)}
	if seg, ok := gallows.At(ev.Step); ok && !ev.Hit {
		res.Segment = &seg
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	sc, err := s.opts.Manager.Scores(r.Context(), playerID(r))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidLetter):
		writeError(w, http.StatusBadRequest, "invalid_letter")
	case errors.Is(err, words.ErrUnknownLanguage):
		writeError(w, http.StatusBadRequest, "bad_language")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrAlreadyGuessed):
		writeError(w, http.StatusConflict, "already_guessed")
	case errors.Is(err, game.ErrRoundOver):
		writeError(w, http.StatusConflict, "round_over")
	case errors.Is(err, session.ErrStaleRound):
		writeError(w, http.StatusConflict, "stale_round")
	case errors.Is(err, session.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded")
	case errors.Is(err, session.ErrLedger):
		writeError(w, http.StatusInternalServerError, "ledger_failed")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
