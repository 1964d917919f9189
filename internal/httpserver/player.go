// internal/httpserver/player.go
//
// Anonymous player identity.
// Each browser gets a stable player ID (UUID) carried in an HS256-signed JWT
// cookie, so the score ledger can be scoped per player without accounts and
// without trusting a client-chosen ID.

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	playerCookieName = "hangman_player"
	playerTTL        = 180 * 24 * time.Hour
)

// ctxPlayerKey is the context key type for the player ID.
type ctxPlayerKey struct{}

type players struct {
	secret []byte
	secure bool
}

func newPlayers(secret string, secure bool) *players {
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	return &players{secret: []byte(secret), secure: secure}
}

// sign creates a token for id.
func (p *players) sign(id string, now time.Time) (string, time.Time, error) {
	exp := now.Add(playerTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(p.secret)
	return ss, exp, err
}

// parse validates a token and returns its player ID.
func (p *players) parse(token string) (string, bool) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// ensure returns the caller's player ID, minting a new identity cookie when
// the request has none or an invalid one.
func (p *players) ensure(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		if id, ok := p.parse(c.Value); ok {
			return id
		}
	}
	id := uuid.NewString()
	tok, exp, err := p.sign(id, time.Now())
	if err != nil {
		log.Warn().Err(err).Msg("sign player token")
		return id
	}
	sameSite := http.SameSiteLaxMode
	if p.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
	return id
}

// withPlayer decorates requests with the player ID.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.players.ensure(w, r)
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// playerID reads the ID placed by withPlayer.
func playerID(r *http.Request) string {
	id, _ := r.Context().Value(ctxPlayerKey{}).(string)
	return id
}
