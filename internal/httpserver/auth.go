// internal/httpserver/auth.go
//
// Agent authentication.
//
// When JWT_SECRET and AGENT_KEY_HASH are both configured, agents trade the
// shared agent key for a short-lived HS256 token at POST /auth/token and
// present it as "Authorization: Bearer <token>" on every /env route.
// Browsers cannot set headers on websocket upgrades, so /env/ws also
// accepts ?token=<token>. With auth unconfigured the middleware is a no-op.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var errUnauthorized = errors.New("unauthorized")

// ctxAgentKey is the context key type for the authenticated agent name.
type ctxAgentKey struct{}

// agentFrom returns the agent name placed in ctx by requireAgent.
func agentFrom(ctx context.Context) string {
	a, _ := ctx.Value(ctxAgentKey{}).(string)
	return a
}

type tokenReq struct {
	Agent string `json:"agent"`
	Key   string `json:"key"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken verifies the agent key against AGENT_KEY_HASH and issues a token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.AuthEnabled() {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "auth_disabled"})
		return
	}
	var body tokenReq
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	body.Agent = strings.TrimSpace(body.Agent)
	if body.Agent == "" || bcrypt.CompareHashAndPassword([]byte(s.cfg.AgentKeyHash), []byte(body.Key)) != nil {
		writeJSON(w, http.StatusUnauthorized, errorRes{Error: "unauthorized", Message: "invalid agent or key"})
		return
	}
	tok, exp, err := s.signJWT(body.Agent)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "sign_failed"})
		return
	}
	log.Info().Str("agent", body.Agent).Time("exp", exp).Msg("token issued")
	writeJSON(w, http.StatusOK, tokenRes{Token: tok, ExpiresAt: exp})
}

// signJWT creates an HS256 JWT for agent that expires after JWT_EXPIRES_AFTER.
func (s *Server) signJWT(agent string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.JWTExpiresAfter)
	if s.cfg.JWTExpiresAfter <= 0 {
		exp = now.Add(24 * time.Hour)
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   agent,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseJWT validates tokenStr and returns the agent name.
func (s *Server) parseJWT(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", errUnauthorized
	}
	return claims.Subject, nil
}

// requireAgent enforces a valid token when auth is enabled.
func (s *Server) requireAgent() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !s.cfg.AuthEnabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerOrQuery(r)
			if tokenStr == "" {
				writeJSON(w, http.StatusUnauthorized, errorRes{Error: "unauthorized"})
				return
			}
			agent, err := s.parseJWT(tokenStr)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorRes{Error: "unauthorized", Message: "invalid token"})
				return
			}
			ctx := context.WithValue(r.Context(), ctxAgentKey{}, agent)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerOrQuery extracts a bearer token from the Authorization header,
// falling back to the token query parameter.
func bearerOrQuery(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return r.URL.Query().Get("token")
}
