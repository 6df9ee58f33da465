// internal/httpserver/server.go
//
// HTTP server wiring for the environment.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     JSON content type, CORS).
//   - Public endpoints: "/", "/health", "POST /auth/token".
//   - Environment endpoints under /env (see routes_env.go) and the
//     websocket transport at /env/ws (see routes_ws.go).
//   - Error mapping from game/store errors to JSON responses.
//
// Notes:
//   - When agent auth is configured every /env route requires a bearer
//     token issued by /auth/token (see auth.go).
//   - The dictionary is shared by all sessions; sessions live in the store.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-env/internal/config"
	"github.com/robalobadob/wordle-env/internal/game"
	"github.com/robalobadob/wordle-env/internal/store"
	"github.com/robalobadob/wordle-env/internal/words"
)

// Server bundles router, session store, dictionary and settings.
type Server struct {
	r     *chi.Mux
	store store.Store
	dict  *words.Dictionary
	cfg   config.Config
	game  game.Config
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, dict *words.Dictionary, cfg config.Config) (*Server, error) {
	gc, err := cfg.GameConfig()
	if err != nil {
		return nil, err
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), store: st, dict: dict, cfg: cfg, game: gc, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// Websocket connections are long-lived, so they stay outside the
	// timeout group.
	s.r.With(s.requireAgent()).Get("/env/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time
		r.Use(jsonContentType)                   // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service": "wordle-env",
				"env":     game.Registration.ID,
				"endpoints": []string{
					"/health", "GET /env/spec", "POST /env", "POST /env/{id}/reset",
					"POST /env/{id}/step", "GET /env/{id}", "DELETE /env/{id}", "GET /env/ws", "POST /auth/token",
				},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":       true,
				"words":    s.dict.Len(),
				"sessions": s.store.Len(),
			})
		})

		r.Post("/auth/token", s.handleToken)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAgent())
			s.mountEnv(r)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found", Message: r.URL.Path})
	})

	return s, nil
}

// Start begins serving HTTP on addr until ctx is canceled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return hs.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured CLIENT_ORIGIN.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- errors ------------------------------------

// errFixedAnswer rejects client-chosen answers unless ALLOW_FIXED_ANSWER is set.
var errFixedAnswer = errors.New("fixed answers are disabled")

// errorRes is the JSON body of every error response.
type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// classify maps an error to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrInvalidAction):
		return http.StatusBadRequest, "invalid_action"
	case errors.Is(err, game.ErrInvalidWord):
		return http.StatusUnprocessableEntity, "invalid_word"
	case errors.Is(err, game.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, errFixedAnswer):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, store.ErrFull):
		return http.StatusServiceUnavailable, "too_many_sessions"
	case errors.Is(err, words.ErrEmptyDictionary):
		return http.StatusInternalServerError, "empty_dictionary"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "timeout"
	}
	return http.StatusInternalServerError, "internal"
}

// writeError classifies err and writes the JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Str("reqId", chimw.GetReqID(r.Context())).Msg("request failed")
	}
	writeJSON(w, status, errorRes{Error: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
