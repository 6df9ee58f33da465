// internal/httpserver/routes_env.go
//
// HTTP routes for driving environment sessions.
//   - GET    /env/spec        → registration metadata
//   - POST   /env             → create a session and start its first episode
//   - GET    /env/{id}        → current state, observation and guesses
//   - POST   /env/{id}/reset  → start a new episode in an existing session
//   - POST   /env/{id}/step   → submit a guess (action codes or text)
//   - DELETE /env/{id}        → drop the session
//
// Reset bodies accept an optional seed, the daily flag (seed = today's
// UTC date) and, when ALLOW_FIXED_ANSWER is on, a fixed answer.
// A rejected guess (invalid word) does not consume a turn.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-env/internal/daily"
	"github.com/robalobadob/wordle-env/internal/game"
	"github.com/robalobadob/wordle-env/internal/words"
)

// mountEnv registers the session routes on r.
func (s *Server) mountEnv(r chi.Router) {
	r.Get("/env/spec", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, game.Registration)
	})
	r.Post("/env", s.handleCreate)
	r.Get("/env/{id}", s.handleState)
	r.Delete("/env/{id}", s.handleDelete)
	r.Post("/env/{id}/reset", s.handleReset)
	r.Post("/env/{id}/step", s.handleStep)
}

// resetReq is the body of POST /env and POST /env/{id}/reset.
type resetReq struct {
	Seed   string `json:"seed"`
	Daily  bool   `json:"daily"`
	Answer string `json:"answer"` // testing only; see ALLOW_FIXED_ANSWER
}

// stepReq is the body of POST /env/{id}/step. Guess takes precedence.
type stepReq struct {
	Action []int  `json:"action"`
	Guess  string `json:"guess"`
}

type createRes struct {
	SessionID   string           `json:"sessionId"`
	Observation game.Observation `json:"observation"`
}

type resetRes struct {
	Observation game.Observation `json:"observation"`
}

type stepRes struct {
	Observation game.Observation `json:"observation"`
	Reward      float64          `json:"reward"`
	Done        bool             `json:"done"`
	Feedback    game.Row         `json:"feedback"`
	Answer      string           `json:"answer,omitempty"` // set once the episode ends
}

type stateRes struct {
	SessionID   string           `json:"sessionId"`
	State       string           `json:"state"`
	Observation game.Observation `json:"observation"`
	Guesses     []string         `json:"guesses"`
	Answer      string           `json:"answer,omitempty"`
}

// decodeBody decodes JSON into v; an empty body leaves v at its zero value.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: bad json: %v", game.ErrInvalidAction, err)
	}
	return nil
}

// resetOptions translates a reset request into game options.
func (s *Server) resetOptions(req resetReq) (game.ResetOptions, error) {
	if req.Answer != "" && !s.cfg.AllowFixedAnswer {
		return game.ResetOptions{}, errFixedAnswer
	}
	opts := game.ResetOptions{Answer: req.Answer, Seed: req.Seed}
	if req.Daily && opts.Seed == "" {
		opts.Seed = daily.DateKey(s.now())
	}
	return opts, nil
}

// applyStep runs one step for a step request.
func applyStep(sess *game.Session, req stepReq) (stepRes, error) {
	var (
		obs    game.Observation
		reward float64
		done   bool
		err    error
	)
	if req.Guess != "" {
		w, encErr := words.Encode(req.Guess)
		if encErr != nil {
			return stepRes{}, fmt.Errorf("%w: %w", game.ErrInvalidAction, encErr)
		}
		obs, reward, done, err = sess.Guess(w)
	} else {
		obs, reward, done, err = sess.Step(req.Action)
	}
	if err != nil {
		return stepRes{}, err
	}
	res := stepRes{Observation: obs, Reward: reward, Done: done}
	res.Feedback, _ = sess.LastRow()
	if a, ok := sess.Answer(); ok {
		res.Answer = a.String()
	}
	return res, nil
}

// stateOf summarizes a session.
func stateOf(sess *game.Session) stateRes {
	res := stateRes{
		SessionID:   sess.ID,
		State:       sess.State().String(),
		Observation: sess.Observation(),
		Guesses:     []string{},
	}
	for _, g := range sess.Guesses() {
		res.Guesses = append(res.Guesses, g.String())
	}
	if a, ok := sess.Answer(); ok {
		res.Answer = a.String()
	}
	return res
}

// handleCreate creates a session, resets it and stores it.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := s.resetOptions(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess := game.NewSession(s.dict, s.game)
	obs, err := sess.Reset(opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("session", sess.ID).Str("agent", agentFrom(r.Context())).Bool("seeded", opts.Seed != "").Msg("session created")
	writeJSON(w, http.StatusCreated, createRes{SessionID: sess.ID, Observation: obs})
}

// handleReset starts a new episode in an existing session.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := s.resetOptions(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	var obs game.Observation
	err = s.store.Update(r.Context(), id, func(sess *game.Session) error {
		var err error
		obs, err = sess.Reset(opts)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Debug().Str("session", id).Msg("episode reset")
	writeJSON(w, http.StatusOK, resetRes{Observation: obs})
}

// handleStep applies a guess.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req stepReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	var res stepRes
	err := s.store.Update(r.Context(), id, func(sess *game.Session) error {
		var err error
		res, err = applyStep(sess, req)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Debug().Str("session", id).Float64("reward", res.Reward).Bool("done", res.Done).Msg("step")
	writeJSON(w, http.StatusOK, res)
}

// handleState returns the session summary.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var res stateRes
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		res = stateOf(sess)
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleDelete drops a session.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
