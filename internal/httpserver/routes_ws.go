// internal/httpserver/routes_ws.go
//
// Websocket transport for agents that prefer a persistent connection.
// Each connection owns one private session; nothing is stored in the
// session store and the session dies with the connection.
//
// Client → server messages (JSON):
//   {"type":"reset", "seed":"...", "daily":true, "answer":"..."}
//   {"type":"step",  "action":[0,15,15,11,4]}  or  {"type":"step", "guess":"apple"}
//   {"type":"state"}
//   {"type":"spec"}
//
// Server → client replies echo the request type with a "data" payload, or
// {"type":"error","error":<code>,"message":...}. Errors never close the
// connection; an invalid word can simply be retried.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-env/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// wsMessage is a client request. Fields irrelevant to Type are ignored.
type wsMessage struct {
	Type string `json:"type"`
	resetReq
	stepReq
}

// wsReply is a server reply.
type wsReply struct {
	Type    string `json:"type"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == s.cfg.ClientOrigin
		},
	}
}

// handleWS upgrades the connection and serves messages until the peer leaves.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	sess := game.NewSession(s.dict, s.game)
	logger := log.With().Str("session", sess.ID).Str("agent", agentFrom(r.Context())).Logger()
	logger.Info().Msg("websocket connected")

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("websocket read")
			}
			break
		}
		reply := s.dispatch(sess, raw)
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn().Err(err).Msg("websocket write")
			break
		}
	}
	logger.Info().Msg("websocket closed")
}

// dispatch handles one raw client message against sess.
func (s *Server) dispatch(sess *game.Session, raw []byte) wsReply {
	var msg wsMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return errorReply(fmt.Errorf("%w: bad json: %v", game.ErrInvalidAction, err))
	}
	switch msg.Type {
	case "reset":
		opts, err := s.resetOptions(msg.resetReq)
		if err != nil {
			return errorReply(err)
		}
		obs, err := sess.Reset(opts)
		if err != nil {
			return errorReply(err)
		}
		return wsReply{Type: "reset", Data: createRes{SessionID: sess.ID, Observation: obs}}
	case "step":
		res, err := applyStep(sess, msg.stepReq)
		if err != nil {
			return errorReply(err)
		}
		return wsReply{Type: "step", Data: res}
	case "state":
		return wsReply{Type: "state", Data: stateOf(sess)}
	case "spec":
		return wsReply{Type: "spec", Data: game.Registration}
	}
	return wsReply{Type: "error", Error: "unknown_type", Message: fmt.Sprintf("unknown message type %q", msg.Type)}
}

func errorReply(err error) wsReply {
	_, code := classify(err)
	return wsReply{Type: "error", Error: code, Message: err.Error()}
}
