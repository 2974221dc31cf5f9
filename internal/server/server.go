// Package server is the transport edge: it upgrades websockets, frames
// events in a {"event","data"} envelope, validates inbound payloads and
// routes them to the session layer, and serves the small HTTP API. The
// server never trusts client-supplied game state; every move is
// re-derived from the authoritative engine.
package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hailam/twofold/internal/history"
	"github.com/hailam/twofold/internal/logging"
	"github.com/hailam/twofold/internal/session"
)

var log = logging.GetLog()

// Server wires the websocket endpoint and HTTP routes to the session
// manager and the history store.
type Server struct {
	sessions *session.Manager
	store    *history.Store // nil when history is disabled
	debug    bool
	version  string
	started  time.Time
	upgrader websocket.Upgrader
}

// New builds a server. Debug mode registers the scenario and wipe
// routes; it must stay off in production.
func New(sessions *session.Manager, store *history.Store, debug bool, version string) *Server {
	return &Server{
		sessions: sessions,
		store:    store,
		debug:    debug,
		version:  version,
		started:  time.Now(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser client is served from a separate origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/detailed", s.handleHealthDetailed)
	mux.HandleFunc("POST /api/reset", s.handleAPIReset)
	mux.HandleFunc("POST /api/games", s.handleSaveGame)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/state", s.handleState)
	if s.debug {
		mux.HandleFunc("POST /api/debug/setup/{scenario}", s.handleDebugSetup)
		mux.HandleFunc("POST /api/debug/wipe", s.handleDebugWipe)
	}
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warningf("websocket upgrade: %v", err)
		return
	}
	c := &client{
		id:   uuid.NewString(),
		srv:  s,
		conn: conn,
		send: make(chan outEnvelope, sendQueueSize),
	}
	log.Infof("session %s connected from %s", c.id, conn.RemoteAddr())
	go c.writePump()
	go c.readPump()
}
