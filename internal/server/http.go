package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/hailam/twofold/internal/history"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warningf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type healthDetail struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	UptimeSec  int64  `json:"uptime_seconds"`
	Rooms      int    `json:"rooms"`
	Sessions   int    `json:"sessions"`
	Goroutines int    `json:"goroutines"`
}

func (s *Server) handleHealthDetailed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthDetail{
		Status:     "ok",
		Version:    s.version,
		UptimeSec:  int64(time.Since(s.started).Seconds()),
		Rooms:      s.sessions.RoomCount(),
		Sessions:   s.sessions.SessionCount(),
		Goroutines: runtime.NumGoroutine(),
	})
}

func (s *Server) handleAPIReset(w http.ResponseWriter, r *http.Request) {
	var p roomPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Room == "" {
		writeError(w, http.StatusBadRequest, "room required")
		return
	}
	if err := s.sessions.Reset(p.Room); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset", "room": p.Room})
}

func (s *Server) handleSaveGame(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history disabled")
		return
	}
	var p finishGamePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Room == "" {
		writeError(w, http.StatusBadRequest, "room required")
		return
	}
	dup, err := s.store.HasCompleted(p.Room)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if dup {
		writeError(w, http.StatusConflict, "Game already saved")
		return
	}
	g := history.CompletedGame{Room: p.Room, Winner: p.Winner, Moves: p.Moves, Board: p.Board}
	if err := s.store.SaveCompleted(g); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved", "room": p.Room})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history disabled")
		return
	}
	games, err := s.store.Completed()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if room := r.URL.Query().Get("room"); room != "" {
		filtered := games[:0]
		for _, g := range games {
			if g.Room == room {
				filtered = append(filtered, g)
			}
		}
		games = filtered
	}
	if games == nil {
		games = []history.CompletedGame{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		writeError(w, http.StatusBadRequest, "room required")
		return
	}
	room, ok := s.sessions.Room(roomID)
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room.State())
}

func (s *Server) handleDebugSetup(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("scenario")
	var p roomPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Room == "" {
		writeError(w, http.StatusBadRequest, "room required")
		return
	}
	room, ok := s.sessions.Room(p.Room)
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	snap, err := room.InstallScenario(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDebugWipe(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history disabled")
		return
	}
	if err := s.store.Wipe(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "wiped"})
}
