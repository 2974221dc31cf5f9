package session

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// LobbyInfo is one row of the public lobby list.
type LobbyInfo struct {
	Room      string    `json:"room"`
	Host      string    `json:"host"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"createdAt"`
}

// Manager owns every live room plus the sweeper that frees seats whose
// reconnect grace ran out and reaps empty or idle rooms. Cross-room
// reads never take a room's lock while holding the registry lock for
// writing, so the lobby list cannot stall a move.
type Manager struct {
	cfg      Config
	recorder Recorder

	mu    sync.RWMutex
	rooms map[string]*Room

	started atomic.Bool
	stopped atomic.Bool
	quit    chan struct{}
	done    chan struct{}
}

// NewManager builds a manager; rec may be nil when history is disabled.
func NewManager(cfg Config, rec Recorder) *Manager {
	return &Manager{
		cfg:      cfg,
		recorder: rec,
		rooms:    make(map[string]*Room),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweeper.
func (m *Manager) Start() {
	if !m.started.CompareAndSwap(false, true) {
		return
	}
	go m.run()
}

// Stop halts the sweeper and waits for it to exit.
func (m *Manager) Stop() {
	if !m.started.Load() || !m.stopped.CompareAndSwap(false, true) {
		return
	}
	close(m.quit)
	<-m.done
}

func (m *Manager) run() {
	defer close(m.done)
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}

// Join binds a session to a room, creating the room on first join with
// the joiner as host.
func (m *Manager) Join(roomID, sessionID, username string, s Sender) (*Room, *Member, error) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		r = newRoom(roomID, username, false, m.cfg, m.recorder)
		m.rooms[roomID] = r
		log.Infof("room %s created by %s", roomID, username)
	}
	m.mu.Unlock()

	member, err := r.Join(sessionID, username, s)
	if err != nil {
		return nil, nil, err
	}
	return r, member, nil
}

// CreateLobby registers a new room ahead of anyone joining it.
func (m *Manager) CreateLobby(roomID, host string, private bool) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[roomID]; ok {
		return nil, ErrRoomExists
	}
	r := newRoom(roomID, host, private, m.cfg, m.recorder)
	m.rooms[roomID] = r
	log.Infof("lobby %s created by %s (private=%v)", roomID, host, private)
	return r, nil
}

// Room looks up a live room.
func (m *Manager) Room(roomID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

// Lobbies lists public rooms with a free seat, oldest first.
func (m *Manager) Lobbies() []LobbyInfo {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	infos := []LobbyInfo{}
	for _, r := range rooms {
		if info, ok := r.lobbyInfo(); ok {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].Room < infos[j].Room
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

// Reset force-resets a room's game.
func (m *Manager) Reset(roomID string) error {
	r, ok := m.Room(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.ForceReset()
	return nil
}

// Leave removes a player from a room by username, deleting the room
// once nobody is seated.
func (m *Manager) Leave(roomID, username string) error {
	r, ok := m.Room(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	if err := r.LeaveByUsername(username); err != nil {
		return err
	}
	if r.Empty() {
		m.mu.Lock()
		if cur, ok := m.rooms[roomID]; ok && cur == r && r.Empty() {
			delete(m.rooms, roomID)
			log.Infof("room %s removed: last member left", roomID)
		}
		m.mu.Unlock()
	}
	return nil
}

// Disconnect reports a dropped connection for a room.
func (m *Manager) Disconnect(roomID, sessionID string) {
	if r, ok := m.Room(roomID); ok {
		r.Disconnect(sessionID)
	}
}

// RoomCount reports live rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// SessionCount reports connected members across all rooms.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	n := 0
	for _, r := range rooms {
		n += r.ConnectedCount()
	}
	return n
}

// sweep expires overdue seats, then reaps abandoned and idle rooms.
func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		r.expireMembers(now, m.cfg.ReconnectGrace)
		switch {
		case r.abandoned(now, m.cfg.ReconnectGrace):
			delete(m.rooms, id)
			log.Infof("room %s removed: empty", id)
		case r.idleSince(now, m.cfg.IdleTTL):
			r.announceDeleted()
			delete(m.rooms, id)
			log.Infof("room %s removed: idle", id)
		}
	}
}
