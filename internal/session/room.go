package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/seekerror/stdlib/pkg/util/mathx"

	"github.com/hailam/twofold/internal/board"
	"github.com/hailam/twofold/internal/history"
	"github.com/hailam/twofold/internal/twofold"
)

// Event payloads the room emits. The transport wraps them in its
// {"event", "data"} envelope.

// PlayerEvent names the player a seat change concerns. Color is set on
// player_joined and empty on player_left and player_disconnected.
type PlayerEvent struct {
	Username string `json:"username"`
	Color    string `json:"color,omitempty"`
}

// GameStart tells one client which side it plays.
type GameStart struct {
	Color    string `json:"color"`
	Username string `json:"username"`
}

// ResetVotesEvent reports the standing reset votes by color.
type ResetVotesEvent struct {
	Votes map[string]bool `json:"votes"`
}

// ChatEvent relays one chat line.
type ChatEvent struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// RoomDeleted announces that a room expired.
type RoomDeleted struct {
	Room string `json:"room"`
}

// ErrorEvent carries a room-level failure to the clients.
type ErrorEvent struct {
	Message string `json:"message"`
}

// Room pairs two players over one game. Every operation takes the room
// mutex, so moves, votes, chat and membership changes form a single
// total order that all members observe.
type Room struct {
	ID        string
	Host      string
	Private   bool
	CreatedAt time.Time

	cfg      Config
	recorder Recorder

	mu         sync.Mutex
	game       *twofold.Game
	members    map[string]*Member // keyed by session id
	votes      [2]bool            // reset votes, indexed by color
	lastActive time.Time
	poisoned   bool
}

func newRoom(id, host string, private bool, cfg Config, rec Recorder) *Room {
	now := time.Now()
	return &Room{
		ID:         id,
		Host:       host,
		Private:    private,
		CreatedAt:  now,
		cfg:        cfg,
		recorder:   rec,
		game:       twofold.NewGame(),
		members:    make(map[string]*Member),
		lastActive: now,
	}
}

// Join seats a session in the room. A username already seated rebinds
// its seat to the new session, which is how reconnects keep their
// color. Otherwise the first joiner plays White, the second Black and
// gets both sides a game_start, and a third joiner is rejected.
func (r *Room) Join(sessionID, username string, s Sender) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.poisoned {
		return nil, ErrRoomPoisoned
	}
	r.touchLocked()

	for id, m := range r.members {
		if m.Username != username {
			continue
		}
		delete(r.members, id)
		m.SessionID = sessionID
		m.sender = s
		m.connected = true
		r.members[sessionID] = m
		r.broadcastLocked("player_joined", PlayerEvent{Username: username, Color: m.Color.String()})
		r.broadcastLocked("game_state", r.snapshotLocked())
		log.Infof("room %s: %s rejoined as %s", r.ID, username, m.Color)
		return m, nil
	}

	color, err := r.freeColorLocked()
	if err != nil {
		return nil, err
	}
	m := &Member{
		SessionID: sessionID,
		Username:  username,
		Color:     color,
		sender:    s,
		connected: true,
	}
	r.members[sessionID] = m
	r.broadcastLocked("player_joined", PlayerEvent{Username: username, Color: color.String()})
	if len(r.members) == 2 {
		for _, mm := range r.members {
			if mm.connected {
				mm.sender.Send("game_start", GameStart{Color: mm.Color.String(), Username: mm.Username})
			}
		}
	}
	r.broadcastLocked("game_state", r.snapshotLocked())
	log.Infof("room %s: %s joined as %s", r.ID, username, color)
	return m, nil
}

func (r *Room) freeColorLocked() (board.Color, error) {
	var taken [2]bool
	for _, m := range r.members {
		taken[m.Color] = true
	}
	switch {
	case !taken[board.White]:
		return board.White, nil
	case !taken[board.Black]:
		return board.Black, nil
	default:
		return board.NoColor, ErrRoomFull
	}
}

// Disconnect marks a session's seat as temporarily vacated. The seat
// survives until the reconnect grace passes.
func (r *Room) Disconnect(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[sessionID]
	if !ok || !m.connected {
		return
	}
	m.connected = false
	m.gone = time.Now()
	r.broadcastLocked("player_disconnected", PlayerEvent{Username: m.Username})
	log.Infof("room %s: %s disconnected", r.ID, m.Username)
}

// LeaveByUsername removes a player's seat outright and clears any reset
// vote that color held.
func (r *Room) LeaveByUsername(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.members {
		if m.Username != username {
			continue
		}
		delete(r.members, id)
		r.votes[m.Color] = false
		r.touchLocked()
		r.broadcastLocked("player_left", PlayerEvent{Username: username})
		log.Infof("room %s: %s left", r.ID, username)
		return nil
	}
	return ErrNotMember
}

// Submit plays one move for the member bound to sessionID. The seat's
// color is checked against the side to move before the engine sees the
// request, so a client can never move its opponent's pieces. On success
// the post-move snapshot goes out as game_update, and a finished game
// goes to the recorder.
func (r *Room) Submit(sessionID string, req twofold.MoveRequest) (*twofold.MoveResult, *twofold.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[sessionID]
	if !ok {
		return nil, nil, ErrNotMember
	}
	if r.poisoned {
		return nil, nil, ErrRoomPoisoned
	}
	r.touchLocked()

	if !r.game.Over() && m.Color != r.game.Turn() {
		return nil, nil, &twofold.MoveError{
			Reason:  twofold.ReasonNotYourTurn,
			Message: fmt.Sprintf("Not your piece. Expected %s", r.game.Turn()),
		}
	}

	res, err := r.game.Submit(req)
	if err != nil {
		return nil, nil, err
	}

	if err := r.game.CheckInvariants(); err != nil {
		r.poisoned = true
		state, _ := json.Marshal(r.snapshotLocked())
		log.Errorf("room %s poisoned after %s: %v state=%s", r.ID, res.Text, err, state)
		r.broadcastLocked("error", ErrorEvent{Message: "internal error, room disabled"})
		return nil, nil, ErrRoomPoisoned
	}

	snap := r.snapshotLocked()
	r.broadcastLocked("game_update", snap)
	log.Debugf("room %s move %d: %s on %s by %s", r.ID, res.Seq, res.Text, res.Board, res.Player)

	if r.game.Over() && r.recorder != nil {
		var winner string
		if snap.Winner != nil {
			winner = *snap.Winner
		}
		r.recorder.Record(history.CompletedGame{
			Room:   r.ID,
			Winner: winner,
			Moves:  snap.Moves,
			Final:  snap,
		})
	}
	return res, snap, nil
}

// RequestReset handles the plain reset event: immediate with fewer than
// two players seated, otherwise it counts as the member's reset vote.
func (r *Room) RequestReset(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[sessionID]
	if !ok {
		return ErrNotMember
	}
	r.touchLocked()
	if len(r.members) < 2 {
		r.doResetLocked()
		return nil
	}
	r.voteLocked(m.Color)
	return nil
}

// VoteReset records a reset vote for the member's seat. The game resets
// once both colors have voted.
func (r *Room) VoteReset(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[sessionID]
	if !ok {
		return ErrNotMember
	}
	r.touchLocked()
	r.voteLocked(m.Color)
	return nil
}

func (r *Room) voteLocked(c board.Color) {
	r.votes[c] = true
	r.broadcastLocked("reset_votes_update", ResetVotesEvent{Votes: r.votesLocked()})
	if r.votes[board.White] && r.votes[board.Black] {
		r.doResetLocked()
	}
}

// ForceReset reinitializes the game unconditionally, for the HTTP reset
// endpoint.
func (r *Room) ForceReset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touchLocked()
	r.doResetLocked()
}

// doResetLocked swaps in a fresh game, clears votes and any poison mark,
// and broadcasts the new state.
func (r *Room) doResetLocked() {
	r.game = twofold.NewGame()
	r.votes = [2]bool{}
	r.poisoned = false
	r.broadcastLocked("game_reset", r.snapshotLocked())
	log.Infof("room %s reset", r.ID)
}

// Chat relays a message to the room under the member's seated username,
// clamped to the configured rune limit.
func (r *Room) Chat(sessionID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[sessionID]
	if !ok {
		return ErrNotMember
	}
	runes := []rune(message)
	clipped := string(runes[:mathx.Min(len(runes), r.cfg.MaxChatLen)])
	r.touchLocked()
	r.broadcastLocked("chat_message", ChatEvent{Sender: m.Username, Message: clipped})
	return nil
}

// FinishGame archives a manually reported result and resets the game.
// The board payload is stored as the client sent it.
func (r *Room) FinishGame(winner string, boardJSON json.RawMessage, moves []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touchLocked()
	if r.recorder != nil {
		r.recorder.Record(history.CompletedGame{
			Room:   r.ID,
			Winner: winner,
			Moves:  moves,
			Board:  boardJSON,
		})
	}
	r.doResetLocked()
}

// InstallScenario replaces the game with a named preset and broadcasts
// the new state. Debug builds only; the transport gates the route.
func (r *Room) InstallScenario(name string) (*twofold.Snapshot, error) {
	g, err := twofold.Scenario(name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game = g
	r.votes = [2]bool{}
	r.poisoned = false
	r.touchLocked()
	snap := r.snapshotLocked()
	r.broadcastLocked("game_update", snap)
	log.Infof("room %s: scenario %s installed", r.ID, name)
	return snap, nil
}

// State returns the current snapshot.
func (r *Room) State() *twofold.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touchLocked()
	return r.snapshotLocked()
}

// PlayerCount reports seated members, connected or not.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// ConnectedCount reports members with a live connection.
func (r *Room) ConnectedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.members {
		if m.connected {
			n++
		}
	}
	return n
}

// Empty reports whether no seats are taken.
func (r *Room) Empty() bool {
	return r.PlayerCount() == 0
}

// expireMembers frees seats whose disconnect outlived the grace window.
func (r *Room) expireMembers(now time.Time, grace time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.members {
		if m.connected || now.Sub(m.gone) <= grace {
			continue
		}
		delete(r.members, id)
		r.votes[m.Color] = false
		r.broadcastLocked("player_left", PlayerEvent{Username: m.Username})
		log.Infof("room %s: %s expired after disconnect", r.ID, m.Username)
	}
}

// abandoned reports an empty room past the grace window, so a freshly
// created lobby is not reaped before its host connects.
func (r *Room) abandoned(now time.Time, grace time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members) == 0 && now.Sub(r.lastActive) > grace
}

func (r *Room) idleSince(now time.Time, ttl time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return now.Sub(r.lastActive) > ttl
}

func (r *Room) announceDeleted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastLocked("room_deleted", RoomDeleted{Room: r.ID})
}

// lobbyInfo renders the room for the lobby list; private and full rooms
// are not listed.
func (r *Room) lobbyInfo() (LobbyInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Private {
		return LobbyInfo{}, false
	}
	var taken [2]bool
	for _, m := range r.members {
		taken[m.Color] = true
	}
	if taken[board.White] && taken[board.Black] {
		return LobbyInfo{}, false
	}
	return LobbyInfo{Room: r.ID, Host: r.Host, IsPrivate: r.Private, CreatedAt: r.CreatedAt}, true
}

func (r *Room) votesLocked() map[string]bool {
	return map[string]bool{
		board.White.String(): r.votes[board.White],
		board.Black.String(): r.votes[board.Black],
	}
}

// snapshotLocked stamps the engine snapshot with the session-owned
// fields: the room id and the standing reset votes.
func (r *Room) snapshotLocked() *twofold.Snapshot {
	snap := r.game.Snapshot()
	snap.Room = r.ID
	snap.ResetVotes = r.votesLocked()
	return snap
}

func (r *Room) broadcastLocked(event string, data any) {
	for _, m := range r.members {
		if m.connected {
			m.sender.Send(event, data)
		}
	}
}

func (r *Room) touchLocked() {
	r.lastActive = time.Now()
}
