package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hailam/twofold/internal/board"
	"github.com/hailam/twofold/internal/session"
	"github.com/hailam/twofold/internal/twofold"
)

// Inbound event payloads. Coordinates come as [row, col] with row 0 at
// Black's back rank.

type joinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

type createLobbyPayload struct {
	RoomID    string `json:"roomId"`
	Host      string `json:"host"`
	IsPrivate bool   `json:"isPrivate"`
}

type leaveLobbyPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type movePayload struct {
	Room      string   `json:"room"`
	BoardType string   `json:"boardType"`
	Move      moveBody `json:"move"`
}

// moveBody carries the client's view of a move. Only from, to, piece
// and promotion matter; captured, castle, en_passant and board are the
// legacy client's own derivation and are discarded, the engine decides
// all of that from its authoritative state.
type moveBody struct {
	From      [2]int          `json:"from"`
	To        [2]int          `json:"to"`
	Piece     string          `json:"piece"`
	Promotion string          `json:"promotion"`
	Captured  json.RawMessage `json:"captured"`
	Castle    string          `json:"castle"`
	EnPassant bool            `json:"en_passant"`
	Board     json.RawMessage `json:"board"`
}

type roomPayload struct {
	Room string `json:"room"`
}

type voteResetPayload struct {
	Room  string `json:"room"`
	Color string `json:"color"`
}

type chatPayload struct {
	Room    string `json:"room"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type finishGamePayload struct {
	Room   string          `json:"room"`
	Winner string          `json:"winner"`
	Board  json.RawMessage `json:"board"`
	Moves  []string        `json:"moves"`
}

// moveErrorPayload is the move_error wire shape.
type moveErrorPayload struct {
	Message       string `json:"message"`
	Reason        string `json:"reason,omitempty"`
	ExpectedBoard string `json:"expectedBoard,omitempty"`
	ActualBoard   string `json:"actualBoard,omitempty"`
}

func moveErrorFrom(err *twofold.MoveError) moveErrorPayload {
	p := moveErrorPayload{Message: err.Message, Reason: err.Reason.String()}
	if err.HasBoards {
		p.ExpectedBoard = err.Expected.String()
		p.ActualBoard = err.Actual.String()
	}
	return p
}

func (s *Server) dispatch(c *client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.Send("error", session.ErrorEvent{Message: "malformed message"})
		return
	}
	switch env.Event {
	case "join":
		s.handleJoin(c, env.Data)
	case "create_lobby":
		s.handleCreateLobby(c, env.Data)
	case "get_lobbies":
		c.Send("lobby_list", s.sessions.Lobbies())
	case "leave_lobby":
		s.handleLeaveLobby(c, env.Data)
	case "move":
		s.handleMove(c, env.Data)
	case "reset":
		s.handleReset(c, env.Data)
	case "vote_reset":
		s.handleVoteReset(c, env.Data)
	case "chat_message":
		s.handleChat(c, env.Data)
	case "finish_game":
		s.handleFinishGame(c, env.Data)
	case "get_game_state":
		s.handleGetState(c, env.Data)
	default:
		c.Send("error", session.ErrorEvent{Message: fmt.Sprintf("unknown event: %s", env.Event)})
	}
}

func (s *Server) handleJoin(c *client, data json.RawMessage) {
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" || p.Username == "" {
		c.Send("error", session.ErrorEvent{Message: "join needs username and room"})
		return
	}
	if _, _, err := s.sessions.Join(p.Room, c.id, p.Username, c); err != nil {
		c.Send("error", session.ErrorEvent{Message: err.Error()})
		return
	}
	// A socket holds one seat at a time: switching rooms vacates the old
	// seat, so its broadcasts stop before this connection goes away.
	if prev := c.roomID(); prev != "" && prev != p.Room {
		s.sessions.Disconnect(prev, c.id)
	}
	c.setRoom(p.Room, p.Username)
}

func (s *Server) handleCreateLobby(c *client, data json.RawMessage) {
	var p createLobbyPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.Host == "" {
		c.Send("error", session.ErrorEvent{Message: "create_lobby needs roomId and host"})
		return
	}
	if _, err := s.sessions.CreateLobby(p.RoomID, p.Host, p.IsPrivate); err != nil {
		c.Send("error", session.ErrorEvent{Message: err.Error()})
		return
	}
	c.Send("lobby_list", s.sessions.Lobbies())
}

func (s *Server) handleLeaveLobby(c *client, data json.RawMessage) {
	var p leaveLobbyPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		c.Send("error", session.ErrorEvent{Message: "leave_lobby needs roomId"})
		return
	}
	// Only the seat holder can remove itself.
	if c.roomID() != p.RoomID || c.username() != p.Username {
		c.Send("error", session.ErrorEvent{Message: session.ErrNotMember.Error()})
		return
	}
	if err := s.sessions.Leave(p.RoomID, p.Username); err != nil {
		c.Send("error", session.ErrorEvent{Message: err.Error()})
		return
	}
	c.setRoom("", "")
}

func (s *Server) handleMove(c *client, data json.RawMessage) {
	var p movePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.Send("move_error", moveErrorPayload{Message: "malformed move payload"})
		return
	}
	req, err := moveRequestFrom(p)
	if err != nil {
		c.Send("move_error", moveErrorPayload{Message: err.Error()})
		return
	}
	room, ok := s.sessions.Room(p.Room)
	if !ok {
		c.Send("error", session.ErrorEvent{Message: session.ErrRoomNotFound.Error()})
		return
	}
	if _, _, err := room.Submit(c.id, req); err != nil {
		var moveErr *twofold.MoveError
		if errors.As(err, &moveErr) {
			c.Send("move_error", moveErrorFrom(moveErr))
		} else {
			c.Send("error", session.ErrorEvent{Message: err.Error()})
		}
	}
}

// moveRequestFrom validates shape and range; the engine validates
// everything else.
func moveRequestFrom(p movePayload) (twofold.MoveRequest, error) {
	name, err := twofold.ParseBoardName(p.BoardType)
	if err != nil {
		return twofold.MoveRequest{}, err
	}
	from, ok := squareAt(p.Move.From)
	if !ok {
		return twofold.MoveRequest{}, fmt.Errorf("from coordinates out of range")
	}
	to, ok := squareAt(p.Move.To)
	if !ok {
		return twofold.MoveRequest{}, fmt.Errorf("to coordinates out of range")
	}
	promo, err := twofold.ParsePromotion(p.Move.Promotion)
	if err != nil {
		return twofold.MoveRequest{}, err
	}
	return twofold.MoveRequest{
		Board:     name,
		From:      from,
		To:        to,
		Piece:     p.Move.Piece,
		Promotion: promo,
	}, nil
}

func squareAt(rc [2]int) (board.Square, bool) {
	if rc[0] < 0 || rc[0] > 7 || rc[1] < 0 || rc[1] > 7 {
		return board.NoSquare, false
	}
	return board.NewSquare(rc[0], rc[1]), true
}

func (s *Server) handleReset(c *client, data json.RawMessage) {
	var p roomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		c.Send("error", session.ErrorEvent{Message: "reset needs room"})
		return
	}
	room, ok := s.sessions.Room(p.Room)
	if !ok {
		c.Send("error", session.ErrorEvent{Message: session.ErrRoomNotFound.Error()})
		return
	}
	if err := room.RequestReset(c.id); err != nil {
		c.Send("error", session.ErrorEvent{Message: err.Error()})
	}
}

func (s *Server) handleVoteReset(c *client, data json.RawMessage) {
	var p voteResetPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		c.Send("error", session.ErrorEvent{Message: "vote_reset needs room"})
		return
	}
	room, ok := s.sessions.Room(p.Room)
	if !ok {
		c.Send("error", session.ErrorEvent{Message: session.ErrRoomNotFound.Error()})
		return
	}
	// The claimed color is ignored; the vote belongs to the seat.
	if err := room.VoteReset(c.id); err != nil {
		c.Send("error", session.ErrorEvent{Message: err.Error()})
	}
}

func (s *Server) handleChat(c *client, data json.RawMessage) {
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		c.Send("error", session.ErrorEvent{Message: "chat_message needs room"})
		return
	}
	room, ok := s.sessions.Room(p.Room)
	if !ok {
		c.Send("error", session.ErrorEvent{Message: session.ErrRoomNotFound.Error()})
		return
	}
	// The claimed sender is ignored; the seat's username speaks.
	if err := room.Chat(c.id, p.Message); err != nil {
		c.Send("error", session.ErrorEvent{Message: err.Error()})
	}
}

func (s *Server) handleFinishGame(c *client, data json.RawMessage) {
	var p finishGamePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		c.Send("error", session.ErrorEvent{Message: "finish_game needs room"})
		return
	}
	if c.roomID() != p.Room {
		c.Send("error", session.ErrorEvent{Message: session.ErrNotMember.Error()})
		return
	}
	room, ok := s.sessions.Room(p.Room)
	if !ok {
		c.Send("error", session.ErrorEvent{Message: session.ErrRoomNotFound.Error()})
		return
	}
	room.FinishGame(p.Winner, p.Board, p.Moves)
}

func (s *Server) handleGetState(c *client, data json.RawMessage) {
	var p roomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		c.Send("error", session.ErrorEvent{Message: "get_game_state needs room"})
		return
	}
	room, ok := s.sessions.Room(p.Room)
	if !ok {
		c.Send("error", session.ErrorEvent{Message: session.ErrRoomNotFound.Error()})
		return
	}
	c.Send("game_state", room.State())
}
