package session

import "errors"

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room already has two players")
	ErrNotMember    = errors.New("not a member of this room")
	ErrRoomPoisoned = errors.New("room state is corrupt")
)
