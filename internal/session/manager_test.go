package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLobbies(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	_, err := m.CreateLobby("open", "alice", false)
	require.NoError(t, err)
	_, err = m.CreateLobby("hidden", "bob", true)
	require.NoError(t, err)
	_, err = m.CreateLobby("open", "carol", false)
	assert.ErrorIs(t, err, ErrRoomExists)

	infos := m.Lobbies()
	require.Len(t, infos, 1)
	assert.Equal(t, "open", infos[0].Room)
	assert.Equal(t, "alice", infos[0].Host)
	assert.False(t, infos[0].IsPrivate)
	assert.False(t, infos[0].CreatedAt.IsZero())

	// A half-full room still lists; a full one does not.
	_, _, err = m.Join("open", "s1", "alice", &fakeSender{})
	require.NoError(t, err)
	require.Len(t, m.Lobbies(), 1)
	_, _, err = m.Join("open", "s2", "dave", &fakeSender{})
	require.NoError(t, err)
	assert.Empty(t, m.Lobbies())
}

func TestLeaveDeletesEmptyRoom(t *testing.T) {
	m, r, alice, _ := twoPlayerRoom(t, DefaultConfig(), nil)

	require.NoError(t, m.Leave("r1", "bob"))
	d, ok := alice.last("player_left")
	require.True(t, ok)
	assert.Equal(t, PlayerEvent{Username: "bob"}, d)
	assert.Equal(t, 1, r.PlayerCount())
	assert.Equal(t, 1, m.RoomCount())

	require.NoError(t, m.Leave("r1", "alice"))
	_, found := m.Room("r1")
	assert.False(t, found)

	assert.ErrorIs(t, m.Leave("r1", "alice"), ErrRoomNotFound)

	_, _, err := m.Join("r2", "s5", "erin", &fakeSender{})
	require.NoError(t, err)
	assert.ErrorIs(t, m.Leave("r2", "nobody"), ErrNotMember)
}

func TestManagerReset(t *testing.T) {
	m, _, alice, _ := twoPlayerRoom(t, DefaultConfig(), nil)

	require.NoError(t, m.Reset("r1"))
	assert.Equal(t, 1, alice.count("game_reset"))
	assert.ErrorIs(t, m.Reset("nope"), ErrRoomNotFound)
}

func TestSweeperFreesSeatsAndRooms(t *testing.T) {
	cfg := Config{
		ReconnectGrace: 10 * time.Millisecond,
		IdleTTL:        60 * time.Millisecond,
		SweepInterval:  5 * time.Millisecond,
		MaxChatLen:     500,
	}
	m, r, alice, _ := twoPlayerRoom(t, cfg, nil)
	m.Start()
	defer m.Stop()

	r.Disconnect("s2")
	assert.Eventually(t, func() bool { return r.PlayerCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, alice.count("player_left"))

	// With nothing touching the room, the idle TTL reaps it.
	assert.Eventually(t, func() bool {
		_, ok := m.Room("r1")
		return !ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, alice.count("room_deleted"))
}

func TestSweeperReapsUnjoinedLobby(t *testing.T) {
	cfg := Config{
		ReconnectGrace: 10 * time.Millisecond,
		IdleTTL:        time.Minute,
		SweepInterval:  5 * time.Millisecond,
		MaxChatLen:     500,
	}
	m := NewManager(cfg, nil)
	m.Start()
	defer m.Stop()

	_, err := m.CreateLobby("ghost", "alice", false)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return m.RoomCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestStopBeforeStart(t *testing.T) {
	m := NewManager(DefaultConfig(), nil)
	m.Stop() // must not block or panic
	m.Start()
	m.Stop()
	m.Stop()
}
