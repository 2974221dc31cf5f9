package twofold

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/twofold/internal/board"
)

func strptr(s string) *string { return &s }

func TestSnapshotFreshGame(t *testing.T) {
	s := NewGame().Snapshot()

	assert.Equal(t, "White", s.Turn)
	assert.Equal(t, "main", s.ActivePhase)
	assert.False(t, s.GameOver)
	assert.Nil(t, s.Winner)
	assert.Nil(t, s.RespondingTo)
	assert.Equal(t, "ongoing", s.Status)
	assert.Equal(t, []string{}, s.Moves)
	assert.Equal(t, "active", s.MainOutcome)
	assert.Equal(t, "active", s.SecondaryOutcome)

	require.NotNil(t, s.MainBoard[0][0])
	assert.Equal(t, "r1", *s.MainBoard[0][0])
	require.NotNil(t, s.MainBoard[7][4])
	assert.Equal(t, "K1", *s.MainBoard[7][4])
	require.NotNil(t, s.SecondaryBoard[6][4])
	assert.Equal(t, "P5", *s.SecondaryBoard[6][4])
	assert.Nil(t, s.MainBoard[4][4])

	target, ok := s.EnPassantTargets["main"]
	assert.True(t, ok)
	assert.Nil(t, target)
	assert.Equal(t, "KQkq", s.CastlingRights["main"])
	assert.Equal(t, "KQkq", s.CastlingRights["secondary"])
	assert.Equal(t, map[string]bool{"White": false, "Black": false}, s.ResetVotes)
}

func TestSnapshotJSONKeys(t *testing.T) {
	raw, err := json.Marshal(NewGame().Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{
		"mainBoard", "secondaryBoard", "turn", "active_board_phase",
		"moves", "winner", "game_over", "main_board_outcome",
		"secondary_board_outcome", "is_responding_to_check_on_board",
		"status", "en_passant_target", "castling_rights", "reset_votes",
	} {
		_, ok := decoded[key]
		assert.True(t, ok, "missing key %q", key)
	}
	// Room is omitted until the session layer stamps it.
	_, ok := decoded["room"]
	assert.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Run("fresh game", func(t *testing.T) {
		s := NewGame().Snapshot()
		g, err := GameFromSnapshot(s)
		require.NoError(t, err)
		assert.Equal(t, s, g.Snapshot())
	})

	t.Run("mid game with en passant and pending check", func(t *testing.T) {
		g := gameWith(t, "", "8/8/8/2k5/2p5/8/1P6/1K6 w - -", board.White, SecondaryBoard)
		mustSubmit(t, g, MoveRequest{Board: SecondaryBoard, From: board.B2, To: board.B4, Piece: "P1"})

		s := g.Snapshot()
		require.NotNil(t, s.RespondingTo)
		assert.Equal(t, "secondary", *s.RespondingTo)
		require.NotNil(t, s.EnPassantTargets["secondary"])
		assert.Equal(t, "b3", *s.EnPassantTargets["secondary"])

		restored, err := GameFromSnapshot(s)
		require.NoError(t, err)
		assert.Equal(t, s, restored.Snapshot())

		// The restored game accepts the en passant reply.
		res := mustSubmit(t, restored, MoveRequest{Board: SecondaryBoard, From: board.C4, To: board.B3, Piece: "p1"})
		assert.Equal(t, "P1", res.Mirrored)
	})

	t.Run("after moves", func(t *testing.T) {
		g := NewGame()
		mustSubmit(t, g, MoveRequest{Board: MainBoard, From: board.E2, To: board.E4, Piece: "P5"})
		mustSubmit(t, g, MoveRequest{Board: SecondaryBoard, From: board.E7, To: board.E5, Piece: "p5"})

		restored, err := GameFromSnapshot(g.Snapshot())
		require.NoError(t, err)
		assert.Equal(t, []string{"P5(e2-e4)", "p5(e7-e5)"}, restored.Moves())
		assert.Equal(t, g.Snapshot(), restored.Snapshot())
	})

	t.Run("finished game", func(t *testing.T) {
		g := NewGame()
		require.NoError(t, g.LoadScenario("main_white_checkmates_black"))

		s := g.Snapshot()
		restored, err := GameFromSnapshot(s)
		require.NoError(t, err)
		assert.Equal(t, s, restored.Snapshot())
		assert.True(t, restored.Over())
		winner, ok := restored.Winner()
		require.True(t, ok)
		assert.Equal(t, board.White, winner)
	})
}

func TestGameFromSnapshotRejectsInvalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"bad cell label", func(s *Snapshot) { s.MainBoard[4][4] = strptr("X9") }},
		{"duplicate piece id", func(s *Snapshot) { s.MainBoard[4][4] = strptr("P1") }},
		{"missing king on active board", func(s *Snapshot) { s.MainBoard[7][4] = nil }},
		{"two kings one side", func(s *Snapshot) { s.SecondaryBoard[4][4] = strptr("K2") }},
		{"bad turn", func(s *Snapshot) { s.Turn = "Green" }},
		{"bad phase", func(s *Snapshot) { s.ActivePhase = "tertiary" }},
		{"bad outcome", func(s *Snapshot) { s.MainOutcome = "won" }},
		{"bad en passant target", func(s *Snapshot) { s.EnPassantTargets["main"] = strptr("z9") }},
		{"bad castling rights", func(s *Snapshot) { s.CastlingRights["secondary"] = "XY" }},
		{"bad winner", func(s *Snapshot) { s.Winner = strptr("Nobody") }},
		{"bad responding board", func(s *Snapshot) { s.RespondingTo = strptr("tertiary") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			s := NewGame().Snapshot()
			tc.mutate(s)
			_, err := GameFromSnapshot(s)
			assert.Error(tt, err)
		})
	}
}

func TestGameFromSnapshotSkipsKingCheckOnResolvedBoard(t *testing.T) {
	s := NewGame().Snapshot()
	s.MainBoard[7][4] = nil
	s.MainOutcome = "white_wins"

	g, err := GameFromSnapshot(s)
	require.NoError(t, err)
	assert.Equal(t, board.WhiteWins, g.Board(MainBoard).Outcome)
}
