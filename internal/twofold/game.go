// Package twofold coordinates a game played across two linked chess boards.
// Every piece exists twice, once per board, tied together by its id: captures
// on the main board remove the twin from the secondary board, en passant
// captures mirror in both directions, and castling is spent once per side
// across both boards. Each board resolves on its own; the game ends on the
// first checkmate or when both boards are drawn.
package twofold

import (
	"fmt"

	"github.com/hailam/twofold/internal/board"
)

// BoardName identifies one of the two boards of a game.
type BoardName uint8

const (
	MainBoard BoardName = iota
	SecondaryBoard
)

// String returns the wire name of the board.
func (n BoardName) String() string {
	if n == SecondaryBoard {
		return "secondary"
	}
	return "main"
}

// Other returns the other board.
func (n BoardName) Other() BoardName {
	return n ^ 1
}

// ParseBoardName parses a wire board name.
func ParseBoardName(s string) (BoardName, error) {
	switch s {
	case "main":
		return MainBoard, nil
	case "secondary":
		return SecondaryBoard, nil
	default:
		return MainBoard, fmt.Errorf("invalid board name: %s", s)
	}
}

// statusOngoing is the status line carried between eventful moves.
const statusOngoing = "ongoing"

// Game is the authoritative state of one twofold game. It is not safe for
// concurrent use; the session layer serializes access per room.
type Game struct {
	boards [2]board.Board
	turn   board.Color
	phase  BoardName

	responding   bool
	respondingTo BoardName

	over   bool
	winner board.Color // NoColor while running and on a draw
	status string

	moves []string
}

// NewGame starts a fresh game: both boards in the standard position, White
// to move on the main board.
func NewGame() *Game {
	g := &Game{
		turn:   board.White,
		phase:  MainBoard,
		winner: board.NoColor,
		status: statusOngoing,
	}
	g.boards[MainBoard] = board.NewBoard()
	g.boards[SecondaryBoard] = board.NewBoard()
	return g
}

// Board returns a copy of the named board.
func (g *Game) Board(n BoardName) board.Board {
	return g.boards[n]
}

// Turn returns the side to move.
func (g *Game) Turn() board.Color {
	return g.turn
}

// Phase returns the board the side to move must play on.
func (g *Game) Phase() BoardName {
	return g.phase
}

// RespondingTo returns the board a checked player must answer on, and
// whether check-response gating is active.
func (g *Game) RespondingTo() (BoardName, bool) {
	return g.respondingTo, g.responding
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.over
}

// Winner returns the winning side. The second result is false while the
// game is running and when it ended in a draw.
func (g *Game) Winner() (board.Color, bool) {
	if !g.over || g.winner == board.NoColor {
		return board.NoColor, false
	}
	return g.winner, true
}

// Status returns the human-readable status line.
func (g *Game) Status() string {
	return g.status
}

// Moves returns a copy of the move log.
func (g *Game) Moves() []string {
	out := make([]string, len(g.moves))
	copy(out, g.moves)
	return out
}

// CheckInvariants verifies that every board still being played holds
// exactly one king per side. A failure means the game state is corrupt
// and must not be served further.
func (g *Game) CheckInvariants() error {
	for _, n := range []BoardName{MainBoard, SecondaryBoard} {
		if g.boards[n].Outcome != board.Active {
			continue
		}
		if err := requireKings(g.boards[n]); err != nil {
			return fmt.Errorf("%s board: %w", n, err)
		}
	}
	return nil
}

// concludeFromOutcomes ends the game once both boards are resolved. A win
// outcome takes the game unless the other board was won by the other side;
// checkmate normally ends the game before this runs, so the live path here
// is the double stalemate draw.
func (g *Game) concludeFromOutcomes() {
	if g.over {
		return
	}
	m := g.boards[MainBoard].Outcome
	s := g.boards[SecondaryBoard].Outcome
	if m == board.Active || s == board.Active {
		return
	}

	whiteWon := m == board.WhiteWins || s == board.WhiteWins
	blackWon := m == board.BlackWins || s == board.BlackWins
	switch {
	case whiteWon && !blackWon:
		g.winner = board.White
	case blackWon && !whiteWon:
		g.winner = board.Black
	default:
		g.winner = board.NoColor
	}

	g.over = true
	g.responding = false
	if g.winner == board.NoColor {
		g.status = "Game over. Draw."
	} else {
		g.status = fmt.Sprintf("Game over. Winner: %s.", g.winner)
	}
}
