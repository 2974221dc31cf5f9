package twofold

import (
	"fmt"

	"github.com/hailam/twofold/internal/board"
)

// MoveRequest is one move as the server understands it. Piece is the label
// the client believes it is moving and is checked against the actual
// occupant of From; everything else the client claims about the move
// (captures, castling, en passant) is derived here instead.
type MoveRequest struct {
	Board     BoardName
	From      board.Square
	To        board.Square
	Piece     string
	Promotion board.PieceKind
}

// MoveResult reports an accepted move.
type MoveResult struct {
	Seq      int
	Board    BoardName
	Player   board.Color
	Text     string // human notation, e.g. "N1(g1-f3)xp4"
	Mirrored string // label removed from the other board, "" if none
}

// ParsePromotion parses a wire promotion choice (Q, R, B or N, either
// case). The empty string means no promotion.
func ParsePromotion(s string) (board.PieceKind, error) {
	switch s {
	case "":
		return board.NoKind, nil
	case "Q", "q":
		return board.Queen, nil
	case "R", "r":
		return board.Rook, nil
	case "B", "b":
		return board.Bishop, nil
	case "N", "n":
		return board.Knight, nil
	default:
		return board.NoKind, fmt.Errorf("invalid promotion choice: %s", s)
	}
}

// Submit validates and plays one move, advancing turn, phase, outcomes and
// status. On rejection the returned error is a *MoveError and the game is
// unchanged.
func (g *Game) Submit(req MoveRequest) (*MoveResult, error) {
	if g.over {
		return nil, rejectf(ReasonGameOver, "Game is already over.")
	}
	if !req.From.IsValid() || !req.To.IsValid() || req.From == req.To {
		return nil, rejectf(ReasonNoSuchPiece, "Invalid piece or starting position for the move.")
	}

	// The claimed label settles whose piece this is before anything else.
	if req.Piece != "" {
		claimed, err := board.ParsePiece(req.Piece)
		if err != nil {
			return nil, rejectf(ReasonNoSuchPiece, "Invalid piece or starting position for the move.")
		}
		if claimed.Color != g.turn {
			return nil, rejectf(ReasonNotYourTurn, "Not your piece. Expected %s", g.turn)
		}
	}

	if err := g.routeBoard(req.Board); err != nil {
		return nil, err
	}

	played := req.Board
	p := g.boards[played].PieceAt(req.From)
	if p.IsEmpty() || (req.Piece != "" && p.Label() != req.Piece) {
		return nil, rejectf(ReasonNoSuchPiece, "Invalid piece or starting position for the move.")
	}
	if p.Color != g.turn {
		return nil, rejectf(ReasonNotYourTurn, "Not your piece. Expected %s", g.turn)
	}

	chosen, err := g.resolveMove(played, req, p)
	if err != nil {
		return nil, err
	}

	next, e := g.boards[played].Apply(chosen)
	g.boards[played] = next

	// Cross-board effects: the capture mirror, and the one-castle-per-side
	// rule spending the mover's rights on the other board too.
	other := played.Other()
	var mirrored string
	if !e.Captured.IsEmpty() && (played == MainBoard || e.EnPassant) {
		mirrored = g.mirrorCapture(other, e.Captured.ID)
	}
	if e.Castle != board.NoCastle {
		g.boards[other].Rights &^= board.SideRights(p.Color)
	}

	text := board.Record(e)
	g.moves = append(g.moves, text)
	res := &MoveResult{
		Seq:      len(g.moves),
		Board:    played,
		Player:   g.turn,
		Text:     text,
		Mirrored: mirrored,
	}

	g.advance(played)
	return res, nil
}

// routeBoard enforces the phase, letting a submission through to the only
// playable board when the phase board is already resolved. While the mover
// is answering a check, only the checked board is acceptable.
func (g *Game) routeBoard(requested BoardName) *MoveError {
	if g.responding && requested != g.respondingTo {
		return rejectBoards(ReasonMustRespond, g.respondingTo, requested,
			"You must respond to check on the %s board.", g.respondingTo)
	}
	if requested == g.phase {
		return nil
	}
	// advance sets the phase after the move; accepting here is enough.
	if g.boards[g.phase].Outcome != board.Active && g.boards[requested].Outcome == board.Active {
		return nil
	}
	return rejectBoards(ReasonWrongBoard, g.phase, requested,
		"Incorrect board. Expected %s, got %s.", g.phase, requested)
}

// resolveMove finds the legal move matching the request, or explains why
// there is none.
func (g *Game) resolveMove(played BoardName, req MoveRequest, p board.Piece) (board.Move, *MoveError) {
	b := g.boards[played]
	var needsChoice bool
	for _, m := range b.LegalMoves(req.From) {
		if m.To() != req.To {
			continue
		}
		if m.IsPromotion() {
			needsChoice = true
			if m.Promotion() == req.Promotion {
				return m, nil
			}
			continue
		}
		return m, nil
	}

	if needsChoice {
		return board.NoMove, rejectf(ReasonPromotionRequired,
			"Promotion choice required: Q, R, B or N.")
	}
	if dest := b.PieceAt(req.To); !dest.IsEmpty() && dest.Color == p.Color {
		return board.NoMove, rejectf(ReasonDestinationBlocked,
			"Destination square is occupied by your own piece.")
	}
	for _, m := range b.PseudoLegalMoves(req.From) {
		if m.To() == req.To {
			return board.NoMove, rejectf(ReasonMovesIntoCheck,
				"Illegal move: Your king would be in check.")
		}
	}
	return board.NoMove, rejectf(ReasonPathBlocked,
		"This piece cannot reach that square.")
}

// mirrorCapture removes the twin of a captured piece from the other board
// and returns its label, or "" when the twin was already gone. Taking a
// rook off its home corner spends the matching castling right there too.
func (g *Game) mirrorCapture(other BoardName, id board.PieceID) string {
	sq := g.boards[other].FindPiece(id)
	if sq == board.NoSquare {
		return ""
	}
	twin := g.boards[other].RemovePiece(sq)
	if twin.Kind == board.Rook {
		g.boards[other].Rights &^= board.CornerRight(sq, twin.Color)
	}
	return twin.Label()
}

// advance re-evaluates the opponent on both boards and moves turn and
// phase forward. Checkmate anywhere ends the game at once; check demands a
// response on the checked board, the played board taking precedence when
// both boards check; stalemate freezes a board permanently. Otherwise the
// turn flips and the phase toggles to the other board when it is playable.
func (g *Game) advance(played BoardName) {
	mover := g.turn
	opp := mover.Other()
	other := played.Other()

	var standing [2]board.Status
	for _, n := range []BoardName{played, other} {
		if g.boards[n].Outcome == board.Active {
			standing[n] = g.boards[n].Classify(opp)
		}
	}

	for _, n := range []BoardName{played, other} {
		if standing[n] == board.StatusCheckmate {
			g.boards[n].Outcome = board.WinOutcome(mover)
			g.over = true
			g.winner = mover
			g.turn = opp
			g.phase = n
			g.responding = false
			g.status = fmt.Sprintf("%s wins by checkmate on %s board.", mover, n)
			return
		}
	}

	// Stalemate resolves a board before the phase is chosen, so play never
	// lands on a dead board.
	var froze bool
	for _, n := range []BoardName{other, played} {
		if standing[n] == board.StatusStalemate {
			g.boards[n].Outcome = board.DrawStalemate
			g.status = fmt.Sprintf("Stalemate on %s board for %s.", n, opp)
			froze = true
		}
	}

	for _, n := range []BoardName{played, other} {
		if standing[n] == board.StatusCheck {
			g.turn = opp
			g.phase = n
			g.responding = true
			g.respondingTo = n
			g.status = fmt.Sprintf("%s is in check on %s board.", opp, n)
			return
		}
	}

	g.turn = opp
	g.responding = false
	switch {
	case g.boards[other].Outcome == board.Active:
		g.phase = other
	case g.boards[played].Outcome == board.Active:
		g.phase = played
	default:
		g.concludeFromOutcomes()
		return
	}
	if !froze {
		g.status = statusOngoing
	}
}
