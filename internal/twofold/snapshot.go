package twofold

import (
	"fmt"

	"github.com/hailam/twofold/internal/board"
)

// Snapshot is the wire form of a Game: the shape every game_state,
// game_update and game_reset broadcast carries, and the shape history
// persistence stores. Cells hold piece labels or null. The en passant
// targets and castling rights travel per board so that a reloaded game is
// indistinguishable from the one that was saved.
type Snapshot struct {
	Room             string             `json:"room,omitempty"`
	MainBoard        [8][8]*string      `json:"mainBoard"`
	SecondaryBoard   [8][8]*string      `json:"secondaryBoard"`
	Turn             string             `json:"turn"`
	ActivePhase      string             `json:"active_board_phase"`
	Moves            []string           `json:"moves"`
	Winner           *string            `json:"winner"`
	GameOver         bool               `json:"game_over"`
	MainOutcome      string             `json:"main_board_outcome"`
	SecondaryOutcome string             `json:"secondary_board_outcome"`
	RespondingTo     *string            `json:"is_responding_to_check_on_board"`
	Status           string             `json:"status"`
	EnPassantTargets map[string]*string `json:"en_passant_target"`
	CastlingRights   map[string]string  `json:"castling_rights"`
	ResetVotes       map[string]bool    `json:"reset_votes"`
}

// Snapshot renders the game for broadcast and persistence. Reset votes are
// session state; the session layer fills them in before sending.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		MainBoard:        boardCells(g.boards[MainBoard]),
		SecondaryBoard:   boardCells(g.boards[SecondaryBoard]),
		Turn:             g.turn.String(),
		ActivePhase:      g.phase.String(),
		Moves:            g.Moves(),
		GameOver:         g.over,
		MainOutcome:      g.boards[MainBoard].Outcome.String(),
		SecondaryOutcome: g.boards[SecondaryBoard].Outcome.String(),
		Status:           g.status,
		EnPassantTargets: make(map[string]*string, 2),
		CastlingRights:   make(map[string]string, 2),
		ResetVotes: map[string]bool{
			board.White.String(): false,
			board.Black.String(): false,
		},
	}

	for _, n := range []BoardName{MainBoard, SecondaryBoard} {
		b := g.boards[n]
		if b.EnPassant.IsValid() {
			target := b.EnPassant.String()
			s.EnPassantTargets[n.String()] = &target
		} else {
			s.EnPassantTargets[n.String()] = nil
		}
		s.CastlingRights[n.String()] = b.Rights.String()
	}

	if g.over {
		winner := "Draw"
		if g.winner != board.NoColor {
			winner = g.winner.String()
		}
		s.Winner = &winner
	}
	if g.responding {
		responding := g.respondingTo.String()
		s.RespondingTo = &responding
	}

	return s
}

// GameFromSnapshot rebuilds a Game from its wire form. The snapshot is
// validated: every cell label must parse, ids must be unique per board,
// and every unresolved board must hold exactly one king per side.
func GameFromSnapshot(s *Snapshot) (*Game, error) {
	g := &Game{winner: board.NoColor, status: s.Status}
	if g.status == "" {
		g.status = statusOngoing
	}

	var err error
	if g.boards[MainBoard], err = cellsToBoard(s.MainBoard); err != nil {
		return nil, fmt.Errorf("main board: %w", err)
	}
	if g.boards[SecondaryBoard], err = cellsToBoard(s.SecondaryBoard); err != nil {
		return nil, fmt.Errorf("secondary board: %w", err)
	}

	if g.turn, err = board.ParseColor(s.Turn); err != nil {
		return nil, err
	}
	if g.phase, err = ParseBoardName(s.ActivePhase); err != nil {
		return nil, fmt.Errorf("active_board_phase: %w", err)
	}

	if g.boards[MainBoard].Outcome, err = board.ParseOutcome(s.MainOutcome); err != nil {
		return nil, fmt.Errorf("main_board_outcome: %w", err)
	}
	if g.boards[SecondaryBoard].Outcome, err = board.ParseOutcome(s.SecondaryOutcome); err != nil {
		return nil, fmt.Errorf("secondary_board_outcome: %w", err)
	}

	for _, n := range []BoardName{MainBoard, SecondaryBoard} {
		if target, ok := s.EnPassantTargets[n.String()]; ok && target != nil {
			sq, err := board.ParseSquare(*target)
			if err != nil {
				return nil, fmt.Errorf("en_passant_target %s: %w", n, err)
			}
			g.boards[n].EnPassant = sq
		}
		if rights, ok := s.CastlingRights[n.String()]; ok {
			r, err := board.ParseCastlingRights(rights)
			if err != nil {
				return nil, fmt.Errorf("castling_rights %s: %w", n, err)
			}
			g.boards[n].Rights = r
		}
	}

	g.over = s.GameOver
	if s.Winner != nil {
		switch *s.Winner {
		case "Draw":
			g.winner = board.NoColor
		default:
			if g.winner, err = board.ParseColor(*s.Winner); err != nil {
				return nil, fmt.Errorf("winner: %w", err)
			}
		}
	}
	if s.RespondingTo != nil {
		if g.respondingTo, err = ParseBoardName(*s.RespondingTo); err != nil {
			return nil, fmt.Errorf("is_responding_to_check_on_board: %w", err)
		}
		g.responding = true
	}

	g.moves = make([]string, len(s.Moves))
	copy(g.moves, s.Moves)

	for _, n := range []BoardName{MainBoard, SecondaryBoard} {
		if g.boards[n].Outcome != board.Active {
			continue
		}
		if err := requireKings(g.boards[n]); err != nil {
			return nil, fmt.Errorf("%s board: %w", n, err)
		}
	}

	return g, nil
}

func boardCells(b board.Board) [8][8]*string {
	var cells [8][8]*string
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.PieceAt(board.NewSquare(row, col)); !p.IsEmpty() {
				label := p.Label()
				cells[row][col] = &label
			}
		}
	}
	return cells
}

func cellsToBoard(cells [8][8]*string) (board.Board, error) {
	b := board.EmptyBoard()
	seen := make(map[board.PieceID]bool)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			label := cells[row][col]
			if label == nil {
				continue
			}
			p, err := board.ParsePiece(*label)
			if err != nil {
				return board.Board{}, err
			}
			if seen[p.ID] {
				return board.Board{}, fmt.Errorf("duplicate piece id: %s", p.ID[:])
			}
			seen[p.ID] = true
			b.SetPiece(p, board.NewSquare(row, col))
		}
	}
	return b, nil
}

// requireKings enforces exactly one king per side.
func requireKings(b board.Board) error {
	var kings [2]int
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		if p := b.PieceAt(sq); p.Kind == board.King {
			kings[p.Color]++
		}
	}
	for _, c := range []board.Color{board.White, board.Black} {
		if kings[c] != 1 {
			return fmt.Errorf("expected one %s king, found %d", c, kings[c])
		}
	}
	return nil
}
