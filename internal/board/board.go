// Package board implements the 8x8 board representation and single-board
// chess rules for twofold games: identity-carrying pieces, move generation,
// legality filtering, and move application.
package board

import "fmt"

// Outcome is a board's terminal status. A board stays Active until a
// checkmate or stalemate resolves it; resolved boards never unfreeze.
type Outcome uint8

const (
	Active Outcome = iota
	WhiteWins
	BlackWins
	DrawStalemate
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white_wins"
	case BlackWins:
		return "black_wins"
	case DrawStalemate:
		return "draw_stalemate"
	default:
		return "active"
	}
}

// ParseOutcome parses a wire outcome name.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "active":
		return Active, nil
	case "white_wins":
		return WhiteWins, nil
	case "black_wins":
		return BlackWins, nil
	case "draw_stalemate":
		return DrawStalemate, nil
	default:
		return Active, fmt.Errorf("invalid outcome: %s", s)
	}
}

// WinOutcome returns the outcome recording a checkmate by the given color.
func WinOutcome(c Color) Outcome {
	if c == White {
		return WhiteWins
	}
	return BlackWins
}

// CastlingRights represents the available castling options on one board.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// SideRights returns the rights mask covering both directions for one side.
func SideRights(c Color) CastlingRights {
	if c == White {
		return WhiteKingSideCastle | WhiteQueenSideCastle
	}
	return BlackKingSideCastle | BlackQueenSideCastle
}

// Board is one of the two boards of a twofold game. It is a value type:
// assignment copies the whole position, which is how legality simulation
// works. No substructure is ever shared between copies.
type Board struct {
	Cells     [64]Piece
	Rights    CastlingRights
	EnPassant Square // capture target for the next ply, NoSquare if none
	Outcome   Outcome
}

// NewBoard creates a board in the standard starting position.
func NewBoard() Board {
	b, _, _ := ParseFEN(StartFEN)
	return b
}

// EmptyBoard creates a board with no pieces and no castling rights.
func EmptyBoard() Board {
	return Board{EnPassant: NoSquare}
}

// PieceAt returns the piece at the given square; the zero Piece when empty.
func (b Board) PieceAt(sq Square) Piece {
	return b.Cells[sq]
}

// IsEmpty returns true if the square holds no piece.
func (b Board) IsEmpty(sq Square) bool {
	return b.Cells[sq].IsEmpty()
}

// SetPiece places a piece on a square.
func (b *Board) SetPiece(p Piece, sq Square) {
	b.Cells[sq] = p
}

// RemovePiece clears a square and returns the piece that was there.
func (b *Board) RemovePiece(sq Square) Piece {
	p := b.Cells[sq]
	b.Cells[sq] = Piece{}
	return p
}

// KingSquare returns the square of the given color's king, or NoSquare if
// the king is missing (which is an invariant violation upstream).
func (b Board) KingSquare(c Color) Square {
	for sq := Square(0); sq < NoSquare; sq++ {
		p := b.Cells[sq]
		if p.Kind == King && p.Color == c {
			return sq
		}
	}
	return NoSquare
}

// FindPiece returns the square of the piece with the given id, or NoSquare.
func (b Board) FindPiece(id PieceID) Square {
	for sq := Square(0); sq < NoSquare; sq++ {
		if !b.Cells[sq].IsEmpty() && b.Cells[sq].ID == id {
			return sq
		}
	}
	return NoSquare
}

// String returns a visual representation of the board.
func (b Board) String() string {
	s := "\n"
	for row := 0; row < 8; row++ {
		s += fmt.Sprintf("%d  ", 8-row)
		for col := 0; col < 8; col++ {
			p := b.Cells[NewSquare(row, col)]
			if p.IsEmpty() {
				s += ". "
			} else {
				s += string(p.FENChar()) + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Castling: %s\n", b.Rights)
	s += fmt.Sprintf("En passant: %s\n", b.EnPassant)
	s += fmt.Sprintf("Outcome: %s\n", b.Outcome)
	return s
}
