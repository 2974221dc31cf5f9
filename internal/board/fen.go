package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a board and the side to move.
//
// FEN carries no piece identity, so ids are assigned deterministically:
// per color and kind, pieces are numbered 1, 2, ... scanning rank 8 to
// rank 1, left to right. The starting position therefore gets the ids
// clients expect (back rank R1 N1 B1 Q1 K1 B2 N2 R2, pawns P1..P8).
func ParseFEN(fen string) (Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return Board{}, NoColor, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	b := EmptyBoard()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(&b, parts[0]); err != nil {
		return Board{}, NoColor, err
	}

	// Parse side to move (field 1)
	var side Color
	switch parts[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return Board{}, NoColor, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse castling rights (field 2)
	rights, err := ParseCastlingRights(parts[2])
	if err != nil {
		return Board{}, NoColor, err
	}
	b.Rights = rights

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Board{}, NoColor, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		b.EnPassant = sq
	}

	return b, side, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(rows))
	}

	// Per-color, per-kind counters for id assignment.
	var counts [2][King + 1]int

	for row, rowStr := range rows {
		col := 0

		for _, c := range rowStr {
			if col > 7 {
				return fmt.Errorf("too many squares in rank %d", 8-row)
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				col += int(c - '0')
			} else {
				kind := KindFromChar(byte(c))
				if kind == NoKind {
					return fmt.Errorf("invalid piece character: %c", c)
				}
				color := colorOfChar(byte(c))
				counts[color][kind]++
				n := counts[color][kind]
				if n > 9 {
					return fmt.Errorf("too many %s pieces for %s", kind, color)
				}
				idChar := kind.Char()
				if color == Black {
					idChar += 'a' - 'A'
				}
				p := Piece{Kind: kind, Color: color, ID: PieceID{idChar, byte('0' + n)}}
				b.SetPiece(p, NewSquare(row, col))
				col++
			}
		}

		if col != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", 8-row, col)
		}
	}

	return nil
}

// ParseCastlingRights parses a FEN castling rights field ("KQkq", "-").
func ParseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastling, nil
	}

	var r CastlingRights
	for _, c := range s {
		switch c {
		case 'K':
			r |= WhiteKingSideCastle
		case 'Q':
			r |= WhiteQueenSideCastle
		case 'k':
			r |= BlackKingSideCastle
		case 'q':
			r |= BlackQueenSideCastle
		default:
			return NoCastling, fmt.Errorf("invalid castling character: %c", c)
		}
	}

	return r, nil
}

// ToFEN returns the FEN representation of the board with the given side to
// move. Move clocks are not tracked, so the trailing fields are "0 1".
func (b Board) ToFEN(side Color) string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.Cells[NewSquare(row, col)]
			if p.IsEmpty() {
				empty++
			} else {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteByte(p.FENChar())
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(b.Rights.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.String())

	sb.WriteString(" 0 1")

	return sb.String()
}
