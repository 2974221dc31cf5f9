package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ParseColor parses a color name ("White" or "Black").
func ParseColor(s string) (Color, error) {
	switch s {
	case "White":
		return White, nil
	case "Black":
		return Black, nil
	default:
		return NoColor, fmt.Errorf("invalid color: %s", s)
	}
}

// PieceKind represents the kind of a chess piece.
// NoKind is the zero value so that the zero Piece is an empty cell.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece kind name.
func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the piece kind letter (uppercase).
func (k PieceKind) Char() byte {
	chars := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k > King {
		return ' '
	}
	return chars[k]
}

// KindFromChar converts a piece letter (either case) to a PieceKind.
func KindFromChar(c byte) PieceKind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoKind
	}
}

// PieceID is the stable two-character label a piece keeps for its whole life,
// e.g. "R1" or "p7". Uppercase ids belong to White, lowercase to Black.
// The first character is the kind the piece was born as, so a promoted queen
// still carries its pawn id and the capture mirror keeps working on it.
type PieceID [2]byte

// String returns the id as a string.
func (id PieceID) String() string {
	return string(id[:])
}

// Piece is a single piece on a board cell. The zero value is an empty cell.
type Piece struct {
	Kind  PieceKind
	Color Color
	ID    PieceID
}

// IsEmpty returns true if this is the empty-cell zero value.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// FENChar returns the FEN letter for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) FENChar() byte {
	c := p.Kind.Char()
	if p.Color == Black {
		c += 'a' - 'A'
	}
	return c
}

// Label returns the wire encoding of the piece. For an unpromoted piece this
// is its id ("R1", "p4"); a promoted piece prepends its current kind letter
// to the pawn id it inherited ("QP3", "qp3").
func (p Piece) Label() string {
	if p.IsEmpty() {
		return ""
	}
	if KindFromChar(p.ID[0]) == p.Kind {
		return p.ID.String()
	}
	return string(p.FENChar()) + p.ID.String()
}

// ParsePiece parses a wire label back into a Piece.
func ParsePiece(label string) (Piece, error) {
	switch len(label) {
	case 2:
		kind := KindFromChar(label[0])
		if kind == NoKind || label[1] < '1' || label[1] > '9' {
			return Piece{}, fmt.Errorf("invalid piece label: %s", label)
		}
		return Piece{Kind: kind, Color: colorOfChar(label[0]), ID: PieceID{label[0], label[1]}}, nil
	case 3:
		// Promoted piece: kind letter followed by the original pawn id.
		kind := KindFromChar(label[0])
		if kind == NoKind || kind == Pawn || kind == King {
			return Piece{}, fmt.Errorf("invalid promoted piece label: %s", label)
		}
		color := colorOfChar(label[0])
		if KindFromChar(label[1]) != Pawn || colorOfChar(label[1]) != color || label[2] < '1' || label[2] > '9' {
			return Piece{}, fmt.Errorf("invalid promoted piece label: %s", label)
		}
		return Piece{Kind: kind, Color: color, ID: PieceID{label[1], label[2]}}, nil
	default:
		return Piece{}, fmt.Errorf("invalid piece label: %s", label)
	}
}

func colorOfChar(c byte) Color {
	if c >= 'A' && c <= 'Z' {
		return White
	}
	return Black
}
