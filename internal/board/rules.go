package board

// Status classifies one side's standing on a single board.
type Status uint8

const (
	StatusNormal Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	default:
		return "normal"
	}
}

// LegalMoves returns the legal moves for the piece on from: pseudo-legal
// moves that do not leave the mover's king in check, plus castling when
// every castling condition holds. Legality is checked by applying the move
// to a copy of the board.
func (b Board) LegalMoves(from Square) []Move {
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return nil
	}

	var legal []Move
	for _, m := range b.PseudoLegalMoves(from) {
		if nb, _ := b.Apply(m); !nb.IsInCheck(p.Color) {
			legal = append(legal, m)
		}
	}

	if p.Kind == King {
		legal = b.appendCastlingMoves(legal, p.Color)
	}

	return legal
}

// AllLegalMoves returns every legal move available to the side.
func (b Board) AllLegalMoves(side Color) []Move {
	var moves []Move
	for sq := Square(0); sq < NoSquare; sq++ {
		p := b.Cells[sq]
		if !p.IsEmpty() && p.Color == side {
			moves = append(moves, b.LegalMoves(sq)...)
		}
	}
	return moves
}

// appendCastlingMoves appends kingside and queenside castling for the side
// when the right survives, the rook is home, the path is clear, and the
// king neither starts, crosses, nor lands on an attacked square.
func (b Board) appendCastlingMoves(moves []Move, c Color) []Move {
	row := 7
	if c == Black {
		row = 0
	}
	kingSq := NewSquare(row, 4)
	king := b.PieceAt(kingSq)
	if king.Kind != King || king.Color != c {
		return moves
	}
	them := c.Other()
	if b.IsSquareAttacked(kingSq, them) {
		return moves
	}

	// Kingside: f and g empty, king crosses f and lands on g.
	if b.Rights.CanCastle(c, true) {
		rook := b.PieceAt(NewSquare(row, 7))
		if rook.Kind == Rook && rook.Color == c &&
			b.IsEmpty(NewSquare(row, 5)) && b.IsEmpty(NewSquare(row, 6)) &&
			!b.IsSquareAttacked(NewSquare(row, 5), them) &&
			!b.IsSquareAttacked(NewSquare(row, 6), them) {
			moves = append(moves, NewCastling(kingSq, NewSquare(row, 6)))
		}
	}

	// Queenside: b, c, d empty, king crosses d and lands on c.
	if b.Rights.CanCastle(c, false) {
		rook := b.PieceAt(NewSquare(row, 0))
		if rook.Kind == Rook && rook.Color == c &&
			b.IsEmpty(NewSquare(row, 1)) && b.IsEmpty(NewSquare(row, 2)) && b.IsEmpty(NewSquare(row, 3)) &&
			!b.IsSquareAttacked(NewSquare(row, 2), them) &&
			!b.IsSquareAttacked(NewSquare(row, 3), them) {
			moves = append(moves, NewCastling(kingSq, NewSquare(row, 2)))
		}
	}

	return moves
}

// IsInCheck returns true if the side's king is attacked. A missing king is
// reported as not in check; callers treat a missing king as fatal before
// ever asking.
func (b Board) IsInCheck(side Color) bool {
	ksq := b.KingSquare(side)
	if ksq == NoSquare {
		return false
	}
	return b.IsSquareAttacked(ksq, side.Other())
}

// HasAnyLegalMove reports whether the side has at least one legal move.
func (b Board) HasAnyLegalMove(side Color) bool {
	for sq := Square(0); sq < NoSquare; sq++ {
		p := b.Cells[sq]
		if p.IsEmpty() || p.Color != side {
			continue
		}
		if len(b.LegalMoves(sq)) > 0 {
			return true
		}
	}
	return false
}

// Classify returns the side's standing on this board: checkmate or
// stalemate when it has no legal move, check or normal otherwise.
func (b Board) Classify(side Color) Status {
	inCheck := b.IsInCheck(side)
	if b.HasAnyLegalMove(side) {
		if inCheck {
			return StatusCheck
		}
		return StatusNormal
	}
	if inCheck {
		return StatusCheckmate
	}
	return StatusStalemate
}
