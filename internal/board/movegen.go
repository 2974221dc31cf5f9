package board

// Direction offsets as (row, col) deltas. Row 0 is rank 8, so White pawns
// advance with a row delta of -1.
var (
	rookDirs   = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = [8][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightHops = [8][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingSteps  = [8][2]int{{1, 1}, {1, 0}, {1, -1}, {0, 1}, {0, -1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// PseudoLegalMoves returns the moves the piece on from could make, ignoring
// whether the mover's king would be left in check. Castling is produced by
// LegalMoves, not here.
//
// Moves that would capture a king are never generated: the cross-board
// mirror can leave a king attacked for a ply, and that state must resolve
// through the check machinery rather than by removing the king.
func (b Board) PseudoLegalMoves(from Square) []Move {
	p := b.PieceAt(from)
	if p.IsEmpty() {
		return nil
	}

	switch p.Kind {
	case Pawn:
		return b.pawnMoves(from, p.Color)
	case Knight:
		return b.stepMoves(from, p.Color, knightHops[:])
	case Bishop:
		return b.slidingMoves(from, p.Color, bishopDirs[:])
	case Rook:
		return b.slidingMoves(from, p.Color, rookDirs[:])
	case Queen:
		return b.slidingMoves(from, p.Color, queenDirs[:])
	case King:
		return b.stepMoves(from, p.Color, kingSteps[:])
	}
	return nil
}

// pawnMoves generates pawn pushes, captures, and en passant.
func (b Board) pawnMoves(from Square, c Color) []Move {
	var moves []Move

	dir, startRow := -1, 6
	if c == Black {
		dir, startRow = 1, 1
	}
	row, col := from.Row(), from.Col()

	// Forward pushes
	if OnBoard(row+dir, col) {
		one := NewSquare(row+dir, col)
		if b.IsEmpty(one) {
			moves = addPawnMove(moves, from, one, c)
			if row == startRow {
				two := NewSquare(row+2*dir, col)
				if b.IsEmpty(two) {
					moves = append(moves, NewMove(from, two))
				}
			}
		}
	}

	// Diagonal captures, including en passant
	for _, dc := range [2]int{-1, 1} {
		if !OnBoard(row+dir, col+dc) {
			continue
		}
		to := NewSquare(row+dir, col+dc)
		target := b.PieceAt(to)
		switch {
		case target.IsEmpty() && to == b.EnPassant:
			// The victim pawn stands on the capturer's own row. It must
			// belong to the opponent: with phase alternation the side
			// that double-pushed can face its own target square next.
			victim := b.PieceAt(NewSquare(row, to.Col()))
			if victim.Kind == Pawn && victim.Color == c.Other() {
				moves = append(moves, NewEnPassant(from, to))
			}
		case !target.IsEmpty() && target.Color != c && target.Kind != King:
			moves = addPawnMove(moves, from, to, c)
		}
	}

	return moves
}

// addPawnMove appends a pawn move, expanding it into the four promotion
// choices when the destination is the last rank.
func addPawnMove(moves []Move, from, to Square, c Color) []Move {
	promoRow := 0
	if c == Black {
		promoRow = 7
	}
	if to.Row() != promoRow {
		return append(moves, NewMove(from, to))
	}
	for _, k := range [4]PieceKind{Queen, Rook, Bishop, Knight} {
		moves = append(moves, NewPromotion(from, to, k))
	}
	return moves
}

// stepMoves generates single-step moves for knights and kings.
func (b Board) stepMoves(from Square, c Color, steps [][2]int) []Move {
	var moves []Move
	row, col := from.Row(), from.Col()

	for _, d := range steps {
		nr, nc := row+d[0], col+d[1]
		if !OnBoard(nr, nc) {
			continue
		}
		to := NewSquare(nr, nc)
		target := b.PieceAt(to)
		if target.IsEmpty() || (target.Color != c && target.Kind != King) {
			moves = append(moves, NewMove(from, to))
		}
	}

	return moves
}

// slidingMoves generates ray moves for rooks, bishops, and queens.
func (b Board) slidingMoves(from Square, c Color, dirs [][2]int) []Move {
	var moves []Move
	row, col := from.Row(), from.Col()

	for _, d := range dirs {
		for i := 1; i < 8; i++ {
			nr, nc := row+d[0]*i, col+d[1]*i
			if !OnBoard(nr, nc) {
				break
			}
			to := NewSquare(nr, nc)
			target := b.PieceAt(to)
			if target.IsEmpty() {
				moves = append(moves, NewMove(from, to))
				continue
			}
			if target.Color != c && target.Kind != King {
				moves = append(moves, NewMove(from, to))
			}
			break
		}
	}

	return moves
}

// IsSquareAttacked reports whether sq is attacked by any piece of the given
// color. Pawn attacks are the two capture diagonals only, never forward
// pushes. The scan probes outward from sq and does not consult legality,
// so check detection cannot recurse.
func (b Board) IsSquareAttacked(sq Square, by Color) bool {
	row, col := sq.Row(), sq.Col()

	// Knights
	for _, d := range knightHops {
		nr, nc := row+d[0], col+d[1]
		if OnBoard(nr, nc) {
			p := b.PieceAt(NewSquare(nr, nc))
			if p.Kind == Knight && p.Color == by {
				return true
			}
		}
	}

	// Adjacent king
	for _, d := range kingSteps {
		nr, nc := row+d[0], col+d[1]
		if OnBoard(nr, nc) {
			p := b.PieceAt(NewSquare(nr, nc))
			if p.Kind == King && p.Color == by {
				return true
			}
		}
	}

	// Sliding attackers: the first occupied square along each ray decides.
	for _, d := range rookDirs {
		for i := 1; i < 8; i++ {
			nr, nc := row+d[0]*i, col+d[1]*i
			if !OnBoard(nr, nc) {
				break
			}
			p := b.PieceAt(NewSquare(nr, nc))
			if p.IsEmpty() {
				continue
			}
			if p.Color == by && (p.Kind == Rook || p.Kind == Queen) {
				return true
			}
			break
		}
	}
	for _, d := range bishopDirs {
		for i := 1; i < 8; i++ {
			nr, nc := row+d[0]*i, col+d[1]*i
			if !OnBoard(nr, nc) {
				break
			}
			p := b.PieceAt(NewSquare(nr, nc))
			if p.IsEmpty() {
				continue
			}
			if p.Color == by && (p.Kind == Bishop || p.Kind == Queen) {
				return true
			}
			break
		}
	}

	// Pawn attackers sit one row past sq: below it for White, above it
	// for Black.
	pr := row + 1
	if by == Black {
		pr = row - 1
	}
	for _, dc := range [2]int{-1, 1} {
		if OnBoard(pr, col+dc) {
			p := b.PieceAt(NewSquare(pr, col+dc))
			if p.Kind == Pawn && p.Color == by {
				return true
			}
		}
	}

	return false
}
