package board

// CastleSide identifies which wing a castling move used.
type CastleSide uint8

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

// String returns the wire name of the castle side.
func (s CastleSide) String() string {
	switch s {
	case Kingside:
		return "kingside"
	case Queenside:
		return "queenside"
	default:
		return ""
	}
}

// MoveEffect reports everything a move did beyond relocating a piece. The
// twofold coordinator reads it for the capture mirror, the castling-rights
// coupling between boards, and the human-readable move record.
type MoveEffect struct {
	From           Square
	To             Square
	Moved          Piece  // the piece as it stood on From, before promotion
	Captured       Piece  // zero when nothing was captured
	CapturedSquare Square // differs from To on en passant, NoSquare if no capture
	EnPassant      bool
	Castle         CastleSide
	Promotion      PieceKind // NoKind unless the move promoted
}

// Apply plays a move on a copy of the board and returns the copy plus its
// effect. Moves must come from the generator; Apply does not validate them.
func (b Board) Apply(m Move) (Board, MoveEffect) {
	nb := b
	from, to := m.From(), m.To()
	moved := nb.Cells[from]

	e := MoveEffect{From: from, To: to, Moved: moved, CapturedSquare: NoSquare}

	// Resolve the capture. On en passant the victim stands on the
	// capturer's row, not the destination square.
	if m.IsEnPassant() {
		victimSq := NewSquare(from.Row(), to.Col())
		e.Captured = nb.RemovePiece(victimSq)
		e.CapturedSquare = victimSq
		e.EnPassant = true
	} else if !nb.Cells[to].IsEmpty() {
		e.Captured = nb.Cells[to]
		e.CapturedSquare = to
	}

	// Relocate the piece
	nb.Cells[to] = moved
	nb.Cells[from] = Piece{}

	// Promotion replaces the kind but keeps the pawn's id
	if m.IsPromotion() {
		e.Promotion = m.Promotion()
		nb.Cells[to] = Piece{Kind: e.Promotion, Color: moved.Color, ID: moved.ID}
	}

	// Castling relocates the rook to the square the king crossed
	if m.IsCastling() {
		row := from.Row()
		if to.Col() > from.Col() {
			e.Castle = Kingside
			rook := nb.RemovePiece(NewSquare(row, 7))
			nb.SetPiece(rook, NewSquare(row, 5))
		} else {
			e.Castle = Queenside
			rook := nb.RemovePiece(NewSquare(row, 0))
			nb.SetPiece(rook, NewSquare(row, 3))
		}
	}

	nb.Rights = updatedRights(nb.Rights, e)

	// The en passant target lives for exactly one ply
	nb.EnPassant = NoSquare
	if moved.Kind == Pawn && abs(to.Row()-from.Row()) == 2 {
		nb.EnPassant = NewSquare((to.Row()+from.Row())/2, from.Col())
	}

	return nb, e
}

// updatedRights clears castling rights after king moves, rook moves off a
// home corner, and captures of a rook standing on its home corner.
func updatedRights(r CastlingRights, e MoveEffect) CastlingRights {
	if r == NoCastling {
		return r
	}
	if e.Moved.Kind == King {
		r &^= SideRights(e.Moved.Color)
	}
	if e.Moved.Kind == Rook {
		r &^= CornerRight(e.From, e.Moved.Color)
	}
	if e.Captured.Kind == Rook {
		r &^= CornerRight(e.CapturedSquare, e.Captured.Color)
	}
	return r
}

// CornerRight maps a rook home corner to the castling right it anchors, or
// NoCastling for any other square. The twofold coordinator also calls this
// when a mirrored removal takes a rook off its corner.
func CornerRight(sq Square, c Color) CastlingRights {
	switch {
	case c == White && sq == A1:
		return WhiteQueenSideCastle
	case c == White && sq == H1:
		return WhiteKingSideCastle
	case c == Black && sq == A8:
		return BlackQueenSideCastle
	case c == Black && sq == H8:
		return BlackKingSideCastle
	}
	return NoCastling
}
