package board

import (
	"testing"
)

// moveSet collects destination squares for easy membership checks.
func moveSet(moves []Move) map[Square]bool {
	set := make(map[Square]bool)
	for _, m := range moves {
		set[m.To()] = true
	}
	return set
}

func TestPawnMoves(t *testing.T) {
	t.Run("start position single and double push", func(t *testing.T) {
		b := NewBoard()
		moves := b.PseudoLegalMoves(E2)
		if len(moves) != 2 {
			t.Fatalf("expected 2 moves for e2 pawn, got %d", len(moves))
		}
		set := moveSet(moves)
		if !set[E3] || !set[E4] {
			t.Errorf("expected e3 and e4, got %v", moves)
		}
	})

	t.Run("black double push", func(t *testing.T) {
		b := NewBoard()
		moves := b.PseudoLegalMoves(E7)
		set := moveSet(moves)
		if len(moves) != 2 || !set[E6] || !set[E5] {
			t.Errorf("expected e6 and e5, got %v", moves)
		}
	})

	t.Run("blocked pawn has no moves", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/8/4p3/4P3/8 w - -")
		if moves := b.PseudoLegalMoves(E2); len(moves) != 0 {
			t.Errorf("expected no moves for blocked pawn, got %v", moves)
		}
	})

	t.Run("diagonal captures", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/3p1p2/4P3/8/8/8 w - -")
		moves := b.PseudoLegalMoves(E4)
		set := moveSet(moves)
		if len(moves) != 3 || !set[E5] || !set[D5] || !set[F5] {
			t.Errorf("expected e5, d5xp, f5xp, got %v", moves)
		}
	})

	t.Run("promotion expands to four choices", func(t *testing.T) {
		b, _, _ := ParseFEN("8/P7/8/8/8/8/8/8 w - -")
		moves := b.PseudoLegalMoves(A7)
		if len(moves) != 4 {
			t.Fatalf("expected 4 promotion moves, got %d", len(moves))
		}
		kinds := make(map[PieceKind]bool)
		for _, m := range moves {
			if !m.IsPromotion() {
				t.Errorf("move %v should be a promotion", m)
			}
			kinds[m.Promotion()] = true
		}
		for _, k := range []PieceKind{Queen, Rook, Bishop, Knight} {
			if !kinds[k] {
				t.Errorf("missing %s promotion", k)
			}
		}
	})
}

func TestEnPassantGeneration(t *testing.T) {
	t.Run("capture of a fresh double push", func(t *testing.T) {
		b, _, _ := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6")
		moves := b.PseudoLegalMoves(E5)
		var ep int
		for _, m := range moves {
			if m.IsEnPassant() {
				ep++
				if m.To() != D6 {
					t.Errorf("en passant should target d6, got %v", m.To())
				}
			}
		}
		if ep != 1 {
			t.Errorf("expected exactly one en passant move, got %d", ep)
		}
	})

	t.Run("own double push is not capturable by the same side", func(t *testing.T) {
		// After White's e2-e4, the target e3 survives until the next move
		// on this board, which can be White's again under phase alternation.
		b := NewBoard()
		b, _ = b.Apply(NewMove(E2, E4))
		if b.EnPassant != E3 {
			t.Fatalf("expected en passant target e3, got %v", b.EnPassant)
		}
		for _, m := range b.PseudoLegalMoves(D2) {
			if m.IsEnPassant() {
				t.Errorf("white must not capture its own pawn en passant: %v", m)
			}
		}
	})
}

func TestKnightMoves(t *testing.T) {
	t.Run("start position knight", func(t *testing.T) {
		b := NewBoard()
		moves := b.PseudoLegalMoves(G1)
		set := moveSet(moves)
		if len(moves) != 2 || !set[F3] || !set[H3] {
			t.Errorf("expected f3 and h3, got %v", moves)
		}
	})

	t.Run("center knight has eight moves", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/3N4/8/8/8 w - -")
		if moves := b.PseudoLegalMoves(D4); len(moves) != 8 {
			t.Errorf("expected 8 moves, got %d", len(moves))
		}
	})

	t.Run("blocked by friendly, captures enemy", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/8/p7/3P4/1N6 w - -")
		moves := b.PseudoLegalMoves(B1)
		set := moveSet(moves)
		if len(moves) != 2 || !set[A3] || !set[C3] {
			t.Errorf("expected a3 and c3, got %v", moves)
		}
	})
}

func TestSlidingMoves(t *testing.T) {
	t.Run("lone rook sweeps rank and file", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/3R4/8/8/8 w - -")
		if moves := b.PseudoLegalMoves(D4); len(moves) != 14 {
			t.Errorf("expected 14 moves, got %d", len(moves))
		}
	})

	t.Run("lone queen", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/3Q4/8/8/8 w - -")
		if moves := b.PseudoLegalMoves(D4); len(moves) != 27 {
			t.Errorf("expected 27 moves, got %d", len(moves))
		}
	})

	t.Run("rays stop on capture and before friendly", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/8/8/P7/Rr6 w - -")
		moves := b.PseudoLegalMoves(A1)
		set := moveSet(moves)
		if len(moves) != 1 || !set[B1] {
			t.Errorf("expected only b1 capture, got %v", moves)
		}
	})

	t.Run("start position bishop is locked in", func(t *testing.T) {
		b := NewBoard()
		if moves := b.PseudoLegalMoves(C1); len(moves) != 0 {
			t.Errorf("expected no moves, got %v", moves)
		}
	})
}

func TestKingMoves(t *testing.T) {
	b, _, _ := ParseFEN("8/8/8/8/3K4/8/8/8 w - -")
	if moves := b.PseudoLegalMoves(D4); len(moves) != 8 {
		t.Errorf("expected 8 moves, got %d", len(moves))
	}
}

func TestKingIsNeverACaptureTarget(t *testing.T) {
	// A cross-board removal can leave a king attacked; the attacked king
	// must not be capturable.
	b, _, _ := ParseFEN("k7/8/8/8/8/8/8/R6K w - -")
	for _, m := range b.PseudoLegalMoves(A1) {
		if m.To() == A8 {
			t.Errorf("rook must not capture the king: %v", m)
		}
	}
	if got := len(b.PseudoLegalMoves(A1)); got != 12 {
		t.Errorf("expected 12 rook moves, got %d", got)
	}
}

func TestIsSquareAttacked(t *testing.T) {
	t.Run("pawns attack diagonals only", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/4P3/8/8/8 w - -")
		if !b.IsSquareAttacked(D5, White) || !b.IsSquareAttacked(F5, White) {
			t.Error("pawn should attack d5 and f5")
		}
		if b.IsSquareAttacked(E5, White) {
			t.Error("pawn must not attack its push square")
		}
	})

	t.Run("knight attacks over pieces", func(t *testing.T) {
		b := NewBoard()
		if !b.IsSquareAttacked(F3, White) {
			t.Error("g1 knight should attack f3")
		}
	})

	t.Run("sliding attacks are blocked", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/8/8/P7/R7 w - -")
		if b.IsSquareAttacked(A3, White) {
			t.Error("rook attack should be blocked by the pawn on a2")
		}
		if !b.IsSquareAttacked(B1, White) {
			t.Error("rook should attack b1")
		}
	})

	t.Run("king attacks adjacent squares", func(t *testing.T) {
		b, _, _ := ParseFEN("8/8/8/8/3K4/8/8/8 w - -")
		if !b.IsSquareAttacked(E5, White) {
			t.Error("king should attack e5")
		}
		if b.IsSquareAttacked(F6, White) {
			t.Error("king must not attack two squares away")
		}
	})
}
