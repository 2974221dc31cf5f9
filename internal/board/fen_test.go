package board

import (
	"testing"
)

func TestStartPositionIdentities(t *testing.T) {
	b := NewBoard()
	cases := []struct {
		sq   Square
		want string
	}{
		{A8, "r1"}, {B8, "n1"}, {C8, "b1"}, {D8, "q1"},
		{E8, "k1"}, {F8, "b2"}, {G8, "n2"}, {H8, "r2"},
		{A7, "p1"}, {H7, "p8"},
		{A2, "P1"}, {E2, "P5"}, {H2, "P8"},
		{A1, "R1"}, {E1, "K1"}, {H1, "R2"},
	}
	for _, tc := range cases {
		p := b.PieceAt(tc.sq)
		if p.IsEmpty() {
			t.Fatalf("expected a piece on %v", tc.sq)
		}
		if got := p.ID.String(); got != tc.want {
			t.Errorf("%v: expected id %s, got %s", tc.sq, tc.want, got)
		}
	}
}

func TestIdentityAssignmentIsDeterministic(t *testing.T) {
	// Ids follow scan order from rank 8 to rank 1, so the same layout
	// always yields the same ids regardless of how it was reached.
	fen := "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6"
	a, _, _ := ParseFEN(fen)
	c, _, _ := ParseFEN(fen)
	if a != c {
		t.Fatal("identical FENs should produce identical boards")
	}
	// Rank 7 is scanned before rank 5, so the advanced d5 pawn is numbered last.
	if got := a.PieceAt(D5).ID.String(); got != "p8" {
		t.Errorf("expected d5 pawn id p8, got %s", got)
	}
	if got := a.PieceAt(A7).ID.String(); got != "p1" {
		t.Errorf("expected a7 pawn id p1, got %s", got)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR b KQkq d6 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		b, side, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("parse %q: %v", fen, err)
		}
		if got := b.ToFEN(side); got != fen {
			t.Errorf("round trip mismatch:\nin  %s\nout %s", fen, got)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq -",            // seven ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq -",   // bad piece char
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",   // rank overflow
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq -",   // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq -",   // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9",  // bad target
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",            // missing fields
	}
	for _, fen := range bad {
		if _, _, err := ParseFEN(fen); err == nil {
			t.Errorf("expected error for %q", fen)
		}
	}
}
