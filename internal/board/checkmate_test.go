package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Test position: Back rank mate - already checkmate
	// White: Ka1, Ra8
	// Black: Kh8, pawns on g7 and h7 blocking escape
	// Black is already in checkmate (Black to move)
	b, _, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(b)

	t.Log("InCheck:", b.IsInCheck(Black))

	// List all legal moves for black
	blackMoves := b.AllLegalMoves(Black)
	t.Log("Black legal moves:", len(blackMoves))
	for _, m := range blackMoves {
		t.Log("  Move:", m)
	}

	t.Log("HasAnyLegalMove:", b.HasAnyLegalMove(Black))
	t.Log("Classify:", b.Classify(Black))

	if b.Classify(Black) != StatusCheckmate {
		t.Error("Expected checkmate but got", b.Classify(Black))
	}
}

func TestNotCheckmate(t *testing.T) {
	// Test position: King CAN escape - not checkmate
	// Black king on h8, rook on g8 but king can take it
	b, _, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Not checkmate position (king can capture rook):")
	t.Log(b)

	t.Log("InCheck:", b.IsInCheck(Black))

	blackMoves := b.AllLegalMoves(Black)
	t.Log("Black legal moves:", len(blackMoves))
	for _, m := range blackMoves {
		t.Log("  Move:", m)
	}

	t.Log("Classify:", b.Classify(Black))

	if b.Classify(Black) == StatusCheckmate {
		t.Error("Expected NOT checkmate but got checkmate")
	}
}

func TestStalemate(t *testing.T) {
	// Black king cornered on a8 by queen c7 and king a6; not in check,
	// no legal moves.
	b, _, err := ParseFEN("k7/2Q5/K7/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if b.IsInCheck(Black) {
		t.Error("Expected black not in check")
	}
	if got := b.Classify(Black); got != StatusStalemate {
		t.Error("Expected stalemate but got", got)
	}
}
