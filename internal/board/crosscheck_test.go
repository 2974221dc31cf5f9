package board

import (
	"sort"
	"testing"

	"github.com/notnil/chess"
)

// Legal move generation is compared against the notnil/chess engine over a
// set of positions that exercise castling, pins, en passant and promotion.

func referenceMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("reference parse %q: %v", fen, err)
	}
	game := chess.NewGame(opt)
	var out []string
	for _, m := range game.ValidMoves() {
		s := m.S1().String() + m.S2().String()
		switch m.Promo() {
		case chess.Queen:
			s += "q"
		case chess.Rook:
			s += "r"
		case chess.Bishop:
			s += "b"
		case chess.Knight:
			s += "n"
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func generatedMoves(t *testing.T, fen string) []string {
	t.Helper()
	b, side, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse %q: %v", fen, err)
	}
	var out []string
	for _, m := range b.AllLegalMoves(side) {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func TestLegalMovesMatchReference(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 0 1",
		"7k/P7/8/8/8/8/8/K7 w - - 0 1",
		"7k/8/8/8/8/8/p6P/1R5K b - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			want := referenceMoves(t, fen)
			got := generatedMoves(t, fen)
			if len(got) != len(want) {
				t.Fatalf("move count mismatch: got %d %v, want %d %v", len(got), got, len(want), want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("move %d: got %s, want %s", i, got[i], want[i])
				}
			}
		})
	}
}
