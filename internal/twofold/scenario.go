package twofold

import (
	"fmt"

	"github.com/hailam/twofold/internal/board"
)

// scenarioSpec is one installable preset. An empty FEN means the standard
// starting position. Outcome, turn and status fields are installed as-is:
// presets describe the state after any classification, they are never
// re-evaluated on load.
type scenarioSpec struct {
	mainFEN          string
	secondaryFEN     string
	turn             board.Color
	phase            BoardName
	mainOutcome      board.Outcome
	secondaryOutcome board.Outcome
	over             bool
	winner           board.Color
	status           string
}

var scenarioOrder = []string{
	"main_white_checkmates_black",
	"secondary_black_checkmates_white",
	"main_stalemate_black_to_move",
	"secondary_stalemate_white_to_move",
	"main_black_in_check_black_to_move",
	"secondary_white_in_check_white_to_move",
	"main_white_causes_check_setup",
	"promotion_ready",
	"castling_ready",
	"en_passant_ready",
}

var scenarios = map[string]scenarioSpec{
	"main_white_checkmates_black": {
		mainFEN:     "7k/6Q1/8/8/8/8/8/K7 w - -",
		turn:        board.Black,
		phase:       MainBoard,
		mainOutcome: board.WhiteWins,
		over:        true,
		winner:      board.White,
		status:      "White wins by checkmate on main board.",
	},
	"secondary_black_checkmates_white": {
		secondaryFEN:     "k7/8/8/8/8/8/6q1/7K w - -",
		turn:             board.White,
		phase:            SecondaryBoard,
		secondaryOutcome: board.BlackWins,
		over:             true,
		winner:           board.Black,
		status:           "Black wins by checkmate on secondary board.",
	},
	"main_stalemate_black_to_move": {
		mainFEN:     "k7/2Q5/K7/8/8/8/8/8 w - -",
		turn:        board.Black,
		phase:       SecondaryBoard,
		mainOutcome: board.DrawStalemate,
		winner:      board.NoColor,
		status:      "Immediate stalemate on main for Black by debug setup.",
	},
	"secondary_stalemate_white_to_move": {
		secondaryFEN:     "K7/2q5/k7/8/8/8/8/8 w - -",
		turn:             board.Black,
		phase:            MainBoard,
		secondaryOutcome: board.DrawStalemate,
		winner:           board.NoColor,
		status:           "Immediate stalemate on secondary for White by debug setup.",
	},
	"main_black_in_check_black_to_move": {
		mainFEN: "k6R/8/8/8/8/8/8/4K3 w - -",
		turn:    board.Black,
		phase:   MainBoard,
		winner:  board.NoColor,
		status:  "Black in Check on Main (Black to move).",
	},
	"secondary_white_in_check_white_to_move": {
		secondaryFEN: "4k3/8/8/8/8/8/8/K6r w - -",
		turn:         board.White,
		phase:        SecondaryBoard,
		winner:       board.NoColor,
		status:       "White in Check on Secondary (White to move).",
	},
	"main_white_causes_check_setup": {
		mainFEN: "2k5/R7/8/8/8/8/8/4K3 w - -",
		turn:    board.White,
		phase:   MainBoard,
		winner:  board.NoColor,
		status:  "Setup for White to cause check (move Rook from a7 to c7).",
	},
	"promotion_ready": {
		mainFEN: "8/4P3/8/8/8/7k/8/K7 w - -",
		turn:    board.White,
		phase:   MainBoard,
		winner:  board.NoColor,
		status:  "Setup for promotion (White to move).",
	},
	"castling_ready": {
		mainFEN: "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -",
		turn:    board.White,
		phase:   MainBoard,
		winner:  board.NoColor,
		status:  "Setup for castling (White to move).",
	},
	"en_passant_ready": {
		mainFEN: "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6",
		turn:    board.White,
		phase:   MainBoard,
		winner:  board.NoColor,
		status:  "Setup for en passant capture on main (White to move).",
	},
}

// ScenarioNames lists the available presets in a stable order.
func ScenarioNames() []string {
	names := make([]string, len(scenarioOrder))
	copy(names, scenarioOrder)
	return names
}

// Scenario returns a fresh game holding the named preset.
func Scenario(name string) (*Game, error) {
	g := NewGame()
	if err := g.LoadScenario(name); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadScenario replaces the game state with a named preset. The move log
// survives, matching how a scenario drops into an ongoing room.
func (g *Game) LoadScenario(name string) error {
	spec, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario: %s", name)
	}

	main, err := scenarioBoard(spec.mainFEN)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", name, err)
	}
	secondary, err := scenarioBoard(spec.secondaryFEN)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", name, err)
	}
	main.Outcome = spec.mainOutcome
	secondary.Outcome = spec.secondaryOutcome

	g.boards[MainBoard] = main
	g.boards[SecondaryBoard] = secondary
	g.turn = spec.turn
	g.phase = spec.phase
	g.responding = false
	g.over = spec.over
	g.winner = spec.winner
	g.status = spec.status
	return nil
}

func scenarioBoard(fen string) (board.Board, error) {
	if fen == "" {
		return board.NewBoard(), nil
	}
	b, _, err := board.ParseFEN(fen)
	return b, err
}
