package twofold

import "fmt"

// Reason classifies why a move was rejected.
type Reason uint8

const (
	ReasonGameOver Reason = iota
	ReasonNoSuchPiece
	ReasonNotYourTurn
	ReasonWrongBoard
	ReasonMustRespond
	ReasonDestinationBlocked
	ReasonPathBlocked
	ReasonMovesIntoCheck
	ReasonPromotionRequired
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonGameOver:
		return "GameOver"
	case ReasonNoSuchPiece:
		return "NoSuchPiece"
	case ReasonNotYourTurn:
		return "NotYourTurn"
	case ReasonWrongBoard:
		return "WrongBoard"
	case ReasonMustRespond:
		return "MustRespondToCheckOn"
	case ReasonDestinationBlocked:
		return "DestinationBlocked"
	case ReasonPathBlocked:
		return "PathBlocked"
	case ReasonMovesIntoCheck:
		return "MovesIntoCheck"
	case ReasonPromotionRequired:
		return "PromotionRequired"
	default:
		return "Unknown"
	}
}

// MoveError is a rejected move. Expected and Actual carry the board pair
// for board-routing rejections; HasBoards reports whether they are set.
type MoveError struct {
	Reason    Reason
	Message   string
	Expected  BoardName
	Actual    BoardName
	HasBoards bool
}

// Error returns the client-facing message.
func (e *MoveError) Error() string {
	return e.Message
}

func rejectf(r Reason, format string, args ...any) *MoveError {
	return &MoveError{Reason: r, Message: fmt.Sprintf(format, args...)}
}

func rejectBoards(r Reason, expected, actual BoardName, format string, args ...any) *MoveError {
	return &MoveError{
		Reason:    r,
		Message:   fmt.Sprintf(format, args...),
		Expected:  expected,
		Actual:    actual,
		HasBoards: true,
	}
}
