package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMark    = errors.New("unknown mark")
	ErrUnknownOutcome = errors.New("unknown outcome")

	// WinCombos - every line that wins, in scan order: rows, columns, diagonals.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Result - kind of an Outcome.
type Result int

const (
	ResultInProgress Result = iota
	ResultWin
	ResultTie
)

func (that Result) String() string {
	switch that {
	case ResultWin:
		return "win"
	case ResultTie:
		return "tie"
	default:
		return "in_progress"
	}
}

func (that Result) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Result) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*that = ResultInProgress
	case "win":
		*that = ResultWin
	case "tie":
		*that = ResultTie
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, text)
	}

	return nil
}

// Outcome - result of evaluating a board. Mark is set only for a win.
type Outcome struct {
	Result Result `json:"result"`
	Mark   Mark   `json:"mark,omitempty"`
}

func Win(mark Mark) Outcome {
	return Outcome{Result: ResultWin, Mark: mark}
}

func Tie() Outcome {
	return Outcome{Result: ResultTie}
}

func InProgress() Outcome {
	return Outcome{Result: ResultInProgress}
}

func (that Outcome) IsWin() bool {
	return that.Result == ResultWin
}

func (that Outcome) IsTie() bool {
	return that.Result == ResultTie
}

// IsTerminal - reports whether the outcome ends the game.
func (that Outcome) IsTerminal() bool {
	return that.Result != ResultInProgress
}

func (that Outcome) String() string {
	if that.IsWin() {
		return fmt.Sprintf("win(%s)", that.Mark)
	}

	return that.Result.String()
}

// DetermineOutcome - evaluates the board without changing it.
func DetermineOutcome(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board.cells[combo[0]], board.cells[combo[1]], board.cells[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Win(a)
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return InProgress()
	}

	return Tie()
}
