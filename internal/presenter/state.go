package presenter

import (
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const waitingMessage = "Enter player names to start"

// State - everything a view needs to re-render after an engine call.
type State struct {
	ID            string                   `json:"id"`
	Board         [entity.BoardSize]string `json:"board"`
	Players       []entity.Player          `json:"players"`
	CurrentPlayer *entity.Player           `json:"current_player,omitempty"`
	Status        string                   `json:"status"`
	Outcome       entity.Outcome           `json:"outcome"`
	Message       string                   `json:"message"`
}

// NewState - builds the view model of a game.
func NewState(game *tictactoe.Game) State {
	state := State{
		ID:      game.ID(),
		Players: game.Players(),
		Status:  game.Status(),
		Outcome: game.CheckOutcome(),
		Message: Message(game),
	}

	for i, cell := range game.Board().Cells() {
		state.Board[i] = string(cell)
	}

	if current, err := game.CurrentPlayer(); err == nil {
		state.CurrentPlayer = &current
	}

	return state
}

// Message - the status line shown above the board.
func Message(game *tictactoe.Game) string {
	current, err := game.CurrentPlayer()
	if err != nil {
		return waitingMessage
	}

	outcome := game.CheckOutcome()

	switch {
	case outcome.IsTie():
		return "It's a tie"
	case outcome.IsWin():
		if winner, ok := game.PlayerByMark(outcome.Mark); ok {
			return winner.Name + " Wins"
		}

		return string(outcome.Mark) + " Wins"
	default:
		return current.Name + "'s Turn"
	}
}
