package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Snapshot - the stored form of a Game.
type Snapshot struct {
	ID      string          `json:"id"`
	Board   entity.Board    `json:"board"`
	Players []entity.Player `json:"players,omitempty"`
	Turn    int             `json:"turn"`
	Over    bool            `json:"game_over"`
}

// Snapshot - exports the session state.
func (that *Game) Snapshot() Snapshot {
	return Snapshot{
		ID:      that.id,
		Board:   that.board,
		Players: that.Players(),
		Turn:    that.turn,
		Over:    that.over,
	}
}

// Restore - rebuilds a Game, rejecting states the engine could never reach.
func Restore(snapshot Snapshot) (*Game, error) {
	if err := snapshot.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCorruptedSnapshot, err.Error())
	}

	game := NewGame(snapshot.ID)
	game.board = snapshot.Board
	game.turn = snapshot.Turn
	game.over = snapshot.Over

	if len(snapshot.Players) > 0 {
		game.players = make([]entity.Player, len(snapshot.Players))
		copy(game.players, snapshot.Players)
	}

	return game, nil
}

func (that Snapshot) validate() error {
	if that.Turn != 0 && that.Turn != 1 {
		return fmt.Errorf("turn index %d", that.Turn)
	}

	outcome := entity.DetermineOutcome(that.Board)

	switch len(that.Players) {
	case 0:
		if that.Over || that.Turn != 0 || that.Board != entity.NewBoard() {
			return fmt.Errorf("game %s is not started but has progress", that.ID)
		}

		return nil
	case 2:
	default:
		return fmt.Errorf("%d players", len(that.Players))
	}

	if that.Players[0].Mark != entity.PlayerX || that.Players[1].Mark != entity.PlayerO {
		return fmt.Errorf("players marks %q and %q", that.Players[0].Mark, that.Players[1].Mark)
	}

	if that.Over != outcome.IsTerminal() {
		return fmt.Errorf("game over flag %t with outcome %s", that.Over, outcome)
	}

	// X always moves first, so X leads O by at most one mark
	lead := that.Board.Count(entity.PlayerX) - that.Board.Count(entity.PlayerO)
	if lead != 0 && lead != 1 {
		return fmt.Errorf("mark counts differ by %d", lead)
	}

	if !that.Over {
		if that.Turn != lead {
			return fmt.Errorf("turn %d does not follow %d marks lead", that.Turn, lead)
		}

		return nil
	}

	// a finished game keeps the player who made the last move current
	if that.Turn != 1-lead {
		return fmt.Errorf("turn %d did not make the last move", that.Turn)
	}

	if outcome.IsWin() && outcome.Mark != that.Players[that.Turn].Mark {
		return fmt.Errorf("winner %s is not the last mover", outcome.Mark)
	}

	return nil
}
