package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	DefaultFirstName  = "Player 1"
	DefaultSecondName = "Player 2"
)

// Game - one hot-seat session: two players taking turns on a single board.
// Not safe for concurrent use.
type Game struct {
	id      string
	board   entity.Board
	players []entity.Player
	turn    int
	over    bool
}

// NewGame - creates a session that waits for StartGame.
func NewGame(id string) *Game {
	return &Game{
		id:    id,
		board: entity.NewBoard(),
	}
}

func (that *Game) ID() string {
	return that.id
}

// StartGame - seats two new players, X moves first, and clears the board.
func (that *Game) StartGame(firstName, secondName string) {
	that.players = []entity.Player{
		entity.NewPlayer(playerName(firstName, DefaultFirstName), entity.PlayerX),
		entity.NewPlayer(playerName(secondName, DefaultSecondName), entity.PlayerO),
	}

	that.restart()
}

// ResetGame - clears the board and the turn but keeps the players.
func (that *Game) ResetGame() {
	that.restart()
}

func (that *Game) restart() {
	that.turn = 0
	that.over = false
	that.board.Reset()
}

// PlayRound - places the current player's mark. Returns false and changes
// nothing when the move is rejected.
func (that *Game) PlayRound(cell int) bool {
	return that.TryRound(cell) == nil
}

// TryRound - same as PlayRound but reports why a move was rejected.
func (that *Game) TryRound(cell int) error {
	if !that.IsStarted() {
		return apperror.ErrGameIsNotStarted
	}

	if that.over {
		return apperror.ErrGameFinished
	}

	if !entity.ValidIndex(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !that.board.SetCell(cell, that.players[that.turn].Mark) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	// the player who ended the game stays current
	if that.CheckOutcome().IsTerminal() {
		that.over = true
		return nil
	}

	that.turn = 1 - that.turn

	return nil
}

// CheckOutcome - evaluates the board, scanning rows, then columns, then diagonals.
func (that *Game) CheckOutcome() entity.Outcome {
	return entity.DetermineOutcome(that.board)
}

// CurrentPlayer - the player to move, or the one who ended the game.
func (that *Game) CurrentPlayer() (entity.Player, error) {
	if !that.IsStarted() {
		return entity.Player{}, apperror.ErrGameIsNotStarted
	}

	return that.players[that.turn], nil
}

// PlayerByMark - finds the player who owns mark.
func (that *Game) PlayerByMark(mark entity.Mark) (entity.Player, bool) {
	for _, player := range that.players {
		if player.Mark == mark {
			return player, true
		}
	}

	return entity.Player{}, false
}

func (that *Game) IsGameOver() bool {
	return that.over
}

func (that *Game) IsStarted() bool {
	return len(that.players) == 2
}

// Status - waiting before the first StartGame, finished once over, ongoing otherwise.
func (that *Game) Status() string {
	switch {
	case !that.IsStarted():
		return StatusWaiting
	case that.over:
		return StatusFinished
	default:
		return StatusOngoing
	}
}

// Board - a copy of the board.
func (that *Game) Board() entity.Board {
	return that.board
}

// Players - a copy of the seated players, empty before StartGame.
func (that *Game) Players() []entity.Player {
	players := make([]entity.Player, len(that.players))
	copy(players, that.players)

	return players
}

func (that *Game) TurnIndex() int {
	return that.turn
}

func playerName(name, fallback string) string {
	if name = strings.TrimSpace(name); name == "" {
		return fallback
	}

	return name
}
