package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/moby/locker"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type gameRepo interface {
	Save(ctx context.Context, game tictactoe.Snapshot) error
	GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - runs engine calls against stored sessions. Calls for the
// same session are serialized.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	locks    *locker.Locker
	newID    func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		locks:    locker.New(),
		newID:    uuid.NewString,
	}
}

// NewSession - stores a fresh session waiting for player names.
func (that *GameManager) NewSession(ctx context.Context) (*tictactoe.Game, error) {
	game := tictactoe.NewGame(that.newID())

	if err := that.saveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Debug("session created", "gameID", game.ID())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*tictactoe.Game, error) {
	unlock := that.lock(id)
	defer unlock()

	return that.getGameByID(ctx, id)
}

// StartGame - seats two players. An unknown session is created on the fly.
func (that *GameManager) StartGame(ctx context.Context, id, firstName, secondName string) (*tictactoe.Game, error) {
	if id == "" {
		id = that.newID()
	}

	unlock := that.lock(id)
	defer unlock()

	game, err := that.getGameByID(ctx, id)
	if errors.Is(err, apperror.ErrGameNotFound) {
		game, err = tictactoe.NewGame(id), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game.StartGame(firstName, secondName)

	if err = that.saveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game started", "gameID", id)

	return game, nil
}

// PlayRound - plays one round for the current player. A rejected move
// returns the unchanged game together with the rules error.
func (that *GameManager) PlayRound(ctx context.Context, id string, cell int) (*tictactoe.Game, error) {
	log := that.logger.With("method", "PlayRound", "gameID", id)

	unlock := that.lock(id)
	defer unlock()

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if err = game.TryRound(cell); err != nil {
		log.Debug("round rejected", "cell", cell, "error", err)
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.saveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsGameOver() {
		log.Info("game finished", "outcome", game.CheckOutcome().String())
	}

	return game, nil
}

// ResetGame - clears the board and keeps the players.
func (that *GameManager) ResetGame(ctx context.Context, id string) (*tictactoe.Game, error) {
	unlock := that.lock(id)
	defer unlock()

	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game.ResetGame()

	if err = that.saveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// EndSession - forgets the session. Unknown sessions are not an error.
func (that *GameManager) EndSession(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	err := that.gameRepo.DeleteByID(ctx, id)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Debug("session ended", "gameID", id)

	return nil
}

// lock - serializes calls for one session id.
func (that *GameManager) lock(id string) func() {
	that.locks.Lock(id)

	return func() {
		_ = that.locks.Unlock(id)
	}
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*tictactoe.Game, error) {
	snapshot, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game from storage: %w", err)
	}

	game, err := tictactoe.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", id, err)
	}

	return game, nil
}

func (that *GameManager) saveGame(ctx context.Context, game *tictactoe.Game) error {
	if err := that.gameRepo.Save(ctx, game.Snapshot()); err != nil {
		return fmt.Errorf("failed to save game to storage: %w", err)
	}

	return nil
}
