package repository

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

var _ GameRepository = (*MemoryGameRepository)(nil)

// MemoryGameRepository - keeps sessions in process memory. Expired sessions
// are hidden from reads right away and removed by the sweep that Start runs.
type MemoryGameRepository struct {
	cache *ttlcache.Cache[string, tictactoe.Snapshot]
}

func NewMemoryGameRepository(ttl time.Duration) *MemoryGameRepository {
	return &MemoryGameRepository{
		cache: ttlcache.New[string, tictactoe.Snapshot](
			ttlcache.WithTTL[string, tictactoe.Snapshot](ttl),
			// reads must not extend a session, same as redis GET
			ttlcache.WithDisableTouchOnHit[string, tictactoe.Snapshot](),
		),
	}
}

// Start - runs the expiry sweep, blocks until Stop.
func (that *MemoryGameRepository) Start() {
	that.cache.Start()
}

func (that *MemoryGameRepository) Stop() {
	that.cache.Stop()
}

// Len - sessions held, including expired ones the sweep has not reached yet.
func (that *MemoryGameRepository) Len() int {
	return that.cache.Len()
}

func (that *MemoryGameRepository) Save(_ context.Context, game tictactoe.Snapshot) error {
	that.cache.Set(game.ID, cloneSnapshot(game), ttlcache.DefaultTTL)

	return nil
}

func (that *MemoryGameRepository) GetByID(_ context.Context, id string) (tictactoe.Snapshot, error) {
	item := that.cache.Get(id)
	if item == nil {
		return tictactoe.Snapshot{}, apperror.ErrGameNotFound
	}

	return cloneSnapshot(item.Value()), nil
}

func (that *MemoryGameRepository) DeleteByID(_ context.Context, id string) error {
	if !that.cache.Has(id) {
		return apperror.ErrGameNotFound
	}

	that.cache.Delete(id)

	return nil
}

func cloneSnapshot(game tictactoe.Snapshot) tictactoe.Snapshot {
	if game.Players != nil {
		players := make([]entity.Player, len(game.Players))
		copy(players, game.Players)
		game.Players = players
	}

	return game
}
