package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/transport/websocket"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

// RunApp - runs the HTTP and WebSocket server until ctx is canceled.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	gameRepo, checks, closeStorage, err := initStorage(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, gameRepo)
	gameHandler := rest.NewGameHandler(logger, gameManager, conf.Storage.SessionTTL)
	wsServer := websocket.New(logger, gameManager)

	srv := rest.New(":"+conf.HTTPPort, logger, func(r chi.Router) {
		r.Get("/healthz", rest.HealthHandler(logger, checks))
		r.Mount("/api/game", gameHandler.Routes())
		r.Handle("/ws", wsServer)
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage.Driver)
		if runErr := srv.Run(gctx); runErr != nil {
			return fmt.Errorf("HTTP server error: %w", runErr)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Application context canceled, shutting down")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func initStorage(ctx context.Context, conf *config.Config) (repository.GameRepository, map[string]rest.Checker, func() error, error) {
	switch conf.Storage.Driver {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		checks := map[string]rest.Checker{"redis": redisStorage}

		return repository.NewGameRepository(redisStorage.Connection, conf.Storage.SessionTTL), checks, redisStorage.Close, nil
	case config.StorageMemory:
		memoryRepo := repository.NewMemoryGameRepository(conf.Storage.SessionTTL)
		go memoryRepo.Start()

		stop := func() error {
			memoryRepo.Stop()
			return nil
		}

		return memoryRepo, map[string]rest.Checker{}, stop, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, conf.Storage.Driver)
	}
}
