package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const sessionCookieName = "game_session"

type gameManager interface {
	NewSession(ctx context.Context) (*tictactoe.Game, error)
	GetGame(ctx context.Context, id string) (*tictactoe.Game, error)
	StartGame(ctx context.Context, id, firstName, secondName string) (*tictactoe.Game, error)
	PlayRound(ctx context.Context, id string, cell int) (*tictactoe.Game, error)
	ResetGame(ctx context.Context, id string) (*tictactoe.Game, error)
	EndSession(ctx context.Context, id string) error
}

type StartRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type RoundRequest struct {
	Cell *int `json:"cell"`
}

type RoundResponse struct {
	Placed bool            `json:"placed"`
	Reason string          `json:"reason,omitempty"`
	State  presenter.State `json:"state"`
}

// GameHandler - JSON endpoints over the session bound to the request cookie.
type GameHandler struct {
	logger     *slog.Logger
	games      gameManager
	sessionTTL time.Duration
}

func NewGameHandler(logger *slog.Logger, games gameManager, sessionTTL time.Duration) *GameHandler {
	return &GameHandler{
		logger:     logger.With("component", "rest"),
		games:      games,
		sessionTTL: sessionTTL,
	}
}

func (that *GameHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", that.handleGetGame)
	r.Delete("/", that.handleEndSession)
	r.Post("/start", that.handleStartGame)
	r.Post("/round", that.handlePlayRound)
	r.Post("/reset", that.handleResetGame)

	return r
}

// handleGetGame - returns the session state, creating the session on the first visit.
func (that *GameHandler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetGame")

	if id := sessionID(r); id != "" {
		game, err := that.games.GetGame(r.Context(), id)
		if err == nil {
			writeJSON(w, http.StatusOK, presenter.NewState(game))
			return
		}

		if !errors.Is(err, apperror.ErrGameNotFound) {
			log.Error("failed to get game", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get the game")
			return
		}
	}

	game, err := that.games.NewSession(r.Context())
	if err != nil {
		log.Error("failed to create session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create a new session")
		return
	}

	that.setSessionCookie(w, game.ID())
	writeJSON(w, http.StatusOK, presenter.NewState(game))
}

func (that *GameHandler) handleStartGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleStartGame")

	var req StartRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.games.StartGame(r.Context(), sessionID(r), req.Player1, req.Player2)
	if err != nil {
		log.Error("failed to start game", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start the game")
		return
	}

	that.setSessionCookie(w, game.ID())
	writeJSON(w, http.StatusOK, presenter.NewState(game))
}

func (that *GameHandler) handlePlayRound(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handlePlayRound")

	var req RoundRequest
	if err := readJSON(w, r, &req); err != nil || req.Cell == nil {
		writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	game, err := that.games.PlayRound(r.Context(), sessionID(r), *req.Cell)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, RoundResponse{Placed: true, State: presenter.NewState(game)})
	case apperror.IsRejectedMove(err):
		writeJSON(w, http.StatusOK, RoundResponse{Reason: apperror.Reason(err), State: presenter.NewState(game)})
	default:
		that.writeSessionError(w, log, err)
	}
}

func (that *GameHandler) handleResetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleResetGame")

	game, err := that.games.ResetGame(r.Context(), sessionID(r))
	if err != nil {
		that.writeSessionError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, presenter.NewState(game))
}

func (that *GameHandler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleEndSession")

	if id := sessionID(r); id != "" {
		if err := that.games.EndSession(r.Context(), id); err != nil {
			log.Error("failed to end session", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to end the session")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (that *GameHandler) writeSessionError(w http.ResponseWriter, log *slog.Logger, err error) {
	if errors.Is(err, apperror.ErrGameNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	log.Error("game request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func (that *GameHandler) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(that.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}
